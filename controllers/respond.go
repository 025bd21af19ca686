package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/truongduyng/futkui-sub001/models"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps intent rejections to status codes: validation 400,
// permission 403, missing records 404, duplicate reports and exhausted
// write retries 409. Anything else is a store/transport failure.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrAlreadyReported),
		errors.Is(err, models.ErrConcurrentUpdate):
		status = http.StatusConflict
	case errors.Is(err, models.ErrPollClosed),
		errors.Is(err, models.ErrMatchClosed),
		errors.Is(err, models.ErrMatchInactive),
		errors.Is(err, models.ErrInvalidResponse),
		errors.Is(err, models.ErrMalformedRecord):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
