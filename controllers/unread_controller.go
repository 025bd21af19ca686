package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/truongduyng/futkui-sub001/services"
)

// UnreadController serves unread badges and read-cursor advances
type UnreadController struct {
	UnreadService *services.UnreadService
}

// NewUnreadController initializes the unread controller
func NewUnreadController(service *services.UnreadService) *UnreadController {
	return &UnreadController{UnreadService: service}
}

// HandleGetBadge - Returns per-group unread counts and the total badge
func (c *UnreadController) HandleGetBadge(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "Missing required field: userId"}`, http.StatusBadRequest)
		return
	}

	badge, err := c.UnreadService.Badge(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"badge":  badge,
	})
}

// HandleMarkRead - Advances the membership's read cursor to now
func (c *UnreadController) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID  string `json:"userId"`
		GroupID string `json:"groupId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.UserID == "" || request.GroupID == "" {
		http.Error(w, `{"error": "Missing required fields: userId or groupId"}`, http.StatusBadRequest)
		return
	}

	if err := c.UnreadService.MarkGroupRead(r.Context(), request.UserID, request.GroupID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
