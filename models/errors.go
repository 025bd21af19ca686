package models

import "errors"

// Intent rejection and snapshot-processing errors. Handlers map these to
// HTTP status codes; snapshot errors are logged and swallowed.
var (
	ErrPollClosed       = errors.New("poll is closed")
	ErrMatchClosed      = errors.New("match is closed")
	ErrMatchInactive    = errors.New("match is not active")
	ErrInvalidResponse  = errors.New("invalid rsvp response")
	ErrAlreadyReported  = errors.New("message already reported")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrConcurrentUpdate = errors.New("concurrent update")
	ErrMalformedRecord  = errors.New("malformed record")
)
