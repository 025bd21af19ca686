package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/truongduyng/futkui-sub001/services"
)

// MatchController handles match intents
type MatchController struct {
	MatchService *services.MatchService
}

// NewMatchController initializes the match controller
func NewMatchController(service *services.MatchService) *MatchController {
	return &MatchController{MatchService: service}
}

// HandleCreateMatch - Creates a scheduled match in a group
func (c *MatchController) HandleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var request struct {
		GroupID     string `json:"groupId"`
		UserID      string `json:"userId"`
		Title       string `json:"title"`
		Location    string `json:"location,omitempty"`
		ScheduledAt string `json:"scheduledAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.GroupID == "" || request.UserID == "" || request.Title == "" || request.ScheduledAt == "" {
		http.Error(w, `{"error": "Missing required fields: groupId, userId, title, or scheduledAt"}`, http.StatusBadRequest)
		return
	}

	match, err := c.MatchService.CreateMatch(r.Context(), request.GroupID, request.UserID, request.Title, request.Location, request.ScheduledAt)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"match":  match,
	})
}

// HandleRsvp - Applies one RSVP intent (last write per user wins)
func (c *MatchController) HandleRsvp(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID  string `json:"matchId"`
		UserID   string `json:"userId"`
		Response string `json:"response"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.MatchID == "" || request.UserID == "" || request.Response == "" {
		http.Error(w, `{"error": "Missing required fields: matchId, userId, or response"}`, http.StatusBadRequest)
		return
	}

	match, err := c.MatchService.SubmitRsvp(r.Context(), request.MatchID, request.UserID, request.Response)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"match":  match,
	})
}

// HandleCheckIn - One-way check-in; a repeat call succeeds without change
func (c *MatchController) HandleCheckIn(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID string `json:"matchId"`
		UserID  string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.MatchID == "" || request.UserID == "" {
		http.Error(w, `{"error": "Missing required fields: matchId or userId"}`, http.StatusBadRequest)
		return
	}

	match, err := c.MatchService.CheckIn(r.Context(), request.MatchID, request.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"match":  match,
	})
}

// HandleCloseMatch - Creator/admin-only close intent
func (c *MatchController) HandleCloseMatch(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID string `json:"matchId"`
		UserID  string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.MatchID == "" || request.UserID == "" {
		http.Error(w, `{"error": "Missing required fields: matchId or userId"}`, http.StatusBadRequest)
		return
	}

	if err := c.MatchService.CloseMatch(r.Context(), request.MatchID, request.UserID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
