package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/truongduyng/futkui-sub001/services"
)

// ModerationController handles report and block intents
type ModerationController struct {
	ModerationService *services.ModerationService
}

// NewModerationController initializes the moderation controller
func NewModerationController(service *services.ModerationService) *ModerationController {
	return &ModerationController{ModerationService: service}
}

// HandleReport - One-time report of a message; repeats are rejected
func (c *ModerationController) HandleReport(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID    string `json:"userId"`
		GroupID   string `json:"groupId"`
		MessageID string `json:"messageId"`
		Reason    string `json:"reason,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.UserID == "" || request.GroupID == "" || request.MessageID == "" {
		http.Error(w, `{"error": "Missing required fields: userId, groupId, or messageId"}`, http.StatusBadRequest)
		return
	}

	if err := c.ModerationService.ReportMessage(r.Context(), request.UserID, request.GroupID, request.MessageID, request.Reason); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// HandleBlock - Adds a one-directional block pair
func (c *ModerationController) HandleBlock(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID    string `json:"userId"`
		BlockedID string `json:"blockedId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.UserID == "" || request.BlockedID == "" {
		http.Error(w, `{"error": "Missing required fields: userId or blockedId"}`, http.StatusBadRequest)
		return
	}

	if err := c.ModerationService.BlockUser(r.Context(), request.UserID, request.BlockedID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// HandleUnblock - Removes a block pair
func (c *ModerationController) HandleUnblock(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID    string `json:"userId"`
		BlockedID string `json:"blockedId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.UserID == "" || request.BlockedID == "" {
		http.Error(w, `{"error": "Missing required fields: userId or blockedId"}`, http.StatusBadRequest)
		return
	}

	if err := c.ModerationService.UnblockUser(r.Context(), request.UserID, request.BlockedID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
