package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/truongduyng/futkui-sub001/services"
)

// PollController handles poll intents
type PollController struct {
	PollService *services.PollService
}

// NewPollController initializes the poll controller
func NewPollController(service *services.PollService) *PollController {
	return &PollController{PollService: service}
}

// HandleCreatePoll - Creates a poll and the message that carries it
func (c *PollController) HandleCreatePoll(w http.ResponseWriter, r *http.Request) {
	var request struct {
		GroupID       string   `json:"groupId"`
		UserID        string   `json:"userId"`
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		AllowMultiple bool     `json:"allowMultiple"`
		ExpiresAt     string   `json:"expiresAt,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.GroupID == "" || request.UserID == "" || request.Question == "" || len(request.Options) < 2 {
		http.Error(w, `{"error": "Missing required fields: groupId, userId, question, or at least two options"}`, http.StatusBadRequest)
		return
	}

	poll, err := c.PollService.CreatePoll(r.Context(), request.GroupID, request.UserID, request.Question, request.Options, request.AllowMultiple, request.ExpiresAt)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"poll":   poll,
	})
}

// HandleCastVote - Applies one castVote intent
func (c *PollController) HandleCastVote(w http.ResponseWriter, r *http.Request) {
	var request struct {
		PollID   string `json:"pollId"`
		UserID   string `json:"userId"`
		OptionID string `json:"optionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.PollID == "" || request.UserID == "" || request.OptionID == "" {
		http.Error(w, `{"error": "Missing required fields: pollId, userId, or optionId"}`, http.StatusBadRequest)
		return
	}

	poll, err := c.PollService.CastVote(r.Context(), request.PollID, request.UserID, request.OptionID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"poll":   poll,
	})
}

// HandleClosePoll - Author-only close intent
func (c *PollController) HandleClosePoll(w http.ResponseWriter, r *http.Request) {
	var request struct {
		PollID string `json:"pollId"`
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.PollID == "" || request.UserID == "" {
		http.Error(w, `{"error": "Missing required fields: pollId or userId"}`, http.StatusBadRequest)
		return
	}

	if err := c.PollService.ClosePoll(r.Context(), request.PollID, request.UserID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// HandleAddOption - Appends a new option to an open poll
func (c *PollController) HandleAddOption(w http.ResponseWriter, r *http.Request) {
	var request struct {
		PollID string `json:"pollId"`
		UserID string `json:"userId"`
		Text   string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.PollID == "" || request.UserID == "" || request.Text == "" {
		http.Error(w, `{"error": "Missing required fields: pollId, userId, or text"}`, http.StatusBadRequest)
		return
	}

	poll, err := c.PollService.AddOption(r.Context(), request.PollID, request.UserID, request.Text)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"poll":   poll,
	})
}
