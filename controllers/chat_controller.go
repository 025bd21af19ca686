package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/truongduyng/futkui-sub001/services"
)

// ChatController handles message and reaction intents
type ChatController struct {
	ChatService *services.ChatService
}

// NewChatController initializes the chat controller
func NewChatController(service *services.ChatService) *ChatController {
	return &ChatController{ChatService: service}
}

// HandleSendMessage - Handles sending a new group message
func (c *ChatController) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var request struct {
		GroupID  string  `json:"groupId"`
		SenderID string  `json:"senderId"`
		Content  string  `json:"content"`
		ImageKey *string `json:"imageKey,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.GroupID == "" || request.SenderID == "" {
		http.Error(w, `{"error": "Missing required fields: groupId or senderId"}`, http.StatusBadRequest)
		return
	}

	message, err := c.ChatService.SendMessage(r.Context(), request.GroupID, request.SenderID, request.Content, request.ImageKey)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": message,
	})
}

// HandleReact - Sets, replaces or removes the sender's emoji on a message
func (c *ChatController) HandleReact(w http.ResponseWriter, r *http.Request) {
	var request struct {
		GroupID   string `json:"groupId"`
		CreatedAt string `json:"createdAt"`
		UserID    string `json:"userId"`
		Emoji     string `json:"emoji"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.GroupID == "" || request.CreatedAt == "" || request.UserID == "" || request.Emoji == "" {
		http.Error(w, `{"error": "Missing required fields: groupId, createdAt, userId, or emoji"}`, http.StatusBadRequest)
		return
	}

	if err := c.ChatService.ReactToMessage(r.Context(), request.GroupID, request.CreatedAt, request.UserID, request.Emoji); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
