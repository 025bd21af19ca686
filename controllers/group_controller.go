package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/truongduyng/futkui-sub001/services"
)

// GroupController handles group lifecycle and membership intents
type GroupController struct {
	GroupService *services.GroupService
}

// NewGroupController initializes the group controller
func NewGroupController(service *services.GroupService) *GroupController {
	return &GroupController{GroupService: service}
}

// HandleCreateGroup - Creates a group with the caller as admin
func (c *GroupController) HandleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Name   string `json:"name"`
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.Name == "" || request.UserID == "" {
		http.Error(w, `{"error": "Missing required fields: name or userId"}`, http.StatusBadRequest)
		return
	}

	group, err := c.GroupService.CreateGroup(r.Context(), request.Name, request.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"group":  group,
	})
}

// HandleJoinGroup - Joins via invite token
func (c *GroupController) HandleJoinGroup(w http.ResponseWriter, r *http.Request) {
	var request struct {
		GroupID     string `json:"groupId"`
		InviteToken string `json:"inviteToken"`
		UserID      string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.GroupID == "" || request.InviteToken == "" || request.UserID == "" {
		http.Error(w, `{"error": "Missing required fields: groupId, inviteToken, or userId"}`, http.StatusBadRequest)
		return
	}

	membership, err := c.GroupService.JoinGroup(r.Context(), request.GroupID, request.InviteToken, request.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"membership": membership,
	})
}

// HandleListMembers - Lists all memberships of a group
func (c *GroupController) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["groupId"]
	if groupID == "" {
		http.Error(w, `{"error": "Missing required field: groupId"}`, http.StatusBadRequest)
		return
	}

	members, err := c.GroupService.MembersOf(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"members": members,
	})
}

// HandleLeaveGroup - Removes the caller's membership
func (c *GroupController) HandleLeaveGroup(w http.ResponseWriter, r *http.Request) {
	var request struct {
		GroupID string `json:"groupId"`
		UserID  string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.GroupID == "" || request.UserID == "" {
		http.Error(w, `{"error": "Missing required fields: groupId or userId"}`, http.StatusBadRequest)
		return
	}

	if err := c.GroupService.LeaveGroup(r.Context(), request.GroupID, request.UserID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
