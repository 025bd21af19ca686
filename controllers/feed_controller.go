package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/truongduyng/futkui-sub001/services"
)

// FeedController serves the composed, projected, moderated timeline
type FeedController struct {
	Sync       *services.SyncService
	Windows    *services.WindowService
	Moderation *services.ModerationService
}

// NewFeedController initializes the feed controller
func NewFeedController(sync *services.SyncService, windows *services.WindowService, moderation *services.ModerationService) *FeedController {
	return &FeedController{Sync: sync, Windows: windows, Moderation: moderation}
}

// HandleGetFeed - Returns one page of a group's timeline for a viewer.
// Switching groups resets the session's window; the same session asking for
// the same group keeps its grown window.
func (c *FeedController) HandleGetFeed(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["groupId"]
	userID := r.URL.Query().Get("userId")
	session := r.URL.Query().Get("session")
	if groupID == "" || userID == "" || session == "" {
		http.Error(w, `{"error": "Missing required fields: groupId, userId, or session"}`, http.StatusBadRequest)
		return
	}

	window := c.Windows.Window(session)
	snap, err := c.Sync.BuildSnapshot(r.Context(), groupID, window)
	if err != nil {
		writeError(w, err)
		return
	}
	c.Windows.OnSnapshotDelivered(session, groupID)

	items := services.ProjectFeed(snap, userID, time.Now())
	items = c.Moderation.FilterFeed(items, userID, groupID)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"items":      items,
		"hasMore":    services.HasMore(len(snap.Messages), window),
		"window":     window,
		"generation": snap.Generation,
	})
}

// HandleSelectGroup - Switches a session to a group, resetting its window
func (c *FeedController) HandleSelectGroup(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Session string `json:"session"`
		GroupID string `json:"groupId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.Session == "" || request.GroupID == "" {
		http.Error(w, `{"error": "Missing required fields: session or groupId"}`, http.StatusBadRequest)
		return
	}

	window := c.Windows.OnGroupChanged(request.Session, request.GroupID)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"window": window,
	})
}

// HandleLoadOlder - Grows the session's window when the viewer scrolls near
// the oldest loaded item. No-op while a growth is in flight, when the last
// page did not fill the window, or when the request names a group other than
// the session's current one.
func (c *FeedController) HandleLoadOlder(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Session     string `json:"session"`
		GroupID     string `json:"groupId"`
		ResultCount int    `json:"resultCount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.Session == "" || request.GroupID == "" {
		http.Error(w, `{"error": "Missing required fields: session or groupId"}`, http.StatusBadRequest)
		return
	}

	window, grew := c.Windows.OnScrollNearOldest(request.Session, request.GroupID, request.ResultCount)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"window": window,
		"grew":   grew,
	})
}
