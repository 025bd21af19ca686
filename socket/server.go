package socket

import (
	"context"
	"log"

	socketio "github.com/googollee/go-socket.io"

	"github.com/truongduyng/futkui-sub001/services"
)

// Server is the snapshot push surface: one socket.io room per group, whole
// snapshots (never diffs) re-broadcast after every accepted mutation. It
// implements services.GroupNotifier.
type Server struct {
	IO      *socketio.Server
	Sync    *services.SyncService
	Windows *services.WindowService
}

// NewServer initializes the Socket.IO server and its event handlers
func NewServer(sync *services.SyncService, windows *services.WindowService) *Server {
	s := &Server{
		IO:      socketio.NewServer(nil),
		Sync:    sync,
		Windows: windows,
	}

	s.IO.OnConnect("/", func(c socketio.Conn) error {
		log.Println("✅ Socket connected:", c.ID())
		c.SetContext("")
		return nil
	})

	// join subscribes the connection to a group's snapshot stream. Changing
	// groups resets the session's pagination window.
	s.IO.OnEvent("/", "join", func(c socketio.Conn, data map[string]string) {
		groupID := data["groupId"]
		if groupID == "" {
			log.Println("❌ Invalid groupId in join request")
			return
		}

		if prev, ok := c.Context().(string); ok && prev != "" && prev != groupID {
			c.Leave(prev)
		}

		window := s.Windows.OnGroupChanged(c.ID(), groupID)
		c.Join(groupID)
		c.SetContext(groupID)
		log.Printf("👥 Session %s joined group %s (window %d)", c.ID(), groupID, window)

		snap, err := s.Sync.BuildSnapshot(context.Background(), groupID, window)
		if err != nil {
			log.Printf("❌ Failed to build snapshot for group %s: %v", groupID, err)
			return
		}
		if s.Sync.ShouldDeliver(snap) {
			c.Emit("snapshot", snap)
			s.Windows.OnSnapshotDelivered(c.ID(), groupID)
		}
	})

	// loadOlder grows the session's window when the viewer scrolls near the
	// oldest loaded item, then pushes the wider snapshot. The event carries
	// the group the viewer was scrolling; one issued before a group switch
	// is dropped by the window service.
	s.IO.OnEvent("/", "loadOlder", func(c socketio.Conn, data map[string]interface{}) {
		groupID, _ := c.Context().(string)
		if groupID == "" {
			return
		}
		requestGroup, _ := data["groupId"].(string)
		if requestGroup == "" {
			requestGroup = groupID
		}
		resultCount := 0
		if v, ok := data["resultCount"].(float64); ok {
			resultCount = int(v)
		}

		window, grew := s.Windows.OnScrollNearOldest(c.ID(), requestGroup, resultCount)
		if !grew {
			return
		}
		log.Printf("📜 Session %s growing window for group %s to %d", c.ID(), groupID, window)

		snap, err := s.Sync.BuildSnapshot(context.Background(), groupID, window)
		if err != nil {
			log.Printf("❌ Failed to build snapshot for group %s: %v", groupID, err)
			return
		}
		if s.Sync.ShouldDeliver(snap) {
			c.Emit("snapshot", snap)
			s.Windows.OnSnapshotDelivered(c.ID(), groupID)
		}
	})

	s.IO.OnEvent("/", "leave", func(c socketio.Conn) {
		if groupID, ok := c.Context().(string); ok && groupID != "" {
			c.Leave(groupID)
			c.SetContext("")
		}
	})

	s.IO.OnError("/", func(c socketio.Conn, err error) {
		log.Println("⚠️ Socket error:", err)
	})

	s.IO.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("❌ Socket disconnected:", c.ID(), reason)
		s.Windows.DropSession(c.ID())
	})

	return s
}

// NotifyGroupChanged rebuilds and broadcasts the group's snapshot after an
// accepted mutation. One snapshot at the widest subscribed window covers
// every session in the room; the generation guard drops it if a newer
// rebuild already went out.
func (s *Server) NotifyGroupChanged(groupID string) {
	go func() {
		window := s.Windows.MaxWindowForGroup(groupID)
		snap, err := s.Sync.BuildSnapshot(context.Background(), groupID, window)
		if err != nil {
			log.Printf("❌ Failed to rebuild snapshot for group %s: %v", groupID, err)
			return
		}
		if !s.Sync.ShouldDeliver(snap) {
			return
		}

		s.IO.BroadcastToRoom("/", groupID, "snapshot", snap)
		for _, session := range s.Windows.SessionsForGroup(groupID) {
			s.Windows.OnSnapshotDelivered(session, groupID)
		}
	}()
}
