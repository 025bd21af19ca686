package services

import (
	"sync"
	"time"
)

// Window defaults. A session's window starts at the default, grows by the
// increment when the subscriber scrolls near the oldest loaded item, and
// resets whenever the session switches groups.
const (
	DefaultWindowSize   = 300
	WindowGrowIncrement = 200
	GrowthClearDebounce = 500 * time.Millisecond
)

type windowState struct {
	groupKey  string
	size      int
	isGrowing bool
	growEpoch int64 // stale debounce timers compare against this
}

// WindowService owns the pagination window per subscriber session. All
// transitions are synchronous under one lock; a growth left in flight when
// the session switches groups is abandoned, so window size never leaks from
// one conversation into another.
type WindowService struct {
	mu          sync.Mutex
	defaultSize int
	increment   int
	debounce    time.Duration
	sessions    map[string]*windowState
}

func NewWindowService(defaultSize int) *WindowService {
	if defaultSize <= 0 {
		defaultSize = DefaultWindowSize
	}
	return &WindowService{
		defaultSize: defaultSize,
		increment:   WindowGrowIncrement,
		debounce:    GrowthClearDebounce,
		sessions:    make(map[string]*windowState),
	}
}

// Window returns the session's current window size
func (w *WindowService) Window(session string) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	if st, ok := w.sessions[session]; ok {
		return st.size
	}
	return w.defaultSize
}

// OnGroupChanged resets the session's window to the default and clears any
// growth state. Returns the new window size.
func (w *WindowService) OnGroupChanged(session, groupKey string) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	st := w.state(session)
	st.groupKey = groupKey
	st.size = w.defaultSize
	st.isGrowing = false
	st.growEpoch++
	return st.size
}

// OnScrollNearOldest grows the window when the subscriber nears the oldest
// loaded item. No growth while one is already in flight, and none when the
// last result did not fill the window (no more history to fetch). A request
// carrying a groupKey other than the session's current one is ignored: it
// was issued before a group switch and must not grow the new group's window.
// Returns the window size and whether it grew.
func (w *WindowService) OnScrollNearOldest(session, groupKey string, resultCount int) (int, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	st := w.state(session)
	if st.groupKey != groupKey || st.isGrowing || resultCount < st.size {
		return st.size, false
	}

	st.size += w.increment
	st.isGrowing = true
	st.growEpoch++
	return st.size, true
}

// OnSnapshotDelivered clears the growing flag after the debounce delay once
// a snapshot for the session's group has arrived. A timer from a superseded
// growth (group changed, another grow) does nothing.
func (w *WindowService) OnSnapshotDelivered(session, groupKey string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	st, ok := w.sessions[session]
	if !ok || st.groupKey != groupKey || !st.isGrowing {
		return
	}

	epoch := st.growEpoch
	time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if st, ok := w.sessions[session]; ok && st.growEpoch == epoch && st.groupKey == groupKey {
			st.isGrowing = false
		}
	})
}

// HasMore is the pagination boundary heuristic: the store gives no total
// count, so a result that fills the requested window means more history may
// exist. Known approximation: at the true end of history this yields one
// extra fetch that returns the same items and clears the flag.
func HasMore(resultCount, window int) bool {
	return resultCount >= window
}

// MaxWindowForGroup returns the largest window among sessions subscribed to
// the group, so one broadcast snapshot covers every subscriber.
func (w *WindowService) MaxWindowForGroup(groupKey string) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	max := w.defaultSize
	for _, st := range w.sessions {
		if st.groupKey == groupKey && st.size > max {
			max = st.size
		}
	}
	return max
}

// SessionsForGroup lists the sessions currently subscribed to the group
func (w *WindowService) SessionsForGroup(groupKey string) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var sessions []string
	for id, st := range w.sessions {
		if st.groupKey == groupKey {
			sessions = append(sessions, id)
		}
	}
	return sessions
}

// DropSession forgets a session's window state (subscriber disconnected)
func (w *WindowService) DropSession(session string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.sessions, session)
}

func (w *WindowService) state(session string) *windowState {
	st, ok := w.sessions[session]
	if !ok {
		st = &windowState{size: w.defaultSize}
		w.sessions[session] = st
	}
	return st
}
