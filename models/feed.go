package models

// Feed item kinds. A poll is not its own feed item; it rides on the message
// that created it.
const (
	FeedItemMessage = "message"
	FeedItemMatch   = "match"
)

// Viewer voting states, evaluated at read time
const (
	VoteStateUnvoted       = "unvoted"
	VoteStateVotedSingle   = "voted-single"
	VoteStateVotedMultiple = "voted-multiple"
	VoteStateClosed        = "closed"
)

// Snapshot is a complete materialized result for one group's subscription
// window at a point in time. Never a diff: each snapshot supersedes the
// previous one wholesale. Generation increases with every rebuild so stale
// deliveries can be discarded.
type Snapshot struct {
	GroupID    string          `json:"groupId"`
	Generation int64           `json:"generation"`
	Window     int             `json:"window"`
	HasMore    bool            `json:"hasMore"`
	Messages   []Message       `json:"messages"`
	Matches    []Match         `json:"matches"`
	Polls      map[string]Poll `json:"polls,omitempty"` // keyed by pollId
}

// FeedItem is one chronological entry in a group's composed timeline.
type FeedItem struct {
	Kind      string   `json:"kind"` // message | match
	ID        string   `json:"id"`
	CreatedAt string   `json:"createdAt"`
	Message   *Message `json:"message,omitempty"`
	Poll      *Poll    `json:"poll,omitempty"`
	Match     *Match   `json:"match,omitempty"`
}

// PollView is the viewer's interactive state on a poll: which options they
// hold votes for plus the per-option tallies folded from the vote set.
type PollView struct {
	State     string         `json:"state"`
	OptionIDs []string       `json:"optionIds,omitempty"`
	Counts    map[string]int `json:"counts"`
}

// MatchView is the viewer's interactive state on a match.
type MatchView struct {
	Response  string `json:"response,omitempty"` // empty = no response yet
	CheckedIn bool   `json:"checkedIn"`
	Closed    bool   `json:"closed"`
}

// FeedItemView is a FeedItem plus the per-viewer projections the client
// renders: reaction groups and "my vote / my RSVP / my check-in" state.
type FeedItemView struct {
	FeedItem
	Reactions []ReactionGroup `json:"reactions,omitempty"`
	PollView  *PollView       `json:"pollView,omitempty"`
	MatchView *MatchView      `json:"matchView,omitempty"`
}

// UnreadBadge is the per-user unread aggregation across all memberships.
// Total counts distinct unread messages, not groups with unread messages.
type UnreadBadge struct {
	PerGroup map[string]int `json:"perGroup"`
	Total    int            `json:"total"`
}
