package models

// RSVP responses
const (
	RsvpYes   = "yes"
	RsvpNo    = "no"
	RsvpMaybe = "maybe"
)

// Rsvp is one user's response to a match. At most one per (match, user);
// a new response replaces the old one.
type Rsvp struct {
	MatchID   string `dynamodbav:"matchId" json:"matchId"`
	UserID    string `dynamodbav:"userId" json:"userId"`
	Response  string `dynamodbav:"response" json:"response"` // yes | no | maybe
	UpdatedAt string `dynamodbav:"updatedAt" json:"updatedAt"`
}

// CheckIn records that a user showed up for a match. One-way: once written
// it is never removed.
type CheckIn struct {
	MatchID     string `dynamodbav:"matchId" json:"matchId"`
	UserID      string `dynamodbav:"userId" json:"userId"`
	CheckedInAt string `dynamodbav:"checkedInAt" json:"checkedInAt"`
}

// Match represents a scheduled match in a group. IsActive is maintained by a
// scheduled sweep on the store side; a set ClosedAt blocks RSVPs and
// check-ins regardless of IsActive.
type Match struct {
	MatchID     string    `dynamodbav:"matchId" json:"matchId"` // ✅ Partition Key
	GroupID     string    `dynamodbav:"groupId" json:"groupId"`
	Title       string    `dynamodbav:"title" json:"title"`
	Location    string    `dynamodbav:"location,omitempty" json:"location,omitempty"`
	ScheduledAt string    `dynamodbav:"scheduledAt" json:"scheduledAt"`
	IsActive    bool      `dynamodbav:"isActive" json:"isActive"`
	ClosedAt    string    `dynamodbav:"closedAt,omitempty" json:"closedAt,omitempty"`
	CreatedBy   string    `dynamodbav:"createdBy" json:"createdBy"`
	CreatedAt   string    `dynamodbav:"createdAt" json:"createdAt"`
	Rsvps       []Rsvp    `dynamodbav:"rsvps,omitempty" json:"rsvps,omitempty"`
	CheckIns    []CheckIn `dynamodbav:"checkIns,omitempty" json:"checkIns,omitempty"`
}

// Table Name for DynamoDB
const MatchTable = "Matches"

// GSI for querying matches by group
const MatchGroupIndex = "groupId-createdAt-index"
