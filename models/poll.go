package models

// PollOption is one entry in a poll's ordered option list. Order is fixed at
// creation; AddOption appends, nothing ever reorders.
type PollOption struct {
	OptionID string `dynamodbav:"optionId" json:"optionId"`
	Text     string `dynamodbav:"text" json:"text"`
}

// Vote is one (poll, user, option) triple. For single-choice polls a user
// holds at most one vote total; for multi-choice at most one per option.
type Vote struct {
	PollID   string `dynamodbav:"pollId" json:"pollId"`
	UserID   string `dynamodbav:"userId" json:"userId"`
	OptionID string `dynamodbav:"optionId" json:"optionId"`
	CastAt   string `dynamodbav:"castAt" json:"castAt"`
}

// Poll represents a poll attached to a message. Voting ends when ClosedAt is
// set or ExpiresAt has passed; "closed" is evaluated at read time, not stored.
type Poll struct {
	PollID        string       `dynamodbav:"pollId" json:"pollId"` // ✅ Partition Key
	MessageID     string       `dynamodbav:"messageId" json:"messageId"`
	GroupID       string       `dynamodbav:"groupId" json:"groupId"`
	Question      string       `dynamodbav:"question" json:"question"`
	Options       []PollOption `dynamodbav:"options" json:"options"`
	AllowMultiple bool         `dynamodbav:"allowMultiple" json:"allowMultiple"`
	ExpiresAt     string       `dynamodbav:"expiresAt,omitempty" json:"expiresAt,omitempty"`
	ClosedAt      string       `dynamodbav:"closedAt,omitempty" json:"closedAt,omitempty"`
	Votes         []Vote       `dynamodbav:"votes,omitempty" json:"votes,omitempty"`
	CreatedBy     string       `dynamodbav:"createdBy" json:"createdBy"`
	CreatedAt     string       `dynamodbav:"createdAt" json:"createdAt"`
}

// Table Name for DynamoDB
const PollTable = "Polls"
