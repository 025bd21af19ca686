package models

// Message represents a group chat message stored in DynamoDB
type Message struct {
	GroupID   string            `dynamodbav:"groupId" json:"groupId"`     // ✅ Partition Key (Group Identifier)
	CreatedAt string            `dynamodbav:"createdAt" json:"createdAt"` // ✅ Sort Key (Timestamp)
	MessageID string            `dynamodbav:"messageId" json:"messageId"` // ✅ Unique message ID (UUID-based)
	SenderID  string            `dynamodbav:"senderId" json:"senderId"`
	Content   string            `dynamodbav:"content,omitempty" json:"content,omitempty"`
	ImageKey  *string           `dynamodbav:"imageKey,omitempty" json:"imageKey,omitempty"`   // ✅ Optional S3 attachment key
	PollID    *string           `dynamodbav:"pollId,omitempty" json:"pollId,omitempty"`       // ✅ Embedded poll, rides on this message
	Reactions map[string]string `dynamodbav:"reactions,omitempty" json:"reactions,omitempty"` // userId -> emoji, one per user
}

// ReactionGroup is the display view of one emoji on a message: how many
// users picked it and who they are.
type ReactionGroup struct {
	Emoji string   `json:"emoji"`
	Count int      `json:"count"`
	Users []string `json:"users"`
}

// Table Name for DynamoDB
const MessageTable = "Messages"
