package models

// Report is the shared-graph record created the first time a user reports a
// message. The reporter's own report set is also kept locally so the guard
// and the feed filter survive restarts without a store round trip.
type Report struct {
	ReportID   string `dynamodbav:"reportId" json:"reportId"` // ✅ Partition Key
	GroupID    string `dynamodbav:"groupId" json:"groupId"`
	MessageID  string `dynamodbav:"messageId" json:"messageId"`
	ReporterID string `dynamodbav:"reporterId" json:"reporterId"`
	Reason     string `dynamodbav:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt  string `dynamodbav:"createdAt" json:"createdAt"`
}

// Block is a one-directional (blocker, blocked) pair. It is only ever used
// for read-side filtering of the blocker's feed; the store does not enforce it.
type Block struct {
	BlockerID string `dynamodbav:"blockerId" json:"blockerId"` // ✅ Partition Key
	BlockedID string `dynamodbav:"blockedId" json:"blockedId"` // ✅ Sort Key
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// Table Names for DynamoDB
const ReportTable = "Reports"
const BlockTable = "Blocks"
