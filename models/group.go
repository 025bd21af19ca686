package models

// Group represents a chat group stored in DynamoDB
type Group struct {
	GroupID     string `dynamodbav:"groupId" json:"groupId"` // ✅ Partition Key
	Name        string `dynamodbav:"name" json:"name"`
	CreatedBy   string `dynamodbav:"createdBy" json:"createdBy"`
	InviteToken string `dynamodbav:"inviteToken" json:"inviteToken"`
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
}

// Membership links a user to a group. One record per (user, group) pair.
// LastReadMessageAt is the read cursor: empty means the user has never
// marked the group read, so every message counts as unread.
type Membership struct {
	UserID            string `dynamodbav:"userId" json:"userId"`   // ✅ Partition Key
	GroupID           string `dynamodbav:"groupId" json:"groupId"` // ✅ Sort Key
	Role              string `dynamodbav:"role" json:"role"`
	LastReadMessageAt string `dynamodbav:"lastReadMessageAt,omitempty" json:"lastReadMessageAt,omitempty"`
	JoinedAt          string `dynamodbav:"joinedAt" json:"joinedAt"`
}

// Membership roles
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Table Names for DynamoDB
const GroupTable = "Groups"
const MembershipTable = "Memberships"

// GSI for querying memberships by group
const MembershipGroupIndex = "groupId-userId-index"
