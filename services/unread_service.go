package services

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/truongduyng/futkui-sub001/models"
	"github.com/truongduyng/futkui-sub001/utils"
)

// UnreadScanLimit caps how many recent messages per group feed the unread
// count. A group with more unread than this reports the cap.
const UnreadScanLimit = 100

// UnreadService computes per-group and total unread badges and advances
// read cursors
type UnreadService struct {
	Dynamo GraphStore
}

// CountUnread folds memberships and each group's recent messages into the
// unread badge. A message is unread iff its createdAt is strictly greater
// than the membership's cursor; an empty cursor means everything is unread.
// Total counts distinct unread messages across groups, not groups with
// unread messages.
func CountUnread(memberships []models.Membership, messagesByGroup map[string][]models.Message) models.UnreadBadge {
	badge := models.UnreadBadge{PerGroup: make(map[string]int, len(memberships))}

	for _, m := range memberships {
		count := 0
		for _, msg := range messagesByGroup[m.GroupID] {
			if msg.CreatedAt > m.LastReadMessageAt {
				count++
			}
		}
		badge.PerGroup[m.GroupID] = count
		badge.Total += count
	}

	return badge
}

// AdvanceCursor returns the new read cursor after a markGroupRead at `now`.
// Monotonic: the cursor never moves backward, so marking read twice in a row
// (or against a stale clock) is harmless.
func AdvanceCursor(current, now string) string {
	if now > current {
		return now
	}
	return current
}

// Badge computes the unread badge for a user across all their memberships
func (s *UnreadService) Badge(ctx context.Context, userID string) (models.UnreadBadge, error) {
	memberships, err := s.MembershipsForUser(ctx, userID)
	if err != nil {
		return models.UnreadBadge{}, err
	}

	messagesByGroup := make(map[string][]models.Message, len(memberships))
	for _, m := range memberships {
		keyCondition := "groupId = :groupId"
		expressionValues := map[string]types.AttributeValue{
			":groupId": &types.AttributeValueMemberS{Value: m.GroupID},
		}

		items, err := s.Dynamo.QueryItemsWithOptions(ctx, models.MessageTable, keyCondition, expressionValues, nil, UnreadScanLimit, true)
		if err != nil {
			log.Printf("⚠️ Skipping unread count for group %s: %v", m.GroupID, err)
			continue
		}

		var messages []models.Message
		if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
			log.Printf("⚠️ Failed to parse messages for group %s: %v", m.GroupID, err)
			continue
		}
		messagesByGroup[m.GroupID] = messages
	}

	return CountUnread(memberships, messagesByGroup), nil
}

// MarkGroupRead advances the membership's read cursor to now. Idempotent:
// with no new messages a repeat call leaves the unread count at zero, and
// the cursor never regresses.
func (s *UnreadService) MarkGroupRead(ctx context.Context, userID, groupID string) error {
	key := map[string]types.AttributeValue{
		"userId":  &types.AttributeValueMemberS{Value: userID},
		"groupId": &types.AttributeValueMemberS{Value: groupID},
	}

	item, err := s.Dynamo.GetItem(ctx, models.MembershipTable, key)
	if err != nil {
		return fmt.Errorf("membership %s/%s: %w", userID, groupID, models.ErrNotFound)
	}

	current := utils.ExtractString(item, "lastReadMessageAt")
	cursor := AdvanceCursor(current, utils.Now())
	if cursor == current {
		return nil // nothing to advance
	}

	updateExpression := "SET lastReadMessageAt = :cursor"
	expressionValues := map[string]types.AttributeValue{
		":cursor": &types.AttributeValueMemberS{Value: cursor},
	}
	if _, err := s.Dynamo.UpdateItem(ctx, models.MembershipTable, updateExpression, key, expressionValues, nil); err != nil {
		return fmt.Errorf("failed to advance read cursor: %w", err)
	}

	log.Printf("✅ Group %s marked read by %s", groupID, userID)
	return nil
}

// MembershipsForUser fetches all memberships carried by a user
func (s *UnreadService) MembershipsForUser(ctx context.Context, userID string) ([]models.Membership, error) {
	keyCondition := "userId = :userId"
	expressionValues := map[string]types.AttributeValue{
		":userId": &types.AttributeValueMemberS{Value: userID},
	}

	items, err := s.Dynamo.QueryItems(ctx, models.MembershipTable, keyCondition, expressionValues, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch memberships: %w", err)
	}

	var memberships []models.Membership
	if err := attributevalue.UnmarshalListOfMaps(items, &memberships); err != nil {
		return nil, fmt.Errorf("failed to parse memberships: %w", err)
	}
	return memberships, nil
}
