package services

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/truongduyng/futkui-sub001/models"
	"github.com/truongduyng/futkui-sub001/utils"
)

// GroupService handles group lifecycle and membership
type GroupService struct {
	Dynamo GraphStore
}

// CreateGroup stores a new group and an admin membership for its creator
func (s *GroupService) CreateGroup(ctx context.Context, name, userID string) (*models.Group, error) {
	group := models.Group{
		GroupID:     uuid.New().String(),
		Name:        name,
		CreatedBy:   userID,
		InviteToken: uuid.New().String(),
		CreatedAt:   utils.Now(),
	}

	if err := s.Dynamo.PutItem(ctx, models.GroupTable, group); err != nil {
		return nil, fmt.Errorf("failed to store group: %w", err)
	}

	membership := models.Membership{
		UserID:   userID,
		GroupID:  group.GroupID,
		Role:     models.RoleAdmin,
		JoinedAt: group.CreatedAt,
	}
	if err := s.Dynamo.PutItem(ctx, models.MembershipTable, membership); err != nil {
		return nil, fmt.Errorf("failed to store creator membership: %w", err)
	}

	log.Printf("✅ Group %s created by %s", group.GroupID, userID)
	return &group, nil
}

// JoinGroup adds a membership after validating the invite token
func (s *GroupService) JoinGroup(ctx context.Context, groupID, inviteToken, userID string) (*models.Membership, error) {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.InviteToken != inviteToken {
		return nil, models.ErrPermissionDenied
	}

	membership := models.Membership{
		UserID:   userID,
		GroupID:  groupID,
		Role:     models.RoleMember,
		JoinedAt: utils.Now(),
	}
	if err := s.Dynamo.PutItem(ctx, models.MembershipTable, membership); err != nil {
		return nil, fmt.Errorf("failed to store membership: %w", err)
	}

	log.Printf("👥 User %s joined group %s", userID, groupID)
	return &membership, nil
}

// LeaveGroup removes the user's membership
func (s *GroupService) LeaveGroup(ctx context.Context, groupID, userID string) error {
	key := map[string]types.AttributeValue{
		"userId":  &types.AttributeValueMemberS{Value: userID},
		"groupId": &types.AttributeValueMemberS{Value: groupID},
	}
	if err := s.Dynamo.DeleteItem(ctx, models.MembershipTable, key); err != nil {
		return fmt.Errorf("failed to remove membership: %w", err)
	}

	log.Printf("👋 User %s left group %s", userID, groupID)
	return nil
}

// MembersOf lists all memberships of a group via the group GSI
func (s *GroupService) MembersOf(ctx context.Context, groupID string) ([]models.Membership, error) {
	keyCondition := "groupId = :groupId"
	expressionValues := map[string]types.AttributeValue{
		":groupId": &types.AttributeValueMemberS{Value: groupID},
	}

	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.MembershipTable, models.MembershipGroupIndex, keyCondition, expressionValues, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch members: %w", err)
	}

	var memberships []models.Membership
	if err := attributevalue.UnmarshalListOfMaps(items, &memberships); err != nil {
		return nil, fmt.Errorf("failed to parse memberships: %w", err)
	}
	return memberships, nil
}

// GetGroup fetches a group by id
func (s *GroupService) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	key := map[string]types.AttributeValue{
		"groupId": &types.AttributeValueMemberS{Value: groupID},
	}
	item, err := s.Dynamo.GetItem(ctx, models.GroupTable, key)
	if err != nil {
		return nil, fmt.Errorf("group %s: %w", groupID, models.ErrNotFound)
	}

	var group models.Group
	if err := attributevalue.UnmarshalMap(item, &group); err != nil {
		return nil, fmt.Errorf("failed to parse group: %w", err)
	}
	return &group, nil
}
