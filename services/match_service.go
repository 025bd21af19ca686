package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/truongduyng/futkui-sub001/models"
	"github.com/truongduyng/futkui-sub001/utils"
)

// MatchService handles match creation, RSVPs and check-ins
type MatchService struct {
	Dynamo GraphStore
	Notify GroupNotifier
}

// MatchClosed reports whether a match no longer accepts RSVPs or check-ins.
// A set closedAt always wins over the separately swept isActive flag.
func MatchClosed(m models.Match) bool {
	return m.ClosedAt != "" || !m.IsActive
}

// NextRsvps computes the RSVP set after one response by userID: last write
// wins, replacing any prior response rather than appending.
func NextRsvps(m models.Match, userID, response, updatedAt string) ([]models.Rsvp, error) {
	if response != models.RsvpYes && response != models.RsvpNo && response != models.RsvpMaybe {
		return nil, models.ErrInvalidResponse
	}
	if m.ClosedAt != "" {
		return nil, models.ErrMatchClosed
	}
	if !m.IsActive {
		return nil, models.ErrMatchInactive
	}

	next := make([]models.Rsvp, 0, len(m.Rsvps)+1)
	for _, r := range m.Rsvps {
		if r.UserID != userID {
			next = append(next, r)
		}
	}
	next = append(next, models.Rsvp{
		MatchID:   m.MatchID,
		UserID:    userID,
		Response:  response,
		UpdatedAt: updatedAt,
	})

	return next, nil
}

// NextCheckIns computes the check-in set after userID checks in. One-way:
// a second check-in changes nothing and is not an error. The scheduled time
// does not gate check-in; attendance may be confirmed pre-arrival.
func NextCheckIns(m models.Match, userID, checkedInAt string) ([]models.CheckIn, bool, error) {
	for _, c := range m.CheckIns {
		if c.UserID == userID {
			return m.CheckIns, false, nil // already checked in, no-op
		}
	}

	if m.ClosedAt != "" {
		return nil, false, models.ErrMatchClosed
	}
	if !m.IsActive {
		return nil, false, models.ErrMatchInactive
	}

	next := append(append([]models.CheckIn{}, m.CheckIns...), models.CheckIn{
		MatchID:     m.MatchID,
		UserID:      userID,
		CheckedInAt: checkedInAt,
	})
	return next, true, nil
}

// ProjectMatch derives the viewer's RSVP and check-in state for a match.
func ProjectMatch(m models.Match, viewerID string) *models.MatchView {
	view := &models.MatchView{Closed: MatchClosed(m)}

	for _, r := range m.Rsvps {
		if r.UserID == viewerID {
			view.Response = r.Response
			break
		}
	}
	for _, c := range m.CheckIns {
		if c.UserID == viewerID {
			view.CheckedIn = true
			break
		}
	}

	return view
}

// CreateMatch stores a new match. Matches enter the group feed directly as
// their own items, ordered by createdAt like messages.
func (s *MatchService) CreateMatch(ctx context.Context, groupID, userID, title, location, scheduledAt string) (*models.Match, error) {
	match := models.Match{
		MatchID:     uuid.New().String(),
		GroupID:     groupID,
		Title:       title,
		Location:    location,
		ScheduledAt: scheduledAt,
		IsActive:    true,
		CreatedBy:   userID,
		CreatedAt:   utils.Now(),
	}

	if err := s.Dynamo.PutItem(ctx, models.MatchTable, match); err != nil {
		return nil, fmt.Errorf("failed to store match: %w", err)
	}

	log.Printf("✅ Match %s created in group %s", match.MatchID, groupID)
	s.notifyGroup(groupID)
	return &match, nil
}

// SubmitRsvp applies one RSVP intent, replacing the user's prior response.
// The write is conditional on the rsvps read earlier; a concurrent RSVP
// triggers a re-read so neither response is lost.
func (s *MatchService) SubmitRsvp(ctx context.Context, matchID, userID, response string) (*models.Match, error) {
	for attempt := 0; attempt < writeRetryLimit; attempt++ {
		match, err := s.getMatch(ctx, matchID)
		if err != nil {
			return nil, err
		}

		rsvps, err := NextRsvps(*match, userID, response, utils.Now())
		if err != nil {
			return nil, err
		}

		if err := s.putRsvps(ctx, matchID, match.Rsvps, rsvps); err != nil {
			if errors.Is(err, models.ErrConcurrentUpdate) {
				continue
			}
			return nil, err
		}

		match.Rsvps = rsvps
		log.Printf("📅 RSVP %s by %s on match %s", response, userID, matchID)
		s.notifyGroup(match.GroupID)
		return match, nil
	}
	return nil, fmt.Errorf("rsvp on match %s: %w", matchID, models.ErrConcurrentUpdate)
}

func (s *MatchService) putRsvps(ctx context.Context, matchID string, prev, next []models.Rsvp) error {
	nextAttr, err := attributevalue.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to marshal rsvps: %w", err)
	}
	prevAttr, err := attributevalue.Marshal(prev)
	if err != nil {
		return fmt.Errorf("failed to marshal rsvps: %w", err)
	}

	updateExpression := "SET rsvps = :rsvps"
	conditionExpression := "attribute_not_exists(rsvps) OR rsvps = :prevRsvps"
	expressionValues := map[string]types.AttributeValue{
		":rsvps":     nextAttr,
		":prevRsvps": prevAttr,
	}
	if _, err := s.Dynamo.UpdateItemWithCondition(ctx, models.MatchTable, updateExpression, conditionExpression, s.matchKey(matchID), expressionValues, nil); err != nil {
		if errors.Is(err, models.ErrConcurrentUpdate) {
			return err
		}
		return fmt.Errorf("failed to store rsvp: %w", err)
	}
	return nil
}

// CheckIn applies one check-in intent. Idempotent: a repeat check-in
// succeeds without writing anything.
func (s *MatchService) CheckIn(ctx context.Context, matchID, userID string) (*models.Match, error) {
	for attempt := 0; attempt < writeRetryLimit; attempt++ {
		match, err := s.getMatch(ctx, matchID)
		if err != nil {
			return nil, err
		}

		checkIns, changed, err := NextCheckIns(*match, userID, utils.Now())
		if err != nil {
			return nil, err
		}
		if !changed {
			return match, nil
		}

		if err := s.putCheckIns(ctx, matchID, match.CheckIns, checkIns); err != nil {
			if errors.Is(err, models.ErrConcurrentUpdate) {
				continue
			}
			return nil, err
		}

		match.CheckIns = checkIns
		log.Printf("✅ %s checked in to match %s", userID, matchID)
		s.notifyGroup(match.GroupID)
		return match, nil
	}
	return nil, fmt.Errorf("check-in on match %s: %w", matchID, models.ErrConcurrentUpdate)
}

func (s *MatchService) putCheckIns(ctx context.Context, matchID string, prev, next []models.CheckIn) error {
	nextAttr, err := attributevalue.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to marshal check-ins: %w", err)
	}
	prevAttr, err := attributevalue.Marshal(prev)
	if err != nil {
		return fmt.Errorf("failed to marshal check-ins: %w", err)
	}

	updateExpression := "SET checkIns = :checkIns"
	conditionExpression := "attribute_not_exists(checkIns) OR checkIns = :prevCheckIns"
	expressionValues := map[string]types.AttributeValue{
		":checkIns":     nextAttr,
		":prevCheckIns": prevAttr,
	}
	if _, err := s.Dynamo.UpdateItemWithCondition(ctx, models.MatchTable, updateExpression, conditionExpression, s.matchKey(matchID), expressionValues, nil); err != nil {
		if errors.Is(err, models.ErrConcurrentUpdate) {
			return err
		}
		return fmt.Errorf("failed to store check-in: %w", err)
	}
	return nil
}

// CloseMatch sets closedAt. Creator or group admin only. A closed match
// blocks new RSVPs and check-ins even before the activity sweep flips
// isActive on the store side.
func (s *MatchService) CloseMatch(ctx context.Context, matchID, userID string) error {
	match, err := s.getMatch(ctx, matchID)
	if err != nil {
		return err
	}

	if match.CreatedBy != userID && !s.isGroupAdmin(ctx, userID, match.GroupID) {
		return models.ErrPermissionDenied
	}
	if match.ClosedAt != "" {
		return nil // already closed
	}

	updateExpression := "SET closedAt = :closedAt, isActive = :inactive"
	expressionValues := map[string]types.AttributeValue{
		":closedAt": &types.AttributeValueMemberS{Value: utils.Now()},
		":inactive": &types.AttributeValueMemberBOOL{Value: false},
	}
	if _, err := s.Dynamo.UpdateItem(ctx, models.MatchTable, updateExpression, s.matchKey(matchID), expressionValues, nil); err != nil {
		return fmt.Errorf("failed to close match: %w", err)
	}

	log.Printf("🔒 Match %s closed by %s", matchID, userID)
	s.notifyGroup(match.GroupID)
	return nil
}

// MatchesByGroup fetches all matches for a group via the group GSI
func (s *MatchService) MatchesByGroup(ctx context.Context, groupID string) ([]models.Match, error) {
	keyCondition := "groupId = :groupId"
	expressionValues := map[string]types.AttributeValue{
		":groupId": &types.AttributeValueMemberS{Value: groupID},
	}

	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.MatchTable, models.MatchGroupIndex, keyCondition, expressionValues, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches: %w", err)
	}

	var matches []models.Match
	if err := attributevalue.UnmarshalListOfMaps(items, &matches); err != nil {
		return nil, fmt.Errorf("failed to parse matches: %w", err)
	}
	return matches, nil
}

func (s *MatchService) getMatch(ctx context.Context, matchID string) (*models.Match, error) {
	item, err := s.Dynamo.GetItem(ctx, models.MatchTable, s.matchKey(matchID))
	if err != nil {
		return nil, fmt.Errorf("match %s: %w", matchID, models.ErrNotFound)
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(item, &match); err != nil {
		return nil, fmt.Errorf("failed to parse match: %w", err)
	}
	return &match, nil
}

func (s *MatchService) matchKey(matchID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"matchId": &types.AttributeValueMemberS{Value: matchID},
	}
}

func (s *MatchService) notifyGroup(groupID string) {
	if s.Notify != nil {
		s.Notify.NotifyGroupChanged(groupID)
	}
}

func (s *MatchService) isGroupAdmin(ctx context.Context, userID, groupID string) bool {
	key := map[string]types.AttributeValue{
		"userId":  &types.AttributeValueMemberS{Value: userID},
		"groupId": &types.AttributeValueMemberS{Value: groupID},
	}
	item, err := s.Dynamo.GetItem(ctx, models.MembershipTable, key)
	if err != nil {
		return false
	}

	var membership models.Membership
	if err := attributevalue.UnmarshalMap(item, &membership); err != nil {
		return false
	}
	return membership.Role == models.RoleAdmin
}
