package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/truongduyng/futkui-sub001/models"
	"github.com/truongduyng/futkui-sub001/utils"
)

// PollService handles poll creation and the voting state machine
type PollService struct {
	Dynamo GraphStore
	Notify GroupNotifier
}

// PollClosed reports whether voting has ended, evaluated at read time:
// either the author set closedAt or expiresAt has passed.
func PollClosed(p models.Poll, now time.Time) bool {
	if p.ClosedAt != "" {
		return true
	}
	if p.ExpiresAt == "" {
		return false
	}
	expires, err := utils.ParseTimestamp(p.ExpiresAt)
	if err != nil {
		return false
	}
	return !now.Before(expires)
}

// NextVotes computes the vote set after one castVote by userID.
// Single-choice: any prior vote by the user is replaced with one vote for
// optionID. Multi-choice: optionID toggles in the user's vote set. The
// result never holds two votes for the same (user, option).
func NextVotes(p models.Poll, userID, optionID, castAt string, now time.Time) ([]models.Vote, error) {
	if PollClosed(p, now) {
		return nil, models.ErrPollClosed
	}

	known := false
	for _, opt := range p.Options {
		if opt.OptionID == optionID {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("option %s: %w", optionID, models.ErrNotFound)
	}

	next := make([]models.Vote, 0, len(p.Votes)+1)
	removed := false
	for _, v := range p.Votes {
		if v.UserID != userID {
			next = append(next, v)
			continue
		}
		if p.AllowMultiple {
			if v.OptionID == optionID {
				removed = true // toggle off
				continue
			}
			next = append(next, v)
		}
		// single-choice: drop every prior vote by this user
	}

	if !removed {
		next = append(next, models.Vote{
			PollID:   p.PollID,
			UserID:   userID,
			OptionID: optionID,
			CastAt:   castAt,
		})
	}

	return next, nil
}

// VoteCounts folds the vote set into per-option tallies. Options with no
// votes are present with a zero count so the client can render them.
func VoteCounts(p models.Poll) map[string]int {
	counts := make(map[string]int, len(p.Options))
	for _, opt := range p.Options {
		counts[opt.OptionID] = 0
	}
	for _, v := range p.Votes {
		counts[v.OptionID]++
	}
	return counts
}

// ProjectPoll derives the viewer's voting state for a poll at read time.
func ProjectPoll(p models.Poll, viewerID string, now time.Time) *models.PollView {
	view := &models.PollView{Counts: VoteCounts(p)}

	for _, v := range p.Votes {
		if v.UserID == viewerID {
			view.OptionIDs = append(view.OptionIDs, v.OptionID)
		}
	}

	switch {
	case PollClosed(p, now):
		view.State = models.VoteStateClosed
	case len(view.OptionIDs) == 0:
		view.State = models.VoteStateUnvoted
	case p.AllowMultiple:
		view.State = models.VoteStateVotedMultiple
	default:
		view.State = models.VoteStateVotedSingle
	}

	return view
}

// CreatePoll stores a new poll and the message that carries it
func (s *PollService) CreatePoll(ctx context.Context, groupID, userID, question string, optionTexts []string, allowMultiple bool, expiresAt string) (*models.Poll, error) {
	options := make([]models.PollOption, 0, len(optionTexts))
	for _, text := range optionTexts {
		options = append(options, models.PollOption{OptionID: uuid.New().String(), Text: text})
	}

	poll := models.Poll{
		PollID:        uuid.New().String(),
		MessageID:     uuid.New().String(),
		GroupID:       groupID,
		Question:      question,
		Options:       options,
		AllowMultiple: allowMultiple,
		ExpiresAt:     expiresAt,
		CreatedBy:     userID,
		CreatedAt:     utils.Now(),
	}

	if err := s.Dynamo.PutItem(ctx, models.PollTable, poll); err != nil {
		return nil, fmt.Errorf("failed to store poll: %w", err)
	}

	message := models.Message{
		GroupID:   groupID,
		CreatedAt: poll.CreatedAt,
		MessageID: poll.MessageID,
		SenderID:  userID,
		Content:   question,
		PollID:    &poll.PollID,
	}
	if err := s.Dynamo.PutItem(ctx, models.MessageTable, message); err != nil {
		return nil, fmt.Errorf("failed to store poll message: %w", err)
	}

	log.Printf("✅ Poll %s created in group %s", poll.PollID, groupID)
	s.notifyGroup(groupID)
	return &poll, nil
}

// CastVote applies one castVote intent. Validation runs against the current
// record before anything is written, so a vote on a closed poll never
// reaches the store. The write is conditional on the vote set being
// unchanged since the read; losing that race re-reads and recomputes, so a
// concurrent member's vote is folded in instead of overwritten.
func (s *PollService) CastVote(ctx context.Context, pollID, userID, optionID string) (*models.Poll, error) {
	for attempt := 0; attempt < writeRetryLimit; attempt++ {
		poll, err := s.getPoll(ctx, pollID)
		if err != nil {
			return nil, err
		}

		votes, err := NextVotes(*poll, userID, optionID, utils.Now(), time.Now())
		if err != nil {
			return nil, err
		}

		if err := s.putVotes(ctx, pollID, poll.Votes, votes); err != nil {
			if errors.Is(err, models.ErrConcurrentUpdate) {
				continue
			}
			return nil, err
		}

		poll.Votes = votes
		log.Printf("🗳️ Vote by %s on poll %s recorded", userID, pollID)
		s.notifyGroup(poll.GroupID)
		return poll, nil
	}
	return nil, fmt.Errorf("vote on poll %s: %w", pollID, models.ErrConcurrentUpdate)
}

// ClosePoll sets closedAt. Author-only: no further votes are accepted
// afterwards regardless of expiresAt.
func (s *PollService) ClosePoll(ctx context.Context, pollID, userID string) error {
	poll, err := s.getPoll(ctx, pollID)
	if err != nil {
		return err
	}
	if poll.CreatedBy != userID {
		return models.ErrPermissionDenied
	}
	if poll.ClosedAt != "" {
		return nil // already closed
	}

	key := map[string]types.AttributeValue{
		"pollId": &types.AttributeValueMemberS{Value: pollID},
	}
	updateExpression := "SET closedAt = :closedAt"
	expressionValues := map[string]types.AttributeValue{
		":closedAt": &types.AttributeValueMemberS{Value: utils.Now()},
	}
	if _, err := s.Dynamo.UpdateItem(ctx, models.PollTable, updateExpression, key, expressionValues, nil); err != nil {
		return fmt.Errorf("failed to close poll: %w", err)
	}

	log.Printf("🔒 Poll %s closed by %s", pollID, userID)
	s.notifyGroup(poll.GroupID)
	return nil
}

// AddOption appends a new option to the end of the fixed option order.
// Existing options are never reordered. Rejected once the poll is closed.
// Conditional like putVotes: two concurrent appends both survive.
func (s *PollService) AddOption(ctx context.Context, pollID, userID, text string) (*models.Poll, error) {
	for attempt := 0; attempt < writeRetryLimit; attempt++ {
		poll, err := s.getPoll(ctx, pollID)
		if err != nil {
			return nil, err
		}
		if PollClosed(*poll, time.Now()) {
			return nil, models.ErrPollClosed
		}

		option := models.PollOption{OptionID: uuid.New().String(), Text: text}
		options := append(append([]models.PollOption{}, poll.Options...), option)

		optionsAttr, err := attributevalue.Marshal(options)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal options: %w", err)
		}
		prevAttr, err := attributevalue.Marshal(poll.Options)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal options: %w", err)
		}

		key := map[string]types.AttributeValue{
			"pollId": &types.AttributeValueMemberS{Value: pollID},
		}
		updateExpression := "SET #options = :options"
		conditionExpression := "#options = :prevOptions"
		expressionValues := map[string]types.AttributeValue{
			":options":     optionsAttr,
			":prevOptions": prevAttr,
		}
		expressionNames := map[string]string{
			"#options": "options", // ✅ Prevents DynamoDB reserved word conflicts
		}
		if _, err := s.Dynamo.UpdateItemWithCondition(ctx, models.PollTable, updateExpression, conditionExpression, key, expressionValues, expressionNames); err != nil {
			if errors.Is(err, models.ErrConcurrentUpdate) {
				continue
			}
			return nil, fmt.Errorf("failed to add option: %w", err)
		}

		poll.Options = options
		log.Printf("➕ Option added to poll %s by %s", pollID, userID)
		s.notifyGroup(poll.GroupID)
		return poll, nil
	}
	return nil, fmt.Errorf("add option to poll %s: %w", pollID, models.ErrConcurrentUpdate)
}

func (s *PollService) getPoll(ctx context.Context, pollID string) (*models.Poll, error) {
	key := map[string]types.AttributeValue{
		"pollId": &types.AttributeValueMemberS{Value: pollID},
	}
	item, err := s.Dynamo.GetItem(ctx, models.PollTable, key)
	if err != nil {
		return nil, fmt.Errorf("poll %s: %w", pollID, models.ErrNotFound)
	}

	var poll models.Poll
	if err := attributevalue.UnmarshalMap(item, &poll); err != nil {
		return nil, fmt.Errorf("failed to parse poll: %w", err)
	}
	return &poll, nil
}

func (s *PollService) putVotes(ctx context.Context, pollID string, prev, next []models.Vote) error {
	nextAttr, err := attributevalue.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to marshal votes: %w", err)
	}
	prevAttr, err := attributevalue.Marshal(prev)
	if err != nil {
		return fmt.Errorf("failed to marshal votes: %w", err)
	}

	key := map[string]types.AttributeValue{
		"pollId": &types.AttributeValueMemberS{Value: pollID},
	}
	updateExpression := "SET votes = :votes"
	conditionExpression := "attribute_not_exists(votes) OR votes = :prevVotes"
	expressionValues := map[string]types.AttributeValue{
		":votes":     nextAttr,
		":prevVotes": prevAttr,
	}
	if _, err := s.Dynamo.UpdateItemWithCondition(ctx, models.PollTable, updateExpression, conditionExpression, key, expressionValues, nil); err != nil {
		if errors.Is(err, models.ErrConcurrentUpdate) {
			return err
		}
		return fmt.Errorf("failed to store votes: %w", err)
	}
	return nil
}

func (s *PollService) notifyGroup(groupID string) {
	if s.Notify != nil {
		s.Notify.NotifyGroupChanged(groupID)
	}
}
