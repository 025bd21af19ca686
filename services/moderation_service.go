package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/truongduyng/futkui-sub001/models"
	"github.com/truongduyng/futkui-sub001/utils"
)

// moderationState is the locally persisted moderation overlay: reported
// message ids keyed by "userId|groupId" and blocked user ids keyed by
// blocker. The struct is immutable once published; mutations build a copy
// and swap the pointer, so an overlay pass reading mid-write always sees a
// consistent set.
type moderationState struct {
	Reports map[string][]string `json:"reports"`
	Blocks  map[string][]string `json:"blocks"`
}

// ModerationService post-filters composed feeds by the user's report and
// block sets. Reporting also writes a Report record to the shared graph,
// exactly once per (reporter, message); blocking maintains the shared Block
// pair but filtering is purely read-side.
type ModerationService struct {
	Dynamo GraphStore

	mu    sync.Mutex
	path  string
	state *moderationState
}

func NewModerationService(dynamo GraphStore, statePath string) (*ModerationService, error) {
	s := &ModerationService{
		Dynamo: dynamo,
		path:   statePath,
		state:  &moderationState{Reports: map[string][]string{}, Blocks: map[string][]string{}},
	}

	data, err := os.ReadFile(statePath)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read moderation state: %w", err)
	}
	if err := json.Unmarshal(data, s.state); err != nil {
		return nil, fmt.Errorf("failed to parse moderation state: %w", err)
	}
	if s.state.Reports == nil {
		s.state.Reports = map[string][]string{}
	}
	if s.state.Blocks == nil {
		s.state.Blocks = map[string][]string{}
	}
	return s, nil
}

// ReportMessage handles a one-time report intent: the shared-graph Report
// record is written first, then the message id joins the reporter's local
// set. A repeat report by the same user for the same message is rejected,
// and nothing is added locally when the store write fails.
func (s *ModerationService) ReportMessage(ctx context.Context, userID, groupID, messageID, reason string) error {
	if s.HasReported(userID, groupID, messageID) {
		return models.ErrAlreadyReported
	}

	report := models.Report{
		ReportID:   uuid.New().String(),
		GroupID:    groupID,
		MessageID:  messageID,
		ReporterID: userID,
		Reason:     reason,
		CreatedAt:  utils.Now(),
	}
	if err := s.Dynamo.PutItem(ctx, models.ReportTable, report); err != nil {
		return fmt.Errorf("failed to store report: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := reportKey(userID, groupID)
	if contains(s.state.Reports[key], messageID) {
		return models.ErrAlreadyReported
	}

	next := s.copyState()
	next.Reports[key] = append(next.Reports[key], messageID)
	if err := s.persist(next); err != nil {
		return err
	}
	s.state = next

	log.Printf("🚩 Message %s reported by %s in group %s", messageID, userID, groupID)
	return nil
}

// BlockUser adds a one-directional block pair to the shared graph and the
// blocker's local cache. Idempotent.
func (s *ModerationService) BlockUser(ctx context.Context, userID, blockedID string) error {
	if s.IsBlocked(userID, blockedID) {
		return nil
	}

	block := models.Block{
		BlockerID: userID,
		BlockedID: blockedID,
		CreatedAt: utils.Now(),
	}
	if err := s.Dynamo.PutItem(ctx, models.BlockTable, block); err != nil {
		return fmt.Errorf("failed to store block: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if contains(s.state.Blocks[userID], blockedID) {
		return nil
	}

	next := s.copyState()
	next.Blocks[userID] = append(next.Blocks[userID], blockedID)
	if err := s.persist(next); err != nil {
		return err
	}
	s.state = next

	log.Printf("🚫 User %s blocked %s", userID, blockedID)
	return nil
}

// UnblockUser removes the block pair from the shared graph and local cache
func (s *ModerationService) UnblockUser(ctx context.Context, userID, blockedID string) error {
	key := map[string]types.AttributeValue{
		"blockerId": &types.AttributeValueMemberS{Value: userID},
		"blockedId": &types.AttributeValueMemberS{Value: blockedID},
	}
	if err := s.Dynamo.DeleteItem(ctx, models.BlockTable, key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.copyState()
	kept := next.Blocks[userID][:0]
	for _, id := range next.Blocks[userID] {
		if id != blockedID {
			kept = append(kept, id)
		}
	}
	next.Blocks[userID] = kept
	if err := s.persist(next); err != nil {
		return err
	}
	s.state = next
	return nil
}

// HasReported reports whether the user already reported the message
func (s *ModerationService) HasReported(userID, groupID, messageID string) bool {
	s.mu.Lock()
	st := s.state
	s.mu.Unlock()
	return contains(st.Reports[reportKey(userID, groupID)], messageID)
}

// IsBlocked reports whether blockedID is in the user's block set
func (s *ModerationService) IsBlocked(userID, blockedID string) bool {
	s.mu.Lock()
	st := s.state
	s.mu.Unlock()
	return contains(st.Blocks[userID], blockedID)
}

// FilterFeed is the last stage before presentation: it drops messages the
// viewer reported in this group and messages authored by anyone the viewer
// blocked. Subtractive only; matches and other viewers are untouched.
func (s *ModerationService) FilterFeed(items []models.FeedItemView, userID, groupID string) []models.FeedItemView {
	s.mu.Lock()
	st := s.state
	s.mu.Unlock()

	reported := st.Reports[reportKey(userID, groupID)]
	blocked := st.Blocks[userID]
	if len(reported) == 0 && len(blocked) == 0 {
		return items
	}

	kept := make([]models.FeedItemView, 0, len(items))
	for _, item := range items {
		if item.Kind == models.FeedItemMessage {
			if contains(reported, item.ID) || contains(blocked, item.Message.SenderID) {
				continue
			}
		}
		kept = append(kept, item)
	}
	return kept
}

// copyState deep-copies the published state; callers hold s.mu.
func (s *ModerationService) copyState() *moderationState {
	next := &moderationState{
		Reports: make(map[string][]string, len(s.state.Reports)),
		Blocks:  make(map[string][]string, len(s.state.Blocks)),
	}
	for k, v := range s.state.Reports {
		next.Reports[k] = append([]string{}, v...)
	}
	for k, v := range s.state.Blocks {
		next.Blocks[k] = append([]string{}, v...)
	}
	return next
}

// persist writes the state file via a temp file and rename so a crash
// mid-write never corrupts the persisted sets.
func (s *ModerationService) persist(st *moderationState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal moderation state: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write moderation state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace moderation state: %w", err)
	}
	return nil
}

func reportKey(userID, groupID string) string {
	return userID + "|" + groupID
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
