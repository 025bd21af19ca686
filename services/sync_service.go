package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/truongduyng/futkui-sub001/models"
)

// GroupNotifier is implemented by the snapshot push layer. Mutating services
// call it after every accepted write so subscribers get a fresh snapshot.
type GroupNotifier interface {
	NotifyGroupChanged(groupID string)
}

// SyncService materializes whole group snapshots (never diffs) and guards
// subscribers against stale deliveries via per-group generations.
type SyncService struct {
	Dynamo GraphStore
	Match  *MatchService

	mu          sync.Mutex
	builds      map[string]*sync.Mutex // serializes BuildSnapshot per group
	generations map[string]int64       // last issued per group
	applied     map[string]int64       // last delivered per group
}

func NewSyncService(dynamo GraphStore, match *MatchService) *SyncService {
	return &SyncService{
		Dynamo:      dynamo,
		Match:       match,
		builds:      make(map[string]*sync.Mutex),
		generations: make(map[string]int64),
		applied:     make(map[string]int64),
	}
}

// BuildSnapshot assembles the complete materialized result for one group's
// subscription window: the latest `window` messages (queried newest-first,
// then reversed so the oldest comes first), their polls, and all group
// matches. HasMore is the window heuristic: a result that exactly fills the
// requested window is treated as "more may exist"; at the true end of
// history this costs one extra fetch that comes back identical and clears
// the flag.
//
// Builds are serialized per group: the generation is allocated while the
// build lock is held, so a higher generation always carries reads at least
// as fresh as any lower one and ShouldDeliver can safely drop the lower.
func (s *SyncService) BuildSnapshot(ctx context.Context, groupID string, window int) (*models.Snapshot, error) {
	lock := s.buildLock(groupID)
	lock.Lock()
	defer lock.Unlock()

	keyCondition := "groupId = :groupId"
	expressionValues := map[string]types.AttributeValue{
		":groupId": &types.AttributeValueMemberS{Value: groupID},
	}

	items, err := s.Dynamo.QueryItemsWithOptions(ctx, models.MessageTable, keyCondition, expressionValues, nil, int32(window), true)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages for group %s: %w", groupID, err)
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}

	// Reverse so the oldest of the window comes first
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	polls := make(map[string]models.Poll)
	for _, m := range messages {
		if m.PollID == nil {
			continue
		}
		poll, err := s.getPoll(ctx, *m.PollID)
		if err != nil {
			log.Printf("⚠️ Skipping poll %s for message %s: %v", *m.PollID, m.MessageID, err)
			continue
		}
		polls[poll.PollID] = *poll
	}

	matches, err := s.Match.MatchesByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	return &models.Snapshot{
		GroupID:    groupID,
		Generation: s.nextGeneration(groupID),
		Window:     window,
		HasMore:    len(messages) >= window,
		Messages:   messages,
		Matches:    matches,
		Polls:      polls,
	}, nil
}

// ShouldDeliver is the staleness guard: snapshots are delivered in
// generation order and one older than the last delivered for its group is
// discarded silently, so a subscriber never sees state regress (a vote
// disappearing and reappearing).
func (s *SyncService) ShouldDeliver(snap *models.Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.Generation <= s.applied[snap.GroupID] {
		log.Printf("⏭️ Discarding stale snapshot for group %s (generation %d <= %d)", snap.GroupID, snap.Generation, s.applied[snap.GroupID])
		return false
	}
	s.applied[snap.GroupID] = snap.Generation
	return true
}

func (s *SyncService) nextGeneration(groupID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[groupID]++
	return s.generations[groupID]
}

func (s *SyncService) buildLock(groupID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.builds[groupID]
	if !ok {
		lock = &sync.Mutex{}
		s.builds[groupID] = lock
	}
	return lock
}

func (s *SyncService) getPoll(ctx context.Context, pollID string) (*models.Poll, error) {
	key := map[string]types.AttributeValue{
		"pollId": &types.AttributeValueMemberS{Value: pollID},
	}
	item, err := s.Dynamo.GetItem(ctx, models.PollTable, key)
	if err != nil {
		return nil, err
	}

	var poll models.Poll
	if err := attributevalue.UnmarshalMap(item, &poll); err != nil {
		return nil, err
	}
	return &poll, nil
}
