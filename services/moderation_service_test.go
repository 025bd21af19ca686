package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/truongduyng/futkui-sub001/models"
)

// fakeGraphStore records writes so tests can assert the shared-graph side
// of report/block without DynamoDB.
type fakeGraphStore struct {
	stubGraphStore

	puts    []string // table names, in order
	deletes []string
	failPut error
}

func (f *fakeGraphStore) PutItem(_ context.Context, tableName string, _ interface{}) error {
	if f.failPut != nil {
		return f.failPut
	}
	f.puts = append(f.puts, tableName)
	return nil
}

func (f *fakeGraphStore) DeleteItem(_ context.Context, tableName string, _ map[string]types.AttributeValue) error {
	f.deletes = append(f.deletes, tableName)
	return nil
}

func newTestModeration(t *testing.T) (*ModerationService, *fakeGraphStore, string) {
	t.Helper()
	store := &fakeGraphStore{}
	path := filepath.Join(t.TempDir(), "moderation_state.json")
	svc, err := NewModerationService(store, path)
	if err != nil {
		t.Fatalf("NewModerationService: %v", err)
	}
	return svc, store, path
}

func TestReportMessageOnce(t *testing.T) {
	svc, store, _ := newTestModeration(t)
	ctx := context.Background()

	if err := svc.ReportMessage(ctx, "bob", "g1", "m5", "spam"); err != nil {
		t.Fatalf("first report: %v", err)
	}
	if !svc.HasReported("bob", "g1", "m5") {
		t.Fatal("report set missing m5")
	}

	// A second report by the same user for the same message is rejected and
	// writes nothing more to the shared graph
	err := svc.ReportMessage(ctx, "bob", "g1", "m5", "spam again")
	if !errors.Is(err, models.ErrAlreadyReported) {
		t.Fatalf("second report err = %v, want ErrAlreadyReported", err)
	}
	if len(store.puts) != 1 {
		t.Fatalf("shared graph got %d report writes, want 1", len(store.puts))
	}

	// A different user may still report the same message
	if err := svc.ReportMessage(ctx, "carol", "g1", "m5", "spam"); err != nil {
		t.Fatalf("report by other user: %v", err)
	}
}

func TestReportMessageFailedStoreWriteLeavesLocalStateUntouched(t *testing.T) {
	svc, store, _ := newTestModeration(t)
	store.failPut = errors.New("transient network failure")

	if err := svc.ReportMessage(context.Background(), "bob", "g1", "m5", ""); err == nil {
		t.Fatal("report succeeded despite store failure")
	}
	if svc.HasReported("bob", "g1", "m5") {
		t.Fatal("local report set mutated although the store write failed")
	}

	// Retry after the failure clears works
	store.failPut = nil
	if err := svc.ReportMessage(context.Background(), "bob", "g1", "m5", ""); err != nil {
		t.Fatalf("retry: %v", err)
	}
}

func TestReportStateSurvivesRestart(t *testing.T) {
	svc, store, path := newTestModeration(t)
	if err := svc.ReportMessage(context.Background(), "bob", "g1", "m5", ""); err != nil {
		t.Fatalf("report: %v", err)
	}
	if err := svc.BlockUser(context.Background(), "bob", "eve"); err != nil {
		t.Fatalf("block: %v", err)
	}

	reloaded, err := NewModerationService(store, path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.HasReported("bob", "g1", "m5") {
		t.Fatal("report set lost across restart")
	}
	if !reloaded.IsBlocked("bob", "eve") {
		t.Fatal("block set lost across restart")
	}

	// The guard still holds after restart
	if err := reloaded.ReportMessage(context.Background(), "bob", "g1", "m5", ""); !errors.Is(err, models.ErrAlreadyReported) {
		t.Fatalf("err = %v, want ErrAlreadyReported", err)
	}
}

func TestBlockUnblock(t *testing.T) {
	svc, store, _ := newTestModeration(t)
	ctx := context.Background()

	if err := svc.BlockUser(ctx, "bob", "eve"); err != nil {
		t.Fatalf("block: %v", err)
	}
	// Idempotent: repeat block writes nothing more
	if err := svc.BlockUser(ctx, "bob", "eve"); err != nil {
		t.Fatalf("repeat block: %v", err)
	}
	if len(store.puts) != 1 {
		t.Fatalf("shared graph got %d block writes, want 1", len(store.puts))
	}

	if err := svc.UnblockUser(ctx, "bob", "eve"); err != nil {
		t.Fatalf("unblock: %v", err)
	}
	if svc.IsBlocked("bob", "eve") {
		t.Fatal("still blocked after unblock")
	}
}

func TestFilterFeed(t *testing.T) {
	svc, _, _ := newTestModeration(t)
	ctx := context.Background()

	if err := svc.ReportMessage(ctx, "bob", "g1", "m5", ""); err != nil {
		t.Fatalf("report: %v", err)
	}
	if err := svc.BlockUser(ctx, "bob", "eve"); err != nil {
		t.Fatalf("block: %v", err)
	}

	m1 := msg("m1", "g1", "100", "alice")
	m5 := msg("m5", "g1", "200", "alice")
	m6 := msg("m6", "g1", "300", "eve")
	items := []models.FeedItemView{
		{FeedItem: models.FeedItem{Kind: models.FeedItemMessage, ID: "m1", Message: &m1}},
		{FeedItem: models.FeedItem{Kind: models.FeedItemMessage, ID: "m5", Message: &m5}},
		{FeedItem: models.FeedItem{Kind: models.FeedItemMessage, ID: "m6", Message: &m6}},
		{FeedItem: models.FeedItem{Kind: models.FeedItemMatch, ID: "a1"}},
	}

	filtered := svc.FilterFeed(items, "bob", "g1")

	var ids []string
	for _, item := range filtered {
		ids = append(ids, item.ID)
	}
	if len(ids) != 2 || ids[0] != "m1" || ids[1] != "a1" {
		t.Fatalf("filtered = %v, want [m1 a1]", ids)
	}

	// Other viewers are untouched
	if got := svc.FilterFeed(items, "carol", "g1"); len(got) != len(items) {
		t.Fatalf("carol's feed filtered to %d items, want %d", len(got), len(items))
	}

	// The report is scoped to its group
	if got := svc.FilterFeed(items, "bob", "g2"); len(got) != 3 {
		t.Fatalf("g2 feed filtered to %d items, want 3 (only the block applies)", len(got))
	}
}
