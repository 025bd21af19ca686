package services

import (
	"testing"

	"github.com/truongduyng/futkui-sub001/models"
)

func TestCountUnreadCursorBoundary(t *testing.T) {
	// Group G has m1@t=100 and m2@t=200; cursor at 150 leaves exactly m2 unread
	memberships := []models.Membership{
		{UserID: "bob", GroupID: "G", LastReadMessageAt: "150"},
	}
	messagesByGroup := map[string][]models.Message{
		"G": {
			msg("m1", "G", "100", "alice"),
			msg("m2", "G", "200", "alice"),
		},
	}

	badge := CountUnread(memberships, messagesByGroup)

	if badge.PerGroup["G"] != 1 {
		t.Fatalf("unread for G = %d, want 1", badge.PerGroup["G"])
	}
	if badge.Total != 1 {
		t.Fatalf("total = %d, want 1", badge.Total)
	}

	// After markGroupRead the cursor sits past m2: unread drops to 0
	memberships[0].LastReadMessageAt = AdvanceCursor(memberships[0].LastReadMessageAt, "250")
	badge = CountUnread(memberships, messagesByGroup)
	if badge.PerGroup["G"] != 0 || badge.Total != 0 {
		t.Fatalf("after mark read: per-group %d total %d, want 0/0", badge.PerGroup["G"], badge.Total)
	}
}

func TestCountUnreadEmptyCursorMeansAllUnread(t *testing.T) {
	memberships := []models.Membership{
		{UserID: "bob", GroupID: "G"},
	}
	messagesByGroup := map[string][]models.Message{
		"G": {
			msg("m1", "G", "100", "alice"),
			msg("m2", "G", "200", "alice"),
		},
	}

	badge := CountUnread(memberships, messagesByGroup)
	if badge.PerGroup["G"] != 2 {
		t.Fatalf("unread = %d, want 2", badge.PerGroup["G"])
	}
}

func TestCountUnreadTotalCountsMessagesAcrossGroups(t *testing.T) {
	// Policy: the badge totals distinct unread messages, not groups with
	// unread messages
	memberships := []models.Membership{
		{UserID: "bob", GroupID: "G1", LastReadMessageAt: "100"},
		{UserID: "bob", GroupID: "G2"},
		{UserID: "bob", GroupID: "G3", LastReadMessageAt: "900"},
	}
	messagesByGroup := map[string][]models.Message{
		"G1": {
			msg("m1", "G1", "150", "alice"),
			msg("m2", "G1", "200", "alice"),
		},
		"G2": {
			msg("m3", "G2", "100", "carol"),
		},
		"G3": {
			msg("m4", "G3", "500", "dave"),
		},
	}

	badge := CountUnread(memberships, messagesByGroup)

	if badge.PerGroup["G1"] != 2 || badge.PerGroup["G2"] != 1 || badge.PerGroup["G3"] != 0 {
		t.Fatalf("per-group = %v, want G1:2 G2:1 G3:0", badge.PerGroup)
	}
	if badge.Total != 3 {
		t.Fatalf("total = %d, want 3 (messages, not groups)", badge.Total)
	}
}

func TestAdvanceCursorMonotonic(t *testing.T) {
	tests := []struct {
		name    string
		current string
		now     string
		want    string
	}{
		{name: "advances forward", current: "100", now: "200", want: "200"},
		{name: "never moves backward", current: "300", now: "200", want: "300"},
		{name: "idempotent", current: "200", now: "200", want: "200"},
		{name: "first mark", current: "", now: "200", want: "200"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AdvanceCursor(tt.current, tt.now); got != tt.want {
				t.Fatalf("AdvanceCursor(%q, %q) = %q, want %q", tt.current, tt.now, got, tt.want)
			}
		})
	}
}
