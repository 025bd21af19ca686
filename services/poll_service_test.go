package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/truongduyng/futkui-sub001/models"
)

func singleChoicePoll() models.Poll {
	return models.Poll{
		PollID:  "p1",
		GroupID: "g1",
		Options: []models.PollOption{
			{OptionID: "A", Text: "Saturday"},
			{OptionID: "B", Text: "Sunday"},
		},
		CreatedBy: "alice",
	}
}

func multiChoicePoll() models.Poll {
	p := singleChoicePoll()
	p.AllowMultiple = true
	return p
}

func votesFor(votes []models.Vote, userID string) []string {
	var options []string
	for _, v := range votes {
		if v.UserID == userID {
			options = append(options, v.OptionID)
		}
	}
	return options
}

func TestNextVotesSingleChoiceReplaces(t *testing.T) {
	now := fixedNow(t)
	poll := singleChoicePoll()

	// User casts A then B: final vote set for the user is {B} only
	votes, err := NextVotes(poll, "bob", "A", "t1", now)
	if err != nil {
		t.Fatalf("cast A: %v", err)
	}
	poll.Votes = votes

	votes, err = NextVotes(poll, "bob", "B", "t2", now)
	if err != nil {
		t.Fatalf("cast B: %v", err)
	}

	got := votesFor(votes, "bob")
	if len(got) != 1 || got[0] != "B" {
		t.Fatalf("vote set = %v, want [B]", got)
	}
}

func TestNextVotesSingleChoiceIdempotent(t *testing.T) {
	now := fixedNow(t)

	tests := []struct {
		name     string
		sequence []string
		want     string
	}{
		{name: "single cast", sequence: []string{"A"}, want: "A"},
		{name: "repeat same option", sequence: []string{"A", "A", "A"}, want: "A"},
		{name: "alternating", sequence: []string{"A", "B", "A", "B"}, want: "B"},
		{name: "settle on first", sequence: []string{"B", "A", "B", "A", "A"}, want: "A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poll := singleChoicePoll()
			for i, optionID := range tt.sequence {
				votes, err := NextVotes(poll, "bob", optionID, "t", now)
				if err != nil {
					t.Fatalf("cast %d (%s): %v", i, optionID, err)
				}
				poll.Votes = votes
			}

			got := votesFor(poll.Votes, "bob")
			if len(got) != 1 || got[0] != tt.want {
				t.Fatalf("vote set = %v, want [%s]", got, tt.want)
			}
		})
	}
}

func TestNextVotesMultiChoiceToggleParity(t *testing.T) {
	now := fixedNow(t)

	// Each option's presence equals the parity of how often it was cast
	tests := []struct {
		name     string
		sequence []string
		want     map[string]bool
	}{
		{name: "one each", sequence: []string{"A", "B"}, want: map[string]bool{"A": true, "B": true}},
		{name: "toggle off", sequence: []string{"A", "A"}, want: map[string]bool{}},
		{name: "odd count stays", sequence: []string{"A", "A", "A"}, want: map[string]bool{"A": true}},
		{name: "mixed parity", sequence: []string{"A", "B", "A", "B", "B"}, want: map[string]bool{"B": true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poll := multiChoicePoll()
			for i, optionID := range tt.sequence {
				votes, err := NextVotes(poll, "bob", optionID, "t", now)
				if err != nil {
					t.Fatalf("cast %d (%s): %v", i, optionID, err)
				}
				poll.Votes = votes
			}

			got := map[string]bool{}
			for _, optionID := range votesFor(poll.Votes, "bob") {
				if got[optionID] {
					t.Fatalf("duplicate (user, option) vote for %s", optionID)
				}
				got[optionID] = true
			}
			if len(got) != len(tt.want) {
				t.Fatalf("vote set = %v, want %v", got, tt.want)
			}
			for optionID := range tt.want {
				if !got[optionID] {
					t.Errorf("missing expected vote for %s", optionID)
				}
			}
		})
	}
}

func TestNextVotesPreservesOtherUsers(t *testing.T) {
	now := fixedNow(t)
	poll := singleChoicePoll()
	poll.Votes = []models.Vote{{PollID: "p1", UserID: "carol", OptionID: "A", CastAt: "t0"}}

	votes, err := NextVotes(poll, "bob", "B", "t1", now)
	if err != nil {
		t.Fatalf("cast B: %v", err)
	}

	if got := votesFor(votes, "carol"); len(got) != 1 || got[0] != "A" {
		t.Fatalf("carol's vote = %v, want [A]", got)
	}
}

func TestNextVotesRejectedWhenClosed(t *testing.T) {
	now := fixedNow(t)

	tests := []struct {
		name string
		poll func() models.Poll
	}{
		{
			name: "closedAt set",
			poll: func() models.Poll {
				p := singleChoicePoll()
				p.ClosedAt = "2026-05-01T00:00:00.000000000Z"
				return p
			},
		},
		{
			name: "expiresAt passed",
			poll: func() models.Poll {
				p := singleChoicePoll()
				p.ExpiresAt = "2026-05-01T00:00:00.000000000Z"
				return p
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NextVotes(tt.poll(), "bob", "A", "t1", now); !errors.Is(err, models.ErrPollClosed) {
				t.Fatalf("err = %v, want ErrPollClosed", err)
			}
		})
	}
}

func TestNextVotesUnknownOption(t *testing.T) {
	if _, err := NextVotes(singleChoicePoll(), "bob", "Z", "t1", fixedNow(t)); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPollClosedFutureExpiry(t *testing.T) {
	p := singleChoicePoll()
	p.ExpiresAt = "2026-07-01T00:00:00.000000000Z"
	if PollClosed(p, fixedNow(t)) {
		t.Fatal("poll with future expiry reported closed")
	}
}

func TestVoteCounts(t *testing.T) {
	poll := multiChoicePoll()
	poll.Votes = []models.Vote{
		{PollID: "p1", UserID: "bob", OptionID: "A"},
		{PollID: "p1", UserID: "carol", OptionID: "A"},
		{PollID: "p1", UserID: "carol", OptionID: "B"},
	}

	counts := VoteCounts(poll)
	if counts["A"] != 2 || counts["B"] != 1 {
		t.Fatalf("counts = %v, want A:2 B:1", counts)
	}
}

// contestedPollStore backs CastVote with an in-memory poll and rejects a
// conditional write whose expected votes no longer match, like DynamoDB
// does. beforeWrite runs once before the first write so a test can slip a
// competing vote in between read and write.
type contestedPollStore struct {
	stubGraphStore

	poll        models.Poll
	beforeWrite func()
	conflicts   int
}

func (f *contestedPollStore) GetItem(_ context.Context, _ string, _ map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	return attributevalue.MarshalMap(f.poll)
}

func (f *contestedPollStore) UpdateItemWithCondition(_ context.Context, _, _, _ string, _, expressionValues map[string]types.AttributeValue, _ map[string]string) (map[string]types.AttributeValue, error) {
	if f.beforeWrite != nil {
		hook := f.beforeWrite
		f.beforeWrite = nil
		hook()
	}

	var prev []models.Vote
	if err := attributevalue.Unmarshal(expressionValues[":prevVotes"], &prev); err != nil {
		return nil, err
	}
	if !reflect.DeepEqual(prev, f.poll.Votes) {
		f.conflicts++
		return nil, models.ErrConcurrentUpdate
	}

	var next []models.Vote
	if err := attributevalue.Unmarshal(expressionValues[":votes"], &next); err != nil {
		return nil, err
	}
	f.poll.Votes = next
	return map[string]types.AttributeValue{}, nil
}

func TestCastVoteRetryPreservesConcurrentVote(t *testing.T) {
	store := &contestedPollStore{poll: singleChoicePoll()}
	store.beforeWrite = func() {
		store.poll.Votes = []models.Vote{{PollID: "p1", UserID: "carol", OptionID: "A", CastAt: "t0"}}
	}
	svc := &PollService{Dynamo: store}

	// carol's vote lands between bob's read and write: the first write is
	// rejected and the retry folds both votes together
	poll, err := svc.CastVote(context.Background(), "p1", "bob", "B")
	if err != nil {
		t.Fatalf("CastVote: %v", err)
	}
	if store.conflicts != 1 {
		t.Fatalf("conflicts = %d, want 1", store.conflicts)
	}
	if got := votesFor(poll.Votes, "carol"); len(got) != 1 || got[0] != "A" {
		t.Fatalf("carol's vote = %v, want [A]", got)
	}
	if got := votesFor(poll.Votes, "bob"); len(got) != 1 || got[0] != "B" {
		t.Fatalf("bob's vote = %v, want [B]", got)
	}
}

func TestProjectPollStates(t *testing.T) {
	now := fixedNow(t)

	tests := []struct {
		name   string
		poll   func() models.Poll
		viewer string
		want   string
	}{
		{name: "unvoted", poll: singleChoicePoll, viewer: "bob", want: models.VoteStateUnvoted},
		{
			name: "voted single",
			poll: func() models.Poll {
				p := singleChoicePoll()
				p.Votes = []models.Vote{{PollID: "p1", UserID: "bob", OptionID: "A"}}
				return p
			},
			viewer: "bob",
			want:   models.VoteStateVotedSingle,
		},
		{
			name: "voted multiple",
			poll: func() models.Poll {
				p := multiChoicePoll()
				p.Votes = []models.Vote{
					{PollID: "p1", UserID: "bob", OptionID: "A"},
					{PollID: "p1", UserID: "bob", OptionID: "B"},
				}
				return p
			},
			viewer: "bob",
			want:   models.VoteStateVotedMultiple,
		},
		{
			name: "closed wins over votes",
			poll: func() models.Poll {
				p := singleChoicePoll()
				p.ClosedAt = "2026-05-01T00:00:00.000000000Z"
				p.Votes = []models.Vote{{PollID: "p1", UserID: "bob", OptionID: "A"}}
				return p
			},
			viewer: "bob",
			want:   models.VoteStateClosed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := ProjectPoll(tt.poll(), tt.viewer, now)
			if view.State != tt.want {
				t.Fatalf("state = %s, want %s", view.State, tt.want)
			}
		})
	}
}
