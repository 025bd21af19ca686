package services

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/truongduyng/futkui-sub001/models"
)

// memberListStore records which index a membership query hit
type memberListStore struct {
	stubGraphStore

	indexName   string
	memberships []models.Membership
}

func (f *memberListStore) QueryItemsWithIndex(_ context.Context, _, indexName, _ string, _ map[string]types.AttributeValue, _ map[string]string, _ int32) ([]map[string]types.AttributeValue, error) {
	f.indexName = indexName

	var items []map[string]types.AttributeValue
	for _, m := range f.memberships {
		item, err := attributevalue.MarshalMap(m)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func TestMembersOfQueriesGroupIndex(t *testing.T) {
	store := &memberListStore{memberships: []models.Membership{
		{UserID: "alice", GroupID: "g1", Role: models.RoleAdmin, JoinedAt: "t0"},
		{UserID: "bob", GroupID: "g1", Role: models.RoleMember, JoinedAt: "t1"},
	}}
	svc := &GroupService{Dynamo: store}

	members, err := svc.MembersOf(context.Background(), "g1")
	if err != nil {
		t.Fatalf("MembersOf: %v", err)
	}

	if store.indexName != models.MembershipGroupIndex {
		t.Fatalf("queried index %q, want %q", store.indexName, models.MembershipGroupIndex)
	}
	if len(members) != 2 {
		t.Fatalf("got %d members, want 2", len(members))
	}
	if members[0].UserID != "alice" || members[0].Role != models.RoleAdmin {
		t.Fatalf("first member = %+v, want alice as admin", members[0])
	}
}
