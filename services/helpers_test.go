package services

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func fixedNow(t *testing.T) time.Time {
	t.Helper()
	now, err := time.Parse(time.RFC3339, "2026-06-01T00:00:00Z")
	if err != nil {
		t.Fatalf("parse fixed now: %v", err)
	}
	return now
}

// stubGraphStore satisfies GraphStore with no-ops. Test fakes embed it and
// override only the calls they care about.
type stubGraphStore struct{}

func (stubGraphStore) QueryItems(ctx context.Context, tableName, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	return nil, nil
}

func (stubGraphStore) QueryItemsWithOptions(ctx context.Context, tableName, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32, latestFirst bool) ([]map[string]types.AttributeValue, error) {
	return nil, nil
}

func (stubGraphStore) QueryItemsWithIndex(ctx context.Context, tableName, indexName, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	return nil, nil
}

func (stubGraphStore) PutItem(ctx context.Context, tableName string, item interface{}) error {
	return nil
}

func (stubGraphStore) GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	return map[string]types.AttributeValue{}, nil
}

func (stubGraphStore) UpdateItem(ctx context.Context, tableName, updateExpression string, key, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string) (map[string]types.AttributeValue, error) {
	return map[string]types.AttributeValue{}, nil
}

func (stubGraphStore) UpdateItemWithCondition(ctx context.Context, tableName, updateExpression, conditionExpression string, key, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string) (map[string]types.AttributeValue, error) {
	return map[string]types.AttributeValue{}, nil
}

func (stubGraphStore) DeleteItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) error {
	return nil
}
