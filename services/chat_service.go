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

// ChatService handles sending messages and reactions
type ChatService struct {
	Dynamo GraphStore
	Notify GroupNotifier
}

// SendMessage stores a new group message. Content and image are both
// optional but not both empty.
func (s *ChatService) SendMessage(ctx context.Context, groupID, senderID, content string, imageKey *string) (*models.Message, error) {
	if content == "" && imageKey == nil {
		return nil, fmt.Errorf("message needs content or an image: %w", models.ErrMalformedRecord)
	}

	message := models.Message{
		GroupID:   groupID,
		CreatedAt: utils.Now(),
		MessageID: uuid.New().String(),
		SenderID:  senderID,
		Content:   content,
		ImageKey:  imageKey,
	}

	if err := s.Dynamo.PutItem(ctx, models.MessageTable, message); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	log.Printf("📩 Message %s stored in group %s", message.MessageID, groupID)
	s.notifyGroup(groupID)
	return &message, nil
}

// ReactToMessage sets the user's emoji reaction on a message. One reaction
// per (message, user): a different emoji replaces the current one, the same
// emoji sent again removes it. Creating the reactions map is conditional so
// two first reactions racing do not overwrite each other; the loser re-reads
// and lands a per-user set instead.
func (s *ChatService) ReactToMessage(ctx context.Context, groupID, createdAt, userID, emoji string) error {
	key := map[string]types.AttributeValue{
		"groupId":   &types.AttributeValueMemberS{Value: groupID},
		"createdAt": &types.AttributeValueMemberS{Value: createdAt},
	}

	for attempt := 0; attempt < writeRetryLimit; attempt++ {
		item, err := s.Dynamo.GetItem(ctx, models.MessageTable, key)
		if err != nil {
			return fmt.Errorf("message at %s: %w", createdAt, models.ErrNotFound)
		}

		var message models.Message
		if err := attributevalue.UnmarshalMap(item, &message); err != nil {
			return fmt.Errorf("failed to parse message: %w", err)
		}

		current, hasReaction := message.Reactions[userID]
		remove := hasReaction && current == emoji
		_, mapExists := item["reactions"]

		if !remove && !mapExists {
			updateExpression := "SET reactions = :reactions"
			conditionExpression := "attribute_not_exists(reactions)"
			reactionsAttr, err := attributevalue.Marshal(map[string]string{userID: emoji})
			if err != nil {
				return fmt.Errorf("failed to marshal reactions: %w", err)
			}
			expressionValues := map[string]types.AttributeValue{
				":reactions": reactionsAttr,
			}
			if _, err := s.Dynamo.UpdateItemWithCondition(ctx, models.MessageTable, updateExpression, conditionExpression, key, expressionValues, nil); err != nil {
				if errors.Is(err, models.ErrConcurrentUpdate) {
					continue // someone else created the map, re-read and set our entry
				}
				return fmt.Errorf("failed to update reaction: %w", err)
			}
		} else {
			var updateExpression string
			expressionValues := map[string]types.AttributeValue{}
			expressionNames := map[string]string{
				"#userId": userID,
			}
			if remove {
				updateExpression = "REMOVE reactions.#userId"
			} else {
				updateExpression = "SET reactions.#userId = :emoji"
				expressionValues[":emoji"] = &types.AttributeValueMemberS{Value: emoji}
			}
			if _, err := s.Dynamo.UpdateItem(ctx, models.MessageTable, updateExpression, key, expressionValues, expressionNames); err != nil {
				return fmt.Errorf("failed to update reaction: %w", err)
			}
		}

		log.Printf("💖 Reaction by %s on message at %s updated", userID, createdAt)
		s.notifyGroup(groupID)
		return nil
	}
	return fmt.Errorf("reaction on message at %s: %w", createdAt, models.ErrConcurrentUpdate)
}

func (s *ChatService) notifyGroup(groupID string) {
	if s.Notify != nil {
		s.Notify.NotifyGroupChanged(groupID)
	}
}
