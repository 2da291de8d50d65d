package usecase

import (
	"context"
	"strings"
	"time"

	"kitnetia/internal/domain/entity"
	"kitnetia/internal/domain/repository"
	"kitnetia/internal/domain/service"
	"kitnetia/pkg/errors"
	"kitnetia/pkg/logger"
)

const maxMessageLength = 2000

type MessagingUseCase struct {
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	propertyRepo     repository.PropertyRepository
	publisher        service.RealtimePublisher
}

func NewMessagingUseCase(
	conversationRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
	propertyRepo repository.PropertyRepository,
	publisher service.RealtimePublisher,
) *MessagingUseCase {
	return &MessagingUseCase{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		propertyRepo:     propertyRepo,
		publisher:        publisher,
	}
}

// StartConversation returns the visitor's conversation with the property owner, creating it on first contact.
func (uc *MessagingUseCase) StartConversation(ctx context.Context, visitorID, propertyID string) (*entity.Conversation, error) {
	if propertyID == "" {
		return nil, errors.Validation("property_id is required")
	}

	property, err := uc.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property.OwnerID == visitorID {
		return nil, errors.BadRequest("You cannot start a conversation about your own property", nil)
	}

	existing, err := uc.conversationRepo.FindByParticipants(ctx, propertyID, visitorID, property.OwnerID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, errors.CodeNotFound) {
		return nil, err
	}

	conversation := &entity.Conversation{
		PropertyID: propertyID,
		VisitorID:  visitorID,
		OwnerID:    property.OwnerID,
	}

	err = uc.conversationRepo.Create(ctx, conversation)
	if errors.Is(err, errors.CodeDuplicateRequest) {
		// lost a race with a concurrent create; the stored one wins
		return uc.conversationRepo.FindByParticipants(ctx, propertyID, visitorID, property.OwnerID)
	}
	if err != nil {
		return nil, err
	}

	return conversation, nil
}

func (uc *MessagingUseCase) ListConversations(ctx context.Context, userID string) ([]*entity.ConversationSummary, error) {
	conversations, err := uc.conversationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	titles := make(map[string]string)
	summaries := make([]*entity.ConversationSummary, 0, len(conversations))
	for _, conversation := range conversations {
		summary := &entity.ConversationSummary{Conversation: *conversation}

		title, ok := titles[conversation.PropertyID]
		if !ok {
			if property, err := uc.propertyRepo.GetByID(ctx, conversation.PropertyID); err == nil {
				title = property.Title
			}
			titles[conversation.PropertyID] = title
		}
		summary.PropertyTitle = title

		if summary.LastMessage, err = uc.messageRepo.Last(ctx, conversation.ID); err != nil {
			return nil, err
		}
		if summary.UnreadCount, err = uc.messageRepo.CountUnread(ctx, conversation.ID, userID); err != nil {
			return nil, err
		}
		if uc.publisher != nil {
			summary.CounterpartOnline = uc.publisher.IsOnline(conversation.OtherParticipant(userID))
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func (uc *MessagingUseCase) participantConversation(ctx context.Context, conversationID, userID string) (*entity.Conversation, error) {
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant of this conversation", nil)
	}
	return conversation, nil
}

// ListMessages returns the conversation oldest first and marks the other party's messages as read.
func (uc *MessagingUseCase) ListMessages(ctx context.Context, userID, conversationID string) ([]*entity.Message, error) {
	conversation, err := uc.participantConversation(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}

	messages, err := uc.messageRepo.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.markRead(ctx, conversation, userID); err != nil {
		logger.Warn("Failed to mark conversation %s read for %s: %v", conversationID, userID, err)
	}

	return messages, nil
}

func (uc *MessagingUseCase) SendMessage(ctx context.Context, userID, conversationID, content string) (*entity.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.Validation("content is required")
	}
	if len([]rune(content)) > maxMessageLength {
		return nil, errors.Validation("content must be at most 2000 characters")
	}

	conversation, err := uc.participantConversation(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}

	message := &entity.Message{
		ConversationID: conversationID,
		SenderID:       userID,
		Content:        content,
		CreatedAt:      time.Now(),
	}
	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	if err := uc.conversationRepo.Touch(ctx, conversationID, message.CreatedAt); err != nil {
		logger.Warn("Failed to update last message time of conversation %s: %v", conversationID, err)
	}

	if uc.publisher != nil {
		uc.publisher.Publish(conversation.OtherParticipant(userID), service.EventNewMessage, message)
	}

	return message, nil
}

func (uc *MessagingUseCase) MarkRead(ctx context.Context, conversationID, userID string) (int, error) {
	conversation, err := uc.participantConversation(ctx, conversationID, userID)
	if err != nil {
		return 0, err
	}
	return uc.markRead(ctx, conversation, userID)
}

func (uc *MessagingUseCase) markRead(ctx context.Context, conversation *entity.Conversation, readerID string) (int, error) {
	count, err := uc.messageRepo.MarkRead(ctx, conversation.ID, readerID, time.Now())
	if err != nil || count == 0 {
		return count, err
	}

	if uc.publisher != nil {
		uc.publisher.Publish(conversation.OtherParticipant(readerID), service.EventMessagesRead, map[string]interface{}{
			"conversation_id": conversation.ID,
			"reader_id":       readerID,
			"count":           count,
		})
	}
	return count, nil
}

// Counterpart returns the other participant, for relaying socket events.
func (uc *MessagingUseCase) Counterpart(ctx context.Context, conversationID, userID string) (string, error) {
	conversation, err := uc.participantConversation(ctx, conversationID, userID)
	if err != nil {
		return "", err
	}
	return conversation.OtherParticipant(userID), nil
}
