package repository

import (
	"context"
	"time"

	"kitnetia/internal/domain/entity"
)

type ConversationRepository interface {
	// Create fails with DuplicateRequest when a conversation already exists
	// for the same (property, visitor, owner).
	Create(ctx context.Context, conversation *entity.Conversation) error
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	FindByParticipants(ctx context.Context, propertyID, visitorID, ownerID string) (*entity.Conversation, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Conversation, error)
	Touch(ctx context.Context, id string, at time.Time) error
}

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	ListByConversation(ctx context.Context, conversationID string) ([]*entity.Message, error)
	Last(ctx context.Context, conversationID string) (*entity.Message, error)
	CountUnread(ctx context.Context, conversationID, userID string) (int, error)
	// MarkRead stamps read_at on every unread message not sent by readerID.
	MarkRead(ctx context.Context, conversationID, readerID string, at time.Time) (int, error)
}
