package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"kitnetia/internal/domain/entity"
	"kitnetia/internal/domain/repository"
	"kitnetia/pkg/errors"
)

type firestoreConversationRepository struct {
	client *firestore.Client
}

func NewFirestoreConversationRepository(client *firestore.Client) repository.ConversationRepository {
	return &firestoreConversationRepository{client: client}
}

// conversationID is deterministic so the datastore itself rejects a second
// conversation for the same triple.
func conversationID(propertyID, visitorID, ownerID string) string {
	return fmt.Sprintf("%s_%s_%s", propertyID, visitorID, ownerID)
}

func (r *firestoreConversationRepository) Create(ctx context.Context, conversation *entity.Conversation) error {
	conversation.ID = conversationID(conversation.PropertyID, conversation.VisitorID, conversation.OwnerID)

	now := time.Now()
	conversation.CreatedAt = now
	conversation.UpdatedAt = now
	conversation.LastMessageAt = now

	_, err := r.client.Collection(conversationsCollection).Doc(conversation.ID).Create(ctx, conversation)
	if err != nil {
		if IsAlreadyExists(err) {
			return errors.DuplicateRequest("Conversation already exists")
		}
		return errors.Persistence("Failed to create conversation", err)
	}

	return nil
}

func (r *firestoreConversationRepository) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	doc, err := r.client.Collection(conversationsCollection).Doc(id).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NotFound("Conversation", err)
		}
		return nil, errors.Internal("Failed to get conversation", err)
	}

	var conversation entity.Conversation
	if err := doc.DataTo(&conversation); err != nil {
		return nil, errors.Internal("Failed to parse conversation data", err)
	}

	return &conversation, nil
}

func (r *firestoreConversationRepository) FindByParticipants(ctx context.Context, propertyID, visitorID, ownerID string) (*entity.Conversation, error) {
	return r.GetByID(ctx, conversationID(propertyID, visitorID, ownerID))
}

func (r *firestoreConversationRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	seen := make(map[string]bool)
	var conversations []*entity.Conversation

	for _, field := range []string{"visitorId", "ownerId"} {
		iter := r.client.Collection(conversationsCollection).Where(field, "==", userID).Documents(ctx)
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				iter.Stop()
				return nil, errors.Internal("Failed to list conversations", err)
			}

			var conversation entity.Conversation
			if err := doc.DataTo(&conversation); err != nil {
				iter.Stop()
				return nil, errors.Internal("Failed to parse conversation data", err)
			}
			if !seen[conversation.ID] {
				seen[conversation.ID] = true
				conversations = append(conversations, &conversation)
			}
		}
		iter.Stop()
	}

	sort.SliceStable(conversations, func(i, j int) bool {
		return conversations[i].LastMessageAt.After(conversations[j].LastMessageAt)
	})

	return conversations, nil
}

func (r *firestoreConversationRepository) Touch(ctx context.Context, id string, at time.Time) error {
	_, err := r.client.Collection(conversationsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "lastMessageAt", Value: at},
		{Path: "updatedAt", Value: at},
	})
	if err != nil {
		return errors.Persistence("Failed to update conversation", err)
	}
	return nil
}

type firestoreMessageRepository struct {
	client *firestore.Client
}

func NewFirestoreMessageRepository(client *firestore.Client) repository.MessageRepository {
	return &firestoreMessageRepository{client: client}
}

func (r *firestoreMessageRepository) messages(conversationID string) *firestore.CollectionRef {
	return r.client.Collection(conversationsCollection).Doc(conversationID).Collection(messagesCollection)
}

func (r *firestoreMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	_, err := r.messages(message.ConversationID).Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Persistence("Failed to send message", err)
	}
	return nil
}

func (r *firestoreMessageRepository) ListByConversation(ctx context.Context, conversationID string) ([]*entity.Message, error) {
	return r.collect(r.messages(conversationID).OrderBy("createdAt", firestore.Asc).Documents(ctx))
}

func (r *firestoreMessageRepository) Last(ctx context.Context, conversationID string) (*entity.Message, error) {
	messages, err := r.collect(r.messages(conversationID).OrderBy("createdAt", firestore.Desc).Limit(1).Documents(ctx))
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, nil
	}
	return messages[0], nil
}

func (r *firestoreMessageRepository) CountUnread(ctx context.Context, conversationID, userID string) (int, error) {
	unread, err := r.unread(ctx, conversationID, userID)
	if err != nil {
		return 0, err
	}
	return len(unread), nil
}

func (r *firestoreMessageRepository) MarkRead(ctx context.Context, conversationID, readerID string, at time.Time) (int, error) {
	unread, err := r.unread(ctx, conversationID, readerID)
	if err != nil {
		return 0, err
	}

	for _, message := range unread {
		_, err := r.messages(conversationID).Doc(message.ID).Update(ctx, []firestore.Update{
			{Path: "readAt", Value: at},
		})
		if err != nil {
			return 0, errors.Persistence("Failed to mark messages as read", err)
		}
		message.ReadAt = &at
	}

	return len(unread), nil
}

func (r *firestoreMessageRepository) unread(ctx context.Context, conversationID, userID string) ([]*entity.Message, error) {
	all, err := r.collect(r.messages(conversationID).Where("readAt", "==", nil).Documents(ctx))
	if err != nil {
		return nil, err
	}

	unread := make([]*entity.Message, 0, len(all))
	for _, m := range all {
		if m.IsUnreadFor(userID) {
			unread = append(unread, m)
		}
	}
	return unread, nil
}

func (r *firestoreMessageRepository) collect(iter *firestore.DocumentIterator) ([]*entity.Message, error) {
	defer iter.Stop()

	var messages []*entity.Message
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, errors.Internal("Failed to parse message data", err)
		}
		messages = append(messages, &message)
	}
	return messages, nil
}
