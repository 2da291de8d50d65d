package entity

import "time"

type Message struct {
	ID             string     `json:"id" firestore:"id"`
	ConversationID string     `json:"conversation_id" firestore:"conversationId"`
	SenderID       string     `json:"sender_id" firestore:"senderId"`
	Content        string     `json:"content" firestore:"content"`
	ReadAt         *time.Time `json:"read_at" firestore:"readAt"`
	CreatedAt      time.Time  `json:"created_at" firestore:"createdAt"`
}

// IsUnreadFor reports whether userID has yet to read a message sent by someone else.
func (m *Message) IsUnreadFor(userID string) bool {
	return m.SenderID != userID && m.ReadAt == nil
}
