package entity

import "time"

// Conversation is a direct-messaging thread between a visitor and the owner of
// one property. There is at most one per (property, visitor, owner).
type Conversation struct {
	ID            string    `json:"id" firestore:"id"`
	PropertyID    string    `json:"property_id" firestore:"propertyId"`
	VisitorID     string    `json:"visitor_id" firestore:"visitorId"`
	OwnerID       string    `json:"owner_id" firestore:"ownerId"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time `json:"updated_at" firestore:"updatedAt"`
	LastMessageAt time.Time `json:"last_message_at" firestore:"lastMessageAt"`
}

func (c *Conversation) HasParticipant(userID string) bool {
	return userID != "" && (c.VisitorID == userID || c.OwnerID == userID)
}

// OtherParticipant returns the counterpart of userID in the conversation.
func (c *Conversation) OtherParticipant(userID string) string {
	if c.VisitorID == userID {
		return c.OwnerID
	}
	return c.VisitorID
}

type ConversationSummary struct {
	Conversation
	PropertyTitle     string   `json:"property_title,omitempty"`
	LastMessage       *Message `json:"last_message,omitempty"`
	UnreadCount       int      `json:"unread_count"`
	CounterpartOnline bool     `json:"counterpart_online"`
}
