package service

import (
	"context"

	"kitnetia/internal/domain/entity"
)

// LeadNotifier tells the owner about a freshly qualified lead.
type LeadNotifier interface {
	NotifyLead(ctx context.Context, property *entity.Property, lead *entity.Lead) error
}

// RealtimePublisher pushes events to a connected user.
type RealtimePublisher interface {
	Publish(userID string, eventType string, data interface{})
	IsOnline(userID string) bool
}

// Throttle reports whether key may perform one more unit of a rate-limited action.
type Throttle interface {
	Allow(key string) bool
}

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// Realtime event types.
const (
	EventNewMessage    = "new_message"
	EventMessagesRead  = "messages_read"
	EventTyping        = "typing"
	EventVisitRequest  = "visit_request"
	EventQualifiedLead = "qualified_lead"
)
