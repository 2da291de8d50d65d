package repository

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	propertiesCollection    = "properties"
	leadsCollection         = "chatbot_conversations"
	visitRequestsCollection = "visit_requests"
	visitLocksCollection    = "visit_request_locks"
	conversationsCollection = "conversations"
	messagesCollection      = "messages"
	reviewsCollection       = "reviews"
	favoritesCollection     = "favorites"
	propertyViewsCollection = "property_views"
)

func IsNotFound(err error) bool {
	return err != nil && status.Code(err) == codes.NotFound
}

func IsAlreadyExists(err error) bool {
	return err != nil && status.Code(err) == codes.AlreadyExists
}
