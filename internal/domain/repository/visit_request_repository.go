package repository

import (
	"context"

	"kitnetia/internal/domain/entity"
)

type VisitRequestRepository interface {
	// Create fails with DuplicateRequest when the visitor already has a
	// pending request for the property. The check and insert are atomic.
	Create(ctx context.Context, request *entity.VisitRequest) error
	GetByID(ctx context.Context, id string) (*entity.VisitRequest, error)
	// Transition moves the request from one status to the next, failing with
	// InvalidTransition if the stored status is no longer from.
	Transition(ctx context.Context, request *entity.VisitRequest, from entity.VisitStatus) error
	// Delete removes a pending request and releases its uniqueness lock.
	Delete(ctx context.Context, request *entity.VisitRequest) error
	ListByVisitor(ctx context.Context, visitorID string) ([]*entity.VisitRequest, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.VisitRequest, error)
}
