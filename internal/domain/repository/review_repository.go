package repository

import (
	"context"

	"kitnetia/internal/domain/entity"
)

type ReviewRepository interface {
	// Create fails with DuplicateRequest when the reviewer already reviewed the property.
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	ListByProperty(ctx context.Context, propertyID string) ([]*entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, review *entity.Review) error
}
