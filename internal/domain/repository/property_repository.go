package repository

import (
	"context"

	"kitnetia/internal/domain/entity"
)

type PropertyRepository interface {
	Create(ctx context.Context, property *entity.Property) error
	GetByID(ctx context.Context, id string) (*entity.Property, error)
	Update(ctx context.Context, property *entity.Property) error
	Delete(ctx context.Context, id string) error
	// ListActive returns active listings matching the filter, newest first.
	ListActive(ctx context.Context, filter entity.PropertyFilter) ([]*entity.Property, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Property, error)
}
