package repository

import (
	"context"

	"kitnetia/internal/domain/entity"
)

type PropertyViewRepository interface {
	Create(ctx context.Context, view *entity.PropertyView) error
	ListByProperty(ctx context.Context, propertyID string) ([]*entity.PropertyView, error)
}
