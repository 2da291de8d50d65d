package repository

import (
	"context"

	"kitnetia/internal/domain/entity"
)

type FavoriteRepository interface {
	// Add is idempotent and returns the stored favorite.
	Add(ctx context.Context, userID, propertyID string) (*entity.Favorite, error)
	Remove(ctx context.Context, userID, propertyID string) error
	Exists(ctx context.Context, userID, propertyID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Favorite, error)
}
