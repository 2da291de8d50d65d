package usecase

import (
	"context"

	"kitnetia/internal/domain/entity"
	"kitnetia/internal/domain/repository"
	"kitnetia/pkg/errors"
	"kitnetia/pkg/logger"
)

type FavoriteUseCase struct {
	favoriteRepo repository.FavoriteRepository
	propertyRepo repository.PropertyRepository
}

func NewFavoriteUseCase(favoriteRepo repository.FavoriteRepository, propertyRepo repository.PropertyRepository) *FavoriteUseCase {
	return &FavoriteUseCase{
		favoriteRepo: favoriteRepo,
		propertyRepo: propertyRepo,
	}
}

func (uc *FavoriteUseCase) AddFavorite(ctx context.Context, userID, propertyID string) (*entity.Favorite, error) {
	if propertyID == "" {
		return nil, errors.Validation("property_id is required")
	}
	if _, err := uc.propertyRepo.GetByID(ctx, propertyID); err != nil {
		return nil, err
	}
	return uc.favoriteRepo.Add(ctx, userID, propertyID)
}

func (uc *FavoriteUseCase) RemoveFavorite(ctx context.Context, userID, propertyID string) error {
	return uc.favoriteRepo.Remove(ctx, userID, propertyID)
}

func (uc *FavoriteUseCase) IsFavorite(ctx context.Context, userID, propertyID string) (bool, error) {
	return uc.favoriteRepo.Exists(ctx, userID, propertyID)
}

// ListFavorites joins each favorite with its property. Favorites of deleted properties are skipped.
func (uc *FavoriteUseCase) ListFavorites(ctx context.Context, userID string) ([]*entity.FavoriteWithProperty, error) {
	favorites, err := uc.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*entity.FavoriteWithProperty, 0, len(favorites))
	for _, fav := range favorites {
		property, err := uc.propertyRepo.GetByID(ctx, fav.PropertyID)
		if errors.Is(err, errors.CodeNotFound) {
			continue
		}
		if err != nil {
			logger.Warn("Failed to load favorite property %s: %v", fav.PropertyID, err)
			continue
		}
		result = append(result, &entity.FavoriteWithProperty{Favorite: *fav, Property: property})
	}
	return result, nil
}
