package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"kitnetia/internal/domain/entity"
	"kitnetia/internal/domain/repository"
	"kitnetia/pkg/errors"
	"kitnetia/pkg/logger"
)

type firestoreFavoriteRepository struct {
	client *firestore.Client
}

func NewFirestoreFavoriteRepository(client *firestore.Client) repository.FavoriteRepository {
	return &firestoreFavoriteRepository{client: client}
}

func favoriteID(userID, propertyID string) string {
	return fmt.Sprintf("%s_%s", userID, propertyID)
}

func (r *firestoreFavoriteRepository) Add(ctx context.Context, userID, propertyID string) (*entity.Favorite, error) {
	favorite := entity.Favorite{
		ID:         favoriteID(userID, propertyID),
		UserID:     userID,
		PropertyID: propertyID,
		CreatedAt:  time.Now(),
	}

	_, err := r.client.Collection(favoritesCollection).Doc(favorite.ID).Create(ctx, favorite)
	if err != nil {
		if IsAlreadyExists(err) {
			return r.get(ctx, favorite.ID)
		}
		return nil, errors.Persistence("Failed to add favorite", err)
	}

	logger.Debug("Added property %s to favorites for user %s", propertyID, userID)
	return &favorite, nil
}

func (r *firestoreFavoriteRepository) Remove(ctx context.Context, userID, propertyID string) error {
	exists, err := r.Exists(ctx, userID, propertyID)
	if err != nil {
		return err
	}
	if !exists {
		return errors.NotFound("Favorite", nil)
	}

	_, err = r.client.Collection(favoritesCollection).Doc(favoriteID(userID, propertyID)).Delete(ctx)
	if err != nil {
		return errors.Persistence("Failed to remove favorite", err)
	}

	return nil
}

func (r *firestoreFavoriteRepository) Exists(ctx context.Context, userID, propertyID string) (bool, error) {
	doc, err := r.client.Collection(favoritesCollection).Doc(favoriteID(userID, propertyID)).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, errors.Internal("Failed to check favorite", err)
	}

	return doc.Exists(), nil
}

func (r *firestoreFavoriteRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Favorite, error) {
	iter := r.client.Collection(favoritesCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var favorites []*entity.Favorite
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list favorites", err)
		}

		var favorite entity.Favorite
		if err := doc.DataTo(&favorite); err != nil {
			logger.Warn("Skipping unreadable favorite %s: %v", doc.Ref.ID, err)
			continue
		}
		favorites = append(favorites, &favorite)
	}

	return favorites, nil
}

func (r *firestoreFavoriteRepository) get(ctx context.Context, id string) (*entity.Favorite, error) {
	doc, err := r.client.Collection(favoritesCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to get favorite", err)
	}

	var favorite entity.Favorite
	if err := doc.DataTo(&favorite); err != nil {
		return nil, errors.Internal("Failed to parse favorite data", err)
	}
	return &favorite, nil
}
