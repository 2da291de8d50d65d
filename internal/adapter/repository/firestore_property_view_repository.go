package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"kitnetia/internal/domain/entity"
	"kitnetia/internal/domain/repository"
	"kitnetia/pkg/errors"
)

type firestorePropertyViewRepository struct {
	client *firestore.Client
}

func NewFirestorePropertyViewRepository(client *firestore.Client) repository.PropertyViewRepository {
	return &firestorePropertyViewRepository{client: client}
}

func (r *firestorePropertyViewRepository) Create(ctx context.Context, view *entity.PropertyView) error {
	if view.ID == "" {
		view.ID = uuid.New().String()
	}
	if view.ViewedAt.IsZero() {
		view.ViewedAt = time.Now()
	}

	_, err := r.client.Collection(propertyViewsCollection).Doc(view.ID).Set(ctx, view)
	if err != nil {
		return errors.Persistence("Failed to record property view", err)
	}
	return nil
}

func (r *firestorePropertyViewRepository) ListByProperty(ctx context.Context, propertyID string) ([]*entity.PropertyView, error) {
	iter := r.client.Collection(propertyViewsCollection).
		Where("propertyId", "==", propertyID).
		OrderBy("viewedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var views []*entity.PropertyView
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list property views", err)
		}

		var view entity.PropertyView
		if err := doc.DataTo(&view); err != nil {
			return nil, errors.Internal("Failed to parse property view", err)
		}
		views = append(views, &view)
	}

	return views, nil
}
