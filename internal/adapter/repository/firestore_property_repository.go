package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"kitnetia/internal/domain/entity"
	"kitnetia/internal/domain/repository"
	"kitnetia/pkg/errors"
	"kitnetia/pkg/logger"
)

type firestorePropertyRepository struct {
	client *firestore.Client
}

func NewFirestorePropertyRepository(client *firestore.Client) repository.PropertyRepository {
	return &firestorePropertyRepository{
		client: client,
	}
}

func (r *firestorePropertyRepository) Create(ctx context.Context, property *entity.Property) error {
	if property.ID == "" {
		property.ID = uuid.New().String()
	}

	now := time.Now()
	property.CreatedAt = now
	property.UpdatedAt = now

	_, err := r.client.Collection(propertiesCollection).Doc(property.ID).Set(ctx, property)
	if err != nil {
		return errors.Persistence("Failed to create property", err)
	}

	return nil
}

func (r *firestorePropertyRepository) GetByID(ctx context.Context, id string) (*entity.Property, error) {
	doc, err := r.client.Collection(propertiesCollection).Doc(id).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NotFound("Property", err)
		}
		return nil, errors.Internal("Failed to get property", err)
	}

	var property entity.Property
	if err := doc.DataTo(&property); err != nil {
		return nil, errors.Internal("Failed to parse property data", err)
	}

	return &property, nil
}

func (r *firestorePropertyRepository) Update(ctx context.Context, property *entity.Property) error {
	property.UpdatedAt = time.Now()

	_, err := r.client.Collection(propertiesCollection).Doc(property.ID).Set(ctx, property)
	if err != nil {
		return errors.Persistence("Failed to update property", err)
	}

	return nil
}

func (r *firestorePropertyRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(propertiesCollection).Doc(id).Delete(ctx)
	if err != nil {
		return errors.Persistence("Failed to delete property", err)
	}

	return nil
}

func (r *firestorePropertyRepository) ListActive(ctx context.Context, filter entity.PropertyFilter) ([]*entity.Property, error) {
	query := r.client.Collection(propertiesCollection).
		Where("isActive", "==", true).
		OrderBy("createdAt", firestore.Desc)

	if filter.Bedrooms > 0 {
		query = query.Where("bedrooms", "==", filter.Bedrooms)
	}

	properties, err := r.collect(query.Documents(ctx))
	if err != nil {
		return nil, err
	}

	// Range and text filters are applied in memory to avoid composite indexes.
	filtered := make([]*entity.Property, 0, len(properties))
	for _, p := range properties {
		if matchesFilter(p, filter) {
			filtered = append(filtered, p)
		}
	}

	return filtered, nil
}

func (r *firestorePropertyRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Property, error) {
	query := r.client.Collection(propertiesCollection).
		Where("userId", "==", ownerID).
		OrderBy("createdAt", firestore.Desc)

	return r.collect(query.Documents(ctx))
}

func (r *firestorePropertyRepository) collect(iter *firestore.DocumentIterator) ([]*entity.Property, error) {
	defer iter.Stop()

	var properties []*entity.Property
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list properties", err)
		}

		var property entity.Property
		if err := doc.DataTo(&property); err != nil {
			logger.Warn("Skipping unreadable property %s: %v", doc.Ref.ID, err)
			continue
		}
		properties = append(properties, &property)
	}

	return properties, nil
}

func matchesFilter(p *entity.Property, filter entity.PropertyFilter) bool {
	if filter.Neighborhood != "" && !strings.EqualFold(p.Neighborhood, filter.Neighborhood) {
		return false
	}
	if filter.MinRent != nil && p.Rent < *filter.MinRent {
		return false
	}
	if filter.MaxRent != nil && p.Rent > *filter.MaxRent {
		return false
	}
	if filter.Bedrooms > 0 && p.Bedrooms != filter.Bedrooms {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		haystack := strings.ToLower(p.Title + " " + p.Address + " " + p.Neighborhood + " " + p.Description)
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
