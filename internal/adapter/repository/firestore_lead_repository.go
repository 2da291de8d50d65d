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

type firestoreLeadRepository struct {
	client *firestore.Client
}

func NewFirestoreLeadRepository(client *firestore.Client) repository.LeadRepository {
	return &firestoreLeadRepository{client: client}
}

// Create always inserts a new document; qualification records are never updated.
func (r *firestoreLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}
	lead.CreatedAt = time.Now()

	_, err := r.client.Collection(leadsCollection).Doc(lead.ID).Create(ctx, lead)
	if err != nil {
		return errors.Persistence("Failed to save lead", err)
	}

	return nil
}

func (r *firestoreLeadRepository) ListByOwner(ctx context.Context, ownerID string, since time.Time, limit int) ([]*entity.Lead, error) {
	query := r.client.Collection(leadsCollection).Where("ownerId", "==", ownerID)
	if !since.IsZero() {
		query = query.Where("createdAt", ">=", since)
	}
	query = query.OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var leads []*entity.Lead
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list leads", err)
		}

		var lead entity.Lead
		if err := doc.DataTo(&lead); err != nil {
			return nil, errors.Internal("Failed to parse lead data", err)
		}
		leads = append(leads, &lead)
	}

	return leads, nil
}
