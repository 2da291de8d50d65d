package repository

import (
	"context"
	"time"

	"kitnetia/internal/domain/entity"
)

type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	// ListByOwner returns leads newest first. A zero since means no lower
	// bound; limit <= 0 means no limit.
	ListByOwner(ctx context.Context, ownerID string, since time.Time, limit int) ([]*entity.Lead, error)
}
