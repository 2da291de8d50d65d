package service

import (
	"context"

	"kitnetia/internal/domain/entity"
)

// PropertyCache holds public (active) listings only. Misses return nil, nil.
//
// Fills are conditional: read the generation before loading from the
// repository and pass it to the setter, which drops the write if an
// Invalidate happened in between.
type PropertyCache interface {
	GetProperty(ctx context.Context, id string) (*entity.Property, error)
	PropertyGeneration(ctx context.Context, id string) (int64, error)
	SetProperty(ctx context.Context, property *entity.Property, generation int64) error
	GetList(ctx context.Context, filter entity.PropertyFilter) ([]*entity.Property, error)
	ListGeneration(ctx context.Context) (int64, error)
	SetList(ctx context.Context, filter entity.PropertyFilter, properties []*entity.Property, generation int64) error
	// Invalidate bumps both generations, then drops the listing and every cached list page.
	Invalidate(ctx context.Context, id string) error
}
