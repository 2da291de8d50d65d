package usecase

import (
	"context"
	"time"

	"kitnetia/internal/domain/entity"
	"kitnetia/internal/domain/repository"
	"kitnetia/internal/domain/service"
	"kitnetia/pkg/logger"
)

const recentViewsLimit = 10

type PropertyViewUseCase struct {
	viewRepo        repository.PropertyViewRepository
	propertyUseCase *PropertyUseCase
	throttle        service.Throttle
	now             func() time.Time
}

// NewPropertyViewUseCase builds the view tracker. throttle may be nil.
func NewPropertyViewUseCase(viewRepo repository.PropertyViewRepository, propertyUseCase *PropertyUseCase, throttle service.Throttle) *PropertyViewUseCase {
	return &PropertyViewUseCase{
		viewRepo:        viewRepo,
		propertyUseCase: propertyUseCase,
		throttle:        throttle,
		now:             time.Now,
	}
}

type TrackViewInput struct {
	PropertyID string
	VisitorID  string
	IPAddress  string
	UserAgent  string
	Referrer   string
}

// TrackView records a view. Failures and throttled views are logged and never reach the caller.
func (uc *PropertyViewUseCase) TrackView(ctx context.Context, input TrackViewInput) {
	if input.PropertyID == "" {
		return
	}

	if uc.throttle != nil {
		key := input.VisitorID
		if key == "" {
			key = input.IPAddress
		}
		if !uc.throttle.Allow(key) {
			logger.Debug("View of property %s by %s not recorded: rate limited", input.PropertyID, key)
			return
		}
	}

	view := &entity.PropertyView{
		PropertyID: input.PropertyID,
		VisitorID:  input.VisitorID,
		IPAddress:  input.IPAddress,
		UserAgent:  input.UserAgent,
		Referrer:   input.Referrer,
		ViewedAt:   uc.now(),
	}
	if err := uc.viewRepo.Create(ctx, view); err != nil {
		logger.Warn("Failed to track view of property %s: %v", input.PropertyID, err)
	}
}

// GetViewMetrics is owner-only.
func (uc *PropertyViewUseCase) GetViewMetrics(ctx context.Context, ownerID, propertyID string) (*entity.ViewMetrics, error) {
	if _, err := uc.propertyUseCase.GetOwnedProperty(ctx, ownerID, propertyID); err != nil {
		return nil, err
	}

	views, err := uc.viewRepo.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	return summarizeViews(views, uc.now()), nil
}

// summarizeViews expects views newest first.
func summarizeViews(views []*entity.PropertyView, now time.Time) *entity.ViewMetrics {
	metrics := &entity.ViewMetrics{
		TotalViews:  len(views),
		UniqueViews: countUniqueViewers(views),
		RecentViews: []*entity.PropertyView{},
	}

	y, m, d := now.Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	for _, v := range views {
		if !v.ViewedAt.Before(startOfDay) {
			metrics.TodayViews++
		}
	}

	if len(views) > recentViewsLimit {
		metrics.RecentViews = views[:recentViewsLimit]
	} else if len(views) > 0 {
		metrics.RecentViews = views
	}
	return metrics
}

// countUniqueViewers keys each view by visitor id, or ip for anonymous views.
func countUniqueViewers(views []*entity.PropertyView) int {
	seen := make(map[string]struct{}, len(views))
	for _, v := range views {
		key := "u:" + v.VisitorID
		if v.VisitorID == "" {
			key = "ip:" + v.IPAddress
		}
		seen[key] = struct{}{}
	}
	return len(seen)
}
