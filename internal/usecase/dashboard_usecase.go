package usecase

import (
	"context"
	"math"
	"time"

	"kitnetia/internal/chatbot"
	"kitnetia/internal/domain/entity"
	"kitnetia/internal/domain/repository"
	"kitnetia/pkg/errors"
)

const (
	PeriodAll    = "all"
	Period7Days  = "7days"
	Period30Days = "30days"

	defaultRecentLeads = 10
	maxRecentLeads     = 50
)

type DashboardUseCase struct {
	propertyRepo repository.PropertyRepository
	leadRepo     repository.LeadRepository
	viewRepo     repository.PropertyViewRepository
	now          func() time.Time
}

func NewDashboardUseCase(
	propertyRepo repository.PropertyRepository,
	leadRepo repository.LeadRepository,
	viewRepo repository.PropertyViewRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		propertyRepo: propertyRepo,
		leadRepo:     leadRepo,
		viewRepo:     viewRepo,
		now:          time.Now,
	}
}

func (uc *DashboardUseCase) since(period string) (time.Time, error) {
	switch period {
	case "", PeriodAll:
		return time.Time{}, nil
	case Period7Days:
		return uc.now().AddDate(0, 0, -7), nil
	case Period30Days:
		return uc.now().AddDate(0, 0, -30), nil
	default:
		return time.Time{}, errors.Validation("period must be one of: all 7days 30days")
	}
}

func (uc *DashboardUseCase) ListRecentLeads(ctx context.Context, ownerID string, limit int) ([]*entity.RecentLead, error) {
	if limit <= 0 {
		limit = defaultRecentLeads
	}
	if limit > maxRecentLeads {
		limit = maxRecentLeads
	}

	properties, err := uc.propertyRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	titles := make(map[string]string, len(properties))
	for _, p := range properties {
		titles[p.ID] = p.Title
	}

	leads, err := uc.leadRepo.ListByOwner(ctx, ownerID, time.Time{}, limit)
	if err != nil {
		return nil, err
	}

	result := make([]*entity.RecentLead, 0, len(leads))
	for _, lead := range leads {
		info := lead.VisitorInfo
		result = append(result, &entity.RecentLead{
			ID:            lead.ID,
			PropertyID:    lead.PropertyID,
			PropertyTitle: titles[lead.PropertyID],
			Name:          fieldOr(info, chatbot.FieldName),
			Phone:         fieldOr(info, chatbot.FieldPhone),
			Email:         fieldOr(info, chatbot.FieldEmail),
			Income:        fieldOr(info, chatbot.FieldIncome),
			Urgency:       fieldOr(info, chatbot.FieldUrgency),
			CreatedAt:     lead.CreatedAt,
		})
	}
	return result, nil
}

func fieldOr(info *entity.LeadPayload, i int) string {
	if v := info.Field(i); v != "" {
		return v
	}
	return chatbot.NotSpecified
}

func (uc *DashboardUseCase) DashboardMetrics(ctx context.Context, ownerID, period string) (*entity.DashboardMetrics, error) {
	since, err := uc.since(period)
	if err != nil {
		return nil, err
	}

	properties, err := uc.propertyRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	leads, err := uc.leadRepo.ListByOwner(ctx, ownerID, since, 0)
	if err != nil {
		return nil, err
	}

	metrics := &entity.DashboardMetrics{
		TotalProperties: len(properties),
		TotalLeads:      len(leads),
	}

	for _, p := range properties {
		if p.IsActive {
			metrics.MonthlyRevenue += p.Rent
		}
	}

	now := uc.now()
	var totalDays float64
	for _, lead := range leads {
		if lead.LeadQualified {
			metrics.QualifiedLeads++
		}
		totalDays += now.Sub(lead.CreatedAt).Hours() / 24
	}
	if len(leads) > 0 {
		metrics.AverageDays = math.Round(totalDays/float64(len(leads))*10) / 10
	}

	uniqueViews := 0
	for _, p := range properties {
		views, err := uc.viewsSince(ctx, p.ID, since)
		if err != nil {
			return nil, err
		}
		uniqueViews += countUniqueViewers(views)
	}
	if uniqueViews > 0 {
		metrics.ConversionRate = int(math.Round(float64(metrics.QualifiedLeads) / float64(uniqueViews) * 100))
	}

	return metrics, nil
}

func (uc *DashboardUseCase) viewsSince(ctx context.Context, propertyID string, since time.Time) ([]*entity.PropertyView, error) {
	views, err := uc.viewRepo.ListByProperty(ctx, propertyID)
	if err != nil || since.IsZero() {
		return views, err
	}

	filtered := views[:0:0]
	for _, v := range views {
		if !v.ViewedAt.Before(since) {
			filtered = append(filtered, v)
		}
	}
	return filtered, nil
}

func (uc *DashboardUseCase) PropertyAnalytics(ctx context.Context, ownerID string) ([]*entity.PropertyAnalytics, error) {
	properties, err := uc.propertyRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	leads, err := uc.leadRepo.ListByOwner(ctx, ownerID, time.Time{}, 0)
	if err != nil {
		return nil, err
	}

	byProperty := make(map[string]*entity.PropertyAnalytics, len(properties))
	result := make([]*entity.PropertyAnalytics, 0, len(properties))
	for _, p := range properties {
		views, err := uc.viewRepo.ListByProperty(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		a := &entity.PropertyAnalytics{
			PropertyID: p.ID,
			Title:      p.Title,
			Rent:       p.Rent,
			IsActive:   p.IsActive,
			Views:      len(views),
		}
		byProperty[p.ID] = a
		result = append(result, a)
	}

	for _, lead := range leads {
		a, ok := byProperty[lead.PropertyID]
		if !ok {
			continue
		}
		a.Leads++
		if lead.LeadQualified {
			a.QualifiedLeads++
		}
	}

	return result, nil
}
