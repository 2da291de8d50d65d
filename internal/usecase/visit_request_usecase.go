package usecase

import (
	"context"
	"strings"
	"time"

	"kitnetia/internal/domain/entity"
	"kitnetia/internal/domain/repository"
	"kitnetia/internal/domain/service"
	"kitnetia/pkg/errors"
)

type VisitRequestUseCase struct {
	visitRepo       repository.VisitRequestRepository
	propertyUseCase *PropertyUseCase
	publisher       service.RealtimePublisher
}

func NewVisitRequestUseCase(
	visitRepo repository.VisitRequestRepository,
	propertyUseCase *PropertyUseCase,
	publisher service.RealtimePublisher,
) *VisitRequestUseCase {
	return &VisitRequestUseCase{
		visitRepo:       visitRepo,
		propertyUseCase: propertyUseCase,
		publisher:       publisher,
	}
}

type CreateVisitRequestInput struct {
	PropertyID      string
	PreferredDate   string
	AlternativeDate string
	VisitorMessage  string
}

func parseVisitDate(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, errors.Validation(field + " must be an ISO-8601 timestamp")
	}
	return t, nil
}

func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func (uc *VisitRequestUseCase) CreateVisitRequest(ctx context.Context, visitorID string, input CreateVisitRequestInput) (*entity.VisitRequest, error) {
	if input.PropertyID == "" {
		return nil, errors.Validation("property_id is required")
	}
	if input.PreferredDate == "" {
		return nil, errors.Validation("preferred_date is required")
	}

	preferred, err := parseVisitDate("preferred_date", input.PreferredDate)
	if err != nil {
		return nil, err
	}

	var alternative *time.Time
	if input.AlternativeDate != "" {
		alt, err := parseVisitDate("alternative_date", input.AlternativeDate)
		if err != nil {
			return nil, err
		}
		alternative = &alt
	}

	property, err := uc.propertyUseCase.GetPublicProperty(ctx, input.PropertyID)
	if err != nil {
		return nil, err
	}
	if property.OwnerID == visitorID {
		return nil, errors.BadRequest("You cannot request a visit to your own property", nil)
	}

	request := &entity.VisitRequest{
		PropertyID:      property.ID,
		VisitorID:       visitorID,
		OwnerID:         property.OwnerID,
		PreferredDate:   preferred,
		AlternativeDate: alternative,
		VisitorMessage:  optionalText(input.VisitorMessage),
		Status:          entity.VisitPending,
	}

	if err := uc.visitRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	uc.notify(request.OwnerID, request)
	return request, nil
}

// ListMine returns requests where the user is the visitor (asOwner=false) or the owner, newest first.
func (uc *VisitRequestUseCase) ListMine(ctx context.Context, userID string, asOwner bool) ([]*entity.VisitRequest, error) {
	if asOwner {
		return uc.visitRepo.ListByOwner(ctx, userID)
	}
	return uc.visitRepo.ListByVisitor(ctx, userID)
}

func (uc *VisitRequestUseCase) Confirm(ctx context.Context, ownerID, id, ownerResponse string) (*entity.VisitRequest, error) {
	return uc.ownerTransition(ctx, ownerID, id, entity.VisitConfirmed, ownerResponse)
}

func (uc *VisitRequestUseCase) Reject(ctx context.Context, ownerID, id, ownerResponse string) (*entity.VisitRequest, error) {
	return uc.ownerTransition(ctx, ownerID, id, entity.VisitRejected, ownerResponse)
}

func (uc *VisitRequestUseCase) Complete(ctx context.Context, ownerID, id, ownerResponse string) (*entity.VisitRequest, error) {
	return uc.ownerTransition(ctx, ownerID, id, entity.VisitCompleted, ownerResponse)
}

func (uc *VisitRequestUseCase) ownerTransition(ctx context.Context, ownerID, id string, next entity.VisitStatus, ownerResponse string) (*entity.VisitRequest, error) {
	request, err := uc.visitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.OwnerID != ownerID {
		return nil, errors.Forbidden("Only the property owner can update this visit request", nil)
	}

	from := request.Status
	if !from.CanTransitionTo(next) {
		return nil, errors.InvalidTransition(string(from), string(next))
	}

	request.Status = next
	if response := optionalText(ownerResponse); response != nil {
		request.OwnerResponse = response
	}

	if err := uc.visitRepo.Transition(ctx, request, from); err != nil {
		return nil, err
	}

	uc.notify(request.VisitorID, request)
	return request, nil
}

// Cancel deletes a pending request on behalf of its visitor.
func (uc *VisitRequestUseCase) Cancel(ctx context.Context, visitorID, id string) error {
	request, err := uc.visitRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if request.VisitorID != visitorID {
		return errors.Forbidden("Only the visitor can cancel this visit request", nil)
	}
	if !request.Status.CanTransitionTo(entity.VisitCancelled) {
		return errors.InvalidTransition(string(request.Status), string(entity.VisitCancelled))
	}

	if err := uc.visitRepo.Delete(ctx, request); err != nil {
		return err
	}

	request.Status = entity.VisitCancelled
	uc.notify(request.OwnerID, request)
	return nil
}

func (uc *VisitRequestUseCase) notify(userID string, request *entity.VisitRequest) {
	if uc.publisher != nil {
		uc.publisher.Publish(userID, service.EventVisitRequest, request)
	}
}
