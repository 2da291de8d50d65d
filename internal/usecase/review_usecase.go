package usecase

import (
	"context"
	"math"
	"strings"

	"kitnetia/internal/domain/entity"
	"kitnetia/internal/domain/repository"
	"kitnetia/pkg/errors"
)

type ReviewUseCase struct {
	reviewRepo   repository.ReviewRepository
	propertyRepo repository.PropertyRepository
	visitRepo    repository.VisitRequestRepository
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	propertyRepo repository.PropertyRepository,
	visitRepo repository.VisitRequestRepository,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo:   reviewRepo,
		propertyRepo: propertyRepo,
		visitRepo:    visitRepo,
	}
}

type ReviewInput struct {
	Rating       int
	Title        string
	Comment      string
	StayDuration string
}

func (in ReviewInput) validate() error {
	if in.Rating < 1 || in.Rating > 5 {
		return errors.Validation("rating must be between 1 and 5")
	}
	if strings.TrimSpace(in.Title) == "" {
		return errors.Validation("title is required")
	}
	return nil
}

func (uc *ReviewUseCase) CreateReview(ctx context.Context, reviewerID, propertyID string, input ReviewInput) (*entity.Review, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	property, err := uc.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property.OwnerID == reviewerID {
		return nil, errors.BadRequest("You cannot review your own property", nil)
	}

	review := &entity.Review{
		PropertyID:   propertyID,
		ReviewerID:   reviewerID,
		Rating:       input.Rating,
		Title:        strings.TrimSpace(input.Title),
		Comment:      strings.TrimSpace(input.Comment),
		StayDuration: input.StayDuration,
		IsVerified:   uc.visitedProperty(ctx, reviewerID, propertyID),
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// visitedProperty marks a review verified when the reviewer completed a visit.
func (uc *ReviewUseCase) visitedProperty(ctx context.Context, reviewerID, propertyID string) bool {
	if uc.visitRepo == nil {
		return false
	}
	visits, err := uc.visitRepo.ListByVisitor(ctx, reviewerID)
	if err != nil {
		return false
	}
	for _, v := range visits {
		if v.PropertyID == propertyID && v.Status == entity.VisitCompleted {
			return true
		}
	}
	return false
}

func (uc *ReviewUseCase) ListPropertyReviews(ctx context.Context, propertyID string) (*entity.ReviewSummary, error) {
	reviews, err := uc.reviewRepo.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	summary := &entity.ReviewSummary{
		Reviews:      reviews,
		TotalReviews: len(reviews),
	}
	if summary.Reviews == nil {
		summary.Reviews = []*entity.Review{}
	}

	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		summary.AverageRating = math.Round(float64(sum)/float64(len(reviews))*10) / 10
	}

	return summary, nil
}

func (uc *ReviewUseCase) ownReview(ctx context.Context, reviewerID, reviewID string) (*entity.Review, error) {
	review, err := uc.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.ReviewerID != reviewerID {
		return nil, errors.Forbidden("You can only change your own reviews", nil)
	}
	return review, nil
}

func (uc *ReviewUseCase) UpdateReview(ctx context.Context, reviewerID, reviewID string, input ReviewInput) (*entity.Review, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	review, err := uc.ownReview(ctx, reviewerID, reviewID)
	if err != nil {
		return nil, err
	}

	review.Rating = input.Rating
	review.Title = strings.TrimSpace(input.Title)
	review.Comment = strings.TrimSpace(input.Comment)
	review.StayDuration = input.StayDuration

	if err := uc.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (uc *ReviewUseCase) DeleteReview(ctx context.Context, reviewerID, reviewID string) error {
	review, err := uc.ownReview(ctx, reviewerID, reviewID)
	if err != nil {
		return err
	}
	return uc.reviewRepo.Delete(ctx, review)
}
