package handler

import (
	"github.com/labstack/echo/v4"

	"kitnetia/internal/usecase"
	"kitnetia/pkg/errors"
	"kitnetia/pkg/response"
)

type ReviewHandler struct {
	reviewUseCase *usecase.ReviewUseCase
}

func NewReviewHandler(reviewUseCase *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase: reviewUseCase,
	}
}

type reviewRequest struct {
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	Title        string `json:"title" validate:"required,max=120"`
	Comment      string `json:"comment" validate:"max=2000"`
	StayDuration string `json:"stay_duration"`
}

func (r reviewRequest) input() usecase.ReviewInput {
	return usecase.ReviewInput{
		Rating:       r.Rating,
		Title:        r.Title,
		Comment:      r.Comment,
		StayDuration: r.StayDuration,
	}
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	reviewerID := c.Get("uid").(string)

	review, err := h.reviewUseCase.CreateReview(c.Request().Context(), reviewerID, c.Param("id"), req.input())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, review)
}

func (h *ReviewHandler) ListPropertyReviews(c echo.Context) error {
	summary, err := h.reviewUseCase.ListPropertyReviews(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, summary)
}

func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	reviewerID := c.Get("uid").(string)

	review, err := h.reviewUseCase.UpdateReview(c.Request().Context(), reviewerID, c.Param("reviewId"), req.input())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, review)
}

func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	reviewerID := c.Get("uid").(string)

	if err := h.reviewUseCase.DeleteReview(c.Request().Context(), reviewerID, c.Param("reviewId")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Review deleted successfully"})
}
