package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"kitnetia/internal/domain/entity"
	"kitnetia/internal/usecase"
	"kitnetia/pkg/errors"
	"kitnetia/pkg/response"
)

type VisitRequestHandler struct {
	visitUseCase *usecase.VisitRequestUseCase
}

func NewVisitRequestHandler(visitUseCase *usecase.VisitRequestUseCase) *VisitRequestHandler {
	return &VisitRequestHandler{
		visitUseCase: visitUseCase,
	}
}

type createVisitRequest struct {
	PropertyID      string `json:"property_id" validate:"required"`
	PreferredDate   string `json:"preferred_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	AlternativeDate string `json:"alternative_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	VisitorMessage  string `json:"visitor_message" validate:"max=1000"`
}

type ownerResponseRequest struct {
	OwnerResponse string `json:"owner_response" validate:"max=1000"`
}

func (h *VisitRequestHandler) CreateVisitRequest(c echo.Context) error {
	var req createVisitRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	visitorID := c.Get("uid").(string)

	visit, err := h.visitUseCase.CreateVisitRequest(c.Request().Context(), visitorID, usecase.CreateVisitRequestInput{
		PropertyID:      req.PropertyID,
		PreferredDate:   req.PreferredDate,
		AlternativeDate: req.AlternativeDate,
		VisitorMessage:  req.VisitorMessage,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, visit)
}

// ListVisitRequests takes ?role=owner for requests received, otherwise requests made.
func (h *VisitRequestHandler) ListVisitRequests(c echo.Context) error {
	role := c.QueryParam("role")
	if role != "" && role != "owner" && role != "visitor" {
		return response.Error(c, errors.Validation("role must be one of: owner visitor"))
	}

	userID := c.Get("uid").(string)

	visits, err := h.visitUseCase.ListMine(c.Request().Context(), userID, role == "owner")
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, visits)
}

type transitionFunc func(ctx context.Context, ownerID, id, ownerResponse string) (*entity.VisitRequest, error)

func (h *VisitRequestHandler) transition(c echo.Context, fn transitionFunc) error {
	var req ownerResponseRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	ownerID := c.Get("uid").(string)

	visit, err := fn(c.Request().Context(), ownerID, c.Param("id"), req.OwnerResponse)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, visit)
}

func (h *VisitRequestHandler) ConfirmVisitRequest(c echo.Context) error {
	return h.transition(c, h.visitUseCase.Confirm)
}

func (h *VisitRequestHandler) RejectVisitRequest(c echo.Context) error {
	return h.transition(c, h.visitUseCase.Reject)
}

func (h *VisitRequestHandler) CompleteVisitRequest(c echo.Context) error {
	return h.transition(c, h.visitUseCase.Complete)
}

func (h *VisitRequestHandler) CancelVisitRequest(c echo.Context) error {
	visitorID := c.Get("uid").(string)

	if err := h.visitUseCase.Cancel(c.Request().Context(), visitorID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Visit request cancelled"})
}
