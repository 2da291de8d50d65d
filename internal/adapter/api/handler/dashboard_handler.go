package handler

import (
	"github.com/labstack/echo/v4"

	"kitnetia/internal/usecase"
	"kitnetia/pkg/response"
	"kitnetia/pkg/utils"
)

type DashboardHandler struct {
	dashboardUseCase *usecase.DashboardUseCase
}

func NewDashboardHandler(dashboardUseCase *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{
		dashboardUseCase: dashboardUseCase,
	}
}

func (h *DashboardHandler) GetMetrics(c echo.Context) error {
	ownerID := c.Get("uid").(string)

	metrics, err := h.dashboardUseCase.DashboardMetrics(c.Request().Context(), ownerID, c.QueryParam("period"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, metrics)
}

func (h *DashboardHandler) ListRecentLeads(c echo.Context) error {
	ownerID := c.Get("uid").(string)

	leads, err := h.dashboardUseCase.ListRecentLeads(c.Request().Context(), ownerID, utils.QueryInt(c, "limit", 0))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, leads)
}

func (h *DashboardHandler) GetPropertyAnalytics(c echo.Context) error {
	ownerID := c.Get("uid").(string)

	analytics, err := h.dashboardUseCase.PropertyAnalytics(c.Request().Context(), ownerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, analytics)
}
