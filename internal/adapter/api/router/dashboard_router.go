package router

import (
	"github.com/labstack/echo/v4"

	"kitnetia/internal/adapter/api/handler"
)

func SetupDashboardRouter(e *echo.Echo, dashboardHandler *handler.DashboardHandler, mw Middlewares) {
	dashboard := e.Group("/v1/dashboard")
	dashboard.Use(mw.Auth.Authenticate)

	dashboard.GET("/metrics", dashboardHandler.GetMetrics)
	dashboard.GET("/leads", dashboardHandler.ListRecentLeads)
	dashboard.GET("/analytics", dashboardHandler.GetPropertyAnalytics)
}
