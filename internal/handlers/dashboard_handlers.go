package handlers

import (
	"net/http"
	"strconv"

	"github.com/rsystemautomacao/agrodrones/internal/common"
	"github.com/rsystemautomacao/agrodrones/internal/services"

	"github.com/labstack/echo/v4"
)

// DashboardHandlers serves the company dashboard data.
type DashboardHandlers struct {
	dashboardService services.DashboardService
}

func NewDashboardHandlers(dashboardService services.DashboardService) *DashboardHandlers {
	return &DashboardHandlers{dashboardService: dashboardService}
}

func (h *DashboardHandlers) GetStats(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	stats, err := h.dashboardService.Stats(ctx, companyID)
	if err != nil {
		return common.SendServerError(c, "Failed to load dashboard stats")
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandlers) GetRecentApplications(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	limit := 10
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}

	recent, err := h.dashboardService.RecentApplications(ctx, companyID, limit)
	if err != nil {
		return common.SendServerError(c, "Failed to load recent applications")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"applications": recent})
}
