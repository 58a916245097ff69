package handlers

import (
	"net/http"

	"github.com/rsystemautomacao/agrodrones/internal/common"
	"github.com/rsystemautomacao/agrodrones/internal/models"
	"github.com/rsystemautomacao/agrodrones/internal/services"

	"github.com/labstack/echo/v4"
)

// DroneHandlers handles drone fleet HTTP requests.
type DroneHandlers struct {
	droneService services.DroneService
}

func NewDroneHandlers(droneService services.DroneService) *DroneHandlers {
	return &DroneHandlers{droneService: droneService}
}

func (h *DroneHandlers) ListDrones(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	includeInactive := c.QueryParam("include_inactive") == "true"

	drones, err := h.droneService.List(ctx, companyID, includeInactive)
	if err != nil {
		return common.SendServerError(c, "Failed to list drones")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"drones": drones})
}

func (h *DroneHandlers) GetDrone(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "drone id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	drone, err := h.droneService.GetByID(ctx, companyID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Drone")
	}
	return c.JSON(http.StatusOK, drone)
}

func (h *DroneHandlers) CreateDrone(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var drone models.Drone
	if err := c.Bind(&drone); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.droneService.Create(ctx, companyID, &drone); err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, drone)
}

func (h *DroneHandlers) UpdateDrone(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "drone id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var drone models.Drone
	if err := c.Bind(&drone); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	drone.ID = id

	if err := h.droneService.Update(ctx, companyID, &drone); err != nil {
		return common.SendNotFoundError(c, "Drone")
	}
	return c.JSON(http.StatusOK, drone)
}

// DeactivateDrone soft-deletes: the drone leaves selection lists but stays
// resolvable from historical applications.
func (h *DroneHandlers) DeactivateDrone(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "drone id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.droneService.Deactivate(ctx, companyID, id); err != nil {
		return common.SendNotFoundError(c, "Drone")
	}
	return c.NoContent(http.StatusNoContent)
}
