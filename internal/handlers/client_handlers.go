package handlers

import (
	"net/http"

	"github.com/rsystemautomacao/agrodrones/internal/common"
	"github.com/rsystemautomacao/agrodrones/internal/models"
	"github.com/rsystemautomacao/agrodrones/internal/services"

	"github.com/labstack/echo/v4"
)

// ClientHandlers handles client (farm/landowner) HTTP requests.
type ClientHandlers struct {
	clientService services.ClientService
}

func NewClientHandlers(clientService services.ClientService) *ClientHandlers {
	return &ClientHandlers{clientService: clientService}
}

type ListClientsRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

func (h *ClientHandlers) ListClients(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListClientsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}
	limit, offset, err := common.ValidatePaginationParams(req.Limit, req.Offset)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	clients, err := h.clientService.List(ctx, companyID, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list clients")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"clients": clients,
		"limit":   limit,
		"offset":  offset,
	})
}

func (h *ClientHandlers) GetClient(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "client id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	client, err := h.clientService.GetByID(ctx, companyID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Client")
	}
	return c.JSON(http.StatusOK, client)
}

func (h *ClientHandlers) CreateClient(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var client models.Client
	if err := c.Bind(&client); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.clientService.Create(ctx, companyID, &client); err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, client)
}

func (h *ClientHandlers) UpdateClient(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "client id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var client models.Client
	if err := c.Bind(&client); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	client.ID = id

	if err := h.clientService.Update(ctx, companyID, &client); err != nil {
		return common.SendNotFoundError(c, "Client")
	}
	return c.JSON(http.StatusOK, client)
}

func (h *ClientHandlers) DeleteClient(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "client id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.clientService.Delete(ctx, companyID, id); err != nil {
		return common.SendNotFoundError(c, "Client")
	}
	return c.NoContent(http.StatusNoContent)
}
