package handlers

import (
	"net/http"
	"strconv"

	"github.com/rsystemautomacao/agrodrones/internal/common"
	"github.com/rsystemautomacao/agrodrones/internal/models"
	"github.com/rsystemautomacao/agrodrones/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ApplicationHandlers handles spray application HTTP requests.
type ApplicationHandlers struct {
	applicationService services.ApplicationService
}

func NewApplicationHandlers(applicationService services.ApplicationService) *ApplicationHandlers {
	return &ApplicationHandlers{applicationService: applicationService}
}

// bindApplicationFilter reads the shared filter query parameters. Every key
// is optional; malformed dates and ids impose no constraint instead of
// failing the request.
func bindApplicationFilter(c echo.Context) *models.ApplicationFilter {
	filter := &models.ApplicationFilter{
		DateFrom:      common.ParseOptionalDate(c.QueryParam("data_inicio")),
		DateTo:        common.ParseOptionalDate(c.QueryParam("data_fim")),
		ClientID:      common.ParseOptionalUUID(c.QueryParam("client_id")),
		DroneID:       common.ParseOptionalUUID(c.QueryParam("drone_id")),
		OperatorID:    common.ParseOptionalUUID(c.QueryParam("operator_id")),
		TipoAtividade: c.QueryParam("tipo_atividade"),
		Cultura:       c.QueryParam("cultura"),
		Municipio:     c.QueryParam("municipio"),
		UF:            c.QueryParam("uf"),
	}
	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(c.QueryParam("offset")); err == nil && offset > 0 {
		filter.Offset = offset
	}
	return filter
}

func (h *ApplicationHandlers) ListApplications(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	filter := bindApplicationFilter(c)

	apps, err := h.applicationService.Search(ctx, companyID, filter)
	if err != nil {
		return common.SendServerError(c, "Failed to list applications")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"applications": apps,
		"limit":        filter.Limit,
		"offset":       filter.Offset,
	})
}

func (h *ApplicationHandlers) GetApplication(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "application id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	app, err := h.applicationService.GetByID(ctx, companyID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Application")
	}
	return c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandlers) CreateApplication(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var app models.Application
	if err := c.Bind(&app); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if userID, ok := common.GetUserIDFromContext(ctx); ok {
		app.CreatedBy = &userID
	}

	if err := h.applicationService.Create(ctx, companyID, &app); err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandlers) UpdateApplication(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "application id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var app models.Application
	if err := c.Bind(&app); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	app.ID = id

	if err := h.applicationService.Update(ctx, companyID, &app); err != nil {
		return common.SendNotFoundError(c, "Application")
	}
	return c.JSON(http.StatusOK, app)
}

// UpdateRelatorioOperacional edits only the Anexo XI override block.
func (h *ApplicationHandlers) UpdateRelatorioOperacional(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "application id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var ro models.RelatorioOperacional
	if err := c.Bind(&ro); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.applicationService.UpdateRelatorioOperacional(ctx, companyID, id, ro); err != nil {
		return common.SendNotFoundError(c, "Application")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ApplicationHandlers) DeleteApplication(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "application id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.applicationService.Delete(ctx, companyID, id); err != nil {
		return common.SendNotFoundError(c, "Application")
	}
	return c.NoContent(http.StatusNoContent)
}

// DuplicateApplication copies an application as a fresh record stamped now,
// without evidence attachments.
func (h *ApplicationHandlers) DuplicateApplication(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "application id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var createdBy *uuid.UUID
	if userID, ok := common.GetUserIDFromContext(ctx); ok {
		createdBy = &userID
	}

	copied, err := h.applicationService.Duplicate(ctx, companyID, id, createdBy)
	if err != nil {
		return common.SendNotFoundError(c, "Application")
	}
	return c.JSON(http.StatusCreated, copied)
}
