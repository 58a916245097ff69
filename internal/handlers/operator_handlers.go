package handlers

import (
	"net/http"

	"github.com/rsystemautomacao/agrodrones/internal/common"
	"github.com/rsystemautomacao/agrodrones/internal/models"
	"github.com/rsystemautomacao/agrodrones/internal/services"

	"github.com/labstack/echo/v4"
)

// OperatorHandlers handles operator (pilot/applicator) HTTP requests.
type OperatorHandlers struct {
	operatorService services.OperatorService
}

func NewOperatorHandlers(operatorService services.OperatorService) *OperatorHandlers {
	return &OperatorHandlers{operatorService: operatorService}
}

func (h *OperatorHandlers) ListOperators(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	includeInactive := c.QueryParam("include_inactive") == "true"

	operators, err := h.operatorService.List(ctx, companyID, includeInactive)
	if err != nil {
		return common.SendServerError(c, "Failed to list operators")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"operators": operators})
}

func (h *OperatorHandlers) GetOperator(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "operator id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	operator, err := h.operatorService.GetByID(ctx, companyID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Operator")
	}
	return c.JSON(http.StatusOK, operator)
}

func (h *OperatorHandlers) CreateOperator(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var operator models.Operator
	if err := c.Bind(&operator); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.operatorService.Create(ctx, companyID, &operator); err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, operator)
}

func (h *OperatorHandlers) UpdateOperator(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "operator id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var operator models.Operator
	if err := c.Bind(&operator); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	operator.ID = id

	if err := h.operatorService.Update(ctx, companyID, &operator); err != nil {
		return common.SendNotFoundError(c, "Operator")
	}
	return c.JSON(http.StatusOK, operator)
}

func (h *OperatorHandlers) DeactivateOperator(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "operator id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.operatorService.Deactivate(ctx, companyID, id); err != nil {
		return common.SendNotFoundError(c, "Operator")
	}
	return c.NoContent(http.StatusNoContent)
}
