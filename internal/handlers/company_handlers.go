package handlers

import (
	"net/http"
	"time"

	"github.com/rsystemautomacao/agrodrones/internal/common"
	"github.com/rsystemautomacao/agrodrones/internal/models"
	"github.com/rsystemautomacao/agrodrones/internal/services"

	"github.com/labstack/echo/v4"
)

// CompanyHandlers handles company profile, settings and logo requests.
type CompanyHandlers struct {
	companyService services.CompanyService
}

func NewCompanyHandlers(companyService services.CompanyService) *CompanyHandlers {
	return &CompanyHandlers{companyService: companyService}
}

func (h *CompanyHandlers) GetCompany(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	company, err := h.companyService.Get(ctx, companyID)
	if err != nil {
		return common.SendNotFoundError(c, "Company")
	}
	return c.JSON(http.StatusOK, company)
}

func (h *CompanyHandlers) UpdateCompany(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var company models.Company
	if err := c.Bind(&company); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.companyService.UpdateProfile(ctx, companyID, &company); err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusOK, company)
}

func (h *CompanyHandlers) UpdateSettings(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var settings models.CompanyDefaults
	if err := c.Bind(&settings); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.companyService.UpdateSettings(ctx, companyID, settings); err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusOK, settings)
}

// CompleteOnboarding saves the full company profile and flips the
// onboarding flag.
func (h *CompanyHandlers) CompleteOnboarding(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var company models.Company
	if err := c.Bind(&company); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.companyService.CompleteOnboarding(ctx, companyID, &company); err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CompanyHandlers) UploadLogo(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		return common.SendClientError(c, "Logo file is required")
	}
	src, err := fileHeader.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read upload")
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.companyService.UploadLogo(ctx, companyID, fileHeader.Filename, contentType, src, fileHeader.Size); err != nil {
		return common.SendServerError(c, "Failed to upload logo")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CompanyHandlers) RemoveLogo(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	if err := h.companyService.RemoveLogo(ctx, companyID); err != nil {
		return common.SendServerError(c, "Failed to remove logo")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CompanyHandlers) GetLogoURL(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	url, err := h.companyService.LogoURL(ctx, companyID, 15*time.Minute)
	if err != nil {
		return common.SendNotFoundError(c, "Logo")
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}
