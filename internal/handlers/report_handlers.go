package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rsystemautomacao/agrodrones/internal/common"
	"github.com/rsystemautomacao/agrodrones/internal/services"

	"github.com/labstack/echo/v4"
)

// ReportHandlers serves CSV/XLSX exports and the Anexo XI PDF reports.
type ReportHandlers struct {
	exportService services.ExportService
	reportService services.ReportService
}

func NewReportHandlers(exportService services.ExportService, reportService services.ReportService) *ReportHandlers {
	return &ReportHandlers{
		exportService: exportService,
		reportService: reportService,
	}
}

func exportFilename(ext string) string {
	return fmt.Sprintf("aplicacoes_%s.%s", time.Now().Format("2006-01-02"), ext)
}

func sendBrokenReferenceError(c echo.Context, err error) error {
	var broken *services.ErrBrokenReference
	if errors.As(err, &broken) {
		return c.JSON(http.StatusConflict, common.CreateErrorResponse("BROKEN_REFERENCE", broken.Error(), nil))
	}
	return common.SendServerError(c, "Failed to generate report")
}

func (h *ReportHandlers) ExportCSV(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	filter := bindApplicationFilter(c)

	data, err := h.exportService.ExportCSV(ctx, companyID, filter)
	if err != nil {
		return sendBrokenReferenceError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", exportFilename("csv")))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", data)
}

func (h *ReportHandlers) ExportXLSX(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	filter := bindApplicationFilter(c)

	data, err := h.exportService.ExportXLSX(ctx, companyID, filter)
	if err != nil {
		return sendBrokenReferenceError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", exportFilename("xlsx")))
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// OperationalReportPDF renders the single-application Anexo XI document.
func (h *ReportHandlers) OperationalReportPDF(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "application id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	data, err := h.reportService.OperationalReport(ctx, companyID, id)
	if err != nil {
		var broken *services.ErrBrokenReference
		if errors.As(err, &broken) {
			return sendBrokenReferenceError(c, err)
		}
		return common.SendNotFoundError(c, "Application")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("relatorio_operacional_%s.pdf", id)))
	return c.Blob(http.StatusOK, "application/pdf", data)
}

func (h *ReportHandlers) ConsolidatedReportPDF(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	filter := bindApplicationFilter(c)

	data, err := h.reportService.ConsolidatedReport(ctx, companyID, filter)
	if err != nil {
		return sendBrokenReferenceError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", exportFilename("pdf")))
	return c.Blob(http.StatusOK, "application/pdf", data)
}
