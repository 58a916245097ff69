package handlers

import (
	"net/http"
	"time"

	"github.com/rsystemautomacao/agrodrones/internal/common"
	"github.com/rsystemautomacao/agrodrones/internal/models"
	"github.com/rsystemautomacao/agrodrones/internal/services"

	"github.com/labstack/echo/v4"
)

// FileHandlers handles evidence/sketch/signature upload requests.
type FileHandlers struct {
	fileService services.FileService
}

func NewFileHandlers(fileService services.FileService) *FileHandlers {
	return &FileHandlers{fileService: fileService}
}

func (h *FileHandlers) UploadFile(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return common.SendClientError(c, "File is required")
	}
	src, err := fileHeader.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read upload")
	}
	defer src.Close()

	upload := &models.File{
		OriginalName:  fileHeader.Filename,
		MimeType:      fileHeader.Header.Get("Content-Type"),
		Size:          fileHeader.Size,
		Category:      c.FormValue("category"),
		ApplicationID: common.ParseOptionalUUID(c.FormValue("application_id")),
	}
	if userID, ok := common.GetUserIDFromContext(ctx); ok {
		upload.UploadedBy = &userID
	}

	created, err := h.fileService.Upload(ctx, companyID, upload, src)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *FileHandlers) GetFile(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "file id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	file, err := h.fileService.GetByID(ctx, companyID, id)
	if err != nil {
		return common.SendNotFoundError(c, "File")
	}
	return c.JSON(http.StatusOK, file)
}

func (h *FileHandlers) ListApplicationFiles(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	applicationID, err := common.ValidateUUID(c.Param("id"), "application id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	files, err := h.fileService.ListByApplication(ctx, companyID, applicationID)
	if err != nil {
		return common.SendServerError(c, "Failed to list files")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"files": files})
}

// GetDownloadURL returns a short-lived presigned URL for the object.
func (h *FileHandlers) GetDownloadURL(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "file id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	url, err := h.fileService.DownloadURL(ctx, companyID, id, 15*time.Minute)
	if err != nil {
		return common.SendNotFoundError(c, "File")
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

func (h *FileHandlers) DeleteFile(c echo.Context) error {
	ctx := c.Request().Context()

	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "file id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.fileService.Delete(ctx, companyID, id); err != nil {
		return common.SendNotFoundError(c, "File")
	}
	return c.NoContent(http.StatusNoContent)
}
