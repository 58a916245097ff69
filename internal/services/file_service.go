package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/rsystemautomacao/agrodrones/internal/models"
	"github.com/rsystemautomacao/agrodrones/internal/repositories"

	"github.com/google/uuid"
)

// maxUploadSize caps individual file uploads at 10 MB.
const maxUploadSize = 10 << 20

type FileService interface {
	Upload(ctx context.Context, companyID uuid.UUID, upload *models.File, reader io.Reader) (*models.File, error)
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.File, error)
	ListByApplication(ctx context.Context, companyID, applicationID uuid.UUID) ([]*models.File, error)
	// DownloadURL returns a short-lived presigned URL that serves the object
	// under its original upload name.
	DownloadURL(ctx context.Context, companyID, id uuid.UUID, expiry time.Duration) (string, error)
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}

type fileService struct {
	fileRepo        repositories.FileRepository
	applicationRepo repositories.ApplicationRepository
	minioService    MinioService
}

func NewFileService(fileRepo repositories.FileRepository, applicationRepo repositories.ApplicationRepository, minioService MinioService) FileService {
	return &fileService{
		fileRepo:        fileRepo,
		applicationRepo: applicationRepo,
		minioService:    minioService,
	}
}

func (s *fileService) Upload(ctx context.Context, companyID uuid.UUID, upload *models.File, reader io.Reader) (*models.File, error) {
	if upload.OriginalName == "" {
		return nil, errors.New("filename is required")
	}
	if !models.ValidFileCategories[upload.Category] {
		return nil, fmt.Errorf("invalid file category: %s", upload.Category)
	}
	if upload.Size <= 0 || upload.Size > maxUploadSize {
		return nil, fmt.Errorf("file size must be between 1 byte and %d bytes", maxUploadSize)
	}
	if upload.ApplicationID != nil {
		if _, err := s.applicationRepo.GetByID(ctx, companyID, *upload.ApplicationID); err != nil {
			return nil, fmt.Errorf("application not found: %w", err)
		}
	}

	if err := s.minioService.EnsureBucketExists(ctx, companyFilesBucket); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	upload.ID = uuid.New()
	upload.CompanyID = companyID
	upload.Filename = fmt.Sprintf("%s%s", upload.ID, filepath.Ext(upload.OriginalName))
	upload.Path = fmt.Sprintf("%s/%s/%s", companyID, upload.Category, upload.Filename)

	if err := s.minioService.UploadObject(ctx, companyFilesBucket, upload.Path, upload.MimeType, reader, upload.Size); err != nil {
		return nil, fmt.Errorf("failed to upload file to storage: %w", err)
	}
	if err := s.fileRepo.Create(ctx, upload); err != nil {
		// Orphaned object cleanup; the metadata row is the source of truth.
		if delErr := s.minioService.DeleteObject(ctx, companyFilesBucket, upload.Path); delErr != nil {
			log.Printf("Warning: failed to clean up orphaned object %s: %v", upload.Path, delErr)
		}
		return nil, err
	}
	return upload, nil
}

func (s *fileService) GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.File, error) {
	return s.fileRepo.GetByID(ctx, companyID, id)
}

func (s *fileService) ListByApplication(ctx context.Context, companyID, applicationID uuid.UUID) ([]*models.File, error) {
	return s.fileRepo.ListByApplication(ctx, companyID, applicationID)
}

func (s *fileService) DownloadURL(ctx context.Context, companyID, id uuid.UUID, expiry time.Duration) (string, error) {
	file, err := s.fileRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return "", fmt.Errorf("file not found: %w", err)
	}
	return s.minioService.GetPresignedDownloadURL(companyFilesBucket, file.Path, file.OriginalName, expiry)
}

func (s *fileService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	file, err := s.fileRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return err
	}
	if err := s.minioService.DeleteObject(ctx, companyFilesBucket, file.Path); err != nil {
		log.Printf("Warning: failed to delete file from storage: %v", err)
	}
	return s.fileRepo.Delete(ctx, companyID, id)
}
