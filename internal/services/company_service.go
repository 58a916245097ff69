package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/rsystemautomacao/agrodrones/internal/common"
	"github.com/rsystemautomacao/agrodrones/internal/models"
	"github.com/rsystemautomacao/agrodrones/internal/repositories"

	"github.com/google/uuid"
)

type CompanyService interface {
	Get(ctx context.Context, companyID uuid.UUID) (*models.Company, error)
	UpdateProfile(ctx context.Context, companyID uuid.UUID, company *models.Company) error
	UpdateSettings(ctx context.Context, companyID uuid.UUID, settings models.CompanyDefaults) error
	CompleteOnboarding(ctx context.Context, companyID uuid.UUID, company *models.Company) error
	UploadLogo(ctx context.Context, companyID uuid.UUID, filename, contentType string, reader io.Reader, size int64) error
	RemoveLogo(ctx context.Context, companyID uuid.UUID) error
	LogoURL(ctx context.Context, companyID uuid.UUID, expiry time.Duration) (string, error)
}

type companyService struct {
	companyRepo  repositories.CompanyRepository
	minioService MinioService
}

func NewCompanyService(companyRepo repositories.CompanyRepository, minioService MinioService) CompanyService {
	return &companyService{companyRepo: companyRepo, minioService: minioService}
}

func validateCompanyProfile(company *models.Company) error {
	if company.RazaoSocial == "" {
		return errors.New("razão social is required")
	}
	cnpj := common.NormalizeCPFCNPJ(company.CNPJ)
	if len(cnpj) != 14 {
		return errors.New("invalid CNPJ")
	}
	company.CNPJ = cnpj
	if company.UF != nil && *company.UF != "" {
		if err := common.ValidateUF(*company.UF, "uf"); err != nil {
			return err
		}
	}
	for _, svc := range company.ServicosPrestados {
		if !models.ValidServiceTypes[svc] {
			return fmt.Errorf("invalid serviço prestado: %s", svc)
		}
	}
	return nil
}

func (s *companyService) Get(ctx context.Context, companyID uuid.UUID) (*models.Company, error) {
	return s.companyRepo.GetByID(ctx, companyID)
}

func (s *companyService) UpdateProfile(ctx context.Context, companyID uuid.UUID, company *models.Company) error {
	if err := validateCompanyProfile(company); err != nil {
		return err
	}
	company.ID = companyID
	if _, err := s.companyRepo.GetByID(ctx, companyID); err != nil {
		return err
	}
	return s.companyRepo.Update(ctx, company)
}

func (s *companyService) UpdateSettings(ctx context.Context, companyID uuid.UUID, settings models.CompanyDefaults) error {
	if settings.Unidades == "" {
		settings.Unidades = "L/ha"
	}
	if settings.AlturaVoo != nil && *settings.AlturaVoo <= 0 {
		return errors.New("altura de voo must be positive")
	}
	return s.companyRepo.UpdateSettings(ctx, companyID, settings)
}

func (s *companyService) CompleteOnboarding(ctx context.Context, companyID uuid.UUID, company *models.Company) error {
	if err := s.UpdateProfile(ctx, companyID, company); err != nil {
		return err
	}
	return s.companyRepo.MarkOnboardingCompleted(ctx, companyID)
}

func (s *companyService) UploadLogo(ctx context.Context, companyID uuid.UUID, filename, contentType string, reader io.Reader, size int64) error {
	if err := s.minioService.EnsureBucketExists(ctx, companyFilesBucket); err != nil {
		return fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	objectKey := fmt.Sprintf("%s/logo/%s%s", companyID, uuid.New(), filepath.Ext(filename))
	if err := s.minioService.UploadObject(ctx, companyFilesBucket, objectKey, contentType, reader, size); err != nil {
		return fmt.Errorf("failed to upload logo: %w", err)
	}

	// Drop the previous logo object after the new one is in place.
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if err := s.companyRepo.UpdateLogoPath(ctx, companyID, &objectKey); err != nil {
		return err
	}
	if company.LogoPath != nil && *company.LogoPath != "" {
		if delErr := s.minioService.DeleteObject(ctx, companyFilesBucket, *company.LogoPath); delErr != nil {
			log.Printf("Warning: failed to delete previous logo %s: %v", *company.LogoPath, delErr)
		}
	}
	return nil
}

func (s *companyService) RemoveLogo(ctx context.Context, companyID uuid.UUID) error {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if company.LogoPath == nil || *company.LogoPath == "" {
		return nil
	}
	if err := s.minioService.DeleteObject(ctx, companyFilesBucket, *company.LogoPath); err != nil {
		log.Printf("Warning: failed to delete logo from storage: %v", err)
	}
	return s.companyRepo.UpdateLogoPath(ctx, companyID, nil)
}

func (s *companyService) LogoURL(ctx context.Context, companyID uuid.UUID, expiry time.Duration) (string, error) {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return "", err
	}
	if company.LogoPath == nil || *company.LogoPath == "" {
		return "", errors.New("company has no logo")
	}
	return s.minioService.GetPresignedURL(companyFilesBucket, *company.LogoPath, expiry)
}
