package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/rsystemautomacao/agrodrones/internal/caching"
	"github.com/rsystemautomacao/agrodrones/internal/common"
	"github.com/rsystemautomacao/agrodrones/internal/models"
	"github.com/rsystemautomacao/agrodrones/internal/repositories"

	"github.com/google/uuid"
)

type ClientService interface {
	Create(ctx context.Context, companyID uuid.UUID, client *models.Client) error
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Client, error)
	Update(ctx context.Context, companyID uuid.UUID, client *models.Client) error
	Delete(ctx context.Context, companyID, id uuid.UUID) error
	List(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.Client, error)
}

type clientService struct {
	clientRepo   repositories.ClientRepository
	cacheService caching.CacheService
}

func NewClientService(clientRepo repositories.ClientRepository, cacheService caching.CacheService) ClientService {
	return &clientService{clientRepo: clientRepo, cacheService: cacheService}
}

const clientCacheTTL = 10 * time.Minute

func validateClient(client *models.Client) error {
	if client.NomeRazaoSocial == "" {
		return errors.New("nome/razão social is required")
	}
	if client.Municipio == "" {
		return errors.New("município is required")
	}
	if err := common.ValidateUF(client.UF, "uf"); err != nil {
		return err
	}
	if client.CPFCNPJ != nil && *client.CPFCNPJ != "" {
		normalized := common.NormalizeCPFCNPJ(*client.CPFCNPJ)
		if err := common.ValidateCPFCNPJ(normalized, "cpf_cnpj"); err != nil {
			return err
		}
		client.CPFCNPJ = &normalized
	}
	return nil
}

func (s *clientService) Create(ctx context.Context, companyID uuid.UUID, client *models.Client) error {
	if err := validateClient(client); err != nil {
		return err
	}
	client.ID = uuid.New()
	client.CompanyID = companyID
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return err
	}
	// Counts on the dashboard change with the client roster.
	s.invalidateCompany(ctx, companyID)
	return nil
}

func (s *clientService) GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Client, error) {
	if cached, err := s.cacheService.GetClient(ctx, companyID, id); err == nil && cached != nil {
		return cached, nil
	}
	client, err := s.clientRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if cacheErr := s.cacheService.SetClient(ctx, companyID, client, clientCacheTTL); cacheErr != nil {
		log.Printf("Failed to cache client %s: %v", client.ID, cacheErr)
	}
	return client, nil
}

func (s *clientService) Update(ctx context.Context, companyID uuid.UUID, client *models.Client) error {
	if err := validateClient(client); err != nil {
		return err
	}
	client.CompanyID = companyID
	if _, err := s.clientRepo.GetByID(ctx, companyID, client.ID); err != nil {
		return err
	}
	if err := s.clientRepo.Update(ctx, client); err != nil {
		return err
	}
	if cacheErr := s.cacheService.DeleteClient(ctx, companyID, client.ID); cacheErr != nil {
		log.Printf("Failed to evict client %s from cache: %v", client.ID, cacheErr)
	}
	return nil
}

func (s *clientService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	if _, err := s.clientRepo.GetByID(ctx, companyID, id); err != nil {
		return err
	}
	if err := s.clientRepo.Delete(ctx, companyID, id); err != nil {
		return err
	}
	s.invalidateCompany(ctx, companyID)
	return nil
}

func (s *clientService) invalidateCompany(ctx context.Context, companyID uuid.UUID) {
	if err := s.cacheService.InvalidateCompanyCache(ctx, companyID); err != nil {
		log.Printf("Failed to invalidate cache for company %s: %v", companyID, err)
	}
}

func (s *clientService) List(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.Client, error) {
	return s.clientRepo.List(ctx, companyID, limit, offset)
}
