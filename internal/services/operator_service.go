package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rsystemautomacao/agrodrones/internal/models"
	"github.com/rsystemautomacao/agrodrones/internal/repositories"

	"github.com/google/uuid"
)

type OperatorService interface {
	Create(ctx context.Context, companyID uuid.UUID, operator *models.Operator) error
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Operator, error)
	Update(ctx context.Context, companyID uuid.UUID, operator *models.Operator) error
	Deactivate(ctx context.Context, companyID, id uuid.UUID) error
	List(ctx context.Context, companyID uuid.UUID, includeInactive bool) ([]*models.Operator, error)
}

type operatorService struct {
	operatorRepo repositories.OperatorRepository
}

func NewOperatorService(operatorRepo repositories.OperatorRepository) OperatorService {
	return &operatorService{operatorRepo: operatorRepo}
}

func validateOperator(operator *models.Operator) error {
	if operator.Nome == "" {
		return errors.New("nome is required")
	}
	if !models.ValidOperatorRoles[operator.Funcao] {
		return fmt.Errorf("invalid função: %s", operator.Funcao)
	}
	return nil
}

func (s *operatorService) Create(ctx context.Context, companyID uuid.UUID, operator *models.Operator) error {
	if err := validateOperator(operator); err != nil {
		return err
	}
	operator.ID = uuid.New()
	operator.CompanyID = companyID
	operator.Active = true
	return s.operatorRepo.Create(ctx, operator)
}

func (s *operatorService) GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Operator, error) {
	return s.operatorRepo.GetByID(ctx, companyID, id)
}

func (s *operatorService) Update(ctx context.Context, companyID uuid.UUID, operator *models.Operator) error {
	if err := validateOperator(operator); err != nil {
		return err
	}
	operator.CompanyID = companyID
	if _, err := s.operatorRepo.GetByID(ctx, companyID, operator.ID); err != nil {
		return err
	}
	return s.operatorRepo.Update(ctx, operator)
}

func (s *operatorService) Deactivate(ctx context.Context, companyID, id uuid.UUID) error {
	if _, err := s.operatorRepo.GetByID(ctx, companyID, id); err != nil {
		return err
	}
	return s.operatorRepo.Deactivate(ctx, companyID, id)
}

func (s *operatorService) List(ctx context.Context, companyID uuid.UUID, includeInactive bool) ([]*models.Operator, error) {
	return s.operatorRepo.List(ctx, companyID, includeInactive)
}
