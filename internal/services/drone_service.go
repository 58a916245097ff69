package services

import (
	"context"
	"errors"

	"github.com/rsystemautomacao/agrodrones/internal/models"
	"github.com/rsystemautomacao/agrodrones/internal/repositories"

	"github.com/google/uuid"
)

type DroneService interface {
	Create(ctx context.Context, companyID uuid.UUID, drone *models.Drone) error
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Drone, error)
	Update(ctx context.Context, companyID uuid.UUID, drone *models.Drone) error
	Deactivate(ctx context.Context, companyID, id uuid.UUID) error
	List(ctx context.Context, companyID uuid.UUID, includeInactive bool) ([]*models.Drone, error)
}

type droneService struct {
	droneRepo repositories.DroneRepository
}

func NewDroneService(droneRepo repositories.DroneRepository) DroneService {
	return &droneService{droneRepo: droneRepo}
}

func validateDrone(drone *models.Drone) error {
	if drone.MarcaModelo == "" {
		return errors.New("marca/modelo is required")
	}
	if drone.IdentificacaoRegistro == "" {
		return errors.New("identificação/registro ANAC is required")
	}
	if drone.CapacidadeTanque != nil && *drone.CapacidadeTanque <= 0 {
		return errors.New("capacidade do tanque must be positive")
	}
	return nil
}

func (s *droneService) Create(ctx context.Context, companyID uuid.UUID, drone *models.Drone) error {
	if err := validateDrone(drone); err != nil {
		return err
	}
	drone.ID = uuid.New()
	drone.CompanyID = companyID
	drone.Active = true
	return s.droneRepo.Create(ctx, drone)
}

func (s *droneService) GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Drone, error) {
	return s.droneRepo.GetByID(ctx, companyID, id)
}

func (s *droneService) Update(ctx context.Context, companyID uuid.UUID, drone *models.Drone) error {
	if err := validateDrone(drone); err != nil {
		return err
	}
	drone.CompanyID = companyID
	if _, err := s.droneRepo.GetByID(ctx, companyID, drone.ID); err != nil {
		return err
	}
	return s.droneRepo.Update(ctx, drone)
}

func (s *droneService) Deactivate(ctx context.Context, companyID, id uuid.UUID) error {
	if _, err := s.droneRepo.GetByID(ctx, companyID, id); err != nil {
		return err
	}
	return s.droneRepo.Deactivate(ctx, companyID, id)
}

func (s *droneService) List(ctx context.Context, companyID uuid.UUID, includeInactive bool) ([]*models.Drone, error) {
	return s.droneRepo.List(ctx, companyID, includeInactive)
}
