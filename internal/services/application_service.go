package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rsystemautomacao/agrodrones/internal/models"
	"github.com/rsystemautomacao/agrodrones/internal/repositories"

	"github.com/google/uuid"
)

type ApplicationService interface {
	Create(ctx context.Context, companyID uuid.UUID, app *models.Application) error
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Application, error)
	Update(ctx context.Context, companyID uuid.UUID, app *models.Application) error
	// UpdateRelatorioOperacional replaces only the Anexo XI override block,
	// leaving the recorded application facts untouched.
	UpdateRelatorioOperacional(ctx context.Context, companyID, id uuid.UUID, ro models.RelatorioOperacional) error
	Delete(ctx context.Context, companyID, id uuid.UUID) error
	Search(ctx context.Context, companyID uuid.UUID, filter *models.ApplicationFilter) ([]*models.Application, error)
	// Duplicate copies an application as a fresh record: new ID, start/end
	// stamped now, no evidence attachments carried over.
	Duplicate(ctx context.Context, companyID, id uuid.UUID, createdBy *uuid.UUID) (*models.Application, error)
}

type applicationService struct {
	applicationRepo repositories.ApplicationRepository
	clientRepo      repositories.ClientRepository
	droneRepo       repositories.DroneRepository
	operatorRepo    repositories.OperatorRepository
	companyRepo     repositories.CompanyRepository
}

func NewApplicationService(applicationRepo repositories.ApplicationRepository, clientRepo repositories.ClientRepository, droneRepo repositories.DroneRepository, operatorRepo repositories.OperatorRepository, companyRepo repositories.CompanyRepository) ApplicationService {
	return &applicationService{
		applicationRepo: applicationRepo,
		clientRepo:      clientRepo,
		droneRepo:       droneRepo,
		operatorRepo:    operatorRepo,
		companyRepo:     companyRepo,
	}
}

func validateApplication(app *models.Application) error {
	if !models.ValidActivityTypes[app.TipoAtividade] {
		return fmt.Errorf("invalid tipo de atividade: %s", app.TipoAtividade)
	}
	if app.CulturaTratada == "" {
		return errors.New("cultura tratada is required")
	}
	if app.AreaTratada <= 0 {
		return errors.New("área tratada must be positive")
	}
	if app.DataHoraInicio.IsZero() || app.DataHoraTermino.IsZero() {
		return errors.New("data/hora de início and término are required")
	}
	if !app.DataHoraTermino.After(app.DataHoraInicio) {
		return errors.New("data/hora de término must be after início")
	}
	return nil
}

// checkReferences verifies that the client, drone and operator all belong to
// the acting tenant. Records of other tenants are indistinguishable from
// missing ones.
func (s *applicationService) checkReferences(ctx context.Context, companyID uuid.UUID, app *models.Application) error {
	if _, err := s.clientRepo.GetByID(ctx, companyID, app.ClientID); err != nil {
		return fmt.Errorf("client not found: %w", err)
	}
	if _, err := s.droneRepo.GetByID(ctx, companyID, app.DroneID); err != nil {
		return fmt.Errorf("drone not found: %w", err)
	}
	if _, err := s.operatorRepo.GetByID(ctx, companyID, app.OperatorID); err != nil {
		return fmt.Errorf("operator not found: %w", err)
	}
	return nil
}

// applyCompanyDefaults pre-fills empty equipment parameters from the
// company's configured defaults.
func (s *applicationService) applyCompanyDefaults(ctx context.Context, companyID uuid.UUID, app *models.Application) {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return
	}
	defaults := company.Configuracoes
	params := &app.RelatorioOperacional.ParametrosBasicos
	if params.Equipamento == "" {
		params.Equipamento = defaults.Equipamento
	}
	if params.Modelo == "" {
		params.Modelo = defaults.Modelo
	}
	if params.Tipo == "" {
		params.Tipo = defaults.Tipo
	}
	if params.Angulo == "" {
		params.Angulo = defaults.Angulo
	}
	if params.AlturaVoo == nil && defaults.AlturaVoo != nil {
		v := *defaults.AlturaVoo
		params.AlturaVoo = &v
	}
}

func (s *applicationService) Create(ctx context.Context, companyID uuid.UUID, app *models.Application) error {
	if err := validateApplication(app); err != nil {
		return err
	}
	if err := s.checkReferences(ctx, companyID, app); err != nil {
		return err
	}
	app.ID = uuid.New()
	app.CompanyID = companyID
	s.applyCompanyDefaults(ctx, companyID, app)
	return s.applicationRepo.Create(ctx, app)
}

func (s *applicationService) GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Application, error) {
	return s.applicationRepo.GetByID(ctx, companyID, id)
}

func (s *applicationService) Update(ctx context.Context, companyID uuid.UUID, app *models.Application) error {
	if err := validateApplication(app); err != nil {
		return err
	}
	app.CompanyID = companyID
	if _, err := s.applicationRepo.GetByID(ctx, companyID, app.ID); err != nil {
		return err
	}
	if err := s.checkReferences(ctx, companyID, app); err != nil {
		return err
	}
	return s.applicationRepo.Update(ctx, app)
}

func (s *applicationService) UpdateRelatorioOperacional(ctx context.Context, companyID, id uuid.UUID, ro models.RelatorioOperacional) error {
	app, err := s.applicationRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return err
	}
	app.RelatorioOperacional = ro
	return s.applicationRepo.Update(ctx, app)
}

func (s *applicationService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	if _, err := s.applicationRepo.GetByID(ctx, companyID, id); err != nil {
		return err
	}
	return s.applicationRepo.Delete(ctx, companyID, id)
}

func (s *applicationService) Search(ctx context.Context, companyID uuid.UUID, filter *models.ApplicationFilter) ([]*models.Application, error) {
	return s.applicationRepo.Search(ctx, companyID, filter)
}

func (s *applicationService) Duplicate(ctx context.Context, companyID, id uuid.UUID, createdBy *uuid.UUID) (*models.Application, error) {
	original, err := s.applicationRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	copied := *original
	copied.ID = uuid.New()
	copied.DataHoraInicio = now
	copied.DataHoraTermino = now.Add(time.Minute)
	copied.Evidencias = nil
	copied.CreatedBy = createdBy

	if err := s.applicationRepo.Create(ctx, &copied); err != nil {
		return nil, err
	}
	return &copied, nil
}
