package repositories

import (
	"context"

	"github.com/rsystemautomacao/agrodrones/internal/models"

	"github.com/google/uuid"
)

type DroneRepository interface {
	Create(ctx context.Context, drone *models.Drone) error
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Drone, error)
	Update(ctx context.Context, drone *models.Drone) error
	// Deactivate soft-deletes a drone: it disappears from selection lists but
	// stays resolvable for historical applications.
	Deactivate(ctx context.Context, companyID, id uuid.UUID) error
	List(ctx context.Context, companyID uuid.UUID, includeInactive bool) ([]*models.Drone, error)
	CountActive(ctx context.Context, companyID uuid.UUID) (int, error)
}

type droneRepo struct {
	db Database
}

func NewDroneRepo(db Database) DroneRepository {
	return &droneRepo{db: db}
}

const droneColumns = `id, company_id, marca_modelo, identificacao_registro, capacidade_tanque, observacoes, active, created_at, updated_at`

func scanDrone(row interface{ Scan(dest ...any) error }) (*models.Drone, error) {
	drone := &models.Drone{}
	err := row.Scan(&drone.ID, &drone.CompanyID, &drone.MarcaModelo, &drone.IdentificacaoRegistro, &drone.CapacidadeTanque, &drone.Observacoes, &drone.Active, &drone.CreatedAt, &drone.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return drone, nil
}

func (r *droneRepo) Create(ctx context.Context, drone *models.Drone) error {
	query := `
		INSERT INTO drones (id, company_id, marca_modelo, identificacao_registro, capacidade_tanque, observacoes, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, drone.ID, drone.CompanyID, drone.MarcaModelo, drone.IdentificacaoRegistro, drone.CapacidadeTanque, drone.Observacoes)
	return err
}

func (r *droneRepo) GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Drone, error) {
	query := `
		SELECT ` + droneColumns + `
		FROM drones
		WHERE company_id = $1 AND id = $2
	`
	return scanDrone(r.db.QueryRow(ctx, query, companyID, id))
}

func (r *droneRepo) Update(ctx context.Context, drone *models.Drone) error {
	query := `
		UPDATE drones
		SET marca_modelo = $1, identificacao_registro = $2, capacidade_tanque = $3, observacoes = $4, updated_at = NOW()
		WHERE company_id = $5 AND id = $6
	`
	_, err := r.db.Exec(ctx, query, drone.MarcaModelo, drone.IdentificacaoRegistro, drone.CapacidadeTanque, drone.Observacoes, drone.CompanyID, drone.ID)
	return err
}

func (r *droneRepo) Deactivate(ctx context.Context, companyID, id uuid.UUID) error {
	query := `UPDATE drones SET active = FALSE, updated_at = NOW() WHERE company_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, companyID, id)
	return err
}

func (r *droneRepo) List(ctx context.Context, companyID uuid.UUID, includeInactive bool) ([]*models.Drone, error) {
	query := `
		SELECT ` + droneColumns + `
		FROM drones
		WHERE company_id = $1
	`
	if !includeInactive {
		query += ` AND active = TRUE`
	}
	query += ` ORDER BY marca_modelo`

	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drones []*models.Drone
	for rows.Next() {
		drone, err := scanDrone(rows)
		if err != nil {
			return nil, err
		}
		drones = append(drones, drone)
	}
	return drones, rows.Err()
}

func (r *droneRepo) CountActive(ctx context.Context, companyID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM drones WHERE company_id = $1 AND active = TRUE`, companyID).Scan(&count)
	return count, err
}
