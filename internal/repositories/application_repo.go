package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/rsystemautomacao/agrodrones/internal/models"

	"github.com/google/uuid"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Application, error)
	Update(ctx context.Context, app *models.Application) error
	Delete(ctx context.Context, companyID, id uuid.UUID) error
	// Search returns applications matching the filter predicate, newest
	// data_hora_inicio first. Municipality/UF criteria are not part of the
	// predicate (they live on the joined client) and are the caller's
	// responsibility after join resolution.
	Search(ctx context.Context, companyID uuid.UUID, filter *models.ApplicationFilter) ([]*models.Application, error)
	CountMatching(ctx context.Context, companyID uuid.UUID, filter *models.ApplicationFilter) (int, error)
	CountStartedSince(ctx context.Context, companyID uuid.UUID, since time.Time) (int, error)
	CountStartedBetween(ctx context.Context, companyID uuid.UUID, from, to time.Time) (int, error)
}

type applicationRepo struct {
	db Database
}

func NewApplicationRepo(db Database) ApplicationRepository {
	return &applicationRepo{db: db}
}

// startOfDay and endOfDay pin a calendar date to its first and last second.
// The report filter treats the end date as inclusive even though the user
// supplies a bare date, so endOfDay lands on 23:59:59.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// BuildApplicationPredicate translates the flat filter criteria plus the
// acting tenant into a WHERE clause and its arguments. The tenant constraint
// is always present; every other key is optional and unrecognized enum
// values are dropped rather than rejected.
func BuildApplicationPredicate(companyID uuid.UUID, filter *models.ApplicationFilter) (string, []any) {
	where := "company_id = $1"
	args := []any{companyID}

	if filter == nil {
		return where, args
	}

	if filter.DateFrom != nil {
		args = append(args, startOfDay(*filter.DateFrom))
		where += fmt.Sprintf(" AND data_hora_inicio >= $%d", len(args))
	}
	if filter.DateTo != nil {
		args = append(args, endOfDay(*filter.DateTo))
		where += fmt.Sprintf(" AND data_hora_inicio <= $%d", len(args))
	}
	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		where += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if filter.DroneID != nil {
		args = append(args, *filter.DroneID)
		where += fmt.Sprintf(" AND drone_id = $%d", len(args))
	}
	if filter.OperatorID != nil {
		args = append(args, *filter.OperatorID)
		where += fmt.Sprintf(" AND operator_id = $%d", len(args))
	}
	if models.ValidActivityTypes[filter.TipoAtividade] {
		args = append(args, filter.TipoAtividade)
		where += fmt.Sprintf(" AND tipo_atividade = $%d", len(args))
	}
	if filter.Cultura != "" {
		args = append(args, "%"+filter.Cultura+"%")
		where += fmt.Sprintf(" AND cultura_tratada ILIKE $%d", len(args))
	}

	return where, args
}

const applicationColumns = `id, company_id, client_id, drone_id, operator_id, data_hora_inicio, data_hora_termino, coordenadas_geograficas, cultura_tratada, area_tratada, tipo_atividade, marca_comercial, volume, dosagem_aplicada, altura_voo, meteorologia, relatorio_operacional, evidencias, created_by, created_at, updated_at`

func scanApplication(row interface{ Scan(dest ...any) error }) (*models.Application, error) {
	app := &models.Application{}
	err := row.Scan(&app.ID, &app.CompanyID, &app.ClientID, &app.DroneID, &app.OperatorID, &app.DataHoraInicio, &app.DataHoraTermino, &app.CoordenadasGeograficas, &app.CulturaTratada, &app.AreaTratada, &app.TipoAtividade, &app.MarcaComercial, &app.Volume, &app.DosagemAplicada, &app.AlturaVoo, &app.Meteorologia, &app.RelatorioOperacional, &app.Evidencias, &app.CreatedBy, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (r *applicationRepo) Create(ctx context.Context, app *models.Application) error {
	query := `
		INSERT INTO applications (id, company_id, client_id, drone_id, operator_id, data_hora_inicio, data_hora_termino, coordenadas_geograficas, cultura_tratada, area_tratada, tipo_atividade, marca_comercial, volume, dosagem_aplicada, altura_voo, meteorologia, relatorio_operacional, evidencias, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, app.ID, app.CompanyID, app.ClientID, app.DroneID, app.OperatorID, app.DataHoraInicio, app.DataHoraTermino, app.CoordenadasGeograficas, app.CulturaTratada, app.AreaTratada, app.TipoAtividade, app.MarcaComercial, app.Volume, app.DosagemAplicada, app.AlturaVoo, app.Meteorologia, app.RelatorioOperacional, app.Evidencias, app.CreatedBy)
	return err
}

func (r *applicationRepo) GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE company_id = $1 AND id = $2
	`
	return scanApplication(r.db.QueryRow(ctx, query, companyID, id))
}

func (r *applicationRepo) Update(ctx context.Context, app *models.Application) error {
	query := `
		UPDATE applications
		SET client_id = $1, drone_id = $2, operator_id = $3, data_hora_inicio = $4, data_hora_termino = $5, coordenadas_geograficas = $6, cultura_tratada = $7, area_tratada = $8, tipo_atividade = $9, marca_comercial = $10, volume = $11, dosagem_aplicada = $12, altura_voo = $13, meteorologia = $14, relatorio_operacional = $15, evidencias = $16, updated_at = NOW()
		WHERE company_id = $17 AND id = $18
	`
	_, err := r.db.Exec(ctx, query, app.ClientID, app.DroneID, app.OperatorID, app.DataHoraInicio, app.DataHoraTermino, app.CoordenadasGeograficas, app.CulturaTratada, app.AreaTratada, app.TipoAtividade, app.MarcaComercial, app.Volume, app.DosagemAplicada, app.AlturaVoo, app.Meteorologia, app.RelatorioOperacional, app.Evidencias, app.CompanyID, app.ID)
	return err
}

func (r *applicationRepo) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	query := `DELETE FROM applications WHERE company_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, companyID, id)
	return err
}

func (r *applicationRepo) Search(ctx context.Context, companyID uuid.UUID, filter *models.ApplicationFilter) ([]*models.Application, error) {
	where, args := BuildApplicationPredicate(companyID, filter)

	query := `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE ` + where + `
		ORDER BY data_hora_inicio DESC`

	if filter != nil && filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		if filter.Offset > 0 {
			args = append(args, filter.Offset)
			query += fmt.Sprintf(" OFFSET $%d", len(args))
		}
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []*models.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (r *applicationRepo) CountMatching(ctx context.Context, companyID uuid.UUID, filter *models.ApplicationFilter) (int, error) {
	where, args := BuildApplicationPredicate(companyID, filter)
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE `+where, args...).Scan(&count)
	return count, err
}

func (r *applicationRepo) CountStartedSince(ctx context.Context, companyID uuid.UUID, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE company_id = $1 AND data_hora_inicio >= $2`, companyID, since).Scan(&count)
	return count, err
}

func (r *applicationRepo) CountStartedBetween(ctx context.Context, companyID uuid.UUID, from, to time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE company_id = $1 AND data_hora_inicio >= $2 AND data_hora_inicio < $3`, companyID, from, to).Scan(&count)
	return count, err
}
