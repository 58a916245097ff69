package repositories

import (
	"context"

	"github.com/rsystemautomacao/agrodrones/internal/models"

	"github.com/google/uuid"
)

type OperatorRepository interface {
	Create(ctx context.Context, operator *models.Operator) error
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Operator, error)
	Update(ctx context.Context, operator *models.Operator) error
	// Deactivate soft-deletes an operator, mirroring DroneRepository.
	Deactivate(ctx context.Context, companyID, id uuid.UUID) error
	List(ctx context.Context, companyID uuid.UUID, includeInactive bool) ([]*models.Operator, error)
}

type operatorRepo struct {
	db Database
}

func NewOperatorRepo(db Database) OperatorRepository {
	return &operatorRepo{db: db}
}

const operatorColumns = `id, company_id, nome, funcao, documento_registro, telefone, active, created_at, updated_at`

func scanOperator(row interface{ Scan(dest ...any) error }) (*models.Operator, error) {
	operator := &models.Operator{}
	err := row.Scan(&operator.ID, &operator.CompanyID, &operator.Nome, &operator.Funcao, &operator.DocumentoRegistro, &operator.Telefone, &operator.Active, &operator.CreatedAt, &operator.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return operator, nil
}

func (r *operatorRepo) Create(ctx context.Context, operator *models.Operator) error {
	query := `
		INSERT INTO operators (id, company_id, nome, funcao, documento_registro, telefone, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, operator.ID, operator.CompanyID, operator.Nome, operator.Funcao, operator.DocumentoRegistro, operator.Telefone)
	return err
}

func (r *operatorRepo) GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Operator, error) {
	query := `
		SELECT ` + operatorColumns + `
		FROM operators
		WHERE company_id = $1 AND id = $2
	`
	return scanOperator(r.db.QueryRow(ctx, query, companyID, id))
}

func (r *operatorRepo) Update(ctx context.Context, operator *models.Operator) error {
	query := `
		UPDATE operators
		SET nome = $1, funcao = $2, documento_registro = $3, telefone = $4, updated_at = NOW()
		WHERE company_id = $5 AND id = $6
	`
	_, err := r.db.Exec(ctx, query, operator.Nome, operator.Funcao, operator.DocumentoRegistro, operator.Telefone, operator.CompanyID, operator.ID)
	return err
}

func (r *operatorRepo) Deactivate(ctx context.Context, companyID, id uuid.UUID) error {
	query := `UPDATE operators SET active = FALSE, updated_at = NOW() WHERE company_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, companyID, id)
	return err
}

func (r *operatorRepo) List(ctx context.Context, companyID uuid.UUID, includeInactive bool) ([]*models.Operator, error) {
	query := `
		SELECT ` + operatorColumns + `
		FROM operators
		WHERE company_id = $1
	`
	if !includeInactive {
		query += ` AND active = TRUE`
	}
	query += ` ORDER BY nome`

	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var operators []*models.Operator
	for rows.Next() {
		operator, err := scanOperator(rows)
		if err != nil {
			return nil, err
		}
		operators = append(operators, operator)
	}
	return operators, rows.Err()
}
