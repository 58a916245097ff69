package repositories

import (
	"context"

	"github.com/rsystemautomacao/agrodrones/internal/models"

	"github.com/google/uuid"
)

type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Client, error)
	Update(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, companyID, id uuid.UUID) error
	List(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.Client, error)
	// ListAll returns every client of the tenant, for join resolution.
	ListAll(ctx context.Context, companyID uuid.UUID) ([]*models.Client, error)
	Count(ctx context.Context, companyID uuid.UUID) (int, error)
}

type clientRepo struct {
	db Database
}

func NewClientRepo(db Database) ClientRepository {
	return &clientRepo{db: db}
}

const clientColumns = `id, company_id, nome_razao_social, cpf_cnpj, propriedade_fazenda, endereco_localizacao, municipio, uf, observacoes, created_at, updated_at`

func scanClient(row interface{ Scan(dest ...any) error }) (*models.Client, error) {
	client := &models.Client{}
	err := row.Scan(&client.ID, &client.CompanyID, &client.NomeRazaoSocial, &client.CPFCNPJ, &client.PropriedadeFazenda, &client.EnderecoLocalizacao, &client.Municipio, &client.UF, &client.Observacoes, &client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (r *clientRepo) Create(ctx context.Context, client *models.Client) error {
	query := `
		INSERT INTO clients (id, company_id, nome_razao_social, cpf_cnpj, propriedade_fazenda, endereco_localizacao, municipio, uf, observacoes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, client.ID, client.CompanyID, client.NomeRazaoSocial, client.CPFCNPJ, client.PropriedadeFazenda, client.EnderecoLocalizacao, client.Municipio, client.UF, client.Observacoes)
	return err
}

func (r *clientRepo) GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE company_id = $1 AND id = $2
	`
	return scanClient(r.db.QueryRow(ctx, query, companyID, id))
}

func (r *clientRepo) Update(ctx context.Context, client *models.Client) error {
	query := `
		UPDATE clients
		SET nome_razao_social = $1, cpf_cnpj = $2, propriedade_fazenda = $3, endereco_localizacao = $4, municipio = $5, uf = $6, observacoes = $7, updated_at = NOW()
		WHERE company_id = $8 AND id = $9
	`
	_, err := r.db.Exec(ctx, query, client.NomeRazaoSocial, client.CPFCNPJ, client.PropriedadeFazenda, client.EnderecoLocalizacao, client.Municipio, client.UF, client.Observacoes, client.CompanyID, client.ID)
	return err
}

func (r *clientRepo) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	query := `DELETE FROM clients WHERE company_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, companyID, id)
	return err
}

func (r *clientRepo) List(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE company_id = $1
		ORDER BY nome_razao_social
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	return clients, rows.Err()
}

func (r *clientRepo) ListAll(ctx context.Context, companyID uuid.UUID) ([]*models.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE company_id = $1
		ORDER BY nome_razao_social
	`
	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	return clients, rows.Err()
}

func (r *clientRepo) Count(ctx context.Context, companyID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM clients WHERE company_id = $1`, companyID).Scan(&count)
	return count, err
}
