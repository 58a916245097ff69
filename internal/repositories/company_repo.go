package repositories

import (
	"context"

	"github.com/rsystemautomacao/agrodrones/internal/models"

	"github.com/google/uuid"
)

type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	GetByCNPJ(ctx context.Context, cnpj string) (*models.Company, error)
	Update(ctx context.Context, company *models.Company) error
	// ListIDs returns every company ID, for background fan-out work.
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
	UpdateSettings(ctx context.Context, id uuid.UUID, settings models.CompanyDefaults) error
	UpdateLogoPath(ctx context.Context, id uuid.UUID, logoPath *string) error
	MarkOnboardingCompleted(ctx context.Context, id uuid.UUID) error
}

type companyRepo struct {
	db Database
}

func NewCompanyRepo(db Database) CompanyRepository {
	return &companyRepo{db: db}
}

const companyColumns = `id, razao_social, nome_fantasia, cnpj, inscricao_estadual, telefone, email, logradouro, numero, complemento, bairro, cidade, uf, cep, numero_registro_mapa, responsavel_tecnico, curso_credencial, observacoes, servicos_prestados, servicos_outros, logo_path, configuracoes, onboarding_completed, created_at, updated_at`

func scanCompany(row interface{ Scan(dest ...any) error }) (*models.Company, error) {
	c := &models.Company{}
	err := row.Scan(&c.ID, &c.RazaoSocial, &c.NomeFantasia, &c.CNPJ, &c.InscricaoEstadual, &c.Telefone, &c.Email, &c.Logradouro, &c.Numero, &c.Complemento, &c.Bairro, &c.Cidade, &c.UF, &c.CEP, &c.NumeroRegistroMAPA, &c.ResponsavelTecnico, &c.CursoCredencial, &c.Observacoes, &c.ServicosPrestados, &c.ServicosOutros, &c.LogoPath, &c.Configuracoes, &c.OnboardingCompleted, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *companyRepo) Create(ctx context.Context, company *models.Company) error {
	query := `
		INSERT INTO companies (id, razao_social, nome_fantasia, cnpj, inscricao_estadual, telefone, email, logradouro, numero, complemento, bairro, cidade, uf, cep, numero_registro_mapa, responsavel_tecnico, curso_credencial, observacoes, servicos_prestados, servicos_outros, logo_path, configuracoes, onboarding_completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, company.ID, company.RazaoSocial, company.NomeFantasia, company.CNPJ, company.InscricaoEstadual, company.Telefone, company.Email, company.Logradouro, company.Numero, company.Complemento, company.Bairro, company.Cidade, company.UF, company.CEP, company.NumeroRegistroMAPA, company.ResponsavelTecnico, company.CursoCredencial, company.Observacoes, company.ServicosPrestados, company.ServicosOutros, company.LogoPath, company.Configuracoes, company.OnboardingCompleted)
	return err
}

func (r *companyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	return scanCompany(r.db.QueryRow(ctx, query, id))
}

func (r *companyRepo) GetByCNPJ(ctx context.Context, cnpj string) (*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE cnpj = $1`
	return scanCompany(r.db.QueryRow(ctx, query, cnpj))
}

func (r *companyRepo) Update(ctx context.Context, company *models.Company) error {
	query := `
		UPDATE companies
		SET razao_social = $1, nome_fantasia = $2, cnpj = $3, inscricao_estadual = $4, telefone = $5, email = $6, logradouro = $7, numero = $8, complemento = $9, bairro = $10, cidade = $11, uf = $12, cep = $13, numero_registro_mapa = $14, responsavel_tecnico = $15, curso_credencial = $16, observacoes = $17, servicos_prestados = $18, servicos_outros = $19, updated_at = NOW()
		WHERE id = $20
	`
	_, err := r.db.Exec(ctx, query, company.RazaoSocial, company.NomeFantasia, company.CNPJ, company.InscricaoEstadual, company.Telefone, company.Email, company.Logradouro, company.Numero, company.Complemento, company.Bairro, company.Cidade, company.UF, company.CEP, company.NumeroRegistroMAPA, company.ResponsavelTecnico, company.CursoCredencial, company.Observacoes, company.ServicosPrestados, company.ServicosOutros, company.ID)
	return err
}

func (r *companyRepo) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM companies ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *companyRepo) UpdateSettings(ctx context.Context, id uuid.UUID, settings models.CompanyDefaults) error {
	query := `UPDATE companies SET configuracoes = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, settings, id)
	return err
}

func (r *companyRepo) UpdateLogoPath(ctx context.Context, id uuid.UUID, logoPath *string) error {
	query := `UPDATE companies SET logo_path = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, logoPath, id)
	return err
}

func (r *companyRepo) MarkOnboardingCompleted(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE companies SET onboarding_completed = TRUE, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
