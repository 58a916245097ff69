package repositories

import (
	"context"

	"github.com/rsystemautomacao/agrodrones/internal/models"

	"github.com/google/uuid"
)

type FileRepository interface {
	Create(ctx context.Context, file *models.File) error
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.File, error)
	ListByApplication(ctx context.Context, companyID, applicationID uuid.UUID) ([]*models.File, error)
	ListByCategory(ctx context.Context, companyID uuid.UUID, category string) ([]*models.File, error)
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}

type fileRepo struct {
	db Database
}

func NewFileRepo(db Database) FileRepository {
	return &fileRepo{db: db}
}

const fileColumns = `id, company_id, filename, original_name, mime_type, size, path, category, application_id, uploaded_by, uploaded_at`

func scanFile(row interface{ Scan(dest ...any) error }) (*models.File, error) {
	f := &models.File{}
	err := row.Scan(&f.ID, &f.CompanyID, &f.Filename, &f.OriginalName, &f.MimeType, &f.Size, &f.Path, &f.Category, &f.ApplicationID, &f.UploadedBy, &f.UploadedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *fileRepo) Create(ctx context.Context, file *models.File) error {
	query := `
		INSERT INTO files (id, company_id, filename, original_name, mime_type, size, path, category, application_id, uploaded_by, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
	`
	_, err := r.db.Exec(ctx, query, file.ID, file.CompanyID, file.Filename, file.OriginalName, file.MimeType, file.Size, file.Path, file.Category, file.ApplicationID, file.UploadedBy)
	return err
}

func (r *fileRepo) GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE company_id = $1 AND id = $2`
	return scanFile(r.db.QueryRow(ctx, query, companyID, id))
}

func (r *fileRepo) ListByApplication(ctx context.Context, companyID, applicationID uuid.UUID) ([]*models.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE company_id = $1 AND application_id = $2 ORDER BY uploaded_at`
	return r.list(ctx, query, companyID, applicationID)
}

func (r *fileRepo) ListByCategory(ctx context.Context, companyID uuid.UUID, category string) ([]*models.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE company_id = $1 AND category = $2 ORDER BY uploaded_at DESC`
	return r.list(ctx, query, companyID, category)
}

func (r *fileRepo) list(ctx context.Context, query string, args ...any) ([]*models.File, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []*models.File
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func (r *fileRepo) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	query := `DELETE FROM files WHERE company_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, companyID, id)
	return err
}
