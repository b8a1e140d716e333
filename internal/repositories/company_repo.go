package repositories

import (
	"context"

	"stockcast/internal/common"
	"stockcast/internal/models"

	"github.com/google/uuid"
)

type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	GetByEmail(ctx context.Context, email string) (*models.Company, error)
	Update(ctx context.Context, company *models.Company) error
	ListIDs(ctx context.Context, limit, offset int) ([]uuid.UUID, error)
}

type companyRepo struct {
	db Database
}

func NewCompanyRepo(db Database) CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) Create(ctx context.Context, company *models.Company) error {
	query := `
		INSERT INTO companies (id, name, email, password_hash, gst_number, phone, location, industry_type, website, logo_url, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, company.ID, company.Name, company.Email, company.PasswordHash, company.GSTNumber, company.Phone, company.Location, company.IndustryType, company.Website, company.LogoURL, company.IsVerified)
	return common.FromDatabase(err, "company")
}

func (r *companyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	company := &models.Company{}
	query := `
		SELECT id, name, email, password_hash, gst_number, phone, location, industry_type, website, logo_url, is_verified, created_at, updated_at
		FROM companies
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&company.ID, &company.Name, &company.Email, &company.PasswordHash, &company.GSTNumber, &company.Phone, &company.Location, &company.IndustryType, &company.Website, &company.LogoURL, &company.IsVerified, &company.CreatedAt, &company.UpdatedAt)
	if err != nil {
		return nil, common.FromDatabase(err, "company")
	}
	return company, nil
}

func (r *companyRepo) GetByEmail(ctx context.Context, email string) (*models.Company, error) {
	company := &models.Company{}
	query := `
		SELECT id, name, email, password_hash, gst_number, phone, location, industry_type, website, logo_url, is_verified, created_at, updated_at
		FROM companies
		WHERE email = $1
	`
	err := r.db.QueryRow(ctx, query, email).Scan(&company.ID, &company.Name, &company.Email, &company.PasswordHash, &company.GSTNumber, &company.Phone, &company.Location, &company.IndustryType, &company.Website, &company.LogoURL, &company.IsVerified, &company.CreatedAt, &company.UpdatedAt)
	if err != nil {
		return nil, common.FromDatabase(err, "company")
	}
	return company, nil
}

// ListIDs pages over every registered company. Background jobs use it to walk
// the tenant population without loading full rows.
func (r *companyRepo) ListIDs(ctx context.Context, limit, offset int) ([]uuid.UUID, error) {
	query := `
		SELECT id
		FROM companies
		ORDER BY created_at
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, common.FromDatabase(err, "company")
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, common.FromDatabase(err, "company")
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *companyRepo) Update(ctx context.Context, company *models.Company) error {
	query := `
		UPDATE companies
		SET name = $1, phone = $2, location = $3, industry_type = $4, website = $5, logo_url = $6, is_verified = $7, updated_at = NOW()
		WHERE id = $8
	`
	_, err := r.db.Exec(ctx, query, company.Name, company.Phone, company.Location, company.IndustryType, company.Website, company.LogoURL, company.IsVerified, company.ID)
	return common.FromDatabase(err, "company")
}
