package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"imovelhub-api/internal/domain"
)

// PostgresCompaniesRepository companies table access.
type PostgresCompaniesRepository struct {
	db *sql.DB
}

func NewPostgresCompaniesRepository(db *sql.DB) *PostgresCompaniesRepository {
	return &PostgresCompaniesRepository{db: db}
}

var _ CompaniesRepository = (*PostgresCompaniesRepository)(nil)

const companyColumns = `
	company_id::text,
	name,
	COALESCE(slug, '') as slug,
	COALESCE(logo_url, '') as logo_url,
	COALESCE(primary_color, '') as primary_color,
	COALESCE(secondary_color, '') as secondary_color,
	COALESCE(phone, '') as phone,
	COALESCE(whatsapp, '') as whatsapp,
	COALESCE(email, '') as email,
	COALESCE(website, '') as website,
	COALESCE(instagram, '') as instagram,
	COALESCE(facebook, '') as facebook,
	created_at,
	updated_at
`

func scanCompany(row interface{ Scan(...any) error }) (*domain.Company, error) {
	var c domain.Company
	err := row.Scan(
		&c.CompanyID,
		&c.Name,
		&c.Slug,
		&c.LogoURL,
		&c.PrimaryColor,
		&c.SecondaryColor,
		&c.Phone,
		&c.WhatsApp,
		&c.Email,
		&c.Website,
		&c.Instagram,
		&c.Facebook,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresCompaniesRepository) GetCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM companies WHERE company_id = $1::uuid`, companyColumns)
	c, err := scanCompany(r.db.QueryRowContext(ctx, query, companyID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return c, nil
}

func (r *PostgresCompaniesRepository) GetCompanyBySlug(ctx context.Context, slug string) (*domain.Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM companies WHERE slug = $1`, companyColumns)
	c, err := scanCompany(r.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company by slug: %w", err)
	}
	return c, nil
}

var companyUpdateColumns = map[string]bool{
	"name": true, "slug": true, "logo_url": true,
	"primary_color": true, "secondary_color": true,
	"phone": true, "whatsapp": true, "email": true,
	"website": true, "instagram": true, "facebook": true,
}

func (r *PostgresCompaniesRepository) UpdateCompany(ctx context.Context, companyID string, updates map[string]any) error {
	set := []string{"updated_at = NOW()"}
	args := []any{companyID}
	argIdx := 2

	for col, val := range updates {
		if !companyUpdateColumns[col] {
			continue
		}
		set = append(set, fmt.Sprintf("%s = $%d", col, argIdx))
		args = append(args, val)
		argIdx++
	}

	query := fmt.Sprintf(`UPDATE companies SET %s WHERE company_id = $1::uuid`, strings.Join(set, ", "))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCompanyNotFound
	}
	return nil
}
