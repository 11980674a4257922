package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"imovelhub-api/internal/domain"
)

// PostgresTemplatesRepository templates table access.
type PostgresTemplatesRepository struct {
	db *sql.DB
}

func NewPostgresTemplatesRepository(db *sql.DB) *PostgresTemplatesRepository {
	return &PostgresTemplatesRepository{db: db}
}

var _ TemplatesRepository = (*PostgresTemplatesRepository)(nil)

const templateColumns = `
	template_id::text,
	company_id::text,
	name,
	kind,
	COALESCE(platform, '') as platform,
	COALESCE(content, '') as content,
	COALESCE(is_default, FALSE) as is_default,
	COALESCE(archived, FALSE) as archived,
	COALESCE(photo_columns, 2) as photo_columns,
	COALESCE(photo_placement, 'after_text') as photo_placement,
	COALESCE(max_photos, 6) as max_photos,
	created_at,
	updated_at
`

func scanTemplate(row interface{ Scan(...any) error }) (*domain.Template, error) {
	var t domain.Template
	err := row.Scan(
		&t.TemplateID,
		&t.CompanyID,
		&t.Name,
		&t.Kind,
		&t.Platform,
		&t.Content,
		&t.IsDefault,
		&t.Archived,
		&t.PhotoColumns,
		&t.PhotoPlacement,
		&t.MaxPhotos,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PostgresTemplatesRepository) ListTemplates(ctx context.Context, companyID string, filter TemplateFilters) ([]*domain.Template, error) {
	where := []string{"company_id = $1::uuid"}
	args := []any{companyID}
	argIdx := 2

	if !filter.IncludeArchived {
		where = append(where, "COALESCE(archived, FALSE) = FALSE")
	}
	if filter.Kind != "" {
		where = append(where, fmt.Sprintf("kind = $%d", argIdx))
		args = append(args, filter.Kind)
		argIdx++
	}
	if filter.Platform != "" {
		where = append(where, fmt.Sprintf("COALESCE(platform, '') = $%d", argIdx))
		args = append(args, filter.Platform)
		argIdx++
	}

	query := fmt.Sprintf(`SELECT %s FROM templates WHERE %s ORDER BY is_default DESC, name ASC`,
		templateColumns, strings.Join(where, " AND "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var templates []*domain.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func (r *PostgresTemplatesRepository) GetTemplate(ctx context.Context, companyID, templateID string) (*domain.Template, error) {
	query := fmt.Sprintf(`SELECT %s FROM templates WHERE company_id = $1::uuid AND template_id = $2::uuid`, templateColumns)
	t, err := scanTemplate(r.db.QueryRowContext(ctx, query, companyID, templateID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return t, nil
}

func (r *PostgresTemplatesRepository) GetDefaultTemplate(ctx context.Context, companyID, kind, platform string) (*domain.Template, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM templates
		WHERE company_id = $1::uuid
		  AND kind = $2
		  AND COALESCE(platform, '') = $3
		  AND COALESCE(is_default, FALSE) = TRUE
		  AND COALESCE(archived, FALSE) = FALSE
		LIMIT 1`, templateColumns)
	t, err := scanTemplate(r.db.QueryRowContext(ctx, query, companyID, kind, platform))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNoDefaultTemplate
		}
		return nil, fmt.Errorf("failed to get default template: %w", err)
	}
	return t, nil
}

func (r *PostgresTemplatesRepository) CreateTemplate(ctx context.Context, t *domain.Template) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO templates (
			template_id, company_id, name, kind, platform, content,
			is_default, archived, photo_columns, photo_placement, max_photos
		) VALUES ($1::uuid, $2::uuid, $3, $4, NULLIF($5, ''), $6, $7, FALSE, $8, $9, $10)`,
		t.TemplateID, t.CompanyID, t.Name, t.Kind, t.Platform, t.Content,
		t.IsDefault, t.PhotoColumns, t.PhotoPlacement, t.MaxPhotos,
	)
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

// templateUpdateColumns whitelists updatable columns.
var templateUpdateColumns = map[string]bool{
	"name":            true,
	"platform":        true,
	"content":         true,
	"is_default":      true,
	"photo_columns":   true,
	"photo_placement": true,
	"max_photos":      true,
}

func (r *PostgresTemplatesRepository) UpdateTemplate(ctx context.Context, companyID, templateID string, updates map[string]any) error {
	set := []string{"updated_at = NOW()"}
	args := []any{companyID, templateID}
	argIdx := 3

	for col, val := range updates {
		if !templateUpdateColumns[col] {
			continue
		}
		set = append(set, fmt.Sprintf("%s = $%d", col, argIdx))
		args = append(args, val)
		argIdx++
	}

	query := fmt.Sprintf(`UPDATE templates SET %s WHERE company_id = $1::uuid AND template_id = $2::uuid`,
		strings.Join(set, ", "))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func (r *PostgresTemplatesRepository) ArchiveTemplate(ctx context.Context, companyID, templateID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE templates
		SET archived = TRUE, is_default = FALSE, updated_at = NOW()
		WHERE company_id = $1::uuid AND template_id = $2::uuid`,
		companyID, templateID,
	)
	if err != nil {
		return fmt.Errorf("failed to archive template: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func (r *PostgresTemplatesRepository) ClearDefaults(ctx context.Context, companyID, kind, platform string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE templates
		SET is_default = FALSE, updated_at = NOW()
		WHERE company_id = $1::uuid
		  AND kind = $2
		  AND COALESCE(platform, '') = $3
		  AND COALESCE(archived, FALSE) = FALSE`,
		companyID, kind, platform,
	)
	if err != nil {
		return fmt.Errorf("failed to clear default templates: %w", err)
	}
	return nil
}
