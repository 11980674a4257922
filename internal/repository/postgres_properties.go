package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"imovelhub-api/internal/domain"
)

// PostgresPropertiesRepository properties + property_images table access.
type PostgresPropertiesRepository struct {
	db *sql.DB
}

func NewPostgresPropertiesRepository(db *sql.DB) *PostgresPropertiesRepository {
	return &PostgresPropertiesRepository{db: db}
}

var _ PropertiesRepository = (*PostgresPropertiesRepository)(nil)

const propertyColumns = `
	property_id::text,
	company_id::text,
	title,
	COALESCE(code, '') as code,
	COALESCE(purpose, 'sale') as purpose,
	COALESCE(status, 'draft') as status,
	COALESCE(kind, '') as kind,
	sale_price,
	rental_price,
	condominium_fee,
	iptu,
	bedrooms,
	suites,
	bathrooms,
	covered_parking,
	uncovered_parking,
	total_area,
	useful_area,
	COALESCE(street, '') as street,
	COALESCE(number, '') as number,
	COALESCE(complement, '') as complement,
	COALESCE(neighborhood, '') as neighborhood,
	COALESCE(city, '') as city,
	COALESCE(state, '') as state,
	COALESCE(postal_code, '') as postal_code,
	COALESCE(owner_name, '') as owner_name,
	COALESCE(owner_cpf_cnpj, '') as owner_cpf_cnpj,
	COALESCE(owner_email, '') as owner_email,
	COALESCE(owner_phone, '') as owner_phone,
	COALESCE(description, '') as description,
	COALESCE(features, '[]'::jsonb) as features,
	created_at,
	updated_at
`

func scanProperty(row interface{ Scan(...any) error }) (*domain.Property, error) {
	var p domain.Property
	var featuresRaw json.RawMessage
	err := row.Scan(
		&p.PropertyID,
		&p.CompanyID,
		&p.Title,
		&p.Code,
		&p.Purpose,
		&p.Status,
		&p.Kind,
		&p.SalePrice,
		&p.RentalPrice,
		&p.CondominiumFee,
		&p.IPTU,
		&p.Bedrooms,
		&p.Suites,
		&p.Bathrooms,
		&p.CoveredParking,
		&p.UncoveredParking,
		&p.TotalArea,
		&p.UsefulArea,
		&p.Street,
		&p.Number,
		&p.Complement,
		&p.Neighborhood,
		&p.City,
		&p.State,
		&p.PostalCode,
		&p.OwnerName,
		&p.OwnerCPFCNPJ,
		&p.OwnerEmail,
		&p.OwnerPhone,
		&p.Description,
		&featuresRaw,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(featuresRaw) > 0 {
		if err := json.Unmarshal(featuresRaw, &p.Features); err != nil {
			return nil, fmt.Errorf("failed to decode features: %w", err)
		}
	}
	return &p, nil
}

func (r *PostgresPropertiesRepository) ListProperties(ctx context.Context, companyID string, filter PropertyFilters, page, size int) ([]*domain.Property, int, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 50
	}
	offset := (page - 1) * size

	where := []string{"company_id = $1::uuid"}
	args := []any{companyID}
	argIdx := 2

	if filter.Status != "" {
		where = append(where, fmt.Sprintf("COALESCE(status, 'draft') = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.Purpose != "" {
		where = append(where, fmt.Sprintf("COALESCE(purpose, 'sale') = $%d", argIdx))
		args = append(args, filter.Purpose)
		argIdx++
	}
	if filter.City != "" {
		where = append(where, fmt.Sprintf("city ILIKE $%d", argIdx))
		args = append(args, filter.City)
		argIdx++
	}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR code ILIKE $%d OR neighborhood ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM properties WHERE %s`, whereClause)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count properties: %w", err)
	}
	if total == 0 {
		return nil, 0, nil
	}

	query := fmt.Sprintf(`
		SELECT %s FROM properties
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		propertyColumns, whereClause, argIdx, argIdx+1)
	args = append(args, size, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	var properties []*domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, p)
	}
	return properties, total, rows.Err()
}

// GetProperty loads the record fresh, including its images.
func (r *PostgresPropertiesRepository) GetProperty(ctx context.Context, companyID, propertyID string) (*domain.Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM properties WHERE company_id = $1::uuid AND property_id = $2::uuid`, propertyColumns)
	p, err := scanProperty(r.db.QueryRowContext(ctx, query, companyID, propertyID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	images, err := r.ListImages(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	p.Images = images
	return p, nil
}

func (r *PostgresPropertiesRepository) CreateProperty(ctx context.Context, p *domain.Property) error {
	features, err := json.Marshal(p.Features)
	if err != nil {
		return fmt.Errorf("failed to encode features: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO properties (
			property_id, company_id, title, code, purpose, status, kind,
			sale_price, rental_price, condominium_fee, iptu,
			bedrooms, suites, bathrooms, covered_parking, uncovered_parking,
			total_area, useful_area,
			street, number, complement, neighborhood, city, state, postal_code,
			owner_name, owner_cpf_cnpj, owner_email, owner_phone,
			description, features
		) VALUES (
			$1::uuid, $2::uuid, $3, $4, $5, $6, $7,
			$8, $9, $10, $11,
			$12, $13, $14, $15, $16,
			$17, $18,
			$19, $20, $21, $22, $23, $24, $25,
			$26, $27, $28, $29,
			$30, $31::jsonb
		)`,
		p.PropertyID, p.CompanyID, p.Title, p.Code, p.Purpose, p.Status, p.Kind,
		p.SalePrice, p.RentalPrice, p.CondominiumFee, p.IPTU,
		p.Bedrooms, p.Suites, p.Bathrooms, p.CoveredParking, p.UncoveredParking,
		p.TotalArea, p.UsefulArea,
		p.Street, p.Number, p.Complement, p.Neighborhood, p.City, p.State, p.PostalCode,
		p.OwnerName, p.OwnerCPFCNPJ, p.OwnerEmail, p.OwnerPhone,
		p.Description, features,
	)
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

var propertyUpdateColumns = map[string]bool{
	"title": true, "code": true, "purpose": true, "status": true, "kind": true,
	"sale_price": true, "rental_price": true, "condominium_fee": true, "iptu": true,
	"bedrooms": true, "suites": true, "bathrooms": true,
	"covered_parking": true, "uncovered_parking": true,
	"total_area": true, "useful_area": true,
	"street": true, "number": true, "complement": true, "neighborhood": true,
	"city": true, "state": true, "postal_code": true,
	"owner_name": true, "owner_cpf_cnpj": true, "owner_email": true, "owner_phone": true,
	"description": true, "features": true,
}

func (r *PostgresPropertiesRepository) UpdateProperty(ctx context.Context, companyID, propertyID string, updates map[string]any) error {
	set := []string{"updated_at = NOW()"}
	args := []any{companyID, propertyID}
	argIdx := 3

	for col, val := range updates {
		if !propertyUpdateColumns[col] {
			continue
		}
		if col == "features" {
			encoded, err := json.Marshal(val)
			if err != nil {
				return fmt.Errorf("failed to encode features: %w", err)
			}
			set = append(set, fmt.Sprintf("features = $%d::jsonb", argIdx))
			args = append(args, encoded)
			argIdx++
			continue
		}
		set = append(set, fmt.Sprintf("%s = $%d", col, argIdx))
		args = append(args, val)
		argIdx++
	}

	query := fmt.Sprintf(`UPDATE properties SET %s WHERE company_id = $1::uuid AND property_id = $2::uuid`,
		strings.Join(set, ", "))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (r *PostgresPropertiesRepository) DeleteProperty(ctx context.Context, companyID, propertyID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM properties WHERE company_id = $1::uuid AND property_id = $2::uuid`,
		companyID, propertyID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (r *PostgresPropertiesRepository) ListImages(ctx context.Context, propertyID string) ([]domain.PropertyImage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT image_id::text, property_id::text, url,
		       COALESCE(is_cover, FALSE), COALESCE(display_order, 0), created_at
		FROM property_images
		WHERE property_id = $1::uuid
		ORDER BY is_cover DESC, display_order ASC`,
		propertyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	defer rows.Close()

	var images []domain.PropertyImage
	for rows.Next() {
		var img domain.PropertyImage
		if err := rows.Scan(&img.ImageID, &img.PropertyID, &img.URL, &img.IsCover, &img.DisplayOrder, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *PostgresPropertiesRepository) AddImage(ctx context.Context, img *domain.PropertyImage) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO property_images (image_id, property_id, url, is_cover, display_order)
		VALUES ($1::uuid, $2::uuid, $3, $4, $5)`,
		img.ImageID, img.PropertyID, img.URL, img.IsCover, img.DisplayOrder,
	)
	if err != nil {
		return fmt.Errorf("failed to add image: %w", err)
	}
	return nil
}

func (r *PostgresPropertiesRepository) DeleteImage(ctx context.Context, propertyID, imageID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM property_images WHERE property_id = $1::uuid AND image_id = $2::uuid`,
		propertyID, imageID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrImageNotFound
	}
	return nil
}

// SetCoverImage makes one image the cover and clears the flag on the rest,
// inside a transaction so a crash cannot leave two covers.
func (r *PostgresPropertiesRepository) SetCoverImage(ctx context.Context, propertyID, imageID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE property_images SET is_cover = FALSE WHERE property_id = $1::uuid`,
		propertyID,
	); err != nil {
		return fmt.Errorf("failed to clear covers: %w", err)
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE property_images SET is_cover = TRUE WHERE property_id = $1::uuid AND image_id = $2::uuid`,
		propertyID, imageID,
	)
	if err != nil {
		return fmt.Errorf("failed to set cover: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrImageNotFound
	}
	return tx.Commit()
}

func (r *PostgresPropertiesRepository) ReorderImages(ctx context.Context, propertyID string, imageIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	for order, imageID := range imageIDs {
		if _, err := tx.ExecContext(ctx,
			`UPDATE property_images SET display_order = $1 WHERE property_id = $2::uuid AND image_id = $3::uuid`,
			order, propertyID, imageID,
		); err != nil {
			return fmt.Errorf("failed to reorder image %s: %w", imageID, err)
		}
	}
	return tx.Commit()
}
