package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"imovelhub-api/internal/domain"
)

// PostgresUsersRepository users table access.
type PostgresUsersRepository struct {
	db *sql.DB
}

func NewPostgresUsersRepository(db *sql.DB) *PostgresUsersRepository {
	return &PostgresUsersRepository{db: db}
}

var _ UsersRepository = (*PostgresUsersRepository)(nil)

const userColumns = `
	user_id::text,
	company_id::text,
	COALESCE(provider_subject, '') as provider_subject,
	COALESCE(email, '') as email,
	COALESCE(name, '') as name,
	COALESCE(phone, '') as phone,
	COALESCE(role, 'agent') as role,
	COALESCE(status, 'active') as status,
	created_at,
	updated_at
`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.UserID,
		&u.CompanyID,
		&u.ProviderSubject,
		&u.Email,
		&u.Name,
		&u.Phone,
		&u.Role,
		&u.Status,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PostgresUsersRepository) ListUsers(ctx context.Context, companyID string) ([]*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE company_id = $1::uuid ORDER BY name ASC`, userColumns)
	rows, err := r.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PostgresUsersRepository) GetUser(ctx context.Context, companyID, userID string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE company_id = $1::uuid AND user_id = $2::uuid`, userColumns)
	u, err := scanUser(r.db.QueryRowContext(ctx, query, companyID, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (r *PostgresUsersRepository) GetUserByProviderSubject(ctx context.Context, subject string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE provider_subject = $1`, userColumns)
	u, err := scanUser(r.db.QueryRowContext(ctx, query, subject))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by provider subject: %w", err)
	}
	return u, nil
}

func (r *PostgresUsersRepository) CreateUser(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (user_id, company_id, provider_subject, email, name, phone, role, status)
		VALUES ($1::uuid, $2::uuid, NULLIF($3, ''), $4, $5, $6, $7, $8)`,
		u.UserID, u.CompanyID, u.ProviderSubject, u.Email, u.Name, u.Phone, u.Role, u.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

var userUpdateColumns = map[string]bool{
	"provider_subject": true, "email": true, "name": true,
	"phone": true, "role": true, "status": true,
}

func (r *PostgresUsersRepository) UpdateUser(ctx context.Context, companyID, userID string, updates map[string]any) error {
	set := []string{"updated_at = NOW()"}
	args := []any{companyID, userID}
	argIdx := 3

	for col, val := range updates {
		if !userUpdateColumns[col] {
			continue
		}
		set = append(set, fmt.Sprintf("%s = $%d", col, argIdx))
		args = append(args, val)
		argIdx++
	}

	query := fmt.Sprintf(`UPDATE users SET %s WHERE company_id = $1::uuid AND user_id = $2::uuid`,
		strings.Join(set, ", "))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *PostgresUsersRepository) DeleteUser(ctx context.Context, companyID, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM users WHERE company_id = $1::uuid AND user_id = $2::uuid`,
		companyID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}
