package domain

import "time"

// User role
const (
	RoleAdmin = "admin"
	RoleAgent = "agent"
)

// User an application account (users table). Authentication happens at the
// hosted identity provider; we keep the provider subject for the mapping.
type User struct {
	UserID    string `db:"user_id" json:"user_id"`       // UUID, PRIMARY KEY
	CompanyID string `db:"company_id" json:"company_id"` // UUID, FK companies

	ProviderSubject string `db:"provider_subject" json:"provider_subject"` // identity provider user id
	Email           string `db:"email" json:"email"`
	Name            string `db:"name" json:"name"`
	Phone           string `db:"phone" json:"phone"`
	Role            string `db:"role" json:"role"`     // admin / agent
	Status          string `db:"status" json:"status"` // active / disabled

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Session is what the auth middleware resolves from a bearer token.
// Stored as JSON in the session KV, never in Postgres.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	CompanyID string    `json:"company_id"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}
