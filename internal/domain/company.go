package domain

import "time"

// Company branding and contact record (companies table).
// Used to theme shared/printed output and to build public property URLs.
type Company struct {
	CompanyID string `db:"company_id" json:"company_id"` // UUID, PRIMARY KEY

	Name string `db:"name" json:"name"` // VARCHAR(255), NOT NULL
	Slug string `db:"slug" json:"slug"` // VARCHAR(100), UNIQUE, used in public URLs

	// Branding
	LogoURL        string `db:"logo_url" json:"logo_url"`
	PrimaryColor   string `db:"primary_color" json:"primary_color"` // e.g. #1A73E8
	SecondaryColor string `db:"secondary_color" json:"secondary_color"`

	// Contact
	Phone     string `db:"phone" json:"phone"`
	WhatsApp  string `db:"whatsapp" json:"whatsapp"`
	Email     string `db:"email" json:"email"`
	Website   string `db:"website" json:"website"`
	Instagram string `db:"instagram" json:"instagram"`
	Facebook  string `db:"facebook" json:"facebook"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
