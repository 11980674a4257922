package domain

import "time"

// Template kind
const (
	TemplateKindShare         = "share"
	TemplateKindPrint         = "print"
	TemplateKindAuthorization = "authorization"
)

// Photo placement policy relative to the resolved body
const (
	PlacementBeforeText   = "before_text"
	PlacementAfterText    = "after_text"
	PlacementIntercalated = "intercalated"
)

// Share/print platform a template targets. Empty means "any".
const (
	PlatformWhatsApp  = "whatsapp"
	PlatformEmail     = "email"
	PlatformMessenger = "messenger"
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
	PlatformPrint     = "print"
)

// Template an administrator-edited message/document template
// (templates table). Read-only to the render pipeline.
//
// Soft invariant: at most one non-archived template per (kind, platform)
// has IsDefault=true. The service clears other defaults before setting a
// new one; there is no database constraint backing this.
type Template struct {
	TemplateID string `db:"template_id" json:"template_id"` // UUID, PRIMARY KEY
	CompanyID  string `db:"company_id" json:"company_id"`   // UUID, FK companies

	Name     string `db:"name" json:"name"`         // VARCHAR(255), NOT NULL
	Kind     string `db:"kind" json:"kind"`         // share / print / authorization
	Platform string `db:"platform" json:"platform"` // whatsapp / email / ... or ''
	Content  string `db:"content" json:"content"`   // TEXT, body with {{placeholder}} tokens

	IsDefault bool `db:"is_default" json:"is_default"`
	Archived  bool `db:"archived" json:"archived"`

	// Photo layout
	PhotoColumns   int    `db:"photo_columns" json:"photo_columns"`     // grid columns, default 2
	PhotoPlacement string `db:"photo_placement" json:"photo_placement"` // before_text / after_text / intercalated
	MaxPhotos      int    `db:"max_photos" json:"max_photos"`           // cap on images rendered

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func ValidTemplateKind(kind string) bool {
	switch kind {
	case TemplateKindShare, TemplateKindPrint, TemplateKindAuthorization:
		return true
	}
	return false
}

func ValidPlacement(p string) bool {
	switch p {
	case PlacementBeforeText, PlacementAfterText, PlacementIntercalated:
		return true
	}
	return false
}
