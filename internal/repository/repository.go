package repository

import (
	"context"
	"errors"

	"imovelhub-api/internal/domain"
)

// Not-found sentinels; Postgres impls translate sql.ErrNoRows into these so
// services and handlers never see driver errors.
var (
	ErrTemplateNotFound  = errors.New("template not found")
	ErrNoDefaultTemplate = errors.New("no default template configured")
	ErrPropertyNotFound  = errors.New("property not found")
	ErrCompanyNotFound   = errors.New("company not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrImageNotFound     = errors.New("image not found")
)

// TemplateFilters narrows template listings.
type TemplateFilters struct {
	Kind            string
	Platform        string
	IncludeArchived bool
}

// TemplatesRepository share/print/authorization templates.
type TemplatesRepository interface {
	ListTemplates(ctx context.Context, companyID string, filter TemplateFilters) ([]*domain.Template, error)
	GetTemplate(ctx context.Context, companyID, templateID string) (*domain.Template, error)
	// GetDefaultTemplate returns ErrNoDefaultTemplate when no non-archived
	// default exists for the kind/platform pair.
	GetDefaultTemplate(ctx context.Context, companyID, kind, platform string) (*domain.Template, error)
	CreateTemplate(ctx context.Context, t *domain.Template) error
	UpdateTemplate(ctx context.Context, companyID, templateID string, updates map[string]any) error
	ArchiveTemplate(ctx context.Context, companyID, templateID string) error
	// ClearDefaults unsets is_default on every non-archived template of the
	// kind/platform pair. Callers run it before marking a new default.
	ClearDefaults(ctx context.Context, companyID, kind, platform string) error
}

// PropertyFilters narrows property listings.
type PropertyFilters struct {
	Status  string
	Purpose string
	City    string
	Search  string // matches title, code, neighborhood
}

// PropertiesRepository listing records and their images.
type PropertiesRepository interface {
	ListProperties(ctx context.Context, companyID string, filter PropertyFilters, page, size int) ([]*domain.Property, int, error)
	// GetProperty loads the record with its images, cover-first.
	GetProperty(ctx context.Context, companyID, propertyID string) (*domain.Property, error)
	CreateProperty(ctx context.Context, p *domain.Property) error
	UpdateProperty(ctx context.Context, companyID, propertyID string, updates map[string]any) error
	DeleteProperty(ctx context.Context, companyID, propertyID string) error

	ListImages(ctx context.Context, propertyID string) ([]domain.PropertyImage, error)
	AddImage(ctx context.Context, img *domain.PropertyImage) error
	DeleteImage(ctx context.Context, propertyID, imageID string) error
	SetCoverImage(ctx context.Context, propertyID, imageID string) error
	ReorderImages(ctx context.Context, propertyID string, imageIDs []string) error
}

// CompaniesRepository agency branding and contacts.
type CompaniesRepository interface {
	GetCompany(ctx context.Context, companyID string) (*domain.Company, error)
	GetCompanyBySlug(ctx context.Context, slug string) (*domain.Company, error)
	UpdateCompany(ctx context.Context, companyID string, updates map[string]any) error
}

// UsersRepository application accounts mapped to the identity provider.
type UsersRepository interface {
	ListUsers(ctx context.Context, companyID string) ([]*domain.User, error)
	GetUser(ctx context.Context, companyID, userID string) (*domain.User, error)
	GetUserByProviderSubject(ctx context.Context, subject string) (*domain.User, error)
	CreateUser(ctx context.Context, u *domain.User) error
	UpdateUser(ctx context.Context, companyID, userID string, updates map[string]any) error
	DeleteUser(ctx context.Context, companyID, userID string) error
}
