package repository

import (
	"context"
	"sync"
	"time"

	"imovelhub-api/internal/domain"
)

// MemoryCompaniesRepository in-memory CompaniesRepository for tests and
// DB-less development mode.
type MemoryCompaniesRepository struct {
	mu        sync.RWMutex
	companies map[string]*domain.Company // company_id -> record
}

func NewMemoryCompaniesRepository() *MemoryCompaniesRepository {
	return &MemoryCompaniesRepository{companies: map[string]*domain.Company{}}
}

var _ CompaniesRepository = (*MemoryCompaniesRepository)(nil)

func (r *MemoryCompaniesRepository) GetCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.companies[companyID]
	if !ok {
		return nil, ErrCompanyNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *MemoryCompaniesRepository) GetCompanyBySlug(ctx context.Context, slug string) (*domain.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.companies {
		if c.Slug == slug {
			clone := *c
			return &clone, nil
		}
	}
	return nil, ErrCompanyNotFound
}

// PutCompany seeds or replaces a company record.
func (r *MemoryCompaniesRepository) PutCompany(c *domain.Company) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *c
	r.companies[clone.CompanyID] = &clone
}

func (r *MemoryCompaniesRepository) UpdateCompany(ctx context.Context, companyID string, updates map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.companies[companyID]
	if !ok {
		return ErrCompanyNotFound
	}
	for col, val := range updates {
		s, _ := val.(string)
		switch col {
		case "name":
			c.Name = s
		case "logo_url":
			c.LogoURL = s
		case "phone":
			c.Phone = s
		case "whatsapp":
			c.WhatsApp = s
		case "email":
			c.Email = s
		case "website":
			c.Website = s
		case "instagram":
			c.Instagram = s
		case "facebook":
			c.Facebook = s
		case "primary_color":
			c.PrimaryColor = s
		case "secondary_color":
			c.SecondaryColor = s
		}
	}
	c.UpdatedAt = time.Now()
	return nil
}
