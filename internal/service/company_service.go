package service

import (
	"context"
	"fmt"
	"strings"

	"imovelhub-api/internal/domain"
	"imovelhub-api/internal/repository"

	"go.uber.org/zap"
)

// CompanyService agency profile and branding.
type CompanyService interface {
	GetCompany(ctx context.Context, companyID string) (*domain.Company, error)
	UpdateCompany(ctx context.Context, req UpdateCompanyRequest) (*domain.Company, error)
}

type companyService struct {
	companiesRepo repository.CompaniesRepository
	storage       *StorageResolver
	logger        *zap.Logger
}

func NewCompanyService(companiesRepo repository.CompaniesRepository, storage *StorageResolver, logger *zap.Logger) CompanyService {
	return &companyService{companiesRepo: companiesRepo, storage: storage, logger: logger}
}

// UpdateCompanyRequest partial branding/contact update
type UpdateCompanyRequest struct {
	CompanyID string `json:"-"`

	Name           *string `json:"name"`
	LogoURL        *string `json:"logo_url"`
	PrimaryColor   *string `json:"primary_color"`
	SecondaryColor *string `json:"secondary_color"`
	Phone          *string `json:"phone"`
	WhatsApp       *string `json:"whatsapp"`
	Email          *string `json:"email"`
	Website        *string `json:"website"`
	Instagram      *string `json:"instagram"`
	Facebook       *string `json:"facebook"`
}

func (s *companyService) GetCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	if companyID == "" {
		return nil, fmt.Errorf("company_id is required")
	}
	c, err := s.companiesRepo.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	c.LogoURL = s.storage.PublicURL(c.LogoURL)
	return c, nil
}

func (s *companyService) UpdateCompany(ctx context.Context, req UpdateCompanyRequest) (*domain.Company, error) {
	if req.CompanyID == "" {
		return nil, fmt.Errorf("company_id is required")
	}

	updates := map[string]any{}
	put := func(col string, v *string) {
		if v != nil {
			updates[col] = strings.TrimSpace(*v)
		}
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}
	put("name", req.Name)
	put("logo_url", req.LogoURL)
	put("primary_color", req.PrimaryColor)
	put("secondary_color", req.SecondaryColor)
	put("phone", req.Phone)
	put("whatsapp", req.WhatsApp)
	put("email", req.Email)
	put("website", req.Website)
	put("instagram", req.Instagram)
	put("facebook", req.Facebook)

	if len(updates) > 0 {
		if err := s.companiesRepo.UpdateCompany(ctx, req.CompanyID, updates); err != nil {
			s.logger.Error("Failed to update company",
				zap.String("company_id", req.CompanyID),
				zap.Error(err),
			)
			return nil, err
		}
	}
	return s.GetCompany(ctx, req.CompanyID)
}
