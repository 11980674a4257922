package service

import (
	"context"
	"fmt"

	"imovelhub-api/internal/domain"
	"imovelhub-api/internal/repository"

	"go.uber.org/zap"
)

// DashboardService back-office landing page numbers.
type DashboardService interface {
	GetMetrics(ctx context.Context, companyID string) (*DashboardMetrics, error)
}

type dashboardService struct {
	propertiesRepo repository.PropertiesRepository
	templatesRepo  repository.TemplatesRepository
	logger         *zap.Logger
}

func NewDashboardService(propertiesRepo repository.PropertiesRepository, templatesRepo repository.TemplatesRepository, logger *zap.Logger) DashboardService {
	return &dashboardService{
		propertiesRepo: propertiesRepo,
		templatesRepo:  templatesRepo,
		logger:         logger,
	}
}

// DashboardMetrics listing counts broken down the way the dashboard
// cards display them
type DashboardMetrics struct {
	TotalProperties int            `json:"total_properties"`
	ByStatus        map[string]int `json:"by_status"`
	ByPurpose       map[string]int `json:"by_purpose"`
	TemplateCount   int            `json:"template_count"`

	Recent []*domain.Property `json:"recent"`
}

func (s *dashboardService) GetMetrics(ctx context.Context, companyID string) (*DashboardMetrics, error) {
	if companyID == "" {
		return nil, fmt.Errorf("company_id is required")
	}

	metrics := &DashboardMetrics{
		ByStatus:  map[string]int{},
		ByPurpose: map[string]int{},
	}

	recent, total, err := s.propertiesRepo.ListProperties(ctx, companyID, repository.PropertyFilters{}, 1, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to count properties: %w", err)
	}
	metrics.TotalProperties = total
	metrics.Recent = recent

	for _, status := range []string{
		domain.PropertyStatusActive,
		domain.PropertyStatusDraft,
		domain.PropertyStatusSold,
		domain.PropertyStatusRented,
		domain.PropertyStatusArchived,
	} {
		_, n, err := s.propertiesRepo.ListProperties(ctx, companyID, repository.PropertyFilters{Status: status}, 1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to count properties by status: %w", err)
		}
		if n > 0 {
			metrics.ByStatus[status] = n
		}
	}
	for _, purpose := range []string{domain.PurposeSale, domain.PurposeRental, domain.PurposeBoth} {
		_, n, err := s.propertiesRepo.ListProperties(ctx, companyID, repository.PropertyFilters{Purpose: purpose}, 1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to count properties by purpose: %w", err)
		}
		if n > 0 {
			metrics.ByPurpose[purpose] = n
		}
	}

	templates, err := s.templatesRepo.ListTemplates(ctx, companyID, repository.TemplateFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to count templates: %w", err)
	}
	metrics.TemplateCount = len(templates)

	return metrics, nil
}
