package service

import (
	"context"
	"fmt"
	"strings"

	"imovelhub-api/internal/domain"
	"imovelhub-api/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TemplateService manages share/print/authorization templates.
type TemplateService interface {
	ListTemplates(ctx context.Context, companyID string, filter repository.TemplateFilters) ([]*domain.Template, error)
	GetTemplate(ctx context.Context, companyID, templateID string) (*domain.Template, error)
	CreateTemplate(ctx context.Context, req CreateTemplateRequest) (*domain.Template, error)
	UpdateTemplate(ctx context.Context, req UpdateTemplateRequest) (*domain.Template, error)
	ArchiveTemplate(ctx context.Context, companyID, templateID string) error
	SetDefaultTemplate(ctx context.Context, companyID, templateID string) error
	GetDefaultTemplate(ctx context.Context, companyID, kind, platform string) (*domain.Template, error)
}

type templateService struct {
	templatesRepo repository.TemplatesRepository
	logger        *zap.Logger
}

func NewTemplateService(templatesRepo repository.TemplatesRepository, logger *zap.Logger) TemplateService {
	return &templateService{templatesRepo: templatesRepo, logger: logger}
}

// CreateTemplateRequest new template payload
type CreateTemplateRequest struct {
	CompanyID      string `json:"-"`
	Name           string `json:"name"`
	Kind           string `json:"kind"`
	Platform       string `json:"platform"`
	Content        string `json:"content"`
	IsDefault      bool   `json:"is_default"`
	PhotoColumns   int    `json:"photo_columns"`
	PhotoPlacement string `json:"photo_placement"`
	MaxPhotos      int    `json:"max_photos"`
}

// UpdateTemplateRequest partial template update. Nil fields stay unchanged.
type UpdateTemplateRequest struct {
	CompanyID      string  `json:"-"`
	TemplateID     string  `json:"-"`
	Name           *string `json:"name"`
	Platform       *string `json:"platform"`
	Content        *string `json:"content"`
	IsDefault      *bool   `json:"is_default"`
	PhotoColumns   *int    `json:"photo_columns"`
	PhotoPlacement *string `json:"photo_placement"`
	MaxPhotos      *int    `json:"max_photos"`
}

func (s *templateService) ListTemplates(ctx context.Context, companyID string, filter repository.TemplateFilters) ([]*domain.Template, error) {
	if companyID == "" {
		return nil, fmt.Errorf("company_id is required")
	}
	return s.templatesRepo.ListTemplates(ctx, companyID, filter)
}

func (s *templateService) GetTemplate(ctx context.Context, companyID, templateID string) (*domain.Template, error) {
	if companyID == "" || templateID == "" {
		return nil, fmt.Errorf("company_id and template_id are required")
	}
	return s.templatesRepo.GetTemplate(ctx, companyID, templateID)
}

func (s *templateService) CreateTemplate(ctx context.Context, req CreateTemplateRequest) (*domain.Template, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.CompanyID == "" {
		return nil, fmt.Errorf("company_id is required")
	}
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("content is required")
	}
	if !domain.ValidTemplateKind(req.Kind) {
		return nil, fmt.Errorf("invalid template kind: %s", req.Kind)
	}
	if req.PhotoPlacement == "" {
		req.PhotoPlacement = domain.PlacementAfterText
	}
	if !domain.ValidPlacement(req.PhotoPlacement) {
		return nil, fmt.Errorf("invalid photo placement: %s", req.PhotoPlacement)
	}
	if req.PhotoColumns <= 0 {
		req.PhotoColumns = 2
	}
	if req.MaxPhotos <= 0 {
		req.MaxPhotos = 6
	}

	t := &domain.Template{
		TemplateID:     uuid.New().String(),
		CompanyID:      req.CompanyID,
		Name:           req.Name,
		Kind:           req.Kind,
		Platform:       req.Platform,
		Content:        req.Content,
		IsDefault:      req.IsDefault,
		PhotoColumns:   req.PhotoColumns,
		PhotoPlacement: req.PhotoPlacement,
		MaxPhotos:      req.MaxPhotos,
	}

	// Only one default per kind/platform pair. Clear siblings first.
	if t.IsDefault {
		if err := s.templatesRepo.ClearDefaults(ctx, req.CompanyID, t.Kind, t.Platform); err != nil {
			return nil, fmt.Errorf("failed to clear default templates: %w", err)
		}
	}
	if err := s.templatesRepo.CreateTemplate(ctx, t); err != nil {
		s.logger.Error("Failed to create template",
			zap.String("company_id", req.CompanyID),
			zap.String("kind", req.Kind),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to create template: %w", err)
	}
	return s.templatesRepo.GetTemplate(ctx, req.CompanyID, t.TemplateID)
}

func (s *templateService) UpdateTemplate(ctx context.Context, req UpdateTemplateRequest) (*domain.Template, error) {
	if req.CompanyID == "" || req.TemplateID == "" {
		return nil, fmt.Errorf("company_id and template_id are required")
	}
	existing, err := s.templatesRepo.GetTemplate(ctx, req.CompanyID, req.TemplateID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Platform != nil {
		updates["platform"] = *req.Platform
	}
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return nil, fmt.Errorf("content cannot be empty")
		}
		updates["content"] = *req.Content
	}
	if req.PhotoColumns != nil {
		if *req.PhotoColumns <= 0 {
			return nil, fmt.Errorf("photo_columns must be positive")
		}
		updates["photo_columns"] = *req.PhotoColumns
	}
	if req.PhotoPlacement != nil {
		if !domain.ValidPlacement(*req.PhotoPlacement) {
			return nil, fmt.Errorf("invalid photo placement: %s", *req.PhotoPlacement)
		}
		updates["photo_placement"] = *req.PhotoPlacement
	}
	if req.MaxPhotos != nil {
		if *req.MaxPhotos <= 0 {
			return nil, fmt.Errorf("max_photos must be positive")
		}
		updates["max_photos"] = *req.MaxPhotos
	}
	if req.IsDefault != nil {
		if *req.IsDefault {
			platform := existing.Platform
			if req.Platform != nil {
				platform = *req.Platform
			}
			if err := s.templatesRepo.ClearDefaults(ctx, req.CompanyID, existing.Kind, platform); err != nil {
				return nil, fmt.Errorf("failed to clear default templates: %w", err)
			}
		}
		updates["is_default"] = *req.IsDefault
	}

	if len(updates) > 0 {
		if err := s.templatesRepo.UpdateTemplate(ctx, req.CompanyID, req.TemplateID, updates); err != nil {
			return nil, fmt.Errorf("failed to update template: %w", err)
		}
	}
	return s.templatesRepo.GetTemplate(ctx, req.CompanyID, req.TemplateID)
}

func (s *templateService) ArchiveTemplate(ctx context.Context, companyID, templateID string) error {
	if companyID == "" || templateID == "" {
		return fmt.Errorf("company_id and template_id are required")
	}
	return s.templatesRepo.ArchiveTemplate(ctx, companyID, templateID)
}

func (s *templateService) SetDefaultTemplate(ctx context.Context, companyID, templateID string) error {
	t, err := s.templatesRepo.GetTemplate(ctx, companyID, templateID)
	if err != nil {
		return err
	}
	if t.Archived {
		return fmt.Errorf("archived templates cannot be default")
	}
	if err := s.templatesRepo.ClearDefaults(ctx, companyID, t.Kind, t.Platform); err != nil {
		return fmt.Errorf("failed to clear default templates: %w", err)
	}
	if err := s.templatesRepo.UpdateTemplate(ctx, companyID, templateID, map[string]any{"is_default": true}); err != nil {
		return fmt.Errorf("failed to set default template: %w", err)
	}
	return nil
}

// GetDefaultTemplate resolves the default the render pipeline would pick:
// the platform-specific default first, then the generic one for the kind.
func (s *templateService) GetDefaultTemplate(ctx context.Context, companyID, kind, platform string) (*domain.Template, error) {
	if !domain.ValidTemplateKind(kind) {
		return nil, fmt.Errorf("invalid template kind: %s", kind)
	}
	t, err := s.templatesRepo.GetDefaultTemplate(ctx, companyID, kind, platform)
	if err == repository.ErrNoDefaultTemplate && platform != "" {
		t, err = s.templatesRepo.GetDefaultTemplate(ctx, companyID, kind, "")
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}
