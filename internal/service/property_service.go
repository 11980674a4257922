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

// PropertyService listing CRUD plus image management.
type PropertyService interface {
	ListProperties(ctx context.Context, req ListPropertiesRequest) (*PropertyListResponse, error)
	GetProperty(ctx context.Context, companyID, propertyID string) (*domain.Property, error)
	CreateProperty(ctx context.Context, req SavePropertyRequest) (*domain.Property, error)
	UpdateProperty(ctx context.Context, req SavePropertyRequest) (*domain.Property, error)
	DeleteProperty(ctx context.Context, companyID, propertyID string) error

	AddImage(ctx context.Context, companyID, propertyID, storagePath string, isCover bool) (*domain.PropertyImage, error)
	DeleteImage(ctx context.Context, companyID, propertyID, imageID string) error
	SetCoverImage(ctx context.Context, companyID, propertyID, imageID string) error
	ReorderImages(ctx context.Context, companyID, propertyID string, imageIDs []string) error
}

type propertyService struct {
	propertiesRepo repository.PropertiesRepository
	storage        *StorageResolver
	logger         *zap.Logger
}

func NewPropertyService(propertiesRepo repository.PropertiesRepository, storage *StorageResolver, logger *zap.Logger) PropertyService {
	return &propertyService{propertiesRepo: propertiesRepo, storage: storage, logger: logger}
}

// ListPropertiesRequest paginated listing query
type ListPropertiesRequest struct {
	CompanyID string
	Status    string
	Purpose   string
	City      string
	Search    string
	Page      int
	PageSize  int
}

// PropertyListResponse one page of listings
type PropertyListResponse struct {
	Properties []*domain.Property `json:"properties"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
}

// SavePropertyRequest create/update payload. Nil pointers mean "not provided"
// so updates can distinguish clearing a value from leaving it alone.
type SavePropertyRequest struct {
	CompanyID  string `json:"-"`
	PropertyID string `json:"-"`

	Title   *string `json:"title"`
	Code    *string `json:"code"`
	Purpose *string `json:"purpose"`
	Status  *string `json:"status"`
	Kind    *string `json:"kind"`

	SalePrice      *float64 `json:"sale_price"`
	RentalPrice    *float64 `json:"rental_price"`
	CondominiumFee *float64 `json:"condominium_fee"`
	IPTU           *float64 `json:"iptu"`

	Bedrooms         *int `json:"bedrooms"`
	Suites           *int `json:"suites"`
	Bathrooms        *int `json:"bathrooms"`
	CoveredParking   *int `json:"covered_parking"`
	UncoveredParking *int `json:"uncovered_parking"`

	TotalArea  *float64 `json:"total_area"`
	UsefulArea *float64 `json:"useful_area"`

	Street       *string `json:"street"`
	Number       *string `json:"number"`
	Complement   *string `json:"complement"`
	Neighborhood *string `json:"neighborhood"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	PostalCode   *string `json:"postal_code"`

	OwnerName    *string `json:"owner_name"`
	OwnerCPFCNPJ *string `json:"owner_cpf_cnpj"`
	OwnerEmail   *string `json:"owner_email"`
	OwnerPhone   *string `json:"owner_phone"`

	Description *string  `json:"description"`
	Features    []string `json:"features"`
}

func (s *propertyService) ListProperties(ctx context.Context, req ListPropertiesRequest) (*PropertyListResponse, error) {
	if req.CompanyID == "" {
		return nil, fmt.Errorf("company_id is required")
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 || req.PageSize > 100 {
		req.PageSize = 20
	}
	filter := repository.PropertyFilters{
		Status:  req.Status,
		Purpose: req.Purpose,
		City:    req.City,
		Search:  strings.TrimSpace(req.Search),
	}
	properties, total, err := s.propertiesRepo.ListProperties(ctx, req.CompanyID, filter, req.Page, req.PageSize)
	if err != nil {
		s.logger.Error("Failed to list properties",
			zap.String("company_id", req.CompanyID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	for _, p := range properties {
		s.resolveImageURLs(p)
	}
	return &PropertyListResponse{
		Properties: properties,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}, nil
}

func (s *propertyService) GetProperty(ctx context.Context, companyID, propertyID string) (*domain.Property, error) {
	if companyID == "" || propertyID == "" {
		return nil, fmt.Errorf("company_id and property_id are required")
	}
	p, err := s.propertiesRepo.GetProperty(ctx, companyID, propertyID)
	if err != nil {
		return nil, err
	}
	s.resolveImageURLs(p)
	return p, nil
}

func (s *propertyService) CreateProperty(ctx context.Context, req SavePropertyRequest) (*domain.Property, error) {
	if req.CompanyID == "" {
		return nil, fmt.Errorf("company_id is required")
	}
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		return nil, fmt.Errorf("title is required")
	}
	purpose := domain.PurposeSale
	if req.Purpose != nil {
		purpose = *req.Purpose
	}
	if !validPurpose(purpose) {
		return nil, fmt.Errorf("invalid purpose: %s", purpose)
	}
	status := domain.PropertyStatusDraft
	if req.Status != nil {
		status = *req.Status
	}
	if !validStatus(status) {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	p := &domain.Property{
		PropertyID:       uuid.New().String(),
		CompanyID:        req.CompanyID,
		Title:            strings.TrimSpace(*req.Title),
		Code:             deref(req.Code),
		Purpose:          purpose,
		Status:           status,
		Kind:             deref(req.Kind),
		SalePrice:        req.SalePrice,
		RentalPrice:      req.RentalPrice,
		CondominiumFee:   req.CondominiumFee,
		IPTU:             req.IPTU,
		Bedrooms:         req.Bedrooms,
		Suites:           req.Suites,
		Bathrooms:        req.Bathrooms,
		CoveredParking:   req.CoveredParking,
		UncoveredParking: req.UncoveredParking,
		TotalArea:        req.TotalArea,
		UsefulArea:       req.UsefulArea,
		Street:           deref(req.Street),
		Number:           deref(req.Number),
		Complement:       deref(req.Complement),
		Neighborhood:     deref(req.Neighborhood),
		City:             deref(req.City),
		State:            deref(req.State),
		PostalCode:       deref(req.PostalCode),
		OwnerName:        deref(req.OwnerName),
		OwnerCPFCNPJ:     deref(req.OwnerCPFCNPJ),
		OwnerEmail:       deref(req.OwnerEmail),
		OwnerPhone:       deref(req.OwnerPhone),
		Description:      deref(req.Description),
		Features:         req.Features,
	}
	if err := s.propertiesRepo.CreateProperty(ctx, p); err != nil {
		s.logger.Error("Failed to create property",
			zap.String("company_id", req.CompanyID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to create property: %w", err)
	}
	return s.propertiesRepo.GetProperty(ctx, req.CompanyID, p.PropertyID)
}

func (s *propertyService) UpdateProperty(ctx context.Context, req SavePropertyRequest) (*domain.Property, error) {
	if req.CompanyID == "" || req.PropertyID == "" {
		return nil, fmt.Errorf("company_id and property_id are required")
	}

	updates := map[string]any{}
	putString := func(col string, v *string) {
		if v != nil {
			updates[col] = strings.TrimSpace(*v)
		}
	}
	putFloat := func(col string, v *float64) {
		if v != nil {
			updates[col] = *v
		}
	}
	putInt := func(col string, v *int) {
		if v != nil {
			updates[col] = *v
		}
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, fmt.Errorf("title cannot be empty")
	}
	if req.Purpose != nil && !validPurpose(*req.Purpose) {
		return nil, fmt.Errorf("invalid purpose: %s", *req.Purpose)
	}
	if req.Status != nil && !validStatus(*req.Status) {
		return nil, fmt.Errorf("invalid status: %s", *req.Status)
	}

	putString("title", req.Title)
	putString("code", req.Code)
	putString("purpose", req.Purpose)
	putString("status", req.Status)
	putString("kind", req.Kind)
	putFloat("sale_price", req.SalePrice)
	putFloat("rental_price", req.RentalPrice)
	putFloat("condominium_fee", req.CondominiumFee)
	putFloat("iptu", req.IPTU)
	putInt("bedrooms", req.Bedrooms)
	putInt("suites", req.Suites)
	putInt("bathrooms", req.Bathrooms)
	putInt("covered_parking", req.CoveredParking)
	putInt("uncovered_parking", req.UncoveredParking)
	putFloat("total_area", req.TotalArea)
	putFloat("useful_area", req.UsefulArea)
	putString("street", req.Street)
	putString("number", req.Number)
	putString("complement", req.Complement)
	putString("neighborhood", req.Neighborhood)
	putString("city", req.City)
	putString("state", req.State)
	putString("postal_code", req.PostalCode)
	putString("owner_name", req.OwnerName)
	putString("owner_cpf_cnpj", req.OwnerCPFCNPJ)
	putString("owner_email", req.OwnerEmail)
	putString("owner_phone", req.OwnerPhone)
	putString("description", req.Description)
	if req.Features != nil {
		updates["features"] = req.Features
	}

	if len(updates) > 0 {
		if err := s.propertiesRepo.UpdateProperty(ctx, req.CompanyID, req.PropertyID, updates); err != nil {
			return nil, err
		}
	}
	p, err := s.propertiesRepo.GetProperty(ctx, req.CompanyID, req.PropertyID)
	if err != nil {
		return nil, err
	}
	s.resolveImageURLs(p)
	return p, nil
}

func (s *propertyService) DeleteProperty(ctx context.Context, companyID, propertyID string) error {
	if companyID == "" || propertyID == "" {
		return fmt.Errorf("company_id and property_id are required")
	}
	return s.propertiesRepo.DeleteProperty(ctx, companyID, propertyID)
}

func (s *propertyService) AddImage(ctx context.Context, companyID, propertyID, storagePath string, isCover bool) (*domain.PropertyImage, error) {
	if strings.TrimSpace(storagePath) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	// Scope check: the image must belong to one of this company's listings.
	if _, err := s.propertiesRepo.GetProperty(ctx, companyID, propertyID); err != nil {
		return nil, err
	}
	existing, err := s.propertiesRepo.ListImages(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	img := &domain.PropertyImage{
		ImageID:      uuid.New().String(),
		PropertyID:   propertyID,
		URL:          storagePath,
		IsCover:      isCover || len(existing) == 0,
		DisplayOrder: len(existing),
	}
	if img.IsCover && len(existing) > 0 {
		// New cover displaces the old one.
		if err := s.propertiesRepo.AddImage(ctx, img); err != nil {
			return nil, fmt.Errorf("failed to add image: %w", err)
		}
		if err := s.propertiesRepo.SetCoverImage(ctx, propertyID, img.ImageID); err != nil {
			return nil, fmt.Errorf("failed to set cover image: %w", err)
		}
	} else if err := s.propertiesRepo.AddImage(ctx, img); err != nil {
		return nil, fmt.Errorf("failed to add image: %w", err)
	}
	img.URL = s.storage.PublicURL(img.URL)
	return img, nil
}

func (s *propertyService) DeleteImage(ctx context.Context, companyID, propertyID, imageID string) error {
	if _, err := s.propertiesRepo.GetProperty(ctx, companyID, propertyID); err != nil {
		return err
	}
	return s.propertiesRepo.DeleteImage(ctx, propertyID, imageID)
}

func (s *propertyService) SetCoverImage(ctx context.Context, companyID, propertyID, imageID string) error {
	if _, err := s.propertiesRepo.GetProperty(ctx, companyID, propertyID); err != nil {
		return err
	}
	return s.propertiesRepo.SetCoverImage(ctx, propertyID, imageID)
}

func (s *propertyService) ReorderImages(ctx context.Context, companyID, propertyID string, imageIDs []string) error {
	if len(imageIDs) == 0 {
		return fmt.Errorf("image_ids is required")
	}
	if _, err := s.propertiesRepo.GetProperty(ctx, companyID, propertyID); err != nil {
		return err
	}
	return s.propertiesRepo.ReorderImages(ctx, propertyID, imageIDs)
}

func (s *propertyService) resolveImageURLs(p *domain.Property) {
	for i := range p.Images {
		p.Images[i].URL = s.storage.PublicURL(p.Images[i].URL)
	}
}

func validPurpose(p string) bool {
	switch p {
	case domain.PurposeSale, domain.PurposeRental, domain.PurposeBoth:
		return true
	}
	return false
}

func validStatus(st string) bool {
	switch st {
	case domain.PropertyStatusActive, domain.PropertyStatusDraft,
		domain.PropertyStatusSold, domain.PropertyStatusRented,
		domain.PropertyStatusArchived:
		return true
	}
	return false
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}
