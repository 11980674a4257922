package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"imovelhub-api/internal/domain"
	"imovelhub-api/internal/render"
	"imovelhub-api/internal/repository"
	"imovelhub-api/internal/share"

	"go.uber.org/zap"
)

// RenderService runs the template pipeline: fetch records, resolve
// placeholders, assemble photos, and hand the result to the dispatcher
// (share) or wrap it into a print document.
type RenderService interface {
	Preview(ctx context.Context, req PreviewRequest) (*PreviewResponse, error)
	Share(ctx context.Context, req ShareRequest) (*share.Plan, error)
	Print(ctx context.Context, req PrintRequest) (*PrintResponse, error)
}

type renderService struct {
	templatesRepo  repository.TemplatesRepository
	propertiesRepo repository.PropertiesRepository
	companiesRepo  repository.CompaniesRepository
	storage        *StorageResolver
	qr             render.QRGenerator
	analytics      *AnalyticsClient
	siteBaseURL    string
	logger         *zap.Logger
}

func NewRenderService(
	templatesRepo repository.TemplatesRepository,
	propertiesRepo repository.PropertiesRepository,
	companiesRepo repository.CompaniesRepository,
	storage *StorageResolver,
	qr render.QRGenerator,
	analytics *AnalyticsClient,
	siteBaseURL string,
	logger *zap.Logger,
) RenderService {
	return &renderService{
		templatesRepo:  templatesRepo,
		propertiesRepo: propertiesRepo,
		companiesRepo:  companiesRepo,
		storage:        storage,
		qr:             qr,
		analytics:      analytics,
		siteBaseURL:    siteBaseURL,
		logger:         logger,
	}
}

// PreviewRequest renders one property through one template without
// dispatching anywhere. Used by the template editor.
type PreviewRequest struct {
	CompanyID       string
	PropertyID      string
	TemplateID      string
	ShowFullAddress bool
}

// PreviewResponse resolved-and-assembled HTML plus the plain-text variant
type PreviewResponse struct {
	HTML string `json:"html"`
	Text string `json:"text"`
}

// ShareRequest renders a property for one channel and builds the dispatch
// plan the front end executes.
type ShareRequest struct {
	CompanyID  string
	PropertyID string
	TemplateID string // optional; falls back to the channel's default template
	Channel    share.Channel
}

// PrintRequest renders one or more properties into a single print document.
// Compact picks the fixed one-sheet layout instead of a template.
type PrintRequest struct {
	CompanyID       string
	PropertyIDs     []string
	TemplateID      string // optional; falls back to the default print template
	Compact         bool
	ShowFullAddress bool
	IncludeQRCode   bool
}

// PrintResponse the complete HTML document, ready for window.print()
type PrintResponse struct {
	Document  string   `json:"document"`
	Rendered  int      `json:"rendered"`
	FailedIDs []string `json:"failed_ids,omitempty"`
}

func (s *renderService) Preview(ctx context.Context, req PreviewRequest) (*PreviewResponse, error) {
	if req.CompanyID == "" || req.PropertyID == "" || req.TemplateID == "" {
		return nil, fmt.Errorf("company_id, property_id and template_id are required")
	}
	tpl, err := s.templatesRepo.GetTemplate(ctx, req.CompanyID, req.TemplateID)
	if err != nil {
		return nil, err
	}
	property, company, err := s.fetchRecords(ctx, req.CompanyID, req.PropertyID)
	if err != nil {
		return nil, err
	}

	htmlBody, err := s.renderBody(property, company, tpl, renderOptions{
		html:            true,
		showFullAddress: req.ShowFullAddress,
	})
	if err != nil {
		return nil, err
	}
	textBody, err := s.renderBody(property, company, tpl, renderOptions{
		html:            false,
		showFullAddress: req.ShowFullAddress,
	})
	if err != nil {
		return nil, err
	}
	return &PreviewResponse{HTML: htmlBody, Text: textBody}, nil
}

func (s *renderService) Share(ctx context.Context, req ShareRequest) (*share.Plan, error) {
	if req.CompanyID == "" || req.PropertyID == "" {
		return nil, fmt.Errorf("company_id and property_id are required")
	}
	if !share.ValidChannel(req.Channel) || req.Channel == share.ChannelPrint {
		return nil, share.ErrUnknownChannel
	}

	tpl, err := s.shareTemplate(ctx, req)
	if err != nil {
		return nil, err
	}
	property, company, err := s.fetchRecords(ctx, req.CompanyID, req.PropertyID)
	if err != nil {
		return nil, err
	}

	// Shares are public-facing: the full address never leaves the back office.
	htmlBody, err := s.renderBody(property, company, tpl, renderOptions{html: true})
	if err != nil {
		return nil, err
	}
	textBody, err := s.renderBody(property, company, tpl, renderOptions{html: false})
	if err != nil {
		return nil, err
	}

	plan, err := share.BuildPlan(req.Channel, share.Content{
		Subject: property.Title,
		Text:    textBody,
		HTML:    htmlBody,
		LinkURL: render.PublicPropertyURL(s.siteBaseURL, company.Slug, property.PropertyID),
	})
	if err != nil {
		return nil, err
	}

	s.analytics.CountShare(req.CompanyID, req.PropertyID, string(req.Channel))
	return &plan, nil
}

func (s *renderService) Print(ctx context.Context, req PrintRequest) (*PrintResponse, error) {
	if req.CompanyID == "" {
		return nil, fmt.Errorf("company_id is required")
	}
	if len(req.PropertyIDs) == 0 {
		return nil, fmt.Errorf("property_ids is required")
	}

	var tpl *domain.Template
	if !req.Compact {
		var err error
		tpl, err = s.printTemplate(ctx, req.CompanyID, req.TemplateID)
		if err != nil {
			return nil, err
		}
	}
	company, err := s.companiesRepo.GetCompany(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}

	// Fan out one goroutine per property; results and errors land at their
	// request index so document order always matches request order.
	bodies := make([]string, len(req.PropertyIDs))
	errs := make([]error, len(req.PropertyIDs))
	var wg sync.WaitGroup
	for idx, propertyID := range req.PropertyIDs {
		wg.Add(1)
		go func(idx int, propertyID string) {
			defer wg.Done()
			body, err := s.renderOne(ctx, company, tpl, propertyID, req)
			if err != nil {
				s.logger.Warn("Print render failed for property",
					zap.String("company_id", req.CompanyID),
					zap.String("property_id", propertyID),
					zap.Error(err),
				)
				errs[idx] = err
				bodies[idx] = render.ErrorCard(propertyID, err)
				return
			}
			bodies[idx] = body
		}(idx, propertyID)
	}
	wg.Wait()

	// A single-property job aborts on failure; only batches degrade to
	// error cards so one broken listing cannot sink the whole document.
	if len(req.PropertyIDs) == 1 && errs[0] != nil {
		return nil, errs[0]
	}
	var failedIDs []string
	for idx, err := range errs {
		if err != nil {
			failedIDs = append(failedIDs, req.PropertyIDs[idx])
		}
	}

	title := company.Name
	if len(req.PropertyIDs) == 1 {
		if p, err := s.propertiesRepo.GetProperty(ctx, req.CompanyID, req.PropertyIDs[0]); err == nil {
			title = p.Title
		}
	}
	doc := render.PrintDocument(title, company, bodies)

	s.analytics.CountPrint(req.CompanyID, len(req.PropertyIDs))
	return &PrintResponse{
		Document:  doc,
		Rendered:  len(req.PropertyIDs) - len(failedIDs),
		FailedIDs: failedIDs,
	}, nil
}

// renderOptions per-body render settings
type renderOptions struct {
	html            bool
	showFullAddress bool
	includeQR       bool
}

func (s *renderService) renderOne(ctx context.Context, company *domain.Company, tpl *domain.Template, propertyID string, req PrintRequest) (string, error) {
	property, err := s.propertiesRepo.GetProperty(ctx, req.CompanyID, propertyID)
	if err != nil {
		return "", err
	}
	s.resolveImageURLs(property)

	in := s.buildInput(property, company, renderOptions{
		html:            true,
		showFullAddress: req.ShowFullAddress,
		includeQR:       req.IncludeQRCode,
	})
	if req.Compact {
		return render.CompactDocument(property, company, in), nil
	}

	body, err := render.ResolveInput(tpl.Content, in)
	if err != nil {
		return "", err
	}
	return render.Assemble(body, property.Images, tpl), nil
}

func (s *renderService) renderBody(property *domain.Property, company *domain.Company, tpl *domain.Template, opts renderOptions) (string, error) {
	in := s.buildInput(property, company, opts)
	body, err := render.ResolveInput(tpl.Content, in)
	if err != nil {
		return "", err
	}
	if !opts.html {
		return body, nil
	}
	return render.Assemble(body, property.Images, tpl), nil
}

func (s *renderService) buildInput(property *domain.Property, company *domain.Company, opts renderOptions) render.Input {
	settings := render.Settings{
		SiteBaseURL:     s.siteBaseURL,
		ShowFullAddress: opts.showFullAddress,
		HTML:            opts.html,
		Now:             time.Now(),
	}
	if opts.includeQR {
		url := render.PublicPropertyURL(s.siteBaseURL, company.Slug, property.PropertyID)
		dataURL, err := s.qr.DataURL(url)
		if err != nil {
			s.logger.Warn("QR code generation failed",
				zap.String("property_id", property.PropertyID),
				zap.Error(err),
			)
		} else {
			settings.QRDataURL = dataURL
		}
	}
	return render.Input{Property: property, Company: company, Settings: settings}
}

// shareTemplate resolves the template for a share: explicit ID first, then
// the channel default, then the platform-agnostic default.
func (s *renderService) shareTemplate(ctx context.Context, req ShareRequest) (*domain.Template, error) {
	if req.TemplateID != "" {
		return s.templatesRepo.GetTemplate(ctx, req.CompanyID, req.TemplateID)
	}
	tpl, err := s.templatesRepo.GetDefaultTemplate(ctx, req.CompanyID, domain.TemplateKindShare, string(req.Channel))
	if err == repository.ErrNoDefaultTemplate {
		tpl, err = s.templatesRepo.GetDefaultTemplate(ctx, req.CompanyID, domain.TemplateKindShare, "")
	}
	if err != nil {
		return nil, err
	}
	return tpl, nil
}

func (s *renderService) printTemplate(ctx context.Context, companyID, templateID string) (*domain.Template, error) {
	if templateID != "" {
		return s.templatesRepo.GetTemplate(ctx, companyID, templateID)
	}
	tpl, err := s.templatesRepo.GetDefaultTemplate(ctx, companyID, domain.TemplateKindPrint, domain.PlatformPrint)
	if err == repository.ErrNoDefaultTemplate {
		tpl, err = s.templatesRepo.GetDefaultTemplate(ctx, companyID, domain.TemplateKindPrint, "")
	}
	if err != nil {
		return nil, err
	}
	return tpl, nil
}

func (s *renderService) fetchRecords(ctx context.Context, companyID, propertyID string) (*domain.Property, *domain.Company, error) {
	property, err := s.propertiesRepo.GetProperty(ctx, companyID, propertyID)
	if err != nil {
		return nil, nil, err
	}
	s.resolveImageURLs(property)
	company, err := s.companiesRepo.GetCompany(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}
	return property, company, nil
}

func (s *renderService) resolveImageURLs(p *domain.Property) {
	for i := range p.Images {
		p.Images[i].URL = s.storage.PublicURL(p.Images[i].URL)
	}
}
