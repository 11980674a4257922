package service

import (
	"context"
	"strings"
	"testing"

	"imovelhub-api/internal/domain"
	"imovelhub-api/internal/render"
	"imovelhub-api/internal/repository"
	"imovelhub-api/internal/share"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type renderFixture struct {
	svc        RenderService
	templates  *repository.MemoryTemplatesRepository
	properties *repository.MemoryPropertiesRepository
	companies  *repository.MemoryCompaniesRepository
}

func newRenderFixture(t *testing.T) *renderFixture {
	t.Helper()
	templates := repository.NewMemoryTemplatesRepository()
	properties := repository.NewMemoryPropertiesRepository()
	companies := repository.NewMemoryCompaniesRepository()

	companies.PutCompany(&domain.Company{
		CompanyID: testCompanyID,
		Name:      "Imobiliária Horizonte",
		Slug:      "horizonte",
		Phone:     "(11) 3333-4444",
	})

	logger := zap.NewNop()
	svc := NewRenderService(
		templates, properties, companies,
		NewStorageResolver("https://storage.example.com/public"),
		render.NewQRGenerator(128),
		NewAnalyticsClient("http://localhost:1", false, logger),
		"https://imovelhub.com.br",
		logger,
	)
	return &renderFixture{svc: svc, templates: templates, properties: properties, companies: companies}
}

func (f *renderFixture) seedProperty(t *testing.T, id, title string, sale float64) {
	t.Helper()
	err := f.properties.CreateProperty(context.Background(), &domain.Property{
		PropertyID: id,
		CompanyID:  testCompanyID,
		Title:      title,
		Code:       "REF-" + id,
		Purpose:    domain.PurposeSale,
		Status:     domain.PropertyStatusActive,
		SalePrice:  &sale,
		City:       "São Paulo",
		State:      "SP",
	})
	require.NoError(t, err)
}

func (f *renderFixture) seedShareDefault(t *testing.T, platform, content string) *domain.Template {
	t.Helper()
	tpl := &domain.Template{
		TemplateID:     "tpl-share-" + platform,
		CompanyID:      testCompanyID,
		Name:           "Share " + platform,
		Kind:           domain.TemplateKindShare,
		Platform:       platform,
		Content:        content,
		IsDefault:      true,
		PhotoColumns:   2,
		PhotoPlacement: domain.PlacementAfterText,
		MaxPhotos:      6,
	}
	require.NoError(t, f.templates.CreateTemplate(context.Background(), tpl))
	return tpl
}

func (f *renderFixture) seedPrintDefault(t *testing.T, content string) *domain.Template {
	t.Helper()
	tpl := &domain.Template{
		TemplateID:     "tpl-print",
		CompanyID:      testCompanyID,
		Name:           "Impressão",
		Kind:           domain.TemplateKindPrint,
		Platform:       "",
		Content:        content,
		IsDefault:      true,
		PhotoColumns:   2,
		PhotoPlacement: domain.PlacementAfterText,
		MaxPhotos:      4,
	}
	require.NoError(t, f.templates.CreateTemplate(context.Background(), tpl))
	return tpl
}

func TestShareBuildsWhatsAppPlan(t *testing.T) {
	f := newRenderFixture(t)
	f.seedProperty(t, "p1", "Casa no Jardim", 450000)
	f.seedShareDefault(t, domain.PlatformWhatsApp, "{{title}} por {{price}}")

	plan, err := f.svc.Share(context.Background(), ShareRequest{
		CompanyID:  testCompanyID,
		PropertyID: "p1",
		Channel:    share.ChannelWhatsApp,
	})
	require.NoError(t, err)
	require.Equal(t, share.ActionCopyAndOpen, plan.Action)
	require.Contains(t, plan.ShareURL, "wa.me")
	require.Contains(t, plan.Clipboard, "Casa no Jardim por R$ 450.000,00")
	require.NotContains(t, plan.Clipboard, "{{")
}

func TestShareFallsBackToGenericDefault(t *testing.T) {
	f := newRenderFixture(t)
	f.seedProperty(t, "p1", "Apartamento Central", 300000)
	// no whatsapp-specific default, only the platform-agnostic one
	f.seedShareDefault(t, "", "{{title}}")

	plan, err := f.svc.Share(context.Background(), ShareRequest{
		CompanyID:  testCompanyID,
		PropertyID: "p1",
		Channel:    share.ChannelWhatsApp,
	})
	require.NoError(t, err)
	require.Contains(t, plan.Clipboard, "Apartamento Central")
}

func TestShareWithoutAnyDefaultFails(t *testing.T) {
	f := newRenderFixture(t)
	f.seedProperty(t, "p1", "Casa", 100000)

	_, err := f.svc.Share(context.Background(), ShareRequest{
		CompanyID:  testCompanyID,
		PropertyID: "p1",
		Channel:    share.ChannelWhatsApp,
	})
	require.ErrorIs(t, err, repository.ErrNoDefaultTemplate)
}

func TestShareRejectsPrintChannel(t *testing.T) {
	f := newRenderFixture(t)
	f.seedProperty(t, "p1", "Casa", 100000)

	_, err := f.svc.Share(context.Background(), ShareRequest{
		CompanyID:  testCompanyID,
		PropertyID: "p1",
		Channel:    share.ChannelPrint,
	})
	require.ErrorIs(t, err, share.ErrUnknownChannel)
}

func TestShareMissingProperty(t *testing.T) {
	f := newRenderFixture(t)
	f.seedShareDefault(t, "", "{{title}}")

	_, err := f.svc.Share(context.Background(), ShareRequest{
		CompanyID:  testCompanyID,
		PropertyID: "missing",
		Channel:    share.ChannelWhatsApp,
	})
	require.ErrorIs(t, err, repository.ErrPropertyNotFound)
}

func TestPrintKeepsRequestOrder(t *testing.T) {
	f := newRenderFixture(t)
	f.seedProperty(t, "p1", "Primeira Casa", 100000)
	f.seedProperty(t, "p2", "Segunda Casa", 200000)
	f.seedProperty(t, "p3", "Terceira Casa", 300000)
	f.seedPrintDefault(t, "<h2>{{title}}</h2>")

	resp, err := f.svc.Print(context.Background(), PrintRequest{
		CompanyID:   testCompanyID,
		PropertyIDs: []string{"p3", "p1", "p2"},
	})
	require.NoError(t, err)
	require.Equal(t, 3, resp.Rendered)
	require.Empty(t, resp.FailedIDs)

	third := strings.Index(resp.Document, "Terceira Casa")
	first := strings.Index(resp.Document, "Primeira Casa")
	second := strings.Index(resp.Document, "Segunda Casa")
	require.True(t, third >= 0 && first >= 0 && second >= 0)
	require.Less(t, third, first)
	require.Less(t, first, second)
}

func TestPrintRendersErrorCardForFailedProperty(t *testing.T) {
	f := newRenderFixture(t)
	f.seedProperty(t, "p1", "Casa Boa", 100000)
	f.seedProperty(t, "p3", "Outra Casa", 300000)
	f.seedPrintDefault(t, "<h2>{{title}}</h2>")

	resp, err := f.svc.Print(context.Background(), PrintRequest{
		CompanyID:   testCompanyID,
		PropertyIDs: []string{"p1", "missing", "p3"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, resp.Rendered)
	require.Equal(t, []string{"missing"}, resp.FailedIDs)
	// anchor on the card div, not the class name: the print stylesheet
	// carries a .render-error selector ahead of every body
	card := `<div class="render-error">`
	require.Contains(t, resp.Document, card)

	// the failed slot sits between the two successful renders
	good := strings.Index(resp.Document, "Casa Boa")
	bad := strings.Index(resp.Document, card)
	other := strings.Index(resp.Document, "Outra Casa")
	require.Less(t, good, bad)
	require.Less(t, bad, other)
}

func TestPrintSinglePropertyAbortsOnLoadFailure(t *testing.T) {
	f := newRenderFixture(t)
	f.seedPrintDefault(t, "<h2>{{title}}</h2>")

	_, err := f.svc.Print(context.Background(), PrintRequest{
		CompanyID:   testCompanyID,
		PropertyIDs: []string{"missing"},
	})
	require.ErrorIs(t, err, repository.ErrPropertyNotFound)
}

func TestPrintCompactNeedsNoTemplate(t *testing.T) {
	f := newRenderFixture(t)
	f.seedProperty(t, "p1", "Casa Compacta", 250000)

	resp, err := f.svc.Print(context.Background(), PrintRequest{
		CompanyID:   testCompanyID,
		PropertyIDs: []string{"p1"},
		Compact:     true,
	})
	require.NoError(t, err)
	require.Contains(t, resp.Document, "compact-header")
	require.Contains(t, resp.Document, "Casa Compacta")
}

func TestPrintWithoutDefaultTemplateFails(t *testing.T) {
	f := newRenderFixture(t)
	f.seedProperty(t, "p1", "Casa", 100000)

	_, err := f.svc.Print(context.Background(), PrintRequest{
		CompanyID:   testCompanyID,
		PropertyIDs: []string{"p1"},
	})
	require.ErrorIs(t, err, repository.ErrNoDefaultTemplate)
}

func TestPreviewReturnsHTMLAndText(t *testing.T) {
	f := newRenderFixture(t)
	f.seedProperty(t, "p1", "Casa Vista", 500000)
	tpl := f.seedShareDefault(t, "", "{{title}}{{line_break}}{{price}}")

	resp, err := f.svc.Preview(context.Background(), PreviewRequest{
		CompanyID:  testCompanyID,
		PropertyID: "p1",
		TemplateID: tpl.TemplateID,
	})
	require.NoError(t, err)
	require.Contains(t, resp.HTML, "<br>")
	require.Contains(t, resp.Text, "\n")
	require.Contains(t, resp.Text, "R$ 500.000,00")
}

func TestPreviewImageURLsAreResolved(t *testing.T) {
	f := newRenderFixture(t)
	f.seedProperty(t, "p1", "Casa com Fotos", 500000)
	require.NoError(t, f.properties.AddImage(context.Background(), &domain.PropertyImage{
		ImageID:    "img-1",
		PropertyID: "p1",
		URL:        "companies/horizonte/p1/frente.jpg",
		IsCover:    true,
	}))
	tpl := f.seedShareDefault(t, "", "{{title}}")

	resp, err := f.svc.Preview(context.Background(), PreviewRequest{
		CompanyID:  testCompanyID,
		PropertyID: "p1",
		TemplateID: tpl.TemplateID,
	})
	require.NoError(t, err)
	require.Contains(t, resp.HTML, "https://storage.example.com/public/companies/horizonte/p1/frente.jpg")
}
