package service

import (
	"context"
	"testing"

	"imovelhub-api/internal/domain"
	"imovelhub-api/internal/repository"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testCompanyID = "11111111-1111-1111-1111-111111111111"

func newTemplateFixture() (TemplateService, *repository.MemoryTemplatesRepository) {
	repo := repository.NewMemoryTemplatesRepository()
	return NewTemplateService(repo, zap.NewNop()), repo
}

func TestCreateTemplateAppliesDefaults(t *testing.T) {
	svc, _ := newTemplateFixture()

	tpl, err := svc.CreateTemplate(context.Background(), CreateTemplateRequest{
		CompanyID: testCompanyID,
		Name:      "Compartilhar WhatsApp",
		Kind:      domain.TemplateKindShare,
		Platform:  domain.PlatformWhatsApp,
		Content:   "{{title}} - {{price}}",
	})
	require.NoError(t, err)
	require.Equal(t, 2, tpl.PhotoColumns)
	require.Equal(t, domain.PlacementAfterText, tpl.PhotoPlacement)
	require.Equal(t, 6, tpl.MaxPhotos)
	require.False(t, tpl.IsDefault)
}

func TestCreateTemplateValidation(t *testing.T) {
	svc, _ := newTemplateFixture()
	ctx := context.Background()

	_, err := svc.CreateTemplate(ctx, CreateTemplateRequest{
		CompanyID: testCompanyID, Name: "X", Kind: "banner", Content: "c",
	})
	require.ErrorContains(t, err, "invalid template kind")

	_, err = svc.CreateTemplate(ctx, CreateTemplateRequest{
		CompanyID: testCompanyID, Name: "X", Kind: domain.TemplateKindShare, Content: "  ",
	})
	require.ErrorContains(t, err, "content is required")

	_, err = svc.CreateTemplate(ctx, CreateTemplateRequest{
		CompanyID: testCompanyID, Name: "X", Kind: domain.TemplateKindShare,
		Content: "c", PhotoPlacement: "sideways",
	})
	require.ErrorContains(t, err, "invalid photo placement")
}

func TestCreateDefaultClearsSiblingDefaults(t *testing.T) {
	svc, repo := newTemplateFixture()
	ctx := context.Background()

	first, err := svc.CreateTemplate(ctx, CreateTemplateRequest{
		CompanyID: testCompanyID, Name: "Primeiro", Kind: domain.TemplateKindShare,
		Platform: domain.PlatformWhatsApp, Content: "a", IsDefault: true,
	})
	require.NoError(t, err)
	require.True(t, first.IsDefault)

	second, err := svc.CreateTemplate(ctx, CreateTemplateRequest{
		CompanyID: testCompanyID, Name: "Segundo", Kind: domain.TemplateKindShare,
		Platform: domain.PlatformWhatsApp, Content: "b", IsDefault: true,
	})
	require.NoError(t, err)
	require.True(t, second.IsDefault)

	got, err := repo.GetDefaultTemplate(ctx, testCompanyID, domain.TemplateKindShare, domain.PlatformWhatsApp)
	require.NoError(t, err)
	require.Equal(t, second.TemplateID, got.TemplateID)

	first, err = svc.GetTemplate(ctx, testCompanyID, first.TemplateID)
	require.NoError(t, err)
	require.False(t, first.IsDefault)
}

func TestSetDefaultTemplateMovesTheFlag(t *testing.T) {
	svc, repo := newTemplateFixture()
	ctx := context.Background()

	a, err := svc.CreateTemplate(ctx, CreateTemplateRequest{
		CompanyID: testCompanyID, Name: "A", Kind: domain.TemplateKindPrint,
		Content: "a", IsDefault: true,
	})
	require.NoError(t, err)
	b, err := svc.CreateTemplate(ctx, CreateTemplateRequest{
		CompanyID: testCompanyID, Name: "B", Kind: domain.TemplateKindPrint, Content: "b",
	})
	require.NoError(t, err)

	require.NoError(t, svc.SetDefaultTemplate(ctx, testCompanyID, b.TemplateID))

	got, err := repo.GetDefaultTemplate(ctx, testCompanyID, domain.TemplateKindPrint, "")
	require.NoError(t, err)
	require.Equal(t, b.TemplateID, got.TemplateID)

	a, err = svc.GetTemplate(ctx, testCompanyID, a.TemplateID)
	require.NoError(t, err)
	require.False(t, a.IsDefault)
}

func TestArchivedTemplateCannotBeDefault(t *testing.T) {
	svc, repo := newTemplateFixture()
	ctx := context.Background()

	tpl, err := svc.CreateTemplate(ctx, CreateTemplateRequest{
		CompanyID: testCompanyID, Name: "Antigo", Kind: domain.TemplateKindShare,
		Content: "a", IsDefault: true,
	})
	require.NoError(t, err)

	require.NoError(t, svc.ArchiveTemplate(ctx, testCompanyID, tpl.TemplateID))

	_, err = repo.GetDefaultTemplate(ctx, testCompanyID, domain.TemplateKindShare, "")
	require.ErrorIs(t, err, repository.ErrNoDefaultTemplate)

	err = svc.SetDefaultTemplate(ctx, testCompanyID, tpl.TemplateID)
	require.ErrorContains(t, err, "archived")
}

func TestUpdateTemplateUnknownID(t *testing.T) {
	svc, _ := newTemplateFixture()
	name := "Novo nome"
	_, err := svc.UpdateTemplate(context.Background(), UpdateTemplateRequest{
		CompanyID: testCompanyID, TemplateID: "missing", Name: &name,
	})
	require.ErrorIs(t, err, repository.ErrTemplateNotFound)
}

func TestGetDefaultTemplateFallsBackToGeneric(t *testing.T) {
	svc, _ := newTemplateFixture()
	ctx := context.Background()

	generic, err := svc.CreateTemplate(ctx, CreateTemplateRequest{
		CompanyID: testCompanyID, Name: "Padrão", Kind: domain.TemplateKindShare,
		Content: "{{title}}", IsDefault: true,
	})
	require.NoError(t, err)

	got, err := svc.GetDefaultTemplate(ctx, testCompanyID, domain.TemplateKindShare, domain.PlatformWhatsApp)
	require.NoError(t, err)
	require.Equal(t, generic.TemplateID, got.TemplateID)

	wa, err := svc.CreateTemplate(ctx, CreateTemplateRequest{
		CompanyID: testCompanyID, Name: "WhatsApp", Kind: domain.TemplateKindShare,
		Platform: domain.PlatformWhatsApp, Content: "{{title}} {{price}}", IsDefault: true,
	})
	require.NoError(t, err)

	got, err = svc.GetDefaultTemplate(ctx, testCompanyID, domain.TemplateKindShare, domain.PlatformWhatsApp)
	require.NoError(t, err)
	require.Equal(t, wa.TemplateID, got.TemplateID)

	_, err = svc.GetDefaultTemplate(ctx, testCompanyID, domain.TemplateKindPrint, "")
	require.ErrorIs(t, err, repository.ErrNoDefaultTemplate)
}
