package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"imovelhub-api/internal/domain"
	"imovelhub-api/internal/render"
	"imovelhub-api/internal/repository"
	"imovelhub-api/internal/service"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testCompanyID = "11111111-1111-1111-1111-111111111111"
	adminToken    = "admin-token"
	agentToken    = "agent-token"
)

// fakeAuthService resolves fixed tokens so handler tests skip the identity
// provider round trip.
type fakeAuthService struct{}

func (f *fakeAuthService) Login(ctx context.Context, providerToken string) (*service.LoginResponse, error) {
	return nil, fmt.Errorf("not supported in tests")
}

func (f *fakeAuthService) Logout(ctx context.Context, sessionToken string) error { return nil }

func (f *fakeAuthService) ResolveSession(ctx context.Context, sessionToken string) (*domain.Session, error) {
	switch sessionToken {
	case adminToken:
		return &domain.Session{
			Token: sessionToken, UserID: "admin-1", CompanyID: testCompanyID,
			Role: domain.RoleAdmin, ExpiresAt: time.Now().Add(time.Hour),
		}, nil
	case agentToken:
		return &domain.Session{
			Token: sessionToken, UserID: "agent-1", CompanyID: testCompanyID,
			Role: domain.RoleAgent, ExpiresAt: time.Now().Add(time.Hour),
		}, nil
	}
	return nil, fmt.Errorf("session expired")
}

type testEnv struct {
	server     *httptest.Server
	templates  *repository.MemoryTemplatesRepository
	properties *repository.MemoryPropertiesRepository
	companies  *repository.MemoryCompaniesRepository
	users      *repository.MemoryUsersRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()

	templates := repository.NewMemoryTemplatesRepository()
	properties := repository.NewMemoryPropertiesRepository()
	companies := repository.NewMemoryCompaniesRepository()
	users := repository.NewMemoryUsersRepository()

	companies.PutCompany(&domain.Company{
		CompanyID: testCompanyID,
		Name:      "Imobiliária Horizonte",
		Slug:      "horizonte",
	})

	storage := service.NewStorageResolver("https://storage.example.com/public")
	analytics := service.NewAnalyticsClient("http://localhost:1", false, logger)
	auth := &fakeAuthService{}

	mw := NewAuthMiddleware(auth, logger)
	router := NewRouter(logger)
	router.RegisterRoutes(Handlers{
		Auth:       NewAuthHandler(auth, logger),
		Templates:  NewTemplateHandler(service.NewTemplateService(templates, logger), logger),
		Properties: NewPropertyHandler(service.NewPropertyService(properties, storage, logger), logger),
		Renders: NewRenderHandler(service.NewRenderService(
			templates, properties, companies, storage,
			render.NewQRGenerator(128), analytics,
			"https://imovelhub.com.br", logger), logger),
		Company:   NewCompanyHandler(service.NewCompanyService(companies, storage, logger), logger),
		Users:     NewUserHandler(service.NewUserService(users, logger), logger),
		Exports:   NewExportHandler(service.NewExportService(properties, logger), logger),
		Dashboard: NewDashboardHandler(service.NewDashboardService(properties, templates, logger), logger),
	}, mw)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return &testEnv{
		server:     server,
		templates:  templates,
		properties: properties,
		companies:  companies,
		users:      users,
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*http.Response, Result[json.RawMessage]) {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	req, err := http.NewRequest(method, e.server.URL+path, &payload)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result Result[json.RawMessage]
	if resp.Header.Get("Content-Type") == "application/json" {
		_ = json.NewDecoder(resp.Body).Decode(&result)
	}
	return resp, result
}

func TestUnauthenticatedRequestGets60401(t *testing.T) {
	env := newTestEnv(t)
	resp, result := env.do(t, http.MethodGet, "/api/v1/properties", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, ResultTokenExpired, result.Code)
}

func TestHealthzIsPublic(t *testing.T) {
	env := newTestEnv(t)
	resp, _ := env.do(t, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTemplateCRUDOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	resp, result := env.do(t, http.MethodPost, "/api/v1/templates", adminToken, map[string]any{
		"name":       "WhatsApp padrão",
		"kind":       "share",
		"platform":   "whatsapp",
		"content":    "{{title}} - {{price}}",
		"is_default": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, ResultSuccess, result.Code)

	var created domain.Template
	require.NoError(t, json.Unmarshal(result.Result, &created))
	require.NotEmpty(t, created.TemplateID)
	require.True(t, created.IsDefault)

	_, listResult := env.do(t, http.MethodGet, "/api/v1/templates?kind=share", agentToken, nil)
	require.Equal(t, ResultSuccess, listResult.Code)

	var listing struct {
		Items []domain.Template `json:"items"`
		Total int               `json:"total"`
	}
	require.NoError(t, json.Unmarshal(listResult.Result, &listing))
	require.Equal(t, 1, listing.Total)

	_, archiveResult := env.do(t, http.MethodDelete, "/api/v1/templates/"+created.TemplateID, adminToken, nil)
	require.Equal(t, ResultSuccess, archiveResult.Code)

	_, listResult = env.do(t, http.MethodGet, "/api/v1/templates", agentToken, nil)
	require.NoError(t, json.Unmarshal(listResult.Result, &listing))
	require.Equal(t, 0, listing.Total)
}

func TestTemplateWriteRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	resp, result := env.do(t, http.MethodPost, "/api/v1/templates", agentToken, map[string]any{
		"name": "X", "kind": "share", "content": "c",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, ResultError, result.Code)
	require.Contains(t, result.Message, "admin role required")
}

func TestPropertyLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	_, created := env.do(t, http.MethodPost, "/api/v1/properties", agentToken, map[string]any{
		"title":      "Casa de Teste",
		"purpose":    "sale",
		"status":     "active",
		"sale_price": 350000,
		"city":       "Campinas",
	})
	require.Equal(t, ResultSuccess, created.Code)

	var p domain.Property
	require.NoError(t, json.Unmarshal(created.Result, &p))
	require.Equal(t, "Casa de Teste", p.Title)

	_, got := env.do(t, http.MethodGet, "/api/v1/properties/"+p.PropertyID, agentToken, nil)
	require.Equal(t, ResultSuccess, got.Code)

	_, updated := env.do(t, http.MethodPut, "/api/v1/properties/"+p.PropertyID, agentToken, map[string]any{
		"status": "sold",
	})
	require.Equal(t, ResultSuccess, updated.Code)
	var after domain.Property
	require.NoError(t, json.Unmarshal(updated.Result, &after))
	require.Equal(t, "sold", after.Status)

	_, deleted := env.do(t, http.MethodDelete, "/api/v1/properties/"+p.PropertyID, agentToken, nil)
	require.Equal(t, ResultSuccess, deleted.Code)

	_, missing := env.do(t, http.MethodGet, "/api/v1/properties/"+p.PropertyID, agentToken, nil)
	require.Equal(t, ResultError, missing.Code)
}

func TestShareEndpointReturnsPlan(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.templates.CreateTemplate(context.Background(), &domain.Template{
		TemplateID: "tpl-1", CompanyID: testCompanyID, Name: "Share",
		Kind: domain.TemplateKindShare, Platform: "", Content: "{{title}}",
		IsDefault: true, PhotoColumns: 2, PhotoPlacement: domain.PlacementAfterText, MaxPhotos: 6,
	}))
	sale := 100000.0
	require.NoError(t, env.properties.CreateProperty(context.Background(), &domain.Property{
		PropertyID: "p1", CompanyID: testCompanyID, Title: "Casa Azul",
		Purpose: domain.PurposeSale, Status: domain.PropertyStatusActive, SalePrice: &sale,
	}))

	_, result := env.do(t, http.MethodPost, "/api/v1/share", agentToken, map[string]any{
		"property_id": "p1",
		"channel":     "whatsapp",
	})
	require.Equal(t, ResultSuccess, result.Code)

	var plan struct {
		Action    string `json:"action"`
		ShareURL  string `json:"share_url"`
		Clipboard string `json:"clipboard"`
	}
	require.NoError(t, json.Unmarshal(result.Result, &plan))
	require.Equal(t, "copy_and_open", plan.Action)
	require.Contains(t, plan.ShareURL, "wa.me")
	require.Contains(t, plan.Clipboard, "Casa Azul")
}

func TestUserAdminRoutesRejectAgents(t *testing.T) {
	env := newTestEnv(t)
	_, result := env.do(t, http.MethodGet, "/api/v1/users", agentToken, nil)
	require.Equal(t, ResultError, result.Code)

	_, adminResult := env.do(t, http.MethodGet, "/api/v1/users", adminToken, nil)
	require.Equal(t, ResultSuccess, adminResult.Code)
}

func TestExportStreamsCSV(t *testing.T) {
	env := newTestEnv(t)
	sale := 100000.0
	require.NoError(t, env.properties.CreateProperty(context.Background(), &domain.Property{
		PropertyID: "p1", CompanyID: testCompanyID, Title: "Casa CSV",
		Purpose: domain.PurposeSale, Status: domain.PropertyStatusActive, SalePrice: &sale,
	}))

	req, err := http.NewRequest(http.MethodGet, env.server.URL+"/api/v1/properties/export?format=csv", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+agentToken)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	require.Contains(t, resp.Header.Get("Content-Disposition"), ".csv")

	var body bytes.Buffer
	_, _ = body.ReadFrom(resp.Body)
	require.Contains(t, body.String(), "Casa CSV")
}

func TestDashboardMetrics(t *testing.T) {
	env := newTestEnv(t)
	sale := 100000.0
	require.NoError(t, env.properties.CreateProperty(context.Background(), &domain.Property{
		PropertyID: "p1", CompanyID: testCompanyID, Title: "Ativa",
		Purpose: domain.PurposeSale, Status: domain.PropertyStatusActive, SalePrice: &sale,
	}))
	require.NoError(t, env.properties.CreateProperty(context.Background(), &domain.Property{
		PropertyID: "p2", CompanyID: testCompanyID, Title: "Rascunho",
		Purpose: domain.PurposeRental, Status: domain.PropertyStatusDraft,
	}))

	_, result := env.do(t, http.MethodGet, "/api/v1/dashboard", agentToken, nil)
	require.Equal(t, ResultSuccess, result.Code)

	var metrics struct {
		TotalProperties int            `json:"total_properties"`
		ByStatus        map[string]int `json:"by_status"`
	}
	require.NoError(t, json.Unmarshal(result.Result, &metrics))
	require.Equal(t, 2, metrics.TotalProperties)
	require.Equal(t, 1, metrics.ByStatus["active"])
	require.Equal(t, 1, metrics.ByStatus["draft"])
}
