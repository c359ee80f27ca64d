package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/straye-as/estimate-api/internal/auth"
	"github.com/straye-as/estimate-api/internal/config"
	"github.com/straye-as/estimate-api/internal/database"
	"github.com/straye-as/estimate-api/internal/domain"
	"github.com/straye-as/estimate-api/internal/http/handler"
	"github.com/straye-as/estimate-api/internal/http/middleware"
	"github.com/straye-as/estimate-api/internal/http/router"
	"github.com/straye-as/estimate-api/internal/pricing"
	"github.com/straye-as/estimate-api/internal/repository"
	"github.com/straye-as/estimate-api/internal/service"
	"github.com/straye-as/estimate-api/internal/storage"
)

const testAPIKey = "test-api-key"

type builderFunc func(ctx context.Context, in domain.Inputs) (domain.Output, error)

func (f builderFunc) BuildOutput(ctx context.Context, in domain.Inputs) (domain.Output, error) {
	return f(ctx, in)
}

func cannedBuilder() builderFunc {
	return func(ctx context.Context, in domain.Inputs) (domain.Output, error) {
		return domain.Output{
			Totals:      pricing.ComputeTotals(in),
			ScopeOfWork: "Build the deck.",
			Assumptions: []string{"Dry weather"},
			Exclusions:  []string{"Permits"},
			BOM:         []domain.BOMItem{{Name: "Joist", Qty: 20, Unit: "ea", Notes: "2x8, treated"}},
			AHJ:         domain.AHJ{Guidance: []string{}, SearchLinks: []domain.SearchLink{}},
		}, nil
	}
}

type testServer struct {
	handler http.Handler
	archive storage.Storage
}

func testConfig() *config.Config {
	return &config.Config{
		App:    config.AppConfig{Name: "estimate-api", Environment: "test"},
		Auth:   config.AuthConfig{APIKey: testAPIKey},
		Server: config.ServerConfig{RequestTimeout: 5, EnableSwagger: true},
		Security: config.SecurityConfig{
			ContentTypeNosniff:    true,
			FrameOptions:          "DENY",
			ContentSecurityPolicy: "default-src 'self'",
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"https://app.example.com"},
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "X-API-Key"},
		},
		RateLimit: config.RateLimitConfig{
			Enabled:                   false,
			RequestsPerMinute:         1000,
			GenerateRequestsPerMinute: 1000,
		},
	}
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewDatabase(&config.DatabaseConfig{
		Driver:     database.DriverSQLite,
		SQLitePath: "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newTestServer(t *testing.T, cfg *config.Config, builder service.OutputBuilder) *testServer {
	t.Helper()
	log := zap.NewNop()
	db := setupTestDB(t)

	archive, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	repo := repository.NewEstimateRepository(db)
	exportService := service.NewExportService(repo, archive, log)
	estimateService := service.NewEstimateService(repo, builder, exportService, log)

	rt := router.NewRouter(
		cfg,
		log,
		auth.NewMiddleware(&cfg.Auth, log),
		middleware.NewRateLimiter(&cfg.RateLimit, log),
		handler.NewHealthHandler(db, log),
		handler.NewEstimateHandler(estimateService, log),
		handler.NewGenerateHandler(estimateService, log),
		handler.NewExportHandler(exportService, log),
	)
	return &testServer{handler: rt.Setup(), archive: archive}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", testAPIKey)
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func testInputs() domain.Inputs {
	in := domain.DefaultInputs()
	in.Zip = "78701"
	in.JobTitle = "Backyard deck"
	in.Trade = domain.TradeDecksFencing
	return in
}

func testCustomer() domain.Customer {
	return domain.Customer{Name: "Dana Smith", Address1: "1 Main St", City: "Austin", State: "TX", Zip: "78701"}
}

func saveRequest(id string) domain.SaveEstimateRequest {
	return domain.SaveEstimateRequest{
		ID:       id,
		Title:    "Backyard deck",
		Zip:      "78701",
		Trade:    domain.TradeDecksFencing,
		Customer: testCustomer(),
		Inputs:   testInputs(),
		Outputs:  domain.Output{ScopeOfWork: "Build the deck.", BOM: []domain.BOMItem{{Name: "Joist", Qty: 20, Unit: "ea"}}},
	}
}

// ============================================================================
// Health
// ============================================================================

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t, testConfig(), cannedBuilder())

	for _, path := range []string{"/health", "/health/db", "/health/ready"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			rr := httptest.NewRecorder()
			srv.handler.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			body := decode[map[string]any](t, rr)
			assert.Equal(t, "healthy", body["status"])
		})
	}
}

// ============================================================================
// Middleware chain
// ============================================================================

func TestAPI_RequiresCredentials(t *testing.T) {
	srv := newTestServer(t, testConfig(), cannedBuilder())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/estimates", nil)
	rr := httptest.NewRecorder()
	srv.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/estimates", nil)
	req.Header.Set("X-API-Key", "wrong")
	rr = httptest.NewRecorder()
	srv.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAPI_CommonHeaders(t *testing.T) {
	srv := newTestServer(t, testConfig(), cannedBuilder())

	rr := srv.do(t, http.MethodGet, "/api/v1/estimates", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "default-src 'self'", rr.Header().Get("Content-Security-Policy"))
	assert.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))
}

func TestAPI_CORSPreflight(t *testing.T) {
	srv := newTestServer(t, testConfig(), cannedBuilder())

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/estimates", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	srv.handler.ServeHTTP(rr, req)

	assert.Equal(t, "https://app.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestAPI_GenerateRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.GenerateRequestsPerMinute = 1
	srv := newTestServer(t, cfg, cannedBuilder())

	body := domain.GenerateRequest{Inputs: testInputs()}
	rr := srv.do(t, http.MethodPost, "/api/v1/ai/generate", body)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = srv.do(t, http.MethodPost, "/api/v1/ai/generate", body)
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	apiErr := decode[domain.APIError](t, rr)
	assert.Equal(t, domain.ErrorTypeRateLimited, apiErr.Type)

	// non-generating routes keep working
	rr = srv.do(t, http.MethodPost, "/api/v1/pricing/preview", domain.PricingPreviewRequest{Inputs: testInputs()})
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestSwaggerDoc(t *testing.T) {
	srv := newTestServer(t, testConfig(), cannedBuilder())

	req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
	rr := httptest.NewRecorder()
	srv.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "/estimates/{id}")
	assert.Empty(t, rr.Header().Get("Content-Security-Policy"))
}

// ============================================================================
// Estimates
// ============================================================================

func TestEstimates_CRUD(t *testing.T) {
	srv := newTestServer(t, testConfig(), cannedBuilder())

	rr := srv.do(t, http.MethodPost, "/api/v1/estimates", saveRequest("est-000001"))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	saved := decode[domain.EstimateDTO](t, rr)
	assert.Equal(t, "est-000001", saved.ID)
	assert.NotEmpty(t, saved.CreatedAt)

	rr = srv.do(t, http.MethodGet, "/api/v1/estimates/est-000001", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	got := decode[domain.EstimateDTO](t, rr)
	assert.Equal(t, saved, got)

	rr = srv.do(t, http.MethodGet, "/api/v1/estimates", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	list := decode[domain.EstimateListResponse](t, rr)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Backyard deck", list.Items[0].Title)

	rr = srv.do(t, http.MethodDelete, "/api/v1/estimates/est-000001", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = srv.do(t, http.MethodGet, "/api/v1/estimates/est-000001", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	apiErr := decode[domain.APIError](t, rr)
	assert.Equal(t, domain.ErrorTypeNotFound, apiErr.Type)

	rr = srv.do(t, http.MethodDelete, "/api/v1/estimates/est-000001", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestEstimates_EmptyListIsArray(t *testing.T) {
	srv := newTestServer(t, testConfig(), cannedBuilder())

	rr := srv.do(t, http.MethodGet, "/api/v1/estimates", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"items":[]}`, rr.Body.String())
}

func TestEstimates_SaveValidation(t *testing.T) {
	srv := newTestServer(t, testConfig(), cannedBuilder())

	req := saveRequest("short")
	req.Title = ""
	rr := srv.do(t, http.MethodPost, "/api/v1/estimates", req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	apiErr := decode[domain.APIError](t, rr)
	assert.Equal(t, domain.ErrorTypeValidation, apiErr.Type)
	assert.Contains(t, apiErr.Errors, "id")
	assert.Contains(t, apiErr.Errors, "title")
}

func TestEstimates_BadBodies(t *testing.T) {
	srv := newTestServer(t, testConfig(), cannedBuilder())

	tests := []struct {
		name string
		body string
	}{
		{name: "empty", body: ""},
		{name: "malformed", body: `{"id":`},
		{name: "two documents", body: `{} {}`},
		{name: "unknown trade", body: `{"id":"est-000002","trade":"Masonry"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := srv.do(t, http.MethodPost, "/api/v1/estimates", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			apiErr := decode[domain.APIError](t, rr)
			assert.Equal(t, domain.ErrorTypeBadRequest, apiErr.Type)
		})
	}
}

func TestEstimates_Defaults(t *testing.T) {
	srv := newTestServer(t, testConfig(), cannedBuilder())

	rr := srv.do(t, http.MethodGet, "/api/v1/estimates/defaults", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	got := decode[domain.DefaultsDTO](t, rr)
	assert.Equal(t, domain.Trades, got.Trades)
	assert.Equal(t, domain.DefaultInputs().Labor, got.Inputs.Labor)
}

func TestEstimates_GenerateAndSave(t *testing.T) {
	srv := newTestServer(t, testConfig(), cannedBuilder())

	rr := srv.do(t, http.MethodPost, "/api/v1/estimates/generate", domain.GenerateAndSaveRequest{
		Inputs:   testInputs(),
		Customer: testCustomer(),
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	created := decode[domain.EstimateDTO](t, rr)
	assert.True(t, strings.HasPrefix(created.ID, "est-"))
	assert.Equal(t, "Backyard deck", created.Title)
	assert.Equal(t, "Build the deck.", created.Outputs.ScopeOfWork)

	rr = srv.do(t, http.MethodGet, "/api/v1/estimates/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestEstimates_GenerateAndSaveRejectsCustomer(t *testing.T) {
	srv := newTestServer(t, testConfig(), cannedBuilder())

	customer := testCustomer()
	customer.Name = ""
	rr := srv.do(t, http.MethodPost, "/api/v1/estimates/generate", domain.GenerateAndSaveRequest{
		Inputs:   testInputs(),
		Customer: customer,
	})

	require.Equal(t, http.StatusBadRequest, rr.Code)
	apiErr := decode[domain.APIError](t, rr)
	assert.Contains(t, apiErr.Errors, "customer.name")

	rr = srv.do(t, http.MethodGet, "/api/v1/estimates", nil)
	assert.JSONEq(t, `{"items":[]}`, rr.Body.String())
}

// ============================================================================
// Generation
// ============================================================================

func TestGenerate_ReturnsOutputs(t *testing.T) {
	srv := newTestServer(t, testConfig(), cannedBuilder())

	rr := srv.do(t, http.MethodPost, "/api/v1/ai/generate", domain.GenerateRequest{Inputs: testInputs()})
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode[domain.GenerateResponse](t, rr)
	assert.Equal(t, "Build the deck.", resp.Outputs.ScopeOfWork)
	assert.Equal(t, pricing.ComputeTotals(testInputs()), resp.Outputs.Totals)

	// nothing stored
	rr = srv.do(t, http.MethodGet, "/api/v1/estimates", nil)
	assert.JSONEq(t, `{"items":[]}`, rr.Body.String())
}

func TestGenerate_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		errType string
	}{
		{
			name:    "contract",
			err:     domain.ErrGenerationContract,
			status:  http.StatusBadGateway,
			errType: domain.ErrorTypeGenerationContract,
		},
		{
			name:    "upstream",
			err:     domain.ErrUpstreamUnavailable,
			status:  http.StatusServiceUnavailable,
			errType: domain.ErrorTypeUpstreamUnavailable,
		},
		{
			name:    "deadline",
			err:     context.DeadlineExceeded,
			status:  http.StatusGatewayTimeout,
			errType: domain.ErrorTypeTimeout,
		},
		{
			name:    "validation",
			err:     &domain.ValidationError{Fields: map[string]string{"zip": "This field is required"}},
			status:  http.StatusBadRequest,
			errType: domain.ErrorTypeValidation,
		},
		{
			name:    "unexpected",
			err:     assert.AnError,
			status:  http.StatusInternalServerError,
			errType: domain.ErrorTypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, testConfig(), builderFunc(func(ctx context.Context, in domain.Inputs) (domain.Output, error) {
				return domain.Output{}, tt.err
			}))

			rr := srv.do(t, http.MethodPost, "/api/v1/ai/generate", domain.GenerateRequest{Inputs: testInputs()})
			assert.Equal(t, tt.status, rr.Code)
			apiErr := decode[domain.APIError](t, rr)
			assert.Equal(t, tt.errType, apiErr.Type)
			assert.NotContains(t, apiErr.Detail, assert.AnError.Error())
		})
	}
}

func TestPricingPreview(t *testing.T) {
	srv := newTestServer(t, testConfig(), cannedBuilder())

	rr := srv.do(t, http.MethodPost, "/api/v1/pricing/preview", domain.PricingPreviewRequest{Inputs: testInputs()})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, pricing.ComputeTotals(testInputs()), decode[domain.Totals](t, rr))

	in := testInputs()
	in.Zip = ""
	rr = srv.do(t, http.MethodPost, "/api/v1/pricing/preview", domain.PricingPreviewRequest{Inputs: in})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decode[domain.APIError](t, rr).Errors, "zip")
}

// ============================================================================
// Export
// ============================================================================

func TestExport_BOM(t *testing.T) {
	srv := newTestServer(t, testConfig(), cannedBuilder())
	require.Equal(t, http.StatusOK, srv.do(t, http.MethodPost, "/api/v1/estimates", saveRequest("est-000003")).Code)

	rr := srv.do(t, http.MethodGet, "/api/v1/export/bom/est-000003", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/csv")
	assert.Equal(t, `attachment; filename="BOM-est-000003.csv"`, rr.Header().Get("Content-Disposition"))

	lines := strings.Split(strings.TrimSpace(rr.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "name,qty,unit,notes", strings.TrimSpace(lines[0]))
	assert.True(t, strings.HasPrefix(lines[1], "Joist,20,ea,"))

	// rendered once, then archived
	keys, err := srv.archive.List(context.Background(), "exports/est-000003/")
	require.NoError(t, err)
	assert.Len(t, keys, 1)

	again := srv.do(t, http.MethodGet, "/api/v1/export/bom/est-000003", nil)
	assert.Equal(t, rr.Body.String(), again.Body.String())
}

func TestExport_Proposal(t *testing.T) {
	srv := newTestServer(t, testConfig(), cannedBuilder())
	require.Equal(t, http.StatusOK, srv.do(t, http.MethodPost, "/api/v1/estimates", saveRequest("est-000004")).Code)

	rr := srv.do(t, http.MethodGet, "/api/v1/export/pdf/est-000004", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Backyard deck.pdf"`, rr.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")))
}

func TestExport_NotFound(t *testing.T) {
	srv := newTestServer(t, testConfig(), cannedBuilder())

	for _, path := range []string{"/api/v1/export/bom/est-missing", "/api/v1/export/pdf/est-missing"} {
		rr := srv.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
	}
}

func TestExport_DeleteDropsArchive(t *testing.T) {
	srv := newTestServer(t, testConfig(), cannedBuilder())
	require.Equal(t, http.StatusOK, srv.do(t, http.MethodPost, "/api/v1/estimates", saveRequest("est-000005")).Code)
	require.Equal(t, http.StatusOK, srv.do(t, http.MethodGet, "/api/v1/export/pdf/est-000005", nil).Code)

	require.Equal(t, http.StatusNoContent, srv.do(t, http.MethodDelete, "/api/v1/estimates/est-000005", nil).Code)

	keys, err := srv.archive.List(context.Background(), "exports/est-000005/")
	require.NoError(t, err)
	assert.Empty(t, keys)
}
