package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/financas-be/internal/auth"
	"github.com/hongminglow/financas-be/internal/billing"
	"github.com/hongminglow/financas-be/internal/config"
	"github.com/hongminglow/financas-be/internal/logging"
	"github.com/hongminglow/financas-be/internal/metrics"
	"github.com/hongminglow/financas-be/internal/storage/memory"
)

// countingIdentity wraps a provider and counts token verifications.
type countingIdentity struct {
	auth.Provider
	verifies int
}

func (c *countingIdentity) Verify(ctx context.Context, token string) (auth.Identity, error) {
	c.verifies++
	return c.Provider.Verify(ctx, token)
}

func newTestHandler(t *testing.T, staticDir string) (http.Handler, *countingIdentity) {
	t.Helper()
	store := memory.New()
	identity := &countingIdentity{Provider: auth.NewLocalProvider(store, auth.NewTokenManager("secret", "financas-test", time.Hour))}
	cfg := config.Config{
		Port:        "0",
		CORSOrigins: []string{"*"},
		FrontendURL: "http://localhost:3000",
		TrialDays:   7,
		StaticDir:   staticDir,
	}
	h := NewHandler(cfg, Deps{
		Store:    store,
		Identity: identity,
		Billing:  billing.Disabled{},
		Metrics:  metrics.New(),
		Logger:   logging.Discard(),
	})
	return h, identity
}

func get(h http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGateUpstreamCalls(t *testing.T) {
	h, identity := newTestHandler(t, "")

	rec := get(h, "/api/entradas", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, identity.verifies, "no token, no upstream call")

	rec = get(h, "/api/entradas", "expired.or.forged")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 1, identity.verifies, "one validation call per request")

	rec = get(h, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, identity.verifies, "public routes skip the gate")
}

func TestUnknownAPIRouteIsJSON404(t *testing.T) {
	h, _ := newTestHandler(t, "")
	rec := get(h, "/api/nada", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"route not found"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestHandler(t, "")
	get(h, "/api/health", "")

	rec := get(h, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `financas_http_requests_total{method="GET",route="GET /api/health",status="200"} 1`)
}

func TestStaticFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>spa</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))
	h, _ := newTestHandler(t, dir)

	rec := get(h, "/app.js", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "console.log(1)", rec.Body.String())

	rec = get(h, "/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "spa"))

	rec = get(h, "/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	h, _ := newTestHandler(t, "")
	req := httptest.NewRequest(http.MethodOptions, "/api/despesas", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
