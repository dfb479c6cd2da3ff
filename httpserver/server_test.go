package httpserver

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ruteri/secretstore-backend/api/secretstorehandler"
	"github.com/ruteri/secretstore-backend/cryptoutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := secretstorehandler.NewHandler(cryptoutils.NewDocumentCipher(nil), log)

	srv, err := New(&HTTPServerConfig{
		Log:           log,
		DrainDuration: time.Millisecond,
	}, handler)
	require.NoError(t, err, "Failed to create server")
	return srv
}

func getStatus(t *testing.T, router http.Handler, path string) int {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec.Code
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)
	router := srv.getRouter()

	assert.Equal(t, http.StatusOK, getStatus(t, router, "/livez"), "Liveness check should pass")
	assert.Equal(t, http.StatusOK, getStatus(t, router, "/readyz"), "Server should start ready")
}

func TestDrainUndrain(t *testing.T) {
	srv := newTestServer(t)
	router := srv.getRouter()

	assert.Equal(t, http.StatusOK, getStatus(t, router, "/drain"))
	assert.Equal(t, http.StatusServiceUnavailable, getStatus(t, router, "/readyz"), "Server should not be ready while draining")

	assert.Equal(t, http.StatusOK, getStatus(t, router, "/undrain"))
	assert.Equal(t, http.StatusOK, getStatus(t, router, "/readyz"), "Server should be ready after undrain")
}

func TestDocumentRoutesMounted(t *testing.T) {
	srv := newTestServer(t)
	router := srv.getRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/document/encrypt", nil)
	router.ServeHTTP(rec, req)

	// An empty body is a decode error, not a missing route.
	assert.Equal(t, http.StatusBadRequest, rec.Code, "Document routes should be mounted")
}
