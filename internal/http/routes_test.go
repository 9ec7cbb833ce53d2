package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	client, _ := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	})
	return NewRouter(RouterServices{
		Backend:  client,
		Sessions: newTestSessions(newMemSessionRepo(), &memNotifier{}),
		Logger:   discardLogger(),
	})
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestRouter_Metrics(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_PublicCatalog(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/gateway/products", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AuthenticatedRoutesReject(t *testing.T) {
	router := newTestRouter(t)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/gateway/orders"},
		{http.MethodGet, "/api/gateway/reports"},
		{http.MethodPost, "/api/gateway/deactivate"},
		{http.MethodGet, "/api/gateway/dashboard"},
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equalf(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/session/login", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_PathParameters(t *testing.T) {
	client, calls := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":42}`))
	})
	router := NewRouter(RouterServices{
		Backend:  client,
		Sessions: newTestSessions(newMemSessionRepo(), &memNotifier{}),
		Logger:   discardLogger(),
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/gateway/products/42", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/products/42", calls.Last(t).Path)
}
