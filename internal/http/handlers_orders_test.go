package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderHandlers_ListUnwrapsEnvelope(t *testing.T) {
	client, calls := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":1},{"id":2}]}`))
	})
	h := &OrderHandlers{Backend: client, Logger: discardLogger()}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/gateway/orders?page=2&per_page=10", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	h.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	call := calls.Last(t)
	assert.Equal(t, "/orders", call.Path)
	assert.Contains(t, call.Query, "page=2")

	var items []json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 2)
}

func TestOrderHandlers_ListBareArray(t *testing.T) {
	client, _ := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1}]`))
	})
	h := &OrderHandlers{Backend: client, Logger: discardLogger()}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/gateway/orders", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	h.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var items []json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 1)
}

func TestOrderHandlers_Get(t *testing.T) {
	client, calls := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":5,"status":"shipped"}`))
	})
	h := &OrderHandlers{Backend: client, Logger: discardLogger()}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/gateway/orders/5", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	req.SetPathValue("id", "5")
	h.Get(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/orders/5", calls.Last(t).Path)
	assert.JSONEq(t, `{"id":5,"status":"shipped"}`, rec.Body.String())
}

func TestOrderHandlers_CancelRequiresHeader(t *testing.T) {
	client, calls := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called without an authorization header")
	})
	h := &OrderHandlers{Backend: client, Logger: discardLogger()}

	// A cookie satisfies every other order route, but not cancel.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/gateway/orders/5/cancel", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "tok-1"})
	req.SetPathValue("id", "5")
	h.Cancel(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, calls.Len())
}

func TestOrderHandlers_Cancel(t *testing.T) {
	client, calls := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"message":"cancelled"}`))
	})
	h := &OrderHandlers{Backend: client, Logger: discardLogger()}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/gateway/orders/5/cancel", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	req.SetPathValue("id", "5")
	h.Cancel(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	call := calls.Last(t)
	assert.Equal(t, http.MethodPost, call.Method)
	assert.Equal(t, "/orders/5/cancel", call.Path)
	assert.Equal(t, "Bearer tok-1", call.Header.Get("Authorization"))
}

func TestOrderHandlers_ListRequiresToken(t *testing.T) {
	client, calls := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called without credentials")
	})
	h := &OrderHandlers{Backend: client, Logger: discardLogger()}

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/gateway/orders", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, calls.Len())
}
