package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactHandlers_Send(t *testing.T) {
	client, calls := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"message":"thanks"}`))
	})
	h := &ContactHandlers{Backend: client, Logger: discardLogger()}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/gateway/contact",
		strings.NewReader(`{"name":"Ada","email":"ada@example.com","message":"hello there"}`))
	h.Send(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, 1, calls.Len())

	call := calls.Last(t)
	assert.Equal(t, "/contact", call.Path)
	// Anonymous route: no credential is attached.
	assert.Empty(t, call.Header.Get("Authorization"))
}

func TestContactHandlers_Validation(t *testing.T) {
	client, calls := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not see an invalid contact message")
	})
	h := &ContactHandlers{Backend: client, Logger: discardLogger()}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/gateway/contact",
		strings.NewReader(`{"name":"","email":"nope","message":""}`))
	h.Send(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, calls.Len())

	var ne NormalizedError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ne))
	assert.Contains(t, ne.Errors, "name")
	assert.Contains(t, ne.Errors, "email")
	assert.Contains(t, ne.Errors, "message")
}
