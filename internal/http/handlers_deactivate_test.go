package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeactivateHandlers_ClearsSession(t *testing.T) {
	client, calls := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"message":"account deactivated"}`))
	})
	repo := newMemSessionRepo()
	notifier := &memNotifier{}
	seedSession(t, repo, "tok-4")
	h := &DeactivateHandlers{
		Backend:  client,
		Sessions: newTestSessions(repo, notifier),
		Logger:   discardLogger(),
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/gateway/deactivate", nil)
	req.Header.Set("Authorization", "Bearer tok-4")
	h.Deactivate(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/user/deactivate", calls.Last(t).Path)
	assert.Empty(t, repo.recs)
	assert.Equal(t, []string{"tok-4"}, notifier.tokens)
}

func TestDeactivateHandlers_BackendFailureKeepsSession(t *testing.T) {
	client, _ := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"cannot deactivate"}`))
	})
	repo := newMemSessionRepo()
	seedSession(t, repo, "tok-4")
	h := &DeactivateHandlers{
		Backend:  client,
		Sessions: newTestSessions(repo, &memNotifier{}),
		Logger:   discardLogger(),
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/gateway/deactivate", nil)
	req.Header.Set("Authorization", "Bearer tok-4")
	h.Deactivate(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// The account still exists upstream, so the session stays usable.
	assert.Len(t, repo.recs, 1)
}

func TestDeactivateHandlers_RequiresToken(t *testing.T) {
	client, calls := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called without credentials")
	})
	h := &DeactivateHandlers{
		Backend:  client,
		Sessions: newTestSessions(newMemSessionRepo(), &memNotifier{}),
		Logger:   discardLogger(),
	}

	rec := httptest.NewRecorder()
	h.Deactivate(rec, httptest.NewRequest(http.MethodPost, "/api/gateway/deactivate", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, calls.Len())
}
