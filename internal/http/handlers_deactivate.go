package httpx

import (
	"log/slog"
	"net/http"

	"github.com/velora/shop-ui-gateway/internal/adapters/backend"
	"github.com/velora/shop-ui-gateway/internal/service"
)

// DeactivateHandlers handles user self-deactivation. A deactivated account
// must not keep a live session behind, so the durable record is cleared
// after the Backend confirms.
type DeactivateHandlers struct {
	Backend  *backend.Client
	Sessions *service.SessionService
	Logger   *slog.Logger
}

// Deactivate handles POST /api/gateway/deactivate.
func (h *DeactivateHandlers) Deactivate(w http.ResponseWriter, r *http.Request) {
	token, ok := requireToken(w, r)
	if !ok {
		return
	}

	resp, err := h.Backend.Do(r.Context(), backend.Request{
		Method: http.MethodPost,
		Path:   "/user/deactivate",
		Token:  token,
	})
	if err != nil {
		WriteBackendError(w, err)
		return
	}

	if err := h.Sessions.Logout(r.Context(), token); err != nil {
		// The account is already gone upstream. Report success and let the
		// record expire on its own.
		h.Logger.Error("clear session after deactivation", "error", err)
	}

	raw, err := backend.Single(resp)
	if err != nil {
		WriteBackendError(w, err)
		return
	}
	WriteRaw(w, http.StatusOK, raw)
}
