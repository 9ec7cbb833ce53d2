package httpx

import (
	"log/slog"
	"net/http"

	"github.com/velora/shop-ui-gateway/internal/adapters/backend"
)

// OrderHandlers proxies the caller's order history. Cancel intentionally
// skips the cookie fallback and accepts the Authorization header only; see
// HeaderToken.
type OrderHandlers struct {
	Backend *backend.Client
	Logger  *slog.Logger
}

// List handles GET /api/gateway/orders. Pagination and filter query
// parameters pass through untouched.
func (h *OrderHandlers) List(w http.ResponseWriter, r *http.Request) {
	token, ok := requireToken(w, r)
	if !ok {
		return
	}

	resp, err := h.Backend.Do(r.Context(), backend.Request{
		Method: http.MethodGet,
		Path:   "/orders",
		Token:  token,
		Query:  r.URL.Query(),
	})
	if err != nil {
		WriteBackendError(w, err)
		return
	}

	items, err := backend.Listing(resp)
	if err != nil {
		WriteBackendError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

// Get handles GET /api/gateway/orders/{id}.
func (h *OrderHandlers) Get(w http.ResponseWriter, r *http.Request) {
	token, ok := requireToken(w, r)
	if !ok {
		return
	}

	resp, err := h.Backend.Do(r.Context(), backend.Request{
		Method: http.MethodGet,
		Path:   "/orders/" + r.PathValue("id"),
		Token:  token,
	})
	if err != nil {
		WriteBackendError(w, err)
		return
	}

	raw, err := backend.Single(resp)
	if err != nil {
		WriteBackendError(w, err)
		return
	}
	WriteRaw(w, http.StatusOK, raw)
}

// Cancel handles POST /api/gateway/orders/{id}/cancel. Unlike the other
// order routes, cancellation demands an explicit Authorization header; a
// cookie alone does not qualify. Flagged for product review rather than
// unified here.
func (h *OrderHandlers) Cancel(w http.ResponseWriter, r *http.Request) {
	token := HeaderToken(r)
	if token == "" {
		WriteError(w, ErrorParams{
			Status:  http.StatusUnauthorized,
			Message: "authorization header required",
		})
		return
	}

	resp, err := h.Backend.Do(r.Context(), backend.Request{
		Method: http.MethodPost,
		Path:   "/orders/" + r.PathValue("id") + "/cancel",
		Token:  token,
	})
	if err != nil {
		WriteBackendError(w, err)
		return
	}

	raw, err := backend.Single(resp)
	if err != nil {
		WriteBackendError(w, err)
		return
	}
	WriteRaw(w, http.StatusOK, raw)
}
