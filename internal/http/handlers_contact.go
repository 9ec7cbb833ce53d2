package httpx

import (
	"log/slog"
	"net/http"

	"github.com/velora/shop-ui-gateway/internal/adapters/backend"
)

type contactMessage struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required"`
}

// ContactHandlers forwards contact-form submissions. No auth: anonymous
// visitors may write in.
type ContactHandlers struct {
	Backend *backend.Client
	Logger  *slog.Logger
}

// Send handles POST /api/gateway/contact.
func (h *ContactHandlers) Send(w http.ResponseWriter, r *http.Request) {
	var msg contactMessage
	if !DecodeJSON(w, r, &msg) {
		return
	}
	if fields := checkStruct(&msg); fields != nil {
		WriteError(w, ErrorParams{
			Status:  http.StatusBadRequest,
			Message: "validation failed",
			Fields:  fields,
		})
		return
	}

	resp, err := h.Backend.Do(r.Context(), backend.Request{
		Method: http.MethodPost,
		Path:   "/contact",
		JSON:   msg,
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
	WriteRaw(w, resp.Status, raw)
}
