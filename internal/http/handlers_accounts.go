// Package httpx provides the gateway route handlers that mediate between
// the storefront UI and the Backend.
package httpx

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/velora/shop-ui-gateway/internal/adapters/backend"
)

// The account endpoint is multiplexed by a section discriminator. Sections
// form a closed set: each has its own payload shape, validation rules, and
// Backend sub-path. An unrecognized section is a caller mistake (400), not
// a missing route.

type profileUpdate struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

type shippingUpdate struct {
	Address string `json:"address"  validate:"required"`
	City    string `json:"city"     validate:"required"`
	ZipCode string `json:"zip_code" validate:"required"`
	Country string `json:"country"`
}

type passwordUpdate struct {
	CurrentPassword         string `json:"current_password"          validate:"required"`
	NewPassword             string `json:"new_password"              validate:"required,min=8"`
	NewPasswordConfirmation string `json:"new_password_confirmation" validate:"required,eqfield=NewPassword"`
}

// accountVariant binds one section to its payload shape and Backend sub-path.
type accountVariant struct {
	payload func() any
	path    string
}

var accountVariants = map[string]accountVariant{
	"profile":  {payload: func() any { return &profileUpdate{} }, path: "/user/profile"},
	"shipping": {payload: func() any { return &shippingUpdate{} }, path: "/user/shipping"},
	"password": {payload: func() any { return &passwordUpdate{} }, path: "/user/password"},
}

// AccountHandlers provides the account update gateway route.
type AccountHandlers struct {
	Backend *backend.Client
	Logger  *slog.Logger
}

// Update handles PUT /api/gateway/account.
func (h *AccountHandlers) Update(w http.ResponseWriter, r *http.Request) {
	token, ok := requireToken(w, r)
	if !ok {
		return
	}

	var req struct {
		Section string `json:"section"`
	}
	body := json.RawMessage{}
	if !DecodeJSON(w, r, &body) {
		return
	}
	if err := json.Unmarshal(body, &req); err != nil {
		WriteError(w, ErrorParams{Status: http.StatusBadRequest, Err: err})
		return
	}

	variant, ok := accountVariants[req.Section]
	if !ok {
		WriteError(w, ErrorParams{
			Status:  http.StatusBadRequest,
			Message: fmt.Sprintf("unknown account section %q", req.Section),
		})
		return
	}

	payload := variant.payload()
	if err := json.Unmarshal(body, payload); err != nil {
		WriteError(w, ErrorParams{Status: http.StatusBadRequest, Err: err})
		return
	}
	if fields := checkStruct(payload); fields != nil {
		// Local validation short-circuits: the Backend is never contacted
		// with a payload we already know is bad.
		WriteError(w, ErrorParams{
			Status:  http.StatusBadRequest,
			Message: "validation failed",
			Fields:  fields,
		})
		return
	}

	resp, err := h.Backend.Do(r.Context(), backend.Request{
		Method: http.MethodPut,
		Path:   variant.path,
		Token:  token,
		JSON:   payload,
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
