package httpx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/velora/shop-ui-gateway/internal/adapters/backend"
)

// maxProductForm bounds the multipart payload (image included).
const maxProductForm = 16 << 20

// Catalog reads are public; writes require the caller's bearer. Writes are
// multipart because a product may carry an image, and the Backend only
// accepts POST for multipart, so updates ride a _method override marker.
type ProductHandlers struct {
	Backend *backend.Client
	Logger  *slog.Logger
}

// List handles GET /api/gateway/products.
func (h *ProductHandlers) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Backend.Do(r.Context(), backend.Request{
		Method: http.MethodGet,
		Path:   "/products",
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

// Get handles GET /api/gateway/products/{id}.
func (h *ProductHandlers) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Backend.Do(r.Context(), backend.Request{
		Method: http.MethodGet,
		Path:   "/products/" + r.PathValue("id"),
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

// Create handles POST /api/gateway/products.
func (h *ProductHandlers) Create(w http.ResponseWriter, r *http.Request) {
	token, ok := requireToken(w, r)
	if !ok {
		return
	}

	form, err := h.productForm(r, true)
	if err != nil {
		var missing *missingFieldsError
		if errors.As(err, &missing) {
			WriteError(w, ErrorParams{
				Status:  http.StatusUnprocessableEntity,
				Message: "missing required fields",
				Fields:  missing.fields(),
			})
			return
		}
		WriteError(w, ErrorParams{Status: http.StatusBadRequest, Err: err})
		return
	}

	resp, err := h.Backend.Do(r.Context(), backend.Request{
		Method: http.MethodPost,
		Path:   "/products",
		Token:  token,
		Form:   form,
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
	WriteRaw(w, http.StatusCreated, raw)
}

// Update handles PUT /api/gateway/products/{id}. The outgoing call is a
// POST carrying _method=PUT; the Backend's multipart route only accepts
// POST bodies.
func (h *ProductHandlers) Update(w http.ResponseWriter, r *http.Request) {
	token, ok := requireToken(w, r)
	if !ok {
		return
	}

	form, err := h.productForm(r, false)
	if err != nil {
		WriteError(w, ErrorParams{Status: http.StatusBadRequest, Err: err})
		return
	}
	form.OverrideMethod(http.MethodPut)

	resp, err := h.Backend.Do(r.Context(), backend.Request{
		Method: http.MethodPost,
		Path:   "/products/" + r.PathValue("id"),
		Token:  token,
		Form:   form,
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

// Delete handles DELETE /api/gateway/products/{id}. The Backend answers
// 204 with no body; the UI still expects an envelope.
func (h *ProductHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	token, ok := requireToken(w, r)
	if !ok {
		return
	}

	_, err := h.Backend.Do(r.Context(), backend.Request{
		Method: http.MethodDelete,
		Path:   "/products/" + r.PathValue("id"),
		Token:  token,
	})
	if err != nil {
		WriteBackendError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{Success: true, Message: "product deleted"})
}

// productTextFields are copied verbatim from the inbound form when present.
// Numeric values stay strings on the wire; the Backend parses them.
var productTextFields = []string{
	"name", "description", "price", "quantity", "stock", "category",
}

type missingFieldsError struct {
	names []string
}

func (e *missingFieldsError) Error() string {
	return "missing required fields"
}

func (e *missingFieldsError) fields() map[string][]string {
	out := make(map[string][]string, len(e.names))
	for _, n := range e.names {
		out[n] = []string{"this field is required"}
	}
	return out
}

// productForm rebuilds the inbound multipart body as an outgoing Form.
// On create the Backend insists on name, price, and a quantity — the
// latter under either of its two historical field names.
func (h *ProductHandlers) productForm(r *http.Request, create bool) (*backend.Form, error) {
	if err := r.ParseMultipartForm(maxProductForm); err != nil {
		return nil, err
	}

	form := &backend.Form{}
	for _, field := range productTextFields {
		if v := r.FormValue(field); v != "" {
			form.Set(field, v)
		}
	}

	if create {
		var missing []string
		if r.FormValue("name") == "" {
			missing = append(missing, "name")
		}
		if r.FormValue("price") == "" {
			missing = append(missing, "price")
		}
		if r.FormValue("quantity") == "" && r.FormValue("stock") == "" {
			missing = append(missing, "quantity")
		}
		if len(missing) > 0 {
			return nil, &missingFieldsError{names: missing}
		}
	}

	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		// Buffer now: the form is encoded after this request's multipart
		// reader is done with.
		content, readErr := io.ReadAll(file)
		if cerr := file.Close(); cerr != nil {
			h.Logger.Warn("close uploaded image", "error", cerr)
		}
		if readErr != nil {
			return nil, fmt.Errorf("read uploaded image: %w", readErr)
		}
		form.AddFile("image", header.Filename, bytes.NewReader(content))
	case errors.Is(err, http.ErrMissingFile):
		// Image is optional on both create and update.
	default:
		return nil, err
	}

	return form, nil
}
