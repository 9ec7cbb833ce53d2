package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/velora/shop-ui-gateway/internal/adapters/backend"
	"github.com/velora/shop-ui-gateway/internal/observability/metrics"
)

// NormalizedError is the one failure shape the UI ever sees. Regardless of
// where a call failed — local validation, missing credentials, an unreachable
// Backend, or an unparsable Backend body — the client only inspects Message,
// Errors, and Status.
type NormalizedError struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Status  int                 `json:"status"`
}

// DecodeJSON decodes JSON from the request body into the destination and
// handles errors. Returns true if successful, false if there was an error
// (error response already written).
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)

	if err := dec.Decode(dst); err != nil {
		WriteError(w, ErrorParams{Status: http.StatusBadRequest, Err: err})
		return false
	}

	return true
}

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Response writer errors (e.g., client disconnect) can't be recovered from here.
		return
	}
}

// WriteRaw writes pre-encoded JSON unchanged.
func WriteRaw(w http.ResponseWriter, code int, raw json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(raw); err != nil {
		return
	}
}

// ErrorParams groups parameters for WriteError.
type ErrorParams struct {
	Status  int
	Message string
	Err     error
	Fields  map[string][]string
}

// WriteError writes a NormalizedError response. Message wins over Err when
// both are set.
func WriteError(w http.ResponseWriter, p ErrorParams) {
	msg := p.Message
	if msg == "" && p.Err != nil {
		msg = p.Err.Error()
	}
	if msg == "" {
		msg = http.StatusText(p.Status)
	}
	WriteJSON(w, p.Status, NormalizedError{
		Message: msg,
		Errors:  p.Fields,
		Status:  p.Status,
	})
}

// WriteBackendError maps a failed Backend call onto the wire. Upstream
// errors keep the Backend's status code and field errors; unreachable and
// decode failures surface as the 502 the classification already chose.
// Anything that is not a backend.Error is an unexpected local error (500).
func WriteBackendError(w http.ResponseWriter, err error) {
	var be *backend.Error
	if errors.As(err, &be) {
		metrics.BackendFailuresTotal.WithLabelValues(backendFailureKind(be)).Inc()
		WriteError(w, ErrorParams{Status: be.Status, Message: be.Message, Fields: be.Fields})
		return
	}
	metrics.BackendFailuresTotal.WithLabelValues("local").Inc()
	WriteError(w, ErrorParams{Status: http.StatusInternalServerError, Err: err})
}

func backendFailureKind(be *backend.Error) string {
	switch {
	case be.Unreachable():
		return "unreachable"
	case be.DecodeFailure():
		return "decode"
	default:
		return "upstream"
	}
}
