package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/velora/shop-ui-gateway/internal/adapters/backend"
)

// ReportHandlers serves sales report queries. When the Backend answers 2xx
// with a body that does not parse, operators need context to chase it down,
// so the 502 carries the requested range, the resolved URL, and a bounded
// snippet of what actually came back.
type ReportHandlers struct {
	Backend *backend.Client
	Logger  *slog.Logger
}

// Sales handles GET /api/gateway/reports.
func (h *ReportHandlers) Sales(w http.ResponseWriter, r *http.Request) {
	token, ok := requireToken(w, r)
	if !ok {
		return
	}

	rangeParam := r.URL.Query().Get("range")

	resp, err := h.Backend.Do(r.Context(), backend.Request{
		Method: http.MethodGet,
		Path:   "/reports/sales",
		Token:  token,
		Query:  r.URL.Query(),
	})
	if err != nil {
		WriteBackendError(w, err)
		return
	}

	items, err := backend.Listing(resp)
	if err != nil {
		var be *backend.Error
		if errors.As(err, &be) && be.DecodeFailure() {
			h.Logger.Error("report response unparsable",
				"range", rangeParam, "url", be.URL, "snippet", be.Snippet)
			WriteJSON(w, http.StatusBadGateway, struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
				Range   string `json:"range,omitempty"`
				URL     string `json:"url"`
				Snippet string `json:"snippet"`
				Status  int    `json:"status"`
			}{
				Message: "report data could not be parsed",
				Range:   rangeParam,
				URL:     be.URL,
				Snippet: be.Snippet,
				Status:  http.StatusBadGateway,
			})
			return
		}
		WriteBackendError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, items)
}
