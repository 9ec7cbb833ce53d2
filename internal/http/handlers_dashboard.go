package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/velora/shop-ui-gateway/internal/adapters/backend"
)

// dashboardStats is the analytics payload shape the UI renders. The
// fallback below must populate every field so a Backend outage degrades to
// an all-zero dashboard instead of a broken page.
type dashboardStats struct {
	TotalSales     float64           `json:"total_sales"`
	TotalOrders    int               `json:"total_orders"`
	TotalProducts  int               `json:"total_products"`
	TotalCustomers int               `json:"total_customers"`
	RecentOrders   []json.RawMessage `json:"recent_orders"`
	TopProducts    []json.RawMessage `json:"top_products"`
}

func emptyDashboard() dashboardStats {
	return dashboardStats{
		RecentOrders: []json.RawMessage{},
		TopProducts:  []json.RawMessage{},
	}
}

// DashboardHandlers serves admin analytics. The Backend call is
// server-to-server: it authenticates with the configured analytics service
// token, never with the browser's bearer.
type DashboardHandlers struct {
	Backend *backend.Client
	Logger  *slog.Logger
}

// Stats handles GET /api/gateway/dashboard.
func (h *DashboardHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireToken(w, r); !ok {
		return
	}

	resp, err := h.Backend.Do(r.Context(), backend.Request{
		Method:      http.MethodGet,
		Path:        "/dashboard/stats",
		ServiceAuth: true,
	})
	if err != nil {
		h.fallback(w, err)
		return
	}

	var stats dashboardStats
	if err := json.Unmarshal(unwrapData(resp.Body), &stats); err != nil {
		h.fallback(w, err)
		return
	}
	if stats.RecentOrders == nil {
		stats.RecentOrders = []json.RawMessage{}
	}
	if stats.TopProducts == nil {
		stats.TopProducts = []json.RawMessage{}
	}

	WriteJSON(w, http.StatusOK, struct {
		Success bool           `json:"success"`
		Data    dashboardStats `json:"data"`
	}{Success: true, Data: stats})
}

// fallback answers 200 with zeroed stats so the dashboard always renders.
// The failure is reported alongside the data, not instead of it.
func (h *DashboardHandlers) fallback(w http.ResponseWriter, err error) {
	h.Logger.Warn("dashboard stats unavailable", "error", err)
	WriteJSON(w, http.StatusOK, struct {
		Success bool           `json:"success"`
		Message string         `json:"message"`
		Data    dashboardStats `json:"data"`
	}{
		Success: false,
		Message: "analytics are temporarily unavailable",
		Data:    emptyDashboard(),
	})
}

// unwrapData peels an optional {data:{...}} envelope off a Backend body.
func unwrapData(body []byte) []byte {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 {
		return envelope.Data
	}
	return body
}
