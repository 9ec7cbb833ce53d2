package httpx

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/velora/shop-ui-gateway/internal/adapters/backend"
	"github.com/velora/shop-ui-gateway/internal/service"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Backend      *backend.Client
	Sessions     *service.SessionService
	CookieDomain string
	Logger       *slog.Logger // Logger for handler and middleware errors (optional)
}

// NewRouter creates and configures the gateway's HTTP router.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	accountHandlers := &AccountHandlers{Backend: services.Backend, Logger: logger}
	contactHandlers := &ContactHandlers{Backend: services.Backend, Logger: logger}
	dashboardHandlers := &DashboardHandlers{Backend: services.Backend, Logger: logger}
	orderHandlers := &OrderHandlers{Backend: services.Backend, Logger: logger}
	productHandlers := &ProductHandlers{Backend: services.Backend, Logger: logger}
	reportHandlers := &ReportHandlers{Backend: services.Backend, Logger: logger}
	deactivateHandlers := &DeactivateHandlers{
		Backend:  services.Backend,
		Sessions: services.Sessions,
		Logger:   logger,
	}
	sessionHandlers := &SessionHandlers{
		Backend:      services.Backend,
		Sessions:     services.Sessions,
		CookieDomain: services.CookieDomain,
		Logger:       logger,
	}

	registerGatewayRoutes(mux, accountHandlers, contactHandlers, dashboardHandlers, deactivateHandlers)
	registerOrderRoutes(mux, orderHandlers)
	registerProductRoutes(mux, productHandlers)
	registerReportRoutes(mux, reportHandlers)
	registerSessionRoutes(mux, sessionHandlers)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /metrics", promhttp.Handler())

	var handler http.Handler = mux
	handler = Metrics()(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}

func registerGatewayRoutes(
	mux *http.ServeMux,
	accounts *AccountHandlers,
	contact *ContactHandlers,
	dashboard *DashboardHandlers,
	deactivate *DeactivateHandlers,
) {
	mux.HandleFunc("PUT /api/gateway/account", accounts.Update)
	mux.HandleFunc("POST /api/gateway/contact", contact.Send)
	mux.HandleFunc("GET /api/gateway/dashboard", dashboard.Stats)
	mux.HandleFunc("POST /api/gateway/deactivate", deactivate.Deactivate)
}

func registerOrderRoutes(mux *http.ServeMux, h *OrderHandlers) {
	mux.HandleFunc("GET /api/gateway/orders", h.List)
	mux.HandleFunc("GET /api/gateway/orders/{id}", h.Get)
	mux.HandleFunc("POST /api/gateway/orders/{id}/cancel", h.Cancel)
}

func registerProductRoutes(mux *http.ServeMux, h *ProductHandlers) {
	mux.HandleFunc("GET /api/gateway/products", h.List)
	mux.HandleFunc("GET /api/gateway/products/{id}", h.Get)
	mux.HandleFunc("POST /api/gateway/products", h.Create)
	mux.HandleFunc("PUT /api/gateway/products/{id}", h.Update)
	mux.HandleFunc("DELETE /api/gateway/products/{id}", h.Delete)
}

func registerReportRoutes(mux *http.ServeMux, h *ReportHandlers) {
	mux.HandleFunc("GET /api/gateway/reports", h.Sales)
}

func registerSessionRoutes(mux *http.ServeMux, h *SessionHandlers) {
	mux.HandleFunc("POST /api/session/login", h.Login)
	mux.HandleFunc("POST /api/session/logout", h.Logout)
	mux.HandleFunc("GET /api/session/me", h.Me)
}
