package config

import (
	"os"
	"strings"
	"time"
)

// DefaultBackendURL is where a local Backend listens out of the box.
const DefaultBackendURL = "http://localhost:8000/api"

// backendURLVars is the lookup order for the Backend base URL. The
// NEXT_PUBLIC_ name survives from the frontend tooling this deployment
// shares its environment with.
var backendURLVars = []string{"BACKEND_API_URL", "API_URL", "NEXT_PUBLIC_API_URL"}

// BackendConfig contains the upstream Backend API configuration.
type BackendConfig struct {
	// BaseURL is resolved in Sanitize from BACKEND_API_URL, API_URL, or
	// NEXT_PUBLIC_API_URL, first non-empty wins.
	BaseURL string `env:"BACKEND_API_URL" envDefault:""`

	// AnalyticsToken is the static service-level bearer used for
	// server-to-server analytics calls (dashboard). Browser credentials
	// never authorize those.
	AnalyticsToken string `env:"ANALYTICS_API_TOKEN" envDefault:""`

	// Timeout bounds each Backend call.
	Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"30s"`
}

// Sanitize resolves the base URL precedence chain.
func (b *BackendConfig) Sanitize() {
	for _, name := range backendURLVars {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			b.BaseURL = strings.TrimRight(v, "/")
			return
		}
	}
	if b.BaseURL == "" {
		b.BaseURL = DefaultBackendURL
	}
}
