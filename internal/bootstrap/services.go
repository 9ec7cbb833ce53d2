package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/velora/shop-ui-gateway/config"
	"github.com/velora/shop-ui-gateway/internal/adapters/backend"
	redisadapter "github.com/velora/shop-ui-gateway/internal/adapters/redis"
	"github.com/velora/shop-ui-gateway/internal/service"
)

// ServiceContainer holds the constructed application services.
type ServiceContainer struct {
	Backend  *backend.Client
	Sessions *service.SessionService
}

// ServiceDeps contains dependencies for service construction.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires adapters into services.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client, err := backend.NewClient(backend.Config{
		BaseURL:        deps.Config.Backend.BaseURL,
		AnalyticsToken: deps.Config.Backend.AnalyticsToken,
		Timeout:        deps.Config.Backend.Timeout,
		Logger:         logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build backend client: %w", err)
	}

	store := redisadapter.NewSessionStore(redisadapter.SessionStoreOptions{
		Client: deps.RedisClient,
		TTL:    deps.Config.Session.TTL,
		Prefix: deps.Config.Session.KeyPrefix,
	})

	sessions := service.NewSessionService(service.SessionServiceOptions{
		Repo:     store,
		Notifier: store,
		Logger:   logger,
	})

	return ServiceContainer{Backend: client, Sessions: sessions}, nil
}
