package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/velora/shop-ui-gateway/config"
)

// ConnectRedis connects to the session record store and verifies the
// connection before handing it out.
//
//nolint:ireturn // redis.UniversalClient keeps sentinel/cluster support open.
func ConnectRedis(cfg config.RedisConfig) (redis.UniversalClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		if cerr := client.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close redis client: %w", cerr))
		}
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}
