package config

import "time"

// RedisConfig contains Redis configuration for session records.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}

// SessionConfig contains session record configuration.
type SessionConfig struct {
	// TTL bounds how long a session record lives without a fresh login.
	// The default matches the one-year auth cookie.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"8760h"`

	// KeyPrefix namespaces session keys in redis.
	KeyPrefix string `env:"SESSION_KEY_PREFIX" envDefault:""`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.TTL <= 0 {
		s.TTL = 8760 * time.Hour
	}
}
