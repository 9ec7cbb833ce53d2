// Package redis provides Redis-based adapters for the storefront gateway.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	domainsession "github.com/velora/shop-ui-gateway/internal/domain/session"
	"github.com/velora/shop-ui-gateway/internal/ports"
)

const (
	fieldToken = "auth_token"
	fieldUser  = "user_data"

	// LogoutChannel carries logout notifications for other processes.
	LogoutChannel = "session.events"
)

// SessionStore is a Redis-based session record store. A record spans two
// keys — the session hash and the cart blob — which are written and cleared
// together so a session never survives without its dependent state.
type SessionStore struct {
	client     redis.UniversalClient
	prefix     string
	cartPrefix string
	ttl        time.Duration
}

// SessionStoreOptions groups construction parameters for SessionStore.
type SessionStoreOptions struct {
	Client redis.UniversalClient
	// TTL bounds how long a record lives; it mirrors the auth cookie expiry.
	TTL time.Duration
	// Prefix overrides the default "session:" key prefix.
	Prefix string
}

// NewSessionStore creates a new Redis-based session record store.
func NewSessionStore(opts SessionStoreOptions) *SessionStore {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "session:"
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 365 * 24 * time.Hour
	}
	return &SessionStore{
		client:     opts.Client,
		prefix:     prefix,
		cartPrefix: "cart:",
		ttl:        ttl,
	}
}

// Save writes the session record in a single round trip. The token is stored
// both as the key suffix and as a hash field so a partially written or
// hand-edited record is detectable on load.
func (s *SessionStore) Save(ctx context.Context, rec ports.SessionRecord) error {
	if rec.Token == "" {
		return errors.New("session token cannot be empty")
	}

	userData, err := json.Marshal(rec.User)
	if err != nil {
		return fmt.Errorf("marshal user data: %w", err)
	}

	key := s.prefix + rec.Token
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, fieldToken, rec.Token, fieldUser, string(userData))
	pipe.Expire(ctx, key, s.ttl)
	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session record: %w", err)
	}
	return nil
}

// Load reads a record back. A missing key is ports.ErrNotFound; a key whose
// token guard or user data does not decode is ports.ErrCorruptRecord — the
// caller decides whether to clear it.
func (s *SessionStore) Load(ctx context.Context, token string) (ports.SessionRecord, error) {
	if token == "" {
		return ports.SessionRecord{}, ports.ErrNotFound
	}

	key := s.prefix + token
	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return ports.SessionRecord{}, fmt.Errorf("redis hgetall: %w", err)
	}
	if len(fields) == 0 {
		return ports.SessionRecord{}, ports.ErrNotFound
	}

	stored, ok := fields[fieldToken]
	if !ok || stored != token {
		return ports.SessionRecord{}, ports.ErrCorruptRecord
	}
	userData, ok := fields[fieldUser]
	if !ok || userData == "" {
		return ports.SessionRecord{}, ports.ErrCorruptRecord
	}

	var user domainsession.UserProfile
	if unmarshalErr := json.Unmarshal([]byte(userData), &user); unmarshalErr != nil {
		return ports.SessionRecord{}, ports.ErrCorruptRecord
	}
	// A stored profile that lost its token field still belongs to this key.
	if user.Token == "" {
		user.Token = token
	}

	return ports.SessionRecord{Token: token, User: user}, nil
}

// Clear removes the record and its cart contents together. Deleting a
// nonexistent record is a no-op, which makes corrupt-record cleanup
// idempotent.
func (s *SessionStore) Clear(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.prefix+token)
	pipe.Del(ctx, s.cartPrefix+token)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("clear session record: %w", err)
	}
	return nil
}

// SaveCart stores cart contents alongside the session record with the same TTL.
func (s *SessionStore) SaveCart(ctx context.Context, token string, contents []byte) error {
	if token == "" {
		return errors.New("session token cannot be empty")
	}
	if err := s.client.Set(ctx, s.cartPrefix+token, contents, s.ttl).Err(); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// LoadCart returns the stored cart contents, or ports.ErrNotFound.
func (s *SessionStore) LoadCart(ctx context.Context, token string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.cartPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("redis get cart: %w", err)
	}
	return data, nil
}

// NotifyLogout publishes a logout event so other processes can react.
func (s *SessionStore) NotifyLogout(ctx context.Context, token string) error {
	payload, err := json.Marshal(map[string]string{"event": "logout", "token": token})
	if err != nil {
		return fmt.Errorf("encode logout event: %w", err)
	}
	if err := s.client.Publish(ctx, LogoutChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish logout event: %w", err)
	}
	return nil
}
