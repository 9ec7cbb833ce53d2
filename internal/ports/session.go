// Package ports defines interfaces (hexagonal ports) for session persistence.
// Implementations live in internal/adapters; orchestration in internal/service.
package ports

import (
	"context"
	"errors"

	domainsession "github.com/velora/shop-ui-gateway/internal/domain/session"
)

// Sentinel errors shared by SessionRepository implementations.
var (
	// ErrNotFound is returned when no record exists for a token.
	ErrNotFound = errors.New("session record not found")
	// ErrCorruptRecord is returned when a stored record exists but is
	// internally inconsistent (token guard mismatch, unparsable user data).
	ErrCorruptRecord = errors.New("session record is corrupt")
)

// SessionRecord is the durable form of a session: the token it is keyed by
// and the user profile captured at login. Cart contents live alongside the
// record and share its lifecycle.
type SessionRecord struct {
	Token string
	User  domainsession.UserProfile
}

// SessionRepository persists and retrieves session records.
//
// Load distinguishes two failure shapes the service treats differently:
// ErrNotFound when no record exists for the token, and ErrCorruptRecord when
// a record exists but cannot be decoded into a consistent session. Clear must
// be idempotent and remove the cart contents together with the record.
type SessionRepository interface {
	Save(ctx context.Context, rec SessionRecord) error
	Load(ctx context.Context, token string) (SessionRecord, error)
	Clear(ctx context.Context, token string) error
}

// LogoutNotifier broadcasts that a session ended so other interested
// processes can drop dependent state.
type LogoutNotifier interface {
	NotifyLogout(ctx context.Context, token string) error
}
