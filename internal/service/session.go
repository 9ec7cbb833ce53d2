// Package service contains the orchestration layer between HTTP handlers
// and adapters.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainsession "github.com/velora/shop-ui-gateway/internal/domain/session"
	"github.com/velora/shop-ui-gateway/internal/ports"
)

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	Repo ports.SessionRepository
	// Notifier broadcasts logouts. Optional; when nil, logout events are
	// not published.
	Notifier ports.LogoutNotifier
	Logger   *slog.Logger
}

// SessionService is the single source of truth for "who is the current
// user". It keeps the durable record, the cookie (written by the HTTP
// layer), and the per-request session view consistent.
type SessionService struct {
	repo     ports.SessionRepository
	notifier ports.LogoutNotifier
	logger   *slog.Logger
}

// NewSessionService constructs a new SessionService.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		repo:     opts.Repo,
		notifier: opts.Notifier,
		logger:   logger,
	}
}

// Login establishes a session from a Backend user payload. The token comes
// from the payload itself. The durable record is written before the session
// is returned so the caller never hands out a cookie that storage does not
// back.
func (s *SessionService) Login(ctx context.Context, user *domainsession.UserProfile) (domainsession.Session, error) {
	sess, err := domainsession.New(user)
	if err != nil {
		return domainsession.Empty(), err
	}

	rec := ports.SessionRecord{Token: sess.Token, User: *user}
	if saveErr := s.repo.Save(ctx, rec); saveErr != nil {
		return domainsession.Empty(), fmt.Errorf("save session record: %w", saveErr)
	}

	return sess, nil
}

// Logout tears the session down: the durable record and its cart contents
// go together, then interested parties are notified. A missing token is a
// no-op, so logout is always safe to call.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.repo.Clear(ctx, token); err != nil {
		return fmt.Errorf("clear session record: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyLogout(ctx, token); err != nil {
			// The session is already gone; a lost notification is not
			// worth failing the logout over.
			s.logger.WarnContext(ctx, "logout notification failed", "error", err)
		}
	}

	return nil
}

// Initialize rehydrates the session for a token. A missing record yields
// the empty session; a corrupt record yields the empty session AND removes
// the damaged keys so repeated calls stay idempotent.
func (s *SessionService) Initialize(ctx context.Context, token string) (domainsession.Session, error) {
	if token == "" {
		return domainsession.Empty(), nil
	}

	rec, err := s.repo.Load(ctx, token)
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return domainsession.Empty(), nil
	case errors.Is(err, ports.ErrCorruptRecord):
		s.logger.WarnContext(ctx, "clearing corrupt session record")
		if clearErr := s.repo.Clear(ctx, token); clearErr != nil {
			return domainsession.Empty(), fmt.Errorf("clear corrupt session record: %w", clearErr)
		}
		return domainsession.Empty(), nil
	case err != nil:
		return domainsession.Empty(), fmt.Errorf("load session record: %w", err)
	}

	user := rec.User
	sess, err := domainsession.New(&user)
	if err != nil {
		// Record decoded but cannot form a consistent session; treat it
		// like corruption rather than leaving a half-session around.
		if clearErr := s.repo.Clear(ctx, token); clearErr != nil {
			return domainsession.Empty(), fmt.Errorf("clear inconsistent session record: %w", clearErr)
		}
		return domainsession.Empty(), nil
	}

	return sess, nil
}
