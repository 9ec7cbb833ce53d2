package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/velora/shop-ui-gateway/internal/adapters/backend"
	domainsession "github.com/velora/shop-ui-gateway/internal/domain/session"
	"github.com/velora/shop-ui-gateway/internal/service"
)

// cookieMaxAge matches the durable record TTL: one year.
const cookieMaxAge = int(365 * 24 * time.Hour / time.Second)

// SessionHandlers exposes the login/logout/me endpoints. Login proxies
// credentials to the Backend and, on success, persists the session record
// and sets the auth cookie in the same handler pass so the browser and the
// durable store never disagree.
type SessionHandlers struct {
	Backend      *backend.Client
	Sessions     *service.SessionService
	CookieDomain string
	Logger       *slog.Logger
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionPayload struct {
	Success  bool                       `json:"success"`
	LoggedIn bool                       `json:"isLoggedIn"`
	User     *domainsession.UserProfile `json:"user"`
	Token    string                     `json:"token,omitempty"`
}

func sessionResponse(s domainsession.Session) sessionPayload {
	return sessionPayload{
		Success:  true,
		LoggedIn: s.LoggedIn,
		User:     s.User,
		Token:    s.Token,
	}
}

// Login handles POST /api/session/login.
func (h *SessionHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if fields := checkStruct(&req); fields != nil {
		WriteError(w, ErrorParams{
			Status:  http.StatusBadRequest,
			Message: "validation failed",
			Fields:  fields,
		})
		return
	}

	resp, err := h.Backend.Do(r.Context(), backend.Request{
		Method: http.MethodPost,
		Path:   "/login",
		JSON:   req,
	})
	if err != nil {
		WriteBackendError(w, err)
		return
	}

	user, err := decodeLoginBody(resp.Body)
	if err != nil {
		h.Logger.Error("login response decode", "error", err, "url", resp.URL)
		WriteError(w, ErrorParams{
			Status:  http.StatusBadGateway,
			Message: "login response could not be understood",
		})
		return
	}

	sess, err := h.Sessions.Login(r.Context(), &user)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domainsession.ErrNoToken) {
			// The Backend accepted the credentials but the payload is
			// unusable without a token.
			status = http.StatusBadGateway
		}
		WriteError(w, ErrorParams{Status: status, Err: err})
		return
	}

	h.setAuthCookie(w, sess.Token)
	WriteJSON(w, http.StatusOK, sessionResponse(sess))
}

// decodeLoginBody accepts both envelope shapes the Backend emits:
// {user:{...}, token:"..."} and a bare user object carrying its own token.
func decodeLoginBody(body []byte) (domainsession.UserProfile, error) {
	var envelope struct {
		User  *domainsession.UserProfile `json:"user"`
		Data  *domainsession.UserProfile `json:"data"`
		Token string                     `json:"token"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return domainsession.UserProfile{}, err
	}

	user := envelope.User
	if user == nil {
		user = envelope.Data
	}
	if user != nil {
		if user.Token == "" {
			user.Token = envelope.Token
		}
		return *user, nil
	}

	var bare domainsession.UserProfile
	if err := json.Unmarshal(body, &bare); err != nil {
		return domainsession.UserProfile{}, err
	}
	if bare.Token == "" {
		bare.Token = envelope.Token
	}
	return bare, nil
}

// Logout handles POST /api/session/logout. Idempotent: logging out without
// a session still succeeds and still expires the cookie.
func (h *SessionHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	token, err := ResolveToken(r)
	if err == nil {
		if err := h.Sessions.Logout(r.Context(), token); err != nil {
			WriteError(w, ErrorParams{Status: http.StatusInternalServerError, Err: err})
			return
		}
	}

	h.clearAuthCookie(w)
	WriteJSON(w, http.StatusOK, sessionResponse(domainsession.Empty()))
}

// Me handles GET /api/session/me. A missing or unrecoverable record is not
// an error: the caller gets the empty session and decides what to render.
func (h *SessionHandlers) Me(w http.ResponseWriter, r *http.Request) {
	token, err := ResolveToken(r)
	if err != nil {
		WriteJSON(w, http.StatusOK, sessionResponse(domainsession.Empty()))
		return
	}

	sess, err := h.Sessions.Initialize(r.Context(), token)
	if err != nil {
		WriteError(w, ErrorParams{Status: http.StatusInternalServerError, Err: err})
		return
	}
	WriteJSON(w, http.StatusOK, sessionResponse(sess))
}

func (h *SessionHandlers) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieAuthToken,
		Value:    token,
		Path:     "/",
		Domain:   h.CookieDomain,
		MaxAge:   cookieMaxAge,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *SessionHandlers) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieAuthToken,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	})
}
