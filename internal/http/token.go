package httpx

import (
	"errors"
	"net/http"
	"strings"
)

// Cookie names the gateway reads when resolving a caller's credential.
// "auth_token" is the cookie this gateway writes; "token" is the legacy
// name older clients still carry.
const (
	cookieToken     = "token"
	cookieAuthToken = "auth_token"
)

// ErrNoToken indicates the request carried no usable bearer credential.
var ErrNoToken = errors.New("no bearer token on request")

// ResolveToken produces the single bearer token to present to the Backend.
// Precedence: the Authorization header, then the "token" cookie, then the
// "auth_token" cookie — the first non-empty value wins. An explicit header
// always overrides ambient cookies. Pure function of the request; no
// network or storage side effects.
func ResolveToken(r *http.Request) (string, error) {
	if token := HeaderToken(r); token != "" {
		return token, nil
	}

	for _, name := range []string{cookieToken, cookieAuthToken} {
		if c, err := r.Cookie(name); err == nil && c.Value != "" {
			return c.Value, nil
		}
	}

	return "", ErrNoToken
}

// HeaderToken extracts a bearer token from the Authorization header only,
// with no cookie fallback. The order-cancel endpoint requires this stricter
// resolution.
func HeaderToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	const prefix = "Bearer "
	if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}
	return ""
}

// requireToken resolves the caller's token or writes a 401 and reports
// failure. Resources requiring auth never reach the Backend without one.
func requireToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	token, err := ResolveToken(r)
	if err != nil {
		WriteError(w, ErrorParams{Status: http.StatusUnauthorized, Message: "authentication required"})
		return "", false
	}
	return token, true
}
