// Package session contains domain-level types for the storefront session.
// It is pure and free of framework/adapter concerns.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Role represents a storefront authorization role.
// Keep string form for easy persistence and cookies.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// UserProfile is the Backend-supplied user record. Only the fields this
// layer actually reads are typed; everything else the Backend sends is
// preserved verbatim in Extra so nothing is dropped on a round trip.
type UserProfile struct {
	ID    string
	Name  string
	Email string
	Role  Role
	Token string

	Extra map[string]json.RawMessage
}

// knownProfileFields are the JSON keys lifted into typed fields.
var knownProfileFields = map[string]struct{}{
	"id": {}, "name": {}, "email": {}, "role": {}, "token": {},
}

// UnmarshalJSON decodes the typed fields and stashes everything else in Extra.
// The Backend sends numeric or string IDs depending on the endpoint.
func (u *UserProfile) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decode user profile: %w", err)
	}

	if v, ok := raw["id"]; ok {
		u.ID = flexibleString(v)
	}
	if v, ok := raw["name"]; ok {
		u.Name = flexibleString(v)
	}
	if v, ok := raw["email"]; ok {
		u.Email = flexibleString(v)
	}
	if v, ok := raw["role"]; ok {
		u.Role = Role(flexibleString(v))
	}
	if v, ok := raw["token"]; ok {
		u.Token = flexibleString(v)
	}

	for k, v := range raw {
		if _, known := knownProfileFields[k]; known {
			continue
		}
		if u.Extra == nil {
			u.Extra = make(map[string]json.RawMessage)
		}
		u.Extra[k] = v
	}

	return nil
}

// MarshalJSON reassembles the typed fields and the preserved extras.
func (u UserProfile) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(u.Extra)+5)
	for k, v := range u.Extra {
		out[k] = v
	}

	set := func(key, val string) error {
		enc, err := json.Marshal(val)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		out[key] = enc
		return nil
	}
	if err := set("id", u.ID); err != nil {
		return nil, err
	}
	if err := set("name", u.Name); err != nil {
		return nil, err
	}
	if err := set("email", u.Email); err != nil {
		return nil, err
	}
	if err := set("role", string(u.Role)); err != nil {
		return nil, err
	}
	if u.Token != "" {
		if err := set("token", u.Token); err != nil {
			return nil, err
		}
	}

	return json.Marshal(out)
}

// flexibleString decodes a JSON string, number, or bool into its string form.
func flexibleString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b)
	}
	return ""
}

// Session is the current-user record the gateway holds for a caller.
// Invariant: LoggedIn is true iff both User and Token are set. Construct
// through New or Empty so the invariant cannot drift.
type Session struct {
	LoggedIn bool         `json:"is_logged_in"`
	User     *UserProfile `json:"user"`
	Token    string       `json:"token,omitempty"`
}

// ErrNoToken indicates a user payload arrived without a usable token.
var ErrNoToken = errors.New("user payload has no token")

// New builds a logged-in session from a user payload. The token is taken
// from the payload itself.
func New(user *UserProfile) (Session, error) {
	if user == nil || user.Token == "" {
		return Empty(), ErrNoToken
	}
	return Session{LoggedIn: true, User: user, Token: user.Token}, nil
}

// Empty returns the logged-out session.
func Empty() Session {
	return Session{}
}

// IsAdmin reports whether the session belongs to an admin. It is a derived
// projection of the user role and is never cached separately.
func (s Session) IsAdmin() bool {
	return s.LoggedIn && s.User != nil && s.User.Role == RoleAdmin
}

// IsMember reports whether the session belongs to any authenticated user.
func (s Session) IsMember() bool {
	return s.LoggedIn && s.User != nil
}
