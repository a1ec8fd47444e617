// Package session holds the authenticated user's persisted state: the
// opaque authentication token handed out at login together with the
// email, display name and role claims that were returned alongside it.
// It plays the role browser session storage plays for the web
// dashboard: populated at login, read at mount, cleared at logout, and
// never mutated by anything else.
package session

import "errors"

// ErrUnauthenticated is returned by Resolve when no token is present.
// Callers must send the user back to the login flow; no request may be
// issued without a token.
var ErrUnauthenticated = errors.New("unauthenticated")

// Role is the dashboard branch a session selects. There are exactly two
// and they are mutually exclusive.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Session is the persisted authentication state. The json tags name the
// same keys the web client kept in session storage.
type Session struct {
	Token string   `json:"auth_token"`
	Email string   `json:"user_email"`
	Name  string   `json:"user_uname"`
	Roles []string `json:"user_roles"`
}

// Resolve derives the dashboard role from the session. An empty token
// means nobody is logged in and yields ErrUnauthenticated. A session
// whose role claims contain "admin" resolves to RoleAdmin; anything else
// is a plain user. Resolve performs no network call.
func (s Session) Resolve() (Role, error) {
	if s.Token == "" {
		return "", ErrUnauthenticated
	}
	for _, r := range s.Roles {
		if r == string(RoleAdmin) {
			return RoleAdmin, nil
		}
	}
	return RoleUser, nil
}

// Store persists sessions across process restarts. Load returns a zero
// session, not an error, when nothing has been saved yet; resolving that
// zero session yields ErrUnauthenticated, which is the desired redirect.
type Store interface {
	Load() (Session, error)
	Save(Session) error
	Clear() error
}
