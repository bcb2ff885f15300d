// Package session answers "who is acting": the role chosen at login and, for captains,
// the authenticated username. A Session is a plain value passed to every operation.
package session

import "github.com/trentd187/statteam/internal/models"

// Session is the role context of one login. The zero value is the unauthenticated state a
// logout returns to.
type Session struct {
	Role    models.Role `json:"role"`
	Captain string      `json:"captain,omitempty"` // Set only when Role is RoleCaptain
	Store   string      `json:"-"`                 // Location of the store a captain logged in to
}

// Visitor is a read-only session that needs no credentials.
func Visitor() Session {
	return Session{Role: models.RoleVisitor}
}

// Admin is the session of the single administrator.
func Admin() Session {
	return Session{Role: models.RoleAdmin}
}

// ForCaptain is the session of an authenticated captain.
func ForCaptain(username string) Session {
	return Session{Role: models.RoleCaptain, Captain: username}
}

// Authenticated reports whether a login has happened.
func (s Session) Authenticated() bool {
	return s.Role.Valid()
}

func (s Session) IsAdmin() bool {
	return s.Role == models.RoleAdmin
}

func (s Session) IsCaptain() bool {
	return s.Role == models.RoleCaptain && s.Captain != ""
}
