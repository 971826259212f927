package domain

import "errors"

// ErrInvalidTransition is returned when a session transition is not allowed
// from the current state, e.g. logging in over an authenticated session.
var ErrInvalidTransition = errors.New("invalid_transition")

const (
	GuestID   = "guest"
	GuestName = "Visitante"

	MasterAdminID   = "admin-01"
	MasterAdminName = "Administrador Mestre"
)

// Identity is who a session acts as.
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// Session holds at most one identity. Values are replaced wholesale on every
// transition, never patched.
type Session struct {
	User *Identity `json:"user"`
}

// GuestSession is the unauthenticated visitor.
func GuestSession() Session {
	return Session{User: &Identity{ID: GuestID, Name: GuestName, Role: RoleACS}}
}

// MasterAdminIdentity is the ADMIN identity granted by the master password.
// No member record backs it.
func MasterAdminIdentity() Identity {
	return Identity{ID: MasterAdminID, Name: MasterAdminName, Role: RoleAdmin}
}

// IsAuthenticated reports whether the session carries a real identity.
func (s Session) IsAuthenticated() bool {
	return s.User != nil && s.User.ID != GuestID
}

// IsSyntheticAdmin reports whether the session came from the master password.
func (s Session) IsSyntheticAdmin() bool {
	return s.User != nil && s.User.ID == MasterAdminID && s.User.Role == RoleAdmin
}

// Role returns the session role. No identity counts as ACS.
func (s Session) Role() Role {
	if s.User == nil || s.User.Role == "" {
		return RoleACS
	}
	return s.User.Role
}

// ID returns the identity id or "".
func (s Session) ID() string {
	if s.User == nil {
		return ""
	}
	return s.User.ID
}

// Login moves an unauthenticated session to id.
func (s Session) Login(id Identity) (Session, error) {
	if s.IsAuthenticated() {
		return s, ErrInvalidTransition
	}
	return Session{User: &id}, nil
}

// Escalate replaces the session with the synthetic admin.
func (s Session) Escalate() Session {
	if s.IsSyntheticAdmin() {
		return s
	}
	admin := MasterAdminIdentity()
	return Session{User: &admin}
}

// Logout always lands on Guest.
func (s Session) Logout() Session {
	return GuestSession()
}
