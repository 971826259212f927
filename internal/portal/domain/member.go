package domain

import "time"

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleACS   Role = "ACS"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool { return r == RoleAdmin || r == RoleACS }

// Label is the human readable role name printed on ID cards.
func (r Role) Label() string {
	if r == RoleAdmin {
		return "Administrador"
	}
	return "Agente Comunitário de Saúde"
}

type Status string

const (
	StatusActive   Status = "Ativo"
	StatusPending  Status = "Pendente"
	StatusInactive Status = "Inativo"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPending, StatusInactive:
		return true
	}
	return false
}

type AreaType string

const (
	AreaRural AreaType = "Rural"
	AreaUrban AreaType = "Urbana"
)

func (a AreaType) Valid() bool { return a == AreaRural || a == AreaUrban }

type Gender string

const (
	GenderMale   Gender = "Masculino"
	GenderFemale Gender = "Feminino"
	GenderOther  Gender = "Outro"
)

func (g Gender) Valid() bool {
	switch g {
	case "", GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// DefaultPassword is accepted for members that have no stored password and
// is the initial password of every newly registered member.
const DefaultPassword = "1234"

// BirthDateLayout is the wire and storage format of Member.BirthDate.
const BirthDateLayout = "2006-01-02"

// Member is one registered community health worker.
type Member struct {
	ID        string
	FullName  string
	CPF       string // digits only once stored by this system
	CNS       string
	BirthDate string // YYYY-MM-DD

	// Password holds an argon2id PHC string, a legacy plaintext value, or ""
	// (meaning DefaultPassword is accepted).
	Password string

	Gender       Gender
	Workplace    string
	MicroArea    string
	Team         string
	AreaType     AreaType
	ProfileImage string

	RegisteredAt time.Time
	Status       Status
	Role         Role
}

// EffectiveRole returns the member's role, treating a missing role as ACS.
// Records imported before roles existed have none.
func (m Member) EffectiveRole() Role {
	if m.Role == "" {
		return RoleACS
	}
	return m.Role
}

// IsActive reports whether the member may log in.
func (m Member) IsActive() bool { return m.Status == StatusActive }

// Identity returns the session identity for this member.
func (m Member) Identity() Identity {
	return Identity{ID: m.ID, Name: m.FullName, Role: m.EffectiveRole()}
}
