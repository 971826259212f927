package domain

import (
	"time"
)

// Registration is the self-service sign-up form.
type Registration struct {
	FullName  string   `json:"fullName"`
	CPF       string   `json:"cpf"`
	CNS       string   `json:"cns"`
	BirthDate string   `json:"birthDate"`
	Gender    Gender   `json:"gender,omitempty"`
	Workplace string   `json:"workplace"`
	Team      string   `json:"team"`
	MicroArea string   `json:"microArea"`
	AreaType  AreaType `json:"areaType"`
}

// Validate returns a field -> message map, empty when the form is valid.
func (r Registration) Validate() map[string]string {
	errs := make(map[string]string)

	if r.FullName == "" {
		errs["fullName"] = "full name is required"
	}
	if cpf := NormalizeCPF(r.CPF); len(cpf) != CPFLength {
		errs["cpf"] = "cpf must have 11 digits"
	}
	if r.CNS != "" && len(NormalizeCPF(r.CNS)) != CNSLength {
		errs["cns"] = "cns must have 15 digits"
	}
	if _, err := time.Parse(BirthDateLayout, r.BirthDate); err != nil {
		errs["birthDate"] = "birth date must be YYYY-MM-DD"
	}
	if !r.Gender.Valid() {
		errs["gender"] = "gender must be Masculino, Feminino or Outro"
	}
	if r.MicroArea == "" {
		errs["microArea"] = "micro area is required"
	}
	if r.Team == "" {
		errs["team"] = "team is required"
	}
	if !r.AreaType.Valid() {
		errs["areaType"] = "area type must be Rural or Urbana"
	}

	return errs
}

// Member builds the pending member record for this registration. The caller
// assigns id and password.
func (r Registration) Member(now time.Time) Member {
	return Member{
		FullName:     upperTrim(r.FullName),
		CPF:          NormalizeCPF(r.CPF),
		CNS:          NormalizeCPF(r.CNS),
		BirthDate:    r.BirthDate,
		Gender:       r.Gender,
		Workplace:    upperTrim(r.Workplace),
		Team:         upperTrim(r.Team),
		MicroArea:    r.MicroArea,
		AreaType:     r.AreaType,
		RegisteredAt: now.UTC(),
		Status:       StatusPending,
		Role:         RoleACS,
	}
}

// ValidateMember checks an admin-supplied member record. It is looser than
// Registration.Validate since admins edit legacy records with gaps.
func ValidateMember(m Member) map[string]string {
	errs := make(map[string]string)

	if m.FullName == "" {
		errs["fullName"] = "full name is required"
	}
	if len(NormalizeCPF(m.CPF)) != CPFLength {
		errs["cpf"] = "cpf must have 11 digits"
	}
	if m.BirthDate != "" {
		if _, err := time.Parse(BirthDateLayout, m.BirthDate); err != nil {
			errs["birthDate"] = "birth date must be YYYY-MM-DD"
		}
	}
	if !m.Gender.Valid() {
		errs["gender"] = "gender must be Masculino, Feminino or Outro"
	}
	if m.AreaType != "" && !m.AreaType.Valid() {
		errs["areaType"] = "area type must be Rural or Urbana"
	}
	if m.Status != "" && !m.Status.Valid() {
		errs["status"] = "status must be Ativo, Pendente or Inativo"
	}
	if m.Role != "" && !m.Role.Valid() {
		errs["role"] = "role must be ADMIN or ACS"
	}

	return errs
}

// NormalizeMember applies the storage conventions to an admin edit.
func NormalizeMember(m Member) Member {
	m.FullName = upperTrim(m.FullName)
	m.Workplace = upperTrim(m.Workplace)
	m.Team = upperTrim(m.Team)
	m.CPF = NormalizeCPF(m.CPF)
	m.CNS = NormalizeCPF(m.CNS)
	if m.Status == "" {
		m.Status = StatusActive
	}
	if m.Role == "" {
		m.Role = RoleACS
	}
	return m
}
