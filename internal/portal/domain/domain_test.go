package domain_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/acsportal/internal/portal/domain"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCPF(t *testing.T) {
	require.Equal(t, "12345678900", domain.NormalizeCPF("123.456.789-00"))
	require.Equal(t, "12345678900", domain.NormalizeCPF(" 123 456 789 00 "))
	require.Equal(t, domain.NormalizeCPF("123.456.789-00"), domain.NormalizeCPF("12345678900"))
	require.Empty(t, domain.NormalizeCPF("abc"))
}

func TestFormatCPF(t *testing.T) {
	require.Equal(t, "111.222.333-44", domain.FormatCPF("11122233344"))
	require.Equal(t, "111.222.333-44", domain.FormatCPF("111.222.333-44"))
	require.Equal(t, "123", domain.FormatCPF("123"))
}

func TestEffectiveRole(t *testing.T) {
	require.Equal(t, domain.RoleACS, domain.Member{}.EffectiveRole())
	require.Equal(t, domain.RoleAdmin, domain.Member{Role: domain.RoleAdmin}.EffectiveRole())

	id := domain.Member{ID: "acs-1", FullName: "ANA"}.Identity()
	require.Equal(t, domain.Identity{ID: "acs-1", Name: "ANA", Role: domain.RoleACS}, id)
}

func validRegistration() domain.Registration {
	return domain.Registration{
		FullName:  " maria das dores ",
		CPF:       "111.222.333-44",
		CNS:       "123 4567 8901 2345",
		BirthDate: "1985-03-09",
		Gender:    domain.GenderFemale,
		Workplace: "usf centro",
		Team:      "equipe 2",
		MicroArea: "04",
		AreaType:  domain.AreaRural,
	}
}

func TestRegistrationValidate(t *testing.T) {
	require.Empty(t, validRegistration().Validate())

	r := validRegistration()
	r.CPF = "111.222"
	r.BirthDate = "09/03/1985"
	r.AreaType = "Litoral"
	r.Gender = "x"
	errs := r.Validate()
	require.Contains(t, errs, "cpf")
	require.Contains(t, errs, "birthDate")
	require.Contains(t, errs, "areaType")
	require.Contains(t, errs, "gender")

	require.Contains(t, domain.Registration{}.Validate(), "fullName")
}

func TestRegistrationMember(t *testing.T) {
	now := time.Date(2026, 1, 13, 10, 0, 0, 0, time.UTC)
	m := validRegistration().Member(now)

	require.Equal(t, "MARIA DAS DORES", m.FullName)
	require.Equal(t, "11122233344", m.CPF)
	require.Equal(t, "123456789012345", m.CNS)
	require.Equal(t, "USF CENTRO", m.Workplace)
	require.Equal(t, "EQUIPE 2", m.Team)
	require.Equal(t, domain.StatusPending, m.Status)
	require.Equal(t, domain.RoleACS, m.Role)
	require.Equal(t, now, m.RegisteredAt)
}

func TestValidateMember(t *testing.T) {
	m := domain.Member{FullName: "ANA", CPF: "11122233344"}
	require.Empty(t, domain.ValidateMember(m))

	m.Role = "ROOT"
	m.Status = "Banido"
	errs := domain.ValidateMember(m)
	require.Contains(t, errs, "role")
	require.Contains(t, errs, "status")
}

func TestNormalizeMemberDefaults(t *testing.T) {
	m := domain.NormalizeMember(domain.Member{FullName: "ana", CPF: "111.222.333-44"})
	require.Equal(t, "ANA", m.FullName)
	require.Equal(t, "11122233344", m.CPF)
	require.Equal(t, domain.StatusActive, m.Status)
	require.Equal(t, domain.RoleACS, m.Role)
}

func TestDefaultIndicators(t *testing.T) {
	aps := domain.DefaultAPSIndicators()
	require.Len(t, aps, 7)
	require.Equal(t, "C1", aps[0].Code)
	require.Equal(t, "C7", aps[6].Code)

	dental := domain.DefaultDentalIndicators()
	require.Len(t, dental, 6)
	for _, d := range dental {
		require.Equal(t, domain.IndicatorRegular, d.Status)
	}
}

func TestNewCard(t *testing.T) {
	c := domain.NewCard(domain.Member{
		ID:        "acs-1",
		FullName:  "JOSÉ DA CONCEIÇÃO",
		CPF:       "11122233344",
		BirthDate: "1985-03-09",
		AreaType:  domain.AreaRural,
		Team:      "EQUIPE 2",
		Status:    domain.StatusActive,
	})

	require.Equal(t, "111.222.333-44", c.CPF)
	require.Equal(t, "09/03/1985", c.BirthDate)
	require.Equal(t, "EQUIPE 2 / ---", c.TeamArea)
	require.Equal(t, "ZONA RURAL", c.Zone)
	require.Equal(t, "SECRETARIA MUNICIPAL", c.Workplace)
	require.Equal(t, "Agente Comunitário de Saúde", c.RoleLabel)
	require.Equal(t, "CARTEIRINHA_JOSE_DA_CONCEICAO", c.PrintName)
}
