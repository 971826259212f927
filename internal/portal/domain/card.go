package domain

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Card is the printable member ID card.
type Card struct {
	MemberID     string `json:"memberId"`
	FullName     string `json:"fullName"`
	CPF          string `json:"cpf"` // 000.000.000-00
	CNS          string `json:"cns,omitempty"`
	BirthDate    string `json:"birthDate,omitempty"` // DD/MM/YYYY
	RoleLabel    string `json:"roleLabel"`
	Workplace    string `json:"workplace"`
	TeamArea     string `json:"teamArea"` // "team / micro area"
	Zone         string `json:"zone"`
	Status       Status `json:"status"`
	ProfileImage string `json:"profileImage,omitempty"`
	PrintName    string `json:"printName"`
}

const (
	cardPlaceholder     = "---"
	cardDefaultWorkplace = "SECRETARIA MUNICIPAL"
)

// NewCard builds the card for m.
func NewCard(m Member) Card {
	c := Card{
		MemberID:     m.ID,
		FullName:     m.FullName,
		CPF:          FormatCPF(m.CPF),
		CNS:          m.CNS,
		RoleLabel:    m.EffectiveRole().Label(),
		Workplace:    orDefault(m.Workplace, cardDefaultWorkplace),
		TeamArea:     orDefault(m.Team, cardPlaceholder) + " / " + orDefault(m.MicroArea, cardPlaceholder),
		Zone:         "ZONA " + strings.ToUpper(orDefault(string(m.AreaType), cardPlaceholder)),
		Status:       m.Status,
		ProfileImage: m.ProfileImage,
		PrintName:    PrintName(m.FullName),
	}
	if t, err := time.Parse(BirthDateLayout, m.BirthDate); err == nil {
		c.BirthDate = t.Format("02/01/2006")
	}
	return c
}

// PrintName is the file name used when printing a card: CARTEIRINHA_ plus
// the name with diacritics removed and whitespace runs replaced by "_".
func PrintName(fullName string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, fullName)
	if err != nil {
		plain = fullName
	}
	return "CARTEIRINHA_" + strings.Join(strings.Fields(plain), "_")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
