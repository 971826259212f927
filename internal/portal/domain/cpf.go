package domain

import "strings"

const (
	// CPFLength is the number of digits in a Brazilian CPF.
	CPFLength = 11
	// CNSLength is the number of digits in a Cartão Nacional de Saúde.
	CNSLength = 15
)

// NormalizeCPF strips every non-digit rune, so "123.456.789-00" and
// "12345678900" compare equal.
func NormalizeCPF(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// FormatCPF renders an 11 digit CPF as 000.000.000-00. Anything else is
// returned unchanged.
func FormatCPF(s string) string {
	d := NormalizeCPF(s)
	if len(d) != CPFLength {
		return s
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

// upperTrim is how free-text fields (name, workplace, team) are stored.
func upperTrim(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
