package domain

// IndicatorStatus grades how a municipality performs on an indicator.
type IndicatorStatus string

const (
	IndicatorOptimal    IndicatorStatus = "Ótimo"
	IndicatorGood       IndicatorStatus = "Bom"
	IndicatorSufficient IndicatorStatus = "Suficiente"
	IndicatorRegular    IndicatorStatus = "Regular"
)

func (s IndicatorStatus) Valid() bool {
	switch s {
	case IndicatorOptimal, IndicatorGood, IndicatorSufficient, IndicatorRegular:
		return true
	}
	return false
}

// APSIndicator is a primary care (Atenção Primária) performance indicator.
type APSIndicator struct {
	Code        string          `json:"code"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	CityValue   string          `json:"cityValue"`
	Status      IndicatorStatus `json:"status"`
}

// DentalIndicator is an oral health indicator.
type DentalIndicator struct {
	Code   string          `json:"code"`
	Title  string          `json:"title"`
	Status IndicatorStatus `json:"status"`
}

// DefaultAPSIndicators is the seed set, C1 to C7.
func DefaultAPSIndicators() []APSIndicator {
	return []APSIndicator{
		{Code: "C1", Title: "Pré-Natal (6 Consultas)", Description: "Proporção de gestantes com pelo menos 6 consultas.", CityValue: "0%", Status: IndicatorRegular},
		{Code: "C2", Title: "Pré-Natal (Sífilis e HIV)", Description: "Exames realizados no 1º trimestre.", CityValue: "0%", Status: IndicatorRegular},
		{Code: "C3", Title: "Saúde Bucal Gestante", Description: "Atendimento odontológico realizado.", CityValue: "0%", Status: IndicatorRegular},
		{Code: "C4", Title: "Citopatológico", Description: "Cobertura de exame preventivo (Papanicolau).", CityValue: "0%", Status: IndicatorRegular},
		{Code: "C5", Title: "Vacinação Infantil", Description: "Cobertura de Polio e Pentavalente.", CityValue: "0%", Status: IndicatorRegular},
		{Code: "C6", Title: "Hipertensão", Description: "Pessoas com PA aferida no semestre.", CityValue: "0%", Status: IndicatorRegular},
		{Code: "C7", Title: "Diabetes", Description: "Solicitação de Hemoglobina Glicada.", CityValue: "0%", Status: IndicatorRegular},
	}
}

// DefaultDentalIndicators is the seed set, B1 to B6.
func DefaultDentalIndicators() []DentalIndicator {
	return []DentalIndicator{
		{Code: "B1", Title: "Atendimento Gestante", Status: IndicatorRegular},
		{Code: "B2", Title: "Procedimentos Coletivos", Status: IndicatorRegular},
		{Code: "B3", Title: "Tratamento Concluído", Status: IndicatorRegular},
		{Code: "B4", Title: "Escovação Supervisionada", Status: IndicatorRegular},
		{Code: "B5", Title: "Urgência Odontológica", Status: IndicatorRegular},
		{Code: "B6", Title: "Acesso na Atenção Básica", Status: IndicatorRegular},
	}
}
