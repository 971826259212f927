package http

import (
	"time"

	"github.com/aussiebroadwan/acsportal/internal/portal/domain"
	"github.com/aussiebroadwan/acsportal/internal/portal/service"
	"github.com/aussiebroadwan/acsportal/pkg/portalsdk"
)

func toSDKSession(s domain.Session) portalsdk.SessionResponse {
	out := portalsdk.SessionResponse{Authenticated: s.IsAuthenticated()}
	if s.User != nil {
		out.User = &portalsdk.Identity{ID: s.User.ID, Name: s.User.Name, Role: string(s.Role())}
	}
	return out
}

func toSDKMember(m domain.Member) portalsdk.Member {
	out := portalsdk.Member{
		ID:           m.ID,
		FullName:     m.FullName,
		CPF:          m.CPF,
		CNS:          m.CNS,
		BirthDate:    m.BirthDate,
		Gender:       string(m.Gender),
		Workplace:    m.Workplace,
		MicroArea:    m.MicroArea,
		Team:         m.Team,
		AreaType:     string(m.AreaType),
		ProfileImage: m.ProfileImage,
		Status:       string(m.Status),
		Role:         string(m.EffectiveRole()),
	}
	if !m.RegisteredAt.IsZero() {
		out.RegisteredAt = m.RegisteredAt.UTC().Format(time.RFC3339)
	}
	return out
}

func toSDKMembers(ms []domain.Member) []portalsdk.Member {
	out := make([]portalsdk.Member, 0, len(ms))
	for _, m := range ms {
		out = append(out, toSDKMember(m))
	}
	return out
}

// fromSDKMember builds the domain member an admin submitted. A malformed
// registeredAt is ignored and the service fills it in.
func fromSDKMember(req portalsdk.MemberRequest) domain.Member {
	m := domain.Member{
		ID:           req.ID,
		FullName:     req.FullName,
		CPF:          req.CPF,
		CNS:          req.CNS,
		BirthDate:    req.BirthDate,
		Password:     req.Password,
		Gender:       domain.Gender(req.Gender),
		Workplace:    req.Workplace,
		MicroArea:    req.MicroArea,
		Team:         req.Team,
		AreaType:     domain.AreaType(req.AreaType),
		ProfileImage: req.ProfileImage,
		Status:       domain.Status(req.Status),
		Role:         domain.Role(req.Role),
	}
	if t, err := time.Parse(time.RFC3339, req.RegisteredAt); err == nil {
		m.RegisteredAt = t.UTC()
	}
	return m
}

func fromSDKRegistration(req portalsdk.RegisterRequest) domain.Registration {
	return domain.Registration{
		FullName:  req.FullName,
		CPF:       req.CPF,
		CNS:       req.CNS,
		BirthDate: req.BirthDate,
		Gender:    domain.Gender(req.Gender),
		Workplace: req.Workplace,
		Team:      req.Team,
		MicroArea: req.MicroArea,
		AreaType:  domain.AreaType(req.AreaType),
	}
}

func toSDKCard(c domain.Card) portalsdk.Card {
	return portalsdk.Card{
		MemberID:     c.MemberID,
		FullName:     c.FullName,
		CPF:          c.CPF,
		CNS:          c.CNS,
		BirthDate:    c.BirthDate,
		RoleLabel:    c.RoleLabel,
		Workplace:    c.Workplace,
		TeamArea:     c.TeamArea,
		Zone:         c.Zone,
		Status:       string(c.Status),
		ProfileImage: c.ProfileImage,
		PrintName:    c.PrintName,
	}
}

func toSDKIndicators(in service.Indicators) portalsdk.IndicatorsResponse {
	out := portalsdk.IndicatorsResponse{
		APS:    make([]portalsdk.APSIndicator, 0, len(in.APS)),
		Dental: make([]portalsdk.DentalIndicator, 0, len(in.Dental)),
	}
	for _, a := range in.APS {
		out.APS = append(out.APS, toSDKAPS(a))
	}
	for _, d := range in.Dental {
		out.Dental = append(out.Dental, toSDKDental(d))
	}
	return out
}

func toSDKAPS(a domain.APSIndicator) portalsdk.APSIndicator {
	return portalsdk.APSIndicator{
		Code:        a.Code,
		Title:       a.Title,
		Description: a.Description,
		CityValue:   a.CityValue,
		Status:      string(a.Status),
	}
}

func toSDKDental(d domain.DentalIndicator) portalsdk.DentalIndicator {
	return portalsdk.DentalIndicator{Code: d.Code, Title: d.Title, Status: string(d.Status)}
}

func toSDKNews(items []domain.NewsItem) portalsdk.NewsResponse {
	out := portalsdk.NewsResponse{Items: make([]portalsdk.NewsItem, 0, len(items))}
	for _, it := range items {
		out.Items = append(out.Items, portalsdk.NewsItem{
			Title:   it.Title,
			Summary: it.Summary,
			Content: it.Content,
			Date:    it.Date,
			URL:     it.URL,
		})
	}
	return out
}
