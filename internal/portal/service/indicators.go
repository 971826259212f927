package service

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/acsportal/internal/portal/domain"
	"github.com/aussiebroadwan/acsportal/internal/portal/store"
	"github.com/aussiebroadwan/acsportal/pkg/slogx"
)

// Indicators is the full indicator board.
type Indicators struct {
	APS    []domain.APSIndicator    `json:"aps"`
	Dental []domain.DentalIndicator `json:"dental"`
}

type IndicatorService struct {
	Store store.Store
}

// SeedDefaults writes the default APS and dental sets when the tables are
// empty. Failures are logged and otherwise ignored.
func (s *IndicatorService) SeedDefaults(ctx context.Context) {
	l := slogx.FromContext(ctx)
	repo := s.Store.Indicators()

	if aps, err := repo.ListAPS(ctx); err != nil {
		l.Error("indicator seed: list aps failed", "err", err)
	} else if len(aps) == 0 {
		for _, ind := range domain.DefaultAPSIndicators() {
			if err := repo.SaveAPS(ctx, ind); err != nil {
				l.Error("indicator seed: save aps failed", slog.String("code", ind.Code), "err", err)
			}
		}
		l.Info("seeded default aps indicators")
	}

	if dental, err := repo.ListDental(ctx); err != nil {
		l.Error("indicator seed: list dental failed", "err", err)
	} else if len(dental) == 0 {
		for _, ind := range domain.DefaultDentalIndicators() {
			if err := repo.SaveDental(ctx, ind); err != nil {
				l.Error("indicator seed: save dental failed", slog.String("code", ind.Code), "err", err)
			}
		}
		l.Info("seeded default dental indicators")
	}
}

func (s *IndicatorService) List(ctx context.Context) (Indicators, error) {
	aps, err := s.Store.Indicators().ListAPS(ctx)
	if err != nil {
		return Indicators{}, unavailable("list aps indicators", err)
	}
	dental, err := s.Store.Indicators().ListDental(ctx)
	if err != nil {
		return Indicators{}, unavailable("list dental indicators", err)
	}
	return Indicators{APS: aps, Dental: dental}, nil
}

// UpdateAPS replaces the editable fields of an existing APS indicator.
func (s *IndicatorService) UpdateAPS(ctx context.Context, code string, upd domain.APSIndicator) (domain.APSIndicator, error) {
	if !upd.Status.Valid() {
		return domain.APSIndicator{}, validationErr(map[string]string{"status": "status must be Ótimo, Bom, Suficiente or Regular"})
	}

	aps, err := s.Store.Indicators().ListAPS(ctx)
	if err != nil {
		return domain.APSIndicator{}, unavailable("list aps indicators", err)
	}

	for _, cur := range aps {
		if cur.Code != code {
			continue
		}
		cur.CityValue = upd.CityValue
		cur.Status = upd.Status
		if upd.Title != "" {
			cur.Title = upd.Title
		}
		if upd.Description != "" {
			cur.Description = upd.Description
		}
		if err := s.Store.Indicators().SaveAPS(ctx, cur); err != nil {
			return domain.APSIndicator{}, unavailable("save aps indicator", err)
		}
		return cur, nil
	}
	return domain.APSIndicator{}, ErrIndicatorNotFound
}

// UpdateDental sets the status (and optionally title) of a dental indicator.
func (s *IndicatorService) UpdateDental(ctx context.Context, code string, upd domain.DentalIndicator) (domain.DentalIndicator, error) {
	if !upd.Status.Valid() {
		return domain.DentalIndicator{}, validationErr(map[string]string{"status": "status must be Ótimo, Bom, Suficiente or Regular"})
	}

	dental, err := s.Store.Indicators().ListDental(ctx)
	if err != nil {
		return domain.DentalIndicator{}, unavailable("list dental indicators", err)
	}

	for _, cur := range dental {
		if cur.Code != code {
			continue
		}
		cur.Status = upd.Status
		if upd.Title != "" {
			cur.Title = upd.Title
		}
		if err := s.Store.Indicators().SaveDental(ctx, cur); err != nil {
			return domain.DentalIndicator{}, unavailable("save dental indicator", err)
		}
		return cur, nil
	}
	return domain.DentalIndicator{}, ErrIndicatorNotFound
}

