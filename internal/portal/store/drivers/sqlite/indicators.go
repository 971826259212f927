package sqlite

import (
	"context"

	"github.com/aussiebroadwan/acsportal/internal/portal/domain"
)

type indicatorsRepo struct {
	db dbtx
}

func (r *indicatorsRepo) ListAPS(ctx context.Context) ([]domain.APSIndicator, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT code, title, description, city_value, status FROM aps_indicators ORDER BY position, code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.APSIndicator
	for rows.Next() {
		var (
			ind    domain.APSIndicator
			status string
		)
		if err := rows.Scan(&ind.Code, &ind.Title, &ind.Description, &ind.CityValue, &status); err != nil {
			return nil, err
		}
		ind.Status = domain.IndicatorStatus(status)
		out = append(out, ind)
	}
	return out, rows.Err()
}

func (r *indicatorsRepo) ListDental(ctx context.Context) ([]domain.DentalIndicator, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT code, title, status FROM dental_indicators ORDER BY position, code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DentalIndicator
	for rows.Next() {
		var (
			ind    domain.DentalIndicator
			status string
		)
		if err := rows.Scan(&ind.Code, &ind.Title, &status); err != nil {
			return nil, err
		}
		ind.Status = domain.IndicatorStatus(status)
		out = append(out, ind)
	}
	return out, rows.Err()
}

// New codes take the next position so the seed order is kept.
func (r *indicatorsRepo) SaveAPS(ctx context.Context, ind domain.APSIndicator) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO aps_indicators (code, position, title, description, city_value, status)
		VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM aps_indicators), ?, ?, ?, ?)
		ON CONFLICT (code) DO UPDATE SET
			title       = excluded.title,
			description = excluded.description,
			city_value  = excluded.city_value,
			status      = excluded.status`,
		ind.Code, ind.Title, ind.Description, ind.CityValue, string(ind.Status),
	)
	return err
}

func (r *indicatorsRepo) SaveDental(ctx context.Context, ind domain.DentalIndicator) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dental_indicators (code, position, title, status)
		VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM dental_indicators), ?, ?)
		ON CONFLICT (code) DO UPDATE SET
			title  = excluded.title,
			status = excluded.status`,
		ind.Code, ind.Title, string(ind.Status),
	)
	return err
}
