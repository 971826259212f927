package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/acsportal/internal/portal/domain"
	"github.com/aussiebroadwan/acsportal/internal/portal/store"
)

type signingKeysRepo struct {
	db dbtx
}

const signingKeyColumns = `kid, private_key_encrypted, created_at, retired_at, expires_at`

func scanSigningKey(row rowScanner) (domain.SigningKey, error) {
	var (
		k                    domain.SigningKey
		createdAt            int64
		retiredAt, expiresAt sql.NullInt64
	)
	if err := row.Scan(&k.Kid, &k.PrivateKeyEncrypted, &createdAt, &retiredAt, &expiresAt); err != nil {
		return domain.SigningKey{}, err
	}

	k.CreatedAt = fromUnixMilli(createdAt)
	if retiredAt.Valid {
		t := fromUnixMilli(retiredAt.Int64)
		k.RetiredAt = &t
	}
	if expiresAt.Valid {
		k.ExpiresAt = fromUnixMilli(expiresAt.Int64)
	}
	return k, nil
}

func (r *signingKeysRepo) List(ctx context.Context) ([]domain.SigningKey, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+signingKeyColumns+` FROM signing_keys ORDER BY created_at, kid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SigningKey
	for rows.Next() {
		k, err := scanSigningKey(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

func (r *signingKeysRepo) Get(ctx context.Context, kid string) (domain.SigningKey, error) {
	k, err := scanSigningKey(r.db.QueryRowContext(ctx,
		`SELECT `+signingKeyColumns+` FROM signing_keys WHERE kid = ?`, kid))
	if err != nil {
		return domain.SigningKey{}, mapNotFound(err)
	}
	return k, nil
}

func (r *signingKeysRepo) Create(ctx context.Context, k domain.SigningKey) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO signing_keys (kid, private_key_encrypted, created_at) VALUES (?, ?, ?)`,
		k.Kid, k.PrivateKeyEncrypted, toUnixMilli(k.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *signingKeysRepo) Retire(ctx context.Context, kid string, at, expiresAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE signing_keys SET retired_at = ?, expires_at = ? WHERE kid = ? AND retired_at IS NULL`,
		toUnixMilli(at), toUnixMilli(expiresAt), kid,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *signingKeysRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM signing_keys WHERE retired_at IS NOT NULL AND expires_at <= ?`, now.UnixMilli())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
