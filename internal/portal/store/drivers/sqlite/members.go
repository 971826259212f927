package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/acsportal/internal/portal/domain"
	"github.com/aussiebroadwan/acsportal/internal/portal/store"
)

const memberColumns = `id, full_name, cpf, cns, birth_date, password, gender, workplace,
	micro_area, team, area_type, profile_image, registered_at, status, role`

type membersRepo struct {
	db dbtx
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (domain.Member, error) {
	var (
		m            domain.Member
		gender       string
		areaType     string
		status       string
		role         string
		registeredAt int64
	)
	err := row.Scan(
		&m.ID, &m.FullName, &m.CPF, &m.CNS, &m.BirthDate, &m.Password, &gender, &m.Workplace,
		&m.MicroArea, &m.Team, &areaType, &m.ProfileImage, &registeredAt, &status, &role,
	)
	if err != nil {
		return domain.Member{}, err
	}

	m.Gender = domain.Gender(gender)
	m.AreaType = domain.AreaType(areaType)
	m.Status = domain.Status(status)
	m.Role = domain.Role(role)
	m.RegisteredAt = fromUnixMilli(registeredAt)
	return m, nil
}

func (r *membersRepo) List(ctx context.Context) ([]domain.Member, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+memberColumns+` FROM members ORDER BY registered_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *membersRepo) Get(ctx context.Context, id string) (domain.Member, error) {
	m, err := scanMember(r.db.QueryRowContext(ctx,
		`SELECT `+memberColumns+` FROM members WHERE id = ?`, id))
	return m, mapNotFound(err)
}

func (r *membersRepo) GetByCPF(ctx context.Context, cpf string) (domain.Member, error) {
	m, err := scanMember(r.db.QueryRowContext(ctx,
		`SELECT `+memberColumns+` FROM members WHERE cpf = ?`, domain.NormalizeCPF(cpf)))
	return m, mapNotFound(err)
}

func (r *membersRepo) Save(ctx context.Context, m domain.Member) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO members (`+memberColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			full_name     = excluded.full_name,
			cpf           = excluded.cpf,
			cns           = excluded.cns,
			birth_date    = excluded.birth_date,
			password      = excluded.password,
			gender        = excluded.gender,
			workplace     = excluded.workplace,
			micro_area    = excluded.micro_area,
			team          = excluded.team,
			area_type     = excluded.area_type,
			profile_image = excluded.profile_image,
			registered_at = excluded.registered_at,
			status        = excluded.status,
			role          = excluded.role`,
		m.ID, m.FullName, m.CPF, m.CNS, m.BirthDate, m.Password, string(m.Gender), m.Workplace,
		m.MicroArea, m.Team, string(m.AreaType), m.ProfileImage, toUnixMilli(m.RegisteredAt),
		string(m.Status), string(m.Role),
	)
	return mapConstraint(err)
}

func (r *membersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
