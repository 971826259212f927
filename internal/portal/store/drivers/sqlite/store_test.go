package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/acsportal/internal/portal/domain"
	"github.com/aussiebroadwan/acsportal/internal/portal/store"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func member(id, cpf string, at time.Time) domain.Member {
	return domain.Member{
		ID:           id,
		FullName:     "MEMBER " + id,
		CPF:          cpf,
		BirthDate:    "1990-01-01",
		AreaType:     domain.AreaUrban,
		RegisteredAt: at,
		Status:       domain.StatusActive,
		Role:         domain.RoleACS,
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestMembersCRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	repo := s.Members()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, member("acs-1", "11122233344", base)))
	require.NoError(t, repo.Save(ctx, member("acs-2", "55566677788", base.Add(time.Hour))))

	got, err := repo.Get(ctx, "acs-1")
	require.NoError(t, err)
	require.Equal(t, "11122233344", got.CPF)
	require.Equal(t, base, got.RegisteredAt)
	require.Equal(t, domain.StatusActive, got.Status)

	byCPF, err := repo.GetByCPF(ctx, "555.666.777-88")
	require.NoError(t, err)
	require.Equal(t, "acs-2", byCPF.ID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "acs-2", list[0].ID, "newest first")

	// Upsert keyed by id.
	got.Status = domain.StatusInactive
	got.Role = domain.RoleAdmin
	require.NoError(t, repo.Save(ctx, got))
	got, err = repo.Get(ctx, "acs-1")
	require.NoError(t, err)
	require.Equal(t, domain.StatusInactive, got.Status)
	require.Equal(t, domain.RoleAdmin, got.Role)

	require.NoError(t, repo.Delete(ctx, "acs-1"))
	_, err = repo.Get(ctx, "acs-1")
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, "acs-1"), store.ErrNotFound)
}

func TestMembersDuplicateCPF(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	now := time.Now().UTC()
	require.NoError(t, s.Members().Save(ctx, member("acs-1", "11122233344", now)))
	err := s.Members().Save(ctx, member("acs-2", "11122233344", now))
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestIndicatorsKeepSeedOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, ind := range domain.DefaultAPSIndicators() {
		require.NoError(t, s.Indicators().SaveAPS(ctx, ind))
	}
	for _, ind := range domain.DefaultDentalIndicators() {
		require.NoError(t, s.Indicators().SaveDental(ctx, ind))
	}

	update := domain.DefaultAPSIndicators()[0]
	update.CityValue = "62%"
	update.Status = domain.IndicatorGood
	require.NoError(t, s.Indicators().SaveAPS(ctx, update))

	aps, err := s.Indicators().ListAPS(ctx)
	require.NoError(t, err)
	require.Len(t, aps, 7)
	require.Equal(t, "C1", aps[0].Code)
	require.Equal(t, "62%", aps[0].CityValue)
	require.Equal(t, domain.IndicatorGood, aps[0].Status)

	dental, err := s.Indicators().ListDental(ctx)
	require.NoError(t, err)
	require.Len(t, dental, 6)
	require.Equal(t, "B6", dental[5].Code)
}

func TestKVExpiry(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	kv := &kvRepo{db: s.db, now: func() time.Time { return now }}

	require.NoError(t, kv.Set(ctx, "forever", []byte("a"), 0))
	require.NoError(t, kv.Set(ctx, "short", []byte("b"), time.Minute))

	v, err := kv.Get(ctx, "short")
	require.NoError(t, err)
	require.Equal(t, []byte("b"), v)

	now = now.Add(2 * time.Minute)
	_, err = kv.Get(ctx, "short")
	require.ErrorIs(t, err, store.ErrNotFound)

	n, err := kv.DeleteExpired(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	v, err = kv.Get(ctx, "forever")
	require.NoError(t, err)
	require.Equal(t, []byte("a"), v)

	require.NoError(t, kv.Delete(ctx, "forever"))
	_, err = kv.Get(ctx, "forever")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Members().Save(ctx, member("acs-1", "11122233344", time.Now())))
		return store.ErrAlreadyExists
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = s.Members().Get(ctx, "acs-1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSigningKeysLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	repo := s.SigningKeys()

	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, domain.SigningKey{Kid: "acs-a", PrivateKeyEncrypted: []byte{1, 2}, CreatedAt: created}))
	require.NoError(t, repo.Create(ctx, domain.SigningKey{Kid: "acs-b", PrivateKeyEncrypted: []byte{3}, CreatedAt: created.Add(time.Hour)}))
	require.ErrorIs(t, repo.Create(ctx, domain.SigningKey{Kid: "acs-a", PrivateKeyEncrypted: []byte{9}, CreatedAt: created}), store.ErrAlreadyExists)

	keys, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, keys, 2)
	require.Equal(t, "acs-a", keys[0].Kid)
	require.True(t, keys[0].IsActive())
	require.Equal(t, []byte{1, 2}, keys[0].PrivateKeyEncrypted)

	retiredAt := created.Add(24 * time.Hour)
	require.NoError(t, repo.Retire(ctx, "acs-a", retiredAt, retiredAt.Add(12*time.Hour)))
	require.ErrorIs(t, repo.Retire(ctx, "acs-a", retiredAt, retiredAt), store.ErrNotFound)
	require.ErrorIs(t, repo.Retire(ctx, "acs-missing", retiredAt, retiredAt), store.ErrNotFound)

	got, err := repo.Get(ctx, "acs-a")
	require.NoError(t, err)
	require.False(t, got.IsActive())
	require.Equal(t, retiredAt, *got.RetiredAt)
	require.False(t, got.IsExpired(retiredAt.Add(time.Hour)))
	require.True(t, got.IsExpired(retiredAt.Add(12*time.Hour)))

	n, err := repo.DeleteExpired(ctx, retiredAt.Add(time.Hour))
	require.NoError(t, err)
	require.Zero(t, n)

	n, err = repo.DeleteExpired(ctx, retiredAt.Add(13*time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = repo.Get(ctx, "acs-a")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = repo.Get(ctx, "acs-b")
	require.NoError(t, err)
}
