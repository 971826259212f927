package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/acsportal/internal/portal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Drivers expose sub-repositories
// so a Tx-scoped store can hand out the same repos bound to the transaction.
type Store interface {
	Members() Members
	Indicators() Indicators
	KV() KV
	SigningKeys() SigningKeys

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Members interface {
	// List returns every member, newest registration first.
	List(ctx context.Context) ([]domain.Member, error)

	Get(ctx context.Context, id string) (domain.Member, error)

	// GetByCPF looks a member up by normalised CPF.
	GetByCPF(ctx context.Context, cpf string) (domain.Member, error)

	// Save upserts keyed by id. A CPF already held by another member yields
	// ErrAlreadyExists.
	Save(ctx context.Context, m domain.Member) error

	// Delete removes a member; ErrNotFound when there was nothing to delete.
	Delete(ctx context.Context, id string) error
}

type Indicators interface {
	ListAPS(ctx context.Context) ([]domain.APSIndicator, error)
	ListDental(ctx context.Context) ([]domain.DentalIndicator, error)

	// SaveAPS and SaveDental upsert keyed by code. New codes sort last.
	SaveAPS(ctx context.Context, ind domain.APSIndicator) error
	SaveDental(ctx context.Context, ind domain.DentalIndicator) error
}

// KV is a small expiring key-value store used for the session slot, token
// revocations and the news cache.
type KV interface {
	// Get returns ErrNotFound for missing or expired keys.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	// DeleteExpired purges expired entries and reports how many went.
	// Backends with native expiry return 0.
	DeleteExpired(ctx context.Context) (int64, error)
}

type SigningKeys interface {
	// List returns every stored key, oldest first.
	List(ctx context.Context) ([]domain.SigningKey, error)
	Get(ctx context.Context, kid string) (domain.SigningKey, error)
	Create(ctx context.Context, k domain.SigningKey) error

	// Retire stops an active key from signing. ErrNotFound when kid is
	// unknown or already retired.
	Retire(ctx context.Context, kid string, at, expiresAt time.Time) error

	// DeleteExpired purges retired keys whose window has closed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
