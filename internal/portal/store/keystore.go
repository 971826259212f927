package store

import (
	"context"

	"github.com/aussiebroadwan/acsportal/internal/portal/domain"
	"github.com/aussiebroadwan/acsportal/pkg/jwtx"
)

// KeyStoreAdapter lets jwtx load and create signing keys through a Store
// without importing it.
type KeyStoreAdapter struct {
	store Store
}

func NewKeyStoreAdapter(s Store) *KeyStoreAdapter {
	return &KeyStoreAdapter{store: s}
}

func (a *KeyStoreAdapter) ListSigningKeys(ctx context.Context) ([]jwtx.SigningKeyRecord, error) {
	keys, err := a.store.SigningKeys().List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]jwtx.SigningKeyRecord, len(keys))
	for i, k := range keys {
		out[i] = jwtx.SigningKeyRecord{
			Kid:                 k.Kid,
			PrivateKeyEncrypted: k.PrivateKeyEncrypted,
			CreatedAt:           k.CreatedAt,
			RetiredAt:           k.RetiredAt,
			ExpiresAt:           k.ExpiresAt,
		}
	}
	return out, nil
}

func (a *KeyStoreAdapter) CreateSigningKey(ctx context.Context, r jwtx.SigningKeyRecord) error {
	return a.store.SigningKeys().Create(ctx, SigningKeyFromRecord(r))
}

// SigningKeyFromRecord converts a freshly generated jwtx record.
func SigningKeyFromRecord(r jwtx.SigningKeyRecord) domain.SigningKey {
	return domain.SigningKey{
		Kid:                 r.Kid,
		PrivateKeyEncrypted: r.PrivateKeyEncrypted,
		CreatedAt:           r.CreatedAt,
		RetiredAt:           r.RetiredAt,
		ExpiresAt:           r.ExpiresAt,
	}
}
