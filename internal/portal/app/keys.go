package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/acsportal/internal/portal/store"
	"github.com/aussiebroadwan/acsportal/pkg/cryptox"
	"github.com/aussiebroadwan/acsportal/pkg/jwtx"
)

const keyPrefix = "acs"

// InitSessionKeys creates the KeyManager for session tokens.
//
// Storage modes:
//   - "persistent": keys are sealed with the key secret and stored in the
//     database. Tokens survive restarts and keys can be rotated with a grace
//     period.
//   - "ephemeral": keys live in memory only. A restart logs everyone out.
func InitSessionKeys(ctx context.Context, cfg Config, db store.Store, logger *slog.Logger) (*jwtx.KeyManager, error) {
	switch cfg.KeyStorage {
	case "persistent", "":
		cryptox.SetKeySecretPath(cfg.KeySecretFile)

		km, err := jwtx.NewPersistentKeyManager(ctx, jwtx.PersistentKeyManagerOptions{
			Store:     store.NewKeyStoreAdapter(db),
			Issuer:    cfg.Issuer,
			NumKeys:   cfg.NumKeys,
			KeyPrefix: keyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize persistent session keys: %w", err)
		}

		logger.Info("persistent signing keys loaded",
			"num_keys", km.NumSigners(),
			"issuer", cfg.Issuer,
			"grace", cfg.KeyGrace,
		)
		return km, nil

	case "ephemeral":
		km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
			Issuer:    cfg.Issuer,
			NumKeys:   cfg.NumKeys,
			KeyPrefix: keyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize session keys: %w", err)
		}

		logger.Info("ephemeral signing keys generated", "num_keys", km.NumSigners(), "issuer", cfg.Issuer)
		logger.Warn("all existing session tokens are now invalid")
		return km, nil

	default:
		return nil, fmt.Errorf("unknown PORTAL_KEY_STORAGE %q", cfg.KeyStorage)
	}
}
