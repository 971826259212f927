// Package session owns the process-local Session of the terminal client and
// its persistence in a key-value slot.
package session

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/acsportal/internal/portal/store"
)

// SlotKey is the fixed key the session record lives under.
const SlotKey = "acs_auth_v10"

// ErrEmpty means nothing has been saved yet.
var ErrEmpty = errors.New("session: slot empty")

// Slot persists one serialised session record.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, b []byte) error
	Clear(ctx context.Context) error
}

// KVSlot is a Slot on top of a store.KV.
type KVSlot struct {
	KV  store.KV
	Key string // defaults to SlotKey
}

func (s *KVSlot) key() string {
	if s.Key == "" {
		return SlotKey
	}
	return s.Key
}

func (s *KVSlot) Load(ctx context.Context) ([]byte, error) {
	b, err := s.KV.Get(ctx, s.key())
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrEmpty
	}
	return b, err
}

func (s *KVSlot) Save(ctx context.Context, b []byte) error {
	return s.KV.Set(ctx, s.key(), b, 0)
}

func (s *KVSlot) Clear(ctx context.Context) error {
	return s.KV.Delete(ctx, s.key())
}
