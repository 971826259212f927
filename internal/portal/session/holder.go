package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/acsportal/internal/portal/domain"
)

// Record is what gets persisted: the session plus the bearer token the
// server issued for it.
type Record struct {
	domain.Session
	Token     string    `json:"token,omitempty"`
	ExpiresAt time.Time `json:"expiresAt,omitzero"`
}

// Holder owns the current session. Every transition replaces the record
// and saves it to the slot before returning.
type Holder struct {
	slot   Slot
	logger *slog.Logger
	now    func() time.Time

	mu  sync.Mutex
	rec Record
}

// Restore rehydrates the last saved session. A missing, unreadable or
// expired record yields Guest.
func Restore(ctx context.Context, slot Slot, logger *slog.Logger) *Holder {
	h := &Holder{slot: slot, logger: logger, now: time.Now}
	h.rec = h.load(ctx)
	return h
}

func (h *Holder) load(ctx context.Context) Record {
	guest := Record{Session: domain.GuestSession()}

	raw, err := h.slot.Load(ctx)
	if errors.Is(err, ErrEmpty) {
		return guest
	}
	if err != nil {
		h.logger.Warn("session slot unreadable, starting as guest", "err", err)
		return guest
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		h.logger.Warn("session record corrupt, starting as guest", "err", err)
		return guest
	}
	if rec.User == nil {
		return guest
	}
	if rec.IsAuthenticated() && !rec.ExpiresAt.IsZero() && h.now().After(rec.ExpiresAt) {
		h.logger.Info("saved session expired, starting as guest", "user_id", rec.ID())
		return guest
	}
	return rec
}

// Current returns the held session.
func (h *Holder) Current() domain.Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rec.Session
}

// Token returns the bearer token for the held session, "" for Guest.
func (h *Holder) Token() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rec.Token
}

// Login moves Guest to id. Fails with domain.ErrInvalidTransition when
// already authenticated.
func (h *Holder) Login(ctx context.Context, id domain.Identity, token string, expiresAt time.Time) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	next, err := h.rec.Session.Login(id)
	if err != nil {
		return err
	}
	return h.replace(ctx, Record{Session: next, Token: token, ExpiresAt: expiresAt})
}

// Escalate replaces the session with the synthetic admin.
func (h *Holder) Escalate(ctx context.Context, token string, expiresAt time.Time) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.replace(ctx, Record{Session: h.rec.Session.Escalate(), Token: token, ExpiresAt: expiresAt})
}

// Logout returns to Guest.
func (h *Holder) Logout(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.replace(ctx, Record{Session: h.rec.Session.Logout()})
}

// replace persists rec and then swaps it in. A failed save leaves the held
// session untouched.
func (h *Holder) replace(ctx context.Context, rec Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := h.slot.Save(ctx, b); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	h.rec = rec
	return nil
}
