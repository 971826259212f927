// Package directory keeps the in-memory Member Directory: a read model of
// every registered member, replaced wholesale each time the source pushes
// a new snapshot.
package directory

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/aussiebroadwan/acsportal/internal/portal/domain"
	"github.com/aussiebroadwan/acsportal/pkg/cryptox"
	"github.com/aussiebroadwan/acsportal/pkg/slogx"
)

// ErrSourceClosed is recorded when the source closes its channel while the
// directory is still running.
var ErrSourceClosed = errors.New("directory: source closed")

type State int

const (
	Loading State = iota // no event received yet
	Ready
	Unavailable
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Unavailable:
		return "unavailable"
	}
	return "unknown"
}

// Event is one push from a Source: a full snapshot, or an error.
type Event struct {
	Members []domain.Member
	Err     error
}

// Source pushes directory events until unsubscribe is called.
type Source interface {
	Subscribe(ctx context.Context) (events <-chan Event, unsubscribe func())
}

// Directory is safe for concurrent readers. Only Run/Apply write to it.
type Directory struct {
	mu      sync.RWMutex
	members []domain.Member
	state   State
	err     error
}

func New() *Directory {
	return &Directory{state: Loading}
}

// Run subscribes to src and applies events until ctx is done, then
// unsubscribes.
func (d *Directory) Run(ctx context.Context, src Source) error {
	events, unsubscribe := src.Subscribe(ctx)
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				d.Apply(ctx, Event{Err: ErrSourceClosed})
				return nil
			}
			d.Apply(ctx, ev)
		}
	}
}

// Apply folds one event into the directory state.
func (d *Directory) Apply(ctx context.Context, ev Event) {
	l := slogx.FromContext(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()

	if ev.Err != nil {
		d.state = Unavailable
		d.err = ev.Err
		l.Error("member directory unavailable", "err", ev.Err)
		return
	}

	d.members = slices.Clone(ev.Members)
	d.state = Ready
	d.err = nil
	l.Debug("member directory snapshot replaced", "members", len(d.members))
}

// CurrentMembers returns a copy of the latest snapshot.
func (d *Directory) CurrentMembers() []domain.Member {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.members)
}

// Status reports the directory state and, when Unavailable, the cause.
func (d *Directory) Status() (State, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state, d.err
}

// FindByCredentials returns the first member whose normalised CPF equals
// the normalised input and whose password matches per MatchPassword. Status
// is not checked here.
func (d *Directory) FindByCredentials(cpf, password string) (domain.Member, bool) {
	want := domain.NormalizeCPF(cpf)
	if want == "" {
		return domain.Member{}, false
	}

	for _, m := range d.CurrentMembers() {
		if domain.NormalizeCPF(m.CPF) != want {
			continue
		}
		if MatchPassword(m.Password, password) {
			return m, true
		}
	}
	return domain.Member{}, false
}

// MatchPassword applies the login rule: an empty stored password accepts
// domain.DefaultPassword or an empty input, an argon2id hash is verified,
// and anything else is a legacy plaintext value compared in constant time.
func MatchPassword(stored, input string) bool {
	switch {
	case stored == "":
		return input == "" || input == domain.DefaultPassword
	case cryptox.IsPasswordHash(stored):
		return cryptox.VerifyPassword(input, stored) == nil
	default:
		return cryptox.EqualSecret(stored, input)
	}
}
