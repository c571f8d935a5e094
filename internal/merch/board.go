package merch

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/cxsxrrrr/PokeMart/internal/catalog"
	"github.com/cxsxrrrr/PokeMart/pkg/models"
)

const (
	MsgNoMatches   = "No se encontraron cartas con ese criterio."
	MsgLoadFailure = "No se pudo cargar el catálogo local."
)

// State is the merchandising status shown above both rows.
type State int

const (
	StateLoading State = iota
	StateReady
	StateEmpty
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateEmpty:
		return "empty"
	case StateFailed:
		return "error"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of the board after a load step.
type Snapshot struct {
	State   State
	Term    string
	Message string
	Selection
}

// Catalog is what the board needs from the catalog cache.
type Catalog interface {
	Ensure(ctx context.Context) ([]models.NormalizedCard, error)
}

type Option func(*Board)

func WithRand(rng Rand) Option {
	return func(b *Board) { b.rng = rng }
}

func WithCounts(popular, deals int) Option {
	return func(b *Board) {
		if popular > 0 {
			b.popularCount = popular
		}
		if deals > 0 {
			b.dealsCount = deals
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(b *Board) {
		if l != nil {
			b.log = l
		}
	}
}

// Board runs searches against the catalog and keeps the latest selection.
type Board struct {
	catalog      Catalog
	rng          Rand
	log          *zap.Logger
	popularCount int
	dealsCount   int

	// injected generators are usually not safe for concurrent use
	rngMu sync.Mutex

	mu        sync.Mutex
	snap      Snapshot
	gen       uint64
	listeners []func(Snapshot)

	// held while listeners run so snapshots arrive in generation order
	notifyMu sync.Mutex
}

func NewBoard(c Catalog, opts ...Option) *Board {
	b := &Board{
		catalog:      c,
		rng:          DefaultRand,
		log:          zap.NewNop(),
		popularCount: DefaultPopularCount,
		dealsCount:   DefaultDealsCount,
		snap:         Snapshot{State: StateLoading},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// OnChange registers fn to run after every state change, outside the lock.
// fn must not call Load.
func (b *Board) OnChange(fn func(Snapshot)) {
	b.mu.Lock()
	b.listeners = append(b.listeners, fn)
	b.mu.Unlock()
}

func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snap
}

// Load applies a search term. Repeating the current term while the board is
// ready is a no-op. Catalog errors end in StateFailed and are only logged.
// If a newer Load starts before this one finishes, this result is dropped.
func (b *Board) Load(ctx context.Context, term string) Snapshot {
	term = strings.TrimSpace(term)

	b.mu.Lock()
	if term == b.snap.Term && b.snap.State == StateReady {
		s := b.snap
		b.mu.Unlock()
		return s
	}
	b.gen++
	gen := b.gen
	b.snap = Snapshot{State: StateLoading, Term: term}
	loading := b.snap
	b.mu.Unlock()
	b.notify(gen, loading)

	next := b.compute(ctx, term)

	b.mu.Lock()
	if gen != b.gen {
		s := b.snap
		b.mu.Unlock()
		return s
	}
	b.snap = next
	b.mu.Unlock()
	b.notify(gen, next)
	return next
}

func (b *Board) compute(ctx context.Context, term string) Snapshot {
	cards, err := b.catalog.Ensure(ctx)
	if err != nil {
		b.log.Error("catalog load failed", zap.String("term", term), zap.Error(err))
		return Snapshot{State: StateFailed, Term: term, Message: MsgLoadFailure}
	}

	filtered := catalog.Filter(cards, term)
	if len(filtered) == 0 {
		return Snapshot{State: StateEmpty, Term: term, Message: MsgNoMatches}
	}

	b.rngMu.Lock()
	sel := Select(filtered, b.popularCount, b.dealsCount, b.rng)
	b.rngMu.Unlock()

	return Snapshot{State: StateReady, Term: term, Selection: sel}
}

// notify delivers s unless a newer Load has started since it was taken.
func (b *Board) notify(gen uint64, s Snapshot) {
	b.notifyMu.Lock()
	defer b.notifyMu.Unlock()

	b.mu.Lock()
	if gen != b.gen {
		b.mu.Unlock()
		return
	}
	fns := append([]func(Snapshot){}, b.listeners...)
	b.mu.Unlock()
	for _, fn := range fns {
		fn(s)
	}
}
