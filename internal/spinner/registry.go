// Package spinner is the concurrent animation engine: a registry of
// spinners and progress bars, a background render loop that redraws them as
// one block, and the lifecycle that leaves the terminal clean afterwards.
//
// Callers never hold entities directly. Add returns an ID and every other
// operation takes one. Mutations on an unknown ID are silently ignored:
// a caller racing Remove or holding a stale ID gets a no-op rather than an
// error to handle on every progress update. Use the read accessors when the
// distinction matters.
package spinner

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"spinplex/internal/terminal"
)

// Errors returned by Registry operations.
var (
	ErrClosed      = errors.New("registry is closed")
	ErrEmpty       = errors.New("registry has no entities")
	ErrInvalidSpec = errors.New("spinner spec requires a frame set")
	ErrLoopFailed  = errors.New("render loop failed")
)

// Registry owns a set of animated entities and the goroutine drawing them.
// All methods are safe for concurrent use.
type Registry struct {
	nextID atomic.Uint64

	mu       sync.RWMutex
	entities map[ID]*entity
	order    []ID
	last     ID

	opts    options
	logger  *slog.Logger
	metrics *Metrics

	surface  terminal.Surface
	block    *terminal.Block
	compose  composer
	cadence  *cadenceState
	warn     *rate.Limiter
	dropped  int
	lastDraw time.Time

	wake   chan struct{}
	cancel context.CancelFunc
	done   chan struct{}

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error

	failMu  sync.Mutex
	failure error
}

// Info is a read-only view of one entity.
type Info struct {
	ID      ID
	Kind    Kind
	Text    string
	Stopped bool
	Current int
	Goal    int
	Style   string
}

// Add inserts a new entity and returns its ID. It fails only once the
// registry is closed, after the render loop has failed, or for a spinner
// spec without a frame set.
func (r *Registry) Add(spec Spec) (ID, error) {
	if err := r.Err(); err != nil {
		return 0, err
	}
	if r.closed.Load() {
		return 0, ErrClosed
	}
	if spec.kind == KindSpinner && spec.set == nil {
		return 0, ErrInvalidSpec
	}

	id := ID(r.nextID.Add(1))
	e := newEntity(id, spec)

	r.mu.Lock()
	r.entities[id] = e
	r.order = append(r.order, id)
	r.last = max(r.last, id)
	r.mu.Unlock()

	r.metrics.Added.Inc()
	r.metrics.Active.Inc()
	r.logger.Debug("entity added", "id", id, "kind", spec.kind)
	r.poke()
	return id, nil
}

// SetText replaces the label of id. Stopped entities keep accepting labels.
func (r *Registry) SetText(id ID, text string) {
	if e := r.get(id); e != nil {
		e.setText(text)
		r.poke()
	}
}

// SetValue sets a progress bar to min(v, goal). It is a no-op for spinners.
func (r *Registry) SetValue(id ID, v int) {
	if e := r.get(id); e != nil && e.kind == KindProgress {
		e.setValue(v)
		r.poke()
	}
}

// Stop freezes id on its final label. It is idempotent.
func (r *Registry) Stop(id ID) {
	e := r.get(id)
	if e == nil {
		return
	}
	if e.stop() {
		r.metrics.Active.Dec()
		r.logger.Debug("entity stopped", "id", id)
	}
	r.poke()
}

// Remove deletes id so the next tick no longer draws it. Stopping is the
// usual way to finish an entity; Remove is for lines that should vanish.
func (r *Registry) Remove(id ID) {
	r.mu.Lock()
	e, ok := r.entities[id]
	if ok {
		delete(r.entities, id)
		if i := slices.Index(r.order, id); i >= 0 {
			r.order = slices.Delete(r.order, i, i+1)
		}
	}
	r.mu.Unlock()

	if !ok {
		return
	}
	if e.remove() {
		r.metrics.Active.Dec()
	}
	r.logger.Debug("entity removed", "id", id)
	r.poke()
}

// Last returns the most recently allocated ID.
func (r *Registry) Last() (ID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.last == 0 {
		return 0, ErrEmpty
	}
	return r.last, nil
}

// Info returns a view of id.
func (r *Registry) Info(id ID) (Info, bool) {
	e := r.get(id)
	if e == nil {
		return Info{}, false
	}
	s, ok := e.snapshot()
	if !ok {
		return Info{}, false
	}
	return s.info(), true
}

// Value returns the current and goal values of a progress bar.
func (r *Registry) Value(id ID) (current, goal int, ok bool) {
	info, ok := r.Info(id)
	if !ok || info.Kind != KindProgress {
		return 0, 0, false
	}
	return info.Current, info.Goal, true
}

// Text returns the label of id.
func (r *Registry) Text(id ID) (string, bool) {
	info, ok := r.Info(id)
	return info.Text, ok
}

// Stopped reports whether id has been stopped. Unknown IDs report false.
func (r *Registry) Stopped(id ID) bool {
	info, ok := r.Info(id)
	return ok && info.Stopped
}

// Len returns the number of entities.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entities)
}

// IDs returns entity IDs in insertion order.
func (r *Registry) IDs() []ID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// List returns a view of every entity in insertion order.
func (r *Registry) List() []Info {
	snaps := r.snapshot()
	out := make([]Info, len(snaps))
	for i, s := range snaps {
		out[i] = s.info()
	}
	return out
}

// Err returns the render loop failure, if any.
func (r *Registry) Err() error {
	r.failMu.Lock()
	defer r.failMu.Unlock()
	return r.failure
}

func (r *Registry) get(id ID) *entity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entities[id]
}

// snapshot copies the entity list under the read lock, then copies each
// entity under its own lock. Entities removed in between are skipped.
func (r *Registry) snapshot() []snapshot {
	r.mu.RLock()
	list := make([]*entity, 0, len(r.order))
	for _, id := range r.order {
		list = append(list, r.entities[id])
	}
	r.mu.RUnlock()

	snaps := make([]snapshot, 0, len(list))
	for _, e := range list {
		if s, ok := e.snapshot(); ok {
			snaps = append(snaps, s)
		}
	}
	return snaps
}

// poke wakes the render loop without blocking.
func (r *Registry) poke() {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

func (s snapshot) info() Info {
	info := Info{
		ID:      s.id,
		Kind:    s.kind,
		Text:    s.text,
		Stopped: s.stopped,
		Current: s.current,
		Goal:    s.goal,
	}
	if s.set != nil {
		info.Style = s.set.Name()
	}
	return info
}
