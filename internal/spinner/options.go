package spinner

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"spinplex/internal/terminal"
)

// Cadence selects how the render loop decides when an entity advances.
type Cadence int

const (
	// CadencePerEntity advances every spinner at its own frame set interval.
	// The loop sleeps until the nearest due spinner.
	CadencePerEntity Cadence = iota
	// CadenceShared advances every spinner once per fixed tick, picking frame
	// tick mod len(frames) regardless of the set's own interval.
	CadenceShared
)

func (c Cadence) String() string {
	if c == CadenceShared {
		return "shared"
	}
	return "per-entity"
}

// ParseCadence maps a config value to a Cadence.
func ParseCadence(s string) (Cadence, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "per-entity":
		return CadencePerEntity, nil
	case "shared":
		return CadenceShared, nil
	default:
		return CadencePerEntity, fmt.Errorf("invalid cadence %q (want per-entity or shared)", s)
	}
}

// Default loop timing.
const (
	DefaultTick    = 80 * time.Millisecond
	DefaultMaxIdle = 250 * time.Millisecond
)

type options struct {
	surface terminal.Surface
	logger  *slog.Logger
	cadence Cadence
	tick    time.Duration
	maxIdle time.Duration
	anchor  terminal.Anchor
	metrics *Metrics
}

// Option configures a Registry.
type Option func(*options)

// WithSurface sets the terminal surface. The default is stdout, probed for
// TTY and color support.
func WithSurface(s terminal.Surface) Option {
	return func(o *options) {
		o.surface = s
	}
}

// WithLogger sets the logger. Logs must not go to the animated stream.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithCadence selects the cadence model.
func WithCadence(c Cadence) Option {
	return func(o *options) {
		o.cadence = c
	}
}

// WithTick sets the shared tick. In per-entity mode it is the minimum gap
// between redraws triggered by mutations.
func WithTick(d time.Duration) Option {
	return func(o *options) {
		o.tick = d
	}
}

// WithMaxIdle bounds how long the per-entity loop sleeps when no spinner
// is due.
func WithMaxIdle(d time.Duration) Option {
	return func(o *options) {
		o.maxIdle = d
	}
}

// WithAnchor selects how the block is redrawn in place.
func WithAnchor(a terminal.Anchor) Option {
	return func(o *options) {
		o.anchor = a
	}
}

// WithMetrics records loop activity into m. Several registries may share
// one Metrics.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

func defaultOptions() options {
	return options{
		cadence: CadencePerEntity,
		tick:    DefaultTick,
		maxIdle: DefaultMaxIdle,
		anchor:  terminal.AnchorSaved,
	}
}
