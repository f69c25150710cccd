package spinner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"spinplex/internal/logging"
	"spinplex/internal/terminal"
)

// New creates a Registry, prepares the terminal (hide the cursor, anchor
// the block, clear below it) and starts the render goroutine. Callers must
// call Close.
func New(opts ...Option) (*Registry, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.tick <= 0 {
		return nil, fmt.Errorf("tick must be positive, got %v", o.tick)
	}
	if o.maxIdle <= 0 {
		return nil, fmt.Errorf("max idle must be positive, got %v", o.maxIdle)
	}
	if o.surface == nil {
		caps := terminal.Probe(os.Stdout, terminal.ModeAuto, terminal.ModeAuto)
		o.surface = terminal.NewANSI(os.Stdout, caps)
	}
	if o.logger == nil {
		o.logger = logging.Discard()
	}
	if o.metrics == nil {
		o.metrics = NewMetrics(nil)
	}

	caps := o.surface.Capabilities()
	r := &Registry{
		entities: make(map[ID]*entity),
		opts:     o,
		logger:   o.logger.With("registry", uuid.NewString()),
		metrics:  o.metrics,
		surface:  o.surface,
		block:    terminal.NewBlock(o.surface, o.anchor),
		compose:  composer{r: o.surface.Renderer(), width: caps.Width},
		cadence:  newCadenceState(o.cadence, o.tick, o.maxIdle),
		warn:     rate.NewLimiter(rate.Every(time.Second), 1),
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}

	if err := r.block.Open(); err != nil {
		return nil, fmt.Errorf("failed to prepare terminal: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	go r.run(ctx)

	r.logger.Debug("registry started",
		"cadence", o.cadence,
		"tick", o.tick,
		"interactive", caps.Interactive,
		"width", caps.Width)
	return r, nil
}

// Close stops the render loop, waits for it to exit, draws the final state
// once, shows the cursor and moves below the block. It is idempotent and
// returns the loop failure if the loop died.
func (r *Registry) Close() error {
	r.closeOnce.Do(func() {
		r.closed.Store(true)
		r.cancel()
		<-r.done
		r.closeErr = r.finish()
	})
	return r.closeErr
}

// finish runs after the loop has exited, so it owns the block.
func (r *Registry) finish() (err error) {
	running := 0
	for _, s := range r.snapshot() {
		if !s.stopped {
			running++
		}
	}
	r.metrics.Active.Sub(float64(running))

	if ferr := r.Err(); ferr != nil {
		// The loop already restored the terminal.
		return ferr
	}

	defer func() {
		if v := recover(); v != nil {
			_ = r.block.Close(nil)
			err = fmt.Errorf("%w: final render: %v", ErrLoopFailed, v)
		}
	}()

	if err := r.block.Close(r.lines(r.snapshot())); err != nil {
		return fmt.Errorf("failed to restore terminal: %w", err)
	}
	r.logger.Debug("registry closed", "entities", r.Len())
	return nil
}

// Run creates a Registry, passes it to fn and closes it on every path.
func Run(fn func(*Registry) error, opts ...Option) error {
	r, err := New(opts...)
	if err != nil {
		return err
	}
	defer func() {
		// Close runs even if fn panics; the panic keeps propagating.
		_ = r.Close()
	}()

	ferr := fn(r)
	return errors.Join(ferr, r.Close())
}
