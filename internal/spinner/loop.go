package spinner

import (
	"context"
	"fmt"
	"time"
)

// run is the render goroutine. It redraws when the nearest spinner is due,
// and shortly after a mutation, until the context is cancelled.
func (r *Registry) run(ctx context.Context) {
	defer close(r.done)

	timer := time.NewTimer(0)
	defer timer.Stop()
	next := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.wake:
			// Redraw for the mutation, but no sooner than one tick after the
			// last draw.
			at := r.lastDraw.Add(r.opts.tick)
			if at.Before(next) {
				next = at
				timer.Reset(time.Until(at))
			}
		case now := <-timer.C:
			wait, err := r.safeTick(now)
			if err != nil {
				r.fail(err)
				return
			}
			next = now.Add(wait)
			timer.Reset(wait)
		}
	}
}

// safeTick runs one tick, converting a panic into ErrLoopFailed so it never
// escapes the background goroutine.
func (r *Registry) safeTick(now time.Time) (wait time.Duration, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%w: %v", ErrLoopFailed, v)
		}
	}()
	return r.tick(now), nil
}

// tick advances the cadence and redraws the block in one batched write. A
// failed write skips the tick; the next one redraws from scratch.
func (r *Registry) tick(now time.Time) time.Duration {
	if !r.surface.Capabilities().Interactive {
		return r.opts.maxIdle
	}

	snaps := r.snapshot()
	wait := r.cadence.advance(now, snaps)
	lines := r.lines(snaps)

	if err := r.block.Draw(lines); err != nil {
		r.metrics.WriteFailures.Inc()
		r.dropped++
		if r.warn.Allow() {
			r.logger.Warn("terminal write failed, skipping tick", "error", err, "skipped", r.dropped)
			r.dropped = 0
		}
		return wait
	}

	r.lastDraw = now
	r.metrics.Ticks.Inc()
	return wait
}

func (r *Registry) lines(snaps []snapshot) []string {
	current := r.cadence.frames(snaps)
	lines := make([]string, len(snaps))
	for i, s := range snaps {
		lines[i] = r.compose.line(s, current[i])
	}
	return lines
}

// fail records the loop failure and gives the terminal back.
func (r *Registry) fail(err error) {
	r.failMu.Lock()
	r.failure = err
	r.failMu.Unlock()

	r.logger.Error("render loop stopped", "error", err)
	if cerr := r.block.Close(nil); cerr != nil {
		r.logger.Error("failed to restore terminal", "error", cerr)
	}
}
