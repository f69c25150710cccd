package spinner

import (
	"time"

	"spinplex/internal/frames"
)

// pace is the per-entity cadence state.
type pace struct {
	step int
	due  time.Time
}

// cadenceState decides which frame each spinner shows. It is owned by the
// render goroutine and, once that exits, by Close.
type cadenceState struct {
	mode    Cadence
	tick    time.Duration
	maxIdle time.Duration

	// shared mode
	counter    int
	nextShared time.Time

	// per-entity mode
	paces map[ID]*pace
}

func newCadenceState(mode Cadence, tick, maxIdle time.Duration) *cadenceState {
	return &cadenceState{
		mode:    mode,
		tick:    tick,
		maxIdle: maxIdle,
		paces:   make(map[ID]*pace),
	}
}

// advance moves due spinners forward at now and returns how long the loop
// may sleep before the next one is due.
func (c *cadenceState) advance(now time.Time, snaps []snapshot) time.Duration {
	if c.mode == CadenceShared {
		return c.advanceShared(now)
	}
	return c.advancePerEntity(now, snaps)
}

func (c *cadenceState) advanceShared(now time.Time) time.Duration {
	switch {
	case c.nextShared.IsZero():
		c.nextShared = now.Add(c.tick)
	case !now.Before(c.nextShared):
		c.counter++
		c.nextShared = c.nextShared.Add(c.tick)
		if !c.nextShared.After(now) {
			c.nextShared = now.Add(c.tick)
		}
	}
	return c.nextShared.Sub(now)
}

func (c *cadenceState) advancePerEntity(now time.Time, snaps []snapshot) time.Duration {
	wait := c.maxIdle
	seen := make(map[ID]struct{}, len(snaps))

	for _, s := range snaps {
		if s.kind != KindSpinner || s.stopped {
			continue
		}
		seen[s.id] = struct{}{}
		interval := s.set.Interval()

		p, ok := c.paces[s.id]
		switch {
		case !ok:
			p = &pace{due: now.Add(interval)}
			c.paces[s.id] = p
		case !now.Before(p.due):
			p.step++
			p.due = p.due.Add(interval)
			if !p.due.After(now) {
				// Fell behind; skip frames rather than replaying them.
				p.due = now.Add(interval)
			}
		}
		wait = min(wait, p.due.Sub(now))
	}

	for id := range c.paces {
		if _, ok := seen[id]; !ok {
			delete(c.paces, id)
		}
	}
	return max(wait, 0)
}

// frames picks the current frame of each running spinner without advancing.
// Entries for progress bars and stopped entities are left zero.
func (c *cadenceState) frames(snaps []snapshot) []frames.Frame {
	out := make([]frames.Frame, len(snaps))

	if c.mode == CadenceShared {
		seqs := make([][]frames.Frame, len(snaps))
		for i, s := range snaps {
			if s.kind == KindSpinner && !s.stopped {
				seqs[i] = s.set.Frames()
			}
		}
		for i, choice := range frames.BalancedIndex(c.counter, seqs) {
			if choice.OK {
				out[i] = choice.Value
			}
		}
		return out
	}

	for i, s := range snaps {
		if s.kind != KindSpinner || s.stopped {
			continue
		}
		step := 0
		if p, ok := c.paces[s.id]; ok {
			step = p.step
		}
		out[i] = s.set.At(step)
	}
	return out
}
