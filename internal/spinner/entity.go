package spinner

import (
	"strings"
	"sync"

	"spinplex/internal/frames"
)

// ID identifies an entity within its Registry. IDs start at 1 and are never
// reused for the lifetime of the Registry.
type ID uint64

// Kind discriminates the two entity variants.
type Kind int

const (
	// KindSpinner cycles through a frame set.
	KindSpinner Kind = iota
	// KindProgress derives its frame from current/goal.
	KindProgress
)

func (k Kind) String() string {
	switch k {
	case KindSpinner:
		return "spinner"
	case KindProgress:
		return "progress"
	default:
		return "unknown"
	}
}

// Spec describes an entity to add. Build one with SpinnerSpec or
// ProgressSpec.
type Spec struct {
	kind Kind
	set  *frames.FrameSet
	bar  frames.Bar
	goal int
	size int
	text string
}

// SpinnerSpec describes a spinner cycling through fs with the given label.
func SpinnerSpec(fs *frames.FrameSet, text string) Spec {
	return Spec{kind: KindSpinner, set: fs, text: text}
}

// ProgressSpec describes a progress bar of size cells filling towards goal.
// Negative goal and size are treated as zero.
func ProgressSpec(goal, size int, text string, bar frames.Bar) Spec {
	return Spec{
		kind: KindProgress,
		bar:  bar,
		goal: max(goal, 0),
		size: max(size, 0),
		text: text,
	}
}

// WithFrames attaches a frame set to a progress spec. Its end frame is
// shown in front of the label once the bar stops.
func (s Spec) WithFrames(fs *frames.FrameSet) Spec {
	s.set = fs
	return s
}

// Kind returns the entity kind the spec creates.
func (s Spec) Kind() Kind {
	return s.kind
}

// entity is the mutable state of one spinner or progress bar. The immutable
// fields are set once in newEntity; everything below mu is guarded by it.
type entity struct {
	id   ID
	kind Kind
	set  *frames.FrameSet
	bar  frames.Bar
	size int
	goal int

	mu      sync.Mutex
	text    string
	stopped bool
	removed bool
	current int
}

func newEntity(id ID, spec Spec) *entity {
	return &entity{
		id:   id,
		kind: spec.kind,
		set:  spec.set,
		bar:  spec.bar,
		size: spec.size,
		goal: spec.goal,
		text: sanitize(spec.text),
	}
}

func (e *entity) setText(text string) {
	text = sanitize(text)
	e.mu.Lock()
	e.text = text
	e.mu.Unlock()
}

// setValue stores min(v, goal), floored at zero. It still applies after
// stop; a stopped bar only renders its label regardless.
func (e *entity) setValue(v int) {
	if e.kind != KindProgress {
		return
	}
	v = min(max(v, 0), e.goal)
	e.mu.Lock()
	e.current = v
	e.mu.Unlock()
}

// stop reports whether this call flipped the flag.
func (e *entity) stop() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return false
	}
	e.stopped = true
	return true
}

// remove marks the entity as gone and reports whether it was still running.
func (e *entity) remove() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	running := !e.stopped && !e.removed
	e.removed = true
	return running
}

// snapshot is a consistent copy of one entity taken under its lock.
type snapshot struct {
	id      ID
	kind    Kind
	set     *frames.FrameSet
	bar     frames.Bar
	size    int
	goal    int
	text    string
	stopped bool
	current int
}

// snapshot returns false once the entity has been removed, so a tick that
// raced with Remove skips it.
func (e *entity) snapshot() (snapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed {
		return snapshot{}, false
	}
	return snapshot{
		id:      e.id,
		kind:    e.kind,
		set:     e.set,
		bar:     e.bar,
		size:    e.size,
		goal:    e.goal,
		text:    e.text,
		stopped: e.stopped,
		current: e.current,
	}, true
}

// sanitize keeps a label on a single line so the block height stays equal
// to the entity count.
func sanitize(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
