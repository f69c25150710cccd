package spinner

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"spinplex/internal/frames"
	"spinplex/internal/terminal"
)

const (
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
	restore    = "\x1b[u"
	clearDown  = "\x1b[0J"
)

var errWrite = errors.New("write failed")

// syncBuffer is an io.Writer the render goroutine and the test can share.
type syncBuffer struct {
	mu   sync.Mutex
	buf  bytes.Buffer
	fail bool
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fail {
		return 0, errWrite
	}
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) setFail(fail bool) {
	b.mu.Lock()
	b.fail = fail
	b.mu.Unlock()
}

// panicSurface panics on Write once armed.
type panicSurface struct {
	*terminal.ANSI
	armed atomic.Bool
}

func (p *panicSurface) Write(s string) {
	if p.armed.Load() {
		panic("boom")
	}
	p.ANSI.Write(s)
}

func testCaps(interactive bool, width int) terminal.Capabilities {
	return terminal.Capabilities{Interactive: interactive, Width: width, Profile: termenv.Ascii}
}

func newTestRegistry(t *testing.T, interactive bool, opts ...Option) (*Registry, *syncBuffer) {
	t.Helper()
	out := &syncBuffer{}
	surface := terminal.NewANSI(out, testCaps(interactive, 0))
	opts = append([]Option{
		WithSurface(surface),
		WithTick(2 * time.Millisecond),
		WithMaxIdle(5 * time.Millisecond),
	}, opts...)

	reg, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reg.Close() })
	return reg, out
}

func newQuietSurface() *terminal.ANSI {
	return terminal.NewANSI(io.Discard, testCaps(false, 0))
}

func testSet(glyphs ...string) *frames.FrameSet {
	return frames.MustFromGlyphs(3*time.Millisecond, glyphs)
}

// blocks splits interactive output into the bodies of each redraw.
func blocks(out string) []string {
	parts := strings.Split(out, restore+clearDown)
	if len(parts) <= 1 {
		return nil
	}
	bodies := parts[1:]
	for i, b := range bodies {
		b = strings.TrimSuffix(b, showCursor)
		bodies[i] = strings.TrimSuffix(b, "\n")
	}
	return bodies
}
