// Package catalog holds the named frame sets and bar styles that callers
// hand to the animation engine. The engine treats them as opaque values.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"spinplex/internal/frames"
)

// ErrUnknownStyle is returned when a name is not registered.
var ErrUnknownStyle = errors.New("unknown style")

// Catalog is a thread-safe set of named frame sets and bar styles.
type Catalog struct {
	mu   sync.RWMutex
	sets map[string]*frames.FrameSet
	bars map[string]frames.Bar
}

// New creates a catalog preloaded with the builtin styles.
func New() *Catalog {
	c := &Catalog{
		sets: make(map[string]*frames.FrameSet),
		bars: make(map[string]frames.Bar),
	}
	for name, fs := range builtinSets() {
		c.sets[name] = fs
	}
	for name, bar := range builtinBars() {
		c.bars[name] = bar
	}
	return c
}

// Register adds or replaces a frame set.
func (c *Catalog) Register(name string, fs *frames.FrameSet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets[name] = fs
}

// RegisterBar adds or replaces a bar style.
func (c *Catalog) RegisterBar(name string, bar frames.Bar) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bars[name] = bar
}

// Lookup returns the frame set registered under name.
func (c *Catalog) Lookup(name string) (*frames.FrameSet, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	fs, ok := c.sets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStyle, name)
	}
	return fs, nil
}

// LookupBar returns the bar style registered under name.
func (c *Catalog) LookupBar(name string) (frames.Bar, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	bar, ok := c.bars[name]
	if !ok {
		return frames.Bar{}, fmt.Errorf("%w: %s", ErrUnknownStyle, name)
	}
	return bar, nil
}

// Names returns the registered frame set names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedKeys(c.sets)
}

// BarNames returns the registered bar style names, sorted.
func (c *Catalog) BarNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedKeys(c.bars)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
