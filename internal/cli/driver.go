package cli

import (
	"context"
	"fmt"
	"strconv"

	"spinplex/internal/catalog"
	"spinplex/internal/mcp"
	"spinplex/internal/spinner"
)

// driver is what demo workers use to manipulate entities. It is backed
// either by a registry directly or by an MCP session in front of one.
type driver interface {
	AddSpinner(ctx context.Context, style, text string) (spinner.ID, error)
	AddProgress(ctx context.Context, goal int, text string) (spinner.ID, error)
	SetText(ctx context.Context, id spinner.ID, text string) error
	SetValue(ctx context.Context, id spinner.ID, value int) error
	Stop(ctx context.Context, id spinner.ID) error
}

type directDriver struct {
	reg      *spinner.Registry
	catalog  *catalog.Catalog
	barStyle string
	barWidth int
}

func (d *directDriver) AddSpinner(_ context.Context, style, text string) (spinner.ID, error) {
	fs, err := d.catalog.Lookup(style)
	if err != nil {
		return 0, err
	}
	return d.reg.Add(spinner.SpinnerSpec(fs, text))
}

func (d *directDriver) AddProgress(_ context.Context, goal int, text string) (spinner.ID, error) {
	bar, err := d.catalog.LookupBar(d.barStyle)
	if err != nil {
		return 0, err
	}
	return d.reg.Add(spinner.ProgressSpec(goal, d.barWidth, text, bar))
}

func (d *directDriver) SetText(_ context.Context, id spinner.ID, text string) error {
	d.reg.SetText(id, text)
	return nil
}

func (d *directDriver) SetValue(_ context.Context, id spinner.ID, value int) error {
	d.reg.SetValue(id, value)
	return nil
}

func (d *directDriver) Stop(_ context.Context, id spinner.ID) error {
	d.reg.Stop(id)
	return nil
}

// sessionDriver routes every operation through MCP tool calls.
type sessionDriver struct {
	s *mcp.Session
}

func (d *sessionDriver) add(ctx context.Context, tool string, args map[string]any) (spinner.ID, error) {
	out, err := d.s.Call(ctx, tool, args)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(out, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s returned a malformed id %q: %w", tool, out, err)
	}
	return spinner.ID(id), nil
}

func (d *sessionDriver) AddSpinner(ctx context.Context, style, text string) (spinner.ID, error) {
	return d.add(ctx, "add_spinner", map[string]any{"style": style, "text": text})
}

func (d *sessionDriver) AddProgress(ctx context.Context, goal int, text string) (spinner.ID, error) {
	return d.add(ctx, "add_progress", map[string]any{"goal": goal, "text": text})
}

func (d *sessionDriver) SetText(ctx context.Context, id spinner.ID, text string) error {
	_, err := d.s.Call(ctx, "set_text", map[string]any{"id": int(id), "text": text})
	return err
}

func (d *sessionDriver) SetValue(ctx context.Context, id spinner.ID, value int) error {
	_, err := d.s.Call(ctx, "set_value", map[string]any{"id": int(id), "value": value})
	return err
}

func (d *sessionDriver) Stop(ctx context.Context, id spinner.ID) error {
	_, err := d.s.Call(ctx, "stop", map[string]any{"id": int(id)})
	return err
}
