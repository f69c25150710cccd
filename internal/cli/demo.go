package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"spinplex/internal/mcp"
	"spinplex/internal/printer"
	"spinplex/internal/spinner"
)

type demoOptions struct {
	spinners int
	bars     int
	duration time.Duration
	cadence  string
	viaMCP   bool
	stats    bool
}

// Workers take this many steps over the demo duration.
const (
	spinnerSteps = 5
	barSteps     = 20
	barGoal      = 100
)

func newDemoCommand(a *app) *cobra.Command {
	o := demoOptions{}
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Animate simulated workers",
		Long: `Starts one goroutine per spinner and per progress bar. Each worker
updates its entity while the render loop redraws the block.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDemo(cmd, o)
		},
	}

	f := cmd.Flags()
	f.IntVar(&o.spinners, "spinners", 3, "number of spinners")
	f.IntVar(&o.bars, "bars", 2, "number of progress bars")
	f.DurationVar(&o.duration, "duration", 3*time.Second, "how long each worker runs")
	f.StringVar(&o.cadence, "cadence", "", "override render.cadence (per-entity or shared)")
	f.BoolVar(&o.viaMCP, "via-mcp", false, "drive the registry through an in-process MCP session")
	f.BoolVar(&o.stats, "stats", false, "print render statistics when done")
	return cmd
}

func (a *app) runDemo(cmd *cobra.Command, o demoOptions) error {
	if o.spinners < 0 || o.bars < 0 {
		return fmt.Errorf("--spinners and --bars must not be negative")
	}
	if o.duration <= 0 {
		return fmt.Errorf("--duration must be positive, got %v", o.duration)
	}

	opts, err := a.engineOptions(cmd.OutOrStdout(), o.cadence)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	err = spinner.Run(func(reg *spinner.Registry) error {
		var d driver = &directDriver{
			reg:      reg,
			catalog:  a.catalog,
			barStyle: a.cfg.Bar.Style,
			barWidth: a.cfg.Bar.Width,
		}
		if o.viaMCP {
			s, err := mcp.Connect(ctx, mcp.NewServer(mcp.DefaultToolRegistry, &mcp.Deps{
				Registry: reg,
				Catalog:  a.catalog,
				BarStyle: a.cfg.Bar.Style,
				BarWidth: a.cfg.Bar.Width,
			}))
			if err != nil {
				return err
			}
			defer s.Close()
			d = &sessionDriver{s: s}
		}
		return a.drive(ctx, d, o)
	}, opts...)

	p := a.printer(cmd.ErrOrStderr())
	switch {
	case errors.Is(err, context.Canceled):
		p.Warn("interrupted")
		return nil
	case err != nil:
		return err
	}
	if o.stats {
		a.printStats(p)
	}
	return nil
}

// drive adds every entity up front so ids follow flag order, then runs one
// worker per entity.
func (a *app) drive(ctx context.Context, d driver, o demoOptions) error {
	styles := a.catalog.Names()
	g, ctx := errgroup.WithContext(ctx)

	for i := range o.spinners {
		style := styles[i%len(styles)]
		id, err := d.AddSpinner(ctx, style, fmt.Sprintf("spinner %d (%s): starting", i+1, style))
		if err != nil {
			return err
		}
		g.Go(func() error {
			return spinnerWorker(ctx, d, id, i+1, o.duration)
		})
	}

	for i := range o.bars {
		id, err := d.AddProgress(ctx, barGoal, fmt.Sprintf("bar %d", i+1))
		if err != nil {
			return err
		}
		g.Go(func() error {
			return barWorker(ctx, d, id, i+1, o.duration)
		})
	}

	a.logger.Info("demo started", "spinners", o.spinners, "bars", o.bars, "duration", o.duration)
	return g.Wait()
}

func spinnerWorker(ctx context.Context, d driver, id spinner.ID, n int, total time.Duration) error {
	step := total / spinnerSteps
	for k := 1; k <= spinnerSteps; k++ {
		if err := sleep(ctx, step); err != nil {
			return err
		}
		if err := d.SetText(ctx, id, fmt.Sprintf("spinner %d: step %d/%d", n, k, spinnerSteps)); err != nil {
			return err
		}
	}
	if err := d.SetText(ctx, id, fmt.Sprintf("spinner %d done", n)); err != nil {
		return err
	}
	return d.Stop(ctx, id)
}

func barWorker(ctx context.Context, d driver, id spinner.ID, n int, total time.Duration) error {
	step := total / barSteps
	for k := 1; k <= barSteps; k++ {
		if err := sleep(ctx, step); err != nil {
			return err
		}
		if err := d.SetValue(ctx, id, k*barGoal/barSteps); err != nil {
			return err
		}
	}
	if err := d.SetText(ctx, id, fmt.Sprintf("bar %d complete", n)); err != nil {
		return err
	}
	return d.Stop(ctx, id)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (a *app) printStats(p *printer.Printer) {
	families, err := a.gatherer.Gather()
	if err != nil {
		a.logger.Warn("failed to gather metrics", "error", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				p.Info("%s %.0f", mf.GetName(), m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				p.Info("%s %.0f", mf.GetName(), m.GetGauge().GetValue())
			}
		}
	}
}
