// Package cli implements the spinplex command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"spinplex/internal/catalog"
	"spinplex/internal/config"
	"spinplex/internal/logging"
	"spinplex/internal/printer"
	"spinplex/internal/spinner"
	"spinplex/internal/terminal"
)

// annotationStream marks commands that animate on stderr instead of stdout.
// Their logs fall back to io.Discard so they never interleave with the block.
const annotationStream = "spinplex/stream"

// app is the state shared by every subcommand once the root pre-run has
// loaded configuration.
type app struct {
	configPath string
	logLevel   string

	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
	catalog   *catalog.Catalog
	gatherer  *prometheus.Registry
	metrics   *spinner.Metrics
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{catalog: catalog.New()}

	root := &cobra.Command{
		Use:           "spinplex",
		Short:         "Concurrent terminal spinners and progress bars",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to config file (default "+config.DefaultConfigPath+" if present)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")

	root.AddCommand(
		newDemoCommand(a),
		newStylesCommand(a),
		newServeCommand(a),
		newExecCommand(a),
	)
	return root
}

// Execute runs the root command with ctx and reports errors on stderr.
func Execute(ctx context.Context) error {
	root := NewRootCommand()
	err := root.ExecuteContext(ctx)
	if err != nil {
		p := printer.New(root.ErrOrStderr(), terminal.NewRenderer(os.Stderr, terminal.Probe(os.Stderr, terminal.ModeAuto, terminal.ModeAuto)))
		p.Error("%v", err)
	}
	return err
}

func (a *app) setup(cmd *cobra.Command) error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.Load(a.configPath)
	} else {
		a.cfg, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		if _, err := logging.ParseLevel(a.logLevel); err != nil {
			return err
		}
		a.cfg.Log.Level = a.logLevel
	}

	fallback := cmd.ErrOrStderr()
	if cmd.Annotations[annotationStream] == "stderr" {
		fallback = io.Discard
	}
	a.logger, a.logCloser, err = logging.Open(a.cfg.Log, fallback)
	if err != nil {
		return err
	}

	if err := a.catalog.LoadDefs(a.cfg.FrameSets); err != nil {
		return fmt.Errorf("failed to load frame sets: %w", err)
	}
	a.gatherer = prometheus.NewRegistry()
	a.metrics = spinner.NewMetrics(a.gatherer)

	a.logger.Debug("configuration loaded",
		"config", a.configPath,
		"cadence", a.cfg.Render.Cadence,
		"frame_sets", len(a.cfg.FrameSets))
	return nil
}

func (a *app) teardown() error {
	if a.logCloser == nil {
		return nil
	}
	return a.logCloser.Close()
}

// capabilities probes out according to the configured interactive and
// color modes.
func (a *app) capabilities(out io.Writer) (terminal.Capabilities, error) {
	interactive, err := terminal.ParseMode(a.cfg.Render.Interactive)
	if err != nil {
		return terminal.Capabilities{}, fmt.Errorf("render.interactive: %w", err)
	}
	color, err := terminal.ParseMode(a.cfg.Color)
	if err != nil {
		return terminal.Capabilities{}, fmt.Errorf("color: %w", err)
	}
	return terminal.Probe(out, interactive, color), nil
}

// engineOptions translates configuration into registry options drawing on
// out. cadence overrides render.cadence when non-empty.
func (a *app) engineOptions(out io.Writer, cadence string) ([]spinner.Option, error) {
	if cadence == "" {
		cadence = a.cfg.Render.Cadence
	}
	c, err := spinner.ParseCadence(cadence)
	if err != nil {
		return nil, err
	}
	caps, err := a.capabilities(out)
	if err != nil {
		return nil, err
	}

	return []spinner.Option{
		spinner.WithSurface(terminal.NewANSI(out, caps)),
		spinner.WithLogger(a.logger),
		spinner.WithCadence(c),
		spinner.WithTick(a.cfg.Render.Tick),
		spinner.WithMaxIdle(a.cfg.Render.MaxIdle),
		spinner.WithAnchor(terminal.ParseAnchor(a.cfg.Render.Anchor)),
		spinner.WithMetrics(a.metrics),
	}, nil
}

// printer returns a status printer for w, colored per the color setting.
func (a *app) printer(w io.Writer) *printer.Printer {
	caps, err := a.capabilities(w)
	if err != nil {
		caps = terminal.Capabilities{Profile: termenv.Ascii}
	}
	return printer.New(w, terminal.NewRenderer(w, caps))
}
