package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"spinplex/internal/mcp"
	_ "spinplex/internal/mcp/builtin"
	"spinplex/internal/spinner"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the registry as MCP tools on stdio",
		Long: `Runs an MCP server on stdin/stdout. Entities created through the tools
are animated on stderr, so the protocol stream stays clean.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationStream: "stderr"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func (a *app) serve(ctx context.Context, in io.Reader, out, animate io.Writer) error {
	opts, err := a.engineOptions(animate, "")
	if err != nil {
		return err
	}

	return spinner.Run(func(reg *spinner.Registry) error {
		srv := mcp.NewServer(mcp.DefaultToolRegistry, &mcp.Deps{
			Registry: reg,
			Catalog:  a.catalog,
			BarStyle: a.cfg.Bar.Style,
			BarWidth: a.cfg.Bar.Width,
		})

		a.logger.Info("serving MCP on stdio", "tools", mcp.DefaultToolRegistry.Count())
		err := mcp.ServeStdio(ctx, srv, in, out, a.logger)
		if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}, opts...)
}
