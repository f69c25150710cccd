package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"spinplex/internal/table"
	"spinplex/internal/terminal"
)

func newStylesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List frame sets and bar styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printStyles(cmd)
		},
	}
}

func (a *app) printStyles(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	caps, err := a.capabilities(out)
	if err != nil {
		return err
	}
	r := terminal.NewRenderer(out, caps)

	t := table.New(
		table.Column{Header: "Name"},
		table.Column{Header: "Kind"},
		table.Column{Header: "Interval", Align: table.AlignRight},
		table.Column{Header: "Sample", MaxWidth: 32},
		table.Column{Header: "End"},
	)

	for _, name := range a.catalog.Names() {
		fs, err := a.catalog.Lookup(name)
		if err != nil {
			return err
		}
		end := ""
		if f, ok := fs.End(); ok {
			end = f.Glyph
		}
		t.AddRow(name, "spinner", fs.Interval().String(), strings.Join(fs.Glyphs(), " "), end)
	}

	for _, name := range a.catalog.BarNames() {
		bar, err := a.catalog.LookupBar(name)
		if err != nil {
			return err
		}
		t.AddRow(name, "bar", "", bar.Body(nil, 6, 10), "")
	}

	style := table.DefaultStyle(r)
	style.HighlightColumn = 0
	return t.Print(out, style)
}
