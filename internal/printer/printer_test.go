package printer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func newPrinter(profile termenv.Profile) (*Printer, *bytes.Buffer) {
	var buf bytes.Buffer
	r := lipgloss.NewRenderer(&buf)
	r.SetColorProfile(profile)
	return New(&buf, r), &buf
}

func TestPrintPlain(t *testing.T) {
	tests := []struct {
		name  string
		print func(p *Printer)
		want  string
	}{
		{"info", func(p *Printer) { p.Info("loaded %d sets", 3) }, "info: loaded 3 sets\n"},
		{"success", func(p *Printer) { p.Success("finished") }, "done: finished\n"},
		{"warn", func(p *Printer) { p.Warn("slow") }, "warn: slow\n"},
		{"error", func(p *Printer) { p.Error("failed: %v", "io") }, "error: failed: io\n"},
		{"note", func(p *Printer) { p.Note("%s", "hint") }, "hint\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, buf := newPrinter(termenv.Ascii)
			tt.print(p)
			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintColored(t *testing.T) {
	p, buf := newPrinter(termenv.ANSI)
	p.Error("bad")

	out := buf.String()
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("expected escape sequences in %q", out)
	}
	if !strings.HasSuffix(out, ": bad\n") {
		t.Errorf("message body altered: %q", out)
	}
}
