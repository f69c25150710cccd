package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode is a tri-state switch used for interactivity and color.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeAlways Mode = "always"
	ModeNever  Mode = "never"
)

// ParseMode parses a Mode, treating the empty string as ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeAlways, ModeNever:
		return m, nil
	default:
		return "", fmt.Errorf("invalid mode %q (want auto, always or never)", s)
	}
}

// Capabilities describes what the output stream can do. It is computed once
// at startup and passed down explicitly.
type Capabilities struct {
	// Interactive enables cursor control and animation.
	Interactive bool
	// Width is the terminal width in columns, 0 if unknown.
	Width int
	// Profile is the color profile used for styling.
	Profile termenv.Profile
}

// fdWriter is satisfied by *os.File.
type fdWriter interface {
	Fd() uintptr
}

// Probe inspects out and resolves the interactive and color modes into
// Capabilities.
func Probe(out io.Writer, interactive, color Mode) Capabilities {
	isTTY := false
	width := 0
	if f, ok := out.(fdWriter); ok {
		fd := int(f.Fd())
		isTTY = term.IsTerminal(fd)
		if isTTY {
			if w, _, err := term.GetSize(fd); err == nil {
				width = w
			}
		}
	}

	caps := Capabilities{
		Interactive: resolve(interactive, isTTY),
		Width:       width,
		Profile:     termenv.Ascii,
	}

	switch color {
	case ModeNever:
	case ModeAlways:
		caps.Profile = termenv.NewOutput(out, termenv.WithTTY(true)).EnvColorProfile()
		if caps.Profile == termenv.Ascii {
			caps.Profile = termenv.ANSI256
		}
	default:
		if isTTY {
			caps.Profile = termenv.NewOutput(out).EnvColorProfile()
		}
	}
	return caps
}

func resolve(m Mode, auto bool) bool {
	switch m {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	default:
		return auto
	}
}
