package cli

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"spinplex/internal/spinner"
)

type execOptions struct {
	style string
	text  string
}

func newExecCommand(a *app) *cobra.Command {
	o := execOptions{}
	cmd := &cobra.Command{
		Use:   "exec [flags] -- command [args...]",
		Short: "Show a spinner on stderr while a command runs",
		Long: `Runs the command with its output captured. A single spinner animates
on stderr until the command exits; the captured output is then copied to
stdout.`,
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{annotationStream: "stderr"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExec(cmd, o, args)
		},
	}

	cmd.Flags().StringVar(&o.style, "style", "dots", "frame set name")
	cmd.Flags().StringVar(&o.text, "text", "", "label (default: the command line)")
	return cmd
}

func (a *app) runExec(cmd *cobra.Command, o execOptions, args []string) error {
	fs, err := a.catalog.Lookup(o.style)
	if err != nil {
		return err
	}
	opts, err := a.engineOptions(cmd.ErrOrStderr(), "")
	if err != nil {
		return err
	}

	text := o.text
	if text == "" {
		text = strings.Join(args, " ")
	}

	var output bytes.Buffer
	var runErr error
	err = spinner.WithSolo(fs, text, func(s *spinner.Solo) error {
		c := exec.CommandContext(cmd.Context(), args[0], args[1:]...)
		c.Stdout = &output
		c.Stderr = &output
		c.Stdin = cmd.InOrStdin()

		start := time.Now()
		runErr = c.Run()
		elapsed := time.Since(start).Round(time.Millisecond)
		if runErr != nil {
			s.SetText(fmt.Sprintf("%s failed after %v: %v", text, elapsed, runErr))
		} else {
			s.SetText(fmt.Sprintf("%s (%v)", text, elapsed))
		}
		a.logger.Debug("command finished", "args", args, "elapsed", elapsed, "error", runErr)
		return nil
	}, opts...)
	if err != nil {
		return err
	}

	if _, err := cmd.OutOrStdout().Write(output.Bytes()); err != nil {
		return err
	}
	return runErr
}
