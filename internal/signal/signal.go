// Package signal ties process lifetime to SIGINT and SIGTERM.
package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Signals are the signals that cancel the context passed to an action.
var Signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// RunWithContext calls action with a context that is cancelled when the
// process receives SIGINT or SIGTERM. The action is expected to return once
// the context is done so deferred cleanup (restoring the terminal) runs.
// A second signal is no longer caught and terminates the process.
func RunWithContext(action func(context.Context) error) error {
	return RunWithParent(context.Background(), action)
}

// RunWithParent is RunWithContext with an explicit parent context.
func RunWithParent(parent context.Context, action func(context.Context) error) error {
	ctx, stop := signal.NotifyContext(parent, Signals...)
	defer stop()

	go func() {
		<-ctx.Done()
		stop()
	}()

	return action(ctx)
}
