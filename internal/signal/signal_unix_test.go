//go:build unix

package signal

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"
)

func TestSignalCancelsContext(t *testing.T) {
	err := RunWithContext(func(ctx context.Context) error {
		if err := syscall.Kill(syscall.Getpid(), syscall.SIGTERM); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(2 * time.Second):
			return errors.New("SIGTERM did not cancel the context")
		}
	})
	if err != nil {
		t.Error(err)
	}
}
