package branchless

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

var logger = slog.Default()

// SetLogger replaces the logger used by this package. The default is
// [slog.Default].
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// errorf wraps with [fmt.Errorf], except context cancellations, which are
// passed through untouched so callers can still detect them with errors.Is.
func errorf(err error, format string, args ...any) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	return fmt.Errorf(format, args...)
}
