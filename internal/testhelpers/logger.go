// Package testhelpers holds small constructors shared by tests.
package testhelpers

import (
	"io"
	"log/slog"

	"github.com/cropsage/cropsage/internal/logging"
)

// NewLogger creates a debug-level logger writing to logSink, typically
// io.Discard or a pipe the test watches.
func NewLogger(logSink io.Writer) *slog.Logger {
	handler := logging.NewContextHandler(slog.NewTextHandler(logSink, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	return slog.New(handler)
}
