package logging

import (
	"log/slog"
	"strings"
)

// Writer is an io.Writer that forwards third-party log lines to slog at debug level.
type Writer struct {
	logger *slog.Logger
	msg    string
}

// NewWriter constructs a Writer bound to logger; msg is the record message for every line.
func NewWriter(logger *slog.Logger, msg string) *Writer {
	return &Writer{logger: logger, msg: msg}
}

// Write logs each non-empty line of p as a separate record.
func (w *Writer) Write(p []byte) (int, error) {
	if w.logger == nil {
		return len(p), nil
	}
	for _, line := range strings.Split(string(p), "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			w.logger.Debug(w.msg, "line", line)
		}
	}
	return len(p), nil
}
