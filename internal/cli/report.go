package cli

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/codex-k8s/cinotify/internal/ghoutput"
	"github.com/codex-k8s/cinotify/internal/slackapi"
)

// ReportFailure logs err and, on an Actions runner, marks the step failed
// with an ::error:: command written to w.
func ReportFailure(w io.Writer, logger *slog.Logger, err error) {
	attrs := []any{"error", err}
	var delivery *slackapi.DeliveryError
	if errors.As(err, &delivery) {
		attrs = append(attrs, "detail", delivery.Detail())
	}
	logger.Error("command failed", attrs...)

	if os.Getenv("GITHUB_ACTIONS") == "true" {
		ghoutput.Error(w, err.Error())
	}
}
