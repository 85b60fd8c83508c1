// Package ghoutput writes step outputs and workflow commands for GitHub Actions.
package ghoutput

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Write appends outputs to the GITHUB_OUTPUT file when available.
func Write(values map[string]string) error {
	path := strings.TrimSpace(os.Getenv("GITHUB_OUTPUT"))
	if path == "" || len(values) == 0 {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	keys := make([]string, 0, len(values))
	for k := range values {
		if strings.TrimSpace(k) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, err := fmt.Fprintf(f, "%s=%s\n", key, escapeData(values[key])); err != nil {
			return err
		}
	}
	return nil
}

// Error emits an ::error:: workflow command, failing the step annotation.
func Error(w io.Writer, msg string) {
	command(w, "error", msg)
}

// Warning emits a ::warning:: workflow command.
func Warning(w io.Writer, msg string) {
	command(w, "warning", msg)
}

func command(w io.Writer, name, msg string) {
	_, _ = fmt.Fprintf(w, "::%s::%s\n", name, escapeData(msg))
}

// escapeData encodes characters the runner treats as command delimiters.
func escapeData(value string) string {
	value = strings.ReplaceAll(value, "%", "%25")
	value = strings.ReplaceAll(value, "\r", "%0D")
	value = strings.ReplaceAll(value, "\n", "%0A")
	return value
}
