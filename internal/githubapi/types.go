package githubapi

import (
	"fmt"
	"net/http"
)

// LookupError reports a failed commit lookup.
type LookupError struct {
	Owner string
	Repo  string
	Ref   string
	// StatusCode is the HTTP status GitHub answered with, zero on transport errors.
	StatusCode int
	Err        error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("fetch commit %s of %s/%s: %v", e.Ref, e.Owner, e.Repo, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// NotFound reports whether GitHub did not know the repository or ref.
func (e *LookupError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}
