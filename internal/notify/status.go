// Package notify builds Slack notifications describing a CI run.
package notify

import (
	"fmt"
	"strings"
)

// Status is the outcome of the job being reported.
type Status string

const (
	// StatusSuccess reports a job that finished successfully.
	StatusSuccess Status = "success"
	// StatusFailure reports a job that failed.
	StatusFailure Status = "failure"
	// StatusCancelled reports a job that was cancelled.
	StatusCancelled Status = "cancelled"
)

// Accessory is the colour and label attached to a notification for a status.
type Accessory struct {
	// Color is the attachment side bar colour as a hex string.
	Color string
	// Label is appended to the job name in the headline.
	Label string
}

var accessories = map[Status]Accessory{
	StatusSuccess:   {Color: "#2cbe4e", Label: "Succeeded"},
	StatusFailure:   {Color: "#cb2431", Label: "Failed"},
	StatusCancelled: {Color: "#ffc107", Label: "Cancelled"},
}

// UnknownStatusError is returned when a status is outside success/failure/cancelled.
type UnknownStatusError struct {
	Value string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown job status %q, expected one of success, failure, cancelled", e.Value)
}

// ParseStatus normalizes value and maps it onto a known Status.
func ParseStatus(value string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := accessories[s]; !ok {
		return "", &UnknownStatusError{Value: value}
	}
	return s, nil
}

// Accessory returns the display accessory for s.
func (s Status) Accessory() (Accessory, error) {
	a, ok := accessories[s]
	if !ok {
		return Accessory{}, &UnknownStatusError{Value: string(s)}
	}
	return a, nil
}

func (s Status) String() string {
	return string(s)
}
