// Package slackapi delivers composed notifications to Slack.
package slackapi

import (
	"context"
	"fmt"

	"github.com/codex-k8s/cinotify/internal/notify"
)

// DeliveryFailedMessage is the fixed diagnostic reported for any delivery failure.
const DeliveryFailedMessage = "Failed to post message to Slack"

// Sender posts a payload to Slack exactly once.
type Sender interface {
	Send(ctx context.Context, payload notify.Payload) error
	// Transport names the delivery route, e.g. "webhook" or "chat".
	Transport() string
}

// DeliveryError reports that Slack rejected or never received a payload.
type DeliveryError struct {
	// Transport is the route that failed.
	Transport string
	// StatusCode is the HTTP status when one was received.
	StatusCode int
	// Response is the raw acknowledgment body or the platform error code.
	Response string
	// Err is the underlying transport error, if any.
	Err error
}

func (e *DeliveryError) Error() string {
	return DeliveryFailedMessage
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Detail describes the failure for logs.
func (e *DeliveryError) Detail() string {
	switch {
	case e.Err != nil && e.Response != "":
		return fmt.Sprintf("%s: %s (%v)", e.Transport, e.Response, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Transport, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d: %s", e.Transport, e.StatusCode, e.Response)
	default:
		return fmt.Sprintf("%s: %s", e.Transport, e.Response)
	}
}
