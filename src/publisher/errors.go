package publisher

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTopic    = errors.New("invalid topic name")
	ErrHandoffTimeout  = errors.New("producer queue did not accept the message in time")
	ErrPublisherClosed = errors.New("publisher is closed")
)

// PublishError wraps every failure to deliver a payload, whether it happened before the
// handoff (invalid topic, closed publisher, full queue) or later at the broker.
type PublishError struct {
	Topic      string
	DeliveryID string
	Err        error
}

func (e *PublishError) Error() string {
	if e.DeliveryID == "" {
		return fmt.Sprintf("publish to topic %q failed: %v", e.Topic, e.Err)
	}
	return fmt.Sprintf("publish %s to topic %q failed: %v", e.DeliveryID, e.Topic, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}
