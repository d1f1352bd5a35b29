package publisher

import "time"

// DeliveryState tracks one message: Idle -> Sending -> Acked | Failed.
type DeliveryState int

const (
	Idle DeliveryState = iota
	Sending
	Acked
	Failed
)

func (s DeliveryState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Sending:
		return "sending"
	case Acked:
		return "acked"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Ack is returned once the message sits in the producer queue. The broker has not
// seen it yet; the final outcome is reported to DeliveryObservers.
type Ack struct {
	ID         string
	Topic      string
	State      DeliveryState
	EnqueuedAt time.Time
}

// Delivery is the settled outcome of a published message.
type Delivery struct {
	ID         string
	Topic      string
	Payload    string
	State      DeliveryState
	Partition  int32
	Offset     int64
	EnqueuedAt time.Time
	SettledAt  time.Time
	// set when State is Failed
	Err error
}

// DeliveryObserver is notified on the publisher's drain goroutine once per message.
// Implementations must not block for long: they delay every later outcome.
type DeliveryObserver interface {
	DeliverySettled(d Delivery)
}

// pending travels with the producer message as its metadata.
type pending struct {
	id         string
	topic      string
	payload    string
	enqueuedAt time.Time
}
