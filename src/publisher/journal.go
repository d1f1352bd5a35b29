package publisher

import (
	"context"
	"time"

	"faultproducer/src/model"

	logger "github.com/sirupsen/logrus"
)

type failureStore interface {
	Create(ctx context.Context, failure *model.DeliveryFailure) error
}

// JournalObserver persists failed deliveries so they can be inspected after the fact.
type JournalObserver struct {
	store   failureStore
	timeout time.Duration
}

func NewJournalObserver(store failureStore, timeout time.Duration) *JournalObserver {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &JournalObserver{store: store, timeout: timeout}
}

func (j *JournalObserver) DeliverySettled(d Delivery) {
	if d.State != Failed {
		return
	}

	failure := &model.DeliveryFailure{
		DeliveryID: d.ID,
		Topic:      d.Topic,
		Payload:    d.Payload,
		EnqueuedAt: d.EnqueuedAt,
	}
	if d.Err != nil {
		failure.Error = d.Err.Error()
	}

	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if err := j.store.Create(ctx, failure); err != nil {
		logger.WithError(err).WithField("deliveryId", d.ID).Error("Failed to journal delivery failure")
	}
}
