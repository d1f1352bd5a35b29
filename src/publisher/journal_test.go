package publisher

import (
	"context"
	"errors"
	"testing"
	"time"

	"faultproducer/src/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFailureStore struct {
	stored      []*model.DeliveryFailure
	err         error
	hadDeadline bool
}

func (f *fakeFailureStore) Create(ctx context.Context, failure *model.DeliveryFailure) error {
	_, f.hadDeadline = ctx.Deadline()
	f.stored = append(f.stored, failure)
	return f.err
}

func TestJournalObserverStoresFailures(t *testing.T) {
	store := &fakeFailureStore{}
	journal := NewJournalObserver(store, time.Second)
	enqueued := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	journal.DeliverySettled(Delivery{
		ID:         "delivery-7",
		Topic:      "exception-topic",
		Payload:    samplePayload,
		State:      Failed,
		EnqueuedAt: enqueued,
		Err:        &PublishError{Topic: "exception-topic", DeliveryID: "delivery-7", Err: errors.New("broker down")},
	})

	require.Len(t, store.stored, 1)
	failure := store.stored[0]
	assert.Equal(t, "delivery-7", failure.DeliveryID)
	assert.Equal(t, "exception-topic", failure.Topic)
	assert.Equal(t, samplePayload, failure.Payload)
	assert.Equal(t, enqueued, failure.EnqueuedAt)
	assert.Contains(t, failure.Error, "broker down")
	assert.True(t, store.hadDeadline)
}

func TestJournalObserverIgnoresAcked(t *testing.T) {
	store := &fakeFailureStore{}
	NewJournalObserver(store, 0).DeliverySettled(Delivery{ID: "ok", State: Acked})
	assert.Empty(t, store.stored)
}

func TestJournalObserverSwallowsStoreErrors(t *testing.T) {
	store := &fakeFailureStore{err: errors.New("database is down")}
	journal := NewJournalObserver(store, time.Second)

	assert.NotPanics(t, func() {
		journal.DeliverySettled(Delivery{ID: "x", State: Failed})
	})
	assert.Len(t, store.stored, 1)
}
