package publisher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"faultproducer/src/metrics"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"
)

const (
	HeaderFaultID     = "fault-id"
	HeaderContentType = "content-type"
	payloadType       = "text/plain; charset=utf-8"

	DefaultHandoffTimeout = 50 * time.Millisecond
)

// Publisher hands serialized fault records to a sarama AsyncProducer.
// Publish never waits for the broker; outcomes are settled on a single drain goroutine.
type Publisher struct {
	producer       sarama.AsyncProducer
	handoffTimeout time.Duration
	observers      []DeliveryObserver
	metrics        *metrics.Pipeline
	now            func() time.Time
	newID          func() string

	// guards closed so Publish never sends on a producer that is shutting down
	mu      sync.RWMutex
	closed  bool
	drained chan struct{}

	// closed before Close takes mu, releasing handoffs still waiting on Input
	closing     chan struct{}
	closingOnce sync.Once
}

type Option func(*Publisher)

// WithHandoffTimeout bounds how long Publish waits for room in the producer queue.
// Zero or negative keeps DefaultHandoffTimeout; the wait is never unbounded.
func WithHandoffTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		if d > 0 {
			p.handoffTimeout = d
		}
	}
}

func WithObservers(observers ...DeliveryObserver) Option {
	return func(p *Publisher) {
		for _, o := range observers {
			if o != nil {
				p.observers = append(p.observers, o)
			}
		}
	}
}

func WithMetrics(m *metrics.Pipeline) Option {
	return func(p *Publisher) { p.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(p *Publisher) {
		if now != nil {
			p.now = now
		}
	}
}

// New starts draining the producer's Successes and Errors channels.
// The producer must be configured with Producer.Return.Successes enabled for acks to be observed.
func New(producer sarama.AsyncProducer, opts ...Option) *Publisher {
	p := &Publisher{
		producer:       producer,
		handoffTimeout: DefaultHandoffTimeout,
		now:            time.Now,
		newID:          uuid.NewString,
		drained:        make(chan struct{}),
		closing:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}

	go p.drain()
	return p
}

// Publish enqueues payload for topic and returns as soon as the producer accepted it.
func (p *Publisher) Publish(topic, payload string) (Ack, error) {
	if err := ValidateTopic(topic); err != nil {
		p.metrics.Handoff("rejected")
		return Ack{Topic: topic, State: Failed}, &PublishError{Topic: topic, Err: err}
	}

	d := &pending{
		id:         p.newID(),
		topic:      topic,
		payload:    payload,
		enqueuedAt: p.now(),
	}
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.StringEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte(HeaderFaultID), Value: []byte(d.id)},
			{Key: []byte(HeaderContentType), Value: []byte(payloadType)},
		},
		Metadata: d,
	}

	if err := p.handoff(msg); err != nil {
		p.metrics.Handoff("rejected")
		return Ack{ID: d.id, Topic: topic, State: Failed}, &PublishError{Topic: topic, DeliveryID: d.id, Err: err}
	}

	p.metrics.Handoff("enqueued")
	logger.WithFields(logger.Fields{
		"deliveryId": d.id,
		"topic":      topic,
	}).Debug("Message handed to producer")

	return Ack{ID: d.id, Topic: topic, State: Sending, EnqueuedAt: d.enqueuedAt}, nil
}

func (p *Publisher) handoff(msg *sarama.ProducerMessage) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPublisherClosed
	}

	timer := time.NewTimer(p.handoffTimeout)
	defer timer.Stop()

	select {
	case p.producer.Input() <- msg:
		return nil
	case <-timer.C:
		return ErrHandoffTimeout
	case <-p.closing:
		return ErrPublisherClosed
	}
}

// Close stops accepting messages, lets the producer flush what is in flight and waits
// until every outcome has been settled or ctx expires.
func (p *Publisher) Close(ctx context.Context) error {
	p.closingOnce.Do(func() { close(p.closing) })

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	p.producer.AsyncClose()

	select {
	case <-p.drained:
		logger.Info("[publisher] producer drained")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for producer to drain: %w", ctx.Err())
	}
}

func (p *Publisher) drain() {
	defer close(p.drained)

	successes := p.producer.Successes()
	failures := p.producer.Errors()
	for successes != nil || failures != nil {
		select {
		case msg, ok := <-successes:
			if !ok {
				successes = nil
				continue
			}
			p.settle(msg, nil)
		case perr, ok := <-failures:
			if !ok {
				failures = nil
				continue
			}
			p.settle(perr.Msg, perr.Err)
		}
	}
}

func (p *Publisher) settle(msg *sarama.ProducerMessage, err error) {
	d := Delivery{SettledAt: p.now()}
	if msg != nil {
		d.Topic = msg.Topic
		d.Partition = msg.Partition
		d.Offset = msg.Offset
		if meta, ok := msg.Metadata.(*pending); ok {
			d.ID = meta.id
			d.Payload = meta.payload
			d.EnqueuedAt = meta.enqueuedAt
		}
	}

	fields := logger.Fields{
		"deliveryId": d.ID,
		"topic":      d.Topic,
	}
	if err != nil {
		d.State = Failed
		d.Err = &PublishError{Topic: d.Topic, DeliveryID: d.ID, Err: err}
		p.metrics.Delivery(Failed.String(), d.SettledAt.Sub(d.EnqueuedAt))
		logger.WithFields(fields).WithError(err).Warn("Delivery failed")
	} else {
		d.State = Acked
		p.metrics.Delivery(Acked.String(), d.SettledAt.Sub(d.EnqueuedAt))
		fields["partition"] = d.Partition
		fields["offset"] = d.Offset
		logger.WithFields(fields).Debug("Delivery acked")
	}

	for _, o := range p.observers {
		notify(o, d)
	}
}

func notify(o DeliveryObserver, d Delivery) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithField("deliveryId", d.ID).Errorf("delivery observer panic: %v", r)
		}
	}()
	o.DeliverySettled(d)
}
