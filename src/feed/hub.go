package feed

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"faultproducer/src/fault"
	"faultproducer/src/publisher"

	logger "github.com/sirupsen/logrus"
)

// Subscriber abstracts a streaming client.
type Subscriber interface {
	Send([]byte) error
	Close()
}

// Event is what feed clients receive for every acknowledged fault record.
type Event struct {
	DeliveryID      string `json:"DeliveryId"`
	Topic           string `json:"Topic"`
	ExceptionName   string `json:"ExceptionName"`
	ExceptionDate   string `json:"ExceptionDate"`
	ExceptionFile   string `json:"ExceptionFile"`
	ExceptionMethod string `json:"ExceptionMethod"`
	ExceptionLine   int    `json:"ExceptionLine"`
}

const (
	// per-client backlog; a client that falls this far behind is evicted
	clientQueueSize = 16
	broadcastBuffer = 64
)

// Hub fans acknowledged fault records out to connected clients.
// The run loop owns the client set; all other methods talk to it over channels.
// Each client is written by its own goroutine, so a slow reader never holds up the
// run loop or the caller of Broadcast.
type Hub struct {
	clients   map[Subscriber]*member
	count     atomic.Int64
	register  chan Subscriber
	unreg     chan Subscriber
	broadcast chan []byte
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

type member struct {
	sub   Subscriber
	queue chan []byte
	quit  chan struct{}
}

// NewHub creates an initialized Hub.
func NewHub() *Hub {
	h := &Hub{
		clients:   make(map[Subscriber]*member),
		register:  make(chan Subscriber),
		unreg:     make(chan Subscriber),
		broadcast: make(chan []byte, broadcastBuffer),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	defer close(h.stopped)
	for {
		select {
		case c := <-h.register:
			m := &member{sub: c, queue: make(chan []byte, clientQueueSize), quit: make(chan struct{})}
			h.clients[c] = m
			go h.write(m)
		case c := <-h.unreg:
			h.remove(c)
		case payload := <-h.broadcast:
			for c, m := range h.clients {
				select {
				case m.queue <- payload:
				default:
					logger.Warn("Evicting feed client that stopped reading")
					h.remove(c)
				}
			}
		case <-h.done:
			for c := range h.clients {
				h.remove(c)
			}
			h.count.Store(0)
			return
		}
		h.count.Store(int64(len(h.clients)))
	}
}

func (h *Hub) remove(c Subscriber) {
	m, ok := h.clients[c]
	if !ok {
		return
	}
	delete(h.clients, c)
	close(m.quit)
	c.Close()
}

// write delivers queued payloads to one client until it is removed or a send fails.
func (h *Hub) write(m *member) {
	for {
		select {
		case <-m.quit:
			return
		case payload := <-m.queue:
			if err := m.sub.Send(payload); err != nil {
				h.Unregister(m.sub)
				return
			}
		}
	}
}

// Register adds a client. A closed hub closes the client instead.
func (h *Hub) Register(c Subscriber) {
	select {
	case h.register <- c:
	case <-h.done:
		c.Close()
	}
}

// Unregister removes and closes a client.
func (h *Hub) Unregister(c Subscriber) {
	select {
	case h.unreg <- c:
	case <-h.done:
	}
}

// Broadcast queues payload for every client without blocking. Payloads are dropped
// once the hub is closed or when the hub is too far behind.
func (h *Hub) Broadcast(payload []byte) {
	select {
	case <-h.done:
		return
	default:
	}
	select {
	case h.broadcast <- payload:
	default:
		logger.Warn("Feed hub backlog full, dropping event")
	}
}

// Clients reports how many subscribers are connected.
func (h *Hub) Clients() int {
	return int(h.count.Load())
}

// Close disconnects every client and stops the hub.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
	<-h.stopped
}

// DeliverySettled broadcasts acknowledged records; failed deliveries are not fanned out.
func (h *Hub) DeliverySettled(d publisher.Delivery) {
	if d.State != publisher.Acked || h.Clients() == 0 {
		return
	}

	record, err := fault.Parse(d.Payload, nil)
	if err != nil {
		logger.WithError(err).WithField("deliveryId", d.ID).Warn("Skipping feed broadcast for unparseable payload")
		return
	}

	payload, err := json.Marshal(Event{
		DeliveryID:      d.ID,
		Topic:           d.Topic,
		ExceptionName:   record.Name,
		ExceptionDate:   record.Timestamp.Format(fault.TimestampLayout),
		ExceptionFile:   record.SourceFile,
		ExceptionMethod: record.MethodName,
		ExceptionLine:   record.LineNumber,
	})
	if err != nil {
		logger.WithError(err).Error("failed to encode feed event")
		return
	}
	h.Broadcast(payload)
}
