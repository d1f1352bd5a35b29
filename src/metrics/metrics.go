package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "faultproducer"

var latencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}

// Pipeline holds the counters of the capture-and-publish pipeline.
// A nil *Pipeline is valid and records nothing.
type Pipeline struct {
	faultsTriggered *prometheus.CounterVec
	handoffs        *prometheus.CounterVec
	deliveries      *prometheus.CounterVec
	deliveryLatency prometheus.Histogram
}

// NewPipeline registers the pipeline collectors on reg. Collectors already present on
// reg (a second pipeline in the same process) are reused.
func NewPipeline(reg prometheus.Registerer) *Pipeline {
	p := &Pipeline{
		faultsTriggered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "faults_triggered_total",
			Help:      "Fault records built by the trigger, by fault name",
		}, []string{"name"}),
		handoffs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_handoffs_total",
			Help:      "Publish calls by handoff outcome",
		}, []string{"outcome"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_total",
			Help:      "Broker delivery results",
		}, []string{"outcome"}),
		deliveryLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "delivery_latency_seconds",
			Help:      "Time from handoff to broker acknowledgement or failure",
			Buckets:   latencyBuckets,
		}),
	}

	p.faultsTriggered = register(reg, p.faultsTriggered)
	p.handoffs = register(reg, p.handoffs)
	p.deliveries = register(reg, p.deliveries)
	p.deliveryLatency = register(reg, p.deliveryLatency)
	return p
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if reg == nil {
		return c
	}
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
		// a collector that cannot be exported is a wiring bug, as with MustRegister
		panic(err)
	}
	return c
}

func (p *Pipeline) FaultTriggered(name string) {
	if p == nil {
		return
	}
	p.faultsTriggered.WithLabelValues(name).Inc()
}

// Handoff records whether a message reached the producer queue ("enqueued") or not.
func (p *Pipeline) Handoff(outcome string) {
	if p == nil {
		return
	}
	p.handoffs.WithLabelValues(outcome).Inc()
}

func (p *Pipeline) Delivery(outcome string, latency time.Duration) {
	if p == nil {
		return
	}
	p.deliveries.WithLabelValues(outcome).Inc()
	p.deliveryLatency.Observe(latency.Seconds())
}

func (p *Pipeline) FaultsTriggered() *prometheus.CounterVec { return p.faultsTriggered }
func (p *Pipeline) Handoffs() *prometheus.CounterVec        { return p.handoffs }
func (p *Pipeline) Deliveries() *prometheus.CounterVec      { return p.deliveries }
