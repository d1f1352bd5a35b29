package serve

import (
	"context"
	"net/http"

	"faultproducer/src/fault"
	"faultproducer/src/feed"
	"faultproducer/src/metrics"
	"faultproducer/src/publisher"
	"faultproducer/src/repository"
	"faultproducer/src/security"
	"faultproducer/src/server"

	"github.com/IBM/sarama"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Settings gathers the env config of every component wired by NewApp.
type Settings struct {
	Fault     fault.Config
	Publisher publisher.Config
	Security  security.Config
}

func LoadSettings() Settings {
	return Settings{
		Fault:     fault.GetConfig(),
		Publisher: publisher.GetConfig(),
		Security:  security.GetConfig(),
	}
}

// App is the assembled fault producer: one builder, one publisher and the
// router serving them.
type App struct {
	Router    http.Handler
	Registry  *prometheus.Registry
	publisher *publisher.Publisher
	hub       *feed.Hub
}

// NewApp wires the service around producer. db may be nil, in which case
// failed deliveries are only logged.
func NewApp(settings Settings, producer sarama.AsyncProducer, db *gorm.DB) (*App, error) {
	catalog, err := settings.Fault.ResolveCatalog()
	if err != nil {
		return nil, err
	}
	builder, err := fault.NewBuilder(catalog)
	if err != nil {
		return nil, err
	}
	if err := publisher.ValidateTopic(settings.Fault.Topic); err != nil {
		return nil, &fault.ConfigurationError{Setting: "FAULT_TOPIC", Err: err}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	pipeline := metrics.NewPipeline(registry)

	hub := feed.NewHub()
	observers := []publisher.DeliveryObserver{hub}

	deps := server.Dependencies{
		Builder:  builder,
		Topic:    settings.Fault.Topic,
		Recorder: pipeline,
		Gatherer: registry,
		Hub:      hub,
		Ops:      settings.Security,
	}

	if db != nil {
		repo := repository.NewDeliveryFailureRepository(db)
		observers = append(observers, publisher.NewJournalObserver(repo, settings.Publisher.JournalWriteTimeout))
		deps.Failures = repo
	}

	pub := publisher.New(producer,
		publisher.WithHandoffTimeout(settings.Publisher.HandoffTimeout),
		publisher.WithObservers(observers...),
		publisher.WithMetrics(pipeline),
	)
	deps.Publisher = pub

	logrus.WithFields(logrus.Fields{
		"topic":   settings.Fault.Topic,
		"catalog": len(catalog),
		"journal": db != nil,
	}).Info("Fault producer wired")

	return &App{
		Router:    server.NewRouter(deps),
		Registry:  registry,
		publisher: pub,
		hub:       hub,
	}, nil
}

// Shutdown flushes the publisher, then disconnects feed clients. Deliveries
// settled during the flush still reach the feed and the journal.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.publisher.Close(ctx)
	a.hub.Close()
	return err
}
