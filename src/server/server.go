package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"faultproducer/src/fault"
	"faultproducer/src/feed"
	"faultproducer/src/handler"
	"faultproducer/src/model"
	"faultproducer/src/publisher"
	"faultproducer/src/security"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	logger "github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

type faultBuilder interface {
	Build() (fault.FaultRecord, error)
}

type faultPublisher interface {
	Publish(topic, payload string) (publisher.Ack, error)
}

type failureLister interface {
	Recent(ctx context.Context, limit int) ([]model.DeliveryFailure, error)
}

type triggerRecorder interface {
	FaultTriggered(name string)
}

// Dependencies are the collaborators the router hands to its handlers.
// Gatherer, Hub and Failures are optional; their routes are not mounted when nil.
type Dependencies struct {
	Builder   faultBuilder
	Publisher faultPublisher
	Topic     string
	Recorder  triggerRecorder
	Gatherer  prometheus.Gatherer
	Hub       *feed.Hub
	Failures  failureLister
	Ops       security.Config
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Public routes
	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.WithError(err).Error(" \"/health error")
		}
	})

	trigger := handler.TriggerFaultHandler(deps.Builder, deps.Publisher, deps.Topic, deps.Recorder)
	r.Get("/throwRandomException", trigger)
	// kept for clients still calling the misspelled path
	r.Get("/trowRandomException", trigger)

	// Ops routes
	r.Group(func(r chi.Router) {
		r.Use(security.OpsAuth(deps.Ops))

		if deps.Gatherer != nil {
			r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
		}
		if deps.Hub != nil {
			r.Get("/ws/faults", handler.FaultFeedHandler(deps.Hub))
		}
		if deps.Failures != nil {
			r.Get("/deliveries/failures", handler.ListDeliveryFailuresHandler(deps.Failures))
		}
	})

	return r
}

// StartServer serves h on port until SIGINT or SIGTERM, then shuts down gracefully.
func StartServer(port string, h http.Handler) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return Serve(ctx, port, h)
}

// Serve listens on port until ctx is cancelled. In-flight requests get
// shutdownTimeout to finish.
func Serve(ctx context.Context, port string, h http.Handler) error {
	addr := ":" + port
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			logger.WithError(err).Error("Server crashed")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Shutdown error")
		return err
	}
	return nil
}
