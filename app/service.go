package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/kilianp07/powerplan/api/productionplan"
	"github.com/kilianp07/powerplan/config"
	coremetrics "github.com/kilianp07/powerplan/core/metrics"
	coremon "github.com/kilianp07/powerplan/core/monitoring"
	coremqtt "github.com/kilianp07/powerplan/core/mqtt"
	"github.com/kilianp07/powerplan/core/production"
	"github.com/kilianp07/powerplan/infra/logger"
	"github.com/kilianp07/powerplan/infra/metrics"
	inframon "github.com/kilianp07/powerplan/infra/monitoring"
	"github.com/kilianp07/powerplan/infra/mqtt"
	"github.com/kilianp07/powerplan/internal/eventbus"
)

// MetricsPath serves the Prometheus exposition when the prometheus sink is configured.
const MetricsPath = "/metrics"

// Service wires the production plan service to its HTTP API, metrics sinks
// and setpoint publisher.
type Service struct {
	Plans *production.Service

	cfg       *config.Config
	log       logger.Logger
	bus       *eventbus.Bus
	sink      coremetrics.MetricsSink
	publisher coremqtt.SetpointPublisher
	handler   http.Handler
	stop      context.CancelFunc
}

// Option customizes a Service.
type Option func(*Service)

// WithPublisher replaces the MQTT publisher built from the configuration.
func WithPublisher(p coremqtt.SetpointPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

// New creates a Service from the configuration.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config")
	}
	logger.SetDefaultLevel(cfg.Logging.Level)
	s := &Service{cfg: cfg, log: logger.New("service")}
	mon, err := inframon.NewMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("monitoring: %w", err)
	}
	coremon.Init(mon)
	for _, o := range opts {
		o(s)
	}

	planner, err := production.NewPlanner(cfg.Planner)
	if err != nil {
		return nil, fmt.Errorf("planner: %w", err)
	}
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	s.sink = sink

	if s.publisher == nil && cfg.Publisher.Enabled {
		pub, err := mqtt.NewPahoPublisher(cfg.Publisher.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		s.publisher = pub
	}

	s.bus = eventbus.New()
	ctx, cancel := context.WithCancel(context.Background())
	s.stop = cancel
	metrics.StartEventCollector(ctx, s.bus, sink)

	s.Plans, err = production.NewService(planner, logger.New("production"), s.bus, s.publisher)
	if err != nil {
		cancel()
		return nil, err
	}

	router := httprouter.New()
	productionplan.Register(router, s.Plans)
	if cfg.Metrics.Has("prometheus") {
		router.Handler(http.MethodGet, MetricsPath, metrics.Handler(nil))
	}
	s.handler = http.TimeoutHandler(router, cfg.Server.RequestTimeout(), `{"error":"request timeout"}`)
	s.log.Infof("planner %s ready", planner.Name())
	return s, nil
}

// Handler returns the HTTP handler of the API.
func (s *Service) Handler() http.Handler { return s.handler }

// Run serves the API on the configured address until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Server.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves the API on ln until the context is cancelled, then shuts the
// server down gracefully.
func (s *Service) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.handler, ReadHeaderTimeout: s.cfg.Server.RequestTimeout()}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.log.Infof("server stopped")
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.stop()
	s.bus.Close()
	if s.publisher != nil {
		s.publisher.Close()
	}
	if c, ok := s.sink.(interface{ Close() }); ok {
		c.Close()
	}
	coremon.Flush(2 * time.Second)
	return nil
}
