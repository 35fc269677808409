package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kilianp07/taxisim/api"
	"github.com/kilianp07/taxisim/config"
	"github.com/kilianp07/taxisim/core/dispatch"
	"github.com/kilianp07/taxisim/core/dispatch/logging"
	"github.com/kilianp07/taxisim/core/events"
	coremetrics "github.com/kilianp07/taxisim/core/metrics"
	"github.com/kilianp07/taxisim/infra/logger"
	"github.com/kilianp07/taxisim/infra/metrics"
	"github.com/kilianp07/taxisim/infra/mqtt"
	"github.com/kilianp07/taxisim/internal/eventbus"
)

// Service owns the engine and every adapter around it.
type Service struct {
	Engine *dispatch.Engine
	Trips  logging.LogStore

	cfg       *config.Config
	bus       *eventbus.Bus[events.Event]
	sink      coremetrics.MetricsSink
	telemetry *mqtt.TelemetryPublisher
	router    *gin.Engine
	log       logger.Logger

	mu   sync.Mutex
	addr net.Addr
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	logg := logger.New("service")

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	trips, err := logging.NewStore(cfg.TripLog)
	if err != nil {
		return nil, fmt.Errorf("trip log: %w", err)
	}

	var telemetry *mqtt.TelemetryPublisher
	if cfg.MQTT.Enabled {
		telemetry, err = mqtt.NewTelemetryPublisher(cfg.MQTT)
		if err != nil {
			_ = trips.Close()
			return nil, fmt.Errorf("mqtt telemetry: %w", err)
		}
	}

	bus := eventbus.New[events.Event](cfg.Simulation.EventBuffer)
	engine, err := dispatch.NewEngine(cfg.Simulation.FleetOrDefault(), nil, bus, logger.New("dispatch"))
	if err != nil {
		_ = trips.Close()
		return nil, fmt.Errorf("dispatch engine: %w", err)
	}

	router := api.NewRouter(engine, api.Options{
		Trips:         trips,
		APIToken:      cfg.Server.APIToken,
		ExposeMetrics: cfg.Metrics.Expose,
		Log:           logger.New("api"),
	})

	return &Service{
		Engine:    engine,
		Trips:     trips,
		cfg:       cfg,
		bus:       bus,
		sink:      sink,
		telemetry: telemetry,
		router:    router,
		log:       logg,
	}, nil
}

// Handler returns the HTTP handler serving the API.
func (s *Service) Handler() http.Handler { return s.router }

// Addr returns the address the API listens on once Run has started, nil
// before that.
func (s *Service) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Run starts the background workers and the HTTP API and blocks until the
// context is cancelled or the server fails.
func (s *Service) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	metrics.StartEventCollector(ctx, s.bus, s.sink, logger.New("metrics"))
	recorded := logging.StartRecorder(ctx, s.bus, s.Trips, logger.New("trip_log"))
	if s.telemetry != nil {
		s.telemetry.Start(ctx, s.bus)
	}
	if iv := s.cfg.Simulation.TickInterval(); iv > 0 {
		s.log.Infof("auto tick every %s", iv)
		go s.Engine.Run(ctx, iv)
	}
	if s.cfg.Metrics.Listen != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.Listen, s.log); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	ln, err := net.Listen("tcp", s.cfg.Server.Address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Server.Address, err)
	}
	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()

	srv := &http.Server{Handler: s.router, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.log.Infof("api listening on %s", ln.Addr())

	select {
	case <-ctx.Done():
	case err = <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		cancel()
		<-recorded
		return err
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout())
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.Errorf("api shutdown: %v", err)
	}
	<-recorded
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if s.telemetry != nil {
		s.telemetry.Disconnect()
	}
	if c, ok := s.sink.(interface{ Close() }); ok {
		c.Close()
	}
	if err := s.Trips.Close(); err != nil {
		return fmt.Errorf("trip log: %w", err)
	}
	return nil
}
