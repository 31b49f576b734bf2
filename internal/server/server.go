package server

import (
	"context"
	"log/slog"
	"net/http"

	"sportkalender-service/internal/config"
	"sportkalender-service/internal/controller"
	"sportkalender-service/internal/domain/matches"
	"sportkalender-service/internal/domain/options"
	httpserver "sportkalender-service/internal/http"
	"sportkalender-service/internal/http/handlers"
	"sportkalender-service/internal/http/ws"
	"sportkalender-service/internal/logging"
	"sportkalender-service/internal/metrics"
	"sportkalender-service/internal/poller"
	"sportkalender-service/internal/providers"
	"sportkalender-service/internal/schedule"
	"sportkalender-service/internal/timeutil"
	"sportkalender-service/internal/tvrights"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	controller    *controller.Controller
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
	stopStreams   context.CancelFunc
	publisher     *publisherRunner
}

// New constructs a server with the configured provider, refresher and publisher.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.MatchProvider) *Server {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.MatchProvider, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newProviderFactory(logger, recorder)
	if provider == nil {
		provider = factory.build(cfg)
	} else {
		provider = factory.wrap(cfg, provider)
	}

	ctrl := buildController(cfg, provider, logger, recorder)
	var plr Poller
	if cfg.Schedule.RefreshEnabled() {
		plr = poller.New(ctrl, logger, recorder, cfg.Schedule.RefreshInterval)
	}

	streamCtx, stopStreams := context.WithCancel(context.Background())
	httpSrv := buildHTTPServer(cfg, ctrl, plr, logger, recorder, streamCtx)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		controller:    ctrl,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
		stopStreams:   stopStreams,
		publisher:     newPublisherRunner(cfg.Publisher, logger),
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, ctrl *controller.Controller, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		controller: ctrl,
		httpServer: httpSrv,
		poller:     plr,
		publisher:  newPublisherRunner(cfg.Publisher, logger),
	}
}

func buildController(cfg config.Config, provider providers.MatchProvider, logger *slog.Logger, recorder *metrics.Recorder) *controller.Controller {
	loc := timeutil.LoadZone(cfg.Schedule.Timezone)
	normalizer := matches.NewNormalizer(loc)
	return controller.New(controller.Config{
		Provider:     provider,
		Catalog:      options.Default(),
		Normalizer:   normalizer,
		Engine:       schedule.NewEngine(loc, tvrights.NewResolver(nil, loc)),
		Logger:       logger,
		Metrics:      recorder,
		League:       cfg.Schedule.League,
		Season:       cfg.Schedule.Season,
		FetchTimeout: fetchTimeout(cfg.Upstream),
	})
}

func buildHTTPServer(cfg config.Config, ctrl *controller.Controller, plr Poller, logger *slog.Logger, recorder *metrics.Recorder, streamCtx context.Context) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}

	router := httpserver.NewRouter(httpserver.RouterConfig{
		Handler:        handlers.NewHandler(ctrl, logger, statusFn),
		Stream:         ws.NewHandler(streamCtx, ctrl, logger, cfg.CORS),
		Logger:         logger,
		Metrics:        recorder,
		AllowedOrigins: cfg.CORS,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the HTTP server, the refresher and the publisher, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.controller != nil {
		s.publisher.start(ctx, s.controller)
	}
	if s.poller != nil {
		s.poller.Start(ctx)
	} else if s.controller != nil {
		s.controller.Reload()
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", logging.FieldError, err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", logging.FieldError, err)
		}
	}

	if s.poller != nil {
		if err := s.poller.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop poller", err)
		}
	}

	// Hijacked WebSocket connections are not tracked by http.Server.Shutdown.
	if s.stopStreams != nil {
		s.stopStreams()
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.controller != nil {
		s.controller.Close()
	}
	s.publisher.stop()

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", logging.FieldError, err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", logging.FieldError, err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Controller exposes the schedule controller (useful for tests).
func (s *Server) Controller() *controller.Controller {
	return s.controller
}
