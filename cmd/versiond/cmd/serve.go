// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oneconcern/versiond/pkg/dlogger"
	"github.com/oneconcern/versiond/pkg/tracing"
	"github.com/oneconcern/versiond/pkg/web"
	"github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the registry API",
	Long: `Serve the read-only registry API:
	GET /api/version, /api/version/current      the current release, with its download link
	GET /api/version/check?current=<version>    whether a client should update
	GET /api/version/history                    the archived releases, most recent first
	GET /api/version/channels                   the version followed by each channel
	GET /, /health                              a description of the service

The version document is read again on every request, so bumps are visible right away.
Prometheus metrics are served on a separate address, at /metrics.
`,
	Run: func(cmd *cobra.Command, args []string) {
		logger, err := dlogger.GetLogger(config.LogLevel, dlogger.Service(config.Service.Name))
		if err != nil {
			wrapFatalln("failed to set log level", err)
			return
		}
		defer func() {
			_ = logger.Sync()
		}()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err = runServe(ctx, config, logger); err != nil {
			wrapFatalln("server error", err)
			return
		}
	},
}

// apiServer wires the registry API and its metrics listeners
type apiServer struct {
	api     *http.Server
	metrics *http.Server
	closer  func() error
}

func newAPIServer(c *CLIConfig, logger *zap.Logger) (*apiServer, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	tr, closer, err := tracing.Init("versiond", c.Tracing.JaegerAgent, registry, logger)
	if err != nil {
		logger.Info("failed to initialize tracing, falling back to noop tracer", zap.Error(err))
		tr, closer = opentracing.NoopTracer{}, nil
	}

	vs, err := newVersionStore(c, false, tr, logger)
	if err != nil {
		return nil, err
	}

	srv, err := web.NewServer(web.ServerParams{
		Store:       vs,
		Site:        c.Release,
		ServiceName: c.Service.Name,
		Logger:      logger,
		Metrics:     web.NewMetrics(web.WithRegistry(registry)),
		Tracer:      tr,
	})
	if err != nil {
		return nil, err
	}

	s := &apiServer{
		api: &http.Server{
			Addr:              c.Web.Addr,
			Handler:           web.InitRouter(srv),
			ReadHeaderTimeout: 10 * time.Second,
		},
		closer: func() error { return nil },
	}
	if closer != nil {
		s.closer = closer.Close
	}
	if c.Web.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
		s.metrics = &http.Server{
			Addr:              c.Web.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
	}
	return s, nil
}

func serveOn(ctx context.Context, srv *http.Server, lis net.Listener, logger *zap.Logger) error {
	logger.Info("listening", zap.String("addr", lis.Addr().String()))
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("unclean server shutdown", zap.String("addr", srv.Addr), zap.Error(err))
		}
	}()
	if err := srv.Serve(lis); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// run serves until the context is cancelled or a listener fails
func (s *apiServer) run(ctx context.Context, api, metrics net.Listener, logger *zap.Logger) error {
	defer func() {
		_ = s.closer()
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return serveOn(gctx, s.api, api, logger)
	})
	if s.metrics != nil && metrics != nil {
		g.Go(func() error {
			return serveOn(gctx, s.metrics, metrics, logger)
		})
	}
	err := g.Wait()
	logger.Info("server stopped")
	return err
}

func runServe(ctx context.Context, c *CLIConfig, logger *zap.Logger) error {
	s, err := newAPIServer(c, logger)
	if err != nil {
		return err
	}

	api, err := net.Listen("tcp", s.api.Addr)
	if err != nil {
		return err
	}
	var metrics net.Listener
	if s.metrics != nil {
		metrics, err = net.Listen("tcp", s.metrics.Addr)
		if err != nil {
			_ = api.Close()
			return err
		}
	}

	logger.Info("starting "+c.Service.Name, zap.Strings("endpoints", web.Endpoints))
	return s.run(ctx, api, metrics, logger)
}

func init() {
	addServeFlags(serveCmd)
	rootCmd.AddCommand(serveCmd)
}
