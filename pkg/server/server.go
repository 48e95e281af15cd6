package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	handlers "github.com/de-tools/warehouse-atlas/pkg/handlers/warehouse"
	"github.com/de-tools/warehouse-atlas/pkg/rpc/datawarehouse"
	atlasmiddleware "github.com/de-tools/warehouse-atlas/pkg/server/middleware"
	"github.com/de-tools/warehouse-atlas/pkg/services/warehouse"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const defaultShutdownTimeout = 10 * time.Second

type Dependencies struct {
	Lookup warehouse.LookupService
	Logger zerolog.Logger
}

type Config struct {
	GRPCAddr        string
	HTTPAddr        string
	ShutdownTimeout time.Duration
	Reflection      bool
	Dependencies    Dependencies
}

// Server runs the gRPC service and, when an HTTP address is set, the JSON gateway
type Server struct {
	config Config
	logger *zerolog.Logger
	grpc   *grpc.Server
	health *health.Server
	http   *http.Server
}

func New(config Config) *Server {
	logger := config.Dependencies.Logger
	grpcServer, healthServer := NewGRPCServer(config)

	s := &Server{
		config: config,
		logger: &logger,
		grpc:   grpcServer,
		health: healthServer,
	}
	if config.HTTPAddr != "" {
		s.http = &http.Server{
			Addr:              config.HTTPAddr,
			Handler:           ConfigureRouter(config),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}
	return s
}

func NewGRPCServer(config Config) (*grpc.Server, *health.Server) {
	logger := config.Dependencies.Logger

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			atlasmiddleware.UnaryLogger(&logger),
			atlasmiddleware.UnaryRecoverer(),
		),
	)
	datawarehouse.RegisterDataWarehouseServiceServer(s, handlers.NewRPCServer(config.Dependencies.Lookup))

	healthServer := health.NewServer()
	healthServer.SetServingStatus(datawarehouse.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, healthServer)

	if config.Reflection {
		reflection.Register(s)
	}
	return s, healthServer
}

func ConfigureRouter(config Config) http.Handler {
	logger := config.Dependencies.Logger
	whHandler := handlers.NewHandler(config.Dependencies.Lookup)

	router := chi.NewRouter()

	router.Use(atlasmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/warehouses/{warehouseID}", whHandler.GetWarehouse)
		// empty id, looked up like any other
		r.Get("/warehouses/", whHandler.GetWarehouse)
	})

	return router
}

// Run listens on the configured addresses and serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	grpcLis, err := net.Listen("tcp", s.config.GRPCAddr)
	if err != nil {
		return err
	}

	var httpLis net.Listener
	if s.http != nil {
		httpLis, err = net.Listen("tcp", s.http.Addr)
		if err != nil {
			_ = grpcLis.Close()
			return err
		}
	}
	return s.Serve(ctx, grpcLis, httpLis)
}

// Serve serves on the given listeners. httpLis may be nil.
func (s *Server) Serve(ctx context.Context, grpcLis, httpLis net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info().Str("addr", grpcLis.Addr().String()).Msg("starting grpc server")
		return s.grpc.Serve(grpcLis)
	})

	if s.http != nil && httpLis != nil {
		g.Go(func() error {
			s.logger.Info().Str("addr", httpLis.Addr().String()).Msg("starting http server")
			if err := s.http.Serve(httpLis); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		s.shutdown()
		return nil
	})

	return g.Wait()
}

func (s *Server) shutdown() {
	s.logger.Info().Msg("shutdown initiated")

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	// Give outstanding requests a deadline for completion.
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.health.Shutdown()

	stopped := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(stopped)
	}()

	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("graceful http shutdown failed")
			_ = s.http.Close()
		}
	}

	select {
	case <-stopped:
	case <-ctx.Done():
		s.logger.Warn().Msg("graceful grpc shutdown timed out")
		s.grpc.Stop()
	}
}
