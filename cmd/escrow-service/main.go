package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/app/background"
	"github.com/LavaJover/shvark-escrow-service/internal/app/setup"
	"github.com/LavaJover/shvark-escrow-service/internal/config"
	"github.com/LavaJover/shvark-escrow-service/internal/delivery/grpcapi"
	"github.com/LavaJover/shvark-escrow-service/internal/delivery/http/handlers"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()

	logg, err := logger.New(cfg.LogConfig)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	slog.SetDefault(logg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("escrow service stopped with error", "error", err.Error())
		stop()
		log.Fatal(err)
	}
	slog.Info("escrow service stopped")
}

func run(ctx context.Context, cfg *config.EscrowConfig) error {
	deps, err := setup.InitializeDependencies(cfg, slog.Default())
	if err != nil {
		return fmt.Errorf("init dependencies: %w", err)
	}
	defer deps.Close()

	ucs := setup.InitializeUseCases(deps)

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := handlers.NewHandler(ucs.OrderUsecase, ucs.DisputeUsecase, ucs.EscrowUsecase, ucs.RiskUsecase, ucs.PolicyUsecase)
	httpServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler:      handlers.NewRouter(handler, deps.Registry),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}

	grpcServer, healthServer := grpcapi.NewServer()
	grpcAddr := net.JoinHostPort(cfg.GRPCServer.Host, cfg.GRPCServer.Port)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", grpcAddr, err)
	}

	tasks := background.NewBackgroundTasks(ucs.OrderUsecase, ucs.EscrowUsecase, cfg.Engine.SweepInterval, cfg.Engine.ReconcileInterval)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("HTTP server started", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		slog.Info("gRPC server started", "addr", grpcAddr)
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		tasks.StartAll(gctx)
		grpcapi.SetServing(healthServer, true)
		slog.Info("escrow engine ready",
			"storage", cfg.Storage.Driver,
			"kafka", cfg.KafkaService.Enabled,
			"sweep_interval", cfg.Engine.SweepInterval,
		)

		<-gctx.Done()
		grpcapi.SetServing(healthServer, false)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("http shutdown failed", "error", err.Error())
		}
		grpcServer.GracefulStop()
		tasks.Wait()
		return nil
	})

	return g.Wait()
}
