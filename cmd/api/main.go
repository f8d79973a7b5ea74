package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"chainflow-engine/internal/core/cache"
	"chainflow-engine/internal/core/config"
	"chainflow-engine/internal/core/logger"
	"chainflow-engine/internal/core/metrics"
	"chainflow-engine/internal/core/random"
	"chainflow-engine/internal/core/server"
	networkhandler "chainflow-engine/internal/features/network/handler"
	networkservice "chainflow-engine/internal/features/network/service"
	routingdomain "chainflow-engine/internal/features/routing/domain"
	routinghandler "chainflow-engine/internal/features/routing/handler"
	routingservice "chainflow-engine/internal/features/routing/service"
	trackingadapter "chainflow-engine/internal/features/tracking/adapters"
	trackinghandler "chainflow-engine/internal/features/tracking/handler"
	trackingservice "chainflow-engine/internal/features/tracking/service"
	trusthandler "chainflow-engine/internal/features/trust/handler"
	trustservice "chainflow-engine/internal/features/trust/service"
	verificationadapter "chainflow-engine/internal/features/verification/adapters"
	verificationhandler "chainflow-engine/internal/features/verification/handler"
	verificationservice "chainflow-engine/internal/features/verification/service"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Random streams per consumer, so tracking ticks never shift the genetic search.
const (
	networkStream uint64 = iota
	routingStream
	trackingStream
)

// @title ChainFlow Engine API
// @version 1.0
// @description Supply-chain trust scoring, route optimization, shipment tracking and integrated product verification.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	if err := run(); err != nil {
		log.Fatalf("Application failed: %v", err)
	}
}

func run() error {
	cfg, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
		zap.Uint64("seed", cfg.RandomSeed),
	)

	reg := metrics.NewRegistry()

	// Synthetic world
	network := networkservice.NewGenerator(random.NewStream(cfg.RandomSeed, networkStream), networkservice.GeneratorConfig{Seed: cfg.RandomSeed}).Generate()
	l.Info("Network generated",
		zap.Int("locations", network.Summary.TotalLocations),
		zap.Int("suppliers", network.Summary.TotalSuppliers),
		zap.Int("products", network.Summary.TotalProducts),
		zap.Int("routes", network.Summary.TotalRoutes),
	)

	// Trust & Routing
	scorer := trustservice.NewScorer(trustservice.ScorerConfig{Metrics: reg})
	optimizer := routingservice.NewOptimizer(network, scorer, routingservice.OptimizerConfig{
		DefaultAlgorithm: routingdomain.Algorithm(cfg.Routing.DefaultAlgorithm),
		Population:       cfg.Routing.GAPopulation,
		Generations:      cfg.Routing.GAGenerations,
		MutationRate:     cfg.Routing.GAMutationRate,
		Rand:             random.NewStream(cfg.RandomSeed, routingStream),
		Metrics:          reg,
	})

	// Tracking
	simulator := trackingservice.NewSimulator(trackingadapter.NewMemoryShipmentStore(), network, trackingservice.SimulatorConfig{
		Interval: cfg.Tracking.TickInterval,
		Rand:     random.NewStream(cfg.RandomSeed, trackingStream),
		Metrics:  reg,
	})

	// Verification
	resultCache, err := newResultCache(cfg)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}
	defer resultCache.Close()

	orchestrator := verificationservice.NewOrchestrator(optimizer, scorer, network,
		verificationadapter.NewCacheResultRepository(resultCache),
		verificationservice.OrchestratorConfig{CacheTTL: cfg.Verification.CacheTTL, Metrics: reg},
	)

	srv := server.New(cfg, reg)

	// Register Routes
	api := srv.App.Group("/api")
	networkhandler.NewNetworkHandler(network).Register(api)
	trusthandler.NewTrustHandler(scorer, network).Register(api)
	routinghandler.NewRoutingHandler(optimizer).Register(api)
	trackinghandler.NewTrackingHandler(simulator).Register(api)
	verificationhandler.NewVerificationHandler(orchestrator).Register(api)

	srv.RegisterStatus(func() map[string]any {
		return map[string]any{
			"network":      network.Summary,
			"routing":      optimizer.Stats(),
			"trustHistory": scorer.HistoryStats(),
			"verification": orchestrator.Stats(),
			"cacheDriver":  cfg.Verification.CacheDriver,
		}
	})

	simulator.Start()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	var runErr error
	select {
	case runErr = <-errCh:
		if runErr != nil {
			l.Error("Server failed", zap.Error(runErr))
		}
	case <-ctx.Done():
		l.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Warn("Server shutdown incomplete", zap.Error(err))
	}
	if err := simulator.Stop(shutdownCtx); err != nil {
		l.Warn("Tracking scheduler did not stop in time", zap.Error(err))
	}
	l.Info("Application stopped")
	return runErr
}

// newResultCache selects the verification cache backend.
func newResultCache(cfg *config.AppConfig) (cache.Cache, error) {
	if cfg.Verification.CacheDriver != config.CacheDriverRedis {
		logger.Get().Info("Using in-memory verification cache")
		return cache.NewMemoryAdapter(), nil
	}

	redisCache, err := cache.NewRedisAdapter(cfg.Verification.RedisURL, "chainflow:")
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisCache.Ping(ctx); err != nil {
		logger.Get().Warn("Redis not reachable, verifications will be computed uncached", zap.Error(err))
	} else {
		logger.Get().Info("Redis connection verified")
	}
	return redisCache, nil
}
