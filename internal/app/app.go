// Package app собирает сервис ledger: хранилище, gRPC и HTTP API, outbox relay,
// очистку ключей идемпотентности и сервер метрик.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	promgrpc "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	healthcheck "github.com/vladislavdragonenkov/posledger/internal/health"
	"github.com/vladislavdragonenkov/posledger/internal/metrics"
	grpcsvc "github.com/vladislavdragonenkov/posledger/internal/service/grpc"
	"github.com/vladislavdragonenkov/posledger/internal/service/httpapi"
	"github.com/vladislavdragonenkov/posledger/internal/service/idempotency"
	"github.com/vladislavdragonenkov/posledger/internal/service/ledger"
	"github.com/vladislavdragonenkov/posledger/internal/service/outbox"
	"github.com/vladislavdragonenkov/posledger/internal/version"
	posledgerv1 "github.com/vladislavdragonenkov/posledger/proto/posledger/v1"
)

const httpReadHeaderTimeout = 5 * time.Second

// Run поднимает сервис и блокируется до отмены ctx или падения одного из серверов.
// При отмене ctx возвращает ctx.Err().
func Run(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	logger := log.WithField("component", "app")

	deps, err := initRuntimeDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.close(logger)

	voidPolicy, err := ledger.ParseVoidPolicy(cfg.VoidPolicy)
	if err != nil {
		return err
	}
	ledgerSvc := ledger.New(deps.store,
		ledger.WithLogger(logger.WithField("component", "ledger")),
		ledger.WithMetrics(metrics.NewLedgerMetrics()),
		ledger.WithVoidPolicy(voidPolicy),
	)
	idemMetrics := metrics.NewIdempotencyMetrics(prometheus.DefaultRegisterer)

	// Ошибка уже залогирована; без Kafka outbox уходит в лог.
	kafkaProducer, _ := initKafkaProducer(cfg, logger)
	publisher, dlqPublisher := newOutboxPublishers(kafkaProducer, logger)

	outboxWorker := outbox.NewWorker(deps.outboxRepo, publisher, outbox.Config{
		PollInterval:   cfg.OutboxPollInterval,
		BatchSize:      cfg.OutboxBatchSize,
		MaxAttempts:    cfg.OutboxMaxAttempts,
		RetryBaseDelay: cfg.OutboxRetryDelay,
		DLQ:            dlqPublisher,
		Logger:         logger.WithField("component", "outbox-worker"),
		Metrics:        metrics.NewOutboxMetrics(prometheus.DefaultRegisterer),
	})
	outboxCancel, outboxDone := startWorker(ctx, outboxWorker.Run)

	cleanupCancel, cleanupDone := startWorker(ctx, idempotency.NewSweeper(deps.idempotencyRepo, idempotency.SweeperConfig{
		Interval:  cfg.IdempotencyCleanupInterval,
		BatchSize: cfg.IdempotencyCleanupBatchSize,
		Logger:    logger.WithField("component", "idempotency-cleanup"),
		Metrics:   idemMetrics,
	}).Run)

	stopBackground := func() {
		shutdownWorker("outbox", outboxCancel, outboxDone, logger)
		shutdownWorker("idempotency-cleanup", cleanupCancel, cleanupDone, logger)
		closeKafkaProducer(kafkaProducer, logger)
	}

	grpcServer, healthServer := newGRPCServer(ledgerSvc, deps, logger)

	httpHandler := httpapi.NewHandler(ledgerSvc,
		httpapi.WithLogger(logger.WithField("layer", "http")),
		httpapi.WithIdempotency(deps.idempotencyRepo, cfg.IdempotencyTTL),
		httpapi.WithIdempotencyMetrics(idemMetrics),
	)
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(httpHandler, logger.WithField("layer", "http")),
		ReadHeaderTimeout: httpReadHeaderTimeout,
	}

	grpcLis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		stopBackground()
		return fmt.Errorf("listen grpc %s: %w", cfg.GRPCAddr, err)
	}
	httpLis, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		_ = grpcLis.Close()
		stopBackground()
		return fmt.Errorf("listen http %s: %w", cfg.HTTPAddr, err)
	}

	// /readyz отвечает только после того, как API-порты заняты.
	healthHandler := healthcheck.NewHandler(version.Current().Version)
	healthHandler.RegisterChecker("storage", deps.storageChecker)
	healthHandler.RegisterChecker("outbox", healthcheck.NewOutboxChecker(deps.outboxRepo, healthcheck.DefaultOutboxMaxAge))
	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	errCh := make(chan error, 2)
	go func() {
		logger.Infof("gRPC server listening on %s", grpcLis.Addr())
		errCh <- grpcServer.Serve(grpcLis)
	}()
	go func() {
		logger.Infof("HTTP API listening on %s%s", httpLis.Addr(), httpapi.APIPrefix)
		if err := httpServer.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping servers")
		runErr = ctx.Err()
	case err := <-errCh:
		if !errors.Is(err, grpc.ErrServerStopped) {
			runErr = err
		}
	}

	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	shutdownHTTP(httpServer, logger)
	stopGRPC(grpcServer, cfg.ShutdownTimeout, logger)
	shutdownHTTP(metricsSrv, logger)
	stopBackground()

	return runErr
}

func newGRPCServer(ledgerSvc *ledger.Ledger, deps runtimeDependencies, logger *log.Entry) (*grpc.Server, *health.Server) {
	grpcMetrics := promgrpc.NewServerMetrics()
	if err := prometheus.Register(grpcMetrics); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*promgrpc.ServerMetrics); ok {
				grpcMetrics = existing
			}
		} else {
			logger.WithError(err).Warn("failed to register grpc metrics")
		}
	}

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(grpcMetrics.UnaryServerInterceptor()))
	posledgerv1.RegisterSaleLedgerServer(grpcServer,
		grpcsvc.NewSaleLedgerService(ledgerSvc, deps.idempotencyRepo, logger.WithField("layer", "grpc")))
	grpcMetrics.InitializeMetrics(grpcServer)

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(posledgerv1.SaleLedger_ServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	reflection.Register(grpcServer)
	return grpcServer, healthServer
}

// stopGRPC ждёт завершения активных RPC не дольше timeout.
func stopGRPC(srv *grpc.Server, timeout time.Duration, logger *log.Entry) {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	stoppedCh := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stoppedCh)
	}()
	select {
	case <-stoppedCh:
	case <-time.After(timeout):
		logger.Warn("graceful stop timed out, forcing stop")
		srv.Stop()
	}
}

// startMetricsServer запускает /metrics и health-пробы на отдельном порту.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: httpReadHeaderTimeout}
	go func() {
		logger.Infof("metrics available at %s/metrics", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).WithField("addr", srv.Addr).Warn("http shutdown with error")
	}
}
