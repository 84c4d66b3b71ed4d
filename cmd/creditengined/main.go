package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ledgerline/credit-engine/internal/application/usecase"
	"github.com/ledgerline/credit-engine/internal/domain/service"
	"github.com/ledgerline/credit-engine/internal/infrastructure/config"
	"github.com/ledgerline/credit-engine/internal/infrastructure/messaging"
	pgRepo "github.com/ledgerline/credit-engine/internal/infrastructure/persistence/postgres"
	redisCache "github.com/ledgerline/credit-engine/internal/infrastructure/persistence/redis"
	grpcPresentation "github.com/ledgerline/credit-engine/internal/presentation/grpc"
	"github.com/ledgerline/credit-engine/internal/presentation/rest"
	pkgkafka "github.com/ledgerline/credit-engine/pkg/kafka"
	"github.com/ledgerline/credit-engine/pkg/observability"
	pkgpostgres "github.com/ledgerline/credit-engine/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slog.SetDefault(logger)

	logger.Info("starting credit-engine",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Metrics exporter. The /metrics endpoint is served by the HTTP router.
	if _, _, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: cfg.ServiceName}); err != nil {
		logger.Warn("failed to initialize metrics exporter, continuing", "error", err)
	}

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pgCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}
	pool, err := pkgpostgres.NewPool(dbCtx, pgCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Run database migrations.
	if migErr := pkgpostgres.RunMigrations(pgCfg.DSN(), "file://migrations"); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Redis connection for the score cache.
	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	// Wire infrastructure adapters.
	borrowerRepo := pgRepo.NewBorrowerRepo(pool)
	loanRepo := pgRepo.NewLoanRepo(pool)
	appRepo := pgRepo.NewLoanApplicationRepo(pool)
	paymentRepo := pgRepo.NewPaymentRepo(pool)
	penaltyRepo := pgRepo.NewPenaltyRepo(pool)
	caseRepo := pgRepo.NewCollectionCaseRepo(pool)
	notifications := pgRepo.NewNotificationStore(pool)
	auditLog := pgRepo.NewAuditLog(pool, logger)
	ledger := pgRepo.NewLedgerStore(pool)
	scoreCache := redisCache.NewScoreCache(redisClient)

	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer kafkaProducer.Close()
	publisher := messaging.NewKafkaEventPublisher(kafkaProducer, cfg.Kafka.Topic, logger)

	// Domain services.
	eligibilityEngine := service.NewEligibilityEngine()
	scoreEngine := service.NewCreditScoreEngine()
	limitCalc := service.NewCreditLimitCalculator()

	// Wire use cases.
	refreshUC := usecase.NewRefreshCreditScoreUseCase(
		borrowerRepo, loanRepo, appRepo, paymentRepo,
		scoreEngine, eligibilityEngine, scoreCache, publisher, logger,
	)
	submitAppUC := usecase.NewSubmitApplicationUseCase(
		appRepo, borrowerRepo, loanRepo, eligibilityEngine, limitCalc, publisher, auditLog, logger,
	)
	eligibilityUC := usecase.NewComputeEligibilityUseCase(
		appRepo, borrowerRepo, loanRepo, eligibilityEngine, publisher, logger,
	)
	disburseUC := usecase.NewDisburseLoanUseCase(
		appRepo, ledger, publisher, auditLog, refreshUC, logger,
	)
	paymentUC := usecase.NewRecordPaymentUseCase(
		loanRepo, ledger, publisher, auditLog, refreshUC, logger,
	)
	limitUC := usecase.NewComputeCreditLimitUseCase(borrowerRepo, loanRepo, limitCalc)
	sweepUC := usecase.NewRunDelinquencySweepUseCase(
		loanRepo, paymentRepo, penaltyRepo, caseRepo, notifications, auditLog, publisher, logger,
	)

	// gRPC server.
	grpcHandler := grpcPresentation.NewCreditHandler(
		submitAppUC, eligibilityUC, disburseUC, paymentUC, refreshUC, limitUC, sweepUC,
	)
	grpcServer := grpcPresentation.NewServer(grpcHandler, logger)

	// HTTP server.
	restHandler := rest.NewCreditHandler(
		submitAppUC, eligibilityUC, disburseUC, paymentUC, refreshUC, limitUC, sweepUC,
		appRepo, loanRepo, paymentRepo,
	)
	router := rest.NewRouter(restHandler, pool, cfg.ServiceName)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("credit-engine stopped")
}
