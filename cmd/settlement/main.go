package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/piresc/cardsettle/internal/pkg/chain"
	"github.com/piresc/cardsettle/internal/pkg/circuitbreaker"
	"github.com/piresc/cardsettle/internal/pkg/config"
	"github.com/piresc/cardsettle/internal/pkg/database"
	"github.com/piresc/cardsettle/internal/pkg/health"
	httpclient "github.com/piresc/cardsettle/internal/pkg/http"
	"github.com/piresc/cardsettle/internal/pkg/logger"
	"github.com/piresc/cardsettle/internal/pkg/middleware"
	nrpkg "github.com/piresc/cardsettle/internal/pkg/newrelic"
	nsqpkg "github.com/piresc/cardsettle/internal/pkg/nsq"
	"github.com/piresc/cardsettle/internal/pkg/retry"
	"github.com/piresc/cardsettle/internal/pkg/server"
	"github.com/piresc/cardsettle/services/settlement/gateway"
	"github.com/piresc/cardsettle/services/settlement/handler"
	"github.com/piresc/cardsettle/services/settlement/repository"
	"github.com/piresc/cardsettle/services/settlement/usecase"
)

func main() {
	appName := "settlement-service"
	configPath := "config/settlement.env"
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
	)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	defer postgresClient.Close()

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	defer redisClient.Close()

	// Initialize NSQ producer
	producer, err := nsqpkg.NewProducer(configs.NSQ.NSQDAddress)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NSQ", logger.Err(err))
	}
	defer producer.Stop()

	// Initialize chain client
	dialCtx, cancelDial := context.WithTimeout(context.Background(), 10*time.Second)
	backend, err := chain.Dial(dialCtx, configs.Chain.RPCURL)
	cancelDial()
	if err != nil {
		zapLogger.Fatal("Failed to dial chain RPC", logger.Err(err))
	}
	defer backend.Close()

	chainReads := retry.New(retry.Config{
		MaxRetries: configs.Chain.ReadRetries,
		BaseDelay:  200 * time.Millisecond,
		MaxDelay:   2 * time.Second,
		Multiplier: 2.0,
		Jitter:     true,
	}, zapLogger)
	chainClient, err := chain.NewClient(backend, chain.Config{
		ChainID:      configs.Chain.ChainID,
		PrivateKey:   configs.Chain.SignerPrivateKey,
		GasLimit:     configs.Chain.GasLimit,
		PollInterval: time.Duration(configs.Chain.ConfirmationPoll) * time.Millisecond,
	}, chainReads)
	if err != nil {
		zapLogger.Fatal("Failed to initialize chain client", logger.Err(err))
	}

	logger.Info("Chain client initialized",
		logger.Int64("chain_id", configs.Chain.ChainID),
		logger.String("signer", chainClient.From().Hex()))

	// Initialize exchange-rate HTTP client
	fxBreakerCfg := circuitbreaker.DefaultConfig("fx-rates")
	fxBreakerCfg.IsFailure = httpclient.IsRetryable
	fxBreaker := circuitbreaker.New(fxBreakerCfg, zapLogger)

	fxHeader := map[string]string{}
	if configs.FX.APIKey != "" {
		fxHeader["X-API-Key"] = configs.FX.APIKey
	}
	fxRetryCfg := retry.DefaultConfig()
	fxRetryCfg.MaxRetries = 2
	fxRetryCfg.IsRetryable = httpclient.IsRetryable
	fxClient := httpclient.NewClient(httpclient.Config{
		BaseURL: configs.FX.BaseURL,
		Timeout: time.Duration(configs.FX.Timeout) * time.Second,
		Header:  fxHeader,
	}, fxBreaker, retry.New(fxRetryCfg, zapLogger))

	// Initialize repositories
	ledgerRepo := repository.NewLedgerRepository(configs, postgresClient.GetDB())
	cacheRepo := repository.NewCacheRepository(redisClient)

	// Initialize gateways
	chainGW, err := gateway.NewChainGW(configs.Chain, chainClient)
	if err != nil {
		zapLogger.Fatal("Failed to initialize chain gateway", logger.Err(err))
	}
	rateGW := gateway.NewRateGW(configs.FX, fxClient, cacheRepo)
	eventGW := gateway.NewEventGW(configs.NSQ, producer)

	// Initialize usecase
	settlementUC, err := usecase.NewSettlementUC(configs, ledgerRepo, cacheRepo, chainGW, rateGW, eventGW)
	if err != nil {
		zapLogger.Fatal("Failed to initialize settlement use case", logger.Err(err))
	}

	// Initialize handlers
	settlementHandler := handler.NewHandler(settlementUC, configs, nrApp)

	// Initialize NSQ consumers
	if err := settlementHandler.InitNSQConsumers(); err != nil {
		zapLogger.Fatal("Failed to initialize NSQ consumers", logger.Err(err))
	}

	// Initialize Echo server
	e := echo.New()
	e.Server.ReadTimeout = time.Duration(configs.Server.ReadTimeout) * time.Second
	e.Server.WriteTimeout = time.Duration(configs.Server.WriteTimeout) * time.Second

	// Add middlewares (panic recovery should be first)
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	if nrApp != nil {
		e.Use(nrecho.Middleware(nrApp))
	}
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	// Initialize enhanced health service
	healthService := health.NewHealthService(zapLogger)
	healthService.AddChecker("postgres", health.NewPostgresHealthChecker(postgresClient))
	healthService.AddChecker("redis", health.NewRedisHealthChecker(redisClient))
	healthService.AddChecker("nsq", health.NewNSQHealthChecker(producer))
	healthService.AddChecker("chain", health.CheckerFunc(chainClient.Ping))
	healthService.AddChecker("fx", health.NewBreakerHealthChecker(fxBreaker))

	health.RegisterEnhancedHealthEndpoints(e, appName, configs.App.Version, healthService)

	// Register service routes
	settlementHandler.RegisterRoutes(e, middleware.NewAPIKeyValidator(configs.APIKey), redisClient.GetClient())

	// Graceful shutdown: HTTP first, then consumers, then in-flight publishes
	addr := fmt.Sprintf("%s:%d", configs.Server.Host, configs.Server.Port)
	srv := server.NewGracefulServer(e, zapLogger, addr, time.Duration(configs.Server.ShutdownTimeout)*time.Second)

	components := srv.Components()
	components.Register("nsq-consumers", func(context.Context) error {
		settlementHandler.StopNSQConsumers()
		return nil
	})
	// Points publishes still in flight need the producer
	if w, ok := settlementUC.(interface{ Wait() }); ok {
		components.Register("background-publishes", func(context.Context) error {
			w.Wait()
			return nil
		})
	}
	if nrApp != nil {
		components.Register("newrelic", func(context.Context) error {
			nrApp.Shutdown(10 * time.Second)
			return nil
		})
	}

	if err := srv.Run(); err != nil {
		zapLogger.Error("Server stopped with errors", logger.Err(err))
	}

	zapLogger.Info("Server exiting gracefully")
	_ = zapLogger.Sync()
}
