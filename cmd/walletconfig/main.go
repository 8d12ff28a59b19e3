package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wallet_config/internal/app/port"
	"wallet_config/internal/app/provider"
	"wallet_config/internal/app/service"
	"wallet_config/internal/config"
	"wallet_config/internal/domain/entity"
	"wallet_config/internal/infrastructure/envloader"
	"wallet_config/internal/infrastructure/metrics"
	clientprovider "wallet_config/internal/infrastructure/network/client"
	networkdefinition "wallet_config/internal/infrastructure/network/definition"
	"wallet_config/internal/infrastructure/network/probe"
	"wallet_config/internal/infrastructure/restapi"
	"wallet_config/internal/pkg/logger"
	"wallet_config/internal/pkg/utils"

	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

const usage = `usage: walletconfig [serve|print|verify]

  serve   serve the wallet configuration over HTTP (default)
  print   print the wallet configuration as JSON and exit
  verify  check that every transport endpoint reports its configured chain ID
`

func main() {
	mode := "serve"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}
	switch mode {
	case "serve", "print", "verify":
	case "-h", "--help", "help":
		fmt.Fprint(os.Stdout, usage)
		return
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stderr)

	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yml")
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := logger.Init(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		logrus.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.NewSlogAdapter()

	settings, err := envloader.NewEnvLoader(appLogger.Info, envloader.WithFile(utils.GetEnv("ENV_FILE", cfg.EnvFile))).Load()
	if err != nil {
		logger.Fatal("Failed to read environment settings", "error", err)
	}

	registry := networkdefinition.NewRegistry(appLogger)
	walletCfg, err := provider.NewWalletConfigProvider(registry, providerOptions(cfg), appLogger).Build(settings)
	if err != nil {
		if errors.Is(err, entity.ErrMissingRequiredConfig) {
			logger.Fatal("Startup aborted: required configuration is missing", "error", err)
		}
		logger.Fatal("Failed to build wallet configuration", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch mode {
	case "print":
		if err := printConfig(walletCfg); err != nil {
			logger.Fatal("Failed to print wallet configuration", "error", err)
		}
	case "verify":
		if err := verify(ctx, walletCfg, appLogger); err != nil {
			logger.Fatal("Transport verification failed", "error", err)
		}
		appLogger.Info("All transports verified")
	default:
		serve(ctx, cfg, walletCfg, registry, appLogger)
	}
}

func providerOptions(cfg *config.Config) provider.Options {
	opts := provider.DefaultOptions()
	opts.AppName = cfg.Wallet.AppName
	opts.SSR = cfg.Wallet.SSREnabled()
	opts.DefaultTransport = entity.TransportConfig{
		Batch:   cfg.Transport.BatchEnabled(),
		Timeout: time.Duration(cfg.Transport.DefaultTimeoutMs) * time.Millisecond,
	}
	return opts
}

type printedConfig struct {
	restapi.WalletConfigResponse
	MockChains map[uint64]string `json:"mockChains"`
}

func printConfig(walletCfg *entity.WalletConfig) error {
	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(printedConfig{
		WalletConfigResponse: restapi.NewWalletConfigResponse(walletCfg),
		MockChains:           provider.MockChains(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal wallet configuration: %w", err)
	}
	_, err = fmt.Fprintln(os.Stdout, string(out))
	return err
}

func verify(ctx context.Context, walletCfg *entity.WalletConfig, l port.Logger) error {
	clients := clientprovider.NewEVMClientProvider(walletCfg, l)
	defer clients.Close()

	var failed int
	for _, chainID := range walletCfg.TransportChainIDs() {
		c, err := clients.GetClient(ctx, chainID)
		if err != nil {
			failed++
			continue
		}
		callCtx, cancel := context.WithTimeout(ctx, c.Transport().Timeout)
		status, err := c.VerifyChainID(callCtx)
		cancel()
		if err != nil {
			failed++
			l.Error("Transport verification failed", "chain_id", chainID, "reported_chain_id", status.ChainID, "error", err)
			continue
		}
		l.Info("Transport verified", "chain_id", chainID, "network_id", status.NetworkID, "batch", c.Transport().Batch)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d transports failed verification", failed, len(walletCfg.TransportChainIDs()))
	}
	return nil
}

func serve(ctx context.Context, cfg *config.Config, walletCfg *entity.WalletConfig, registry port.ChainRegistry, l port.Logger) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)
	m.ConfiguredChains.Set(float64(len(walletCfg.Chains())))

	var health port.EndpointHealthService
	if cfg.Probe.Enabled {
		probeLogger := logger.FromSlog(slog.Default().With("component", "endpoint_health"))
		prober := probe.NewProber(
			time.Duration(cfg.Probe.TimeoutMs)*time.Millisecond,
			cfg.Probe.MaxRetries,
			time.Duration(cfg.Probe.RetryDelayMs)*time.Millisecond,
			probeLogger,
		)
		health = service.NewEndpointHealthService(walletCfg, prober, m, probeLogger, service.EndpointHealthConfig{
			RateLimit:  cfg.Probe.RateLimit,
			BurstLimit: cfg.Probe.BurstLimit,
			CacheTTL:   time.Duration(cfg.Probe.CacheTTLSeconds) * time.Second,
		})
		go service.Run(ctx, health, time.Duration(cfg.Probe.IntervalSeconds)*time.Second, probeLogger)
		l.Info("Endpoint probing enabled", "interval_seconds", cfg.Probe.IntervalSeconds)
	}

	handler := restapi.NewConfigHandler(walletCfg, registry, provider.MockChains(), health, l)
	router := restapi.SetupRouter(handler, restapi.RouterConfig{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Gatherer:       reg,
		Logger:         l,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		l.Info("Server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	l.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error("Server forced to shutdown", "error", err)
		return
	}
	l.Info("Server exiting")
}
