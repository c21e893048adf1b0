// Command scoring-api runs the scoring API gateway.
//
// The gateway accepts JSON method calls on POST /method/, validates and
// authenticates them, and dispatches to the online_score and
// clients_interests handlers.
//
// # Configuration File
//
// Create a YAML file with gateway settings:
//
//	listen_addr: ":8080"
//	metrics_addr: ":8090"
//	enable_pprof: false
//	drain_duration: 5s
//	graceful_shutdown_duration: 10s
//	log:
//	  json: true
//	  debug: false
//	store:
//	  backend: "redis"   # memory, redis or postgres
//	  redis:
//	    addr: "localhost:6379"
//	    timeout: 3s
//
// # Endpoints
//
//   - POST /method/ - Method call endpoint
//   - GET /livez, /readyz - Health checks
//   - GET /drain, /undrain - Load balancer readiness control
//
// # Usage
//
//	go run ./cmd/scoring-api --config=scoring.yaml
//	go run ./cmd/scoring-api --addr=:8080 --store=memory
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/WeirdIdea/OTUS-06/api/httpserver"
	"github.com/WeirdIdea/OTUS-06/cmd/common"
	"github.com/WeirdIdea/OTUS-06/rpc"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to YAML config file")
		addr        = flag.String("addr", "", "HTTP listen address")
		metricsAddr = flag.String("metrics-addr", "", "Metrics listen address")
		storeKind   = flag.String("store", "", "Store backend: memory, redis or postgres")
		redisAddr   = flag.String("redis-addr", "", "Redis address")
		enablePprof = flag.Bool("pprof", false, "Enable pprof debugging API")
		logJSON     = flag.Bool("log-json", false, "Log in JSON format")
		logDebug    = flag.Bool("log-debug", false, "Log at debug level")
	)
	flag.Parse()

	// isFlagSet checks if a flag was explicitly provided on command line
	isFlagSet := func(name string) bool {
		found := false
		flag.Visit(func(f *flag.Flag) {
			if f.Name == name {
				found = true
			}
		})
		return found
	}

	cfg, err := loadConfiguration(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *addr != "" {
		cfg.ListenAddr = *addr
	}
	if isFlagSet("metrics-addr") {
		cfg.MetricsAddr = *metricsAddr
	}
	if *storeKind != "" {
		cfg.Store.Backend = *storeKind
	}
	if *redisAddr != "" {
		cfg.Store.Redis.Addr = *redisAddr
	}
	if *enablePprof {
		cfg.EnablePprof = true
	}
	if *logJSON {
		cfg.Log.JSON = true
	}
	if *logDebug {
		cfg.Log.Debug = true
	}

	if err := run(cfg); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfiguration(configPath string) (*common.Config, error) {
	if configPath != "" {
		return common.LoadConfig(configPath)
	}
	return common.DefaultConfig(), nil
}

func run(cfg *common.Config) error {
	log := common.NewLogger(cfg.Log)

	st, err := common.NewStore(cfg.Store, log)
	if err != nil {
		return fmt.Errorf("creating store: %w", err)
	}
	if closer, ok := st.(io.Closer); ok {
		defer closer.Close()
	}

	dispatcher := rpc.NewDispatcher(st, log)
	handler := httpserver.NewMethodHandler(dispatcher, log)

	srv, err := httpserver.New(&httpserver.HTTPServerConfig{
		ListenAddr:               cfg.ListenAddr,
		MetricsAddr:              cfg.MetricsAddr,
		EnablePprof:              cfg.EnablePprof,
		Log:                      log,
		DrainDuration:            cfg.DrainDuration,
		GracefulShutdownDuration: cfg.GracefulShutdownDuration,
		ReadTimeout:              cfg.ReadTimeout,
		WriteTimeout:             cfg.WriteTimeout,
	}, handler)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	srv.RunInBackground()
	log.Info("Scoring API started", "listenAddr", cfg.ListenAddr, "store", cfg.Store.Backend)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down scoring API")
	srv.Shutdown()
	return nil
}
