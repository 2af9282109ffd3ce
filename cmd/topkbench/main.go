package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elcruzo/topkbench/internal/bench"
	"github.com/elcruzo/topkbench/internal/config"
	"github.com/elcruzo/topkbench/internal/logging"
	"github.com/elcruzo/topkbench/internal/metrics"
	"github.com/elcruzo/topkbench/internal/selection"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
	k           = flag.Int("k", 0, "Number of largest elements to select (overrides config)")
	scale       = flag.Int("scale", 0, "Divide every case size by this factor (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Serve Prometheus metrics on this port (overrides config)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg)

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	pivot, _ := selection.ParsePivotStrategy(cfg.Bench.Pivot)
	algorithms := bench.DefaultAlgorithms(pivot)
	if err := cfg.ValidateAlgorithms(bench.AlgorithmNames(algorithms)); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry, cfg.Metrics.Namespace)

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		})
		metricsServer = &http.Server{Addr: fmt.Sprintf(":%d", cfg.Metrics.Port), Handler: mux}

		go func() {
			logger.Info("Starting metrics server", zap.Int("port", cfg.Metrics.Port))
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Failed to start metrics server", zap.Error(err))
			}
		}()
	}

	runner, err := bench.NewRunner(bench.Options{
		Algorithms: algorithms,
		Generator:  cfg.Generator,
		Workers:    cfg.Bench.Workers,
		Verify:     cfg.Bench.Verify,
	}, collector, logger)
	if err != nil {
		logger.Fatal("Failed to create runner", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	reports, runErr := runner.Run(ctx, buildCases(cfg.Bench))
	for _, report := range reports {
		fmt.Printf("%s: %s over %d elements (%s), k=%d\n",
			report.Algorithm, report.Mean, report.Elements, report.InputSize, report.K)
	}

	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to stop metrics server", zap.Error(err))
		}
		shutdownCancel()
	}

	if runErr != nil {
		logger.Error("Benchmark run failed", zap.Error(runErr))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("Benchmark run complete", zap.Int("cases", len(reports)))
}

func applyFlags(cfg *config.Config) {
	if *k > 0 {
		cfg.Bench.K = *k
	}
	if *scale > 0 {
		cfg.Bench.Scale = *scale
	}
	if *metricsPort > 0 {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Port = *metricsPort
	}
}

func buildCases(bc config.BenchConfig) []bench.Case {
	resolved := bc.ResolvedCases()
	cases := make([]bench.Case, 0, len(resolved))
	for _, cc := range resolved {
		cases = append(cases, bench.Case{
			Algorithm: cc.Algorithm,
			Size:      cc.Size,
			K:         cc.K,
			Trials:    cc.Trials,
		})
	}
	return cases
}
