package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/user/review-scraper/internal/adapter/chromedp_driver"
	"github.com/user/review-scraper/internal/adapter/csvsource"
	"github.com/user/review-scraper/internal/adapter/jsonsink"
	"github.com/user/review-scraper/internal/usecase"
	"github.com/user/review-scraper/pkg/config"
	"github.com/user/review-scraper/pkg/jitter"
	"github.com/user/review-scraper/pkg/logger"
	"github.com/user/review-scraper/pkg/metrics"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s INPUT_CSV OUTPUT_JSON\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	inputPath, outputPath := flag.Arg(0), flag.Arg(1)

	// --- Configuration ---
	_ = godotenv.Load()
	cfg := config.Load()

	// --- Logger ---
	logLevel := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}
	logger.Init(os.Stdout, logLevel)
	slog.Info("Logger initialized", "level", logLevel.String())

	// --- Metrics ---
	metrics.Init()
	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				slog.Error("Metrics endpoint stopped", "error", err)
			}
		}()
		slog.Info("Metrics endpoint started", "addr", cfg.MetricsAddr)
	}

	// --- Input ---
	entities, err := csvsource.New(inputPath).Load()
	if err != nil {
		slog.Error("Unable to load input list", "path", inputPath, "error", err)
		os.Exit(1)
	}
	slog.Info("Input list loaded", "path", inputPath, "entities", len(entities))

	// --- Browser session ---
	session, err := chromedp_driver.NewSession(cfg)
	if err != nil {
		slog.Error("Unable to start browser session", "error", err)
		os.Exit(1)
	}
	defer session.Close()
	slog.Info("Browser session established")

	// --- Scrape ---
	state := usecase.NewWorkState(entities)
	pipeline := usecase.NewEntityPipeline(session, jitter.NewRandom())
	orchestrator := usecase.NewScrapeOrchestrator(pipeline, state)
	coordinator := usecase.NewRetryCoordinator(orchestrator, state, jsonsink.New(outputPath), cfg.MaxAttempts)

	results, err := coordinator.Run(context.Background())
	if err != nil {
		slog.Error("Scrape terminated", "error", err, "entities_committed", len(results), "output", outputPath)
		os.Exit(1)
	}
	slog.Info("Scrape finished", "entities_committed", len(results), "output", outputPath)
}
