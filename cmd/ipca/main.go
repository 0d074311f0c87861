package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"ipcacli/internal/app"
	"ipcacli/internal/config"
	"ipcacli/internal/errors"
	"ipcacli/internal/infrastructure"
)

func main() {
	os.Exit(run())
}

func run() int {
	live := flag.Bool("live", false, "fetch from the SIDRA API instead of the bundled fixture")
	outDir := flag.String("out", "", "output directory for artifacts (defaults to output/ relative to the executable)")
	window := flag.Int("window", 0, "trailing window size in months (defaults to configured value)")
	configFile := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	// Initialize paths first to get default directories
	paths, err := config.GetPaths()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize paths: %v\n", err)
		return 1
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}

	// Flags take precedence over config
	if *outDir != "" {
		cfg.Pipeline.OutputDir = *outDir
	}
	if *window > 0 {
		cfg.Pipeline.WindowMonths = *window
	}
	if cfg.Logging.FilePath == "logs/ipca.log" {
		cfg.Logging.FilePath = paths.GetLogPath("ipca.log")
	}

	if err := paths.EnsureDirectories(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create required directories: %v\n", err)
		return 1
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger, using default: %v\n", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	runID := uuid.NewString()
	ctx := infrastructure.WithRunID(context.Background(), runID)

	logger.InfoContext(ctx, "Starting IPCA capture",
		slog.Bool("live", *live),
		slog.String("output_dir", cfg.Pipeline.OutputDir),
		slog.Int("window_months", cfg.Pipeline.WindowMonths),
		slog.Int("table_id", cfg.Sidra.TableID))

	pipeline := app.NewPipeline(cfg, paths, logger, *live)

	result, err := pipeline.Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Run failed",
			slog.String("error", err.Error()),
			slog.String("error_type", string(errors.TypeOf(err))))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Printf("Captured %d observations (window of %d), %d artifacts written\n",
		result.Observations, result.WindowSize, len(result.Artifacts))

	return 0
}
