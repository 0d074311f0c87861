package app

import (
	"context"
	"fmt"
	"log/slog"

	"ipcacli/internal/config"
	"ipcacli/internal/dataprocessing"
	"ipcacli/internal/exporter"
	"ipcacli/internal/sidra"
)

// Source produces a raw /values payload for one run
type Source interface {
	Payload(ctx context.Context) ([]sidra.RawRecord, error)
}

// liveSource fetches the payload from the SIDRA API
type liveSource struct {
	client *sidra.Client
}

func (s *liveSource) Payload(ctx context.Context) ([]sidra.RawRecord, error) {
	return s.client.FetchValues(ctx)
}

// fixtureSource reads the bundled offline payload
type fixtureSource struct {
	path   string
	logger *slog.Logger
}

func (s *fixtureSource) Payload(ctx context.Context) ([]sidra.RawRecord, error) {
	return sidra.LoadFixture(ctx, s.path, s.logger)
}

// Result summarizes a completed run
type Result struct {
	Observations int
	WindowSize   int
	Artifacts    []string
}

// Pipeline runs the capture end to end: source -> transform -> write.
// Each stage is terminal on failure; no artifact set from a failed run
// should be treated as authoritative.
type Pipeline struct {
	cfg         *config.Config
	logger      *slog.Logger
	source      Source
	transformer *dataprocessing.Transformer
	writer      *exporter.Writer
}

// NewPipeline wires a pipeline for one run. With live set the payload
// comes from the SIDRA API, otherwise from the local fixture.
func NewPipeline(cfg *config.Config, paths *config.Paths, logger *slog.Logger, live bool) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	outDir := cfg.Pipeline.OutputDir
	if outDir == "" {
		outDir = paths.OutputDir
	}

	var source Source
	if live {
		source = &liveSource{client: sidra.NewClient(cfg.Sidra, logger)}
	} else {
		fixturePath := cfg.Pipeline.FixtureFile
		if fixturePath == "" {
			fixturePath = paths.FixtureFile
		}
		source = &fixtureSource{path: fixturePath, logger: logger}
	}

	return &Pipeline{
		cfg:         cfg,
		logger:      logger,
		source:      source,
		transformer: dataprocessing.NewTransformer(logger),
		writer:      exporter.NewWriter(outDir, logger),
	}
}

// NewPipelineWithSource wires a pipeline around a caller-provided source.
// Used by tests to inject payloads without touching the network or disk.
func NewPipelineWithSource(cfg *config.Config, outDir string, logger *slog.Logger, source Source) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cfg:         cfg,
		logger:      logger,
		source:      source,
		transformer: dataprocessing.NewTransformer(logger),
		writer:      exporter.NewWriter(outDir, logger),
	}
}

// Run executes the pipeline once
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	records, err := p.source.Payload(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch stage: %w", err)
	}

	dataset, err := p.transformer.Normalize(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("transform stage: %w", err)
	}

	window := dataset.Window(p.cfg.Pipeline.WindowMonths)

	p.logger.InfoContext(ctx, "Dataset ready",
		slog.Int("observations", dataset.Len()),
		slog.Int("window_size", len(window)))

	artifacts := []struct {
		filename string
		write    func() error
	}{
		{config.FullParquetFile, func() error {
			return p.writer.WriteParquet(ctx, config.FullParquetFile, dataset.Rows)
		}},
		{config.CleanParquetFile, func() error {
			return p.writer.WriteParquet(ctx, config.CleanParquetFile, dataset.Rows)
		}},
		{config.WindowParquetFile, func() error {
			return p.writer.WriteParquet(ctx, config.WindowParquetFile, window)
		}},
		{config.WindowCSVFile, func() error {
			return p.writer.WriteObservationsCSV(ctx, config.WindowCSVFile, window)
		}},
		{config.WorkbookFile, func() error {
			return p.writer.WriteWorkbook(ctx, config.WorkbookFile, dataset.Rows)
		}},
	}

	result := &Result{
		Observations: dataset.Len(),
		WindowSize:   len(window),
	}

	for _, artifact := range artifacts {
		if err := artifact.write(); err != nil {
			return nil, fmt.Errorf("write stage (%s): %w", artifact.filename, err)
		}
		result.Artifacts = append(result.Artifacts, artifact.filename)
	}

	p.logger.InfoContext(ctx, "Run complete",
		slog.Int("observations", result.Observations),
		slog.Int("window_size", result.WindowSize),
		slog.Int("artifacts", len(result.Artifacts)))

	return result, nil
}
