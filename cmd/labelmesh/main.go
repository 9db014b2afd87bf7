package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"labelmesh/internal/logger"
	"labelmesh/pkg/atlas"
	"labelmesh/pkg/catalog"
	"labelmesh/pkg/config"
	"labelmesh/pkg/reconstruction"
	"labelmesh/pkg/surface"
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "labelmesh.yaml", "Configuration file (defaults are used if it does not exist)")
	inputDir := flag.String("input", "", "Directory with one slice-stack directory or .obj mesh per label")
	outputDir := flag.String("output", "", "Output directory (overrides output.dir)")
	withAtlas := flag.Bool("atlas", false, "Also write the colorized slice atlas")
	workers := flag.Int("workers", 0, "Number of labels extracted concurrently (overrides processing.workers)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	logFile := flag.String("log-file", "", "Also log to this rotating file")
	writeConfig := flag.Bool("write-config", false, "Write the default configuration to -config and exit")
	flag.Parse()

	if *writeConfig {
		if err := config.CreateDefaultConfigFile(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Default configuration written to %s\n", *configPath)
		return
	}

	// Validate inputs
	if *inputDir == "" && flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] -input <dir> [label ...]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}
	if *withAtlas {
		cfg.Atlas.Enabled = true
	}
	if *workers > 0 {
		cfg.Processing.Workers = *workers
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *logFile != "" {
		cfg.Logging.File = *logFile
	}
	if err := cfg.ExpandPaths(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, *inputDir, flag.Args()); err != nil {
		logger.Error("Reconstruction failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, inputDir string, inputs []string) error {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	format, err := atlas.ParseFormat(cfg.Atlas.Format)
	if err != nil {
		return err
	}

	// Initialize reconstruction parameters
	params := &reconstruction.Params{
		InputDir:      inputDir,
		Inputs:        inputs,
		OutputFile:    cfg.Path(cfg.Output.Model),
		MaterialFile:  cfg.Path(cfg.Output.Material),
		PaletteFile:   cfg.Path(cfg.Output.Palette),
		Compress:      cfg.Output.Compress,
		AtlasFormat:   format,
		AtlasReverse:  cfg.Atlas.Reverse,
		BackgroundDir: cfg.Atlas.BackgroundDir,
		NumWorkers:    cfg.Processing.Workers,
		IsoLabel:      cfg.Processing.IsoLabel,
		Catalog:       cat,
	}
	if cfg.Atlas.Enabled {
		params.AtlasDir = cfg.Path(cfg.Output.AtlasDir)
	}

	// Create reconstructor instance
	reconstructor := reconstruction.NewReconstructor(params)
	reconstructor.Surface = &surface.MarchingCubes{
		Delta:       cfg.Processing.Delta,
		SearchIters: cfg.Processing.SearchIterations,
		SmoothIters: cfg.Processing.SmoothIterations,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Run the reconstruction pipeline
	summary, err := reconstructor.Process(ctx)
	if err != nil {
		return err
	}

	logger.Sugar.Infof("Composite model saved to %s (%d objects, %s vertices, %s faces) in %s",
		params.ModelPath(), summary.Objects,
		humanize.Comma(int64(summary.Vertices)), humanize.Comma(int64(summary.Faces)),
		summary.Duration.Round(time.Millisecond))
	if len(summary.Empty) > 0 {
		logger.Sugar.Infof("Labels without surface: %s", strings.Join(summary.Empty, ", "))
	}
	if len(summary.Fallbacks) > 0 {
		logger.Sugar.Warnf("Labels colored with the fallback: %s", strings.Join(summary.Fallbacks, ", "))
	}
	if summary.AtlasSlices > 0 {
		logger.Sugar.Infof("Atlas of %d slices saved to %s", summary.AtlasSlices, params.AtlasDir)
	}
	return nil
}

// loadCatalog returns the configured catalog, or the built-in whole-body
// catalog when none is configured.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Palette.CatalogFile == "" {
		return catalog.DefaultHSV(), nil
	}
	cat, err := catalog.Load(cfg.Palette.CatalogFile)
	if err != nil {
		return nil, err
	}
	if cat.Scheme != cfg.Palette.Scheme {
		logger.Info("Catalog scheme overrides configured scheme",
			zap.String("catalog", filepath.Base(cfg.Palette.CatalogFile)),
			zap.String("scheme", string(cat.Scheme)))
	}
	return cat, nil
}
