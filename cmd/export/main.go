package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"telegram-history-export/internal/adapters/exporter"
	"telegram-history-export/internal/adapters/parser"
	"telegram-history-export/internal/cache"
	applog "telegram-history-export/internal/log"
	"telegram-history-export/internal/pkg/config"
	"telegram-history-export/internal/server/usecase"
)

func main() {
	if err := run(); err != nil {
		slog.Error("export failed", "error", err)
		os.Exit(1)
	}
}

// run инкапсулирует логику запуска экспорта из командной строки.
func run() error {
	var outputDir string
	var spreadsheet bool
	flag.StringVar(&outputDir, "output", "", "Output directory (overrides config)")
	flag.BoolVar(&spreadsheet, "spreadsheet", false, "Also write contacts.xlsx")
	flag.Parse()

	if flag.NArg() == 0 {
		return fmt.Errorf("snapshot file path is required. Usage: export [flags] <snapshot.json> ...")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if outputDir != "" {
		cfg.Export.OutputDir = outputDir
	}
	if spreadsheet {
		cfg.Export.Spreadsheet = true
	}

	var level slog.Level
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	// Экспорт несет персональные данные, номера телефонов маскируются.
	logger := applog.NewMaskedLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cacheStore := cache.NewCacheStore()
	runner := usecase.NewRunExportUseCase(cfg, parser.NewJSONParser(), cacheStore)
	console := exporter.NewConsoleExporter(os.Stdout)

	for _, filePath := range flag.Args() {
		stats, err := runner.RunExport(ctx, filePath)
		if err != nil {
			return fmt.Errorf("export of %s failed: %w", filePath, err)
		}
		if err := console.Export(stats); err != nil {
			return err
		}
	}
	return nil
}
