package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Garbi-Collector/stokea2/pkg/infrastructure/config"
	"github.com/Garbi-Collector/stokea2/pkg/infrastructure/events"
	"github.com/Garbi-Collector/stokea2/pkg/infrastructure/logging"
	"github.com/Garbi-Collector/stokea2/pkg/infrastructure/telemetry"
	"github.com/Garbi-Collector/stokea2/pkg/interfaces/cli/commands"
	"github.com/Garbi-Collector/stokea2/pkg/interfaces/cli/output"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Command line flags
	var (
		dbPath  = flag.String("db", cfg.DBPath, "SQLite database file")
		driver  = flag.String("driver", cfg.DBDriver, "Storage driver: sqlite, mysql, memory")
		format  = flag.String("format", "text", "Output format: text, json")
		locale  = flag.String("locale", cfg.Locale, "Locale for money formatting")
		verbose = flag.Bool("verbose", false, "Log domain events")
	)
	flag.Parse()

	cfg.DBPath = *dbPath
	cfg.DBDriver = *driver
	cfg.Locale = *locale
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, logFile, err := logging.SetupLogger(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	ctx := context.Background()
	shutdown, err := telemetry.Setup(ctx, "stokea", cfg.OTelEndpoint, cfg.OTelEnabled)
	if err != nil {
		logger.Printf("Warning: tracing disabled: %v", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			logger.Printf("Warning: failed to flush traces: %v", err)
		}
	}()

	store, err := cfg.OpenStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.DBDriver, err)
	}
	defer store.Close()

	bus := events.NewLocalBusWithLogger(logger)
	defer bus.Wait()
	if *verbose || logFile != nil {
		detach, err := events.SubscribeLogger(bus, logger)
		if err != nil {
			return fmt.Errorf("failed to subscribe event logger: %w", err)
		}
		defer func() {
			bus.Wait()
			_ = detach()
		}()
	}

	cmd := commands.NewRootCommand(commands.Config{
		Store:  store,
		Events: bus,
		Logger: logger,
		Output: output.Config{
			Format:         *format,
			Locale:         cfg.Locale,
			CurrencySymbol: cfg.CurrencySymbol,
		},
		Out:      os.Stdout,
		Location: time.Local,
		Now:      time.Now,
	})
	return cmd.Execute(ctx, flag.Args())
}
