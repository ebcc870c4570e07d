package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"retail-insights/internal/config"
	"retail-insights/internal/domain"
	"retail-insights/internal/gateway"
	"retail-insights/internal/logger"
	"retail-insights/internal/usecase"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup runs before exit.
func run() int {
	cfg := config.Load()

	// Flags override environment
	flag.StringVar(&cfg.Source, "source", cfg.Source, "Input source: csv or sqlite")
	flag.StringVar(&cfg.CSVPath, "input", cfg.CSVPath, "Path to the sales CSV file")
	flag.StringVar(&cfg.SQLitePath, "db", cfg.SQLitePath, "Path to the SQLite database")
	flag.StringVar(&cfg.SQLiteTable, "table", cfg.SQLiteTable, "Raw sales table when -source=sqlite")
	flag.StringVar(&cfg.ErrorPolicy, "on-error", cfg.ErrorPolicy, "Bad row policy: abort or skip")
	flag.StringVar(&cfg.SummaryDir, "summary-dir", cfg.SummaryDir, "Directory for summary CSV files (optional)")
	flag.BoolVar(&cfg.StoreReport, "store", cfg.StoreReport, "Persist the report to SQLite")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	cleanOutput := flag.String("clean-output", "", "Write cleaned transactions to this CSV file and exit")
	flag.BoolVar(&cfg.ImportCSV, "import", false, "Copy the CSV input into the SQLite raw table and exit")
	flag.Parse()

	log := logger.New(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		return 2
	}
	policy, _ := domain.ParseErrorPolicy(cfg.ErrorPolicy)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx, log)

	// --- Wiring ---
	var store *gateway.SQLiteStore
	if cfg.UsesSQLite() {
		s, err := gateway.NewSQLiteStore(ctx, cfg.SQLitePath)
		if err != nil {
			log.Error().Err(err).Str("path", cfg.SQLitePath).Msg("failed to open sqlite store")
			return 1
		}
		defer s.Close()
		store = s
	}

	if cfg.ImportCSV {
		raws, err := gateway.NewCSVTransactionSource().GetRawTransactions(ctx, cfg.CSVPath)
		if err == nil {
			err = store.ImportRawTransactions(ctx, raws)
		}
		if err != nil {
			log.Error().Err(err).Msg("import failed")
			return 1
		}
		log.Info().Int("rows", len(raws)).Str("table", gateway.DefaultRawTable).Msg("raw transactions imported")
		return 0
	}

	var source usecase.TransactionSource = gateway.NewCSVTransactionSource()
	if cfg.Source == config.SourceSQLite {
		source = store
	}
	salesReport := usecase.NewSalesReportUseCase(source, log)

	if *cleanOutput != "" {
		if _, err := salesReport.Clean(ctx, cfg.Location(), policy, gateway.NewCSVCanonicalWriter(*cleanOutput)); err != nil {
			log.Error().Err(err).Msg("cleaning failed")
			return 1
		}
		log.Info().Str("output", *cleanOutput).Msg("cleaned data saved")
		return 0
	}

	writers := []usecase.ReportWriter{gateway.NewJSONReportWriter(os.Stdout)}
	if cfg.SummaryDir != "" {
		writers = append(writers, gateway.NewCSVSummaryWriter(cfg.SummaryDir))
	}
	if cfg.StoreReport {
		writers = append(writers, store)
	}

	// --- Execute the Usecase ---
	if _, err := salesReport.Generate(ctx, cfg.Location(), policy, writers...); err != nil {
		log.Error().Err(err).Msg("report generation failed")
		return 1
	}
	return 0
}
