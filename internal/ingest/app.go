package ingest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/coursework/internal/ingest/config"
	"github.com/dmitrijs2005/coursework/internal/logging"
	"github.com/dmitrijs2005/coursework/internal/migrations"
)

// ErrInvariant is returned when the final counters do not add up.
var ErrInvariant = errors.New("invariant check failed")

// now is a test seam for the run clock.
var now = time.Now

// App is the one-shot ingestion run.
type App struct {
	config *config.Config
	logger logging.Logger
	out    io.Writer
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		logger: logging.NewJSONLogger(os.Stderr, slog.LevelInfo),
		out:    os.Stdout,
	}
}

// Run connects to the database, applies migrations, ingests the source and
// prints the summary. Batches committed before a failure stay committed.
func (a *App) Run(ctx context.Context) error {
	start := now()

	db, err := sql.Open("pgx", a.config.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db open error: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping error: %w", err)
	}

	if err := migrations.Up(ctx, db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	src, err := OpenSource(ctx, a.config.SourcePath, S3Config{
		Region:       a.config.S3Region,
		BaseEndpoint: a.config.S3BaseEndpoint,
		AccessKey:    a.config.S3AccessKey,
		SecretKey:    a.config.S3SecretKey,
	})
	if err != nil {
		return err
	}
	defer src.Close()

	a.logger.Info(ctx, "Starting ingestion", "source", a.config.SourcePath, "batch_size", a.config.BatchSize)

	return a.ingest(ctx, NewPostgresStore(db, a.logger), src, start)
}

func (a *App) ingest(ctx context.Context, store Store, src io.Reader, start time.Time) error {
	reg := prometheus.NewRegistry()
	pipeline := NewPipeline(store, a.config.BatchSize, a.logger, NewMetrics(reg))

	counters, err := pipeline.Run(ctx, src)
	if err != nil {
		a.logger.Error(ctx, "ingestion aborted",
			"parsed", counters.Parsed, "inserted", counters.Inserted,
			"duplicates", counters.Duplicates, "failed", counters.Failed)
		return fmt.Errorf("ingestion aborted: %w", err)
	}

	report := Report{Counters: counters, Elapsed: now().Sub(start)}
	if err := report.Print(a.out); err != nil {
		return err
	}

	if a.config.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(a.config.MetricsFile, reg); err != nil {
			a.logger.Warn(ctx, "metrics not written", "file", a.config.MetricsFile, "error", err.Error())
		}
	}

	if !counters.Invariant() {
		return ErrInvariant
	}
	return nil
}
