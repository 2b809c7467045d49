// Command snapshot renders the dashboard page of each registered symbol to
// a standalone HTML file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"stock_sentiment/internal/app/di"
	"stock_sentiment/internal/feature/plot/adapters/htmlfile"
	plotusecase "stock_sentiment/internal/feature/plot/usecase"
	"stock_sentiment/internal/platform/config"
	"stock_sentiment/internal/platform/logger"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		slog.Error("snapshot failed", "error", err)
		os.Exit(1)
	}
}

// run parses args, renders the selected symbols and returns the joined
// per-symbol errors, if any.
func run(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	fs.SetOutput(stderr)
	out := fs.String("out", "snapshots", "output directory")
	symbol := fs.String("symbol", "", "render only this symbol")
	configPath := fs.String("config", os.Getenv("CONFIG_FILE"), "path to YAML config file")
	timeout := fs.Duration("timeout", 5*time.Minute, "overall time limit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logCloser, err := logger.Init(cfg.Logging)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	app, err := di.NewApp(cfg)
	if err != nil {
		return err
	}
	writer, err := htmlfile.NewWriter(*out)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	var symbols []string
	if s := strings.TrimSpace(*symbol); s != "" {
		symbols = []string{s}
	} else if symbols, err = app.Symbols.ListActiveCodes(ctx); err != nil {
		return fmt.Errorf("failed to load symbols: %w", err)
	}

	uc := plotusecase.NewSnapshotUsecase(app.Plot, writer)
	n, err := uc.SnapshotAll(ctx, symbols)
	slog.Info("snapshot finished", "written", n, "requested", len(symbols))
	return err
}
