package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tatianab/climate-quest/internal/config"
	"github.com/tatianab/climate-quest/internal/engine"
	"github.com/tatianab/climate-quest/internal/models"
	"github.com/tatianab/climate-quest/internal/narrator"
	"github.com/tatianab/climate-quest/internal/tui"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}

	// The terminal belongs to the TUI, so logs go to a file.
	f, err := tea.LogToFile(cfg.LogFile, "")
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))

	cat, err := models.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	opts := tui.Options{
		JournalDir: cfg.JournalDir,
		Seed:       seed,
		Logger:     logger,
	}
	if cfg.NarratorEnabled() {
		n, err := narrator.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return fmt.Errorf("creating narrator: %w", err)
		}
		defer n.Close()
		opts.Narrator = n
		logger.Info("narrator enabled", "model", cfg.GeminiModel)
	}

	g := engine.NewGame(cat, engine.WithLogger(logger))
	if err := tui.Run(g, opts); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
