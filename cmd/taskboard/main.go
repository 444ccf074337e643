package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/config"
	"taskboard/internal/storage"
	"taskboard/internal/task"
	"taskboard/internal/ui"
)

func main() {
	configPath := flag.String("config", config.ResolveConfigPath(), "path to config.toml")
	ephemeral := flag.Bool("ephemeral", false, "keep tasks in memory only")
	flag.Parse()

	if err := run(*configPath, *ephemeral); err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, ephemeral bool) error {
	firstLaunch := false
	if _, err := os.Stat(configPath); err != nil {
		firstLaunch = errors.Is(err, os.ErrNotExist)
	}
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if ephemeral {
		cfg.Driver = storage.DriverMemory
	}

	// The terminal belongs to the UI, so logs go to a file or nowhere.
	if cfg.LogPath != "" {
		f, err := tea.LogToFile(cfg.LogPath, "taskboard")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}
	logger := log.Default()
	if firstLaunch {
		logger.Printf("created config at %s", configPath)
	}

	ctx := context.Background()
	kv, err := storage.Open(ctx, cfg.Driver, cfg.Target())
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer kv.Close()

	cell, err := storage.NewCell(ctx, kv, cfg.StorageKey, task.Seed(time.Now(), task.NewID), logger)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	store := task.NewStore(cell, time.Now, task.NewID)
	logger.Printf("loaded %d tasks from %s storage", len(store.Tasks()), cfg.Driver)

	if err := ui.Run(ctx, store, cfg); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
