package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"taskboard/internal/storage"
	"taskboard/internal/task"
)

const (
	AppName               = "taskboard"
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "taskboard.db"
	DefaultStorageKey     = "taskboard.tasks"
	EnvConfigPath         = "TASKBOARD_CONFIG"
)

type Keymap struct {
	Quit          string `toml:"quit"`
	Add           string `toml:"add"`
	Up            string `toml:"up"`
	Down          string `toml:"down"`
	Delete        string `toml:"delete"`
	Confirm       string `toml:"confirm"`
	Cancel        string `toml:"cancel"`
	Edit          string `toml:"edit"`
	Advance       string `toml:"advance"`
	Retreat       string `toml:"retreat"`
	RemoveTag     string `toml:"remove_tag"`
	Search        string `toml:"search"`
	CycleStatus   string `toml:"cycle_status"`
	CyclePriority string `toml:"cycle_priority"`
	CycleHorizon  string `toml:"cycle_horizon"`
	ClearFilters  string `toml:"clear_filters"`
}

type Config struct {
	Driver          string `toml:"driver"`
	DBPath          string `toml:"db_path"`
	PostgresDSN     string `toml:"postgres_dsn"`
	StorageKey      string `toml:"storage_key"`
	LogPath         string `toml:"log_path"`
	DefaultStatus   string `toml:"default_status"`
	DefaultPriority string `toml:"default_priority"`
	DefaultHorizon  string `toml:"default_horizon"`
	Keys            Keymap `toml:"keys"`
}

// ResolveConfigPath picks $TASKBOARD_CONFIG, then the user config dir,
// then the working directory.
func ResolveConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig(filepath.Dir(path))
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(filepath.Dir(path), DefaultDBName)
	}
	if cfg.StorageKey == "" {
		cfg.StorageKey = DefaultStorageKey
	}
	err = cfg.normalize()
	return cfg, err
}

// Validate reports whether c would load cleanly.
func (c Config) Validate() error {
	return c.normalize()
}

// normalize checks the driver and rewrites the filter defaults in their
// canonical lower-case form.
func (c *Config) normalize() error {
	switch c.Driver {
	case storage.DriverSQLite, storage.DriverMemory:
	case storage.DriverPostgres:
		if c.PostgresDSN == "" {
			return errors.New("postgres_dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown driver %q", c.Driver)
	}
	if isAll(c.DefaultStatus) {
		c.DefaultStatus = task.All
	} else {
		status, err := task.ParseStatus(c.DefaultStatus)
		if err != nil {
			return fmt.Errorf("default_status: %w", err)
		}
		c.DefaultStatus = string(status)
	}
	if isAll(c.DefaultPriority) {
		c.DefaultPriority = task.All
	} else {
		priority, err := task.ParsePriority(c.DefaultPriority)
		if err != nil {
			return fmt.Errorf("default_priority: %w", err)
		}
		c.DefaultPriority = string(priority)
	}
	horizon, err := task.ParseHorizon(c.DefaultHorizon)
	if err != nil {
		return fmt.Errorf("default_horizon: %w", err)
	}
	c.DefaultHorizon = string(horizon)
	return nil
}

func isAll(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), task.All)
}

// Target is the connection target handed to storage.Open.
func (c Config) Target() string {
	if c.Driver == storage.DriverPostgres {
		return c.PostgresDSN
	}
	return c.DBPath
}

// Filters returns the board filters the UI starts with.
func (c Config) Filters() task.Filters {
	return task.Filters{
		Status:   c.DefaultStatus,
		Priority: c.DefaultPriority,
		Horizon:  task.Horizon(c.DefaultHorizon),
	}
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig(dir string) Config {
	return Config{
		Driver:          storage.DriverSQLite,
		DBPath:          filepath.Join(dir, DefaultDBName),
		StorageKey:      DefaultStorageKey,
		DefaultStatus:   task.All,
		DefaultPriority: task.All,
		DefaultHorizon:  task.All,
		Keys: Keymap{
			Quit:          "q",
			Add:           "a",
			Up:            "k",
			Down:          "j",
			Delete:        "d",
			Confirm:       "enter",
			Cancel:        "esc",
			Edit:          "e",
			Advance:       "]",
			Retreat:       "[",
			RemoveTag:     "x",
			Search:        "/",
			CycleStatus:   "s",
			CyclePriority: "p",
			CycleHorizon:  "h",
			ClearFilters:  "c",
		},
	}
}
