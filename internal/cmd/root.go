package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/sadopc/liftr/internal/config"
	"github.com/sadopc/liftr/internal/logging"
	"github.com/sadopc/liftr/internal/store"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Config      string           `help:"Path to the config file (default: user config dir)" type:"path" env:"LIFTR_CONFIG"`
	DB          string           `help:"Path to the workout database (overrides config)" name:"db" type:"path"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	LogFile     string           `help:"Custom path for the log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"50"`

	Run       RunCmd       `cmd:"" help:"Start the liftr TUI (default)" default:"1"`
	Catalog   CatalogCmd   `cmd:"catalog" help:"List exercises in the catalog"`
	History   HistoryCmd   `cmd:"history" help:"List finished workouts"`
	Export    ExportCmd    `cmd:"export" help:"Export all workouts to CSV or JSON"`
	Templates TemplatesCmd `cmd:"templates" help:"List saved workout templates"`

	// Internal fields (not flags)
	cfg   *config.Config `kong:"-"`
	store *store.Store   `kong:"-"`
	out   io.Writer      `kong:"-"`
}

// AfterApply loads config and initializes logging after CLI parsing.
// Precedence: CLI flags > env vars > config file > defaults.
func (c *CLI) AfterApply() error {
	path := c.Config
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return fmt.Errorf("config path: %w", err)
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if c.DB != "" {
		cfg.DatabasePath = c.DB
	}
	if c.Debug {
		cfg.Debug = true
	}
	if c.LogFile != "" {
		cfg.LogFile = c.LogFile
	}
	c.cfg = cfg

	logFile, err := logging.Initialize(cfg.Debug, cfg.LogFile, c.MaxLogFiles)
	if err != nil {
		return err
	}
	logging.Logger.Debug("config loaded", "config", path, "log_file", logFile, "auto_advance_ms", cfg.AutoAdvanceMS)
	return nil
}

// openStore opens the workout database once and applies the configured
// default unit.
func (c *CLI) openStore() (*store.Store, error) {
	if c.store != nil {
		return c.store, nil
	}
	path := c.cfg.DatabasePath
	if path == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("database path: %w", err)
		}
		path = p
	}
	s, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s.WithLogger(logging.Logger)
	if err := s.DefaultUnit(c.cfg.DefaultUnit); err != nil {
		s.Close()
		return nil, err
	}
	logging.Logger.Info("database opened", "path", path)
	c.store = s
	return s, nil
}

func (c *CLI) stdout() io.Writer {
	if c.out != nil {
		return c.out
	}
	return os.Stdout
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.store != nil {
		err := c.store.Close()
		c.store = nil
		return err
	}
	return nil
}
