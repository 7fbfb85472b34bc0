package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitemigrate/internal/config"
)

// DefaultConfigFile is written by init when --config is not given.
const DefaultConfigFile = "sitemigrate.yaml"

// Global carries state shared by every subcommand.
type Global struct {
	Logger *slog.Logger
	RunID  string
	Stdout io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Page mapping file (YAML). The built-in mapping is used when empty." env:"SITEMIGRATE_CONFIG"`
	Dir     string           `short:"d" help:"Site root directory. Overrides the dir of the mapping file." env:"SITEMIGRATE_DIR"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Migrate MigrateCmd `cmd:"" default:"1" help:"Move the mapped pages into folders and rewrite links (default command)"`
	Plan    PlanCmd    `cmd:"" help:"Show what migrate would do without changing any file"`
	Verify  VerifyCmd  `cmd:"" help:"Check migrated pages for links that still name a legacy page"`
	Init    InitCmd    `cmd:"" help:"Write the built-in page mapping to a configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// LoadConfig resolves the configuration: the mapping file or the built-in
// mapping, with --dir taking precedence over the file's dir.
func (c *CLI) LoadConfig() (*config.Config, error) {
	cfg := config.Default()
	if c.Config != "" {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg = cfg.WithDir(c.Dir)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (g *Global) stdout() io.Writer {
	if g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

func (g *Global) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}
