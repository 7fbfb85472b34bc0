package migrate

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/sitemigrate/internal/config"
	"git.home.luguber.info/inful/sitemigrate/internal/metrics"
	"git.home.luguber.info/inful/sitemigrate/internal/rewrite"
)

// Migrator relocates the pages of one configuration.
type Migrator struct {
	cfg      *config.Config
	rewriter *rewrite.Rewriter
	logger   *slog.Logger
	recorder metrics.Recorder
}

// Option configures a Migrator.
type Option func(*Migrator)

// WithLogger sets the logger used for progress lines.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Migrator) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithRewriter replaces the rewriter built from the page mapping.
func WithRewriter(r *rewrite.Rewriter) Option {
	return func(m *Migrator) {
		if r != nil {
			m.rewriter = r
		}
	}
}

// WithRecorder sets the metrics recorder. The default records nothing.
func WithRecorder(r metrics.Recorder) Option {
	return func(m *Migrator) {
		if r != nil {
			m.recorder = r
		}
	}
}

// New creates a Migrator for cfg. The configuration is validated and copied.
func New(cfg *config.Config, opts ...Option) (*Migrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	owned := cfg.WithDir("")
	m := &Migrator{
		cfg:      owned,
		rewriter: rewrite.New(owned.Pages),
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Config returns the configuration the migrator runs with.
func (m *Migrator) Config() *config.Config {
	return m.cfg.WithDir("")
}

// Run plans and applies the migration.
func (m *Migrator) Run(ctx context.Context) (*Result, error) {
	plan, err := m.Plan(ctx)
	if err != nil {
		return nil, err
	}
	return m.Apply(ctx, plan)
}
