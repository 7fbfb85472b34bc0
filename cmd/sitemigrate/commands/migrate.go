package commands

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/sitemigrate/internal/config"
	"git.home.luguber.info/inful/sitemigrate/internal/git"
	"git.home.luguber.info/inful/sitemigrate/internal/logfields"
	"git.home.luguber.info/inful/sitemigrate/internal/metrics"
	"git.home.luguber.info/inful/sitemigrate/internal/migrate"
	"git.home.luguber.info/inful/sitemigrate/internal/report"
)

// MigrateCmd implements the 'migrate' command.
type MigrateCmd struct {
	DryRun      bool   `help:"Print the plan instead of applying it"`
	Format      string `short:"f" default:"text" enum:"text,markdown,html" help:"Plan format for --dry-run (text, markdown or html)"`
	NoVerify    bool   `name:"no-verify" help:"Skip checking migrated pages for leftover legacy links"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics for this run to a textfile collector file" env:"SITEMIGRATE_METRICS_FILE"`
}

func (m *MigrateCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return m.run(ctx, g, root)
}

func (m *MigrateCmd) run(ctx context.Context, g *Global, root *CLI) (err error) {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}

	logger := g.logger()
	logger.Info("Starting site migration", logfields.Dir(cfg.Dir), logfields.Count(len(cfg.Pages)), logfields.DryRun(m.DryRun))

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if m.MetricsFile != "" {
		reg := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
		defer func() {
			recorder.IncRunOutcome(m.outcome(err))
			if werr := metrics.WriteTextfile(m.MetricsFile, reg); werr != nil {
				logger.Warn("Failed to write metrics file", logfields.Path(m.MetricsFile), logfields.Error(werr))
			}
		}()
	}

	migrator, err := migrate.New(cfg, migrate.WithLogger(logger), migrate.WithRecorder(recorder))
	if err != nil {
		return err
	}

	plan, err := migrator.Plan(ctx)
	if err != nil {
		return err
	}

	if m.DryRun {
		return report.WritePlan(g.stdout(), report.Format(m.Format), plan)
	}

	warnIfDirty(logger, cfg.Dir)

	res, err := migrator.Apply(ctx, plan)
	if err != nil {
		return err
	}
	logger.Info("Site migration complete",
		slog.Int("migrated", len(res.Migrated)),
		slog.Int("skipped", len(res.Skipped)),
		slog.Int("links_changed", res.LinksChanged))

	if m.NoVerify {
		return nil
	}
	return m.verify(ctx, g, cfg, recorder)
}

// verify reports stale references after a migration. Findings are printed
// but do not fail the run; the pages have already been moved.
func (m *MigrateCmd) verify(ctx context.Context, g *Global, cfg *config.Config, recorder metrics.Recorder) error {
	start := time.Now()
	verification, err := verifySite(ctx, cfg)
	recorder.ObservePhaseDuration(metrics.PhaseVerify, time.Since(start))
	if err != nil {
		return err
	}

	recorder.SetStaleReferences(len(verification.Findings))
	if verification.OK() {
		return nil
	}
	g.logger().Warn("Migrated pages still reference legacy files", logfields.Count(len(verification.Findings)))
	return report.Verification(g.stdout(), verification)
}

func (m *MigrateCmd) outcome(err error) metrics.Outcome {
	switch {
	case err == nil && m.DryRun:
		return metrics.OutcomeDryRun
	case err == nil:
		return metrics.OutcomeSuccess
	case stderrors.Is(err, context.Canceled):
		return metrics.OutcomeCanceled
	default:
		return metrics.OutcomeFailed
	}
}

// warnIfDirty logs when the site lives in a git worktree with uncommitted
// changes. It never blocks the migration.
func warnIfDirty(logger *slog.Logger, dir string) {
	status, err := git.WorktreeStatus(dir)
	if err != nil {
		logger.Debug("Could not inspect git worktree", logfields.Error(err))
		return
	}

	switch status.State {
	case git.StateDirty:
		logger.Warn("Git worktree has uncommitted changes; deleted pages can only be restored from the last commit",
			logfields.Path(status.Root), logfields.Count(len(status.Changed)))
	case git.StateNotRepository:
		logger.Warn("Site is not under git version control; deleted legacy pages cannot be restored", logfields.Dir(dir))
	case git.StateClean:
		logger.Debug("Git worktree is clean", logfields.Path(status.Root))
	}
}
