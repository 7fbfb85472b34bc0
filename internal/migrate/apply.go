package migrate

import (
	"context"
	"os"
	"time"

	"git.home.luguber.info/inful/sitemigrate/internal/config"
	"git.home.luguber.info/inful/sitemigrate/internal/foundation/errors"
	"git.home.luguber.info/inful/sitemigrate/internal/logfields"
	"git.home.luguber.info/inful/sitemigrate/internal/metrics"
	"git.home.luguber.info/inful/sitemigrate/internal/rewrite"
)

const (
	dirMode  = 0o755
	fileMode = 0o644
)

// Result summarises an applied migration.
type Result struct {
	Migrated      []config.Page
	Skipped       []config.Page
	RootRewritten bool
	LinksChanged  int
	ActiveMarks   int
}

// Apply executes the plan. It stops at the first failing action; actions
// already executed stay in place.
func (m *Migrator) Apply(ctx context.Context, plan *Plan) (*Result, error) {
	start := time.Now()
	defer func() { m.recorder.ObservePhaseDuration(metrics.PhaseApply, time.Since(start)) }()

	res := &Result{}

	for _, pp := range plan.Pages {
		if err := ctx.Err(); err != nil {
			return res, interrupted(err)
		}

		if pp.Status == StatusSkipped {
			m.logger.Warn("Skipping page, not found", logfields.Page(pp.Page.File))
			res.Skipped = append(res.Skipped, pp.Page)
			m.recorder.IncPageResult(metrics.PageSkipped)
			continue
		}

		if err := m.applyPage(pp); err != nil {
			m.recorder.IncPageResult(metrics.PageFailed)
			return res, err
		}
		m.recorder.IncPageResult(metrics.PageMigrated)
		m.logger.Info("Processed page",
			logfields.Page(pp.Page.File),
			logfields.Target(pp.Target),
			logfields.Count(len(pp.Rewrite.Changes)))

		res.Migrated = append(res.Migrated, pp.Page)
		res.LinksChanged += len(pp.Rewrite.Changes)
		res.ActiveMarks += pp.Rewrite.ActiveMarks
	}

	if err := ctx.Err(); err != nil {
		return res, interrupted(err)
	}
	if err := m.applyPage(plan.Root); err != nil {
		return res, err
	}
	m.logger.Info("Processed root page",
		logfields.Page(config.RootPage),
		logfields.Count(len(plan.Root.Rewrite.Changes)))

	res.RootRewritten = true
	res.LinksChanged += len(plan.Root.Rewrite.Changes)
	return res, nil
}

func (m *Migrator) applyPage(pp PagePlan) error {
	for _, change := range pp.Rewrite.Changes {
		m.logger.Debug("Rewrote link",
			logfields.Page(pp.Page.File),
			logfields.LinkKind(string(change.Kind)),
			logfields.From(change.From),
			logfields.To(change.To))
	}

	for _, action := range pp.Actions {
		if err := applyAction(action); err != nil {
			return err.WithContext("page", pp.Page.File)
		}
		m.logger.Debug("Applied action", logfields.Action(string(action.Kind)), logfields.Path(action.Path))
	}
	m.recordRewrites(pp.Rewrite)
	return nil
}

func (m *Migrator) recordRewrites(r rewrite.Result) {
	counts := make(map[rewrite.LinkKind]int)
	for _, change := range r.Changes {
		counts[change.Kind]++
	}
	for kind, n := range counts {
		m.recorder.AddLinkRewrites(string(kind), n)
	}
}

func applyAction(a Action) *errors.ClassifiedError {
	switch a.Kind {
	case ActionMkdir:
		if err := os.MkdirAll(a.Path, dirMode); err != nil {
			return ioFailure("failed to create page folder", a.Path, err)
		}
	case ActionWrite:
		mode := a.Mode
		if mode == 0 {
			mode = fileMode
		}
		// #nosec G306 -- site pages are published content
		if err := os.WriteFile(a.Path, a.Content, mode); err != nil {
			return ioFailure("failed to write page", a.Path, err)
		}
	case ActionRemove:
		if err := os.Remove(a.Path); err != nil {
			return ioFailure("failed to remove legacy page", a.Path, err)
		}
	default:
		return errors.InternalError("unknown plan action").WithContext("action", string(a.Kind)).Build()
	}
	return nil
}
