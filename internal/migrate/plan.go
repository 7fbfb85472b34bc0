package migrate

import (
	"context"
	stderrors "errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/sitemigrate/internal/config"
	"git.home.luguber.info/inful/sitemigrate/internal/logfields"
	"git.home.luguber.info/inful/sitemigrate/internal/metrics"
	"git.home.luguber.info/inful/sitemigrate/internal/rewrite"
)

// ActionKind names a filesystem operation of a plan.
type ActionKind string

const (
	ActionMkdir  ActionKind = "mkdir"
	ActionWrite  ActionKind = "write"
	ActionRemove ActionKind = "remove"
)

// Action is one filesystem operation. Content and Mode are used by writes only.
type Action struct {
	Kind    ActionKind
	Path    string
	Content []byte
	Mode    fs.FileMode
}

// PageStatus tells what Apply will do with a page.
type PageStatus string

const (
	StatusMigrate PageStatus = "migrate"
	StatusSkipped PageStatus = "skipped"
	StatusRewrite PageStatus = "rewrite"
)

// PagePlan is the planned outcome for one document.
type PagePlan struct {
	// Page is the mapping entry; for the root page File is index.html and Folder is empty.
	Page   config.Page
	Status PageStatus
	// Source and Target are relative to the working directory.
	Source string
	Target string
	// Skip is set when Status is StatusSkipped.
	Skip    error
	Rewrite rewrite.Result
	Actions []Action
}

// Plan is the complete, not yet applied migration of one working directory.
type Plan struct {
	Dir   string
	Pages []PagePlan
	Root  PagePlan
}

// Actions returns every action in execution order.
func (p *Plan) Actions() []Action {
	var actions []Action
	for _, pp := range p.Pages {
		actions = append(actions, pp.Actions...)
	}
	return append(actions, p.Root.Actions...)
}

// Count returns the number of legacy pages with status.
func (p *Plan) Count(status PageStatus) int {
	n := 0
	for _, pp := range p.Pages {
		if pp.Status == status {
			n++
		}
	}
	return n
}

// Plan reads the working directory and computes the migration without
// touching the filesystem.
func (m *Migrator) Plan(ctx context.Context) (*Plan, error) {
	start := time.Now()
	defer func() { m.recorder.ObservePhaseDuration(metrics.PhasePlan, time.Since(start)) }()

	dir := m.cfg.Dir
	info, err := os.Stat(dir)
	if err != nil {
		return nil, ioFailure("working directory not accessible", dir, err)
	}
	if !info.IsDir() {
		return nil, ioFailure("working directory is not a directory", dir, fs.ErrInvalid)
	}

	plan := &Plan{Dir: dir, Pages: make([]PagePlan, 0, len(m.cfg.Pages))}
	for _, page := range m.cfg.Pages {
		if err := ctx.Err(); err != nil {
			return nil, interrupted(err)
		}

		pp, err := m.planPage(page)
		if err != nil {
			return nil, err
		}
		m.logger.Debug("Planned page", logfields.Page(page.File), slog.String("status", string(pp.Status)), logfields.Count(len(pp.Rewrite.Changes)))
		plan.Pages = append(plan.Pages, pp)
	}

	root, err := m.planRoot()
	if err != nil {
		return nil, err
	}
	plan.Root = root
	return plan, nil
}

func (m *Migrator) planPage(page config.Page) (PagePlan, error) {
	target := filepath.Join(page.Folder, config.RootPage)
	pp := PagePlan{Page: page, Source: page.File, Target: target}

	source := filepath.Join(m.cfg.Dir, page.File)
	content, mode, err := readPage(source)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			pp.Status = StatusSkipped
			pp.Skip = missingSource(page.File, source, err)
			return pp, nil
		}
		return PagePlan{}, ioFailure("failed to read page", source, err)
	}

	pp.Status = StatusMigrate
	pp.Rewrite = m.rewriter.Rewrite(content, rewrite.Nested(page.Folder))
	pp.Actions = []Action{
		{Kind: ActionMkdir, Path: filepath.Join(m.cfg.Dir, page.Folder)},
		{Kind: ActionWrite, Path: filepath.Join(m.cfg.Dir, target), Content: []byte(pp.Rewrite.Content), Mode: mode},
		{Kind: ActionRemove, Path: source},
	}
	return pp, nil
}

func (m *Migrator) planRoot() (PagePlan, error) {
	path := filepath.Join(m.cfg.Dir, config.RootPage)
	pp := PagePlan{
		Page:   config.Page{File: config.RootPage},
		Status: StatusRewrite,
		Source: config.RootPage,
		Target: config.RootPage,
	}

	content, mode, err := readPage(path)
	if err != nil {
		return PagePlan{}, ioFailure("failed to read root page", path, err)
	}

	pp.Rewrite = m.rewriter.Rewrite(content, rewrite.Root())
	pp.Actions = []Action{
		{Kind: ActionWrite, Path: path, Content: []byte(pp.Rewrite.Content), Mode: mode},
	}
	return pp, nil
}

func readPage(path string) (string, fs.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", 0, err
	}
	if !info.Mode().IsRegular() {
		return "", 0, &fs.PathError{Op: "read", Path: path, Err: fs.ErrInvalid}
	}

	// #nosec G304 -- path is built from the validated page mapping
	data, err := os.ReadFile(path)
	if err != nil {
		return "", 0, err
	}
	return string(data), info.Mode().Perm(), nil
}
