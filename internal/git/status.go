package git

import (
	stderrors "errors"
	"path/filepath"

	ggit "github.com/go-git/go-git/v5"

	"git.home.luguber.info/inful/sitemigrate/internal/foundation/errors"
)

// State describes the worktree enclosing a directory.
type State string

const (
	StateNotRepository State = "not_repository"
	StateClean         State = "clean"
	StateDirty         State = "dirty"
)

// Status is the result of WorktreeStatus.
type Status struct {
	State State
	// Root is the worktree root, empty outside a repository.
	Root string
	// Changed lists paths with uncommitted changes, relative to Root.
	Changed []string
}

// WorktreeStatus opens the repository containing dir, searching parent
// directories, and reports whether it has uncommitted changes.
func WorktreeStatus(dir string) (*Status, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve directory").
			WithContext("path", dir).
			Build()
	}

	repo, err := ggit.PlainOpenWithOptions(abs, &ggit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if stderrors.Is(err, ggit.ErrRepositoryNotExists) {
			return &Status{State: StateNotRepository}, nil
		}
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to open git repository").
			WithContext("path", abs).
			Build()
	}

	w, err := repo.Worktree()
	if err != nil {
		if stderrors.Is(err, ggit.ErrIsBareRepository) {
			return &Status{State: StateNotRepository}, nil
		}
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to get git worktree").Build()
	}

	st, err := w.Status()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to get git status").Build()
	}

	status := &Status{State: StateClean, Root: w.Filesystem.Root()}
	if st.IsClean() {
		return status, nil
	}

	status.State = StateDirty
	for path, fs := range st {
		if fs.Worktree != ggit.Unmodified || fs.Staging != ggit.Unmodified {
			status.Changed = append(status.Changed, path)
		}
	}
	return status, nil
}
