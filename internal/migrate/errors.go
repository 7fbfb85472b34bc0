package migrate

import (
	stderrors "errors"
	"fmt"

	"git.home.luguber.info/inful/sitemigrate/internal/foundation/errors"
)

var (
	// ErrMissingSourceFile marks a mapped page absent from the working directory.
	// It is recovered by skipping the page.
	ErrMissingSourceFile = stderrors.New("source page not found")

	// ErrIOFailure marks any other filesystem failure. It aborts the run.
	ErrIOFailure = stderrors.New("filesystem operation failed")
)

func missingSource(file, path string, err error) *errors.ClassifiedError {
	return errors.NotFoundError("source page not found").
		WithCause(fmt.Errorf("%w: %w", ErrMissingSourceFile, err)).
		WithContext("page", file).
		WithContext("path", path).
		Build()
}

func ioFailure(message, path string, err error) *errors.ClassifiedError {
	return errors.FileSystemError(message).
		WithCause(fmt.Errorf("%w: %w", ErrIOFailure, err)).
		WithContext("path", path).
		Build()
}

func interrupted(err error) *errors.ClassifiedError {
	return errors.WrapError(err, errors.CategoryRuntime, "migration interrupted").Fatal().Build()
}
