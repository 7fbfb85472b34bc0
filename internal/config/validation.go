package config

import (
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitemigrate/internal/foundation/errors"
)

// Validate checks the page mapping. The working directory is not checked
// for existence here; that is reported by the migrator.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Dir) == "" {
		return invalid("working directory must not be empty")
	}
	if len(c.Pages) == 0 {
		return invalid("at least one page must be configured")
	}

	files := make(map[string]struct{}, len(c.Pages))
	folders := make(map[string]struct{}, len(c.Pages))
	for i, p := range c.Pages {
		if err := validateFile(p.File); err != nil {
			return err.WithContext("index", i)
		}
		if err := validateFolder(p.Folder); err != nil {
			return err.WithContext("index", i).WithContext("page", p.File)
		}

		if _, dup := files[p.File]; dup {
			return invalid("duplicate page file").WithContext("page", p.File)
		}
		files[p.File] = struct{}{}

		if _, dup := folders[p.Folder]; dup {
			return invalid("duplicate page folder").WithContext("folder", p.Folder)
		}
		folders[p.Folder] = struct{}{}
	}
	return nil
}

func validateFile(file string) *errors.ClassifiedError {
	switch {
	case file == "":
		return invalid("page file must not be empty")
	case file == RootPage:
		return invalid("the root page cannot be relocated").WithContext("page", file)
	case hasSeparator(file):
		return invalid("page file must be a bare filename").WithContext("page", file)
	case !strings.HasSuffix(strings.ToLower(file), ".html"):
		return invalid("page file must end in .html").WithContext("page", file)
	}
	return nil
}

func validateFolder(folder string) *errors.ClassifiedError {
	switch {
	case folder == "":
		return invalid("page folder must not be empty")
	case folder == "." || folder == "..":
		return invalid("page folder must name a new directory").WithContext("folder", folder)
	case hasSeparator(folder):
		return invalid("page folder must be a single path segment").WithContext("folder", folder)
	}
	return nil
}

func hasSeparator(name string) bool {
	return strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator)
}

func invalid(message string) *errors.ClassifiedError {
	return errors.ValidationError(message).WithCause(ErrInvalidConfig).Build()
}
