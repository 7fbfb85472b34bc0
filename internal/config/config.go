// Package config holds the page mapping and working directory that drive a migration.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitemigrate/internal/foundation/errors"
)

// RootPage is the site's entry document. It is rewritten in place and never relocated.
const RootPage = "index.html"

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = stderrors.New("invalid configuration")

// Page maps one legacy HTML file to the folder it moves into.
type Page struct {
	File   string `yaml:"file"`
	Folder string `yaml:"folder"`
}

// Config represents the migration configuration.
type Config struct {
	// Dir is the site root; every read and write is relative to it.
	Dir string `yaml:"dir"`
	// Pages is applied in order. Files must be unique.
	Pages []Page `yaml:"pages"`
}

// Default returns the built-in mapping rooted at the current directory.
func Default() *Config {
	return &Config{
		Dir: ".",
		Pages: []Page{
			{File: "about.html", Folder: "about"},
			{File: "program.html", Folder: "program"},
			{File: "team.html", Folder: "team"},
			{File: "blog.html", Folder: "blog"},
			{File: "contact.html", Folder: "contact"},
			{File: "privacy.html", Folder: "privacy"},
			{File: "blog-details.html", Folder: "blog-details"},
		},
	}
}

// Load loads configuration from the specified YAML file.
// Environment variables in the file are expanded before decoding.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath) // #nosec G304 -- path is supplied by the operator
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.ConfigError("configuration file not found").
				WithContext("path", configPath).
				WithCause(err).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).
			Fatal().
			Build()
	}

	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		if classified, ok := errors.AsClassified(err); ok {
			return nil, classified.WithContext("path", configPath)
		}
		return nil, err
	}
	return cfg, nil
}

// Parse decodes and validates a YAML configuration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").Fatal().Build()
	}

	if cfg.Dir == "" {
		cfg.Dir = "."
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}
	return out, nil
}

// Init writes the default configuration to configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	data, err := Default().Marshal()
	if err != nil {
		return err
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Fatal().
			Build()
	}
	return nil
}

// WithDir returns a copy of the configuration rooted at dir.
// An empty dir keeps the current one.
func (c *Config) WithDir(dir string) *Config {
	clone := &Config{Dir: c.Dir, Pages: slices.Clone(c.Pages)}
	if dir != "" {
		clone.Dir = dir
	}
	return clone
}

// Lookup returns the mapping entry for a legacy filename.
func (c *Config) Lookup(file string) (Page, bool) {
	for _, p := range c.Pages {
		if p.File == file {
			return p, true
		}
	}
	return Page{}, false
}

// Files returns the legacy filenames in mapping order.
func (c *Config) Files() []string {
	files := make([]string, len(c.Pages))
	for i, p := range c.Pages {
		files[i] = p.File
	}
	return files
}

func (p Page) String() string {
	return fmt.Sprintf("%s -> %s/%s", p.File, p.Folder, RootPage)
}
