// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"docnav/internal/nav"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix marks environment variables that override site.yaml keys,
// e.g. DOCNAV_TITLE or DOCNAV_OUTPUT_DIR.
const EnvPrefix = "DOCNAV_"

// PageEntry is one page of the set as written in site.yaml.
type PageEntry struct {
	URL   string `koanf:"url" yaml:"url"`
	Title string `koanf:"title" yaml:"title"`
}

// SiteConfig holds the configuration from the site.yaml file.
type SiteConfig struct {
	Title           string      `koanf:"title" yaml:"title"`
	Description     string      `koanf:"description" yaml:"description,omitempty"`
	DescriptionHTML string      `koanf:"description_html" yaml:"description_html,omitempty"`
	DocmakerArchive string      `koanf:"dm_archive" yaml:"dm_archive"`
	HTMLArchive     string      `koanf:"ht_archive" yaml:"ht_archive"`
	Icon            string      `koanf:"icon" yaml:"icon"`
	Pages           []PageEntry `koanf:"pages" yaml:"pages,omitempty"`
	Include         []string    `koanf:"include" yaml:"include,omitempty"`
	Exclude         []string    `koanf:"exclude" yaml:"exclude,omitempty"`
	InputDir        string      `koanf:"input_dir" yaml:"input_dir"`
	StaticDir       string      `koanf:"static_dir" yaml:"static_dir"`
	OutputDir       string      `koanf:"output_dir" yaml:"output_dir"`
}

// DefaultInclude selects the pages of an export when include is unset.
var DefaultInclude = []string{"**/*.html", "**/*.htm"}

// Default returns the configuration used when site.yaml is absent.
func Default() SiteConfig {
	return SiteConfig{
		Icon:      "icon.png",
		InputDir:  "pages",
		StaticDir: "static",
		OutputDir: "public",
	}
}

// LoadSiteConfig reads path on top of the defaults, then overlays DOCNAV_*
// environment variables. A missing file is not an error.
func LoadSiteConfig(path string) (SiteConfig, error) {
	return load(path, true)
}

// LoadSiteFile reads path on top of the defaults without the environment
// overlay. Use it when the result is saved back to path.
func LoadSiteFile(path string) (SiteConfig, error) {
	return load(path, false)
}

func load(path string, withEnv bool) (SiteConfig, error) {
	k := koanf.New(".")
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return SiteConfig{}, fmt.Errorf("could not read config file at %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return SiteConfig{}, fmt.Errorf("could not access config file %s: %w", path, err)
	}

	if withEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
			return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		}), nil); err != nil {
			return SiteConfig{}, fmt.Errorf("could not load environment overrides: %w", err)
		}
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("could not parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// IncludePatterns returns the configured include globs or DefaultInclude.
func (c SiteConfig) IncludePatterns() []string {
	if len(c.Include) == 0 {
		return DefaultInclude
	}
	return c.Include
}

// Rooted returns a copy whose relative directories are joined to base,
// normally the directory holding site.yaml.
func (c SiteConfig) Rooted(base string) SiteConfig {
	root := func(dir string) string {
		if dir == "" || filepath.IsAbs(dir) {
			return dir
		}
		return filepath.Join(base, dir)
	}
	c.InputDir = root(c.InputDir)
	c.StaticDir = root(c.StaticDir)
	c.OutputDir = root(c.OutputDir)
	return c
}

// Save writes the configuration as YAML.
func (c SiteConfig) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to %s: %w", path, err)
	}
	return nil
}

// Validate checks the page list and directories.
func (c SiteConfig) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("input_dir is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	seen := make(map[string]int, len(c.Pages))
	for i, p := range c.Pages {
		if p.URL == "" {
			return fmt.Errorf("pages[%d]: url is required", i)
		}
		if strings.ContainsAny(p.URL, `/\`) {
			return fmt.Errorf("pages[%d]: url %q must be a bare filename", i, p.URL)
		}
		if p.Title == "" {
			return fmt.Errorf("pages[%d]: title is required", i)
		}
		if j, dup := seen[p.URL]; dup {
			return fmt.Errorf("pages[%d]: url %q already used by pages[%d]", i, p.URL, j)
		}
		seen[p.URL] = i
	}
	return nil
}

// Descriptors converts the configured pages for the navigation renderer.
func (c SiteConfig) Descriptors() []nav.PageDescriptor {
	if len(c.Pages) == 0 {
		return nil
	}
	out := make([]nav.PageDescriptor, len(c.Pages))
	for i, p := range c.Pages {
		out[i] = nav.PageDescriptor{URL: p.URL, Title: p.Title}
	}
	return out
}

// Metadata builds the about-box values. descriptionHTML is the already
// rendered description.
func (c SiteConfig) Metadata(descriptionHTML string) nav.DocumentMetadata {
	return nav.DocumentMetadata{
		Title:              c.Title,
		DescriptionHTML:    descriptionHTML,
		DocmakerArchiveURL: c.DocmakerArchive,
		HTMLArchiveURL:     c.HTMLArchive,
	}
}
