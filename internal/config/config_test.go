package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleYAML = `title: Sample Manual
description: A *short* manual.
dm_archive: manual.sit
ht_archive: manual-html.zip
pages:
  - url: p1.html
    title: Intro
  - url: p2.html
    title: Details
exclude:
  - "drafts/**"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadSiteConfig(t *testing.T) {
	cfg, err := LoadSiteConfig(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("LoadSiteConfig failed: %v", err)
	}
	if cfg.Title != "Sample Manual" {
		t.Errorf("title: got %q", cfg.Title)
	}
	if cfg.DocmakerArchive != "manual.sit" || cfg.HTMLArchive != "manual-html.zip" {
		t.Errorf("archives: got %q, %q", cfg.DocmakerArchive, cfg.HTMLArchive)
	}
	if len(cfg.Pages) != 2 || cfg.Pages[1].URL != "p2.html" || cfg.Pages[1].Title != "Details" {
		t.Errorf("pages: got %+v", cfg.Pages)
	}
	if cfg.InputDir != "pages" || cfg.OutputDir != "public" || cfg.Icon != "icon.png" {
		t.Errorf("defaults not kept: %+v", cfg)
	}
	if len(cfg.Exclude) != 1 || cfg.Exclude[0] != "drafts/**" {
		t.Errorf("exclude: got %v", cfg.Exclude)
	}
	if got := cfg.IncludePatterns(); len(got) != len(DefaultInclude) {
		t.Errorf("include patterns: got %v", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := LoadSiteConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if cfg.OutputDir != "public" {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, sampleYAML)
	t.Setenv("DOCNAV_TITLE", "Overridden")
	t.Setenv("DOCNAV_OUTPUT_DIR", "dist")

	cfg, err := LoadSiteConfig(path)
	if err != nil {
		t.Fatalf("LoadSiteConfig failed: %v", err)
	}
	if cfg.Title != "Overridden" {
		t.Errorf("title: got %q, want Overridden", cfg.Title)
	}
	if cfg.OutputDir != "dist" {
		t.Errorf("output_dir: got %q, want dist", cfg.OutputDir)
	}
}

func TestLoadSiteFileIgnoresEnv(t *testing.T) {
	path := writeConfig(t, sampleYAML)
	t.Setenv("DOCNAV_TITLE", "Overridden")

	cfg, err := LoadSiteFile(path)
	if err != nil {
		t.Fatalf("LoadSiteFile failed: %v", err)
	}
	if cfg.Title != "Sample Manual" {
		t.Errorf("title: got %q, want the file's value", cfg.Title)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	if _, err := LoadSiteConfig(writeConfig(t, "pages: [unclosed")); err == nil {
		t.Error("expected an error for malformed yaml")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	original := Default()
	original.Title = "Round Trip"
	original.Pages = []PageEntry{{URL: "a.html", Title: "A"}, {URL: "b.html", Title: "B"}}

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := LoadSiteConfig(path)
	if err != nil {
		t.Fatalf("LoadSiteConfig failed: %v", err)
	}
	if loaded.Title != original.Title || len(loaded.Pages) != 2 || loaded.Pages[0].Title != "A" {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestValidate(t *testing.T) {
	valid := Default()
	valid.Pages = []PageEntry{{URL: "a.html", Title: "A"}, {URL: "b.html", Title: "B"}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*SiteConfig)
		want   string
	}{
		{"duplicate url", func(c *SiteConfig) { c.Pages[1].URL = "a.html" }, "already used"},
		{"nested url", func(c *SiteConfig) { c.Pages[0].URL = "sub/a.html" }, "bare filename"},
		{"empty url", func(c *SiteConfig) { c.Pages[0].URL = "" }, "url is required"},
		{"empty title", func(c *SiteConfig) { c.Pages[0].Title = "" }, "title is required"},
		{"no output", func(c *SiteConfig) { c.OutputDir = "" }, "output_dir"},
		{"no input", func(c *SiteConfig) { c.InputDir = "" }, "input_dir"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			cfg.Pages = append([]PageEntry(nil), valid.Pages...)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("got %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestDescriptorsAndMetadata(t *testing.T) {
	cfg, err := LoadSiteConfig(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatal(err)
	}
	pages := cfg.Descriptors()
	if len(pages) != 2 || pages[0].URL != "p1.html" || pages[0].Title != "Intro" {
		t.Errorf("descriptors: got %+v", pages)
	}
	meta := cfg.Metadata("<p>x</p>")
	if meta.Title != "Sample Manual" || meta.DescriptionHTML != "<p>x</p>" || meta.HTMLArchiveURL != "manual-html.zip" {
		t.Errorf("metadata: got %+v", meta)
	}
}

func TestRooted(t *testing.T) {
	cfg := Default()
	cfg.OutputDir = "/abs/out"
	got := cfg.Rooted("project")
	if got.InputDir != filepath.Join("project", "pages") {
		t.Errorf("input_dir: got %q", got.InputDir)
	}
	if got.StaticDir != filepath.Join("project", "static") {
		t.Errorf("static_dir: got %q", got.StaticDir)
	}
	if got.OutputDir != "/abs/out" {
		t.Errorf("absolute output_dir changed: %q", got.OutputDir)
	}
	if cfg.InputDir != "pages" {
		t.Error("Rooted must not modify the receiver")
	}
}
