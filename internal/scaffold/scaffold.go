// internal/scaffold/scaffold.go
package scaffold

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"docnav/internal/config"
)

var pageTemplate = template.Must(template.New("page").Parse(pageArchetype))

// CreateNewSite writes a small three-page document set under name.
func CreateNewSite(name string) error {
	fmt.Println("Scaffolding new site in:", name)
	for _, dir := range []string{"pages", "static"} {
		if err := os.MkdirAll(filepath.Join(name, dir), 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	cfg := config.Default()
	cfg.Title = "My Manual"
	cfg.Description = "An example document set decorated by docnav."
	cfg.DocmakerArchive = "manual.sit"
	cfg.HTMLArchive = "manual-html.zip"
	cfg.Icon = "icon.svg"

	for _, title := range []string{"Introduction", "Getting Started", "Reference"} {
		url, err := writePage(filepath.Join(name, cfg.InputDir), title)
		if err != nil {
			return err
		}
		cfg.Pages = append(cfg.Pages, config.PageEntry{URL: url, Title: title})
	}

	files := map[string]string{
		"static/docnav.css": staticCSSContent,
		"static/icon.svg":   iconSVGContent,
	}
	for path, content := range files {
		if err := os.WriteFile(filepath.Join(name, path), []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", path, err)
		}
	}
	if err := cfg.Save(filepath.Join(name, "site.yaml")); err != nil {
		return err
	}

	fmt.Println("Site scaffolded. You can now:")
	fmt.Println("  cd", name)
	fmt.Println("  docnav build")
	fmt.Println("  docnav serve")
	return nil
}

// CreateNewPage writes a page titled title and appends it to the page list
// in configPath.
func CreateNewPage(title, configPath string) error {
	site, err := config.LoadSiteFile(configPath)
	if err != nil {
		return err
	}
	url := Slugify(title) + ".html"
	for _, p := range site.Pages {
		if p.URL == url {
			return fmt.Errorf("page %s is already listed in %s", url, configPath)
		}
	}

	dir := site.Rooted(filepath.Dir(configPath)).InputDir
	if _, err := os.Stat(filepath.Join(dir, url)); err == nil {
		return fmt.Errorf("page %s already exists", filepath.Join(dir, url))
	}
	if _, err := writePage(dir, title); err != nil {
		return err
	}

	site.Pages = append(site.Pages, config.PageEntry{URL: url, Title: title})
	if err := site.Save(configPath); err != nil {
		return err
	}
	fmt.Println("Created:", filepath.Join(dir, url))
	return nil
}

var (
	nonSlugChars = regexp.MustCompile(`[^\w- ]+`)
	dashRuns     = regexp.MustCompile(`-+`)
)

// Slugify turns a title into a filename stem.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = nonSlugChars.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, " ", "-")
	s = dashRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "page"
	}
	return s
}

func writePage(dir, title string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	var out bytes.Buffer
	if err := pageTemplate.Execute(&out, struct{ Title string }{title}); err != nil {
		return "", fmt.Errorf("failed to execute page template: %w", err)
	}
	url := Slugify(title) + ".html"
	if err := os.WriteFile(filepath.Join(dir, url), out.Bytes(), 0644); err != nil {
		return "", err
	}
	return url, nil
}

const pageArchetype = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{ .Title }}</title>
  <link rel="stylesheet" href="docnav.css">
</head>
<body>
  <h2>{{ .Title }}</h2>
  <p>Write something meaningful here.</p>
</body>
</html>
`

const staticCSSContent = `body.withnav { margin-top: 56px; }
#indexTop {
  position: fixed; top: 0; left: 0; right: 0; height: 40px;
  display: flex; align-items: center; gap: 12px; padding: 4px 12px;
  background: #eee; border-bottom: 1px solid #bbb; font-family: sans-serif;
}
#indexTop h1 { font-size: 1.1em; margin: 0; flex-grow: 1; }
#indexTop .pagenav { display: flex; align-items: center; gap: 8px; }
#indexTop .pageswitch { position: relative; }
#indexTop .switchlabel { padding: 2px 8px; border: 1px solid #bbb; background: #fff; }
#indexTop .pageswitch ul {
  position: absolute; right: 0; margin: 0; padding: 4px 0; list-style: none;
  background: #fff; border: 1px solid #bbb; min-width: 200px;
}
#indexTop .pageswitch li { padding: 2px 12px; cursor: pointer; }
#indexTop .pageswitch li:hover { background: #ddd; }
#indexTop .pageswitch li.selected { font-weight: bold; cursor: default; }
#aboutbox { font-family: sans-serif; font-size: 0.9em; }
`

const iconSVGContent = `<svg xmlns="http://www.w3.org/2000/svg" width="32" height="32" viewBox="0 0 32 32">
<rect x="4" y="2" width="24" height="28" rx="2" fill="#fff" stroke="#333" stroke-width="2"/>
<path d="M9 9h14M9 14h14M9 19h10" stroke="#333" stroke-width="2"/>
</svg>
`
