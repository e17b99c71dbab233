// internal/builder/builder.go
package builder

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"

	"docnav/internal/config"
	"docnav/internal/dom"
	"docnav/internal/nav"
	"docnav/internal/progress"
	"docnav/internal/util"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"
)

var warn = color.New(color.FgYellow)

// BuildSite decorates every HTML page of inputDir with the navigation
// header, writes the result to outputDir and copies assets. It returns the
// number of pages written.
func BuildSite(outputDir, inputDir, staticDir string, site config.SiteConfig, opts BuildOptions) (int, error) {
	if err := site.Validate(); err != nil {
		return 0, fmt.Errorf("invalid site config: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return 0, err
	}

	if opts.CleanDestination {
		fmt.Println("Cleaning destination directory...")
		entries, err := os.ReadDir(outputDir)
		if err != nil {
			return 0, err
		}
		for _, entry := range entries {
			if err := os.RemoveAll(filepath.Join(outputDir, entry.Name())); err != nil {
				return 0, err
			}
		}
	}

	sources, assets, err := collectSources(inputDir, []string{outputDir, staticDir}, site.IncludePatterns(), site.Exclude)
	if err != nil {
		return 0, err
	}
	if len(sources) == 0 {
		return 0, fmt.Errorf("no html pages found in %s", inputDir)
	}

	pages := site.Descriptors()
	if len(pages) == 0 {
		pages, err = discoverPages(sources)
		if err != nil {
			return 0, err
		}
		if opts.Debug {
			fmt.Printf("No pages configured, discovered %d.\n", len(pages))
		}
	}

	desc, err := renderDescription(site.Description, site.DescriptionHTML, opts)
	if err != nil {
		return 0, err
	}
	renderer := nav.NewRenderer(pages, site.Metadata(desc))

	reporter := opts.Reporter
	if reporter == nil {
		reporter = progress.Nop{}
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	var written atomic.Int64
	reporter.Start(len(sources))
	g := new(errgroup.Group)
	g.SetLimit(jobs)
	for _, src := range sources {
		src := src
		g.Go(func() error {
			outputPath := filepath.Join(outputDir, filepath.FromSlash(src.Location))
			icon := util.ComputeBaseHref(src.Location) + site.Icon
			if err := decoratePage(renderer.WithIcon(icon), src, outputPath, opts); err != nil {
				return fmt.Errorf("failed to decorate page %s: %w", src.Path, err)
			}
			written.Add(1)
			reporter.Done(src.Location)
			return nil
		})
	}
	err = g.Wait()
	reporter.Finish()
	if err != nil {
		return 0, err
	}

	if err := copyAssets(inputDir, outputDir, assets); err != nil {
		return 0, err
	}
	if err := copyStaticAssets(staticDir, outputDir); err != nil {
		return 0, err
	}
	return int(written.Load()), nil
}

// decoratePage resolves the page's position, renders the header into it
// and writes it to outputPath.
func decoratePage(r *nav.Renderer, src sourcePage, outputPath string, opts BuildOptions) error {
	in, err := os.Open(src.Path)
	if err != nil {
		return err
	}
	doc, err := dom.Parse(in)
	in.Close()
	if err != nil {
		return err
	}

	ctx := nav.Resolve(src.Location, r.Pages())
	if !ctx.Matched {
		warn.Fprintf(os.Stderr, "⚠️  %s is not in the page list, showing it as %q\n", src.Location, ctx.ActiveTitle)
	} else if opts.Debug {
		fmt.Printf("%s -> page %d (%s)\n", src.Location, ctx.ActiveIndex, ctx.ActiveTitle)
	}

	if err := r.Render(doc, ctx); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return err
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if err := doc.Render(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// collectSources walks inputDir and splits its files into HTML pages that
// match the include patterns and other assets. Excluded files are neither.
// Directories in skip, such as an output directory nested in the input,
// are not entered.
func collectSources(inputDir string, skip []string, include, exclude []string) ([]sourcePage, []string, error) {
	skipped := make(map[string]bool)
	for _, dir := range skip {
		if abs, err := filepath.Abs(dir); err == nil {
			skipped[abs] = true
		}
	}

	var pages []sourcePage
	var assets []string
	err := filepath.Walk(inputDir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if p == inputDir {
				return nil
			}
			if abs, err := filepath.Abs(p); err == nil && skipped[abs] {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(inputDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if matchesAny(rel, exclude) {
			return nil
		}
		if isHTML(rel) && matchesAny(rel, include) {
			pages = append(pages, sourcePage{Path: p, Location: rel})
			return nil
		}
		assets = append(assets, rel)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan %s: %w", inputDir, err)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Location < pages[j].Location })
	return pages, assets, nil
}

func isHTML(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".html" || ext == ".htm"
}

func matchesAny(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// discoverPages derives a page list from the files themselves, in path
// order. Titles come from <title>, then the first h1, then the filename.
func discoverPages(sources []sourcePage) ([]nav.PageDescriptor, error) {
	pages := make([]nav.PageDescriptor, 0, len(sources))
	seen := make(map[string]string)
	for _, src := range sources {
		name := nav.Filename(src.Location)
		if first, dup := seen[name]; dup {
			return nil, fmt.Errorf("cannot discover pages: %s and %s share the filename %s", first, src.Location, name)
		}
		seen[name] = src.Location

		title, err := pageTitle(src.Path)
		if err != nil {
			return nil, err
		}
		if title == "" {
			title = strings.TrimSuffix(name, path.Ext(name))
		}
		pages = append(pages, nav.PageDescriptor{URL: name, Title: title})
	}
	return pages, nil
}

func pageTitle(p string) (string, error) {
	f, err := os.Open(p)
	if err != nil {
		return "", err
	}
	defer f.Close()
	doc, err := dom.Parse(f)
	if err != nil {
		return "", err
	}
	if t := strings.TrimSpace(doc.Find("head title").First().Text()); t != "" {
		return t, nil
	}
	return strings.TrimSpace(doc.Find("h1").First().Text()), nil
}

// copyAssets copies the non-page files of the export, such as images.
func copyAssets(inputDir, outputDir string, assets []string) error {
	for _, rel := range assets {
		src := filepath.Join(inputDir, filepath.FromSlash(rel))
		dest := filepath.Join(outputDir, filepath.FromSlash(rel))
		if err := copyFile(src, dest); err != nil {
			return fmt.Errorf("failed to copy asset %s: %w", rel, err)
		}
	}
	return nil
}

// copyStaticAssets copies files from the static directory to the output directory.
func copyStaticAssets(staticDir, outputDir string) error {
	allowedExts := map[string]bool{
		".css": true, ".js": true, ".txt": true, ".svg": true,
		".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".ico": true,
		".zip": true, ".sit": true, ".hqx": true, ".bin": true,
	}
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		return nil
	}
	return filepath.Walk(staticDir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !allowedExts[strings.ToLower(filepath.Ext(info.Name()))] {
			return nil
		}
		rel, err := filepath.Rel(staticDir, p)
		if err != nil {
			return err
		}
		return copyFile(p, filepath.Join(outputDir, rel))
	})
}

func copyFile(src, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
