// internal/nav/render.go
package nav

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"time"

	"docnav/internal/dom"
)

var (
	// ErrNoPages is returned when rendering against an empty page list.
	ErrNoPages = errors.New("page list is empty")
	// ErrBadContext is returned when a context does not fit the page list.
	ErrBadContext = errors.New("context does not match page list")
)

// Selectors of the rendered header.
const (
	BodySelector     = "body"
	SwitchSelector   = "#indexTop .pageswitch"
	MenuSelector     = "#indexTop .pageswitch ul"
	PrevSelector     = "#indexTop .pageleft"
	NextSelector     = "#indexTop .pageright"
	AboutSelector    = "#aboutbox"
	LauncherSelector = ".aboutlauncher"
)

const (
	navClass        = "withnav"
	clickableClass  = "clickable"
	disabledOpacity = "0.5"
	menuFade        = 300 * time.Millisecond
	aboutWidth      = 440
	defaultIcon     = "icon.png"
)

// MenuItemSelector selects the switcher entry for page i.
func MenuItemSelector(i int) string {
	return fmt.Sprintf(`#indexTop .pageswitch li[data-index="%d"]`, i)
}

// Renderer draws the navigation header and about box for one page set.
// It holds no per-page state and can be shared across goroutines.
type Renderer struct {
	pages []PageDescriptor
	meta  DocumentMetadata
	icon  string
}

// NewRenderer copies pages so later changes by the caller do not leak in.
func NewRenderer(pages []PageDescriptor, meta DocumentMetadata) *Renderer {
	return &Renderer{
		pages: append([]PageDescriptor(nil), pages...),
		meta:  meta,
		icon:  defaultIcon,
	}
}

// WithIcon returns a copy of r that uses icon as the launcher image.
func (r *Renderer) WithIcon(icon string) *Renderer {
	c := *r
	if icon != "" {
		c.icon = icon
	}
	return &c
}

// Pages returns the page list the renderer was built with.
func (r *Renderer) Pages() []PageDescriptor {
	return r.pages
}

type menuItem struct {
	Index    int
	Title    string
	Selected bool
}

type headerData struct {
	Icon            string
	Title           string
	ActiveTitle     string
	Items           []menuItem
	Description     template.HTML
	DocmakerArchive string
	HTMLArchive     string
}

// Render inserts the header into doc and binds its handlers.
func (r *Renderer) Render(doc dom.Document, ctx Context) error {
	if len(r.pages) == 0 {
		return ErrNoPages
	}
	if ctx.ActiveIndex < 0 || ctx.ActiveIndex >= len(r.pages) {
		return fmt.Errorf("%w: index %d of %d pages", ErrBadContext, ctx.ActiveIndex, len(r.pages))
	}

	markup, err := r.markup(ctx)
	if err != nil {
		return err
	}
	if err := doc.Append(markup); err != nil {
		return fmt.Errorf("failed to insert header: %w", err)
	}
	if err := doc.AddClass(BodySelector, navClass); err != nil {
		return err
	}

	if err := r.bindMenu(doc, ctx); err != nil {
		return err
	}
	if err := r.bindStep(doc, PrevSelector, ctx.HasPrevious, ctx.ActiveIndex-1); err != nil {
		return err
	}
	if err := r.bindStep(doc, NextSelector, ctx.HasNext, ctx.ActiveIndex+1); err != nil {
		return err
	}
	return r.bindAbout(doc)
}

func (r *Renderer) markup(ctx Context) (template.HTML, error) {
	items := make([]menuItem, len(r.pages))
	for i, p := range r.pages {
		items[i] = menuItem{Index: i, Title: p.Title, Selected: i == ctx.ActiveIndex}
	}

	data := headerData{
		Icon:            r.icon,
		Title:           r.meta.Title,
		ActiveTitle:     r.pages[ctx.ActiveIndex].Title,
		Items:           items,
		Description:     template.HTML(r.meta.DescriptionHTML),
		DocmakerArchive: r.meta.DocmakerArchiveURL,
		HTMLArchive:     r.meta.HTMLArchiveURL,
	}

	var buf bytes.Buffer
	if err := headerTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute header template: %w", err)
	}
	return template.HTML(buf.String()), nil
}

func (r *Renderer) bindMenu(doc dom.Document, ctx Context) error {
	if err := doc.Hide(MenuSelector); err != nil {
		return err
	}
	if err := doc.OnHover(SwitchSelector, dom.FadeIn(MenuSelector, menuFade), dom.FadeOut(MenuSelector, menuFade)); err != nil {
		return err
	}
	for i, p := range r.pages {
		if i == ctx.ActiveIndex {
			continue
		}
		if err := doc.OnClick(MenuItemSelector(i), dom.Navigate{URL: p.URL}); err != nil {
			return err
		}
	}
	return nil
}

// bindStep wires a previous or next control to page target, or greys it
// out when there is nowhere to go.
func (r *Renderer) bindStep(doc dom.Document, selector string, enabled bool, target int) error {
	if !enabled {
		return doc.SetStyle(selector, "opacity", disabledOpacity)
	}
	if err := doc.AddClass(selector, clickableClass); err != nil {
		return err
	}
	return doc.OnClick(selector, dom.Navigate{URL: r.pages[target].URL})
}

func (r *Renderer) bindAbout(doc dom.Document) error {
	err := doc.Dialog(AboutSelector, dom.DialogOptions{
		Width:     aboutWidth,
		Modal:     true,
		Resizable: false,
		BlurLinks: true,
	})
	if err != nil {
		return err
	}
	return doc.OnClick(LauncherSelector, dom.OpenDialog{Target: AboutSelector})
}
