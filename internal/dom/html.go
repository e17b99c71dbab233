// internal/dom/html.go
package dom

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoMatch is returned when a selector matches no element.
var ErrNoMatch = errors.New("selector matched nothing")

const (
	hiddenClass  = "docnav-fade"
	visibleClass = "docnav-visible"
	dialogClass  = "docnav-dialog"
	styleID      = "docnav-runtime"
)

// runtimeCSS backs the class toggles emitted for hover effects and dialogs.
const runtimeCSS = `<style id="` + styleID + `">
.docnav-fade { opacity: 0; visibility: hidden; transition-property: opacity, visibility; }
.docnav-fade.docnav-visible { opacity: 1; visibility: visible; }
.clickable { cursor: pointer; }
dialog.docnav-dialog { resize: none; }
dialog.docnav-dialog::backdrop { background: rgba(0, 0, 0, 0.3); }
dialog.docnav-dialog .docnav-close { text-align: right; margin: 0 0 8px 0; }
</style>`

// HTMLDocument realizes Document on a parsed HTML page. Bindings become
// inline event handlers and CSS classes so the written page works without
// any script library.
type HTMLDocument struct {
	doc *goquery.Document
}

// Parse reads a full HTML page.
func Parse(r io.Reader) (*HTMLDocument, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	return &HTMLDocument{doc: doc}, nil
}

// New returns an empty page.
func New() *HTMLDocument {
	d, err := Parse(strings.NewReader("<!DOCTYPE html><html><head></head><body></body></html>"))
	if err != nil {
		// The literal above always parses.
		panic(err)
	}
	return d
}

// Find exposes the underlying selection for inspection.
func (d *HTMLDocument) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// Render writes the whole page, doctype included.
func (d *HTMLDocument) Render(w io.Writer) error {
	return html.Render(w, d.doc.Nodes[0])
}

// String renders the page, returning an empty string on failure.
func (d *HTMLDocument) String() string {
	var b strings.Builder
	if err := d.Render(&b); err != nil {
		return ""
	}
	return b.String()
}

func (d *HTMLDocument) match(selector string) (*goquery.Selection, error) {
	sel := d.doc.Find(selector)
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, selector)
	}
	return sel, nil
}

func (d *HTMLDocument) ensureRuntime() {
	if d.doc.Find("style#"+styleID).Length() > 0 {
		return
	}
	d.doc.Find("head").AppendHtml(runtimeCSS)
}

func (d *HTMLDocument) Append(markup template.HTML) error {
	body, err := d.match("body")
	if err != nil {
		return err
	}
	body.AppendHtml(string(markup))
	return nil
}

func (d *HTMLDocument) AddClass(selector, class string) error {
	sel, err := d.match(selector)
	if err != nil {
		return err
	}
	sel.AddClass(class)
	return nil
}

func (d *HTMLDocument) SetStyle(selector, property, value string) error {
	sel, err := d.match(selector)
	if err != nil {
		return err
	}
	setStyle(sel, property, value)
	return nil
}

func (d *HTMLDocument) Hide(selector string) error {
	sel, err := d.match(selector)
	if err != nil {
		return err
	}
	d.ensureRuntime()
	sel.AddClass(hiddenClass).RemoveClass(visibleClass)
	return nil
}

func (d *HTMLDocument) OnHover(selector string, enter, leave Effect) error {
	sel, err := d.match(selector)
	if err != nil {
		return err
	}
	d.ensureRuntime()
	sel.SetAttr("onmouseenter", effectScript(enter))
	sel.SetAttr("onmouseleave", effectScript(leave))
	return nil
}

// OnClick replaces any handler previously bound to the matched elements.
func (d *HTMLDocument) OnClick(selector string, action Action) error {
	sel, err := d.match(selector)
	if err != nil {
		return err
	}
	var script string
	switch a := action.(type) {
	case Navigate:
		script = "window.location.href='" + template.JSEscapeString(a.URL) + "';"
	case OpenDialog:
		script = openDialogScript(a.Target)
	default:
		return fmt.Errorf("unsupported action %T", action)
	}
	sel.SetAttr("onclick", script+"return false;")
	return nil
}

func (d *HTMLDocument) Dialog(selector string, opts DialogOptions) error {
	sel, err := d.match(selector)
	if err != nil {
		return err
	}
	d.ensureRuntime()

	label := opts.CloseLabel
	if label == "" {
		label = "Close"
	}
	sel.Each(func(_ int, s *goquery.Selection) {
		n := s.Get(0)
		n.Data = "dialog"
		n.DataAtom = atom.Dialog
		s.RemoveAttr("open")
	})
	setStyle(sel, "display", "")
	if opts.Width > 0 {
		setStyle(sel, "width", fmt.Sprintf("%dpx", opts.Width))
	}
	if opts.Resizable {
		setStyle(sel, "resize", "both")
		setStyle(sel, "overflow", "auto")
	}
	sel.AddClass(dialogClass)
	sel.SetAttr("data-docnav-modal", fmt.Sprint(opts.Modal))
	sel.SetAttr("data-docnav-blur", fmt.Sprint(opts.BlurLinks))
	sel.PrependHtml(`<form method="dialog" class="docnav-close"><button type="submit">` +
		template.HTMLEscapeString(label) + `</button></form>`)
	return nil
}

func effectScript(e Effect) string {
	op := "remove"
	if e.Visible {
		op = "add"
	}
	return fmt.Sprintf(
		"document.querySelectorAll('%s').forEach(function(e){e.style.transitionDuration='%dms';e.classList.%s('%s');});",
		template.JSEscapeString(e.Target), e.Duration/time.Millisecond, op, visibleClass)
}

func openDialogScript(target string) string {
	return "var d=document.querySelector('" + template.JSEscapeString(target) + "');" +
		"if(d&&!d.open){" +
		"if(d.dataset.docnavModal==='true'){d.showModal();}else{d.show();}" +
		"if(d.dataset.docnavBlur==='true'){d.querySelectorAll('a').forEach(function(a){a.blur();});}" +
		"}"
}

// setStyle sets one declaration of the style attribute. An empty value
// removes the property.
func setStyle(sel *goquery.Selection, property, value string) {
	sel.Each(func(_ int, s *goquery.Selection) {
		existing, _ := s.Attr("style")
		merged := mergeStyle(existing, property, value)
		if merged == "" {
			s.RemoveAttr("style")
			return
		}
		s.SetAttr("style", merged)
	})
}

func mergeStyle(style, property, value string) string {
	var decls []string
	for _, decl := range strings.Split(style, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		name, _, _ := strings.Cut(decl, ":")
		if strings.EqualFold(strings.TrimSpace(name), property) {
			continue
		}
		decls = append(decls, decl)
	}
	if value != "" {
		decls = append(decls, property+": "+value)
	}
	if len(decls) == 0 {
		return ""
	}
	return strings.Join(decls, "; ") + ";"
}
