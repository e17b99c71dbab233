// internal/dom/dom.go
package dom

import (
	"html/template"
	"time"
)

// Document is the set of page operations the navigation renderer needs.
// Selectors are CSS selectors evaluated against the whole document.
type Document interface {
	// Append inserts markup at the end of the body.
	Append(markup template.HTML) error
	AddClass(selector, class string) error
	SetStyle(selector, property, value string) error
	// Hide puts the matched elements into their hidden state. A later
	// Effect with Visible set reveals them.
	Hide(selector string) error
	OnHover(selector string, enter, leave Effect) error
	// OnClick binds an action to every matched element. The browser's
	// default click behavior is always suppressed.
	OnClick(selector string, action Action) error
	// Dialog turns the matched element into a dialog that stays closed
	// until an OpenDialog action targets it.
	Dialog(selector string, opts DialogOptions) error
}

// Action is what a click does. The concrete types are Navigate and OpenDialog.
type Action interface {
	action()
}

// Navigate replaces the current document with URL.
type Navigate struct {
	URL string
}

// OpenDialog opens the dialog matched by Target. Opening a dialog that is
// already open does nothing.
type OpenDialog struct {
	Target string
}

func (Navigate) action()   {}
func (OpenDialog) action() {}

// Effect shows or hides Target with a fade lasting Duration.
type Effect struct {
	Target   string
	Visible  bool
	Duration time.Duration
}

// FadeIn and FadeOut build the two hover effects.
func FadeIn(target string, d time.Duration) Effect {
	return Effect{Target: target, Visible: true, Duration: d}
}

func FadeOut(target string, d time.Duration) Effect {
	return Effect{Target: target, Visible: false, Duration: d}
}

// DialogOptions mirrors the knobs of a classic modal widget. Dialogs are
// always centered and never draggable.
type DialogOptions struct {
	Width     int
	Modal     bool
	Resizable bool
	// BlurLinks removes focus from links inside the dialog when it opens.
	BlurLinks bool
	// CloseLabel is the text of the close button. Empty means "Close".
	CloseLabel string
}
