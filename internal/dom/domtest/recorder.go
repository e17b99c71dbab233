// Package domtest provides a dom.Document that records bindings and lets
// tests play the part of the user.
package domtest

import (
	"time"

	"docnav/internal/dom"
)

// Recorder builds real markup through a dom.HTMLDocument and remembers
// every handler so clicks and hovers can be simulated afterwards.
type Recorder struct {
	*dom.HTMLDocument

	clicks      map[string]dom.Action
	hovers      map[string][2]dom.Effect
	hidden      map[string]bool
	dialogs     map[string]dom.DialogOptions
	open        map[string]bool
	navigations []string
}

// NewRecorder returns a Recorder around an empty page.
func NewRecorder() *Recorder {
	return &Recorder{
		HTMLDocument: dom.New(),
		clicks:       make(map[string]dom.Action),
		hovers:       make(map[string][2]dom.Effect),
		hidden:       make(map[string]bool),
		dialogs:      make(map[string]dom.DialogOptions),
		open:         make(map[string]bool),
	}
}

func (r *Recorder) Hide(selector string) error {
	if err := r.HTMLDocument.Hide(selector); err != nil {
		return err
	}
	r.hidden[selector] = true
	return nil
}

func (r *Recorder) OnHover(selector string, enter, leave dom.Effect) error {
	if err := r.HTMLDocument.OnHover(selector, enter, leave); err != nil {
		return err
	}
	r.hovers[selector] = [2]dom.Effect{enter, leave}
	return nil
}

func (r *Recorder) OnClick(selector string, action dom.Action) error {
	if err := r.HTMLDocument.OnClick(selector, action); err != nil {
		return err
	}
	r.clicks[selector] = action
	return nil
}

func (r *Recorder) Dialog(selector string, opts dom.DialogOptions) error {
	if err := r.HTMLDocument.Dialog(selector, opts); err != nil {
		return err
	}
	r.dialogs[selector] = opts
	return nil
}

// Bound reports the action bound to selector, if any.
func (r *Recorder) Bound(selector string) (dom.Action, bool) {
	a, ok := r.clicks[selector]
	return a, ok
}

// Click performs the action bound to selector and reports whether there
// was one.
func (r *Recorder) Click(selector string) bool {
	a, ok := r.clicks[selector]
	if !ok {
		return false
	}
	switch a := a.(type) {
	case dom.Navigate:
		r.navigations = append(r.navigations, a.URL)
	case dom.OpenDialog:
		if _, isDialog := r.dialogs[a.Target]; isDialog {
			r.open[a.Target] = true
		}
	}
	return true
}

// Close closes the dialog matched by selector.
func (r *Recorder) Close(selector string) {
	delete(r.open, selector)
}

// Hover applies the enter effect bound to selector.
func (r *Recorder) Hover(selector string) (time.Duration, bool) {
	return r.applyHover(selector, 0)
}

// Leave applies the leave effect bound to selector.
func (r *Recorder) Leave(selector string) (time.Duration, bool) {
	return r.applyHover(selector, 1)
}

func (r *Recorder) applyHover(selector string, i int) (time.Duration, bool) {
	effects, ok := r.hovers[selector]
	if !ok {
		return 0, false
	}
	e := effects[i]
	r.hidden[e.Target] = !e.Visible
	return e.Duration, true
}

// Visible reports whether an element hidden through Hide has been revealed.
// Selectors never hidden count as visible.
func (r *Recorder) Visible(selector string) bool {
	return !r.hidden[selector]
}

// DialogOptions returns the options a dialog was created with.
func (r *Recorder) DialogOptions(selector string) (dom.DialogOptions, bool) {
	opts, ok := r.dialogs[selector]
	return opts, ok
}

// OpenDialogs counts the dialogs currently open.
func (r *Recorder) OpenDialogs() int {
	return len(r.open)
}

// Navigations lists the URLs navigated to, in order.
func (r *Recorder) Navigations() []string {
	return r.navigations
}
