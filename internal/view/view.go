// Package view is the small surface the renderers and the navigation
// controller draw on. Region is a container a renderer owns; Surface is the
// event and class-toggling side of a page. Buffer and Document are the
// in-memory implementations used by the preview server and by tests.
package view

import (
	"html"
	"html/template"
	"slices"
	"sync"
)

// Region is a container whose content a single renderer replaces wholesale.
type Region interface {
	// Render replaces the region's content with trusted markup.
	Render(markup template.HTML)

	// SetText replaces the region's content with plain text.
	SetText(text string)
}

// Surface delivers user events and exposes CSS class toggling.
// Targets are element identifiers such as "nav-toggle".
type Surface interface {
	// OnClick registers h for clicks on target. The AnyTarget handler sees
	// every click together with the clicked target.
	OnClick(target string, h func(target string))

	// OnKey registers h for key presses. Keys use DOM names, e.g. "Escape".
	OnKey(h func(key string))

	// OnScroll registers h for scroll ticks with the vertical offset in pixels.
	OnScroll(h func(y int))

	// SetClass adds or removes class on target.
	SetClass(target, class string, on bool)
}

// AnyTarget subscribes a click handler to every target.
const AnyTarget = "*"

// Buffer is an in-memory Region.
type Buffer struct {
	mu     sync.Mutex
	markup template.HTML
	text   string
	writes int
}

// Render implements Region.
func (b *Buffer) Render(markup template.HTML) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.markup = markup
	b.text = ""
	b.writes++
}

// SetText implements Region. The text is escaped for HTML output.
func (b *Buffer) SetText(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.markup = template.HTML(html.EscapeString(text)) //nolint:gosec // escaped above
	b.text = text
	b.writes++
}

// HTML returns the current content as markup.
func (b *Buffer) HTML() template.HTML {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.markup
}

// Text returns the text set by the last SetText, or "" after Render.
func (b *Buffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

// Written reports whether anything was rendered into the buffer.
func (b *Buffer) Written() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writes > 0
}

// Document is an in-memory Surface. Events are fired with Click, Press and
// ScrollTo; handlers run synchronously on the caller's goroutine.
type Document struct {
	mu      sync.Mutex
	clicks  map[string][]func(string)
	keys    []func(string)
	scrolls []func(int)
	classes map[string]map[string]bool
}

// NewDocument returns an empty Document.
func NewDocument() *Document {
	return &Document{
		clicks:  make(map[string][]func(string)),
		classes: make(map[string]map[string]bool),
	}
}

// OnClick implements Surface.
func (d *Document) OnClick(target string, h func(string)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clicks[target] = append(d.clicks[target], h)
}

// OnKey implements Surface.
func (d *Document) OnKey(h func(string)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.keys = append(d.keys, h)
}

// OnScroll implements Surface.
func (d *Document) OnScroll(h func(int)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scrolls = append(d.scrolls, h)
}

// SetClass implements Surface.
func (d *Document) SetClass(target, class string, on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	set := d.classes[target]
	if set == nil {
		set = make(map[string]bool)
		d.classes[target] = set
	}
	if on {
		set[class] = true
	} else {
		delete(set, class)
	}
}

// HasClass reports whether target currently has class.
func (d *Document) HasClass(target, class string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.classes[target][class]
}

// Classes returns target's classes in sorted order.
func (d *Document) Classes(target string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, len(d.classes[target]))
	for c := range d.classes[target] {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Click fires target's handlers, then the AnyTarget handlers.
func (d *Document) Click(target string) {
	d.mu.Lock()
	hs := slices.Clone(d.clicks[target])
	hs = append(hs, d.clicks[AnyTarget]...)
	d.mu.Unlock()

	for _, h := range hs {
		h(target)
	}
}

// Press fires the key handlers.
func (d *Document) Press(key string) {
	d.mu.Lock()
	hs := slices.Clone(d.keys)
	d.mu.Unlock()

	for _, h := range hs {
		h(key)
	}
}

// ScrollTo fires the scroll handlers with offset y.
func (d *Document) ScrollTo(y int) {
	d.mu.Lock()
	hs := slices.Clone(d.scrolls)
	d.mu.Unlock()

	for _, h := range hs {
		h(y)
	}
}
