package nav

import (
	"strings"
	"sync"

	"github.com/nao1215/folio/internal/view"
)

// Element targets the controller reads events from and toggles classes on.
const (
	TargetNavbar = "navbar"
	TargetToggle = "nav-toggle"
	TargetMenu   = "nav-menu"
	TargetBody   = "body"

	// linkPrefix prefixes the target of each section's navigation link.
	linkPrefix = "nav-link:"
)

// CSS classes set by the controller.
const (
	ClassActive   = "active"
	ClassScrolled = "scrolled"
	ClassNoScroll = "no-scroll"
)

const (
	// SpyOffset is added to the scroll position before looking up the
	// section in view, so a section counts as current slightly before its
	// top reaches the fixed header.
	SpyOffset = 100

	// ScrolledThreshold is the offset past which the bar gets ClassScrolled.
	ScrolledThreshold = 50

	// HeaderHeight is subtracted from a section's top when scrolling to it.
	HeaderHeight = 75
)

// Section is a page section with its vertical span in pixels.
type Section struct {
	ID     string
	Top    int
	Height int
}

// contains reports whether y lies in (Top, Top+Height]. A position exactly
// on a boundary belongs to the section above it.
func (s Section) contains(y int) bool {
	return y > s.Top && y <= s.Top+s.Height
}

// LinkTarget returns the target name of the navigation link for section id.
func LinkTarget(id string) string {
	return linkPrefix + id
}

// Controller is the navigation state machine.
type Controller struct {
	mu       sync.Mutex
	surface  view.Surface
	sections []Section

	menuOpen bool
	active   string
	scrolled bool
}

// New creates a Controller for sections drawn on surface.
func New(surface view.Surface, sections []Section) *Controller {
	return &Controller{surface: surface, sections: sections}
}

// Bind registers the controller's handlers on its surface.
func (c *Controller) Bind() {
	c.surface.OnClick(TargetToggle, func(string) { c.Toggle() })
	for _, s := range c.sections {
		id := s.ID
		c.surface.OnClick(LinkTarget(id), func(string) { c.LinkClicked(id) })
	}
	c.surface.OnClick(view.AnyTarget, func(target string) {
		if !insideNav(target) {
			c.ClickOutside()
		}
	})
	c.surface.OnKey(c.KeyDown)
	c.surface.OnScroll(c.Scroll)
}

// insideNav reports whether target belongs to the navigation bar.
func insideNav(target string) bool {
	switch target {
	case TargetNavbar, TargetToggle, TargetMenu:
		return true
	}
	return strings.HasPrefix(target, linkPrefix)
}

// Toggle flips the menu state.
func (c *Controller) Toggle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setMenu(!c.menuOpen)
}

// LinkClicked closes the menu after a navigation link was followed.
func (c *Controller) LinkClicked(string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setMenu(false)
}

// ClickOutside closes the menu.
func (c *Controller) ClickOutside() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setMenu(false)
}

// KeyDown closes an open menu on Escape and ignores every other key.
func (c *Controller) KeyDown(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if key == "Escape" && c.menuOpen {
		c.setMenu(false)
	}
}

// setMenu stores the state and mirrors it onto the toggle, the menu and
// the page body. c.mu must be held.
func (c *Controller) setMenu(open bool) {
	c.menuOpen = open
	c.surface.SetClass(TargetToggle, ClassActive, open)
	c.surface.SetClass(TargetMenu, ClassActive, open)
	c.surface.SetClass(TargetBody, ClassNoScroll, open)
}

// Scroll recomputes the scrolled style and the active section for offset y.
// When no section contains y+SpyOffset the previous active section stays.
func (c *Controller) Scroll(y int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.scrolled = y > ScrolledThreshold
	c.surface.SetClass(TargetNavbar, ClassScrolled, c.scrolled)

	pos := y + SpyOffset
	for _, s := range c.sections {
		if !s.contains(pos) {
			continue
		}
		c.active = s.ID
		for _, other := range c.sections {
			c.surface.SetClass(LinkTarget(other.ID), ClassActive, other.ID == s.ID)
		}
		return
	}
}

// ScrollTarget returns the offset to scroll to so that section id sits just
// below the fixed header.
func (c *Controller) ScrollTarget(id string) (int, bool) {
	for _, s := range c.sections {
		if s.ID == id {
			return max(s.Top-HeaderHeight, 0), true
		}
	}
	return 0, false
}

// MenuOpen reports whether the mobile menu is open.
func (c *Controller) MenuOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.menuOpen
}

// Active returns the id of the section in view, or "" before the first scroll.
func (c *Controller) Active() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Scrolled reports whether the bar is in its scrolled style.
func (c *Controller) Scrolled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scrolled
}

// Sections returns the sections the controller tracks.
func (c *Controller) Sections() []Section {
	return c.sections
}
