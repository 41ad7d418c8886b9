// Package nav implements the navigation bar behaviour: the mobile menu
// open/close state, scroll-spy highlighting of the section in view, and the
// "scrolled" style of the bar once the page moves.
//
// Controller holds the state and exposes one method per event. Bind wires
// those methods to a view.Surface so the same controller drives the
// in-memory Document in tests and in the preview server.
package nav
