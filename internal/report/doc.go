// Package report writes summaries of what the site shows: the repositories
// picked for the projects section, the lookup tier that supplied them and
// the published posts.
//
// Three formats are supported:
//   - Simple: aligned plain text for the terminal
//   - JSON: for scripts and CI checks
//   - Markdown: for pasting into issues or a README
package report
