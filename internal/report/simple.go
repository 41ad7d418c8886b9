package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

// SimpleWriter outputs plain text for the terminal.
type SimpleWriter struct {
	baseWriter

	// verbose adds descriptions and post paths.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the listing in human-readable format.
func (w *SimpleWriter) Write(l *Listing) (int, error) {
	var sb strings.Builder

	if l.hasProjects() {
		w.writeProjects(&sb, l)
	}
	w.writePosts(&sb, l)

	return w.output.Write([]byte(sb.String()))
}

func section(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}

func (w *SimpleWriter) writeProjects(sb *strings.Builder, l *Listing) {
	title := "PROJECTS"
	if l.Username != "" {
		title += " (" + l.Username + ")"
	}
	section(sb, title)

	if l.Error != "" {
		fmt.Fprintf(sb, "  Unable to load projects: %s\n\n", l.Error)
		return
	}
	if len(l.Repos) == 0 {
		sb.WriteString("  No repositories found\n\n")
		return
	}

	fmt.Fprintf(sb, "  Source: %s\n\n", l.Tier)
	for _, r := range l.Repos {
		fmt.Fprintf(sb, "  * %-32s %-12s updated %s\n",
			truncateString(r.DisplayName(), 32),
			orDash(r.Language),
			humanize.RelTime(r.UpdatedAt, l.Generated, "ago", "from now"),
		)
		fmt.Fprintf(sb, "    %s\n", r.HTMLURL)
		if r.HasHomepage() {
			fmt.Fprintf(sb, "    %s\n", r.HomepageURL)
		}
		if w.verbose && r.Description != "" {
			fmt.Fprintf(sb, "    %s\n", r.Description)
		}
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writePosts(sb *strings.Builder, l *Listing) {
	section(sb, "POSTS")

	if len(l.Posts) == 0 {
		sb.WriteString("  No posts published yet\n\n")
		return
	}
	for _, p := range l.Posts {
		fmt.Fprintf(sb, "  %s  %s\n", p.Date, p.Title)
		if w.verbose {
			fmt.Fprintf(sb, "              %s\n", p.Path)
		}
	}
	sb.WriteString("\n")
}
