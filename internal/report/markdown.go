package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs listings as GitHub-flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the listing in Markdown format.
func (w *MarkdownWriter) Write(l *Listing) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, l)
	w.writeProjects(md, l)
	w.writePosts(md, l)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, l *Listing) {
	md.H1("Portfolio Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"GitHub User", orDash(l.Username)},
			{"Project Source", orDash(l.Tier)},
			{"Projects", strconv.Itoa(len(l.Repos))},
			{"Posts", strconv.Itoa(len(l.Posts))},
			{"Generated", l.Generated.Format("2006-01-02 15:04:05 MST")},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeProjects(md *markdown.Markdown, l *Listing) {
	md.H2("Projects")
	md.PlainText("")

	switch {
	case l.Error != "":
		md.Warningf("Projects could not be loaded: %s", l.Error)
		md.PlainText("")
		return
	case len(l.Repos) == 0:
		md.Note("No repositories to show.")
		md.PlainText("")
		return
	case l.Tier != "pinned":
		md.Importantf("No pinned repositories were found, so the %s lookup supplied the list.", l.Tier)
		md.PlainText("")
	}

	rows := make([][]string, len(l.Repos))
	for i, r := range l.Repos {
		rows[i] = []string{
			"[" + r.DisplayName() + "](" + r.HTMLURL + ")",
			orDash(r.Language),
			r.UpdatedAt.Format(dateLayout),
			truncateString(orDash(r.Description), 60),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Name", "Language", "Updated", "Description"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writeLanguageChart(md, l)
}

func (w *MarkdownWriter) writeLanguageChart(md *markdown.Markdown, l *Listing) {
	order, counts := l.Languages()
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Languages"),
		piechart.WithShowData(true),
	)
	for _, lang := range order {
		chart.LabelAndIntValue(lang, uint64(counts[lang]))
	}
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writePosts(md *markdown.Markdown, l *Listing) {
	md.H2("Posts")
	md.PlainText("")

	if len(l.Posts) == 0 {
		md.Tip("No posts published yet. Add an HTML file to the posts directory and run folio build.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(l.Posts))
	for i, p := range l.Posts {
		rows[i] = []string{p.Date, p.Title, "`" + p.File + "`"}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Date", "Title", "File"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [folio](https://github.com/nao1215/folio)*")
}
