package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/nao1215/folio/internal/log"
)

//go:embed templates/*.html
var templateFS embed.FS

var cards = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// execute runs the named card template and returns its output as trusted
// markup for a Region.
func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := cards.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrTemplate, name, err)
	}
	return template.HTML(buf.String()), nil //nolint:gosec // produced by html/template
}

// settings holds the options shared by all renderers.
type settings struct {
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a renderer.
type Option func(*settings)

// WithLogger sets the logger failures are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the clock used for relative times. Tests use a fixed clock.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		logger: log.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
