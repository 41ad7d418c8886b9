package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/folio/internal/config"
	"github.com/nao1215/folio/internal/nav"
	"github.com/nao1215/folio/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// sectionHeight is the nominal height of a page section. It only seeds the
// initial navigation state; the browser script measures the real layout.
const sectionHeight = 800

// pageSections are the portfolio sections in page order.
var pageSections = []struct {
	ID    string
	Label string
}{
	{ID: "home", Label: "Home"},
	{ID: "about", Label: "About"},
	{ID: "skills", Label: "Skills"},
	{ID: "projects", Label: "Projects"},
	{ID: "contact", Label: "Contact"},
}

type navLink struct {
	ID     string
	Label  string
	Href   string
	Offset int
	Active bool
}

type skillGroup struct {
	Heading string
	Items   []string
}

type pageData struct {
	Title    string
	Site     config.SiteConfig
	Theme    template.CSS
	Nav      []navLink
	Scrolled bool
	Skills   []skillGroup

	// Region is server-rendered content of the page's main region.
	Region template.HTML

	// PostTitle is the post page heading.
	PostTitle string
}

// pages holds one template set per page, each combined with the layout.
type pages struct {
	site   config.SiteConfig
	theme  template.CSS
	skills []skillGroup
	index  *template.Template
	blog   *template.Template
	post   *template.Template
}

func newPages(site config.SiteConfig) *pages {
	parse := func(page string) *template.Template {
		return template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+page))
	}
	return &pages{
		site:   site,
		theme:  themeCSS(site.Theme),
		skills: skillGroups(site.Skills),
		index:  parse("index.html"),
		blog:   parse("blog.html"),
		post:   parse("post.html"),
	}
}

// themeCSS returns the custom property declarations for the theme colors.
// Colors are validated as hex values when the config is loaded.
func themeCSS(t config.Theme) template.CSS {
	var buf bytes.Buffer
	for _, v := range []struct{ name, value string }{
		{"--primary-color", t.Primary},
		{"--secondary-color", t.Secondary},
		{"--accent-color", t.Accent},
	} {
		if v.value != "" {
			fmt.Fprintf(&buf, "%s: %s; ", v.name, v.value)
		}
	}
	return template.CSS(bytes.TrimSpace(buf.Bytes())) //nolint:gosec // hex colors only
}

func skillGroups(groups []config.SkillGroup) []skillGroup {
	caser := cases.Title(language.English)
	out := make([]skillGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, skillGroup{Heading: caser.String(g.Category), Items: g.Items})
	}
	return out
}

// navState returns the navigation links with the state a freshly loaded
// page starts in. onIndex selects in-page anchors over links back to "/".
func navState(onIndex bool) ([]navLink, bool) {
	sections := make([]nav.Section, len(pageSections))
	for i, s := range pageSections {
		sections[i] = nav.Section{ID: s.ID, Top: i * sectionHeight, Height: sectionHeight}
	}

	doc := view.NewDocument()
	ctrl := nav.New(doc, sections)
	ctrl.Bind()
	if onIndex {
		doc.ScrollTo(0)
	}

	links := make([]navLink, 0, len(pageSections))
	for i, s := range ctrl.Sections() {
		offset, _ := ctrl.ScrollTarget(s.ID)
		href := "#" + s.ID
		if !onIndex {
			href = "/" + href
		}
		links = append(links, navLink{
			ID:     s.ID,
			Label:  pageSections[i].Label,
			Href:   href,
			Offset: offset,
			Active: doc.HasClass(nav.LinkTarget(s.ID), nav.ClassActive),
		})
	}
	return links, ctrl.Scrolled()
}

func (p *pages) data(title string, onIndex bool) pageData {
	links, scrolled := navState(onIndex)
	return pageData{
		Title:    title,
		Site:     p.site,
		Theme:    p.theme,
		Nav:      links,
		Scrolled: scrolled,
		Skills:   p.skills,
	}
}

func (p *pages) render(t *template.Template, data pageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.Bytes(), nil
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub))
}
