package server

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/nao1215/folio/internal/render"
	"github.com/nao1215/folio/internal/view"
)

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, status int, t *template.Template, data pageData) {
	body, err := s.pages.render(t, data)
	if err != nil {
		s.logger.Error("failed to render page", "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeRegion(w http.ResponseWriter, markup template.HTML) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write([]byte(markup))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var region view.Buffer
	s.projects.Skeletons(&region)

	title := s.cfg.Site.Personal.Name
	if title == "" {
		title = "Portfolio"
	}
	data := s.pages.data(title, true)
	data.Region = region.HTML()
	s.writePage(w, r, http.StatusOK, s.pages.index, data)
}

func (s *Server) handleProjectsPartial(w http.ResponseWriter, r *http.Request) {
	var region view.Buffer
	// Failures are already shown as the error card.
	_, _ = s.projects.Load(r.Context(), s.fetcher, s.cfg.GitHub.Username, &region)
	writeRegion(w, region.HTML())
}

func (s *Server) handleBlog(w http.ResponseWriter, r *http.Request) {
	var region view.Buffer
	_ = s.blog.Render(r.Context(), &region)

	data := s.pages.data("Blog", false)
	data.Region = region.HTML()
	s.writePage(w, r, http.StatusOK, s.pages.blog, data)
}

func (s *Server) handlePostsPartial(w http.ResponseWriter, r *http.Request) {
	var region view.Buffer
	_ = s.blog.Render(r.Context(), &region)
	writeRegion(w, region.HTML())
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	var title, body view.Buffer
	status := http.StatusOK

	err := s.post.Render(r.Context(), r.URL.Query(), &title, &body)
	if err != nil && !errors.Is(err, render.ErrMissingInput) {
		status = http.StatusNotFound
	}

	data := s.pages.data("Blog Post", false)
	if title.Written() {
		data.Title = title.Text()
	}
	data.PostTitle = title.Text()
	data.Region = body.HTML()
	s.writePage(w, r, status, s.pages.post, data)
}
