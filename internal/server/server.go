// Package server implements the Talegraph web UI: a chapter selector, an
// interactive SVG diagram of the timeline model, and an explicit refresh
// action that bypasses the snapshot.
//
// Navigation is query-string based: ?chapter= selects the focused chapter
// (diagram clicks route here) and ?theme= toggles the palette. One model
// build serves all requests; the model is only rebuilt on startup and on
// refresh.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	apperrors "github.com/talegraph/talegraph/pkg/errors"
	"github.com/talegraph/talegraph/pkg/render"
)

// Server serves the web UI over a chi router.
type Server struct {
	svc          *Service
	logger       *log.Logger
	defaultTheme render.Theme
	router       chi.Router
}

// New creates the web server around a loaded Service.
func New(svc *Service, defaultTheme render.Theme, logger *log.Logger) *Server {
	s := &Server{
		svc:          svc,
		logger:       logger,
		defaultTheme: defaultTheme,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handleIndex)
	r.Get("/diagram.svg", s.handleDiagram)
	r.Post("/refresh", s.handleRefresh)
	r.Get("/healthz", s.handleHealth)

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requestLogger tags each request with a UUID and logs method, path,
// status and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.NewString()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Debug("Request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}

// theme parses the ?theme= parameter, falling back to the configured
// default for unknown values.
func (s *Server) theme(r *http.Request) render.Theme {
	switch r.URL.Query().Get("theme") {
	case string(render.ThemeDark):
		return render.ThemeDark
	case string(render.ThemeLight):
		return render.ThemeLight
	}
	return s.defaultTheme
}

// selectedChapter returns the ?chapter= parameter if it names a known
// chapter, else the first chapter in display order, else "".
func (s *Server) selectedChapter(r *http.Request) string {
	model, _, _ := s.svc.Model()
	if model == nil {
		return ""
	}

	if want := r.URL.Query().Get("chapter"); want != "" {
		if _, ok := model.Node(want); ok {
			return want
		}
	}
	if chapters := model.Chapters(); len(chapters) > 0 {
		return chapters[0]
	}
	if labels := model.Labels(); len(labels) > 0 {
		return labels[0]
	}
	return ""
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	model, fetchedAt, lastErr := s.svc.Model()
	if model == nil {
		msg := "timeline model is not loaded"
		if lastErr != nil {
			msg = apperrors.UserMessage(lastErr)
		}
		http.Error(w, msg, http.StatusServiceUnavailable)
		return
	}

	data := pageData{
		Selected:  s.selectedChapter(r),
		Theme:     s.theme(r),
		FetchedAt: fetchedAt,
		Warnings:  model.Warnings(),
	}
	if lastErr != nil {
		data.RefreshError = apperrors.UserMessage(lastErr)
	}
	for _, main := range model.Chapters() {
		data.Options = append(data.Options, chapterOption{Label: main})
		for _, aside := range model.LinkedAsides(main) {
			data.Options = append(data.Options, chapterOption{Label: aside, Aside: true})
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Error("Render page failed", "err", err)
	}
}

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	model, _, _ := s.svc.Model()
	if model == nil {
		http.Error(w, "timeline model is not loaded", http.StatusServiceUnavailable)
		return
	}

	dot := render.ToDOT(model, render.Options{
		Theme:    s.theme(r),
		Selected: s.selectedChapter(r),
	})
	svg, err := render.RenderSVG(r.Context(), dot)
	if err != nil {
		s.logger.Error("Render diagram failed", "err", err)
		http.Error(w, apperrors.UserMessage(err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

// handleRefresh forces a fetch that bypasses the snapshot, then redirects
// back to the page. A failed fetch keeps the previous model; the error is
// shown on the redirected page.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Load(r.Context(), true); err != nil {
		s.logger.Error("Refresh failed", "err", err)
	}

	target := "/"
	if q := r.URL.RawQuery; q != "" {
		target += "?" + q
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
