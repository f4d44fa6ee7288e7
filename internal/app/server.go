package app

import (
	"context"
	"errors"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/rs/cors"
	"golang.org/x/sync/singleflight"

	"cursos/internal/content"
)

// Server wires handlers, templates, and the content source together.
type Server struct {
	cfg       Config
	source    content.Source
	templates *template.Template
	router    chi.Router
	loadGroup singleflight.Group
}

// NewServer constructs an HTTP handler ready to serve course pages.
func NewServer(src content.Source, cfg Config) (*Server, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	srv := &Server{
		cfg:       cfg,
		source:    src,
		templates: tmpl,
	}
	srv.router = srv.routes()

	return srv, nil
}

// ServeHTTP satisfies http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, CoursesRoute, http.StatusFound)
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route(CoursesRoute, func(r chi.Router) {
		r.Get("/", s.handleCourses)
		r.Get("/{slug}", s.handleCourse)
	})

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet},
	})
	r.Route("/api", func(r chi.Router) {
		r.Use(c.Handler)
		r.Get(CoursesRoute, s.handleCoursesAPI)
	})

	return r
}

// loadCourses coalesces concurrent loads of the course collection. Results
// are not kept once the in-flight load finishes. The shared load is detached
// from any single caller's cancellation; each caller stops waiting when its
// own ctx is done.
func (s *Server) loadCourses(ctx context.Context) (ListingPage, error) {
	ch := s.loadGroup.DoChan(CoursesCategory, func() (interface{}, error) {
		return LoadListing(context.WithoutCancel(ctx), s.source)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return ListingPage{}, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return ListingPage{}, res.Err
	}
	page, ok := res.Val.(ListingPage)
	if !ok {
		return ListingPage{}, errors.New("listing result type mismatch")
	}
	return page, nil
}

func (s *Server) handleCourses(w http.ResponseWriter, r *http.Request) {
	page, err := s.loadCourses(r.Context())
	if err != nil {
		log.Printf("load listing: %v", err)
		http.Error(w, "failed to load courses", http.StatusInternalServerError)
		return
	}

	s.writePage(w, "courses.gohtml", page)
}

func (s *Server) handleCourse(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if !content.ValidSlug(slug) {
		http.NotFound(w, r)
		return
	}

	ctx := r.Context()
	doc, err := s.source.FileBySlug(ctx, CoursesCategory, slug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Printf("load course %s: %v", slug, err)
		http.Error(w, "failed to load course", http.StatusInternalServerError)
		return
	}

	var known map[string]struct{}
	if listing, err := s.loadCourses(ctx); err != nil {
		log.Printf("load listing for %s: %v", slug, err)
	} else {
		known = slugSet(listing.Links)
	}

	page, err := BuildCoursePage(doc, known)
	if err != nil {
		log.Printf("build course %s: %v", slug, err)
		http.Error(w, "failed to render course", http.StatusInternalServerError)
		return
	}

	s.writePage(w, "course.gohtml", page)
}

func (s *Server) handleCoursesAPI(w http.ResponseWriter, r *http.Request) {
	page, err := s.loadCourses(r.Context())
	if err != nil {
		log.Printf("load listing: %v", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": "failed to load courses"})
		return
	}

	render.JSON(w, r, page)
}

func (s *Server) writePage(w http.ResponseWriter, name string, data interface{}) {
	body, err := renderTemplate(s.templates, name, data)
	if err != nil {
		log.Printf("render %s: %v", name, err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}
