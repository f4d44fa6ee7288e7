package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"cursos/internal/content"
)

// Manifest records what a static build produced. Courses lists slugs in
// listing order.
type Manifest struct {
	BuildID     string    `json:"build_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Courses     []string  `json:"courses"`
}

// Export writes the listing, one page per course and manifest.json under
// outDir. Every page is rendered before anything is written, so a failed
// load or render leaves outDir untouched. The cursos/ subtree is replaced
// as a whole, so pages of courses removed since the last build go away.
func (s *Server) Export(ctx context.Context, outDir string) (Manifest, error) {
	docs, err := s.source.AllDocuments(ctx, CoursesCategory)
	if err != nil {
		return Manifest{}, fmt.Errorf("load courses: %w", err)
	}

	listing := BuildListing(content.Courses(docs))
	known := slugSet(listing.Links)

	files := make(map[string][]byte, len(docs)+2)
	body, err := renderTemplate(s.templates, "courses.gohtml", listing)
	if err != nil {
		return Manifest{}, fmt.Errorf("render listing: %w", err)
	}
	files[pagePath(outDir, CoursesRoute)] = body

	for _, doc := range docs {
		page, err := BuildCoursePage(doc, known)
		if err != nil {
			return Manifest{}, err
		}
		body, err := renderTemplate(s.templates, "course.gohtml", page)
		if err != nil {
			return Manifest{}, fmt.Errorf("render %s: %w", doc.Slug, err)
		}
		files[pagePath(outDir, CoursePath(doc.Slug))] = body
	}

	manifest := Manifest{
		BuildID:     uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Courses:     make([]string, len(listing.Links)),
	}
	for i, link := range listing.Links {
		manifest.Courses[i] = link.Slug
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return Manifest{}, fmt.Errorf("marshal manifest: %w", err)
	}
	files[filepath.Join(outDir, "manifest.json")] = data

	if err := os.RemoveAll(routeDir(outDir, CoursesRoute)); err != nil {
		return Manifest{}, fmt.Errorf("clear %s: %w", CoursesRoute, err)
	}

	for path, body := range files {
		if err := ctx.Err(); err != nil {
			return Manifest{}, err
		}
		if err := writeFileAtomic(path, body, 0o644); err != nil {
			return Manifest{}, fmt.Errorf("write %s: %w", path, err)
		}
	}

	return manifest, nil
}

// pagePath maps a route onto its index.html under outDir.
func pagePath(outDir, route string) string {
	return filepath.Join(routeDir(outDir, route), "index.html")
}

func routeDir(outDir, route string) string {
	return filepath.Join(outDir, filepath.FromSlash(strings.TrimPrefix(route, "/")))
}
