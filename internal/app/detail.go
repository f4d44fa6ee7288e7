package app

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"cursos/internal/content"
)

// Course bodies are authored in-house and embed raw HTML such as video players.
var markdown = goldmark.New(
	goldmark.WithRendererOptions(
		html.WithUnsafe(),
	),
	goldmark.WithExtensions(extension.GFM))

// CoursePage is the rendered detail page of one course.
type CoursePage struct {
	Metadata Metadata
	Slug     string
	Content  template.HTML
	Back     CourseLink
}

// BuildCoursePage renders doc's markdown body. Links to courses missing from
// known are neutralized; a nil known leaves them untouched.
func BuildCoursePage(doc content.Document, known map[string]struct{}) (CoursePage, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(doc.Body), &buf); err != nil {
		return CoursePage{}, fmt.Errorf("render %s: %w", doc.Slug, err)
	}

	return CoursePage{
		Metadata: Metadata{Title: doc.Title},
		Slug:     doc.Slug,
		Content:  template.HTML(markMissingCourseLinks(buf.String(), known)),
		Back:     CourseLink{Href: CoursesRoute, Title: backToCourses},
	}, nil
}
