package app

import (
	"context"
	"fmt"
	"net/url"

	"cursos/internal/content"
)

const (
	// CoursesRoute is the path prefix of the listing and detail pages.
	CoursesRoute    = "/cursos"
	// CoursesCategory is the content category holding course files.
	CoursesCategory = "courses"
)

// Metadata describes the page head.
type Metadata struct {
	Title string `json:"title"`
}

// CourseLink is one rendered entry of the course listing.
type CourseLink struct {
	Slug  string `json:"slug"`
	Href  string `json:"href"`
	Title string `json:"title"`
}

// ListingPage is the composed course listing.
type ListingPage struct {
	Metadata Metadata     `json:"metadata"`
	Intro    string       `json:"intro"`
	Links    []CourseLink `json:"courses"`
}

// CoursePath returns the detail route for slug.
func CoursePath(slug string) string {
	return CoursesRoute + "/" + url.PathEscape(slug)
}

// BuildListing composes the listing page for courses. Links appear in the
// reverse of the given order; courses is not modified.
func BuildListing(courses []content.Course) ListingPage {
	links := make([]CourseLink, len(courses))
	for i, c := range courses {
		links[len(courses)-1-i] = CourseLink{
			Slug:  c.Slug,
			Href:  CoursePath(c.Slug),
			Title: c.Title,
		}
	}

	return ListingPage{
		Metadata: Metadata{Title: coursesTitle},
		Intro:    coursesIntro,
		Links:    links,
	}
}

// LoadListing fetches the course collection from src and composes the page.
func LoadListing(ctx context.Context, src content.Source) (ListingPage, error) {
	courses, err := src.AllFrontMatter(ctx, CoursesCategory)
	if err != nil {
		return ListingPage{}, fmt.Errorf("load courses: %w", err)
	}
	return BuildListing(courses), nil
}
