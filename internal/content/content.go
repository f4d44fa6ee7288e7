// Package content loads course records from the front matter of content files
// or from a MySQL table.
package content

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrLoad signals that a collection could not be read from its backing store.
	ErrLoad = errors.New("content load failed")
	// ErrNotFound signals that no record exists for the requested slug.
	ErrNotFound = errors.New("course not found")
	// ErrInvalidRecord signals a record missing its slug or title.
	ErrInvalidRecord = errors.New("invalid course record")
	// ErrDuplicateSlug signals two records sharing one slug.
	ErrDuplicateSlug = errors.New("duplicate course slug")
)

// Course is the front matter of one course. Fields other than slug, title
// and draft are kept in Extra.
type Course struct {
	Slug  string                 `mapstructure:"slug" json:"slug"`
	Title string                 `mapstructure:"title" json:"title"`
	Draft bool                   `mapstructure:"draft" json:"-"`
	Extra map[string]interface{} `mapstructure:",remain" json:"extra,omitempty"`
}

// Document is a course together with its markdown body.
type Document struct {
	Course
	Body string
}

// Source returns course records for a content category.
//
// AllFrontMatter and AllDocuments return records in canonical order: ascending
// by file name for files, ascending by slug for SQL. Slugs are unique within
// the returned collection.
type Source interface {
	AllFrontMatter(ctx context.Context, category string) ([]Course, error)
	AllDocuments(ctx context.Context, category string) ([]Document, error)
	FileBySlug(ctx context.Context, category, slug string) (Document, error)
}

// Courses strips the bodies from docs.
func Courses(docs []Document) []Course {
	courses := make([]Course, len(docs))
	for i, d := range docs {
		courses[i] = d.Course
	}
	return courses
}

func loadError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrLoad, err)
}

// checkUnique returns ErrDuplicateSlug for the first slug seen twice.
func checkUnique(docs []Document, origin func(i int) string) error {
	seen := make(map[string]int, len(docs))
	for i, d := range docs {
		if prev, ok := seen[d.Slug]; ok {
			return fmt.Errorf("%w: %q in %s and %s", ErrDuplicateSlug, d.Slug, origin(prev), origin(i))
		}
		seen[d.Slug] = i
	}
	return nil
}
