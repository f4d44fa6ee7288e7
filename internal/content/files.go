package content

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileSource reads courses from markdown files under Root/<category>/.
type FileSource struct {
	Root string
}

// NewFileSource returns a FileSource rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{Root: dir}
}

var contentExtensions = map[string]bool{
	".md":  true,
	".mdx": true,
}

// AllFrontMatter returns the front matter of every published file in the
// category, ordered by file name.
func (s *FileSource) AllFrontMatter(ctx context.Context, category string) ([]Course, error) {
	docs, err := s.AllDocuments(ctx, category)
	if err != nil {
		return nil, err
	}
	return Courses(docs), nil
}

// AllDocuments returns every published file in the category, ordered by file
// name. Drafts are skipped.
func (s *FileSource) AllDocuments(ctx context.Context, category string) ([]Document, error) {
	dir, err := s.categoryDir(category)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, loadError("read "+dir, err)
	}

	var (
		docs  []Document
		names []string
	)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, loadError("read "+dir, err)
		}

		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !contentExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}

		path := filepath.Join(dir, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, loadError("read "+path, err)
		}

		doc, err := parseDocument(string(raw), strings.TrimSuffix(name, filepath.Ext(name)))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if doc.Draft {
			continue
		}

		docs = append(docs, doc)
		names = append(names, name)
	}

	if err := checkUnique(docs, func(i int) string { return names[i] }); err != nil {
		return nil, err
	}
	return docs, nil
}

// FileBySlug returns the published document whose slug matches.
func (s *FileSource) FileBySlug(ctx context.Context, category, slug string) (Document, error) {
	if !ValidSlug(slug) {
		return Document{}, fmt.Errorf("%w: %q", ErrNotFound, slug)
	}

	docs, err := s.AllDocuments(ctx, category)
	if err != nil {
		return Document{}, err
	}
	for _, doc := range docs {
		if doc.Slug == slug {
			return doc, nil
		}
	}
	return Document{}, fmt.Errorf("%w: %q", ErrNotFound, slug)
}

func (s *FileSource) categoryDir(category string) (string, error) {
	if !ValidSlug(category) {
		return "", fmt.Errorf("invalid category %q: %w", category, ErrLoad)
	}
	return filepath.Join(s.Root, category), nil
}
