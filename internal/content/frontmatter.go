package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

const frontMatterDelimiter = "---"

var errUnclosedFrontMatter = errors.New("front matter: missing closing ---")

// splitFrontMatter separates a leading YAML block delimited by "---" lines
// from the markdown body. Content without a leading delimiter has no front
// matter.
func splitFrontMatter(raw string) (map[string]interface{}, string, error) {
	raw = strings.TrimPrefix(raw, "\ufeff")
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	lines := strings.Split(raw, "\n")
	if strings.TrimSpace(lines[0]) != frontMatterDelimiter {
		return map[string]interface{}{}, raw, nil
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontMatterDelimiter {
			end = i
			break
		}
	}
	if end == -1 {
		return nil, "", errUnclosedFrontMatter
	}

	var fm map[string]interface{}
	if err := yaml.Unmarshal([]byte(strings.Join(lines[1:end], "\n")), &fm); err != nil {
		return nil, "", fmt.Errorf("front matter: %w", err)
	}
	if fm == nil {
		fm = map[string]interface{}{}
	}

	body := strings.TrimPrefix(strings.Join(lines[end+1:], "\n"), "\n")
	return fm, body, nil
}

// decodeCourse maps front matter onto a Course. When the front matter has no
// slug, fallback is normalized and used instead.
func decodeCourse(fm map[string]interface{}, fallback string) (Course, error) {
	var c Course
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &c,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Course{}, err
	}
	if err := dec.Decode(fm); err != nil {
		return Course{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		return Course{}, fmt.Errorf("%w: missing title", ErrInvalidRecord)
	}

	if c.Slug == "" {
		slug, err := NormalizeSlug(fallback)
		if err != nil {
			return Course{}, fmt.Errorf("%w: slug from %q: %v", ErrInvalidRecord, fallback, err)
		}
		c.Slug = slug
	} else if !ValidSlug(c.Slug) {
		return Course{}, fmt.Errorf("%w: slug %q is not url-safe", ErrInvalidRecord, c.Slug)
	}

	return c, nil
}

// parseDocument reads one content file's text into a Document.
func parseDocument(raw, fallbackSlug string) (Document, error) {
	fm, body, err := splitFrontMatter(raw)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	c, err := decodeCourse(fm, fallbackSlug)
	if err != nil {
		return Document{}, err
	}
	return Document{Course: c, Body: body}, nil
}
