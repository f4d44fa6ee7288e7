package content

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

var dashRun = regexp.MustCompile(`-+`)

// ValidSlug reports whether slug is already in canonical form.
func ValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

// NormalizeSlug derives a canonical slug from a file name stem such as
// "HTML Básico" or "css_flexbox".
func NormalizeSlug(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if strings.ContainsAny(trimmed, "/\\?&:#'\"") || strings.Contains(trimmed, "..") {
		return "", errors.New("slug contains invalid path characters")
	}

	trimmed = stripDiacritics(trimmed)

	var b strings.Builder
	b.Grow(len(trimmed))
	for _, r := range trimmed {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(unicode.ToLower(r))
		case r == '-' || r == '_' || r == '.' || unicode.IsSpace(r):
			b.WriteRune('-')
		default:
			// drop everything else
		}
	}

	slug := strings.Trim(dashRun.ReplaceAllString(b.String(), "-"), "-")
	if slug == "" {
		return "", errors.New("empty slug")
	}
	if !ValidSlug(slug) {
		return "", errors.New("slug contains invalid characters")
	}
	return slug, nil
}

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func stripDiacritics(s string) string {
	stripped, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		return s
	}
	return stripped
}
