package app

import (
	"strings"
	"testing"
)

func TestMarkMissingCourseLinks(t *testing.T) {
	content := `<p><a href="/cursos/proximamente">Nuevo</a> y <a href="/cursos/html-basico">HTML</a> y <a href="https://example.com">fuera</a></p>`
	known := map[string]struct{}{"html-basico": {}}

	result := markMissingCourseLinks(content, known)

	if !contains(result, `<span class="curso-pendiente" data-href="/cursos/proximamente">Nuevo</span>`) {
		t.Fatalf("missing course link was not converted to span: %s", result)
	}
	if !contains(result, `<a href="/cursos/html-basico">HTML</a>`) {
		t.Fatalf("existing course link did not retain anchor: %s", result)
	}
	if !contains(result, `<a href="https://example.com">fuera</a>`) {
		t.Fatalf("external link changed: %s", result)
	}
}

func TestMarkMissingCourseLinksQueryAndFragment(t *testing.T) {
	known := map[string]struct{}{"html-basico": {}}

	tests := []struct {
		in   string
		want string
	}{
		{`<a href="/cursos/react#temario">Temario</a>`, `<span class="curso-pendiente" data-href="/cursos/react#temario">Temario</span>`},
		{`<a href="/cursos/react?x=1">React</a>`, `<span class="curso-pendiente" data-href="/cursos/react?x=1">React</span>`},
		{`<a href="/cursos/react/#intro">Intro</a>`, `<span class="curso-pendiente" data-href="/cursos/react#intro">Intro</span>`},
		{`<a href="/cursos/html-basico#lecciones">HTML</a>`, `<a href="/cursos/html-basico#lecciones">HTML</a>`},
	}
	for _, tt := range tests {
		if got := markMissingCourseLinks(tt.in, known); got != tt.want {
			t.Errorf("markMissingCourseLinks(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMarkMissingCourseLinksWithoutCatalog(t *testing.T) {
	content := `<a href="/cursos/x">x</a>`
	if got := markMissingCourseLinks(content, nil); got != content {
		t.Fatalf("got %q, want unchanged", got)
	}
}

func contains(haystack, needle string) bool {
	return strings.Contains(haystack, needle)
}
