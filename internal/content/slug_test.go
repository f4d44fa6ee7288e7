package content

import "testing"

func TestNormalizeSlug(t *testing.T) {
	tests := map[string]string{
		"html-basico":     "html-basico",
		"HTML Básico":     "html-basico",
		"css_flexbox":     "css-flexbox",
		"  spaced out  ":  "spaced-out",
		"Diseño--Web":     "diseno-web",
		"react.v18":       "react-v18",
		"JavaScript 2024": "javascript-2024",
	}

	for input, want := range tests {
		got, err := NormalizeSlug(input)
		if err != nil {
			t.Fatalf("NormalizeSlug(%q) unexpected error: %v", input, err)
		}
		if got != want {
			t.Fatalf("NormalizeSlug(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeSlugInvalid(t *testing.T) {
	inputs := []string{"", "---", "../etc/passwd", "white space?", "Привет"}
	for _, input := range inputs {
		if _, err := NormalizeSlug(input); err == nil {
			t.Fatalf("NormalizeSlug(%q) expected error", input)
		}
	}
}

func TestValidSlug(t *testing.T) {
	valid := []string{"a", "html-basico", "css3", "curso-2-avanzado"}
	for _, s := range valid {
		if !ValidSlug(s) {
			t.Errorf("ValidSlug(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "-a", "a-", "a--b", "Mayus", "con espacio", "a/b", "a_b"}
	for _, s := range invalid {
		if ValidSlug(s) {
			t.Errorf("ValidSlug(%q) = true, want false", s)
		}
	}
}
