package app

import (
	"bytes"
	"embed"
	"html/template"
)

// templateFS contains the HTML templates bundled with the binary.
//
//go:embed templates/*
var templateFS embed.FS

func parseTemplates() (*template.Template, error) {
	return template.New("base").ParseFS(templateFS, "templates/*.gohtml")
}

// renderTemplate executes name into memory so a failed render never leaves a
// partial page behind.
func renderTemplate(t *template.Template, name string, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
