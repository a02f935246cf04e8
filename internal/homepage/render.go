package homepage

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.New("homepage").ParseFS(templateFS, "templates/*.html"))

func renderTemplate(w io.Writer, name string, data any) error {
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}
