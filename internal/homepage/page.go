package homepage

import (
	"bytes"
	"html/template"
	"io"
)

// Region is a pre-rendered block of the page.
type Region struct {
	Name string
	HTML template.HTML
}

// NavLink is a navbar link in the layout shell.
type NavLink struct {
	Label    string
	Href     string
	External bool
}

// Page is the minimal layout shell around the homepage regions.
type Page struct {
	Lang         string
	Title        string
	Description  string
	OGImage      string
	NavLeft      []NavLink
	NavRight     []NavLink
	Announcement template.HTML
	Regions      []Region
	Footer       template.HTML
}

// Renderable is implemented by every composed region.
type Renderable interface {
	Render(w io.Writer) error
}

// RenderRegion renders r into a named region.
func RenderRegion(name string, r Renderable) (Region, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf); err != nil {
		return Region{}, err
	}
	// #nosec G203 -- produced by our own html/template execution
	return Region{Name: name, HTML: template.HTML(buf.String())}, nil
}

// RenderPage writes a complete HTML document for page.
func RenderPage(w io.Writer, page Page) error {
	return renderTemplate(w, "page.html", page)
}
