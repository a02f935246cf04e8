// Package markdown renders the short Markdown fragments used in homepage
// content (feature descriptions, hero text) and lists the links they contain.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Options controls fragment rendering.
type Options struct {
	// HardWraps turns single newlines into <br>.
	HardWraps bool
}

// Renderer converts Markdown fragments to HTML. It is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer returns a renderer with GFM enabled. Raw HTML inside fragments
// is passed through: fragments come from the site configuration, which is
// trusted input.
func NewRenderer(opts Options) *Renderer {
	rendererOpts := []renderer.Option{gmhtml.WithUnsafe()}
	if opts.HardWraps {
		rendererOpts = append(rendererOpts, gmhtml.WithHardWraps())
	}
	return &Renderer{md: goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(rendererOpts...),
	)}
}

// Render converts src to HTML.
func (r *Renderer) Render(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	// #nosec G203 -- output of the markdown renderer over trusted config input
	return template.HTML(bytes.TrimSpace(buf.Bytes())), nil
}

// RenderInline renders src and unwraps it when the result is a single
// paragraph, so the fragment can be placed inside an existing <p>.
func (r *Renderer) RenderInline(src string) (template.HTML, error) {
	out, err := r.Render(src)
	if err != nil {
		return "", err
	}
	b := []byte(out)
	if bytes.HasPrefix(b, []byte("<p>")) && bytes.HasSuffix(b, []byte("</p>")) &&
		bytes.Count(b, []byte("<p>")) == 1 {
		b = b[len("<p>") : len(b)-len("</p>")]
	}
	// #nosec G203 -- see Render
	return template.HTML(b), nil
}
