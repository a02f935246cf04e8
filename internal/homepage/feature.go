package homepage

import (
	"fmt"
	"html/template"
	"io"
	"log/slog"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// FeatureCell is the rendered view of one feature entry.
type FeatureCell struct {
	Index       int
	Title       string
	IconSrc     string
	IconAlt     string
	Href        string
	Description template.HTML
}

// FeatureGrid is the composed feature region. An empty grid still renders
// its container.
type FeatureGrid struct {
	Cells    []FeatureCell
	Warnings []string
}

// ComposeFeatureGrid produces one cell per entry in input order. Cells are
// composed independently; a duplicate title is reported as a warning and
// never rejected.
func ComposeFeatureGrid(entries []config.FeatureEntry, opts ...Option) (FeatureGrid, error) {
	o := newOptions(opts)

	cells, err := composeAll(entries, func(i int, e config.FeatureEntry) (FeatureCell, error) {
		desc, err := o.markdown.RenderInline(e.Description)
		if err != nil {
			return FeatureCell{}, fmt.Errorf("feature %d (%s): %w", i, e.Title, err)
		}
		cell := FeatureCell{
			Index:       i,
			Title:       e.Title,
			Href:        o.resolver.Resolve(e.Link),
			Description: desc,
		}
		if !e.Icon.IsZero() {
			cell.IconSrc = o.resolver.Resolve(e.Icon.Src)
			cell.IconAlt = e.Icon.Alt
		}
		return cell, nil
	})
	if err != nil {
		return FeatureGrid{}, err
	}

	grid := FeatureGrid{Cells: cells}
	seen := make(map[string]int, len(entries))
	for i, e := range entries {
		if first, dup := seen[e.Title]; dup {
			msg := fmt.Sprintf("feature %d repeats the title %q of feature %d", i, e.Title, first)
			grid.Warnings = append(grid.Warnings, msg)
			o.logger.Warn("Duplicate feature title", logfields.Entry(e.Title), slog.Int("index", i), slog.Int("first", first))
			continue
		}
		seen[e.Title] = i
	}
	o.recorder.ObserveFeatureCells(len(grid.Cells))
	return grid, nil
}

// Render writes the grid markup.
func (g FeatureGrid) Render(w io.Writer) error {
	return renderTemplate(w, "features.html", g)
}
