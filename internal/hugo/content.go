package hugo

import (
	"context"

	"git.home.luguber.info/inful/docsite/internal/frontmatter"
)

// ContentIndexFile is the homepage content file inside the output root.
const ContentIndexFile = "content/_index.md"

// stageContent writes the homepage content file. Its frontmatter carries the
// page title, description and social image plus a content fingerprint; the
// lastmod date only moves when the fingerprint does.
func stageContent(_ context.Context, bs *BuildState) error {
	g := bs.Generator
	cfg := g.config

	fields := map[string]any{
		"title":       cfg.Homepage.Title,
		"description": cfg.Homepage.Description,
	}
	if bs.Hero.OGImage != "" {
		fields["images"] = []any{bs.Hero.OGImage}
	}
	doc := frontmatter.Document{Fields: fields, Body: []byte{}}

	var previous *frontmatter.Document
	if raw := g.previousFile(ContentIndexFile); raw != nil {
		if prev, err := frontmatter.Parse(raw); err == nil {
			previous = &prev
		}
	}
	if _, err := frontmatter.Stamp(&doc, previous, g.now()); err != nil {
		return newFatalStageError(StageContent, err)
	}
	data, err := doc.Bytes()
	if err != nil {
		return newFatalStageError(StageContent, err)
	}
	if err := bs.writeFile(ContentIndexFile, data); err != nil {
		return newFatalStageError(StageContent, err)
	}
	return nil
}
