package homepage

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

var aiOnEKSFeatures = []config.FeatureEntry{
	{
		Title:       "Infrastructure",
		Icon:        config.AssetRef{Src: "img/infra.svg", Alt: "Infrastructure"},
		Link:        "/ai-on-eks/docs/infra",
		Description: "Validated infrastructure for the latest generation of Artificial Intelligence workloads on EKS.",
	},
	{
		Title:       "Blueprints",
		Icon:        config.AssetRef{Src: "img/blueprints.svg"},
		Link:        "/ai-on-eks/docs/blueprints",
		Description: "Tested deployments to jumpstart and enable AI and ML workloads on EKS",
	},
	{
		Title:       "Guidance",
		Icon:        config.AssetRef{Src: "img/guidance.svg"},
		Link:        "/ai-on-eks/docs/guidance",
		Description: "Proven experience scaling **AI and ML** on EKS",
	},
}

var siteResolver = WithResolver(BasePathResolver{BasePath: "/ai-on-eks/"})

func TestComposeFeatureGrid_PreservesOrder(t *testing.T) {
	grid, err := ComposeFeatureGrid(aiOnEKSFeatures, siteResolver)
	require.NoError(t, err)
	require.Len(t, grid.Cells, 3)
	assert.Empty(t, grid.Warnings)

	for i, cell := range grid.Cells {
		assert.Equal(t, i, cell.Index)
		assert.Equal(t, aiOnEKSFeatures[i].Title, cell.Title)
	}
	assert.Equal(t, "/ai-on-eks/docs/infra", grid.Cells[0].Href)
	assert.Equal(t, "/ai-on-eks/img/infra.svg", grid.Cells[0].IconSrc)
	assert.Equal(t, "Infrastructure", grid.Cells[0].IconAlt)
	assert.Contains(t, string(grid.Cells[2].Description), "<strong>AI and ML</strong>")
}

func TestComposeFeatureGrid_OrderUnderConcurrency(t *testing.T) {
	entries := make([]config.FeatureEntry, 64)
	for i := range entries {
		entries[i] = config.FeatureEntry{Title: fmt.Sprintf("Feature %02d", i), Link: fmt.Sprintf("/docs/%d", i)}
	}

	grid, err := ComposeFeatureGrid(entries)
	require.NoError(t, err)
	require.Len(t, grid.Cells, len(entries))
	for i, cell := range grid.Cells {
		assert.Equal(t, entries[i].Title, cell.Title)
	}
}

func TestComposeFeatureGrid_Empty(t *testing.T) {
	for _, entries := range [][]config.FeatureEntry{nil, {}} {
		grid, err := ComposeFeatureGrid(entries)
		require.NoError(t, err)
		assert.Empty(t, grid.Cells)

		doc := parseHTML(t, renderString(t, grid))
		assert.Len(t, findAll(doc, byClass("features")), 1, "container is still rendered")
		assert.Empty(t, findAll(doc, byClass("feature")))
	}
}

func TestComposeFeatureGrid_DuplicateTitlesWarn(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	entries := []config.FeatureEntry{
		{Title: "Blueprints", Link: "/docs/a"},
		{Title: "Guidance", Link: "/docs/b"},
		{Title: "Blueprints", Link: "/docs/c"},
	}
	grid, err := ComposeFeatureGrid(entries, WithLogger(logger))
	require.NoError(t, err)

	require.Len(t, grid.Cells, 3, "duplicates are kept")
	require.Len(t, grid.Warnings, 1)
	assert.Contains(t, grid.Warnings[0], `"Blueprints"`)
	assert.Contains(t, logs.String(), "Duplicate feature title")
	assert.Contains(t, logs.String(), "entry=Blueprints")
}

func TestComposeFeatureGrid_RecordsCellCount(t *testing.T) {
	rec := metrics.NewPrometheusRecorder(nil)
	_, err := ComposeFeatureGrid(aiOnEKSFeatures, WithRecorder(rec))
	require.NoError(t, err)

	mfs, err := rec.Registry().Gather()
	require.NoError(t, err)
	found := false
	for _, mf := range mfs {
		if mf.GetName() == "docsite_feature_cells" {
			found = true
			assert.InDelta(t, 3, mf.GetMetric()[0].GetGauge().GetValue(), 0)
		}
	}
	assert.True(t, found)
}

func TestFeatureGrid_Render(t *testing.T) {
	grid, err := ComposeFeatureGrid(aiOnEKSFeatures, siteResolver)
	require.NoError(t, err)

	doc := parseHTML(t, renderString(t, grid))
	cells := findAll(doc, byClass("feature"))
	require.Len(t, cells, 3)

	for i, cell := range cells {
		links := findAll(cell, byTag("a"))
		require.Len(t, links, 1, "every cell is one anchor")
		assert.Equal(t, grid.Cells[i].Href, attr(links[0], "href"))

		titles := findAll(links[0], byTag("h2"))
		require.Len(t, titles, 1)
		assert.Equal(t, aiOnEKSFeatures[i].Title, textOf(titles[0]))

		imgs := findAll(links[0], byTag("img"))
		require.Len(t, imgs, 1)
		assert.Equal(t, grid.Cells[i].IconSrc, attr(imgs[0], "src"))
	}
}
