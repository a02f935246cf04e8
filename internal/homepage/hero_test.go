package homepage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/docsite/internal/config"
	docerrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

func aiOnEKSHero() config.HeroContent {
	return config.HeroContent{
		Tagline:     "Supercharge your AI/ML Journey with Amazon EKS",
		Description: "The comprehensive set of tools for running AI workloads on Amazon EKS.",
		Logo:        &config.AssetRef{Src: "img/aioeks-logo-green.png", Alt: "AI on EKS"},
		Primary:     config.CTA{Label: "Get Started", To: "/docs/blueprints/"},
		Secondary:   &config.CTA{Label: "Explore Data on EKS", To: "https://awslabs.github.io/data-on-eks/"},
		Embed: &config.EmbedSpec{
			Src:    "https://app.storylane.io/demo/uybpeyefbrgn?embed=inline",
			Script: "https://js.storylane.io/js/v2/storylane.js",
			Title:  "AI on EKS demo",
		},
		OGImage: "img/aioeks-logo-green.png",
	}
}

func failingLoader(err error) EmbedLoader {
	return EmbedLoaderFunc(func(context.Context, config.EmbedSpec) (Embed, error) {
		return Embed{}, err
	})
}

func ctaLinks(t *testing.T, markup string) []string {
	t.Helper()
	doc := parseHTML(t, markup)
	sections := findAll(doc, byClass("hero__cta"))
	require.Len(t, sections, 1)
	var labels []string
	for _, a := range findAll(sections[0], byTag("a")) {
		labels = append(labels, textOf(a))
	}
	return labels
}

func TestComposeHero_FullContent(t *testing.T) {
	hero, err := ComposeHero(context.Background(), aiOnEKSHero(), nil, siteResolver)
	require.NoError(t, err)

	require.Len(t, hero.CTAs, 2)
	assert.Equal(t, CTAPrimary, hero.CTAs[0].Kind)
	assert.Equal(t, "/ai-on-eks/docs/blueprints/", hero.CTAs[0].Href)
	assert.False(t, hero.CTAs[0].External)
	assert.Equal(t, "https://awslabs.github.io/data-on-eks/", hero.CTAs[1].Href)
	assert.True(t, hero.CTAs[1].External)
	assert.Equal(t, "/ai-on-eks/img/aioeks-logo-green.png", hero.Logo.Src)
	require.NotNil(t, hero.Embed)
	assert.NoError(t, hero.EmbedErr)

	markup := renderString(t, hero)
	assert.Equal(t, []string{"Get Started", "Explore Data on EKS"}, ctaLinks(t, markup))

	doc := parseHTML(t, markup)
	frames := findAll(doc, byTag("iframe"))
	require.Len(t, frames, 1)
	assert.Equal(t, "https://app.storylane.io/demo/uybpeyefbrgn?embed=inline", attr(frames[0], "src"))
	scripts := findAll(doc, byTag("script"))
	require.Len(t, scripts, 1)
	assert.Equal(t, "https://js.storylane.io/js/v2/storylane.js", attr(scripts[0], "src"))

	external := findAll(doc, func(n *html.Node) bool { return attr(n, "target") == "_blank" })
	require.Len(t, external, 1)
	assert.Equal(t, "noopener noreferrer", attr(external[0], "rel"))
}

func TestComposeHero_PrimaryOnly(t *testing.T) {
	content := aiOnEKSHero()
	content.Secondary = nil
	content.Embed = nil

	hero, err := ComposeHero(context.Background(), content, nil)
	require.NoError(t, err)
	require.Len(t, hero.CTAs, 1)

	markup := renderString(t, hero)
	assert.Equal(t, []string{"Get Started"}, ctaLinks(t, markup))
	assert.Empty(t, findAll(parseHTML(t, markup), byTag("iframe")))
}

func TestComposeHero_RejectsExternalPrimary(t *testing.T) {
	content := aiOnEKSHero()
	content.Primary.To = "https://awslabs.github.io/data-on-eks/"

	_, err := ComposeHero(context.Background(), content, nil)
	require.Error(t, err)
	assert.True(t, docerrors.HasCategory(err, docerrors.CategoryValidation))
	classified, ok := docerrors.AsClassified(err)
	require.True(t, ok)
	field, _ := classified.Context().GetString(docerrors.ContextField)
	assert.Equal(t, "homepage.hero.primary.to", field)
	assert.Contains(t, err.Error(), "internal route")
}

func TestComposeHero_RejectsUnlabelledPrimary(t *testing.T) {
	content := aiOnEKSHero()
	content.Primary.Label = ""

	_, err := ComposeHero(context.Background(), content, nil)
	require.Error(t, err)
	assert.True(t, docerrors.HasCategory(err, docerrors.CategoryValidation))
	classified, ok := docerrors.AsClassified(err)
	require.True(t, ok)
	field, _ := classified.Context().GetString(docerrors.ContextField)
	assert.Equal(t, "homepage.hero.primary.label", field)
	assert.Contains(t, err.Error(), "needs a label")
	assert.NotContains(t, err.Error(), "internal route")
}

func TestComposeHero_EmbedFailureIsContained(t *testing.T) {
	tests := []struct {
		name   string
		loader EmbedLoader
	}{
		{name: "error", loader: failingLoader(errors.New("widget host unreachable"))},
		{name: "panic", loader: EmbedLoaderFunc(func(context.Context, config.EmbedSpec) (Embed, error) {
			panic("widget exploded")
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := prometheus.NewRegistry()
			rec := metrics.NewPrometheusRecorder(reg)

			hero, err := ComposeHero(context.Background(), aiOnEKSHero(), tt.loader, siteResolver, WithRecorder(rec))
			require.NoError(t, err, "embed failures never fail the hero")

			assert.Nil(t, hero.Embed)
			require.True(t, hero.EmbedFailed())
			classified, ok := docerrors.AsClassified(hero.EmbedErr)
			require.True(t, ok)
			assert.Equal(t, docerrors.CategoryEmbed, classified.Category())
			assert.Equal(t, docerrors.SeverityWarning, classified.Severity())
			assert.False(t, classified.IsFatal())

			markup := renderString(t, hero)
			doc := parseHTML(t, markup)
			assert.Equal(t, []string{"Get Started", "Explore Data on EKS"}, ctaLinks(t, markup))
			subtitles := findAll(doc, byClass("hero__subtitle"))
			require.Len(t, subtitles, 1)
			assert.Equal(t, "Supercharge your AI/ML Journey with Amazon EKS", textOf(subtitles[0]))
			assert.Len(t, findAll(doc, byClass("hero__description")), 1)

			regions := findAll(doc, byClass("hero__embed"))
			require.Len(t, regions, 1)
			assert.Zero(t, elementChildren(regions[0]), "embed region renders empty")

			count := 0.0
			mfs, gerr := reg.Gather()
			require.NoError(t, gerr)
			for _, mf := range mfs {
				if mf.GetName() == "docsite_embed_failures_total" {
					count = mf.GetMetric()[0].GetCounter().GetValue()
				}
			}
			assert.InDelta(t, 1, count, 0)
		})
	}
}

func TestComposeHero_EmbedFailureKeepsFeatureGrid(t *testing.T) {
	hero, err := ComposeHero(context.Background(), aiOnEKSHero(), failingLoader(errors.New("boom")), siteResolver)
	require.NoError(t, err)
	grid, err := ComposeFeatureGrid(aiOnEKSFeatures, siteResolver)
	require.NoError(t, err)

	heroRegion, err := RenderRegion("hero", hero)
	require.NoError(t, err)
	gridRegion, err := RenderRegion("features", grid)
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, RenderPage(&buf, Page{Lang: "en", Title: "AI on EKS", Regions: []Region{heroRegion, gridRegion}}))

	doc := parseHTML(t, buf.String())
	assert.Len(t, findAll(doc, byClass("feature")), 3)
	assert.Len(t, findAll(doc, byClass("hero__subtitle")), 1)
}

func TestProbeEmbedLoader(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(int(status.Load()))
	}))
	t.Cleanup(srv.Close)

	loader := ProbeEmbedLoader{Client: srv.Client()}
	spec := config.EmbedSpec{Src: srv.URL + "/demo", Title: "demo"}

	embed, err := loader.Load(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, spec.Src, embed.Src)

	status.Store(http.StatusServiceUnavailable)
	_, err = loader.Load(context.Background(), spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestStaticEmbedLoader_RequiresSource(t *testing.T) {
	_, err := StaticEmbedLoader{}.Load(context.Background(), config.EmbedSpec{})
	require.Error(t, err)
}
