package config

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

const minimalSite = `
title: Docs
tagline: Hello docs
url: https://example.org
basePath: /
i18n:
  defaultLocale: en
  locales: [en]
homepage:
  hero:
    primary: { label: Start, to: /docs/ }
`

var fixedClock = WithClock(func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) })

func decodeString(t *testing.T, s string) *SiteConfig {
	t.Helper()
	decl, err := Decode(strings.NewReader(s))
	require.NoError(t, err)
	return decl
}

func TestBuildConfig_ExampleSite(t *testing.T) {
	decl, err := Decode(bytes.NewReader(ExampleSite()))
	require.NoError(t, err)

	cfg, err := BuildConfig(decl, fixedClock)
	require.NoError(t, err)

	assert.Equal(t, "AI on EKS", cfg.Title)
	assert.Equal(t, "https://awslabs.github.io/ai-on-eks/", cfg.BaseURL())
	assert.Equal(t, BrokenLinksThrow, cfg.OnBrokenLinks)
	assert.Equal(t, BrokenLinksWarn, cfg.OnBrokenMarkdownLinks)
	assert.Equal(t, 2025, cfg.Derived.Year)
	assert.Contains(t, cfg.Derived.Copyright, "© 2025 Amazon.com")
	assert.Len(t, cfg.ThemeConfig.Navbar.Items, 5)
	assert.Len(t, cfg.Homepage.Features, 3)
	assert.Equal(t, "img/infra.svg", cfg.Homepage.Features[0].Icon.Src)
	assert.Equal(t, "Infrastructure", cfg.Homepage.Features[0].Icon.Alt)

	caps := cfg.Capabilities()
	assert.True(t, caps.Docs)
	assert.True(t, caps.Search)
	assert.True(t, caps.Diagrams)
	assert.True(t, caps.Has("lunr-search"))

	classic, ok := cfg.Descriptor("classic")
	require.True(t, ok)
	docs, ok := classic.Options["docs"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "https://github.com/awslabs/ai-on-eks/blob/main/website/", docs["editUrl"])
}

func TestBuildConfig_Idempotent(t *testing.T) {
	decl, err := Decode(bytes.NewReader(ExampleSite()))
	require.NoError(t, err)

	first, err := BuildConfig(decl, fixedClock)
	require.NoError(t, err)
	second, err := BuildConfig(decl, fixedClock)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first.Snapshot(), second.Snapshot())
	assert.NotSame(t, first, second)
}

func TestBuildConfig_IdempotentWithDefaultClock(t *testing.T) {
	decl, err := Decode(bytes.NewReader(ExampleSite()))
	require.NoError(t, err)

	before := time.Now().UTC().YearDay()
	first, err := BuildConfig(decl)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := BuildConfig(decl)
	require.NoError(t, err)
	if time.Now().UTC().YearDay() != before {
		t.Skip("builds straddled midnight UTC")
	}

	assert.Equal(t, first, second)
	assert.Equal(t, first.Snapshot(), second.Snapshot())
}

func TestBuildConfig_CopyrightUsesBuildClock(t *testing.T) {
	decl := decodeString(t, minimalSite)
	decl.ThemeConfig.Footer.Copyright = "{{ .Year }} {{ .Date }} {{ .DateTime }}"

	at := func(h int) BuildOption {
		return WithClock(func() time.Time { return time.Date(2025, 6, 1, h, 30, 0, 0, time.UTC) })
	}
	morning, err := BuildConfig(decl, at(8))
	require.NoError(t, err)
	evening, err := BuildConfig(decl, at(20))
	require.NoError(t, err)

	assert.Equal(t, "2025 2025-06-01 2025-06-01T00:00:00Z", morning.Derived.Copyright)
	assert.Equal(t, morning, evening)
}

func TestBuildConfig_DoesNotAliasDeclaration(t *testing.T) {
	decl := decodeString(t, minimalSite)
	decl.ThemeConfig.Navbar.Items = []NavEntry{{Label: "Docs", DocID: "intro"}}

	cfg, err := BuildConfig(decl, fixedClock)
	require.NoError(t, err)

	// Defaults land on the copy only.
	assert.Empty(t, decl.ThemeConfig.Navbar.Items[0].Position)
	assert.Empty(t, decl.Homepage.Hero.Tagline)

	decl.ThemeConfig.Navbar.Items[0].Label = "Changed"
	decl.I18n.Locales[0] = "fr"
	assert.Equal(t, "Docs", cfg.ThemeConfig.Navbar.Items[0].Label)
	assert.Equal(t, []string{"en"}, cfg.I18n.Locales)
}

func TestBuildConfig_Defaults(t *testing.T) {
	decl := decodeString(t, minimalSite)
	decl.ThemeConfig.Navbar.Items = []NavEntry{{Label: "Docs", DocID: "intro"}}

	cfg, err := BuildConfig(decl, fixedClock)
	require.NoError(t, err)

	assert.Equal(t, BrokenLinksThrow, cfg.OnBrokenLinks)
	assert.Equal(t, BrokenLinksWarn, cfg.OnBrokenMarkdownLinks)
	assert.Equal(t, "github.com", cfg.GithubHost)
	assert.Equal(t, ColorModeLight, cfg.ThemeConfig.ColorMode.DefaultMode)
	assert.Equal(t, ColorModeDark, cfg.ThemeConfig.Footer.Style)
	assert.Equal(t, "default", cfg.ThemeConfig.Mermaid.Theme.Light)
	assert.Equal(t, "github", cfg.ThemeConfig.Prism.Theme)
	assert.Equal(t, "dracula", cfg.ThemeConfig.Prism.DarkTheme)
	assert.Equal(t, NavLeft, cfg.ThemeConfig.Navbar.Items[0].Position)
	assert.Equal(t, "Docs", cfg.Homepage.Title)
	assert.Equal(t, "Hello docs", cfg.Homepage.Hero.Tagline)
	assert.Empty(t, cfg.Derived.Copyright)
	assert.Nil(t, cfg.Homepage.Hero.Secondary)
}

func TestBuildConfig_Normalizes(t *testing.T) {
	decl := decodeString(t, minimalSite)
	decl.OnBrokenLinks = " WARN "
	decl.URL = "https://example.org/"
	decl.Presets = []Descriptor{{Name: "@docusaurus/preset-classic"}}
	decl.Plugins = []Descriptor{{Name: "docusaurus-lunr-search"}}
	decl.ThemeConfig.Navbar.Items = []NavEntry{{Label: " GitHub ", Href: "https://github.com", Position: "Right"}}

	cfg, err := BuildConfig(decl, fixedClock)
	require.NoError(t, err)

	assert.Equal(t, BrokenLinksWarn, cfg.OnBrokenLinks)
	assert.Equal(t, "https://example.org", cfg.URL)
	assert.Equal(t, "classic", cfg.Presets[0].Name)
	assert.Equal(t, "lunr-search", cfg.Plugins[0].Name)
	assert.Equal(t, "GitHub", cfg.ThemeConfig.Navbar.Items[0].Label)
	assert.Equal(t, NavRight, cfg.ThemeConfig.Navbar.Items[0].Position)
}

func TestBuildConfig_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *SiteConfig)
		field  string
	}{
		{"missing title", func(c *SiteConfig) { c.Title = "  " }, "title"},
		{"base path without trailing slash", func(c *SiteConfig) { c.BasePath = "/ai-on-eks" }, "basePath"},
		{"base path without leading slash", func(c *SiteConfig) { c.BasePath = "ai-on-eks/" }, "basePath"},
		{"base path with empty segment", func(c *SiteConfig) { c.BasePath = "/a//b/" }, "basePath"},
		{"url with path", func(c *SiteConfig) { c.URL = "https://example.org/docs" }, "url"},
		{"relative url", func(c *SiteConfig) { c.URL = "example.org" }, "url"},
		{"no locales", func(c *SiteConfig) { c.I18n.Locales = nil }, "i18n.locales"},
		{"malformed locale", func(c *SiteConfig) { c.I18n.Locales = []string{"not a locale"} }, "i18n.locales[0]"},
		{"duplicate locale", func(c *SiteConfig) { c.I18n.Locales = []string{"en", "en"} }, "i18n.locales[1]"},
		{"default locale not listed", func(c *SiteConfig) { c.I18n.DefaultLocale = "fr" }, "i18n.defaultLocale"},
		{"unknown policy", func(c *SiteConfig) { c.OnBrokenLinks = "explode" }, "onBrokenLinks"},
		{"unknown plugin", func(c *SiteConfig) { c.Plugins = []Descriptor{{Name: "algolia"}} }, "plugins[0].name"},
		{"theme listed as preset", func(c *SiteConfig) { c.Presets = []Descriptor{{Name: "theme-mermaid"}} }, "presets[0].name"},
		{"duplicate plugin", func(c *SiteConfig) {
			c.Plugins = []Descriptor{{Name: "sitemap"}, {Name: "@docusaurus/plugin-sitemap"}}
		}, "plugins[1].name"},
		{"mermaid without theme", func(c *SiteConfig) { c.Markdown.Mermaid = true }, "markdown.mermaid"},
		{"bad colour", func(c *SiteConfig) {
			c.ThemeConfig.AnnouncementBar = &AnnouncementBar{ID: "x", Content: "hi", BackgroundColor: "#12"}
		}, "themeConfig.announcementBar.backgroundColor"},
		{"unknown colour mode", func(c *SiteConfig) { c.ThemeConfig.ColorMode.DefaultMode = "sepia" }, "themeConfig.colorMode.defaultMode"},
		{"unknown mermaid theme", func(c *SiteConfig) { c.ThemeConfig.Mermaid.Theme.Dark = "neon" }, "themeConfig.mermaid.theme.dark"},
		{"nav with two targets", func(c *SiteConfig) {
			c.ThemeConfig.Navbar.Items = []NavEntry{{Label: "x", DocID: "a", Href: "https://b"}}
		}, "themeConfig.navbar.items[0]"},
		{"nav without target", func(c *SiteConfig) {
			c.ThemeConfig.Navbar.Items = []NavEntry{{Label: "x"}}
		}, "themeConfig.navbar.items[0]"},
		{"nav bad position", func(c *SiteConfig) {
			c.ThemeConfig.Navbar.Items = []NavEntry{{Label: "x", DocID: "a", Position: "center"}}
		}, "themeConfig.navbar.items[0].position"},
		{"external primary cta", func(c *SiteConfig) { c.Homepage.Hero.Primary.To = "https://elsewhere.example" }, "homepage.hero.primary.to"},
		{"unlabeled primary cta", func(c *SiteConfig) { c.Homepage.Hero.Primary.Label = "" }, "homepage.hero.primary.label"},
		{"secondary without target", func(c *SiteConfig) { c.Homepage.Hero.Secondary = &CTA{Label: "More"} }, "homepage.hero.secondary.to"},
		{"embed without src", func(c *SiteConfig) { c.Homepage.Hero.Embed = &EmbedSpec{} }, "homepage.hero.embed.src"},
		{"feature without link", func(c *SiteConfig) {
			c.Homepage.Features = []FeatureEntry{{Title: "Infra"}}
		}, "homepage.features[0].link"},
		{"copyright template error", func(c *SiteConfig) { c.ThemeConfig.Footer.Copyright = "{{ .Owner }}" }, "themeConfig.footer.copyright"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decl := decodeString(t, minimalSite)
			tt.mutate(decl)

			cfg, err := BuildConfig(decl, fixedClock)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.True(t, errors.HasCategory(err, errors.CategoryConfig))

			field, ok := errors.FieldOf(err)
			require.True(t, ok, "error should carry a field: %v", err)
			assert.Equal(t, tt.field, field)
		})
	}
}

func TestBuildConfig_Nil(t *testing.T) {
	_, err := BuildConfig(nil)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestSnapshot_ChangesWithContent(t *testing.T) {
	a, err := BuildConfig(decodeString(t, minimalSite), fixedClock)
	require.NoError(t, err)

	decl := decodeString(t, minimalSite)
	decl.Tagline = "Different"
	b, err := BuildConfig(decl, fixedClock)
	require.NoError(t, err)

	assert.NotEqual(t, a.Snapshot(), b.Snapshot())
	assert.Len(t, a.Snapshot(), 64)
}
