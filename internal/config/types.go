package config

import (
	"git.home.luguber.info/inful/docsite/internal/linkverify"
)

// BrokenLinkPolicy decides what happens when an internal link does not resolve.
type BrokenLinkPolicy = linkverify.Policy

const (
	BrokenLinksIgnore = linkverify.PolicyIgnore
	BrokenLinksLog    = linkverify.PolicyLog
	BrokenLinksWarn   = linkverify.PolicyWarn
	BrokenLinksThrow  = linkverify.PolicyThrow
)

// NavPosition places a navbar item on the left or right side of the bar.
type NavPosition string

const (
	NavLeft  NavPosition = "left"
	NavRight NavPosition = "right"
)

// ColorModeName is a colour scheme name.
type ColorModeName string

const (
	ColorModeLight ColorModeName = "light"
	ColorModeDark  ColorModeName = "dark"
)

// SiteConfig is the root declaration describing the whole site. A value
// returned by BuildConfig is validated and must be treated as read-only.
type SiteConfig struct {
	Title                 string           `yaml:"title"`
	Tagline               string           `yaml:"tagline,omitempty"`
	URL                   string           `yaml:"url"`
	BasePath              string           `yaml:"basePath"`
	Favicon               string           `yaml:"favicon,omitempty"`
	TrailingSlash         *bool            `yaml:"trailingSlash,omitempty"`
	OnBrokenLinks         BrokenLinkPolicy `yaml:"onBrokenLinks,omitempty"`
	OnBrokenMarkdownLinks BrokenLinkPolicy `yaml:"onBrokenMarkdownLinks,omitempty"`
	OrganizationName      string           `yaml:"organizationName,omitempty"`
	ProjectName           string           `yaml:"projectName,omitempty"`
	GithubHost            string           `yaml:"githubHost,omitempty"`
	I18n                  I18nConfig       `yaml:"i18n"`
	Presets               []Descriptor     `yaml:"presets,omitempty"`
	Themes                []Descriptor     `yaml:"themes,omitempty"`
	Plugins               []Descriptor     `yaml:"plugins,omitempty"`
	Markdown              MarkdownConfig   `yaml:"markdown,omitempty"`
	ThemeConfig           ThemeConfig      `yaml:"themeConfig,omitempty"`
	Homepage              Homepage         `yaml:"homepage,omitempty"`

	// Derived is computed once by BuildConfig and never read from YAML.
	Derived Derived `yaml:"-"`
}

// I18nConfig declares the locale set.
type I18nConfig struct {
	DefaultLocale string   `yaml:"defaultLocale"`
	Locales       []string `yaml:"locales"`
}

// Descriptor names a preset, theme or plugin. Options are passed through untouched.
type Descriptor struct {
	Name    string         `yaml:"name"`
	Options map[string]any `yaml:"options,omitempty"`
}

// MarkdownConfig toggles markdown features handled by the generator.
type MarkdownConfig struct {
	Mermaid bool `yaml:"mermaid,omitempty"`
}

// ThemeConfig holds presentation parameters.
type ThemeConfig struct {
	AnnouncementBar *AnnouncementBar `yaml:"announcementBar,omitempty"`
	ColorMode       ColorMode        `yaml:"colorMode,omitempty"`
	Mermaid         MermaidConfig    `yaml:"mermaid,omitempty"`
	Navbar          Navbar           `yaml:"navbar,omitempty"`
	Docs            DocsTheme        `yaml:"docs,omitempty"`
	Footer          Footer           `yaml:"footer,omitempty"`
	Prism           Prism            `yaml:"prism,omitempty"`
}

// AnnouncementBar is the dismissible banner above the navbar.
type AnnouncementBar struct {
	ID              string `yaml:"id"`
	Content         string `yaml:"content"`
	BackgroundColor string `yaml:"backgroundColor,omitempty"`
	TextColor       string `yaml:"textColor,omitempty"`
	IsCloseable     bool   `yaml:"isCloseable,omitempty"`
}

// ColorMode holds colour scheme defaults.
type ColorMode struct {
	DefaultMode               ColorModeName `yaml:"defaultMode,omitempty"`
	DisableSwitch             bool          `yaml:"disableSwitch,omitempty"`
	RespectPrefersColorScheme bool          `yaml:"respectPrefersColorScheme,omitempty"`
}

// MermaidConfig configures diagram rendering.
type MermaidConfig struct {
	Theme   MermaidThemes  `yaml:"theme,omitempty"`
	Options map[string]any `yaml:"options,omitempty"`
}

// MermaidThemes is the light/dark mermaid theme pair.
type MermaidThemes struct {
	Light string `yaml:"light,omitempty"`
	Dark  string `yaml:"dark,omitempty"`
}

// Navbar describes the top navigation bar.
type Navbar struct {
	Title string     `yaml:"title,omitempty"`
	Logo  *AssetRef  `yaml:"logo,omitempty"`
	Items []NavEntry `yaml:"items,omitempty"`
}

// NavEntry is one navbar item. Exactly one of DocID and Href is set.
type NavEntry struct {
	Label    string      `yaml:"label"`
	DocID    string      `yaml:"docId,omitempty"`
	Href     string      `yaml:"href,omitempty"`
	Position NavPosition `yaml:"position,omitempty"`
}

// DocsTheme configures the docs sidebar.
type DocsTheme struct {
	Sidebar Sidebar `yaml:"sidebar,omitempty"`
}

// Sidebar options.
type Sidebar struct {
	Hideable               bool `yaml:"hideable,omitempty"`
	AutoCollapseCategories bool `yaml:"autoCollapseCategories,omitempty"`
}

// Footer describes footer link groups and the copyright line.
type Footer struct {
	Style ColorModeName `yaml:"style,omitempty"`
	Links []FooterGroup `yaml:"links,omitempty"`
	// Copyright is a text/template; {{ .Year }}, {{ .Date }}, {{ .DateTime }}
	// (start of the build day) and {{ .Title }} are available.
	Copyright string `yaml:"copyright,omitempty"`
}

// FooterGroup is a titled column of footer links.
type FooterGroup struct {
	Title string       `yaml:"title"`
	Items []FooterLink `yaml:"items"`
}

// FooterLink is one footer link.
type FooterLink struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// Prism selects code highlighting themes.
type Prism struct {
	Theme               string   `yaml:"theme,omitempty"`
	DarkTheme           string   `yaml:"darkTheme,omitempty"`
	AdditionalLanguages []string `yaml:"additionalLanguages,omitempty"`
}

// Homepage is the page-local content rendered by the homepage components.
type Homepage struct {
	Title       string         `yaml:"title,omitempty"`
	Description string         `yaml:"description,omitempty"`
	Hero        HeroContent    `yaml:"hero"`
	Features    []FeatureEntry `yaml:"features,omitempty"`
}

// HeroContent is the homepage banner.
type HeroContent struct {
	Tagline     string     `yaml:"tagline,omitempty"`
	Description string     `yaml:"description,omitempty"`
	Logo        *AssetRef  `yaml:"logo,omitempty"`
	Primary     CTA        `yaml:"primary"`
	Secondary   *CTA       `yaml:"secondary,omitempty"`
	Media       []AssetRef `yaml:"media,omitempty"`
	Embed       *EmbedSpec `yaml:"embed,omitempty"`
	OGImage     string     `yaml:"ogImage,omitempty"`
}

// CTA is a call-to-action control.
type CTA struct {
	Label string `yaml:"label"`
	To    string `yaml:"to"`
}

// EmbedSpec describes an opaque third-party widget shown in an iframe.
type EmbedSpec struct {
	Src    string `yaml:"src"`
	Script string `yaml:"script,omitempty"`
	Title  string `yaml:"title,omitempty"`
}

// FeatureEntry is one card of the homepage feature grid.
type FeatureEntry struct {
	Title string   `yaml:"title"`
	Icon  AssetRef `yaml:"icon,omitempty"`
	Link  string   `yaml:"link"`
	// Description is a markdown fragment.
	Description string `yaml:"description,omitempty"`
}

// Derived holds values computed once at build time. They change at most
// once a day, so building the same declaration twice yields equal values.
type Derived struct {
	Year      int
	Copyright string
}

// BaseURL is the absolute site root: URL joined with BasePath.
func (c *SiteConfig) BaseURL() string {
	return c.URL + c.BasePath
}

// Capabilities returns the resolved capability set of all descriptors.
func (c *SiteConfig) Capabilities() CapabilitySet {
	set := CapabilitySet{}
	for _, group := range [][]Descriptor{c.Presets, c.Themes, c.Plugins} {
		for _, d := range group {
			if capability, ok := LookupCapability(d.Name); ok {
				set.add(capability)
			}
		}
	}
	return set
}

// Descriptor returns the first descriptor with the given canonical name.
func (c *SiteConfig) Descriptor(name string) (Descriptor, bool) {
	for _, group := range [][]Descriptor{c.Presets, c.Themes, c.Plugins} {
		for _, d := range group {
			if d.Name == name {
				return d, true
			}
		}
	}
	return Descriptor{}, false
}
