package config

import (
	"slices"

	"git.home.luguber.info/inful/docsite/internal/foundation"
)

// CapabilityKind tells where a descriptor may be listed.
type CapabilityKind string

const (
	KindPreset CapabilityKind = "preset"
	KindTheme  CapabilityKind = "theme"
	KindPlugin CapabilityKind = "plugin"
)

// Capability is one entry of the finite set of descriptors docsite knows how to wire.
type Capability struct {
	Name     string
	Kind     CapabilityKind
	Docs     bool // provides the docs section
	Search   bool // needs a client-side search index
	Diagrams bool // renders mermaid code blocks
}

var knownCapabilities = []Capability{
	{Name: "classic", Kind: KindPreset, Docs: true},
	{Name: "theme-mermaid", Kind: KindTheme, Diagrams: true},
	{Name: "lunr-search", Kind: KindPlugin, Search: true},
	{Name: "search-local", Kind: KindPlugin, Search: true},
	{Name: "ideal-image", Kind: KindPlugin},
	{Name: "client-redirects", Kind: KindPlugin},
	{Name: "sitemap", Kind: KindPlugin},
}

// capabilityNames accepts the package names commonly found in site configs.
var capabilityNames = foundation.NewNormalizer(map[string]string{
	"classic":                             "classic",
	"preset-classic":                      "classic",
	"@docusaurus/preset-classic":          "classic",
	"theme-mermaid":                       "theme-mermaid",
	"mermaid":                             "theme-mermaid",
	"@docusaurus/theme-mermaid":           "theme-mermaid",
	"lunr-search":                         "lunr-search",
	"docusaurus-lunr-search":              "lunr-search",
	"search-local":                        "search-local",
	"@easyops-cn/docusaurus-search-local": "search-local",
	"ideal-image":                         "ideal-image",
	"@docusaurus/plugin-ideal-image":      "ideal-image",
	"client-redirects":                    "client-redirects",
	"@docusaurus/plugin-client-redirects": "client-redirects",
	"sitemap":                             "sitemap",
	"@docusaurus/plugin-sitemap":          "sitemap",
})

// CanonicalCapabilityName maps an accepted spelling to its canonical name.
func CanonicalCapabilityName(raw string) (string, error) {
	return capabilityNames.Normalize(raw)
}

// LookupCapability returns the capability registered under a canonical name.
func LookupCapability(name string) (Capability, bool) {
	for _, c := range knownCapabilities {
		if c.Name == name {
			return c, true
		}
	}
	return Capability{}, false
}

// CapabilitySet summarises what the enabled descriptors provide.
type CapabilitySet struct {
	Names    []string
	Docs     bool
	Search   bool
	Diagrams bool
}

func (s *CapabilitySet) add(c Capability) {
	if !slices.Contains(s.Names, c.Name) {
		s.Names = append(s.Names, c.Name)
	}
	s.Docs = s.Docs || c.Docs
	s.Search = s.Search || c.Search
	s.Diagrams = s.Diagrams || c.Diagrams
}

// Has reports whether the named capability is enabled.
func (s CapabilitySet) Has(name string) bool {
	return slices.Contains(s.Names, name)
}
