package config

import "maps"

// clone returns a deep copy of c so BuildConfig never aliases its input.
func (c *SiteConfig) clone() *SiteConfig {
	out := *c
	if c.TrailingSlash != nil {
		v := *c.TrailingSlash
		out.TrailingSlash = &v
	}
	out.I18n.Locales = cloneSlice(c.I18n.Locales)
	out.Presets = cloneDescriptors(c.Presets)
	out.Themes = cloneDescriptors(c.Themes)
	out.Plugins = cloneDescriptors(c.Plugins)
	out.ThemeConfig = c.ThemeConfig.clone()
	out.Homepage = c.Homepage.clone()
	return &out
}

func (t ThemeConfig) clone() ThemeConfig {
	out := t
	if t.AnnouncementBar != nil {
		ab := *t.AnnouncementBar
		out.AnnouncementBar = &ab
	}
	out.Mermaid.Options = cloneOptions(t.Mermaid.Options)
	out.Navbar.Logo = cloneAsset(t.Navbar.Logo)
	out.Navbar.Items = cloneSlice(t.Navbar.Items)
	if t.Footer.Links != nil {
		out.Footer.Links = make([]FooterGroup, len(t.Footer.Links))
		for i, g := range t.Footer.Links {
			out.Footer.Links[i] = FooterGroup{Title: g.Title, Items: cloneSlice(g.Items)}
		}
	}
	out.Prism.AdditionalLanguages = cloneSlice(t.Prism.AdditionalLanguages)
	return out
}

func (h Homepage) clone() Homepage {
	out := h
	out.Features = cloneSlice(h.Features)
	out.Hero.Logo = cloneAsset(h.Hero.Logo)
	out.Hero.Media = cloneSlice(h.Hero.Media)
	if h.Hero.Secondary != nil {
		s := *h.Hero.Secondary
		out.Hero.Secondary = &s
	}
	if h.Hero.Embed != nil {
		e := *h.Hero.Embed
		out.Hero.Embed = &e
	}
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append(make([]T, 0, len(in)), in...)
}

func cloneAsset(a *AssetRef) *AssetRef {
	if a == nil {
		return nil
	}
	v := *a
	return &v
}

func cloneDescriptors(in []Descriptor) []Descriptor {
	if in == nil {
		return nil
	}
	out := make([]Descriptor, len(in))
	for i, d := range in {
		out[i] = Descriptor{Name: d.Name, Options: cloneOptions(d.Options)}
	}
	return out
}

func cloneOptions(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := maps.Clone(in)
	for k, v := range out {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneOptions(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
