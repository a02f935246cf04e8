package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/language"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/linkverify"
)

// ValidateConfig checks a normalized, defaulted configuration. The first
// violation is returned as a ConfigFieldError.
func ValidateConfig(cfg *SiteConfig) error {
	return newConfigurationValidator(cfg).validate()
}

// configurationValidator coordinates validation across all configuration domains.
type configurationValidator struct {
	config *SiteConfig
}

func newConfigurationValidator(config *SiteConfig) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateIdentity(); err != nil {
		return err
	}
	if err := cv.validateLocales(); err != nil {
		return err
	}
	if err := cv.validateCapabilities(); err != nil {
		return err
	}
	if err := cv.validateTheme(); err != nil {
		return err
	}
	if err := cv.validateNavbar(); err != nil {
		return err
	}
	if err := cv.validateFooter(); err != nil {
		return err
	}
	return cv.validateHomepage()
}

func (cv *configurationValidator) validateIdentity() error {
	c := cv.config
	if c.Title == "" {
		return errors.ConfigFieldError("title", "is required")
	}
	if c.URL == "" {
		return errors.ConfigFieldError("url", "is required")
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return errors.ConfigFieldError("url", err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.ConfigFieldError("url", "must be an absolute http(s) URL")
	}
	if u.Host == "" {
		return errors.ConfigFieldError("url", "must include a host")
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		return errors.ConfigFieldError("url", "must not carry a path, query or fragment; put the path in basePath")
	}
	return validateBasePath(c.BasePath)
}

func validateBasePath(p string) error {
	switch {
	case p == "":
		return errors.ConfigFieldError("basePath", "is required")
	case !strings.HasPrefix(p, "/"):
		return errors.ConfigFieldError("basePath", fmt.Sprintf("%q must begin with /", p))
	case !strings.HasSuffix(p, "/"):
		return errors.ConfigFieldError("basePath", fmt.Sprintf("%q must end with /", p))
	case strings.Contains(p, "//"):
		return errors.ConfigFieldError("basePath", fmt.Sprintf("%q must not contain empty segments", p))
	case strings.ContainsAny(p, "?#"):
		return errors.ConfigFieldError("basePath", fmt.Sprintf("%q must not contain a query or fragment", p))
	case strings.IndexFunc(p, unicode.IsSpace) >= 0:
		return errors.ConfigFieldError("basePath", fmt.Sprintf("%q must not contain whitespace", p))
	}
	return nil
}

func (cv *configurationValidator) validateLocales() error {
	i18n := cv.config.I18n
	if len(i18n.Locales) == 0 {
		return errors.ConfigFieldError("i18n.locales", "must list at least one locale")
	}
	seen := make(map[string]bool, len(i18n.Locales))
	for i, loc := range i18n.Locales {
		field := fmt.Sprintf("i18n.locales[%d]", i)
		if loc == "" {
			return errors.ConfigFieldError(field, "must not be empty")
		}
		if _, err := language.Parse(loc); err != nil {
			return errors.ConfigFieldError(field, fmt.Sprintf("%q is not a BCP 47 language tag", loc))
		}
		if seen[loc] {
			return errors.ConfigFieldError(field, fmt.Sprintf("duplicate locale %q", loc))
		}
		seen[loc] = true
	}
	if i18n.DefaultLocale == "" {
		return errors.ConfigFieldError("i18n.defaultLocale", "is required")
	}
	if !seen[i18n.DefaultLocale] {
		return errors.ConfigFieldError("i18n.defaultLocale", fmt.Sprintf("%q is not listed in i18n.locales", i18n.DefaultLocale))
	}
	return nil
}

func (cv *configurationValidator) validateCapabilities() error {
	c := cv.config
	enabled := make(map[string]string)
	for _, group := range []struct {
		field string
		kind  CapabilityKind
		list  []Descriptor
	}{
		{"presets", KindPreset, c.Presets},
		{"themes", KindTheme, c.Themes},
		{"plugins", KindPlugin, c.Plugins},
	} {
		for i, d := range group.list {
			field := fmt.Sprintf("%s[%d].name", group.field, i)
			capability, ok := LookupCapability(d.Name)
			if !ok {
				return errors.ConfigFieldError(field, fmt.Sprintf("unknown capability %q", d.Name))
			}
			if capability.Kind != group.kind {
				return errors.ConfigFieldError(field, fmt.Sprintf("%q is a %s, not a %s", d.Name, capability.Kind, group.kind))
			}
			if prev, dup := enabled[d.Name]; dup {
				return errors.ConfigFieldError(field, fmt.Sprintf("%q already enabled at %s", d.Name, prev))
			}
			enabled[d.Name] = field
		}
	}
	if c.Markdown.Mermaid && !c.Capabilities().Diagrams {
		return errors.ConfigFieldError("markdown.mermaid", "requires the theme-mermaid theme")
	}
	return nil
}

func (cv *configurationValidator) validateTheme() error {
	tc := cv.config.ThemeConfig
	if ab := tc.AnnouncementBar; ab != nil {
		if strings.TrimSpace(ab.ID) == "" {
			return errors.ConfigFieldError("themeConfig.announcementBar.id", "is required")
		}
		if strings.TrimSpace(ab.Content) == "" {
			return errors.ConfigFieldError("themeConfig.announcementBar.content", "is required")
		}
		if ab.BackgroundColor != "" && !IsColorToken(ab.BackgroundColor) {
			return errors.ConfigFieldError("themeConfig.announcementBar.backgroundColor", fmt.Sprintf("%q is not a colour", ab.BackgroundColor))
		}
		if ab.TextColor != "" && !IsColorToken(ab.TextColor) {
			return errors.ConfigFieldError("themeConfig.announcementBar.textColor", fmt.Sprintf("%q is not a colour", ab.TextColor))
		}
	}
	for i, lang := range tc.Prism.AdditionalLanguages {
		if strings.TrimSpace(lang) == "" {
			return errors.ConfigFieldError(fmt.Sprintf("themeConfig.prism.additionalLanguages[%d]", i), "must not be empty")
		}
	}
	return nil
}

func (cv *configurationValidator) validateNavbar() error {
	for i, item := range cv.config.ThemeConfig.Navbar.Items {
		field := fmt.Sprintf("themeConfig.navbar.items[%d]", i)
		if item.Label == "" {
			return errors.ConfigFieldError(field+".label", "is required")
		}
		switch {
		case item.DocID == "" && item.Href == "":
			return errors.ConfigFieldError(field, "needs one of docId or href")
		case item.DocID != "" && item.Href != "":
			return errors.ConfigFieldError(field, "docId and href are mutually exclusive")
		case item.DocID != "" && !linkverify.Classify(item.DocID).IsInternal():
			return errors.ConfigFieldError(field+".docId", fmt.Sprintf("%q is not a document id", item.DocID))
		}
		if item.Position != NavLeft && item.Position != NavRight {
			return errors.ConfigFieldError(field+".position", fmt.Sprintf("%q must be left or right", item.Position))
		}
	}
	return nil
}

func (cv *configurationValidator) validateFooter() error {
	for g, group := range cv.config.ThemeConfig.Footer.Links {
		for i, link := range group.Items {
			field := fmt.Sprintf("themeConfig.footer.links[%d].items[%d]", g, i)
			if strings.TrimSpace(link.Label) == "" {
				return errors.ConfigFieldError(field+".label", "is required")
			}
			if strings.TrimSpace(link.Href) == "" {
				return errors.ConfigFieldError(field+".href", "is required")
			}
		}
	}
	return nil
}

func (cv *configurationValidator) validateHomepage() error {
	hero := cv.config.Homepage.Hero
	if err := validatePrimaryCTA(hero.Primary); err != nil {
		return err
	}
	if s := hero.Secondary; s != nil {
		if s.Label == "" {
			return errors.ConfigFieldError("homepage.hero.secondary.label", "is required")
		}
		if s.To == "" {
			return errors.ConfigFieldError("homepage.hero.secondary.to", "is required")
		}
	}
	if e := hero.Embed; e != nil {
		if err := validateEmbedURL("homepage.hero.embed.src", e.Src, true); err != nil {
			return err
		}
		if err := validateEmbedURL("homepage.hero.embed.script", e.Script, false); err != nil {
			return err
		}
	}
	for i, m := range hero.Media {
		if m.IsZero() {
			return errors.ConfigFieldError(fmt.Sprintf("homepage.hero.media[%d].src", i), "is required")
		}
	}
	for i, f := range cv.config.Homepage.Features {
		field := fmt.Sprintf("homepage.features[%d]", i)
		if f.Title == "" {
			return errors.ConfigFieldError(field+".title", "is required")
		}
		if f.Link == "" {
			return errors.ConfigFieldError(field+".link", "is required")
		}
	}
	return nil
}

// validatePrimaryCTA enforces that the primary call to action stays on-site.
func validatePrimaryCTA(cta CTA) error {
	if cta.Label == "" {
		return errors.ConfigFieldError("homepage.hero.primary.label", "is required")
	}
	if cta.To == "" {
		return errors.ConfigFieldError("homepage.hero.primary.to", "is required")
	}
	if !linkverify.Classify(cta.To).IsInternal() {
		return errors.ConfigFieldError("homepage.hero.primary.to", fmt.Sprintf("%q must be an internal route", cta.To))
	}
	return nil
}

var embedSchemes = []string{"https", "http"}

func validateEmbedURL(field, raw string, required bool) error {
	if raw == "" {
		if required {
			return errors.ConfigFieldError(field, "is required")
		}
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || !slices.Contains(embedSchemes, u.Scheme) {
		return errors.ConfigFieldError(field, fmt.Sprintf("%q must be an absolute http(s) URL", raw))
	}
	return nil
}
