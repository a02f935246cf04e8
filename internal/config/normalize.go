package config

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/foundation"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// NormalizationResult captures non-fatal adjustments made while normalizing.
type NormalizationResult struct {
	Warnings []string
}

func (r *NormalizationResult) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

var (
	policyNormalizer = foundation.NewNormalizer(map[string]BrokenLinkPolicy{
		"ignore":  BrokenLinksIgnore,
		"log":     BrokenLinksLog,
		"warn":    BrokenLinksWarn,
		"warning": BrokenLinksWarn,
		"throw":   BrokenLinksThrow,
		"error":   BrokenLinksThrow,
	})
	positionNormalizer = foundation.NewNormalizer(map[string]NavPosition{
		"left":  NavLeft,
		"right": NavRight,
	})
	colorModeNormalizer = foundation.NewNormalizer(map[string]ColorModeName{
		"light": ColorModeLight,
		"dark":  ColorModeDark,
	})
	mermaidThemeNormalizer = foundation.NewNormalizer(map[string]string{
		"default": "default",
		"neutral": "neutral",
		"dark":    "dark",
		"forest":  "forest",
		"base":    "base",
	})
	prismThemeNormalizer = foundation.NewNormalizer(map[string]string{
		"github":               "github",
		"dracula":              "dracula",
		"vsDark":               "vsDark",
		"vsLight":              "vsLight",
		"nightOwl":             "nightOwl",
		"nightOwlLight":        "nightOwlLight",
		"oceanicNext":          "oceanicNext",
		"okaidia":              "okaidia",
		"palenight":            "palenight",
		"oneDark":              "oneDark",
		"oneLight":             "oneLight",
		"duotoneDark":          "duotoneDark",
		"duotoneLight":         "duotoneLight",
		"gruvboxMaterialDark":  "gruvboxMaterialDark",
		"gruvboxMaterialLight": "gruvboxMaterialLight",
		"synthwave84":          "synthwave84",
		"ultramin":             "ultramin",
	})
)

// NormalizeConfig trims free text and case-folds every enumeration in place.
// Unknown enumeration values are configuration errors; empty values are left
// for the default appliers.
func NormalizeConfig(cfg *SiteConfig) (*NormalizationResult, error) {
	res := &NormalizationResult{}

	cfg.Title = strings.TrimSpace(cfg.Title)
	cfg.Tagline = strings.TrimSpace(cfg.Tagline)
	cfg.URL = strings.TrimSuffix(strings.TrimSpace(cfg.URL), "/")
	cfg.BasePath = strings.TrimSpace(cfg.BasePath)
	cfg.I18n.DefaultLocale = strings.TrimSpace(cfg.I18n.DefaultLocale)
	for i := range cfg.I18n.Locales {
		cfg.I18n.Locales[i] = strings.TrimSpace(cfg.I18n.Locales[i])
	}

	var err error
	if cfg.OnBrokenLinks, err = normalizeEnum(policyNormalizer, cfg.OnBrokenLinks, "onBrokenLinks"); err != nil {
		return res, err
	}
	if cfg.OnBrokenMarkdownLinks, err = normalizeEnum(policyNormalizer, cfg.OnBrokenMarkdownLinks, "onBrokenMarkdownLinks"); err != nil {
		return res, err
	}

	for _, group := range []struct {
		field string
		list  []Descriptor
	}{{"presets", cfg.Presets}, {"themes", cfg.Themes}, {"plugins", cfg.Plugins}} {
		for i := range group.list {
			raw := strings.TrimSpace(group.list[i].Name)
			if raw == "" {
				return res, errors.ConfigFieldError(fmt.Sprintf("%s[%d].name", group.field, i), "must not be empty")
			}
			name, nerr := CanonicalCapabilityName(raw)
			if nerr != nil {
				return res, errors.ConfigFieldError(fmt.Sprintf("%s[%d].name", group.field, i), nerr.Error())
			}
			if name != raw {
				res.warnf("%s[%d]: %q normalized to %q", group.field, i, raw, name)
			}
			group.list[i].Name = name
		}
	}

	if err := normalizeTheme(&cfg.ThemeConfig); err != nil {
		return res, err
	}
	normalizeHomepage(&cfg.Homepage)
	return res, nil
}

func normalizeTheme(tc *ThemeConfig) error {
	var err error
	if tc.ColorMode.DefaultMode, err = normalizeEnum(colorModeNormalizer, tc.ColorMode.DefaultMode, "themeConfig.colorMode.defaultMode"); err != nil {
		return err
	}
	if tc.Footer.Style, err = normalizeEnum(colorModeNormalizer, tc.Footer.Style, "themeConfig.footer.style"); err != nil {
		return err
	}
	if tc.Mermaid.Theme.Light, err = normalizeEnum(mermaidThemeNormalizer, tc.Mermaid.Theme.Light, "themeConfig.mermaid.theme.light"); err != nil {
		return err
	}
	if tc.Mermaid.Theme.Dark, err = normalizeEnum(mermaidThemeNormalizer, tc.Mermaid.Theme.Dark, "themeConfig.mermaid.theme.dark"); err != nil {
		return err
	}
	if tc.Prism.Theme, err = normalizeEnum(prismThemeNormalizer, tc.Prism.Theme, "themeConfig.prism.theme"); err != nil {
		return err
	}
	if tc.Prism.DarkTheme, err = normalizeEnum(prismThemeNormalizer, tc.Prism.DarkTheme, "themeConfig.prism.darkTheme"); err != nil {
		return err
	}
	for i := range tc.Navbar.Items {
		item := &tc.Navbar.Items[i]
		item.Label = strings.TrimSpace(item.Label)
		item.DocID = strings.Trim(strings.TrimSpace(item.DocID), "/")
		item.Href = strings.TrimSpace(item.Href)
		if item.Position, err = normalizeEnum(positionNormalizer, item.Position, fmt.Sprintf("themeConfig.navbar.items[%d].position", i)); err != nil {
			return err
		}
	}
	if ab := tc.AnnouncementBar; ab != nil {
		ab.BackgroundColor = strings.TrimSpace(ab.BackgroundColor)
		ab.TextColor = strings.TrimSpace(ab.TextColor)
	}
	return nil
}

func normalizeHomepage(hp *Homepage) {
	hp.Title = strings.TrimSpace(hp.Title)
	hp.Description = strings.TrimSpace(hp.Description)
	hp.Hero.Tagline = strings.TrimSpace(hp.Hero.Tagline)
	hp.Hero.Primary.Label = strings.TrimSpace(hp.Hero.Primary.Label)
	hp.Hero.Primary.To = strings.TrimSpace(hp.Hero.Primary.To)
	if s := hp.Hero.Secondary; s != nil {
		s.Label = strings.TrimSpace(s.Label)
		s.To = strings.TrimSpace(s.To)
	}
	for i := range hp.Features {
		hp.Features[i].Title = strings.TrimSpace(hp.Features[i].Title)
		hp.Features[i].Link = strings.TrimSpace(hp.Features[i].Link)
	}
}

func normalizeEnum[T ~string](n *foundation.Normalizer[T], value T, field string) (T, error) {
	if strings.TrimSpace(string(value)) == "" {
		return "", nil
	}
	v, err := n.Normalize(string(value))
	if err != nil {
		return "", errors.ConfigFieldError(field, err.Error())
	}
	return v, nil
}
