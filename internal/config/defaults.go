package config

// DefaultApplier fills optional fields of one configuration domain.
// Required fields are never defaulted; validation reports them instead.
type DefaultApplier interface {
	ApplyDefaults(cfg *SiteConfig)
	Domain() string
}

// SiteDefaultApplier handles identity and policy defaults.
type SiteDefaultApplier struct{}

func (SiteDefaultApplier) Domain() string { return "site" }

func (SiteDefaultApplier) ApplyDefaults(cfg *SiteConfig) {
	if cfg.OnBrokenLinks == "" {
		cfg.OnBrokenLinks = BrokenLinksThrow
	}
	if cfg.OnBrokenMarkdownLinks == "" {
		cfg.OnBrokenMarkdownLinks = BrokenLinksWarn
	}
	if cfg.GithubHost == "" {
		cfg.GithubHost = "github.com"
	}
}

// ThemeDefaultApplier handles ThemeConfig defaults.
type ThemeDefaultApplier struct{}

func (ThemeDefaultApplier) Domain() string { return "theme" }

func (ThemeDefaultApplier) ApplyDefaults(cfg *SiteConfig) {
	tc := &cfg.ThemeConfig
	if tc.ColorMode.DefaultMode == "" {
		tc.ColorMode.DefaultMode = ColorModeLight
	}
	if tc.Footer.Style == "" {
		tc.Footer.Style = ColorModeDark
	}
	if tc.Mermaid.Theme.Light == "" {
		tc.Mermaid.Theme.Light = "default"
	}
	if tc.Mermaid.Theme.Dark == "" {
		tc.Mermaid.Theme.Dark = "dark"
	}
	if tc.Prism.Theme == "" {
		tc.Prism.Theme = "github"
	}
	if tc.Prism.DarkTheme == "" {
		tc.Prism.DarkTheme = "dracula"
	}
	for i := range tc.Navbar.Items {
		if tc.Navbar.Items[i].Position == "" {
			tc.Navbar.Items[i].Position = NavLeft
		}
	}
}

// HomepageDefaultApplier fills homepage text from site identity.
type HomepageDefaultApplier struct{}

func (HomepageDefaultApplier) Domain() string { return "homepage" }

func (HomepageDefaultApplier) ApplyDefaults(cfg *SiteConfig) {
	hp := &cfg.Homepage
	if hp.Title == "" {
		hp.Title = cfg.Title
	}
	if hp.Description == "" {
		hp.Description = cfg.Tagline
	}
	if hp.Hero.Tagline == "" {
		hp.Hero.Tagline = cfg.Tagline
	}
	for i := range hp.Features {
		if hp.Features[i].Icon.Src != "" && hp.Features[i].Icon.Alt == "" {
			hp.Features[i].Icon.Alt = hp.Features[i].Title
		}
	}
}

// defaultAppliers returns the appliers in application order.
func defaultAppliers() []DefaultApplier {
	return []DefaultApplier{SiteDefaultApplier{}, ThemeDefaultApplier{}, HomepageDefaultApplier{}}
}

func applyDefaults(cfg *SiteConfig) {
	for _, a := range defaultAppliers() {
		a.ApplyDefaults(cfg)
	}
}
