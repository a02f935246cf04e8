package hugo

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/git"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/nav"
)

// HugoConfigFile is the site configuration file name inside the output root.
const HugoConfigFile = "hugo.yaml"

// chromaStyles maps code themes onto the closest Chroma style Hugo ships.
var chromaStyles = map[string]string{
	"github":               "github",
	"dracula":              "dracula",
	"vsDark":               "monokai",
	"vsLight":              "vs",
	"nightOwl":             "nord",
	"nightOwlLight":        "solarized-light",
	"oceanicNext":          "solarized-dark",
	"okaidia":              "monokai",
	"palenight":            "native",
	"oneDark":              "onedark",
	"oneLight":             "friendly",
	"duotoneDark":          "paraiso-dark",
	"duotoneLight":         "paraiso-light",
	"gruvboxMaterialDark":  "gruvbox",
	"gruvboxMaterialLight": "gruvbox-light",
	"synthwave84":          "rrt",
	"ultramin":             "bw",
}

func chromaStyle(theme string) string {
	if s, ok := chromaStyles[theme]; ok {
		return s
	}
	return "github"
}

// refLinksErrorLevel maps the broken link policy onto Hugo's ref/relref
// behaviour. Hugo only distinguishes errors from warnings.
func refLinksErrorLevel(p config.BrokenLinkPolicy) string {
	if p.Aborts() {
		return "ERROR"
	}
	return "WARNING"
}

func stageGenerateConfig(_ context.Context, bs *BuildState) error {
	g := bs.Generator
	cfg := g.config

	info, err := git.Detect(g.repoDir)
	switch {
	case err == nil:
		bs.Git = &info
	case stderrors.Is(err, git.ErrNotRepository):
		g.logger.Debug("No git repository found; git info disabled", logfields.Path(g.repoDir))
		bs.Report.AddIssue(IssueNoRepository, StageGenerateConfig, SeverityInfo, "no git repository found", nil)
	default:
		g.logger.Warn("Failed to read git metadata", logfields.Path(g.repoDir), logfields.Error(err))
	}

	bs.Nav = nav.AssembleNav(cfg.ThemeConfig.Navbar.Items,
		nav.WithBrokenLinkPolicy(cfg.OnBrokenLinks),
		nav.WithLogger(g.logger))

	data, err := marshalHugoConfig(buildHugoConfig(cfg, bs.Nav, bs.Git))
	if err != nil {
		return newFatalStageError(StageGenerateConfig, err)
	}
	if err := bs.writeFile(HugoConfigFile, data); err != nil {
		return newFatalStageError(StageGenerateConfig, err)
	}
	return nil
}

// buildHugoConfig assembles the hugo.yaml document.
func buildHugoConfig(cfg *config.SiteConfig, model nav.Model, info *git.Info) map[string]any {
	capabilities := cfg.Capabilities()
	tc := cfg.ThemeConfig

	root := map[string]any{
		"title":                  cfg.Title,
		"baseURL":                cfg.BaseURL(),
		"defaultContentLanguage": languageKey(cfg.I18n.DefaultLocale),
		"languages":              hugoLanguages(cfg.I18n.Locales),
		"refLinksErrorLevel":     refLinksErrorLevel(cfg.OnBrokenLinks),
		"enableGitInfo":          info != nil,
		"markup": map[string]any{
			"goldmark": map[string]any{"renderer": map[string]any{"unsafe": true}},
			"highlight": map[string]any{
				"style":     chromaStyle(tc.Prism.Theme),
				"noClasses": false,
			},
		},
		"menu": map[string]any{"main": model.HugoMenu()},
	}
	if cfg.TrailingSlash != nil && !*cfg.TrailingSlash {
		root["uglyURLs"] = true
	}
	if capabilities.Search {
		root["outputs"] = map[string]any{"home": []string{"HTML", "RSS", "JSON"}}
	}

	params := map[string]any{
		"tagline":               cfg.Tagline,
		"description":           cfg.Homepage.Description,
		"capabilities":          capabilities.Names,
		"search":                capabilities.Search,
		"onBrokenMarkdownLinks": string(cfg.OnBrokenMarkdownLinks),
		"colorMode": map[string]any{
			"defaultMode":               string(tc.ColorMode.DefaultMode),
			"disableSwitch":             tc.ColorMode.DisableSwitch,
			"respectPrefersColorScheme": tc.ColorMode.RespectPrefersColorScheme,
		},
		"mermaid": map[string]any{
			"enable":     cfg.Markdown.Mermaid,
			"lightTheme": tc.Mermaid.Theme.Light,
			"darkTheme":  tc.Mermaid.Theme.Dark,
		},
		"prism": map[string]any{
			"theme":               tc.Prism.Theme,
			"darkTheme":           tc.Prism.DarkTheme,
			"darkStyle":           chromaStyle(tc.Prism.DarkTheme),
			"additionalLanguages": tc.Prism.AdditionalLanguages,
		},
		"sidebar": map[string]any{
			"hideable":               tc.Docs.Sidebar.Hideable,
			"autoCollapseCategories": tc.Docs.Sidebar.AutoCollapseCategories,
		},
		"footer": footerParams(cfg),
		"github": map[string]any{
			"host":    cfg.GithubHost,
			"org":     cfg.OrganizationName,
			"project": cfg.ProjectName,
		},
	}
	if cfg.Favicon != "" {
		params["favicon"] = cfg.Favicon
	}
	if len(tc.Mermaid.Options) > 0 {
		params["mermaid"].(map[string]any)["options"] = tc.Mermaid.Options
	}
	if ab := tc.AnnouncementBar; ab != nil {
		params["announcementBar"] = map[string]any{
			"id":              ab.ID,
			"content":         ab.Content,
			"backgroundColor": ab.BackgroundColor,
			"textColor":       ab.TextColor,
			"isCloseable":     ab.IsCloseable,
		}
	}
	navbar := map[string]any{"title": tc.Navbar.Title}
	if logo := tc.Navbar.Logo; logo != nil && !logo.IsZero() {
		navbar["logo"] = map[string]any{"src": logo.Src, "alt": logo.Alt}
	}
	params["navbar"] = navbar
	if u := editURL(cfg, info); u != "" {
		params["editURL"] = u
	}
	if info != nil {
		params["git"] = map[string]any{"commit": info.ShortCommit(), "branch": info.Branch}
	}
	root["params"] = params
	return root
}

func footerParams(cfg *config.SiteConfig) map[string]any {
	footer := cfg.ThemeConfig.Footer
	groups := make([]map[string]any, 0, len(footer.Links))
	for _, group := range footer.Links {
		items := make([]map[string]any, 0, len(group.Items))
		for _, it := range group.Items {
			items = append(items, map[string]any{"label": it.Label, "href": it.Href})
		}
		groups = append(groups, map[string]any{"title": group.Title, "items": items})
	}
	return map[string]any{
		"style":     string(footer.Style),
		"links":     groups,
		"copyright": cfg.Derived.Copyright,
	}
}

// languageKey is the Hugo language key for a BCP 47 locale.
func languageKey(locale string) string {
	return strings.ToLower(locale)
}

func hugoLanguages(locales []string) map[string]any {
	out := make(map[string]any, len(locales))
	for i, l := range locales {
		tag := language.Make(l)
		entry := map[string]any{
			"languageCode": tag.String(),
			"weight":       i + 1,
		}
		if name := display.Self.Name(tag); name != "" {
			entry["languageName"] = name
		}
		out[languageKey(l)] = entry
	}
	return out
}

// editURL resolves the "edit this page" prefix: an explicit docs.editUrl on
// the classic preset wins, then the origin remote of the enclosing git
// repository, then organizationName/projectName on githubHost.
func editURL(cfg *config.SiteConfig, info *git.Info) string {
	if d, ok := cfg.Descriptor("classic"); ok {
		if docs, ok := d.Options["docs"].(map[string]any); ok {
			if u, ok := docs["editUrl"].(string); ok && u != "" {
				return u
			}
		}
	}
	if info != nil {
		if u := git.EditURL(git.WebURL(info.RemoteURL), info.Branch, ""); u != "" {
			return u
		}
	}
	if cfg.OrganizationName != "" && cfg.ProjectName != "" {
		host := cfg.GithubHost
		if host == "" {
			host = "github.com"
		}
		return git.EditURL("https://"+host+"/"+cfg.OrganizationName+"/"+cfg.ProjectName, "main", "")
	}
	return ""
}

func marshalHugoConfig(root map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("marshal %s: %w", HugoConfigFile, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshal %s: %w", HugoConfigFile, err)
	}
	return buf.Bytes(), nil
}
