package hugo

import (
	"context"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/homepage"
)

// Layout paths inside the output root.
const (
	LayoutBaseof       = "layouts/_default/baseof.html"
	LayoutIndex        = "layouts/index.html"
	LayoutHero         = "layouts/partials/hero.html"
	LayoutFeatures     = "layouts/partials/features.html"
	LayoutAnnouncement = "layouts/partials/announcement.html"
	LayoutNavLink      = "layouts/partials/navlink.html"
	LayoutMermaidHook  = "layouts/_default/_markup/render-codeblock-mermaid.html"
)

// stageLayouts composes the homepage regions and writes them, with the
// static layout shell, as Hugo templates.
func stageLayouts(ctx context.Context, bs *BuildState) error {
	g := bs.Generator
	comp, err := homepage.Compose(ctx, g.config, g.embedLoader, g.homepageOptions()...)
	if err != nil {
		return newFatalStageError(StageLayouts, err)
	}
	bs.Hero, bs.Grid = comp.Hero, comp.Grid
	bs.Report.FeatureCells = len(comp.Grid.Cells)

	if comp.Hero.EmbedFailed() {
		bs.Report.EmbedFailed = true
		bs.Report.AddIssue(IssueEmbedFailure, StageLayouts, SeverityWarning, comp.Hero.EmbedErr.Error(), comp.Hero.EmbedErr)
	}
	for _, w := range comp.Grid.Warnings {
		bs.Report.AddIssue(IssueDuplicateFeature, StageLayouts, SeverityWarning, w,
			errors.ValidationError(w).Warning().Build())
	}

	regions, err := comp.Regions()
	if err != nil {
		return newFatalStageError(StageLayouts, err)
	}
	partials := map[string]string{
		homepage.RegionHero:     LayoutHero,
		homepage.RegionFeatures: LayoutFeatures,
	}
	for _, r := range regions {
		bs.Regions[r.Name] = []byte(r.HTML)
		if err := bs.writeFile(partials[r.Name], []byte(escapeForHugo(string(r.HTML)))); err != nil {
			return newFatalStageError(StageLayouts, err)
		}
	}

	static := []struct{ path, body string }{
		{LayoutBaseof, baseofTemplate},
		{LayoutIndex, indexTemplate},
		{LayoutAnnouncement, announcementTemplate},
		{LayoutNavLink, navLinkTemplate},
	}
	if g.config.Markdown.Mermaid {
		static = append(static, struct{ path, body string }{LayoutMermaidHook, mermaidHookTemplate})
	}
	for _, f := range static {
		if err := bs.writeFile(f.path, []byte(f.body)); err != nil {
			return newFatalStageError(StageLayouts, err)
		}
	}
	return nil
}

// escapeForHugo keeps pre-rendered markup literal when Hugo parses it as a
// template.
func escapeForHugo(s string) string {
	return strings.ReplaceAll(s, "{{", `{{ "{{" }}`)
}

const baseofTemplate = `<!DOCTYPE html>
<html lang="{{ site.Language.LanguageCode | default site.Language.Lang }}" data-theme="{{ site.Params.colorMode.defaultMode | default "light" }}">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ if .IsHome }}{{ .Title | default site.Title }}{{ else }}{{ .Title }} | {{ site.Title }}{{ end }}</title>
  {{- with .Description | default site.Params.description }}
  <meta name="description" content="{{ . }}">
  {{- end }}
  {{- with .Params.images }}
  <meta property="og:image" content="{{ index . 0 | absURL }}">
  {{- end }}
  {{- with site.Params.favicon }}
  <link rel="icon" href="{{ . | relURL }}">
  {{- end }}
</head>
<body>
  {{ partial "announcement.html" . }}
  <nav class="navbar">
    <div class="navbar__items">
      {{- with site.Params.navbar.logo }}
      <a class="navbar__brand" href="{{ "/" | relLangURL }}"><img class="navbar__logo" src="{{ .src | relURL }}" alt="{{ .alt }}"></a>
      {{- end }}
      {{- range site.Menus.main }}{{ if eq .Params.position "left" }}
      {{ partial "navlink.html" . }}
      {{- end }}{{ end }}
    </div>
    <div class="navbar__items navbar__items--right">
      {{- range site.Menus.main }}{{ if eq .Params.position "right" }}
      {{ partial "navlink.html" . }}
      {{- end }}{{ end }}
    </div>
  </nav>
  <main>
    {{ block "main" . }}{{ end }}
  </main>
  <footer class="footer footer--{{ site.Params.footer.style | default "dark" }}">
    {{- range site.Params.footer.links }}
    <div class="footer__col">
      <div class="footer__title">{{ .title }}</div>
      <ul class="footer__items">
        {{- range .items }}
        <li class="footer__item"><a class="footer__link-item" href="{{ .href }}">{{ .label }}</a></li>
        {{- end }}
      </ul>
    </div>
    {{- end }}
    <div class="footer__copyright">{{ site.Params.footer.copyright | safeHTML }}</div>
  </footer>
</body>
</html>
`

const indexTemplate = `{{ define "main" }}
{{ partial "hero.html" . }}
{{ partial "features.html" . }}
{{ .Content }}
{{ end }}
`

// navLinkTemplate renders one menu.main entry; only external entries open a
// new tab.
const navLinkTemplate = `<a class="navbar__item navbar__link" href="{{ .URL }}"
  {{- if .Params.external }} target="_blank" rel="noopener noreferrer"{{ end }}>{{ .Name }}</a>
`

const announcementTemplate = `{{ with site.Params.announcementBar -}}
<div class="announcementBar" data-announcement-id="{{ .id }}" role="banner" style="background-color: {{ .backgroundColor | default "#fff" | safeCSS }}; color: {{ .textColor | default "#000" | safeCSS }}">
  <div class="announcementBar__content">{{ .content | safeHTML }}</div>
  {{- if .isCloseable }}
  <button type="button" class="announcementBar__close" aria-label="Close">&times;</button>
  {{- end }}
</div>
{{- end }}
`

const mermaidHookTemplate = `<pre class="mermaid">
  {{- .Inner | htmlEscape | safeHTML }}
</pre>
{{ .Page.Store.Set "hasMermaid" true }}
`
