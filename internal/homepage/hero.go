package homepage

import (
	"context"
	"fmt"
	"html/template"
	"io"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/foundation"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/linkverify"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// RegionEmbed names the hero's embed region in logs and metrics.
const RegionEmbed = "hero.embed"

// CTAKind distinguishes the primary and secondary call-to-action controls.
type CTAKind string

const (
	CTAPrimary   CTAKind = "primary"
	CTASecondary CTAKind = "secondary"
)

// CTAControl is one rendered call to action.
type CTAControl struct {
	Kind     CTAKind
	Label    string
	Href     string
	External bool
}

// Image is a resolved image reference.
type Image struct {
	Src string
	Alt string
}

// Hero is the composed homepage banner.
type Hero struct {
	Tagline     string
	Description template.HTML
	Logo        *Image
	CTAs        []CTAControl
	Media       []Image
	// Embed is nil when no embed is configured or when it failed to load.
	Embed *Embed
	// EmbedErr is the EmbedLoadFailure of a failed embed, nil otherwise.
	EmbedErr error
	OGImage  string
}

// EmbedFailed reports whether a configured embed degraded to an empty region.
func (h Hero) EmbedFailed() bool { return h.EmbedErr != nil }

// ComposeHero builds the hero region. The primary CTA must target an internal
// route; the secondary CTA is optional. Embed failures never fail the hero.
// A nil loader means StaticEmbedLoader.
func ComposeHero(ctx context.Context, content config.HeroContent, loader EmbedLoader, opts ...Option) (Hero, error) {
	o := newOptions(opts)
	if loader == nil {
		loader = StaticEmbedLoader{}
	}

	if content.Primary.Label == "" {
		return Hero{}, errors.ValidationError("hero primary call to action needs a label").
			WithContext(errors.ContextField, "homepage.hero.primary.label").
			Build()
	}
	primary := linkverify.Classify(content.Primary.To)
	if !primary.IsInternal() {
		return Hero{}, errors.ValidationError("hero primary call to action must target an internal route").
			WithContext(errors.ContextField, "homepage.hero.primary.to").
			WithContext(errors.ContextTarget, content.Primary.To).
			Build()
	}

	desc, err := o.markdown.RenderInline(content.Description)
	if err != nil {
		return Hero{}, fmt.Errorf("hero description: %w", err)
	}

	hero := Hero{
		Tagline:     content.Tagline,
		Description: desc,
		CTAs: []CTAControl{{
			Kind:  CTAPrimary,
			Label: content.Primary.Label,
			Href:  o.resolver.Resolve(primary.Raw),
		}},
	}

	if secondary, ok := foundation.FromPointer(content.Secondary).Get(); ok {
		target := linkverify.Classify(secondary.To)
		hero.CTAs = append(hero.CTAs, CTAControl{
			Kind:     CTASecondary,
			Label:    secondary.Label,
			Href:     o.resolver.Resolve(target.Raw),
			External: target.Kind == linkverify.TargetExternal,
		})
	}

	if content.Logo != nil && !content.Logo.IsZero() {
		hero.Logo = &Image{Src: o.resolver.Resolve(content.Logo.Src), Alt: content.Logo.Alt}
	}
	for _, m := range content.Media {
		hero.Media = append(hero.Media, Image{Src: o.resolver.Resolve(m.Src), Alt: m.Alt})
	}
	if content.OGImage != "" {
		hero.OGImage = o.resolver.Resolve(content.OGImage)
	}

	if spec := content.Embed; spec != nil {
		embed, err := loadEmbed(ctx, loader, *spec)
		if err != nil {
			hero.EmbedErr = EmbedLoadFailure(RegionEmbed, spec.Src, err)
			o.recorder.IncEmbedFailure(RegionEmbed)
			o.logger.Warn("Embed failed to load; rendering empty region",
				logfields.Region(RegionEmbed), logfields.URL(spec.Src), logfields.Error(err))
		} else {
			hero.Embed = &embed
		}
	}
	return hero, nil
}

// Render writes the hero markup.
func (h Hero) Render(w io.Writer) error {
	return renderTemplate(w, "hero.html", h)
}
