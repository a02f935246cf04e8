package homepage

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// Embed is a loaded third-party widget, rendered as an iframe plus an
// optional async loader script.
type Embed struct {
	Src    string
	Script string
	Title  string
}

// EmbedLoader loads the widget described by spec. Implementations may do
// network I/O; errors and panics are contained by the hero composer.
type EmbedLoader interface {
	Load(ctx context.Context, spec config.EmbedSpec) (Embed, error)
}

// EmbedLoaderFunc adapts a function to EmbedLoader.
type EmbedLoaderFunc func(ctx context.Context, spec config.EmbedSpec) (Embed, error)

func (f EmbedLoaderFunc) Load(ctx context.Context, spec config.EmbedSpec) (Embed, error) {
	return f(ctx, spec)
}

// StaticEmbedLoader trusts the configuration and performs no I/O. It only
// checks that the URLs parse.
type StaticEmbedLoader struct{}

func (StaticEmbedLoader) Load(_ context.Context, spec config.EmbedSpec) (Embed, error) {
	for _, raw := range []string{spec.Src, spec.Script} {
		if raw == "" {
			continue
		}
		if _, err := url.Parse(raw); err != nil {
			return Embed{}, err
		}
	}
	if spec.Src == "" {
		return Embed{}, fmt.Errorf("embed has no source")
	}
	return Embed(spec), nil
}

// ProbeEmbedLoader issues a HEAD request for the embed source and fails when
// the widget host does not answer with a success status.
type ProbeEmbedLoader struct {
	Client *http.Client
}

func (p ProbeEmbedLoader) Load(ctx context.Context, spec config.EmbedSpec) (Embed, error) {
	embed, err := StaticEmbedLoader{}.Load(ctx, spec)
	if err != nil {
		return Embed{}, err
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, spec.Src, http.NoBody)
	if err != nil {
		return Embed{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return Embed{}, err
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return Embed{}, fmt.Errorf("embed source answered %s", resp.Status)
	}
	return embed, nil
}

// EmbedLoadFailure is the warning recorded when an embed cannot be loaded.
func EmbedLoadFailure(region, src string, cause error) *errors.ClassifiedError {
	return errors.WrapError(cause, errors.CategoryEmbed, "embed failed to load").
		Warning().
		WithContext("region", region).
		WithContext(errors.ContextTarget, src).
		Build()
}

// loadEmbed calls the loader and converts panics into errors.
func loadEmbed(ctx context.Context, loader EmbedLoader, spec config.EmbedSpec) (embed Embed, err error) {
	defer func() {
		if r := recover(); r != nil {
			embed = Embed{}
			err = fmt.Errorf("embed loader panicked: %v", r)
		}
	}()
	return loader.Load(ctx, spec)
}
