package homepage

import (
	"log/slog"

	"git.home.luguber.info/inful/docsite/internal/markdown"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

type options struct {
	resolver AssetResolver
	markdown *markdown.Renderer
	logger   *slog.Logger
	recorder metrics.Recorder
}

// Option customises the composers.
type Option func(*options)

// WithResolver sets the resolver for site-relative paths. The default leaves
// paths untouched.
func WithResolver(r AssetResolver) Option {
	return func(o *options) {
		if r != nil {
			o.resolver = r
		}
	}
}

// WithMarkdown sets the renderer used for rich-text fragments.
func WithMarkdown(r *markdown.Renderer) Option {
	return func(o *options) {
		if r != nil {
			o.markdown = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		resolver: BasePathResolver{BasePath: "/"},
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.markdown == nil {
		o.markdown = markdown.NewRenderer(markdown.Options{})
	}
	return o
}
