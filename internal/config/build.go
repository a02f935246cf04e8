package config

import (
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/templates"
)

type buildOptions struct {
	now    func() time.Time
	logger *slog.Logger
}

// BuildOption customises BuildConfig.
type BuildOption func(*buildOptions)

// WithClock sets the clock used for derived values such as the copyright year.
func WithClock(now func() time.Time) BuildOption {
	return func(o *buildOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger sets the logger that receives normalization warnings.
func WithLogger(logger *slog.Logger) BuildOption {
	return func(o *buildOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// BuildConfig turns a declaration into a validated SiteConfig. The
// declaration is copied first and never modified. On failure no partial
// configuration is returned; the error is a ConfigFieldError naming the
// rejected field.
func BuildConfig(decl *SiteConfig, opts ...BuildOption) (*SiteConfig, error) {
	o := buildOptions{now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if decl == nil {
		return nil, errors.ConfigError("no site configuration provided").Build()
	}

	cfg := decl.clone()
	cfg.Derived = Derived{}

	res, err := NormalizeConfig(cfg)
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings {
		o.logger.Warn("Configuration normalized", slog.String("detail", w))
	}

	applyDefaults(cfg)

	if err := ValidateConfig(cfg); err != nil {
		if field, ok := errors.FieldOf(err); ok {
			o.logger.Debug("Configuration rejected", logfields.Field(field), logfields.Error(err))
		}
		return nil, err
	}

	if err := derive(cfg, o.now()); err != nil {
		return nil, err
	}
	return cfg, nil
}

func derive(cfg *SiteConfig, now time.Time) error {
	now = now.UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	cfg.Derived.Year = day.Year()
	if tpl := cfg.ThemeConfig.Footer.Copyright; tpl != "" {
		copyright, err := templates.RenderTemplateBody(tpl, map[string]any{
			"Year":     cfg.Derived.Year,
			"Date":     day.Format("2006-01-02"),
			"DateTime": day.Format(time.RFC3339),
			"Title":    cfg.Title,
		})
		if err != nil {
			return errors.ConfigFieldError("themeConfig.footer.copyright", err.Error())
		}
		cfg.Derived.Copyright = copyright
	}
	return nil
}
