package linkverify

import (
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// BrokenLink is an internal link whose destination is not a known route.
type BrokenLink struct {
	Link   *Link
	Source string // region or file the link was found in
}

// Report summarises one verification pass.
type Report struct {
	Checked int
	Broken  []BrokenLink
}

// ShouldVerifyLink reports whether a link takes part in internal link checking.
func ShouldVerifyLink(link *Link) bool {
	if link == nil || !link.IsInternal || link.URL == "" {
		return false
	}
	return !strings.HasPrefix(link.URL, "#")
}

// Check resolves internal links against routes and applies policy.
// Under PolicyThrow the first broken link is returned as a fatal error;
// warn and log only record; ignore skips resolution entirely.
func Check(source string, links []*Link, routes RouteSet, policy Policy, logger *slog.Logger) (Report, error) {
	var report Report
	if policy == PolicyIgnore {
		return report, nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	for _, link := range links {
		if !ShouldVerifyLink(link) {
			continue
		}
		report.Checked++
		if routes.Has(link.URL) {
			continue
		}
		report.Broken = append(report.Broken, BrokenLink{Link: link, Source: source})
		attrs := []any{logfields.Target(link.URL), logfields.Region(source), logfields.Policy(string(policy))}
		switch policy {
		case PolicyThrow:
			return report, BrokenLinkError(source, link.URL, policy)
		case PolicyWarn:
			logger.Warn("Broken internal link", attrs...)
		default:
			logger.Info("Broken internal link", attrs...)
		}
	}
	return report, nil
}

// BrokenLinkError builds the classified error for an unresolved internal target.
// Its severity follows the policy.
func BrokenLinkError(source, target string, policy Policy) *errors.ClassifiedError {
	b := errors.NewError(errors.CategoryLinks, "unresolved internal link").
		WithContext(errors.ContextTarget, target).
		WithContext(errors.ContextPolicy, string(policy)).
		WithContext("source", source)
	if policy.Aborts() {
		b = b.Fatal().UserAction()
	} else {
		b = b.Warning()
	}
	return b.Build()
}
