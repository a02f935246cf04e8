package linkverify

import (
	"net/url"
	"strings"
)

// TargetKind classifies a link destination.
type TargetKind int

const (
	// TargetInternal is a path inside the site (relative or root-relative).
	TargetInternal TargetKind = iota
	// TargetExternal is an absolute URL; it may be cross-origin.
	TargetExternal
	// TargetSpecial covers anchors and non-navigational schemes (mailto:, tel:).
	TargetSpecial
)

func (k TargetKind) String() string {
	switch k {
	case TargetInternal:
		return "internal"
	case TargetExternal:
		return "external"
	default:
		return "special"
	}
}

// Target is a classified link destination.
type Target struct {
	Raw  string
	Kind TargetKind
}

// IsInternal reports whether the generator's link checking applies to the target.
func (t Target) IsInternal() bool { return t.Kind == TargetInternal }

// Classify decides whether raw points inside the site or elsewhere.
// Only internal targets are subject to broken-link checks.
func Classify(raw string) Target {
	raw = strings.TrimSpace(raw)
	t := Target{Raw: raw}
	switch {
	case raw == "" || strings.HasPrefix(raw, "#"):
		t.Kind = TargetSpecial
		return t
	case strings.HasPrefix(raw, "mailto:"),
		strings.HasPrefix(raw, "tel:"),
		strings.HasPrefix(raw, "javascript:"),
		strings.HasPrefix(raw, "data:"):
		t.Kind = TargetSpecial
		return t
	}

	u, err := url.Parse(raw)
	if err != nil {
		// Unparseable destinations are treated as external so nobody tries
		// to resolve them against the site tree.
		t.Kind = TargetExternal
		return t
	}
	if u.Scheme != "" || u.Host != "" {
		t.Kind = TargetExternal
		return t
	}
	t.Kind = TargetInternal
	return t
}
