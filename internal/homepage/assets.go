package homepage

import (
	"strings"

	"git.home.luguber.info/inful/docsite/internal/linkverify"
)

// AssetResolver maps a site-relative path to the URL the browser requests.
type AssetResolver interface {
	Resolve(localPath string) string
}

// BasePathResolver prefixes internal paths with the site base path. External
// URLs, anchors and mailto: links pass through. Paths that already carry the
// base path are not prefixed twice. When Origin is set the result is an
// absolute URL, as needed for og:image.
type BasePathResolver struct {
	BasePath string
	Origin   string
}

func (r BasePathResolver) Resolve(localPath string) string {
	target := linkverify.Classify(localPath)
	if !target.IsInternal() {
		return target.Raw
	}
	base := r.BasePath
	if base == "" {
		base = "/"
	}
	p := target.Raw
	if !strings.HasPrefix(p, base) && p+"/" != base {
		p = base + strings.TrimPrefix(p, "/")
	}
	return r.Origin + p
}
