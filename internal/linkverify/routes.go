package linkverify

import (
	"io/fs"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// RouteSet is the set of site-relative routes known to exist.
type RouteSet struct {
	basePath string
	routes   map[string]struct{}
}

// NewRouteSet creates an empty set for a site served under basePath.
func NewRouteSet(basePath string) RouteSet {
	if basePath == "" {
		basePath = "/"
	}
	return RouteSet{basePath: basePath, routes: map[string]struct{}{}}
}

// Add registers a route. Doc ids, file paths and URLs are all accepted.
func (s RouteSet) Add(route string) {
	if r, ok := s.normalize(route); ok {
		s.routes[r] = struct{}{}
	}
}

// Has reports whether the destination resolves to a known route.
func (s RouteSet) Has(dest string) bool {
	r, ok := s.normalize(dest)
	if !ok {
		return false
	}
	_, exists := s.routes[r]
	return exists
}

// Len returns the number of known routes.
func (s RouteSet) Len() int { return len(s.routes) }

// RoutesFromDir walks a content tree (markdown pages and static files) and
// returns the routes the generator will publish for it.
func RoutesFromDir(fsys fs.FS, basePath string) (RouteSet, error) {
	set := NewRouteSet(basePath)
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && p != "." {
				return fs.SkipDir
			}
			return nil
		}
		set.Add("/" + filepath.ToSlash(p))
		return nil
	})
	return set, err
}

// normalize maps a destination onto its canonical route form:
// leading slash, base path stripped, index pages collapsed to their
// directory and page routes ending in "/".
func (s RouteSet) normalize(dest string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(dest))
	if err != nil {
		return "", false
	}
	p := u.Path
	if p == "" {
		return "", false
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if s.basePath != "/" {
		trimmed := strings.TrimSuffix(s.basePath, "/")
		if p == trimmed {
			p = "/"
		} else if strings.HasPrefix(p, trimmed+"/") {
			p = strings.TrimPrefix(p, trimmed)
		}
	}

	ext := path.Ext(p)
	switch ext {
	case "", ".md", ".html":
		p = strings.TrimSuffix(p, ext)
		base := path.Base(p)
		if base == "index" || base == "_index" || base == "README" {
			p = path.Dir(p)
		}
		p = path.Clean(p)
		if p != "/" {
			p += "/"
		}
	default:
		p = path.Clean(p)
	}
	return p, true
}
