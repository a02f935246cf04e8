package frontmatter

import (
	"errors"
	"strings"
	"time"

	"github.com/inful/mdfp"
)

// LastmodField is updated whenever the fingerprint changes.
const LastmodField = "lastmod"

// Fingerprint computes the canonical content fingerprint of a page. The
// fingerprint and lastmod fields are excluded so that stamping a page does
// not change its own fingerprint.
func Fingerprint(fields map[string]any, body []byte) (string, error) {
	if fields == nil {
		return "", errors.New("fields map is nil")
	}
	hashed := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == mdfp.FingerprintField || k == LastmodField {
			continue
		}
		hashed[k] = v
	}
	fm := ""
	if len(hashed) > 0 {
		raw, err := SerializeYAML(hashed)
		if err != nil {
			return "", err
		}
		fm = strings.TrimSuffix(string(raw), "\n")
	}
	return mdfp.CalculateFingerprintFromParts(fm, string(body)), nil
}

// Stamp upserts the fingerprint into d. When it differs from the fingerprint
// of previous (the page as last written, nil when there is none) lastmod is
// set to now in UTC; otherwise the previous lastmod is carried over.
// It reports whether the content changed.
func Stamp(d *Document, previous *Document, now time.Time) (changed bool, err error) {
	if d == nil || d.Fields == nil {
		return false, errors.New("document has no fields")
	}
	fp, err := Fingerprint(d.Fields, d.Body)
	if err != nil {
		return false, err
	}
	d.Fields[mdfp.FingerprintField] = fp

	if previous != nil {
		if old, _ := previous.Fields[mdfp.FingerprintField].(string); old == fp {
			if lastmod, ok := previous.Fields[LastmodField]; ok {
				d.Fields[LastmodField] = lastmod
			}
			return false, nil
		}
	}
	d.Fields[LastmodField] = now.UTC().Format("2006-01-02")
	return true, nil
}
