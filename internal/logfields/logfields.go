package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyField      = "field"
	KeyLocale     = "locale"
	KeyCapability = "capability"
	KeyRegion     = "region"
	KeyEntry      = "entry"
	KeyTarget     = "target"
	KeyPolicy     = "policy"
	KeyURL        = "url"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Field(f string) slog.Attr         { return slog.String(KeyField, f) }
func Locale(l string) slog.Attr        { return slog.String(KeyLocale, l) }
func Capability(name string) slog.Attr { return slog.String(KeyCapability, name) }
func Region(name string) slog.Attr     { return slog.String(KeyRegion, name) }
func Entry(title string) slog.Attr     { return slog.String(KeyEntry, title) }
func Target(t string) slog.Attr        { return slog.String(KeyTarget, t) }
func Policy(p string) slog.Attr        { return slog.String(KeyPolicy, p) }
func URL(u string) slog.Attr           { return slog.String(KeyURL, u) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
