package templates

import (
	"maps"
	"time"
)

// Now is the clock used for builtin values. Tests may replace it.
var Now = func() time.Time { return time.Now().UTC() }

// withBuiltinTemplateData adds Date, DateTime and Year unless the caller
// already provided them.
func withBuiltinTemplateData(data map[string]any) map[string]any {
	builtins := map[string]func(time.Time) any{
		"Date":     func(t time.Time) any { return t.Format("2006-01-02") },
		"DateTime": func(t time.Time) any { return t.Format(time.RFC3339) },
		"Year":     func(t time.Time) any { return t.Year() },
	}

	missing := false
	for key := range builtins {
		if _, ok := data[key]; !ok {
			missing = true
			break
		}
	}
	if !missing {
		return data
	}

	out := make(map[string]any, len(data)+len(builtins))
	maps.Copy(out, data)

	now := Now()
	for key, value := range builtins {
		if _, ok := out[key]; !ok {
			out[key] = value(now)
		}
	}
	return out
}
