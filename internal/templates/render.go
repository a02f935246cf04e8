// Package templates renders the small text templates embedded in site
// configuration, such as the footer copyright line.
package templates

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// RenderTemplateBody renders bodyTemplate with data. Missing keys are errors
// so that a typo in a configured template fails the build instead of
// rendering "<no value>".
func RenderTemplateBody(bodyTemplate string, data map[string]any) (string, error) {
	funcs := template.FuncMap{
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
	}

	tpl, err := template.New("body").Funcs(funcs).Option("missingkey=error").Parse(bodyTemplate)
	if err != nil {
		return "", fmt.Errorf("parse template body: %w", err)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, withBuiltinTemplateData(data)); err != nil {
		return "", fmt.Errorf("render template body: %w", err)
	}
	return buf.String(), nil
}
