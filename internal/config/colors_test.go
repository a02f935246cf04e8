package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsColorToken(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"#667eea", true},
		{"#fff", true},
		{"#ffffff80", true},
		{"rgb(255, 255, 255)", true},
		{"rgba(63,95,172,0.35)", true},
		{"hsl(210 40% 50%)", true},
		{"RebeccaPurple", true},
		{"transparent", true},
		{"#12", false},
		{"#ggg", false},
		{"blurple", false},
		{"rgb(1,2)", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsColorToken(tt.in))
		})
	}
}

func TestCanonicalCapabilityName(t *testing.T) {
	name, err := CanonicalCapabilityName("@docusaurus/theme-mermaid")
	assert.NoError(t, err)
	assert.Equal(t, "theme-mermaid", name)

	_, err = CanonicalCapabilityName("docusaurus-plugin-unknown")
	assert.Error(t, err)

	capability, ok := LookupCapability("lunr-search")
	assert.True(t, ok)
	assert.Equal(t, KindPlugin, capability.Kind)
	assert.True(t, capability.Search)
}
