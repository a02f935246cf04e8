package homepage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasePathResolver(t *testing.T) {
	site := BasePathResolver{BasePath: "/ai-on-eks/"}
	absolute := BasePathResolver{BasePath: "/ai-on-eks/", Origin: "https://awslabs.github.io"}

	tests := []struct {
		name     string
		resolver BasePathResolver
		in       string
		want     string
	}{
		{"relative asset", site, "img/infra.svg", "/ai-on-eks/img/infra.svg"},
		{"root relative", site, "/docs/blueprints/", "/ai-on-eks/docs/blueprints/"},
		{"already prefixed", site, "/ai-on-eks/docs/infra", "/ai-on-eks/docs/infra"},
		{"base itself", site, "/ai-on-eks", "/ai-on-eks"},
		{"external", site, "https://awslabs.github.io/data-on-eks/", "https://awslabs.github.io/data-on-eks/"},
		{"anchor", site, "#features", "#features"},
		{"mailto", site, "mailto:team@example.org", "mailto:team@example.org"},
		{"root base", BasePathResolver{BasePath: "/"}, "img/logo.png", "/img/logo.png"},
		{"empty base", BasePathResolver{}, "/docs/", "/docs/"},
		{"absolute origin", absolute, "img/aioeks-logo-green.png", "https://awslabs.github.io/ai-on-eks/img/aioeks-logo-green.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.resolver.Resolve(tt.in))
		})
	}
}
