package commands

import (
	"net/http"
	"time"

	"git.home.luguber.info/inful/docsite/internal/homepage"
)

// embedLoader returns the loader used for the hero embed. Probing issues one
// HEAD request per build; the static loader never touches the network.
func embedLoader(probe bool, timeout time.Duration) homepage.EmbedLoader {
	if !probe {
		return homepage.StaticEmbedLoader{}
	}
	return homepage.ProbeEmbedLoader{Client: &http.Client{Timeout: timeout}}
}
