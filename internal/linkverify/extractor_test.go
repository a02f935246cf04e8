package linkverify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fragment = `<section class="features">
  <a class="feature" href="/ai-on-eks/docs/infra"><img src="/ai-on-eks/img/infra.svg" alt="Infrastructure"><h2>Infrastructure</h2></a>
  <a href="https://awslabs.github.io/ai-on-eks/docs/guidance">Guidance</a>
  <a href="https://github.com/awslabs/ai-on-eks">GitHub</a>
  <a href="#top">Top</a>
  <iframe src="https://app.storylane.io/demo/x"></iframe>
  <a href="https://awslabs.github.io/data-on-eks/">Data on EKS</a>
</section>`

func TestExtractLinksFromReader(t *testing.T) {
	links, err := ExtractLinksFromReader(strings.NewReader(fragment), "https://awslabs.github.io/ai-on-eks/")
	require.NoError(t, err)
	require.Len(t, links, 7)

	assert.Equal(t, "a", links[0].Tag)
	assert.Equal(t, "/ai-on-eks/docs/infra", links[0].URL)
	assert.Equal(t, "Infrastructure", links[0].Text)
	assert.True(t, links[0].IsInternal)

	assert.Equal(t, "img", links[1].Tag)
	assert.Equal(t, "Infrastructure", links[1].Text)

	assert.True(t, links[2].IsInternal, "same-host absolute URL is internal")
	assert.False(t, links[3].IsInternal)
	assert.False(t, links[4].IsInternal, "anchors are not checked")
	assert.Equal(t, "iframe", links[5].Tag)
	assert.False(t, links[6].IsInternal, "same host outside the base path is another site")

	internal := FilterLinks(links, true, false)
	assert.Len(t, internal, 3)
	external := FilterLinks(links, false, true)
	assert.Len(t, external, 4)
}

func TestExtractLinksFromReader_InvalidBaseURL(t *testing.T) {
	_, err := ExtractLinksFromReader(strings.NewReader(fragment), "://bad")
	require.Error(t, err)
}
