package hugo

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

var buildDay = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// exampleConfig builds the bundled example site, applying mutate to the
// declaration first.
func exampleConfig(t *testing.T, mutate func(*config.SiteConfig)) *config.SiteConfig {
	t.Helper()
	decl, err := config.Decode(bytes.NewReader(config.ExampleSite()))
	require.NoError(t, err)
	if mutate != nil {
		mutate(decl)
	}
	cfg, err := config.BuildConfig(decl, config.WithClock(func() time.Time { return buildDay }))
	require.NoError(t, err)
	return cfg
}

func clockAt(ts time.Time) Option {
	return WithClock(func() time.Time { return ts })
}

func mustRead(t *testing.T, path string) string {
	t.Helper()
	// #nosec G304 - test helper
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

// siblings lists the entries next to dir, so tests can spot leftover staging
// directories.
func siblings(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Dir(dir))
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// countingRecorder counts the calls the generator makes.
type countingRecorder struct {
	metrics.NoopRecorder
	mu            sync.Mutex
	embedFailures int
	outcomes      []metrics.BuildOutcomeLabel
	files         map[metrics.FileResultLabel]int
	brokenLinks   map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		files:       map[metrics.FileResultLabel]int{},
		brokenLinks: map[string]int{},
	}
}

func (r *countingRecorder) IncEmbedFailure(string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.embedFailures++
}

func (r *countingRecorder) IncBuildOutcome(o metrics.BuildOutcomeLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

func (r *countingRecorder) IncFileResult(res metrics.FileResultLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files[res]++
}

func (r *countingRecorder) IncBrokenLinks(policy string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.brokenLinks[policy] += n
}
