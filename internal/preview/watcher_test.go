package preview

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldIgnoreEvent(t *testing.T) {
	tests := []struct {
		path   string
		ignore bool
	}{
		{"/site/docs/.hidden.md", true},
		{"/site/docs/#intro.md#", true},
		{"/site/docs/intro.md.swp", true},
		{"/site/docs/intro.md.swx", true},
		{"/site/docs/intro.md~", true},
		{"/site/docs/.#intro.md", true},
		{"/site/.DS_Store", true},
		{"/site/Thumbs.db", true},
		{"/site/docs/intro.md", false},
		{"/site/docs/infra/ai-ml.md", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.ignore, shouldIgnoreEvent(tt.path))
		})
	}
}

func TestWatcher_Relevant(t *testing.T) {
	root := t.TempDir()
	content := filepath.Join(root, "content")
	w, err := NewWatcher(filepath.Join(root, "site.yaml"), func(context.Context) {}, WithContentDir(content))
	require.NoError(t, err)

	assert.True(t, w.relevant(filepath.Join(root, "site.yaml")))
	assert.True(t, w.relevant(filepath.Join(root, ".env")))
	assert.True(t, w.relevant(filepath.Join(root, ".env.local")))
	assert.True(t, w.relevant(filepath.Join(content, "docs", "intro.md")))

	assert.False(t, w.relevant(filepath.Join(root, "other.yaml")))
	assert.False(t, w.relevant(filepath.Join(root, ".site.yaml.swp")))
	assert.False(t, w.relevant(filepath.Join(content, "docs", "intro.md.swp")))
	assert.False(t, w.relevant(filepath.Join(root, "contentx", "intro.md")))
}

func TestWatcher_RelevantWithoutContentDir(t *testing.T) {
	root := t.TempDir()
	w, err := NewWatcher(filepath.Join(root, "site.yaml"), func(context.Context) {})
	require.NoError(t, err)

	assert.True(t, w.relevant(filepath.Join(root, "site.yaml")))
	assert.False(t, w.relevant(filepath.Join(root, "docs", "intro.md")))
}

func TestWatcher_TriggerDebounces(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "site.yaml"), func(context.Context) {}, WithDebounce(50*time.Millisecond))
	require.NoError(t, err)

	for range 5 {
		w.trigger()
	}
	require.Eventually(t, func() bool { return len(w.rebuildReq) == 1 }, time.Second, 10*time.Millisecond)

	// The queue holds at most one request.
	w.trigger()
	time.Sleep(120 * time.Millisecond)
	assert.Len(t, w.rebuildReq, 1)
}

func TestWatcher_RunRebuildsOnConfigWrite(t *testing.T) {
	root := t.TempDir()
	configPath := filepath.Join(root, "site.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("title: v1\n"), 0o600))

	var rebuilds atomic.Int32
	w, err := NewWatcher(configPath, func(context.Context) { rebuilds.Add(1) }, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register the directory before writing.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(configPath, []byte("title: v2\n"), 0o600)
		return rebuilds.Load() > 0
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_RunIgnoresUnrelatedFiles(t *testing.T) {
	root := t.TempDir()
	configPath := filepath.Join(root, "site.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("title: v1\n"), 0o600))

	var rebuilds atomic.Int32
	w, err := NewWatcher(configPath, func(context.Context) { rebuilds.Add(1) }, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o600))
	time.Sleep(200 * time.Millisecond)
	assert.Zero(t, rebuilds.Load())
}
