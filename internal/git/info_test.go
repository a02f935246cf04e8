package git

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	ggitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addSimpleCommit(t *testing.T, repo *git.Repository, repoPath, name string) plumbing.Hash {
	t.Helper()
	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(repoPath, name), []byte(name), 0o600))
	_, err = wt.Add(name)
	require.NoError(t, err)
	h, err := wt.Commit(name, &git.CommitOptions{Author: &object.Signature{Name: "tester", Email: "t@example.com", When: time.Now()}})
	require.NoError(t, err)
	return h
}

func TestDetect(t *testing.T) {
	tmp := t.TempDir()
	repo, err := git.PlainInit(tmp, false)
	require.NoError(t, err)
	hash := addSimpleCommit(t, repo, tmp, "site.yaml")
	_, err = repo.CreateRemote(&ggitcfg.RemoteConfig{Name: "origin", URLs: []string{"git@github.com:awslabs/ai-on-eks.git"}})
	require.NoError(t, err)

	sub := filepath.Join(tmp, "website")
	require.NoError(t, os.MkdirAll(sub, 0o750))

	info, err := Detect(sub)
	require.NoError(t, err)
	assert.Equal(t, hash.String(), info.Commit)
	assert.Len(t, info.ShortCommit(), 7)
	assert.NotEmpty(t, info.Branch)
	assert.Equal(t, "git@github.com:awslabs/ai-on-eks.git", info.RemoteURL)

	head, err := readHead(sub)
	require.NoError(t, err)
	assert.Equal(t, hash.String(), head.Commit)
	assert.Equal(t, info.Branch, head.Branch)
}

func TestReadHead(t *testing.T) {
	const commit = "0123456789abcdef0123456789abcdef01234567"

	write := func(t *testing.T, root string, files map[string]string) {
		t.Helper()
		for name, data := range files {
			path := filepath.Join(root, ".git", filepath.FromSlash(name))
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
			require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
		}
	}

	t.Run("loose ref", func(t *testing.T) {
		root := t.TempDir()
		write(t, root, map[string]string{"HEAD": "ref: refs/heads/develop\n", "refs/heads/develop": commit + "\n"})
		info, err := readHead(root)
		require.NoError(t, err)
		assert.Equal(t, Info{Commit: commit, Branch: "develop"}, info)
	})

	t.Run("packed ref", func(t *testing.T) {
		root := t.TempDir()
		write(t, root, map[string]string{
			"HEAD":        "ref: refs/heads/main\n",
			"packed-refs": "# pack-refs with: peeled fully-peeled sorted\n" + commit + " refs/heads/main\n^" + commit + "\n",
		})
		info, err := readHead(filepath.Join(root, "website"))
		require.NoError(t, err)
		assert.Equal(t, Info{Commit: commit, Branch: "main"}, info)
	})

	t.Run("detached", func(t *testing.T) {
		root := t.TempDir()
		write(t, root, map[string]string{"HEAD": commit + "\n"})
		info, err := readHead(root)
		require.NoError(t, err)
		assert.Equal(t, Info{Commit: commit}, info)
	})

	t.Run("unborn branch", func(t *testing.T) {
		root := t.TempDir()
		write(t, root, map[string]string{"HEAD": "ref: refs/heads/main\n"})
		_, err := readHead(root)
		require.Error(t, err)
	})

	t.Run("no repository", func(t *testing.T) {
		_, err := findGitDir(t.TempDir())
		assert.ErrorIs(t, err, ErrNotRepository)
	})
}

func TestDetect_NotRepository(t *testing.T) {
	_, err := Detect(t.TempDir())
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, ErrNotRepository))
}

func TestWebURL(t *testing.T) {
	tests := []struct{ in, want string }{
		{"git@github.com:awslabs/ai-on-eks.git", "https://github.com/awslabs/ai-on-eks"},
		{"https://github.com/awslabs/ai-on-eks.git", "https://github.com/awslabs/ai-on-eks"},
		{"https://github.com/awslabs/ai-on-eks", "https://github.com/awslabs/ai-on-eks"},
		{"ssh://git@gitlab.example.com:22/team/docs.git", "https://gitlab.example.com/team/docs"},
		{"", ""},
		{"https://github.com", ""},
		{"not a remote", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WebURL(tt.in), tt.in)
	}
}

func TestEditURL(t *testing.T) {
	assert.Equal(t, "https://github.com/awslabs/ai-on-eks/blob/main/website/",
		EditURL("https://github.com/awslabs/ai-on-eks", "main", "website"))
	assert.Equal(t, "https://github.com/awslabs/ai-on-eks/blob/main/",
		EditURL("https://github.com/awslabs/ai-on-eks/", "", "."))
	assert.Empty(t, EditURL("", "main", "website"))
}
