package git

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const refsHeadsPrefix = "refs/heads/"

// readHead resolves HEAD by reading the files under .git directly, walking up
// from dir. Detect falls back to it for repositories go-git refuses to open,
// such as those using repository format extensions it does not know.
func readHead(dir string) (Info, error) {
	gitDir, err := findGitDir(dir)
	if err != nil {
		return Info{}, err
	}
	data, err := os.ReadFile(filepath.Join(gitDir, "HEAD"))
	if err != nil {
		return Info{}, fmt.Errorf("read HEAD: %w", err)
	}

	line := strings.TrimSpace(string(data))
	ref, symbolic := strings.CutPrefix(line, "ref:")
	if !symbolic {
		// Detached HEAD holds the commit hash directly.
		return Info{Commit: line}, nil
	}

	ref = strings.TrimSpace(ref)
	var info Info
	if branch, ok := strings.CutPrefix(ref, refsHeadsPrefix); ok {
		info.Branch = branch
	}
	if refData, refErr := os.ReadFile(filepath.Join(gitDir, filepath.FromSlash(ref))); refErr == nil {
		info.Commit = strings.TrimSpace(string(refData))
		return info, nil
	}
	commit, err := packedRef(gitDir, ref)
	if err != nil {
		return Info{}, err
	}
	info.Commit = commit
	return info, nil
}

// findGitDir returns the .git directory enclosing dir.
func findGitDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(abs, ".git")
		if st, statErr := os.Stat(candidate); statErr == nil && st.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", ErrNotRepository
		}
		abs = parent
	}
}

// packedRef looks ref up in .git/packed-refs. An unborn branch has no entry.
func packedRef(gitDir, ref string) (string, error) {
	f, err := os.Open(filepath.Join(gitDir, "packed-refs"))
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", ref, err)
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if line == "" || line[0] == '#' || line[0] == '^' {
			continue
		}
		hash, name, ok := strings.Cut(line, " ")
		if ok && name == ref {
			return hash, nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("read packed-refs: %w", err)
	}
	return "", fmt.Errorf("resolve %s: not found", ref)
}
