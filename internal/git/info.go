package git

import (
	stderrors "errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-git/go-git/v5"
)

// ErrNotRepository is returned by Detect when dir is not inside a repository.
var ErrNotRepository = git.ErrRepositoryNotExists

// Info describes the repository state at build time.
type Info struct {
	Commit    string
	Branch    string
	RemoteURL string
}

// ShortCommit returns the abbreviated commit hash.
func (i Info) ShortCommit() string {
	if len(i.Commit) > 7 {
		return i.Commit[:7]
	}
	return i.Commit
}

// Detect opens the repository enclosing dir, walking up to find .git.
func Detect(dir string) (Info, error) {
	repository, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if stderrors.Is(err, git.ErrRepositoryNotExists) {
			return Info{}, ErrNotRepository
		}
		info, herr := readHead(dir)
		if herr != nil {
			return Info{}, fmt.Errorf("open repository: %w", err)
		}
		return info, nil
	}

	var info Info
	ref, err := repository.Head()
	if err != nil {
		return Info{}, fmt.Errorf("resolve HEAD: %w", err)
	}
	info.Commit = ref.Hash().String()
	if ref.Name().IsBranch() {
		info.Branch = ref.Name().Short()
	}

	if remote, rerr := repository.Remote("origin"); rerr == nil {
		if urls := remote.Config().URLs; len(urls) > 0 {
			info.RemoteURL = urls[0]
		}
	}
	return info, nil
}

// WebURL converts a clone URL (https or scp-like ssh) into the repository's
// browsable https URL. It returns "" when the URL cannot be interpreted.
func WebURL(remote string) string {
	remote = strings.TrimSpace(remote)
	if remote == "" {
		return ""
	}
	// scp-like syntax: git@github.com:org/repo.git
	if !strings.Contains(remote, "://") {
		at := strings.Index(remote, "@")
		colon := strings.Index(remote, ":")
		if colon <= at+1 {
			return ""
		}
		host := remote[at+1 : colon]
		path := strings.TrimPrefix(remote[colon+1:], "/")
		return "https://" + host + "/" + strings.TrimSuffix(path, ".git")
	}
	u, err := url.Parse(remote)
	if err != nil || u.Host == "" {
		return ""
	}
	host := u.Hostname()
	path := strings.Trim(strings.TrimSuffix(u.Path, ".git"), "/")
	if path == "" {
		return ""
	}
	return "https://" + host + "/" + path
}

// EditURL builds the "edit this page" prefix for files under subdir on branch.
func EditURL(webURL, branch, subdir string) string {
	if webURL == "" {
		return ""
	}
	if branch == "" {
		branch = "main"
	}
	out := strings.TrimSuffix(webURL, "/") + "/blob/" + branch + "/"
	if subdir = strings.Trim(subdir, "/"); subdir != "" && subdir != "." {
		out += subdir + "/"
	}
	return out
}
