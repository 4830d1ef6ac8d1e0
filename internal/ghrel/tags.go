package ghrel

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"
)

// EnsureGit reports an error when the git binary is not on PATH. Tag
// listing shells out to git, so this is checked up front instead of
// surfacing as a confusing exec failure mid-run.
func EnsureGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git is required for tag listing but was not found: %w", err)
	}
	return nil
}

// GitRemoteURL returns the canonical HTTPS remote URL for user/repo.
func GitRemoteURL(user, repo string) string {
	return fmt.Sprintf("https://github.com/%s/%s.git", strings.TrimSpace(user), strings.TrimSpace(repo))
}

// Tags lists all tag names of a remote repository via
//
//	git ls-remote --tags <remote>
//
// Annotated tag dereferences ("^{}") are stripped; the result is
// de-duplicated and sorted.
func Tags(ctx context.Context, remoteURL string) ([]string, error) {
	cmd := exec.CommandContext(ctx, "git", "ls-remote", "--tags", remoteURL)

	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("git ls-remote failed: %w; stderr=%s", err, string(ee.Stderr))
		}
		return nil, fmt.Errorf("git ls-remote failed: %w", err)
	}

	seen := make(map[string]struct{})
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}

		const prefix = "refs/tags/"
		ref := fields[1]
		if !strings.HasPrefix(ref, prefix) {
			continue
		}

		tag := strings.TrimSuffix(strings.TrimPrefix(ref, prefix), "^{}")
		if tag == "" {
			continue
		}
		seen[tag] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan git output: %w", err)
	}

	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)

	return tags, nil
}
