package releases

import (
	"context"

	"github.com/samiconductor/ghradl/internal/ghrel"
)

type gitHubSource struct {
	client *ghrel.Client
}

// NewGitHubSource returns a releases.Source backed by the GitHub
// releases API.
func NewGitHubSource() Source {
	return gitHubSource{client: ghrel.NewClient()}
}

func (s gitHubSource) Release(ctx context.Context, user, repo, tag, token string) (ghrel.Release, error) {
	return s.client.Release(ctx, user, repo, tag, token)
}

func (s gitHubSource) Releases(ctx context.Context, user, repo, token string) ([]ghrel.Release, error) {
	return s.client.Releases(ctx, user, repo, token)
}

func (s gitHubSource) ListTags(ctx context.Context, user, repo, token string) ([]string, error) {
	// Tag listing uses `git ls-remote`; authentication is not applied.
	_ = token
	if err := ghrel.EnsureGit(); err != nil {
		return nil, err
	}
	return ghrel.Tags(ctx, ghrel.GitRemoteURL(user, repo))
}

func (s gitHubSource) DownloadAssets(ctx context.Context, rel ghrel.Release, dir, token string, force bool) error {
	return s.client.DownloadAssets(ctx, rel, dir, token, force)
}
