package releases

import (
	"context"

	"github.com/samiconductor/ghradl/internal/ghrel"
)

// Source abstracts release lookup, tag listing, and asset downloads so
// the CLI and TUI can be tested against a fake.
type Source interface {
	// Release returns the release tagged tag, or the latest release
	// when tag is empty.
	Release(ctx context.Context, user, repo, tag, token string) (ghrel.Release, error)

	// Releases returns every release of the repository in API order.
	Releases(ctx context.Context, user, repo, token string) ([]ghrel.Release, error)

	// ListTags returns all tag names of the repository.
	ListTags(ctx context.Context, user, repo, token string) ([]string, error)

	// DownloadAssets fetches every asset of rel into dir.
	DownloadAssets(ctx context.Context, rel ghrel.Release, dir, token string, force bool) error
}
