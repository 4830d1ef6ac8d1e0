package ghrel

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/samiconductor/ghradl/internal/logger"
)

// DownloadAssets fetches every asset of rel into dir, in order. An
// existing destination file is skipped unless force is set. The first
// failed fetch aborts the run; there is no retry or partial-success
// accounting.
func (c *Client) DownloadAssets(ctx context.Context, rel Release, dir, token string, force bool) error {
	for _, asset := range rel.Assets {
		dest := filepath.Join(dir, asset.Name)

		if _, err := os.Stat(dest); err == nil && !force {
			logger.Log.Debug("asset already exists, skipping", "path", dest)
			continue
		}

		logger.Log.Debug("downloading asset", "name", asset.Name, "dest", dest)
		if err := c.downloadAsset(ctx, asset, dest, token); err != nil {
			return err
		}
	}
	return nil
}

// downloadAsset streams one asset to dest. The fetch goes through the
// asset's API URL with Accept: application/octet-stream; the API
// answers with a redirect to the actual binary, which the client
// follows.
func (c *Client) downloadAsset(ctx context.Context, asset Asset, dest, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, withToken(asset.URL, token), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("download asset %s: %w", asset.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return fmt.Errorf("download asset %s: status=%s body=%s", asset.Name, resp.Status, string(b))
	}

	return writeFileAtomically(dest, func(f *os.File) error {
		if _, err := io.Copy(f, resp.Body); err != nil {
			return fmt.Errorf("stream asset %s: %w", asset.Name, err)
		}
		return nil
	})
}

// writeFileAtomically writes dest by streaming into a temporary file in
// the destination directory and renaming it into place, so a failed
// download never leaves a truncated asset behind. Missing intermediate
// directories are created.
func writeFileAtomically(dest string, write func(f *os.File) error) error {
	dir := filepath.Dir(dest)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	// If anything fails before the rename, drop the temp file.
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if err := write(tmp); err != nil {
		return err
	}

	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, dest); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
