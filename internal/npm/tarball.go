package npm

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Tarball returns the path of the cached tarball for coord, downloading it
// when the cache has no copy younger than the configured max age.
func (c *Client) Tarball(ctx context.Context, coord Coordinate) (path, version string, err error) {
	m, err := c.Resolve(ctx, coord)
	if err != nil {
		return "", "", err
	}
	if m.Dist.Tarball == "" {
		return "", "", fmt.Errorf("%s@%s has no tarball URL", coord.Name, m.Version)
	}

	path = filepath.Join(c.cacheDir, coord.fileName(m.Version))
	if isFresh(path, c.maxAge) {
		c.logger.Debug().Str("path", path).Msg("using cached tarball")
		return path, m.Version, nil
	}

	c.logger.Debug().Str("url", m.Dist.Tarball).Msg("downloading tarball")
	if err := c.fetcher.Download(ctx, m.Dist.Tarball, path); err != nil {
		return "", "", fmt.Errorf("downloading %s@%s: %w", coord.Name, m.Version, err)
	}
	if err := VerifyIntegrity(path, m.Dist); err != nil {
		os.Remove(path)
		return "", "", err
	}
	return path, m.Version, nil
}

// isFresh reports whether path exists and was written within maxAge.
func isFresh(path string, maxAge time.Duration) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return time.Since(info.ModTime()) <= maxAge
}
