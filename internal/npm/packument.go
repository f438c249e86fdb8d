package npm

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/ojet-labs/ojet/internal/branding"
	"github.com/ojet-labs/ojet/internal/config"
	"github.com/ojet-labs/ojet/internal/fetch"
	"github.com/ojet-labs/ojet/internal/logger"
)

const (
	// LatestTag is the dist-tag used when no range is given.
	LatestTag = "latest"

	packumentTTL     = 5 * time.Minute
	packumentCleanup = 10 * time.Minute

	// DefaultTarballMaxAge is how long a cached tarball is reused.
	DefaultTarballMaxAge = 24 * time.Hour
)

// Packument is the registry document describing every version of a package.
type Packument struct {
	Name     string              `json:"name"`
	DistTags map[string]string   `json:"dist-tags"`
	Versions map[string]Manifest `json:"versions"`
}

// Manifest is one published version.
type Manifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Dist    Dist   `json:"dist"`
}

// Dist locates and verifies a version's tarball.
type Dist struct {
	Tarball   string `json:"tarball"`
	Shasum    string `json:"shasum"`
	Integrity string `json:"integrity"`
}

// Client talks to one npm registry.
type Client struct {
	registry string
	fetcher  *fetch.Client
	memo     *gocache.Cache
	cacheDir string
	maxAge   time.Duration
	logger   *zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithRegistry sets the registry base URL.
func WithRegistry(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.registry = strings.TrimRight(u, "/")
		}
	}
}

// WithFetcher sets the HTTP fetcher.
func WithFetcher(f *fetch.Client) Option {
	return func(c *Client) {
		c.fetcher = f
	}
}

// WithCacheDir sets the tarball cache directory.
func WithCacheDir(dir string) Option {
	return func(c *Client) {
		c.cacheDir = dir
	}
}

// WithCacheMaxAge sets how long a cached tarball is reused.
func WithCacheMaxAge(d time.Duration) Option {
	return func(c *Client) {
		c.maxAge = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a Client for the branded registry unless overridden.
func New(opts ...Option) *Client {
	c := &Client{
		registry: strings.TrimRight(branding.NPMRegistry(), "/"),
		memo:     gocache.New(packumentTTL, packumentCleanup),
		maxAge:   DefaultTarballMaxAge,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logger.OrNop(c.logger)
	if c.fetcher == nil {
		c.fetcher = fetch.New(fetch.WithLogger(c.logger))
	}
	if c.cacheDir == "" {
		c.cacheDir = TarballCacheDir()
	}
	return c
}

// TarballCacheDir is the default on-disk tarball cache.
func TarballCacheDir() string {
	return filepath.Join(config.CacheDir(), "tarballs")
}

// Registry returns the registry base URL.
func (c *Client) Registry() string {
	return c.registry
}

// Packument returns the metadata document for name. Results are memoized
// for a few minutes per registry.
func (c *Client) Packument(ctx context.Context, name string) (*Packument, error) {
	coord := Coordinate{Name: name}
	key := c.registry + "/" + coord.escapedName()
	if v, ok := c.memo.Get(key); ok {
		if p, ok := v.(*Packument); ok {
			return p, nil
		}
	}

	var p Packument
	if err := c.fetcher.GetJSON(ctx, key, &p); err != nil {
		return nil, fmt.Errorf("fetching metadata for %s: %w", name, err)
	}
	if len(p.Versions) == 0 {
		return nil, fmt.Errorf("package %s has no published versions", name)
	}
	c.memo.Set(key, &p, gocache.DefaultExpiration)
	return &p, nil
}

// Resolve returns the manifest of the version selected by coord.
func (c *Client) Resolve(ctx context.Context, coord Coordinate) (*Manifest, error) {
	p, err := c.Packument(ctx, coord.Name)
	if err != nil {
		return nil, err
	}
	return SelectVersion(p, coord.Range)
}
