//go:build integration

package integration_test

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ojet-labs/ojet/internal/build"
	"github.com/ojet-labs/ojet/internal/bundler"
	"github.com/ojet-labs/ojet/internal/fetch"
	"github.com/ojet-labs/ojet/internal/npm"
	"github.com/ojet-labs/ojet/internal/tasks"
	"github.com/ojet-labs/ojet/internal/template"
	"github.com/ojet-labs/ojet/internal/template/handler"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir   string // HOME, holds ~/.ojet
	ParentDir string // where applications are created
	CacheDir  string // npm tarball cache
}

// setupTestEnv creates isolated temp directories and points HOME at one of
// them so no user config or cache is read.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:   t.TempDir(),
		ParentDir: t.TempDir(),
		CacheDir:  t.TempDir(),
	}
	t.Setenv("HOME", env.HomeDir)
	return env
}

// bundleWriter stands in for webpack and writes the bundle file.
type bundleWriter struct{}

func (bundleWriter) Bundle(_ context.Context, req bundler.Request) error {
	return os.WriteFile(req.BundlePath(), []byte("/* bundle */"), 0644)
}

// noopInstaller records installs instead of running npm.
type noopInstaller struct{ dirs []string }

func (n *noopInstaller) Install(_ context.Context, appDir string) error {
	n.dirs = append(n.dirs, appDir)
	return nil
}

// newRunner wires a runner the way the CLI does, with a fake bundler and
// installer. registry may be empty when no named template is used.
func newRunner(env *testEnv, appDir, registry, pkg string) *tasks.Runner {
	fetcher := fetch.New(fetch.WithAttempts(1))
	opts := []npm.Option{npm.WithFetcher(fetcher), npm.WithCacheDir(env.CacheDir)}
	if registry != "" {
		opts = append(opts, npm.WithRegistry(registry))
	}
	return &tasks.Runner{
		AppDir:     appDir,
		Dispatcher: handler.NewDispatcher(template.NewResolver(pkg), fetcher, npm.New(opts...), nil),
		Builder: &build.Builder{
			Bundlers: func(string) bundler.Bundler { return bundleWriter{} },
		},
		Installer: &noopInstaller{},
	}
}

// prefixed returns files with every key under prefix.
func prefixed(prefix string, files map[string]string) map[string]string {
	out := make(map[string]string, len(files))
	for name, body := range files {
		out[prefix+name] = body
	}
	return out
}

func zipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func tgzBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, body := range files {
		hdr := &tar.Header{Name: name, Mode: 0644, Size: int64(len(body)), Typeflag: tar.TypeReg}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected file %s to exist: %v", path, err)
		return
	}
	if info.IsDir() {
		t.Errorf("expected %s to be a file, got directory", path)
	}
}

func componentFile(appDir, name string) string {
	return filepath.Join(appDir, "src", "components", name, name+".tsx")
}
