package build

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/ojet-labs/ojet/internal/appconfig"
	"github.com/ojet-labs/ojet/internal/bundler"
	"github.com/ojet-labs/ojet/internal/fsutil"
	"github.com/ojet-labs/ojet/internal/logger"
)

// Options selects the build mode.
type Options struct {
	Release bool
}

// Mode returns "release" or "debug".
func (o Options) Mode() string {
	if o.Release {
		return "release"
	}
	return "debug"
}

// Builder builds applications. The zero value uses the real bundlers and a
// nop logger.
type Builder struct {
	Logger *zerolog.Logger
	// Bundlers selects a bundler by name; bundler.Dispatch when nil.
	Bundlers func(name string) bundler.Bundler
}

// Build stages appDir into its staging folder.
func (b *Builder) Build(ctx context.Context, appDir string, opts Options) error {
	log := logger.OrNop(b.Logger)

	cfg, err := appconfig.LoadConfig(appDir)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s is not an application: %s not found", appDir, appconfig.ConfigFile)
	}
	if err != nil {
		return err
	}
	paths := appconfig.ResolvePaths(appDir, cfg)
	cfg.ApplyDefaults()

	log.Info().Msgf("Building application in %s mode", opts.Mode())

	if err := stage(paths, cfg); err != nil {
		return err
	}

	useBundle := opts.Release && cfg.Bundler != ""
	scripts := LoaderScripts()
	if useBundle {
		scripts = []string{BundleScript(cfg.EffectiveBundleName())}
	}
	if err := rewriteIndex(paths.IndexHTML, scripts); err != nil {
		return err
	}

	if useBundle {
		log.Info().Msgf("Bundling with %s", cfg.Bundler)
		dispatch := b.Bundlers
		if dispatch == nil {
			dispatch = bundler.Dispatch
		}
		req := bundler.Request{AppDir: appDir, Paths: paths, BundleName: cfg.EffectiveBundleName()}
		if err := dispatch(cfg.Bundler).Bundle(ctx, req); err != nil {
			return err
		}
	}

	log.Info().Msgf("Build finished: %s", paths.Staging)
	return nil
}

// stage recreates the staging folder from the common source folder, then
// overlays the web-specific source folder when present.
func stage(paths appconfig.Paths, cfg *appconfig.Config) error {
	if _, err := os.Stat(paths.Source); err != nil {
		return fmt.Errorf("reading source folder: %w", err)
	}
	if fsutil.Within(paths.Source, paths.Staging) || fsutil.Within(paths.Staging, paths.Source) {
		return fmt.Errorf("source folder %s and staging folder %s overlap", paths.Source, paths.Staging)
	}

	if err := os.RemoveAll(paths.Staging); err != nil {
		return fmt.Errorf("cleaning %s: %w", paths.Staging, err)
	}
	if err := fsutil.CopyDir(paths.Source, paths.Staging, fsutil.DefaultExcludes); err != nil {
		return fmt.Errorf("staging %s: %w", paths.Source, err)
	}

	webSrc := filepath.Join(paths.AppDir, cfg.Paths.Source.Web)
	if info, err := os.Stat(webSrc); err == nil && info.IsDir() {
		if err := fsutil.CopyDir(webSrc, paths.Staging, fsutil.DefaultExcludes); err != nil {
			return fmt.Errorf("staging %s: %w", webSrc, err)
		}
	}
	return nil
}

func rewriteIndex(path string, scripts []string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	html, err := InjectScripts(string(data), scripts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
