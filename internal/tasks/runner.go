package tasks

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ojet-labs/ojet/internal/appconfig"
	"github.com/ojet-labs/ojet/internal/build"
	"github.com/ojet-labs/ojet/internal/bundler"
	"github.com/ojet-labs/ojet/internal/fsutil"
	"github.com/ojet-labs/ojet/internal/logger"
	"github.com/ojet-labs/ojet/internal/scaffold"
	"github.com/ojet-labs/ojet/internal/template"
)

// Runner executes tasks against one working directory. For create it is the
// parent of the new application; for every other task it is the app root.
type Runner struct {
	AppDir     string
	Logger     *zerolog.Logger
	Dispatcher *template.Dispatcher
	Builder    *build.Builder
	Installer  Installer

	once      sync.Once
	validator *Validator
	valErr    error
}

// Execute validates task and runs it.
func (r *Runner) Execute(ctx context.Context, task Task) error {
	r.once.Do(func() {
		r.validator, r.valErr = NewValidator()
	})
	if r.valErr != nil {
		return fmt.Errorf("creating task validator: %w", r.valErr)
	}
	if err := r.validator.Task(task); err != nil {
		return err
	}

	log := logger.OrNop(r.Logger)
	log.Debug().Str("task", task.Name).Str("scope", task.Scope).Strs("parameters", task.Parameters).Msg("executing task")

	switch {
	case task.Name == NameCreate && task.Scope == ScopeComponent:
		return r.createComponent(task)
	case task.Name == NameCreate:
		return r.createApp(ctx, task)
	case task.Name == NameBuild:
		return r.build(ctx, task)
	case task.Name == NameAdd:
		return r.add(ctx, task)
	default:
		return fmt.Errorf("unsupported task %q", task.Name)
	}
}

func (r *Runner) createApp(ctx context.Context, task Task) (err error) {
	if r.Dispatcher == nil {
		return fmt.Errorf("create requires a template dispatcher")
	}
	log := logger.OrNop(r.Logger)

	name := task.Parameters[0]
	dest := filepath.Join(r.AppDir, name)
	_, statErr := os.Stat(dest)
	created := errors.Is(statErr, fs.ErrNotExist)
	empty, err := fsutil.IsEmptyDir(dest)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", name, err)
	}
	if !empty {
		return fmt.Errorf("cannot create %s: directory %s is not empty", name, dest)
	}

	// A failed dispatch leaves dest as it was found.
	defer func() {
		if err != nil {
			removeOutput(dest, created)
		}
	}()

	namespace := task.Options.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}
	tctx := template.Context{Namespace: namespace, TypeScript: task.Options.TypeScript}

	if _, err := r.Dispatcher.Dispatch(ctx, task.Options.Template, tctx, dest); err != nil {
		return err
	}
	log.Info().Msgf("Your app is ready! Change to your new app directory '%s'", name)
	return nil
}

// removeOutput deletes dest when it did not exist before, or empties it.
func removeOutput(dest string, created bool) {
	if created {
		os.RemoveAll(dest)
		return
	}
	entries, err := os.ReadDir(dest)
	if err != nil {
		return
	}
	for _, e := range entries {
		os.RemoveAll(filepath.Join(dest, e.Name()))
	}
}

func (r *Runner) createComponent(task Task) error {
	log := logger.OrNop(r.Logger)
	name := task.Parameters[0]

	paths, cfg, err := appconfig.LoadPaths(r.AppDir)
	if err != nil {
		return err
	}

	kind := task.Options.Kind
	if kind == "" {
		switch cfg.Architecture {
		case appconfig.ArchitectureVDOM:
			kind = scaffold.KindVComponent
		case appconfig.ArchitectureMVVM, "":
			kind = scaffold.KindComposite
		default:
			return fmt.Errorf("cannot create component %s: unknown architecture %q", name, cfg.Architecture)
		}
	}

	outDir := filepath.Join(paths.Components, name)
	result, err := scaffold.Generate(kind, scaffold.NewComponentData(name), outDir)
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		log.Warn().Msg(w)
	}
	log.Info().Msgf("Add component '%s' finished.", name)
	return nil
}

func (r *Runner) build(ctx context.Context, task Task) error {
	b := r.Builder
	if b == nil {
		b = &build.Builder{Logger: r.Logger}
	}
	return b.Build(ctx, r.AppDir, build.Options{Release: task.Options.Release})
}

func (r *Runner) add(ctx context.Context, task Task) error {
	log := logger.OrNop(r.Logger)
	name := task.Parameters[0]

	deps, err := bundler.Dependencies(name)
	if err != nil {
		return err
	}

	cfg, err := appconfig.LoadConfig(r.AppDir)
	if err != nil {
		return err
	}
	pkg, err := appconfig.LoadPackage(r.AppDir)
	if err != nil {
		return err
	}

	added := pkg.AddDevDependencies(deps)
	if err := appconfig.SavePackage(r.AppDir, pkg); err != nil {
		return err
	}
	if len(added) > 0 {
		log.Info().Msgf("Added devDependencies: %s", strings.Join(added, ", "))
	}

	cfg.Bundler = name
	cfg.BundleName = appconfig.DefaultBundleName
	if err := appconfig.SaveConfig(r.AppDir, cfg); err != nil {
		return err
	}

	if task.Options.SkipInstall {
		log.Info().Msg("Skipping npm install")
		return nil
	}
	installer := r.Installer
	if installer == nil {
		installer = &NPMInstaller{}
	}
	log.Info().Msg("Installing dependencies")
	return installer.Install(ctx, r.AppDir)
}
