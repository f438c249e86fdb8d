package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ojet-labs/ojet/internal/appconfig"
	"github.com/ojet-labs/ojet/internal/build"
	"github.com/ojet-labs/ojet/internal/bundler"
	"github.com/ojet-labs/ojet/internal/template"
	"github.com/ojet-labs/ojet/internal/template/handler"
	"github.com/ojet-labs/ojet/internal/testutil"
)

type fakeInstaller struct {
	dirs []string
}

func (f *fakeInstaller) Install(_ context.Context, appDir string) error {
	f.dirs = append(f.dirs, appDir)
	return nil
}

type fakeBundler struct{}

func (fakeBundler) Bundle(_ context.Context, req bundler.Request) error {
	return os.WriteFile(req.BundlePath(), []byte("bundle"), 0644)
}

func localDispatcher() *template.Dispatcher {
	return &template.Dispatcher{
		Resolver: template.NewResolver(""),
		Local:    &handler.LocalHandler{},
	}
}

// newApp creates a VDOM application through the runner and returns its root.
func newApp(t *testing.T) string {
	t.Helper()
	parent := t.TempDir()
	r := &Runner{AppDir: parent, Dispatcher: localDispatcher()}
	err := r.Execute(context.Background(), Task{
		Name:       NameCreate,
		Parameters: []string{"vdom-app"},
		Options:    Options{Template: testutil.VDOMTemplate(t)},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return filepath.Join(parent, "vdom-app")
}

func assertFile(t *testing.T, path string) {
	t.Helper()
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		t.Errorf("expected file %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestExecuteRejectsInvalidTask(t *testing.T) {
	r := &Runner{AppDir: t.TempDir()}
	err := r.Execute(context.Background(), Task{Name: "serve"})

	var ves ValidationErrors
	if !errors.As(err, &ves) {
		t.Fatalf("err = %v, want ValidationErrors", err)
	}
	if ves[0].Field != "task" {
		t.Errorf("Field = %q, want %q", ves[0].Field, "task")
	}
}

func TestCreateApp(t *testing.T) {
	appDir := newApp(t)

	cfg, err := appconfig.LoadConfig(appDir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Architecture != appconfig.ArchitectureVDOM {
		t.Errorf("Architecture = %q, want %q", cfg.Architecture, appconfig.ArchitectureVDOM)
	}
	if cfg.Paths.Source.Components != "components" {
		t.Errorf("Source.Components = %q, want %q", cfg.Paths.Source.Components, "components")
	}
	assertFile(t, filepath.Join(appDir, "src", "index.html"))
}

func TestCreateAppNonEmptyDestination(t *testing.T) {
	parent := t.TempDir()
	testutil.WriteFiles(t, parent, map[string]string{"taken/file.txt": "x"})

	r := &Runner{AppDir: parent, Dispatcher: localDispatcher()}
	err := r.Execute(context.Background(), Task{
		Name:       NameCreate,
		Parameters: []string{"taken"},
		Options:    Options{Template: testutil.VDOMTemplate(t)},
	})
	if err == nil || !strings.Contains(err.Error(), "is not empty") {
		t.Errorf("err = %v, want not empty error", err)
	}
}

func TestCreateAppDestinationIsFile(t *testing.T) {
	parent := t.TempDir()
	testutil.WriteFiles(t, parent, map[string]string{"taken": "x"})
	called := false
	d := &template.Dispatcher{
		Resolver: template.NewResolver(""),
		Local: template.HandlerFunc(func(context.Context, template.Request) error {
			called = true
			return nil
		}),
	}

	r := &Runner{AppDir: parent, Dispatcher: d}
	err := r.Execute(context.Background(), Task{
		Name:       NameCreate,
		Parameters: []string{"taken"},
		Options:    Options{Template: testutil.VDOMTemplate(t)},
	})
	if err == nil || !strings.Contains(err.Error(), "cannot create taken") {
		t.Errorf("err = %v, want cannot create error", err)
	}
	if called {
		t.Error("handler ran for a destination that is a file")
	}
	if got := readFile(t, filepath.Join(parent, "taken")); got != "x" {
		t.Errorf("existing file changed to %q", got)
	}
}

func TestCreateAppRemovesPartialOutput(t *testing.T) {
	partial := template.HandlerFunc(func(_ context.Context, req template.Request) error {
		src := filepath.Join(req.DestDir, "src")
		if err := os.MkdirAll(src, 0755); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(src, "index.html"), []byte("half"), 0644); err != nil {
			return err
		}
		return errors.New("archive truncated")
	})
	d := &template.Dispatcher{Resolver: template.NewResolver(""), Local: partial}
	task := Task{
		Name:       NameCreate,
		Parameters: []string{"app"},
		Options:    Options{Template: testutil.VDOMTemplate(t)},
	}

	t.Run("new directory", func(t *testing.T) {
		parent := t.TempDir()
		r := &Runner{AppDir: parent, Dispatcher: d}
		if err := r.Execute(context.Background(), task); err == nil {
			t.Fatal("expected dispatch error")
		}
		if _, err := os.Stat(filepath.Join(parent, "app")); !os.IsNotExist(err) {
			t.Errorf("app directory left behind: %v", err)
		}

		// a retry with a working template succeeds
		r.Dispatcher = localDispatcher()
		if err := r.Execute(context.Background(), task); err != nil {
			t.Fatalf("retry: %v", err)
		}
	})

	t.Run("existing empty directory", func(t *testing.T) {
		parent := t.TempDir()
		dest := filepath.Join(parent, "app")
		if err := os.Mkdir(dest, 0755); err != nil {
			t.Fatal(err)
		}
		r := &Runner{AppDir: parent, Dispatcher: d}
		if err := r.Execute(context.Background(), task); err == nil {
			t.Fatal("expected dispatch error")
		}
		entries, err := os.ReadDir(dest)
		if err != nil {
			t.Fatalf("existing directory removed: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("directory not emptied: %d entries", len(entries))
		}
	})
}

func TestCreateAppInvalidConfigCleansUp(t *testing.T) {
	tmpl := testutil.VDOMTemplate(t)
	testutil.WriteFiles(t, tmpl, map[string]string{
		"oraclejetconfig.json": `{"architecture": "spa", "paths": {}}`,
	})
	parent := t.TempDir()

	r := &Runner{AppDir: parent, Dispatcher: localDispatcher()}
	err := r.Execute(context.Background(), Task{
		Name:       NameCreate,
		Parameters: []string{"app"},
		Options:    Options{Template: tmpl},
	})
	if err == nil || !strings.Contains(err.Error(), "/architecture") {
		t.Fatalf("err = %v, want schema issue at /architecture", err)
	}
	if _, err := os.Stat(filepath.Join(parent, "app")); !os.IsNotExist(err) {
		t.Errorf("app directory left behind: %v", err)
	}
}

func TestCreateAppWithoutDispatcher(t *testing.T) {
	r := &Runner{AppDir: t.TempDir()}
	err := r.Execute(context.Background(), Task{Name: NameCreate, Parameters: []string{"app"}})
	if err == nil || !strings.Contains(err.Error(), "template dispatcher") {
		t.Errorf("err = %v, want missing dispatcher error", err)
	}
}

func TestCreateAppPassesTypeScriptToTemplate(t *testing.T) {
	var got template.Context
	d := &template.Dispatcher{
		Resolver: template.NewResolver(""),
		Local: template.HandlerFunc(func(_ context.Context, req template.Request) error {
			got = req.Context
			if err := os.MkdirAll(req.DestDir, 0755); err != nil {
				return err
			}
			return os.WriteFile(filepath.Join(req.DestDir, "index.html"), nil, 0644)
		}),
	}

	r := &Runner{AppDir: t.TempDir(), Dispatcher: d}
	err := r.Execute(context.Background(), Task{
		Name:       NameCreate,
		Parameters: []string{"app"},
		Options:    Options{Template: testutil.VDOMTemplate(t), TypeScript: true},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	want := template.Context{Namespace: DefaultNamespace, TypeScript: true}
	if got != want {
		t.Errorf("handler context = %+v, want %+v", got, want)
	}
}

func TestCreateComponentVDOM(t *testing.T) {
	appDir := newApp(t)
	r := &Runner{AppDir: appDir}

	err := r.Execute(context.Background(), Task{
		Name:       NameCreate,
		Scope:      ScopeComponent,
		Parameters: []string{"vcomp-1"},
	})
	if err != nil {
		t.Fatalf("create component: %v", err)
	}
	assertFile(t, filepath.Join(appDir, "src", "components", "vcomp-1", "vcomp-1.tsx"))
}

func TestCreateComponentDefaultKind(t *testing.T) {
	tests := []struct {
		name         string
		architecture string
		wantFile     string
	}{
		{"vdom", "vdom", "vcomp-1.tsx"},
		{"mvvm", "mvvm", "component.json"},
		{"unset", "", "component.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appDir := t.TempDir()
			cfg := `{"paths": {}}`
			if tt.architecture != "" {
				cfg = `{"architecture": "` + tt.architecture + `", "paths": {}}`
			}
			testutil.WriteFiles(t, appDir, map[string]string{"oraclejetconfig.json": cfg})

			r := &Runner{AppDir: appDir}
			err := r.Execute(context.Background(), Task{Name: NameCreate, Scope: ScopeComponent, Parameters: []string{"vcomp-1"}})
			if err != nil {
				t.Fatalf("create component: %v", err)
			}
			assertFile(t, filepath.Join(appDir, "src", "ts", "jet-composites", "vcomp-1", tt.wantFile))
		})
	}
}

func TestCreateComponentUnknownArchitecture(t *testing.T) {
	appDir := t.TempDir()
	testutil.WriteFiles(t, appDir, map[string]string{"oraclejetconfig.json": `{"architecture": "spa", "paths": {}}`})

	r := &Runner{AppDir: appDir}
	err := r.Execute(context.Background(), Task{Name: NameCreate, Scope: ScopeComponent, Parameters: []string{"vcomp-1"}})
	if err == nil || !strings.Contains(err.Error(), `unknown architecture "spa"`) {
		t.Errorf("err = %v, want unknown architecture error", err)
	}
}

func TestCreateComponentCompositeKind(t *testing.T) {
	appDir := newApp(t)
	r := &Runner{AppDir: appDir}

	err := r.Execute(context.Background(), Task{
		Name:       NameCreate,
		Scope:      ScopeComponent,
		Parameters: []string{"my-card"},
		Options:    Options{Kind: "composite"},
	})
	if err != nil {
		t.Fatalf("create component: %v", err)
	}
	assertFile(t, filepath.Join(appDir, "src", "components", "my-card", "component.json"))
}

func TestCreateComponentTwiceFails(t *testing.T) {
	appDir := newApp(t)
	r := &Runner{AppDir: appDir}
	task := Task{Name: NameCreate, Scope: ScopeComponent, Parameters: []string{"vcomp-1"}}

	if err := r.Execute(context.Background(), task); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := r.Execute(context.Background(), task); err == nil {
		t.Error("second create succeeded, want error")
	}
}

func TestAddWebpackSkipInstall(t *testing.T) {
	appDir := newApp(t)
	inst := &fakeInstaller{}
	r := &Runner{AppDir: appDir, Installer: inst}

	err := r.Execute(context.Background(), Task{
		Name:       NameAdd,
		Parameters: []string{"webpack"},
		Options:    Options{SkipInstall: true},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(inst.dirs) != 0 {
		t.Errorf("installer ran %d times, want 0", len(inst.dirs))
	}

	pkg, err := appconfig.LoadPackage(appDir)
	if err != nil {
		t.Fatalf("LoadPackage: %v", err)
	}
	for _, dep := range bundler.DependencyNames(bundler.NameWebpack) {
		if !pkg.HasDevDependency(dep) {
			t.Errorf("%s not in devDependencies", dep)
		}
	}
	// existing entries are kept
	if got := pkg.DevDependencies["typescript"]; got != "4.2.4" {
		t.Errorf("typescript = %q, want %q", got, "4.2.4")
	}

	cfg, err := appconfig.LoadConfig(appDir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Bundler != "webpack" || cfg.BundleName != "bundle.js" {
		t.Errorf("bundler, bundleName = %q, %q; want webpack, bundle.js", cfg.Bundler, cfg.BundleName)
	}
	// unknown config fields survive the rewrite
	if !strings.Contains(readFile(t, appconfig.ConfigPath(appDir)), `"generatorVersion"`) {
		t.Error("generatorVersion dropped from config")
	}
}

func TestAddRunsInstaller(t *testing.T) {
	appDir := newApp(t)
	inst := &fakeInstaller{}
	r := &Runner{AppDir: appDir, Installer: inst}

	if err := r.Execute(context.Background(), Task{Name: NameAdd, Parameters: []string{"webpack"}}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(inst.dirs) != 1 || inst.dirs[0] != appDir {
		t.Errorf("installer dirs = %v, want [%s]", inst.dirs, appDir)
	}
}

func TestAddOutsideApp(t *testing.T) {
	r := &Runner{AppDir: t.TempDir(), Installer: &fakeInstaller{}}
	if err := r.Execute(context.Background(), Task{Name: NameAdd, Parameters: []string{"webpack"}}); err == nil {
		t.Error("add outside an app succeeded, want error")
	}
}

func TestBuildDebugAndRelease(t *testing.T) {
	appDir := newApp(t)
	r := &Runner{
		AppDir:    appDir,
		Installer: &fakeInstaller{},
		Builder: &build.Builder{
			Bundlers: func(string) bundler.Bundler { return fakeBundler{} },
		},
	}
	ctx := context.Background()
	index := filepath.Join(appDir, "web", "index.html")

	if err := r.Execute(ctx, Task{Name: NameBuild}); err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(readFile(t, index), "require/require.js") {
		t.Error("debug build does not load require.js")
	}

	if err := r.Execute(ctx, Task{Name: NameAdd, Parameters: []string{"webpack"}, Options: Options{SkipInstall: true}}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := r.Execute(ctx, Task{Name: NameBuild, Options: Options{Release: true}}); err != nil {
		t.Fatalf("release build: %v", err)
	}

	assertFile(t, filepath.Join(appDir, "web", "bundle.js"))
	html := readFile(t, index)
	if strings.Contains(html, "require/require.js'></script>") {
		t.Error("release build still loads require.js")
	}
	if !strings.Contains(html, "bundle.js") {
		t.Error("release build does not load bundle.js")
	}
}
