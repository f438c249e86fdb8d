package bundler

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/ojet-labs/ojet/internal/appconfig"
)

func TestDispatch_Webpack(t *testing.T) {
	b := Dispatch("webpack")
	if _, ok := b.(*WebpackBundler); !ok {
		t.Errorf("Dispatch(\"webpack\") returned %T, want *WebpackBundler", b)
	}
}

func TestDispatch_Unknown(t *testing.T) {
	b := Dispatch("rollup")
	if _, ok := b.(*unknownBundler); !ok {
		t.Errorf("Dispatch(\"rollup\") returned %T, want *unknownBundler", b)
	}

	err := b.Bundle(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error from unknown bundler, got nil")
	}
	if !strings.Contains(err.Error(), `unknown bundler "rollup"`) {
		t.Errorf("unexpected error message: %s", err)
	}
}

func TestDependencies(t *testing.T) {
	deps, err := Dependencies("webpack")
	if err != nil {
		t.Fatalf("Dependencies: %v", err)
	}
	for _, name := range []string{"webpack", "webpack-cli", "css-loader", "ts-loader", "@prefresh/webpack", "zip-webpack-plugin"} {
		if deps[name] == "" {
			t.Errorf("webpack dependencies missing %s", name)
		}
	}
	if len(deps) != 17 {
		t.Errorf("len(deps) = %d, want 17", len(deps))
	}

	deps["webpack"] = "mutated"
	again, _ := Dependencies("webpack")
	if again["webpack"] == "mutated" {
		t.Error("Dependencies returned the shared map")
	}

	if _, err := Dependencies("parcel"); err == nil {
		t.Error("expected error for unsupported bundler")
	}
}

func TestDependencyNamesSorted(t *testing.T) {
	names := DependencyNames("webpack")
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
	if DependencyNames("parcel") != nil {
		t.Error("expected nil for unsupported bundler")
	}
}

func TestSupported(t *testing.T) {
	if !Supported("webpack") {
		t.Error("Supported(webpack) = false")
	}
	if Supported("rollup") {
		t.Error("Supported(rollup) = true")
	}
}

// fakeNPX writes a shell script standing in for npx.
func fakeNPX(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	p := filepath.Join(t.TempDir(), "npx")
	if err := os.WriteFile(p, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatal(err)
	}
	return p
}

func testRequest(t *testing.T) Request {
	t.Helper()
	app := t.TempDir()
	paths := appconfig.ResolvePaths(app, appconfig.DefaultConfig())
	if err := os.MkdirAll(paths.Staging, 0755); err != nil {
		t.Fatal(err)
	}
	return Request{AppDir: app, Paths: paths, BundleName: "bundle.js"}
}

func TestWebpackBundler_WritesBundle(t *testing.T) {
	// $5 is --output-path, $7 is --output-filename.
	npx := fakeNPX(t, `echo "bundling $1 $2 $3"; echo "x" > "$5/$7"`)
	req := testRequest(t)

	var stdout bytes.Buffer
	w := &WebpackBundler{Executable: npx, Stdout: &stdout}
	if err := w.Bundle(context.Background(), req); err != nil {
		t.Fatalf("Bundle: %v", err)
	}
	if _, err := os.Stat(req.BundlePath()); err != nil {
		t.Errorf("bundle not written: %v", err)
	}
	if !strings.Contains(stdout.String(), "bundling webpack --mode production") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestWebpackBundler_NonZeroExit(t *testing.T) {
	npx := fakeNPX(t, `echo "compile failed" >&2; exit 2`)

	w := &WebpackBundler{Executable: npx}
	err := w.Bundle(context.Background(), testRequest(t))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "code 2") || !strings.Contains(err.Error(), "compile failed") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestWebpackBundler_MissingBundle(t *testing.T) {
	npx := fakeNPX(t, `exit 0`)

	w := &WebpackBundler{Executable: npx}
	err := w.Bundle(context.Background(), testRequest(t))
	if err == nil || !strings.Contains(err.Error(), "did not produce") {
		t.Errorf("err = %v, want missing bundle error", err)
	}
}
