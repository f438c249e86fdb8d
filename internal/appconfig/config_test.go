package appconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const vdomConfig = `{
  "architecture": "vdom",
  "generatorVersion": "11.0.0",
  "paths": {
    "source": {
      "common": "src",
      "web": "src-web",
      "hybrid": "src-hybrid",
      "javascript": ".",
      "typescript": ".",
      "styles": "styles",
      "components": "components",
      "exchangeComponents": "exchange_components",
      "themes": "themes",
      "injectPaths": true
    },
    "staging": {
      "web": "web",
      "hybrid": "hybrid/www",
      "themes": "staged-themes"
    }
  }
}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, ConfigPath(dir), vdomConfig)

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Architecture != ArchitectureVDOM {
		t.Errorf("Architecture = %q, want %q", cfg.Architecture, ArchitectureVDOM)
	}
	if cfg.Paths.Source.Styles != "styles" {
		t.Errorf("Source.Styles = %q, want %q", cfg.Paths.Source.Styles, "styles")
	}
	if cfg.Paths.Source.ExchangeComponents != "exchange_components" {
		t.Errorf("Source.ExchangeComponents = %q", cfg.Paths.Source.ExchangeComponents)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	if _, err := LoadConfig(t.TempDir()); err == nil {
		t.Fatal("expected error for missing oraclejetconfig.json")
	}

	cfg, err := LoadOrDefaultConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOrDefaultConfig: %v", err)
	}
	if cfg.Paths.Source.Common != "src" {
		t.Errorf("default Source.Common = %q, want %q", cfg.Paths.Source.Common, "src")
	}
}

func TestSaveConfigPreservesUnknownFields(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, ConfigPath(dir), vdomConfig)

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	cfg.Bundler = "webpack"
	cfg.BundleName = "bundle.js"
	if err := SaveConfig(dir, cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	data, err := os.ReadFile(ConfigPath(dir))
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("saved file is not JSON: %v", err)
	}

	if doc["generatorVersion"] != "11.0.0" {
		t.Errorf("generatorVersion lost: %v", doc["generatorVersion"])
	}
	source := doc["paths"].(map[string]any)["source"].(map[string]any)
	if source["injectPaths"] != true {
		t.Errorf("nested unknown field injectPaths lost: %v", source)
	}
	if doc["bundler"] != "webpack" || doc["bundleName"] != "bundle.js" {
		t.Errorf("bundler fields not written: %v / %v", doc["bundler"], doc["bundleName"])
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{Paths: PathsConfig{Source: SourcePaths{TypeScript: "."}}}
	if !cfg.ApplyDefaults() {
		t.Fatal("ApplyDefaults() = false, want true")
	}
	if cfg.Paths.Source.TypeScript != "." {
		t.Errorf("TypeScript overwritten: %q", cfg.Paths.Source.TypeScript)
	}
	if cfg.Paths.Source.Components != "jet-composites" {
		t.Errorf("Components = %q, want default", cfg.Paths.Source.Components)
	}
	if cfg.ApplyDefaults() {
		t.Error("second ApplyDefaults() = true, want false")
	}
}

func TestResolvePaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, ConfigPath(dir), vdomConfig)

	p, cfg, err := LoadPaths(dir)
	if err != nil {
		t.Fatalf("LoadPaths: %v", err)
	}
	if cfg.Architecture != ArchitectureVDOM {
		t.Errorf("Architecture = %q", cfg.Architecture)
	}

	want := filepath.Join(dir, "src", "components", "vcomp-1", "vcomp-1.tsx")
	if got := p.ComponentFile("vcomp-1"); got != want {
		t.Errorf("ComponentFile = %q, want %q", got, want)
	}
	if got := p.BundleJS; got != filepath.Join(dir, "web", "bundle.js") {
		t.Errorf("BundleJS = %q", got)
	}
	if got := p.IndexHTML; got != filepath.Join(dir, "web", "index.html") {
		t.Errorf("IndexHTML = %q", got)
	}
}

func TestResolvePathsTypeScriptFolder(t *testing.T) {
	dir := t.TempDir()
	p := ResolvePaths(dir, &Config{})

	want := filepath.Join(dir, "src", "ts", "jet-composites", "my-comp", "my-comp.tsx")
	if got := p.ComponentFile("my-comp"); got != want {
		t.Errorf("ComponentFile = %q, want %q", got, want)
	}
}

func TestPackageDevDependencies(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, PackagePath(dir), `{
  "name": "vdom-app",
  "version": "1.0.0",
  "scripts": {"start": "ojet serve"},
  "devDependencies": {"typescript": "4.2.4", "webpack": "5.0.0"}
}`)

	pkg, err := LoadPackage(dir)
	if err != nil {
		t.Fatalf("LoadPackage: %v", err)
	}
	added := pkg.AddDevDependencies(map[string]string{
		"webpack":     "5.52.0",
		"webpack-cli": "4.8.0",
		"css-loader":  "6.2.0",
	})
	if strings.Join(added, ",") != "css-loader,webpack-cli" {
		t.Errorf("added = %v, want [css-loader webpack-cli]", added)
	}
	if pkg.DevDependencies["webpack"] != "5.0.0" {
		t.Errorf("existing webpack range overwritten: %q", pkg.DevDependencies["webpack"])
	}
	if err := SavePackage(dir, pkg); err != nil {
		t.Fatalf("SavePackage: %v", err)
	}

	reloaded, err := LoadPackage(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"typescript", "webpack", "webpack-cli", "css-loader"} {
		if !reloaded.HasDevDependency(name) {
			t.Errorf("devDependencies missing %s", name)
		}
	}
	if !strings.Contains(readString(t, PackagePath(dir)), `"start": "ojet serve"`) {
		t.Error("scripts block lost on save")
	}
}

func TestLoadPathMapping(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, PathMappingPath(dir), `{"use": "local", "libs": {}}`)

	doc, err := LoadPathMapping(dir)
	if err != nil {
		t.Fatalf("LoadPathMapping: %v", err)
	}
	if _, ok := doc["baseUrl"]; ok {
		t.Error("unexpected baseUrl")
	}
	if doc["use"] != "local" {
		t.Errorf("use = %v, want local", doc["use"])
	}
}

func readString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
