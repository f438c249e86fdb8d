// Package testutil builds application fixtures for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// VDOMConfig is the oraclejetconfig.json of the VDOM starter template.
const VDOMConfig = `{
  "paths": {
    "source": {
      "common": "src",
      "web": "src-web",
      "hybrid": "src-hybrid",
      "javascript": ".",
      "typescript": ".",
      "styles": "styles",
      "themes": "themes",
      "components": "components",
      "exchangeComponents": "exchange_components"
    },
    "staging": {
      "web": "web",
      "hybrid": "hybrid/www",
      "themes": "staged-themes"
    }
  },
  "defaultBrowser": "chrome",
  "sassVer": "5.0.3",
  "defaultTheme": "redwood",
  "architecture": "vdom",
  "generatorVersion": "11.0.0"
}
`

// VDOMPackage is the package.json of the VDOM starter template.
const VDOMPackage = `{
  "name": "vdom-app",
  "version": "1.0.0",
  "description": "An Oracle JavaScript Extension Toolkit(JET) web app",
  "dependencies": {
    "@oracle/oraclejet": "~11.0.0"
  },
  "devDependencies": {
    "@oracle/oraclejet-tooling": "~11.0.0",
    "typescript": "4.2.4"
  },
  "engines": {
    "node": ">=12.21.0"
  },
  "private": true
}
`

// VDOMPathMapping is the path_mapping.json of the VDOM starter template.
const VDOMPathMapping = `{
  "use": "local",
  "cdns": {},
  "libs": {
    "preact": {
      "cwd": "node_modules/preact/dist",
      "debug": { "src": ["preact.umd.js"], "path": "libs/preact/dist/preact.umd.js" },
      "release": { "src": ["preact.umd.js"], "path": "libs/preact/dist/preact.umd.js" }
    }
  }
}
`

// VDOMIndex is src/index.html of the VDOM starter template.
const VDOMIndex = `<!DOCTYPE html>
<html lang="en-us">
  <head>
    <title>Oracle JET VDOM Starter Template</title>
    <meta charset="UTF-8">
  </head>
  <body class="oj-web-applayout-body">
    <app-root></app-root>
    <!-- injector:scripts -->
    <!-- endinjector -->
  </body>
</html>
`

// VDOMFiles returns the starter template keyed by slash-separated path.
func VDOMFiles() map[string]string {
	return map[string]string{
		"oraclejetconfig.json":      VDOMConfig,
		"package.json":              VDOMPackage,
		"path_mapping.json":         VDOMPathMapping,
		"src/index.html":            VDOMIndex,
		"src/index.ts":              "import \"./components/app\";\n",
		"src/components/app.tsx":    "export class App {}\n",
		"src/styles/app.css":        ".app {}\n",
		"src/resources/nls/ok.json": "{}\n",
	}
}

// WriteFiles writes files under root.
func WriteFiles(t testing.TB, root string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

// VDOMTemplate writes the starter template into a new temp dir and returns it.
func VDOMTemplate(t testing.TB) string {
	t.Helper()
	dir := t.TempDir()
	WriteFiles(t, dir, VDOMFiles())
	return dir
}
