// Package template classifies a template reference and routes it to the
// handler that materializes it into a new application directory.
//
// A reference is one raw string. It is a URL, an existing local path, or a
// named template from the templates package, checked in that order. Named
// templates take an optional type suffix ("basic:hybrid") and a TypeScript
// variant ("basic-ts").
package template
