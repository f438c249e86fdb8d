package template

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ojet-labs/ojet/internal/branding"
)

// JavaScript semantics for \s and "." are spelled out: RE2's \s is ASCII only
// and its "." also matches \r and the Unicode line separators.
const (
	jsSpace   = `\t\n\v\f\r \x{a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`
	jsAnyChar = `[^\n\r\x{2028}\x{2029}]`
)

var urlPattern = regexp.MustCompile(`(?i)^https?://[^` + jsSpace + `$.?#]` + jsAnyChar + `[^` + jsSpace + `]*$`)

// IsURL reports whether raw looks like an http or https URL.
func IsURL(raw string) bool {
	return urlPattern.MatchString(raw)
}

// Resolver classifies template references. The zero value is not usable;
// use NewResolver.
type Resolver struct {
	// Exists lookups a path. It is the only I/O resolution performs.
	Exists  func(path string) bool
	HomeDir func() (string, error)
	WorkDir func() (string, error)
	// Package is the npm coordinate of the templates package.
	Package string
}

// NewResolver returns a Resolver backed by the real filesystem. An empty
// pkg selects the branded templates package.
func NewResolver(pkg string) *Resolver {
	if pkg == "" {
		pkg = branding.TemplatesPackage()
	}
	return &Resolver{
		Exists: func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		},
		HomeDir: os.UserHomeDir,
		WorkDir: os.Getwd,
		Package: pkg,
	}
}

// Resolve classifies raw. The returned Flags are the option changes the
// caller should merge; ctx is never modified.
func (r *Resolver) Resolve(raw string, ctx Context) (Decision, Flags, error) {
	if raw == "" {
		raw = BlankTemplate
	}

	if IsURL(raw) {
		return URLSource{URL: raw}, Flags{}, nil
	}

	// A local directory that shares a reserved name is ignored.
	if !IsReserved(raw) {
		if abs, ok := r.localPath(raw); ok {
			return LocalSource{Path: abs}, Flags{}, nil
		}
	}

	spec, flags, err := ParseSpec(raw, ctx)
	if err != nil {
		return nil, Flags{}, err
	}
	return PackageSource{Package: r.Package, Spec: spec}, flags, nil
}

func (r *Resolver) localPath(raw string) (string, bool) {
	path := raw
	if strings.HasPrefix(path, "~") {
		home, err := r.HomeDir()
		if err != nil {
			return "", false
		}
		path = filepath.Join(home, path[1:])
	}
	if !filepath.IsAbs(path) {
		wd, err := r.WorkDir()
		if err != nil {
			return "", false
		}
		path = filepath.Join(wd, path)
	}
	if !r.Exists(path) {
		return "", false
	}
	return path, true
}

// ParseSpec parses a named template reference of the form name[:type].
func ParseSpec(raw string, ctx Context) (Spec, Flags, error) {
	if raw == "" {
		raw = BlankTemplate
	}

	name, typ, hasType := strings.Cut(raw, ":")
	if !hasType {
		typ = string(TypeFromNamespace(ctx.Namespace))
	} else if i := strings.IndexByte(typ, ':'); i >= 0 {
		typ = typ[:i]
	}

	var flags Flags
	if strings.HasSuffix(name, TypeScriptSuffix) {
		flags.TypeScript = true
	} else if ctx.TypeScript {
		name += TypeScriptSuffix
	}

	if !IsReserved(name) {
		return Spec{}, Flags{}, &InvalidNameError{Name: name, Valid: Names()}
	}
	t := Type(typ)
	if !t.Valid() {
		return Spec{}, Flags{}, &InvalidTypeError{Type: typ}
	}
	return Spec{Name: name, Type: t}, flags, nil
}
