package template

import (
	"slices"
	"strings"
)

// BlankTemplate is used when no template is given.
const BlankTemplate = "blank"

// TypeScriptSuffix marks the TypeScript variant of a named template.
const TypeScriptSuffix = "-ts"

// Type is the target platform of a named template.
type Type string

const (
	TypeWeb    Type = "web"
	TypeHybrid Type = "hybrid"
)

// Valid reports whether t is a known template type.
func (t Type) Valid() bool {
	return t == TypeWeb || t == TypeHybrid
}

// TypeFromNamespace returns the default type for a namespace: hybrid when the
// namespace mentions hybrid, web otherwise.
func TypeFromNamespace(namespace string) Type {
	if strings.Contains(namespace, string(TypeHybrid)) {
		return TypeHybrid
	}
	return TypeWeb
}

// names is the fixed set of templates published in the templates package.
var names = []string{
	"blank",
	"blank-ts",
	"basic",
	"basic-ts",
	"navbar",
	"navbar-ts",
	"navdrawer",
	"navdrawer-ts",
}

// Names returns the reserved template names in display order.
func Names() []string {
	return slices.Clone(names)
}

// IsReserved reports whether name is one of the reserved template names.
func IsReserved(name string) bool {
	return slices.Contains(names, name)
}

// Spec identifies a named template inside the templates package.
type Spec struct {
	Name string
	Type Type
}

// Dir returns the package-relative folder holding the template files.
func (s Spec) Dir() string {
	return s.Name + "/" + string(s.Type)
}

// TypeScript reports whether Name is a TypeScript variant.
func (s Spec) TypeScript() bool {
	return strings.HasSuffix(s.Name, TypeScriptSuffix)
}

// Context is the read-only input to resolution.
type Context struct {
	Namespace  string
	TypeScript bool
}

// Flags are option changes produced by resolution. The caller merges them.
type Flags struct {
	TypeScript bool
}

// Apply returns ctx with f merged in.
func (f Flags) Apply(ctx Context) Context {
	if f.TypeScript {
		ctx.TypeScript = true
	}
	return ctx
}
