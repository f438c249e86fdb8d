// Package cli defines the Cobra command tree for the ojet CLI. Each file in
// this package builds one top-level command (create, build, add, verify,
// etc.). Commands translate flags into a tasks.Task and delegate to
// tasks.Runner; they only handle flag parsing and output.
package cli
