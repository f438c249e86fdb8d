package tasks

// Task names.
const (
	NameCreate = "create"
	NameBuild  = "build"
	NameAdd    = "add"
)

// ScopeComponent makes create generate a component instead of an app.
const ScopeComponent = "component"

// DefaultNamespace is the generator namespace used when none is given.
const DefaultNamespace = "web-app"

// Task is one invocation of the CLI task contract.
type Task struct {
	Name       string   `task:"task" validate:"required,oneof=create build add"`
	Scope      string   `task:"scope" validate:"omitempty,oneof=component"`
	Parameters []string `task:"parameters"`
	Options    Options  `task:"options"`
}

// Options are the flags a task may carry.
type Options struct {
	Release     bool   `task:"release"`
	SkipInstall bool   `task:"skip-install"`
	Template    string `task:"template"`
	Namespace   string `task:"namespace"`
	TypeScript  bool   `task:"typescript"`
	Kind        string `task:"kind" validate:"omitempty,component_kind"`
}
