package template

// Kind names the source of a template.
type Kind int

const (
	KindURL Kind = iota
	KindLocal
	KindPackage
)

func (k Kind) String() string {
	switch k {
	case KindURL:
		return "url"
	case KindLocal:
		return "local"
	case KindPackage:
		return "package"
	default:
		return "unknown"
	}
}

// Decision is the outcome of resolving a template reference. The concrete
// types are URLSource, LocalSource and PackageSource.
type Decision interface {
	Kind() Kind
	decision()
}

// URLSource is a template archive at a remote URL.
type URLSource struct {
	URL string
}

// LocalSource is a template directory or archive on disk.
type LocalSource struct {
	Path string
}

// PackageSource is a named template inside an npm package.
type PackageSource struct {
	Package string // npm coordinate, name@range
	Spec    Spec
}

func (URLSource) Kind() Kind     { return KindURL }
func (LocalSource) Kind() Kind   { return KindLocal }
func (PackageSource) Kind() Kind { return KindPackage }

func (URLSource) decision()     {}
func (LocalSource) decision()   {}
func (PackageSource) decision() {}

// Locator returns the URL, path or package coordinate a decision points at.
func Locator(d Decision) string {
	switch d := d.(type) {
	case URLSource:
		return d.URL
	case LocalSource:
		return d.Path
	case PackageSource:
		return d.Package
	default:
		return ""
	}
}
