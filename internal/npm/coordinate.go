package npm

import (
	"fmt"
	"net/url"
	"strings"
)

// Coordinate is a package name plus a version range or dist-tag.
type Coordinate struct {
	Name  string
	Range string
}

// ParseCoordinate splits "name@range". Scoped names keep their leading "@".
// A missing range means the latest dist-tag.
func ParseCoordinate(s string) (Coordinate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Coordinate{}, fmt.Errorf("empty package coordinate")
	}

	offset := 0
	if strings.HasPrefix(s, "@") {
		offset = 1
	}
	name, rng := s, ""
	if i := strings.LastIndex(s[offset:], "@"); i >= 0 {
		name, rng = s[:offset+i], s[offset+i+1:]
	}

	if name == "" || name == "@" {
		return Coordinate{}, fmt.Errorf("invalid package coordinate %q", s)
	}
	if strings.HasPrefix(name, "@") && !strings.Contains(name, "/") {
		return Coordinate{}, fmt.Errorf("invalid scoped package name %q", name)
	}
	if rng == "" {
		rng = LatestTag
	}
	return Coordinate{Name: name, Range: rng}, nil
}

func (c Coordinate) String() string {
	return c.Name + "@" + c.Range
}

// escapedName returns the registry path segment for the package.
func (c Coordinate) escapedName() string {
	if scope, rest, ok := strings.Cut(c.Name, "/"); ok && strings.HasPrefix(scope, "@") {
		return scope + "%2f" + url.PathEscape(rest)
	}
	return url.PathEscape(c.Name)
}

// fileName returns a filesystem-safe tarball name for version.
func (c Coordinate) fileName(version string) string {
	name := strings.TrimPrefix(c.Name, "@")
	name = strings.ReplaceAll(name, "/", "-")
	return name + "-" + version + ".tgz"
}
