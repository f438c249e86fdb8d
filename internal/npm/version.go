package npm

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// SelectVersion returns the highest version of p satisfying rng. A dist-tag
// such as "latest" selects the tagged version directly. Prereleases are only
// chosen when the range itself names one.
func SelectVersion(p *Packument, rng string) (*Manifest, error) {
	if rng == "" {
		rng = LatestTag
	}

	if tagged, ok := p.DistTags[rng]; ok {
		m, ok := p.Versions[tagged]
		if !ok {
			return nil, fmt.Errorf("dist-tag %s of %s points at unpublished version %s", rng, p.Name, tagged)
		}
		return &m, nil
	}

	constraint, err := semver.NewConstraint(rng)
	if err != nil {
		return nil, fmt.Errorf("parsing version range %q: %w", rng, err)
	}

	var best *semver.Version
	var bestKey string
	for key := range p.Versions {
		v, err := parseSemver(key)
		if err != nil {
			continue
		}
		if !constraint.Check(v) {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best, bestKey = v, key
		}
	}
	if best == nil {
		return nil, fmt.Errorf("no version of %s satisfies %s", p.Name, rng)
	}

	m := p.Versions[bestKey]
	return &m, nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
