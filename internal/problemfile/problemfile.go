// Package problemfile loads a package-version selection problem from a
// TOML description: a list of packages, each with an ordered set of
// semver versions and a weight profile, plus version-conditional
// dependency edges expressed as semver ranges. It generalizes the
// teacher's manifest/lock TOML loading to this domain's own schema.
package problemfile

import (
	"crypto/sha256"
	"fmt"
	"io/ioutil"
	"sort"

	"github.com/Masterminds/semver"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/ramereth/dep-selector/selector"
)

// rawSpec mirrors the on-disk TOML shape.
type rawSpec struct {
	Package []rawPackage `toml:"package"`
}

type rawPackage struct {
	Name               string      `toml:"name"`
	Versions           []string    `toml:"versions"`
	Required           bool        `toml:"required"`
	Suspicious         bool        `toml:"suspicious"`
	PreferLatestWeight int         `toml:"prefer_latest_weight"`
	Depends            []rawDepend `toml:"depends"`
}

type rawDepend struct {
	AtVersion string `toml:"at_version"`
	On        string `toml:"on"`
	Range     string `toml:"range"`
}

// Spec is a parsed, semver-resolved problem description: version strings
// have been sorted and indexed, but nothing has been posted to a
// selector.Problem yet.
type Spec struct {
	Packages []PackageSpec
}

// PackageSpec is one package's sorted version list and weight profile.
type PackageSpec struct {
	Name                string
	Versions            []*semver.Version
	Required            bool
	Suspicious          bool
	PreferLatestWeight  int
	Depends             []DependSpec
}

// DependSpec is one version-conditional dependency edge: when the owning
// package is chosen at AtVersion, On must land in Range.
type DependSpec struct {
	AtVersion *semver.Version
	On        string
	Range     *semver.Constraints
}

// Load reads and parses the TOML problem file at path.
func Load(path string) (*Spec, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read problem file %q", path)
	}
	return Parse(data)
}

// Parse decodes a TOML problem description from data.
func Parse(data []byte) (*Spec, error) {
	var raw rawSpec
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "failed to parse problem file TOML")
	}

	spec := &Spec{Packages: make([]PackageSpec, len(raw.Package))}
	for i, rp := range raw.Package {
		ps, err := resolvePackage(rp)
		if err != nil {
			return nil, errors.Wrapf(err, "package %q", rp.Name)
		}
		spec.Packages[i] = ps
	}
	return spec, nil
}

func resolvePackage(rp rawPackage) (PackageSpec, error) {
	if rp.Name == "" {
		return PackageSpec{}, errors.New("package is missing a name")
	}
	if len(rp.Versions) == 0 {
		return PackageSpec{}, errors.Errorf("package %q has no versions", rp.Name)
	}

	versions := make([]*semver.Version, len(rp.Versions))
	for i, vs := range rp.Versions {
		v, err := semver.NewVersion(vs)
		if err != nil {
			return PackageSpec{}, errors.Wrapf(err, "invalid version %q", vs)
		}
		versions[i] = v
	}
	sort.Sort(semverAsc(versions))

	ps := PackageSpec{
		Name:               rp.Name,
		Versions:           versions,
		Required:           rp.Required,
		Suspicious:         rp.Suspicious,
		PreferLatestWeight: rp.PreferLatestWeight,
		Depends:            make([]DependSpec, len(rp.Depends)),
	}

	for i, rd := range rp.Depends {
		at, err := semver.NewVersion(rd.AtVersion)
		if err != nil {
			return PackageSpec{}, errors.Wrapf(err, "invalid at_version %q", rd.AtVersion)
		}
		rng, err := semver.NewConstraint(rd.Range)
		if err != nil {
			return PackageSpec{}, errors.Wrapf(err, "invalid range %q", rd.Range)
		}
		if rd.On == "" {
			return PackageSpec{}, errors.New("dependency is missing an \"on\" package name")
		}
		ps.Depends[i] = DependSpec{AtVersion: at, On: rd.On, Range: rng}
	}

	return ps, nil
}

type semverAsc []*semver.Version

func (s semverAsc) Len() int           { return len(s) }
func (s semverAsc) Less(i, j int) bool { return s[i].LessThan(s[j]) }
func (s semverAsc) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// Build constructs a selector.Problem from spec: each package's version
// list becomes the integer domain [0, len(versions)-1] (ascending, so
// index len-1 is always the latest version, matching the FD model's
// at_latest wiring), and each dependency's Range is resolved against the
// target package's version list down to a contiguous [min, max] index
// pair, the only shape the core model accepts. It returns the built
// problem along with the package name -> id mapping Build assigned.
func Build(spec *Spec) (*selector.Problem, map[string]int, error) {
	ids := make(map[string]int, len(spec.Packages))
	prob := selector.New(len(spec.Packages))

	for _, ps := range spec.Packages {
		id, err := prob.AddPackageNamed(ps.Name, 0, len(ps.Versions)-1, -1)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "registering package %q", ps.Name)
		}
		ids[ps.Name] = id
	}

	for _, ps := range spec.Packages {
		pkgID := ids[ps.Name]
		if ps.Required {
			if err := prob.MarkPackageRequired(pkgID); err != nil {
				return nil, nil, err
			}
		}
		if ps.Suspicious {
			if err := prob.MarkPackageSuspicious(pkgID); err != nil {
				return nil, nil, err
			}
		}
		if ps.PreferLatestWeight != 0 {
			if err := prob.MarkPackagePreferredToBeAtLatest(pkgID, ps.PreferLatestWeight); err != nil {
				return nil, nil, err
			}
		}

		for _, dep := range ps.Depends {
			depID, ok := ids[dep.On]
			if !ok {
				return nil, nil, errors.Errorf("package %q depends on unregistered package %q", ps.Name, dep.On)
			}
			v := indexOf(ps.Versions, dep.AtVersion)
			if v < 0 {
				return nil, nil, errors.Errorf("package %q has no version %s to hang a dependency on", ps.Name, dep.AtVersion)
			}
			depMin, depMax, ok := rangeToIndices(spec.Packages, dep.On, dep.Range)
			if !ok {
				return nil, nil, errors.Errorf("range %q for %q's dependency on %q matches no version", dep.Range, ps.Name, dep.On)
			}
			if err := prob.AddVersionConstraint(pkgID, v, depID, depMin, depMax); err != nil {
				return nil, nil, err
			}
		}
	}

	return prob, ids, nil
}

func indexOf(versions []*semver.Version, v *semver.Version) int {
	for i, candidate := range versions {
		if candidate.Equal(v) {
			return i
		}
	}
	return -1
}

// rangeToIndices returns the lowest and highest version indices of package
// name that satisfy rng. Versions are sorted ascending, so for a range that
// is a single interval the matching indices form exactly [min, max]. A
// range with gaps (one using || or !=) yields the span from its first to
// its last match, which also includes the unmatched versions in between.
func rangeToIndices(packages []PackageSpec, name string, rng *semver.Constraints) (min, max int, ok bool) {
	for _, ps := range packages {
		if ps.Name != name {
			continue
		}
		min, max = -1, -1
		for i, v := range ps.Versions {
			if rng.Check(v) {
				if min == -1 {
					min = i
				}
				max = i
			}
		}
		return min, max, min != -1
	}
	return 0, 0, false
}

// Hash returns a stable digest of spec suitable as a memoization cache
// key: two specs that would build identical selector.Problems hash
// identically.
func (s *Spec) Hash() [32]byte {
	h := sha256.New()
	for _, ps := range s.Packages {
		fmt.Fprintf(h, "pkg:%s required=%v suspicious=%v weight=%d\n",
			ps.Name, ps.Required, ps.Suspicious, ps.PreferLatestWeight)
		for _, v := range ps.Versions {
			fmt.Fprintf(h, "  v:%s\n", v.String())
		}
		for _, d := range ps.Depends {
			fmt.Fprintf(h, "  dep:%s on=%s range=%s\n", d.AtVersion.String(), d.On, d.Range.String())
		}
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
