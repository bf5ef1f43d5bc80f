package selector

import (
	"strconv"

	"github.com/pkg/errors"
	deplog "github.com/ramereth/dep-selector/log"
	"github.com/ramereth/dep-selector/selector/fd"
)

// Problem is a package-version selection problem: a fixed number of
// package slots, each carrying a version decision variable and a disabled
// flag, plus the version-conditional dependency constraints between them.
// A Problem moves through exactly three phases: building (New through
// AddPackage/AddVersionConstraint/the Mark* calls), finalized (after
// Finalize, called automatically by Solve), and solved (after a
// successful Solve). Readout methods in readout.go require the last.
type Problem struct {
	size       int
	curPackage int
	finalized  bool
	solved     bool

	space *fd.Space

	version  []fd.IntVar
	disabled []fd.BoolVar
	atLatest []fd.BoolVar
	minV     []int
	maxV     []int

	w weights

	totalRequiredDisabled     fd.IntVar
	totalInducedDisabled      fd.IntVar
	totalSuspiciousDisabled   fd.IntVar
	totalDisabled             fd.IntVar
	totalPreferredAtLatest    fd.IntVar
	totalNotPreferredAtLatest fd.IntVar
	aggregateCost             fd.IntVar

	// debugAggregate gates the alternate single-value aggregate cost
	// encoding described in spec §9. It is never read by Solve; it exists
	// only so a test in this package can exercise the aggregate encoding,
	// without the solver ever relying on it for correctness.
	debugAggregate bool
	schedule       []fd.BranchStep

	names nameIndex

	logger   *deplog.Logger
	solution *fd.Space
}

// New pre-allocates size package slots. All per-package weights start at
// their zero value (not required, not suspicious, prefer-latest weight 0).
func New(size int) *Problem {
	return &Problem{
		size:     size,
		space:    fd.NewSpace(),
		version:  make([]fd.IntVar, 0, size),
		disabled: make([]fd.BoolVar, 0, size),
		atLatest: make([]fd.BoolVar, 0, size),
		minV:     make([]int, 0, size),
		maxV:     make([]int, 0, size),
		w:        newWeights(size),
		names:    newNameIndex(),
		logger:   deplog.NewSilent(),
	}
}

// AddPackage registers a new package with version domain [min, max] and
// returns its package id. current is accepted for API compatibility with
// callers that track a project's presently-installed version, but - as in
// the model this is ported from - it never constrains the solve.
func (p *Problem) AddPackage(min, max, current int) (int, error) {
	if p.curPackage == p.size {
		return -1, &CapacityExceededError{Size: p.size}
	}
	_ = current

	id := p.curPackage
	p.curPackage++

	v := p.space.NewIntVar(packageVarName("version", id), fd.NewDomainRange(min, max))
	d := p.space.NewBoolVar(packageVarName("disabled", id))
	al := p.space.NewBoolVar(packageVarName("at_latest", id))
	p.space.Post(fd.EqualityReif{X: v, K: max, B: al})

	p.version = append(p.version, v)
	p.disabled = append(p.disabled, d)
	p.atLatest = append(p.atLatest, al)
	p.minV = append(p.minV, min)
	p.maxV = append(p.maxV, max)

	return id, nil
}

// AddPackageNamed is AddPackage plus interning: it records the association
// between name and the returned package id so a later LookupPackage call
// can resolve dependency edges expressed by name rather than id, as a
// problem loader (internal/problemfile) needs to. name must not already be
// registered.
func (p *Problem) AddPackageNamed(name string, min, max, current int) (int, error) {
	id, err := p.AddPackage(min, max, current)
	if err != nil {
		return -1, err
	}
	if !p.names.insert(name, id) {
		return -1, errors.Errorf("package name %q already registered", name)
	}
	return id, nil
}

// LookupPackage resolves a name registered via AddPackageNamed back to its
// package id.
func (p *Problem) LookupPackage(name string) (int, bool) {
	return p.names.lookup(name)
}

// AddVersionConstraint records: if pkg is chosen at version v, then
// depPkg must be chosen in [depMin, depMax], unless depPkg is disabled.
// Because a disabled package always satisfies its inbound constraints,
// the problem is always total: the objective, not feasibility, is what
// discourages disabling.
func (p *Problem) AddVersionConstraint(pkg, v, depPkg, depMin, depMax int) error {
	if err := p.checkID(pkg); err != nil {
		return err
	}
	if err := p.checkID(depPkg); err != nil {
		return err
	}

	versionMatch := p.space.NewBoolVar("version_match")
	dependMatch := p.space.NewBoolVar("depend_match")
	predicatedDependMatch := p.space.NewBoolVar("predicated_depend_match")

	p.space.Post(fd.EqualityReif{X: p.version[pkg], K: v, B: versionMatch})
	p.space.Post(fd.MembershipReif{X: p.version[depPkg], Lo: depMin, Hi: depMax, B: dependMatch})
	p.space.Post(fd.OrReif{A: p.disabled[depPkg], B: dependMatch, C: predicatedDependMatch})
	p.space.Post(fd.Implies{A: versionMatch, B: predicatedDependMatch})

	return nil
}

// MarkPackageRequired flags pkg as one the caller insists must be present:
// disabling it is the most expensive outcome in the cost model.
func (p *Problem) MarkPackageRequired(pkg int) error {
	if err := p.checkID(pkg); err != nil {
		return err
	}
	p.w.required[pkg] = 1
	return nil
}

// MarkPackageSuspicious flags pkg as a candidate for removal: disabling it
// costs less than disabling an induced package, which in turn costs less
// than disabling a required one.
func (p *Problem) MarkPackageSuspicious(pkg int) error {
	if err := p.checkID(pkg); err != nil {
		return err
	}
	p.w.suspicious[pkg] = 1
	return nil
}

// MarkPackagePreferredToBeAtLatest records that the solver should prefer,
// all else equal, to choose pkg's latest version, weighted by weight.
// weight is clamped into [0, MaxPreferredWeight]; out-of-range input is a
// caller bug worth logging, not an error worth failing a solve over, so it
// is logged as a warning carrying a DegenerateWeightError's message and is
// never returned as an error.
func (p *Problem) MarkPackagePreferredToBeAtLatest(pkg, weight int) error {
	if err := p.checkID(pkg); err != nil {
		return err
	}
	clamped := clampPreferredWeight(weight)
	if clamped != weight {
		derr := &DegenerateWeightError{PackageID: pkg, Requested: weight, Clamped: clamped}
		p.logger.WithPackage(pkg).Warn(derr.Error())
	}
	p.w.preferredLatest[pkg] = clamped
	return nil
}

func (p *Problem) checkID(pkg int) error {
	if pkg < 0 || pkg >= p.curPackage {
		return &InvalidPackageIDError{ID: pkg, Registered: p.curPackage}
	}
	return nil
}

// Size returns the total number of package slots this problem was
// constructed with.
func (p *Problem) Size() int { return p.size }

// PackageCount returns the number of packages actually registered so far.
func (p *Problem) PackageCount() int { return p.curPackage }

func packageVarName(kind string, id int) string {
	return kind + "#" + strconv.Itoa(id)
}
