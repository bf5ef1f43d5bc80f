package selector

// All readout methods require Solve to have completed successfully; per
// spec they are undefined on a problem that hasn't reached that state, so
// each returns NotFinalizedError instead of panicking or returning a
// zero value that could be mistaken for a real answer.

// GetPackageVersion returns the version chosen for pkg, or
// UnresolvedVariable if the solution doesn't pin it to a single value
// (which should not happen for a package included in the final, ground
// solution, but is checked rather than assumed).
func (p *Problem) GetPackageVersion(pkg int) (int, error) {
	if err := p.requireSolved(pkg); err != nil {
		return 0, err
	}
	d := p.solution.Domain(p.version[pkg])
	if !d.IsSingleton() {
		return UnresolvedVariable, nil
	}
	return d.Value(), nil
}

// GetPackageDisabledState reports whether pkg was disabled in the solution.
func (p *Problem) GetPackageDisabledState(pkg int) (bool, error) {
	if err := p.requireSolved(pkg); err != nil {
		return false, err
	}
	d := p.solution.Domain(p.disabled[pkg].IntVar)
	return d.IsSingleton() && d.Value() == 1, nil
}

// GetMin returns the lower bound of pkg's version domain in the solution.
func (p *Problem) GetMin(pkg int) (int, error) {
	if err := p.requireSolved(pkg); err != nil {
		return 0, err
	}
	return p.solution.Domain(p.version[pkg]).Min(), nil
}

// GetMax returns the upper bound of pkg's version domain in the solution.
func (p *Problem) GetMax(pkg int) (int, error) {
	if err := p.requireSolved(pkg); err != nil {
		return 0, err
	}
	return p.solution.Domain(p.version[pkg]).Max(), nil
}

// GetAtLatest reports whether pkg's chosen version equals its domain
// maximum in the solution.
func (p *Problem) GetAtLatest(pkg int) (bool, error) {
	if err := p.requireSolved(pkg); err != nil {
		return false, err
	}
	d := p.solution.Domain(p.atLatest[pkg].IntVar)
	return d.IsSingleton() && d.Value() == 1, nil
}

// GetDisabledVariableCount returns total_disabled if it is ground in the
// solution (it always is, once Solve has succeeded), else
// UnresolvedVariable.
func (p *Problem) GetDisabledVariableCount() (int, error) {
	if !p.solved || p.solution == nil {
		return 0, &NotFinalizedError{}
	}
	d := p.solution.Domain(p.totalDisabled)
	if !d.IsSingleton() {
		return UnresolvedVariable, nil
	}
	return d.Value(), nil
}

func (p *Problem) requireSolved(pkg int) error {
	if !p.solved || p.solution == nil {
		return &NotFinalizedError{}
	}
	if pkg < 0 || pkg >= p.curPackage {
		return &InvalidPackageIDError{ID: pkg, Registered: p.curPackage}
	}
	return nil
}
