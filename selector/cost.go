package selector

import "github.com/ramereth/dep-selector/selector/fd"

// Finalize materializes the aggregation variables, the objective
// expressions, and the branching schedule. It is idempotent - calling it
// more than once is a no-op - and must complete before Solve (which calls
// it automatically) or any readout method.
//
// After Finalize, the model is frozen: every slot in [PackageCount(),
// Size()) is pinned (version = -1, disabled = true) so that the linear
// sums below can range uniformly over all Size() slots without needing to
// special-case unused capacity.
func (p *Problem) Finalize() error {
	if p.finalized {
		return nil
	}

	for i := p.curPackage; i < p.size; i++ {
		v := p.space.NewIntVar(packageVarName("version", i), fd.NewDomainValues(-1))
		d := p.space.NewBoolVar(packageVarName("disabled", i))
		al := p.space.NewBoolVar(packageVarName("at_latest", i))
		if err := p.space.Assign(d.IntVar, 1); err != nil {
			return err
		}
		p.version = append(p.version, v)
		p.disabled = append(p.disabled, d)
		p.atLatest = append(p.atLatest, al)
	}

	induced := make([]int, p.size)
	for i := 0; i < p.size; i++ {
		if p.w.required[i] == 0 && p.w.suspicious[i] == 0 {
			induced[i] = 1
		}
	}

	disabledVars := make([]fd.IntVar, p.size)
	for i, d := range p.disabled {
		disabledVars[i] = d.IntVar
	}

	p.totalRequiredDisabled = p.space.NewIntVar("total_required_disabled", fd.NewDomainRange(0, p.size))
	p.space.Post(fd.LinearEq{Weights: p.w.required, Vars: disabledVars, Result: p.totalRequiredDisabled})

	p.totalInducedDisabled = p.space.NewIntVar("total_induced_disabled", fd.NewDomainRange(0, p.size))
	p.space.Post(fd.LinearEq{Weights: induced, Vars: disabledVars, Result: p.totalInducedDisabled})

	p.totalSuspiciousDisabled = p.space.NewIntVar("total_suspicious_disabled", fd.NewDomainRange(0, p.size))
	p.space.Post(fd.LinearEq{Weights: p.w.suspicious, Vars: disabledVars, Result: p.totalSuspiciousDisabled})

	ones := make([]int, p.size)
	for i := range ones {
		ones[i] = 1
	}
	p.totalDisabled = p.space.NewIntVar("total_disabled", fd.NewDomainRange(0, p.size))
	p.space.Post(fd.LinearEq{Weights: ones, Vars: disabledVars, Result: p.totalDisabled})

	// Negate the prefer-latest weights in place: a reward for minimization
	// becomes a cost.
	for i := range p.w.preferredLatest {
		p.w.preferredLatest[i] = -p.w.preferredLatest[i]
	}

	atLatestVars := make([]fd.IntVar, p.size)
	for i, al := range p.atLatest {
		atLatestVars[i] = al.IntVar
	}

	p.totalPreferredAtLatest = p.space.NewIntVar(
		"total_preferred_at_latest",
		fd.NewDomainRange(-p.size*MaxPreferredWeight, p.size*MaxPreferredWeight),
	)
	p.space.Post(fd.LinearEq{Weights: p.w.preferredLatest, Vars: atLatestVars, Result: p.totalPreferredAtLatest})

	notPreferred := make([]int, p.size)
	for i, w := range p.w.preferredLatest {
		if w == 0 {
			notPreferred[i] = -1
		}
	}
	p.totalNotPreferredAtLatest = p.space.NewIntVar(
		"total_not_preferred_at_latest",
		fd.NewDomainRange(-p.size, p.size),
	)
	p.space.Post(fd.LinearEq{Weights: notPreferred, Vars: atLatestVars, Result: p.totalNotPreferredAtLatest})

	if p.debugAggregate {
		p.postAggregateCost(disabledVars)
	}

	p.schedule = p.postBranchingSchedule()

	p.finalized = true
	return nil
}

// postAggregateCost posts the alternate single-valued linear-combination
// encoding described in spec §9. It is never consulted by Solve or the
// lex-constrain operator. It combines total_disabled,
// total_preferred_at_latest and total_not_preferred_at_latest, most
// significant first; it does not separate required, induced and suspicious
// disables the way the cost vector does.
func (p *Problem) postAggregateCost(disabledVars []fd.IntVar) {
	notRange := 2*p.size + 1
	prefRange := 2*p.size*MaxPreferredWeight + 1

	p.aggregateCost = p.space.NewIntVar("aggregate_cost", fd.NewDomainRange(-hugeAggregateBound, hugeAggregateBound))
	p.space.Post(fd.LinearEq{
		Weights: []int{notRange * prefRange, notRange, 1},
		Vars:    []fd.IntVar{p.totalDisabled, p.totalPreferredAtLatest, p.totalNotPreferredAtLatest},
		Result:  p.aggregateCost,
	})
}

const hugeAggregateBound = 1 << 29

// costVector returns the five aggregate variables in increasing order of
// precedence (index 0 is least significant), matching the ⟨ ... ⟩ vector
// in spec §4.2.
func (p *Problem) costVector() []fd.IntVar {
	return []fd.IntVar{
		p.totalNotPreferredAtLatest,
		p.totalPreferredAtLatest,
		p.totalSuspiciousDisabled,
		p.totalInducedDisabled,
		p.totalRequiredDisabled,
	}
}

// postBranchingSchedule posts the fixed branching order from spec §4.4.
func (p *Problem) postBranchingSchedule() []fd.BranchStep {
	disabledVars := make([]fd.IntVar, len(p.disabled))
	for i, d := range p.disabled {
		disabledVars[i] = d.IntVar
	}
	atLatestVars := make([]fd.IntVar, len(p.atLatest))
	for i, al := range p.atLatest {
		atLatestVars[i] = al.IntVar
	}

	return []fd.BranchStep{
		{Vars: disabledVars, Order: fd.ValueMin},
		{Vars: p.version, Order: fd.ValueMax},
		{Vars: []fd.IntVar{p.totalRequiredDisabled}, Order: fd.ValueMin},
		{Vars: []fd.IntVar{p.totalInducedDisabled}, Order: fd.ValueMin},
		{Vars: []fd.IntVar{p.totalSuspiciousDisabled}, Order: fd.ValueMin},
		{Vars: []fd.IntVar{p.totalDisabled}, Order: fd.ValueMin},
		{Vars: atLatestVars, Order: fd.ValueMax},
		{Vars: []fd.IntVar{p.totalPreferredAtLatest}, Order: fd.ValueMax},
		{Vars: []fd.IntVar{p.totalNotPreferredAtLatest}, Order: fd.ValueMax},
	}
}
