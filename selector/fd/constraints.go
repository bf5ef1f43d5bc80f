package fd

// Constraint is a single propagator: given the current state of a space,
// it narrows variable domains and reports whether it changed anything. It
// must never widen a domain. Returning ErrInfeasible (or any error) from
// Propagate aborts the surrounding Space.Propagate call.
type Constraint interface {
	Propagate(s *Space) (changed bool, err error)
}

// hugeBound stands in for +/-infinity in bound arithmetic below. It is far
// larger than any version count or package count this model will ever see,
// but small enough that sums of a few hundred terms can't overflow.
const hugeBound = 1 << 30

// EqualityReif posts B <=> (X == K).
type EqualityReif struct {
	X IntVar
	K int
	B BoolVar
}

func (c EqualityReif) Propagate(s *Space) (bool, error) {
	changed := false
	xd := s.Domain(c.X)
	bd := s.Domain(c.B)

	if !xd.Contains(c.K) && bd.Contains(boolTrue) {
		s.SetDomain(c.B.IntVar, bd.RestrictToValue(boolFalse))
		changed = true
		bd = s.Domain(c.B)
	} else if xd.IsSingleton() && xd.Value() == c.K && bd.Contains(boolFalse) {
		s.SetDomain(c.B.IntVar, bd.RestrictToValue(boolTrue))
		changed = true
		bd = s.Domain(c.B)
	}

	if bd.IsSingleton() {
		switch bd.Value() {
		case boolTrue:
			nd := xd.RestrictToValue(c.K)
			if !nd.Equal(xd) {
				s.SetDomain(c.X, nd)
				changed = true
			}
		case boolFalse:
			nd := xd.RemoveValue(c.K)
			if !nd.Equal(xd) {
				s.SetDomain(c.X, nd)
				changed = true
			}
		}
	}
	return changed, nil
}

// MembershipReif posts B <=> (X in [Lo, Hi]).
type MembershipReif struct {
	X      IntVar
	Lo, Hi int
	B      BoolVar
}

func (c MembershipReif) Propagate(s *Space) (bool, error) {
	changed := false
	xd := s.Domain(c.X)
	bd := s.Domain(c.B)

	allIn, noneIn := true, true
	for _, v := range xd {
		if v >= c.Lo && v <= c.Hi {
			noneIn = false
		} else {
			allIn = false
		}
	}
	if allIn && bd.Contains(boolFalse) {
		s.SetDomain(c.B.IntVar, bd.RestrictToValue(boolTrue))
		changed = true
		bd = s.Domain(c.B)
	} else if noneIn && bd.Contains(boolTrue) {
		s.SetDomain(c.B.IntVar, bd.RestrictToValue(boolFalse))
		changed = true
		bd = s.Domain(c.B)
	}

	if bd.IsSingleton() {
		switch bd.Value() {
		case boolTrue:
			nd := xd.RestrictToRange(c.Lo, c.Hi)
			if !nd.Equal(xd) {
				s.SetDomain(c.X, nd)
				changed = true
			}
		case boolFalse:
			nd := xd.RestrictOutsideRange(c.Lo, c.Hi)
			if !nd.Equal(xd) {
				s.SetDomain(c.X, nd)
				changed = true
			}
		}
	}
	return changed, nil
}

// OrReif posts C <=> (A OR B).
type OrReif struct {
	A, B, C BoolVar
}

func (c OrReif) Propagate(s *Space) (bool, error) {
	changed := false
	ad, bd, cd := s.Domain(c.A.IntVar), s.Domain(c.B.IntVar), s.Domain(c.C.IntVar)

	aTrue := ad.IsSingleton() && ad.Value() == boolTrue
	bTrue := bd.IsSingleton() && bd.Value() == boolTrue
	aFalse := ad.IsSingleton() && ad.Value() == boolFalse
	bFalse := bd.IsSingleton() && bd.Value() == boolFalse

	if (aTrue || bTrue) && cd.Contains(boolFalse) {
		s.SetDomain(c.C.IntVar, cd.RestrictToValue(boolTrue))
		changed = true
		cd = s.Domain(c.C.IntVar)
	} else if aFalse && bFalse && cd.Contains(boolTrue) {
		s.SetDomain(c.C.IntVar, cd.RestrictToValue(boolFalse))
		changed = true
		cd = s.Domain(c.C.IntVar)
	}

	if cd.IsSingleton() {
		switch cd.Value() {
		case boolFalse:
			if ad.Contains(boolTrue) {
				s.SetDomain(c.A.IntVar, ad.RestrictToValue(boolFalse))
				changed = true
				ad = s.Domain(c.A.IntVar)
			}
			if bd.Contains(boolTrue) {
				s.SetDomain(c.B.IntVar, bd.RestrictToValue(boolFalse))
				changed = true
				bd = s.Domain(c.B.IntVar)
			}
		case boolTrue:
			if ad.IsSingleton() && ad.Value() == boolFalse && bd.Contains(boolFalse) {
				s.SetDomain(c.B.IntVar, bd.RestrictToValue(boolTrue))
				changed = true
			}
			if bd.IsSingleton() && bd.Value() == boolFalse && ad.Contains(boolFalse) {
				s.SetDomain(c.A.IntVar, ad.RestrictToValue(boolTrue))
				changed = true
			}
		}
	}
	return changed, nil
}

// Implies posts the hard constraint A => B (equivalently, NOT B => NOT A).
type Implies struct {
	A, B BoolVar
}

func (c Implies) Propagate(s *Space) (bool, error) {
	changed := false
	ad, bd := s.Domain(c.A.IntVar), s.Domain(c.B.IntVar)

	if ad.IsSingleton() && ad.Value() == boolTrue && bd.Contains(boolFalse) {
		s.SetDomain(c.B.IntVar, bd.RestrictToValue(boolTrue))
		changed = true
	}
	bd = s.Domain(c.B.IntVar)
	if bd.IsSingleton() && bd.Value() == boolFalse && ad.Contains(boolTrue) {
		s.SetDomain(c.A.IntVar, ad.RestrictToValue(boolFalse))
		changed = true
	}
	return changed, nil
}

// LinearEq posts Result == Const + sum(Weights[i] * Vars[i]), maintained by
// bounds consistency: each variable's domain is narrowed to the range of
// values it could take while the equality remains satisfiable given the
// current bounds of every other term.
type LinearEq struct {
	Weights []int
	Vars    []IntVar
	Const   int
	Result  IntVar
}

func (c LinearEq) Propagate(s *Space) (bool, error) {
	changed := false

	lo, hi := linearBounds(s, c.Weights, c.Vars, c.Const)
	rd := s.Domain(c.Result)
	nrd := rd.RestrictToRange(lo, hi)
	if !nrd.Equal(rd) {
		s.SetDomain(c.Result, nrd)
		changed = true
		rd = nrd
	}
	if rd.Empty() {
		return changed, nil
	}

	ch, err := linearTighten(s, c.Weights, c.Vars, c.Const, rd.Min(), rd.Max())
	return changed || ch, err
}

// linearBounds returns the achievable [min, max] of Const + sum(w_i * dom(v_i)).
func linearBounds(s *Space, weights []int, vars []IntVar, constant int) (int, int) {
	lo, hi := constant, constant
	for i, v := range vars {
		w := weights[i]
		d := s.Domain(v)
		if d.Empty() {
			continue
		}
		tmin, tmax := termBounds(w, d)
		lo += tmin
		hi += tmax
	}
	return lo, hi
}

func termBounds(w int, d Domain) (int, int) {
	if w >= 0 {
		return w * d.Min(), w * d.Max()
	}
	return w * d.Max(), w * d.Min()
}

// linearTighten narrows each variable in vars so that
// Const + sum(weights[i]*vars[i]) stays within [lo, hi]. Pass -hugeBound /
// +hugeBound for an unconstrained side.
func linearTighten(s *Space, weights []int, vars []IntVar, constant, lo, hi int) (bool, error) {
	changed := false

	termMin := make([]int, len(vars))
	termMax := make([]int, len(vars))
	sumMin, sumMax := constant, constant
	for i, v := range vars {
		tmin, tmax := termBounds(weights[i], s.Domain(v))
		termMin[i], termMax[i] = tmin, tmax
		sumMin += tmin
		sumMax += tmax
	}

	for i, v := range vars {
		w := weights[i]
		if w == 0 {
			continue
		}
		otherMin := sumMin - termMin[i]
		otherMax := sumMax - termMax[i]

		termLo := lo - otherMax
		termHi := hi - otherMin

		var vlo, vhi int
		if w > 0 {
			vlo, vhi = ceilDiv(termLo, w), floorDiv(termHi, w)
		} else {
			vlo, vhi = ceilDiv(termHi, w), floorDiv(termLo, w)
		}

		d := s.Domain(v)
		nd := d.RestrictToRange(vlo, vhi)
		if !nd.Equal(d) {
			s.SetDomain(v, nd)
			changed = true
		}
		if nd.Empty() {
			return changed, ErrInfeasible
		}
	}
	return changed, nil
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	q := a / b
	if a%b != 0 && ((a < 0) == (b < 0)) {
		q++
	}
	return q
}

// LinearLessReif posts B <=> (Const + sum(Weights[i]*Vars[i]) < 0). It is
// the reified linear inequality used to build the lexicographic
// less-than-best restart constraint: see selector's lex.go.
type LinearLessReif struct {
	Weights []int
	Vars    []IntVar
	Const   int
	B       BoolVar
}

func (c LinearLessReif) Propagate(s *Space) (bool, error) {
	changed := false
	lo, hi := linearBounds(s, c.Weights, c.Vars, c.Const)
	bd := s.Domain(c.B.IntVar)

	if hi < 0 && bd.Contains(boolFalse) {
		s.SetDomain(c.B.IntVar, bd.RestrictToValue(boolTrue))
		changed = true
		bd = s.Domain(c.B.IntVar)
	} else if lo >= 0 && bd.Contains(boolTrue) {
		s.SetDomain(c.B.IntVar, bd.RestrictToValue(boolFalse))
		changed = true
		bd = s.Domain(c.B.IntVar)
	}

	if !bd.IsSingleton() {
		return changed, nil
	}

	var ch bool
	var err error
	if bd.Value() == boolTrue {
		ch, err = linearTighten(s, c.Weights, c.Vars, c.Const, -hugeBound, -1)
	} else {
		ch, err = linearTighten(s, c.Weights, c.Vars, c.Const, 0, hugeBound)
	}
	return changed || ch, err
}
