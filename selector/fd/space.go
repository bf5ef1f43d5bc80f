package fd

import "github.com/pkg/errors"

// ErrInfeasible is returned by Propagate (and anything that calls it) when
// a domain has been wiped out to empty - i.e. the space admits no solution.
var ErrInfeasible = errors.New("fd: domain wiped out")

// Space owns a set of decision variables and the constraints posted over
// them. It is the fd-level analogue of a Gecode space: cloning a Space
// gives two independent spaces that can be propagated and branched on
// separately, but which share the (immutable, append-only) constraint list
// of their common ancestor.
type Space struct {
	doms        []Domain
	names       []string
	constraints []Constraint
}

// NewSpace returns an empty space with no variables and no constraints.
func NewSpace() *Space {
	return &Space{}
}

// NewIntVar allocates a new integer variable with the given initial domain
// and returns a handle to it.
func (s *Space) NewIntVar(name string, dom Domain) IntVar {
	id := VarID(len(s.doms))
	s.doms = append(s.doms, dom)
	s.names = append(s.names, name)
	return IntVar{id: id}
}

// NewBoolVar allocates a new boolean variable.
func (s *Space) NewBoolVar(name string) BoolVar {
	return BoolVar{IntVar: s.NewIntVar(name, BoolDomain())}
}

// Post registers a constraint against the space. Constraints posted before
// the first call to Propagate participate in every subsequent propagation;
// once a space has descendants (via Clone), newly posted constraints are
// NOT retroactively visible to spaces already cloned off of it - post all
// constraints on a space before cloning it for search.
func (s *Space) Post(c Constraint) {
	s.constraints = append(s.constraints, c)
}

// Domain returns the current domain of v.
func (s *Space) Domain(v IntVar) Domain { return s.doms[v.id] }

// SetDomain overwrites the domain of v. Used by constraints and by search
// when branching.
func (s *Space) SetDomain(v IntVar, d Domain) { s.doms[v.id] = d }

// Name returns the diagnostic name a variable was created with.
func (s *Space) Name(v IntVar) string { return s.names[v.id] }

// NumVars returns the number of variables allocated in this space.
func (s *Space) NumVars() int { return len(s.doms) }

// Clone returns an independent copy of the space: domains are deep-copied
// so mutating the clone never affects the original, while the constraint
// list (immutable once posted) is shared by reference. This mirrors the
// "copy-on-write internal representation, independently owned weight data"
// resource model: the cheap, read-only part (constraints) is shared, the
// part that search actually mutates (domains) is copied eagerly.
func (s *Space) Clone() *Space {
	doms := make([]Domain, len(s.doms))
	for i, d := range s.doms {
		doms[i] = d.Clone()
	}
	names := make([]string, len(s.names))
	copy(names, s.names)
	return &Space{
		doms:        doms,
		names:       names,
		constraints: s.constraints,
	}
}

// Assign narrows v's domain to exactly {value}. It returns ErrInfeasible if
// value was not already in v's domain.
func (s *Space) Assign(v IntVar, value int) error {
	d := s.doms[v.id]
	nd := d.RestrictToValue(value)
	if nd.Empty() {
		return ErrInfeasible
	}
	s.doms[v.id] = nd
	return nil
}

// Propagate runs every posted constraint to a fixpoint: constraints are
// applied repeatedly, in posting order, until a full pass produces no
// further domain changes, or until some domain is wiped out. This is a
// naive fixpoint (no per-constraint event scheduling), which is simple to
// reason about and entirely adequate for the small, densely-constrained
// problems this model produces; a production engine would instead maintain
// a dirty-variable work queue.
func (s *Space) Propagate() error {
	for {
		changed := false
		for _, c := range s.constraints {
			ch, err := c.Propagate(s)
			if err != nil {
				return err
			}
			for _, d := range s.doms {
				if d.Empty() {
					return ErrInfeasible
				}
			}
			changed = changed || ch
		}
		if !changed {
			return nil
		}
	}
}

// IsGround reports whether every variable in the space has a singleton domain.
func (s *Space) IsGround() bool {
	for _, d := range s.doms {
		if !d.IsSingleton() {
			return false
		}
	}
	return true
}
