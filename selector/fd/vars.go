package fd

// VarID identifies a decision variable within a Space. VarIDs are stable
// across clones of the same lineage of spaces: cloning never renumbers
// variables, it only copies their domains.
type VarID int

// IntVar is a handle to an integer decision variable. It carries no domain
// state itself - the domain lives in whichever Space is currently in use -
// so the same IntVar can be read against many clones of the same root
// space.
type IntVar struct {
	id VarID
}

// ID returns the variable's stable identifier.
func (v IntVar) ID() VarID { return v.id }

// BoolVar is an IntVar whose domain is always a subset of {0, 1}.
type BoolVar struct {
	IntVar
}

const (
	boolFalse = 0
	boolTrue  = 1
)
