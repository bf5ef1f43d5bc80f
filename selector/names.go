package selector

import "github.com/armon/go-radix"

// nameIndex interns package names against the package ids New/AddPackage
// assigns them, the way golang-dep's typed_radix.go wraps armon/go-radix
// for its deducer lookups. It exists so callers building a Problem from a
// name-keyed source (a problem file, a manifest) can resolve a dependency
// target's name back to its package id without keeping their own map.
type nameIndex struct {
	t *radix.Tree
}

func newNameIndex() nameIndex {
	return nameIndex{t: radix.New()}
}

// insert records that name was assigned id. Returns false if name was
// already registered (the previous id is left in place).
func (n nameIndex) insert(name string, id int) bool {
	_, had := n.t.Get(name)
	if had {
		return false
	}
	n.t.Insert(name, id)
	return true
}

// lookup returns the package id registered for name, if any.
func (n nameIndex) lookup(name string) (int, bool) {
	v, ok := n.t.Get(name)
	if !ok {
		return 0, false
	}
	return v.(int), true
}

// len returns the number of interned names.
func (n nameIndex) len() int {
	return n.t.Len()
}
