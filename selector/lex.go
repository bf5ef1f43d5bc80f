package selector

import "github.com/ramereth/dep-selector/selector/fd"

// constrainLessThanBest posts, onto a fresh space, constraints forcing any
// complete assignment of that space's cost vector to be strictly
// lexicographically less than best's cost vector - index len(current)-1
// (total_required_disabled) is most significant.
//
// The comparison is modeled as subtraction with borrow, read from the
// least significant element: delta_i = current_i - best_i - borrow_i;
// borrow_{i+1} <=> (delta_i < 0); and borrow[0] is fixed to 0 while
// borrow[len] is fixed to 1. Forcing the final borrow means the most
// significant position had to decrease - i.e. the vector as a whole
// strictly decreased - while a tie at any position only propagates the
// borrow if a less significant position already produced one, which is
// exactly lexicographic order.
func constrainLessThanBest(root *fd.Space, current []fd.IntVar, bestVals []int) error {
	if len(current) != len(bestVals) {
		panic("selector: cost vector length mismatch")
	}
	k := len(current)

	borrow := make([]fd.BoolVar, k+1)
	for i := range borrow {
		borrow[i] = root.NewBoolVar("borrow")
	}
	if err := root.Assign(borrow[0].IntVar, 0); err != nil {
		return err
	}

	for i := 0; i < k; i++ {
		// delta_i = current_i - borrow_i - best_i ; borrow_{i+1} <=> delta_i < 0
		root.Post(fd.LinearLessReif{
			Weights: []int{1, -1},
			Vars:    []fd.IntVar{current[i], borrow[i].IntVar},
			Const:   -bestVals[i],
			B:       borrow[i+1],
		})
	}

	return root.Assign(borrow[k].IntVar, 1)
}

// lexRestartHook returns a fd.RestartHook that reads the incumbent
// solution's cost vector and posts constrainLessThanBest against a fresh
// clone of root. It closes over p only to read the (fixed, post-Finalize)
// variable identities of the cost vector - it never mutates p.
func (p *Problem) lexRestartHook() fd.RestartHook {
	costVars := p.costVector()
	return func(root *fd.Space, sol *fd.Space) error {
		bestVals := make([]int, len(costVars))
		for i, v := range costVars {
			d := sol.Domain(v)
			if !d.IsSingleton() {
				panic("selector: incumbent solution has an unresolved cost variable")
			}
			bestVals[i] = d.Value()
		}
		return constrainLessThanBest(root, costVars, bestVals)
	}
}
