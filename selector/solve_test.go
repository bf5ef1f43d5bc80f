package selector

import (
	"testing"

	"github.com/ramereth/dep-selector/selector/fd"
)

func mustSolve(t *testing.T, p *Problem) {
	t.Helper()
	if err := p.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}
}

// S1 - single required package resolves to its latest version.
func TestSolveSinglePackage(t *testing.T) {
	p := New(1)
	id, err := p.AddPackage(0, 3, 0)
	if err != nil {
		t.Fatalf("AddPackage: %v", err)
	}
	if err := p.MarkPackageRequired(id); err != nil {
		t.Fatalf("MarkPackageRequired: %v", err)
	}
	mustSolve(t, p)

	v, err := p.GetPackageVersion(id)
	if err != nil {
		t.Fatalf("GetPackageVersion: %v", err)
	}
	if v != 3 {
		t.Errorf("version = %d, want 3", v)
	}
	disabled, err := p.GetPackageDisabledState(id)
	if err != nil {
		t.Fatalf("GetPackageDisabledState: %v", err)
	}
	if disabled {
		t.Errorf("disabled = true, want false")
	}
}

// S2 - a satisfiable version-conditional dependency is honored exactly.
func TestSolveSimpleDependency(t *testing.T) {
	p := New(2)
	pid, _ := p.AddPackage(0, 2, 0)
	qid, _ := p.AddPackage(0, 2, 0)
	if err := p.MarkPackageRequired(pid); err != nil {
		t.Fatal(err)
	}
	if err := p.AddVersionConstraint(pid, 2, qid, 0, 0); err != nil {
		t.Fatal(err)
	}
	mustSolve(t, p)

	pv, _ := p.GetPackageVersion(pid)
	qv, _ := p.GetPackageVersion(qid)
	if pv != 2 {
		t.Errorf("version[P] = %d, want 2", pv)
	}
	if qv != 0 {
		t.Errorf("version[Q] = %d, want 0", qv)
	}
	for id, name := range map[int]string{pid: "P", qid: "Q"} {
		disabled, err := p.GetPackageDisabledState(id)
		if err != nil {
			t.Fatal(err)
		}
		if disabled {
			t.Errorf("disabled[%s] = true, want false", name)
		}
	}
}

// S3 - a dependency that cannot be satisfied by any version in Q's domain
// forces Q disabled rather than making the problem infeasible.
func TestSolveForcedDisable(t *testing.T) {
	p := New(2)
	pid, _ := p.AddPackage(0, 2, 0)
	qid, _ := p.AddPackage(0, 2, 0)
	if err := p.MarkPackageRequired(pid); err != nil {
		t.Fatal(err)
	}
	for v := 0; v <= 2; v++ {
		if err := p.AddVersionConstraint(pid, v, qid, 5, 5); err != nil {
			t.Fatal(err)
		}
	}
	mustSolve(t, p)

	qDisabled, err := p.GetPackageDisabledState(qid)
	if err != nil {
		t.Fatal(err)
	}
	if !qDisabled {
		t.Errorf("disabled[Q] = false, want true")
	}
	pDisabled, err := p.GetPackageDisabledState(pid)
	if err != nil {
		t.Fatal(err)
	}
	if pDisabled {
		t.Errorf("disabled[P] = true, want false")
	}
}

// S4 - with a prefer-latest weight of 5 on P, both required packages still
// resolve to their max version. Clamping of out-of-range weights is
// covered in problem_test.go.
func TestSolvePreferLatestTieBreak(t *testing.T) {
	p := New(2)
	pid, _ := p.AddPackage(0, 3, 0)
	qid, _ := p.AddPackage(0, 3, 0)
	if err := p.MarkPackageRequired(pid); err != nil {
		t.Fatal(err)
	}
	if err := p.MarkPackageRequired(qid); err != nil {
		t.Fatal(err)
	}
	if err := p.MarkPackagePreferredToBeAtLatest(pid, 5); err != nil {
		t.Fatal(err)
	}
	mustSolve(t, p)

	pv, _ := p.GetPackageVersion(pid)
	qv, _ := p.GetPackageVersion(qid)
	if pv != 3 {
		t.Errorf("version[P] = %d, want 3 (max)", pv)
	}
	if qv != 3 {
		t.Errorf("version[Q] = %d, want 3 (max)", qv)
	}
}

// S5 - when exactly one of a suspicious package and an induced (unflagged)
// package must be disabled, the suspicious one goes: the cost vector in
// cost.go (and the lex ordering it's built from) ranks total_induced_disabled
// ahead of total_suspicious_disabled in significance, so the search avoids
// an induced disable more strongly than a suspicious one. See DESIGN.md for
// why this - not the reverse - is the behavior this package implements.
func TestSolveSuspiciousVsInduced(t *testing.T) {
	p := New(3)
	aid, _ := p.AddPackage(0, 0, 0)
	bid, _ := p.AddPackage(0, 1, 0)
	cid, _ := p.AddPackage(0, 1, 0)
	if err := p.MarkPackageRequired(aid); err != nil {
		t.Fatal(err)
	}
	if err := p.MarkPackageSuspicious(bid); err != nil {
		t.Fatal(err)
	}

	// Force a genuine either/or: at least one of {B, C} must be disabled.
	// This isn't expressible through AddVersionConstraint (which only
	// encodes a single package's dependency edge), so it's posted directly
	// against the underlying space - legal from within this package.
	atLeastOne := p.space.NewBoolVar("at_least_one_disabled")
	p.space.Post(fd.OrReif{A: p.disabled[bid], B: p.disabled[cid], C: atLeastOne})
	if err := p.space.Assign(atLeastOne.IntVar, 1); err != nil {
		t.Fatal(err)
	}

	mustSolve(t, p)

	bDisabled, err := p.GetPackageDisabledState(bid)
	if err != nil {
		t.Fatal(err)
	}
	cDisabled, err := p.GetPackageDisabledState(cid)
	if err != nil {
		t.Fatal(err)
	}
	if !bDisabled {
		t.Errorf("disabled[B] = false, want true (suspicious disable is cheaper than induced)")
	}
	if cDisabled {
		t.Errorf("disabled[C] = true, want false (induced disable should be avoided when a cheaper option exists)")
	}
}

// S6 - an out-of-range package id passed to AddVersionConstraint fails
// immediately with InvalidPackageIDError, before Solve is ever called.
func TestAddVersionConstraintInvalidPackageID(t *testing.T) {
	p := New(1)
	pid, _ := p.AddPackage(0, 0, 0)
	err := p.AddVersionConstraint(pid, 0, 99, 0, 0)
	if _, ok := err.(*InvalidPackageIDError); !ok {
		t.Fatalf("err = %v (%T), want *InvalidPackageIDError", err, err)
	}
}

// S6 (alternate) - an empty version domain (min > max) wipes out the space
// immediately, and Solve reports Infeasible rather than panicking or
// returning a partial result.
func TestSolveInfeasibleEmptyDomain(t *testing.T) {
	p := New(1)
	id, err := p.AddPackage(3, 0, 0)
	if err != nil {
		t.Fatalf("AddPackage: %v", err)
	}
	if err := p.MarkPackageRequired(id); err != nil {
		t.Fatal(err)
	}
	err = p.Solve()
	if _, ok := err.(*InfeasibleError); !ok {
		t.Fatalf("Solve err = %v (%T), want *InfeasibleError", err, err)
	}
}

func TestSolveIsIdempotent(t *testing.T) {
	p := New(1)
	id, _ := p.AddPackage(0, 1, 0)
	if err := p.MarkPackageRequired(id); err != nil {
		t.Fatal(err)
	}
	mustSolve(t, p)
	v1, _ := p.GetPackageVersion(id)
	mustSolve(t, p)
	v2, _ := p.GetPackageVersion(id)
	if v1 != v2 {
		t.Errorf("second Solve changed the result: %d != %d", v1, v2)
	}
}

func TestReadoutBeforeSolveIsNotFinalized(t *testing.T) {
	p := New(1)
	id, _ := p.AddPackage(0, 1, 0)
	if _, err := p.GetPackageVersion(id); err == nil {
		t.Fatal("expected NotFinalizedError before Solve, got nil")
	} else if _, ok := err.(*NotFinalizedError); !ok {
		t.Fatalf("err = %v (%T), want *NotFinalizedError", err, err)
	}
}
