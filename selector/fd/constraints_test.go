package fd

import "testing"

func TestEqualityReifForwardPropagatesToBool(t *testing.T) {
	s := NewSpace()
	x := s.NewIntVar("x", NewDomainValues(3))
	b := s.NewBoolVar("b")
	s.Post(EqualityReif{X: x, K: 3, B: b})

	if err := s.Propagate(); err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	if got := s.Domain(b.IntVar); !got.Equal(Domain{boolTrue}) {
		t.Errorf("b = %v, want {1} since x is singleton 3", got)
	}
}

func TestEqualityReifBackwardPropagatesToX(t *testing.T) {
	s := NewSpace()
	x := s.NewIntVar("x", NewDomainRange(0, 5))
	b := s.NewBoolVar("b")
	s.Post(EqualityReif{X: x, K: 3, B: b})
	if err := s.Assign(b.IntVar, boolTrue); err != nil {
		t.Fatal(err)
	}

	if err := s.Propagate(); err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	if got := s.Domain(x); !got.Equal(Domain{3}) {
		t.Errorf("x = %v, want {3}", got)
	}
}

func TestEqualityReifFalseExcludesValue(t *testing.T) {
	s := NewSpace()
	x := s.NewIntVar("x", NewDomainRange(0, 2))
	b := s.NewBoolVar("b")
	s.Post(EqualityReif{X: x, K: 1, B: b})
	if err := s.Assign(b.IntVar, boolFalse); err != nil {
		t.Fatal(err)
	}
	if err := s.Propagate(); err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	if got := s.Domain(x); got.Contains(1) {
		t.Errorf("x = %v, should not contain 1", got)
	}
}

func TestMembershipReif(t *testing.T) {
	s := NewSpace()
	x := s.NewIntVar("x", NewDomainRange(0, 10))
	b := s.NewBoolVar("b")
	s.Post(MembershipReif{X: x, Lo: 4, Hi: 6, B: b})
	if err := s.Assign(b.IntVar, boolTrue); err != nil {
		t.Fatal(err)
	}
	if err := s.Propagate(); err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	want := Domain{4, 5, 6}
	if got := s.Domain(x); !got.Equal(want) {
		t.Errorf("x = %v, want %v", got, want)
	}
}

func TestMembershipReifNoneIn(t *testing.T) {
	s := NewSpace()
	x := s.NewIntVar("x", NewDomainRange(0, 3))
	b := s.NewBoolVar("b")
	s.Post(MembershipReif{X: x, Lo: 10, Hi: 20, B: b})
	if err := s.Propagate(); err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	if got := s.Domain(b.IntVar); !got.Equal(Domain{boolFalse}) {
		t.Errorf("b = %v, want {0} since x can never land in [10,20]", got)
	}
}

func TestOrReifForcedTrueWithOneFalse(t *testing.T) {
	s := NewSpace()
	a := s.NewBoolVar("a")
	b := s.NewBoolVar("b")
	c := s.NewBoolVar("c")
	s.Post(OrReif{A: a, B: b, C: c})
	if err := s.Assign(a.IntVar, boolFalse); err != nil {
		t.Fatal(err)
	}
	if err := s.Assign(c.IntVar, boolTrue); err != nil {
		t.Fatal(err)
	}
	if err := s.Propagate(); err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	if got := s.Domain(b.IntVar); !got.Equal(Domain{boolTrue}) {
		t.Errorf("b = %v, want {1} since a is false and c must be true", got)
	}
}

func TestImpliesForcesConsequent(t *testing.T) {
	s := NewSpace()
	a := s.NewBoolVar("a")
	b := s.NewBoolVar("b")
	s.Post(Implies{A: a, B: b})
	if err := s.Assign(a.IntVar, boolTrue); err != nil {
		t.Fatal(err)
	}
	if err := s.Propagate(); err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	if got := s.Domain(b.IntVar); !got.Equal(Domain{boolTrue}) {
		t.Errorf("b = %v, want {1}", got)
	}
}

func TestImpliesContrapositive(t *testing.T) {
	s := NewSpace()
	a := s.NewBoolVar("a")
	b := s.NewBoolVar("b")
	s.Post(Implies{A: a, B: b})
	if err := s.Assign(b.IntVar, boolFalse); err != nil {
		t.Fatal(err)
	}
	if err := s.Propagate(); err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	if got := s.Domain(a.IntVar); !got.Equal(Domain{boolFalse}) {
		t.Errorf("a = %v, want {0}", got)
	}
}

func TestLinearEqForwardAndBackward(t *testing.T) {
	s := NewSpace()
	x := s.NewIntVar("x", NewDomainRange(0, 5))
	y := s.NewIntVar("y", NewDomainRange(0, 5))
	r := s.NewIntVar("r", NewDomainRange(0, 100))
	s.Post(LinearEq{Weights: []int{2, 3}, Vars: []IntVar{x, y}, Const: 1, Result: r})

	if err := s.Assign(x, 2); err != nil {
		t.Fatal(err)
	}
	if err := s.Assign(y, 1); err != nil {
		t.Fatal(err)
	}
	if err := s.Propagate(); err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	// r = 1 + 2*2 + 3*1 = 8
	if got := s.Domain(r); !got.Equal(Domain{8}) {
		t.Errorf("r = %v, want {8}", got)
	}
}

func TestLinearEqBackpropagatesToVariable(t *testing.T) {
	s := NewSpace()
	x := s.NewIntVar("x", NewDomainRange(0, 10))
	r := s.NewIntVar("r", NewDomainValues(7))
	s.Post(LinearEq{Weights: []int{1}, Vars: []IntVar{x}, Const: 0, Result: r})
	if err := s.Propagate(); err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	if got := s.Domain(x); !got.Equal(Domain{7}) {
		t.Errorf("x = %v, want {7}", got)
	}
}

func TestLinearEqNegativeWeightBackpropagation(t *testing.T) {
	s := NewSpace()
	x := s.NewIntVar("x", NewDomainRange(-5, 5))
	r := s.NewIntVar("r", NewDomainValues(3))
	// r = -x  =>  x = -3
	s.Post(LinearEq{Weights: []int{-1}, Vars: []IntVar{x}, Const: 0, Result: r})
	if err := s.Propagate(); err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	if got := s.Domain(x); !got.Equal(Domain{-3}) {
		t.Errorf("x = %v, want {-3}", got)
	}
}

func TestLinearEqInfeasible(t *testing.T) {
	s := NewSpace()
	x := s.NewIntVar("x", NewDomainValues(1))
	r := s.NewIntVar("r", NewDomainValues(99))
	s.Post(LinearEq{Weights: []int{1}, Vars: []IntVar{x}, Const: 0, Result: r})
	if err := s.Propagate(); err != ErrInfeasible {
		t.Fatalf("Propagate err = %v, want ErrInfeasible", err)
	}
}

func TestLinearLessReif(t *testing.T) {
	s := NewSpace()
	x := s.NewIntVar("x", NewDomainRange(0, 10))
	b := s.NewBoolVar("b")
	// b <=> x - 5 < 0  <=>  x < 5
	s.Post(LinearLessReif{Weights: []int{1}, Vars: []IntVar{x}, Const: -5, B: b})
	if err := s.Assign(b.IntVar, boolTrue); err != nil {
		t.Fatal(err)
	}
	if err := s.Propagate(); err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	want := Domain{0, 1, 2, 3, 4}
	if got := s.Domain(x); !got.Equal(want) {
		t.Errorf("x = %v, want %v", got, want)
	}
}

func TestFloorCeilDiv(t *testing.T) {
	cases := []struct {
		a, b, floor, ceil int
	}{
		{7, 2, 3, 4},
		{-7, 2, -4, -3},
		{7, -2, -4, -3},
		{-7, -2, 3, 4},
		{6, 2, 3, 3},
	}
	for _, c := range cases {
		if got := floorDiv(c.a, c.b); got != c.floor {
			t.Errorf("floorDiv(%d,%d) = %d, want %d", c.a, c.b, got, c.floor)
		}
		if got := ceilDiv(c.a, c.b); got != c.ceil {
			t.Errorf("ceilDiv(%d,%d) = %d, want %d", c.a, c.b, got, c.ceil)
		}
	}
}
