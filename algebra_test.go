package gotrig_test

import (
	"testing"

	gotrig "github.com/njchilds90/gotrig"
)

// ============================================================
// expansion and canonical forms
// ============================================================

func TestExpand(t *testing.T) {
	x := gotrig.S("x")
	y := gotrig.S("y")

	got := gotrig.Expand(gotrig.PowOf(gotrig.AddOf(x, gotrig.N(1)), gotrig.N(2)))
	want := gotrig.AddOf(
		gotrig.PowOf(x, gotrig.N(2)),
		gotrig.MulOf(gotrig.N(2), x),
		gotrig.N(1))
	eq(t, got, want)

	got = gotrig.Expand(gotrig.MulOf(gotrig.AddOf(x, y), gotrig.AddOf(x, gotrig.Neg(y))))
	want = gotrig.AddOf(
		gotrig.PowOf(x, gotrig.N(2)),
		gotrig.Neg(gotrig.PowOf(y, gotrig.N(2))))
	eq(t, got, want)
}

func TestCanonicalize(t *testing.T) {
	x := gotrig.S("x")
	got := gotrig.Canonicalize(gotrig.MulOf(
		gotrig.AddOf(x, gotrig.N(1)),
		gotrig.AddOf(x, gotrig.N(-1))))
	want := gotrig.AddOf(gotrig.PowOf(x, gotrig.N(2)), gotrig.N(-1))
	eq(t, got, want)
}

// ============================================================
// polynomial views
// ============================================================

func TestFreeSymbols(t *testing.T) {
	x := gotrig.S("x")
	y := gotrig.S("y")
	syms := gotrig.FreeSymbols(gotrig.SinOf(gotrig.AddOf(x, gotrig.MulOf(y, gotrig.Pi))))
	if len(syms) != 2 {
		t.Fatalf("want 2 free symbols, got %d", len(syms))
	}
	for _, name := range []string{"x", "y"} {
		if _, ok := syms[name]; !ok {
			t.Errorf("missing free symbol %q", name)
		}
	}

	a2 := gotrig.Atan2Of(gotrig.S("b"), gotrig.S("a"))
	syms = gotrig.FreeSymbols(a2)
	if len(syms) != 2 {
		t.Errorf("want 2 free symbols in atan2, got %d", len(syms))
	}
}

func TestDegree(t *testing.T) {
	x := gotrig.S("x")
	p := gotrig.AddOf(gotrig.PowOf(x, gotrig.N(3)), x, gotrig.N(5))
	if d := gotrig.Degree(p, "x"); d != 3 {
		t.Errorf("want degree 3, got %d", d)
	}
	if d := gotrig.Degree(p, "y"); d != 0 {
		t.Errorf("want degree 0 in y, got %d", d)
	}
}

func TestPolyCoeffs(t *testing.T) {
	x := gotrig.S("x")
	y := gotrig.S("y")
	p := gotrig.AddOf(
		gotrig.MulOf(gotrig.N(2), gotrig.PowOf(x, gotrig.N(2))),
		gotrig.MulOf(gotrig.N(3), x, y),
		gotrig.N(7))
	coeffs := gotrig.PolyCoeffs(p, "x")
	if len(coeffs) != 3 {
		t.Fatalf("want 3 coefficients, got %d", len(coeffs))
	}
	eq(t, coeffs[2], gotrig.N(2))
	eq(t, coeffs[1], gotrig.MulOf(gotrig.N(3), y))
	eq(t, coeffs[0], gotrig.N(7))
}

func TestCollect(t *testing.T) {
	x := gotrig.S("x")
	y := gotrig.S("y")
	p := gotrig.AddOf(
		gotrig.MulOf(x, y),
		x,
		gotrig.MulOf(gotrig.N(2), gotrig.PowOf(x, gotrig.N(2))))
	got := gotrig.Collect(p, "x")
	want := gotrig.AddOf(
		gotrig.MulOf(gotrig.N(2), gotrig.PowOf(x, gotrig.N(2))),
		gotrig.MulOf(gotrig.AddOf(y, gotrig.N(1)), x))
	eq(t, got, want)
}

func TestCancel(t *testing.T) {
	x := gotrig.S("x")

	got := gotrig.Cancel(gotrig.MulOf(gotrig.N(4), x), gotrig.MulOf(gotrig.N(2), x))
	eq(t, got, gotrig.N(2))

	got = gotrig.Cancel(gotrig.N(6), gotrig.N(4))
	eq(t, got, gotrig.F(3, 2))

	got = gotrig.Cancel(gotrig.SinOf(x), gotrig.N(1))
	eq(t, got, gotrig.SinOf(x))
}

func TestCancelZeroDenominator(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("want panic on zero denominator")
		}
	}()
	gotrig.Cancel(gotrig.N(1), gotrig.N(0))
}

// ============================================================
// Pythagorean identities
// ============================================================

func TestTrigSimplifyPythagorean(t *testing.T) {
	x := gotrig.S("x")
	sin2 := gotrig.PowOf(gotrig.SinOf(x), gotrig.N(2))
	cos2 := gotrig.PowOf(gotrig.CosOf(x), gotrig.N(2))

	eq(t, gotrig.TrigSimplify(gotrig.AddOf(sin2, cos2)), gotrig.N(1))

	scaled := gotrig.AddOf(
		gotrig.MulOf(gotrig.N(3), sin2),
		gotrig.MulOf(gotrig.N(3), cos2),
		gotrig.S("y"))
	eq(t, gotrig.TrigSimplify(scaled), gotrig.AddOf(gotrig.S("y"), gotrig.N(3)))
}

func TestTrigSimplifyReciprocalIdentities(t *testing.T) {
	x := gotrig.S("x")
	sec2 := gotrig.PowOf(gotrig.SecOf(x), gotrig.N(2))
	tan2 := gotrig.PowOf(gotrig.TanOf(x), gotrig.N(2))
	eq(t, gotrig.TrigSimplify(gotrig.AddOf(sec2, gotrig.Neg(tan2))), gotrig.N(1))

	csc2 := gotrig.PowOf(gotrig.CscOf(x), gotrig.N(2))
	cot2 := gotrig.PowOf(gotrig.CotOf(x), gotrig.N(2))
	eq(t, gotrig.TrigSimplify(gotrig.AddOf(csc2, gotrig.Neg(cot2))), gotrig.N(1))
}

func TestTrigSimplifyNoFalsePositives(t *testing.T) {
	x := gotrig.S("x")
	y := gotrig.S("y")
	// different arguments must not collapse
	mixed := gotrig.AddOf(
		gotrig.PowOf(gotrig.SinOf(x), gotrig.N(2)),
		gotrig.PowOf(gotrig.CosOf(y), gotrig.N(2)))
	eq(t, gotrig.TrigSimplify(mixed), mixed)

	// unequal coefficients must not collapse
	uneven := gotrig.AddOf(
		gotrig.MulOf(gotrig.N(2), gotrig.PowOf(gotrig.SinOf(x), gotrig.N(2))),
		gotrig.PowOf(gotrig.CosOf(x), gotrig.N(2)))
	eq(t, gotrig.TrigSimplify(uneven), uneven)
}

func TestDeepSimplify(t *testing.T) {
	x := gotrig.S("x")
	e := gotrig.AddOf(
		gotrig.PowOf(gotrig.SinOf(x), gotrig.N(2)),
		gotrig.PowOf(gotrig.CosOf(x), gotrig.N(2)),
		x)
	eq(t, gotrig.DeepSimplify(e), gotrig.AddOf(x, gotrig.N(1)))
}

// ============================================================
// higher derivatives
// ============================================================

func TestDiffN(t *testing.T) {
	x := gotrig.S("x")
	eq(t, gotrig.Diff2(gotrig.SinOf(x), "x"), gotrig.Neg(gotrig.SinOf(x)))
	eq(t, gotrig.DiffN(gotrig.SinOf(x), "x", 4), gotrig.SinOf(x))
	eq(t, gotrig.DiffN(gotrig.CosOf(x), "x", 0), gotrig.CosOf(x))
}
