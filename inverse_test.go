package gotrig_test

import (
	"testing"

	gotrig "github.com/njchilds90/gotrig"
)

// ============================================================
// principal values
// ============================================================

func TestAsinValues(t *testing.T) {
	eq(t, gotrig.AsinOf(gotrig.N(0)), gotrig.N(0))
	eq(t, gotrig.AsinOf(gotrig.N(1)), piTimes(1, 2))
	eq(t, gotrig.AsinOf(gotrig.N(-1)), piTimes(-1, 2))
	eq(t, gotrig.AsinOf(gotrig.F(1, 2)), piTimes(1, 6))
	eq(t, gotrig.AsinOf(gotrig.F(-1, 2)), piTimes(-1, 6))

	halfSqrt2 := gotrig.MulOf(gotrig.F(1, 2), gotrig.SqrtOf(gotrig.N(2)))
	eq(t, gotrig.AsinOf(halfSqrt2), piTimes(1, 4))

	halfSqrt3 := gotrig.MulOf(gotrig.F(1, 2), gotrig.SqrtOf(gotrig.N(3)))
	eq(t, gotrig.AsinOf(halfSqrt3), piTimes(1, 3))
}

func TestAcosValues(t *testing.T) {
	eq(t, gotrig.AcosOf(gotrig.N(0)), piTimes(1, 2))
	eq(t, gotrig.AcosOf(gotrig.N(1)), gotrig.N(0))
	eq(t, gotrig.AcosOf(gotrig.N(-1)), gotrig.Pi)
	eq(t, gotrig.AcosOf(gotrig.F(1, 2)), piTimes(1, 3))
	eq(t, gotrig.AcosOf(gotrig.F(-1, 2)), piTimes(2, 3))

	halfSqrt2 := gotrig.MulOf(gotrig.F(1, 2), gotrig.SqrtOf(gotrig.N(2)))
	eq(t, gotrig.AcosOf(halfSqrt2), piTimes(1, 4))
}

func TestAtanValues(t *testing.T) {
	eq(t, gotrig.AtanOf(gotrig.N(0)), gotrig.N(0))
	eq(t, gotrig.AtanOf(gotrig.N(1)), piTimes(1, 4))
	eq(t, gotrig.AtanOf(gotrig.N(-1)), piTimes(-1, 4))
	eq(t, gotrig.AtanOf(gotrig.SqrtOf(gotrig.N(3))), piTimes(1, 3))
	eq(t, gotrig.AtanOf(gotrig.Infinity), piTimes(1, 2))
	eq(t, gotrig.AtanOf(gotrig.NegativeInfinity), piTimes(-1, 2))
}

func TestAcotValues(t *testing.T) {
	eq(t, gotrig.AcotOf(gotrig.N(0)), piTimes(1, 2))
	eq(t, gotrig.AcotOf(gotrig.N(1)), piTimes(1, 4))
	eq(t, gotrig.AcotOf(gotrig.N(-1)), piTimes(-1, 4))
	eq(t, gotrig.AcotOf(gotrig.Infinity), gotrig.N(0))
}

func TestAsecAcscValues(t *testing.T) {
	eq(t, gotrig.AsecOf(gotrig.N(1)), gotrig.N(0))
	eq(t, gotrig.AsecOf(gotrig.N(-1)), gotrig.Pi)
	eq(t, gotrig.AsecOf(gotrig.N(2)), piTimes(1, 3))
	eq(t, gotrig.AcscOf(gotrig.N(1)), piTimes(1, 2))
	eq(t, gotrig.AcscOf(gotrig.N(2)), piTimes(1, 6))
	eq(t, gotrig.AcscOf(gotrig.N(-2)), piTimes(-1, 6))

	if got := gotrig.AsecOf(gotrig.N(0)); got != gotrig.ComplexInfinity {
		t.Errorf("want zoo, got %s", got.String())
	}
	if got := gotrig.AcscOf(gotrig.N(0)); got != gotrig.ComplexInfinity {
		t.Errorf("want zoo, got %s", got.String())
	}
}

// ============================================================
// branch folding of inverse-of-direct compositions
// ============================================================

func TestAsinOfSinFolds(t *testing.T) {
	// already inside the principal branch
	eq(t, gotrig.AsinOf(gotrig.SinOf(gotrig.F(1, 3))), gotrig.F(1, 3))

	// sin(3*pi/4) reduces to sqrt(2)/2 first, then the table answers
	eq(t, gotrig.AsinOf(gotrig.SinOf(piTimes(3, 4))), piTimes(1, 4))

	// a large angle folds back into [-pi/2, pi/2] exactly
	eq(t, gotrig.AsinOf(gotrig.SinOf(gotrig.N(10))),
		gotrig.AddOf(gotrig.MulOf(gotrig.N(3), gotrig.Pi), gotrig.N(-10)))
}

func TestAcosOfCosFolds(t *testing.T) {
	eq(t, gotrig.AcosOf(gotrig.CosOf(gotrig.F(1, 2))), gotrig.F(1, 2))
	eq(t, gotrig.AcosOf(gotrig.CosOf(piTimes(9, 4))), piTimes(1, 4))
}

func TestAtanOfTanFolds(t *testing.T) {
	eq(t, gotrig.AtanOf(gotrig.TanOf(gotrig.F(1, 4))), gotrig.F(1, 4))
	eq(t, gotrig.AtanOf(gotrig.TanOf(piTimes(5, 6))), piTimes(-1, 6))

	// symbolic arguments stay put
	inner := gotrig.TanOf(gotrig.S("x"))
	if _, ok := gotrig.AtanOf(inner).(*gotrig.Trig); !ok {
		t.Errorf("atan(tan(x)) should stay symbolic, got %s", gotrig.AtanOf(inner).String())
	}
}

// ============================================================
// atan2
// ============================================================

func TestAtan2Quadrants(t *testing.T) {
	eq(t, gotrig.Atan2Of(gotrig.N(1), gotrig.N(1)), piTimes(1, 4))
	eq(t, gotrig.Atan2Of(gotrig.N(1), gotrig.N(-1)), piTimes(3, 4))
	eq(t, gotrig.Atan2Of(gotrig.N(-1), gotrig.N(-1)), piTimes(-3, 4))
	eq(t, gotrig.Atan2Of(gotrig.N(-1), gotrig.N(1)), piTimes(-1, 4))
}

func TestAtan2Axes(t *testing.T) {
	eq(t, gotrig.Atan2Of(gotrig.N(0), gotrig.N(2)), gotrig.N(0))
	eq(t, gotrig.Atan2Of(gotrig.N(0), gotrig.N(-2)), gotrig.Pi)
	eq(t, gotrig.Atan2Of(gotrig.N(2), gotrig.N(0)), piTimes(1, 2))
	eq(t, gotrig.Atan2Of(gotrig.N(-2), gotrig.N(0)), piTimes(-1, 2))

	if got := gotrig.Atan2Of(gotrig.N(0), gotrig.N(0)); got != gotrig.NaN {
		t.Errorf("want nan, got %s", got.String())
	}
}

func TestAtan2Infinities(t *testing.T) {
	eq(t, gotrig.Atan2Of(gotrig.N(1), gotrig.Infinity), gotrig.N(0))
	eq(t, gotrig.Atan2Of(gotrig.N(1), gotrig.NegativeInfinity), gotrig.Pi)
	eq(t, gotrig.Atan2Of(gotrig.N(-1), gotrig.NegativeInfinity), gotrig.Neg(gotrig.Pi))
}

func TestAtan2Symbolic(t *testing.T) {
	y := gotrig.SymWith("y", gotrig.Assumptions{Real: gotrig.TriTrue})
	xPos := gotrig.SymWith("x", gotrig.Assumptions{Positive: gotrig.TriTrue})
	eq(t, gotrig.Atan2Of(y, xPos), gotrig.AtanOf(gotrig.Div(y, xPos)))

	// no sign information: stays a two-argument node
	plain := gotrig.Atan2Of(gotrig.S("b"), gotrig.S("a"))
	tr, ok := plain.(*gotrig.Trig)
	if !ok || tr.ID() != gotrig.Atan2 {
		t.Fatalf("want symbolic atan2, got %s", plain.String())
	}
	if len(tr.Args()) != 2 {
		t.Errorf("want 2 args, got %d", len(tr.Args()))
	}
}

// ============================================================
// mirror symmetries
// ============================================================

func TestInverseMirrors(t *testing.T) {
	x := gotrig.S("x")
	eq(t, gotrig.AsinOf(gotrig.Neg(x)), gotrig.Neg(gotrig.AsinOf(x)))
	eq(t, gotrig.AtanOf(gotrig.Neg(x)), gotrig.Neg(gotrig.AtanOf(x)))
	eq(t, gotrig.AcscOf(gotrig.Neg(x)), gotrig.Neg(gotrig.AcscOf(x)))
}
