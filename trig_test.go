package gotrig_test

import (
	"math"
	"testing"

	gotrig "github.com/njchilds90/gotrig"
)

// ============================================================
// helpers
// ============================================================

func eq(t *testing.T, got, want gotrig.Expr) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want.String(), got.String())
	}
}

func approx(t *testing.T, e gotrig.Expr, want float64) {
	t.Helper()
	v, ok := e.Eval()
	if !ok {
		t.Fatalf("could not evaluate %s numerically", e.String())
	}
	if math.Abs(v.Float64()-want) > 1e-9 {
		t.Errorf("want %v, got %v (from %s)", want, v.Float64(), e.String())
	}
}

func piTimes(p, q int64) gotrig.Expr {
	return gotrig.MulOf(gotrig.F(p, q), gotrig.Pi)
}

// ============================================================
// exact values at table angles
// ============================================================

func TestSinExactValues(t *testing.T) {
	eq(t, gotrig.SinOf(gotrig.N(0)), gotrig.N(0))
	eq(t, gotrig.SinOf(piTimes(1, 6)), gotrig.F(1, 2))
	eq(t, gotrig.SinOf(piTimes(1, 4)), gotrig.MulOf(gotrig.F(1, 2), gotrig.SqrtOf(gotrig.N(2))))
	eq(t, gotrig.SinOf(piTimes(1, 3)), gotrig.MulOf(gotrig.F(1, 2), gotrig.SqrtOf(gotrig.N(3))))
	eq(t, gotrig.SinOf(piTimes(1, 2)), gotrig.N(1))
	eq(t, gotrig.SinOf(gotrig.Pi), gotrig.N(0))
	eq(t, gotrig.SinOf(piTimes(3, 2)), gotrig.N(-1))
	eq(t, gotrig.SinOf(piTimes(5, 6)), gotrig.F(1, 2))
}

func TestCosExactValues(t *testing.T) {
	eq(t, gotrig.CosOf(gotrig.N(0)), gotrig.N(1))
	eq(t, gotrig.CosOf(piTimes(1, 6)), gotrig.MulOf(gotrig.F(1, 2), gotrig.SqrtOf(gotrig.N(3))))
	eq(t, gotrig.CosOf(piTimes(1, 4)), gotrig.MulOf(gotrig.F(1, 2), gotrig.SqrtOf(gotrig.N(2))))
	eq(t, gotrig.CosOf(piTimes(1, 3)), gotrig.F(1, 2))
	eq(t, gotrig.CosOf(piTimes(1, 2)), gotrig.N(0))
	eq(t, gotrig.CosOf(gotrig.Pi), gotrig.N(-1))
	eq(t, gotrig.CosOf(piTimes(2, 3)), gotrig.F(-1, 2))
}

func TestTanExactValues(t *testing.T) {
	eq(t, gotrig.TanOf(gotrig.N(0)), gotrig.N(0))
	eq(t, gotrig.TanOf(piTimes(1, 4)), gotrig.N(1))
	eq(t, gotrig.TanOf(piTimes(3, 4)), gotrig.N(-1))
	eq(t, gotrig.TanOf(gotrig.Pi), gotrig.N(0))
	approx(t, gotrig.TanOf(piTimes(1, 6)), math.Tan(math.Pi/6))
	approx(t, gotrig.TanOf(piTimes(1, 3)), math.Tan(math.Pi/3))

	if got := gotrig.TanOf(piTimes(1, 2)); got != gotrig.ComplexInfinity {
		t.Errorf("want zoo, got %s", got.String())
	}
}

func TestCotExactValues(t *testing.T) {
	if got := gotrig.CotOf(gotrig.N(0)); got != gotrig.ComplexInfinity {
		t.Errorf("want zoo, got %s", got.String())
	}
	eq(t, gotrig.CotOf(piTimes(1, 4)), gotrig.N(1))
	eq(t, gotrig.CotOf(piTimes(1, 2)), gotrig.N(0))
	approx(t, gotrig.CotOf(piTimes(1, 6)), 1/math.Tan(math.Pi/6))
}

func TestSecCscExactValues(t *testing.T) {
	eq(t, gotrig.SecOf(gotrig.N(0)), gotrig.N(1))
	eq(t, gotrig.SecOf(piTimes(1, 3)), gotrig.N(2))
	eq(t, gotrig.SecOf(gotrig.Pi), gotrig.N(-1))
	eq(t, gotrig.CscOf(piTimes(1, 6)), gotrig.N(2))
	eq(t, gotrig.CscOf(piTimes(1, 2)), gotrig.N(1))
	if got := gotrig.CscOf(gotrig.N(0)); got != gotrig.ComplexInfinity {
		t.Errorf("want zoo, got %s", got.String())
	}
	if got := gotrig.SecOf(piTimes(1, 2)); got != gotrig.ComplexInfinity {
		t.Errorf("want zoo, got %s", got.String())
	}
}

func TestSincExactValues(t *testing.T) {
	eq(t, gotrig.SincOf(gotrig.N(0)), gotrig.N(1))
	eq(t, gotrig.SincOf(gotrig.Pi), gotrig.N(0))
	eq(t, gotrig.SincOf(piTimes(2, 1)), gotrig.N(0))
	approx(t, gotrig.SincOf(piTimes(1, 2)), 2/math.Pi)
}

// ============================================================
// parity and angle shifts
// ============================================================

func TestParity(t *testing.T) {
	x := gotrig.S("x")
	eq(t, gotrig.SinOf(gotrig.Neg(x)), gotrig.Neg(gotrig.SinOf(x)))
	eq(t, gotrig.CosOf(gotrig.Neg(x)), gotrig.CosOf(x))
	eq(t, gotrig.TanOf(gotrig.Neg(x)), gotrig.Neg(gotrig.TanOf(x)))
	eq(t, gotrig.CotOf(gotrig.Neg(x)), gotrig.Neg(gotrig.CotOf(x)))
	eq(t, gotrig.SecOf(gotrig.Neg(x)), gotrig.SecOf(x))
	eq(t, gotrig.CscOf(gotrig.Neg(x)), gotrig.Neg(gotrig.CscOf(x)))
	eq(t, gotrig.SincOf(gotrig.Neg(x)), gotrig.SincOf(x))
}

func TestPeriodicityShifts(t *testing.T) {
	x := gotrig.S("x")
	eq(t, gotrig.SinOf(gotrig.AddOf(x, piTimes(2, 1))), gotrig.SinOf(x))
	eq(t, gotrig.CosOf(gotrig.AddOf(x, piTimes(2, 1))), gotrig.CosOf(x))
	eq(t, gotrig.SinOf(gotrig.AddOf(x, gotrig.Pi)), gotrig.Neg(gotrig.SinOf(x)))
	eq(t, gotrig.CosOf(gotrig.AddOf(x, gotrig.Pi)), gotrig.Neg(gotrig.CosOf(x)))
	eq(t, gotrig.SinOf(gotrig.AddOf(x, piTimes(1, 2))), gotrig.CosOf(x))
}

func TestIntegerSymbolMultiples(t *testing.T) {
	n := gotrig.IntSym("n")
	eq(t, gotrig.SinOf(gotrig.MulOf(n, gotrig.Pi)), gotrig.N(0))
	eq(t, gotrig.CosOf(gotrig.MulOf(n, gotrig.Pi)), gotrig.PowOf(gotrig.N(-1), n))
	eq(t, gotrig.TanOf(gotrig.MulOf(n, gotrig.Pi)), gotrig.N(0))
}

// ============================================================
// special values
// ============================================================

func TestSpecialArguments(t *testing.T) {
	eq(t, gotrig.SinOf(gotrig.Infinity), gotrig.BoundsOf(gotrig.N(-1), gotrig.N(1)))
	eq(t, gotrig.CosOf(gotrig.NegativeInfinity), gotrig.BoundsOf(gotrig.N(-1), gotrig.N(1)))
	if got := gotrig.SinOf(gotrig.ComplexInfinity); got != gotrig.NaN {
		t.Errorf("want nan, got %s", got.String())
	}
	if got := gotrig.CosOf(gotrig.NaN); got != gotrig.NaN {
		t.Errorf("want nan, got %s", got.String())
	}
}

// ============================================================
// imaginary axis
// ============================================================

func TestImaginaryAxis(t *testing.T) {
	x := gotrig.S("x")
	ix := gotrig.MulOf(gotrig.ImaginaryUnit, x)
	eq(t, gotrig.SinOf(ix), gotrig.MulOf(gotrig.ImaginaryUnit, gotrig.SinhOf(x)))
	eq(t, gotrig.CosOf(ix), gotrig.CoshOf(x))
}

// ============================================================
// composition with inverses
// ============================================================

func TestDirectOfInverse(t *testing.T) {
	x := gotrig.S("x")
	eq(t, gotrig.SinOf(gotrig.AsinOf(x)), x)
	eq(t, gotrig.CosOf(gotrig.AcosOf(gotrig.F(1, 3))), gotrig.F(1, 3))
	eq(t, gotrig.SinOf(gotrig.AcosOf(x)),
		gotrig.SqrtOf(gotrig.AddOf(gotrig.N(1), gotrig.Neg(gotrig.PowOf(x, gotrig.N(2))))))
	eq(t, gotrig.SinOf(gotrig.AtanOf(x)),
		gotrig.Div(x, gotrig.SqrtOf(gotrig.AddOf(gotrig.N(1), gotrig.PowOf(x, gotrig.N(2))))))
	eq(t, gotrig.SinOf(gotrig.AcscOf(x)), gotrig.PowOf(x, gotrig.N(-1)))
	eq(t, gotrig.SecOf(gotrig.AsecOf(x)), x)
	eq(t, gotrig.CscOf(gotrig.AcscOf(x)), x)
}

// ============================================================
// derivatives
// ============================================================

func TestDerivatives(t *testing.T) {
	x := gotrig.S("x")
	eq(t, gotrig.Diff(gotrig.SinOf(x), "x"), gotrig.CosOf(x))
	eq(t, gotrig.Diff(gotrig.CosOf(x), "x"), gotrig.Neg(gotrig.SinOf(x)))
	eq(t, gotrig.Diff(gotrig.TanOf(x), "x"),
		gotrig.AddOf(gotrig.PowOf(gotrig.TanOf(x), gotrig.N(2)), gotrig.N(1)))
	eq(t, gotrig.Diff(gotrig.CotOf(x), "x"),
		gotrig.AddOf(gotrig.Neg(gotrig.PowOf(gotrig.CotOf(x), gotrig.N(2))), gotrig.N(-1)))
	eq(t, gotrig.Diff(gotrig.SecOf(x), "x"),
		gotrig.MulOf(gotrig.TanOf(x), gotrig.SecOf(x)))
	eq(t, gotrig.Diff(gotrig.CscOf(x), "x"),
		gotrig.Neg(gotrig.MulOf(gotrig.CotOf(x), gotrig.CscOf(x))))
}

func TestDerivativeChainRule(t *testing.T) {
	x := gotrig.S("x")
	twoX := gotrig.MulOf(gotrig.N(2), x)
	eq(t, gotrig.Diff(gotrig.SinOf(twoX), "x"),
		gotrig.MulOf(gotrig.N(2), gotrig.CosOf(twoX)))

	sq := gotrig.PowOf(x, gotrig.N(2))
	eq(t, gotrig.Diff(gotrig.CosOf(sq), "x"),
		gotrig.MulOf(gotrig.N(-2), x, gotrig.SinOf(sq)))
}

func TestInverseDerivatives(t *testing.T) {
	x := gotrig.S("x")
	oneMinusSq := gotrig.AddOf(gotrig.N(1), gotrig.Neg(gotrig.PowOf(x, gotrig.N(2))))
	eq(t, gotrig.Diff(gotrig.AsinOf(x), "x"), gotrig.PowOf(oneMinusSq, gotrig.F(-1, 2)))
	eq(t, gotrig.Diff(gotrig.AcosOf(x), "x"), gotrig.Neg(gotrig.PowOf(oneMinusSq, gotrig.F(-1, 2))))

	onePlusSq := gotrig.AddOf(gotrig.N(1), gotrig.PowOf(x, gotrig.N(2)))
	eq(t, gotrig.Diff(gotrig.AtanOf(x), "x"), gotrig.PowOf(onePlusSq, gotrig.N(-1)))
	eq(t, gotrig.Diff(gotrig.AcotOf(x), "x"), gotrig.Neg(gotrig.PowOf(onePlusSq, gotrig.N(-1))))
}

func TestAtan2PartialDerivatives(t *testing.T) {
	y := gotrig.S("y")
	x := gotrig.S("x")
	den := gotrig.AddOf(gotrig.PowOf(x, gotrig.N(2)), gotrig.PowOf(y, gotrig.N(2)))
	a := gotrig.Atan2Of(y, x)
	eq(t, gotrig.Diff(a, "y"), gotrig.Div(x, den))
	eq(t, gotrig.Diff(a, "x"), gotrig.Neg(gotrig.Div(y, den)))
}

// ============================================================
// numeric evaluation
// ============================================================

func TestFloatEval(t *testing.T) {
	approx(t, gotrig.SinOf(gotrig.F(1, 3)), math.Sin(1.0/3.0))
	approx(t, gotrig.TanOf(gotrig.N(2)), math.Tan(2))
	approx(t, gotrig.AtanOf(gotrig.N(5)), math.Atan(5))
	approx(t, gotrig.SincOf(gotrig.N(3)), math.Sin(3)/3)

	seventh := gotrig.CosOf(piTimes(1, 7))
	if _, ok := seventh.(*gotrig.Trig); !ok {
		t.Fatalf("expected cos(pi/7) to stay symbolic, got %s", seventh.String())
	}
	approx(t, seventh, math.Cos(math.Pi/7))
}

func TestFloatEvalDomainGuards(t *testing.T) {
	if _, ok := gotrig.AsinOf(gotrig.N(2)).(*gotrig.Trig); !ok {
		t.Fatal("expected asin(2) to stay symbolic")
	}
	if _, evalOK := gotrig.AsinOf(gotrig.N(2)).Eval(); evalOK {
		t.Error("asin(2) should not evaluate to a real float")
	}
	if _, evalOK := gotrig.AsecOf(gotrig.F(1, 2)).Eval(); evalOK {
		t.Error("asec(1/2) should not evaluate to a real float")
	}
}

// ============================================================
// the generic entry point
// ============================================================

func TestEvaluate(t *testing.T) {
	e, ok := gotrig.Evaluate(gotrig.Sin, piTimes(1, 6))
	if !ok {
		t.Fatalf("sin(pi/6) should evaluate, got %s", e.String())
	}
	eq(t, e, gotrig.F(1, 2))

	e, ok = gotrig.Evaluate(gotrig.Cos, piTimes(1, 7))
	if ok {
		t.Fatalf("cos(pi/7) should stay unevaluated, got %s", e.String())
	}
	if _, isTrig := e.(*gotrig.Trig); !isTrig {
		t.Errorf("expected a symbolic node, got %s", e.String())
	}
}

func TestTrigIDByName(t *testing.T) {
	id, ok := gotrig.TrigIDByName("acsc")
	if !ok || id != gotrig.Acsc {
		t.Errorf("want acsc id, got %v (ok=%v)", id, ok)
	}
	if _, ok := gotrig.TrigIDByName("sinh"); ok {
		t.Error("sinh is not a circular function id")
	}
}
