package gotrig

import "sync"

// ============================================================
// Literal value tables for the inverse functions
// ============================================================

// The tables map closed radical forms to their principal angles. Keys
// are stored under both the canonical and the expanded string form, so
// lookups succeed for whichever shape evaluation produced.

var (
	asinTabOnce sync.Once
	asinTab     map[string]Expr

	atanTabOnce sync.Once
	atanTab     map[string]Expr

	acscTabOnce sync.Once
	acscTab     map[string]Expr
)

func tablePut(m map[string]Expr, key, val Expr) {
	k := key.Simplify()
	m[k.String()] = val
	m[Expand(k).String()] = val
}

func lookupTable(m map[string]Expr, arg Expr) (Expr, bool) {
	if v, ok := m[arg.String()]; ok {
		return v, true
	}
	if v, ok := m[Expand(arg).String()]; ok {
		return v, true
	}
	return nil, false
}

func asinTable() map[string]Expr {
	asinTabOnce.Do(func() {
		m := map[string]Expr{}
		sqrt2 := SqrtOf(N(2))
		sqrt3 := SqrtOf(N(3))
		sqrt5 := SqrtOf(N(5))
		sqrt6 := SqrtOf(N(6))

		tablePut(m, MulOf(F(1, 2), sqrt3), piFrac(1, 3))
		tablePut(m, MulOf(F(1, 2), sqrt2), piFrac(1, 4))
		tablePut(m, PowOf(N(2), F(-1, 2)), piFrac(1, 4))
		tablePut(m, SqrtOf(MulOf(F(1, 8), AddOf(N(5), Neg(sqrt5)))), piFrac(1, 5))
		tablePut(m, MulOf(F(1, 4), sqrt2, SqrtOf(AddOf(N(5), Neg(sqrt5)))), piFrac(1, 5))
		tablePut(m, SqrtOf(MulOf(F(1, 8), AddOf(N(5), sqrt5))), piFrac(2, 5))
		tablePut(m, MulOf(F(1, 4), sqrt2, SqrtOf(AddOf(N(5), sqrt5))), piFrac(2, 5))
		tablePut(m, F(1, 2), piFrac(1, 6))
		tablePut(m, MulOf(F(1, 2), SqrtOf(AddOf(N(2), Neg(sqrt2)))), piFrac(1, 8))
		tablePut(m, SqrtOf(AddOf(F(1, 2), Neg(MulOf(F(1, 4), sqrt2)))), piFrac(1, 8))
		tablePut(m, MulOf(F(1, 2), SqrtOf(AddOf(N(2), sqrt2))), piFrac(3, 8))
		tablePut(m, SqrtOf(AddOf(F(1, 2), MulOf(F(1, 4), sqrt2))), piFrac(3, 8))
		tablePut(m, MulOf(F(1, 4), AddOf(sqrt5, N(-1))), piFrac(1, 10))
		tablePut(m, MulOf(F(1, 4), AddOf(N(1), Neg(sqrt5))), piFrac(-1, 10))
		tablePut(m, MulOf(F(1, 4), AddOf(sqrt5, N(1))), piFrac(3, 10))
		tablePut(m, AddOf(MulOf(F(1, 4), sqrt6), Neg(MulOf(F(1, 4), sqrt2))), piFrac(1, 12))
		tablePut(m, AddOf(MulOf(F(1, 4), sqrt2), Neg(MulOf(F(1, 4), sqrt6))), piFrac(-1, 12))
		tablePut(m, MulOf(AddOf(sqrt3, N(-1)), PowOf(N(8), F(-1, 2))), piFrac(1, 12))
		tablePut(m, MulOf(AddOf(N(1), Neg(sqrt3)), PowOf(N(8), F(-1, 2))), piFrac(-1, 12))
		tablePut(m, AddOf(MulOf(F(1, 4), sqrt6), MulOf(F(1, 4), sqrt2)), piFrac(5, 12))
		tablePut(m, MulOf(AddOf(N(1), sqrt3), PowOf(N(8), F(-1, 2))), piFrac(5, 12))
		asinTab = m
	})
	return asinTab
}

func atanTable() map[string]Expr {
	atanTabOnce.Do(func() {
		m := map[string]Expr{}
		sqrt2 := SqrtOf(N(2))
		sqrt3 := SqrtOf(N(3))
		sqrt5 := SqrtOf(N(5))

		tablePut(m, MulOf(F(1, 3), sqrt3), piFrac(1, 6))
		tablePut(m, PowOf(N(3), F(-1, 2)), piFrac(1, 6))
		tablePut(m, sqrt3, piFrac(1, 3))
		tablePut(m, AddOf(sqrt2, N(-1)), piFrac(1, 8))
		tablePut(m, AddOf(N(1), Neg(sqrt2)), piFrac(-1, 8))
		tablePut(m, AddOf(N(1), sqrt2), piFrac(3, 8))
		tablePut(m, SqrtOf(AddOf(N(5), Neg(MulOf(N(2), sqrt5)))), piFrac(1, 5))
		tablePut(m, SqrtOf(AddOf(N(5), MulOf(N(2), sqrt5))), piFrac(2, 5))
		tablePut(m, SqrtOf(AddOf(N(1), Neg(MulOf(F(2, 5), sqrt5)))), piFrac(1, 10))
		tablePut(m, SqrtOf(AddOf(N(1), MulOf(F(2, 5), sqrt5))), piFrac(3, 10))
		tablePut(m, AddOf(N(2), Neg(sqrt3)), piFrac(1, 12))
		tablePut(m, AddOf(N(-2), sqrt3), piFrac(-1, 12))
		tablePut(m, AddOf(N(2), sqrt3), piFrac(5, 12))
		atanTab = m
	})
	return atanTab
}

func acscTable() map[string]Expr {
	acscTabOnce.Do(func() {
		m := map[string]Expr{}
		sqrt2 := SqrtOf(N(2))
		sqrt3 := SqrtOf(N(3))
		sqrt5 := SqrtOf(N(5))
		sqrt6 := SqrtOf(N(6))

		tablePut(m, MulOf(F(2, 3), sqrt3), piFrac(1, 3))
		tablePut(m, sqrt2, piFrac(1, 4))
		tablePut(m, SqrtOf(AddOf(N(2), MulOf(F(2, 5), sqrt5))), piFrac(1, 5))
		tablePut(m, PowOf(AddOf(F(5, 8), Neg(MulOf(F(1, 8), sqrt5))), F(-1, 2)), piFrac(1, 5))
		tablePut(m, SqrtOf(AddOf(N(2), Neg(MulOf(F(2, 5), sqrt5)))), piFrac(2, 5))
		tablePut(m, PowOf(AddOf(F(5, 8), MulOf(F(1, 8), sqrt5)), F(-1, 2)), piFrac(2, 5))
		tablePut(m, N(2), piFrac(1, 6))
		tablePut(m, SqrtOf(AddOf(N(4), MulOf(N(2), sqrt2))), piFrac(1, 8))
		tablePut(m, MulOf(N(2), PowOf(AddOf(N(2), Neg(sqrt2)), F(-1, 2))), piFrac(1, 8))
		tablePut(m, SqrtOf(AddOf(N(4), Neg(MulOf(N(2), sqrt2)))), piFrac(3, 8))
		tablePut(m, MulOf(N(2), PowOf(AddOf(N(2), sqrt2), F(-1, 2))), piFrac(3, 8))
		tablePut(m, AddOf(N(1), sqrt5), piFrac(1, 10))
		tablePut(m, AddOf(sqrt5, N(-1)), piFrac(3, 10))
		tablePut(m, AddOf(N(1), Neg(sqrt5)), piFrac(-3, 10))
		tablePut(m, AddOf(sqrt6, sqrt2), piFrac(1, 12))
		tablePut(m, AddOf(sqrt6, Neg(sqrt2)), piFrac(5, 12))
		tablePut(m, AddOf(sqrt2, Neg(sqrt6)), piFrac(-5, 12))
		acscTab = m
	})
	return acscTab
}
