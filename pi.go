package gotrig

import "math/big"

// ============================================================
// Pi-coefficient extraction and angle peeling
// ============================================================

var (
	ratTwo  = new(big.Rat).SetInt64(2)
	ratHalf = new(big.Rat).SetFrac64(1, 2)
)

// PiCoefficient writes arg as c*pi and returns c, or nil when arg is not
// a multiple of pi. Numeric coefficients are normalized for the callers'
// period-2 reductions:
//
//   - an integer coefficient collapses to its parity, 0 or 1;
//   - a symbolic integer factor x with rational multiplier c reduces
//     c mod 2, and an even c yields 0 when the parity of x is known and
//     the sentinel 2*... otherwise;
//   - other rational multiples pass through exactly.
//
// Floating-point coefficients entered through NFloat are already exact
// binary rationals and need no special casing.
func PiCoefficient(arg Expr) Expr {
	switch v := arg.(type) {
	case *Const:
		if v.Equal(Pi) {
			return N(1)
		}
	case *Num:
		if v.IsZero() {
			return N(0)
		}
	case *Mul:
		coeff := N(1)
		piCount := 0
		rest := []Expr{}
		for _, f := range v.factors {
			switch fv := f.(type) {
			case *Num:
				coeff = numMul(coeff, fv)
			case *Const:
				if fv.Equal(Pi) {
					piCount++
				} else {
					rest = append(rest, f)
				}
			default:
				rest = append(rest, f)
			}
		}
		if piCount != 1 {
			return nil
		}
		if len(rest) == 0 {
			if coeff.IsInteger() {
				return numMod(coeff, N(2))
			}
			return coeff
		}
		var x Expr
		if len(rest) == 1 {
			x = rest[0]
		} else {
			x = MulOf(rest...)
		}
		if isInteger(x) == TriTrue {
			c2 := numMod(coeff, N(2))
			if c2.IsOne() {
				return x
			}
			if c2.IsZero() {
				if parityEven(x) != TriUnknown {
					return N(0)
				}
				return N(2)
			}
			return MulOf(c2, x)
		}
		return MulOf(coeff, x)
	}
	return nil
}

// piCoeffRat returns the coefficient as an exact rational when
// PiCoefficient produced a pure number.
func piCoeffRat(arg Expr) (*Num, bool) {
	pc := PiCoefficient(arg)
	if pc == nil {
		return nil, false
	}
	n, ok := pc.(*Num)
	return n, ok
}

// PeelOffPi splits arg = rest + m*pi where m is the largest rational
// multiple of 1/2 that can be taken off the sum. The returned m is zero
// when nothing peels.
func PeelOffPi(arg Expr) (rest Expr, m *Num) {
	add, ok := arg.(*Add)
	if !ok {
		return arg, N(0)
	}
	coeff := new(big.Rat)
	restTerms := []Expr{}
	for _, t := range add.terms {
		if c, ok := termPiCoeff(t); ok {
			coeff.Add(coeff, c)
		} else {
			restTerms = append(restTerms, t)
		}
	}
	if coeff.Sign() == 0 {
		return arg, N(0)
	}
	m1 := ratMod(coeff, ratHalf)
	m2 := new(big.Rat).Sub(coeff, m1)
	if m2.Sign() == 0 {
		return arg, N(0)
	}
	// m2 is an integer or half-odd-integer multiple by construction.
	if m1.Sign() != 0 {
		restTerms = append(restTerms, MulOf(NRat(m1), Pi))
	}
	if len(restTerms) == 0 {
		rest = N(0)
	} else {
		rest = AddOf(restTerms...)
	}
	return rest, NRat(m2)
}

// termPiCoeff matches a single term of the form c*pi with c rational.
func termPiCoeff(t Expr) (*big.Rat, bool) {
	if c, ok := t.(*Const); ok && c.Equal(Pi) {
		return new(big.Rat).SetInt64(1), true
	}
	m, ok := t.(*Mul)
	if !ok {
		return nil, false
	}
	coeff := new(big.Rat).SetInt64(1)
	sawPi := false
	for _, f := range m.factors {
		switch fv := f.(type) {
		case *Num:
			coeff.Mul(coeff, fv.val)
		case *Const:
			if !fv.Equal(Pi) || sawPi {
				return nil, false
			}
			sawPi = true
		default:
			return nil, false
		}
	}
	if !sawPi {
		return nil, false
	}
	return coeff, true
}
