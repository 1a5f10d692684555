package gotrig

import "errors"

// ============================================================
// Rewriting between functional bases
// ============================================================

// Basis names the target function family for RewriteAs.
type Basis int

const (
	BasisSin Basis = iota
	BasisCos
	BasisTan
	BasisCot
	BasisSec
	BasisCsc
	BasisAsin
	BasisAtan
	BasisSqrt
)

var basisNames = map[string]Basis{
	"sin": BasisSin, "cos": BasisCos, "tan": BasisTan, "cot": BasisCot,
	"sec": BasisSec, "csc": BasisCsc, "asin": BasisAsin, "atan": BasisAtan,
	"sqrt": BasisSqrt,
}

func BasisByName(name string) (Basis, bool) {
	b, ok := basisNames[name]
	return b, ok
}

// RewriteAs re-expresses every circular function in e through the
// requested basis where a rule exists; nodes without a rule pass
// through unchanged.
func RewriteAs(e Expr, b Basis) Expr {
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = RewriteAs(t, b)
		}
		return AddOf(terms...)
	case *Mul:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = RewriteAs(f, b)
		}
		return MulOf(factors...)
	case *Pow:
		return PowOf(RewriteAs(v.base, b), RewriteAs(v.exp, b))
	case *Func:
		return funcOf(v.name, RewriteAs(v.arg, b)).Simplify()
	case *Trig:
		args := make([]Expr, len(v.args))
		for i, a := range v.args {
			args[i] = RewriteAs(a, b)
		}
		if r := rewriteTrig(v.id, args, b); r != nil {
			return r
		}
		return trigCall(v.id, args...)
	}
	return e
}

func rewriteTrig(id TrigID, args []Expr, b Basis) Expr {
	if id == Atan2 {
		if b == BasisAtan && len(args) == 2 {
			y, x := args[0], args[1]
			if n, ok := y.(*Num); ok && n.IsZero() {
				return nil
			}
			r := SqrtOf(AddOf(PowOf(x, N(2)), PowOf(y, N(2))))
			return MulOf(N(2), AtanOf(Div(y, AddOf(r, x)))).Simplify()
		}
		return nil
	}
	if len(args) != 1 {
		return nil
	}
	x := args[0]
	half := MulOf(F(1, 2), x)
	piHalf := MulOf(F(1, 2), Pi)

	switch id {
	// The quarter-turn shifts below build raw nodes: re-dispatching
	// through the constructors would fold them straight back.
	case Sin:
		switch b {
		case BasisCos:
			return &Trig{id: Cos, args: []Expr{AddOf(x, Neg(piHalf)).Simplify()}}
		case BasisTan:
			t := TanOf(half)
			return Div(MulOf(N(2), t), AddOf(N(1), PowOf(t, N(2)))).Simplify()
		case BasisCot:
			c := CotOf(half)
			return Div(MulOf(N(2), c), AddOf(N(1), PowOf(c, N(2)))).Simplify()
		case BasisSec:
			return Div(N(1), &Trig{id: Sec, args: []Expr{AddOf(x, Neg(piHalf)).Simplify()}}).Simplify()
		case BasisCsc:
			return Div(N(1), &Trig{id: Csc, args: []Expr{x}}).Simplify()
		case BasisSqrt:
			// sin(x) = cos(x - pi/2)
			if pc, ok := piCoeffRat(x); ok {
				s := numSub(pc, NRat(ratHalf))
				return cosPiSqrt(s.val)
			}
		}
	case Cos:
		switch b {
		case BasisSin:
			return &Trig{id: Sin, args: []Expr{AddOf(x, piHalf).Simplify()}}
		case BasisTan:
			t2 := PowOf(TanOf(half), N(2))
			return Div(AddOf(N(1), Neg(t2)), AddOf(N(1), t2)).Simplify()
		case BasisCot:
			c2 := PowOf(CotOf(half), N(2))
			return Div(AddOf(c2, N(-1)), AddOf(c2, N(1))).Simplify()
		case BasisSec:
			return Div(N(1), &Trig{id: Sec, args: []Expr{x}}).Simplify()
		case BasisCsc:
			return Div(N(1), &Trig{id: Csc, args: []Expr{AddOf(x, piHalf).Simplify()}}).Simplify()
		case BasisSqrt:
			if pc, ok := piCoeffRat(x); ok {
				return cosPiSqrt(pc.val)
			}
		}
	case Tan:
		switch b {
		case BasisSin:
			return Div(MulOf(N(2), PowOf(SinOf(x), N(2))), SinOf(MulOf(N(2), x))).Simplify()
		case BasisCos:
			shifted := &Trig{id: Cos, args: []Expr{AddOf(x, Neg(piHalf)).Simplify()}}
			return Div(shifted, CosOf(x)).Simplify()
		case BasisCot:
			return Div(N(1), &Trig{id: Cot, args: []Expr{x}}).Simplify()
		case BasisSqrt:
			s := rewriteTrig(Sin, args, BasisSqrt)
			c := rewriteTrig(Cos, args, BasisSqrt)
			if s != nil && c != nil {
				return Div(s, c).Simplify()
			}
		}
	case Cot:
		switch b {
		case BasisSin:
			return Div(SinOf(MulOf(N(2), x)), MulOf(N(2), PowOf(SinOf(x), N(2)))).Simplify()
		case BasisCos:
			shifted := &Trig{id: Cos, args: []Expr{AddOf(x, Neg(piHalf)).Simplify()}}
			return Div(CosOf(x), shifted).Simplify()
		case BasisTan:
			return Div(N(1), &Trig{id: Tan, args: []Expr{x}}).Simplify()
		case BasisSqrt:
			s := rewriteTrig(Sin, args, BasisSqrt)
			c := rewriteTrig(Cos, args, BasisSqrt)
			if s != nil && c != nil {
				return Div(c, s).Simplify()
			}
		}
	case Sec:
		switch b {
		case BasisCos:
			return Div(N(1), CosOf(x)).Simplify()
		case BasisSin:
			shifted := &Trig{id: Sin, args: []Expr{AddOf(x, piHalf).Simplify()}}
			return Div(N(1), shifted).Simplify()
		case BasisTan:
			t2 := PowOf(TanOf(half), N(2))
			return Div(AddOf(N(1), t2), AddOf(N(1), Neg(t2))).Simplify()
		case BasisCot:
			c2 := PowOf(CotOf(half), N(2))
			return Div(AddOf(c2, N(1)), AddOf(c2, N(-1))).Simplify()
		case BasisCsc:
			return &Trig{id: Csc, args: []Expr{AddOf(piHalf, Neg(x)).Simplify()}}
		case BasisSqrt:
			c := rewriteTrig(Cos, args, BasisSqrt)
			if c != nil {
				return Div(N(1), c).Simplify()
			}
		}
	case Csc:
		switch b {
		case BasisSin:
			return Div(N(1), SinOf(x)).Simplify()
		case BasisCos:
			shifted := &Trig{id: Cos, args: []Expr{AddOf(x, Neg(piHalf)).Simplify()}}
			return Div(N(1), shifted).Simplify()
		case BasisTan:
			t := TanOf(half)
			return Div(AddOf(N(1), PowOf(t, N(2))), MulOf(N(2), t)).Simplify()
		case BasisSec:
			return &Trig{id: Sec, args: []Expr{AddOf(piHalf, Neg(x)).Simplify()}}
		case BasisSqrt:
			s := rewriteTrig(Sin, args, BasisSqrt)
			if s != nil {
				return Div(N(1), s).Simplify()
			}
		}
	case Sinc:
		switch b {
		case BasisSin:
			return Div(SinOf(x), x).Simplify()
		}
	case Asin:
		switch b {
		case BasisAtan:
			return AtanOf(Div(x, SqrtOf(AddOf(N(1), Neg(PowOf(x, N(2))))))).Simplify()
		}
	case Acos:
		switch b {
		case BasisAsin:
			return AddOf(piHalf, Neg(AsinOf(x))).Simplify()
		case BasisAtan:
			return AddOf(piHalf, Neg(AtanOf(Div(x, SqrtOf(AddOf(N(1), Neg(PowOf(x, N(2))))))))).Simplify()
		}
	case Atan:
		switch b {
		case BasisAsin:
			return AsinOf(Div(x, SqrtOf(AddOf(N(1), PowOf(x, N(2)))))).Simplify()
		}
	case Acot:
		switch b {
		case BasisAtan:
			return AtanOf(Div(N(1), x)).Simplify()
		}
	case Asec:
		switch b {
		case BasisAtan:
			return RewriteAs(AcosOf(Div(N(1), x)), BasisAtan)
		case BasisAsin:
			return AddOf(piHalf, Neg(AsinOf(Div(N(1), x)))).Simplify()
		}
	case Acsc:
		switch b {
		case BasisAsin:
			return AsinOf(Div(N(1), x)).Simplify()
		case BasisAtan:
			return RewriteAs(AsinOf(Div(N(1), x)), BasisAtan)
		}
	}
	return nil
}

// ============================================================
// Angle-sum and multiple-angle expansion
// ============================================================

// ExpandTrig applies the addition formulas to sums and the Chebyshev
// recurrences to integer multiples inside sine and cosine.
func ExpandTrig(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = ExpandTrig(t)
		}
		return AddOf(terms...)
	case *Mul:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = ExpandTrig(f)
		}
		return MulOf(factors...)
	case *Pow:
		return PowOf(ExpandTrig(v.base), ExpandTrig(v.exp))
	case *Func:
		return funcOf(v.name, ExpandTrig(v.arg)).Simplify()
	case *Trig:
		if len(v.args) != 1 {
			return trigCall(v.id, v.args...)
		}
		arg := ExpandTrig(v.args[0]).Simplify()
		if r := expandTrigArg(v.id, arg); r != nil {
			return r
		}
		return trigCall(v.id, arg)
	}
	return e
}

func expandTrigArg(id TrigID, arg Expr) Expr {
	if id != Sin && id != Cos {
		// tan and the reciprocals expand through sine and cosine
		switch id {
		case Tan:
			s, c := expandSinCos(arg)
			if s == nil {
				return nil
			}
			return Div(s, c).Simplify()
		case Cot:
			s, c := expandSinCos(arg)
			if s == nil {
				return nil
			}
			return Div(c, s).Simplify()
		case Sec:
			_, c := expandSinCos(arg)
			if c == nil {
				return nil
			}
			return Div(N(1), c).Simplify()
		case Csc:
			s, _ := expandSinCos(arg)
			if s == nil {
				return nil
			}
			return Div(N(1), s).Simplify()
		}
		return nil
	}
	s, c := expandSinCos(arg)
	if s == nil {
		return nil
	}
	if id == Sin {
		return s
	}
	return c
}

// expandSinCos returns expanded (sin(arg), cos(arg)), or nils when no
// expansion applies.
func expandSinCos(arg Expr) (Expr, Expr) {
	if add, ok := arg.(*Add); ok && len(add.terms) >= 2 {
		a := add.terms[0]
		rest := AddOf(add.terms[1:]...).Simplify()
		sb, cb := expandSinCos(rest)
		if sb == nil {
			sb, cb = SinOf(rest), CosOf(rest)
		}
		sa, ca := SinOf(a), CosOf(a)
		s := AddOf(MulOf(sa, cb), MulOf(ca, sb)).Simplify()
		c := AddOf(MulOf(ca, cb), Neg(MulOf(sa, sb))).Simplify()
		return s, c
	}
	if mul, ok := arg.(*Mul); ok {
		coeff, rest := extractCoefficient(mul)
		if coeff.IsInteger() && !coeff.IsOne() && !coeff.IsNegOne() {
			n := coeff.val.Num().Int64()
			if n < 0 {
				s, c := expandSinCos(MulOf(N(-n), rest).Simplify())
				if s == nil {
					s, c = SinOf(MulOf(N(-n), rest)), CosOf(MulOf(N(-n), rest))
				}
				return Neg(s).Simplify(), c
			}
			cx, sx := CosOf(rest), SinOf(rest)
			c := Expand(chebyshevT(n, cx))
			// sin(n x) = U_{n-1}(cos x) sin x
			s := Expand(MulOf(chebyshevU(n-1, cx), sx))
			return s, c
		}
	}
	return nil, nil
}

// ============================================================
// Real and imaginary parts
// ============================================================

// AsRealImag splits a circular function of a complex argument
// re + I*im into its real and imaginary components. Symbols are
// treated as real unless assumed otherwise.
func AsRealImag(e Expr) (Expr, Expr, bool) {
	t, ok := e.(*Trig)
	if !ok || len(t.args) != 1 {
		if isRealValued(e) == TriTrue {
			return e, N(0), true
		}
		return nil, nil, false
	}
	re, im := splitReIm(t.args[0])
	if im == nil {
		return nil, nil, false
	}
	if z, ok2 := im.(*Num); ok2 && z.IsZero() {
		return trigCall(t.id, re), N(0), true
	}
	switch t.id {
	case Sin:
		return MulOf(SinOf(re), CoshOf(im)).Simplify(),
			MulOf(CosOf(re), SinhOf(im)).Simplify(), true
	case Cos:
		return MulOf(CosOf(re), CoshOf(im)).Simplify(),
			Neg(MulOf(SinOf(re), SinhOf(im))).Simplify(), true
	case Tan:
		denom := AddOf(CosOf(MulOf(N(2), re)), CoshOf(MulOf(N(2), im))).Simplify()
		return Div(SinOf(MulOf(N(2), re)), denom).Simplify(),
			Div(SinhOf(MulOf(N(2), im)), denom).Simplify(), true
	case Cot:
		denom := AddOf(CosOf(MulOf(N(2), re)), Neg(CoshOf(MulOf(N(2), im)))).Simplify()
		return Neg(Div(SinOf(MulOf(N(2), re)), denom)).Simplify(),
			Div(SinhOf(MulOf(N(2), im)), denom).Simplify(), true
	}
	return nil, nil, false
}

// splitReIm decomposes arg into real and imaginary parts, or returns a
// nil imaginary part when the decomposition is not syntactic.
func splitReIm(arg Expr) (Expr, Expr) {
	var reTerms, imTerms []Expr
	terms := []Expr{arg}
	if add, ok := arg.(*Add); ok {
		terms = add.terms
	}
	for _, t := range terms {
		if c := asImagCoeff(t); c != nil {
			imTerms = append(imTerms, c)
			continue
		}
		if isRealValued(t) == TriFalse {
			return nil, nil
		}
		reTerms = append(reTerms, t)
	}
	re := Expr(N(0))
	if len(reTerms) > 0 {
		re = AddOf(reTerms...).Simplify()
	}
	im := Expr(N(0))
	if len(imTerms) > 0 {
		im = AddOf(imTerms...).Simplify()
	}
	return re, im
}

// ============================================================
// Periodicity and derivative dispatch
// ============================================================

// ErrPeriod reports a function with no period in the given variable.
var ErrPeriod = errors.New("gotrig: expression is not periodic")

// Period returns the period of a circular function in varName for
// affine arguments, zero when the expression is constant in varName.
func Period(e Expr, varName string) (Expr, error) {
	if _, free := FreeSymbols(e)[varName]; !free {
		return N(0), nil
	}
	t, ok := e.(*Trig)
	if !ok || len(t.args) != 1 {
		return nil, ErrPeriod
	}
	var base Expr
	switch t.id {
	case Sin, Cos, Sec, Csc:
		base = MulOf(N(2), Pi)
	case Tan, Cot:
		base = Pi
	default:
		return nil, ErrPeriod
	}
	d := Diff(t.args[0], varName)
	dn, ok := d.Eval()
	if !ok || dn.IsZero() {
		return nil, ErrPeriod
	}
	return MulOf(base, PowOf(numAbs(dn), N(-1))).Simplify(), nil
}

// FDiff returns the derivative of the function with respect to its
// i-th argument (1-based), leaving the arguments symbolic.
func FDiff(id TrigID, args []Expr, i int) (Expr, error) {
	n := 1
	if id == Atan2 {
		n = 2
	}
	if i < 1 || i > n || len(args) != n {
		return nil, &ArgumentIndexError{Fn: id.String(), Index: i}
	}
	return trigDeriv(id, args, i-1), nil
}
