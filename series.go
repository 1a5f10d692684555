package gotrig

import (
	"fmt"
	"math/big"
	"sync"
)

// ============================================================
// Errors
// ============================================================

// PoleError reports a series or leading-term request at a point where
// the function has no meromorphic expansion.
type PoleError struct {
	Fn    string
	Point Expr
}

func (e *PoleError) Error() string {
	return fmt.Sprintf("gotrig: %s has no series expansion at %s", e.Fn, e.Point.String())
}

// ArgumentIndexError reports a derivative request for an argument slot
// the function does not have.
type ArgumentIndexError struct {
	Fn    string
	Index int
}

func (e *ArgumentIndexError) Error() string {
	return fmt.Sprintf("gotrig: %s has no argument %d", e.Fn, e.Index)
}

// ============================================================
// Bernoulli and Euler numbers
// ============================================================

var (
	numberMu  sync.Mutex
	bernoulli = []*big.Rat{big.NewRat(1, 1)}
	euler     = []*big.Int{big.NewInt(1)}
)

// bernoulliNum returns B_m with B_1 = -1/2.
func bernoulliNum(m int) *big.Rat {
	numberMu.Lock()
	defer numberMu.Unlock()
	for len(bernoulli) <= m {
		k := len(bernoulli)
		// B_k = -1/(k+1) * sum_{j<k} C(k+1, j) B_j
		sum := new(big.Rat)
		for j := 0; j < k; j++ {
			c := new(big.Int).Binomial(int64(k+1), int64(j))
			t := new(big.Rat).Mul(new(big.Rat).SetInt(c), bernoulli[j])
			sum.Add(sum, t)
		}
		sum.Mul(sum, big.NewRat(-1, int64(k+1)))
		bernoulli = append(bernoulli, sum)
	}
	return new(big.Rat).Set(bernoulli[m])
}

// eulerNum returns the integer Euler number E_m (zero for odd m).
func eulerNum(m int) *big.Int {
	if m%2 != 0 {
		return big.NewInt(0)
	}
	numberMu.Lock()
	defer numberMu.Unlock()
	for 2*(len(euler)-1) < m {
		k := len(euler)
		// sum_{j<=k} C(2k, 2j) E_{2j} = 0
		sum := new(big.Int)
		for j := 0; j < k; j++ {
			c := new(big.Int).Binomial(int64(2*k), int64(2*j))
			sum.Add(sum, c.Mul(c, euler[j]))
		}
		euler = append(euler, sum.Neg(sum))
	}
	return new(big.Int).Set(euler[m/2])
}

func factorialRat(n int) *big.Rat {
	f := new(big.Int).MulRange(1, int64(n))
	if n <= 0 {
		f = big.NewInt(1)
	}
	return new(big.Rat).SetInt(f)
}

// ============================================================
// Taylor terms
// ============================================================

type taylorKey struct {
	id TrigID
	n  int
}

var (
	taylorMu    sync.Mutex
	taylorCache = map[taylorKey]*big.Rat{}
)

// taylorCoeff returns the rational coefficient of x^n in the origin
// expansion, or nil when the term vanishes. Only the functions with a
// pure power series in x reach here.
func taylorCoeff(id TrigID, n int) *big.Rat {
	key := taylorKey{id, n}
	taylorMu.Lock()
	if c, ok := taylorCache[key]; ok {
		taylorMu.Unlock()
		if c == nil {
			return nil
		}
		return new(big.Rat).Set(c)
	}
	taylorMu.Unlock()

	c := computeTaylorCoeff(id, n)

	taylorMu.Lock()
	if c == nil {
		taylorCache[key] = nil
	} else {
		taylorCache[key] = new(big.Rat).Set(c)
	}
	taylorMu.Unlock()
	return c
}

func computeTaylorCoeff(id TrigID, n int) *big.Rat {
	if n < 0 {
		return nil
	}
	switch id {
	case Sin:
		if n%2 == 0 {
			return nil
		}
		c := new(big.Rat).Inv(factorialRat(n))
		if ((n-1)/2)%2 != 0 {
			c.Neg(c)
		}
		return c
	case Cos:
		if n%2 != 0 {
			return nil
		}
		c := new(big.Rat).Inv(factorialRat(n))
		if (n/2)%2 != 0 {
			c.Neg(c)
		}
		return c
	case Tan:
		if n%2 == 0 {
			return nil
		}
		// (-1)^((n-1)/2) * b*(b-1) * B(n+1) / (n+1)!  with b = 2^(n+1)
		b := new(big.Int).Lsh(big.NewInt(1), uint(n+1))
		bm1 := new(big.Int).Sub(b, big.NewInt(1))
		c := new(big.Rat).SetInt(new(big.Int).Mul(b, bm1))
		c.Mul(c, bernoulliNum(n+1))
		c.Quo(c, factorialRat(n+1))
		if ((n-1)/2)%2 != 0 {
			c.Neg(c)
		}
		return c
	case Cot:
		if n == 0 || n%2 == 0 {
			return nil
		}
		// (-1)^((n+1)/2) * 2^(n+1) * B(n+1) / (n+1)!
		c := new(big.Rat).SetInt(new(big.Int).Lsh(big.NewInt(1), uint(n+1)))
		c.Mul(c, bernoulliNum(n+1))
		c.Quo(c, factorialRat(n+1))
		if ((n+1)/2)%2 != 0 {
			c.Neg(c)
		}
		return c
	case Sec:
		if n%2 != 0 {
			return nil
		}
		k := n / 2
		c := new(big.Rat).SetInt(eulerNum(2 * k))
		c.Quo(c, factorialRat(2*k))
		if k%2 != 0 {
			c.Neg(c)
		}
		return c
	case Csc:
		if n == 0 || n%2 == 0 {
			return nil
		}
		// (-1)^(k-1) * 2*(2^(2k-1) - 1) * B(2k) / (2k)!  with k = (n+1)/2
		k := (n + 1) / 2
		p := new(big.Int).Lsh(big.NewInt(1), uint(2*k-1))
		p.Sub(p, big.NewInt(1))
		p.Lsh(p, 1)
		c := new(big.Rat).SetInt(p)
		c.Mul(c, bernoulliNum(2*k))
		c.Quo(c, factorialRat(2*k))
		if (k-1)%2 != 0 {
			c.Neg(c)
		}
		return c
	case Sinc:
		if n%2 != 0 {
			return nil
		}
		c := new(big.Rat).Inv(factorialRat(n + 1))
		if (n/2)%2 != 0 {
			c.Neg(c)
		}
		return c
	case Asin:
		if n%2 == 0 {
			return nil
		}
		// (2k)! / (4^k (k!)^2 n)  with k = (n-1)/2
		k := (n - 1) / 2
		c := factorialRat(2 * k)
		den := new(big.Rat).SetInt(new(big.Int).Lsh(big.NewInt(1), uint(2*k)))
		kf := factorialRat(k)
		den.Mul(den, kf)
		den.Mul(den, kf)
		den.Mul(den, big.NewRat(int64(n), 1))
		c.Quo(c, den)
		return c
	case Acos:
		if n == 0 || n%2 == 0 {
			return nil
		}
		c := computeTaylorCoeff(Asin, n)
		return c.Neg(c)
	case Atan:
		if n%2 == 0 {
			return nil
		}
		c := big.NewRat(1, int64(n))
		if ((n-1)/2)%2 != 0 {
			c.Neg(c)
		}
		return c
	case Acot:
		if n == 0 || n%2 == 0 {
			return nil
		}
		c := big.NewRat(1, int64(n))
		if ((n+1)/2)%2 != 0 {
			c.Neg(c)
		}
		return c
	}
	return nil
}

// TaylorTerm returns the term of degree n in the origin expansion of
// the function applied to arg. Cotangent and cosecant lead with 1/arg,
// and the inverse cotangent/cosine carry a pi/2 constant. previous may
// hold already-computed lower terms; the sine/cosine recurrence uses
// the second-to-last one when available.
func TaylorTerm(id TrigID, n int, arg Expr, previous []Expr) (Expr, error) {
	if n < 0 {
		return nil, &ArgumentIndexError{Fn: id.String(), Index: n}
	}
	switch id {
	case Asec, Acsc, Atan2:
		return nil, &PoleError{Fn: id.String(), Point: N(0)}
	case Cot, Csc:
		if n == 0 {
			return PowOf(arg, N(-1)), nil
		}
	case Acos, Acot:
		if n == 0 {
			return MulOf(F(1, 2), Pi), nil
		}
	case Sin, Cos:
		// term(n) = -term(n-2) * x^2 / (n (n-1))
		if n > 1 && len(previous) >= 2 {
			if p := previous[len(previous)-2]; p != nil {
				t := MulOf(p, PowOf(arg, N(2)), F(-1, int64(n*(n-1))))
				return t.Simplify(), nil
			}
		}
	}
	c := taylorCoeff(id, n)
	if c == nil {
		return N(0), nil
	}
	if n == 0 {
		return NRat(c), nil
	}
	return MulOf(NRat(c), PowOf(arg, N(int64(n)))).Simplify(), nil
}

// ============================================================
// Series expansion around zero
// ============================================================

// Series expands expr in varName around zero up to (but not including)
// degree order, appending a BigO remainder. dir selects the approach
// direction on branch cuts: +1 from above, -1 from below.
func Series(expr Expr, varName string, order int, dir int) (Expr, error) {
	if dir == 0 {
		dir = 1
	}
	if t, ok := expr.(*Trig); ok && len(t.args) == 1 {
		return trigSeries(t, varName, order, dir)
	}
	return taylorFallback(expr, varName, order)
}

func trigSeries(t *Trig, varName string, order int, dir int) (Expr, error) {
	arg := t.args[0]
	arg0 := arg.Sub(varName, N(0)).Simplify()

	if isZeroNum(arg0) {
		switch t.id {
		case Acot:
			// acot jumps across zero: pi/2 from above, -pi/2 from below.
			terms, err := taylorSum(t.id, arg, order)
			if err != nil {
				return nil, err
			}
			if dir < 0 {
				terms = AddOf(terms, Neg(Pi))
			}
			return withRemainder(terms.Simplify(), varName, order), nil
		case Asec, Acsc:
			return nil, &PoleError{Fn: t.id.String(), Point: N(0)}
		}
		terms, err := taylorSum(t.id, arg, order)
		if err != nil {
			return nil, err
		}
		return withRemainder(terms, varName, order), nil
	}

	// Branch points of the inverse functions.
	if n, ok := arg0.(*Num); ok {
		switch t.id {
		case Asin, Acos:
			if numAbs(n).IsOne() {
				return inverseBranchSeries(t.id, arg, n, varName, order)
			}
		}
	}

	// Poles of the direct functions shift to a delegated origin series.
	val := trigCall(t.id, arg0)
	if val == ComplexInfinity {
		return poleShiftSeries(t, arg, arg0, varName, order)
	}
	if _, ok := val.(*Special); ok {
		return nil, &PoleError{Fn: t.id.String(), Point: arg0}
	}
	return taylorFallback(t, varName, order)
}

// taylorSum accumulates TaylorTerm(0..order-1).
func taylorSum(id TrigID, arg Expr, order int) (Expr, error) {
	var terms []Expr
	for n := 0; n < order; n++ {
		term, err := TaylorTerm(id, n, arg, terms)
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
	return AddOf(terms...).Simplify(), nil
}

func withRemainder(series Expr, varName string, order int) Expr {
	rem := OTerm(varName, order)
	if add, ok := series.(*Add); ok {
		return &Add{terms: append(append([]Expr{}, add.terms...), rem)}
	}
	return &Add{terms: []Expr{series, rem}}
}

// poleShiftSeries expands tan/cot/sec/csc around a pole by shifting to
// the origin expansion of the delegate function.
func poleShiftSeries(t *Trig, arg, arg0 Expr, varName string, order int) (Expr, error) {
	pc, ok := piCoeffRat(arg0)
	if !ok {
		return nil, &PoleError{Fn: t.id.String(), Point: arg0}
	}
	u := AddOf(arg, Neg(arg0)).Simplify()
	var base Expr
	var err error
	switch t.id {
	case Tan:
		// tan(u + pi/2 + k*pi) = -cot(u)
		base, err = taylorSum(Cot, u, order)
		base = Neg(base)
	case Cot:
		// cot(u + k*pi) = cot(u)
		base, err = taylorSum(Cot, u, order)
	case Sec:
		// sec(u + pi/2 + k*pi) = (-1)^(k+1) csc(u)
		base, err = taylorSum(Csc, u, order)
		k := new(big.Rat).Sub(pc.val, ratHalf)
		if new(big.Int).Mod(k.Num(), big.NewInt(2)).Sign() == 0 {
			base = Neg(base)
		}
	case Csc:
		// csc(u + k*pi) = (-1)^k csc(u)
		base, err = taylorSum(Csc, u, order)
		if new(big.Int).Mod(pc.val.Num(), big.NewInt(2)).Sign() != 0 {
			base = Neg(base)
		}
	default:
		return nil, &PoleError{Fn: t.id.String(), Point: arg0}
	}
	if err != nil {
		return nil, err
	}
	return withRemainder(base.Simplify(), varName, order), nil
}

// inverseBranchSeries expands asin/acos where the argument meets the
// +-1 branch point. The singular point maps to a removable one through
// u = 1 -+ arg, giving a series in half-integer powers of u.
func inverseBranchSeries(id TrigID, arg Expr, at *Num, varName string, order int) (Expr, error) {
	var u Expr
	if at.IsPositive() {
		u = AddOf(N(1), Neg(arg)).Simplify()
	} else {
		u = AddOf(N(1), arg).Simplify()
	}
	// acos(1-u) = sqrt(2) * sum_k binom(2k,k)/(8^k (2k+1)) u^(k+1/2)
	var terms []Expr
	for k := 0; 2*k+1 < 2*order; k++ {
		b := new(big.Int).Binomial(int64(2*k), int64(k))
		den := new(big.Int).Exp(big.NewInt(8), big.NewInt(int64(k)), nil)
		den.Mul(den, big.NewInt(int64(2*k+1)))
		coeff := new(big.Rat).SetFrac(b, den)
		terms = append(terms, MulOf(NRat(coeff), PowOf(u, F(int64(2*k+1), 2))))
	}
	tail := MulOf(SqrtOf(N(2)), AddOf(terms...)).Simplify()
	var res Expr
	switch {
	case id == Acos && at.IsPositive():
		res = tail
	case id == Asin && at.IsPositive():
		res = AddOf(MulOf(F(1, 2), Pi), Neg(tail))
	case id == Acos && at.IsNegative():
		res = AddOf(Pi, Neg(tail))
	default: // asin at -1
		res = AddOf(MulOf(F(-1, 2), Pi), tail)
	}
	return withRemainder(res.Simplify(), varName, order), nil
}

// taylorFallback differentiates repeatedly at zero, the generic path
// for regular points.
func taylorFallback(expr Expr, varName string, order int) (Expr, error) {
	var terms []Expr
	current := expr
	factorial := N(1)
	for k := 0; k < order; k++ {
		if k > 0 {
			factorial = numMul(factorial, N(int64(k)))
		}
		coeff := MulOf(current.Sub(varName, N(0)), PowOf(factorial, N(-1))).Simplify()
		if _, bad := coeff.(*Special); bad {
			return nil, &PoleError{Fn: expr.String(), Point: N(0)}
		}
		if n, ok := coeff.(*Num); !ok || !n.IsZero() {
			switch k {
			case 0:
				terms = append(terms, coeff)
			case 1:
				terms = append(terms, MulOf(coeff, S(varName)))
			default:
				terms = append(terms, MulOf(coeff, PowOf(S(varName), N(int64(k)))))
			}
		}
		current = Diff(current, varName)
	}
	return withRemainder(AddOf(terms...).Simplify(), varName, order), nil
}

// ============================================================
// Leading terms
// ============================================================

// LeadingTerm returns the lowest-order behavior of expr as varName
// approaches zero from direction dir.
func LeadingTerm(expr Expr, varName string, dir int) (Expr, error) {
	if dir == 0 {
		dir = 1
	}
	t, ok := expr.(*Trig)
	if !ok || len(t.args) != 1 {
		return genericLeadingTerm(expr, varName)
	}
	arg := t.args[0]
	x0 := arg.Sub(varName, N(0)).Simplify()
	pc, hasPC := piCoeffRat(x0)

	lt := func(e Expr) (Expr, error) { return LeadingTerm(e.Simplify(), varName, dir) }

	switch t.id {
	case Sin:
		if hasPC && pc.IsInteger() {
			inner, err := lt(AddOf(arg, Neg(x0)))
			if err != nil {
				return nil, err
			}
			return MulOf(negOnePow(pc.val), inner).Simplify(), nil
		}
	case Cos:
		if hasPC {
			n := new(big.Rat).Add(pc.val, ratHalf)
			if n.IsInt() {
				inner, err := lt(AddOf(arg, Neg(x0)))
				if err != nil {
					return nil, err
				}
				return MulOf(negOnePow(n), inner).Simplify(), nil
			}
		}
	case Tan:
		if hasPC {
			n := new(big.Rat).Mul(pc.val, ratTwo)
			if n.IsInt() {
				inner, err := lt(AddOf(arg, Neg(x0)))
				if err != nil {
					return nil, err
				}
				if new(big.Int).Mod(n.Num(), big.NewInt(2)).Sign() == 0 {
					return inner, nil
				}
				return Neg(PowOf(inner, N(-1))).Simplify(), nil
			}
		}
	case Cot:
		if hasPC {
			n := new(big.Rat).Mul(pc.val, ratTwo)
			if n.IsInt() {
				inner, err := lt(AddOf(arg, Neg(x0)))
				if err != nil {
					return nil, err
				}
				if new(big.Int).Mod(n.Num(), big.NewInt(2)).Sign() == 0 {
					return PowOf(inner, N(-1)).Simplify(), nil
				}
				return Neg(inner).Simplify(), nil
			}
		}
	case Sec:
		if hasPC {
			n := new(big.Rat).Add(pc.val, ratHalf)
			if n.IsInt() {
				inner, err := lt(AddOf(arg, Neg(x0)))
				if err != nil {
					return nil, err
				}
				return MulOf(negOnePow(n), PowOf(inner, N(-1))).Simplify(), nil
			}
		}
	case Csc:
		if hasPC && pc.IsInteger() {
			inner, err := lt(AddOf(arg, Neg(x0)))
			if err != nil {
				return nil, err
			}
			return MulOf(negOnePow(pc.val), PowOf(inner, N(-1))).Simplify(), nil
		}
	case Sinc:
		if isZeroNum(x0) {
			return N(1), nil
		}
	case Asin:
		if n, ok2 := x0.(*Num); ok2 {
			if isZeroNum(x0) {
				return lt(arg)
			}
			if numCmp(numAbs(n), &Num{val: ratOne}) > 0 {
				// continuation past the branch points
				if dir < 0 && n.IsNegative() {
					return AddOf(Neg(Pi), Neg(AsinOf(n))).Simplify(), nil
				}
				if dir > 0 && n.IsPositive() {
					return AddOf(Pi, Neg(AsinOf(n))).Simplify(), nil
				}
			}
		}
	case Acos:
		if n, ok2 := x0.(*Num); ok2 {
			if n.IsOne() {
				inner, err := lt(AddOf(N(1), Neg(arg)))
				if err != nil {
					return nil, err
				}
				return MulOf(SqrtOf(N(2)), SqrtOf(inner)).Simplify(), nil
			}
			if numCmp(numAbs(n), &Num{val: ratOne}) > 0 {
				if dir < 0 && n.IsNegative() {
					return AddOf(MulOf(N(2), Pi), Neg(AcosOf(n))).Simplify(), nil
				}
				if dir > 0 && n.IsPositive() {
					return Neg(AcosOf(n)).Simplify(), nil
				}
			}
		}
	case Atan:
		if isZeroNum(x0) {
			return lt(arg)
		}
	case Acot:
		if isZeroNum(x0) {
			if dir < 0 {
				return MulOf(F(-1, 2), Pi), nil
			}
			return MulOf(F(1, 2), Pi), nil
		}
	case Asec:
		if n, ok2 := x0.(*Num); ok2 && n.IsOne() {
			inner, err := lt(AddOf(arg, N(-1)))
			if err != nil {
				return nil, err
			}
			return MulOf(SqrtOf(N(2)), SqrtOf(inner)).Simplify(), nil
		}
	case Acsc:
		if isZeroNum(x0) {
			return nil, &PoleError{Fn: t.id.String(), Point: N(0)}
		}
	}

	val := trigCall(t.id, x0)
	if _, bad := val.(*Special); bad {
		return nil, &PoleError{Fn: t.id.String(), Point: x0}
	}
	if vn, ok2 := val.(*Num); ok2 && vn.IsZero() {
		// value vanishes without a recognized period crossing;
		// fall back to the linear behavior
		d := Diff(expr, varName).Sub(varName, N(0)).Simplify()
		return MulOf(d, S(varName)).Simplify(), nil
	}
	return val, nil
}

// genericLeadingTerm picks the first nonzero Maclaurin term.
func genericLeadingTerm(expr Expr, varName string) (Expr, error) {
	if _, ok := FreeSymbols(expr)[varName]; !ok {
		return expr.Simplify(), nil
	}
	current := expr
	factorial := N(1)
	for k := 0; k <= 8; k++ {
		if k > 0 {
			factorial = numMul(factorial, N(int64(k)))
		}
		coeff := MulOf(current.Sub(varName, N(0)), PowOf(factorial, N(-1))).Simplify()
		if _, bad := coeff.(*Special); bad {
			return nil, &PoleError{Fn: expr.String(), Point: N(0)}
		}
		if n, ok := coeff.(*Num); !ok || !n.IsZero() {
			if k == 0 {
				return coeff, nil
			}
			if k == 1 {
				return MulOf(coeff, S(varName)).Simplify(), nil
			}
			return MulOf(coeff, PowOf(S(varName), N(int64(k)))).Simplify(), nil
		}
		current = Diff(current, varName)
	}
	return nil, &PoleError{Fn: expr.String(), Point: N(0)}
}
