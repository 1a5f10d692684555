package gotrig

import (
	"math"
	"math/big"
	"strings"
)

// ============================================================
// Trig — circular and inverse-circular function applications
// ============================================================

// TrigID identifies one of the circular functions.
type TrigID int

const (
	Sin TrigID = iota
	Cos
	Tan
	Cot
	Sec
	Csc
	Sinc
	Asin
	Acos
	Atan
	Acot
	Asec
	Acsc
	Atan2
)

var trigNames = [...]string{
	"sin", "cos", "tan", "cot", "sec", "csc", "sinc",
	"asin", "acos", "atan", "acot", "asec", "acsc", "atan2",
}

func (id TrigID) String() string {
	if id < 0 || int(id) >= len(trigNames) {
		return "trig?"
	}
	return trigNames[id]
}

// TrigIDByName resolves a function name to its identifier.
func TrigIDByName(name string) (TrigID, bool) {
	for i, n := range trigNames {
		if n == name {
			return TrigID(i), true
		}
	}
	return 0, false
}

// Trig is an unevaluated application of a circular function. Instances
// only exist when the evaluator could not reduce the call; the
// constructors below run the evaluator first.
type Trig struct {
	id   TrigID
	args []Expr
}

func SinOf(arg Expr) Expr  { return trigCall(Sin, arg) }
func CosOf(arg Expr) Expr  { return trigCall(Cos, arg) }
func TanOf(arg Expr) Expr  { return trigCall(Tan, arg) }
func CotOf(arg Expr) Expr  { return trigCall(Cot, arg) }
func SecOf(arg Expr) Expr  { return trigCall(Sec, arg) }
func CscOf(arg Expr) Expr  { return trigCall(Csc, arg) }
func SincOf(arg Expr) Expr { return trigCall(Sinc, arg) }
func AsinOf(arg Expr) Expr { return trigCall(Asin, arg) }
func AcosOf(arg Expr) Expr { return trigCall(Acos, arg) }
func AtanOf(arg Expr) Expr { return trigCall(Atan, arg) }
func AcotOf(arg Expr) Expr { return trigCall(Acot, arg) }
func AsecOf(arg Expr) Expr { return trigCall(Asec, arg) }
func AcscOf(arg Expr) Expr { return trigCall(Acsc, arg) }

func Atan2Of(y, x Expr) Expr { return trigCall(Atan2, y, x) }

func trigCall(id TrigID, args ...Expr) Expr {
	sargs := make([]Expr, len(args))
	for i, a := range args {
		sargs[i] = a.Simplify()
	}
	if r := evalTrig(id, sargs); r != nil {
		return r
	}
	return &Trig{id: id, args: sargs}
}

// Evaluate applies a circular function by identifier. The second return
// is false when the call stays unevaluated.
func Evaluate(id TrigID, args ...Expr) (Expr, bool) {
	r := trigCall(id, args...)
	_, uneval := r.(*Trig)
	return r, !uneval
}

// evalTrig dispatches to the per-function evaluator. A nil result means
// the application does not reduce.
func evalTrig(id TrigID, args []Expr) Expr {
	if id == Atan2 {
		if len(args) != 2 {
			return nil
		}
		return evalAtan2(args[0], args[1])
	}
	if len(args) != 1 {
		return nil
	}
	arg := args[0]
	switch id {
	case Sin:
		return evalSin(arg)
	case Cos:
		return evalCos(arg)
	case Tan:
		return evalTan(arg)
	case Cot:
		return evalCot(arg)
	case Sec, Csc:
		return evalReciprocal(id, arg)
	case Sinc:
		return evalSinc(arg)
	case Asin:
		return evalAsin(arg)
	case Acos:
		return evalAcos(arg)
	case Atan:
		return evalAtan(arg)
	case Acot:
		return evalAcot(arg)
	case Asec:
		return evalAsec(arg)
	case Acsc:
		return evalAcsc(arg)
	}
	return nil
}

// ============================================================
// Shared helpers
// ============================================================

func piFrac(p, q int64) Expr { return MulOf(F(p, q), Pi) }
func piMul(c *Num) Expr      { return MulOf(c, Pi) }

func bareTrig(e Expr, id TrigID) (*Trig, bool) {
	t, ok := e.(*Trig)
	if ok && t.id == id {
		return t, true
	}
	return nil, false
}

// trigOrNeg matches e or -e against a bare application of id.
func trigOrNeg(e Expr, id TrigID) (*Trig, bool, bool) {
	if t, ok := bareTrig(e, id); ok {
		return t, false, true
	}
	if t, ok := bareTrig(Neg(e), id); ok {
		return t, true, true
	}
	return nil, false, false
}

func floatOf(e Expr) (float64, bool) {
	n, ok := e.Eval()
	if !ok {
		return 0, false
	}
	return n.Float64(), true
}

func isZeroNum(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.IsZero()
}

// negOnePow returns (-1)^k for an integer rational k.
func negOnePow(k *big.Rat) *Num {
	m := new(big.Int).Mod(k.Num(), big.NewInt(2))
	if m.Sign() == 0 {
		return N(1)
	}
	return N(-1)
}

// halfIntSign returns (-1)^(c - 1/2) for a half-odd-integer c.
func halfIntSign(c *Num) *Num {
	k := new(big.Rat).Sub(c.val, ratHalf)
	return negOnePow(k)
}

// modAngle removes whole periods from a comparable angle, using the
// float estimate only to pick the multiple; the returned expression is
// exact.
func modAngle(ang Expr, f float64, full bool) (Expr, float64, bool) {
	p := math.Pi
	mult := int64(1)
	if full {
		p = 2 * math.Pi
		mult = 2
	}
	k := math.Floor(f / p)
	if math.Abs(k) > 1e15 {
		return nil, 0, false
	}
	if k != 0 {
		ang = AddOf(ang, MulOf(N(-int64(k)*mult), Pi))
		f -= k * p
	}
	return ang, f, true
}

// ============================================================
// sin
// ============================================================

func evalSin(arg Expr) Expr {
	switch arg {
	case NaN, ComplexInfinity:
		return NaN
	case Infinity, NegativeInfinity:
		return BoundsOf(N(-1), N(1))
	}
	if isZeroNum(arg) {
		return N(0)
	}
	if b, ok := arg.(*Bounds); ok {
		return sinBounds(b)
	}
	if couldExtractMinusSign(arg) {
		return Neg(SinOf(Neg(arg)))
	}
	if ic := asImagCoeff(arg); ic != nil {
		return MulOf(ImaginaryUnit, SinhOf(ic))
	}

	if pc := PiCoefficient(arg); pc != nil {
		if isInteger(pc) == TriTrue {
			return N(0)
		}
		if n, ok := pc.(*Num); ok {
			if n.IsHalfInteger() {
				return halfIntSign(n)
			}
			if r := sinRational(arg, n); r != nil {
				return r
			}
			return nil
		}
		npc := MulOf(pc, Pi)
		if !npc.Equal(arg) {
			return SinOf(npc)
		}
		return nil
	}

	if _, ok := arg.(*Add); ok {
		rest, m := PeelOffPi(arg)
		if !m.IsZero() {
			return AddOf(
				MulOf(SinOf(piMul(m)), CosOf(rest)),
				MulOf(CosOf(piMul(m)), SinOf(rest)))
		}
	}

	if t, ok := bareTrig(arg, Asin); ok {
		return t.args[0]
	}
	if t, ok := bareTrig(arg, Atan); ok {
		x := t.args[0]
		return Div(x, SqrtOf(AddOf(N(1), PowOf(x, N(2)))))
	}
	if t, ok := bareTrig(arg, Atan2); ok {
		y, x := t.args[0], t.args[1]
		return Div(y, SqrtOf(AddOf(PowOf(x, N(2)), PowOf(y, N(2)))))
	}
	if t, ok := bareTrig(arg, Acos); ok {
		x := t.args[0]
		return SqrtOf(AddOf(N(1), Neg(PowOf(x, N(2)))))
	}
	if t, ok := bareTrig(arg, Acot); ok {
		x := t.args[0]
		return Div(N(1), MulOf(SqrtOf(AddOf(N(1), PowOf(x, N(-2)))), x))
	}
	if t, ok := bareTrig(arg, Acsc); ok {
		return PowOf(t.args[0], N(-1))
	}
	if t, ok := bareTrig(arg, Asec); ok {
		x := t.args[0]
		return SqrtOf(AddOf(N(1), Neg(PowOf(x, N(-2)))))
	}
	return nil
}

// sinRational reduces sin(c*pi) for rational c by routing through the
// cosine evaluator on a shifted angle.
func sinRational(arg Expr, pc *Num) Expr {
	x := numMod(pc, N(2))
	if x.val.Cmp(ratOne) > 0 {
		return Neg(SinOf(piMul(numMod(x, N(1)))))
	}
	if new(big.Rat).Mul(ratTwo, x.val).Cmp(ratOne) > 0 {
		return SinOf(piMul(numSub(N(1), x)))
	}
	narg := piMul(numMod(numAdd(pc, F(3, 2)), N(2)))
	result := CosOf(narg)
	if _, isCos := bareTrig(result, Cos); !isCos {
		return result
	}
	npc := piMul(pc)
	if !npc.Equal(arg) {
		return SinOf(npc)
	}
	return nil
}

// sinBounds folds sin over an accumulation interval. Branch selection is
// float-guided; the endpoint values stay symbolic.
func sinBounds(b *Bounds) Expr {
	if b.lo == NegativeInfinity || b.hi == Infinity {
		return BoundsOf(N(-1), N(1))
	}
	loF, ok1 := floatOf(b.lo)
	hiF, ok2 := floatOf(b.hi)
	if !ok1 || !ok2 {
		return nil
	}
	d := math.Floor(loF / (2 * math.Pi))
	loF -= d * 2 * math.Pi
	hiF -= d * 2 * math.Pi
	contains := func(v float64) bool { return v >= loF && v <= hiF }
	peak := contains(math.Pi/2) || contains(5*math.Pi/2)
	trough := contains(3*math.Pi/2) || contains(7*math.Pi/2)
	if peak && trough {
		return BoundsOf(N(-1), N(1))
	}
	sinLo, sinHi := SinOf(b.lo), SinOf(b.hi)
	minE, maxE := sinLo, sinHi
	if math.Sin(loF) > math.Sin(hiF) {
		minE, maxE = sinHi, sinLo
	}
	if peak {
		return BoundsOf(minE, N(1))
	}
	if trough {
		return BoundsOf(N(-1), maxE)
	}
	return BoundsOf(minE, maxE)
}

// ============================================================
// cos
// ============================================================

var cosTable2 = map[int64][2]int64{
	12:  {3, 4},
	20:  {4, 5},
	30:  {5, 6},
	15:  {6, 10},
	24:  {6, 8},
	40:  {8, 10},
	60:  {20, 30},
	120: {40, 60},
}

func evalCos(arg Expr) Expr {
	switch arg {
	case NaN, ComplexInfinity:
		return NaN
	case Infinity, NegativeInfinity:
		return BoundsOf(N(-1), N(1))
	}
	if n, ok := arg.(*Num); ok && n.IsZero() {
		return N(1)
	}
	if b, ok := arg.(*Bounds); ok {
		return SinOf(BoundsOf(AddOf(b.lo, piFrac(1, 2)), AddOf(b.hi, piFrac(1, 2))))
	}
	if couldExtractMinusSign(arg) {
		return CosOf(Neg(arg))
	}
	if ic := asImagCoeff(arg); ic != nil {
		return CoshOf(ic)
	}

	if pc := PiCoefficient(arg); pc != nil {
		if isInteger(pc) == TriTrue {
			if n, ok := pc.(*Num); ok {
				return negOnePow(n.val)
			}
			return PowOf(N(-1), pc)
		}
		if n, ok := pc.(*Num); ok {
			if n.IsHalfInteger() {
				return N(0)
			}
			return cosRational(n)
		}
		npc := MulOf(pc, Pi)
		if !npc.Equal(arg) {
			return CosOf(npc)
		}
		return nil
	}

	if _, ok := arg.(*Add); ok {
		rest, m := PeelOffPi(arg)
		if !m.IsZero() {
			return AddOf(
				MulOf(CosOf(piMul(m)), CosOf(rest)),
				Neg(MulOf(SinOf(piMul(m)), SinOf(rest))))
		}
	}

	if t, ok := bareTrig(arg, Acos); ok {
		return t.args[0]
	}
	if t, ok := bareTrig(arg, Atan); ok {
		x := t.args[0]
		return Div(N(1), SqrtOf(AddOf(N(1), PowOf(x, N(2)))))
	}
	if t, ok := bareTrig(arg, Atan2); ok {
		y, x := t.args[0], t.args[1]
		return Div(x, SqrtOf(AddOf(PowOf(x, N(2)), PowOf(y, N(2)))))
	}
	if t, ok := bareTrig(arg, Asin); ok {
		x := t.args[0]
		return SqrtOf(AddOf(N(1), Neg(PowOf(x, N(2)))))
	}
	if t, ok := bareTrig(arg, Acot); ok {
		x := t.args[0]
		return Div(N(1), SqrtOf(AddOf(N(1), PowOf(x, N(-2)))))
	}
	if t, ok := bareTrig(arg, Acsc); ok {
		x := t.args[0]
		return SqrtOf(AddOf(N(1), Neg(PowOf(x, N(-2)))))
	}
	if t, ok := bareTrig(arg, Asec); ok {
		return PowOf(t.args[0], N(-1))
	}
	return nil
}

// cosRational reduces cos(c*pi) for rational, non-half-integer c. The
// reductions mirror the classical half-angle and product identities;
// denominators 3 and 5 close through Chebyshev polynomials.
func cosRational(pc *Num) Expr {
	p := pc.val.Num()
	q := pc.val.Denom()
	twoQ := new(big.Int).Lsh(q, 1)
	pm := new(big.Int).Mod(p, twoQ)

	if pm.Cmp(q) > 0 {
		return Neg(CosOf(piMul(numSub(pc, N(1)))))
	}
	if new(big.Int).Lsh(pm, 1).Cmp(q) > 0 {
		return Neg(CosOf(piMul(numSub(N(1), pc))))
	}

	if !q.IsInt64() {
		return nil
	}
	qi := q.Int64()
	if den, ok := cosTable2[qi]; ok {
		a := piMul(NRat(new(big.Rat).SetFrac(pm, big.NewInt(den[0]))))
		b := piMul(NRat(new(big.Rat).SetFrac(pm, big.NewInt(den[1]))))
		nvala, nvalb := CosOf(a), CosOf(b)
		return AddOf(
			MulOf(nvala, nvalb),
			MulOf(CosOf(AddOf(piFrac(1, 2), Neg(a))), CosOf(AddOf(piFrac(1, 2), Neg(b)))))
	}
	if qi > 12 {
		return nil
	}
	if qi == 3 || qi == 5 {
		var cts Expr
		if qi == 3 {
			cts = F(1, 2)
		} else {
			cts = MulOf(F(1, 4), AddOf(SqrtOf(N(5)), N(1)))
		}
		return Expand(chebyshevT(pm.Int64(), cts))
	}
	if qi%2 == 0 {
		nval := CosOf(piMul(numMul(pc, N(2))))
		// sign of the half-angle root, from the quadrant of c + 1/2
		x := new(big.Rat).Add(pc.val, ratHalf)
		x.Abs(x)
		sign := N(1)
		if new(big.Int).Mod(ratFloor(x), big.NewInt(2)).Sign() != 0 {
			sign = N(-1)
		}
		return MulOf(sign, SqrtOf(MulOf(F(1, 2), AddOf(N(1), nval))))
	}
	return nil
}

// ============================================================
// tan
// ============================================================

func tanTable10() map[int64]Expr {
	fifth := MulOf(F(2, 5), SqrtOf(N(5)))
	return map[int64]Expr{
		1: SqrtOf(AddOf(N(1), Neg(fifth))),
		2: SqrtOf(AddOf(N(5), Neg(MulOf(N(2), SqrtOf(N(5)))))),
		3: SqrtOf(AddOf(N(1), fifth)),
		4: SqrtOf(AddOf(N(5), MulOf(N(2), SqrtOf(N(5))))),
	}
}

func evalTan(arg Expr) Expr {
	switch arg {
	case NaN, ComplexInfinity:
		return NaN
	case Infinity, NegativeInfinity:
		return BoundsOf(NegativeInfinity, Infinity)
	}
	if isZeroNum(arg) {
		return N(0)
	}
	if b, ok := arg.(*Bounds); ok {
		return tanBounds(b)
	}
	if couldExtractMinusSign(arg) {
		return Neg(TanOf(Neg(arg)))
	}
	if ic := asImagCoeff(arg); ic != nil {
		return MulOf(ImaginaryUnit, TanhOf(ic))
	}

	if pc := PiCoefficient(arg); pc != nil {
		if isInteger(pc) == TriTrue {
			return N(0)
		}
		if n, ok := pc.(*Num); ok {
			return tanRational(arg, n)
		}
		npc := MulOf(pc, Pi)
		if !npc.Equal(arg) {
			return TanOf(npc)
		}
		return nil
	}

	if _, ok := arg.(*Add); ok {
		rest, m := PeelOffPi(arg)
		if !m.IsZero() {
			tanm := TanOf(piMul(m))
			if tanm.Equal(ComplexInfinity) {
				return Neg(CotOf(rest))
			}
			return TanOf(rest)
		}
	}

	if t, ok := bareTrig(arg, Atan); ok {
		return t.args[0]
	}
	if t, ok := bareTrig(arg, Atan2); ok {
		return Div(t.args[0], t.args[1])
	}
	if t, ok := bareTrig(arg, Asin); ok {
		x := t.args[0]
		return Div(x, SqrtOf(AddOf(N(1), Neg(PowOf(x, N(2))))))
	}
	if t, ok := bareTrig(arg, Acos); ok {
		x := t.args[0]
		return Div(SqrtOf(AddOf(N(1), Neg(PowOf(x, N(2))))), x)
	}
	if t, ok := bareTrig(arg, Acot); ok {
		return PowOf(t.args[0], N(-1))
	}
	if t, ok := bareTrig(arg, Acsc); ok {
		x := t.args[0]
		return Div(N(1), MulOf(SqrtOf(AddOf(N(1), Neg(PowOf(x, N(-2))))), x))
	}
	if t, ok := bareTrig(arg, Asec); ok {
		x := t.args[0]
		return MulOf(SqrtOf(AddOf(N(1), Neg(PowOf(x, N(-2))))), x)
	}
	return nil
}

func tanRational(arg Expr, pc *Num) Expr {
	p := pc.val.Num()
	q := pc.val.Denom()
	if !q.IsInt64() {
		return nil
	}
	qi := q.Int64()
	pm := new(big.Int).Mod(p, q)

	if qi == 5 || qi == 10 {
		table := tanTable10()
		n := 10 * pm.Int64() / qi
		if n > 5 {
			return Neg(table[10-n])
		}
		return table[n]
	}
	if qi%2 == 0 {
		narg := piMul(numMul(pc, N(2)))
		cres := CosOf(narg)
		sres := CosOf(AddOf(narg, Neg(piFrac(1, 2))))
		_, cIsCos := bareTrig(cres, Cos)
		_, sIsCos := bareTrig(sres, Cos)
		if !cIsCos && !sIsCos {
			if isZeroNum(sres) {
				return ComplexInfinity
			}
			return AddOf(PowOf(sres, N(-1)), Neg(Div(cres, sres)))
		}
	}
	if den, ok := cosTable2[qi]; ok {
		a := piMul(NRat(new(big.Rat).SetFrac(pm, big.NewInt(den[0]))))
		b := piMul(NRat(new(big.Rat).SetFrac(pm, big.NewInt(den[1]))))
		nvala, nvalb := TanOf(a), TanOf(b)
		return Div(AddOf(nvala, Neg(nvalb)), AddOf(N(1), MulOf(nvala, nvalb)))
	}
	folded := new(big.Rat).Add(pc.val, ratHalf)
	folded = ratMod(folded, ratOne)
	folded.Sub(folded, ratHalf)
	narg := piMul(NRat(folded))
	cres := CosOf(narg)
	sres := CosOf(AddOf(narg, Neg(piFrac(1, 2))))
	_, cIsCos := bareTrig(cres, Cos)
	_, sIsCos := bareTrig(sres, Cos)
	if !cIsCos && !sIsCos {
		if isZeroNum(cres) {
			return ComplexInfinity
		}
		return Div(sres, cres)
	}
	if !narg.Equal(arg) {
		return TanOf(narg)
	}
	return nil
}

func tanBounds(b *Bounds) Expr {
	if b.lo == NegativeInfinity || b.hi == Infinity {
		return BoundsOf(NegativeInfinity, Infinity)
	}
	loF, ok1 := floatOf(b.lo)
	hiF, ok2 := floatOf(b.hi)
	if !ok1 || !ok2 {
		return nil
	}
	d := math.Floor(loF / math.Pi)
	loF -= d * math.Pi
	hiF -= d * math.Pi
	contains := func(v float64) bool { return v >= loF && v <= hiF }
	if contains(math.Pi/2) || contains(3*math.Pi/2) {
		return BoundsOf(NegativeInfinity, Infinity)
	}
	return BoundsOf(TanOf(b.lo), TanOf(b.hi))
}

// ============================================================
// cot
// ============================================================

func evalCot(arg Expr) Expr {
	switch arg {
	case NaN, ComplexInfinity:
		return NaN
	}
	if isZeroNum(arg) {
		return ComplexInfinity
	}
	if b, ok := arg.(*Bounds); ok {
		return Neg(TanOf(BoundsOf(AddOf(b.lo, piFrac(1, 2)), AddOf(b.hi, piFrac(1, 2)))))
	}
	if couldExtractMinusSign(arg) {
		return Neg(CotOf(Neg(arg)))
	}
	if ic := asImagCoeff(arg); ic != nil {
		return Neg(MulOf(ImaginaryUnit, CothOf(ic)))
	}

	if pc := PiCoefficient(arg); pc != nil {
		if isInteger(pc) == TriTrue {
			return ComplexInfinity
		}
		if n, ok := pc.(*Num); ok {
			return cotRational(arg, n)
		}
		npc := MulOf(pc, Pi)
		if !npc.Equal(arg) {
			return CotOf(npc)
		}
		return nil
	}

	if _, ok := arg.(*Add); ok {
		rest, m := PeelOffPi(arg)
		if !m.IsZero() {
			cotm := CotOf(piMul(m))
			if cotm.Equal(ComplexInfinity) {
				return CotOf(rest)
			}
			if isZeroNum(cotm) {
				return Neg(TanOf(rest))
			}
		}
	}

	if t, ok := bareTrig(arg, Acot); ok {
		return t.args[0]
	}
	if t, ok := bareTrig(arg, Atan); ok {
		return PowOf(t.args[0], N(-1))
	}
	if t, ok := bareTrig(arg, Atan2); ok {
		return Div(t.args[1], t.args[0])
	}
	if t, ok := bareTrig(arg, Asin); ok {
		x := t.args[0]
		return Div(SqrtOf(AddOf(N(1), Neg(PowOf(x, N(2))))), x)
	}
	if t, ok := bareTrig(arg, Acos); ok {
		x := t.args[0]
		return Div(x, SqrtOf(AddOf(N(1), Neg(PowOf(x, N(2))))))
	}
	if t, ok := bareTrig(arg, Acsc); ok {
		x := t.args[0]
		return MulOf(SqrtOf(AddOf(N(1), Neg(PowOf(x, N(-2))))), x)
	}
	if t, ok := bareTrig(arg, Asec); ok {
		x := t.args[0]
		return Div(N(1), MulOf(SqrtOf(AddOf(N(1), Neg(PowOf(x, N(-2))))), x))
	}
	return nil
}

func cotRational(arg Expr, pc *Num) Expr {
	p := pc.val.Num()
	q := pc.val.Denom()
	if !q.IsInt64() {
		return nil
	}
	qi := q.Int64()
	pm := new(big.Int).Mod(p, q)

	if qi == 5 || qi == 10 {
		return TanOf(AddOf(piFrac(1, 2), Neg(arg)))
	}
	if qi > 2 && qi%2 == 0 {
		narg := piMul(numMul(pc, N(2)))
		cres := CosOf(narg)
		sres := CosOf(AddOf(narg, Neg(piFrac(1, 2))))
		_, cIsCos := bareTrig(cres, Cos)
		_, sIsCos := bareTrig(sres, Cos)
		if !cIsCos && !sIsCos {
			return AddOf(PowOf(sres, N(-1)), Div(cres, sres))
		}
	}
	if den, ok := cosTable2[qi]; ok {
		a := piMul(NRat(new(big.Rat).SetFrac(pm, big.NewInt(den[0]))))
		b := piMul(NRat(new(big.Rat).SetFrac(pm, big.NewInt(den[1]))))
		nvala, nvalb := CotOf(a), CotOf(b)
		return Div(AddOf(N(1), MulOf(nvala, nvalb)), AddOf(nvalb, Neg(nvala)))
	}
	folded := new(big.Rat).Add(pc.val, ratHalf)
	folded = ratMod(folded, ratOne)
	folded.Sub(folded, ratHalf)
	narg := piMul(NRat(folded))
	cres := CosOf(narg)
	sres := CosOf(AddOf(narg, Neg(piFrac(1, 2))))
	_, cIsCos := bareTrig(cres, Cos)
	_, sIsCos := bareTrig(sres, Cos)
	if !cIsCos && !sIsCos {
		if isZeroNum(sres) {
			return ComplexInfinity
		}
		return Div(cres, sres)
	}
	if !narg.Equal(arg) {
		return CotOf(narg)
	}
	return nil
}

// ============================================================
// sec, csc — reciprocal evaluation
// ============================================================

func evalReciprocal(id TrigID, arg Expr) Expr {
	even := id == Sec

	if couldExtractMinusSign(arg) {
		if even {
			return trigCall(id, Neg(arg))
		}
		return Neg(trigCall(id, Neg(arg)))
	}

	if pc, ok := piCoeffRat(arg); ok && !numMul(pc, N(2)).IsInteger() {
		p := pc.val.Num()
		q := pc.val.Denom()
		twoQ := new(big.Int).Lsh(q, 1)
		pm := new(big.Int).Mod(p, twoQ)
		if pm.Cmp(q) > 0 {
			return Neg(trigCall(id, piMul(numSub(pc, N(1)))))
		}
		if new(big.Int).Lsh(pm, 1).Cmp(q) > 0 {
			narg := piMul(numSub(N(1), pc))
			if even {
				return Neg(trigCall(id, narg))
			}
			return trigCall(id, narg)
		}
	}

	if t, ok := bareTrig(arg, Asec); ok && even {
		return t.args[0]
	}
	if t, ok := bareTrig(arg, Acsc); ok && !even {
		return t.args[0]
	}

	var t Expr
	if even {
		t = evalCos(arg)
	} else {
		t = evalSin(arg)
	}
	if t == nil {
		return nil
	}
	if b, ok := t.(*Bounds); ok {
		return boundsRecip(b)
	}
	if inner, negated, ok := trigOrNeg(t, Cos); ok {
		r := Expr(&Trig{id: Sec, args: []Expr{inner.args[0]}})
		if negated {
			return Neg(r)
		}
		return r
	}
	if inner, negated, ok := trigOrNeg(t, Sin); ok {
		r := Expr(&Trig{id: Csc, args: []Expr{inner.args[0]}})
		if negated {
			return Neg(r)
		}
		return r
	}
	return PowOf(t, N(-1))
}

// boundsRecip inverts an accumulation interval elementwise.
func boundsRecip(b *Bounds) Expr {
	loF, ok1 := floatOf(b.lo)
	hiF, ok2 := floatOf(b.hi)
	if b.lo == NegativeInfinity || b.hi == Infinity || !ok1 || !ok2 || (loF <= 0 && hiF >= 0) {
		return BoundsOf(NegativeInfinity, Infinity)
	}
	return BoundsOf(PowOf(b.hi, N(-1)), PowOf(b.lo, N(-1)))
}

// ============================================================
// sinc
// ============================================================

func evalSinc(arg Expr) Expr {
	if isZeroNum(arg) {
		return N(1)
	}
	switch arg {
	case Infinity, NegativeInfinity:
		return N(0)
	case NaN, ComplexInfinity:
		return NaN
	}
	if couldExtractMinusSign(arg) {
		return SincOf(Neg(arg))
	}
	if pc, ok := piCoeffRat(arg); ok {
		if pc.IsInteger() {
			return N(0)
		}
		if pc.IsHalfInteger() {
			return Div(halfIntSign(pc), arg)
		}
	}
	return nil
}

// ============================================================
// asin
// ============================================================

func evalAsin(arg Expr) Expr {
	switch arg {
	case NaN:
		return NaN
	case Infinity:
		return MulOf(NegativeInfinity, ImaginaryUnit)
	case NegativeInfinity:
		return MulOf(Infinity, ImaginaryUnit)
	case ComplexInfinity:
		return ComplexInfinity
	}
	if n, ok := arg.(*Num); ok {
		if n.IsZero() {
			return N(0)
		}
		if n.IsOne() {
			return piFrac(1, 2)
		}
		if n.IsNegOne() {
			return piFrac(-1, 2)
		}
	}
	if couldExtractMinusSign(arg) {
		return Neg(AsinOf(Neg(arg)))
	}
	if isComparable(arg) {
		if v, ok := lookupTable(asinTable(), arg); ok {
			return v
		}
	}
	if ic := asImagCoeff(arg); ic != nil {
		return MulOf(ImaginaryUnit, AsinhOf(ic))
	}
	if t, ok := bareTrig(arg, Sin); ok && isComparable(t.args[0]) {
		if r := foldToSinBranch(t.args[0]); r != nil {
			return r
		}
	}
	if t, ok := bareTrig(arg, Cos); ok && isComparable(t.args[0]) {
		return AddOf(piFrac(1, 2), Neg(AcosOf(arg)))
	}
	return nil
}

// foldToSinBranch maps a comparable angle into [-pi/2, pi/2], the
// principal branch of asin, keeping the result exact.
func foldToSinBranch(ang Expr) Expr {
	f, ok := floatOf(ang)
	if !ok {
		return nil
	}
	ang, f, ok = modAngle(ang, f, true)
	if !ok {
		return nil
	}
	if f > math.Pi {
		ang = AddOf(Pi, Neg(ang))
		f = math.Pi - f
	}
	if f > math.Pi/2 {
		ang = AddOf(Pi, Neg(ang))
		f = math.Pi - f
	}
	if f < -math.Pi/2 {
		ang = AddOf(Neg(Pi), Neg(ang))
	}
	return ang
}

// ============================================================
// acos
// ============================================================

func evalAcos(arg Expr) Expr {
	switch arg {
	case NaN:
		return NaN
	case Infinity:
		return MulOf(Infinity, ImaginaryUnit)
	case NegativeInfinity:
		return MulOf(NegativeInfinity, ImaginaryUnit)
	case ComplexInfinity:
		return ComplexInfinity
	}
	if n, ok := arg.(*Num); ok {
		if n.IsZero() {
			return piFrac(1, 2)
		}
		if n.IsOne() {
			return N(0)
		}
		if n.IsNegOne() {
			return piMul(N(1))
		}
	}
	if isComparable(arg) {
		if v, ok := lookupTable(asinTable(), arg); ok {
			return AddOf(piFrac(1, 2), Neg(v))
		}
		if v, ok := lookupTable(asinTable(), Neg(arg)); ok {
			return AddOf(piFrac(1, 2), v)
		}
	}
	if ic := asImagCoeff(arg); ic != nil {
		return AddOf(piFrac(1, 2), Neg(AsinOf(arg)))
	}
	if t, ok := bareTrig(arg, Cos); ok && isComparable(t.args[0]) {
		if r := foldToCosBranch(t.args[0]); r != nil {
			return r
		}
	}
	if t, ok := bareTrig(arg, Sin); ok && isComparable(t.args[0]) {
		return AddOf(piFrac(1, 2), Neg(AsinOf(arg)))
	}
	return nil
}

// foldToCosBranch maps a comparable angle into [0, pi].
func foldToCosBranch(ang Expr) Expr {
	f, ok := floatOf(ang)
	if !ok {
		return nil
	}
	ang, f, ok = modAngle(ang, f, true)
	if !ok {
		return nil
	}
	if f > math.Pi {
		ang = AddOf(MulOf(N(2), Pi), Neg(ang))
	}
	return ang
}

// ============================================================
// atan
// ============================================================

func evalAtan(arg Expr) Expr {
	switch arg {
	case NaN:
		return NaN
	case Infinity:
		return piFrac(1, 2)
	case NegativeInfinity:
		return piFrac(-1, 2)
	case ComplexInfinity:
		return BoundsOf(piFrac(-1, 2), piFrac(1, 2))
	}
	if n, ok := arg.(*Num); ok {
		if n.IsZero() {
			return N(0)
		}
		if n.IsOne() {
			return piFrac(1, 4)
		}
		if n.IsNegOne() {
			return piFrac(-1, 4)
		}
	}
	if couldExtractMinusSign(arg) {
		return Neg(AtanOf(Neg(arg)))
	}
	if isComparable(arg) {
		if v, ok := lookupTable(atanTable(), arg); ok {
			return v
		}
	}
	if ic := asImagCoeff(arg); ic != nil {
		return MulOf(ImaginaryUnit, AtanhOf(ic))
	}
	if t, ok := bareTrig(arg, Tan); ok && isComparable(t.args[0]) {
		if r := foldToTanBranch(t.args[0]); r != nil {
			return r
		}
	}
	if t, ok := bareTrig(arg, Cot); ok && isComparable(t.args[0]) {
		ang := AddOf(piFrac(1, 2), Neg(AcotOf(arg)))
		if f, ok := floatOf(ang); ok && f > math.Pi/2 {
			ang = AddOf(ang, Neg(piMul(N(1))))
		}
		return ang
	}
	return nil
}

// foldToTanBranch maps a comparable angle into (-pi/2, pi/2].
func foldToTanBranch(ang Expr) Expr {
	f, ok := floatOf(ang)
	if !ok {
		return nil
	}
	ang, f, ok = modAngle(ang, f, false)
	if !ok {
		return nil
	}
	if f > math.Pi/2 {
		ang = AddOf(ang, Neg(piMul(N(1))))
	}
	return ang
}

// ============================================================
// acot
// ============================================================

func evalAcot(arg Expr) Expr {
	switch arg {
	case NaN:
		return NaN
	case Infinity, NegativeInfinity, ComplexInfinity:
		return N(0)
	}
	if n, ok := arg.(*Num); ok {
		if n.IsZero() {
			return piFrac(1, 2)
		}
		if n.IsOne() {
			return piFrac(1, 4)
		}
		if n.IsNegOne() {
			return piFrac(-1, 4)
		}
	}
	if couldExtractMinusSign(arg) {
		return Neg(AcotOf(Neg(arg)))
	}
	if isComparable(arg) {
		if v, ok := lookupTable(atanTable(), arg); ok {
			ang := AddOf(piFrac(1, 2), Neg(v))
			if f, ok2 := floatOf(ang); ok2 && f > math.Pi/2 {
				ang = AddOf(ang, Neg(piMul(N(1))))
			}
			return ang
		}
	}
	if ic := asImagCoeff(arg); ic != nil {
		return Neg(MulOf(ImaginaryUnit, AcothOf(ic)))
	}
	if t, ok := bareTrig(arg, Cot); ok && isComparable(t.args[0]) {
		if r := foldToTanBranch(t.args[0]); r != nil {
			return r
		}
	}
	if t, ok := bareTrig(arg, Tan); ok && isComparable(t.args[0]) {
		ang := AddOf(piFrac(1, 2), Neg(AtanOf(arg)))
		if f, ok := floatOf(ang); ok && f > math.Pi/2 {
			ang = AddOf(ang, Neg(piMul(N(1))))
		}
		return ang
	}
	return nil
}

// ============================================================
// asec
// ============================================================

func evalAsec(arg Expr) Expr {
	if isZeroNum(arg) {
		return ComplexInfinity
	}
	switch arg {
	case NaN:
		return NaN
	case Infinity, NegativeInfinity, ComplexInfinity:
		return piFrac(1, 2)
	}
	if n, ok := arg.(*Num); ok {
		if n.IsOne() {
			return N(0)
		}
		if n.IsNegOne() {
			return piMul(N(1))
		}
	}
	if isComparable(arg) {
		if v, ok := lookupTable(acscTable(), arg); ok {
			return AddOf(piFrac(1, 2), Neg(v))
		}
		if v, ok := lookupTable(acscTable(), Neg(arg)); ok {
			return AddOf(piFrac(1, 2), v)
		}
	}
	if t, ok := bareTrig(arg, Sec); ok && isComparable(t.args[0]) {
		if r := foldToCosBranch(t.args[0]); r != nil {
			return r
		}
	}
	if t, ok := bareTrig(arg, Csc); ok && isComparable(t.args[0]) {
		return AddOf(piFrac(1, 2), Neg(AcscOf(arg)))
	}
	return nil
}

// ============================================================
// acsc
// ============================================================

func evalAcsc(arg Expr) Expr {
	if isZeroNum(arg) {
		return ComplexInfinity
	}
	switch arg {
	case NaN:
		return NaN
	case Infinity, NegativeInfinity, ComplexInfinity:
		return N(0)
	}
	if n, ok := arg.(*Num); ok {
		if n.IsOne() {
			return piFrac(1, 2)
		}
		if n.IsNegOne() {
			return piFrac(-1, 2)
		}
	}
	if couldExtractMinusSign(arg) {
		return Neg(AcscOf(Neg(arg)))
	}
	if isComparable(arg) {
		if v, ok := lookupTable(acscTable(), arg); ok {
			return v
		}
	}
	if t, ok := bareTrig(arg, Csc); ok && isComparable(t.args[0]) {
		if r := foldToSinBranch(t.args[0]); r != nil {
			return r
		}
	}
	if t, ok := bareTrig(arg, Sec); ok && isComparable(t.args[0]) {
		return AddOf(piFrac(1, 2), Neg(AsecOf(arg)))
	}
	return nil
}

// ============================================================
// atan2
// ============================================================

func evalAtan2(y, x Expr) Expr {
	if y == NaN || x == NaN {
		return NaN
	}
	if x == NegativeInfinity {
		if isZeroNum(y) {
			return piMul(N(1))
		}
		if sy, ok := signOf(y); ok {
			if sy > 0 {
				return piMul(N(1))
			}
			if sy < 0 {
				return piMul(N(-1))
			}
			return piMul(N(1))
		}
		return nil
	}
	if x == Infinity {
		return N(0)
	}
	if iy, ix := asImagCoeff(y), asImagCoeff(x); iy != nil && ix != nil &&
		isComparable(iy) && isComparable(ix) {
		y, x = iy, ix
	}
	if isRealValued(x) == TriTrue && isRealValued(y) == TriTrue {
		sx, okx := signOf(x)
		if okx {
			switch {
			case sx > 0:
				return AtanOf(Div(y, x))
			case sx < 0:
				if sy, oky := signOf(y); oky {
					if sy < 0 {
						return AddOf(AtanOf(Div(y, x)), Neg(piMul(N(1))))
					}
					return AddOf(AtanOf(Div(y, x)), piMul(N(1)))
				}
			default:
				if sy, oky := signOf(y); oky {
					if sy > 0 {
						return piFrac(1, 2)
					}
					if sy < 0 {
						return piFrac(-1, 2)
					}
					return NaN
				}
			}
		}
	}
	return nil
}

// ============================================================
// Expr plumbing for Trig nodes
// ============================================================

func (t *Trig) ID() TrigID  { return t.id }
func (t *Trig) Args() []Expr { return t.args }
func (t *Trig) Arg() Expr    { return t.args[0] }

func (t *Trig) Simplify() Expr { return trigCall(t.id, t.args...) }

func (t *Trig) String() string {
	parts := make([]string, len(t.args))
	for i, a := range t.args {
		parts[i] = a.String()
	}
	return t.id.String() + "(" + strings.Join(parts, ", ") + ")"
}

func (t *Trig) LaTeX() string {
	inner := make([]string, len(t.args))
	for i, a := range t.args {
		inner[i] = a.LaTeX()
	}
	body := strings.Join(inner, ", ")
	switch t.id {
	case Sin, Cos, Tan, Cot, Sec, Csc:
		return "\\" + t.id.String() + "\\left(" + body + "\\right)"
	case Asin:
		return "\\arcsin\\left(" + body + "\\right)"
	case Acos:
		return "\\arccos\\left(" + body + "\\right)"
	case Atan:
		return "\\arctan\\left(" + body + "\\right)"
	}
	return "\\operatorname{" + t.id.String() + "}\\left(" + body + "\\right)"
}

func (t *Trig) Sub(varName string, value Expr) Expr {
	newArgs := make([]Expr, len(t.args))
	for i, a := range t.args {
		newArgs[i] = a.Sub(varName, value)
	}
	return trigCall(t.id, newArgs...)
}

func (t *Trig) Diff(varName string) Expr {
	terms := make([]Expr, len(t.args))
	for i := range t.args {
		terms[i] = MulOf(trigDeriv(t.id, t.args, i), t.args[i].Diff(varName))
	}
	return AddOf(terms...)
}

// trigDeriv is the partial derivative of the function with respect to
// its i-th argument.
func trigDeriv(id TrigID, args []Expr, i int) Expr {
	u := args[0]
	switch id {
	case Sin:
		return CosOf(u)
	case Cos:
		return Neg(SinOf(u))
	case Tan:
		return AddOf(PowOf(TanOf(u), N(2)), N(1))
	case Cot:
		return AddOf(N(-1), Neg(PowOf(CotOf(u), N(2))))
	case Sec:
		return MulOf(TanOf(u), SecOf(u))
	case Csc:
		return Neg(MulOf(CotOf(u), CscOf(u)))
	case Sinc:
		return AddOf(Div(CosOf(u), u), Neg(Div(SinOf(u), PowOf(u, N(2)))))
	case Asin:
		return PowOf(AddOf(N(1), Neg(PowOf(u, N(2)))), F(-1, 2))
	case Acos:
		return Neg(PowOf(AddOf(N(1), Neg(PowOf(u, N(2)))), F(-1, 2)))
	case Atan:
		return PowOf(AddOf(N(1), PowOf(u, N(2))), N(-1))
	case Acot:
		return Neg(PowOf(AddOf(N(1), PowOf(u, N(2))), N(-1)))
	case Asec:
		return Div(N(1), MulOf(PowOf(u, N(2)), SqrtOf(AddOf(N(1), Neg(PowOf(u, N(-2)))))))
	case Acsc:
		return Neg(Div(N(1), MulOf(PowOf(u, N(2)), SqrtOf(AddOf(N(1), Neg(PowOf(u, N(-2))))))))
	case Atan2:
		y, x := args[0], args[1]
		den := AddOf(PowOf(x, N(2)), PowOf(y, N(2)))
		if i == 0 {
			return Div(x, den)
		}
		return Neg(Div(y, den))
	}
	return N(0)
}

func (t *Trig) Eval() (*Num, bool) {
	vals := make([]float64, len(t.args))
	for i, a := range t.args {
		v, ok := floatOf(a)
		if !ok {
			return nil, false
		}
		vals[i] = v
	}
	v := vals[0]
	var r float64
	switch t.id {
	case Sin:
		r = math.Sin(v)
	case Cos:
		r = math.Cos(v)
	case Tan:
		r = math.Tan(v)
	case Cot:
		s := math.Sin(v)
		if s == 0 {
			return nil, false
		}
		r = math.Cos(v) / s
	case Sec:
		c := math.Cos(v)
		if c == 0 {
			return nil, false
		}
		r = 1 / c
	case Csc:
		s := math.Sin(v)
		if s == 0 {
			return nil, false
		}
		r = 1 / s
	case Sinc:
		if v == 0 {
			r = 1
		} else {
			r = math.Sin(v) / v
		}
	case Asin:
		if v < -1 || v > 1 {
			return nil, false
		}
		r = math.Asin(v)
	case Acos:
		if v < -1 || v > 1 {
			return nil, false
		}
		r = math.Acos(v)
	case Atan:
		r = math.Atan(v)
	case Acot:
		if v == 0 {
			r = math.Pi / 2
		} else {
			r = math.Atan(1 / v)
		}
	case Asec:
		if v > -1 && v < 1 {
			return nil, false
		}
		r = math.Acos(1 / v)
	case Acsc:
		if v > -1 && v < 1 {
			return nil, false
		}
		r = math.Asin(1 / v)
	case Atan2:
		if v == 0 && vals[1] == 0 {
			return nil, false
		}
		r = math.Atan2(v, vals[1])
	default:
		return nil, false
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil, false
	}
	return NFloat(r), true
}

func (t *Trig) Equal(other Expr) bool {
	o, ok := other.(*Trig)
	if !ok || t.id != o.id || len(t.args) != len(o.args) {
		return false
	}
	for i := range t.args {
		if !t.args[i].Equal(o.args[i]) {
			return false
		}
	}
	return true
}

func (t *Trig) exprType() string { return "trig" }

func (t *Trig) toJSON() map[string]interface{} {
	as := make([]map[string]interface{}, len(t.args))
	for i, a := range t.args {
		as[i] = a.toJSON()
	}
	return map[string]interface{}{"type": "trig", "name": t.id.String(), "args": as}
}
