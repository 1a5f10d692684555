// Package gotrig is an exact symbolic engine for the circular and
// inverse-circular functions.
//
// Design goals:
//   - Exact rational arithmetic (math/big.Rat); no floating-point shortcuts
//     inside simplification
//   - Deterministic simplification and stable output
//   - Special values (sin(pi/5), cos(pi/257), atan(sqrt(3)), ...) reduced to
//     closed radical form
//   - Embeddable in Go services, CLI tools, and agent backends
package gotrig

import (
	"fmt"
	"math"
	"math/big"
	"sort"
	"strings"
)

// ============================================================
// Core Interface
// ============================================================

type Expr interface {
	Simplify() Expr
	String() string
	LaTeX() string
	Sub(varName string, value Expr) Expr
	Diff(varName string) Expr
	Eval() (*Num, bool)
	Equal(other Expr) bool
	exprType() string
	toJSON() map[string]interface{}
}

// ============================================================
// Num — exact rational number
// ============================================================

type Num struct{ val *big.Rat }

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }
func F(p, q int64) *Num {
	if q == 0 {
		panic("gotrig: denominator is zero")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}
func NFloat(f float64) *Num  { return &Num{val: new(big.Rat).SetFloat64(f)} }
func NRat(r *big.Rat) *Num   { return &Num{val: new(big.Rat).Set(r)} }

func (n *Num) Simplify() Expr        { return n }
func (n *Num) Sub(string, Expr) Expr { return n }
func (n *Num) Diff(string) Expr      { return N(0) }
func (n *Num) Eval() (*Num, bool)    { return n, true }
func (n *Num) Equal(other Expr) bool { o, ok := other.(*Num); return ok && n.val.Cmp(o.val) == 0 }
func (n *Num) exprType() string      { return "num" }
func (n *Num) Float64() float64      { f, _ := n.val.Float64(); return f }
func (n *Num) IsZero() bool          { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool           { return n.val.Cmp(ratOne) == 0 }
func (n *Num) IsNegOne() bool        { return n.val.Cmp(ratNegOne) == 0 }
func (n *Num) IsInteger() bool       { return n.val.IsInt() }
func (n *Num) Rat() *big.Rat         { return new(big.Rat).Set(n.val) }
func (n *Num) IsPositive() bool      { return n.val.Sign() > 0 }
func (n *Num) IsNegative() bool      { return n.val.Sign() < 0 }

// IsHalfInteger reports whether n is an odd multiple of 1/2.
func (n *Num) IsHalfInteger() bool { return n.val.Denom().Cmp(big.NewInt(2)) == 0 }

var (
	ratOne    = new(big.Rat).SetInt64(1)
	ratNegOne = new(big.Rat).SetInt64(-1)
)

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func (n *Num) LaTeX() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	sign := ""
	v := new(big.Rat).Set(n.val)
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return fmt.Sprintf("%s\\frac{%s}{%s}", sign, v.Num().String(), v.Denom().String())
}

func (n *Num) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "num", "value": n.String()}
}

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numSub(a, b *Num) *Num { return &Num{val: new(big.Rat).Sub(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numNeg(a *Num) *Num    { return &Num{val: new(big.Rat).Neg(a.val)} }
func numRecip(a *Num) *Num {
	if a.IsZero() {
		panic("gotrig: division by zero")
	}
	return &Num{val: new(big.Rat).Inv(a.val)}
}
func numDiv(a, b *Num) *Num { return numMul(a, numRecip(b)) }
func numAbs(a *Num) *Num {
	r := new(big.Rat).Set(a.val)
	if r.Sign() < 0 {
		r.Neg(r)
	}
	return &Num{val: r}
}
func numCmp(a, b *Num) int { return a.val.Cmp(b.val) }

// ratFloor returns floor(a) as a big integer.
func ratFloor(a *big.Rat) *big.Int {
	q := new(big.Int)
	m := new(big.Int)
	q.DivMod(a.Num(), a.Denom(), m)
	return q
}

// ratMod returns a mod m with a result in [0, m) for positive m.
func ratMod(a, m *big.Rat) *big.Rat {
	quo := new(big.Rat).Quo(a, m)
	fl := ratFloor(quo)
	out := new(big.Rat).Mul(m, new(big.Rat).SetInt(fl))
	return out.Sub(new(big.Rat).Set(a), out)
}

// numMod returns a mod m, normalized to [0, m).
func numMod(a, m *Num) *Num { return &Num{val: ratMod(a.val, m.val)} }

// ============================================================
// Sym — symbolic variable, optionally carrying assumptions
// ============================================================

type Sym struct {
	name   string
	assume Assumptions
}

func S(name string) *Sym { return &Sym{name: name} }

// SymWith builds a symbol carrying explicit assumptions.
func SymWith(name string, a Assumptions) *Sym { return &Sym{name: name, assume: a} }

// IntSym builds a symbol assumed to take integer values.
func IntSym(name string) *Sym {
	return &Sym{name: name, assume: Assumptions{Integer: TriTrue, Real: TriTrue}}
}

func (s *Sym) Simplify() Expr { return s }
func (s *Sym) String() string { return s.name }
func (s *Sym) LaTeX() string  { return s.name }
func (s *Sym) Eval() (*Num, bool) {
	return nil, false
}
func (s *Sym) Equal(other Expr) bool { o, ok := other.(*Sym); return ok && s.name == o.name }
func (s *Sym) exprType() string      { return "sym" }
func (s *Sym) Name() string          { return s.name }
func (s *Sym) Assume() Assumptions   { return s.assume }
func (s *Sym) toJSON() map[string]interface{} {
	m := map[string]interface{}{"type": "sym", "name": s.name}
	if as := s.assume.toJSON(); len(as) > 0 {
		m["assume"] = as
	}
	return m
}
func (s *Sym) Sub(varName string, value Expr) Expr {
	if s.name == varName {
		return value
	}
	return s
}
func (s *Sym) Diff(varName string) Expr {
	if s.name == varName {
		return N(1)
	}
	return N(0)
}

// ============================================================
// Const — named transcendental constant
// ============================================================

type Const struct{ name string }

// Pi is the circle constant. It prints as "pi" and participates in the
// pi-coefficient extraction that drives special-angle evaluation.
var Pi = &Const{name: "pi"}

func (c *Const) Simplify() Expr        { return c }
func (c *Const) String() string        { return c.name }
func (c *Const) LaTeX() string         { return "\\" + c.name }
func (c *Const) Sub(string, Expr) Expr { return c }
func (c *Const) Diff(string) Expr      { return N(0) }
func (c *Const) Eval() (*Num, bool) {
	if c.name == "pi" {
		return NFloat(math.Pi), true
	}
	return nil, false
}
func (c *Const) Equal(other Expr) bool { o, ok := other.(*Const); return ok && c.name == o.name }
func (c *Const) exprType() string      { return "const" }
func (c *Const) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "const", "name": c.name}
}

// ============================================================
// Imag — the imaginary unit
// ============================================================

type Imag struct{}

// ImaginaryUnit is the imaginary unit i. Products fold powers of i
// (i*i simplifies to -1), which is what the imaginary-axis shortcuts
// in the evaluators rely on.
var ImaginaryUnit = &Imag{}

func (i *Imag) Simplify() Expr        { return i }
func (i *Imag) String() string        { return "I" }
func (i *Imag) LaTeX() string         { return "i" }
func (i *Imag) Sub(string, Expr) Expr { return i }
func (i *Imag) Diff(string) Expr      { return N(0) }
func (i *Imag) Eval() (*Num, bool)    { return nil, false }
func (i *Imag) Equal(other Expr) bool { _, ok := other.(*Imag); return ok }
func (i *Imag) exprType() string      { return "imag" }
func (i *Imag) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "imag"}
}

// ============================================================
// Special — infinities and NaN
// ============================================================

type Special struct{ name string }

var (
	Infinity         = &Special{name: "oo"}
	NegativeInfinity = &Special{name: "-oo"}
	ComplexInfinity  = &Special{name: "zoo"}
	NaN              = &Special{name: "nan"}
)

func (s *Special) Simplify() Expr        { return s }
func (s *Special) String() string        { return s.name }
func (s *Special) Sub(string, Expr) Expr { return s }
func (s *Special) Diff(string) Expr      { return N(0) }
func (s *Special) Eval() (*Num, bool)    { return nil, false }
func (s *Special) Equal(other Expr) bool {
	o, ok := other.(*Special)
	return ok && s.name == o.name
}
func (s *Special) exprType() string { return "special" }
func (s *Special) LaTeX() string {
	switch s.name {
	case "oo":
		return "\\infty"
	case "-oo":
		return "-\\infty"
	case "zoo":
		return "\\tilde{\\infty}"
	}
	return "\\mathrm{NaN}"
}
func (s *Special) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "special", "name": s.name}
}

// ============================================================
// Bounds — a bounded accumulation interval
// ============================================================

// Bounds represents the set of accumulation points of an oscillating
// expression, e.g. sin(oo) = Bounds(-1, 1).
type Bounds struct{ lo, hi Expr }

func BoundsOf(lo, hi Expr) Expr {
	lo = lo.Simplify()
	hi = hi.Simplify()
	if lo.Equal(hi) {
		return lo
	}
	return &Bounds{lo: lo, hi: hi}
}

func (b *Bounds) Simplify() Expr { return BoundsOf(b.lo, b.hi) }
func (b *Bounds) String() string {
	return "Bounds(" + b.lo.String() + ", " + b.hi.String() + ")"
}
func (b *Bounds) LaTeX() string {
	return "\\left\\langle " + b.lo.LaTeX() + ", " + b.hi.LaTeX() + "\\right\\rangle"
}
func (b *Bounds) Sub(varName string, value Expr) Expr {
	return BoundsOf(b.lo.Sub(varName, value), b.hi.Sub(varName, value))
}
func (b *Bounds) Diff(string) Expr   { return N(0) }
func (b *Bounds) Eval() (*Num, bool) { return nil, false }
func (b *Bounds) Equal(other Expr) bool {
	o, ok := other.(*Bounds)
	return ok && b.lo.Equal(o.lo) && b.hi.Equal(o.hi)
}
func (b *Bounds) exprType() string { return "bounds" }
func (b *Bounds) Lo() Expr         { return b.lo }
func (b *Bounds) Hi() Expr         { return b.hi }
func (b *Bounds) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "bounds", "lo": b.lo.toJSON(), "hi": b.hi.toJSON()}
}

// ============================================================
// Add — sum of terms
// ============================================================

type Add struct{ terms []Expr }

func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

func (a *Add) Simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		s := t.Simplify()
		if inner, ok := s.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, s)
		}
	}

	if r, done := addSpecials(flat); done {
		return r
	}

	// Collect like terms keyed by their non-numeric part.
	numAccum := N(0)
	coeffs := map[string]*Num{}
	reps := map[string]Expr{}
	order := []string{}
	for _, t := range flat {
		if v, ok := t.(*Num); ok {
			numAccum = numAdd(numAccum, v)
			continue
		}
		c, rest := extractCoefficient(t)
		key := rest.String()
		if _, seen := coeffs[key]; !seen {
			order = append(order, key)
			coeffs[key] = N(0)
			reps[key] = rest
		}
		coeffs[key] = numAdd(coeffs[key], c)
	}
	sort.Strings(order)
	result := []Expr{}
	for _, key := range order {
		coeff := coeffs[key]
		if coeff.IsZero() {
			continue
		}
		if coeff.IsOne() {
			result = append(result, reps[key])
		} else {
			result = append(result, MulOf(coeff, reps[key]))
		}
	}
	if !numAccum.IsZero() {
		result = append(result, numAccum)
	}
	if len(result) == 0 {
		return N(0)
	}
	if len(result) == 1 {
		return result[0]
	}
	return &Add{terms: result}
}

// addSpecials folds infinities and NaN out of a flattened term list.
func addSpecials(flat []Expr) (Expr, bool) {
	var pos, neg, cpx, nan int
	for _, t := range flat {
		switch t {
		case Infinity:
			pos++
		case NegativeInfinity:
			neg++
		case ComplexInfinity:
			cpx++
		case NaN:
			nan++
		}
	}
	if pos+neg+cpx+nan == 0 {
		return nil, false
	}
	if nan > 0 || (pos > 0 && neg > 0) || cpx > 1 || (cpx > 0 && pos+neg > 0) {
		return NaN, true
	}
	if cpx == 1 {
		return ComplexInfinity, true
	}
	if pos > 0 {
		return Infinity, true
	}
	return NegativeInfinity, true
}

func (a *Add) String() string {
	if len(a.terms) == 0 {
		return "0"
	}
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}

func (a *Add) LaTeX() string {
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.LaTeX()
	}
	return strings.Join(parts, " + ")
}

func (a *Add) Sub(varName string, value Expr) Expr {
	newTerms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		newTerms[i] = t.Sub(varName, value)
	}
	return AddOf(newTerms...)
}

func (a *Add) Diff(varName string) Expr {
	dTerms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		dTerms[i] = t.Diff(varName)
	}
	return AddOf(dTerms...)
}

func (a *Add) Eval() (*Num, bool) {
	acc := N(0)
	for _, t := range a.terms {
		v, ok := t.Eval()
		if !ok {
			return nil, false
		}
		acc = numAdd(acc, v)
	}
	return acc, true
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

func (a *Add) exprType() string { return "add" }
func (a *Add) toJSON() map[string]interface{} {
	ts := make([]map[string]interface{}, len(a.terms))
	for i, t := range a.terms {
		ts[i] = t.toJSON()
	}
	return map[string]interface{}{"type": "add", "terms": ts}
}
func (a *Add) Terms() []Expr { return a.terms }

// ============================================================
// Mul — product of factors
// ============================================================

type Mul struct{ factors []Expr }

func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

// Neg returns -e.
func Neg(e Expr) Expr { return MulOf(N(-1), e) }

// Div returns a/b.
func Div(a, b Expr) Expr { return MulOf(a, PowOf(b, N(-1))) }

func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}
	coeff := N(1)
	imagCount := 0
	specials := []*Special{}
	others := []Expr{}
	for _, f := range flat {
		switch v := f.(type) {
		case *Num:
			coeff = numMul(coeff, v)
		case *Imag:
			imagCount++
		case *Special:
			specials = append(specials, v)
		default:
			others = append(others, f)
		}
	}

	// Fold powers of the imaginary unit.
	withI := false
	switch imagCount % 4 {
	case 1:
		withI = true
	case 2:
		coeff = numNeg(coeff)
	case 3:
		coeff = numNeg(coeff)
		withI = true
	}

	if len(specials) > 0 {
		return mulSpecials(coeff, specials, others, withI)
	}
	if coeff.IsZero() {
		return N(0)
	}

	others = combineBases(others, &coeff)
	if withI {
		others = append(others, ImaginaryUnit)
	}
	if len(others) == 0 {
		return coeff
	}

	// Precompute sort keys to avoid repeated String() calls in comparator.
	type keyed struct {
		e   Expr
		key string
	}
	ks := make([]keyed, len(others))
	for i, e := range others {
		ks[i] = keyed{e: e, key: e.String()}
	}
	sort.Slice(ks, func(i, j int) bool { return ks[i].key < ks[j].key })
	sortedOthers := make([]Expr, len(ks))
	for i := range ks {
		sortedOthers[i] = ks[i].e
	}
	others = sortedOthers

	if coeff.IsOne() {
		if len(others) == 1 {
			return others[0]
		}
		return &Mul{factors: others}
	}
	return &Mul{factors: append([]Expr{coeff}, others...)}
}

// combineBases merges repeated bases into a single power, folding any
// numeric outcome into the coefficient.
func combineBases(factors []Expr, coeff **Num) []Expr {
	type slot struct {
		base Expr
		exps []Expr
	}
	seen := map[string]int{}
	slots := []slot{}
	for _, f := range factors {
		var base, exp Expr
		if p, ok := f.(*Pow); ok {
			base, exp = p.base, p.exp
		} else {
			base, exp = f, N(1)
		}
		key := base.String()
		if i, ok := seen[key]; ok {
			slots[i].exps = append(slots[i].exps, exp)
		} else {
			seen[key] = len(slots)
			slots = append(slots, slot{base: base, exps: []Expr{exp}})
		}
	}
	out := make([]Expr, 0, len(slots))
	for _, sl := range slots {
		if len(sl.exps) == 1 {
			if en, ok := sl.exps[0].(*Num); ok && en.IsOne() {
				out = append(out, sl.base)
			} else {
				out = append(out, &Pow{base: sl.base, exp: sl.exps[0]})
			}
			continue
		}
		e := PowOf(sl.base, AddOf(sl.exps...))
		if n, ok := e.(*Num); ok {
			*coeff = numMul(*coeff, n)
			continue
		}
		out = append(out, e)
	}
	return out
}

// mulSpecials resolves a product containing infinities.
func mulSpecials(coeff *Num, specials []*Special, others []Expr, withI bool) Expr {
	var result *Special
	for _, s := range specials {
		if s == NaN {
			return NaN
		}
		if result == nil {
			result = s
			continue
		}
		if result == ComplexInfinity || s == ComplexInfinity {
			result = ComplexInfinity
			continue
		}
		if result == s {
			result = Infinity
		} else {
			result = NegativeInfinity
		}
	}
	if coeff.IsZero() {
		return NaN
	}
	if coeff.IsNegative() && result != ComplexInfinity {
		if result == Infinity {
			result = NegativeInfinity
		} else {
			result = Infinity
		}
	}
	if len(others) == 0 && !withI {
		return result
	}
	fs := append([]Expr{}, others...)
	if withI {
		fs = append(fs, ImaginaryUnit)
	}
	return &Mul{factors: append([]Expr{result}, fs...)}
}

func (m *Mul) String() string {
	if len(m.factors) == 0 {
		return "1"
	}
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		_, isAdd := f.(*Add)
		if isAdd {
			parts[i] = "(" + f.String() + ")"
		} else {
			parts[i] = f.String()
		}
	}
	return strings.Join(parts, "*")
}

func (m *Mul) LaTeX() string {
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		_, isAdd := f.(*Add)
		if isAdd {
			parts[i] = "\\left(" + f.LaTeX() + "\\right)"
		} else {
			parts[i] = f.LaTeX()
		}
	}
	return strings.Join(parts, " ")
}

func (m *Mul) Sub(varName string, value Expr) Expr {
	newFactors := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		newFactors[i] = f.Sub(varName, value)
	}
	return MulOf(newFactors...)
}

func (m *Mul) Diff(varName string) Expr {
	terms := make([]Expr, len(m.factors))
	for i, fi := range m.factors {
		dfi := fi.Diff(varName)
		others := make([]Expr, 0, len(m.factors)-1)
		for j, fj := range m.factors {
			if j != i {
				others = append(others, fj)
			}
		}
		if len(others) == 0 {
			terms[i] = dfi
		} else {
			terms[i] = MulOf(append([]Expr{dfi}, others...)...)
		}
	}
	return AddOf(terms...)
}

func (m *Mul) Eval() (*Num, bool) {
	acc := N(1)
	for _, f := range m.factors {
		v, ok := f.Eval()
		if !ok {
			return nil, false
		}
		acc = numMul(acc, v)
	}
	return acc, true
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

func (m *Mul) exprType() string { return "mul" }
func (m *Mul) toJSON() map[string]interface{} {
	fs := make([]map[string]interface{}, len(m.factors))
	for i, f := range m.factors {
		fs[i] = f.toJSON()
	}
	return map[string]interface{}{"type": "mul", "factors": fs}
}
func (m *Mul) Factors() []Expr { return m.factors }

// ============================================================
// Pow — base^exponent
// ============================================================

type Pow struct{ base, exp Expr }

func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

// SqrtOf returns the principal square root of arg.
func SqrtOf(arg Expr) Expr { return PowOf(arg, F(1, 2)) }

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	if en, ok := exp.(*Num); ok && en.IsZero() {
		return N(1)
	}
	if en, ok := exp.(*Num); ok && en.IsOne() {
		return base
	}

	// Handle 0^exp carefully.
	if bn, ok := base.(*Num); ok && bn.IsZero() {
		if en, ok2 := exp.(*Num); ok2 {
			// 0^0 is indeterminate; 0^negative is unbounded.
			if en.IsZero() {
				return &Pow{base: base, exp: exp}
			}
			if en.IsNegative() {
				return ComplexInfinity
			}
		}
		return N(0)
	}

	if bn, ok := base.(*Num); ok && bn.IsOne() {
		return N(1)
	}

	// Powers of the imaginary unit cycle with period 4.
	if _, ok := base.(*Imag); ok {
		if en, ok2 := exp.(*Num); ok2 && en.IsInteger() {
			k := new(big.Int).Mod(en.val.Num(), big.NewInt(4)).Int64()
			switch k {
			case 0:
				return N(1)
			case 1:
				return ImaginaryUnit
			case 2:
				return N(-1)
			}
			return Neg(ImaginaryUnit)
		}
	}

	// Integer exponents distribute over products, so reciprocals of
	// radical forms like 1/(2*sqrt(3)) renormalize.
	if mb, ok := base.(*Mul); ok {
		if en, ok2 := exp.(*Num); ok2 && en.IsInteger() {
			fs := make([]Expr, len(mb.factors))
			for i, f := range mb.factors {
				fs[i] = PowOf(f, en)
			}
			return MulOf(fs...)
		}
	}

	if bn, ok := base.(*Num); ok {
		if en, ok2 := exp.(*Num); ok2 {
			if en.IsInteger() {
				e := en.val.Num().Int64()
				if e >= 0 && e <= 64 {
					return numIntPow(bn, e)
				}
				if e < 0 && e >= -64 {
					return numRecip(numIntPow(bn, -e))
				}
			} else if r := numRootForm(bn, en); r != nil {
				return r
			}
		}
	}
	if inner, ok := base.(*Pow); ok {
		newExp := MulOf(inner.exp, exp).Simplify()
		return PowOf(inner.base, newExp)
	}
	return &Pow{base: base, exp: exp}
}

func numIntPow(b *Num, e int64) *Num {
	result := N(1)
	for i := int64(0); i < e; i++ {
		result = numMul(result, b)
	}
	return result
}

// numRootForm canonicalizes b^(p/2) for rational b: the square part of the
// radicand is extracted, denominators are rationalized, and sqrt(-x)
// becomes i*sqrt(x). For other fractional exponents only perfect powers
// reduce. Returns nil when no canonical form applies.
func numRootForm(b *Num, e *Num) Expr {
	q := e.val.Denom().Int64()
	p := e.val.Num()
	if q == 2 && p.IsInt64() && p.Int64() >= -9 && p.Int64() <= 9 {
		pv := p.Int64()
		// b^(p/2) = sqrt(b^p)
		var radicand *Num
		if pv > 0 {
			radicand = numIntPow(b, pv)
		} else {
			if b.IsZero() {
				return nil
			}
			radicand = numRecip(numIntPow(b, -pv))
		}
		return sqrtNum(radicand)
	}
	// Perfect q-th powers: b^(p/q) with b = r^q reduces to r^p.
	if q > 2 && q <= 8 {
		rn, okN := intRoot(radNum(b), q)
		rd, okD := intRoot(radDenom(b), q)
		if okN && okD && b.IsPositive() {
			root := &Num{val: new(big.Rat).SetFrac(rn, rd)}
			return PowOf(root, NRat(new(big.Rat).SetInt(p)))
		}
	}
	return nil
}

func radNum(b *Num) *big.Int   { return new(big.Int).Set(b.val.Num()) }
func radDenom(b *Num) *big.Int { return new(big.Int).Set(b.val.Denom()) }

// sqrtNum returns the canonical form of sqrt(r) for rational r:
// a pure Num when r is a perfect square, otherwise c*sqrt(k) with k
// a squarefree positive integer.
func sqrtNum(r *Num) Expr {
	if r.IsZero() {
		return N(0)
	}
	if r.IsNegative() {
		return MulOf(ImaginaryUnit, sqrtNum(numNeg(r)))
	}
	// sqrt(n/d) = sqrt(n*d)/d
	n := r.val.Num()
	d := r.val.Denom()
	m := new(big.Int).Mul(n, d)
	square, free := splitSquare(m)
	coeff := new(big.Rat).SetFrac(square, d)
	if free.Cmp(big.NewInt(1)) == 0 {
		return &Num{val: coeff}
	}
	c := &Num{val: coeff}
	root := &Pow{base: &Num{val: new(big.Rat).SetInt(free)}, exp: F(1, 2)}
	if c.IsOne() {
		return root
	}
	return &Mul{factors: []Expr{c, root}}
}

// splitSquare factors m = s^2 * k with k squarefree, by trial division.
// Very large radicands are left intact.
func splitSquare(m *big.Int) (s, k *big.Int) {
	s = big.NewInt(1)
	k = new(big.Int).Set(m)
	if m.BitLen() > 64 {
		return s, k
	}
	v := m.Int64()
	var sq, free int64 = 1, 1
	for d := int64(2); d*d <= v; d++ {
		for v%(d*d) == 0 {
			v /= d * d
			sq *= d
		}
		for v%d == 0 {
			v /= d
			free *= d
		}
	}
	free *= v
	return big.NewInt(sq), big.NewInt(free)
}

// intRoot returns the exact q-th root of m when it exists.
func intRoot(m *big.Int, q int64) (*big.Int, bool) {
	if m.Sign() < 0 || !m.IsInt64() {
		return nil, false
	}
	v := m.Int64()
	r := int64(math.Round(math.Pow(float64(v), 1/float64(q))))
	for _, c := range []int64{r - 1, r, r + 1} {
		if c < 0 {
			continue
		}
		pow := int64(1)
		ok := true
		for i := int64(0); i < q; i++ {
			pow *= c
			if pow < 0 {
				ok = false
				break
			}
		}
		if ok && pow == v {
			return big.NewInt(c), true
		}
	}
	return nil, false
}

func (p *Pow) String() string {
	baseStr := p.base.String()
	expStr := p.exp.String()
	_, baseIsAdd := p.base.(*Add)
	_, baseIsMul := p.base.(*Mul)
	if baseIsAdd || baseIsMul {
		baseStr = "(" + baseStr + ")"
	}
	if _, ok := p.exp.(*Num); !ok {
		expStr = "(" + expStr + ")"
	} else if strings.Contains(expStr, "/") || strings.HasPrefix(expStr, "-") {
		expStr = "(" + expStr + ")"
	}
	return baseStr + "^" + expStr
}

func (p *Pow) LaTeX() string {
	baseStr := p.base.LaTeX()
	expStr := p.exp.LaTeX()
	_, baseIsAdd := p.base.(*Add)
	_, baseIsMul := p.base.(*Mul)
	if baseIsAdd || baseIsMul {
		baseStr = "\\left(" + baseStr + "\\right)"
	}
	return baseStr + "^{" + expStr + "}"
}

func (p *Pow) Sub(varName string, value Expr) Expr {
	return PowOf(p.base.Sub(varName, value), p.exp.Sub(varName, value))
}

func (p *Pow) Diff(varName string) Expr {
	du := p.base.Diff(varName)
	dv := p.exp.Diff(varName)
	_, expIsNum := p.exp.(*Num)
	if expIsNum {
		newExp := AddOf(p.exp, N(-1))
		return MulOf(p.exp, PowOf(p.base, newExp), du)
	}
	_, baseIsNum := p.base.(*Num)
	if baseIsNum {
		return MulOf(PowOf(p.base, p.exp), LogOf(p.base), dv)
	}
	logTerm := MulOf(dv, LogOf(p.base))
	divTerm := MulOf(p.exp, du, PowOf(p.base, N(-1)))
	return MulOf(PowOf(p.base, p.exp), AddOf(logTerm, divTerm))
}

func (p *Pow) Eval() (*Num, bool) {
	b, ok1 := p.base.Eval()
	e, ok2 := p.exp.Eval()
	if ok1 && ok2 {
		bf, _ := b.val.Float64()
		ef, _ := e.val.Float64()
		pf := math.Pow(bf, ef)
		if math.IsNaN(pf) || math.IsInf(pf, 0) {
			return nil, false
		}
		return NFloat(pf), true
	}
	return nil, false
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

func (p *Pow) exprType() string { return "pow" }
func (p *Pow) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "pow", "base": p.base.toJSON(), "exp": p.exp.toJSON()}
}
func (p *Pow) Base() Expr    { return p.base }
func (p *Pow) ExpExpr() Expr { return p.exp }

// extractCoefficient splits e into a rational coefficient and the rest.
func extractCoefficient(e Expr) (*Num, Expr) {
	if m, ok := e.(*Mul); ok && len(m.factors) >= 2 {
		if coeff, ok2 := m.factors[0].(*Num); ok2 {
			rest := m.factors[1:]
			if len(rest) == 1 {
				return coeff, rest[0]
			}
			return coeff, &Mul{factors: rest}
		}
	}
	return N(1), e
}
