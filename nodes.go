package gotrig

import (
	"fmt"
	"math"
	"math/big"
)

// ============================================================
// Func — named non-circular function applications
// ============================================================

// Func covers the named functions the engine needs around the circular
// core: exponentials, logarithms, hyperbolics and their inverses, and a
// few structural helpers. Simplification is exact; floating point is
// confined to Eval.
type Func struct {
	name string
	arg  Expr
}

func funcOf(name string, arg Expr) *Func { return &Func{name: name, arg: arg} }

func ExpOf(arg Expr) Expr   { return funcOf("exp", arg).Simplify() }
func LogOf(arg Expr) Expr   { return funcOf("log", arg).Simplify() }
func AbsOf(arg Expr) Expr   { return funcOf("abs", arg).Simplify() }
func SignOf(arg Expr) Expr  { return funcOf("sign", arg).Simplify() }
func FloorOf(arg Expr) Expr { return funcOf("floor", arg).Simplify() }
func SinhOf(arg Expr) Expr  { return funcOf("sinh", arg).Simplify() }
func CoshOf(arg Expr) Expr  { return funcOf("cosh", arg).Simplify() }
func TanhOf(arg Expr) Expr  { return funcOf("tanh", arg).Simplify() }
func CothOf(arg Expr) Expr  { return funcOf("coth", arg).Simplify() }
func AsinhOf(arg Expr) Expr { return funcOf("asinh", arg).Simplify() }
func AcoshOf(arg Expr) Expr { return funcOf("acosh", arg).Simplify() }
func AtanhOf(arg Expr) Expr { return funcOf("atanh", arg).Simplify() }
func AcothOf(arg Expr) Expr { return funcOf("acoth", arg).Simplify() }

// odd functions pull an extractable minus sign out of their argument;
// even functions drop it.
var oddFuncs = map[string]bool{
	"sinh": true, "tanh": true, "coth": true,
	"asinh": true, "atanh": true, "acoth": true, "sign": true,
}

func (f *Func) Simplify() Expr {
	arg := f.arg.Simplify()
	if n, ok := arg.(*Num); ok {
		if r := f.evalExactNum(n); r != nil {
			return r
		}
	}
	if couldExtractMinusSign(arg) {
		if oddFuncs[f.name] {
			return Neg(funcOf(f.name, Neg(arg).Simplify()).Simplify())
		}
		if f.name == "cosh" || f.name == "abs" {
			return funcOf(f.name, Neg(arg).Simplify()).Simplify()
		}
	}
	switch f.name {
	case "log":
		if inner, ok := arg.(*Func); ok && inner.name == "exp" {
			return inner.arg
		}
	case "exp":
		if inner, ok := arg.(*Func); ok && inner.name == "log" {
			return inner.arg
		}
		if arg == Infinity {
			return Infinity
		}
		if arg == NegativeInfinity {
			return N(0)
		}
	case "abs":
		if m, ok := arg.(*Mul); ok && len(m.factors) >= 1 {
			if coeff, ok2 := m.factors[0].(*Num); ok2 && coeff.IsNegOne() {
				inner := m.factors[1:]
				if len(inner) == 1 {
					return AbsOf(inner[0])
				}
				return AbsOf(MulOf(inner...))
			}
		}
	}
	return &Func{name: f.name, arg: arg}
}

// evalExactNum applies the exact rules for a rational argument; only
// values that stay rational are folded.
func (f *Func) evalExactNum(n *Num) Expr {
	switch f.name {
	case "exp":
		if n.IsZero() {
			return N(1)
		}
	case "log":
		if n.IsOne() {
			return N(0)
		}
		if n.IsZero() {
			return ComplexInfinity
		}
	case "abs":
		return numAbs(n)
	case "sign":
		switch {
		case n.IsPositive():
			return N(1)
		case n.IsNegative():
			return N(-1)
		}
		return N(0)
	case "floor":
		return NRat(new(big.Rat).SetInt(ratFloor(n.val)))
	case "sinh", "tanh", "asinh", "atanh":
		if n.IsZero() {
			return N(0)
		}
	case "cosh":
		if n.IsZero() {
			return N(1)
		}
	case "coth", "acoth":
		if n.IsZero() {
			return ComplexInfinity
		}
	case "acosh":
		if n.IsOne() {
			return N(0)
		}
	}
	return nil
}

func (f *Func) String() string { return f.name + "(" + f.arg.String() + ")" }

func (f *Func) LaTeX() string {
	switch f.name {
	case "exp", "log", "sinh", "cosh", "tanh", "coth":
		return "\\" + f.name + "\\left(" + f.arg.LaTeX() + "\\right)"
	case "abs":
		return "\\left|" + f.arg.LaTeX() + "\\right|"
	case "floor":
		return "\\lfloor " + f.arg.LaTeX() + " \\rfloor"
	}
	return "\\operatorname{" + f.name + "}\\left(" + f.arg.LaTeX() + "\\right)"
}

func (f *Func) Sub(varName string, value Expr) Expr {
	return funcOf(f.name, f.arg.Sub(varName, value)).Simplify()
}

func (f *Func) Diff(varName string) Expr {
	du := f.arg.Diff(varName)
	var outer Expr
	switch f.name {
	case "exp":
		outer = ExpOf(f.arg)
	case "log":
		outer = PowOf(f.arg, N(-1))
	case "sinh":
		outer = CoshOf(f.arg)
	case "cosh":
		outer = SinhOf(f.arg)
	case "tanh":
		outer = AddOf(N(1), Neg(PowOf(TanhOf(f.arg), N(2))))
	case "coth":
		outer = AddOf(N(1), Neg(PowOf(CothOf(f.arg), N(2))))
	case "asinh":
		outer = PowOf(AddOf(N(1), PowOf(f.arg, N(2))), F(-1, 2))
	case "acosh":
		outer = PowOf(AddOf(PowOf(f.arg, N(2)), N(-1)), F(-1, 2))
	case "atanh", "acoth":
		outer = PowOf(AddOf(N(1), Neg(PowOf(f.arg, N(2)))), N(-1))
	default:
		return MulOf(funcOf("D["+f.name+"]", f.arg), du)
	}
	return MulOf(outer, du).Simplify()
}

func (f *Func) Eval() (*Num, bool) {
	n, ok := f.arg.Eval()
	if !ok {
		return nil, false
	}
	v, _ := n.val.Float64()
	var r float64
	switch f.name {
	case "exp":
		r = math.Exp(v)
	case "log":
		if v <= 0 {
			return nil, false
		}
		r = math.Log(v)
	case "abs":
		r = math.Abs(v)
	case "sign":
		switch {
		case v > 0:
			return N(1), true
		case v < 0:
			return N(-1), true
		}
		return N(0), true
	case "floor":
		r = math.Floor(v)
	case "sinh":
		r = math.Sinh(v)
	case "cosh":
		r = math.Cosh(v)
	case "tanh":
		r = math.Tanh(v)
	case "coth":
		if v == 0 {
			return nil, false
		}
		r = 1 / math.Tanh(v)
	case "asinh":
		r = math.Asinh(v)
	case "acosh":
		if v < 1 {
			return nil, false
		}
		r = math.Acosh(v)
	case "atanh":
		if v <= -1 || v >= 1 {
			return nil, false
		}
		r = math.Atanh(v)
	case "acoth":
		if v >= -1 && v <= 1 {
			return nil, false
		}
		r = 0.5 * math.Log((v+1)/(v-1))
	default:
		return nil, false
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil, false
	}
	return NFloat(r), true
}

func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	return ok && f.name == o.name && f.arg.Equal(o.arg)
}

func (f *Func) exprType() string { return "func" }
func (f *Func) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "func", "name": f.name, "arg": f.arg.toJSON()}
}
func (f *Func) FuncName() string { return f.name }
func (f *Func) Arg() Expr        { return f.arg }

// ============================================================
// BigO — remainder term for series
// ============================================================

type BigO struct {
	varName string
	order   int
}

func OTerm(varName string, order int) *BigO { return &BigO{varName: varName, order: order} }

func (o *BigO) Simplify() Expr        { return o }
func (o *BigO) String() string        { return fmt.Sprintf("O(%s^%d)", o.varName, o.order) }
func (o *BigO) LaTeX() string         { return fmt.Sprintf("\\mathcal{O}(%s^{%d})", o.varName, o.order) }
func (o *BigO) Sub(string, Expr) Expr { return o }
func (o *BigO) Diff(string) Expr      { return N(0) }
func (o *BigO) Eval() (*Num, bool)    { return nil, false }
func (o *BigO) Equal(other Expr) bool {
	ob, ok := other.(*BigO)
	return ok && ob.varName == o.varName && ob.order == o.order
}
func (o *BigO) exprType() string { return "bigo" }
func (o *BigO) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "bigo", "var": o.varName, "order": o.order}
}
func (o *BigO) Order() int { return o.order }
