package gotrig

// ============================================================
// Assumptions — three-valued structural knowledge
// ============================================================

// Tri is a three-valued truth: a query answers TriTrue or TriFalse only
// when the answer is provable from the expression's structure and the
// assumptions attached to its symbols; everything else is TriUnknown.
type Tri int8

const (
	TriUnknown Tri = iota
	TriTrue
	TriFalse
)

func triFromBool(b bool) Tri {
	if b {
		return TriTrue
	}
	return TriFalse
}

// Assumptions carried by a symbol.
type Assumptions struct {
	Integer  Tri
	Even     Tri
	Odd      Tri
	Positive Tri
	Negative Tri
	Real     Tri
}

func (a Assumptions) toJSON() map[string]interface{} {
	out := map[string]interface{}{}
	put := func(name string, t Tri) {
		if t != TriUnknown {
			out[name] = t == TriTrue
		}
	}
	put("integer", a.Integer)
	put("even", a.Even)
	put("odd", a.Odd)
	put("positive", a.Positive)
	put("negative", a.Negative)
	put("real", a.Real)
	return out
}

// isInteger reports whether e provably takes integer values.
func isInteger(e Expr) Tri {
	switch v := e.(type) {
	case *Num:
		return triFromBool(v.IsInteger())
	case *Sym:
		if v.assume.Integer == TriTrue || v.assume.Even == TriTrue || v.assume.Odd == TriTrue {
			return TriTrue
		}
		if v.assume.Integer == TriFalse {
			return TriFalse
		}
		return TriUnknown
	case *Add:
		for _, t := range v.terms {
			if isInteger(t) != TriTrue {
				return TriUnknown
			}
		}
		return TriTrue
	case *Mul:
		for _, f := range v.factors {
			if isInteger(f) != TriTrue {
				return TriUnknown
			}
		}
		return TriTrue
	case *Const, *Imag, *Special, *Bounds:
		return TriFalse
	}
	return TriUnknown
}

// parityEven reports whether an integer-valued e is provably even or odd.
func parityEven(e Expr) Tri {
	switch v := e.(type) {
	case *Num:
		if !v.IsInteger() {
			return TriUnknown
		}
		return triFromBool(v.val.Num().Bit(0) == 0)
	case *Sym:
		if v.assume.Even != TriUnknown {
			return v.assume.Even
		}
		if v.assume.Odd == TriTrue {
			return TriFalse
		}
		if v.assume.Odd == TriFalse && v.assume.Integer == TriTrue {
			return TriTrue
		}
		return TriUnknown
	case *Mul:
		// an even factor makes an integer product even
		if isInteger(v) != TriTrue {
			return TriUnknown
		}
		for _, f := range v.factors {
			if parityEven(f) == TriTrue {
				return TriTrue
			}
		}
		return TriUnknown
	}
	return TriUnknown
}

// isRealValued reports whether e is provably a real quantity.
func isRealValued(e Expr) Tri {
	switch v := e.(type) {
	case *Num:
		return TriTrue
	case *Const:
		return TriTrue
	case *Imag:
		return TriFalse
	case *Special:
		if v == Infinity || v == NegativeInfinity {
			return TriTrue
		}
		return TriFalse
	case *Sym:
		if v.assume.Real == TriTrue || v.assume.Integer == TriTrue ||
			v.assume.Positive == TriTrue || v.assume.Negative == TriTrue {
			return TriTrue
		}
		if v.assume.Real == TriFalse {
			return TriFalse
		}
		return TriUnknown
	case *Add:
		for _, t := range v.terms {
			if isRealValued(t) != TriTrue {
				return TriUnknown
			}
		}
		return TriTrue
	case *Mul:
		for _, f := range v.factors {
			if isRealValued(f) != TriTrue {
				return TriUnknown
			}
		}
		return TriTrue
	case *Pow:
		if en, ok := v.exp.(*Num); ok && en.IsInteger() && isRealValued(v.base) == TriTrue {
			return TriTrue
		}
		return TriUnknown
	}
	return TriUnknown
}

// signOf resolves the sign of e when provable: -1, 0 or +1.
func signOf(e Expr) (int, bool) {
	if n, ok := e.(*Num); ok {
		return n.val.Sign(), true
	}
	switch e {
	case Infinity:
		return 1, true
	case NegativeInfinity:
		return -1, true
	}
	if s, ok := e.(*Sym); ok {
		if s.assume.Positive == TriTrue {
			return 1, true
		}
		if s.assume.Negative == TriTrue {
			return -1, true
		}
		return 0, false
	}
	if isRealValued(e) == TriTrue {
		if v, ok := e.Eval(); ok {
			return v.val.Sign(), true
		}
	}
	return 0, false
}

// couldExtractMinusSign reports whether e is better written as -(-e):
// a negative number, a product with a negative coefficient, or a sum
// whose terms all extract.
func couldExtractMinusSign(e Expr) bool {
	switch v := e.(type) {
	case *Num:
		return v.IsNegative()
	case *Special:
		return v == NegativeInfinity
	case *Mul:
		if len(v.factors) > 0 {
			if c, ok := v.factors[0].(*Num); ok {
				return c.IsNegative()
			}
		}
		return false
	case *Add:
		if len(v.terms) == 0 {
			return false
		}
		for _, t := range v.terms {
			if !couldExtractMinusSign(t) {
				return false
			}
		}
		return true
	}
	return false
}

// asImagCoeff writes e as i*x and returns x, or nil when e carries no
// bare imaginary-unit factor.
func asImagCoeff(e Expr) Expr {
	switch v := e.(type) {
	case *Imag:
		return N(1)
	case *Mul:
		count := 0
		rest := make([]Expr, 0, len(v.factors))
		for _, f := range v.factors {
			if _, ok := f.(*Imag); ok {
				count++
				continue
			}
			rest = append(rest, f)
		}
		if count != 1 {
			return nil
		}
		if len(rest) == 0 {
			return N(1)
		}
		if len(rest) == 1 {
			return rest[0]
		}
		return MulOf(rest...)
	}
	return nil
}

// isComparable reports whether e has a determinable numeric value.
func isComparable(e Expr) bool {
	_, ok := e.Eval()
	return ok
}
