package gotrig

import (
	"math/big"
	"sync"
)

// ============================================================
// Radical forms for cos(p*pi/q)
// ============================================================

// chebyshevT returns the Chebyshev polynomial T_n evaluated at x, so
// that T_n(cos t) = cos(n t).
func chebyshevT(n int64, x Expr) Expr {
	if n < 0 {
		n = -n
	}
	if n == 0 {
		return N(1)
	}
	prev, cur := Expr(N(1)), x
	for i := int64(1); i < n; i++ {
		prev, cur = cur, AddOf(MulOf(N(2), x, cur), Neg(prev))
	}
	return cur
}

// chebyshevU returns the second-kind polynomial U_n at x, with
// sin((n+1) t) = U_n(cos t) sin(t).
func chebyshevU(n int64, x Expr) Expr {
	if n < 0 {
		// U_{-1} = 0, U_{-n} = -U_{n-2}
		if n == -1 {
			return N(0)
		}
		return Neg(chebyshevU(-n-2, x))
	}
	if n == 0 {
		return N(1)
	}
	prev, cur := Expr(N(1)), Expr(MulOf(N(2), x))
	for i := int64(1); i < n; i++ {
		prev, cur = cur, AddOf(MulOf(N(2), x, cur), Neg(prev))
	}
	return cur
}

var (
	cospi17Once sync.Once
	cospi17Val  Expr

	cospi257Once sync.Once
	cospi257Val  Expr
)

// cosPiOver17 is the closed radical form of cos(pi/17), constructible
// because 17 is a Fermat prime.
func cosPiOver17() Expr {
	cospi17Once.Do(func() {
		s2 := SqrtOf(N(2))
		s17 := SqrtOf(N(17))
		inner := SqrtOf(AddOf(
			MulOf(s2, AddOf(
				MulOf(N(-8), SqrtOf(AddOf(N(17), s17))),
				Neg(MulOf(AddOf(N(1), Neg(s17)), SqrtOf(AddOf(N(17), Neg(s17))))))),
			MulOf(N(6), s17),
			N(34)))
		cospi17Val = SqrtOf(AddOf(
			MulOf(F(1, 32), AddOf(N(15), s17)),
			MulOf(F(1, 32), s2, AddOf(SqrtOf(AddOf(N(17), Neg(s17))), inner))))
	})
	return cospi17Val
}

// cosPiOver257 builds cos(pi/257) by the classical resolvent tower for
// the 257-gon.
func cosPiOver257() Expr {
	cospi257Once.Do(func() {
		f1 := func(a, b Expr) (Expr, Expr) {
			root := SqrtOf(AddOf(PowOf(a, N(2)), b))
			return MulOf(F(1, 2), AddOf(a, root)), MulOf(F(1, 2), AddOf(a, Neg(root)))
		}
		f2 := func(a, b Expr) Expr {
			return MulOf(F(1, 2), AddOf(a, Neg(SqrtOf(AddOf(PowOf(a, N(2)), b)))))
		}
		sum := func(es ...Expr) Expr { return AddOf(es...) }
		four := func(e Expr) Expr { return MulOf(N(4), e) }
		negFour := func(e Expr) Expr { return MulOf(N(-4), e) }

		t1, t2 := f1(N(-1), N(256))
		z1, z3 := f1(t1, N(64))
		z2, z4 := f1(t2, N(64))
		y1, y5 := f1(z1, four(sum(N(5), t1, MulOf(N(2), z1))))
		y6, y2 := f1(z2, four(sum(N(5), t2, MulOf(N(2), z2))))
		y3, y7 := f1(z3, four(sum(N(5), t1, MulOf(N(2), z3))))
		y8, y4 := f1(z4, four(sum(N(5), t2, MulOf(N(2), z4))))
		x1, x9 := f1(y1, negFour(sum(t1, y1, y3, MulOf(N(2), y6))))
		x2, x10 := f1(y2, negFour(sum(t2, y2, y4, MulOf(N(2), y7))))
		x3, x11 := f1(y3, negFour(sum(t1, y3, y5, MulOf(N(2), y8))))
		x4, x12 := f1(y4, negFour(sum(t2, y4, y6, MulOf(N(2), y1))))
		x5, x13 := f1(y5, negFour(sum(t1, y5, y7, MulOf(N(2), y2))))
		x6, x14 := f1(y6, negFour(sum(t2, y6, y8, MulOf(N(2), y3))))
		x15, x7 := f1(y7, negFour(sum(t1, y7, y1, MulOf(N(2), y4))))
		x8, x16 := f1(y8, negFour(sum(t2, y8, y2, MulOf(N(2), y5))))
		v1 := f2(x1, negFour(sum(x1, x2, x3, x6)))
		v2 := f2(x2, negFour(sum(x2, x3, x4, x7)))
		v3 := f2(x8, negFour(sum(x8, x9, x10, x13)))
		v4 := f2(x9, negFour(sum(x9, x10, x11, x14)))
		v5 := f2(x10, negFour(sum(x10, x11, x12, x15)))
		v6 := f2(x16, negFour(sum(x16, x1, x2, x5)))
		u1 := Neg(f2(Neg(v1), negFour(sum(v2, v3))))
		u2 := Neg(f2(Neg(v4), negFour(sum(v5, v6))))
		w1 := MulOf(N(-2), f2(Neg(u1), negFour(u2)))
		cospi257Val = SqrtOf(AddOf(
			MulOf(F(1, 8), SqrtOf(N(2)), SqrtOf(AddOf(w1, N(4)))),
			F(1, 2)))
	})
	return cospi257Val
}

// fermatPrimes lists the constructible odd prime denominators, in the
// order factors are stripped.
var fermatPrimes = []int64{3, 5, 17, 257}

func fermatBase(q int64) (Expr, bool) {
	switch q {
	case 3:
		return F(1, 2), true
	case 5:
		return MulOf(F(1, 4), AddOf(SqrtOf(N(5)), N(1))), true
	case 17:
		return cosPiOver17(), true
	case 257:
		return cosPiOver257(), true
	}
	return nil, false
}

// fermatCoords factors n into distinct Fermat primes; each prime may
// divide at most once.
func fermatCoords(n int64) ([]int64, bool) {
	var primes []int64
	for _, p := range fermatPrimes {
		if n%p == 0 {
			n /= p
			primes = append(primes, p)
			if n == 1 {
				return primes, true
			}
		}
	}
	return nil, false
}

// igcdex returns (x, y, g) with a*x + b*y = g = gcd(a, b).
func igcdex(a, b int64) (int64, int64, int64) {
	x := new(big.Int)
	y := new(big.Int)
	g := new(big.Int).GCD(x, y, big.NewInt(a), big.NewInt(b))
	return x.Int64(), y.Int64(), g.Int64()
}

// migcdex extends igcdex to a list: the result holds one cofactor per
// input followed by the overall gcd.
func migcdex(xs []int64) []int64 {
	if len(xs) == 1 {
		return []int64{1, xs[0]}
	}
	if len(xs) == 2 {
		u, v, g := igcdex(xs[0], xs[1])
		return []int64{u, v, g}
	}
	g := migcdex(xs[1:])
	u, v, h := igcdex(xs[0], g[len(g)-1])
	out := []int64{u}
	for _, i := range g[:len(g)-1] {
		out = append(out, v*i)
	}
	return append(out, h)
}

// primePowerParts returns the prime-power factors of n.
func primePowerParts(n int64) []int64 {
	var parts []int64
	for d := int64(2); d*d <= n; d++ {
		if n%d == 0 {
			pp := int64(1)
			for n%d == 0 {
				n /= d
				pp *= d
			}
			parts = append(parts, pp)
		}
	}
	if n > 1 {
		parts = append(parts, n)
	}
	return parts
}

// ipartfrac splits p/q into a sum of fractions whose denominators are
// the given coprime factors of q (or its prime-power parts when nil).
func ipartfrac(r *big.Rat, factors []int64) []*big.Rat {
	if !r.Denom().IsInt64() || !r.Num().IsInt64() {
		return []*big.Rat{new(big.Rat).Set(r)}
	}
	q := r.Denom().Int64()
	p := r.Num().Int64()
	var a []int64
	if factors == nil {
		for _, pp := range primePowerParts(q) {
			a = append(a, q/pp)
		}
	} else {
		for _, f := range factors {
			a = append(a, q/f)
		}
	}
	if len(a) <= 1 {
		return []*big.Rat{new(big.Rat).Set(r)}
	}
	h := migcdex(a)
	out := make([]*big.Rat, len(a))
	for i := range a {
		out[i] = new(big.Rat).SetFrac64(p*h[i]*a[i], q)
	}
	return out
}

// ============================================================
// Rewrite of cos(c*pi) in square roots
// ============================================================

// cosPiSqrt rewrites cos(c*pi) into nested radicals. The result may
// still contain unevaluated cosines when c's denominator has a prime
// factor that is not a Fermat prime.
func cosPiSqrt(c *big.Rat) Expr {
	pc := NRat(c)
	v := CosOf(piMul(pc))
	t, negated, isCos := trigOrNeg(v, Cos)
	if !isCos {
		return v
	}
	// Work from the reduced angle of the surviving node.
	rc, ok := piCoeffRat(t.args[0])
	if !ok {
		return v
	}
	rv := cosPiSqrtReduced(rc)
	if rv == nil {
		return v
	}
	if negated {
		return Neg(rv)
	}
	return rv
}

func cosPiSqrtReduced(pc *Num) Expr {
	if !pc.val.Denom().IsInt64() {
		return nil
	}
	q := pc.val.Denom().Int64()
	if base, ok := fermatBase(q); ok {
		p := new(big.Int).Mod(pc.val.Num(), big.NewInt(2*q)).Int64()
		rv := chebyshevT(p, base)
		if q < 257 {
			rv = Expand(rv)
		}
		return rv
	}
	if q%2 == 0 {
		pico2 := new(big.Rat).Mul(pc.val, ratTwo)
		nval := cosPiSqrt(pico2)
		x := new(big.Rat).Add(pico2, ratOne)
		x.Mul(x, ratHalf)
		x.Abs(x)
		sign := N(1)
		if new(big.Int).Mod(ratFloor(x), big.NewInt(2)).Sign() != 0 {
			sign = N(-1)
		}
		return MulOf(sign, SqrtOf(MulOf(F(1, 2), AddOf(N(1), nval))))
	}
	if fc, ok := fermatCoords(q); ok {
		decomp := ipartfrac(pc.val, fc)
		return cosSumExpand(decomp, true)
	}
	decomp := ipartfrac(pc.val, nil)
	if len(decomp) <= 1 {
		return nil
	}
	return cosSumExpand(decomp, false)
}

// cosSumExpand expands cos(sum c_i*pi) by the pairwise addition
// formula. With radical set, each leaf cosine is pushed to its closed
// square-root form.
func cosSumExpand(cs []*big.Rat, radical bool) Expr {
	if len(cs) == 1 {
		return cosPiLeaf(cs[0], radical)
	}
	head, rest := cs[0], cs[1:]
	return AddOf(
		MulOf(cosPiLeaf(head, radical), cosSumExpand(rest, radical)),
		Neg(MulOf(sinPiLeaf(head, radical), sinSumExpand(rest, radical))))
}

func sinSumExpand(cs []*big.Rat, radical bool) Expr {
	if len(cs) == 1 {
		return sinPiLeaf(cs[0], radical)
	}
	head, rest := cs[0], cs[1:]
	return AddOf(
		MulOf(sinPiLeaf(head, radical), cosSumExpand(rest, radical)),
		MulOf(cosPiLeaf(head, radical), sinSumExpand(rest, radical)))
}

func cosPiLeaf(c *big.Rat, radical bool) Expr {
	if radical {
		return cosPiSqrt(c)
	}
	return CosOf(piMul(NRat(c)))
}

func sinPiLeaf(c *big.Rat, radical bool) Expr {
	// sin(c*pi) = cos((1/2 - c)*pi)
	s := new(big.Rat).Sub(ratHalf, c)
	return cosPiLeaf(s, radical)
}
