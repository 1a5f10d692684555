package gotrig

import (
	"encoding/json"
	"fmt"
	"math/big"
	"sort"
)

// ============================================================
// JSON Serialization
// ============================================================

func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(e.toJSON())
	return string(b), err
}

func FromJSON(data map[string]interface{}) (Expr, error) {
	if data == nil {
		return nil, fmt.Errorf("expression must be an object")
	}
	typAny, ok := data["type"]
	if !ok {
		return nil, fmt.Errorf("missing 'type' field")
	}
	typ, ok := typAny.(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	subObj := func(field string) (map[string]interface{}, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an object", typ, field)
		}
		return m, nil
	}

	subObjArray := func(field string) ([]map[string]interface{}, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an array", typ, field)
		}
		out := make([]map[string]interface{}, len(raw))
		for i, it := range raw {
			m, ok := it.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%s: %q[%d] must be an object", typ, field, i)
			}
			out[i] = m
		}
		return out, nil
	}

	subString := func(field string) (string, error) {
		v, ok := data[field]
		if !ok {
			return "", fmt.Errorf("%s: missing %q", typ, field)
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return "", fmt.Errorf("%s: %q must be a non-empty string", typ, field)
		}
		return s, nil
	}

	subNumberAsInt := func(field string) (int, error) {
		v, ok := data[field]
		if !ok {
			return 0, fmt.Errorf("%s: missing %q", typ, field)
		}
		n, ok := v.(float64)
		if !ok {
			return 0, fmt.Errorf("%s: %q must be a number", typ, field)
		}
		return int(n), nil
	}

	switch typ {
	case "num":
		valAny, ok := data["value"]
		if !ok {
			return nil, fmt.Errorf("num: missing 'value'")
		}
		val, ok := valAny.(string)
		if !ok || val == "" {
			return nil, fmt.Errorf("num: 'value' must be a non-empty string")
		}
		r := new(big.Rat)
		if _, ok := r.SetString(val); !ok {
			return nil, fmt.Errorf("invalid num value: %s", val)
		}
		return &Num{val: r}, nil

	case "sym":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		if asAny, ok := data["assume"]; ok {
			asMap, ok := asAny.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("sym: 'assume' must be an object")
			}
			a, err := assumptionsFromJSON(asMap)
			if err != nil {
				return nil, err
			}
			return SymWith(name, a), nil
		}
		return S(name), nil

	case "const":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		if name != "pi" {
			return nil, fmt.Errorf("unknown constant: %s", name)
		}
		return Pi, nil

	case "imag":
		return ImaginaryUnit, nil

	case "special":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		switch name {
		case "oo":
			return Infinity, nil
		case "-oo":
			return NegativeInfinity, nil
		case "zoo":
			return ComplexInfinity, nil
		case "nan":
			return NaN, nil
		}
		return nil, fmt.Errorf("unknown special value: %s", name)

	case "bounds":
		loM, err := subObj("lo")
		if err != nil {
			return nil, err
		}
		hiM, err := subObj("hi")
		if err != nil {
			return nil, err
		}
		lo, err := FromJSON(loM)
		if err != nil {
			return nil, fmt.Errorf("bounds: lo: %w", err)
		}
		hi, err := FromJSON(hiM)
		if err != nil {
			return nil, fmt.Errorf("bounds: hi: %w", err)
		}
		return BoundsOf(lo, hi), nil

	case "add":
		objs, err := subObjArray("terms")
		if err != nil {
			return nil, err
		}
		terms := make([]Expr, len(objs))
		for i, o := range objs {
			e, err := FromJSON(o)
			if err != nil {
				return nil, fmt.Errorf("add: terms[%d]: %w", i, err)
			}
			terms[i] = e
		}
		return AddOf(terms...), nil

	case "mul":
		objs, err := subObjArray("factors")
		if err != nil {
			return nil, err
		}
		factors := make([]Expr, len(objs))
		for i, o := range objs {
			e, err := FromJSON(o)
			if err != nil {
				return nil, fmt.Errorf("mul: factors[%d]: %w", i, err)
			}
			factors[i] = e
		}
		return MulOf(factors...), nil

	case "pow":
		baseM, err := subObj("base")
		if err != nil {
			return nil, err
		}
		expM, err := subObj("exp")
		if err != nil {
			return nil, err
		}
		base, err := FromJSON(baseM)
		if err != nil {
			return nil, fmt.Errorf("pow: base: %w", err)
		}
		exp, err := FromJSON(expM)
		if err != nil {
			return nil, fmt.Errorf("pow: exp: %w", err)
		}
		return PowOf(base, exp), nil

	case "func":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		argM, err := subObj("arg")
		if err != nil {
			return nil, err
		}
		arg, err := FromJSON(argM)
		if err != nil {
			return nil, fmt.Errorf("func: arg: %w", err)
		}
		return funcOf(name, arg).Simplify(), nil

	case "trig":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		id, ok := TrigIDByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown circular function: %s", name)
		}
		objs, err := subObjArray("args")
		if err != nil {
			return nil, err
		}
		want := 1
		if id == Atan2 {
			want = 2
		}
		if len(objs) != want {
			return nil, fmt.Errorf("%s: expects %d argument(s), got %d", name, want, len(objs))
		}
		args := make([]Expr, len(objs))
		for i, o := range objs {
			e, err := FromJSON(o)
			if err != nil {
				return nil, fmt.Errorf("%s: args[%d]: %w", name, i, err)
			}
			args[i] = e
		}
		return trigCall(id, args...), nil

	case "bigo":
		v, err := subString("var")
		if err != nil {
			return nil, err
		}
		order, err := subNumberAsInt("order")
		if err != nil {
			return nil, err
		}
		return OTerm(v, order), nil
	}
	return nil, fmt.Errorf("unknown expression type: %s", typ)
}

func assumptionsFromJSON(m map[string]interface{}) (Assumptions, error) {
	var a Assumptions
	for k, v := range m {
		b, ok := v.(bool)
		if !ok {
			return a, fmt.Errorf("sym: assume.%s must be a boolean", k)
		}
		t := triFromBool(b)
		switch k {
		case "integer":
			a.Integer = t
		case "even":
			a.Even = t
		case "odd":
			a.Odd = t
		case "positive":
			a.Positive = t
		case "negative":
			a.Negative = t
		case "real":
			a.Real = t
		default:
			return a, fmt.Errorf("sym: unknown assumption %q", k)
		}
	}
	return a, nil
}

// ============================================================
// Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

func HandleToolCall(req ToolRequest) ToolResponse {
	getExpr := func(key string) (Expr, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		val, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("invalid type for param %s", key)
		}
		return FromJSON(val)
	}
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	getInt := func(key string) (int, error) {
		v, ok := req.Params[key]
		if !ok {
			return 0, fmt.Errorf("missing param: %s", key)
		}
		f, ok := v.(float64)
		if !ok {
			return 0, fmt.Errorf("param %s must be a number", key)
		}
		return int(f), nil
	}
	getIntDefault := func(key string, def int) (int, error) {
		if _, ok := req.Params[key]; !ok {
			return def, nil
		}
		return getInt(key)
	}
	getExprList := func(key string) ([]Expr, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("param %s must be array", key)
		}
		result := make([]Expr, len(raw))
		for i, r := range raw {
			m, ok := r.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("param %s[%d] must be expression object", key, i)
			}
			e, err := FromJSON(m)
			if err != nil {
				return nil, err
			}
			result[i] = e
		}
		return result, nil
	}
	getTrigID := func() (TrigID, error) {
		name, err := getString("fn")
		if err != nil {
			return 0, err
		}
		id, ok := TrigIDByName(name)
		if !ok {
			return 0, fmt.Errorf("unknown circular function: %s", name)
		}
		return id, nil
	}
	respond := func(e Expr) ToolResponse {
		return ToolResponse{Result: e.toJSON(), LaTeX: LaTeX(e), String: String(e)}
	}
	fail := func(err error) ToolResponse { return ToolResponse{Error: err.Error()} }

	switch req.Tool {
	case "eval":
		id, err := getTrigID()
		if err != nil {
			return fail(err)
		}
		args, err := getExprList("args")
		if err != nil {
			return fail(err)
		}
		e, evaluated := Evaluate(id, args...)
		resp := respond(e)
		resp.Result = map[string]interface{}{"expr": e.toJSON(), "evaluated": evaluated}
		return resp

	case "simplify":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		return respond(Simplify(e))

	case "deep_simplify":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		return respond(DeepSimplify(e))

	case "trig_simplify":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		return respond(TrigSimplify(e))

	case "canonicalize":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		return respond(Canonicalize(e))

	case "expand":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		return respond(Expand(e))

	case "expand_trig":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		return respond(ExpandTrig(e).Simplify())

	case "rewrite":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		name, err := getString("basis")
		if err != nil {
			return fail(err)
		}
		b, ok := BasisByName(name)
		if !ok {
			return fail(fmt.Errorf("unknown basis: %s", name))
		}
		return respond(RewriteAs(e, b).Simplify())

	case "substitute":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := getString("var")
		if err != nil {
			return fail(err)
		}
		val, err := getExpr("value")
		if err != nil {
			return fail(err)
		}
		return respond(Sub(e, v, val))

	case "diff":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := getString("var")
		if err != nil {
			return fail(err)
		}
		return respond(Diff(e, v))

	case "diff2":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := getString("var")
		if err != nil {
			return fail(err)
		}
		return respond(Diff2(e, v))

	case "diffn":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := getString("var")
		if err != nil {
			return fail(err)
		}
		n, err := getInt("n")
		if err != nil {
			return fail(err)
		}
		if n < 0 {
			return fail(fmt.Errorf("param n must be >= 0"))
		}
		return respond(DiffN(e, v, n))

	case "fdiff":
		id, err := getTrigID()
		if err != nil {
			return fail(err)
		}
		args, err := getExprList("args")
		if err != nil {
			return fail(err)
		}
		i, err := getIntDefault("index", 1)
		if err != nil {
			return fail(err)
		}
		d, err := FDiff(id, args, i)
		if err != nil {
			return fail(err)
		}
		return respond(d.Simplify())

	case "series":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := getString("var")
		if err != nil {
			return fail(err)
		}
		order, err := getIntDefault("order", 6)
		if err != nil {
			return fail(err)
		}
		dir, err := getIntDefault("dir", 1)
		if err != nil {
			return fail(err)
		}
		s, err := Series(e, v, order, dir)
		if err != nil {
			return fail(err)
		}
		return respond(s)

	case "taylor_term":
		id, err := getTrigID()
		if err != nil {
			return fail(err)
		}
		args, err := getExprList("args")
		if err != nil {
			return fail(err)
		}
		if len(args) != 1 {
			return fail(fmt.Errorf("taylor_term expects exactly one argument expression"))
		}
		n, err := getInt("n")
		if err != nil {
			return fail(err)
		}
		term, err := TaylorTerm(id, n, args[0], nil)
		if err != nil {
			return fail(err)
		}
		return respond(term)

	case "leading_term":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := getString("var")
		if err != nil {
			return fail(err)
		}
		dir, err := getIntDefault("dir", 1)
		if err != nil {
			return fail(err)
		}
		lt, err := LeadingTerm(e, v, dir)
		if err != nil {
			return fail(err)
		}
		return respond(lt)

	case "period":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := getString("var")
		if err != nil {
			return fail(err)
		}
		p, err := Period(e, v)
		if err != nil {
			return fail(err)
		}
		return respond(p)

	case "as_real_imag":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		re, im, ok := AsRealImag(e)
		if !ok {
			return fail(fmt.Errorf("no real/imaginary decomposition for %s", String(e)))
		}
		return ToolResponse{
			Result: map[string]interface{}{"re": re.toJSON(), "im": im.toJSON()},
			String: fmt.Sprintf("(%s) + I*(%s)", String(re), String(im)),
		}

	case "free_symbols":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		set := FreeSymbols(e)
		names := make([]string, 0, len(set))
		for n := range set {
			names = append(names, n)
		}
		sort.Strings(names)
		return ToolResponse{Result: names}

	case "degree":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := getString("var")
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: Degree(e, v)}

	case "poly_coeffs":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := getString("var")
		if err != nil {
			return fail(err)
		}
		coeffs := PolyCoeffs(e, v)
		out := map[string]interface{}{}
		for d, c := range coeffs {
			out[fmt.Sprintf("%d", d)] = String(c)
		}
		return ToolResponse{Result: out}

	case "collect":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := getString("var")
		if err != nil {
			return fail(err)
		}
		return respond(Collect(e, v))

	case "cancel":
		num, err := getExpr("num")
		if err != nil {
			return fail(err)
		}
		denom, err := getExpr("denom")
		if err != nil {
			return fail(err)
		}
		return respond(Cancel(num, denom))

	case "to_latex":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		return ToolResponse{LaTeX: LaTeX(e), String: String(e)}

	case "tool_spec":
		return ToolResponse{Result: ToolSpec(), String: "tool specification"}
	}

	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// ============================================================
// Tool spec
// ============================================================

func ToolSpec() string {
	tools := []map[string]interface{}{
		ts("eval", "Evaluate a circular function on exact arguments. fn is one of sin..atan2", []string{"fn", "args"}, map[string]string{"fn": "string", "args": "array"}),
		ts("simplify", "Simplify a symbolic expression", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("deep_simplify", "Apply multiple simplification passes including the Pythagorean identities", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("trig_simplify", "Apply sin²+cos²=1 and its sec/csc counterparts", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("canonicalize", "Expand and canonicalize expression", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("expand", "Algebraically expand expression", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("expand_trig", "Apply angle-sum and multiple-angle expansion", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("rewrite", "Rewrite circular functions through a basis (sin, cos, tan, cot, sec, csc, asin, atan, sqrt)", []string{"expr", "basis"}, map[string]string{"expr": "object", "basis": "string"}),
		ts("substitute", "Substitute var with value", []string{"expr", "var", "value"}, map[string]string{"expr": "object", "var": "string", "value": "object"}),
		ts("diff", "First derivative d/dx", []string{"expr", "var"}, map[string]string{"expr": "object", "var": "string"}),
		ts("diff2", "Second derivative d²/dx²", []string{"expr", "var"}, map[string]string{"expr": "object", "var": "string"}),
		ts("diffn", "nth derivative. Requires n (int)", []string{"expr", "var", "n"}, map[string]string{"expr": "object", "var": "string", "n": "integer"}),
		ts("fdiff", "Derivative of a function with respect to its i-th argument", []string{"fn", "args"}, map[string]string{"fn": "string", "args": "array", "index": "integer"}),
		ts("series", "Series expansion around 0 with BigO remainder. Optional order, dir", []string{"expr", "var"}, map[string]string{"expr": "object", "var": "string", "order": "integer", "dir": "integer"}),
		ts("taylor_term", "Single origin-series term of degree n", []string{"fn", "args", "n"}, map[string]string{"fn": "string", "args": "array", "n": "integer"}),
		ts("leading_term", "Lowest-order behavior as var approaches 0. Optional dir", []string{"expr", "var"}, map[string]string{"expr": "object", "var": "string", "dir": "integer"}),
		ts("period", "Period in var for affine arguments", []string{"expr", "var"}, map[string]string{"expr": "object", "var": "string"}),
		ts("as_real_imag", "Split a circular function of a complex argument into real and imaginary parts", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("free_symbols", "Return free symbol names", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("degree", "Polynomial degree in variable", []string{"expr", "var"}, map[string]string{"expr": "object", "var": "string"}),
		ts("poly_coeffs", "Extract polynomial coefficients by degree", []string{"expr", "var"}, map[string]string{"expr": "object", "var": "string"}),
		ts("collect", "Collect terms by powers of variable", []string{"expr", "var"}, map[string]string{"expr": "object", "var": "string"}),
		ts("cancel", "Simplify rational num/denom", []string{"num", "denom"}, map[string]string{"num": "object", "denom": "object"}),
		ts("to_latex", "Convert to LaTeX", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("tool_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
