package gotrig_test

import (
	"encoding/json"
	"strings"
	"testing"

	gotrig "github.com/njchilds90/gotrig"
)

func roundTrip(t *testing.T, e gotrig.Expr) gotrig.Expr {
	t.Helper()
	s, err := gotrig.ToJSON(e)
	if err != nil {
		t.Fatalf("ToJSON(%s): %v", e.String(), err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		t.Fatalf("unmarshal %q: %v", s, err)
	}
	back, err := gotrig.FromJSON(m)
	if err != nil {
		t.Fatalf("FromJSON(%s): %v", s, err)
	}
	return back
}

// ============================================================
// serialization round trips
// ============================================================

func TestJSONRoundTrip(t *testing.T) {
	x := gotrig.S("x")
	cases := []gotrig.Expr{
		gotrig.N(42),
		gotrig.F(-7, 3),
		x,
		gotrig.Pi,
		gotrig.ImaginaryUnit,
		gotrig.AddOf(x, gotrig.MulOf(gotrig.F(1, 2), gotrig.Pi)),
		gotrig.PowOf(x, gotrig.F(-1, 2)),
		gotrig.SinOf(gotrig.AddOf(x, gotrig.F(1, 3))),
		gotrig.Atan2Of(gotrig.S("b"), gotrig.S("a")),
		gotrig.BoundsOf(gotrig.N(-1), gotrig.N(1)),
		gotrig.SinhOf(x),
		gotrig.OTerm("x", 6),
	}
	for _, e := range cases {
		back := roundTrip(t, e)
		if !back.Equal(e) {
			t.Errorf("round trip changed %s into %s", e.String(), back.String())
		}
	}
}

func TestJSONRoundTripSpecials(t *testing.T) {
	for _, e := range []gotrig.Expr{
		gotrig.Infinity, gotrig.NegativeInfinity, gotrig.ComplexInfinity, gotrig.NaN,
	} {
		back := roundTrip(t, e)
		if back != e {
			t.Errorf("round trip changed %s into %s", e.String(), back.String())
		}
	}
}

func TestJSONRoundTripAssumptions(t *testing.T) {
	n := gotrig.IntSym("n")
	back := roundTrip(t, n)
	sym, ok := back.(*gotrig.Sym)
	if !ok {
		t.Fatalf("want a symbol, got %s", back.String())
	}
	if sym.Name() != "n" {
		t.Errorf("want name n, got %s", sym.Name())
	}
	if sym.Assume().Integer != gotrig.TriTrue {
		t.Error("integer assumption lost in round trip")
	}
}

func TestFromJSONErrors(t *testing.T) {
	bad := []map[string]interface{}{
		{"type": "wat"},
		{"type": "num", "value": "x"},
		{"type": "const", "name": "e"},
		{"type": "special", "name": "inf"},
		{"type": "trig", "name": "sinh", "args": []interface{}{}},
	}
	for _, m := range bad {
		if _, err := gotrig.FromJSON(m); err == nil {
			t.Errorf("want error for %v", m)
		}
	}
}

func TestFromJSONTrigArity(t *testing.T) {
	xObj := map[string]interface{}{"type": "sym", "name": "x"}

	if _, err := gotrig.FromJSON(map[string]interface{}{
		"type": "trig", "name": "atan2", "args": []interface{}{xObj},
	}); err == nil {
		t.Error("atan2 with one argument should fail")
	}

	if _, err := gotrig.FromJSON(map[string]interface{}{
		"type": "trig", "name": "sin", "args": []interface{}{xObj, xObj},
	}); err == nil {
		t.Error("sin with two arguments should fail")
	}
}

// ============================================================
// tool calls
// ============================================================

func exprJSON(t *testing.T, e gotrig.Expr) map[string]interface{} {
	t.Helper()
	s, err := gotrig.ToJSON(e)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestToolEval(t *testing.T) {
	arg := exprJSON(t, gotrig.MulOf(gotrig.F(1, 6), gotrig.Pi))
	resp := gotrig.HandleToolCall(gotrig.ToolRequest{
		Tool: "eval",
		Params: map[string]interface{}{
			"fn":   "sin",
			"args": []interface{}{arg},
		},
	})
	if resp.Error != "" {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	if resp.String != "1/2" {
		t.Errorf("want 1/2, got %q", resp.String)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected result shape: %#v", resp.Result)
	}
	if evaluated, _ := result["evaluated"].(bool); !evaluated {
		t.Error("sin(pi/6) should report evaluated=true")
	}
}

func TestToolEvalUnevaluated(t *testing.T) {
	arg := exprJSON(t, gotrig.MulOf(gotrig.F(1, 7), gotrig.Pi))
	resp := gotrig.HandleToolCall(gotrig.ToolRequest{
		Tool: "eval",
		Params: map[string]interface{}{
			"fn":   "cos",
			"args": []interface{}{arg},
		},
	})
	if resp.Error != "" {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	result := resp.Result.(map[string]interface{})
	if evaluated, _ := result["evaluated"].(bool); evaluated {
		t.Error("cos(pi/7) should report evaluated=false")
	}
}

func TestToolDiff(t *testing.T) {
	resp := gotrig.HandleToolCall(gotrig.ToolRequest{
		Tool: "diff",
		Params: map[string]interface{}{
			"expr": exprJSON(t, gotrig.SinOf(gotrig.S("x"))),
			"var":  "x",
		},
	})
	if resp.Error != "" {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	if resp.String != "cos(x)" {
		t.Errorf("want cos(x), got %q", resp.String)
	}
	if resp.LaTeX != "\\cos\\left(x\\right)" {
		t.Errorf("unexpected latex %q", resp.LaTeX)
	}
}

func TestToolSeries(t *testing.T) {
	resp := gotrig.HandleToolCall(gotrig.ToolRequest{
		Tool: "series",
		Params: map[string]interface{}{
			"expr":  exprJSON(t, gotrig.SinOf(gotrig.S("x"))),
			"var":   "x",
			"order": float64(6),
		},
	})
	if resp.Error != "" {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	if !strings.Contains(resp.String, "O(x^6)") {
		t.Errorf("series output missing remainder: %q", resp.String)
	}
}

func TestToolSeriesPoleError(t *testing.T) {
	resp := gotrig.HandleToolCall(gotrig.ToolRequest{
		Tool: "series",
		Params: map[string]interface{}{
			"expr": exprJSON(t, gotrig.AsecOf(gotrig.S("x"))),
			"var":  "x",
		},
	})
	if resp.Error == "" {
		t.Error("asec series at zero should fail")
	}
}

func TestToolRewrite(t *testing.T) {
	resp := gotrig.HandleToolCall(gotrig.ToolRequest{
		Tool: "rewrite",
		Params: map[string]interface{}{
			"expr":  exprJSON(t, gotrig.SecOf(gotrig.S("x"))),
			"basis": "cos",
		},
	})
	if resp.Error != "" {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	if resp.String != "cos(x)^(-1)" {
		t.Errorf("want cos(x)^(-1), got %q", resp.String)
	}
}

func TestToolPeriod(t *testing.T) {
	resp := gotrig.HandleToolCall(gotrig.ToolRequest{
		Tool: "period",
		Params: map[string]interface{}{
			"expr": exprJSON(t, gotrig.TanOf(gotrig.S("x"))),
			"var":  "x",
		},
	})
	if resp.Error != "" {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	if resp.String != "pi" {
		t.Errorf("want pi, got %q", resp.String)
	}

	resp = gotrig.HandleToolCall(gotrig.ToolRequest{
		Tool: "period",
		Params: map[string]interface{}{
			"expr": exprJSON(t, gotrig.AtanOf(gotrig.S("x"))),
			"var":  "x",
		},
	})
	if resp.Error == "" {
		t.Error("atan has no period, want an error")
	}
}

func TestToolErrors(t *testing.T) {
	resp := gotrig.HandleToolCall(gotrig.ToolRequest{Tool: "nope"})
	if resp.Error == "" {
		t.Error("unknown tool should fail")
	}

	resp = gotrig.HandleToolCall(gotrig.ToolRequest{
		Tool:   "simplify",
		Params: map[string]interface{}{},
	})
	if resp.Error == "" {
		t.Error("missing expr param should fail")
	}

	resp = gotrig.HandleToolCall(gotrig.ToolRequest{
		Tool: "eval",
		Params: map[string]interface{}{
			"fn":   "sinh",
			"args": []interface{}{},
		},
	})
	if resp.Error == "" {
		t.Error("non-circular function name should fail")
	}
}

func TestToolSpec(t *testing.T) {
	spec := gotrig.ToolSpec()
	var parsed struct {
		Tools []map[string]interface{} `json:"tools"`
	}
	if err := json.Unmarshal([]byte(spec), &parsed); err != nil {
		t.Fatalf("tool spec is not valid JSON: %v", err)
	}
	names := map[string]bool{}
	for _, tool := range parsed.Tools {
		name, _ := tool["name"].(string)
		names[name] = true
	}
	for _, want := range []string{"eval", "simplify", "diff", "series", "rewrite", "period"} {
		if !names[want] {
			t.Errorf("tool spec missing %q", want)
		}
	}
}
