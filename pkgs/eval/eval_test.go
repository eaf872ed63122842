package eval_test

import (
	"strings"
	"testing"

	"github.com/aledsdavies/wisp/pkgs/arena"
	"github.com/aledsdavies/wisp/pkgs/eval"
	"github.com/aledsdavies/wisp/pkgs/ioproxy"
	"github.com/aledsdavies/wisp/pkgs/reader"
	"github.com/aledsdavies/wisp/pkgs/value"
)

const longBase value.Handle = 1 << 30

func newEvaluator(t *testing.T) *eval.Evaluator {
	t.Helper()
	short := arena.New("short_term", 0)
	long := arena.New("long_term", longBase)
	return eval.New(short, long, ioproxy.NewBuffer())
}

func evalSrc(t *testing.T, e *eval.Evaluator, src string) value.Value {
	t.Helper()
	forms, err := e.ParseAll(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	var h value.Handle
	for _, f := range forms {
		var evalErr error
		h, evalErr = e.Eval(e.Root(), f)
		if evalErr != nil {
			t.Fatalf("eval %q: %v", src, evalErr)
		}
	}
	v, ok := e.Get(h)
	if !ok {
		t.Fatalf("eval %q: unresolvable result handle", src)
	}
	return v
}

func TestRootSeededWithBuiltins(t *testing.T) {
	e := newEvaluator(t)
	if _, ok := e.Root().Lookup("+"); !ok {
		t.Fatalf("root scope should have + bound after New")
	}
	if _, ok := e.Root().Lookup("defmacro"); !ok {
		t.Fatalf("root scope should have defmacro bound after New")
	}
}

func TestEvalSelfEvaluatingKinds(t *testing.T) {
	e := newEvaluator(t)
	cases := []string{"1", "1.5", `"hi"`, "true", "false", "nil"}
	for _, src := range cases {
		v := evalSrc(t, e, src)
		if v.Kind == value.KindSymbol || v.Kind == value.KindCons {
			t.Errorf("%s should be self-evaluating, got Kind %v", src, v.Kind)
		}
	}
}

func TestEvalVectorEvaluatesElements(t *testing.T) {
	e := newEvaluator(t)
	v := evalSrc(t, e, "(vector (+ 1 1) (+ 2 2))")
	if v.Kind != value.KindVector || len(v.Elems) != 2 {
		t.Fatalf("evaluated vector = %v", v)
	}
	first, _ := e.Get(v.Elems[0])
	second, _ := e.Get(v.Elems[1])
	if first.Num.I != 2 || second.Num.I != 4 {
		t.Fatalf("vector elements = %v, %v, want 2 and 4", first, second)
	}
}

func TestQuoteReturnsUnevaluatedForm(t *testing.T) {
	e := newEvaluator(t)
	v := evalSrc(t, e, "(quote (+ 1 2))")
	if v.Kind != value.KindCons {
		t.Fatalf("(quote (+ 1 2)) = %v, want an unevaluated Cons", v)
	}
}

func TestGensymProducesDistinctSymbols(t *testing.T) {
	e := newEvaluator(t)
	h1 := e.Gensym("g")
	h2 := e.Gensym("g")
	v1, _ := e.Get(h1)
	v2, _ := e.Get(h2)
	if v1.Str == v2.Str {
		t.Fatalf("two Gensym calls returned the same name %q", v1.Str)
	}
}

// CaptureFreeVars implements the construction-time, one-shot capture
// decision: a closure's free variables are frozen to their bound Values
// when the closure is built, not re-resolved against a later rebinding.
func TestCaptureFreeVarsIsOneShotAtConstruction(t *testing.T) {
	e := newEvaluator(t)
	evalSrc(t, e, "(def k 1)")
	evalSrc(t, e, "(defn get-k [] k)")
	evalSrc(t, e, "(def k 2)")
	v := evalSrc(t, e, "(get-k)")
	if v.Num.I != 1 {
		t.Fatalf("(get-k) = %v, want 1 (k's value at closure-construction time, not its later rebinding)", v)
	}
}

// The closure body itself still runs in a fresh child of the CALLER's
// scope at call time: a name the closure body does NOT close over
// (because it wasn't bound yet at construction time) resolves dynamically
// against whatever scope is calling it.
func TestClosureBodyRunsAgainstCallerScopeForUncapturedNames(t *testing.T) {
	e := newEvaluator(t)
	evalSrc(t, e, "(defn add-dynamic [] (+ dyn 1))")
	evalSrc(t, e, "(def dyn 41)")
	v := evalSrc(t, e, "(add-dynamic)")
	if v.Num.I != 42 {
		t.Fatalf("(add-dynamic) = %v, want 42 (dyn resolved dynamically since it wasn't bound at construction time)", v)
	}
}

func TestEvalBuiltinReEvaluatesAValue(t *testing.T) {
	e := newEvaluator(t)
	v := evalSrc(t, e, "(eval (quote (+ 1 2)))")
	if v.Num.I != 3 {
		t.Fatalf("(eval (quote (+ 1 2))) = %v, want 3", v)
	}
}

func TestStrConcatenatesHumanRenderings(t *testing.T) {
	e := newEvaluator(t)
	v := evalSrc(t, e, `(str "a" 1 "b")`)
	if v.Str != "a1b" {
		t.Fatalf(`(str "a" 1 "b") = %q, want a1b`, v.Str)
	}
}

func TestUnknownSymbolSuggestsNearMiss(t *testing.T) {
	e := newEvaluator(t)
	forms, err := e.ParseAll("prnt")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	_, err = e.Eval(e.Root(), forms[0])
	if err == nil {
		t.Fatalf("expected an UnknownSymbol error for prnt")
	}
	if !strings.Contains(err.Error(), "did you mean print?") {
		t.Fatalf("UnknownSymbol error for prnt = %q, want a suggestion of print", err.Error())
	}
}

func TestPromoteSurvivesShortTermClear(t *testing.T) {
	e := newEvaluator(t)
	h := e.Short().Register(value.Num(value.Int(7)))
	promoted := e.Promote(h)
	e.Short().Clear()
	v, ok := e.Get(promoted)
	if !ok || v.Num.I != 7 {
		t.Fatalf("promoted value did not survive Clear: %v, %v", v, ok)
	}
}

func TestReaderErrorPropagatesFromParseAll(t *testing.T) {
	e := newEvaluator(t)
	if _, err := e.ParseAll("(+ 1 2"); err == nil {
		t.Fatalf("expected a reader error for an unterminated list")
	}
	_ = reader.ErrExhausted
}
