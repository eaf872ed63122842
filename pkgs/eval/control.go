package eval

import (
	"github.com/aledsdavies/wisp/pkgs/arena"
	"github.com/aledsdavies/wisp/pkgs/builtins"
	wisperrors "github.com/aledsdavies/wisp/pkgs/errors"
	"github.com/aledsdavies/wisp/pkgs/scope"
	"github.com/aledsdavies/wisp/pkgs/value"
)

// registerControl registers the special forms, each as a built-in with
// PreEvaluateArgs=false so the evaluator hands them the raw, unevaluated
// argument forms.
func (e *Evaluator) registerControl() {
	e.registry.Register(&builtins.Entry{Name: "if", MinArgs: 2, MaxArgs: 3, Fn: ifForm})
	e.registry.Register(&builtins.Entry{Name: "cond", MinArgs: 0, MaxArgs: builtins.NoBound, Fn: condForm})
	e.registry.Register(&builtins.Entry{Name: "do", MinArgs: 0, MaxArgs: builtins.NoBound, Fn: doForm})
	e.registry.Register(&builtins.Entry{Name: "let", MinArgs: 1, MaxArgs: builtins.NoBound, Fn: letForm})
	e.registry.Register(&builtins.Entry{Name: "def", MinArgs: 2, MaxArgs: 2, Fn: defForm})
	e.registry.Register(&builtins.Entry{Name: "fn", MinArgs: 2, MaxArgs: builtins.NoBound, Fn: fnForm})
	e.registry.Register(&builtins.Entry{Name: "defn", MinArgs: 3, MaxArgs: builtins.NoBound, Fn: defnForm})
	e.registry.Register(&builtins.Entry{Name: "defmacro", MinArgs: 3, MaxArgs: builtins.NoBound, Fn: defmacroForm})
	e.registry.Register(&builtins.Entry{Name: "quote", MinArgs: 1, MaxArgs: 1, Fn: quoteForm})
}

func ifForm(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
	cv, err := env.Eval(sc, args[0])
	if err != nil {
		return value.NilHandle, err
	}
	c, _ := env.Get(cv)
	if c.Truthy() {
		return env.Eval(sc, args[1])
	}
	if len(args) == 3 {
		return env.Eval(sc, args[2])
	}
	return value.NilHandle, nil
}

func condForm(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
	if len(args)%2 != 0 {
		return value.NilHandle, wisperrors.ArgShape("cond requires an even number of test/expr forms")
	}
	for i := 0; i < len(args); i += 2 {
		tv, err := env.Eval(sc, args[i])
		if err != nil {
			return value.NilHandle, err
		}
		tb, _ := env.Get(tv)
		if tb.Truthy() {
			return env.Eval(sc, args[i+1])
		}
	}
	return value.NilHandle, nil
}

func doForm(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
	child := sc.Child()
	result := value.NilHandle
	for _, a := range args {
		r, err := env.Eval(child, a)
		if err != nil {
			return value.NilHandle, err
		}
		result = r
	}
	return result, nil
}

func letForm(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
	names, exprs, err := bindingPairs(env, args[0])
	if err != nil {
		return value.NilHandle, err
	}

	child := sc.Child()
	for i, name := range names {
		v, err := env.Eval(child, exprs[i])
		if err != nil {
			return value.NilHandle, err
		}
		child.Bind(name, env.Promote(v))
	}

	result := value.NilHandle
	for _, b := range args[1:] {
		r, err := env.Eval(child, b)
		if err != nil {
			return value.NilHandle, err
		}
		result = r
	}
	return result, nil
}

func defForm(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
	sv, ok := env.Get(args[0])
	if !ok || sv.Kind != value.KindSymbol {
		return value.NilHandle, wisperrors.ArgShape("first argument to def must be a symbol")
	}
	v, err := env.Eval(sc, args[1])
	if err != nil {
		return value.NilHandle, err
	}
	sc.Bind(sv.Str, env.Promote(v))
	return value.NilHandle, nil
}

func fnForm(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
	params, err := paramNames(env, args[0])
	if err != nil {
		return value.NilHandle, err
	}
	body := wrapDo(env, args[1:])
	captured := env.CaptureFreeVars(sc, body)
	return env.Short().Register(value.ClosureOf(captured, params, false)), nil
}

func defnForm(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
	sv, ok := env.Get(args[0])
	if !ok || sv.Kind != value.KindSymbol {
		return value.NilHandle, wisperrors.ArgShape("first argument to defn must be a symbol")
	}
	params, err := paramNames(env, args[1])
	if err != nil {
		return value.NilHandle, err
	}
	body := wrapDo(env, args[2:])
	captured := env.CaptureFreeVars(sc, body)
	closure := env.Short().Register(value.ClosureOf(captured, params, false))
	sc.Bind(sv.Str, env.Promote(closure))
	return value.NilHandle, nil
}

func defmacroForm(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
	sv, ok := env.Get(args[0])
	if !ok || sv.Kind != value.KindSymbol {
		return value.NilHandle, wisperrors.ArgShape("first argument to defmacro must be a symbol")
	}
	params, err := paramNames(env, args[1])
	if err != nil {
		return value.NilHandle, err
	}
	body := wrapDo(env, args[2:])
	captured := env.CaptureFreeVars(sc, body)
	closure := env.Short().Register(value.ClosureOf(captured, params, true))
	sc.Bind(sv.Str, env.Promote(closure))
	return value.NilHandle, nil
}

func quoteForm(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
	return args[0], nil
}

// paramNames reads a [params...] form, a proper list whose head is the
// symbol "vector" (the reader's own desugaring of [...]), into a plain
// name slice.
func paramNames(env builtins.Env, h value.Handle) ([]string, error) {
	elems, err := vectorForm(env, h, "parameter list")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(elems))
	for _, eh := range elems {
		pv, ok := env.Get(eh)
		if !ok || pv.Kind != value.KindSymbol {
			return nil, wisperrors.ArgShape("every parameter must be a symbol")
		}
		names = append(names, pv.Str)
	}
	return names, nil
}

// bindingPairs reads a let bindings form, [sym1 expr1 sym2 expr2 ...],
// into parallel name/expression slices. The expression handles are left
// unevaluated; letForm evaluates them in order against the growing scope.
func bindingPairs(env builtins.Env, h value.Handle) ([]string, []value.Handle, error) {
	elems, err := vectorForm(env, h, "let bindings")
	if err != nil {
		return nil, nil, err
	}
	if len(elems)%2 != 0 {
		return nil, nil, wisperrors.ArgShape("let bindings must consist of symbol/value pairs")
	}
	names := make([]string, 0, len(elems)/2)
	exprs := make([]value.Handle, 0, len(elems)/2)
	for i := 0; i < len(elems); i += 2 {
		sv, ok := env.Get(elems[i])
		if !ok || sv.Kind != value.KindSymbol {
			return nil, nil, wisperrors.ArgShape("let bindings must consist of symbol/value pairs")
		}
		names = append(names, sv.Str)
		exprs = append(exprs, elems[i+1])
	}
	return names, exprs, nil
}

// vectorForm unwraps a [...]-desugared proper list (vector elem...),
// returning the elements after the leading "vector" tag symbol.
func vectorForm(env builtins.Env, h value.Handle, what string) ([]value.Handle, error) {
	v, ok := env.Get(h)
	if !ok {
		return nil, wisperrors.ArgShape(what + " is missing")
	}
	elems, ok := value.ToSlice(v, env)
	if !ok || len(elems) == 0 {
		return nil, wisperrors.ArgShape(what + " must be written with [...] syntax")
	}
	head, ok := env.Get(elems[0])
	if !ok || head.Kind != value.KindSymbol || head.Str != "vector" {
		return nil, wisperrors.ArgShape(what + " must be written with [...] syntax")
	}
	return elems[1:], nil
}

// wrapDo builds the (do body...) form fn/defn/defmacro wrap their body
// expressions in.
func wrapDo(env builtins.Env, body []value.Handle) value.Handle {
	doSym := env.Short().Register(value.Sym("do"))
	all := make([]value.Handle, 0, len(body)+1)
	all = append(all, doSym)
	all = append(all, body...)
	return listOf(env.Short(), all...)
}

// listOf right-nests elems into cons cells terminated by a registered
// Nil, mirroring pkgs/reader's buildProperList for Values the evaluator
// constructs itself rather than reads from source text.
func listOf(ar *arena.Arena, elems ...value.Handle) value.Handle {
	nilH := ar.Register(value.Nil())
	if len(elems) == 0 {
		return ar.Register(value.ConsOf(nilH, nilH))
	}
	tail := nilH
	for i := len(elems) - 1; i >= 0; i-- {
		tail = ar.Register(value.ConsOf(elems[i], tail))
	}
	return tail
}
