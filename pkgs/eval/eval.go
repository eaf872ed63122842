// Package eval implements the evaluator: Value-tree walking, special-form
// dispatch, built-in and closure application, and closure capture.
package eval

import (
	"fmt"

	"github.com/aledsdavies/wisp/pkgs/arena"
	"github.com/aledsdavies/wisp/pkgs/builtins"
	wisperrors "github.com/aledsdavies/wisp/pkgs/errors"
	"github.com/aledsdavies/wisp/pkgs/ioproxy"
	"github.com/aledsdavies/wisp/pkgs/reader"
	"github.com/aledsdavies/wisp/pkgs/scope"
	"github.com/aledsdavies/wisp/pkgs/suggest"
	"github.com/aledsdavies/wisp/pkgs/value"
)

// macroEvalSentinel is the internal marker left-element name: a
// two-element cons whose left is this symbol flags its right as a
// deferred, re-expand-on-lookup macro argument.
const macroEvalSentinel = "macroEval"

// Evaluator owns the two Arenas, the root Scope, the I/O proxy and the
// built-in registry, and implements builtins.Env so registered built-ins
// can call back into Eval, read/write I/O, and reach either Arena without
// this package and pkgs/builtins importing each other.
type Evaluator struct {
	short, long *arena.Arena
	io          ioproxy.IO
	registry    *builtins.Registry
	root        *scope.Scope
	gensymSeq   int
}

// New constructs an Evaluator with a fresh root Scope seeded with every
// registered built-in.
func New(short, long *arena.Arena, io ioproxy.IO) *Evaluator {
	e := &Evaluator{
		short:    short,
		long:     long,
		io:       io,
		registry: builtins.NewRegistry(),
		root:     scope.New(),
	}
	e.registerControl()
	e.registerArithmetic()
	e.registerComparison()
	e.registerNumeric()
	e.registerList()
	e.registerIOBuiltins()
	e.registerMeta()
	e.registerFile()
	e.registerNamespace()

	for _, name := range e.registry.Names() {
		h := e.long.Register(value.Builtin(name))
		e.root.Bind(name, h)
	}
	return e
}

// Root returns the persistent root Scope, implementing builtins.Env.
func (e *Evaluator) Root() *scope.Scope { return e.root }

// Short returns the transient Arena, implementing builtins.Env.
func (e *Evaluator) Short() *arena.Arena { return e.short }

// Long returns the Scope-rooted Arena, implementing builtins.Env.
func (e *Evaluator) Long() *arena.Arena { return e.long }

// IO returns the pluggable I/O proxy, implementing builtins.Env.
func (e *Evaluator) IO() ioproxy.IO { return e.io }

// ParseAll reads every top-level form out of src, implementing
// builtins.Env (used by load-file/load-string/read-string).
func (e *Evaluator) ParseAll(src string) ([]value.Handle, error) {
	return reader.New(src, e.short).ReadAll()
}

// Get implements value.Resolver by trying the long-term Arena, then the
// short-term one. Because the two Arenas hand out disjoint Handle ranges
// (see pkgs/arena), this unambiguously resolves any Handle regardless of
// which Arena originally produced it.
func (e *Evaluator) Get(h value.Handle) (value.Value, bool) {
	if v, ok := e.long.Get(h); ok {
		return v, true
	}
	return e.short.Get(h)
}

// Gensym returns a freshly registered, guaranteed-unique Symbol Value's
// handle, backing the gensym built-in.
func (e *Evaluator) Gensym(prefix string) value.Handle {
	e.gensymSeq++
	return e.short.Register(value.Sym(fmt.Sprintf("%s__%d", prefix, e.gensymSeq)))
}

// Promote deep-copies h into the long-term Arena, implementing
// builtins.Env for def/let/defn/defmacro.
func (e *Evaluator) Promote(h value.Handle) value.Handle {
	return arena.DeepCopy(h, e, e.long)
}

// CaptureFreeVars is the one-shot, construction-time capture walk: every
// free Symbol currently bound in sc is replaced with its bound Value,
// recursing structurally through Cons and Vector. Symbols not yet bound
// (e.g. a closure's own parameter names) are left as Symbols, to be
// resolved normally when the closure is called.
func (e *Evaluator) CaptureFreeVars(sc *scope.Scope, h value.Handle) value.Handle {
	v, ok := e.Get(h)
	if !ok {
		return h
	}
	switch v.Kind {
	case value.KindSymbol:
		if bound, ok := sc.Lookup(v.Str); ok {
			return bound
		}
		return h
	case value.KindCons:
		left := e.CaptureFreeVars(sc, v.Left)
		right := e.CaptureFreeVars(sc, v.Right)
		return e.short.Register(value.ConsOf(left, right))
	case value.KindVector:
		elems := make([]value.Handle, len(v.Elems))
		for i, eh := range v.Elems {
			elems[i] = e.CaptureFreeVars(sc, eh)
		}
		return e.short.Register(value.VectorOf(elems))
	default:
		return h
	}
}

// Eval is the core dispatch: self-evaluating Kinds return unchanged,
// vectors evaluate element-wise, symbols resolve through sc, and a proper
// list applies its head to its tail.
func (e *Evaluator) Eval(sc *scope.Scope, h value.Handle) (value.Handle, error) {
	v, ok := e.Get(h)
	if !ok {
		return value.NilHandle, wisperrors.TypeError("eval", 0, "reference to a released or unknown handle")
	}

	switch v.Kind {
	case value.KindNil, value.KindBoolean, value.KindNumber, value.KindString,
		value.KindBuiltin, value.KindClosure:
		return h, nil

	case value.KindVector:
		elems := make([]value.Handle, len(v.Elems))
		for i, eh := range v.Elems {
			rh, err := e.Eval(sc, eh)
			if err != nil {
				return value.NilHandle, err
			}
			elems[i] = rh
		}
		return e.short.Register(value.VectorOf(elems)), nil

	case value.KindSymbol:
		return e.evalSymbol(sc, v.Str)

	case value.KindCons:
		return e.evalCons(sc, v)

	default:
		return value.NilHandle, wisperrors.TypeError("eval", 0, fmt.Sprintf("cannot evaluate a %s", v.Kind))
	}
}

// evalSymbol resolves a symbol through sc, expanding a macroEval sentinel
// on the way out.
func (e *Evaluator) evalSymbol(sc *scope.Scope, name string) (value.Handle, error) {
	h, ok := sc.Lookup(name)
	if !ok {
		suggestion := suggest.Best(name, sc.Names())
		return value.NilHandle, wisperrors.UnknownSymbol(name, suggestion)
	}

	v, ok := e.Get(h)
	if !ok {
		return h, nil
	}
	if v.Kind != value.KindCons {
		return h, nil
	}
	left, ok := e.Get(v.Left)
	if !ok || left.Kind != value.KindSymbol || left.Str != macroEvalSentinel {
		return h, nil
	}

	temp, err := e.Eval(sc, v.Right)
	if err != nil {
		return value.NilHandle, err
	}
	return e.Eval(sc, temp)
}

// evalCons applies the head of a proper list to its tail.
func (e *Evaluator) evalCons(sc *scope.Scope, v value.Value) (value.Handle, error) {
	if !value.IsList(v, e) {
		return value.NilHandle, wisperrors.NotCallable("an executable S-expression must be a proper list")
	}
	elems, _ := value.ToSlice(v, e)
	if len(elems) == 0 {
		return value.NilHandle, wisperrors.NotCallable("cannot call the empty list")
	}

	headHandle, err := e.Eval(sc, elems[0])
	if err != nil {
		return value.NilHandle, err
	}
	args := elems[1:]

	headVal, ok := e.Get(headHandle)
	if !ok {
		return value.NilHandle, wisperrors.NotCallable("call head resolved to nothing")
	}

	switch headVal.Kind {
	case value.KindBuiltin:
		return e.callBuiltin(sc, headVal.Str, args)
	case value.KindClosure:
		return e.callClosure(sc, headVal.Closure, args)
	default:
		return value.NilHandle, wisperrors.NotCallable("an executable S-expression must begin with a function")
	}
}

func (e *Evaluator) callBuiltin(sc *scope.Scope, name string, args []value.Handle) (value.Handle, error) {
	entry, ok := e.registry.Get(name)
	if !ok {
		return value.NilHandle, wisperrors.NotCallable(fmt.Sprintf("%q is not a registered built-in", name))
	}

	if entry.MinArgs != builtins.NoBound && len(args) < entry.MinArgs {
		return value.NilHandle, wisperrors.ArityError(name, arityWant(entry), len(args))
	}
	if entry.MaxArgs != builtins.NoBound && len(args) > entry.MaxArgs {
		return value.NilHandle, wisperrors.ArityError(name, arityWant(entry), len(args))
	}

	prepared := args
	if entry.PreEvaluateArgs {
		prepared = make([]value.Handle, len(args))
		for i, ah := range args {
			rh, err := e.Eval(sc, ah)
			if err != nil {
				return value.NilHandle, err
			}
			prepared[i] = rh
		}
	}

	if len(entry.Sig) > 0 {
		for i, ph := range prepared {
			if i >= len(entry.Sig) {
				break
			}
			pv, ok := e.Get(ph)
			if !ok || !entry.Sig[i].Allows(pv.Kind) {
				return value.NilHandle, wisperrors.TypeError(name, 0,
					fmt.Sprintf("argument %d does not match %s's declared type signature", i+1, name))
			}
		}
	}

	result, err := entry.Fn(e, sc, prepared)
	if err != nil {
		return value.NilHandle, err
	}
	if result == value.NilHandle {
		return e.short.Register(value.Nil()), nil
	}
	return result, nil
}

// callClosure applies a closure. The body runs in a fresh child of the
// CALLER's scope (sc), not a scope recorded at closure-construction time;
// free variables were already frozen into the body by CaptureFreeVars
// when the closure was built.
func (e *Evaluator) callClosure(sc *scope.Scope, c value.Closure, args []value.Handle) (value.Handle, error) {
	if len(c.Params) != len(args) {
		return value.NilHandle, wisperrors.ArityError("closure", fmt.Sprintf("exactly %d", len(c.Params)), len(args))
	}

	fnScope := sc.Child()

	if c.IsMacro {
		for i, param := range c.Params {
			tagH := e.short.Register(value.Sym(macroEvalSentinel))
			sentinel := e.short.Register(value.ConsOf(tagH, args[i]))
			longSentinel := arena.DeepCopy(sentinel, e, e.long)
			fnScope.Bind(param, longSentinel)
		}
	} else {
		for i, param := range c.Params {
			evaluated, err := e.Eval(sc, args[i])
			if err != nil {
				return value.NilHandle, err
			}
			longHandle := arena.DeepCopy(evaluated, e, e.long)
			fnScope.Bind(param, longHandle)
		}
	}

	return e.Eval(fnScope, c.Body)
}

func arityWant(entry *builtins.Entry) string {
	switch {
	case entry.MinArgs == entry.MaxArgs && entry.MinArgs != builtins.NoBound:
		return fmt.Sprintf("exactly %d", entry.MinArgs)
	case entry.MaxArgs == builtins.NoBound && entry.MinArgs != builtins.NoBound:
		return fmt.Sprintf("at least %d", entry.MinArgs)
	case entry.MinArgs == builtins.NoBound && entry.MaxArgs != builtins.NoBound:
		return fmt.Sprintf("at most %d", entry.MaxArgs)
	case entry.MinArgs != builtins.NoBound && entry.MaxArgs != builtins.NoBound:
		return fmt.Sprintf("%d to %d", entry.MinArgs, entry.MaxArgs)
	default:
		return "any number of"
	}
}
