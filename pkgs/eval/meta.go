package eval

import (
	"strings"

	"github.com/aledsdavies/wisp/pkgs/builtins"
	"github.com/aledsdavies/wisp/pkgs/scope"
	"github.com/aledsdavies/wisp/pkgs/value"
)

// registerMeta wires eval, str and gensym.
func (e *Evaluator) registerMeta() {
	e.registry.Register(&builtins.Entry{
		Name: "eval", MinArgs: 1, MaxArgs: 1, PreEvaluateArgs: true,
		Fn: evalFn,
	})
	e.registry.Register(&builtins.Entry{
		Name: "str", MinArgs: 0, MaxArgs: builtins.NoBound, PreEvaluateArgs: true,
		Fn: strFn,
	})
	e.registry.Register(&builtins.Entry{
		Name: "gensym", MinArgs: 0, MaxArgs: 1, PreEvaluateArgs: true,
		Fn: gensymFn,
	})
}

// evalFn re-evaluates an already-evaluated value against the calling
// scope.
func evalFn(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
	return env.Eval(sc, args[0])
}

// strFn concatenates the human-facing render of every argument.
func strFn(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
	var b strings.Builder
	for _, h := range args {
		v, ok := env.Get(h)
		if !ok {
			continue
		}
		b.WriteString(value.RenderHuman(v, env))
	}
	return env.Short().Register(value.Str(b.String())), nil
}

// gensymFn returns a fresh, guaranteed-unique Symbol, optionally prefixed
// by its single string argument.
func gensymFn(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
	prefix := "G"
	if len(args) == 1 {
		v, ok := env.Get(args[0])
		if ok && v.Kind == value.KindString {
			prefix = v.Str
		}
	}
	return env.Gensym(prefix), nil
}
