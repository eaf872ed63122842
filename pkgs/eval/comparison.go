package eval

import (
	"github.com/aledsdavies/wisp/pkgs/builtins"
	wisperrors "github.com/aledsdavies/wisp/pkgs/errors"
	"github.com/aledsdavies/wisp/pkgs/scope"
	"github.com/aledsdavies/wisp/pkgs/value"
)

// registerComparison wires = not= < <= > >= and the boolean negation not.
func (e *Evaluator) registerComparison() {
	e.registry.Register(&builtins.Entry{
		Name: "=", MinArgs: 2, MaxArgs: builtins.NoBound, PreEvaluateArgs: true,
		Fn: chainEquality(true),
	})
	e.registry.Register(&builtins.Entry{
		Name: "not=", MinArgs: 2, MaxArgs: builtins.NoBound, PreEvaluateArgs: true,
		Fn: chainEquality(false),
	})
	e.registry.Register(&builtins.Entry{
		Name: "<", MinArgs: 2, MaxArgs: builtins.NoBound, PreEvaluateArgs: true,
		Fn: chainOrder("<", func(c int) bool { return c < 0 }),
	})
	e.registry.Register(&builtins.Entry{
		Name: "<=", MinArgs: 2, MaxArgs: builtins.NoBound, PreEvaluateArgs: true,
		Fn: chainOrder("<=", func(c int) bool { return c <= 0 }),
	})
	e.registry.Register(&builtins.Entry{
		Name: ">", MinArgs: 2, MaxArgs: builtins.NoBound, PreEvaluateArgs: true,
		Fn: chainOrder(">", func(c int) bool { return c > 0 }),
	})
	e.registry.Register(&builtins.Entry{
		Name: ">=", MinArgs: 2, MaxArgs: builtins.NoBound, PreEvaluateArgs: true,
		Fn: chainOrder(">=", func(c int) bool { return c >= 0 }),
	})
	e.registry.Register(&builtins.Entry{
		Name: "not", MinArgs: 1, MaxArgs: 1, PreEvaluateArgs: true,
		Fn: notFn,
	})
}

// chainEquality implements = and not= across any number of arguments: =
// holds when every adjacent pair is structurally equal, and not= is its
// exact negation.
func chainEquality(wantEqual bool) func(builtins.Env, *scope.Scope, []value.Handle) (value.Handle, error) {
	return func(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
		allEqual := true
		for i := 1; i < len(args); i++ {
			av, aok := env.Get(args[i-1])
			bv, bok := env.Get(args[i])
			if !aok || !bok {
				return value.NilHandle, wisperrors.TypeError("=", 0, "unresolvable argument")
			}
			if !value.Equal(av, bv, env) {
				allEqual = false
				break
			}
		}
		return env.Short().Register(value.Boolean(allEqual == wantEqual)), nil
	}
}

// chainOrder implements < <= > >= across any number of numeric arguments.
func chainOrder(name string, satisfies func(int) bool) func(builtins.Env, *scope.Scope, []value.Handle) (value.Handle, error) {
	return func(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
		nums, err := numbersOf(env, name, args)
		if err != nil {
			return value.NilHandle, err
		}
		for i := 1; i < len(nums); i++ {
			if !satisfies(value.Compare(nums[i-1], nums[i])) {
				return env.Short().Register(value.Boolean(false)), nil
			}
		}
		return env.Short().Register(value.Boolean(true)), nil
	}
}

func notFn(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
	v, ok := env.Get(args[0])
	if !ok {
		return value.NilHandle, wisperrors.TypeError("not", 0, "unresolvable argument")
	}
	return env.Short().Register(value.Boolean(!v.Truthy())), nil
}
