package eval

import (
	"github.com/aledsdavies/wisp/pkgs/builtins"
	wisperrors "github.com/aledsdavies/wisp/pkgs/errors"
	"github.com/aledsdavies/wisp/pkgs/scope"
	"github.com/aledsdavies/wisp/pkgs/value"
)

var numberSig = builtins.KindSet{value.KindNumber}

// registerArithmetic wires + - * /. All four pre-evaluate their arguments
// and fold left-to-right.
func (e *Evaluator) registerArithmetic() {
	e.registry.Register(&builtins.Entry{
		Name: "+", MinArgs: 0, MaxArgs: builtins.NoBound, PreEvaluateArgs: true,
		Fn: foldNumeric("+", value.Int(0), value.Add),
	})
	e.registry.Register(&builtins.Entry{
		Name: "*", MinArgs: 0, MaxArgs: builtins.NoBound, PreEvaluateArgs: true,
		Fn: foldNumeric("*", value.Int(1), value.Mul),
	})
	e.registry.Register(&builtins.Entry{
		Name: "-", MinArgs: 1, MaxArgs: builtins.NoBound, PreEvaluateArgs: true,
		Fn: foldSubtractive("-", value.Sub, func(n value.Number) value.Number {
			return value.Sub(value.Int(0), n)
		}),
	})
	e.registry.Register(&builtins.Entry{
		Name: "/", MinArgs: 1, MaxArgs: builtins.NoBound, PreEvaluateArgs: true,
		Fn: foldSubtractive("/", value.Div, func(n value.Number) value.Number {
			return value.Div(value.Int(1), n)
		}),
	})
}

func numbersOf(env builtins.Env, name string, args []value.Handle) ([]value.Number, error) {
	nums := make([]value.Number, len(args))
	for i, h := range args {
		v, ok := env.Get(h)
		if !ok || v.Kind != value.KindNumber {
			return nil, wisperrors.TypeError(name, 0, "all arguments must be numbers")
		}
		nums[i] = v.Num
	}
	return nums, nil
}

// foldNumeric implements the identity-seeded, any-arity fold + and * use.
func foldNumeric(name string, identity value.Number, op func(a, b value.Number) value.Number) func(builtins.Env, *scope.Scope, []value.Handle) (value.Handle, error) {
	return func(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
		nums, err := numbersOf(env, name, args)
		if err != nil {
			return value.NilHandle, err
		}
		acc := identity
		for _, n := range nums {
			acc = op(acc, n)
		}
		return env.Short().Register(value.Num(acc)), nil
	}
}

// foldSubtractive implements the - and / one-argument-negates, multi-
// argument-left-folds convention shared by both operators.
func foldSubtractive(name string, op func(a, b value.Number) value.Number, unary func(value.Number) value.Number) func(builtins.Env, *scope.Scope, []value.Handle) (value.Handle, error) {
	return func(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
		nums, err := numbersOf(env, name, args)
		if err != nil {
			return value.NilHandle, err
		}
		if len(nums) == 1 {
			return env.Short().Register(value.Num(unary(nums[0]))), nil
		}
		acc := nums[0]
		for _, n := range nums[1:] {
			acc = op(acc, n)
		}
		return env.Short().Register(value.Num(acc)), nil
	}
}
