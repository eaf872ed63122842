package eval

import (
	"github.com/aledsdavies/wisp/pkgs/builtins"
	wisperrors "github.com/aledsdavies/wisp/pkgs/errors"
	"github.com/aledsdavies/wisp/pkgs/scope"
	"github.com/aledsdavies/wisp/pkgs/value"
)

// registerNumeric wires quot rem mod inc dec max min.
func (e *Evaluator) registerNumeric() {
	e.registry.Register(&builtins.Entry{
		Name: "quot", MinArgs: 2, MaxArgs: 2, PreEvaluateArgs: true, Sig: []builtins.KindSet{numberSig, numberSig},
		Fn: binaryNumeric("quot", value.Quot),
	})
	e.registry.Register(&builtins.Entry{
		Name: "rem", MinArgs: 2, MaxArgs: 2, PreEvaluateArgs: true, Sig: []builtins.KindSet{numberSig, numberSig},
		Fn: binaryNumeric("rem", value.Rem),
	})
	e.registry.Register(&builtins.Entry{
		Name: "mod", MinArgs: 2, MaxArgs: 2, PreEvaluateArgs: true, Sig: []builtins.KindSet{numberSig, numberSig},
		Fn: binaryNumeric("mod", value.Mod),
	})
	e.registry.Register(&builtins.Entry{
		Name: "max", MinArgs: 2, MaxArgs: 2, PreEvaluateArgs: true, Sig: []builtins.KindSet{numberSig, numberSig},
		Fn: binaryNumeric("max", value.Max),
	})
	e.registry.Register(&builtins.Entry{
		Name: "min", MinArgs: 2, MaxArgs: 2, PreEvaluateArgs: true, Sig: []builtins.KindSet{numberSig, numberSig},
		Fn: binaryNumeric("min", value.Min),
	})
	e.registry.Register(&builtins.Entry{
		Name: "inc", MinArgs: 1, MaxArgs: 1, PreEvaluateArgs: true, Sig: []builtins.KindSet{numberSig},
		Fn: unaryNumeric("inc", value.Inc),
	})
	e.registry.Register(&builtins.Entry{
		Name: "dec", MinArgs: 1, MaxArgs: 1, PreEvaluateArgs: true, Sig: []builtins.KindSet{numberSig},
		Fn: unaryNumeric("dec", value.Dec),
	})
}

func binaryNumeric(name string, op func(a, b value.Number) value.Number) func(builtins.Env, *scope.Scope, []value.Handle) (value.Handle, error) {
	return func(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
		nums, err := numbersOf(env, name, args)
		if err != nil {
			return value.NilHandle, err
		}
		switch name {
		case "quot", "rem", "mod":
			if nums[1].IsZero() {
				return value.NilHandle, wisperrors.Divide("division by zero in " + name)
			}
		}
		return env.Short().Register(value.Num(op(nums[0], nums[1]))), nil
	}
}

func unaryNumeric(name string, op func(value.Number) value.Number) func(builtins.Env, *scope.Scope, []value.Handle) (value.Handle, error) {
	return func(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
		nums, err := numbersOf(env, name, args)
		if err != nil {
			return value.NilHandle, err
		}
		return env.Short().Register(value.Num(op(nums[0]))), nil
	}
}
