package eval

import (
	"os"

	"github.com/aledsdavies/wisp/pkgs/builtins"
	wisperrors "github.com/aledsdavies/wisp/pkgs/errors"
	"github.com/aledsdavies/wisp/pkgs/scope"
	"github.com/aledsdavies/wisp/pkgs/value"
)

var stringSig = builtins.KindSet{value.KindString}

// registerFile wires load-file load-string slurp spit. load-file and
// load-string route their text back through the reader and evaluator.
func (e *Evaluator) registerFile() {
	e.registry.Register(&builtins.Entry{
		Name: "load-file", MinArgs: 1, MaxArgs: 1, PreEvaluateArgs: true,
		Sig: []builtins.KindSet{stringSig}, Fn: loadFileFn,
	})
	e.registry.Register(&builtins.Entry{
		Name: "load-string", MinArgs: 1, MaxArgs: 1, PreEvaluateArgs: true,
		Sig: []builtins.KindSet{stringSig}, Fn: loadStringFn,
	})
	e.registry.Register(&builtins.Entry{
		Name: "slurp", MinArgs: 1, MaxArgs: 1, PreEvaluateArgs: true,
		Sig: []builtins.KindSet{stringSig}, Fn: slurpFn,
	})
	e.registry.Register(&builtins.Entry{
		Name: "spit", MinArgs: 2, MaxArgs: 2, PreEvaluateArgs: true,
		Sig: []builtins.KindSet{stringSig, stringSig}, Fn: spitFn,
	})
}

func loadFileFn(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
	pathV, _ := env.Get(args[0])
	data, err := os.ReadFile(pathV.Str)
	if err != nil {
		return value.NilHandle, wisperrors.New(wisperrors.KindArgShape, "load-file: "+err.Error())
	}
	return evalSourceInScope(env, sc, string(data))
}

func loadStringFn(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
	srcV, _ := env.Get(args[0])
	return evalSourceInScope(env, sc, srcV.Str)
}

// evalSourceInScope parses every top-level form in src and evaluates them
// in order against sc, returning the last result: the whole file is one
// implicit do.
func evalSourceInScope(env builtins.Env, sc *scope.Scope, src string) (value.Handle, error) {
	forms, err := env.ParseAll(src)
	if err != nil {
		return value.NilHandle, err
	}
	result := value.NilHandle
	for _, f := range forms {
		r, err := env.Eval(sc, f)
		if err != nil {
			return value.NilHandle, err
		}
		result = r
	}
	return result, nil
}

func slurpFn(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
	pathV, _ := env.Get(args[0])
	data, err := os.ReadFile(pathV.Str)
	if err != nil {
		return value.NilHandle, wisperrors.New(wisperrors.KindArgShape, "slurp: "+err.Error())
	}
	return env.Short().Register(value.Str(string(data))), nil
}

func spitFn(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
	pathV, _ := env.Get(args[0])
	contentV, _ := env.Get(args[1])
	if err := os.WriteFile(pathV.Str, []byte(contentV.Str), 0o644); err != nil {
		return value.NilHandle, wisperrors.New(wisperrors.KindArgShape, "spit: "+err.Error())
	}
	return env.Short().Register(value.Nil()), nil
}
