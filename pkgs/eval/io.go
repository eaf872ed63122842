package eval

import (
	"strings"

	"github.com/aledsdavies/wisp/pkgs/builtins"
	wisperrors "github.com/aledsdavies/wisp/pkgs/errors"
	"github.com/aledsdavies/wisp/pkgs/scope"
	"github.com/aledsdavies/wisp/pkgs/value"
)

// registerIOBuiltins wires print println print-str println-str read-line
// read-string.
func (e *Evaluator) registerIOBuiltins() {
	e.registry.Register(&builtins.Entry{
		Name: "print", MinArgs: 0, MaxArgs: builtins.NoBound, PreEvaluateArgs: true,
		Fn: printFn(false, true),
	})
	e.registry.Register(&builtins.Entry{
		Name: "println", MinArgs: 0, MaxArgs: builtins.NoBound, PreEvaluateArgs: true,
		Fn: printFn(true, true),
	})
	e.registry.Register(&builtins.Entry{
		Name: "print-str", MinArgs: 0, MaxArgs: builtins.NoBound, PreEvaluateArgs: true,
		Fn: printFn(false, false),
	})
	e.registry.Register(&builtins.Entry{
		Name: "println-str", MinArgs: 0, MaxArgs: builtins.NoBound, PreEvaluateArgs: true,
		Fn: printFn(true, false),
	})
	e.registry.Register(&builtins.Entry{
		Name: "read-line", MinArgs: 0, MaxArgs: 0, PreEvaluateArgs: true,
		Fn: readLineFn,
	})
	e.registry.Register(&builtins.Entry{
		Name: "read-string", MinArgs: 1, MaxArgs: 1, PreEvaluateArgs: true,
		Sig:  []builtins.KindSet{{value.KindString}},
		Fn:   readStringFn,
	})
}

// printFn builds the four print variants: trailingNewline selects
// println/println-str, toStdout selects whether the joined text is
// written to the IO proxy or returned as a String. Arguments are joined
// with a single space, no trailing space.
func printFn(trailingNewline, toStdout bool) func(builtins.Env, *scope.Scope, []value.Handle) (value.Handle, error) {
	return func(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
		parts := make([]string, len(args))
		for i, h := range args {
			v, ok := env.Get(h)
			if !ok {
				return value.NilHandle, wisperrors.TypeError("print", 0, "unresolvable argument")
			}
			parts[i] = value.RenderHuman(v, env)
		}
		text := strings.Join(parts, " ")
		if trailingNewline {
			text += "\n"
		}
		if toStdout {
			env.IO().WriteOut(text)
			return env.Short().Register(value.Nil()), nil
		}
		return env.Short().Register(value.Str(text)), nil
	}
}

func readLineFn(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
	line, err := env.IO().ReadLine()
	if err != nil {
		return env.Short().Register(value.Nil()), nil
	}
	return env.Short().Register(value.Str(line)), nil
}

// readStringFn parses its string argument and returns the first form read
// from it, or nil when the string holds no form.
func readStringFn(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
	sv, _ := env.Get(args[0])
	forms, err := env.ParseAll(sv.Str)
	if err != nil {
		return value.NilHandle, err
	}
	if len(forms) == 0 {
		return env.Short().Register(value.Nil()), nil
	}
	return forms[0], nil
}
