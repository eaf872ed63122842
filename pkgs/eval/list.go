package eval

import (
	"github.com/aledsdavies/wisp/pkgs/builtins"
	wisperrors "github.com/aledsdavies/wisp/pkgs/errors"
	"github.com/aledsdavies/wisp/pkgs/scope"
	"github.com/aledsdavies/wisp/pkgs/value"
)

// registerList wires cons list first rest nth vector count subs compare,
// the type predicates, and apply.
func (e *Evaluator) registerList() {
	e.registry.Register(&builtins.Entry{
		Name: "cons", MinArgs: 2, MaxArgs: 2, PreEvaluateArgs: true,
		Fn: consFn,
	})
	e.registry.Register(&builtins.Entry{
		Name: "list", MinArgs: 0, MaxArgs: builtins.NoBound, PreEvaluateArgs: true,
		Fn: listFn,
	})
	e.registry.Register(&builtins.Entry{
		Name: "vector", MinArgs: 0, MaxArgs: builtins.NoBound, PreEvaluateArgs: true,
		Fn: vectorFn,
	})
	e.registry.Register(&builtins.Entry{
		Name: "first", MinArgs: 1, MaxArgs: 1, PreEvaluateArgs: true,
		Fn: firstFn,
	})
	e.registry.Register(&builtins.Entry{
		Name: "rest", MinArgs: 1, MaxArgs: 1, PreEvaluateArgs: true,
		Fn: restFn,
	})
	e.registry.Register(&builtins.Entry{
		Name: "nth", MinArgs: 2, MaxArgs: 3, PreEvaluateArgs: true,
		Fn: nthFn,
	})
	e.registry.Register(&builtins.Entry{
		Name: "count", MinArgs: 1, MaxArgs: 1, PreEvaluateArgs: true,
		Fn: countFn,
	})
	e.registry.Register(&builtins.Entry{
		Name: "compare", MinArgs: 2, MaxArgs: 2, PreEvaluateArgs: true,
		Fn: compareFn,
	})
	e.registry.Register(&builtins.Entry{
		Name: "subs", MinArgs: 2, MaxArgs: 3, PreEvaluateArgs: true,
		Fn: subsFn,
	})
	e.registry.Register(&builtins.Entry{
		Name: "apply", MinArgs: 2, MaxArgs: 2, PreEvaluateArgs: true,
		Fn: applyFn,
	})

	registerPredicate(e, "list?", func(v value.Value, env builtins.Env) bool {
		return v.Kind == value.KindCons && value.IsList(v, env)
	})
	registerPredicate(e, "vector?", func(v value.Value, env builtins.Env) bool {
		return v.Kind == value.KindVector
	})
	registerPredicate(e, "number?", func(v value.Value, env builtins.Env) bool {
		return v.Kind == value.KindNumber
	})
	registerPredicate(e, "string?", func(v value.Value, env builtins.Env) bool {
		return v.Kind == value.KindString
	})
	registerPredicate(e, "symbol?", func(v value.Value, env builtins.Env) bool {
		return v.Kind == value.KindSymbol
	})
	registerPredicate(e, "nil?", func(v value.Value, env builtins.Env) bool {
		return v.Kind == value.KindNil
	})
	registerPredicate(e, "fn?", func(v value.Value, env builtins.Env) bool {
		return v.Kind == value.KindClosure || v.Kind == value.KindBuiltin
	})
}

func registerPredicate(e *Evaluator, name string, test func(value.Value, builtins.Env) bool) {
	e.registry.Register(&builtins.Entry{
		Name: name, MinArgs: 1, MaxArgs: 1, PreEvaluateArgs: true,
		Fn: func(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
			v, ok := env.Get(args[0])
			if !ok {
				return value.NilHandle, wisperrors.TypeError(name, 0, "unresolvable argument")
			}
			return env.Short().Register(value.Boolean(test(v, env))), nil
		},
	})
}

func consFn(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
	return env.Short().Register(value.ConsOf(args[0], args[1])), nil
}

// listFn builds a proper list out of its (already evaluated) arguments.
func listFn(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
	return listOf(env.Short(), args...), nil
}

// vectorFn constructs an actual Vector Value from evaluated arguments.
// The reader desugars [...] literals into (vector elem...) at read time,
// so this is both the literal's runtime constructor and an ordinary
// callable built-in.
func vectorFn(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
	elems := make([]value.Handle, len(args))
	copy(elems, args)
	return env.Short().Register(value.VectorOf(elems)), nil
}

func firstFn(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
	v, ok := env.Get(args[0])
	if !ok || v.Kind != value.KindCons {
		return value.NilHandle, wisperrors.TypeError("first", 0, "argument must be a list")
	}
	return v.Left, nil
}

func restFn(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
	v, ok := env.Get(args[0])
	if !ok || v.Kind != value.KindCons {
		return value.NilHandle, wisperrors.TypeError("rest", 0, "argument must be a list")
	}
	return v.Right, nil
}

// nthFn looks up index into a list or vector. Out of bounds returns the
// optional third argument when supplied, else an error.
func nthFn(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
	elems, err := collectionElems(env, "nth", args[0])
	if err != nil {
		return value.NilHandle, err
	}
	iv, ok := env.Get(args[1])
	if !ok || iv.Kind != value.KindNumber {
		return value.NilHandle, wisperrors.TypeError("nth", 0, "second argument to nth must be an index")
	}
	index := int(iv.Num.AsFloat())
	if index < 0 {
		return value.NilHandle, wisperrors.TypeError("nth", 0, "index to nth is < 0")
	}
	if index < len(elems) {
		return elems[index], nil
	}
	if len(args) == 3 {
		return args[2], nil
	}
	return value.NilHandle, wisperrors.TypeError("nth", 0, "index to nth is out of bounds")
}

// countFn returns the length of nil (0), a string (byte length), a
// vector, or a proper list.
func countFn(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
	v, ok := env.Get(args[0])
	if !ok {
		return value.NilHandle, wisperrors.TypeError("count", 0, "unresolvable argument")
	}
	switch v.Kind {
	case value.KindNil:
		return env.Short().Register(value.Num(value.Int(0))), nil
	case value.KindString:
		return env.Short().Register(value.Num(value.Int(int64(len(v.Str))))), nil
	case value.KindVector:
		return env.Short().Register(value.Num(value.Int(int64(len(v.Elems))))), nil
	case value.KindCons:
		elems, ok := value.ToSlice(v, env)
		if !ok {
			return value.NilHandle, wisperrors.TypeError("count", 0, "argument must be a proper list")
		}
		return env.Short().Register(value.Num(value.Int(int64(len(elems))))), nil
	default:
		return value.NilHandle, wisperrors.TypeError("count", 0, "count requires nil, a string, a vector, or a list")
	}
}

// compareFn orders nil, strings, and lists/vectors: nil sorts before
// anything non-nil, strings compare lexicographically, collections
// compare by length. Mixing a string and a vector/list is an error.
func compareFn(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
	a, aok := env.Get(args[0])
	b, bok := env.Get(args[1])
	if !aok || !bok {
		return value.NilHandle, wisperrors.TypeError("compare", 0, "unresolvable argument")
	}

	aColl := a.Kind == value.KindVector || a.Kind == value.KindCons
	bColl := b.Kind == value.KindVector || b.Kind == value.KindCons
	if (a.Kind == value.KindString && bColl) || (aColl && b.Kind == value.KindString) {
		return value.NilHandle, wisperrors.TypeError("compare", 0, "you may not compare a string and a collection")
	}

	var result int
	switch {
	case a.Kind == value.KindNil && b.Kind == value.KindNil:
		result = 0
	case a.Kind == value.KindNil:
		result = -1
	case b.Kind == value.KindNil:
		result = 1
	case a.Kind == value.KindString && b.Kind == value.KindString:
		switch {
		case a.Str < b.Str:
			result = -1
		case a.Str > b.Str:
			result = 1
		default:
			result = 0
		}
	default:
		aLen, err := collectionLen(env, "compare", a)
		if err != nil {
			return value.NilHandle, err
		}
		bLen, err := collectionLen(env, "compare", b)
		if err != nil {
			return value.NilHandle, err
		}
		result = aLen - bLen
	}
	return env.Short().Register(value.Num(value.Int(int64(result)))), nil
}

// subsFn implements substring extraction: two arguments take the
// remainder from start, three take [start, end).
func subsFn(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
	sv, ok := env.Get(args[0])
	if !ok || sv.Kind != value.KindString {
		return value.NilHandle, wisperrors.TypeError("subs", 0, "first argument to subs must be a string")
	}
	startV, ok := env.Get(args[1])
	if !ok || startV.Kind != value.KindNumber {
		return value.NilHandle, wisperrors.TypeError("subs", 0, "second argument to subs must be a number")
	}
	start := int(startV.Num.AsFloat())
	end := len(sv.Str)
	if len(args) == 3 {
		endV, ok := env.Get(args[2])
		if !ok || endV.Kind != value.KindNumber {
			return value.NilHandle, wisperrors.TypeError("subs", 0, "third argument to subs must be a number")
		}
		end = int(endV.Num.AsFloat())
	}
	if start < 0 || end > len(sv.Str) || start > end {
		return value.NilHandle, wisperrors.TypeError("subs", 0, "subs index out of bounds")
	}
	return env.Short().Register(value.Str(sv.Str[start:end])), nil
}

// applyFn splices a list of arguments into a call to f.
func applyFn(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
	fv, ok := env.Get(args[0])
	if !ok || (fv.Kind != value.KindClosure && fv.Kind != value.KindBuiltin) {
		return value.NilHandle, wisperrors.TypeError("apply", 0, "first argument to apply must be a function")
	}
	spliced, err := collectionElems(env, "apply", args[1])
	if err != nil {
		return value.NilHandle, err
	}

	quoted := make([]value.Handle, len(spliced))
	for i, h := range spliced {
		quoted[i] = quoteHandle(env, h)
	}
	call := listOf(env.Short(), append([]value.Handle{args[0]}, quoted...)...)
	return env.Eval(sc, call)
}

// quoteHandle wraps h in (quote h) so apply's already-evaluated argument
// values are not re-evaluated when the synthesized call runs through Eval.
func quoteHandle(env builtins.Env, h value.Handle) value.Handle {
	quoteSym := env.Short().Register(value.Sym("quote"))
	return listOf(env.Short(), quoteSym, h)
}

// collectionElems flattens a vector or proper list into a handle slice,
// shared by nth and apply.
func collectionElems(env builtins.Env, name string, h value.Handle) ([]value.Handle, error) {
	v, ok := env.Get(h)
	if !ok {
		return nil, wisperrors.TypeError(name, 0, "unresolvable argument")
	}
	switch v.Kind {
	case value.KindVector:
		return v.Elems, nil
	case value.KindNil:
		return nil, nil
	case value.KindCons:
		elems, ok := value.ToSlice(v, env)
		if !ok {
			return nil, wisperrors.TypeError(name, 0, "first argument must be a collection")
		}
		return elems, nil
	default:
		return nil, wisperrors.TypeError(name, 0, "first argument must be a collection")
	}
}

func collectionLen(env builtins.Env, name string, v value.Value) (int, error) {
	switch v.Kind {
	case value.KindVector:
		return len(v.Elems), nil
	case value.KindCons:
		elems, ok := value.ToSlice(v, env)
		if !ok {
			return 0, wisperrors.TypeError(name, 0, "argument must be a proper list")
		}
		return len(elems), nil
	default:
		return 0, wisperrors.TypeError(name, 0, "argument must be a collection")
	}
}
