package value

// Closure is a user-defined function: a body, its parameter symbols, and
// a macro flag. Body is a Handle into whichever Arena owns the closure
// (the long-term Arena, once the closure has been bound; see pkgs/arena).
type Closure struct {
	Body    Handle
	Params  []string
	IsMacro bool
}

// Value is the tagged sum every reader production and evaluation result
// is an instance of. Only the fields relevant to Kind are meaningful.
type Value struct {
	Kind Kind

	Num  Number
	Bool bool
	Str  string // String and Symbol payload; also the BuiltinFunction name

	// Cons
	Left, Right Handle

	// Vector
	Elems []Handle

	// Closure
	Closure Closure
}

// Nil returns a fresh Nil Value. Nil has no singleton identity requirement
// beyond structural equality (every Nil Value compares equal to every
// other), so constructing fresh ones is always safe.
func Nil() Value { return Value{Kind: KindNil} }

// Boolean constructs a Boolean Value.
func Boolean(b bool) Value { return Value{Kind: KindBoolean, Bool: b} }

// Num constructs a Number Value.
func Num(n Number) Value { return Value{Kind: KindNumber, Num: n} }

// Str constructs a String Value.
func Str(s string) Value { return Value{Kind: KindString, Str: s} }

// Sym constructs a Symbol Value.
func Sym(name string) Value { return Value{Kind: KindSymbol, Str: name} }

// Builtin constructs a BuiltinFunction Value identified by name; equality
// and dispatch for built-ins are both by-name.
func Builtin(name string) Value { return Value{Kind: KindBuiltin, Str: name} }

// ConsOf constructs a Cons Value from two handles.
func ConsOf(left, right Handle) Value {
	return Value{Kind: KindCons, Left: left, Right: right}
}

// VectorOf constructs a Vector Value from element handles.
func VectorOf(elems []Handle) Value {
	return Value{Kind: KindVector, Elems: elems}
}

// ClosureOf constructs a Closure Value.
func ClosureOf(body Handle, params []string, isMacro bool) Value {
	return Value{Kind: KindClosure, Closure: Closure{Body: body, Params: params, IsMacro: isMacro}}
}

// Truthy applies the dialect's boolean coercion: Nil → false, Boolean →
// itself, Number(0) → false, everything else → true.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNil:
		return false
	case KindBoolean:
		return v.Bool
	case KindNumber:
		return !v.Num.IsZero()
	default:
		return true
	}
}
