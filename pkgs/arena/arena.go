// Package arena implements the interpreter's two-tier bulk-lifetime Value
// store: a short-term scratch arena for reader/evaluator transients and a
// long-term arena for Scope-rooted bindings.
package arena

import "github.com/aledsdavies/wisp/pkgs/value"

// Arena owns a set of Values and hands out stable Handles. It never frees
// individual Values via reference counting; callers release either one
// Value (DeleteOne) or everything at once (Clear).
//
// base offsets every Handle this Arena hands out, giving the short-term
// and long-term Arenas disjoint Handle ranges. A short-term Value's
// children may be Handles into either Arena (the evaluator builds
// short-term conses around long-term bindings), so a single combined
// lookup (try long, then short) unambiguously resolves any Handle without
// the evaluator having to track which Arena produced it; see pkgs/eval's
// Evaluator.Get.
type Arena struct {
	name  string
	base  value.Handle
	slots []value.Value
	alive []bool
	free  []value.Handle
}

// New creates an empty, named Arena ("short_term" or "long_term"; the
// name is purely diagnostic) whose Handles start at base. Callers must
// give the short-term and long-term Arenas non-overlapping base/capacity
// ranges.
func New(name string, base value.Handle) *Arena {
	return &Arena{name: name, base: base}
}

// Name returns the Arena's diagnostic name.
func (a *Arena) Name() string { return a.name }

// Len reports how many slots (including tombstoned ones awaiting reuse)
// the Arena has allocated. Used by tests asserting slot reuse and how many
// Values DeepCopy registers.
func (a *Arena) Len() int { return len(a.slots) }

// Register stores v and returns a stable Handle. Handles are reused after
// DeleteOne so long-running REPL sessions don't grow the backing slice
// without bound.
func (a *Arena) Register(v value.Value) value.Handle {
	if n := len(a.free); n > 0 {
		h := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[h-a.base] = v
		a.alive[h-a.base] = true
		return h
	}
	h := a.base + value.Handle(len(a.slots))
	a.slots = append(a.slots, v)
	a.alive = append(a.alive, true)
	return h
}

// index converts an absolute Handle into this Arena's slot index, or
// reports false if h falls outside this Arena's base/length range (e.g.
// because it belongs to the other Arena).
func (a *Arena) index(h value.Handle) (int, bool) {
	idx := int(h - a.base)
	if idx < 0 || idx >= len(a.slots) {
		return 0, false
	}
	return idx, true
}

// Get implements value.Resolver: it returns the Value a Handle currently
// refers to, or false if the handle is out of range or was released.
func (a *Arena) Get(h value.Handle) (value.Value, bool) {
	idx, ok := a.index(h)
	if !ok || !a.alive[idx] {
		return value.Value{}, false
	}
	return a.slots[idx], true
}

// Set overwrites the Value stored at an already-registered handle, used by
// the evaluator to patch a placeholder in place (e.g. promoting a raw
// argument list to its evaluated form) without minting a new handle.
func (a *Arena) Set(h value.Handle, v value.Value) bool {
	idx, ok := a.index(h)
	if !ok || !a.alive[idx] {
		return false
	}
	a.slots[idx] = v
	return true
}

// DeleteOne releases exactly one Value. Deleting a handle that is out of
// range or already released is a no-op, which is what makes ns-unmap
// idempotent.
func (a *Arena) DeleteOne(h value.Handle) {
	idx, ok := a.index(h)
	if !ok || !a.alive[idx] {
		return
	}
	a.alive[idx] = false
	a.slots[idx] = value.Value{}
	a.free = append(a.free, h)
}

// Clear destroys every currently-registered Value. Any Handle into this
// Arena not additionally rooted elsewhere becomes invalid.
func (a *Arena) Clear() {
	a.slots = a.slots[:0]
	a.alive = a.alive[:0]
	a.free = a.free[:0]
}

// DeepCopy recursively copies the Value at h into dst, returning the fresh
// handle. src is a value.Resolver rather than a concrete *Arena because a
// handle being published into a Scope may already live in either Arena
// (e.g. a bare symbol argument resolves straight to an existing long-term
// binding, while a freshly-computed argument lives in the short-term
// Arena). The evaluator's combined short-then-long resolver is the
// Resolver normally passed here. This is mandatory before publishing a
// Value into a Scope (def/let/defn/defmacro), so that later clearing the
// short-term Arena never invalidates a symbol table. memo avoids copying
// shared substructure twice within one call; it is keyed per call, not
// cached across calls, since the two Value graphs here are DAGs (only
// Scope-mediated recursion can make a closure "refer to itself", never a
// direct Handle cycle).
func DeepCopy(h value.Handle, src value.Resolver, dst *Arena) value.Handle {
	return deepCopy(h, src, dst, make(map[value.Handle]value.Handle))
}

func deepCopy(h value.Handle, src value.Resolver, dst *Arena, memo map[value.Handle]value.Handle) value.Handle {
	if existing, ok := memo[h]; ok {
		return existing
	}
	v, ok := src.Get(h)
	if !ok {
		return value.NilHandle
	}

	switch v.Kind {
	case value.KindCons:
		placeholder := dst.Register(value.Nil())
		memo[h] = placeholder
		left := deepCopy(v.Left, src, dst, memo)
		right := deepCopy(v.Right, src, dst, memo)
		dst.Set(placeholder, value.ConsOf(left, right))
		return placeholder
	case value.KindVector:
		placeholder := dst.Register(value.Nil())
		memo[h] = placeholder
		elems := make([]value.Handle, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = deepCopy(e, src, dst, memo)
		}
		dst.Set(placeholder, value.VectorOf(elems))
		return placeholder
	case value.KindClosure:
		placeholder := dst.Register(value.Nil())
		memo[h] = placeholder
		body := deepCopy(v.Closure.Body, src, dst, memo)
		dst.Set(placeholder, value.ClosureOf(body, v.Closure.Params, v.Closure.IsMacro))
		return placeholder
	default:
		// Nil, Boolean, Number, String, Symbol, BuiltinFunction carry no
		// nested handles; a shallow copy is a deep copy.
		fresh := dst.Register(v)
		memo[h] = fresh
		return fresh
	}
}
