package value

import "strings"

// render produces either the human-facing form (print/str/println:
// strings unquoted) or the round-trippable form (REPL: strings
// double-quoted). Both walk cons/vector chains through a Resolver.
func render(v Value, r Resolver, readable bool) string {
	switch v.Kind {
	case KindNil:
		return "nil"
	case KindBoolean:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindNumber:
		return v.Num.String()
	case KindString:
		if readable {
			return quoteString(v.Str)
		}
		return v.Str
	case KindSymbol:
		return v.Str
	case KindBuiltin:
		return "<<<builtin " + v.Str + ">>>"
	case KindClosure:
		body, ok := r.Get(v.Closure.Body)
		if !ok {
			return "<<<fn ?>>>"
		}
		return "<<<fn " + render(body, r, readable) + ">>>"
	case KindVector:
		parts := make([]string, len(v.Elems))
		for i, h := range v.Elems {
			parts[i] = renderHandle(h, r, readable)
		}
		return "[" + strings.Join(parts, " ") + "]"
	case KindCons:
		return renderCons(v, r, readable)
	default:
		return "?"
	}
}

func renderHandle(h Handle, r Resolver, readable bool) string {
	val, ok := r.Get(h)
	if !ok {
		return "nil"
	}
	return render(val, r, readable)
}

// isEmptyPair reports whether v is the distinguished (Nil,Nil) empty-list
// sentinel the reader emits for (). The sentinel is a pair whose two sides
// are the same Nil handle (the reader and the evaluator's listOf both build
// it that way, and DeepCopy's memo keeps the sides shared); a one-element
// list holding a literal nil has a separately registered Nil on its left,
// so it is not mistaken for the sentinel. A chain may terminate either in
// a bare Nil (the reader's own encoding) or in this sentinel (what cons
// onto an empty list produces); both count as "end of list" everywhere
// below.
func isEmptyPair(v Value, r Resolver) bool {
	if v.Kind != KindCons || v.Left != v.Right {
		return false
	}
	left, ok := r.Get(v.Left)
	return ok && left.Kind == KindNil
}

// renderCons renders a cons cell. The reader's own empty-list sentinel
// (Nil,Nil) prints as "()"; a proper list prints space-separated; an
// improper pair falls back to dotted-pair notation.
func renderCons(v Value, r Resolver, readable bool) string {
	if isEmptyPair(v, r) {
		return "()"
	}

	var parts []string
	cur := v
	for {
		curLeft, ok := r.Get(cur.Left)
		if !ok {
			break
		}
		parts = append(parts, render(curLeft, r, readable))

		curRight, ok := r.Get(cur.Right)
		if !ok {
			break
		}
		if curRight.Kind == KindNil || isEmptyPair(curRight, r) {
			return "(" + strings.Join(parts, " ") + ")"
		}
		if curRight.Kind != KindCons {
			// Improper list: dotted pair.
			return "(" + strings.Join(parts, " ") + " . " + render(curRight, r, readable) + ")"
		}
		cur = curRight
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// RenderHuman is the print/str/println form: strings unquoted.
func RenderHuman(v Value, r Resolver) string { return render(v, r, false) }

// RenderReadable is the REPL form: strings double-quoted, round-trippable.
func RenderReadable(v Value, r Resolver) string { return render(v, r, true) }

// IsList reports whether v is a cons chain terminating in Nil (directly,
// or via a trailing empty-list sentinel). The distinguished empty-list
// pair (Nil,Nil) is itself NOT a list.
func IsList(v Value, r Resolver) bool {
	if v.Kind != KindCons || isEmptyPair(v, r) {
		return false
	}
	cur := v
	for {
		right, ok := r.Get(cur.Right)
		if !ok {
			return false
		}
		if right.Kind == KindNil || isEmptyPair(right, r) {
			return true
		}
		if right.Kind != KindCons {
			return false
		}
		cur = right
	}
}

// ToSlice flattens a proper list (or the empty-list sentinel) into a slice
// of handles, used by call dispatch, nth, count, apply and friends.
func ToSlice(v Value, r Resolver) ([]Handle, bool) {
	if v.Kind != KindCons {
		return nil, false
	}
	if isEmptyPair(v, r) {
		return nil, true
	}
	var out []Handle
	cur := v
	for {
		out = append(out, cur.Left)
		next, ok := r.Get(cur.Right)
		if !ok {
			return nil, false
		}
		if next.Kind == KindNil || isEmptyPair(next, r) {
			return out, true
		}
		if next.Kind != KindCons {
			return nil, false
		}
		cur = next
	}
}
