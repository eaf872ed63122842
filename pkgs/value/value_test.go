package value_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aledsdavies/wisp/pkgs/value"
)

// fakeResolver is a minimal Resolver backed by a plain slice, used by
// tests in this package that need to assemble a small Cons/Vector graph
// without pulling in pkgs/arena.
type fakeResolver struct {
	slots []value.Value
}

func (f *fakeResolver) add(v value.Value) value.Handle {
	f.slots = append(f.slots, v)
	return value.Handle(len(f.slots) - 1)
}

func (f *fakeResolver) Get(h value.Handle) (value.Value, bool) {
	if int(h) < 0 || int(h) >= len(f.slots) {
		return value.Value{}, false
	}
	return f.slots[h], true
}

func TestTruthiness(t *testing.T) {
	cases := []struct {
		name string
		v    value.Value
		want bool
	}{
		{"nil", value.Nil(), false},
		{"false", value.Boolean(false), false},
		{"true", value.Boolean(true), true},
		{"number zero", value.Num(value.Int(0)), false},
		{"number nonzero", value.Num(value.Int(1)), true},
		{"empty string", value.Str(""), true},
		{"symbol", value.Sym("x"), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.v.Truthy(); got != c.want {
				t.Errorf("%v.Truthy() = %v, want %v", c.v, got, c.want)
			}
		})
	}
}

func TestEqualStructural(t *testing.T) {
	r := &fakeResolver{}
	one := r.add(value.Num(value.Int(1)))
	two := r.add(value.Num(value.Int(2)))

	a := value.ConsOf(one, two)
	b := value.ConsOf(one, two)
	if !value.Equal(a, b, r) {
		t.Fatalf("identical cons pairs must compare equal")
	}

	c := value.ConsOf(two, one)
	if value.Equal(a, c, r) {
		t.Fatalf("cons pairs with swapped elements must not compare equal")
	}
}

func TestEqualVector(t *testing.T) {
	r := &fakeResolver{}
	one := r.add(value.Num(value.Int(1)))
	two := r.add(value.Num(value.Int(2)))

	a := value.VectorOf([]value.Handle{one, two})
	b := value.VectorOf([]value.Handle{one, two})
	if !value.Equal(a, b, r) {
		t.Fatalf("identical vectors must compare equal")
	}

	c := value.VectorOf([]value.Handle{one})
	if value.Equal(a, c, r) {
		t.Fatalf("vectors of different length must not compare equal")
	}
}

func TestEqualBuiltinByName(t *testing.T) {
	r := &fakeResolver{}
	a := value.Builtin("+")
	b := value.Builtin("+")
	c := value.Builtin("-")
	if !value.Equal(a, b, r) {
		t.Fatalf("built-ins with the same name must compare equal")
	}
	if value.Equal(a, c, r) {
		t.Fatalf("built-ins with different names must not compare equal")
	}
}

func TestIsListVsEmptyListSentinel(t *testing.T) {
	r := &fakeResolver{}
	nilH := r.add(value.Nil())
	one := r.add(value.Num(value.Int(1)))

	empty := value.ConsOf(nilH, nilH)
	if value.IsList(empty, r) {
		t.Fatalf("the (nil,nil) sentinel must NOT be a list")
	}

	properTail := r.add(empty)
	proper := value.ConsOf(one, properTail)
	if !value.IsList(proper, r) {
		t.Fatalf("a cons chain terminating in the empty-list sentinel must be a proper list")
	}
}

func TestRenderHumanVsReadable(t *testing.T) {
	r := &fakeResolver{}
	s := value.Str(`hi "there"`)
	if got := value.RenderHuman(s, r); got != `hi "there"` {
		t.Errorf("RenderHuman should leave strings unquoted, got %q", got)
	}
	if got := value.RenderReadable(s, r); got != `"hi \"there\""` {
		t.Errorf("RenderReadable should double-quote and escape, got %q", got)
	}
}

func TestRenderNilBoolSymbol(t *testing.T) {
	r := &fakeResolver{}
	if got := value.RenderHuman(value.Nil(), r); got != "nil" {
		t.Errorf("nil renders as %q, want nil", got)
	}
	if got := value.RenderHuman(value.Boolean(true), r); got != "true" {
		t.Errorf("true renders as %q, want true", got)
	}
	if got := value.RenderHuman(value.Boolean(false), r); got != "false" {
		t.Errorf("false renders as %q, want false", got)
	}
	if got := value.RenderHuman(value.Sym("foo"), r); got != "foo" {
		t.Errorf("symbol renders as %q, want foo", got)
	}
}

func TestRenderEmptyList(t *testing.T) {
	r := &fakeResolver{}
	nilH := r.add(value.Nil())
	empty := value.ConsOf(nilH, nilH)
	if got := value.RenderHuman(empty, r); got != "()" {
		t.Errorf("empty list renders as %q, want ()", got)
	}
}

func TestRenderProperList(t *testing.T) {
	r := &fakeResolver{}
	nilH := r.add(value.Nil())
	three := r.add(value.Num(value.Int(3)))
	tailEmpty := r.add(value.ConsOf(nilH, nilH))
	c2 := r.add(value.ConsOf(three, tailEmpty))
	two := r.add(value.Num(value.Int(2)))
	c1 := value.ConsOf(two, c2)
	if got := value.RenderHuman(c1, r); got != "(2 3)" {
		t.Errorf("proper list renders as %q, want (2 3)", got)
	}
}

func TestRenderVector(t *testing.T) {
	r := &fakeResolver{}
	one := r.add(value.Num(value.Int(1)))
	two := r.add(value.Num(value.Int(2)))
	v := value.VectorOf([]value.Handle{one, two})
	if got := value.RenderHuman(v, r); got != "[1 2]" {
		t.Errorf("vector renders as %q, want [1 2]", got)
	}
}

func TestRenderClosureAndBuiltin(t *testing.T) {
	r := &fakeResolver{}
	body := r.add(value.Num(value.Int(1)))
	closure := value.ClosureOf(body, []string{"x"}, false)
	if got := value.RenderHuman(closure, r); got != "<<<fn 1>>>" {
		t.Errorf("closure renders as %q, want <<<fn 1>>>", got)
	}
	if got := value.RenderHuman(value.Builtin("+"), r); got != "<<<builtin +>>>" {
		t.Errorf("builtin renders as %q, want <<<builtin +>>>", got)
	}
}

func TestToSliceFlattensProperList(t *testing.T) {
	r := &fakeResolver{}
	nilH := r.add(value.Nil())
	empty := r.add(value.ConsOf(nilH, nilH))
	twoH := r.add(value.Num(value.Int(2)))
	c2 := r.add(value.ConsOf(twoH, empty))
	oneH := r.add(value.Num(value.Int(1)))
	c1 := value.ConsOf(oneH, c2)

	elems, ok := value.ToSlice(c1, r)
	if !ok {
		t.Fatalf("ToSlice reported failure on a proper list")
	}
	// Use cmp.Diff for clean output on a mismatch, rather than
	// eyeballing two handle slices side by side.
	if diff := cmp.Diff([]value.Handle{oneH, twoH}, elems); diff != "" {
		t.Fatalf("ToSlice handles mismatch (-want +got):\n%s", diff)
	}
}

func TestKindString(t *testing.T) {
	if value.KindNumber.String() != "number" {
		t.Fatalf("KindNumber.String() = %q, want number", value.KindNumber.String())
	}
}
