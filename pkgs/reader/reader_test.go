package reader_test

import (
	"testing"

	"github.com/aledsdavies/wisp/pkgs/arena"
	wisperrors "github.com/aledsdavies/wisp/pkgs/errors"
	"github.com/aledsdavies/wisp/pkgs/reader"
	"github.com/aledsdavies/wisp/pkgs/value"
)

func readOne(t *testing.T, src string) (value.Value, *arena.Arena) {
	t.Helper()
	a := arena.New("short_term", 0)
	h, err := reader.New(src, a).ReadOne()
	if err != nil {
		t.Fatalf("ReadOne(%q) error: %v", src, err)
	}
	v, ok := a.Get(h)
	if !ok {
		t.Fatalf("ReadOne(%q) produced an unresolvable handle", src)
	}
	return v, a
}

func TestReadLiterals(t *testing.T) {
	cases := []struct {
		src  string
		kind value.Kind
	}{
		{"true", value.KindBoolean},
		{"false", value.KindBoolean},
		{"nil", value.KindNil},
		{"42", value.KindNumber},
		{"-42", value.KindNumber},
		{"3.14", value.KindNumber},
		{"-0.5", value.KindNumber},
		{"foo", value.KindSymbol},
		{`"hello"`, value.KindString},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			v, _ := readOne(t, c.src)
			if v.Kind != c.kind {
				t.Errorf("ReadOne(%q).Kind = %v, want %v", c.src, v.Kind, c.kind)
			}
		})
	}
}

func TestReadIntegerVsFloat(t *testing.T) {
	v, _ := readOne(t, "3")
	if v.Num.Mode != value.ModeInt {
		t.Fatalf("3 should read as an integer")
	}
	v2, _ := readOne(t, "3.0")
	if v2.Num.Mode != value.ModeFloat {
		t.Fatalf("3.0 should read as a float")
	}
}

func TestReadStringEscapes(t *testing.T) {
	v, _ := readOne(t, `"a\nb\tc\rd"`)
	if v.Str != "a\nb\tc\rd" {
		t.Fatalf("escape decoding failed: %q", v.Str)
	}
}

func TestReadStringArbitraryEscapeIsLiteral(t *testing.T) {
	v, _ := readOne(t, `"a\qb"`)
	if v.Str != "aqb" {
		t.Fatalf(`unrecognized escape should pass the byte through literally, got %q`, v.Str)
	}
}

func TestReadEmptyString(t *testing.T) {
	v, _ := readOne(t, `""`)
	if v.Kind != value.KindString || v.Str != "" {
		t.Fatalf(`"" should read as an empty string, got %v`, v)
	}
}

func TestReadRegexLiteralIsPlainString(t *testing.T) {
	v, _ := readOne(t, `#"abc"`)
	if v.Kind != value.KindString || v.Str != "abc" {
		t.Fatalf(`#"..." should read as a plain string, got %v`, v)
	}
}

func TestReadUnterminatedStringFails(t *testing.T) {
	a := arena.New("short_term", 0)
	_, err := reader.New(`"abc`, a).ReadOne()
	if !wisperrors.Is(err, wisperrors.KindReaderRanOut) {
		t.Fatalf("expected ReaderRanOut, got %v", err)
	}
}

func TestReadEmptyList(t *testing.T) {
	a := arena.New("short_term", 0)
	h, err := reader.New("()", a).ReadOne()
	if err != nil {
		t.Fatalf("ReadOne(()) error: %v", err)
	}
	v, _ := a.Get(h)
	if value.IsList(v, a) {
		t.Fatalf("() must read as the (nil,nil) sentinel, which is NOT a list")
	}
	if v.Kind != value.KindCons {
		t.Fatalf("() must still be a Cons Value, got %v", v.Kind)
	}
}

func TestReadProperList(t *testing.T) {
	a := arena.New("short_term", 0)
	h, err := reader.New("(1 2 3)", a).ReadOne()
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	v, _ := a.Get(h)
	if !value.IsList(v, a) {
		t.Fatalf("(1 2 3) should be a proper list")
	}
	elems, ok := value.ToSlice(v, a)
	if !ok || len(elems) != 3 {
		t.Fatalf("expected 3 elements, got %v, %v", elems, ok)
	}
}

func TestReadVectorDesugarsToVectorCall(t *testing.T) {
	a := arena.New("short_term", 0)
	h, err := reader.New("[1 2]", a).ReadOne()
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	v, _ := a.Get(h)
	elems, ok := value.ToSlice(v, a)
	if !ok || len(elems) != 3 {
		t.Fatalf("[1 2] should desugar to (vector 1 2), got %v elems, %v", len(elems), ok)
	}
	head, _ := a.Get(elems[0])
	if head.Kind != value.KindSymbol || head.Str != "vector" {
		t.Fatalf("[1 2] head should be the symbol vector, got %v", head)
	}
}

func TestReadSetDesugarsToHashSet(t *testing.T) {
	a := arena.New("short_term", 0)
	h, err := reader.New("#{1 2}", a).ReadOne()
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	v, _ := a.Get(h)
	elems, _ := value.ToSlice(v, a)
	head, _ := a.Get(elems[0])
	if head.Str != "hash-set" {
		t.Fatalf("#{...} should desugar to (hash-set ...), got head %v", head)
	}
}

func TestReadMapIsPlainList(t *testing.T) {
	a := arena.New("short_term", 0)
	h, err := reader.New("{1 2}", a).ReadOne()
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	v, _ := a.Get(h)
	if !value.IsList(v, a) {
		t.Fatalf("{...} should read as a plain proper list with no type tag")
	}
}

func TestReadQuoteOnBareSymbol(t *testing.T) {
	a := arena.New("short_term", 0)
	h, err := reader.New("'sym", a).ReadOne()
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	v, _ := a.Get(h)
	elems, ok := value.ToSlice(v, a)
	if !ok || len(elems) != 2 {
		t.Fatalf("'sym should read as (quote sym), got %v, %v", elems, ok)
	}
	quoteSym, _ := a.Get(elems[0])
	inner, _ := a.Get(elems[1])
	if quoteSym.Str != "quote" || inner.Kind != value.KindSymbol || inner.Str != "sym" {
		t.Fatalf("'sym desugared incorrectly: %v %v", quoteSym, inner)
	}
}

func TestReadQuoteOnList(t *testing.T) {
	a := arena.New("short_term", 0)
	h, err := reader.New("'(1 2)", a).ReadOne()
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	v, _ := a.Get(h)
	elems, _ := value.ToSlice(v, a)
	head, _ := a.Get(elems[0])
	if head.Str != "quote" {
		t.Fatalf("'(1 2) should desugar to (quote (1 2)), got head %v", head)
	}
}

func TestReadBacktickSameAsQuote(t *testing.T) {
	a := arena.New("short_term", 0)
	h, err := reader.New("`x", a).ReadOne()
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	v, _ := a.Get(h)
	elems, _ := value.ToSlice(v, a)
	head, _ := a.Get(elems[0])
	if head.Str != "quote" {
		t.Fatalf("`x should desugar like 'x, got head %v", head)
	}
}

func TestReadLineComment(t *testing.T) {
	a := arena.New("short_term", 0)
	h, err := reader.New("; a comment\n42", a).ReadOne()
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	v, _ := a.Get(h)
	if v.Kind != value.KindNumber || v.Num.I != 42 {
		t.Fatalf("comment should be skipped, got %v", v)
	}
}

func TestReadFormComment(t *testing.T) {
	a := arena.New("short_term", 0)
	h, err := reader.New("#;a b", a).ReadOne()
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	v, _ := a.Get(h)
	if v.Kind != value.KindSymbol || v.Str != "b" {
		t.Fatalf("#;a b should discard a and return b, got %v", v)
	}
}

func TestReadAllExhaustsInput(t *testing.T) {
	a := arena.New("short_term", 0)
	hs, err := reader.New("1 2 3", a).ReadAll()
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if len(hs) != 3 {
		t.Fatalf("expected 3 forms, got %d", len(hs))
	}
}

func TestReadUnterminatedListFails(t *testing.T) {
	a := arena.New("short_term", 0)
	_, err := reader.New("(1 2", a).ReadOne()
	if !wisperrors.Is(err, wisperrors.KindReaderRanOut) {
		t.Fatalf("expected ReaderRanOut, got %v", err)
	}
}

func TestSeparatorsIncludeComma(t *testing.T) {
	a := arena.New("short_term", 0)
	h, err := reader.New("(1, 2)", a).ReadOne()
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	v, _ := a.Get(h)
	elems, _ := value.ToSlice(v, a)
	if len(elems) != 2 {
		t.Fatalf("comma should act as a separator, got %d elements", len(elems))
	}
}

// TestRoundTrip: every literal Value the reader produces re-parses, after
// rendering, to a Value equal to the original.
func TestRoundTrip(t *testing.T) {
	srcs := []string{
		"42", "-7", "3.5", "true", "false", "nil", "foo", `"hi"`, "(1 2 3)", "[1 2]",
	}
	for _, src := range srcs {
		t.Run(src, func(t *testing.T) {
			a := arena.New("short_term", 0)
			h, err := reader.New(src, a).ReadOne()
			if err != nil {
				t.Fatalf("ReadOne(%q): %v", src, err)
			}
			v, _ := a.Get(h)
			rendered := value.RenderReadable(v, a)

			h2, err := reader.New(rendered, a).ReadOne()
			if err != nil {
				t.Fatalf("re-parsing %q (from %q) failed: %v", rendered, src, err)
			}
			v2, _ := a.Get(h2)
			if !value.Equal(v, v2, a) {
				t.Fatalf("round-trip mismatch: %q -> %q -> not equal", src, rendered)
			}
		})
	}
}
