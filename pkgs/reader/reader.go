// Package reader implements a fused lexer+parser: a single byte-dispatch
// loop over a source buffer and cursor, producing Values directly rather
// than an intermediate token stream. An s-expression grammar needs no
// lexer state machine beyond one- and two-byte lookahead.
package reader

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aledsdavies/wisp/pkgs/arena"
	wisperrors "github.com/aledsdavies/wisp/pkgs/errors"
	"github.com/aledsdavies/wisp/pkgs/value"
)

// ErrExhausted is returned by ReadOne when the cursor reaches the end of
// the buffer with no further form to read. It is not a reader failure,
// just the ordinary "no more input" signal ReadAll and the REPL loop use
// to know when to stop.
var ErrExhausted = errors.New("reader: input exhausted")

// exclusion set for identifier collection: control bytes, and the literal
// bytes below. Comma is deliberately absent: it is a between-form
// separator (skipSeparatorsAndComments handles it) but does not terminate
// an identifier already being collected.
func excluded(c byte) bool {
	if c < 32 {
		return true
	}
	switch c {
	case '"', '(', ')', '[', ']', '{', '}', '\'', ';', '`', ' ':
		return true
	}
	return false
}

// Reader holds a source buffer, a byte cursor, and the Arena every
// production is registered into.
type Reader struct {
	src   string
	pos   int
	arena *arena.Arena
	nilH  value.Handle
}

// New constructs a Reader over src, registering productions into a.
func New(src string, a *arena.Arena) *Reader {
	return &Reader{src: src, arena: a, nilH: value.NilHandle}
}

// Pos reports the current cursor offset, used by callers that want to know
// how much of the buffer a single ReadOne call consumed.
func (r *Reader) Pos() int { return r.pos }

func (r *Reader) peekAt(offset int) byte {
	i := r.pos + offset
	if i < 0 || i >= len(r.src) {
		return 0
	}
	return r.src[i]
}

func (r *Reader) snippet(pos int) string {
	start := pos - 10
	if start < 0 {
		start = 0
	}
	end := pos + 10
	if end > len(r.src) {
		end = len(r.src)
	}
	return r.src[start:end]
}

func (r *Reader) ranOut(msg string) error {
	return wisperrors.ReaderRanOut(msg, r.pos, r.snippet(r.pos))
}

func (r *Reader) badForm(msg string) error {
	return wisperrors.ReaderBadForm(msg, r.pos, r.snippet(r.pos))
}

// nilValueHandle returns a single registered Nil Value, shared by every
// empty-list sentinel and list terminator this Reader produces.
func (r *Reader) nilValueHandle() value.Handle {
	if r.nilH == value.NilHandle {
		r.nilH = r.arena.Register(value.Nil())
	}
	return r.nilH
}

func (r *Reader) skipSeparatorsAndComments() {
	for r.pos < len(r.src) {
		c := r.src[r.pos]
		switch c {
		case ' ', '\t', '\r', '\n', ',':
			r.pos++
			continue
		case ';':
			for r.pos < len(r.src) && r.src[r.pos] != '\n' {
				r.pos++
			}
			continue
		}
		break
	}
}

// ReadOne reads and returns exactly one Value, or ErrExhausted once the
// buffer holds no further form.
func (r *Reader) ReadOne() (value.Handle, error) {
	r.skipSeparatorsAndComments()
	if r.pos >= len(r.src) {
		return value.NilHandle, ErrExhausted
	}

	c := r.src[r.pos]
	switch c {
	case '"':
		return r.readString()
	case '#':
		switch r.peekAt(1) {
		case '"':
			r.pos++ // leave the quote for readString
			return r.readString()
		case '(':
			return value.NilHandle, r.badForm("lambda shorthand #(...) is not supported")
		case '{':
			r.pos += 2
			elems, err := r.readForms('}')
			if err != nil {
				return value.NilHandle, err
			}
			return r.buildProperListWithPrefix("hash-set", elems), nil
		case ';':
			r.pos += 2
			return r.readFormComment()
		default:
			return r.readIdentifier()
		}
	case '(':
		r.pos++
		elems, err := r.readForms(')')
		if err != nil {
			return value.NilHandle, err
		}
		return r.buildProperList(elems), nil
	case '[':
		r.pos++
		elems, err := r.readForms(']')
		if err != nil {
			return value.NilHandle, err
		}
		return r.buildProperListWithPrefix("vector", elems), nil
	case '{':
		r.pos++
		elems, err := r.readForms('}')
		if err != nil {
			return value.NilHandle, err
		}
		return r.buildProperList(elems), nil
	case '\'', '`':
		r.pos++
		return r.readQuote()
	default:
		return r.readIdentifier()
	}
}

// ReadAll reads every remaining top-level form.
func (r *Reader) ReadAll() ([]value.Handle, error) {
	var out []value.Handle
	for {
		h, err := r.ReadOne()
		if err != nil {
			if errors.Is(err, ErrExhausted) {
				return out, nil
			}
			return out, err
		}
		out = append(out, h)
	}
}

// readForms reads forms up to and consuming the close byte. The caller has
// already consumed the matching open byte.
func (r *Reader) readForms(close byte) ([]value.Handle, error) {
	var elems []value.Handle
	for {
		r.skipSeparatorsAndComments()
		if r.pos >= len(r.src) {
			return nil, r.ranOut(fmt.Sprintf("unterminated form, expected '%c'", close))
		}
		if r.src[r.pos] == close {
			r.pos++
			return elems, nil
		}
		h, err := r.ReadOne()
		if err != nil {
			if errors.Is(err, ErrExhausted) {
				return nil, r.ranOut(fmt.Sprintf("unterminated form, expected '%c'", close))
			}
			return nil, err
		}
		elems = append(elems, h)
	}
}

// readQuote handles ' and `: read the next form X (whether a bracketed
// form or a bare symbol, both are just "the next form") and wrap it as
// (quote X).
func (r *Reader) readQuote() (value.Handle, error) {
	inner, err := r.ReadOne()
	if err != nil {
		if errors.Is(err, ErrExhausted) {
			return value.NilHandle, r.ranOut("expected a form after quote")
		}
		return value.NilHandle, err
	}
	return r.buildProperListWithPrefix("quote", []value.Handle{inner}), nil
}

// readFormComment implements #;, the datum comment:
// discard one form, then read and return the form after it.
func (r *Reader) readFormComment() (value.Handle, error) {
	if _, err := r.ReadOne(); err != nil {
		if errors.Is(err, ErrExhausted) {
			return value.NilHandle, r.ranOut("expected a form after #;")
		}
		return value.NilHandle, err
	}
	return r.ReadOne()
}

// readString collects a string literal. The first unescaped '"' closes
// the string regardless of how much has accumulated, so "" reads as an
// empty string.
func (r *Reader) readString() (value.Handle, error) {
	startPos := r.pos
	r.pos++ // opening quote
	var buf strings.Builder
	for {
		if r.pos >= len(r.src) {
			r.pos = startPos
			return value.NilHandle, r.ranOut("unterminated string literal")
		}
		c := r.src[r.pos]
		if c == '"' {
			r.pos++
			return r.arena.Register(value.Str(buf.String())), nil
		}
		if c == '\\' {
			r.pos++
			if r.pos >= len(r.src) {
				r.pos = startPos
				return value.NilHandle, r.ranOut("unterminated string literal")
			}
			switch r.src[r.pos] {
			case 'n':
				buf.WriteByte('\n')
			case 'r':
				buf.WriteByte('\r')
			case 't':
				buf.WriteByte('\t')
			default:
				buf.WriteByte(r.src[r.pos])
			}
			r.pos++
			continue
		}
		buf.WriteByte(c)
		r.pos++
	}
}

// collectIdentifier gathers bytes until an excluded byte or a #" two-byte
// lookahead.
func (r *Reader) collectIdentifier() string {
	start := r.pos
	for r.pos < len(r.src) {
		c := r.src[r.pos]
		if excluded(c) {
			break
		}
		if c == '#' && r.peekAt(1) == '"' {
			break
		}
		r.pos++
	}
	return r.src[start:r.pos]
}

func (r *Reader) readIdentifier() (value.Handle, error) {
	tok := r.collectIdentifier()
	if tok == "" {
		bad := string(r.src[r.pos])
		r.pos++
		return value.NilHandle, r.badForm(fmt.Sprintf("unexpected byte %q", bad))
	}

	switch tok {
	case "true":
		return r.arena.Register(value.Boolean(true)), nil
	case "false":
		return r.arena.Register(value.Boolean(false)), nil
	case "nil":
		return r.arena.Register(value.Nil()), nil
	}

	if n, ok := classifyNumber(tok); ok {
		return r.arena.Register(value.Num(n)), nil
	}
	return r.arena.Register(value.Sym(tok)), nil
}

// classifyNumber decides whether a collected token is numeric: an
// optional leading '-' followed by one or more digits is an Integer; the
// same with exactly one embedded '.' is a Float; a lone "-" is not a
// number.
func classifyNumber(tok string) (value.Number, bool) {
	body := tok
	if strings.HasPrefix(body, "-") {
		body = body[1:]
	}
	if body == "" {
		return value.Number{}, false
	}
	dots := strings.Count(body, ".")
	if dots > 1 {
		return value.Number{}, false
	}
	for i := 0; i < len(body); i++ {
		if body[i] != '.' && (body[i] < '0' || body[i] > '9') {
			return value.Number{}, false
		}
	}
	if dots == 1 {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return value.Number{}, false
		}
		return value.Float(f), true
	}
	i, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return value.Number{}, false
	}
	return value.Int(i), true
}

// buildProperList right-nests elems into cons cells terminated by a
// registered Nil, or returns the distinguished (Nil,Nil) empty-list
// sentinel when elems is empty.
func (r *Reader) buildProperList(elems []value.Handle) value.Handle {
	nilH := r.nilValueHandle()
	if len(elems) == 0 {
		return r.arena.Register(value.ConsOf(nilH, nilH))
	}
	tail := nilH
	for i := len(elems) - 1; i >= 0; i-- {
		tail = r.arena.Register(value.ConsOf(elems[i], tail))
	}
	return tail
}

func (r *Reader) buildProperListWithPrefix(prefix string, elems []value.Handle) value.Handle {
	sym := r.arena.Register(value.Sym(prefix))
	all := make([]value.Handle, 0, len(elems)+1)
	all = append(all, sym)
	all = append(all, elems...)
	return r.buildProperList(all)
}
