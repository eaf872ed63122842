// Package interp ties the Arena, Scope, Reader, Evaluator, built-in
// registry and I/O proxy together behind a single facade. The
// command-line driver and any other embedder interact with the core only
// through this package's parse/eval operations and the pluggable I/O
// interface.
package interp

import (
	"os"

	"github.com/aledsdavies/wisp/pkgs/arena"
	"github.com/aledsdavies/wisp/pkgs/eval"
	"github.com/aledsdavies/wisp/pkgs/ioproxy"
	"github.com/aledsdavies/wisp/pkgs/reader"
	"github.com/aledsdavies/wisp/pkgs/scope"
	"github.com/aledsdavies/wisp/pkgs/value"
)

// longBase offsets the long-term Arena's handles well past any short-term
// Arena this process will plausibly allocate within a single REPL
// session, so the two Arenas' handle ranges never collide (the combined
// resolver tries long then short). A REPL
// session clearing the short-term Arena thousands of times over its
// lifetime still never approaches this offset because Clear truncates the
// short-term slot slice, so its handle numbering restarts at 0 after every
// clear.
const longBase value.Handle = 1 << 30

// Interp is the embeddable entry point: an Arena pair, a root Scope
// seeded with every built-in, a Reader factory, and an Evaluator, wired
// to a caller-supplied I/O proxy.
type Interp struct {
	short, long *arena.Arena
	eval        *eval.Evaluator
	io          ioproxy.IO
}

// New constructs an Interp over the given I/O proxy. Passing nil uses
// ioproxy.NewStdio wired to the process's own stdout/stderr/stdin.
func New(io ioproxy.IO) *Interp {
	if io == nil {
		io = ioproxy.NewStdio(os.Stdout, os.Stderr, os.Stdin)
	}
	short := arena.New("short_term", 0)
	long := arena.New("long_term", longBase)
	return &Interp{
		short: short,
		long:  long,
		eval:  eval.New(short, long, io),
		io:    io,
	}
}

// RootScope returns the persistent root Scope, for embedders that want to
// pre-bind additional names before driving Parse/Eval.
func (i *Interp) RootScope() *scope.Scope { return i.eval.Root() }

// IO returns the I/O proxy this Interp was constructed with.
func (i *Interp) IO() ioproxy.IO { return i.io }

// ParseOne reads exactly one top-level form out of src starting at
// offset 0. It is the REPL's parse step: one line is one form.
func (i *Interp) ParseOne(src string) (value.Handle, error) {
	r := reader.New(src, i.short)
	return r.ReadOne()
}

// ParseAll reads every top-level form out of src, the file-mode driver's
// parse step.
func (i *Interp) ParseAll(src string) ([]value.Handle, error) {
	return reader.New(src, i.short).ReadAll()
}

// Eval evaluates an already-parsed handle against the root Scope.
func (i *Interp) Eval(h value.Handle) (value.Handle, error) {
	return i.eval.Eval(i.eval.Root(), h)
}

// EvalString parses exactly one form from src and evaluates it against
// the root Scope, returning the result handle; the Interp itself (via Get)
// is the Resolver that renders it.
func (i *Interp) EvalString(src string) (value.Handle, error) {
	h, err := i.ParseOne(src)
	if err != nil {
		return value.NilHandle, err
	}
	return i.Eval(h)
}

// EvalAll parses and evaluates every top-level form in src in order,
// returning the last result, the file-mode driver's batch-execute step.
func (i *Interp) EvalAll(src string) (value.Handle, error) {
	forms, err := i.ParseAll(src)
	if err != nil {
		return value.NilHandle, err
	}
	result := value.NilHandle
	for _, f := range forms {
		r, err := i.Eval(f)
		if err != nil {
			return value.NilHandle, err
		}
		result = r
	}
	return result, nil
}

// Get implements value.Resolver so a driver can render a result handle
// with value.RenderHuman/RenderReadable without reaching into either
// Arena directly.
func (i *Interp) Get(h value.Handle) (value.Value, bool) {
	if v, ok := i.long.Get(h); ok {
		return v, true
	}
	return i.short.Get(h)
}

// ClearShortTerm releases every transient Value from the short-term
// Arena. The REPL calls this between prompts so a long session's scratch
// allocations don't grow unboundedly; anything rooted in a Scope already
// lives in the long-term Arena and is unaffected.
func (i *Interp) ClearShortTerm() {
	i.short.Clear()
}

// RenderHuman renders h in the print/str form.
func (i *Interp) RenderHuman(h value.Handle) string {
	v, ok := i.Get(h)
	if !ok {
		return "nil"
	}
	return value.RenderHuman(v, i)
}

// RenderReadable renders h in the round-trippable REPL form.
func (i *Interp) RenderReadable(h value.Handle) string {
	v, ok := i.Get(h)
	if !ok {
		return "nil"
	}
	return value.RenderReadable(v, i)
}
