// Package builtins implements the interpreter's fixed operation registry:
// a name-keyed table of entries carrying declared arity, an optional type
// signature, and the pre-evaluate flag the evaluator consults before
// invocation.
package builtins

import (
	"github.com/aledsdavies/wisp/pkgs/arena"
	"github.com/aledsdavies/wisp/pkgs/ioproxy"
	"github.com/aledsdavies/wisp/pkgs/scope"
	"github.com/aledsdavies/wisp/pkgs/value"
)

// Env is what a built-in's Fn needs from the interpreter that owns it.
// Defined here, on the consumer side, so this package never imports
// pkgs/eval; pkgs/eval imports this package and supplies the concrete
// implementation, avoiding the cycle eval->builtins->eval would create.
type Env interface {
	value.Resolver
	// Eval evaluates h in sc through the evaluator's core dispatch.
	Eval(sc *scope.Scope, h value.Handle) (value.Handle, error)
	// Short and Long are the transient and Scope-rooted Arenas.
	Short() *arena.Arena
	Long() *arena.Arena
	// IO is the pluggable stdout/stderr/stdin proxy.
	IO() ioproxy.IO
	// ParseAll reads every top-level form out of src into the short-term
	// Arena, for load-file/load-string/read-string.
	ParseAll(src string) ([]value.Handle, error)
	// Root is the persistent root Scope every built-in is seeded into.
	Root() *scope.Scope
	// Gensym returns a fresh, guaranteed-unique Symbol handle.
	Gensym(prefix string) value.Handle
	// CaptureFreeVars is the closure-construction-time rewrite: every
	// free Symbol currently bound in sc is replaced by its bound Value;
	// everything else is walked structurally and otherwise returned
	// as-is.
	CaptureFreeVars(sc *scope.Scope, h value.Handle) value.Handle
	// Promote deep-copies h into the long-term Arena, as every
	// def/let/defn/defmacro bind must before recording a Scope binding.
	Promote(h value.Handle) value.Handle
}

// NoBound marks an arity or max-args slot as unchecked.
const NoBound = -1

// Entry is one registered operation: its declared contract plus the
// function that implements it. Sig is an optional per-position KindSet;
// nil or empty means "no check".
type Entry struct {
	Name            string
	MinArgs         int
	MaxArgs         int
	Sig             []KindSet
	PreEvaluateArgs bool
	Fn              func(env Env, sc *scope.Scope, args []value.Handle) (value.Handle, error)
}

// KindSet names the Kinds a positional argument may have; an empty set
// means any Kind is accepted at that position.
type KindSet []value.Kind

// Allows reports whether k is acceptable for this position.
func (ks KindSet) Allows(k value.Kind) bool {
	if len(ks) == 0 {
		return true
	}
	for _, allowed := range ks {
		if allowed == k {
			return true
		}
	}
	return false
}

// Registry is the name -> Entry table. A fresh Registry holds nothing;
// callers populate it via Register.
type Registry struct {
	entries map[string]*Entry
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Register adds or replaces the entry for e.Name.
func (r *Registry) Register(e *Entry) {
	r.entries[e.Name] = e
}

// Get looks up an entry by name.
func (r *Registry) Get(name string) (*Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Names returns every registered built-in name, used to seed the root
// Scope.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	return names
}
