package eval

import (
	"github.com/aledsdavies/wisp/pkgs/builtins"
	wisperrors "github.com/aledsdavies/wisp/pkgs/errors"
	"github.com/aledsdavies/wisp/pkgs/scope"
	"github.com/aledsdavies/wisp/pkgs/value"
)

// registerNamespace wires ns-unmap.
func (e *Evaluator) registerNamespace() {
	e.registry.Register(&builtins.Entry{Name: "ns-unmap", MinArgs: 1, MaxArgs: 1, Fn: nsUnmapForm})
}

// nsUnmapForm unbinds a symbol from the calling scope chain and releases
// the unbound Value from the long-term Arena. Unmapping a name twice, or a
// name never bound, is a no-op, matching scope.Unbind's and
// Arena.DeleteOne's own idempotence; ns-unmap never errors on a miss.
func nsUnmapForm(env builtins.Env, sc *scope.Scope, args []value.Handle) (value.Handle, error) {
	sv, ok := env.Get(args[0])
	if !ok || sv.Kind != value.KindSymbol {
		return value.NilHandle, wisperrors.ArgShape("argument to ns-unmap must be a symbol")
	}
	if h, removed := sc.Unbind(sv.Str); removed {
		env.Long().DeleteOne(h)
	}
	return value.NilHandle, nil
}
