package arena_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/wisp/pkgs/arena"
	"github.com/aledsdavies/wisp/pkgs/value"
)

func TestRegisterAndGet(t *testing.T) {
	a := arena.New("short_term", 0)
	h := a.Register(value.Num(value.Int(42)))
	got, ok := a.Get(h)
	require.True(t, ok)
	require.Equal(t, int64(42), got.Num.I)
}

func TestDeleteOneIsIdempotent(t *testing.T) {
	a := arena.New("long_term", 0)
	h := a.Register(value.Sym("x"))
	a.DeleteOne(h)
	_, ok := a.Get(h)
	require.False(t, ok, "deleted handle should no longer resolve")

	// Deleting again, or deleting an out-of-range handle, must be a
	// silent no-op. This is what makes ns-unmap idempotent.
	require.NotPanics(t, func() {
		a.DeleteOne(h)
		a.DeleteOne(value.Handle(9999))
	})
}

func TestClearInvalidatesEverything(t *testing.T) {
	a := arena.New("short_term", 0)
	h1 := a.Register(value.Num(value.Int(1)))
	h2 := a.Register(value.Num(value.Int(2)))
	a.Clear()
	_, ok := a.Get(h1)
	require.False(t, ok, "h1 should be invalid after Clear")
	_, ok = a.Get(h2)
	require.False(t, ok, "h2 should be invalid after Clear")
}

func TestHandlesAreRecycledAfterDelete(t *testing.T) {
	a := arena.New("short_term", 0)
	h1 := a.Register(value.Num(value.Int(1)))
	a.DeleteOne(h1)
	before := a.Len()
	a.Register(value.Num(value.Int(2)))
	require.Equal(t, before, a.Len(), "Register after DeleteOne should reuse the freed slot")
}

func TestDisjointArenaRanges(t *testing.T) {
	short := arena.New("short_term", 0)
	long := arena.New("long_term", 1<<20)

	sh := short.Register(value.Num(value.Int(1)))
	lh := long.Register(value.Num(value.Int(2)))

	_, ok := short.Get(lh)
	require.False(t, ok, "short-term arena must not resolve a long-term handle")
	_, ok = long.Get(sh)
	require.False(t, ok, "long-term arena must not resolve a short-term handle")
}

// combined implements value.Resolver by trying long then short, mirroring
// pkgs/eval's Evaluator.Get.
type combined struct{ short, long *arena.Arena }

func (c combined) Get(h value.Handle) (value.Value, bool) {
	if v, ok := c.long.Get(h); ok {
		return v, true
	}
	return c.short.Get(h)
}

func TestDeepCopyConsIntoLongTerm(t *testing.T) {
	short := arena.New("short_term", 0)
	long := arena.New("long_term", 1<<20)
	res := combined{short, long}

	oneH := short.Register(value.Num(value.Int(1)))
	twoH := short.Register(value.Num(value.Int(2)))
	cons := short.Register(value.ConsOf(oneH, twoH))

	copied := arena.DeepCopy(cons, res, long)

	// The copy must live entirely in the long-term arena.
	cv, ok := long.Get(copied)
	require.True(t, ok, "DeepCopy result not found in long-term arena")
	require.Equal(t, value.KindCons, cv.Kind)

	leftV, ok := long.Get(cv.Left)
	require.True(t, ok, "copied cons's left child not resolvable in long-term arena")
	require.Equal(t, int64(1), leftV.Num.I)

	// Clearing the short-term arena must not invalidate the copy.
	short.Clear()
	cv2, ok := long.Get(copied)
	require.True(t, ok, "copy must survive clearing the source arena")
	require.Equal(t, value.KindCons, cv2.Kind)
}

func TestDeepCopySharedSubstructureOnce(t *testing.T) {
	short := arena.New("short_term", 0)
	long := arena.New("long_term", 1<<20)
	res := combined{short, long}

	shared := short.Register(value.Num(value.Int(7)))
	left := short.Register(value.ConsOf(shared, shared))
	lenBefore := long.Len()

	arena.DeepCopy(left, res, long)

	// One cons-cell copy plus exactly one copy of the shared leaf: 2 new
	// long-term slots, not 3: the memo must not copy the shared leaf
	// twice just because it's reachable from both sides of the pair.
	require.Equal(t, 2, long.Len()-lenBefore, "DeepCopy copied shared substructure the wrong number of times via memo")
}
