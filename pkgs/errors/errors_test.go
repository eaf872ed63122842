package errors_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	wisperrors "github.com/aledsdavies/wisp/pkgs/errors"
)

func TestErrorRenderingSingleLine(t *testing.T) {
	err := wisperrors.ArityError("foo", "exactly 2", 1)
	require.Equal(t, "0: foo: expected exactly 2 argument(s), got 1", err.Error())
}

func TestReaderErrorCarriesPosition(t *testing.T) {
	err := wisperrors.ReaderRanOut("unterminated string", 7, "...")
	require.Equal(t, "7: unterminated string", err.Error())
}

func TestIsChecksKind(t *testing.T) {
	err := wisperrors.UnknownSymbol("foo", "")
	require.True(t, wisperrors.Is(err, wisperrors.KindUnknownSymbol))
	require.False(t, wisperrors.Is(err, wisperrors.KindArityError))
}

func TestUnknownSymbolSuggestion(t *testing.T) {
	err := wisperrors.UnknownSymbol("prnt", "print")
	require.Equal(t, "0: unknown symbol: prnt (did you mean print?)", err.Error())
}

func TestUnknownSymbolNoSuggestion(t *testing.T) {
	err := wisperrors.UnknownSymbol("zzz", "")
	require.Equal(t, "0: unknown symbol: zzz", err.Error())
}

func TestWithContextChains(t *testing.T) {
	err := wisperrors.New(wisperrors.KindTypeError, "bad arg").WithContext("pos", 3)
	require.Equal(t, 3, err.Context["pos"])
}

func TestSnippetFallsBackToError(t *testing.T) {
	err := wisperrors.New(wisperrors.KindArgShape, "bad shape")
	require.Equal(t, err.Error(), err.Snippet())
}
