package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnretriable(t *testing.T) {
	err := Unretriable(fmt.Errorf("bar"))
	require.True(t, IsUnretriable(err))
}

func TestUnretriableWrapsPipelineError(t *testing.T) {
	err := Unretriable(New(KindInput, "bad video", ErrUnsupportedContainer))
	require.True(t, IsUnretriable(err))
	require.Equal(t, KindInput, KindOf(err))
}

func TestIsUnretriableFalseForPlainError(t *testing.T) {
	require.False(t, IsUnretriable(fmt.Errorf("transient hiccup")))
}

func TestKindOfDefaultsToFatal(t *testing.T) {
	require.Equal(t, KindFatal, KindOf(fmt.Errorf("unclassified")))
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindEnvironment: "environment",
		KindInput:       "input",
		KindTransient:   "transient",
		KindLogic:       "logic",
		KindFatal:       "fatal",
	}
	for kind, want := range cases {
		require.Equal(t, want, kind.String())
	}
}
