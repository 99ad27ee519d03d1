package funnel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTextSimilarityIdenticalIsOne(t *testing.T) {
	require.Equal(t, 1.0, textSimilarity("Hello World", "hello   world"))
}

func TestTextSimilarityEmptySideIsZero(t *testing.T) {
	require.Equal(t, 0.0, textSimilarity("", "slide text"))
	require.Equal(t, 0.0, textSimilarity("slide text", ""))
	require.Equal(t, 0.0, textSimilarity("", ""))
}

func TestTextSimilarityCompletelyDifferentIsLow(t *testing.T) {
	sim := textSimilarity("abcdefgh", "zzzzzzzz")
	require.Less(t, sim, 0.2)
}

func TestNormalizeOCRTextCollapsesWhitespaceAndCase(t *testing.T) {
	require.Equal(t, "agenda for today", normalizeOCRText("  Agenda   For\nToday  "))
}
