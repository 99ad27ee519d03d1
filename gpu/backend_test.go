package gpu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiffIdenticalFramesIsZero(t *testing.T) {
	b := Default()
	frame := []float64{0.1, 0.2, 0.3, 0.4}
	require.Equal(t, float64(0), b.Diff(frame, frame))
}

func TestDiffMismatchedLengthIsMax(t *testing.T) {
	b := Default()
	require.Equal(t, float64(1), b.Diff([]float64{0.1}, []float64{0.1, 0.2}))
}

func TestDiffMeasuresMeanAbsoluteDifference(t *testing.T) {
	b := Default()
	a := []float64{0, 0, 0, 0}
	c := []float64{1, 1, 1, 1}
	require.InDelta(t, 1, b.Diff(a, c), 1e-9)
}

func TestLaplacianVarianceFlatFrameIsZero(t *testing.T) {
	b := Default()
	frame := make([]float64, 9*9)
	for i := range frame {
		frame[i] = 0.5
	}
	require.InDelta(t, 0, b.LaplacianVariance(frame, 9, 9), 1e-9)
}

func TestLaplacianVarianceDetectsEdges(t *testing.T) {
	b := Default()
	width, height := 9, 9
	frame := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x >= width/2 {
				frame[y*width+x] = 1
			}
		}
	}
	require.Greater(t, b.LaplacianVariance(frame, width, height), 0.0)
}

func TestLaplacianVarianceTooSmallFrameIsZero(t *testing.T) {
	b := Default()
	require.Equal(t, float64(0), b.LaplacianVariance([]float64{1, 2}, 1, 2))
}
