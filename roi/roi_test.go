package roi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func squareContourPoints() []point {
	// A 10x10 square outline traced clockwise from the top-left corner.
	var pts []point
	for x := 0; x < 10; x++ {
		pts = append(pts, point{x, 0})
	}
	for y := 1; y < 10; y++ {
		pts = append(pts, point{9, y})
	}
	for x := 8; x >= 0; x-- {
		pts = append(pts, point{x, 9})
	}
	for y := 8; y >= 1; y-- {
		pts = append(pts, point{0, y})
	}
	return pts
}

func TestContourAreaOfSquare(t *testing.T) {
	c := contour{points: squareContourPoints()}
	require.InDelta(t, 81, c.area(), 5)
}

func TestBoundingRect(t *testing.T) {
	box := boundingRect([]point{{1, 2}, {5, 2}, {5, 8}, {1, 8}})
	require.Equal(t, rect{X: 1, Y: 2, W: 4, H: 6}, box)
}

func TestApproxPolyDPSimplifiesSquareToFourCorners(t *testing.T) {
	approx := approxPolyDP(squareContourPoints(), 1.5)
	require.LessOrEqual(t, len(approx), 8)
	require.GreaterOrEqual(t, len(approx), 4)
}

func TestAlignRoundsDownToEvenAndClampsMin(t *testing.T) {
	got := align(rect{X: 3, Y: 5, W: 1, H: 1})
	require.Equal(t, ROI{X: 2, Y: 4, W: 2, H: 2}, got)
}

func TestAlignKeepsAlreadyEvenValues(t *testing.T) {
	got := align(rect{X: 10, Y: 20, W: 100, H: 200})
	require.Equal(t, ROI{X: 10, Y: 20, W: 100, H: 200}, got)
}

func TestFindContoursOnBlankImageReturnsNone(t *testing.T) {
	b := binaryImage{Width: 20, Height: 20, Pix: make([]bool, 400)}
	require.Empty(t, findContours(b))
}

func TestFindContoursDetectsRectangleOutline(t *testing.T) {
	w, h := 20, 20
	b := binaryImage{Width: w, Height: h, Pix: make([]bool, w*h)}
	set := func(x, y int) { b.Pix[y*w+x] = true }
	for x := 4; x <= 15; x++ {
		set(x, 4)
		set(x, 15)
	}
	for y := 4; y <= 15; y++ {
		set(4, y)
		set(15, y)
	}

	contours := findContours(b)
	require.NotEmpty(t, contours)
	require.Greater(t, contours[0].area(), 0.0)
}

func TestGaussianBlurPreservesFlatImage(t *testing.T) {
	g := grayTensor{Width: 5, Height: 5, Pix: make([]float64, 25)}
	for i := range g.Pix {
		g.Pix[i] = 128
	}
	blurred := gaussianBlur5x5(g)
	for _, v := range blurred.Pix {
		require.InDelta(t, 128, v, 1e-6)
	}
}

func TestCannyDetectsNoEdgesOnFlatImage(t *testing.T) {
	g := grayTensor{Width: 10, Height: 10, Pix: make([]float64, 100)}
	for i := range g.Pix {
		g.Pix[i] = 100
	}
	edges := canny(g, cannyLow, cannyHigh)
	for _, v := range edges.Pix {
		require.False(t, v)
	}
}
