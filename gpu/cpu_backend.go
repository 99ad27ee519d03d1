//go:build !cuda

package gpu

import "math"

func newBackend() Backend {
	return cpuBackend{}
}

// cpuBackend implements Backend with plain float64 slice arithmetic. This
// is the only backend compiled into ordinary builds of this module.
type cpuBackend struct{}

func (cpuBackend) Diff(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 1
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum / float64(len(a))
}

// laplacianKernel is the standard 4-neighbor discrete Laplacian.
var laplacianKernel = [3][3]float64{
	{0, 1, 0},
	{1, -4, 1},
	{0, 1, 0},
}

func (cpuBackend) LaplacianVariance(frame []float64, width, height int) float64 {
	if width < 3 || height < 3 || len(frame) != width*height {
		return 0
	}

	convolved := make([]float64, 0, (width-2)*(height-2))
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			var acc float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					acc += frame[(y+ky)*width+(x+kx)] * laplacianKernel[ky+1][kx+1]
				}
			}
			convolved = append(convolved, acc)
		}
	}
	if len(convolved) == 0 {
		return 0
	}

	var mean float64
	for _, v := range convolved {
		mean += v
	}
	mean /= float64(len(convolved))

	var variance float64
	for _, v := range convolved {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(convolved))
	return math.Max(variance, 0)
}

func (cpuBackend) Release() {}
