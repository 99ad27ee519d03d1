package roi

import "math"

var sobelX = [3][3]float64{
	{-1, 0, 1},
	{-2, 0, 2},
	{-1, 0, 1},
}

var sobelY = [3][3]float64{
	{-1, -2, -1},
	{0, 0, 0},
	{1, 2, 1},
}

// canny runs a standard Canny edge detector: Sobel gradients, non-maximum
// suppression along the gradient direction, then double-threshold
// hysteresis, matching cv2.Canny(blurred, low, high).
func canny(g grayTensor, low, high float64) binaryImage {
	mag := make([]float64, g.Width*g.Height)
	dir := make([]float64, g.Width*g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := g.at(x+kx, y+ky)
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			idx := y*g.Width + x
			mag[idx] = math.Hypot(gx, gy)
			dir[idx] = math.Atan2(gy, gx)
		}
	}

	suppressed := nonMaxSuppress(g.Width, g.Height, mag, dir)
	return hysteresis(g.Width, g.Height, suppressed, low, high)
}

func nonMaxSuppress(w, h int, mag, dir []float64) []float64 {
	out := make([]float64, w*h)
	at := func(x, y int) float64 {
		if x < 0 || x >= w || y < 0 || y >= h {
			return 0
		}
		return mag[y*w+x]
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			angle := math.Mod(dir[idx]+math.Pi, math.Pi) // fold into [0, pi)
			var n1, n2 float64
			switch {
			case angle < math.Pi/8 || angle >= 7*math.Pi/8:
				n1, n2 = at(x-1, y), at(x+1, y)
			case angle < 3*math.Pi/8:
				n1, n2 = at(x-1, y-1), at(x+1, y+1)
			case angle < 5*math.Pi/8:
				n1, n2 = at(x, y-1), at(x, y+1)
			default:
				n1, n2 = at(x-1, y+1), at(x+1, y-1)
			}
			if mag[idx] >= n1 && mag[idx] >= n2 {
				out[idx] = mag[idx]
			}
		}
	}
	return out
}

func hysteresis(w, h int, mag []float64, low, high float64) binaryImage {
	strong := make([]bool, w*h)
	weak := make([]bool, w*h)
	for i, v := range mag {
		if v >= high {
			strong[i] = true
		} else if v >= low {
			weak[i] = true
		}
	}

	out := binaryImage{Width: w, Height: h, Pix: make([]bool, w*h)}
	copy(out.Pix, strong)

	// Propagate strong edges into 8-connected weak neighbors, repeating
	// until the result is stable (bounded by image size).
	for changed := true; changed; {
		changed = false
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				idx := y*w + x
				if out.Pix[idx] || !weak[idx] {
					continue
				}
				for ky := -1; ky <= 1 && !out.Pix[idx]; ky++ {
					for kx := -1; kx <= 1; kx++ {
						nx, ny := x+kx, y+ky
						if nx < 0 || nx >= w || ny < 0 || ny >= h {
							continue
						}
						if out.Pix[ny*w+nx] {
							out.Pix[idx] = true
							changed = true
							break
						}
					}
				}
			}
		}
	}
	return out
}
