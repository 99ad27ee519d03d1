package roi

import (
	"image"
	"math"
)

// grayTensor is a row-major single-channel image, luminance normalized to
// [0,255] as plain floats so blur/gradient math doesn't round-trip through
// uint8 repeatedly.
type grayTensor struct {
	Width, Height int
	Pix           []float64
}

func (g grayTensor) at(x, y int) float64 {
	if x < 0 {
		x = 0
	}
	if x >= g.Width {
		x = g.Width - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= g.Height {
		y = g.Height - 1
	}
	return g.Pix[y*g.Width+x]
}

// toGrayTensor converts an image.Image to grayscale using the standard
// luma weights, matching cv2.cvtColor(..., COLOR_BGR2GRAY).
func toGrayTensor(img image.Image) grayTensor {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	g := grayTensor{Width: w, Height: h, Pix: make([]float64, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, gr, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			// RGBA() returns 16-bit components; scale to 8-bit range.
			lum := 0.299*float64(r>>8) + 0.587*float64(gr>>8) + 0.114*float64(bl>>8)
			g.Pix[y*w+x] = lum
		}
	}
	return g
}

// gaussianKernel5x5 is a standard sigma~1 discrete approximation, matching
// cv2.GaussianBlur(gray, (5,5), 0).
var gaussianKernel5x5 = [5][5]float64{
	{1, 4, 6, 4, 1},
	{4, 16, 24, 16, 4},
	{6, 24, 36, 24, 6},
	{4, 16, 24, 16, 4},
	{1, 4, 6, 4, 1},
}

const gaussianKernelSum = 256.0

func gaussianBlur5x5(g grayTensor) grayTensor {
	out := grayTensor{Width: g.Width, Height: g.Height, Pix: make([]float64, len(g.Pix))}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			var acc float64
			for ky := -2; ky <= 2; ky++ {
				for kx := -2; kx <= 2; kx++ {
					acc += g.at(x+kx, y+ky) * gaussianKernel5x5[ky+2][kx+2]
				}
			}
			out.Pix[y*g.Width+x] = acc / gaussianKernelSum
		}
	}
	return out
}

// toImage renders a grayTensor as a grayscale image.Image for debug dumps.
func (g grayTensor) toImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	for i, v := range g.Pix {
		v = math.Max(0, math.Min(255, v))
		img.Pix[i] = uint8(v)
	}
	return img
}

// binaryImage is a 0/1 per-pixel edge map.
type binaryImage struct {
	Width, Height int
	Pix           []bool
}

func (b binaryImage) at(x, y int) bool {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return false
	}
	return b.Pix[y*b.Width+x]
}

func (b binaryImage) toImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, b.Width, b.Height))
	for i, v := range b.Pix {
		if v {
			img.Pix[i] = 255
		}
	}
	return img
}
