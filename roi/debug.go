package roi

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/lecturevod/slidedeck/log"
)

// dumpDebug writes img as "sample<sampleIndex>_<name>.jpg" under DebugDir, a
// no-op if DebugDir is unset, matching the original service's
// 0_original.jpg/1_gray.jpg/2_edged.jpg/3_final_region.jpg dump.
func (l Locator) dumpDebug(sampleIndex int, name string, img image.Image) {
	if l.DebugDir == "" {
		return
	}
	_ = os.MkdirAll(l.DebugDir, 0o755)
	path := filepath.Join(l.DebugDir, fmt.Sprintf("sample%d_%s.jpg", sampleIndex, name))
	if err := gg.SaveJPG(path, img, 90); err != nil {
		log.LogNoJobID("failed to write ROI debug image", "path", path, "err", err.Error())
	}
}

func (l Locator) dumpDebugGray(sampleIndex int, name string, g grayTensor) {
	if l.DebugDir == "" {
		return
	}
	l.dumpDebug(sampleIndex, name, g.toImage())
}

func (l Locator) dumpDebugBinary(sampleIndex int, name string, b binaryImage) {
	if l.DebugDir == "" {
		return
	}
	l.dumpDebug(sampleIndex, name, b.toImage())
}

// dumpDebugAnnotated draws the accepted quadrilateral over the original
// frame, mirroring cv2.drawContours(debug_img, [approx], -1, (0,255,0), 3).
func (l Locator) dumpDebugAnnotated(sampleIndex int, name string, frame image.Image, approx []point) {
	if l.DebugDir == "" {
		return
	}
	b := frame.Bounds()
	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.DrawImage(frame, 0, 0)
	dc.SetColor(color.RGBA{R: 0, G: 255, B: 0, A: 255})
	dc.SetLineWidth(3)
	if len(approx) > 0 {
		dc.NewSubPath()
		dc.MoveTo(float64(approx[0].X), float64(approx[0].Y))
		for _, p := range approx[1:] {
			dc.LineTo(float64(p.X), float64(p.Y))
		}
		dc.ClosePath()
		dc.Stroke()
	}
	l.dumpDebug(sampleIndex, name, dc.Image())
}
