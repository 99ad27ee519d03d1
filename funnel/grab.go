package funnel

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// FrameGrabber extracts a single still frame at a given timestamp, for L3 to
// hand to OCR. It operates on the lightweight video, not the original, since
// L3 only needs legible text, not publication-quality pixels (those come
// from the high-resolution capture stage).
type FrameGrabber struct {
	VideoPath string
	TempDir   string
}

// Grab writes a JPEG still at ts to a temp file and returns its path. The
// caller is responsible for removing it once OCR has run.
func (g FrameGrabber) Grab(ts time.Duration) (string, error) {
	outPath := filepath.Join(g.TempDir, fmt.Sprintf("l3_%d.jpg", ts.Microseconds()))
	var stderr bytes.Buffer
	err := ffmpeg.Input(g.VideoPath, ffmpeg.KwArgs{"ss": fmt.Sprintf("%.3f", ts.Seconds())}).
		Output(outPath, ffmpeg.KwArgs{"vframes": "1", "q:v": "2"}).
		OverWriteOutput().WithErrorOutput(&stderr).Run()
	if err != nil {
		return "", fmt.Errorf("ffmpeg still extraction failed [%s]: %w", stderr.String(), err)
	}
	return outPath, nil
}

func ensureTempDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
