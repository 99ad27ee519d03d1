// Package capture implements the pipeline's fourth stage (§4.4): pulling
// full-resolution stills from the original source video at each retained
// slide timestamp, then assembling them into a 16:9 PPTX deck.
package capture

import (
	"fmt"
	"path/filepath"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/lecturevod/slidedeck/errors"
	"github.com/lecturevod/slidedeck/log"
	"github.com/lecturevod/slidedeck/roi"
	"github.com/lecturevod/slidedeck/subprocess"
)

// Capturer extracts high-resolution JPEG stills from the original video.
// Unlike the funnel's FrameGrabber, it runs against SourceVideoPath (not the
// lightweight derivative) and optionally crops to the located ROI, since the
// deck's images should match what a viewer would see on the physical slide,
// not the analysis frame.
type Capturer struct {
	SourceVideoPath string
	Quality         int // ffmpeg -q:v, lower is higher quality; must be >= 2 per §4.4.
	Crop            *roi.ROI
}

// CapturedSlide pairs a slide's timestamp with the still image path written
// for it.
type CapturedSlide struct {
	Timestamp time.Duration
	ImagePath string
}

// Capture writes one still per timestamp into outputDir, in increasing
// timestamp order. A single failed extraction is logged and skipped rather
// than aborting the whole job (§4.4's non-fatal per-frame failure rule);
// Capture only returns an error if it ends up with zero images.
func (c Capturer) Capture(jobID string, timestamps []time.Duration, pathForIndex func(index int, ts time.Duration) string) ([]CapturedSlide, error) {
	var captured []CapturedSlide
	for i, ts := range timestamps {
		outPath := pathForIndex(i, ts)
		if err := c.extractOne(jobID, ts, outPath); err != nil {
			log.LogError(jobID, "failed to capture high-resolution still, skipping", err, "timestamp", ts.String())
			continue
		}
		captured = append(captured, CapturedSlide{Timestamp: ts, ImagePath: outPath})
	}
	if len(captured) == 0 {
		return nil, errors.New(errors.KindInput, "no slide stills could be captured", errors.ErrNoSlideContent)
	}
	return captured, nil
}

// runFFmpegCapture is a var so tests can substitute a fake extraction
// without spawning ffmpeg. It compiles the ffmpeg-go call down to an
// *exec.Cmd so the process's stdout/stderr can be mirrored through
// subprocess.LogOutputs the same way the ROI locator's sample-frame
// extraction does, rather than buffering stderr only to discard it on success.
var runFFmpegCapture = func(jobID, sourcePath string, ts time.Duration, outPath string, outArgs ffmpeg.KwArgs) error {
	cmd := ffmpeg.Input(sourcePath, ffmpeg.KwArgs{"ss": fmt.Sprintf("%.3f", ts.Seconds())}).
		Output(outPath, outArgs).
		OverWriteOutput().Compile()
	if err := subprocess.LogOutputs(jobID, cmd); err != nil {
		return fmt.Errorf("unable to attach to ffmpeg capture process: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg capture failed to start: %w", err)
	}
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg capture failed: %w", err)
	}
	return nil
}

func (c Capturer) extractOne(jobID string, ts time.Duration, outPath string) error {
	quality := c.Quality
	if quality < 2 {
		quality = 2
	}

	outArgs := ffmpeg.KwArgs{"vframes": "1", "q:v": fmt.Sprintf("%d", quality)}
	if c.Crop != nil {
		outArgs["vf"] = fmt.Sprintf("crop=%d:%d:%d:%d", c.Crop.W, c.Crop.H, c.Crop.X, c.Crop.Y)
	}

	return runFFmpegCapture(jobID, c.SourceVideoPath, ts, outPath, outArgs)
}

// SlideImageName matches job.Job.SlideImagePath's naming so capture output
// lands exactly where the job layout expects it.
func SlideImageName(dir string, index int, ts time.Duration) string {
	return filepath.Join(dir, fmt.Sprintf("slide_%04d_%.2fs.jpg", index, ts.Seconds()))
}
