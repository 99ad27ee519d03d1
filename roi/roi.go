// Package roi locates the slide rectangle within a lecture video (§4.1):
// three sample frames are extracted with ffmpeg, each is run through
// grayscale + blur + edge detection + contour search, and the first
// accepted quadrilateral's bounding box is returned as the ROI.
package roi

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/lecturevod/slidedeck/errors"
	"github.com/lecturevod/slidedeck/log"
	"github.com/lecturevod/slidedeck/subprocess"
	"github.com/lecturevod/slidedeck/video"
)

// samplePositions are the fractions of total duration sampled, per §4.1.
var samplePositions = []float64{0.2, 0.4, 0.6}

// minAreaFraction is the minimum fraction of the frame area a candidate
// contour must cover to be accepted as the slide region.
const minAreaFraction = 0.10

// approxEpsilonFraction is the Douglas-Peucker epsilon as a fraction of the
// contour's perimeter.
const approxEpsilonFraction = 0.03

// cannyLow and cannyHigh are the two-threshold hysteresis bounds.
const cannyLow = 30
const cannyHigh = 120

// ROI is the axis-aligned rectangle identifying the slide area within a
// source frame, always with even width/height per the data model.
type ROI struct {
	X, Y, W, H int
}

// Locator finds the ROI for a source video.
type Locator struct {
	Prober video.Prober
	// DebugDir, if non-empty, receives the intermediate grayscale/edge/
	// annotated images for each sample attempt (§6 debug_images/).
	DebugDir string
}

// WithDebugDir returns a copy of the Locator with DebugDir set, leaving the
// receiver unchanged; the pipeline uses this to point a shared Locator at
// each job's own debug_images/ directory.
func (l Locator) WithDebugDir(dir string) Locator {
	l.DebugDir = dir
	return l
}

// Locate samples frames at samplePositions and returns the first accepted
// slide rectangle. Returns errors.ErrNoSlideRegion (wrapped unretriable)
// if none of the samples yield one, per §4.1's terminal failure semantics.
func (l Locator) Locate(jobID, sourceVideoPath string) (ROI, error) {
	info, err := l.Prober.Probe(jobID, sourceVideoPath)
	if err != nil {
		return ROI{}, errors.New(errors.KindInput, "unable to read source video", err)
	}
	if info.Duration <= 0 {
		return ROI{}, errors.Unretriable(errors.New(errors.KindInput, "unable to locate slide region", errors.ErrNoSlideRegion))
	}

	tempDir, err := os.MkdirTemp("", "roi-samples-*")
	if err != nil {
		return ROI{}, errors.New(errors.KindEnvironment, "unable to create temp directory", err)
	}
	defer os.RemoveAll(tempDir)

	for i, pos := range samplePositions {
		ts := pos * info.Duration.Seconds()
		frame, err := l.extractFrame(jobID, sourceVideoPath, tempDir, i, ts)
		if err != nil {
			log.LogError(jobID, "failed to extract ROI sample frame", err, "position", pos)
			continue
		}

		box, ok := l.locateInFrame(jobID, frame, i)
		if !ok {
			continue
		}
		log.Log(jobID, "located slide region", "sample_position", pos, "x", box.X, "y", box.Y, "w", box.W, "h", box.H)
		return align(box), nil
	}

	return ROI{}, errors.Unretriable(errors.New(errors.KindInput, "unable to locate slide region", errors.ErrNoSlideRegion))
}

func (l Locator) extractFrame(jobID, sourceVideoPath, tempDir string, index int, ts float64) (image.Image, error) {
	outPath := filepath.Join(tempDir, fmt.Sprintf("sample_%d.png", index))
	cmd := ffmpeg.Input(sourceVideoPath, ffmpeg.KwArgs{"ss": fmt.Sprintf("%.3f", ts)}).
		Output(outPath, ffmpeg.KwArgs{"vframes": "1"}).
		OverWriteOutput().Compile()
	if err := subprocess.LogOutputs(jobID, cmd); err != nil {
		return nil, fmt.Errorf("unable to attach to ffmpeg sample process: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg sample extraction failed to start: %w", err)
	}
	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("ffmpeg sample extraction failed: %w", err)
	}
	return imaging.Open(outPath)
}

// locateInFrame runs the grayscale -> blur -> Canny -> contour pipeline
// against a single sample frame, optionally dumping debug images.
func (l Locator) locateInFrame(jobID string, frame image.Image, sampleIndex int) (rect, bool) {
	gray := toGrayTensor(frame)
	l.dumpDebug(sampleIndex, "0_original", frame)
	l.dumpDebugGray(sampleIndex, "1_gray", gray)

	blurred := gaussianBlur5x5(gray)
	edges := canny(blurred, cannyLow, cannyHigh)
	l.dumpDebugBinary(sampleIndex, "2_edged", edges)

	contours := findContours(edges)
	sortByAreaDesc(contours)
	if len(contours) > 5 {
		contours = contours[:5]
	}

	frameArea := float64(gray.Width * gray.Height)
	for _, c := range contours {
		perimeter := c.perimeter()
		approx := approxPolyDP(c.points, approxEpsilonFraction*perimeter)
		if len(approx) != 4 {
			continue
		}
		if c.area() < frameArea*minAreaFraction {
			continue
		}
		box := boundingRect(approx)
		l.dumpDebugAnnotated(sampleIndex, "3_final_region", frame, approx)
		return box, true
	}
	return rect{}, false
}

// align rounds x, y, w, h down to the nearest even number and clamps w, h
// to >= 2, per the ROI data-model invariant and §4.2's alignment rule.
func align(r rect) ROI {
	x := r.X - r.X%2
	y := r.Y - r.Y%2
	w := r.W - r.W%2
	h := r.H - r.H%2
	if w < 2 {
		w = 2
	}
	if h < 2 {
		h = 2
	}
	return ROI{X: x, Y: y, W: w, H: h}
}
