package funnel

import (
	"os"
	"strings"
	"time"

	"github.com/lecturevod/slidedeck/log"
)

// stillGrabber and textExtractor narrow FrameGrabber/TextExtractor down to
// the methods L3 needs, so tests can substitute fakes without spawning
// ffmpeg or Tesseract.
type stillGrabber interface {
	Grab(ts time.Duration) (string, error)
}

type textExtractor interface {
	Extract(path string) (string, error)
}

// DedupConfig bundles L3's tunables and collaborators.
type DedupConfig struct {
	Grabber   stillGrabber
	Extractor textExtractor
	Threshold float64
}

// Dedup runs L3 (semantic dedup) over a lazy BestShot stream: each shot's
// frame is grabbed and OCR'd, blank results are discarded, and results whose
// text is too similar to the last *retained* slide are discarded too (§4.3 —
// discards never update the memory). Like ExtractBestShots, this returns an
// unbuffered channel so at most one SlideTimestamp is ever in flight.
func Dedup(jobID string, shots <-chan BestShot, cfg DedupConfig) <-chan SlideTimestamp {
	out := make(chan SlideTimestamp)
	go func() {
		defer close(out)
		runL3(jobID, shots, cfg, out)
	}()
	return out
}

func runL3(jobID string, shots <-chan BestShot, cfg DedupConfig, out chan<- SlideTimestamp) {
	lastText := ""
	haveLast := false

	for shot := range shots {
		path, err := cfg.Grabber.Grab(shot.Timestamp)
		if err != nil {
			log.LogError(jobID, "failed to grab frame for OCR", err, "timestamp", shot.Timestamp.String())
			continue
		}

		text, err := cfg.Extractor.Extract(path)
		os.Remove(path)
		if err != nil {
			log.LogError(jobID, "OCR failed", err, "timestamp", shot.Timestamp.String())
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		if haveLast && textSimilarity(text, lastText) > cfg.Threshold {
			continue
		}

		lastText = text
		haveLast = true
		out <- SlideTimestamp{Timestamp: shot.Timestamp, OCRText: text}
	}
}
