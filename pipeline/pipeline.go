// Package pipeline wires the four stages — ROI location, lightweight
// transcode, funnel analysis, high-resolution capture — plus the optional
// transcription stage into the single blocking entry point the CLI calls.
package pipeline

import (
	"time"

	"github.com/lecturevod/slidedeck/capture"
	"github.com/lecturevod/slidedeck/config"
	"github.com/lecturevod/slidedeck/errors"
	"github.com/lecturevod/slidedeck/funnel"
	"github.com/lecturevod/slidedeck/gpu"
	"github.com/lecturevod/slidedeck/job"
	"github.com/lecturevod/slidedeck/lightweight"
	"github.com/lecturevod/slidedeck/log"
	"github.com/lecturevod/slidedeck/progress"
	"github.com/lecturevod/slidedeck/roi"
	"github.com/lecturevod/slidedeck/transcribe"
	"github.com/lecturevod/slidedeck/video"
)

// Result is what Process hands back on success: the deck, if slide
// extraction was enabled and produced anything, and the transcript, if
// transcription was enabled.
type Result struct {
	PPTXPath       string
	TranscriptPath string
	SlideCount     int
}

// roiLocator and transcoder narrow roi.Locator/lightweight.Transcoder down
// to the methods Process needs, so tests can substitute fakes without
// spawning ffmpeg.
type roiLocator interface {
	Locate(jobID, sourceVideoPath string) (roi.ROI, error)
}

type transcoder interface {
	Transcode(jobID, sourcePath, outPath string, box roi.ROI, sourceDuration time.Duration, reporter *progress.Reporter) error
}

// Pipeline bundles the stage implementations Process drives.
type Pipeline struct {
	Prober      video.Prober
	Locator     roiLocator
	Transcoder  transcoder
	Transcriber transcribe.Transcriber
	// DumpDebugImages, when set, asks the locator to write its intermediate
	// images into the job's debug_images/ directory (§6).
	DumpDebugImages bool
}

// New builds a Pipeline with the real ffmpeg/ffprobe-backed stage
// implementations.
func New() *Pipeline {
	prober := video.Probe{}
	return &Pipeline{
		Prober:      prober,
		Locator:     roi.Locator{Prober: prober},
		Transcoder:  lightweight.Transcoder{Width: config.LightweightWidth, FPS: config.LightweightFPS},
		Transcriber: transcribe.Stub{},
	}
}

// Process runs one job start to finish. It always cleans up the job's
// scratch directory before returning, on every exit path, success or
// failure (§3's guaranteed-release rule). Any slide-extraction error,
// including a funnel pass that retains no slide, fails the whole job; a
// transcription error is logged and leaves the slide result intact. The job
// also fails when neither a deck nor a transcript was produced.
func (p *Pipeline) Process(jobID, sourceVideoPath string, enableSlideExtraction, enableTranscription bool, cb progress.Callback) (*Result, error) {
	j, err := job.New(jobID, sourceVideoPath, enableSlideExtraction, enableTranscription)
	if err != nil {
		return nil, err
	}
	defer j.Cleanup()

	result := &Result{}

	if enableSlideExtraction {
		slideScaleEnd := config.ProgressTranscribeEnd
		if enableTranscription {
			slideScaleEnd = config.ProgressSlideEnd
		}
		slideReporter := progress.NewReporter(jobID, config.ProgressSlideStart, slideScaleEnd, cb)
		count, err := p.runSlideExtraction(j, slideReporter)
		if err != nil {
			return nil, err
		}
		result.PPTXPath = j.PPTXPath()
		result.SlideCount = count
	}

	if enableTranscription {
		transcribeReporter := progress.NewReporter(jobID, config.ProgressSlideEnd, config.ProgressTranscribeEnd, cb)
		if err := p.Transcriber.Transcribe(jobID, j.SourceVideoPath, j.TranscriptPath(), transcribeReporter); err != nil {
			log.LogError(jobID, "transcription failed", err)
		} else {
			result.TranscriptPath = j.TranscriptPath()
		}
	}

	if result.PPTXPath == "" && result.TranscriptPath == "" {
		return nil, errors.New(errors.KindInput, "no deliverable produced", errors.ErrNoSlideContent)
	}
	return result, nil
}

func (p *Pipeline) runSlideExtraction(j *job.Job, reporter *progress.Reporter) (int, error) {
	jobID := j.ID

	reporter.Set("locating slide region", 0)
	locator := p.Locator
	if p.DumpDebugImages {
		if l, ok := p.Locator.(roi.Locator); ok {
			locator = l.WithDebugDir(j.DebugImagesDir())
		}
	}
	box, err := locator.Locate(jobID, j.SourceVideoPath)
	if err != nil {
		return 0, err
	}

	info, err := p.Prober.Probe(jobID, j.SourceVideoPath)
	if err != nil {
		return 0, errors.New(errors.KindInput, "unable to read source video", err)
	}

	reporter.Set("transcoding lightweight video", 0.1)
	if err := p.Transcoder.Transcode(jobID, j.SourceVideoPath, j.LightweightVideoPath(), box, info.Duration, reporter); err != nil {
		return 0, err
	}

	shots, err := p.runFunnel(j, reporter, box)
	if err != nil {
		return 0, err
	}

	reporter.Set("capturing high-resolution stills", 0.9)
	capturer := capture.Capturer{SourceVideoPath: j.SourceVideoPath, Quality: config.CaptureJPEGQuality, Crop: &box}
	var timestamps []time.Duration
	for _, s := range shots {
		timestamps = append(timestamps, s.Timestamp)
	}
	captured, err := capturer.Capture(jobID, timestamps, func(i int, ts time.Duration) string {
		return j.SlideImagePath(i, ts.Seconds())
	})
	if err != nil {
		return 0, err
	}

	if err := capture.AssemblePPTX(captured, j.PPTXPath()); err != nil {
		return 0, err
	}

	reporter.Set("slide extraction complete", 1.0)
	return len(captured), nil
}

func (p *Pipeline) runFunnel(j *job.Job, reporter *progress.Reporter, box roi.ROI) ([]funnel.SlideTimestamp, error) {
	src, err := funnel.NewFFmpegFrameSource(j.LightweightVideoPath(), config.LightweightWidth, lightweightHeight(box))
	if err != nil {
		return nil, errors.New(errors.KindEnvironment, "unable to decode lightweight video", err)
	}
	defer src.Close()

	shotsCh := funnel.ExtractBestShots(src, gpu.Default(), config.FunnelDiffThreshold, config.FunnelMinSceneDuration, float64(config.LightweightFPS), config.FunnelSampleInterval)

	extractor := funnel.NewTextExtractor()
	defer extractor.Close()

	dedupCfg := funnel.DedupConfig{
		Grabber:   funnel.FrameGrabber{VideoPath: j.LightweightVideoPath(), TempDir: j.DebugImagesDir()},
		Extractor: extractor,
		Threshold: config.FunnelSimilarityThreshold,
	}
	slideCh := funnel.Dedup(j.ID, shotsCh, dedupCfg)

	var slides []funnel.SlideTimestamp
	for s := range slideCh {
		slides = append(slides, s)
		reporter.Set("analyzing scenes", 0.1+0.7*float64(len(slides))/float64(len(slides)+1))
	}
	if len(slides) == 0 {
		return nil, errors.New(errors.KindInput, "no slide content detected", errors.ErrNoSlideContent)
	}
	return slides, nil
}

// lightweightHeight derives the transcoded video's height from the cropped
// ROI's aspect ratio and the configured width, matching the crop-then-even-
// scale filter graph the transcoder applies.
func lightweightHeight(box roi.ROI) int {
	if box.W == 0 {
		return config.LightweightWidth
	}
	h := int(float64(config.LightweightWidth) * float64(box.H) / float64(box.W))
	return h - h%2
}
