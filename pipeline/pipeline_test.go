package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lecturevod/slidedeck/config"
	"github.com/lecturevod/slidedeck/progress"
	"github.com/lecturevod/slidedeck/roi"
	"github.com/lecturevod/slidedeck/transcribe"
	"github.com/lecturevod/slidedeck/video"
)

func withTempRoots(t *testing.T) {
	outputDir := t.TempDir()
	scratchDir := t.TempDir()
	origOutput, origScratch := config.OutputDir, config.ScratchDir
	config.OutputDir, config.ScratchDir = outputDir, scratchDir
	t.Cleanup(func() {
		config.OutputDir, config.ScratchDir = origOutput, origScratch
	})
}

type fakeProber struct {
	info video.Info
	err  error
}

func (f fakeProber) Probe(jobID, path string) (video.Info, error) { return f.info, f.err }

type fakeLocator struct {
	box roi.ROI
	err error
}

func (f fakeLocator) Locate(jobID, sourceVideoPath string) (roi.ROI, error) { return f.box, f.err }

type failingTranscoder struct{ err error }

func (f failingTranscoder) Transcode(jobID, sourcePath, outPath string, box roi.ROI, sourceDuration time.Duration, reporter *progress.Reporter) error {
	return f.err
}

func collectCallback() (progress.Callback, *[]int) {
	var percents []int
	return func(percent int, message string) {
		percents = append(percents, percent)
	}, &percents
}

func TestProcessRejectsUnsupportedContainer(t *testing.T) {
	withTempRoots(t)
	p := &Pipeline{Transcriber: transcribe.Stub{}}
	cb, _ := collectCallback()

	_, err := p.Process("job-1", "lecture.webm", true, false, cb)
	require.Error(t, err)
}

func TestProcessPropagatesLocatorError(t *testing.T) {
	withTempRoots(t)
	p := &Pipeline{
		Prober:      fakeProber{info: video.Info{Duration: 10 * time.Second, Width: 1280, Height: 720}},
		Locator:     fakeLocator{err: assertPipelineErr},
		Transcriber: transcribe.Stub{},
	}
	cb, _ := collectCallback()

	_, err := p.Process("job-1", "lecture.mp4", true, false, cb)
	require.Error(t, err)
}

func TestProcessPropagatesTranscodeError(t *testing.T) {
	withTempRoots(t)
	p := &Pipeline{
		Prober:      fakeProber{info: video.Info{Duration: 10 * time.Second, Width: 1280, Height: 720}},
		Locator:     fakeLocator{box: roi.ROI{X: 0, Y: 0, W: 100, H: 100}},
		Transcoder:  failingTranscoder{err: assertPipelineErr},
		Transcriber: transcribe.Stub{},
	}
	cb, _ := collectCallback()

	_, err := p.Process("job-1", "lecture.mp4", true, false, cb)
	require.Error(t, err)
}

func TestProcessReturnsNoDeliverableWhenBothStagesDisabled(t *testing.T) {
	withTempRoots(t)
	p := &Pipeline{Transcriber: transcribe.Stub{}}
	cb, _ := collectCallback()

	_, err := p.Process("job-1", "lecture.mp4", false, false, cb)
	require.Error(t, err)
}

var assertPipelineErr = &pipelineTestError{"boom"}

type pipelineTestError struct{ msg string }

func (e *pipelineTestError) Error() string { return e.msg }
