// Package job owns the per-job filesystem layout: the output directory
// tree under config.OutputDir and the scratch directory under
// config.ScratchDir, both keyed by job ID, plus guaranteed-release cleanup
// of the latter.
package job

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lecturevod/slidedeck/config"
	"github.com/lecturevod/slidedeck/errors"
	"github.com/lecturevod/slidedeck/log"
)

// Job is the unit of work the pipeline processes: a source video and the
// two toggles that decide which stages run.
type Job struct {
	ID                    string
	SourceVideoPath       string
	EnableSlideExtraction bool
	EnableTranscription   bool

	outputRoot  string
	scratchRoot string
}

// New validates the source video's container extension and lays out the
// job's output directory tree. Per §3, output_root is created before any
// stage runs.
func New(id, sourceVideoPath string, enableSlideExtraction, enableTranscription bool) (*Job, error) {
	ext := filepath.Ext(sourceVideoPath)
	if !config.AllowedExtensions[ext] {
		return nil, errors.Unretriable(errors.New(errors.KindInput, fmt.Sprintf("unsupported container %q", ext), errors.ErrUnsupportedContainer))
	}

	j := &Job{
		ID:                    id,
		SourceVideoPath:       sourceVideoPath,
		EnableSlideExtraction: enableSlideExtraction,
		EnableTranscription:   enableTranscription,
		outputRoot:            filepath.Join(config.OutputDir, id),
		scratchRoot:           filepath.Join(config.ScratchDir, id),
	}
	if err := j.layout(); err != nil {
		return nil, errors.New(errors.KindEnvironment, "unable to create output directories", err)
	}
	return j, nil
}

func (j *Job) layout() error {
	for _, dir := range []string{j.DebugImagesDir(), j.PPTImagesDir(), j.PPTOutputDir(), j.TranscriptsDir(), j.scratchRoot} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

func (j *Job) DebugImagesDir() string  { return filepath.Join(j.outputRoot, "debug_images") }
func (j *Job) PPTImagesDir() string    { return filepath.Join(j.outputRoot, "ppt_images") }
func (j *Job) PPTOutputDir() string    { return filepath.Join(j.outputRoot, "ppt_output") }
func (j *Job) TranscriptsDir() string  { return filepath.Join(j.outputRoot, "transcripts") }
func (j *Job) PPTXPath() string        { return filepath.Join(j.PPTOutputDir(), j.ID+".pptx") }
func (j *Job) TranscriptPath() string  { return filepath.Join(j.TranscriptsDir(), j.ID+".txt") }
func (j *Job) LightweightVideoPath() string {
	return filepath.Join(j.scratchRoot, j.ID+"_lightweight.mp4")
}

// SlideImagePath returns the ppt_images/ path for the nth (0-based) slide
// captured at ts seconds, matching the slide_NNNN_<ts>s.jpg naming in §6.
func (j *Job) SlideImagePath(index int, ts float64) string {
	return filepath.Join(j.PPTImagesDir(), fmt.Sprintf("slide_%04d_%.2fs.jpg", index, ts))
}

// Cleanup removes the job's scratch directory. It is called from a
// guaranteed-release section on every exit path from the pipeline, and
// retries on failure the way the original service's secure_delete does,
// since a just-closed ffmpeg subprocess may not have released its file
// handle on the scratch directory's contents immediately.
func (j *Job) Cleanup() {
	var err error
	for attempt := 0; attempt < config.CleanupMaxRetries; attempt++ {
		if err = os.RemoveAll(j.scratchRoot); err == nil {
			return
		}
		time.Sleep(config.CleanupRetryDelay)
	}
	log.LogError(j.ID, "failed to remove scratch directory after retries", err, "path", j.scratchRoot)
}
