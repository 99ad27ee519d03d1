// Package lightweight produces the cropped, downscaled, low-framerate
// derivative video the funnel analyzer runs against (§4.2).
package lightweight

import (
	"bytes"
	"fmt"
	"io"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/lecturevod/slidedeck/errors"
	"github.com/lecturevod/slidedeck/log"
	"github.com/lecturevod/slidedeck/progress"
	"github.com/lecturevod/slidedeck/roi"
	"github.com/lecturevod/slidedeck/subprocess"
)

// Transcoder runs the crop->scale->fps filter graph against the source
// video, attempting a hardware encoder first and falling back to software
// exactly once on failure.
type Transcoder struct {
	Width, FPS int
}

// Transcode writes the lightweight video to outPath. sourceDuration is used
// to turn ffmpeg's `time=` progress lines into a percentage.
func (t Transcoder) Transcode(jobID, sourcePath, outPath string, box roi.ROI, sourceDuration time.Duration, reporter *progress.Reporter) error {
	filter := t.filterGraph(box)

	if err := t.run(jobID, sourcePath, outPath, filter, hardwareArgs(), sourceDuration, reporter); err != nil {
		log.LogError(jobID, "hardware transcode failed, retrying with software encoder", err)
		if err := t.run(jobID, sourcePath, outPath, filter, softwareArgs(), sourceDuration, reporter); err != nil {
			return errors.Unretriable(errors.New(errors.KindEnvironment, "video encoding unavailable", fmt.Errorf("%w: %s", errors.ErrEncodeUnavailable, err)))
		}
	}
	return nil
}

// filterGraph aligns the ROI down to even boundaries (§4.2) before
// composing the crop->scale->fps chain.
func (t Transcoder) filterGraph(box roi.ROI) string {
	x, y, w, h := alignDown(box.X), alignDown(box.Y), alignDown(box.W), alignDown(box.H)
	if w < 2 {
		w = 2
	}
	if h < 2 {
		h = 2
	}
	return fmt.Sprintf("crop=%d:%d:%d:%d,scale=%d:-2,fps=%d", w, h, x, y, t.Width, t.FPS)
}

func alignDown(v int) int { return v - v%2 }

// encoderArgs carries the encoder name and its preset/quality flags; the
// hardware and software paths differ only in these, per §4.2.
type encoderArgs struct {
	codec   string
	preset  string
	quality string
}

func hardwareArgs() encoderArgs {
	return encoderArgs{codec: "h264_videotoolbox", preset: "fastest", quality: "28"}
}

func softwareArgs() encoderArgs {
	return encoderArgs{codec: "libx264", preset: "ultrafast", quality: "28"}
}

// run composes the ffmpeg-go filter graph into an *exec.Cmd via Compile,
// then takes over stdio ourselves so stderr can be watched live for `time=`
// progress tokens while the process is still running; ffmpeg-go's own
// WithErrorOutput only captures the buffer after Run returns, which would
// lose live progress.
func (t Transcoder) run(jobID, sourcePath, outPath, filter string, enc encoderArgs, sourceDuration time.Duration, reporter *progress.Reporter) error {
	kwArgs := ffmpeg.KwArgs{
		"vf":      filter,
		"an":      "",
		"c:v":     enc.codec,
		"preset":  enc.preset,
		"pix_fmt": "yuv420p",
	}
	if enc.codec == "libx264" {
		kwArgs["crf"] = enc.quality
	} else {
		kwArgs["q:v"] = enc.quality
	}

	stream := ffmpeg.Input(sourcePath).Output(outPath, kwArgs).OverWriteOutput()

	cmd := stream.Compile()
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return errors.New(errors.KindEnvironment, "unable to start ffmpeg", err)
	}
	if err := cmd.Start(); err != nil {
		return errors.New(errors.KindEnvironment, "ffmpeg not available", err)
	}

	var stderrBuf bytes.Buffer
	lastReport := time.Now()
	subprocess.WatchFFmpegProgress(io.TeeReader(stderrPipe, &stderrBuf), func(d time.Duration) {
		if sourceDuration <= 0 || reporter == nil {
			return
		}
		if time.Since(lastReport) < time.Second {
			return
		}
		fraction := d.Seconds() / sourceDuration.Seconds()
		reporter.Track("transcoding lightweight video", func() float64 { return fraction })
		reporter.Poll()
		lastReport = time.Now()
	})

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg exited with error [%s]: %w", stderrBuf.String(), err)
	}
	return nil
}
