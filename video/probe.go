package video

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"gopkg.in/vansante/go-ffprobe.v2"

	"github.com/lecturevod/slidedeck/log"
)

// Info is the subset of ffprobe's output the pipeline actually needs: a
// duration to compute relative sample positions against, and the frame
// geometry needed to decide crop/scale parameters for the lightweight
// transcode.
type Info struct {
	Duration time.Duration
	Width    int
	Height   int
	FPS      float64
}

type Prober interface {
	Probe(jobID, path string) (Info, error)
}

type Probe struct{}

func (p Probe) Probe(jobID, path string) (Info, error) {
	var data *ffprobe.ProbeData
	var err error
	operation := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		data, err = ffprobe.ProbeURL(ctx, path, "-loglevel", "error")
		return err
	}

	backOff := backoff.NewExponentialBackOff()
	backOff.InitialInterval = 500 * time.Millisecond
	backOff.MaxInterval = 2 * time.Second
	backOff.MaxElapsedTime = 10 * time.Second
	if retryErr := backoff.Retry(operation, backoff.WithMaxRetries(backOff, 3)); retryErr != nil {
		log.LogError(jobID, "ffprobe failed after retries", retryErr, "path", path)
		return Info{}, fmt.Errorf("error probing %s: %w", path, retryErr)
	}
	return parseProbeOutput(data)
}

func parseProbeOutput(probeData *ffprobe.ProbeData) (Info, error) {
	videoStream := probeData.FirstVideoStream()
	if videoStream == nil {
		return Info{}, errors.New("no video stream found")
	}
	if probeData.Format == nil {
		return Info{}, fmt.Errorf("format information missing")
	}

	duration, err := strconv.ParseFloat(videoStream.Duration, 64)
	if err != nil {
		duration = probeData.Format.DurationSeconds
	}

	fps, err := parseFps(videoStream.AvgFrameRate)
	if err != nil {
		return Info{}, fmt.Errorf("error parsing avg fps from probed data: %w", err)
	}
	if fps == 0 {
		fps, err = parseFps(videoStream.RFrameRate)
		if err != nil {
			return Info{}, fmt.Errorf("error parsing real fps from probed data: %w", err)
		}
	}

	return Info{
		Duration: time.Duration(duration * float64(time.Second)),
		Width:    videoStream.Width,
		Height:   videoStream.Height,
		FPS:      fps,
	}, nil
}

func parseFps(framerate string) (float64, error) {
	if framerate == "" {
		return 0, nil
	}
	parts := strings.SplitN(framerate, "/", 2)
	if len(parts) < 2 {
		fps, err := strconv.ParseFloat(framerate, 64)
		if err != nil {
			return 0, fmt.Errorf("error parsing framerate: %w", err)
		}
		return fps, nil
	}
	num, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("error parsing framerate numerator: %w", err)
	}
	den, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("error parsing framerate denominator: %w", err)
	}
	if den == 0 {
		if num == 0 {
			return 0, nil
		}
		return 0, errors.New("invalid framerate denominator 0")
	}
	return float64(num) / float64(den), nil
}
