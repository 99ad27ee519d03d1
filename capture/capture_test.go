package capture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

func TestSlideImageNameMatchesJobNaming(t *testing.T) {
	name := SlideImageName("/out", 3, 12500*time.Millisecond)
	require.Equal(t, "/out/slide_0003_12.50s.jpg", name)
}

func TestCaptureSkipsFailedFramesButKeepsOthers(t *testing.T) {
	original := runFFmpegCapture
	defer func() { runFFmpegCapture = original }()

	calls := 0
	runFFmpegCapture = func(jobID, sourcePath string, ts time.Duration, outPath string, outArgs ffmpeg.KwArgs) error {
		calls++
		if ts == 2*time.Second {
			return assertError
		}
		return nil
	}

	c := Capturer{SourceVideoPath: "source.mp4", Quality: 2}
	timestamps := []time.Duration{time.Second, 2 * time.Second, 3 * time.Second}
	got, err := c.Capture("job", timestamps, func(i int, ts time.Duration) string {
		return SlideImageName("/out", i, ts)
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, 3, calls)
	require.Equal(t, time.Second, got[0].Timestamp)
	require.Equal(t, 3*time.Second, got[1].Timestamp)
}

func TestCaptureReturnsErrorWhenAllFramesFail(t *testing.T) {
	original := runFFmpegCapture
	defer func() { runFFmpegCapture = original }()

	runFFmpegCapture = func(jobID, sourcePath string, ts time.Duration, outPath string, outArgs ffmpeg.KwArgs) error {
		return assertError
	}

	c := Capturer{SourceVideoPath: "source.mp4", Quality: 2}
	_, err := c.Capture("job", []time.Duration{time.Second}, func(i int, ts time.Duration) string {
		return SlideImageName("/out", i, ts)
	})
	require.Error(t, err)
}

var assertError = &captureTestError{"extraction failed"}

type captureTestError struct{ msg string }

func (e *captureTestError) Error() string { return e.msg }
