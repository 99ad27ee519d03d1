package video

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/vansante/go-ffprobe.v2"
)

func TestItRejectsWhenNoVideoTrackPresent(t *testing.T) {
	_, err := parseProbeOutput(&ffprobe.ProbeData{
		Streams: []*ffprobe.Stream{
			{CodecType: "audio"},
		},
	})
	require.ErrorContains(t, err, "no video stream found")
}

func TestItRejectsWhenFormatMissing(t *testing.T) {
	_, err := parseProbeOutput(&ffprobe.ProbeData{
		Streams: []*ffprobe.Stream{
			{CodecType: "video"},
		},
	})
	require.ErrorContains(t, err, "format information missing")
}

func TestParsesDurationWidthHeightFPS(t *testing.T) {
	info, err := parseProbeOutput(&ffprobe.ProbeData{
		Streams: []*ffprobe.Stream{
			{
				CodecType:    "video",
				Width:        1920,
				Height:       1080,
				Duration:     "125.5",
				AvgFrameRate: "30000/1001",
			},
		},
		Format: &ffprobe.Format{DurationSeconds: 125.5},
	})
	require.NoError(t, err)
	require.Equal(t, 1920, info.Width)
	require.Equal(t, 1080, info.Height)
	require.InDelta(t, 29.97, info.FPS, 0.01)
	require.InDelta(t, 125.5, info.Duration.Seconds(), 0.01)
}

func TestParseFps(t *testing.T) {
	fps, err := parseFps("")
	require.NoError(t, err)
	require.Equal(t, float64(0), fps)

	fps, err = parseFps("25/1")
	require.NoError(t, err)
	require.Equal(t, float64(25), fps)

	_, err = parseFps("25/0")
	require.Error(t, err)
}
