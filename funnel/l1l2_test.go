package funnel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lecturevod/slidedeck/gpu"
)

// fakeFrameSource replays a fixed slice of frames, useful for driving the
// L1/L2 state machine without spawning ffmpeg.
type fakeFrameSource struct {
	frames []Frame
	i      int
}

func (f *fakeFrameSource) Next() (Frame, bool, error) {
	if f.i >= len(f.frames) {
		return Frame{}, false, nil
	}
	frame := f.frames[f.i]
	f.i++
	return frame, true, nil
}

func (f *fakeFrameSource) Close() error { return nil }

func flat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func collect(ch <-chan BestShot) []BestShot {
	var shots []BestShot
	for s := range ch {
		shots = append(shots, s)
	}
	return shots
}

func TestExtractBestShotsSingleConstantSceneEmitsOneShot(t *testing.T) {
	src := &fakeFrameSource{frames: []Frame{
		{Timestamp: 0, Width: 2, Height: 2, Luma: flat(0.5, 4)},
		{Timestamp: 500 * time.Millisecond, Width: 2, Height: 2, Luma: flat(0.5, 4)},
		{Timestamp: time.Second, Width: 2, Height: 2, Luma: flat(0.5, 4)},
		{Timestamp: 1500 * time.Millisecond, Width: 2, Height: 2, Luma: flat(0.5, 4)},
		{Timestamp: 2 * time.Second, Width: 2, Height: 2, Luma: flat(0.5, 4)},
	}}
	shots := collect(ExtractBestShots(src, gpu.Default(), 0.08, 1500*time.Millisecond, 2, time.Second))
	require.Len(t, shots, 1)
	require.Equal(t, time.Duration(0), shots[0].SceneStart)
	require.Equal(t, 2*time.Second, shots[0].SceneEnd)
}

func TestExtractBestShotsDiscardsSubMinDurationScene(t *testing.T) {
	src := &fakeFrameSource{frames: []Frame{
		{Timestamp: 0, Width: 2, Height: 2, Luma: flat(0.1, 4)},
		{Timestamp: 200 * time.Millisecond, Width: 2, Height: 2, Luma: flat(0.1, 4)},
		{Timestamp: 400 * time.Millisecond, Width: 2, Height: 2, Luma: flat(0.1, 4)},
	}}
	shots := collect(ExtractBestShots(src, gpu.Default(), 0.08, 1500*time.Millisecond, 2, time.Second))
	require.Empty(t, shots)
}

func TestExtractBestShotsSceneCutProducesTwoShots(t *testing.T) {
	src := &fakeFrameSource{frames: []Frame{
		{Timestamp: 0, Width: 2, Height: 2, Luma: flat(0.1, 4)},
		{Timestamp: time.Second, Width: 2, Height: 2, Luma: flat(0.1, 4)},
		{Timestamp: 2 * time.Second, Width: 2, Height: 2, Luma: flat(0.9, 4)},
		{Timestamp: 3 * time.Second, Width: 2, Height: 2, Luma: flat(0.9, 4)},
	}}
	shots := collect(ExtractBestShots(src, gpu.Default(), 0.08, 1500*time.Millisecond, 1, time.Second))
	require.Len(t, shots, 2)
	require.Equal(t, time.Duration(0), shots[0].SceneStart)
	require.Equal(t, 2*time.Second, shots[0].SceneEnd)
	require.Equal(t, 2*time.Second, shots[1].SceneStart)
	require.Equal(t, 3*time.Second, shots[1].SceneEnd)
}

func TestExtractBestShotsEmptySourceEmitsNothing(t *testing.T) {
	src := &fakeFrameSource{}
	shots := collect(ExtractBestShots(src, gpu.Default(), 0.08, 1500*time.Millisecond, 2, time.Second))
	require.Empty(t, shots)
}

func TestExtractBestShotsPicksSharpestFrameInScene(t *testing.T) {
	blurry := flat(0.5, 16)
	sharp := []float64{
		0, 1, 0, 1,
		1, 0, 1, 0,
		0, 1, 0, 1,
		1, 0, 1, 0,
	}
	src := &fakeFrameSource{frames: []Frame{
		{Timestamp: 0, Width: 4, Height: 4, Luma: blurry},
		{Timestamp: time.Second, Width: 4, Height: 4, Luma: sharp},
		{Timestamp: 2 * time.Second, Width: 4, Height: 4, Luma: blurry},
	}}
	shots := collect(ExtractBestShots(src, gpu.Default(), 0.99, 1500*time.Millisecond, 1, time.Second))
	require.Len(t, shots, 1)
	require.Equal(t, time.Second, shots[0].Timestamp)
}
