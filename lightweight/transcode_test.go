package lightweight

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lecturevod/slidedeck/roi"
)

func TestFilterGraphAlignsROIAndIncludesFPS(t *testing.T) {
	tc := Transcoder{Width: 640, FPS: 5}
	filter := tc.filterGraph(roi.ROI{X: 11, Y: 9, W: 401, H: 301})
	require.Equal(t, "crop=400:300:10:8,scale=640:-2,fps=5", filter)
}

func TestFilterGraphClampsTinyROI(t *testing.T) {
	tc := Transcoder{Width: 640, FPS: 5}
	filter := tc.filterGraph(roi.ROI{X: 0, Y: 0, W: 1, H: 1})
	require.Contains(t, filter, "crop=2:2:0:0")
}

func TestHardwareAndSoftwareArgsDiffer(t *testing.T) {
	hw := hardwareArgs()
	sw := softwareArgs()
	require.NotEqual(t, hw.codec, sw.codec)
	require.Equal(t, "fastest", hw.preset)
	require.Equal(t, "ultrafast", sw.preset)
}

func TestAlignDown(t *testing.T) {
	require.Equal(t, 10, alignDown(11))
	require.Equal(t, 10, alignDown(10))
	require.Equal(t, 0, alignDown(1))
}
