package funnel

import (
	"time"

	"github.com/lecturevod/slidedeck/gpu"
)

// ExtractBestShots runs L1 (physical scene segmentation via MAD) and L2
// (quality selection via Laplacian variance) against src, emitting
// BestShots on the returned channel as scenes close. The channel is
// unbuffered so only one BestShot is ever in flight between the funnel's
// producer and its consumer (§9's "no intermediate list" requirement); the
// producer goroutine exits once src is exhausted or ctx-like cancellation
// isn't needed since a job runs one funnel pass start to finish.
//
// sampleInterval controls how many decoded frames are skipped between
// analyzed samples: every ⌊fps × sampleInterval⌋-th decoded frame is kept.
func ExtractBestShots(src FrameSource, backend gpu.Backend, diffThreshold float64, minSceneDuration time.Duration, fps float64, sampleInterval time.Duration) <-chan BestShot {
	out := make(chan BestShot)
	go func() {
		defer close(out)
		defer backend.Release()
		runL1L2(src, backend, diffThreshold, minSceneDuration, fps, sampleInterval, out)
	}()
	return out
}

func runL1L2(src FrameSource, backend gpu.Backend, diffThreshold float64, minSceneDuration time.Duration, fps float64, sampleInterval time.Duration, out chan<- BestShot) {
	stride := int(fps * sampleInterval.Seconds())
	if stride < 1 {
		stride = 1
	}

	var prevLuma []float64
	var sceneStart time.Duration
	var sceneOpen bool
	var bestTS time.Duration
	var bestSharpness float64
	var lastTS time.Duration

	frameIndex := 0
	for {
		frame, ok, err := src.Next()
		if err != nil || !ok {
			break
		}
		frameIndex++
		if (frameIndex-1)%stride != 0 {
			continue
		}
		lastTS = frame.Timestamp

		if !sceneOpen {
			sceneOpen = true
			sceneStart = frame.Timestamp
			bestTS = frame.Timestamp
			bestSharpness = backend.LaplacianVariance(frame.Luma, frame.Width, frame.Height)
			prevLuma = frame.Luma
			continue
		}

		diff := backend.Diff(prevLuma, frame.Luma)
		prevLuma = frame.Luma

		if diff > diffThreshold {
			emitSceneIfLongEnough(out, sceneStart, frame.Timestamp, bestTS, bestSharpness, minSceneDuration)
			sceneStart = frame.Timestamp
			bestTS = frame.Timestamp
			bestSharpness = backend.LaplacianVariance(frame.Luma, frame.Width, frame.Height)
			continue
		}

		sharpness := backend.LaplacianVariance(frame.Luma, frame.Width, frame.Height)
		if sharpness > bestSharpness {
			bestSharpness = sharpness
			bestTS = frame.Timestamp
		}
	}

	if sceneOpen {
		emitSceneIfLongEnough(out, sceneStart, lastTS, bestTS, bestSharpness, minSceneDuration)
	}
}

func emitSceneIfLongEnough(out chan<- BestShot, sceneStart, sceneEnd, bestTS time.Duration, bestSharpness float64, minSceneDuration time.Duration) {
	if sceneEnd-sceneStart < minSceneDuration {
		return
	}
	out <- BestShot{
		Timestamp:  bestTS,
		Sharpness:  bestSharpness,
		SceneStart: sceneStart,
		SceneEnd:   sceneEnd,
	}
}
