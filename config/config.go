package config

import "time"

var Version string

// Used so that we can generate fixed timestamps in tests
var Clock TimestampGenerator = RealTimestampGenerator{}

// Path to the ffmpeg/ffprobe binaries shelled out to for probing, transcoding
// and frame capture.
var PathFFmpeg = "ffmpeg"
var PathFFprobe = "ffprobe"

// Root directories. Jobs get a scratch subdirectory under ScratchDir for the
// lightweight video, and an output subdirectory under OutputDir for the deck,
// the stills, the transcript and the debug images.
var ScratchDir = "/tmp/slidedeck-scratch"
var OutputDir = "/tmp/slidedeck-output"

// Containers accepted as pipeline input, matching the original service's
// upload allow-list.
var AllowedExtensions = map[string]bool{
	".mp4": true,
	".mov": true,
	".avi": true,
	".mkv": true,
	".m4s": true,
}

// Lightweight transcode target (§4.2): narrow width, low fps, enough for
// scene/sharpness analysis without paying full-resolution decode cost.
var LightweightWidth = 640
var LightweightFPS = 5

// Funnel L1 (scene segmentation): mean-absolute-difference threshold above
// which two consecutive sampled frames are considered a scene cut, and the
// minimum duration a scene must span before its best shot is emitted.
var FunnelDiffThreshold = 0.08
var FunnelMinSceneDuration = 1500 * time.Millisecond

// FunnelSampleInterval is the wall-clock spacing between L1/L2 analysis
// samples drawn from the lightweight video; 5 samples/s is the spec default
// and is what catches sub-second embedded-video flicker (§8.3).
var FunnelSampleInterval = 200 * time.Millisecond

// Funnel L3 (semantic dedup): Gestalt/LCS similarity ratio above which two
// OCR'd slide texts are considered duplicates of each other.
var FunnelSimilarityThreshold = 0.90

// High-resolution capture (§4.4): ffmpeg -q:v value used for the
// per-timestamp JPEG stills. Lower is higher quality; 2 is the best setting
// and Capturer raises anything below 2 to 2.
var CaptureJPEGQuality = 2

// Progress reporting (§6): slide extraction is reported over [0,85] when
// transcription also runs and over [0,100] when it runs alone; the
// transcription pass occupies [85,100].
const ProgressSlideStart = 0
const ProgressSlideEnd = 85
const ProgressTranscribeEnd = 100

// ProgressMinInterval is not read by the progress package: progress.Reporter
// throttles on its own fixed 10-second interval alongside the percent-bucket
// check.
var ProgressMinInterval = 500 * time.Millisecond

// Bound on attempts for scratch-directory cleanup, and the delay between
// attempts.
var CleanupMaxRetries = 5
var CleanupRetryDelay = 500 * time.Millisecond
