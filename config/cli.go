package config

import (
	"flag"
	"time"
)

// Cli holds the flag/env-derived settings for cmd/slidedeck. Fields mirror
// the package-level var defaults in config.go; SLIDEDECK_-prefixed env vars
// override the defaults, and explicit flags override the env vars, per ff's
// precedence.
type Cli struct {
	SourceVideo         string
	OutputDir           string
	ScratchDir          string
	PathFFmpeg          string
	PathFFprobe         string
	LightweightWidth    int
	LightweightFPS      int
	DiffThreshold       float64
	MinSceneDuration    time.Duration
	SampleInterval      time.Duration
	SimilarityThreshold float64
	CaptureJPEGQuality  int
	EnableTranscription bool
	DumpDebugImages     bool
}

// RegisterFlags wires cli onto fs using the package defaults declared in
// config.go, in the same shape as the teacher's cmd entrypoint: each field
// gets one fs.*Var call keyed by a flag name that ff.WithEnvVarPrefix (in
// cmd/slidedeck) also reads from a SLIDEDECK_ env var.
func RegisterFlags(fs *flag.FlagSet, cli *Cli) {
	fs.StringVar(&cli.SourceVideo, "source", "", "path to the source lecture video")
	fs.StringVar(&cli.OutputDir, "output-dir", OutputDir, "root directory for completed job output")
	fs.StringVar(&cli.ScratchDir, "scratch-dir", ScratchDir, "root directory for per-job scratch space")
	fs.StringVar(&cli.PathFFmpeg, "ffmpeg", PathFFmpeg, "path to the ffmpeg binary")
	fs.StringVar(&cli.PathFFprobe, "ffprobe", PathFFprobe, "path to the ffprobe binary")
	fs.IntVar(&cli.LightweightWidth, "lightweight-width", LightweightWidth, "pixel width of the lightweight analysis transcode")
	fs.IntVar(&cli.LightweightFPS, "lightweight-fps", LightweightFPS, "frame rate of the lightweight analysis transcode")
	fs.Float64Var(&cli.DiffThreshold, "diff-threshold", FunnelDiffThreshold, "mean absolute luma difference that marks a scene cut")
	fs.DurationVar(&cli.MinSceneDuration, "min-scene-duration", FunnelMinSceneDuration, "minimum duration a scene must span before its best shot is kept")
	fs.DurationVar(&cli.SampleInterval, "sample-interval", FunnelSampleInterval, "wall-clock spacing between L1/L2 analysis samples")
	fs.Float64Var(&cli.SimilarityThreshold, "similarity-threshold", FunnelSimilarityThreshold, "text similarity ratio above which two slides are treated as duplicates")
	fs.IntVar(&cli.CaptureJPEGQuality, "capture-jpeg-quality", CaptureJPEGQuality, "ffmpeg -q:v value for high-resolution JPEG stills (lower is better, 2 is best)")
	fs.BoolVar(&cli.EnableTranscription, "enable-transcription", false, "run the transcription seam after slide extraction")
	fs.BoolVar(&cli.DumpDebugImages, "dump-debug-images", false, "write intermediate ROI-locator images to debug_images/")
}

// ApplyTo pushes parsed CLI values back onto the package-level vars that the
// rest of the module reads, so callers that construct stage implementations
// straight from the config package (rather than threading Cli through) see
// the overridden values.
func (c Cli) ApplyTo() {
	ScratchDir = c.ScratchDir
	OutputDir = c.OutputDir
	PathFFmpeg = c.PathFFmpeg
	PathFFprobe = c.PathFFprobe
	LightweightWidth = c.LightweightWidth
	LightweightFPS = c.LightweightFPS
	FunnelDiffThreshold = c.DiffThreshold
	FunnelMinSceneDuration = c.MinSceneDuration
	FunnelSampleInterval = c.SampleInterval
	FunnelSimilarityThreshold = c.SimilarityThreshold
	CaptureJPEGQuality = c.CaptureJPEGQuality
}
