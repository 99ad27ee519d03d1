package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure the way §7 does: environment issues
// (missing/broken ffmpeg, no GPU driver, disk full), input issues (corrupt
// or unsupported source video), transient issues (ffprobe hiccup, OCR engine
// not warmed up yet), logic issues (a stage invariant was violated) and fatal
// issues (anything that should abort the whole job immediately).
type Kind int

const (
	KindEnvironment Kind = iota
	KindInput
	KindTransient
	KindLogic
	KindFatal
)

func (k Kind) String() string {
	switch k {
	case KindEnvironment:
		return "environment"
	case KindInput:
		return "input"
	case KindTransient:
		return "transient"
	case KindLogic:
		return "logic"
	case KindFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// PipelineError is the struct every stage returns on failure: a short
// user-visible message, the Kind used to decide retry/skip semantics, and
// the wrapped cause for logging.
type PipelineError struct {
	Msg  string
	Kind Kind
	Err  error
}

func (e PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Msg, e.Err)
	}
	return e.Msg
}

func (e PipelineError) Unwrap() error {
	return e.Err
}

func New(kind Kind, msg string, cause error) error {
	return PipelineError{Msg: msg, Kind: kind, Err: cause}
}

// KindOf extracts the Kind of a pipeline error, defaulting to KindFatal for
// errors that were never classified (programmer error, not a recognized
// pipeline stage failure).
func KindOf(err error) Kind {
	var pe PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindFatal
}

// UnretriableError marks an error as terminal for the stage that produced
// it: the ROI-locator's "no slide region found" and the transcoder's
// software-encode failure are both wrapped with this, while a single failed
// per-timestamp capture is left unwrapped and Capturer.Capture skips just
// that timestamp. The pipeline never retries a stage and does not itself
// consult the mark.
type UnretriableError struct{ error }

func Unretriable(err error) error {
	return UnretriableError{err}
}

func (e UnretriableError) Unwrap() error {
	return e.error
}

// IsUnretriable reports whether err (or anything it wraps) was marked
// terminal via Unretriable.
func IsUnretriable(err error) bool {
	return errors.As(err, &UnretriableError{})
}

var (
	// ErrNoSlideRegion is returned by the ROI locator when none of its
	// sampled frames contain a quadrilateral covering enough of the frame
	// to be plausible as a projector screen or slide.
	ErrNoSlideRegion = errors.New("unable to locate slide region")
	// ErrEncodeUnavailable is returned when both the hardware and software
	// transcode attempts fail.
	ErrEncodeUnavailable = errors.New("video encoding unavailable")
	// ErrNoSlideContent is returned when the funnel produces zero best
	// shots worth keeping (e.g. the source has no stable scenes at all).
	ErrNoSlideContent = errors.New("no recognizable slide content")
	// ErrUnsupportedContainer is returned when the source video's
	// extension is not in config.AllowedExtensions.
	ErrUnsupportedContainer = errors.New("unsupported video container")
)
