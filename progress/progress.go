package progress

import (
	"errors"
	"fmt"
	"math"
	"runtime/debug"
	"sort"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/lecturevod/slidedeck/log"
)

// Clock is swapped for a mock in tests so the interval-based throttle is
// deterministic.
var Clock = clock.New()

var progressReportBuckets = []float64{0, 0.25, 0.5, 0.75, 1}

const minProgressReportInterval = 10 * time.Second

// Callback is the (percent int, message string) contract every stage
// reports through. percent is always in [0,100] and already scaled into the
// stage's slice of the overall job (see NewReporter).
type Callback func(percent int, message string)

// Reporter throttles a Callback so a stage's internal progress polling (once
// per processed frame, once per timestamp) doesn't translate into a
// callback invocation per poll. A report goes out when the progress crosses
// one of progressReportBuckets or minProgressReportInterval has elapsed
// since the last report, whichever comes first.
type Reporter struct {
	mu       sync.Mutex
	jobID    string
	message  string
	callback Callback

	getProgress          func() float64
	scaleStart, scaleEnd float64

	lastReport   time.Time
	lastProgress float64
}

// NewReporter builds a Reporter that scales its internal [0,1] progress
// into [scaleStart,scaleEnd] percent before invoking cb, matching the
// [0,85]/[85,100] stage partition.
func NewReporter(jobID string, scaleStart, scaleEnd int, cb Callback) *Reporter {
	return &Reporter{
		jobID:        jobID,
		callback:     cb,
		scaleStart:   float64(scaleStart) / 100,
		scaleEnd:     float64(scaleEnd) / 100,
		lastProgress: -1,
	}
}

// Track sets the progress function polled on each Poll call and the message
// reported alongside it.
func (p *Reporter) Track(message string, getProgress func() float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.message = message
	p.getProgress = getProgress
}

// TrackCount is a convenience for the common "N of size done" case (frames
// processed, timestamps captured).
func (p *Reporter) TrackCount(message string, getCount func() uint64, size uint64) {
	p.Track(message, func() float64 {
		if size == 0 {
			return 1
		}
		return float64(getCount()) / float64(size)
	})
}

// Poll should be called periodically (e.g. once per processed frame or on a
// ticker) from the stage's own loop; it decides internally whether the
// throttle allows a callback this time.
func (p *Reporter) Poll() {
	defer func() {
		if r := recover(); r != nil {
			log.LogError(p.jobID, fmt.Sprintf("panic reporting progress: %v\n%s", r, string(debug.Stack())), errors.New("panic reporting progress"))
		}
	}()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.getProgress == nil {
		return
	}

	progress := p.calcProgress()
	if progress <= p.lastProgress {
		log.LogError(p.jobID, fmt.Sprintf("non monotonic progress received: last=%v new=%v", p.lastProgress, progress), errors.New("non monotonic progress"))
		return
	}
	if !shouldReportProgress(progress, p.lastProgress, p.lastReport) {
		return
	}

	p.callback(int(math.Round(progress*100)), p.message)
	p.lastReport, p.lastProgress = Clock.Now(), progress
}

// Set immediately reports a fixed percent within the stage's scale, bypassing
// the getProgress polling path; used for discrete stage-boundary events
// (stage started / stage complete).
func (p *Reporter) Set(message string, fraction float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.message = message
	progress := p.scaleStart + fraction*(p.scaleEnd-p.scaleStart)
	p.callback(int(math.Round(progress*100)), message)
	p.lastReport, p.lastProgress = Clock.Now(), progress
}

func shouldReportProgress(new, old float64, lastReportedAt time.Time) bool {
	return progressBucket(new) != progressBucket(old) ||
		Clock.Since(lastReportedAt) >= minProgressReportInterval
}

func (p *Reporter) calcProgress() float64 {
	val := p.getProgress()
	val = math.Max(val, 0)
	val = math.Min(val, 0.99)
	val = p.scaleStart + val*(p.scaleEnd-p.scaleStart)
	val = math.Round(val*1000) / 1000
	return val
}

func progressBucket(progress float64) int {
	return sort.SearchFloat64s(progressReportBuckets, progress)
}
