package progress

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*clock.Mock, *uint64, *Reporter, func()) {
	realClock := Clock
	mock := clock.NewMock()
	Clock = mock

	var updateCount uint64
	reporter := NewReporter("job-1", 0, 100, func(percent int, message string) {
		updateCount++
	})

	var done uint64
	reporter.TrackCount("working", func() uint64 { return done }, 100)

	return mock, &done, reporter, func() { Clock = realClock }
}

func forward(mock *clock.Mock, d time.Duration) {
	time.Sleep(1 * time.Millisecond)
	mock.Add(d)
}

func TestProgressNotificationThrottling(t *testing.T) {
	mock, done, reporter, cleanup := setup(t)
	defer cleanup()

	var updateCount int
	reporter.callback = func(percent int, message string) { updateCount++ }

	*done = 1
	reporter.Poll()
	forward(mock, 1*time.Second)

	*done = 2
	reporter.Poll()
	forward(mock, 1*time.Second)

	require.Equal(t, 1, updateCount)
}

func TestProgressNotificationInterval(t *testing.T) {
	mock, done, reporter, cleanup := setup(t)
	defer cleanup()

	var updateCount int
	reporter.callback = func(percent int, message string) { updateCount++ }

	*done = 1
	reporter.Poll()
	forward(mock, 1*time.Second)

	*done = 2
	reporter.Poll()
	forward(mock, 11*time.Second)
	reporter.Poll()

	require.Equal(t, 2, updateCount)
}

func TestProgressBucketChange(t *testing.T) {
	mock, done, reporter, cleanup := setup(t)
	defer cleanup()

	var updateCount int
	reporter.callback = func(percent int, message string) { updateCount++ }

	*done = 1
	reporter.Poll()
	forward(mock, 1*time.Second)

	*done = 26
	reporter.Poll()
	forward(mock, 1*time.Second)

	require.Equal(t, 2, updateCount)
}

func TestSetReportsWithinScale(t *testing.T) {
	var got []int
	reporter := NewReporter("job-1", 85, 100, func(percent int, message string) {
		got = append(got, percent)
	})
	reporter.Set("starting transcription", 0)
	require.Equal(t, []int{85}, got)
}

func TestReporterScalesToStagePartition(t *testing.T) {
	var got int
	reporter := NewReporter("job-1", 0, 85, func(percent int, message string) { got = percent })
	reporter.Track("analyzing", func() float64 { return 0.5 })
	reporter.Poll()
	require.InDelta(t, 42, got, 1)
}
