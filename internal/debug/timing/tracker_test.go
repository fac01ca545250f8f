package timing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fakeClock(step time.Duration) func() time.Time {
	current := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now := current
		current = current.Add(step)
		return now
	}
}

func TestTrackerRecordsDurations(t *testing.T) {
	tt := NewTracker()
	tt.now = fakeClock(10 * time.Millisecond)

	for i := 0; i < 3; i++ {
		ctx := tt.StartTiming("inference")
		assert.Equal(t, 10*time.Millisecond, tt.EndTiming(ctx))
	}

	assert.Len(t, tt.GetTimings("inference"), 3)
	assert.Equal(t, 10*time.Millisecond, tt.GetAverageTime("inference"))
	assert.Zero(t, tt.GetAverageTime("decode"))
}

func TestTrackerDisabled(t *testing.T) {
	tt := NewTracker()
	tt.SetEnabled(false)

	ctx := tt.StartTiming("inference")
	assert.Zero(t, tt.EndTiming(ctx))
	assert.Nil(t, tt.GetTimings("inference"))
}

func TestTrackerIgnoresForeignContext(t *testing.T) {
	tt := NewTracker()
	assert.Zero(t, tt.EndTiming(context.Background()))
}

func TestTrackerReport(t *testing.T) {
	tt := NewTracker()
	assert.Equal(t, "No operations recorded yet.", tt.Report())

	tt.now = fakeClock(2 * time.Millisecond)
	tt.EndTiming(tt.StartTiming("inference"))
	tt.EndTiming(tt.StartTiming("decode"))

	assert.Equal(t, "decode: 1 run(s), avg 2ms\ninference: 1 run(s), avg 2ms", tt.Report())
}

func TestTrackerReportDisabled(t *testing.T) {
	tt := NewTracker()
	tt.SetEnabled(false)
	tt.EndTiming(tt.StartTiming("inference"))

	assert.Equal(t, DisabledReport, tt.Report())
}

func TestTrackerReset(t *testing.T) {
	tt := NewTracker()
	tt.EndTiming(tt.StartTiming("a"))
	tt.EndTiming(tt.StartTiming("b"))

	tt.Reset("a")
	assert.Nil(t, tt.GetTimings("a"))
	assert.Len(t, tt.GetTimings("b"), 1)

	tt.Reset("")
	assert.Nil(t, tt.GetTimings("b"))
}
