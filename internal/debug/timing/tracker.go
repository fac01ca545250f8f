package timing

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

type timingKey struct{}

type timingInfo struct {
	operation string
	startTime time.Time
}

// Tracker accumulates durations per named operation.
type Tracker struct {
	timings map[string][]time.Duration
	mu      sync.RWMutex
	enabled bool
	now     func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{
		timings: make(map[string][]time.Duration),
		enabled: true,
		now:     time.Now,
	}
}

func (tt *Tracker) StartTiming(operation string) context.Context {
	if !tt.isEnabled() {
		return context.Background()
	}

	return context.WithValue(context.Background(), timingKey{}, timingInfo{
		operation: operation,
		startTime: tt.now(),
	})
}

// EndTiming records the elapsed time for the operation started with ctx
// and returns it. Contexts not produced by StartTiming are ignored.
func (tt *Tracker) EndTiming(ctx context.Context) time.Duration {
	info, ok := ctx.Value(timingKey{}).(timingInfo)
	if !ok {
		return 0
	}

	duration := tt.now().Sub(info.startTime)

	tt.mu.Lock()
	tt.timings[info.operation] = append(tt.timings[info.operation], duration)
	tt.mu.Unlock()

	return duration
}

func (tt *Tracker) GetTimings(operation string) []time.Duration {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	timings := tt.timings[operation]
	if timings == nil {
		return nil
	}

	result := make([]time.Duration, len(timings))
	copy(result, timings)
	return result
}

func (tt *Tracker) GetAverageTime(operation string) time.Duration {
	timings := tt.GetTimings(operation)
	if len(timings) == 0 {
		return 0
	}

	var total time.Duration
	for _, duration := range timings {
		total += duration
	}

	return total / time.Duration(len(timings))
}

// DisabledReport is what Report returns when nothing is being recorded.
const DisabledReport = "Timing is disabled. Start with --debug to record timings."

// Report renders count and average per operation, sorted by name.
func (tt *Tracker) Report() string {
	tt.mu.RLock()
	enabled := tt.enabled
	operations := make([]string, 0, len(tt.timings))
	for operation := range tt.timings {
		operations = append(operations, operation)
	}
	tt.mu.RUnlock()

	if len(operations) == 0 {
		if !enabled {
			return DisabledReport
		}
		return "No operations recorded yet."
	}

	sort.Strings(operations)

	var b strings.Builder
	for _, operation := range operations {
		fmt.Fprintf(&b, "%s: %d run(s), avg %s\n",
			operation,
			len(tt.GetTimings(operation)),
			tt.GetAverageTime(operation).Round(time.Microsecond))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (tt *Tracker) SetEnabled(enabled bool) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.enabled = enabled
}

func (tt *Tracker) isEnabled() bool {
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	return tt.enabled
}

func (tt *Tracker) Reset(operation string) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	if operation == "" {
		tt.timings = make(map[string][]time.Duration)
	} else {
		delete(tt.timings, operation)
	}
}
