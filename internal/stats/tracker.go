// Package stats tracks processing statistics for the real-time pipeline.
package stats

import (
	"sync"
	"time"
)

// fpsWindow is the number of frames between FPS recomputations.
const fpsWindow = 30

// Snapshot is a point-in-time copy of the diagnostic counters.
type Snapshot struct {
	FramesProcessed int     `json:"frames_processed"`
	AverageFPS      float64 `json:"average_fps"`
	LowThreshold    float64 `json:"low_threshold"`
	HighThreshold   float64 `json:"high_threshold"`
}

// Tracker counts processed frames and maintains a rolling average FPS,
// recomputed every 30 frames as 30000 / elapsed_ms since the previous
// sample. It is an explicit instance owned by whoever wires the pipeline,
// so its lifecycle (init, reset, teardown) is visible and testable.
//
// All methods are safe for concurrent use; a capture goroutine can record
// frames while another goroutine reads snapshots.
type Tracker struct {
	mu          sync.Mutex
	frames      int
	averageFPS  float64
	windowStart time.Time

	now func() time.Time
}

// NewTracker creates a tracker with its FPS window anchored at now.
func NewTracker() *Tracker {
	t := &Tracker{now: time.Now}
	t.windowStart = t.now()
	return t
}

// Record counts one processed frame. Every 30th frame the average FPS is
// recomputed from the wall-clock time the window took.
func (t *Tracker) Record() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.frames++
	if t.frames%fpsWindow != 0 {
		return
	}
	end := t.now()
	elapsed := end.Sub(t.windowStart)
	if ms := float64(elapsed.Milliseconds()); ms > 0 {
		t.averageFPS = fpsWindow * 1000.0 / ms
	}
	t.windowStart = end
}

// Frames returns the number of frames recorded since creation or the last
// Reset.
func (t *Tracker) Frames() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frames
}

// AverageFPS returns the most recently computed rolling FPS figure. It is
// zero until the first full window has elapsed.
func (t *Tracker) AverageFPS() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.averageFPS
}

// Reset zeroes the frame count and FPS figure and re-anchors the window.
// Threshold configuration lives on the processor and is not touched here.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.frames = 0
	t.averageFPS = 0
	t.windowStart = t.now()
}
