// Package processor turns camera frames into edge maps.
package processor

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"realtime-edge-viewer/internal/stats"
)

// cannyBlurSigma is the Gaussian sigma used ahead of Canny detection.
const cannyBlurSigma = 1.4

// Processor turns raw camera pixel buffers into edge-map display buffers.
//
// DetectEdges and ExpandToDisplayFormat are stateless per call.
// ProcessRealtimeFrame reuses scratch matrices across calls under a
// processing mutex, so it may be invoked from one goroutine at a time;
// parameter reads and updates are guarded separately and may come from
// any goroutine.
type Processor struct {
	logger  *logrus.Logger
	tracker *stats.Tracker

	mu     sync.RWMutex
	params Params

	// Scratch matrices for the hot path, guarded by processingMu.
	processingMu sync.Mutex
	scratchGray  gocv.Mat
	scratchBlur  gocv.Mat
	scratchEdges gocv.Mat
	closed       bool
}

// New creates a processor configured with the latency-optimized real-time
// parameters. The tracker is owned by the caller and shared with whatever
// reads diagnostics.
func New(logger *logrus.Logger, tracker *stats.Tracker) *Processor {
	return &Processor{
		logger:       logger,
		tracker:      tracker,
		params:       RealtimeParams(),
		scratchGray:  gocv.NewMat(),
		scratchBlur:  gocv.NewMat(),
		scratchEdges: gocv.NewMat(),
	}
}

// Close releases the scratch matrices. The processor must not be used
// afterwards.
func (p *Processor) Close() {
	p.processingMu.Lock()
	defer p.processingMu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.scratchGray.Close()
	p.scratchBlur.Close()
	p.scratchEdges.Close()
}

// SetThresholds updates the hysteresis thresholds used by the real-time
// path. Negative values are rejected and the current configuration is left
// untouched.
func (p *Processor) SetThresholds(low, high float64) error {
	if low < 0 || high < 0 {
		return fmt.Errorf("%w: thresholds must be non-negative, got %.1f/%.1f", ErrInvalidParameter, low, high)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.params.LowThreshold = low
	p.params.HighThreshold = high
	if high < low {
		// Degenerate but permitted; the output quality is the
		// caller's problem, not an error.
		p.logger.WithFields(logrus.Fields{
			"low":  low,
			"high": high,
		}).Warn("high threshold below low threshold, expect degenerate edges")
	}
	return nil
}

// SetBlurKernel updates the Gaussian blur aperture used by the real-time
// path. The kernel must be odd and >= 1.
func (p *Processor) SetBlurKernel(size int) error {
	if size < 1 || size%2 == 0 {
		return fmt.Errorf("%w: kernel size must be odd and >= 1, got %d", ErrInvalidParameter, size)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.params.KernelSize = size
	return nil
}

// Params returns a copy of the current real-time parameters.
func (p *Processor) Params() Params {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.params
}

// Stats returns a snapshot of the diagnostic counters together with the
// current threshold configuration.
func (p *Processor) Stats() stats.Snapshot {
	params := p.Params()
	return stats.Snapshot{
		FramesProcessed: p.tracker.Frames(),
		AverageFPS:      p.tracker.AverageFPS(),
		LowThreshold:    params.LowThreshold,
		HighThreshold:   params.HighThreshold,
	}
}

// ResetStats zeroes the frame counter and FPS figure. Threshold
// configuration is preserved.
func (p *Processor) ResetStats() {
	p.tracker.Reset()
}
