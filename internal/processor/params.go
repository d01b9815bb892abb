package processor

import "fmt"

// Algorithm selects the edge-detection variant.
type Algorithm int

const (
	// AlgorithmCanny produces a binary-ish edge map via non-maximum
	// suppression and hysteresis thresholding.
	AlgorithmCanny Algorithm = iota

	// AlgorithmSobel produces a gradient-magnitude map truncated to
	// 8 bits.
	AlgorithmSobel
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmCanny:
		return "canny"
	case AlgorithmSobel:
		return "sobel"
	default:
		return fmt.Sprintf("unknown(%d)", int(a))
	}
}

// Params holds the tunable edge-detection parameters.
//
// For Canny, KernelSize is the Gaussian blur aperture. For Sobel it is the
// derivative aperture and must be 1, 3, 5, or 7.
type Params struct {
	LowThreshold  float64
	HighThreshold float64
	KernelSize    int
}

// DefaultParams returns the interactive-quality defaults.
func DefaultParams() Params {
	return Params{LowThreshold: 100, HighThreshold: 200, KernelSize: 3}
}

// RealtimeParams returns the latency-optimized parameters used by the
// per-camera-frame path.
func RealtimeParams() Params {
	return Params{LowThreshold: 50, HighThreshold: 150, KernelSize: 3}
}

// validate checks the parameters for the given algorithm. Threshold
// ordering is deliberately not checked: high < low yields degenerate but
// well-defined output and is left to the caller.
func (p Params) validate(algorithm Algorithm) error {
	if p.KernelSize < 1 || p.KernelSize%2 == 0 {
		return fmt.Errorf("%w: kernel size must be odd and >= 1, got %d", ErrInvalidParameter, p.KernelSize)
	}
	if algorithm == AlgorithmSobel && p.KernelSize > 7 {
		return fmt.Errorf("%w: sobel kernel size must be 1, 3, 5 or 7, got %d", ErrInvalidParameter, p.KernelSize)
	}
	if p.LowThreshold < 0 || p.HighThreshold < 0 {
		return fmt.Errorf("%w: thresholds must be non-negative, got %.1f/%.1f", ErrInvalidParameter, p.LowThreshold, p.HighThreshold)
	}
	return nil
}
