package processor

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"realtime-edge-viewer/internal/imaging"
)

// ProcessRealtimeFrame runs the latency-optimized Canny path on one RGBA
// camera frame, writing the RGBA edge overlay into the caller-provided
// output buffer. Input and output are both width*height*4 bytes.
//
// The call reuses the processor's scratch matrices, so only one frame is in
// flight at a time. Parameter updates made concurrently through
// SetThresholds or SetBlurKernel take effect on the next frame.
func (p *Processor) ProcessRealtimeFrame(input, output []byte, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidInput, width, height)
	}
	size := width * height * imaging.ChannelsRGBA
	if len(input) != size {
		return fmt.Errorf("%w: input is %d bytes, expected %d", ErrInvalidInput, len(input), size)
	}
	if len(output) != size {
		return fmt.Errorf("%w: output is %d bytes, expected %d", ErrInvalidInput, len(output), size)
	}

	params := p.Params()

	p.processingMu.Lock()
	defer p.processingMu.Unlock()
	if p.closed {
		return fmt.Errorf("%w: processor is closed", ErrProcessingFailure)
	}

	src, err := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC4, input)
	if err != nil {
		return fmt.Errorf("%w: wrap input: %v", ErrProcessingFailure, err)
	}
	defer src.Close()

	if err := gocv.CvtColor(src, &p.scratchGray, gocv.ColorRGBAToGray); err != nil {
		return fmt.Errorf("%w: rgba to gray: %v", ErrProcessingFailure, err)
	}
	k := image.Pt(params.KernelSize, params.KernelSize)
	if err := gocv.GaussianBlur(p.scratchGray, &p.scratchBlur, k, cannyBlurSigma, cannyBlurSigma, gocv.BorderDefault); err != nil {
		return fmt.Errorf("%w: gaussian blur: %v", ErrProcessingFailure, err)
	}
	if err := gocv.Canny(p.scratchBlur, &p.scratchEdges, params.LowThreshold, params.HighThreshold); err != nil {
		return fmt.Errorf("%w: canny: %v", ErrProcessingFailure, err)
	}

	if err := p.writeDisplayBuffer(output, width, height); err != nil {
		return err
	}

	p.tracker.Record()
	return nil
}

// writeDisplayBuffer expands the scratch edge map straight into the
// caller's RGBA buffer. A contiguous Mat is read through its backing
// slice; otherwise the rows are copied out first.
func (p *Processor) writeDisplayBuffer(output []byte, width, height int) error {
	if p.scratchEdges.Rows() != height || p.scratchEdges.Cols() != width {
		return fmt.Errorf("%w: edge map is %dx%d, expected %dx%d",
			ErrProcessingFailure, p.scratchEdges.Cols(), p.scratchEdges.Rows(), width, height)
	}

	if p.scratchEdges.IsContinuous() {
		gray, err := p.scratchEdges.DataPtrUint8()
		if err != nil {
			return fmt.Errorf("%w: edge map data: %v", ErrProcessingFailure, err)
		}
		expandGrayToRGBA(gray, output)
		return nil
	}
	expandGrayToRGBA(p.scratchEdges.ToBytes(), output)
	return nil
}
