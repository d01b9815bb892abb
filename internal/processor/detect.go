package processor

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"realtime-edge-viewer/internal/imaging"
)

// DetectEdges runs the selected edge-detection algorithm on the input and
// returns a single-channel edge map of the same dimensions. The input may
// be RGBA, BGR, or already grayscale.
//
// The call is all-or-nothing: on any error the returned buffer is empty and
// the input is untouched.
func (p *Processor) DetectEdges(input imaging.PixelBuffer, algorithm Algorithm, params Params) (imaging.PixelBuffer, error) {
	if err := input.Validate(); err != nil {
		return imaging.PixelBuffer{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := params.validate(algorithm); err != nil {
		return imaging.PixelBuffer{}, err
	}

	src, err := input.ToMat()
	if err != nil {
		return imaging.PixelBuffer{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	defer src.Close()

	gray, err := toGrayscale(src, input.Channels)
	if err != nil {
		return imaging.PixelBuffer{}, err
	}
	defer gray.Close()

	edges := gocv.NewMat()
	defer edges.Close()

	switch algorithm {
	case AlgorithmCanny:
		err = cannyEdges(gray, &edges, params)
	case AlgorithmSobel:
		err = sobelEdges(gray, &edges, params)
	default:
		return imaging.PixelBuffer{}, fmt.Errorf("%w: unknown algorithm %d", ErrInvalidParameter, int(algorithm))
	}
	if err != nil {
		return imaging.PixelBuffer{}, err
	}

	out, err := imaging.FromMat(edges)
	if err != nil {
		return imaging.PixelBuffer{}, fmt.Errorf("%w: %v", ErrProcessingFailure, err)
	}
	return out, nil
}

// toGrayscale converts src to a single-channel Mat. A grayscale input is
// cloned so the caller's Mat stays untouched.
func toGrayscale(src gocv.Mat, channels int) (gocv.Mat, error) {
	switch channels {
	case imaging.ChannelsGray:
		return src.Clone(), nil
	case imaging.ChannelsRGBA:
		gray := gocv.NewMat()
		if err := gocv.CvtColor(src, &gray, gocv.ColorRGBAToGray); err != nil {
			gray.Close()
			return gocv.Mat{}, fmt.Errorf("%w: rgba to gray: %v", ErrProcessingFailure, err)
		}
		return gray, nil
	case imaging.ChannelsBGR:
		gray := gocv.NewMat()
		if err := gocv.CvtColor(src, &gray, gocv.ColorBGRToGray); err != nil {
			gray.Close()
			return gocv.Mat{}, fmt.Errorf("%w: bgr to gray: %v", ErrProcessingFailure, err)
		}
		return gray, nil
	default:
		return gocv.Mat{}, fmt.Errorf("%w: unsupported channel count %d", ErrInvalidInput, channels)
	}
}

// cannyEdges blurs with the configured aperture and a sigma of 1.4, then
// applies Canny hysteresis detection.
func cannyEdges(gray gocv.Mat, edges *gocv.Mat, params Params) error {
	blurred := gocv.NewMat()
	defer blurred.Close()

	k := image.Pt(params.KernelSize, params.KernelSize)
	if err := gocv.GaussianBlur(gray, &blurred, k, cannyBlurSigma, cannyBlurSigma, gocv.BorderDefault); err != nil {
		return fmt.Errorf("%w: gaussian blur: %v", ErrProcessingFailure, err)
	}
	if err := gocv.Canny(blurred, edges, params.LowThreshold, params.HighThreshold); err != nil {
		return fmt.Errorf("%w: canny: %v", ErrProcessingFailure, err)
	}
	return nil
}

// sobelEdges computes the gradient magnitude in double precision and folds
// it into 8 bits. The fold is a plain integer truncation, so magnitudes
// above 255 wrap rather than saturate. That matches the long-standing
// behavior downstream consumers tune against; do not "fix" it to a clamp.
func sobelEdges(gray gocv.Mat, edges *gocv.Mat, params Params) error {
	blurred := gocv.NewMat()
	defer blurred.Close()
	if err := gocv.GaussianBlur(gray, &blurred, image.Pt(3, 3), 0, 0, gocv.BorderDefault); err != nil {
		return fmt.Errorf("%w: gaussian blur: %v", ErrProcessingFailure, err)
	}

	gradX := gocv.NewMat()
	defer gradX.Close()
	gradY := gocv.NewMat()
	defer gradY.Close()
	if err := gocv.Sobel(blurred, &gradX, gocv.MatTypeCV64F, 1, 0, params.KernelSize, 1, 0, gocv.BorderDefault); err != nil {
		return fmt.Errorf("%w: sobel x: %v", ErrProcessingFailure, err)
	}
	if err := gocv.Sobel(blurred, &gradY, gocv.MatTypeCV64F, 0, 1, params.KernelSize, 1, 0, gocv.BorderDefault); err != nil {
		return fmt.Errorf("%w: sobel y: %v", ErrProcessingFailure, err)
	}

	magnitude := gocv.NewMat()
	defer magnitude.Close()
	if err := gocv.Magnitude(gradX, gradY, &magnitude); err != nil {
		return fmt.Errorf("%w: magnitude: %v", ErrProcessingFailure, err)
	}

	rows, cols := magnitude.Rows(), magnitude.Cols()
	out := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8UC1)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v := magnitude.GetDoubleAt(y, x)
			out.SetUCharAt(y, x, uint8(int(v)))
		}
	}

	old := *edges
	*edges = out
	old.Close()
	return nil
}
