// Package imaging holds pixel buffer types shared between the frame
// processor and the renderer.
package imaging

import (
	"fmt"

	"gocv.io/x/gocv"
)

// PixelBuffer is a tightly packed, row-major pixel array. Rows carry no
// stride padding: len(Data) must equal Width*Height*Channels.
//
// Buffers are caller-owned. Components never retain one past the call that
// consumes it.
type PixelBuffer struct {
	Data     []byte
	Width    int
	Height   int
	Channels int
}

// Supported channel layouts.
const (
	ChannelsGray = 1
	ChannelsBGR  = 3
	ChannelsRGBA = 4
)

// Empty reports whether the buffer holds no pixel data.
func (b PixelBuffer) Empty() bool {
	return len(b.Data) == 0 || b.Width <= 0 || b.Height <= 0
}

// Validate checks the size invariant and the channel layout.
func (b PixelBuffer) Validate() error {
	if b.Empty() {
		return fmt.Errorf("pixel buffer is empty")
	}
	switch b.Channels {
	case ChannelsGray, ChannelsBGR, ChannelsRGBA:
	default:
		return fmt.Errorf("unsupported channel count: %d", b.Channels)
	}
	want := b.Width * b.Height * b.Channels
	if len(b.Data) != want {
		return fmt.Errorf("buffer size mismatch: expected %d bytes, got %d", want, len(b.Data))
	}
	return nil
}

// ToMat copies the buffer into a gocv.Mat of the matching type. The caller
// owns the returned Mat and must Close it.
func (b PixelBuffer) ToMat() (gocv.Mat, error) {
	if err := b.Validate(); err != nil {
		return gocv.Mat{}, err
	}
	var matType gocv.MatType
	switch b.Channels {
	case ChannelsGray:
		matType = gocv.MatTypeCV8UC1
	case ChannelsBGR:
		matType = gocv.MatTypeCV8UC3
	case ChannelsRGBA:
		matType = gocv.MatTypeCV8UC4
	}
	mat, err := gocv.NewMatFromBytes(b.Height, b.Width, matType, b.Data)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("mat from bytes: %w", err)
	}
	return mat, nil
}

// FromMat copies a Mat into a new PixelBuffer.
func FromMat(mat gocv.Mat) (PixelBuffer, error) {
	if mat.Empty() {
		return PixelBuffer{}, fmt.Errorf("mat is empty")
	}
	return PixelBuffer{
		Data:     mat.ToBytes(),
		Width:    mat.Cols(),
		Height:   mat.Rows(),
		Channels: mat.Channels(),
	}, nil
}
