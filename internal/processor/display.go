package processor

import (
	"fmt"

	"realtime-edge-viewer/internal/imaging"
)

// ExpandToDisplayFormat widens a single-channel edge map to RGBA by
// replicating the intensity into all four channels. Alpha carries the
// intensity too, so a zero pixel is fully transparent black and a 255
// pixel is opaque white.
func (p *Processor) ExpandToDisplayFormat(edges imaging.PixelBuffer) (imaging.PixelBuffer, error) {
	if err := edges.Validate(); err != nil {
		return imaging.PixelBuffer{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if edges.Channels != imaging.ChannelsGray {
		return imaging.PixelBuffer{}, fmt.Errorf("%w: expected single-channel edge map, got %d channels", ErrInvalidInput, edges.Channels)
	}

	out := imaging.PixelBuffer{
		Data:     make([]byte, edges.Width*edges.Height*imaging.ChannelsRGBA),
		Width:    edges.Width,
		Height:   edges.Height,
		Channels: imaging.ChannelsRGBA,
	}
	expandGrayToRGBA(edges.Data, out.Data)
	return out, nil
}

// expandGrayToRGBA replicates each intensity byte into R, G, B and A.
// dst must be exactly 4*len(src) bytes.
func expandGrayToRGBA(src, dst []byte) {
	for i, v := range src {
		j := i * 4
		dst[j] = v
		dst[j+1] = v
		dst[j+2] = v
		dst[j+3] = v
	}
}
