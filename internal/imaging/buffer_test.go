package imaging

import (
	"bytes"
	"testing"

	"gocv.io/x/gocv"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		buf     PixelBuffer
		wantErr bool
	}{
		{
			name: "valid gray",
			buf:  PixelBuffer{Data: make([]byte, 12), Width: 4, Height: 3, Channels: ChannelsGray},
		},
		{
			name: "valid rgba",
			buf:  PixelBuffer{Data: make([]byte, 48), Width: 4, Height: 3, Channels: ChannelsRGBA},
		},
		{
			name:    "empty",
			buf:     PixelBuffer{},
			wantErr: true,
		},
		{
			name:    "size mismatch",
			buf:     PixelBuffer{Data: make([]byte, 10), Width: 4, Height: 3, Channels: ChannelsGray},
			wantErr: true,
		},
		{
			name:    "two channels",
			buf:     PixelBuffer{Data: make([]byte, 24), Width: 4, Height: 3, Channels: 2},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.buf.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestToMat_RoundTrip(t *testing.T) {
	data := []byte{10, 20, 30, 40, 50, 60}
	buf := PixelBuffer{Data: data, Width: 3, Height: 2, Channels: ChannelsGray}

	mat, err := buf.ToMat()
	if err != nil {
		t.Fatalf("ToMat: %v", err)
	}
	defer mat.Close()

	back, err := FromMat(mat)
	if err != nil {
		t.Fatalf("FromMat: %v", err)
	}
	if back.Width != 3 || back.Height != 2 || back.Channels != ChannelsGray {
		t.Errorf("round trip shape = %dx%dx%d", back.Width, back.Height, back.Channels)
	}
	if !bytes.Equal(back.Data, data) {
		t.Errorf("round trip data = %v, want %v", back.Data, data)
	}
}

// Error paths must not hand back a native Mat object the caller would
// have to Close.
func TestToMat_ErrorReturnsEmptyHandle(t *testing.T) {
	tests := []struct {
		name string
		buf  PixelBuffer
	}{
		{
			name: "size mismatch",
			buf:  PixelBuffer{Data: make([]byte, 5), Width: 4, Height: 3, Channels: ChannelsGray},
		},
		{
			name: "unsupported channels",
			buf:  PixelBuffer{Data: make([]byte, 24), Width: 4, Height: 3, Channels: 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mat, err := tt.buf.ToMat()
			if err == nil {
				t.Fatal("ToMat succeeded, want error")
			}
			if mat.Ptr() != nil {
				t.Error("ToMat returned a live Mat alongside the error")
			}
		})
	}
}

func TestFromMat_RejectsEmpty(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()

	if _, err := FromMat(empty); err == nil {
		t.Fatal("FromMat succeeded on an empty mat, want error")
	}
}
