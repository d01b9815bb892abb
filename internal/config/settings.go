// Package config loads the application settings file.
package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Settings is the top-level configuration for the capture and
// presentation pipeline.
type Settings struct {
	Source     string             `json:"source"`
	Camera     *CameraSettings    `json:"camera_settings"`
	Video      *VideoSettings     `json:"video_settings"`
	Processing ProcessingSettings `json:"processing_settings"`
	Preview    PreviewSettings    `json:"preview_settings"`
	Renderer   RendererSettings   `json:"renderer_settings"`
}

// CameraSettings selects and shapes a webcam capture device.
type CameraSettings struct {
	DeviceID int `json:"device_id"`
	Width    int `json:"width"`
	Height   int `json:"height"`
}

// VideoSettings points at a video file or stream URL.
type VideoSettings struct {
	Source string `json:"source"`
}

// ProcessingSettings tunes the edge detector.
type ProcessingSettings struct {
	LowThreshold  float64 `json:"low_threshold"`
	HighThreshold float64 `json:"high_threshold"`
	BlurKernel    int     `json:"blur_kernel"`
}

// PreviewSettings controls the MJPEG preview stream.
type PreviewSettings struct {
	Enable bool `json:"enable"`
	Port   int  `json:"port"`
}

// RendererSettings sizes the GPU presentation surface.
type RendererSettings struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Load reads and validates a settings file, filling defaults for fields
// left at zero.
func Load(fileName string) (*Settings, error) {
	content, err := os.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "read settings file")
	}

	settings := Settings{}
	if err := json.Unmarshal(content, &settings); err != nil {
		return nil, errors.Wrap(err, "parse settings file")
	}

	if err := settings.validate(); err != nil {
		return nil, err
	}
	settings.applyDefaults()
	return &settings, nil
}

func (s *Settings) validate() error {
	switch s.Source {
	case "webcam":
		if s.Camera == nil {
			return errors.New("source is webcam but camera_settings is missing")
		}
	case "video":
		if s.Video == nil || s.Video.Source == "" {
			return errors.New("source is video but video_settings.source is missing")
		}
	case "":
		return errors.New("source setting is empty")
	default:
		return errors.Errorf("unknown source %q, want webcam or video", s.Source)
	}

	p := s.Processing
	if p.LowThreshold < 0 || p.HighThreshold < 0 {
		return errors.New("processing thresholds must be non-negative")
	}
	if p.BlurKernel != 0 && (p.BlurKernel < 1 || p.BlurKernel%2 == 0) {
		return errors.Errorf("blur kernel %d must be a positive odd number", p.BlurKernel)
	}
	if s.Preview.Enable && (s.Preview.Port <= 0 || s.Preview.Port > 65535) {
		return errors.Errorf("preview port %d out of range", s.Preview.Port)
	}
	return nil
}

func (s *Settings) applyDefaults() {
	if s.Processing.LowThreshold == 0 && s.Processing.HighThreshold == 0 {
		s.Processing.LowThreshold = 50
		s.Processing.HighThreshold = 150
	}
	if s.Processing.BlurKernel == 0 {
		s.Processing.BlurKernel = 3
	}
	if s.Renderer.Width == 0 {
		s.Renderer.Width = 1280
	}
	if s.Renderer.Height == 0 {
		s.Renderer.Height = 720
	}
}
