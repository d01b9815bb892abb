package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write settings file: %v", err)
	}
	return path
}

func TestLoad_WebcamWithDefaults(t *testing.T) {
	path := writeSettings(t, `{
		"source": "webcam",
		"camera_settings": {"device_id": 0, "width": 1280, "height": 720}
	}`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Source != "webcam" || s.Camera.Width != 1280 {
		t.Errorf("parsed settings = %+v", s)
	}
	if s.Processing.LowThreshold != 50 || s.Processing.HighThreshold != 150 {
		t.Errorf("default thresholds = %g/%g, want 50/150",
			s.Processing.LowThreshold, s.Processing.HighThreshold)
	}
	if s.Processing.BlurKernel != 3 {
		t.Errorf("default blur kernel = %d, want 3", s.Processing.BlurKernel)
	}
	if s.Renderer.Width != 1280 || s.Renderer.Height != 720 {
		t.Errorf("default renderer = %dx%d, want 1280x720", s.Renderer.Width, s.Renderer.Height)
	}
}

func TestLoad_VideoSource(t *testing.T) {
	path := writeSettings(t, `{
		"source": "video",
		"video_settings": {"source": "testdata/clip.mp4"},
		"processing_settings": {"low_threshold": 80, "high_threshold": 160, "blur_kernel": 5},
		"preview_settings": {"enable": true, "port": 8080}
	}`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Video.Source != "testdata/clip.mp4" {
		t.Errorf("video source = %q", s.Video.Source)
	}
	if s.Processing.LowThreshold != 80 || s.Processing.BlurKernel != 5 {
		t.Errorf("processing = %+v", s.Processing)
	}
	if !s.Preview.Enable || s.Preview.Port != 8080 {
		t.Errorf("preview = %+v", s.Preview)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "empty source",
			content: `{"camera_settings": {"device_id": 0}}`,
			wantErr: "source setting is empty",
		},
		{
			name:    "unknown source",
			content: `{"source": "screen"}`,
			wantErr: "unknown source",
		},
		{
			name:    "webcam without camera settings",
			content: `{"source": "webcam"}`,
			wantErr: "camera_settings is missing",
		},
		{
			name:    "video without source path",
			content: `{"source": "video", "video_settings": {}}`,
			wantErr: "video_settings.source is missing",
		},
		{
			name: "even blur kernel",
			content: `{"source": "webcam", "camera_settings": {},
				"processing_settings": {"blur_kernel": 4}}`,
			wantErr: "must be a positive odd number",
		},
		{
			name: "negative threshold",
			content: `{"source": "webcam", "camera_settings": {},
				"processing_settings": {"low_threshold": -1}}`,
			wantErr: "must be non-negative",
		},
		{
			name: "preview enabled without port",
			content: `{"source": "webcam", "camera_settings": {},
				"preview_settings": {"enable": true}}`,
			wantErr: "preview port",
		},
		{
			name:    "malformed json",
			content: `{"source": `,
			wantErr: "parse settings file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSettings(t, tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("Load succeeded on missing file, want error")
	}
}
