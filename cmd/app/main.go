package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"realtime-edge-viewer/internal/config"
	"realtime-edge-viewer/internal/preview"
	"realtime-edge-viewer/internal/processor"
	"realtime-edge-viewer/internal/render"
	"realtime-edge-viewer/internal/stats"
)

const (
	AppName    = "Realtime Edge Viewer"
	AppVersion = "1.0.0"

	// statsInterval is how many frames pass between throughput log lines.
	statsInterval = 120
)

func main() {
	configPath := flag.String("config", "settings.json", "Path to settings file")
	debugMode := flag.Bool("debug", false, "Enable debug mode with verbose logging")
	flag.Parse()

	logger := initLogger(*debugMode)
	logger.WithFields(logrus.Fields{
		"version":    AppVersion,
		"debug_mode": *debugMode,
	}).Info("Starting " + AppName)

	if err := run(logger, *configPath); err != nil {
		logger.WithError(err).Fatal("Application failed")
	}
	logger.Info("Application shutting down gracefully")
}

func run(logger *logrus.Logger, configPath string) error {
	settings, err := config.Load(configPath)
	if err != nil {
		return errors.Wrap(err, "load settings")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	capture, err := openCapture(settings)
	if err != nil {
		return err
	}
	defer capture.Close()

	proc := processor.New(logger, stats.NewTracker())
	defer proc.Close()
	if err := proc.SetThresholds(settings.Processing.LowThreshold, settings.Processing.HighThreshold); err != nil {
		return errors.Wrap(err, "apply thresholds")
	}
	if err := proc.SetBlurKernel(settings.Processing.BlurKernel); err != nil {
		return errors.Wrap(err, "apply blur kernel")
	}

	gpu, err := render.OpenContext(logger)
	if err != nil {
		return errors.Wrap(err, "open GPU context")
	}
	defer gpu.Close()

	presenter := render.NewPresenter(logger, gpu.Device, gpu.Queue)
	defer presenter.Teardown()
	if err := presenter.InitializeContext(settings.Renderer.Width, settings.Renderer.Height); err != nil {
		return errors.Wrap(err, "initialize presentation")
	}
	if err := presenter.CompileAndLink(render.DefaultVertexShader(), render.DefaultFragmentShader()); err != nil {
		return errors.Wrap(err, "build quad pipeline")
	}

	var previewServer *preview.Server
	if settings.Preview.Enable {
		previewServer = preview.NewServer(logger, settings.Preview.Port)
		previewServer.Start()
		defer func() {
			if err := previewServer.Stop(context.Background()); err != nil {
				logger.WithError(err).Warn("preview server shutdown failed")
			}
		}()
	}

	return captureLoop(ctx, logger, settings, capture, proc, presenter, previewServer)
}

func openCapture(settings *config.Settings) (*gocv.VideoCapture, error) {
	if settings.Source == "webcam" {
		capture, err := gocv.VideoCaptureDevice(settings.Camera.DeviceID)
		if err != nil {
			return nil, errors.Wrapf(err, "open camera %d", settings.Camera.DeviceID)
		}
		if settings.Camera.Width > 0 {
			capture.Set(gocv.VideoCaptureFrameWidth, float64(settings.Camera.Width))
		}
		if settings.Camera.Height > 0 {
			capture.Set(gocv.VideoCaptureFrameHeight, float64(settings.Camera.Height))
		}
		return capture, nil
	}

	capture, err := gocv.OpenVideoCapture(settings.Video.Source)
	if err != nil {
		return nil, errors.Wrapf(err, "open video source %s", settings.Video.Source)
	}
	return capture, nil
}

// frameSource yields decoded frames. *gocv.VideoCapture satisfies it.
type frameSource interface {
	Read(m *gocv.Mat) bool
}

// frameProcessor is the per-frame transform surface of the processor.
type frameProcessor interface {
	ProcessRealtimeFrame(input, output []byte, width, height int) error
	Stats() stats.Snapshot
}

// framePresenter is the per-frame GPU surface of the presenter.
type framePresenter interface {
	AllocateTexture(width, height int) error
	UploadFrame(data []byte, width, height int)
	Draw() error
}

func captureLoop(ctx context.Context, logger *logrus.Logger, settings *config.Settings,
	source frameSource, proc frameProcessor, presenter framePresenter,
	previewServer *preview.Server) error {

	frame := gocv.NewMat()
	defer frame.Close()
	rgba := gocv.NewMat()
	defer rgba.Close()
	display := gocv.NewMat()
	defer display.Close()

	var output []byte
	texWidth, texHeight := 0, 0
	frameCount := 0

	for {
		select {
		case <-ctx.Done():
			logger.Info("Capture loop interrupted")
			return nil
		default:
		}

		if ok := source.Read(&frame); !ok {
			if settings.Source == "video" {
				logger.Info("Video source exhausted")
				return nil
			}
			logger.Warn("Camera returned no frame")
			continue
		}
		if frame.Empty() {
			continue
		}

		if err := gocv.CvtColor(frame, &rgba, gocv.ColorBGRToRGBA); err != nil {
			logger.WithError(err).Error("frame conversion failed, dropping frame")
			continue
		}

		width, height := rgba.Cols(), rgba.Rows()
		if width != texWidth || height != texHeight {
			if err := presenter.AllocateTexture(width, height); err != nil {
				return errors.Wrap(err, "allocate frame texture")
			}
			output = make([]byte, width*height*4)
			texWidth, texHeight = width, height
			logger.WithFields(logrus.Fields{
				"width":  width,
				"height": height,
			}).Info("Capture resolution established")
		}

		// A failure past this point is terminal for this frame only:
		// skip presenting it and keep the capture loop alive.
		input, err := rgba.DataPtrUint8()
		if err != nil {
			logger.WithError(err).Error("frame data access failed, dropping frame")
			continue
		}
		if err := proc.ProcessRealtimeFrame(input, output, width, height); err != nil {
			logger.WithError(err).Error("frame processing failed, dropping frame")
			continue
		}

		presenter.UploadFrame(output, width, height)
		if err := presenter.Draw(); err != nil {
			logger.WithError(err).Error("present failed, dropping frame")
			continue
		}

		if previewServer != nil {
			if err := publishPreview(previewServer, output, width, height, &display); err != nil {
				logger.WithError(err).Warn("preview frame dropped")
			}
		}

		frameCount++
		if frameCount%statsInterval == 0 {
			snapshot := proc.Stats()
			logger.WithFields(logrus.Fields{
				"frames": snapshot.FramesProcessed,
				"fps":    snapshot.AverageFPS,
			}).Info("Pipeline throughput")
		}
	}
}

// publishPreview converts the RGBA edge buffer to BGR for JPEG encoding
// and pushes it to the MJPEG stream.
func publishPreview(server *preview.Server, output []byte, width, height int, display *gocv.Mat) error {
	edges, err := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC4, output)
	if err != nil {
		return errors.Wrap(err, "wrap edge buffer")
	}
	defer edges.Close()

	if err := gocv.CvtColor(edges, display, gocv.ColorRGBAToBGR); err != nil {
		return errors.Wrap(err, "convert preview frame")
	}
	server.Publish(*display)
	return nil
}

// initLogger initializes the logger with appropriate level
func initLogger(debugMode bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
