// Package preview serves processed frames as an MJPEG stream over HTTP,
// so the pipeline output can be watched from a browser while the GPU
// presenter runs headless.
package preview

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/hybridgroup/mjpeg"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

// Server publishes frames to connected MJPEG clients.
type Server struct {
	logger *logrus.Logger
	stream *mjpeg.Stream
	server *http.Server
}

// NewServer builds the preview server on the given port. Nothing listens
// until Start.
func NewServer(logger *logrus.Logger, port int) *Server {
	stream := mjpeg.NewStream()

	router := mux.NewRouter()
	router.HandleFunc("/", stream.ServeHTTP)
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
	})

	return &Server{
		logger: logger,
		stream: stream,
		server: &http.Server{
			Addr:    fmt.Sprintf("0.0.0.0:%d", port),
			Handler: c.Handler(router),
		},
	}
}

// Start serves the stream in a separate goroutine.
func (s *Server) Start() {
	s.logger.WithField("addr", s.server.Addr).Info("starting MJPEG preview")
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.WithError(err).Error("preview server stopped")
		}
	}()
}

// Publish encodes the frame as JPEG and pushes it to connected clients.
// Encoding failures are logged and the frame is dropped.
func (s *Server) Publish(frame gocv.Mat) {
	buf, err := gocv.IMEncode(".jpg", frame)
	if err != nil {
		s.logger.WithError(err).Error("failed to encode preview frame")
		return
	}
	defer buf.Close()
	s.stream.UpdateJPEG(buf.GetBytes())
}

// Stop shuts the HTTP server down, waiting for in-flight requests up to
// the context deadline.
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown preview server")
	}
	return nil
}
