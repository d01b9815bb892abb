package preview

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

func newTestServer(t *testing.T, port int) *Server {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewServer(logger, port)
}

func TestNewServer_Addr(t *testing.T) {
	s := newTestServer(t, 8081)
	if got, want := s.server.Addr, "0.0.0.0:8081"; got != want {
		t.Errorf("addr = %q, want %q", got, want)
	}
}

func TestPublish_EncodesFrame(t *testing.T) {
	s := newTestServer(t, 8082)

	frame := gocv.NewMatWithSize(24, 32, gocv.MatTypeCV8UC3)
	defer frame.Close()

	// Must not panic or block with no clients connected.
	s.Publish(frame)
}

func TestStartAndStop(t *testing.T) {
	s := newTestServer(t, 0)

	s.Start()
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}
