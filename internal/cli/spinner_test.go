package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDraws(t *testing.T) {
	var buf syncBuffer
	s := newSpinnerTo(context.Background(), &buf, "Drawing plats...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.SetMessage("Encoding...")
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	out := buf.String()
	for _, want := range []string{"Drawing plats...", "Encoding..."} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}
	if !strings.HasSuffix(out, "\r") {
		t.Error("Stop() should clear the line")
	}
}

func TestSpinnerCancel(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancel", func() (context.Context, context.CancelFunc) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx, cancel
		}},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 20*time.Millisecond)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()

			var buf syncBuffer
			s := newSpinnerTo(ctx, &buf, "Waiting...")
			s.Start()
			time.Sleep(100 * time.Millisecond)
			if !s.Cancelled() {
				t.Error("Cancelled() = false after the context ended")
			}
			s.Stop()
		})
	}
}

func TestSpinnerStop(t *testing.T) {
	t.Run("idempotent", func(t *testing.T) {
		s := newSpinnerTo(context.Background(), &syncBuffer{}, "Stopping...")
		s.Start()
		s.Stop()
		s.Stop()
	})

	t.Run("before start", func(t *testing.T) {
		var buf syncBuffer
		s := newSpinnerTo(context.Background(), &buf, "Never started")
		s.Stop()
		s.Start()
		if buf.String() != "" {
			t.Errorf("unstarted spinner wrote %q", buf.String())
		}
	})
}
