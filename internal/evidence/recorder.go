package evidence

import (
	"bytes"
	"context"
	"image"
	_ "image/png"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stickify/stickify-e2e/internal/browser"
	"github.com/stickify/stickify-e2e/internal/screenplay"
)

// captureTimeout bounds one frame capture so a hung page can't stall the run
const captureTimeout = 5 * time.Second

// Frame is the page as it looked right after one step
type Frame struct {
	Image  image.Image
	Step   string
	Index  int
	Failed bool
}

// Recorder captures a frame after every step an actor attempts. Register
// its Observe method with screenplay.WithObserver.
type Recorder struct {
	runID  string
	driver browser.Driver
	logger *slog.Logger

	mu     sync.Mutex
	frames []Frame
}

// NewRecorder records frames from driver under a fresh run id
func NewRecorder(driver browser.Driver, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	return &Recorder{
		runID:  id,
		driver: driver,
		logger: logger.With(slog.String("run", id)),
	}
}

// RunID identifies this run in logs
func (r *Recorder) RunID() string { return r.runID }

// Observe captures the page after ev. Capture failures are logged and
// the frame is skipped.
func (r *Recorder) Observe(ev screenplay.StepEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), captureTimeout)
	defer cancel()

	data, err := r.driver.Screenshot(ctx)
	if err != nil {
		r.logger.Warn("failed to capture frame", slog.Int("step", ev.Index+1), slog.Any("error", err))
		return
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		r.logger.Warn("failed to decode frame", slog.Int("step", ev.Index+1), slog.Any("error", err))
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, Frame{Image: img, Step: ev.Description, Index: ev.Index, Failed: ev.Err != nil})
}

// Frames returns the frames captured so far
func (r *Recorder) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Frame(nil), r.frames...)
}
