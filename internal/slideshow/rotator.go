package slideshow

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNoFrames is returned when a rotator has nothing to show.
var ErrNoFrames = errors.New("slideshow: no frames")

// Frame is one pre-rendered slide.
type Frame struct {
	Name   string
	Source string
}

// Rotator keeps exactly one frame of a fixed set active and advances it
// with wraparound. Membership never changes after construction.
type Rotator struct {
	mu     sync.RWMutex
	frames []Frame
	index  int
}

// NewRotator returns a rotator whose first frame is active.
func NewRotator(frames []Frame) *Rotator {
	return &Rotator{frames: append([]Frame(nil), frames...)}
}

// Len returns the number of frames.
func (r *Rotator) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.frames)
}

// Index returns the position of the active frame.
func (r *Rotator) Index() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index
}

// Active returns the active frame, or false when there are no frames.
func (r *Rotator) Active() (Frame, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.frames) == 0 {
		return Frame{}, false
	}
	return r.frames[r.index], true
}

// States reports, per frame, whether it is active.
func (r *Rotator) States() []bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	states := make([]bool, len(r.frames))
	if len(states) > 0 {
		states[r.index] = true
	}
	return states
}

// Advance deactivates the current frame and activates the next one,
// wrapping to the first after the last.
func (r *Rotator) Advance() (Frame, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return Frame{}, ErrNoFrames
	}
	r.index = (r.index + 1) % len(r.frames)
	return r.frames[r.index], nil
}

// Run advances every interval until ctx is done. onAdvance, when non-nil,
// is called with each newly active frame from Run's goroutine.
func (r *Rotator) Run(ctx context.Context, interval time.Duration, onAdvance func(Frame)) error {
	if r.Len() == 0 {
		return ErrNoFrames
	}
	if interval <= 0 {
		return errors.New("slideshow: interval must be positive")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			f, err := r.Advance()
			if err != nil {
				return err
			}
			if onAdvance != nil {
				onAdvance(f)
			}
		}
	}
}
