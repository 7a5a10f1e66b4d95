package logger

import (
	"fmt"
	"slices"
	"sync"
	"time"
)

const clearLine = "\r\033[2K"

// consoleSpinner animates on the console's output line. Only the most
// recently started spinner draws; older ones resume once it ends.
type consoleSpinner struct {
	parent  *Console
	label   string // guarded by parent.mu
	frame   int    // guarded by parent.mu
	stopped chan struct{}
	once    sync.Once
}

// Activity starts a spinner. Non-interactive consoles get a silent one.
func (c *Console) Activity() Spinner {
	if !c.interactive {
		return noOpSpinner{}
	}
	s := &consoleSpinner{parent: c, stopped: make(chan struct{})}
	c.mu.Lock()
	c.spinners = append(c.spinners, s)
	c.mu.Unlock()
	go s.loop()
	return s
}

func (s *consoleSpinner) loop() {
	fps := s.parent.frames.FPS
	if fps <= 0 {
		fps = 80 * time.Millisecond
	}
	ticker := time.NewTicker(fps)
	defer ticker.Stop()
	for {
		select {
		case <-s.stopped:
			return
		case <-ticker.C:
			s.parent.mu.Lock()
			s.draw()
			s.parent.mu.Unlock()
		}
	}
}

// draw renders the next frame. Caller holds parent.mu.
func (s *consoleSpinner) draw() {
	c := s.parent
	if len(c.spinners) == 0 || c.spinners[len(c.spinners)-1] != s {
		return
	}
	frames := c.frames.Frames
	fmt.Fprintf(c.out, "%s%s %s", clearLine, frames[s.frame%len(frames)], s.label)
	s.frame++
}

func (s *consoleSpinner) Tick(label string) {
	s.parent.mu.Lock()
	defer s.parent.mu.Unlock()
	s.label = label
	s.draw()
}

func (s *consoleSpinner) End() {
	s.once.Do(func() {
		close(s.stopped)
		c := s.parent
		c.mu.Lock()
		defer c.mu.Unlock()
		top := len(c.spinners) > 0 && c.spinners[len(c.spinners)-1] == s
		c.spinners = slices.DeleteFunc(c.spinners, func(o *consoleSpinner) bool { return o == s })
		if top {
			// Clear line on stop; do not leave a frozen frame behind
			fmt.Fprint(c.out, clearLine)
		}
	})
}
