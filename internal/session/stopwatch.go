package session

import "time"

// Clock returns the current time.
type Clock func() time.Time

// Stopwatch counts whole seconds between Start and Stop. It reads the board
// outcome through its owner and never touches board state itself.
type Stopwatch struct {
	clock     Clock
	startedAt time.Time
	stoppedAt time.Time
	running   bool
}

// NewStopwatch creates a stopped stopwatch reading clock. A nil clock uses
// time.Now.
func NewStopwatch(clock Clock) *Stopwatch {
	if clock == nil {
		clock = time.Now
	}
	return &Stopwatch{clock: clock}
}

// Start begins counting. Starting a running stopwatch has no effect.
func (s *Stopwatch) Start() {
	if s.running {
		return
	}
	s.startedAt = s.clock()
	s.stoppedAt = time.Time{}
	s.running = true
}

// Stop freezes the elapsed time.
func (s *Stopwatch) Stop() {
	if !s.running {
		return
	}
	s.stoppedAt = s.clock()
	s.running = false
}

// Reset stops the stopwatch and zeroes the elapsed time.
func (s *Stopwatch) Reset() {
	s.startedAt = time.Time{}
	s.stoppedAt = time.Time{}
	s.running = false
}

// Running reports whether the stopwatch is counting.
func (s *Stopwatch) Running() bool {
	return s.running
}

// Elapsed returns the whole seconds counted so far.
func (s *Stopwatch) Elapsed() int {
	if s.startedAt.IsZero() {
		return 0
	}
	end := s.stoppedAt
	if s.running {
		end = s.clock()
	}
	elapsed := end.Sub(s.startedAt)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / time.Second)
}
