package scan

import (
	"context"
	"sync"
)

// SessionState is the consumer-side state of a scan session.
type SessionState string

const (
	StateIdle       SessionState = "idle"
	StateProcessing SessionState = "processing"
	StateTerminal   SessionState = "terminal"
)

// ProcessFunc resolves one decoded string: decode, verify and commit the
// ledger mutation. A nil return means the voucher was accepted. The call
// runs outside the session lock but the session admits only one at a time.
type ProcessFunc func(text string) error

// Session is the only consumer-side concurrency control over the decode
// stream. While an attempt is in flight every further decode event is
// ignored; a string equal to the most recently rejected one is suppressed
// without re-processing.
type Session struct {
	mu           sync.Mutex
	state        SessionState
	lastRejected string
	closed       bool

	process    ProcessFunc
	continuous bool

	// OnResult, when set, observes each resolution (for logging/UI).
	OnResult func(text string, err error)
}

// NewSession creates a session. In continuous mode a successful resolution
// returns to Idle so further vouchers can be scanned; otherwise the session
// becomes Terminal after the first success.
func NewSession(process ProcessFunc, continuous bool) *Session {
	return &Session{state: StateIdle, process: process, continuous: continuous}
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Submit offers one decoded string to the session. It returns whether the
// string was actually processed, and the processing error if any. Ignored
// submissions (in-flight guard, known-bad repeat, closed or terminal
// session) return (false, nil).
func (s *Session) Submit(text string) (bool, error) {
	s.mu.Lock()
	if s.closed || s.state != StateIdle || text == s.lastRejected {
		s.mu.Unlock()
		return false, nil
	}
	s.state = StateProcessing
	s.mu.Unlock()

	err := s.process(text)

	s.mu.Lock()
	if err != nil {
		s.lastRejected = text
		s.state = StateIdle
	} else {
		s.lastRejected = ""
		if s.continuous || s.closed {
			s.state = StateIdle
		} else {
			s.state = StateTerminal
		}
	}
	onResult := s.OnResult
	s.mu.Unlock()

	if onResult != nil {
		onResult(text, err)
	}
	return true, err
}

// Run consumes the decoded stream until ctx is cancelled, the stream ends,
// or (in single-shot mode) a voucher is accepted.
func (s *Session) Run(ctx context.Context, texts <-chan string) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case text, ok := <-texts:
			if !ok {
				return nil
			}
			s.Submit(text)
			if s.State() == StateTerminal {
				return nil
			}
		}
	}
}

// Close ends the session: the known-bad marker is cleared and the state
// returns to Idle with no ledger mutation. An attempt already in flight
// still resolves; it was admitted before the close.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.lastRejected = ""
	if s.state != StateProcessing {
		s.state = StateIdle
	}
}
