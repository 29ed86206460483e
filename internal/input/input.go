// Package input decodes raw terminal bytes into per-frame key and mouse state.
package input

import (
	"bufio"
	"sync"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// maxSeqLen bounds an escape sequence still waiting for its final byte.
// Longer ones are dropped so later keys are not swallowed.
const maxSeqLen = 32

// Mouse is the pointer state reported by SGR mouse tracking.
// Col and Row are 1-based absolute terminal coordinates.
type Mouse struct {
	Col, Row int
	Moved    bool // Pointer position reported this frame
	Clicked  bool // Left button pressed this frame
}

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	Up      bool
	Down    bool
	Space   bool
	Enter   bool
	Escape  bool
	Mouse   Mouse
	Pressed []byte
}

// Any reports whether the user did anything this frame.
func (in Input) Any() bool {
	return len(in.Pressed) > 0
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit   time.Time
	left   time.Time
	right  time.Time
	up     time.Time
	down   time.Time
	space  time.Time
	enter  time.Time
	escape time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	state   keyState
	pending []byte // Incomplete escape sequence carried to the next read
	mouse   Mouse
	closed  bool

	done     chan struct{}
	stopOnce sync.Once
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits when r ends or, after Stop, on the next byte it reads.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{ch: make(chan byte, 256), done: make(chan struct{})}
}

// Stop tells the reader goroutine that nobody drains the stream anymore.
func (s *Stream) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ResetKeyInput clears held key state, e.g. so the key that started a game
// does not also act inside it.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and SGR mouse reports and
// accumulates all pressed keys.
func ReadInput(s *Stream) Input {
	return readInputAt(s, time.Now())
}

func readInputAt(s *Stream, now time.Time) Input {
	buf := append([]byte(nil), s.pending...)
	carried := len(buf)
	s.pending = s.pending[:0]

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	s.mouse.Moved = false
	s.mouse.Clicked = false
	// Nothing new arrived behind the carried bytes, so a lone ESC is the key.
	stale := carried > 0 && len(buf) == carried
	pressed := parse(s, buf, now, stale)

	input := Input{
		Quit:    now.Sub(s.state.quit) < keyHoldDuration,
		Left:    now.Sub(s.state.left) < keyHoldDuration,
		Right:   now.Sub(s.state.right) < keyHoldDuration,
		Up:      now.Sub(s.state.up) < keyHoldDuration,
		Down:    now.Sub(s.state.down) < keyHoldDuration,
		Space:   now.Sub(s.state.space) < keyHoldDuration,
		Enter:   now.Sub(s.state.enter) < keyHoldDuration,
		Escape:  now.Sub(s.state.escape) < keyHoldDuration,
		Mouse:   s.mouse,
		Pressed: pressed,
	}
	return input
}

// parse applies buf to the stream state and returns the consumed bytes.
// A trailing incomplete escape sequence is stored in s.pending.
func parse(s *Stream, buf []byte, now time.Time, stale bool) []byte {
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			applyByteToState(&s.state, b, now)
			continue
		}

		n, complete := parseEscape(s, buf[i:], now, stale)
		if !complete {
			if len(buf)-i < maxSeqLen {
				s.pending = append(s.pending, buf[i:]...)
				return buf[:i]
			}
			n = maxSeqLen
		}
		i += n - 1
	}
	return buf
}

// parseEscape handles an escape sequence at the start of seq. It returns the
// number of bytes consumed, or complete=false when more bytes are needed.
func parseEscape(s *Stream, seq []byte, now time.Time, stale bool) (n int, complete bool) {
	if len(seq) == 1 {
		// A trailing ESC may start a sequence split across reads. It is the
		// Escape key only if a whole frame passes without more bytes.
		if !stale {
			return 0, false
		}
		s.state.escape = now
		return 1, true
	}
	if seq[1] != '[' {
		s.state.escape = now
		return 1, true
	}
	if len(seq) < 3 {
		return 0, false
	}

	switch seq[2] {
	case 'A':
		s.state.up = now
		return 3, true
	case 'B':
		s.state.down = now
		return 3, true
	case 'C':
		s.state.right = now
		return 3, true
	case 'D':
		s.state.left = now
		return 3, true
	case '<':
		return parseSGRMouse(s, seq)
	}

	// Unknown CSI: skip up to and including its final byte
	for j := 2; j < len(seq); j++ {
		if seq[j] >= 0x40 && seq[j] <= 0x7e {
			return j + 1, true
		}
	}
	return 0, false
}

// parseSGRMouse decodes "ESC [ < b ; col ; row (M|m)".
func parseSGRMouse(s *Stream, seq []byte) (n int, complete bool) {
	var fields [3]int
	field := 0
	for j := 3; j < len(seq); j++ {
		c := seq[j]
		switch {
		case c >= '0' && c <= '9':
			fields[field] = fields[field]*10 + int(c-'0')
		case c == ';':
			field++
			if field > 2 {
				return j + 1, true
			}
		case c == 'M' || c == 'm':
			if field == 2 {
				applyMouse(s, fields[0], fields[1], fields[2], c == 'M')
			}
			return j + 1, true
		default:
			// Malformed report: drop what we have seen and parse c again
			return j, true
		}
	}
	return 0, false
}

// Mouse button codes in SGR reports.
const (
	mouseButtonMask = 0x03
	mouseMotionBit  = 0x20
	mouseWheelBit   = 0x40
	mouseLeft       = 0
)

func applyMouse(s *Stream, button, col, row int, press bool) {
	s.mouse.Col = col
	s.mouse.Row = row
	s.mouse.Moved = true
	if press && button&mouseMotionBit == 0 && button&mouseWheelBit == 0 && button&mouseButtonMask == mouseLeft {
		s.mouse.Clicked = true
	}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		state.quit = now
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'k', 'K':
		state.up = now
	case 's', 'S', 'j', 'J':
		state.down = now
	case ' ':
		state.space = now
	case '\n', '\r':
		state.enter = now
	}
}
