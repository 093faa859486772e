// Package input turns the raw byte stream of a terminal into per-frame
// key and mouse state.
package input

import (
	"bufio"
	"time"
)

// DefaultHoldDuration is how long a movement key stays "held" after its
// last byte. Terminals only send repeats, never releases, so this has to
// bridge the gap between auto-repeat bytes.
const DefaultHoldDuration = 150 * time.Millisecond

// EscapeTimeout is how long an escape sequence cut off at the end of a
// frame waits for the rest of its bytes. A lone ESC only counts as the
// Escape key once this has passed.
const EscapeTimeout = 40 * time.Millisecond

// Click is a primary-button press at a 1-based absolute terminal position.
type Click struct {
	Col, Row int
}

// Input represents the current frame's input state.
type Input struct {
	Left    bool    // Held
	Right   bool    // Held
	Fire    bool    // Pressed since the last frame
	Play    bool    // Pressed since the last frame
	Quit    bool    // q or Ctrl-C
	Escape  bool    // A lone ESC, not the start of a sequence
	Clicks  []Click // Mouse presses since the last frame
	Pressed []byte  // Raw bytes read this frame
}

// keyState tracks the last time each held key was seen.
type keyState struct {
	left  time.Time
	right time.Time
}

// Stream delivers input bytes via a channel and tracks held keys.
type Stream struct {
	ch    chan byte
	state keyState
	hold  time.Duration

	// partial holds an escape sequence cut off at the end of the last
	// frame, first seen at partialAt.
	partial   []byte
	partialAt time.Time
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The channel is closed when r returns an error.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{
		ch:   make(chan byte, 256),
		hold: DefaultHoldDuration,
	}
}

// SetHoldDuration overrides how long movement keys stay held.
func (s *Stream) SetHoldDuration(d time.Duration) {
	s.hold = d
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// returns this frame's input. A closed stream reads as Quit.
func ReadInput(s *Stream) Input {
	var buf []byte
	closed := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := s.parse(buf, time.Now())
	if closed {
		in.Quit = true
	}
	return in
}

// ResetKeyInput forgets held keys, e.g. when a new game starts.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

// parse applies buf to the key state and builds the input for time now.
func (s *Stream) parse(buf []byte, now time.Time) Input {
	in := Input{Pressed: buf}

	since := now
	if len(s.partial) > 0 {
		carried := s.partial
		s.partial = nil
		switch {
		case now.Sub(s.partialAt) < EscapeTimeout || continuesEscape(carried, buf):
			since = s.partialAt
			buf = append(carried, buf...)
		case len(carried) == 1:
			in.Escape = true
		}
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			if n, ok := s.parseEscape(buf[i:], now, &in); ok {
				i += n - 1
				continue
			}
			if truncatedEscape(buf[i:]) {
				s.partial = append([]byte(nil), buf[i:]...)
				s.partialAt = now
				if i == 0 {
					s.partialAt = since
				}
				break
			}
			// Skip unrecognised CSI sequences so their final byte is not
			// mistaken for a key.
			if buf[i+1] == '[' {
				i += csiLen(buf[i:]) - 1
			}
			continue
		}

		switch b {
		case 'a', 'A', 'h', 'H':
			s.state.left = now
		case 'd', 'D', 'l', 'L':
			s.state.right = now
		case ' ':
			in.Fire = true
		case 'p', 'P', '\r', '\n':
			in.Play = true
		case 'q', 'Q', '\x03':
			in.Quit = true
		}
	}

	in.Left = now.Sub(s.state.left) < s.hold
	in.Right = now.Sub(s.state.right) < s.hold
	return in
}

// parseEscape decodes a CSI or SS3 sequence at the start of seq. Returns
// the number of bytes consumed.
func (s *Stream) parseEscape(seq []byte, now time.Time, in *Input) (int, bool) {
	if len(seq) < 3 || (seq[1] != '[' && seq[1] != 'O') {
		return 0, false
	}

	switch seq[2] {
	case 'C': // Right arrow
		s.state.right = now
		return 3, true
	case 'D': // Left arrow
		s.state.left = now
		return 3, true
	case 'A', 'B': // Up/down arrows do nothing
		return 3, true
	case '<':
		if seq[1] != '[' {
			return 0, false
		}
		return parseSGRMouse(seq, in)
	}
	return 0, false
}

// truncatedEscape reports whether the escape sequence at the start of seq
// may still be completed by bytes that have not arrived yet.
func truncatedEscape(seq []byte) bool {
	switch {
	case len(seq) == 1:
		return true
	case seq[1] == 'O':
		return len(seq) == 2
	case seq[1] == '[':
		for _, c := range seq[2:] {
			if csiFinal(c) {
				return false
			}
		}
		return true
	}
	return false
}

// continuesEscape reports whether next picks up where the carried escape
// sequence left off.
func continuesEscape(carried, next []byte) bool {
	if len(next) == 0 {
		return false
	}
	if len(carried) > 1 {
		return true
	}
	return next[0] == '[' || next[0] == 'O'
}

func csiFinal(b byte) bool {
	return b >= 0x40 && b <= 0x7e
}

// csiLen returns the length of the CSI sequence at the start of seq, up to
// and including its final byte, or len(seq) if it is truncated.
func csiLen(seq []byte) int {
	for i := 2; i < len(seq); i++ {
		if csiFinal(seq[i]) {
			return i + 1
		}
	}
	return len(seq)
}

// parseSGRMouse decodes ESC [ < b ; x ; y (M|m). Only primary-button
// presses are reported.
func parseSGRMouse(seq []byte, in *Input) (int, bool) {
	var fields [3]int
	field := 0
	for i := 3; i < len(seq); i++ {
		c := seq[i]
		switch {
		case c >= '0' && c <= '9':
			fields[field] = fields[field]*10 + int(c-'0')
		case c == ';':
			field++
			if field >= len(fields) {
				return 0, false
			}
		case c == 'M' || c == 'm':
			if field != 2 {
				return 0, false
			}
			button := fields[0]
			// Low bits select the button; 32 flags motion, 64 the wheel.
			if c == 'M' && button&3 == 0 && button&(32|64) == 0 {
				in.Clicks = append(in.Clicks, Click{Col: fields[1], Row: fields[2]})
			}
			return i + 1, true
		default:
			return 0, false
		}
	}
	return 0, false
}
