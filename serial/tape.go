package serial

import (
	"io"
)

// Tape is a stream-backed byte source, wrapping an io.Reader as the host
// side of the serial link. Bytes are pulled from the reader one at a time
// as the controller asks for them; end of stream reads as an empty source.
type Tape struct {
	Input io.Reader

	hasInput  bool
	lastInput byte
	exhausted bool
}

var _ Source = (*Tape)(nil)

// Rewind seeks the input back to the start when the reader supports it.
func (tc *Tape) Rewind() {
	tc.hasInput = false
	tc.exhausted = false

	if seeker, ok := tc.Input.(io.Seeker); ok {
		_, _ = seeker.Seek(0, io.SeekStart)
	}
}

// fill loads the head byte from the input stream if none is held.
func (tc *Tape) fill() {
	if tc.hasInput || tc.exhausted || tc.Input == nil {
		return
	}

	var one [1]byte
	n, err := tc.Input.Read(one[:])
	if n == 1 {
		tc.lastInput = one[0]
		tc.hasInput = true
		return
	}
	if err != nil {
		tc.exhausted = true
	}
}

// HasData reports whether a byte is available from the stream.
func (tc *Tape) HasData() bool {
	tc.fill()
	return tc.hasInput
}

// Next returns the head byte without consuming it.
func (tc *Tape) Next() (value uint32) {
	tc.fill()
	if tc.hasInput {
		value = uint32(tc.lastInput)
	}
	return
}

// Consume pops the head byte.
func (tc *Tape) Consume() {
	tc.fill()
	tc.hasInput = false
}
