package scenario

import (
	"errors"

	"github.com/ezrec/ubridge/translate"
)

var f = translate.From

var (
	// Parse errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrVerbUnknown     = errors.New(f("verb unknown"))
	ErrArgMissing      = errors.New(f("argument missing"))
	ErrArgExtra        = errors.New(f("excessive arguments"))

	// Play errors
	ErrNoFifo        = errors.New(f("source is not a fifo"))
	ErrNoTransmitter = errors.New(f("sink is not a transmitter"))
)

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrStep indicates the script line of a playback error.
type ErrStep struct {
	LineNo int
	Err    error
}

func (err ErrStep) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err ErrStep) Unwrap() error {
	return err.Err
}

// ErrExpect reports a transmitted byte that differs from the script.
type ErrExpect struct {
	Index int    // Index into the transmit record.
	Got   uint32 // Transmitted byte, or no value when Sent is false.
	Want  uint32 // Scripted byte.
	Sent  bool   // Whether a byte was transmitted at all.
}

func (err ErrExpect) Error() string {
	if !err.Sent {
		return f("expect %d: no byte transmitted, want 0x%02x", err.Index, err.Want)
	}
	return f("expect %d: transmitted 0x%02x, want 0x%02x", err.Index, err.Got, err.Want)
}
