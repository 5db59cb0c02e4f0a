package emulator

import (
	"errors"

	"github.com/ezrec/ubridge/translate"
)

var f = translate.From

var (
	// Run errors
	ErrTickLimit = errors.New(f("tick limit exceeded"))
)

// ErrRuntime indicates the tick of a runtime error.
type ErrRuntime struct {
	Tick int
	Err  error
}

func (err *ErrRuntime) Error() string {
	return f("tick %d %v", err.Tick, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
