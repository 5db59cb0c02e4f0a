package bridge

import (
	"errors"

	"github.com/ezrec/ubridge/translate"
)

var f = translate.From

var (
	// Configuration errors
	ErrDataWidth   = errors.New(f("data width out of range"))
	ErrOpcodeWidth = errors.New(f("opcode width exceeds data width"))
	ErrSaveCount   = errors.New(f("save count out of range"))
)
