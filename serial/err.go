package serial

import (
	"errors"

	"github.com/ezrec/ubridge/translate"
)

var f = translate.From

var (
	// Device errors
	ErrChannelFull = errors.New(f("channel full"))
)
