package mmio

import (
	"errors"

	"github.com/ezrec/mmreg/translate"
)

var f = translate.From

var (
	ErrOutOfWindow  = errors.New(f("address outside of window"))
	ErrWindowClosed = errors.New(f("window closed"))
	ErrWindowSize   = errors.New(f("window size invalid"))
)
