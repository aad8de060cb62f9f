package gen

import (
	"errors"

	"github.com/ezrec/mmreg/translate"
)

var f = translate.From

var ErrPackageName = errors.New(f("package name missing"))
var ErrNoPeripherals = errors.New(f("no peripherals to generate"))
