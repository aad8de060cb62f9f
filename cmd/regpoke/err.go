//go:build unix

package main

import (
	"errors"

	"github.com/ezrec/mmreg/translate"
)

var f = translate.From

var (
	ErrRegisterSize = errors.New(f("register size not 8, 16, 32 or 64 bits"))
	ErrValueRange   = errors.New(f("value exceeds field"))
	ErrIndex        = errors.New(f("register index negative"))
)
