package main

import (
	"errors"

	"github.com/ezrec/mmreg/translate"
)

var f = translate.From

var (
	ErrArgument = errors.New(f("argument missing"))
	ErrFormat   = errors.New(f("unknown description format"))
)

// ErrCommand is an unknown shell command.
type ErrCommand string

func (err ErrCommand) Error() string {
	return f("'%v' is not a command (h for help)", string(err))
}
