package device

import (
	"errors"

	"github.com/ezrec/mmreg/translate"
)

var f = translate.From

var (
	// Validation errors
	ErrNameMissing   = errors.New(f("name missing"))
	ErrNameDuplicate = errors.New(f("name duplicated"))
	ErrRegisterSize  = errors.New(f("register size not 8, 16, 32 or 64 bits"))
	ErrRegisterAlign = errors.New(f("register offset misaligned"))
	ErrFieldOverlap  = errors.New(f("field overlaps another field"))
	ErrEnumRange     = errors.New(f("enumerated value exceeds field"))

	// Loader errors
	ErrDeviceMissing     = errors.New(f("script did not assign DEVICE"))
	ErrDerivedMissing    = errors.New(f("derivedFrom peripheral missing"))
	ErrBitRange          = errors.New(f("bit range invalid"))
	ErrPeripheralMissing = errors.New(f("peripheral missing"))
)

// PathError locates an error in the description, as PERIPHERAL.REGISTER.FIELD.
type PathError struct {
	Path string
	Err  error
}

func (err *PathError) Error() string {
	return f("%v: %v", err.Path, err.Err)
}

func (err *PathError) Unwrap() error {
	return err.Err
}

// ErrParseNumber is an integer in an SVD file which cannot be parsed.
type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}
