package bitfield

import (
	"errors"

	"github.com/ezrec/mmreg/translate"
)

var f = translate.From

var (
	// Layout errors
	ErrFieldEmpty    = errors.New(f("field width is zero"))
	ErrFieldOverflow = errors.New(f("field exceeds register width"))
	ErrValueOverflow = errors.New(f("field exceeds value type width"))

	// Register errors
	ErrAddressAlign = errors.New(f("register address misaligned"))
	ErrStrideAlign  = errors.New(f("register stride misaligned"))

	// Policy errors
	ErrPolicyInvalid = errors.New(f("access policy invalid"))
)

// LayoutError describes a field which does not fit its register word or its
// value type.
type LayoutError struct {
	Offset    uint // Bit offset of the field.
	Width     uint // Bit width of the field.
	RegBits   uint // Bit width of the register word.
	ValueBits uint // Bit width of the value type.
	Err       error
}

func (err *LayoutError) Error() string {
	return f("field at bit %d width %d (%d-bit register, %d-bit value) %v",
		err.Offset, err.Width, err.RegBits, err.ValueBits, err.Err)
}

func (err *LayoutError) Unwrap() error {
	return err.Err
}

// AlignError describes a register address or stride which is not a multiple
// of the register size.
type AlignError struct {
	Value uintptr // Offending address or stride.
	Align uintptr // Required alignment in bytes.
	Err   error
}

func (err *AlignError) Error() string {
	return f("0x%x not a multiple of %d %v", uint64(err.Value), uint64(err.Align), err.Err)
}

func (err *AlignError) Unwrap() error {
	return err.Err
}

// ErrPolicy is returned when a policy name cannot be parsed.
type ErrPolicy string

func (ep ErrPolicy) Error() string {
	return f("'%v' is not an access policy", string(ep))
}

func (ep ErrPolicy) Is(err error) bool {
	return err == ErrPolicyInvalid
}
