package bitfield

import (
	"errors"
	"unsafe"
)

// Backing words for the test registers. Package level variables never move.
var (
	mem8  [8]uint8
	mem16 [8]uint16
	mem32 [8]uint32
	mem64 [4]uint64
)

func addrOf[W Word](p *W) uintptr {
	return uintptr(unsafe.Pointer(p))
}

func resetMem() {
	mem8 = [8]uint8{}
	mem16 = [8]uint16{}
	mem32 = [8]uint32{}
	mem64 = [4]uint64{}
}

// panicErr runs fn and returns the error it panicked with.
func panicErr(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		rerr, ok := r.(error)
		if !ok {
			rerr = errors.New("non-error panic")
		}
		err = rerr
	}()

	fn()

	return
}
