//go:build !tinygo

package bitfield

import (
	"sync/atomic"
	"unsafe"
)

// load is one access of the size of W which the compiler may neither elide
// nor merge with its neighbours. 32- and 64-bit accesses go through
// sync/atomic; narrower ones through functions the compiler cannot inline.
func load[W Word](addr uintptr) (value W) {
	switch sizeOf[W]() {
	case 8:
		value = W(atomic.LoadUint64((*uint64)(unsafe.Pointer(addr))))
	case 4:
		value = W(atomic.LoadUint32((*uint32)(unsafe.Pointer(addr))))
	case 2:
		value = W(load16(addr))
	default:
		value = W(load8(addr))
	}

	return
}

func store[W Word](addr uintptr, value W) {
	switch sizeOf[W]() {
	case 8:
		atomic.StoreUint64((*uint64)(unsafe.Pointer(addr)), uint64(value))
	case 4:
		atomic.StoreUint32((*uint32)(unsafe.Pointer(addr)), uint32(value))
	case 2:
		store16(addr, uint16(value))
	default:
		store8(addr, uint8(value))
	}
}

//go:noinline
func load8(addr uintptr) uint8 {
	return *(*uint8)(unsafe.Pointer(addr))
}

//go:noinline
func load16(addr uintptr) uint16 {
	return *(*uint16)(unsafe.Pointer(addr))
}

//go:noinline
func store8(addr uintptr, value uint8) {
	*(*uint8)(unsafe.Pointer(addr)) = value
}

//go:noinline
func store16(addr uintptr, value uint16) {
	*(*uint16)(unsafe.Pointer(addr)) = value
}
