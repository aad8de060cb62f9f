//go:build tinygo

package bitfield

import (
	"runtime/volatile"
	"unsafe"
)

func load[W Word](addr uintptr) (value W) {
	switch sizeOf[W]() {
	case 8:
		value = W(volatile.LoadUint64((*uint64)(unsafe.Pointer(addr))))
	case 4:
		value = W(volatile.LoadUint32((*uint32)(unsafe.Pointer(addr))))
	case 2:
		value = W(volatile.LoadUint16((*uint16)(unsafe.Pointer(addr))))
	default:
		value = W(volatile.LoadUint8((*uint8)(unsafe.Pointer(addr))))
	}

	return
}

func store[W Word](addr uintptr, value W) {
	switch sizeOf[W]() {
	case 8:
		volatile.StoreUint64((*uint64)(unsafe.Pointer(addr)), uint64(value))
	case 4:
		volatile.StoreUint32((*uint32)(unsafe.Pointer(addr)), uint32(value))
	case 2:
		volatile.StoreUint16((*uint16)(unsafe.Pointer(addr)), uint16(value))
	default:
		volatile.StoreUint8((*uint8)(unsafe.Pointer(addr)), uint8(value))
	}
}
