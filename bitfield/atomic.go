package bitfield

import (
	"sync"
	"sync/atomic"
	"unsafe"
)

// _sub_word_locks serialize atomic updates of 8- and 16-bit registers.
var _sub_word_locks [61]sync.Mutex

// subWordLock is the lock shared by every atomic update of addr.
func subWordLock(addr uintptr) *sync.Mutex {
	return &_sub_word_locks[addr%uintptr(len(_sub_word_locks))]
}

// casModify replaces the bits under mask in the word at addr with bits.
//
// 32- and 64-bit words use a compare-and-swap loop. 8- and 16-bit words
// have no compare-and-swap of their own, and widening the access would
// store the neighbouring registers, so they are updated under a lock keyed
// by address. Every access keeps the size of W.
func casModify[W Word](addr uintptr, mask, bits W) {
	switch sizeOf[W]() {
	case 8:
		p := (*uint64)(unsafe.Pointer(addr))
		for {
			old := atomic.LoadUint64(p)
			if atomic.CompareAndSwapUint64(p, old, old&^uint64(mask)|uint64(bits)) {
				return
			}
		}
	case 4:
		p := (*uint32)(unsafe.Pointer(addr))
		for {
			old := atomic.LoadUint32(p)
			if atomic.CompareAndSwapUint32(p, old, old&^uint32(mask)|uint32(bits)) {
				return
			}
		}
	default:
		mu := subWordLock(addr)
		mu.Lock()
		defer mu.Unlock()

		store(addr, load[W](addr)&^mask|bits)
	}
}
