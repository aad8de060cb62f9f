package bitfield

import (
	"sync"
)

// RO is a read-only field holding values of type T in a register of W.
type RO[T Value, W Word] struct{ layout[W] }

// NewRO declares a read-only field of width bits at offset in reg.
func NewRO[T Value, W Word](reg Register[W], offset, width uint) RO[T, W] {
	return RO[T, W]{newLayout(reg, offset, width, valueBits[T](), ReadOnly)}
}

// Read loads the register once and extracts the field.
func (bf RO[T, W]) Read() T {
	return T(bf.get(0))
}

// ReadAt reads the field of register instance index.
func (bf RO[T, W]) ReadAt(index int) T {
	return T(bf.get(index))
}

// WO is a write-only field.
//
// A write stores the field bits alone: every other bit of the register word
// is written as zero. This is the contract of write-only and self-clearing
// hardware registers.
type WO[T Value, W Word] struct{ layout[W] }

// NewWO declares a write-only field of width bits at offset in reg.
func NewWO[T Value, W Word](reg Register[W], offset, width uint) WO[T, W] {
	return WO[T, W]{newLayout(reg, offset, width, valueBits[T](), WriteOnly)}
}

// Write stores value into the field, zeroing the rest of the word.
// Bits of value beyond the field width are dropped.
func (bf WO[T, W]) Write(value T) {
	bf.put(0, W(value))
}

// WriteAt writes the field of register instance index.
func (bf WO[T, W]) WriteAt(value T, index int) {
	bf.put(index, W(value))
}

// RW is a read-write field.
//
// Writes are a read-modify-write of the register word which preserves the
// other fields. The sequence is not atomic; see WriteAtomic and WriteLocked.
type RW[T Value, W Word] struct{ layout[W] }

// NewRW declares a read-write field of width bits at offset in reg.
func NewRW[T Value, W Word](reg Register[W], offset, width uint) RW[T, W] {
	return RW[T, W]{newLayout(reg, offset, width, valueBits[T](), ReadWrite)}
}

// Read loads the register once and extracts the field.
func (bf RW[T, W]) Read() T {
	return T(bf.get(0))
}

// ReadAt reads the field of register instance index.
func (bf RW[T, W]) ReadAt(index int) T {
	return T(bf.get(index))
}

// Write replaces the field bits with value, keeping all other bits.
// Bits of value beyond the field width are dropped.
func (bf RW[T, W]) Write(value T) {
	bf.modify(0, W(value))
}

// WriteAt writes the field of register instance index.
func (bf RW[T, W]) WriteAt(value T, index int) {
	bf.modify(index, W(value))
}

// WriteAtomic is Write as a compare-and-swap loop, so that concurrent
// updates of other bits in the word are not lost. Only software agents that
// also use atomic updates are serialized; hardware writes are not.
//
// 8- and 16-bit registers are updated under a lock shared with the other
// atomic updates of the same address, never through a wider access. Plain
// Write calls racing with them can still be lost.
func (bf RW[T, W]) WriteAtomic(value T) {
	bf.modifyAtomic(0, W(value))
}

// WriteAtomicAt is WriteAtomic on register instance index.
func (bf RW[T, W]) WriteAtomicAt(value T, index int) {
	bf.modifyAtomic(index, W(value))
}

// WriteLocked is Write with locker held across the load and the store.
// The locker is the caller's critical section: a mutex shared by every
// writer of the word, or an interrupt mask.
func (bf RW[T, W]) WriteLocked(locker sync.Locker, value T) {
	locker.Lock()
	defer locker.Unlock()

	bf.modify(0, W(value))
}

// WriteLockedAt is WriteLocked on register instance index.
func (bf RW[T, W]) WriteLockedAt(locker sync.Locker, value T, index int) {
	locker.Lock()
	defer locker.Unlock()

	bf.modify(index, W(value))
}

// RC is a read-and-clear field.
//
// Reading acknowledges the field: the load is followed by a store of the
// field mask, ones in the field bits and zeros elsewhere, which clears the
// field on write-one-to-clear hardware.
type RC[T Value, W Word] struct{ layout[W] }

// NewRC declares a read-and-clear field of width bits at offset in reg.
func NewRC[T Value, W Word](reg Register[W], offset, width uint) RC[T, W] {
	return RC[T, W]{newLayout(reg, offset, width, valueBits[T](), ReadAndClear)}
}

// Read loads the field, then clears it.
func (bf RC[T, W]) Read() T {
	return T(bf.getClear(0))
}

// ReadAt reads and clears the field of register instance index.
func (bf RC[T, W]) ReadAt(index int) T {
	return T(bf.getClear(index))
}
