package bitfield

import (
	"sync"
)

func fromBool[W Word](value bool) (w W) {
	if value {
		w = 1
	}
	return
}

// ROBit is a read-only single bit.
type ROBit[W Word] struct{ layout[W] }

// NewROBit declares a read-only bit at offset in reg.
func NewROBit[W Word](reg Register[W], offset uint) ROBit[W] {
	return ROBit[W]{newLayout(reg, offset, 1, 1, ReadOnly)}
}

// Get is true if the bit is set.
func (b ROBit[W]) Get() bool {
	return b.get(0) != 0
}

// GetAt is Get on register instance index.
func (b ROBit[W]) GetAt(index int) bool {
	return b.get(index) != 0
}

// WOBit is a write-only single bit. Set and Clear zero every other bit of
// the register word.
type WOBit[W Word] struct{ layout[W] }

// NewWOBit declares a write-only bit at offset in reg.
func NewWOBit[W Word](reg Register[W], offset uint) WOBit[W] {
	return WOBit[W]{newLayout(reg, offset, 1, 1, WriteOnly)}
}

// Write stores the bit alone.
func (b WOBit[W]) Write(value bool) {
	b.put(0, fromBool[W](value))
}

// WriteAt is Write on register instance index.
func (b WOBit[W]) WriteAt(value bool, index int) {
	b.put(index, fromBool[W](value))
}

// Set is Write(true).
func (b WOBit[W]) Set() {
	b.put(0, 1)
}

// Clear is Write(false).
func (b WOBit[W]) Clear() {
	b.put(0, 0)
}

// SetAt is WriteAt(true, index).
func (b WOBit[W]) SetAt(index int) {
	b.put(index, 1)
}

// ClearAt is WriteAt(false, index).
func (b WOBit[W]) ClearAt(index int) {
	b.put(index, 0)
}

// Bit is a read-write single bit. Updates are read-modify-write.
type Bit[W Word] struct{ layout[W] }

// NewBit declares a read-write bit at offset in reg.
func NewBit[W Word](reg Register[W], offset uint) Bit[W] {
	return Bit[W]{newLayout(reg, offset, 1, 1, ReadWrite)}
}

// Get is true if the bit is set.
func (b Bit[W]) Get() bool {
	return b.get(0) != 0
}

// GetAt is Get on register instance index.
func (b Bit[W]) GetAt(index int) bool {
	return b.get(index) != 0
}

// Write sets or clears the bit, keeping the rest of the word.
func (b Bit[W]) Write(value bool) {
	b.modify(0, fromBool[W](value))
}

// WriteAt is Write on register instance index.
func (b Bit[W]) WriteAt(value bool, index int) {
	b.modify(index, fromBool[W](value))
}

// Set is Write(true).
func (b Bit[W]) Set() {
	b.modify(0, 1)
}

// Clear is Write(false).
func (b Bit[W]) Clear() {
	b.modify(0, 0)
}

// SetAt is WriteAt(true, index).
func (b Bit[W]) SetAt(index int) {
	b.modify(index, 1)
}

// ClearAt is WriteAt(false, index).
func (b Bit[W]) ClearAt(index int) {
	b.modify(index, 0)
}

// SetAtomic sets the bit with a compare-and-swap loop.
func (b Bit[W]) SetAtomic() {
	b.modifyAtomic(0, 1)
}

// ClearAtomic clears the bit with a compare-and-swap loop.
func (b Bit[W]) ClearAtomic() {
	b.modifyAtomic(0, 0)
}

// SetAtomicAt is SetAtomic on register instance index.
func (b Bit[W]) SetAtomicAt(index int) {
	b.modifyAtomic(index, 1)
}

// ClearAtomicAt is ClearAtomic on register instance index.
func (b Bit[W]) ClearAtomicAt(index int) {
	b.modifyAtomic(index, 0)
}

// WriteLocked is Write with locker held across the load and the store.
func (b Bit[W]) WriteLocked(locker sync.Locker, value bool) {
	locker.Lock()
	defer locker.Unlock()

	b.modify(0, fromBool[W](value))
}

// WriteLockedAt is WriteLocked on register instance index.
func (b Bit[W]) WriteLockedAt(locker sync.Locker, value bool, index int) {
	locker.Lock()
	defer locker.Unlock()

	b.modify(index, fromBool[W](value))
}

// RCBit is a read-and-clear single bit, typically an interrupt or event
// flag. Get acknowledges the bit by writing one to it.
type RCBit[W Word] struct{ layout[W] }

// NewRCBit declares a read-and-clear bit at offset in reg.
func NewRCBit[W Word](reg Register[W], offset uint) RCBit[W] {
	return RCBit[W]{newLayout(reg, offset, 1, 1, ReadAndClear)}
}

// Get is true if the bit was set. The bit is cleared.
func (b RCBit[W]) Get() bool {
	return b.getClear(0) != 0
}

// GetAt is Get on register instance index.
func (b RCBit[W]) GetAt(index int) bool {
	return b.getClear(index) != 0
}
