package bitfield

import (
	"unsafe"
)

// Value is the logical type a field is read and written as.
type Value interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr
}

func valueBits[T Value]() uint {
	var v T
	return uint(unsafe.Sizeof(v)) * 8
}

// Mask has ones at bits [offset, offset+width) of W.
//
// The pattern is built in 64 bits and truncated, so a field covering the
// whole register does not shift past the width of W.
func Mask[W Word](offset, width uint) W {
	return W((^uint64(0) >> (64 - width)) << offset)
}

// CheckField reports whether a field of width bits at offset fits a regBits
// register word and a valueBits value type.
func CheckField(regBits, valueBits, offset, width uint) (err error) {
	switch {
	case width == 0:
		err = ErrFieldEmpty
	case offset >= regBits || width > regBits-offset:
		err = ErrFieldOverflow
	case width > valueBits:
		err = ErrValueOverflow
	default:
		return
	}

	err = &LayoutError{
		Offset:    offset,
		Width:     width,
		RegBits:   regBits,
		ValueBits: valueBits,
		Err:       err,
	}

	return
}

// layout is the state shared by every field descriptor.
type layout[W Word] struct {
	reg    Register[W]
	offset uint
	width  uint
	mask   W
	policy Policy
}

func newLayout[W Word](reg Register[W], offset, width, vbits uint, policy Policy) layout[W] {
	if err := reg.Validate(); err != nil {
		panic(err)
	}
	if err := CheckField(Bits[W](), vbits, offset, width); err != nil {
		panic(err)
	}

	return layout[W]{
		reg:    reg,
		offset: offset,
		width:  width,
		mask:   Mask[W](offset, width),
		policy: policy,
	}
}

// Register the field belongs to.
func (l layout[W]) Register() Register[W] {
	return l.reg
}

// Offset of the least significant bit of the field.
func (l layout[W]) Offset() uint {
	return l.offset
}

// Width of the field in bits.
func (l layout[W]) Width() uint {
	return l.width
}

// Mask of the field bits in the register word.
func (l layout[W]) Mask() W {
	return l.mask
}

// Policy of the field.
func (l layout[W]) Policy() Policy {
	return l.policy
}

func (l layout[W]) get(index int) W {
	return (load[W](l.reg.AddressOf(index)) & l.mask) >> l.offset
}

// getClear loads the word, then acknowledges the field by writing ones to
// its bits and zeros elsewhere.
func (l layout[W]) getClear(index int) W {
	addr := l.reg.AddressOf(index)
	word := load[W](addr)
	store(addr, l.mask)
	return (word & l.mask) >> l.offset
}

// put stores the field without loading the word first.
func (l layout[W]) put(index int, value W) {
	store(l.reg.AddressOf(index), (value<<l.offset)&l.mask)
}

func (l layout[W]) modify(index int, value W) {
	addr := l.reg.AddressOf(index)
	word := load[W](addr)
	store(addr, word&^l.mask|(value<<l.offset)&l.mask)
}

func (l layout[W]) modifyAtomic(index int, value W) {
	casModify(l.reg.AddressOf(index), l.mask, (value<<l.offset)&l.mask)
}
