// Package bitfield declares the constructors checked by fieldcheck.
package bitfield

type Word interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

type Value interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr
}

type Register[W Word] struct {
	Address uintptr
	Stride  uintptr
}

type layout[W Word] struct {
	reg    Register[W]
	offset uint
	width  uint
}

type RO[T Value, W Word] struct{ layout[W] }
type WO[T Value, W Word] struct{ layout[W] }
type RW[T Value, W Word] struct{ layout[W] }
type RC[T Value, W Word] struct{ layout[W] }

type ROBit[W Word] struct{ layout[W] }
type WOBit[W Word] struct{ layout[W] }
type Bit[W Word] struct{ layout[W] }
type RCBit[W Word] struct{ layout[W] }

func NewRegister[W Word](address uintptr) Register[W] {
	return Register[W]{Address: address}
}

func NewArray[W Word](address, stride uintptr) Register[W] {
	return Register[W]{Address: address, Stride: stride}
}

func NewRO[T Value, W Word](reg Register[W], offset, width uint) RO[T, W] {
	return RO[T, W]{layout[W]{reg, offset, width}}
}

func NewWO[T Value, W Word](reg Register[W], offset, width uint) WO[T, W] {
	return WO[T, W]{layout[W]{reg, offset, width}}
}

func NewRW[T Value, W Word](reg Register[W], offset, width uint) RW[T, W] {
	return RW[T, W]{layout[W]{reg, offset, width}}
}

func NewRC[T Value, W Word](reg Register[W], offset, width uint) RC[T, W] {
	return RC[T, W]{layout[W]{reg, offset, width}}
}

func NewROBit[W Word](reg Register[W], offset uint) ROBit[W] {
	return ROBit[W]{layout[W]{reg, offset, 1}}
}

func NewWOBit[W Word](reg Register[W], offset uint) WOBit[W] {
	return WOBit[W]{layout[W]{reg, offset, 1}}
}

func NewBit[W Word](reg Register[W], offset uint) Bit[W] {
	return Bit[W]{layout[W]{reg, offset, 1}}
}

func NewRCBit[W Word](reg Register[W], offset uint) RCBit[W] {
	return RCBit[W]{layout[W]{reg, offset, 1}}
}
