package bitfield

import (
	"unsafe"
)

// Word is the storage type of a memory-mapped register.
type Word interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Register locates a register, or an array of identical registers, in the
// address space. Every access has the size of W.
type Register[W Word] struct {
	Address uintptr // Address of instance 0.
	Stride  uintptr // Distance in bytes between instances, 0 for the size of W.
}

// NewRegister declares a single register at address.
// It panics if address is not aligned to the size of W.
func NewRegister[W Word](address uintptr) (r Register[W]) {
	r = Register[W]{Address: address}
	if err := r.Validate(); err != nil {
		panic(err)
	}

	return
}

// NewArray declares an array of registers starting at address, with
// successive instances stride bytes apart.
// It panics if address or stride is not aligned to the size of W.
func NewArray[W Word](address, stride uintptr) (r Register[W]) {
	r = Register[W]{Address: address, Stride: stride}
	if err := r.Validate(); err != nil {
		panic(err)
	}

	return
}

func sizeOf[W Word]() uintptr {
	var w W
	return unsafe.Sizeof(w)
}

// Bits is the number of bits in W.
func Bits[W Word]() uint {
	return uint(sizeOf[W]()) * 8
}

// Validate checks that the address and stride are naturally aligned.
func (r Register[W]) Validate() (err error) {
	align := sizeOf[W]()
	switch {
	case r.Address%align != 0:
		err = &AlignError{Value: r.Address, Align: align, Err: ErrAddressAlign}
	case r.Stride%align != 0:
		err = &AlignError{Value: r.Stride, Align: align, Err: ErrStrideAlign}
	}

	return
}

// BaseAddress is the address of instance 0.
func (r Register[W]) BaseAddress() uintptr {
	return r.Address
}

// StrideBytes is the distance between two instances.
func (r Register[W]) StrideBytes() uintptr {
	if r.Stride == 0 {
		return sizeOf[W]()
	}
	return r.Stride
}

// AddressOf is the address of instance index. The index is not checked.
func (r Register[W]) AddressOf(index int) uintptr {
	return r.Address + uintptr(index)*r.StrideBytes()
}

// Load reads the whole word of instance index.
func (r Register[W]) Load(index int) W {
	return load[W](r.AddressOf(index))
}

// Store writes the whole word of instance index.
func (r Register[W]) Store(index int, value W) {
	store(r.AddressOf(index), value)
}
