//go:build unix

package main

import (
	"log"

	"github.com/ezrec/mmreg/bitfield"
	"github.com/ezrec/mmreg/mmio"
	"github.com/ezrec/mmreg/translate"
)

// request locates one field of one register instance.
type request struct {
	path   string
	phys   uint64
	size   uint // Register bits.
	offset uint
	width  uint // 0 for the whole register.
	index  int
	stride uint64
	write  bool
	value  uint64

	verbose bool
}

// span is the number of bytes from phys to the end of the addressed instance.
func (req *request) span() int {
	stride := req.stride
	if stride == 0 {
		stride = uint64(req.size / 8)
	}
	return int(uint64(req.index)*stride + uint64(req.size/8))
}

// poke reads, or writes then reads back, the field through window win.
func poke[W bitfield.Word](win *mmio.Window, req *request) (value uint64, err error) {
	reg, err := mmio.NewRegister[W](win, req.phys, uintptr(req.stride), req.index+1)
	if err != nil {
		return
	}

	width := req.width
	if width == 0 {
		width = bitfield.Bits[W]() - req.offset
	}
	err = bitfield.CheckField(bitfield.Bits[W](), 64, req.offset, width)
	if err != nil {
		return
	}

	if req.verbose {
		log.Printf("regpoke: %#x[%d] = %#x", req.phys, req.index, reg.Load(req.index))
	}

	if req.write {
		if req.value > uint64(bitfield.Mask[W](0, width)) {
			err = translate.Errorf(ErrValueRange, "%#x", req.value)
			return
		}
		bitfield.NewRW[uint64](reg, req.offset, width).WriteAt(req.value, req.index)
	}

	value = bitfield.NewRO[uint64](reg, req.offset, width).ReadAt(req.index)
	return
}

// run maps the register window and serves the request.
func run(req *request) (value uint64, err error) {
	if req.index < 0 {
		err = ErrIndex
		return
	}

	win, err := mmio.Map(req.path, req.phys, req.span())
	if err != nil {
		return
	}
	defer win.Close()

	switch req.size {
	case 8:
		value, err = poke[uint8](win, req)
	case 16:
		value, err = poke[uint16](win, req)
	case 32:
		value, err = poke[uint32](win, req)
	case 64:
		value, err = poke[uint64](win, req)
	default:
		err = translate.Errorf(ErrRegisterSize, "%v", req.size)
	}
	return
}
