package crc

import "github.com/ezrec/mmreg/bitfield"

const base = 0x40023000

type status uint16

var (
	cr   = bitfield.NewRegister[uint32](base + 0x8)
	sr   = bitfield.NewRegister[uint32](base + 0x10)
	bad  = bitfield.NewRegister[uint32](base + 0x6) // want `NewRegister: 0x40023006 not a multiple of 4 register address misaligned`
	poly = bitfield.NewArray[uint16](base+0x14, 2)
	odd  = bitfield.NewArray[uint16](base+0x14, 3) // want `NewArray: 0x3 not a multiple of 2 register stride misaligned`
	flag = bitfield.NewRegister[status](0x100)

	reset  = bitfield.NewWOBit(cr, 0)
	revIn  = bitfield.NewRW[uint8](cr, 5, 2)
	revOut = bitfield.NewBit(cr, 7)
	eoc    = bitfield.NewRCBit(sr, 0)
	count  = bitfield.NewRO[uint8](sr, 8, 4)
	coef   = bitfield.NewRW[uint16](poly, 0, 16)
	whole  = bitfield.NewRW[uint](cr, 0, 32)

	wide  = bitfield.NewRW[uint8](cr, 4, 12)   // want `NewRW: field at bit 4 width 12 .* field exceeds value type width`
	over  = bitfield.NewRO[uint32](cr, 30, 4)  // want `NewRO: field at bit 30 width 4 .* field exceeds register width`
	empty = bitfield.NewWO[uint8](cr, 3, 0)    // want `NewWO: .* field width is zero`
	past  = bitfield.NewBit(cr, 32)            // want `NewBit: field at bit 32 width 1 .* field exceeds register width`
	rc    = bitfield.NewRC[uint8](odd, 12, 8)  // want `NewRC: .* field exceeds register width`
	named = bitfield.NewROBit(flag, 16)        // want `NewROBit: field at bit 16 width 1 .* field exceeds register width`
)

func dynamic(offset uint) {
	_ = bitfield.NewRW[uint8](cr, offset, 2)
	_ = bitfield.NewRegister[uint64](uintptr(offset))
}

func generic[W bitfield.Word](reg bitfield.Register[W]) {
	_ = bitfield.NewRW[uint8](reg, 40, 2)
}
