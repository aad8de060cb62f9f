package stm32f072x

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/mmreg/bitfield"
)

// fake stands in for the CRC registers.
var fake [8]uint32

func TestInstances(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uintptr(0x40023000), CRC1.Dr.Reg.BaseAddress())
	assert.Equal(uintptr(0x40023008), CRC1.Cr.Reg.BaseAddress())
	assert.Equal(uintptr(0x40004010), CRC2.Sr.Reg.BaseAddress())
	assert.Equal(uintptr(0x4000441A), CRC3.Poly.Reg.AddressOf(CRC_POLY_LEN-1))

	assert.Equal(uint32(0x60), CRC1.Cr.RevIn.Mask())
	assert.Equal(uint32(0xF00), CRC1.Sr.Count.Mask())
	assert.Equal(bitfield.ReadAndClear, CRC1.Sr.Eoc.Policy())
	assert.Equal(bitfield.WriteOnly, CRC1.Cr.Reset.Policy())
}

func TestControl(t *testing.T) {
	assert := assert.New(t)

	fake = [8]uint32{}
	crc := NewCrc(uintptr(unsafe.Pointer(&fake[0])))

	crc.Cr.RevIn.Write(CRC_CR_REV_IN_HalfWord)
	crc.Cr.RevOut.Set()
	assert.Equal(uint32(0xC0), fake[2])
	assert.Equal(uint8(CRC_CR_REV_IN_HalfWord), crc.Cr.RevIn.Read())

	crc.Cr.Reset.Set()
	assert.Equal(uint32(0x1), fake[2])

	crc.Init.Init.Write(0xFFFFFFFF)
	crc.Dr.Dr.Write(0x12345678)
	assert.Equal(uint32(0xFFFFFFFF), fake[3])
	assert.Equal(uint32(0x12345678), crc.Dr.Dr.Read())

	crc.Idr.Idr.Write(0x5A)
	assert.Equal(uint8(0x5A), crc.Idr.Idr.Read())
}

func TestStatus(t *testing.T) {
	assert := assert.New(t)

	fake = [8]uint32{}
	crc := NewCrc(uintptr(unsafe.Pointer(&fake[0])))

	fake[4] = 0x0701
	assert.Equal(uint8(7), crc.Sr.Count.Read())
	assert.True(crc.Sr.Eoc.Get())
	assert.Equal(uint32(0x1), fake[4])
}

func TestPolynomial(t *testing.T) {
	assert := assert.New(t)

	fake = [8]uint32{}
	crc := NewCrc(uintptr(unsafe.Pointer(&fake[0])))

	for n := range CRC_POLY_LEN {
		crc.Poly.Coef.WriteAt(uint16(0x1021+n), n)
	}
	for n := range CRC_POLY_LEN {
		assert.Equal(uint16(0x1021+n), crc.Poly.Reg.Load(n))
	}
	assert.Zero(fake[7])
}
