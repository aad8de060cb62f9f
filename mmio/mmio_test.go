//go:build unix

package mmio

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/mmreg/bitfield"
)

// regionFile stands in for /dev/mem: two pages of zeros with one word set.
func regionFile(t *testing.T) string {
	data := make([]byte, 2*os.Getpagesize())
	binary.NativeEndian.PutUint32(data[0x1010:], 0x12345678)

	path := filepath.Join(t.TempDir(), "mem")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestMapWindow(t *testing.T) {
	assert := assert.New(t)

	path := regionFile(t)
	w, err := Map(path, 0x1010, 0x20)
	require.NoError(t, err)

	assert.Equal(uint64(0x1010), w.Phys())
	assert.Equal(0x20, w.Size())
	assert.NotZero(w.Base())
	assert.Zero(w.Base() % 0x10)

	addr, err := w.Address(0x1018)
	assert.NoError(err)
	assert.Equal(w.Base()+8, addr)

	_, err = w.Address(0x100F)
	assert.ErrorIs(err, ErrOutOfWindow)
	_, err = w.Address(0x1030)
	assert.ErrorIs(err, ErrOutOfWindow)

	reg, err := NewRegister[uint32](w, 0x1010, 0, 1)
	require.NoError(t, err)
	mid := bitfield.NewRW[uint8](reg, 8, 8)
	assert.Equal(uint8(0x56), mid.Read())
	mid.Write(0xAB)
	assert.Equal(uint32(0x1234AB78), reg.Load(0))

	assert.NoError(w.Close())
	assert.ErrorIs(w.Close(), ErrWindowClosed)
	_, err = w.Address(0x1010)
	assert.ErrorIs(err, ErrWindowClosed)
	assert.Zero(w.Base())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(uint32(0x1234AB78), binary.NativeEndian.Uint32(data[0x1010:]))
}

func TestNewRegister(t *testing.T) {
	assert := assert.New(t)

	w, err := Map(regionFile(t), 0x1000, 0x40)
	require.NoError(t, err)
	defer w.Close()

	_, err = NewRegister[uint32](w, 0x1002, 0, 1)
	assert.ErrorIs(err, bitfield.ErrAddressAlign)

	_, err = NewRegister[uint32](w, 0x1000, 6, 2)
	assert.ErrorIs(err, bitfield.ErrStrideAlign)

	reg, err := NewRegister[uint16](w, 0x1030, 4, 4)
	assert.NoError(err)
	assert.Equal(uintptr(4), reg.StrideBytes())

	_, err = NewRegister[uint16](w, 0x1030, 4, 5)
	assert.ErrorIs(err, ErrOutOfWindow)

	_, err = NewRegister[uint64](w, 0x103C, 0, 1)
	assert.ErrorIs(err, bitfield.ErrAddressAlign)

	_, err = NewRegister[uint64](w, 0x1040, 0, 1)
	assert.ErrorIs(err, ErrOutOfWindow)
}

func TestMapErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := Map(filepath.Join(t.TempDir(), "missing"), 0, 8)
	assert.ErrorIs(err, os.ErrNotExist)

	_, err = Map(regionFile(t), 0, 0)
	assert.ErrorIs(err, ErrWindowSize)
}
