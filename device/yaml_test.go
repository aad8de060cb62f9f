package device

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/mmreg/bitfield"
)

func TestYAML_RoundTrip(t *testing.T) {
	inf, err := os.Open("testdata/stm32f072x_crc.svd")
	require.NoError(t, err)
	defer inf.Close()

	dev, err := ParseSVD(inf)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, dev.WriteYAML(&buf))
	assert.Contains(t, buf.String(), "access: read-clear")

	back, err := LoadYAML(&buf)
	require.NoError(t, err)
	checkCRC(t, back)
	assert.Equal(t, dev, back)
}

func TestLoadYAML_Inherit(t *testing.T) {
	assert := assert.New(t)

	dev, err := LoadYAML(strings.NewReader(`
name: tiny
width: 16
access: read-only
peripherals:
  - name: TIMER
    instances:
      - name: TIM0
        base: 0x40000000
    registers:
      - name: CNT
        offset: 0
        fields:
          - name: VALUE
            offset: 0
            width: 16
      - name: CTRL
        offset: 2
        access: rw
        fields:
          - name: EN
            offset: 0
            width: 1
          - name: ACK
            offset: 1
            width: 1
            access: write-only
`))
	require.NoError(t, err)
	require.NoError(t, dev.Validate())

	timer := dev.Peripherals[0]
	assert.Equal(uint(16), timer.Registers[0].Size)
	assert.Equal(bitfield.ReadOnly, timer.Registers[0].Fields[0].Access)
	assert.Equal(bitfield.ReadWrite, timer.Registers[1].Fields[0].Access)
	assert.Equal(bitfield.WriteOnly, timer.Registers[1].Fields[1].Access)
	assert.Equal(uint64(0x40000000), timer.Instances[0].BaseAddress)
}

func TestLoadYAML_Errors(t *testing.T) {
	assert := assert.New(t)

	_, err := LoadYAML(strings.NewReader("name: [unterminated\n"))
	assert.Error(err)

	_, err = LoadYAML(strings.NewReader("name: x\naccess: sideways\n"))
	assert.ErrorIs(err, bitfield.ErrPolicyInvalid)
}
