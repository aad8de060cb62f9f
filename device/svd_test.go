package device

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/mmreg/bitfield"
)

// checkCRC verifies the CRC controller description shared by the loader tests.
func checkCRC(t *testing.T, dev *Device) {
	assert := assert.New(t)

	require.NoError(t, dev.Validate())
	assert.Equal("STM32F072x", dev.Name)
	assert.Equal(uint(32), dev.Width)
	require.Len(t, dev.Peripherals, 1)

	crc := dev.Peripherals[0]
	assert.Equal("CRC", crc.Group)
	require.Len(t, crc.Instances, 3)
	assert.Equal(uint64(0x40023000), crc.Instances[0].BaseAddress)
	assert.Equal([]int{31}, crc.Instances[0].Interrupts)
	assert.Equal("CRC2", crc.Instances[1].Name)
	assert.Equal(uint64(0x40004000), crc.Instances[1].BaseAddress)
	assert.Equal("CRC3", crc.Instances[2].Name)
	assert.Equal(uint64(0x40004400), crc.Instances[2].BaseAddress)

	var names []string
	for _, reg := range crc.Registers {
		names = append(names, reg.Name)
	}
	assert.Equal([]string{"DR", "IDR", "CR", "INIT", "SR", "POLY"}, names)

	idr := crc.Registers[1]
	assert.Equal(uint64(0x4), idr.Offset)
	assert.Equal(uint(0), idr.Fields[0].Offset)
	assert.Equal(uint(8), idr.Fields[0].Width)

	cr := crc.Registers[2]
	require.Len(t, cr.Fields, 3)
	assert.Equal(bitfield.WriteOnly, cr.Fields[0].Access)
	assert.Equal(uint(5), cr.Fields[1].Offset)
	assert.Equal(uint(2), cr.Fields[1].Width)
	assert.Equal(bitfield.ReadWrite, cr.Fields[1].Access)
	assert.Equal(uint64(0x60), cr.Fields[1].Mask())
	require.Len(t, cr.Fields[1].Values, 4)
	assert.Equal("HalfWord", cr.Fields[1].Values[2].Name)
	assert.Equal(uint64(2), cr.Fields[1].Values[2].Value)
	assert.Equal(uint(7), cr.Fields[2].Offset)

	sr := crc.Registers[4]
	assert.Equal(bitfield.ReadOnly, sr.Access)
	assert.Equal(bitfield.ReadAndClear, sr.Fields[0].Access)
	assert.Equal(bitfield.ReadOnly, sr.Fields[1].Access)

	poly := crc.Registers[5]
	assert.Equal(uint(16), poly.Size)
	assert.Equal(4, poly.Dim)
	assert.Equal(uint64(2), poly.Stride())
}

func TestParseSVD(t *testing.T) {
	assert := assert.New(t)

	inf, err := os.Open("testdata/stm32f072x_crc.svd")
	require.NoError(t, err)
	defer inf.Close()

	dev, err := ParseSVD(inf)
	require.NoError(t, err)
	checkCRC(t, dev)

	crc := dev.Peripherals[0]
	assert.Equal("cyclic redundancy check calculation unit", crc.Description)
	assert.Equal(uint64(0xFFFFFFFF), crc.Registers[0].ResetValue)
}

func TestParseSVD_Errors(t *testing.T) {
	assert := assert.New(t)

	_, err := ParseSVD(strings.NewReader(`<device><peripherals>
		<peripheral derivedFrom="NOPE"><name>X</name><baseAddress>0</baseAddress></peripheral>
	</peripherals></device>`))
	assert.ErrorIs(err, ErrDerivedMissing)

	_, err = ParseSVD(strings.NewReader(`<device><peripherals>
		<peripheral><name>X</name><baseAddress>0xZZ</baseAddress></peripheral>
	</peripherals></device>`))
	assert.Error(err)

	_, err = ParseSVD(strings.NewReader(`<device><peripherals>
		<peripheral><name>X</name><baseAddress>0x0</baseAddress><registers>
			<register><name>R</name><addressOffset>0</addressOffset><fields>
				<field><name>F</name><bitRange>[2:5]</bitRange></field>
			</fields></register>
		</registers></peripheral>
	</peripherals></device>`))
	assert.ErrorIs(err, ErrBitRange)

	_, err = ParseSVD(strings.NewReader(`<device><access>sideways</access></device>`))
	assert.ErrorIs(err, bitfield.ErrPolicyInvalid)
}

func TestParseSVD_Cluster(t *testing.T) {
	assert := assert.New(t)

	dev, err := ParseSVD(strings.NewReader(`<device><peripherals>
		<peripheral><name>DMA</name><baseAddress>0x40020000</baseAddress><registers>
			<cluster><name>CH%s</name><dim>3</dim><dimIncrement>0x14</dimIncrement>
				<addressOffset>0x8</addressOffset>
				<register><name>CCR</name><addressOffset>0x0</addressOffset><fields>
					<field><name>EN</name><bitOffset>0</bitOffset><bitWidth>1</bitWidth></field>
				</fields></register>
				<register><name>TAG%s</name><addressOffset>0x4</addressOffset>
					<dim>2</dim><dimIncrement>4</dimIncrement></register>
			</cluster>
		</registers></peripheral>
	</peripherals></device>`))
	require.NoError(t, err)
	require.NoError(t, dev.Validate())

	regs := dev.Peripherals[0].Registers
	require.Len(t, regs, 4)
	assert.Equal("CH_CCR", regs[0].Name)
	assert.Equal(uint64(0x8), regs[0].Offset)
	assert.Equal(3, regs[0].Dim)
	assert.Equal(uint64(0x14), regs[0].Stride())
	assert.Equal("CH0_TAG", regs[1].Name)
	assert.Equal(uint64(0xC), regs[1].Offset)
	assert.Equal("CH2_TAG", regs[3].Name)
	assert.Equal(uint64(0xC+0x28), regs[3].Offset)
	assert.Equal(2, regs[3].Dim)
}

func TestParseSVD_Derived(t *testing.T) {
	assert := assert.New(t)

	dev, err := ParseSVD(strings.NewReader(`<device><peripherals>
		<peripheral derivedFrom="USART2"><name>USART3</name><baseAddress>0x40004800</baseAddress>
			<interrupt><name>USART3</name><value>29</value></interrupt></peripheral>
		<peripheral><name>USART1</name><description>serial port</description>
			<groupName>USART</groupName><baseAddress>0x40013800</baseAddress><registers>
			<register><name>CR1</name><addressOffset>0x0</addressOffset><fields>
				<field><name>UE</name><bitOffset>0</bitOffset><bitWidth>1</bitWidth></field>
			</fields></register>
			<register><name>BRR</name><addressOffset>0xC</addressOffset></register>
		</registers></peripheral>
		<peripheral derivedFrom="USART1"><name>USART2</name><baseAddress>0x40004400</baseAddress></peripheral>
		<peripheral derivedFrom="USART3"><name>LPUART</name><baseAddress>0x40008000</baseAddress><registers>
			<register><name>brr</name><addressOffset>0xC</addressOffset><size>16</size></register>
			<register><name>PRESC</name><addressOffset>0x2C</addressOffset></register>
		</registers></peripheral>
	</peripherals></device>`))
	require.NoError(t, err)
	require.NoError(t, dev.Validate())
	require.Len(t, dev.Peripherals, 2)

	usart := dev.Peripherals[0]
	assert.Equal("USART1", usart.Name)
	require.Len(t, usart.Instances, 3)
	assert.Equal("USART2", usart.Instances[1].Name)
	assert.Equal("USART3", usart.Instances[2].Name)
	assert.Equal([]int{29}, usart.Instances[2].Interrupts)

	lp := dev.Peripherals[1]
	assert.Equal("LPUART", lp.Name)
	assert.Equal("serial port", lp.Description)
	assert.Equal("USART", lp.Group)
	require.Len(t, lp.Instances, 1)
	assert.Equal(uint64(0x40008000), lp.Instances[0].BaseAddress)
	require.Len(t, lp.Registers, 3)
	assert.Equal("CR1", lp.Registers[0].Name)
	assert.Equal("brr", lp.Registers[1].Name)
	assert.Equal(uint(16), lp.Registers[1].Size)
	assert.Equal("PRESC", lp.Registers[2].Name)

	lp.Registers[0].Fields[0].Name = "EN"
	assert.Equal("UE", usart.Registers[0].Fields[0].Name)
	assert.Equal(uint(32), usart.Registers[1].Size)
}

func TestParseSVD_DerivedCycle(t *testing.T) {
	assert := assert.New(t)

	_, err := ParseSVD(strings.NewReader(`<device><peripherals>
		<peripheral derivedFrom="B"><name>A</name><baseAddress>0</baseAddress></peripheral>
		<peripheral derivedFrom="A"><name>B</name><baseAddress>4</baseAddress></peripheral>
	</peripherals></device>`))
	assert.ErrorIs(err, ErrDerivedMissing)
	var pe *PathError
	if assert.ErrorAs(err, &pe) {
		assert.Equal("A", pe.Path)
	}
}

func TestParseInteger(t *testing.T) {
	assert := assert.New(t)

	table := map[string]uint64{
		"42":         42,
		" 0x1F ":     0x1F,
		"0X40023000": 0x40023000,
		"#101":       5,
		"#1x1":       5,
		"0b11":       3,
	}
	for text, expect := range table {
		value, err := parseInteger(text)
		assert.NoError(err, text)
		assert.Equal(expect, value, text)
	}

	_, err := parseInteger("twelve")
	assert.Equal(ErrParseNumber("twelve"), err)
}

func TestParseBitRange(t *testing.T) {
	assert := assert.New(t)

	offset, width, err := parseBitRange("[31:0]")
	assert.NoError(err)
	assert.Equal(uint(0), offset)
	assert.Equal(uint(32), width)

	offset, width, err = parseBitRange(" [ 6 : 5 ] ")
	assert.NoError(err)
	assert.Equal(uint(5), offset)
	assert.Equal(uint(2), width)

	for _, bad := range []string{"6:5", "[6]", "[a:0]", "[0:b]", "[1:2]"} {
		_, _, err = parseBitRange(bad)
		assert.ErrorIs(err, ErrBitRange, bad)
	}
}
