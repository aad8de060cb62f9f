package device

import (
	"encoding/xml"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/ezrec/mmreg/bitfield"
)

// svdInteger is a CMSIS-SVD scaled non-negative integer: decimal, 0x
// hexadecimal or #binary. Don't-care 'x' digits of a binary number read as 0.
type svdInteger uint64

func (si *svdInteger) UnmarshalText(text []byte) (err error) {
	value, err := parseInteger(string(text))
	*si = svdInteger(value)
	return
}

func parseInteger(text string) (value uint64, err error) {
	text = strings.TrimSpace(text)
	lower := strings.ToLower(text)
	switch {
	case strings.HasPrefix(lower, "0x"):
		value, err = strconv.ParseUint(lower[2:], 16, 64)
	case strings.HasPrefix(lower, "0b"):
		value, err = strconv.ParseUint(lower[2:], 2, 64)
	case strings.HasPrefix(lower, "#"):
		value, err = strconv.ParseUint(strings.ReplaceAll(lower[1:], "x", "0"), 2, 64)
	default:
		value, err = strconv.ParseUint(lower, 10, 64)
	}
	if err != nil {
		err = ErrParseNumber(text)
	}
	return
}

type svdDevice struct {
	Name        string          `xml:"name"`
	Description string          `xml:"description"`
	Size        svdInteger      `xml:"size"`
	Access      string          `xml:"access"`
	Peripherals []svdPeripheral `xml:"peripherals>peripheral"`
}

type svdPeripheral struct {
	DerivedFrom string         `xml:"derivedFrom,attr"`
	Name        string         `xml:"name"`
	Description string         `xml:"description"`
	Group       string         `xml:"groupName"`
	BaseAddress svdInteger     `xml:"baseAddress"`
	Size        svdInteger     `xml:"size"`
	Access      string         `xml:"access"`
	Interrupts  []svdInterrupt `xml:"interrupt"`
	Registers   []svdRegister  `xml:"registers>register"`
	Clusters    []svdCluster   `xml:"registers>cluster"`
}

type svdInterrupt struct {
	Name  string     `xml:"name"`
	Value svdInteger `xml:"value"`
}

type svdCluster struct {
	Name          string        `xml:"name"`
	Description   string        `xml:"description"`
	Dim           svdInteger    `xml:"dim"`
	DimIncrement  svdInteger    `xml:"dimIncrement"`
	AddressOffset svdInteger    `xml:"addressOffset"`
	Registers     []svdRegister `xml:"register"`
}

type svdRegister struct {
	Name          string     `xml:"name"`
	Description   string     `xml:"description"`
	AddressOffset svdInteger `xml:"addressOffset"`
	Size          svdInteger `xml:"size"`
	Access        string     `xml:"access"`
	ResetValue    svdInteger `xml:"resetValue"`
	Dim           svdInteger `xml:"dim"`
	DimIncrement  svdInteger `xml:"dimIncrement"`
	Fields        []svdField `xml:"fields>field"`
}

type svdField struct {
	Name        string      `xml:"name"`
	Description string      `xml:"description"`
	BitOffset   *svdInteger `xml:"bitOffset"`
	BitWidth    svdInteger  `xml:"bitWidth"`
	Lsb         *svdInteger `xml:"lsb"`
	Msb         *svdInteger `xml:"msb"`
	BitRange    string      `xml:"bitRange"`
	Access      string      `xml:"access"`
	ReadAction  string      `xml:"readAction"`
	Enumerated  []svdEnum   `xml:"enumeratedValues>enumeratedValue"`
}

type svdEnum struct {
	Name        string `xml:"name"`
	Description string `xml:"description"`
	Value       string `xml:"value"`
	IsDefault   bool   `xml:"isDefault"`
}

// svdAccess maps an SVD access value, empty for inherited.
func svdAccess(text string) (p bitfield.Policy, err error) {
	if text == "" {
		p = AccessInherit
		return
	}
	p, err = bitfield.ParsePolicy(text)
	return
}

// svdName strips the %s placeholder of dim arrays from a name.
func svdName(name string) string {
	name = strings.ReplaceAll(name, "[%s]", "")
	name = strings.ReplaceAll(name, "%s", "")
	return strings.TrimRight(strings.TrimSpace(name), "_")
}

// ParseSVD reads a CMSIS-SVD device file.
//
// A peripheral declared with derivedFrom and no registers of its own becomes
// one more instance of the peripheral it derives from. One with registers of
// its own becomes a new peripheral: a copy of the registers it derives from,
// with its own replacing those of the same name. Derivation may be chained.
// Registers declared with dim become register arrays. Registers inside a
// cluster are flattened into the peripheral, prefixed with the cluster name.
func ParseSVD(r io.Reader) (dev *Device, err error) {
	var sd svdDevice
	err = xml.NewDecoder(r).Decode(&sd)
	if err != nil {
		return
	}

	dev = &Device{
		Name:        sd.Name,
		Description: cleanText(sd.Description),
		Width:       uint(sd.Size),
	}
	dev.Access, err = svdAccess(sd.Access)
	if err != nil {
		dev = nil
		return
	}

	byName := map[string]*Peripheral{}
	converted := make([]*Peripheral, len(sd.Peripherals))
	var pending []int
	for n, sp := range sd.Peripherals {
		if sp.DerivedFrom != "" {
			pending = append(pending, n)
			continue
		}
		converted[n], err = sp.convert()
		if err != nil {
			dev = nil
			err = &PathError{Path: sp.Name, Err: err}
			return
		}
		byName[sp.Name] = converted[n]
	}

	// Each pass resolves the peripherals whose base is known.
	for len(pending) != 0 {
		var waiting []int
		for _, n := range pending {
			sp := sd.Peripherals[n]
			base, ok := byName[sp.DerivedFrom]
			switch {
			case !ok:
				waiting = append(waiting, n)
			case len(sp.Registers) == 0 && len(sp.Clusters) == 0:
				base.Instances = append(base.Instances, sp.instance())
				byName[sp.Name] = base
			default:
				converted[n], err = sp.derive(base)
				if err != nil {
					dev = nil
					err = &PathError{Path: sp.Name, Err: err}
					return
				}
				byName[sp.Name] = converted[n]
			}
		}
		if len(waiting) == len(pending) {
			dev = nil
			err = &PathError{Path: sd.Peripherals[waiting[0]].Name, Err: ErrDerivedMissing}
			return
		}
		pending = waiting
	}

	for _, p := range converted {
		if p != nil {
			dev.Peripherals = append(dev.Peripherals, p)
		}
	}

	dev.resolve()
	return
}

// derive converts a peripheral which inherits the registers of base.
func (sp svdPeripheral) derive(base *Peripheral) (p *Peripheral, err error) {
	p, err = sp.convert()
	if err != nil {
		return
	}
	if p.Description == "" {
		p.Description = base.Description
	}
	if p.Group == "" {
		p.Group = base.Group
	}
	if sp.Access == "" {
		p.Access = base.Access
	}

	own := p.Registers
	p.Registers = nil
	for _, reg := range base.Registers {
		n := slices.IndexFunc(own, func(r *Register) bool { return strings.EqualFold(r.Name, reg.Name) })
		if n < 0 {
			p.Registers = append(p.Registers, reg.clone())
			continue
		}
		p.Registers = append(p.Registers, own[n])
		own = slices.Delete(own, n, n+1)
	}
	p.Registers = append(p.Registers, own...)
	return
}

func (reg *Register) clone() *Register {
	c := *reg
	c.Fields = make([]*Field, len(reg.Fields))
	for n, fd := range reg.Fields {
		f := *fd
		f.Values = slices.Clone(fd.Values)
		c.Fields[n] = &f
	}
	return &c
}

func (sp svdPeripheral) instance() (inst Instance) {
	inst = Instance{
		Name:        sp.Name,
		BaseAddress: uint64(sp.BaseAddress),
	}
	for _, irq := range sp.Interrupts {
		inst.Interrupts = append(inst.Interrupts, int(irq.Value))
	}
	return
}

func (sp svdPeripheral) convert() (p *Peripheral, err error) {
	p = &Peripheral{
		Name:        sp.Name,
		Description: cleanText(sp.Description),
		Group:       sp.Group,
		Instances:   []Instance{sp.instance()},
	}
	p.Access, err = svdAccess(sp.Access)
	if err != nil {
		return
	}

	for _, sr := range sp.Registers {
		var reg *Register
		reg, err = sr.convert(uint(sp.Size))
		if err != nil {
			err = &PathError{Path: sr.Name, Err: err}
			return
		}
		p.Registers = append(p.Registers, reg)
	}

	for _, sc := range sp.Clusters {
		var regs []*Register
		regs, err = sc.convert(uint(sp.Size))
		if err != nil {
			err = &PathError{Path: sc.Name, Err: err}
			return
		}
		p.Registers = append(p.Registers, regs...)
	}

	return
}

// convert flattens the cluster. A cluster array whose registers are not
// arrays themselves becomes register arrays; otherwise it is unrolled.
func (sc svdCluster) convert(size uint) (regs []*Register, err error) {
	prefix := svdName(sc.Name)
	dim := int(sc.Dim)

	for _, sr := range sc.Registers {
		var base *Register
		base, err = sr.convert(size)
		if err != nil {
			err = &PathError{Path: sr.Name, Err: err}
			return
		}
		base.Offset += uint64(sc.AddressOffset)

		switch {
		case dim <= 1:
			base.Name = prefix + "_" + base.Name
			regs = append(regs, base)
		case !base.IsArray():
			base.Name = prefix + "_" + base.Name
			base.Dim = dim
			base.Increment = uint64(sc.DimIncrement)
			regs = append(regs, base)
		default:
			for n := 0; n < dim; n++ {
				reg := *base
				reg.Name = prefix + strconv.Itoa(n) + "_" + base.Name
				reg.Offset += uint64(n) * uint64(sc.DimIncrement)
				regs = append(regs, &reg)
			}
		}
	}

	return
}

func (sr svdRegister) convert(size uint) (reg *Register, err error) {
	reg = &Register{
		Name:        svdName(sr.Name),
		Description: cleanText(sr.Description),
		Offset:      uint64(sr.AddressOffset),
		Size:        uint(sr.Size),
		ResetValue:  uint64(sr.ResetValue),
		Dim:         int(sr.Dim),
		Increment:   uint64(sr.DimIncrement),
	}
	if reg.Size == 0 {
		reg.Size = size
	}
	reg.Access, err = svdAccess(sr.Access)
	if err != nil {
		return
	}

	for _, sf := range sr.Fields {
		var fd *Field
		fd, err = sf.convert()
		if err != nil {
			err = &PathError{Path: sf.Name, Err: err}
			return
		}
		reg.Fields = append(reg.Fields, fd)
	}

	return
}

func (sf svdField) convert() (fd *Field, err error) {
	fd = &Field{
		Name:        sf.Name,
		Description: cleanText(sf.Description),
	}

	switch {
	case sf.BitOffset != nil:
		fd.Offset = uint(*sf.BitOffset)
		fd.Width = uint(sf.BitWidth)
	case sf.Lsb != nil && sf.Msb != nil:
		if *sf.Msb < *sf.Lsb {
			err = ErrBitRange
			return
		}
		fd.Offset = uint(*sf.Lsb)
		fd.Width = uint(*sf.Msb-*sf.Lsb) + 1
	case sf.BitRange != "":
		fd.Offset, fd.Width, err = parseBitRange(sf.BitRange)
		if err != nil {
			return
		}
	default:
		err = ErrBitRange
		return
	}

	fd.Access, err = svdAccess(sf.Access)
	if err != nil {
		return
	}
	if strings.EqualFold(sf.ReadAction, "clear") && fd.Access != bitfield.WriteOnly {
		fd.Access = bitfield.ReadAndClear
	}

	for _, se := range sf.Enumerated {
		if se.IsDefault || se.Value == "" {
			continue
		}
		var value uint64
		value, err = parseInteger(se.Value)
		if err != nil {
			return
		}
		fd.Values = append(fd.Values, EnumValue{
			Name:        se.Name,
			Description: cleanText(se.Description),
			Value:       value,
		})
	}

	return
}

// parseBitRange parses "[msb:lsb]".
func parseBitRange(text string) (offset, width uint, err error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "[") || !strings.HasSuffix(text, "]") {
		err = ErrBitRange
		return
	}
	msbText, lsbText, ok := strings.Cut(text[1:len(text)-1], ":")
	if !ok {
		err = ErrBitRange
		return
	}
	msb, err := strconv.ParseUint(strings.TrimSpace(msbText), 10, 32)
	if err != nil {
		err = ErrBitRange
		return
	}
	lsb, err := strconv.ParseUint(strings.TrimSpace(lsbText), 10, 32)
	if err != nil || msb < lsb {
		err = ErrBitRange
		return
	}

	offset = uint(lsb)
	width = uint(msb-lsb) + 1
	return
}

// cleanText collapses the line breaks and indentation of SVD descriptions.
func cleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
