package device

import (
	"errors"
	"iter"
	"strings"

	"github.com/ezrec/mmreg/bitfield"
	"github.com/ezrec/mmreg/internal"
)

// AccessInherit marks an access policy taken from the enclosing element:
// field from register, register from peripheral, peripheral from device.
const AccessInherit = bitfield.Policy(-1)

// DEFAULT_WIDTH is the register size, in bits, when none is declared.
const DEFAULT_WIDTH = 32

// Device is a microcontroller and its peripherals.
type Device struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description,omitempty"`
	Width       uint            `yaml:"width,omitempty"` // Default register size in bits.
	Access      bitfield.Policy `yaml:"access"`          // Default access policy.
	Peripherals []*Peripheral   `yaml:"peripherals"`
}

// Peripheral is the register map shared by one or more instances of a
// hardware block.
type Peripheral struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description,omitempty"`
	Group       string          `yaml:"group,omitempty"`
	Access      bitfield.Policy `yaml:"access"`
	Instances   []Instance      `yaml:"instances,omitempty"`
	Registers   []*Register     `yaml:"registers"`
}

// Instance places a peripheral at a base address.
type Instance struct {
	Name        string `yaml:"name"`
	BaseAddress uint64 `yaml:"base"`
	Interrupts  []int  `yaml:"interrupts,omitempty"`
}

// Register is a register, or an array of Dim registers Increment bytes
// apart, at Offset bytes from the peripheral base.
type Register struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description,omitempty"`
	Offset      uint64          `yaml:"offset"`
	Size        uint            `yaml:"size,omitempty"` // Bits.
	Access      bitfield.Policy `yaml:"access"`
	ResetValue  uint64          `yaml:"reset,omitempty"`
	Dim         int             `yaml:"dim,omitempty"`
	Increment   uint64          `yaml:"increment,omitempty"`
	Fields      []*Field        `yaml:"fields,omitempty"`
}

// Field is a bit range of a register.
type Field struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description,omitempty"`
	Offset      uint            `yaml:"offset"`
	Width       uint            `yaml:"width"`
	Access      bitfield.Policy `yaml:"access"`
	Values      []EnumValue     `yaml:"values,omitempty"`
}

// EnumValue names one value of a field.
type EnumValue struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Value       uint64 `yaml:"value"`
}

// ValueBits is the size of the smallest unsigned integer holding width bits.
func ValueBits(width uint) uint {
	switch {
	case width <= 8:
		return 8
	case width <= 16:
		return 16
	case width <= 32:
		return 32
	default:
		return 64
	}
}

// Mask of the field bits in its register.
func (fd *Field) Mask() uint64 {
	return bitfield.Mask[uint64](fd.Offset, fd.Width)
}

// IsArray is true for a register with more than one instance.
func (reg *Register) IsArray() bool {
	return reg.Dim > 1
}

// Stride is the distance in bytes between instances of the register.
func (reg *Register) Stride() uint64 {
	if reg.Increment == 0 {
		return uint64(reg.Size / 8)
	}
	return reg.Increment
}

// Peripheral finds a peripheral by name, ignoring case.
func (dev *Device) Peripheral(name string) (p *Peripheral, ok bool) {
	for _, p = range dev.Peripherals {
		if strings.EqualFold(p.Name, name) {
			ok = true
			return
		}
	}

	p = nil
	return
}

// Registers yields every register with its peripheral.
func (dev *Device) Registers() iter.Seq2[*Peripheral, *Register] {
	seqs := make([]iter.Seq2[*Peripheral, *Register], 0, len(dev.Peripherals))
	for _, p := range dev.Peripherals {
		seqs = append(seqs, internal.IterPairs(p, p.Registers))
	}
	return internal.IterSeq2Concat(seqs...)
}

// Fields yields every field with its register.
func (dev *Device) Fields() iter.Seq2[*Register, *Field] {
	var seqs []iter.Seq2[*Register, *Field]
	for _, reg := range dev.Registers() {
		seqs = append(seqs, internal.IterPairs(reg, reg.Fields))
	}
	return internal.IterSeq2Concat(seqs...)
}

// resolve fills in inherited sizes, strides and access policies.
func (dev *Device) resolve() {
	if dev.Width == 0 {
		dev.Width = DEFAULT_WIDTH
	}
	if dev.Access == AccessInherit {
		dev.Access = bitfield.ReadWrite
	}

	for _, p := range dev.Peripherals {
		if p.Access == AccessInherit {
			p.Access = dev.Access
		}
		for _, reg := range p.Registers {
			if reg.Size == 0 {
				reg.Size = dev.Width
			}
			if reg.Access == AccessInherit {
				reg.Access = p.Access
			}
			if reg.IsArray() && reg.Increment == 0 {
				reg.Increment = uint64(reg.Size / 8)
			}
			for _, fd := range reg.Fields {
				if fd.Access == AccessInherit {
					fd.Access = reg.Access
				}
			}
		}
	}
}

// names detects duplicated names within one scope.
type names map[string]bool

func (n names) check(path, name string) (err error) {
	switch {
	case name == "":
		err = &PathError{Path: path, Err: ErrNameMissing}
	case n[strings.ToUpper(name)]:
		err = &PathError{Path: path + name, Err: ErrNameDuplicate}
	default:
		n[strings.ToUpper(name)] = true
	}
	return
}

// Validate checks every register and field of the device, and returns all
// the problems found joined into one error.
func (dev *Device) Validate() (err error) {
	var errs []error

	peripherals := names{}
	instances := names{}
	for _, p := range dev.Peripherals {
		if err := peripherals.check("", p.Name); err != nil {
			errs = append(errs, err)
			continue
		}
		for _, inst := range p.Instances {
			if err := instances.check(p.Name+":", inst.Name); err != nil {
				errs = append(errs, err)
			}
		}

		registers := names{}
		for _, reg := range p.Registers {
			path := p.Name + "." + reg.Name
			if err := registers.check(p.Name+".", reg.Name); err != nil {
				errs = append(errs, err)
				continue
			}
			errs = append(errs, reg.validate(path)...)
		}
	}

	err = errors.Join(errs...)
	return
}

func (reg *Register) validate(path string) (errs []error) {
	switch reg.Size {
	case 8, 16, 32, 64:
	default:
		errs = append(errs, &PathError{Path: path, Err: ErrRegisterSize})
		return
	}

	align := uint64(reg.Size / 8)
	if reg.Offset%align != 0 || reg.Stride()%align != 0 {
		errs = append(errs, &PathError{Path: path, Err: ErrRegisterAlign})
	}
	if !reg.Access.Valid() {
		errs = append(errs, &PathError{Path: path, Err: bitfield.ErrPolicyInvalid})
	}

	fields := names{}
	var used uint64
	for _, fd := range reg.Fields {
		fpath := path + "." + fd.Name
		if err := fields.check(path+".", fd.Name); err != nil {
			errs = append(errs, err)
			continue
		}
		if !fd.Access.Valid() {
			errs = append(errs, &PathError{Path: fpath, Err: bitfield.ErrPolicyInvalid})
		}
		err := bitfield.CheckField(reg.Size, ValueBits(fd.Width), fd.Offset, fd.Width)
		if err != nil {
			errs = append(errs, &PathError{Path: fpath, Err: err})
			continue
		}
		mask := fd.Mask()
		if used&mask != 0 {
			errs = append(errs, &PathError{Path: fpath, Err: ErrFieldOverlap})
		}
		used |= mask

		limit := mask >> fd.Offset
		for _, ev := range fd.Values {
			if ev.Value > limit {
				errs = append(errs, &PathError{Path: fpath + "." + ev.Name, Err: ErrEnumRange})
			}
		}
	}

	return
}
