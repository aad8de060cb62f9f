// Package gen writes Go register maps from a device description.
//
// Each peripheral becomes a struct of bitfield descriptors, one nested struct
// per register, and a constructor placing it at a base address. Every
// instance of the peripheral becomes a package-level variable, and the enumerated
// values of its fields become constants.
package gen

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/ezrec/mmreg/bitfield"
	"github.com/ezrec/mmreg/device"
	"github.com/ezrec/mmreg/translate"
)

// DEFAULT_IMPORT is the bitfield package the generated code uses.
const DEFAULT_IMPORT = "github.com/ezrec/mmreg/bitfield"

// Options of the generated file.
type Options struct {
	Package string // Go package name.
	Import  string // Import path of the bitfield package; DEFAULT_IMPORT if empty.
	Tags    string // Build constraint, if any.
	Source  string // Description file named in the header.
}

// Generator writes register maps.
type Generator struct {
	Options
	Verbose bool
}

type fileView struct {
	Options
	Peripherals []*peripheralView
}

type peripheralView struct {
	Name      string
	Type      string
	Doc       string
	Consts    []constView
	Registers []registerView
	Instances []instanceView
	Checks    []checkView
}

type constView struct {
	Ident string
	Value string
	Doc   string
}

type registerView struct {
	Ident  string
	Doc    string
	Word   string
	Offset uint64
	Array  bool
	Stride uint64
	Fields []fieldView
}

type fieldView struct {
	Ident string
	Doc   string
	Type  string
	Ctor  string
	Args  string
}

type instanceView struct {
	Ident string
	Base  uint64
	Doc   string
}

type checkView struct {
	Type string
	Bits uint
	Path string
}

var _bit_types = map[bitfield.Policy]string{
	bitfield.ReadOnly:     "ROBit",
	bitfield.WriteOnly:    "WOBit",
	bitfield.ReadWrite:    "Bit",
	bitfield.ReadAndClear: "RCBit",
}

var _field_types = map[bitfield.Policy]string{
	bitfield.ReadOnly:     "RO",
	bitfield.WriteOnly:    "WO",
	bitfield.ReadWrite:    "RW",
	bitfield.ReadAndClear: "RC",
}

// fieldOf describes one field of a register, named uniquely in idents.
func fieldOf(reg *device.Register, fd *device.Field, idents scope) (fv fieldView) {
	word := fmt.Sprintf("uint%d", reg.Size)
	fv.Ident = idents.claim(exported(fd.Name))
	fv.Doc = fd.Description

	if fd.Width == 1 {
		kind := _bit_types[fd.Access]
		fv.Type = fmt.Sprintf("bitfield.%s[%s]", kind, word)
		fv.Ctor = "bitfield.New" + kind
		fv.Args = fmt.Sprintf("%d", fd.Offset)
		return
	}

	kind := _field_types[fd.Access]
	value := fmt.Sprintf("uint%d", device.ValueBits(fd.Width))
	fv.Type = fmt.Sprintf("bitfield.%s[%s, %s]", kind, value, word)
	fv.Ctor = fmt.Sprintf("bitfield.New%s[%s]", kind, value)
	fv.Args = fmt.Sprintf("%d, %d", fd.Offset, fd.Width)
	return
}

// typeName picks the Go type of a peripheral, preferring its group name,
// and declares it with its constructor in used.
func typeName(p *device.Peripheral, used scope) (name string) {
	base := exported(p.Name)
	if p.Group != "" && !used[exported(p.Group)] {
		base = exported(p.Group)
	}

	name = base
	for n := 2; used[name] || used["New"+name]; n++ {
		name = fmt.Sprintf("%s_%d", base, n)
	}
	used[name] = true
	used["New"+name] = true
	return
}

// constPrefix picks the prefix of the constants of a peripheral. The first
// peripheral of a group uses the group name, the others their own.
func constPrefix(p *device.Peripheral, prefixes scope) string {
	if p.Group != "" && !prefixes[constant(p.Group)] {
		return prefixes.claim(constant(p.Group))
	}
	return prefixes.claim(constant(p.Name))
}

// fileScope holds the names declared by one generated file.
type fileScope struct {
	idents   scope // Package-level identifiers.
	prefixes scope // Constant prefixes.
}

func newFileScope() *fileScope {
	return &fileScope{
		idents:   scope{"bitfield": true},
		prefixes: scope{},
	}
}

func (gen *Generator) peripheral(p *device.Peripheral, fs *fileScope) (pv *peripheralView) {
	pv = &peripheralView{
		Name: p.Name,
		Type: typeName(p, fs.idents),
		Doc:  p.Description,
	}
	prefix := constPrefix(p, fs.prefixes)

	registers := scope{}
	for _, reg := range p.Registers {
		rv := registerView{
			Ident:  registers.claim(exported(reg.Name)),
			Doc:    reg.Description,
			Word:   fmt.Sprintf("uint%d", reg.Size),
			Offset: reg.Offset,
			Array:  reg.IsArray(),
			Stride: reg.Stride(),
		}
		if rv.Doc == "" {
			rv.Doc = reg.Name
		} else {
			rv.Doc = reg.Name + ": " + rv.Doc
		}
		if rv.Array {
			pv.Consts = append(pv.Consts, constView{
				Ident: fs.idents.claim(constant(prefix, reg.Name, "LEN")),
				Value: fmt.Sprintf("%d", reg.Dim),
				Doc:   "Registers in " + reg.Name,
			})
		}

		fields := reg.Fields
		if len(fields) == 0 {
			fields = []*device.Field{{Name: "Value", Width: reg.Size, Access: reg.Access}}
		}

		members := scope{"Reg": true}
		for _, fd := range fields {
			rv.Fields = append(rv.Fields, fieldOf(reg, fd, members))

			path := reg.Name + "." + fd.Name
			pv.Checks = append(pv.Checks,
				checkView{Type: rv.Word, Bits: fd.Offset + fd.Width, Path: path},
				checkView{Type: fmt.Sprintf("uint%d", device.ValueBits(fd.Width)), Bits: fd.Width, Path: path},
			)

			for _, ev := range fd.Values {
				pv.Consts = append(pv.Consts, constView{
					Ident: fs.idents.claim(constant(prefix, reg.Name, fd.Name) + "_" + verbatim(ev.Name)),
					Value: fmt.Sprintf("%#x", ev.Value),
					Doc:   ev.Description,
				})
			}
		}

		if gen.Verbose {
			log.Printf("gen: %v.%v: %d fields", p.Name, reg.Name, len(rv.Fields))
		}
		pv.Registers = append(pv.Registers, rv)
	}

	for _, inst := range p.Instances {
		iv := instanceView{
			Ident: fs.idents.claim(verbatim(inst.Name)),
			Base:  inst.BaseAddress,
		}
		var irqs []string
		for _, irq := range inst.Interrupts {
			irqs = append(irqs, fmt.Sprintf("%d", irq))
		}
		if len(irqs) != 0 {
			iv.Doc = "IRQ " + strings.Join(irqs, ", ")
		}
		pv.Instances = append(pv.Instances, iv)
	}

	return
}

// Generate returns the formatted Go source of the named peripherals, or of
// every peripheral when no names are given. The device is validated first.
//
// When formatting fails, the unformatted source is returned with the error.
func (gen *Generator) Generate(dev *device.Device, names ...string) (src []byte, err error) {
	if gen.Package == "" {
		err = ErrPackageName
		return
	}
	err = dev.Validate()
	if err != nil {
		return
	}

	peripherals := dev.Peripherals
	if len(names) != 0 {
		peripherals = nil
		for _, name := range names {
			p, ok := dev.Peripheral(name)
			if !ok {
				err = &device.PathError{Path: name, Err: device.ErrPeripheralMissing}
				return
			}
			peripherals = append(peripherals, p)
		}
	}
	if len(peripherals) == 0 {
		err = ErrNoPeripherals
		return
	}

	view := &fileView{Options: gen.Options}
	if view.Import == "" {
		view.Import = DEFAULT_IMPORT
	}

	fs := newFileScope()
	for _, p := range peripherals {
		if gen.Verbose {
			log.Printf("gen: %v: %d registers, %d instances", p.Name, len(p.Registers), len(p.Instances))
		}
		view.Peripherals = append(view.Peripherals, gen.peripheral(p, fs))
	}

	var buf bytes.Buffer
	err = _templates.ExecuteTemplate(&buf, "file", view)
	if err != nil {
		return
	}

	src, err = imports.Process(gen.Package+".go", buf.Bytes(), nil)
	if err != nil {
		src = buf.Bytes()
		err = translate.Errorf(err, "format %v", gen.Package)
	}
	return
}

// WriteFile generates the named peripherals into path.
func (gen *Generator) WriteFile(path string, dev *device.Device, names ...string) (err error) {
	src, err := gen.Generate(dev, names...)
	if err != nil {
		if src != nil {
			_ = os.WriteFile(path+".broken", src, 0o644)
		}
		return
	}

	err = os.WriteFile(path, src, 0o644)
	if err == nil && gen.Verbose {
		log.Printf("gen: wrote %v", path)
	}
	return
}
