package device

import (
	"fmt"
	"log"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/mmreg/bitfield"
)

// scriptValue carries a description element through a Starlark script.
type scriptValue[T any] struct {
	kind string
	name string
	v    *T
}

func (sv *scriptValue[T]) String() string       { return fmt.Sprintf("%s(%q)", sv.kind, sv.name) }
func (sv *scriptValue[T]) Type() string         { return sv.kind }
func (sv *scriptValue[T]) Freeze()              {}
func (sv *scriptValue[T]) Truth() starlark.Bool { return starlark.True }
func (sv *scriptValue[T]) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: %s", sv.kind)
}

func scriptAccess(text string) (p bitfield.Policy, err error) {
	if text == "" {
		p = AccessInherit
		return
	}
	p, err = bitfield.ParsePolicy(text)
	return
}

// scriptList collects the elements of kind from an optional list argument.
func scriptList[T any](fn string, kind string, list *starlark.List) (items []*T, err error) {
	if list == nil {
		return
	}
	for i := 0; i < list.Len(); i++ {
		sv, ok := list.Index(i).(*scriptValue[T])
		if !ok || sv.kind != kind {
			err = fmt.Errorf("%s: element %d is %s, want %s", fn, i, list.Index(i).Type(), kind)
			return
		}
		items = append(items, sv.v)
	}
	return
}

func builtinField(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var name, access, description string
	var offset, width uint
	var values *starlark.Dict
	err = starlark.UnpackArgs(fn.Name(), args, kwargs,
		"name", &name, "offset", &offset, "width", &width,
		"access?", &access, "description?", &description, "values?", &values)
	if err != nil {
		return
	}

	fd := &Field{Name: name, Offset: offset, Width: width, Description: description}
	fd.Access, err = scriptAccess(access)
	if err != nil {
		return
	}
	if values != nil {
		for _, item := range values.Items() {
			key, ok := starlark.AsString(item[0])
			if !ok {
				err = fmt.Errorf("%s: value name %v is not a string", fn.Name(), item[0])
				return
			}
			var v uint64
			if err = starlark.AsInt(item[1], &v); err != nil {
				err = fmt.Errorf("%s: value %s: %w", fn.Name(), key, err)
				return
			}
			fd.Values = append(fd.Values, EnumValue{Name: key, Value: v})
		}
	}

	value = &scriptValue[Field]{kind: "field", name: name, v: fd}
	return
}

func builtinRegister(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var name, access, description string
	var offset, reset, stride uint64
	var size uint
	var dim int
	var fields *starlark.List
	err = starlark.UnpackArgs(fn.Name(), args, kwargs,
		"name", &name, "offset", &offset, "fields?", &fields,
		"size?", &size, "access?", &access, "dim?", &dim, "stride?", &stride,
		"reset?", &reset, "description?", &description)
	if err != nil {
		return
	}

	reg := &Register{
		Name:        name,
		Description: description,
		Offset:      offset,
		Size:        size,
		ResetValue:  reset,
		Dim:         dim,
		Increment:   stride,
	}
	reg.Access, err = scriptAccess(access)
	if err != nil {
		return
	}
	reg.Fields, err = scriptList[Field](fn.Name(), "field", fields)
	if err != nil {
		return
	}

	value = &scriptValue[Register]{kind: "register", name: name, v: reg}
	return
}

func builtinInstance(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var name string
	var base uint64
	var interrupt starlark.Value = starlark.None
	err = starlark.UnpackArgs(fn.Name(), args, kwargs,
		"name", &name, "base", &base, "interrupt?", &interrupt)
	if err != nil {
		return
	}

	inst := &Instance{Name: name, BaseAddress: base}
	if interrupt != starlark.None {
		var irq int
		if err = starlark.AsInt(interrupt, &irq); err != nil {
			err = fmt.Errorf("%s: interrupt: %w", fn.Name(), err)
			return
		}
		inst.Interrupts = []int{irq}
	}

	value = &scriptValue[Instance]{kind: "instance", name: name, v: inst}
	return
}

func builtinPeripheral(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var name, access, description, group string
	var registers, instances *starlark.List
	err = starlark.UnpackArgs(fn.Name(), args, kwargs,
		"name", &name, "registers?", &registers, "instances?", &instances,
		"access?", &access, "description?", &description, "group?", &group)
	if err != nil {
		return
	}

	p := &Peripheral{Name: name, Description: description, Group: group}
	p.Access, err = scriptAccess(access)
	if err != nil {
		return
	}
	p.Registers, err = scriptList[Register](fn.Name(), "register", registers)
	if err != nil {
		return
	}
	insts, err := scriptList[Instance](fn.Name(), "instance", instances)
	if err != nil {
		return
	}
	for _, inst := range insts {
		p.Instances = append(p.Instances, *inst)
	}

	value = &scriptValue[Peripheral]{kind: "peripheral", name: name, v: p}
	return
}

func builtinDevice(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var name, access, description string
	var width uint
	var peripherals *starlark.List
	err = starlark.UnpackArgs(fn.Name(), args, kwargs,
		"name", &name, "peripherals?", &peripherals,
		"width?", &width, "access?", &access, "description?", &description)
	if err != nil {
		return
	}

	dev := &Device{Name: name, Description: description, Width: width}
	dev.Access, err = scriptAccess(access)
	if err != nil {
		return
	}
	dev.Peripherals, err = scriptList[Peripheral](fn.Name(), "peripheral", peripherals)
	if err != nil {
		return
	}

	value = &scriptValue[Device]{kind: "device", name: name, v: dev}
	return
}

var _script_builtins = starlark.StringDict{
	"device":     starlark.NewBuiltin("device", builtinDevice),
	"peripheral": starlark.NewBuiltin("peripheral", builtinPeripheral),
	"instance":   starlark.NewBuiltin("instance", builtinInstance),
	"register":   starlark.NewBuiltin("register", builtinRegister),
	"field":      starlark.NewBuiltin("field", builtinField),
}

// LoadScript runs a Starlark device description and returns the device it
// assigns to the global DEVICE. The source is a filename, string, []byte or
// io.Reader as for starlark.ExecFileOptions.
//
//	CRC = peripheral("CRC",
//	    instances = [instance("CRC1", 0x40023000)],
//	    registers = [
//	        register("CR", 0x8, fields = [
//	            field("RESET", 0, 1),
//	            field("REV_IN", 5, 2),
//	        ]),
//	    ])
//	DEVICE = device("stm32f072x", peripherals = [CRC])
//
// Omitted access policies are inherited; print() goes to the log.
func LoadScript(filename string, src any) (dev *Device, err error) {
	thread := starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			log.Printf("%v: %v", filename, msg)
		},
	}
	opts := syntax.FileOptions{}

	globals, err := starlark.ExecFileOptions(&opts, &thread, filename, src, _script_builtins)
	if err != nil {
		return
	}

	sv, ok := globals["DEVICE"].(*scriptValue[Device])
	if !ok {
		err = ErrDeviceMissing
		return
	}

	dev = sv.v
	dev.resolve()
	return
}
