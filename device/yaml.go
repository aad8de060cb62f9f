package device

import (
	"io"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads a device description written by WriteYAML, or by hand.
// An omitted access policy is inherited from the enclosing element.
func LoadYAML(r io.Reader) (dev *Device, err error) {
	dev = &Device{}
	err = yaml.NewDecoder(r).Decode(dev)
	if err != nil {
		dev = nil
		return
	}

	dev.resolve()
	return
}

// WriteYAML writes the device description as YAML.
func (dev *Device) WriteYAML(w io.Writer) (err error) {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	err = enc.Encode(dev)
	if err != nil {
		return
	}

	err = enc.Close()
	return
}

func (dev *Device) UnmarshalYAML(node *yaml.Node) (err error) {
	type plain Device
	p := plain{Access: AccessInherit}
	if err = node.Decode(&p); err != nil {
		return
	}
	*dev = Device(p)
	return
}

func (p *Peripheral) UnmarshalYAML(node *yaml.Node) (err error) {
	type plain Peripheral
	pp := plain{Access: AccessInherit}
	if err = node.Decode(&pp); err != nil {
		return
	}
	*p = Peripheral(pp)
	return
}

func (reg *Register) UnmarshalYAML(node *yaml.Node) (err error) {
	type plain Register
	pr := plain{Access: AccessInherit}
	if err = node.Decode(&pr); err != nil {
		return
	}
	*reg = Register(pr)
	return
}

func (fd *Field) UnmarshalYAML(node *yaml.Node) (err error) {
	type plain Field
	pf := plain{Access: AccessInherit}
	if err = node.Decode(&pf); err != nil {
		return
	}
	*fd = Field(pf)
	return
}
