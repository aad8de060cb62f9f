package bitfield

import (
	"strings"
)

// Policy is the access capability of a field, as implemented by the hardware.
type Policy int

//go:generate go tool stringer -linecomment -type=Policy
const (
	ReadOnly     = Policy(0) // read-only
	WriteOnly    = Policy(1) // write-only
	ReadWrite    = Policy(2) // read-write
	ReadAndClear = Policy(3) // read-clear
)

// Accepted spellings, including the CMSIS-SVD access names.
var _policy_names = map[string]Policy{
	"read-only":      ReadOnly,
	"readonly":       ReadOnly,
	"ro":             ReadOnly,
	"r":              ReadOnly,
	"write-only":     WriteOnly,
	"writeonly":      WriteOnly,
	"writeonce":      WriteOnly,
	"wo":             WriteOnly,
	"w":              WriteOnly,
	"read-write":     ReadWrite,
	"readwrite":      ReadWrite,
	"read-writeonce": ReadWrite,
	"rw":             ReadWrite,
	"read-clear":     ReadAndClear,
	"readclear":      ReadAndClear,
	"rc":             ReadAndClear,
}

// ParsePolicy converts a policy name to a Policy. Matching is case
// insensitive.
func ParsePolicy(text string) (p Policy, err error) {
	p, ok := _policy_names[strings.ToLower(strings.TrimSpace(text))]
	if !ok {
		err = ErrPolicy(text)
	}
	return
}

// Valid is true for the four defined policies.
func (p Policy) Valid() bool {
	return p >= ReadOnly && p <= ReadAndClear
}

// CanRead is true if a field with this policy may be read.
func (p Policy) CanRead() bool {
	return p == ReadOnly || p == ReadWrite || p == ReadAndClear
}

// CanWrite is true if a field with this policy may be written.
func (p Policy) CanWrite() bool {
	return p == WriteOnly || p == ReadWrite
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() (text []byte, err error) {
	if !p.Valid() {
		err = ErrPolicy(p.String())
		return
	}
	text = []byte(p.String())
	return
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(text []byte) (err error) {
	*p, err = ParsePolicy(string(text))
	return
}
