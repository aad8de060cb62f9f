// Package device describes the register maps of a microcontroller's
// peripherals.
//
// A Device is loaded from a CMSIS-SVD file (ParseSVD), a Starlark script
// (LoadScript) or YAML (LoadYAML), and checked with Validate against the
// same layout rules the bitfield package enforces. The gen package turns a
// validated Device into bitfield declarations.
package device
