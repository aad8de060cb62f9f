// Package bitfield reads and writes bit ranges inside memory-mapped registers.
//
// A Register locates one register, or a strided array of identical
// registers, and fixes the storage width of every access through its type
// parameter. Fields are bound to a Register at declaration and carry their
// bit offset, bit width, logical value type and access policy:
//
//	var (
//		cr     = bitfield.NewRegister[uint32](0x4002_3008)
//		reset  = bitfield.NewWOBit(cr, 0)
//		revIn  = bitfield.NewRW[uint8](cr, 5, 2)
//		revOut = bitfield.NewBit(cr, 7)
//	)
//
// The access policy selects the descriptor type, and each type only has the
// methods its policy allows: RO and RC have no Write, WO has no Read, and
// only the single-bit types have Set and Clear. Layout errors (a field that
// does not fit its register or its value type) panic while the declaring
// package is initialized, are reported at build time by the fieldcheck
// analyzer, and fail compilation in code emitted by the gen package.
//
// Every Read is exactly one load. A WO Write is exactly one store of the
// field bits alone, so the other bits of the word are written as zero. An RW
// Write is a load, a merge and a store. That sequence is not atomic: a
// context which modifies the same word between the load and the store loses
// its update. Callers that share a word with interrupt handlers, other cores
// or DMA either hold their own critical section (RW.WriteLocked) or use the
// compare-and-swap variants (RW.WriteAtomic, Bit.SetAtomic, Bit.ClearAtomic).
//
// Values wider than the field are masked, not checked.
package bitfield
