//go:build unix

// Package mmio maps device registers into the address space of a process.
//
// A window is a shared mapping of a file whose offsets are bus addresses:
// /dev/mem, a UIO device, or the resourceN file of a PCI device in sysfs.
// Addresses taken from a window feed bitfield registers directly.
package mmio

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/ezrec/mmreg/bitfield"
	"github.com/ezrec/mmreg/translate"
)

// Window is a mapped range of bus addresses.
type Window struct {
	mem  []byte
	skip uintptr // Bytes from the page boundary to phys.
	phys uint64
	size int
}

// Map maps size bytes of path at offset phys, read-write and shared with
// the device. The mapping is extended to whole pages.
func Map(path string, phys uint64, size int) (w *Window, err error) {
	if size <= 0 {
		err = translate.Errorf(ErrWindowSize, "%v", size)
		return
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return
	}
	defer file.Close()

	page := uint64(unix.Getpagesize())
	start := phys &^ (page - 1)
	length := (phys + uint64(size) - start + page - 1) &^ (page - 1)

	mem, err := unix.Mmap(int(file.Fd()), int64(start), int(length),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		err = translate.Errorf(err, "mmap %v at %#x", path, start)
		return
	}

	w = &Window{
		mem:  mem,
		skip: uintptr(phys - start),
		phys: phys,
		size: size,
	}
	return
}

// Phys is the bus address of the start of the window.
func (w *Window) Phys() uint64 {
	return w.phys
}

// Base is the virtual address of the start of the window.
func (w *Window) Base() uintptr {
	if w.mem == nil {
		return 0
	}
	return uintptr(unsafe.Pointer(&w.mem[0])) + w.skip
}

// Size in bytes of the window, as requested.
func (w *Window) Size() int {
	return w.size
}

// Address translates a bus address in the window to a virtual address.
func (w *Window) Address(phys uint64) (addr uintptr, err error) {
	if w.mem == nil {
		err = ErrWindowClosed
		return
	}
	if phys < w.phys || phys-w.phys >= uint64(w.size) {
		err = translate.Errorf(ErrOutOfWindow, "%#x", phys)
		return
	}

	addr = w.Base() + uintptr(phys-w.phys)
	return
}

// Close unmaps the window. Registers taken from it must not be used after.
func (w *Window) Close() (err error) {
	if w.mem == nil {
		err = ErrWindowClosed
		return
	}

	err = unix.Munmap(w.mem)
	w.mem = nil
	return
}

// NewRegister returns count registers of type W at bus address phys,
// stride bytes apart, when all of them lie in the window.
func NewRegister[W bitfield.Word](w *Window, phys uint64, stride uintptr, count int) (reg bitfield.Register[W], err error) {
	addr, err := w.Address(phys)
	if err != nil {
		return
	}

	reg = bitfield.Register[W]{Address: addr, Stride: stride}
	err = reg.Validate()
	if err != nil {
		reg = bitfield.Register[W]{}
		return
	}

	count = max(count, 1)
	end := phys + uint64(reg.AddressOf(count-1)-addr) + uint64(bitfield.Bits[W]()/8)
	if end > w.phys+uint64(w.size) {
		reg = bitfield.Register[W]{}
		err = translate.Errorf(ErrOutOfWindow, "%#x", end-1)
		return
	}
	return
}
