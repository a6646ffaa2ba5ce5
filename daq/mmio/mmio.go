// Package mmio provides a /dev/mem-backed daq.RegAccess: a memory-mapped
// window of physical address space read and written directly as 32-bit
// registers.
package mmio

import (
	"fmt"
	"os"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Access maps a window of physical address space via /dev/mem and
// provides the Write32/Read32/DataCopy primitives daq.RegAccess expects.
type Access struct {
	mem  []byte
	base uintptr
	fd   int
}

// Open maps size bytes of physical address space starting at physBase.
// The mapping is rounded out to whole pages internally; callers address it
// using the original physBase..physBase+size range.
func Open(physBase uintptr, size int) (*Access, error) {
	fd, err := unix.Open("/dev/mem", unix.O_RDWR|unix.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("mmio: open /dev/mem: %w", err)
	}

	pageSize := uintptr(os.Getpagesize())
	aligned := physBase &^ (pageSize - 1)
	pageOff := physBase - aligned
	mapSize := int(pageOff) + size

	mem, err := unix.Mmap(fd, int64(aligned), mapSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("mmio: mmap 0x%x/%d: %w", physBase, size, err)
	}

	return &Access{mem: mem[pageOff:], base: physBase, fd: fd}, nil
}

// Close unmaps the region and closes the underlying /dev/mem descriptor.
func (a *Access) Close() error {
	err := unix.Munmap(a.mem)
	if cerr := unix.Close(a.fd); err == nil {
		err = cerr
	}
	return err
}

// Write32 stores value at addr using an atomic 32-bit store so partial
// writes can never reach the bus.
func (a *Access) Write32(addr, value uint32) {
	p := a.ptr(addr)
	atomic.StoreUint32(p, value)
}

// Read32 loads the 32-bit value at addr.
func (a *Access) Read32(addr uint32) uint32 {
	p := a.ptr(addr)
	return atomic.LoadUint32(p)
}

// DataCopy copies len(dst) bytes starting at srcAddr out of the mapped
// region. srcAddr must fall within the window Open mapped.
func (a *Access) DataCopy(dst []byte, srcAddr uint32) {
	off := uintptr(srcAddr) - a.base
	copy(dst, a.mem[off:off+uintptr(len(dst))])
}

func (a *Access) ptr(addr uint32) *uint32 {
	off := uintptr(addr) - a.base
	return (*uint32)(unsafe.Pointer(&a.mem[off]))
}
