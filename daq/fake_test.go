package daq

// fakeBus is a minimal in-memory register file plus flat byte memory,
// standing in for real hardware in tests. It intentionally has no locking
// of its own: callers drive it from a single goroutine, exactly like
// HandleIRQ expects to be driven.
type fakeBus struct {
	regs map[uint32]uint32
	mem  []byte
}

func newFakeBus(memSize int) *fakeBus {
	return &fakeBus{regs: make(map[uint32]uint32), mem: make([]byte, memSize)}
}

func (b *fakeBus) access() RegAccess {
	return RegAccess{
		Write32: func(addr, value uint32) { b.regs[addr] = value },
		Read32:  func(addr uint32) uint32 { return b.regs[addr] },
		DataCopy: func(dst []byte, srcAddr uint32) {
			copy(dst, b.mem[srcAddr:int(srcAddr)+len(dst)])
		},
	}
}
