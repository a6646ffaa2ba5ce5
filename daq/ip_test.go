package daq

import (
	"errors"
	"testing"
)

func TestInitRejectsZeroCounts(t *testing.T) {
	bus := newFakeBus(0x1000)

	if _, err := Init(0, 0, 4, bus.access()); !errors.Is(err, ErrIllegalStrNr) {
		t.Fatalf("maxStreams=0: got %v, want ErrIllegalStrNr", err)
	}
	if _, err := Init(0, 4, 0, bus.access()); !errors.Is(err, ErrIllegalWinCnt) {
		t.Fatalf("maxWindows=0: got %v, want ErrIllegalWinCnt", err)
	}
}

func TestInitRejectsIncompleteAccess(t *testing.T) {
	_, err := Init(0, 1, 1, RegAccess{})
	if err == nil {
		t.Fatal("expected error for zero-value RegAccess")
	}
}

func TestInitClearsAndEnables(t *testing.T) {
	bus := newFakeBus(0x1000)
	ip, err := Init(0x1000, 2, 3, bus.access())
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	if got := bus.regs[0x1000+regGCFG]; got != gcfgEnaBit|gcfgIrqEnaBit {
		t.Errorf("GCFG = 0x%x, want ENA|IRQENA", got)
	}
	if got := bus.regs[0x1000+regSTRENA]; got != 0 {
		t.Errorf("STRENA = 0x%x, want 0", got)
	}
	if got := bus.regs[0x1000+regIRQENA]; got != 0 {
		t.Errorf("IRQENA = 0x%x, want 0", got)
	}
	if got := bus.regs[0x1000+regIRQVEC]; got != 0xffffffff {
		t.Errorf("IRQVEC after init = 0x%x, want all-ones ack", got)
	}
	for s := uint8(0); s < 2; s++ {
		for w := uint8(0); w < 3; w++ {
			if got := bus.regs[0x1000+winWinCnt(ip.strAddrOffs, s, w)]; got != 0 {
				t.Errorf("stream %d window %d WINCNT = 0x%x, want 0", s, w, got)
			}
		}
	}
}

func TestStreamHandleBounds(t *testing.T) {
	bus := newFakeBus(0x1000)
	ip, err := Init(0, 2, 2, bus.access())
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if _, err := ip.Stream(1); err != nil {
		t.Errorf("Stream(1): %v", err)
	}
	if _, err := ip.Stream(2); !errors.Is(err, ErrIllegalStrNr) {
		t.Errorf("Stream(2) = %v, want ErrIllegalStrNr", err)
	}
}

func TestTeardownDisablesAndClosesAccess(t *testing.T) {
	bus := newFakeBus(0x1000)
	closed := false
	access := bus.access()
	access.Close = func() error { closed = true; return nil }

	ip, err := Init(0, 1, 1, access)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := ip.Teardown(); err != nil {
		t.Fatalf("Teardown: %v", err)
	}
	if !closed {
		t.Error("Teardown did not call RegAccess.Close")
	}
	if bus.regs[regGCFG] != 0 || bus.regs[regSTRENA] != 0 || bus.regs[regIRQENA] != 0 {
		t.Error("Teardown did not clear GCFG/STRENA/IRQENA")
	}
}

func TestLog2CeilAndPowQuirks(t *testing.T) {
	if got := log2Ceil(0); got != 0 {
		t.Errorf("log2Ceil(0) = %d, want 0", got)
	}
	if got := pow(5, 0); got != 5 {
		t.Errorf("pow(5, 0) = %d, want 5 (original driver's quirk, not 1)", got)
	}
	if got := pow(2, 3); got != 8 {
		t.Errorf("pow(2, 3) = %d, want 8", got)
	}
	if got := log2Ceil(4); got != 2 {
		t.Errorf("log2Ceil(4) = %d, want 2", got)
	}
}
