package daq

import (
	"fmt"
	"log"
)

// IP is one instance of the streaming-recorder hardware block: its base
// address, the register/data-copy primitives used to reach it, and the
// owned slice of per-stream state. A *Stream obtained from an IP must never
// outlive it.
type IP struct {
	baseAddr    uint32
	maxStreams  uint8
	maxWindows  uint8
	strAddrOffs uint32
	access      RegAccess
	streams     []Stream
}

// Init resets and enables an IP instance: stream enables, IRQ enables and
// every window's write-count register are cleared, then the global enable
// and global IRQ enable bits are set last.
//
// maxStreams and maxWindows must match the counts the hardware IP was
// synthesized with — Init has no way to discover them from the register
// interface and does not try.
func Init(baseAddr uint32, maxStreams, maxWindows uint8, access RegAccess) (*IP, error) {
	if maxStreams == 0 {
		return nil, newErr(KindIllegalStrNr)
	}
	if maxWindows == 0 {
		return nil, newErr(KindIllegalWinCnt)
	}
	if !access.valid() {
		return nil, fmt.Errorf("daqrec: RegAccess must supply Write32, Read32 and DataCopy")
	}

	ip := &IP{
		baseAddr:    baseAddr,
		maxStreams:  maxStreams,
		maxWindows:  maxWindows,
		strAddrOffs: pow(2, log2Ceil(uint32(maxWindows))) * 0x10,
		access:      access,
		streams:     make([]Stream, maxStreams),
	}

	ip.RegWrite(regGCFG, 0)
	ip.RegWrite(regSTRENA, 0)
	ip.RegWrite(regIRQENA, 0)
	ip.RegWrite(regIRQVEC, 0xffffffff)

	for s := uint8(0); s < maxStreams; s++ {
		ip.RegWrite(regMaxLvl(s), 0)
		for w := uint8(0); w < maxWindows; w++ {
			ip.RegWrite(winWinCnt(ip.strAddrOffs, s, w), 0)
		}
		ip.streams[s] = Stream{
			nr:          s,
			ip:          ip,
			lastProcWin: -1,
		}
	}

	ip.RegWrite(regGCFG, gcfgEnaBit|gcfgIrqEnaBit)
	log.Printf("daqrec: IP at 0x%08x initialized: %d streams, %d windows/stream", baseAddr, maxStreams, maxWindows)
	return ip, nil
}

// Stream returns the handle for stream nr.
func (ip *IP) Stream(nr uint8) (*Stream, error) {
	if nr >= ip.maxStreams {
		return nil, newErr(KindIllegalStrNr)
	}
	return &ip.streams[nr], nil
}

// MaxStreams is the stream count the IP was initialized with.
func (ip *IP) MaxStreams() uint8 { return ip.maxStreams }

// MaxWindows is the per-stream window count the IP was initialized with.
func (ip *IP) MaxWindows() uint8 { return ip.maxWindows }

// Teardown disables the IP (global enable, all stream enables, all IRQ
// enables) and, if the RegAccess it was built with supplies a Close, calls
// it to release the underlying resources (e.g. an mmap'd register
// window). Teardown never closes a RegAccess the integrator built and
// intends to keep managing itself — that distinction is exactly what the
// nil-or-not-nil Close field encodes.
func (ip *IP) Teardown() error {
	ip.RegWrite(regGCFG, 0)
	ip.RegWrite(regSTRENA, 0)
	ip.RegWrite(regIRQENA, 0)
	log.Printf("daqrec: IP at 0x%08x torn down", ip.baseAddr)
	if ip.access.Close != nil {
		return ip.access.Close()
	}
	return nil
}

// log2 and log2Ceil and pow reproduce the original driver's helper
// functions bit for bit, quirks included: log2Ceil(0) is 0, and pow(x, 0)
// returns x rather than 1. strAddrOffs is only ever computed from
// maxWindows >= 1, for which this is the value the register map's window
// bank stride was generated against.
func log2(x uint32) uint32 {
	var r uint32
	for v := x; v > 1; v /= 2 {
		r++
	}
	return r
}

func log2Ceil(x uint32) uint32 {
	if x == 0 {
		return 0
	}
	r := log2(x)
	if x&(x-1) != 0 {
		r++
	}
	return r
}

func pow(x, y uint32) uint32 {
	r := x
	for i := uint32(1); i < y; i++ {
		r *= x
	}
	return r
}
