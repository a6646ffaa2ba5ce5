package daq

// Register layout, byte-addressed relative to the IP's base address.
//
// Global registers are fixed offsets. Per-stream context registers live at
// a fixed stride starting at 0x1000. Per-window write-count/timestamp
// registers live in a separate region starting at 0x4000, strided by
// strAddrOffs per stream and 0x10 per window — strAddrOffs is computed at
// Init time from maxWindows (see ip.go) so that every stream's window bank
// fits without overlap regardless of how many windows it was synthesized
// with.
const (
	regGCFG   = 0x000
	regGSTAT  = 0x004
	regIRQVEC = 0x010
	regIRQENA = 0x014
	regSTRENA = 0x020
)

const (
	gcfgEnaBit    = 1 << 0
	gcfgIrqEnaBit = 1 << 8
)

const strCtxStride = 0x10

func regMaxLvl(s uint8) uint32   { return 0x200 + strCtxStride*uint32(s) }
func regPostTrig(s uint8) uint32 { return 0x204 + strCtxStride*uint32(s) }
func regMode(s uint8) uint32     { return 0x208 + strCtxStride*uint32(s) }
func regLastWin(s uint8) uint32  { return 0x20c + strCtxStride*uint32(s) }

const (
	modeRecModeLSB = 0
	modeRecModeMSB = 1
	modeArmBit     = 1 << 8
	modeRecBit     = 1 << 16
)

const ctxStride = 0x20

func ctxSCFG(s uint8) uint32     { return 0x1000 + ctxStride*uint32(s) }
func ctxBufStart(s uint8) uint32 { return 0x1004 + ctxStride*uint32(s) }
func ctxWinSize(s uint8) uint32  { return 0x1008 + ctxStride*uint32(s) }
func ctxPtr(s uint8) uint32      { return 0x100c + ctxStride*uint32(s) }

const (
	scfgRingBufBit   = 1 << 0
	scfgOverwriteBit = 1 << 8
	scfgWinCntLSB    = 16
	scfgWinCntMSB    = 20
	scfgWinCurLSB    = 24
	scfgWinCurMSB    = 28
)

// winWinCnt, winLast, winTSLo and winTSHi address the per-window bank.
// strAddrOffs is the per-stream stride within this bank, computed once at
// Init time (see IP.strAddrOffs).
func winWinCnt(strAddrOffs uint32, s, w uint8) uint32 {
	return 0x4000 + strAddrOffs*uint32(s) + 0x10*uint32(w)
}
func winLast(strAddrOffs uint32, s, w uint8) uint32 {
	return 0x4004 + strAddrOffs*uint32(s) + 0x10*uint32(w)
}
func winTSLo(strAddrOffs uint32, s, w uint8) uint32 {
	return 0x4008 + strAddrOffs*uint32(s) + 0x10*uint32(w)
}
func winTSHi(strAddrOffs uint32, s, w uint8) uint32 {
	return 0x400c + strAddrOffs*uint32(s) + 0x10*uint32(w)
}

const (
	winCntLSB     = 0
	winCntMSB     = 30
	winCntTrigBit = 1 << 31
)
