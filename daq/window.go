package daq

// Window identifies one of a stream's configured windows. It is a small
// value type the driver never stores on its own — its validity ends when
// the callback or query that produced it returns, since the underlying
// window can be recycled by MarkAsFree at any point afterward.
type Window struct {
	IP     *IP
	Stream *Stream
	Win    uint8
}

func (w Window) regBase() (strAddrOffs uint32, s, win uint8) {
	return w.IP.strAddrOffs, w.Stream.nr, w.Win
}

// GetNoOfSamples reads the window's write-count field and converts it to a
// sample count using the stream's configured sample width.
func (w Window) GetNoOfSamples() uint32 {
	off, s, win := w.regBase()
	cnt := w.IP.RegGetField(winWinCnt(off, s, win), winCntLSB, winCntMSB)
	return cnt / uint32(w.Stream.widthBytes)
}

// GetNoOfBytes is GetNoOfSamples() converted to bytes.
func (w Window) GetNoOfBytes() uint32 {
	return w.GetNoOfSamples() * uint32(w.Stream.widthBytes)
}

func (w Window) containsTrigger() bool {
	off, s, win := w.regBase()
	return w.IP.RegGetBit(winWinCnt(off, s, win), winCntTrigBit)
}

// GetPreTrigSamples returns the number of samples recorded before the
// trigger. Fails with ErrNoTrigInWin if the window does not contain a
// trigger.
func (w Window) GetPreTrigSamples() (uint32, error) {
	if !w.containsTrigger() {
		return 0, newErr(KindNoTrigInWin)
	}
	return w.GetNoOfSamples() - w.Stream.postTrig, nil
}

// GetTimestamp returns the trigger timestamp latched for this window.
// Fails with ErrNoTrigInWin if the window does not contain a trigger.
func (w Window) GetTimestamp() (uint64, error) {
	if !w.containsTrigger() {
		return 0, newErr(KindNoTrigInWin)
	}
	off, s, win := w.regBase()
	lo := w.IP.RegRead(winTSLo(off, s, win))
	hi := w.IP.RegRead(winTSHi(off, s, win))
	return uint64(hi)<<32 | uint64(lo), nil
}

// GetLastSplAddr returns the target-memory address of the last sample
// written into the window, as read from the window's LAST register.
func (w Window) GetLastSplAddr() uint32 {
	off, s, win := w.regBase()
	return w.IP.RegRead(winLast(off, s, win))
}

// GetDataUnwrapped reconstructs preTrigSamples+postTrigSamples worth of
// linear, chronologically-ordered payload out of the window's (possibly
// ring-wrapped) storage and copies it into buf via the IP's DataCopy
// primitive. buf must be at least (preTrigSamples+postTrigSamples) *
// sample-width-in-bytes long.
func (w Window) GetDataUnwrapped(preTrigSamples, postTrigSamples uint32, buf []byte) error {
	str := w.Stream
	wb := uint32(str.widthBytes)
	bytes := (preTrigSamples + postTrigSamples) * wb

	preTrigAvail, err := w.GetPreTrigSamples()
	if err != nil {
		return err
	}
	if uint32(len(buf)) < bytes {
		return newErr(KindBufferTooSmall)
	}
	if postTrigSamples > str.postTrig {
		return newErr(KindMorePostTrigThanConfigured)
	}
	if preTrigSamples > preTrigAvail {
		return newErr(KindMorePreTrigThanAvailable)
	}

	winStart := str.bufStart + str.winSize*uint32(w.Win)
	winLastAddr := winStart + str.winSize - 1

	lastSplAddr := w.GetLastSplAddr()
	trigByteAddr := lastSplAddr - (str.postTrig+1)*wb
	if trigByteAddr < winStart {
		trigByteAddr += str.winSize
	}

	lastByteAddr := trigByteAddr + postTrigSamples*wb + wb - 1
	if lastByteAddr > winLastAddr {
		lastByteAddr -= str.winSize
	}

	firstByteLinear := lastByteAddr - bytes + 1
	if firstByteLinear >= winStart {
		w.IP.access.DataCopy(buf[:bytes], firstByteLinear)
		return nil
	}

	secondChunkSize := lastByteAddr - winStart + 1
	firstChunkSize := bytes - secondChunkSize
	firstChunkStart := winLastAddr - firstChunkSize + 1
	w.IP.access.DataCopy(buf[:firstChunkSize], firstChunkStart)
	w.IP.access.DataCopy(buf[firstChunkSize:bytes], winStart)
	return nil
}

// MarkAsFree releases the window back to the pool: the stream's
// delivered-window bit is cleared first, then the hardware write-count
// register is zeroed. That order matters — clearing the software bit
// after the hardware write would leave a gap where a re-triggered IRQ for
// this window could be mistaken for one already delivered.
func (w Window) MarkAsFree() {
	w.Stream.irqCalledWin &^= 1 << uint32(w.Win)
	off, s, win := w.regBase()
	w.IP.RegWrite(winWinCnt(off, s, win), 0)
}
