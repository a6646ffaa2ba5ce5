package daq

// RecMode selects how a stream's recording state machine reacts to its
// trigger, matching the MODE register's [1:0] field.
type RecMode uint8

const (
	RecModeContinuous RecMode = iota
	RecModeTriggerMask
	RecModeSingleShot
	RecModeManual
)

// StreamConfig holds the parameters Stream.Configure programs into a
// disabled stream.
type StreamConfig struct {
	// StreamWidthBits is the sample width in bits; must be a multiple of 8.
	StreamWidthBits uint16
	// WinCnt is the number of windows to use, 1..IP.MaxWindows().
	WinCnt uint8
	// WinSize is the byte size of each window; must be a multiple of the
	// sample width in bytes.
	WinSize uint32
	// BufStartAddr is the first window's base address in the target
	// memory DataCopy reads from.
	BufStartAddr uint32
	// PostTrigSamples is the number of samples to keep after a trigger.
	PostTrigSamples uint32
	RecMode         RecMode
	WinAsRingbuf    bool
	WinOverwrite    bool
}

// WindowCallback is invoked once per newly completed window when installed
// via Stream.SetIrqCallbackWin. It runs on HandleIRQ's calling goroutine.
type WindowCallback func(win Window, arg any)

// StreamCallback is invoked once per pending IRQ when installed via
// Stream.SetIrqCallbackStr. It runs on HandleIRQ's calling goroutine.
type StreamCallback func(s *Stream, arg any)

// Stream is one of an IP's recorder streams. Values are owned by their IP
// (obtained via IP.Stream) and must never outlive it.
type Stream struct {
	nr           uint8
	ip           *IP
	isConfigured bool
	widthBytes   uint8
	windows      uint8
	lastProcWin  int8
	irqCalledWin uint32

	irqCallbackWin WindowCallback
	irqCallbackStr StreamCallback
	irqArg         any

	bufStart uint32
	winSize  uint32
	postTrig uint32
}

// Nr is the stream's index within its IP.
func (s *Stream) Nr() uint8 { return s.nr }

// IP is the stream's owning IP instance.
func (s *Stream) IP() *IP { return s.ip }

func (s *Stream) mask() uint32 { return 1 << uint32(s.nr) }

// Configure programs the stream's recorder settings. The stream must
// already be hardware-disabled (SetEnable(false)); Configure does not
// disable it for the caller. Validation order matches the order the
// original driver checks and then programs these fields in, since a
// caller relying on which of several simultaneous violations is reported
// depends on it.
func (s *Stream) Configure(cfg StreamConfig) error {
	if cfg.StreamWidthBits == 0 || cfg.StreamWidthBits%8 != 0 {
		return newErr(KindIllegalStrWidth)
	}
	if cfg.WinCnt == 0 || cfg.WinCnt > s.ip.maxWindows {
		return newErr(KindIllegalWinCnt)
	}
	widthBytes := uint8(cfg.StreamWidthBits / 8)
	if cfg.WinSize%uint32(widthBytes) != 0 {
		return newErr(KindWinSizeMustBeMultipleOfSamples)
	}
	if s.ip.RegGetBit(regSTRENA, s.mask()) {
		return newErr(KindStrNotDisabled)
	}

	s.ip.RegWrite(regPostTrig(s.nr), cfg.PostTrigSamples)
	s.ip.RegSetField(regMode(s.nr), modeRecModeLSB, modeRecModeMSB, uint32(cfg.RecMode))
	s.ip.RegSetBit(ctxSCFG(s.nr), scfgRingBufBit, cfg.WinAsRingbuf)
	s.ip.RegSetBit(ctxSCFG(s.nr), scfgOverwriteBit, cfg.WinOverwrite)
	s.ip.RegWrite(ctxBufStart(s.nr), cfg.BufStartAddr)
	s.ip.RegWrite(ctxWinSize(s.nr), cfg.WinSize)
	s.ip.RegSetField(ctxSCFG(s.nr), scfgWinCntLSB, scfgWinCntMSB, uint32(cfg.WinCnt-1))

	s.widthBytes = widthBytes
	s.isConfigured = true
	s.windows = cfg.WinCnt
	s.bufStart = cfg.BufStartAddr
	s.winSize = cfg.WinSize
	s.postTrig = cfg.PostTrigSamples
	return nil
}

// IsConfigured reports whether Configure has succeeded at least once.
func (s *Stream) IsConfigured() bool { return s.isConfigured }

// SetEnable sets or clears the stream's enable bit in STRENA.
func (s *Stream) SetEnable(enable bool) {
	s.ip.RegSetBit(regSTRENA, s.mask(), enable)
}

// SetIrqEnable sets or clears the stream's bit in IRQENA.
func (s *Stream) SetIrqEnable(enable bool) {
	s.ip.RegSetBit(regIRQENA, s.mask(), enable)
}

// Arm sets the stream's ARM bit so the next trigger condition starts a
// recording.
func (s *Stream) Arm() {
	s.ip.RegSetBit(regMode(s.nr), modeArmBit, true)
}

// SetIrqCallbackWin installs cb as the stream's per-window callback,
// called once per completed window from HandleIRQ. Passing a nil cb
// uninstalls it. Fails with ErrIrqSchemesWinAndStrAreExclusive if a stream
// callback is currently installed.
func (s *Stream) SetIrqCallbackWin(cb WindowCallback, arg any) error {
	if s.irqCallbackStr != nil {
		return newErr(KindIrqSchemesWinAndStrAreExclusive)
	}
	s.irqCallbackWin = cb
	s.irqArg = arg
	return nil
}

// SetIrqCallbackStr installs cb as the stream's per-IRQ callback, called
// once per pending IRQ from HandleIRQ regardless of window boundaries.
// Passing a nil cb uninstalls it. Fails with
// ErrIrqSchemesWinAndStrAreExclusive if a window callback is currently
// installed.
func (s *Stream) SetIrqCallbackStr(cb StreamCallback, arg any) error {
	if s.irqCallbackWin != nil {
		return newErr(KindIrqSchemesWinAndStrAreExclusive)
	}
	s.irqCallbackStr = cb
	s.irqArg = arg
	return nil
}

// GetMaxLvl reads the stream's high-water-mark register.
func (s *Stream) GetMaxLvl() uint32 { return s.ip.RegRead(regMaxLvl(s.nr)) }

// ClrMaxLvl clears the stream's high-water-mark register.
func (s *Stream) ClrMaxLvl() { s.ip.RegWrite(regMaxLvl(s.nr), 0) }

// GetFreeWindows counts windows whose write-count register reads zero,
// skipping window 0 — window 0's count is never examined, matching the
// original driver's loop bound.
func (s *Stream) GetFreeWindows() uint8 { return s.countFreeFrom(1) }

// GetFreeWindowsIncludingZero is GetFreeWindows, but also examines window
// 0.
func (s *Stream) GetFreeWindowsIncludingZero() uint8 { return s.countFreeFrom(0) }

func (s *Stream) countFreeFrom(low uint8) uint8 {
	var free uint8
	for w := int(s.windows) - 1; w >= int(low); w-- {
		cnt := s.ip.RegGetField(winWinCnt(s.ip.strAddrOffs, s.nr, uint8(w)), winCntLSB, winCntMSB)
		if cnt == 0 {
			free++
		}
	}
	return free
}

// GetUsedWindows is GetTotalWindows() - GetFreeWindows().
func (s *Stream) GetUsedWindows() uint8 { return s.windows - s.GetFreeWindows() }

// GetTotalWindows is the window count the stream was configured with.
func (s *Stream) GetTotalWindows() uint8 { return s.windows }

// IsRecording reports whether the stream's recording bit is currently set.
func (s *Stream) IsRecording() bool { return s.ip.RegGetBit(regMode(s.nr), modeRecBit) }

// CurrentWin is the window the stream is currently writing into.
func (s *Stream) CurrentWin() uint8 {
	return uint8(s.ip.RegGetField(ctxSCFG(s.nr), scfgWinCurLSB, scfgWinCurMSB))
}

// CurrentPtr is the stream's current write pointer in target memory.
func (s *Stream) CurrentPtr() uint32 { return s.ip.RegRead(ctxPtr(s.nr)) }

// GetLastWrittenWin is the most recent window the hardware finished
// writing, as seen from the stream's per-stream LASTWIN register.
func (s *Stream) GetLastWrittenWin() uint8 { return uint8(s.ip.RegRead(regLastWin(s.nr))) }

// Window returns a handle for window nr of this stream.
func (s *Stream) Window(nr uint8) (Window, error) {
	if nr >= s.windows {
		return Window{}, newErr(KindIllegalWinNr)
	}
	return Window{IP: s.ip, Stream: s, Win: nr}, nil
}
