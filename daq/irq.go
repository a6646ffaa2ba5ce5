package daq

// HandleIRQ is the driver's single ISR entry point. The integrator's
// interrupt dispatcher must call it whenever the IP's shared,
// level-sensitive IRQ line is asserted; HandleIRQ reads and acknowledges
// the pending-stream bitmap itself, so no other code should touch IRQVEC.
//
// HandleIRQ never blocks and never allocates beyond what an installed
// callback does. A stream with no installed callback is simply skipped; a
// stream with a callback installed for the wrong scheme (see
// SetIrqCallbackWin/SetIrqCallbackStr) cannot occur, since installing one
// excludes the other.
func (ip *IP) HandleIRQ() {
	pending := ip.RegRead(regIRQVEC)
	ip.RegWrite(regIRQVEC, pending)

	for nr := uint8(0); nr < ip.maxStreams; nr++ {
		if pending&(1<<uint32(nr)) == 0 {
			continue
		}
		s := &ip.streams[nr]

		if s.irqCallbackStr != nil {
			s.irqCallbackStr(s, s.irqArg)
		}

		if s.irqCallbackWin != nil {
			s.deliverWindows()
		}
	}
}

// deliverWindows walks every window completed since the stream's last
// delivery, in order, delivering each to the installed window callback
// exactly once. It re-reads LASTWIN and re-acknowledges the stream's own
// IRQVEC bit on every iteration, since more windows can complete while the
// loop runs; it stops either when it catches up to the freshest LASTWIN it
// has observed, or when it reaches a window already marked delivered
// (irqCalledWin) that has not yet been released with MarkAsFree; that
// window and the ones after it are left for a later call.
func (s *Stream) deliverWindows() {
	win := s.lastProcWin
	for {
		s.ip.RegWrite(regIRQVEC, s.mask())
		lastWin := s.GetLastWrittenWin()

		win = (win + 1) % int8(s.windows)
		if s.irqCalledWin&(1<<uint32(win)) != 0 {
			break
		}
		s.irqCalledWin |= 1 << uint32(win)

		s.irqCallbackWin(Window{IP: s.ip, Stream: s, Win: uint8(win)}, s.irqArg)
		s.lastProcWin = win

		if win == int8(lastWin) {
			break
		}
	}
}
