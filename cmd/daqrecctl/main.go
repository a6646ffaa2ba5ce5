// Command daqrecctl is a small demo/diagnostic tool for a streaming
// recorder IP: it initializes the IP over /dev/mem, arms one stream, and
// prints each completed window as it arrives.
package main

import (
	"flag"
	"log"
	"time"

	"example.com/daqrec/daq"
)

func main() {
	baseAddr := flag.Uint("base", 0x43c00000, "IP register base address (physical)")
	regSize := flag.Int("reg-size", 0x8000, "register window size to map")
	dataAddr := flag.Uint("data-base", 0x10000000, "recording target memory base address (physical)")
	dataSize := flag.Int("data-size", 0x400000, "recording target memory size to map")
	streamNr := flag.Uint("stream", 0, "stream number to arm")
	winSize := flag.Uint("win-size", 0x1000, "bytes per window")
	winCnt := flag.Uint("win-cnt", 4, "number of windows")
	widthBits := flag.Uint("width-bits", 16, "sample width in bits")
	postTrig := flag.Uint("post-trig", 64, "post-trigger sample count")
	poll := flag.Duration("poll", 10*time.Millisecond, "how often to poll for IRQ activity")
	flag.Parse()

	access, err := daq.NewMMIOAccess(uintptr(*baseAddr), *regSize, uintptr(*dataAddr), *dataSize)
	if err != nil {
		log.Fatalf("daqrecctl: %v", err)
	}

	ip, err := daq.Init(uint32(*baseAddr), 8, 8, access)
	if err != nil {
		log.Fatalf("daqrecctl: init: %v", err)
	}
	defer ip.Teardown()

	s, err := ip.Stream(uint8(*streamNr))
	if err != nil {
		log.Fatalf("daqrecctl: stream %d: %v", *streamNr, err)
	}

	if err := s.Configure(daq.StreamConfig{
		StreamWidthBits: uint16(*widthBits),
		WinCnt:          uint8(*winCnt),
		WinSize:         uint32(*winSize),
		BufStartAddr:    uint32(*dataAddr),
		PostTrigSamples: uint32(*postTrig),
		RecMode:         daq.RecModeSingleShot,
		WinAsRingbuf:    true,
	}); err != nil {
		log.Fatalf("daqrecctl: configure: %v", err)
	}

	if err := s.SetIrqCallbackWin(onWindow, nil); err != nil {
		log.Fatalf("daqrecctl: install callback: %v", err)
	}
	s.SetIrqEnable(true)
	s.SetEnable(true)
	s.Arm()

	log.Printf("daqrecctl: armed stream %d, polling every %s (ctrl-c to stop)", *streamNr, *poll)
	ticker := time.NewTicker(*poll)
	defer ticker.Stop()
	for range ticker.C {
		ip.HandleIRQ()
	}
}

func onWindow(win daq.Window, _ any) {
	n := win.GetNoOfSamples()
	pre, err := win.GetPreTrigSamples()
	if err != nil {
		log.Printf("window %d: %d samples, no trigger", win.Win, n)
		win.MarkAsFree()
		return
	}
	ts, _ := win.GetTimestamp()
	log.Printf("window %d: %d samples, %d pre-trigger, timestamp=%d", win.Win, n, pre, ts)
	win.MarkAsFree()
}
