// Package daq drives a multi-stream, ring-buffered data-acquisition
// recorder IP over a flat 32-bit register interface.
//
// An IP owns a fixed number of Streams, each independently configurable
// and triggerable. A Stream records into a ring of Windows in target
// memory; the driver itself performs no DMA and has no opinion on where
// that memory lives — RegAccess.DataCopy is the only thing that touches
// it, and the default implementation in the mmio subpackage backs it with
// an mmap'd /dev/mem region.
//
// The driver is not safe for concurrent use against the same IP or Stream
// without external synchronization; HandleIRQ in particular assumes it is
// never invoked re-entrantly for the same IP. That is a deliberate
// decision, not an oversight — see the design notes for why.
package daq
