package daq

import (
	"fmt"

	"example.com/daqrec/daq/mmio"
)

// NewMMIOAccess builds a RegAccess backed by /dev/mem mappings: one window
// covering the IP's register space (regBase, regSize) and a second
// covering the target memory the streams record into (dataBase,
// dataSize). Most IPs place the two in disjoint physical ranges, so they
// are mapped and unmapped independently; Close tears down both.
func NewMMIOAccess(regBase uintptr, regSize int, dataBase uintptr, dataSize int) (RegAccess, error) {
	regs, err := mmio.Open(regBase, regSize)
	if err != nil {
		return RegAccess{}, fmt.Errorf("daqrec: mapping register window: %w", err)
	}
	data, err := mmio.Open(dataBase, dataSize)
	if err != nil {
		regs.Close()
		return RegAccess{}, fmt.Errorf("daqrec: mapping data window: %w", err)
	}

	return RegAccess{
		Write32:  regs.Write32,
		Read32:   regs.Read32,
		DataCopy: data.DataCopy,
		Close: func() error {
			err := regs.Close()
			if derr := data.Close(); err == nil {
				err = derr
			}
			return err
		},
	}, nil
}
