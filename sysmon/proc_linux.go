/*
DESCRIPTION
  proc_linux.go provides a resident memory probe backed by
  /proc/self/statm.

AUTHORS
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package sysmon

import (
	"os"
	"strconv"
	"strings"

	"github.com/ausocean/utils/logging"
	"github.com/pkg/errors"
)

const statmPath = "/proc/self/statm"

// ProcProber reads true resident set size from /proc/self/statm. A
// failed read is logged at Debug and reported as 0; the failure is
// never surfaced to callers.
type ProcProber struct {
	log      logging.Logger
	pageSize uint64
}

// NewProcProber returns a proc-backed memory prober.
func NewProcProber(l logging.Logger) *ProcProber {
	return &ProcProber{log: l, pageSize: uint64(os.Getpagesize())}
}

// ResidentMemoryBytes implements MemoryProber.
func (p *ProcProber) ResidentMemoryBytes() uint64 {
	n, err := readStatmRSS()
	if err != nil {
		p.log.Debug("could not read resident memory", "error", err.Error())
		return 0
	}
	return n * p.pageSize
}

// readStatmRSS returns the resident page count from the statm file.
// statm fields are: size resident shared text lib data dt.
func readStatmRSS() (uint64, error) {
	b, err := os.ReadFile(statmPath)
	if err != nil {
		return 0, errors.Wrap(err, "could not read statm")
	}
	fields := strings.Fields(string(b))
	if len(fields) < 2 {
		return 0, errors.Errorf("malformed statm contents: %q", string(b))
	}
	n, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "could not parse resident field")
	}
	return n, nil
}
