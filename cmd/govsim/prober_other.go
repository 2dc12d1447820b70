/*
DESCRIPTION
  prober_other.go selects the runtime heap prober on platforms without
  /proc.

AUTHORS
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

//go:build !linux

package main

import (
	"github.com/ausocean/camgov/sysmon"
	"github.com/ausocean/utils/logging"
)

func memProber(l logging.Logger) sysmon.MemoryProber {
	return sysmon.RuntimeProber{}
}
