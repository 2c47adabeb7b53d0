// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import "radlight/conlog"

// StrictAsserts toggles the "programmer error (assertion)" class of checks
// spec.md §7 calls out for the BSP accessors (index out of range). Tests
// and the CLI leave this true; a caller that has already validated input
// out-of-band may turn it off to skip the bounds checks on a hot path.
var StrictAsserts = true

func assertf(cond bool, format string, v ...interface{}) {
	if !StrictAsserts || cond {
		return
	}
	conlog.Fatalf(format, v...)
}
