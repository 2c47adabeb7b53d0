// SPDX-License-Identifier: GPL-2.0-or-later

package light

import "radlight/conlog"

func fatalTooManyTargets(name string) {
	conlog.Fatalf("light: more than %d unique switchable-light targetnames (offending: %q)", MaxLightTargets, name)
}

func fatalBadStyle(style int) {
	conlog.Fatalf("light: style %d outside 0..254", style)
}

var warnUnknownFormula = conlog.WarnOnce()
