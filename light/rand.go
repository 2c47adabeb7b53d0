// SPDX-License-Identifier: GPL-2.0-or-later

package light

import "radlight/rand"

// seed is fixed so a given entity block and settings always jitter and
// sun-deviance-sample the same way, per spec §5's determinism
// requirement ("must be seeded deterministically if reproducibility is
// required").
const seed = 0x5eed1e57

var defaultGenerator = rand.New(seed)

func defaultRand() float32 {
	return defaultGenerator.Float32()
}

// SetSeed reseeds the default RNG; exposed for callers (and tests) that
// want a specific jitter/sun-deviance sequence.
func SetSeed(s uint32) {
	defaultGenerator = rand.New(s)
}

// uniform returns a value uniform in [lo, hi) using c's RNG.
func (c *Context) uniform(lo, hi float32) float32 {
	return lo + c.rng()*(hi-lo)
}
