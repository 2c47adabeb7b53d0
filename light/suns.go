// SPDX-License-Identifier: GPL-2.0-or-later

package light

import (
	"strconv"
	"strings"

	"github.com/chewxy/math32"

	"radlight/bsp"
	"radlight/conlog"
	"radlight/entdict"
	"radlight/math/vec"
)

// SetupSuns reads worldspawn's "_sunlight"/"_sunlight_color"/
// "_sun_mangle"/"_sunlight_penumbra" keys and produces sun_num_samples
// suns whose directions jitter within a penumbra disk and whose
// intensities sum to the configured total. Per spec §4.F step 6.
func (c *Context) SetupSuns() {
	world := &c.Entdicts[0]
	total := floatKey(world, 0, "_sunlight")
	if total == 0 {
		return
	}

	color := vec3Key(world, vec.Vec3{X: 255, Y: 255, Z: 255}, "_sunlight_color")
	mangle := vec3Key(world, vec.Vec3{X: 0, Y: -90, Z: 0}, "_sun_mangle")
	penumbra := floatKey(world, 0, "_sunlight_penumbra")
	dirt := truthyKey(world, "_sunlight_dirt")

	dir := vec.MangleToVector(mangle)

	numSamples := 1
	if penumbra > 0 {
		numSamples = c.SunSamples
	}
	if numSamples <= 0 {
		numSamples = 1
	}

	perSun := total / float32(numSamples)
	for i := 0; i < numSamples; i++ {
		d := dir
		if i > 0 {
			d = jitterDirection(dir, penumbra, c.rng)
		}
		c.Suns = append(c.Suns, &Sun{
			Origin:     d.Scale(-sunDistance),
			Direction:  d,
			Intensity:  perSun,
			Color:      color,
			AngleScale: c.DefaultAngleScale,
			Dirt:       dirt,
		})
	}
}

// jitterDirection rejection-samples a direction within a cone of half-
// angle penumbra (degrees) of dir, by perturbing dir's mangle by a point
// drawn from a uniform disk of that radius.
func jitterDirection(dir vec.Vec3, penumbraDeg float32, rng func() float32) vec.Vec3 {
	for {
		u := rng()*2 - 1
		v := rng()*2 - 1
		if u*u+v*v <= 1 {
			yawOffset := u * penumbraDeg
			pitchOffset := v * penumbraDeg
			yaw, pitch := mangleOf(dir)
			return vec.MangleToVector(vec.Vec3{X: yaw + yawOffset, Y: pitch + pitchOffset, Z: 0})
		}
	}
}

func mangleOf(dir vec.Vec3) (yaw, pitch float32) {
	yaw = math32.Atan2(dir.Y, dir.X) * 180 / math32.Pi
	pitch = math32.Asin(math32.Max(-1, math32.Min(1, dir.Z))) * 180 / math32.Pi
	return yaw, pitch
}

// SetupSkyDome builds the "_sunlight2" (upper hemisphere) and
// "_sunlight3" (lower hemisphere, reusing _sunlight2's dirt flag per the
// open question in spec §9) sky domes, plus the straight-up/straight-down
// pair. Per spec §4.F step 7.
func (c *Context) SetupSkyDome() {
	world := &c.Entdicts[0]
	upper := floatKey(world, 0, "_sunlight2")
	lower := floatKey(world, 0, "_sunlight3")
	if upper == 0 && lower == 0 {
		return
	}

	upperColor := vec3Key(world, vec.Vec3{X: 255, Y: 255, Z: 255}, "_sunlight2_color", "_sunlight_color2")
	lowerColor := vec3Key(world, vec.Vec3{X: 255, Y: 255, Z: 255}, "_sunlight3_color", "_sunlight_color3")
	dirt := truthyKey(world, "_sunlight2_dirt") // shared with sunlight3, per spec §9 open question

	iterations := int(roundf(math32.Sqrt(float32(c.SunSamples-1)/4))) + 1
	if iterations < 2 {
		iterations = 2
	}
	elevationSteps := iterations - 1
	angleSteps := 4 * elevationSteps
	elevationStep := float32(90) / float32(elevationSteps+1)
	angleStep := float32(360) / float32(angleSteps)

	total := angleSteps*elevationSteps + 1
	if total <= 0 {
		total = 1
	}

	upperPerSun := upper / float32(total)
	lowerPerSun := lower / float32(total)

	angle := float32(0)
	for e := 0; e < elevationSteps; e++ {
		elevation := elevationStep * float32(e+1)
		for a := 0; a < angleSteps; a++ {
			d := domeDirection(elevation, angle+float32(a)*angleStep)
			if upperPerSun > 0 {
				c.addSkySun(d, upperPerSun, upperColor, dirt)
			}
			if lowerPerSun > 0 {
				mirrored := d
				mirrored.Z = -mirrored.Z
				c.addSkySun(mirrored, lowerPerSun, lowerColor, dirt)
			}
		}
		angle += angleStep / float32(elevationSteps)
	}

	up := vec.Vec3{X: 0, Y: 0, Z: 1}
	if upperPerSun > 0 {
		c.addSkySun(up, upperPerSun, upperColor, dirt)
	}
	if lowerPerSun > 0 {
		c.addSkySun(vec.Negate(up), lowerPerSun, lowerColor, dirt)
	}
}

func (c *Context) addSkySun(dir vec.Vec3, intensity float32, color vec.Vec3, dirt bool) {
	c.Suns = append(c.Suns, &Sun{
		Origin:     dir.Scale(-sunDistance),
		Direction:  dir,
		Intensity:  intensity,
		Color:      color,
		AngleScale: c.DefaultAngleScale,
		Dirt:       dirt,
	})
}

// domeDirection converts a (elevation, angle) grid cell in degrees into
// a unit direction, elevation measured up from the horizon.
func domeDirection(elevationDeg, angleDeg float32) vec.Vec3 {
	e := elevationDeg * math32.Pi / 180
	a := angleDeg * math32.Pi / 180
	ce := math32.Cos(e)
	return vec.Vec3{X: ce * math32.Cos(a), Y: ce * math32.Sin(a), Z: math32.Sin(e)}
}

func roundf(f float32) float32 {
	return math32.Round(f)
}

// nudgeOffsets are the six unit-axis probe directions FixLightsOnFaces
// tries, at a 2-unit step, in order.
var nudgeOffsets = [6]vec.Vec3{
	{X: 2}, {X: -2}, {Y: 2}, {Y: -2}, {Z: 2}, {Z: -2},
}

// FixLightsOnFaces nudges any light whose origin lies inside world-model
// solid to the first of six ±2-unit axis probes that isn't, warning if
// none work. Per spec §4.F step 8.
func (c *Context) FixLightsOnFaces(b *bsp.BSP) {
	world := b.WorldModel()
	for _, l := range c.Lights {
		if l.Intensity == 0 {
			continue
		}
		if !b.PointInSolid(world, l.Origin) {
			continue
		}

		moved := false
		for _, off := range nudgeOffsets {
			candidate := vec.Add(l.Origin, off)
			if !b.PointInSolid(world, candidate) {
				l.Origin = candidate
				moved = true
				break
			}
		}
		if !moved {
			conlog.Warnf("light: couldn't nudge light at %v out of solid", l.Origin)
		}
	}
}

// SetupLightLeafnums caches each light's containing leaf via world-model
// BSP descent. Per spec §4.F step 9.
func (c *Context) SetupLightLeafnums(b *bsp.BSP) {
	world := b.WorldModel()
	for _, l := range c.Lights {
		l.Leafnum = b.LeafnumAt(world, l.Origin)
	}
}

func vec3Key(d *entdict.Dict, def vec.Vec3, keys ...string) vec.Vec3 {
	for _, k := range keys {
		if s, ok := d.Get(k); ok {
			fields := strings.Fields(s)
			switch len(fields) {
			case 1:
				v, err := strconv.ParseFloat(fields[0], 32)
				if err == nil {
					f := float32(v)
					return vec.Vec3{X: f, Y: f, Z: f}
				}
			case 3:
				x, e1 := strconv.ParseFloat(fields[0], 32)
				y, e2 := strconv.ParseFloat(fields[1], 32)
				z, e3 := strconv.ParseFloat(fields[2], 32)
				if e1 == nil && e2 == nil && e3 == nil {
					return vec.Vec3{X: float32(x), Y: float32(y), Z: float32(z)}
				}
			}
		}
	}
	return def
}

func truthyKey(d *entdict.Dict, key string) bool {
	v, ok := d.Get(key)
	return ok && truthy(v)
}
