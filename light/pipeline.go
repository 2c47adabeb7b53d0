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
	"radlight/winding"
)

// LoadEntities parses src, migrates the legacy lightmap_scale key,
// decodes value escapes, applies worldspawn-level settings to the
// context, assigns switchable-light styles, and constructs one Light per
// "light*" entity, resolving each one's
// "_project_texture" against b's miptex table and precomputing its
// projection matrix along the way. Per spec §4.F step 1.
func (c *Context) LoadEntities(src []byte, b *bsp.BSP) {
	c.Entdicts = entdict.Parse(src)
	if len(c.Entdicts) == 0 || c.Entdicts[0].ClassName() != "worldspawn" {
		conlog.Fatalf("light: first entity is not worldspawn")
	}

	for i := range c.Entdicts {
		d := &c.Entdicts[i]
		d.Rename("lightmap_scale", "_lightmap_scale")
		entdict.DecodeDictEscapes(d)
	}

	world := &c.Entdicts[0]
	if v := floatKey(world, -1, "_anglescale", "_anglesense", "anglescale"); v >= 0 && v <= 1 {
		c.DefaultAngleScale = v
	}
	if v := floatKey(world, 0, "_sunsamples", "sunsamples"); v > 0 {
		c.SunSamples = int(v)
	}
	if v := floatKey(world, -1, "_bouncecolorscale", "bouncecolorscale"); v >= 0 && v <= 1 {
		c.BounceColorScale = v
	}
	if v := floatKey(world, 0, "_surflight_subdivide", "surflight_subdivide"); v > 0 {
		c.SurflightSubdivide = v
	}

	for i := range c.Entdicts {
		d := &c.Entdicts[i]
		class := d.ClassName()
		if !strings.HasPrefix(class, "light") {
			continue
		}

		if targetname, ok := d.Get("targetname"); ok {
			if _, hasStyle := d.Get("style"); !hasStyle {
				style := c.LightStyleForTargetname(targetname)
				d.Set("style", strconv.Itoa(style))
			}
		}

		c.Lights = append(c.Lights, c.newLightFromDict(d, b))
	}

	conlog.Printf("%d entities read, %d are lights", len(c.Entdicts), len(c.Lights))
}

func (c *Context) newLightFromDict(d *entdict.Dict, b *bsp.BSP) *Light {
	ls := newLightSettings()
	ls.group.Bind(d)

	l := &Light{
		Dict:       d,
		Origin:     ls.origin.Value(),
		Intensity:  ls.light.Value(),
		Color:      normalizeColor(ls.color.Value()),
		Style:      int(ls.style.Value()),
		Formula:    Formula(ls.delay.Value()),
		Atten:      ls.atten.Value(),
		AngleScale: c.DefaultAngleScale,
		Deviance:   ls.deviance.Value(),
		Samples:    int(ls.samples.Value()),
		Target:     ls.target.Value(),
		Mangle:     ls.mangle.Value(),
		Leafnum:    -1,

		ProjTexture: ls.projTexture.Value(),
		ProjFOV:     ls.projFOV.Value(),
		ProjAngle:   ls.projMangle.Value(),
	}

	// The enum binder only recognizes formula names; a numeric "delay" is
	// the formula index itself, and an out-of-range one is left for
	// validateLight to warn about.
	if s, ok := d.Get("delay"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			l.Formula = Formula(n)
		}
	}

	if ls.angle.Changed && ls.angle.Value() >= 0 && ls.angle.Value() <= 1 {
		l.AngleScale = ls.angle.Value()
	}

	if ls.mangle.Changed {
		l.SpotVec = vec.MangleToVector(l.Mangle)
		l.Spotlight = true
	}
	if !ls.projMangle.Changed {
		l.ProjAngle = l.Mangle
	}

	c.setupProjectedTexture(l, b)

	c.validateLight(l)
	return l
}

// setupProjectedTexture resolves l.ProjTexture against b's miptex table
// and precomputes l.ProjMatrix, swapping which FOV axis carries the
// configured _project_fov when the texture is taller than wide. A
// missing texture warns and leaves the light unprojected, per spec §6's
// "recoverable, warn-and-continue" list.
func (c *Context) setupProjectedTexture(l *Light, b *bsp.BSP) {
	if l.ProjTexture == "" || b == nil {
		return
	}

	mt := findMipTexByName(b, l.ProjTexture)
	if mt == nil {
		conlog.Warnf("light: entity at %v has \"_project_texture\" %q, but this texture is not present in the bsp", l.Origin, l.ProjTexture)
		return
	}

	fovx, fovy := l.ProjFOV, l.ProjFOV
	if mt.Width > mt.Height {
		fovy = calcFov(l.ProjFOV, float32(mt.Width), float32(mt.Height))
	} else {
		fovx = calcFov(l.ProjFOV, float32(mt.Height), float32(mt.Width))
	}
	l.ProjMatrix = makeModelViewProj(l.ProjAngle, l.Origin, fovx, fovy)
}

func findMipTexByName(b *bsp.BSP, name string) *bsp.MipTex {
	for i := range b.MipTex {
		if strings.EqualFold(b.MipTex[i].Name, name) {
			return &b.MipTex[i]
		}
	}
	return nil
}

// validateLight applies the field-level defaulting rules from spec §4.F
// step 1.
func (c *Context) validateLight(l *Light) {
	if l.Intensity == 0 {
		l.Intensity = DefaultLightLevel
	}
	if l.Atten <= 0 {
		l.Atten = 1
	}
	if l.AngleScale < 0 || l.AngleScale > 1 {
		l.AngleScale = c.DefaultAngleScale
	}

	if !isKnownFormula(l.Formula) {
		warnUnknownFormula("light: entity at %v has unknown delay value, defaulting to linear", l.Origin)
		l.Formula = Linear
	}

	if l.Deviance > 0 && l.Samples == 0 {
		l.Samples = 16
	}
	if l.Deviance <= 0 || l.Samples <= 1 {
		l.Deviance = 0
		l.Samples = 1
	}

	switch l.Formula {
	case Inverse, Inverse2, Infinite, Inverse2A:
		l.Intensity /= float32(l.Samples)
	}

	if l.Style < 0 || l.Style > 254 {
		fatalBadStyle(l.Style)
	}
}

func isKnownFormula(f Formula) bool {
	return f >= Linear && f <= Inverse2A
}

// normalizeColor implements spec §6: if every component is already in
// [0,1] treat it as normalized and scale to 0-255, else use as given.
func normalizeColor(c vec.Vec3) vec.Vec3 {
	if c.X >= 0 && c.X <= 1 && c.Y >= 0 && c.Y <= 1 && c.Z >= 0 && c.Z <= 1 {
		return c.Scale(255)
	}
	return c
}

// MakeSurfaceLights moves every entity with a non-empty "_surface" value
// out of Lights and into Templates (by copy), zeroing the original's
// intensity so the template itself casts no direct light, then walks
// every leaf's marksurface range emitting a generated point (optionally
// spot) light at the centroid of every diced sub-polygon of every face
// whose texture name matches a template. A face is processed at most once
// globally; its liquid ("*"-prefixed) side is skipped only when seen from
// a non-empty (underwater) leaf, so the same face reached later from an
// empty leaf still gets its lights. Per spec §4.F step 2.
func (c *Context) MakeSurfaceLights(b *bsp.BSP) {
	kept := c.Lights[:0]
	for _, l := range c.Lights {
		surf, _ := l.Dict.Get("_surface")
		if surf == "" {
			kept = append(kept, l)
			continue
		}
		tmpl := *l
		c.Templates = append(c.Templates, &tmpl)
		l.Intensity = 0
	}
	c.Lights = kept

	if len(c.Templates) == 0 {
		return
	}

	visited := make([]bool, len(b.Faces))
	for i := range b.Leaves {
		leaf := &b.Leaves[i]
		underwater := leaf.Contents != bsp.ContentsEmpty

		for k := 0; k < int(leaf.NumMarkSurfaces); k++ {
			facenum := int(b.MarkSurfaces[int(leaf.FirstMarkSurface)+k])

			if c.ModelInfo != nil && !c.ModelInfo(facenum) {
				continue
			}

			face := b.Face(facenum)
			texname := b.FaceTextureName(face)

			// Ignore the underwater side of liquid surfaces; a
			// non-underwater leaf sharing the same face still reaches it.
			if underwater && strings.HasPrefix(texname, "*") {
				continue
			}

			if visited[facenum] {
				continue
			}
			visited[facenum] = true

			c.emitSurfaceLightsForFace(b, face, texname)
		}
	}
}

func (c *Context) emitSurfaceLightsForFace(b *bsp.BSP, face *bsp.Face, texname string) {
	normal := b.FaceNormal(face)
	poly := winding.FromFace(b, face)

	poly.Subdivide(c.SurflightSubdivide, func(frag winding.Winding) {
		center := frag.Center()
		for _, t := range c.Templates {
			surf, _ := t.Dict.Get("_surface")
			if !strings.EqualFold(surf, texname) {
				continue
			}

			off := float32(2)
			if s, ok := t.Dict.Get("_surface_offset"); ok {
				if v, err := strconv.ParseFloat(s, 32); err == nil {
					off = float32(v)
				}
			}

			gen := &Light{
				Origin:     vec.Add(center, normal.Scale(off)),
				Intensity:  t.Intensity,
				Color:      t.Color,
				Style:      t.Style,
				Formula:    t.Formula,
				Atten:      t.Atten,
				AngleScale: t.AngleScale,
				Samples:    1,
				Dict:       t.Dict,
				Leafnum:    -1,
				Generated:  true,
			}
			if spot, ok := t.Dict.Get("_surface_spotlight"); ok && truthy(spot) {
				gen.Spotlight = true
				gen.SpotVec = normal
			}
			c.Lights = append(c.Lights, gen)
		}
	})
}

func truthy(s string) bool {
	return s != "" && s != "0"
}

// JitterEntities appends Samples-1 randomly-offset duplicates for every
// light in the pre-jitter slice whose Samples > 1; duplicates are
// themselves never jittered again. Per spec §4.F step 3.
func (c *Context) JitterEntities() {
	base := c.Lights
	for _, l := range base {
		if l.Samples <= 1 {
			continue
		}
		for i := 1; i < l.Samples; i++ {
			dup := *l
			dup.Generated = true
			dup.Origin = vec.Add(l.Origin, vec.Vec3{
				X: c.uniform(-l.Deviance, l.Deviance),
				Y: c.uniform(-l.Deviance, l.Deviance),
				Z: c.uniform(-l.Deviance, l.Deviance),
			})
			c.Lights = append(c.Lights, &dup)
		}
	}
}

// MatchTargets resolves each light's Target to a weak TargetEnt
// reference by linear search, warning on no match. Per spec §4.F step 4.
func (c *Context) MatchTargets() {
	for _, l := range c.Lights {
		if l.Target == "" {
			continue
		}
		found := false
		for i := range c.Entdicts {
			if tn, ok := c.Entdicts[i].Get("targetname"); ok && tn == l.Target {
				l.TargetEnt = &c.Entdicts[i]
				found = true
				break
			}
		}
		if !found {
			conlog.Warnf("light: target %q of entity at %v not found", l.Target, l.Origin)
		}
	}
}

// defaultSpotAngle is used when a spotlight specifies no explicit cone.
const defaultSpotAngle = 40

// SetupSpotlights derives SpotVec from TargetEnt when present, and fills
// in SpotFalloff/SpotFalloff2 for every spotlight. Per spec §4.F step 5.
func (c *Context) SetupSpotlights() {
	for _, l := range c.Lights {
		if l.TargetEnt != nil {
			l.SpotVec = vec.Normalize(vec.Sub(originOf(l.TargetEnt), l.Origin))
			l.Spotlight = true
		}
		if !l.Spotlight {
			continue
		}

		angle := floatKey(l.Dict, 0, "_cone", "_spotangle")
		if angle <= 0 {
			angle = defaultSpotAngle
		}
		l.SpotFalloff = -cosDeg(angle / 2)

		angle2 := floatKey(l.Dict, 0, "_spotangle2")
		if angle2 <= 0 || angle2 > angle {
			angle2 = angle
		}
		l.SpotFalloff2 = -cosDeg(angle2 / 2)
	}
}

func cosDeg(deg float32) float32 {
	return math32.Cos(deg * math32.Pi / 180)
}

func originOf(d *entdict.Dict) vec.Vec3 {
	v, _ := d.Get("origin")
	return parseVec3(v)
}

func floatKey(d *entdict.Dict, def float32, keys ...string) float32 {
	for _, k := range keys {
		if s, ok := d.Get(k); ok {
			if v, err := strconv.ParseFloat(s, 32); err == nil {
				return float32(v)
			}
		}
	}
	return def
}

func parseVec3(s string) vec.Vec3 {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return vec.Vec3{}
	}
	x, _ := strconv.ParseFloat(fields[0], 32)
	y, _ := strconv.ParseFloat(fields[1], 32)
	z, _ := strconv.ParseFloat(fields[2], 32)
	return vec.Vec3{X: float32(x), Y: float32(y), Z: float32(z)}
}
