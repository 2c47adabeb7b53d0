// SPDX-License-Identifier: GPL-2.0-or-later

// Package light builds the lighting model: point/spot/sun/sky-dome/
// surface lights assembled from an entity dict, ready for a direct-
// lighting sampler to consume. It owns no BSP mutation; it only reads
// package bsp and produces Light/Sun records plus a rewritten entity
// block.
package light

import (
	"github.com/go-gl/mathgl/mgl32"

	"radlight/entdict"
	"radlight/math/vec"
	"radlight/settings"
)

// Formula selects the falloff curve a point/spot light uses.
type Formula int

const (
	Linear Formula = iota
	Inverse
	Inverse2
	Infinite
	LocalMin
	Inverse2A
)

// DefaultLightLevel is substituted for an explicit intensity of zero.
const DefaultLightLevel = 300

// MaxLightTargets bounds the number of distinct switchable-light
// targetnames; style numbers 32..32+MaxLightTargets-1 are reserved for
// them.
const MaxLightTargets = 32

// Light is one point, spot, surface, or projected-texture emitter.
type Light struct {
	Dict *entdict.Dict // back-pointer into the frozen entdicts slice; weak

	Origin    vec.Vec3
	Intensity float32
	Color     vec.Vec3 // 0-255
	Style     int
	Formula   Formula
	Atten     float32
	AngleScale float32

	Deviance float32
	Samples  int

	Target    string
	TargetEnt *entdict.Dict // resolved weak reference, nil until MatchTargets

	Mangle     vec.Vec3
	Spotlight  bool
	SpotVec    vec.Vec3
	SpotFalloff        float32 // -cos(primary half angle)
	SpotFalloff2       float32 // -cos(secondary half angle)

	ProjTexture string
	ProjFOV     float32
	ProjAngle   vec.Vec3
	ProjMatrix  mgl32.Mat4 // zero (no rows set) until setupProjectedTexture resolves ProjTexture

	Leafnum int // cached by SetupLightLeafnums; -1 until then

	Generated bool // true for surface-light/jitter-duplicate synthetics; suppressed on write-back
}

// ModelInfoFunc reports whether facenum belongs to a model surface lights
// should be generated for at all; returning ok=false skips the face,
// mirroring ModelInfoForFace returning nothing in the original. A nil
// ModelInfoFunc on Context means every face qualifies.
type ModelInfoFunc func(facenum int) (ok bool)

// Sun is a directional light represented as a point at a far distance
// along -Direction from the world origin.
type Sun struct {
	Origin     vec.Vec3 // far point: Direction * -sunDistance
	Direction  vec.Vec3 // unit
	Intensity  float32
	Color      vec.Vec3
	AngleScale float32
	Dirt       bool
}

// sunDistance is how far "at infinity" a sun's Origin is placed.
const sunDistance = 16384

// Bouncelight is a secondary emitter standing in for light reflected off
// a face, built by package bounce and consumed the same way a direct
// Light is.
type Bouncelight struct {
	Poly         []vec.Vec3
	EdgePlaneN   []vec.Vec3 // InwardEdgePlanes normals
	EdgePlaneD   []float32  // InwardEdgePlanes distances
	Pos          vec.Vec3   // face center + 1 unit along Normal
	ColorByStyle map[int]vec.Vec3
	MaxColor     vec.Vec3 // componentwise max across all styles, for culling
	Normal       vec.Vec3
	Area         float32
	HasBounds    bool
	Mins, Maxs   vec.Vec3
}

// Context packages the process-wide state the original source keeps in
// global vectors (all_lights, all_suns, entdicts, lighttargetnames,
// surfacelight_templates) as explicit fields, so the pipeline steps in
// this package are plain methods with no hidden state.
type Context struct {
	Entdicts []entdict.Dict

	Lights    []*Light
	Suns      []*Sun
	Templates []*Light // surface-light templates, removed from Lights by MakeSurfaceLights

	targetnames []string // index i -> style 32+i

	// ModelInfo, when set, gates which faces MakeSurfaceLights considers
	// at all; see ModelInfoFunc.
	ModelInfo ModelInfoFunc

	// Worldspawn-level settings, bound once and applied as defaults before
	// per-entity light construction.
	DefaultAngleScale float32
	SurflightSubdivide float32
	SunSamples         int
	BounceColorScale   float32

	rng func() float32 // uniform [0,1); overridable for deterministic tests
}

// NewContext returns a Context with the teacher's conservative defaults,
// matching spec §6's recognized-key defaults.
func NewContext() *Context {
	return &Context{
		DefaultAngleScale:  0.5,
		SurflightSubdivide: 128,
		SunSamples:         16,
		BounceColorScale:   0,
		rng:                defaultRand,
	}
}

// LightStyleForTargetname resolves name to a style number, assigning a
// fresh one from the switchable-light range on first sight. Fatal past
// MaxLightTargets distinct names.
func (c *Context) LightStyleForTargetname(name string) int {
	for i, n := range c.targetnames {
		if n == name {
			return 32 + i
		}
	}
	if len(c.targetnames) >= MaxLightTargets {
		fatalTooManyTargets(name)
	}
	c.targetnames = append(c.targetnames, name)
	return 32 + len(c.targetnames) - 1
}

// lightSettings is the Group a Light's fields are bound through, built by
// newLightSettings; kept in one place so LoadEntities and any future caller stay
// consistent with the key table in spec §6.
type lightSettings struct {
	group *settings.Group

	origin     *settings.Vec3
	light      *settings.Float
	color      *settings.Vec3
	style      *settings.Float
	target     *settings.String
	targetname *settings.String
	delay      *settings.Enum
	deviance   *settings.Float
	samples    *settings.Float
	atten      *settings.Float
	angle      *settings.Float
	mangle     *settings.Vec3
	spotangle  *settings.Float
	spotangle2 *settings.Float

	surface         *settings.String
	surfaceOffset   *settings.Float
	surfaceSpotlight *settings.Float

	projTexture *settings.String
	projFOV     *settings.Float
	projMangle  *settings.Vec3
}

func newLightSettings() *lightSettings {
	g := &settings.Group{}
	return &lightSettings{
		group:      g,
		origin:     g.AddVec3(vec.Vec3{}, "origin"),
		light:      g.AddFloat(0, "light", "_light"),
		color:      g.AddVec3(vec.Vec3{X: 255, Y: 255, Z: 255}, "_color", "color"),
		style:      g.AddFloat(0, "style"),
		target:     g.AddString("", "target"),
		targetname: g.AddString("", "targetname"),
		delay:      g.AddEnum([]string{"linear", "inverse", "inverse2", "infinite", "localmin", "inverse2a"}, 0, "delay"),
		deviance:   g.AddFloat(0, "_deviance"),
		samples:    g.AddFloat(0, "_samples"),
		atten:      g.AddFloat(1, "wait"),
		angle:      g.AddFloat(-1, "_anglescale", "_angle"),
		mangle:     g.AddVec3(vec.Vec3{}, "mangle"),
		spotangle:  g.AddFloat(0, "_cone", "_spotangle"),
		spotangle2: g.AddFloat(0, "_spotangle2"),

		surface:          g.AddString("", "_surface"),
		surfaceOffset:    g.AddFloat(2, "_surface_offset"),
		surfaceSpotlight: g.AddFloat(0, "_surface_spotlight"),

		projTexture: g.AddString("", "_project_texture"),
		projFOV:     g.AddFloat(90, "_project_fov"),
		projMangle:  g.AddVec3(vec.Vec3{}, "_project_mangle"),
	}
}
