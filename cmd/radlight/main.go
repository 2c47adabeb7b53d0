// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"flag"
	"log/slog"
	"os"

	"radlight/bounce"
	"radlight/bsp"
	"radlight/bspfile"
	"radlight/conlog"
	"radlight/entdict"
	"radlight/light"
	"radlight/math/vec"
	"radlight/palette"
)

func main() {
	bspPath := flag.String("bsp", "", "path to the .bsp file to light")
	palettePath := flag.String("palette", "", "path to gfx/palette.lmp (default: built-in grayscale)")
	dryRun := flag.Bool("dry-run", false, "run the pipeline but don't write the file back")
	sunSamples := flag.Int("sun-samples", 0, "sun/sky-dome sample count (0: use worldspawn/default)")
	bounceColorScale := flag.Float64("bounce-color-scale", -1, "bouncecolorscale override in [0,1] (-1: use worldspawn/default)")
	noBounce := flag.Bool("no-bounce", false, "skip bounce-light generation")
	noVisApprox := flag.Bool("no-vis-approx", false, "skip bouncelight visibility-bounds estimation")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	if *verbose {
		conlog.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if *bspPath == "" {
		conlog.Fatalf("radlight: -bsp is required")
	}

	raw, err := os.ReadFile(*bspPath)
	if err != nil {
		conlog.Fatalf("radlight: reading %s: %v", *bspPath, err)
	}

	file, err := bspfile.Load(raw)
	if err != nil {
		conlog.Fatalf("radlight: loading %s: %v", *bspPath, err)
	}

	if *palettePath != "" {
		pal, err := os.ReadFile(*palettePath)
		if err != nil {
			conlog.Fatalf("radlight: reading palette %s: %v", *palettePath, err)
		}
		if err := palette.Load(pal); err != nil {
			conlog.Fatalf("radlight: loading palette: %v", err)
		}
	}

	ctx := light.NewContext()
	ctx.LoadEntities(file.EntityString(), &file.BSP)

	if *sunSamples > 0 {
		ctx.SunSamples = *sunSamples
	}
	if *bounceColorScale >= 0 {
		ctx.BounceColorScale = float32(*bounceColorScale)
	}

	ctx.MakeSurfaceLights(&file.BSP)
	ctx.JitterEntities()
	ctx.MatchTargets()
	ctx.SetupSpotlights()
	ctx.SetupSuns()
	ctx.SetupSkyDome()
	ctx.FixLightsOnFaces(&file.BSP)
	ctx.SetupLightLeafnums(&file.BSP)

	if !*noBounce {
		runBounce(&file.BSP, ctx, *noVisApprox)
	}

	if *dryRun {
		conlog.Printf("radlight: dry run, not writing %s", *bspPath)
		return
	}

	out, err := file.Save(entdict.Write(ctx.Entdicts))
	if err != nil {
		conlog.Fatalf("radlight: saving %s: %v", *bspPath, err)
	}
	if err := os.WriteFile(*bspPath, out, 0644); err != nil {
		conlog.Fatalf("radlight: writing %s: %v", *bspPath, err)
	}
}

func runBounce(b *bsp.BSP, ctx *light.Context, noVisApprox bool) {
	colors := bounce.MakeTextureColors(b)
	opt := bounce.Options{
		DirectLighting: ctx.SampleDirect,
		Colors:         colors,
		ColorScale:     ctx.BounceColorScale,
	}
	if !noVisApprox {
		opt.VisApprox = visApprox
	}
	result := bounce.Generate(b, opt)
	conlog.Printf("radlight: %d bouncelights across %d faces", len(result.Bouncelights), len(result.BouncelightsByFace))
}

// visApprox approximates a bouncelight's visibility bounds as its own face
// polygon's bounding box, a cheap stand-in for a real PVS-based estimate.
func visApprox(bl *light.Bouncelight) (mins, maxs vec.Vec3, ok bool) {
	if len(bl.Poly) == 0 {
		return mins, maxs, false
	}
	mins, maxs = bl.Poly[0], bl.Poly[0]
	for _, p := range bl.Poly[1:] {
		lo, _ := vec.MinMax(mins, p)
		_, hi := vec.MinMax(maxs, p)
		mins, maxs = lo, hi
	}
	return mins, maxs, true
}
