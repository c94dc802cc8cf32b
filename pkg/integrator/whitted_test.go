package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-volumetric-pathtracer/pkg/core"
	"github.com/df07/go-volumetric-pathtracer/pkg/material"
	"github.com/df07/go-volumetric-pathtracer/pkg/scene"
)

func TestWhitted_BlinnPhongDiffuse(t *testing.T) {
	floor := material.NewDiffuse(core.Splat(0.5))
	light := material.NewDiffuseLight(core.Splat(0.65), core.Splat(2))
	s := buildScene(t, scene.DefaultOptions(), nil,
		horizontalQuad(0, -10, 10, -10, 10, true, floor),
		horizontalQuad(2, -0.01, 0.01, -0.01, 0.01, false, light),
	)

	w := NewWhitted(WhittedConfig{LightScale: 1})
	got := w.RayColor(core.NewRay(core.NewVec3(0.01, 1, 0.02), core.NewVec3(0, -1, 0)), s, core.NewSeededSampler(1))

	// albedo·I·cosθ/d² with no specular term (Ks is zero)
	expected := 0.5 * 2 / 4
	if math.Abs(got.X-expected)/expected > 0.01 {
		t.Errorf("Expected %f, got %f", expected, got.X)
	}
}

func TestWhitted_Shadowed(t *testing.T) {
	floor := material.NewDiffuse(core.Splat(0.5))
	light := material.NewDiffuseLight(core.Splat(0.65), core.Splat(2))
	s := buildScene(t, scene.DefaultOptions(), nil,
		horizontalQuad(0, -10, 10, -10, 10, true, floor),
		horizontalQuad(1, -1, 1, -1, 1, true, floor), // Blocker
		horizontalQuad(2, -0.01, 0.01, -0.01, 0.01, false, light),
	)

	got := NewWhitted(DefaultWhittedConfig()).RayColor(
		core.NewRay(core.NewVec3(3, 0.5, 0.1), core.NewVec3(-3, -0.5, 0)), s, core.NewSeededSampler(1))
	if !got.IsZero() {
		t.Errorf("Expected the floor under the blocker to be dark, got %v", got)
	}
}

func TestWhitted_TransparentSplitsEnergy(t *testing.T) {
	opts := scene.DefaultOptions()
	opts.RussianRoulette = 1
	opts.Background = core.Splat(1)

	// A glass pane with only the background around it: reflection and
	// refraction both see the background, so the pane is invisible
	glass := material.NewTransparent(core.Splat(1), 1.5)
	s := buildScene(t, opts, nil, horizontalQuad(0, -5, 5, -5, 5, true, glass))

	got := NewWhitted(DefaultWhittedConfig()).RayColor(
		core.NewRay(core.NewVec3(-1, 1, 0.1), core.NewVec3(1, -1, 0)), s, core.NewSeededSampler(1))
	if got.Subtract(core.Splat(1)).Length() > 1e-9 {
		t.Errorf("Expected kr + (1-kr) = 1 of the background, got %v", got)
	}
}
