package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func flatSamples(w, h int, height float64, color core.Color) []HeightSample {
	samples := make([]HeightSample, w*h)
	for i := range samples {
		samples[i] = HeightSample{Height: height, Color: color}
	}
	return samples
}

func TestNewHeightField_Validation(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		samples int
		ratio   float64
	}{
		{"too narrow", 1, 3, 3, 1},
		{"too short", 3, 1, 3, 1},
		{"sample count mismatch", 3, 3, 8, 1},
		{"zero ratio", 3, 3, 9, 0},
		{"nan ratio", 3, 3, 9, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHeightField(core.Vec3{}, tt.ratio, tt.w, tt.h, make([]HeightSample, tt.samples), testMaterial)
			if err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestHeightField_Intersect_Plateau(t *testing.T) {
	green := core.NewColor(0.1, 0.9, 0.2)
	hf, err := NewHeightField(core.NewVec3(0, 0, 0), 1, 3, 3, flatSamples(3, 3, 1, green), testMaterial)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	hit := hf.Intersect(core.NewRay(core.NewVec3(0.3, 10, 0.2), core.NewVec3(0, -1, 0)))
	if hit == nil {
		t.Fatal("Expected hit, got miss")
	}
	if math.Abs(hit.Dist-9) > 1e-9 {
		t.Errorf("Expected dist=9, got %f", hit.Dist)
	}
	assertVec(t, "position", hit.Pos, core.NewVec3(0.3, 1, 0.2), 1e-9)
	assertVec(t, "normal", hit.Normal, core.NewVec3(0, 1, 0), 1e-9)

	if hit.Mat == testMaterial {
		t.Error("Expected a derived material, got the base material")
	}
	if math.Abs(hit.Mat.Color.G-green.G) > 1e-12 || math.Abs(hit.Mat.Color.R-green.R) > 1e-12 {
		t.Errorf("Expected interpolated color %v, got %v", green, hit.Mat.Color)
	}
	if hit.Mat.Spec != testMaterial.Spec || hit.Mat.Diff != testMaterial.Diff {
		t.Errorf("Expected coefficients of the base material, got %+v", hit.Mat)
	}
}

func TestHeightField_Intersect_MarchesDownToSlope(t *testing.T) {
	// Height rises with the column index: 0, 1, 2
	hf, err := NewHeightFieldFromFunc(core.NewVec3(0, 0, 0), 1, 3, 3, func(i, j int) HeightSample {
		return HeightSample{Height: float64(i), Color: core.White}
	}, testMaterial)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Grid cell (0.5, 0.5) sits at world (-0.5, *, -0.5); all four corners are
	// equally far so the interpolated height is 0.5
	hit := hf.Intersect(core.NewRay(core.NewVec3(-0.5, 10, -0.5), core.NewVec3(0, -1, 0)))
	if hit == nil {
		t.Fatal("Expected hit, got miss")
	}
	if math.Abs(hit.Pos.Y-0.5) > 1e-5 {
		t.Errorf("Expected surface at y=0.5, got %f", hit.Pos.Y)
	}
	if math.Abs(hit.Dist-9.5) > 1e-5 {
		t.Errorf("Expected dist=9.5, got %f", hit.Dist)
	}
	if math.Abs(hit.Normal.Length()-1) > 1e-9 || hit.Normal.Y <= 0 {
		t.Errorf("Expected upward unit normal, got %v", hit.Normal)
	}
}

func TestHeightField_Intersect_ScaledByRatio(t *testing.T) {
	hf, err := NewHeightField(core.NewVec3(10, 2, 0), 2, 3, 3, flatSamples(3, 3, 1.5, core.White), testMaterial)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Base at y=2, heights 1.5 * ratio 2
	hit := hf.Intersect(core.NewRay(core.NewVec3(10.5, 20, 0.5), core.NewVec3(0, -1, 0)))
	if hit == nil {
		t.Fatal("Expected hit, got miss")
	}
	if math.Abs(hit.Pos.Y-5) > 1e-9 {
		t.Errorf("Expected surface at y=5, got %f", hit.Pos.Y)
	}
}

func TestHeightField_Intersect_Miss(t *testing.T) {
	hf, err := NewHeightField(core.NewVec3(0, 0, 0), 1, 3, 3, flatSamples(3, 3, 1, core.White), testMaterial)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tests := []struct {
		name string
		ray  core.Ray
	}{
		{"outside footprint", core.NewRay(core.NewVec3(5, 10, 0), core.NewVec3(0, -1, 0))},
		{"pointing away", core.NewRay(core.NewVec3(0, 10, 0), core.NewVec3(0, 1, 0))},
		{"passes above", core.NewRay(core.NewVec3(-5, 3, 0), core.NewVec3(1, 0, 0))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hit := hf.Intersect(tt.ray); hit != nil {
				t.Errorf("Expected miss, got hit at %v", hit.Pos)
			}
		})
	}
}

func TestHeightField_Intersect_FlatFieldObliqueRays(t *testing.T) {
	// Every height is 0, so the surface is the base plane y=0.3
	hf, err := NewHeightField(core.NewVec3(0, 0.3, 0), 0.7, 8, 8, flatSamples(8, 8, 0, core.White), testMaterial)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Footprint spans -2.45..2.45 on X and Z
	for _, x := range []float64{-2, -1, 0, 1, 2} {
		for _, z := range []float64{-2, -0.5, 1.5} {
			target := core.NewVec3(x, 0.3, z)
			origin := target.Add(core.NewVec3(-6, 8, 3))
			ray := core.NewRay(origin, target.Subtract(origin).Normalize())

			hit := hf.Intersect(ray)
			if hit == nil {
				t.Errorf("Expected hit at %v, got miss", target)
				continue
			}
			assertVec(t, "position", hit.Pos, target, 1e-4)
			assertVec(t, "normal", hit.Normal, core.NewVec3(0, 1, 0), 1e-9)
		}
	}
}

func TestHeightField_Intersect_StopConditions(t *testing.T) {
	// Height rises with the column index: 0, 1, 2
	slope, err := NewHeightFieldFromFunc(core.NewVec3(0, 0, 0), 1, 3, 3, func(i, j int) HeightSample {
		return HeightSample{Height: float64(i), Color: core.White}
	}, testMaterial)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Only the far corner is raised, so the box reaches y=3 while the surface
	// under cell (0, 0) stays at 0
	peak := flatSamples(3, 3, 0, core.White)
	peak[8].Height = 3
	spike, err := NewHeightField(core.NewVec3(0, 0, 0), 1, 3, 3, peak, testMaterial)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		hf       *HeightField
		maxSteps int
		ray      core.Ray
	}{
		{
			// The first step lands on the slope, but the budget ends before it is accepted
			name:     "step budget exhausted",
			hf:       slope,
			maxSteps: 1,
			ray:      core.NewRay(core.NewVec3(-0.5, 10, -0.5), core.NewVec3(0, -1, 0)),
		},
		{
			name:     "surface behind the origin",
			hf:       spike,
			maxSteps: heightFieldMaxSteps,
			ray:      core.NewRay(core.NewVec3(-0.5, 1, -0.5), core.NewVec3(0, 1, 0)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.hf.maxSteps = tt.maxSteps
			defer func() { tt.hf.maxSteps = heightFieldMaxSteps }()

			if hit := tt.hf.Intersect(tt.ray); hit != nil {
				t.Errorf("Expected miss, got hit at %v", hit.Pos)
			}
		})
	}

	// The same downward ray is accepted once a second step is allowed
	slope.maxSteps = 2
	if hit := slope.Intersect(core.NewRay(core.NewVec3(-0.5, 10, -0.5), core.NewVec3(0, -1, 0))); hit == nil {
		t.Error("Expected hit with two steps, got miss")
	}
}
