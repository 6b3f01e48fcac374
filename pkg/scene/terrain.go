package scene

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// TerrainConfig controls the Mandelbrot terrain
type TerrainConfig struct {
	Size    int     // Samples along each side of the grid
	Ratio   float64 // World units between samples
	MaxIter uint    // Mandelbrot iteration limit
	Height  float64 // Height of points that never escape, in samples
	CenterX float64 // Center of the sampled region of the complex plane
	CenterY float64
	Span    float64 // Width of the sampled region
}

// DefaultTerrainConfig returns a view of a seahorse-valley filament
func DefaultTerrainConfig() TerrainConfig {
	return TerrainConfig{
		Size:    96,
		Ratio:   1,
		MaxIter: 50,
		Height:  12,
		CenterX: -0.0140625,
		CenterY: 0.7154296875,
		Span:    0.005859375,
	}
}

// NewTerrainScene creates a height field whose heights are Mandelbrot escape
// counts, so the set itself forms a plateau
func NewTerrainScene(config TerrainConfig, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.CameraConfig{
		Pos:    core.NewVec3(0, 60, 110),
		Dir:    core.NewVec3(-0.5, 0, 0),
		FOV:    1.2,
		Width:  320,
		Height: 240,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	step := config.Span / float64(config.Size)
	startX := config.CenterX - config.Span/2
	startY := config.CenterY - config.Span/2
	sample := func(i, j int) geometry.HeightSample {
		p := Mandelbrot(startX+float64(i)*step, startY+float64(j)*step, config.MaxIter)
		t := float64(p.Iter) / float64(config.MaxIter)
		return geometry.HeightSample{
			Height: t * config.Height,
			Color:  core.NewColor(t, 0.3+0.5*t, 1-t),
		}
	}

	mat := core.NewMaterial(core.White, 0.3, 1, 0, 1, 0)
	field, err := geometry.NewHeightFieldFromFunc(core.NewVec3(0, 0, 0), config.Ratio, config.Size, config.Size, sample, mat)
	if err != nil {
		return nil, fmt.Errorf("failed to build terrain: %w", err)
	}

	water := core.NewMaterial(core.NewColor(0.1, 0.2, 0.35), 0.5, 0.6, 0, 1, 0.5)
	objects := geometry.NewGroup(
		field,
		geometry.NewPlane(core.NewVec3(0, -0.5, 0), core.NewVec3(0, 1, 0), water),
	)

	ls := lights.NewLights(
		lights.NewBulb(core.NewVec3(0, 300, 200), lights.DefaultShininess),
	)

	s := New(objects, ls, 0.25, core.NewColor(0.6, 0.7, 0.9))
	s.CameraConfig = cameraConfig
	s.SamplingConfig = SamplingConfig{
		Subsamples: 1,
		Bounces:    2,
	}
	return s, nil
}
