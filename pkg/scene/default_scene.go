package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// NewDefaultScene creates a default scene with spheres, a box and a prism on a
// reflective floor, lit by a bulb and a sun
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Pos:    core.NewVec3(0, 25, 90),
		Dir:    core.NewVec3(-0.25, 0, 0), // Tilt slightly toward the floor
		FOV:    1.2,
		Width:  400,
		Height: 300,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	// Materials
	floor := core.NewMaterial(core.NewColor(0.6, 0.6, 0.6), 0.1, 0.9, 0, 1, 0.3)
	red := core.NewMaterial(core.NewColor(0.8, 0.2, 0.15), 0.6, 0.9, 0, 1, 0.2)
	glass := core.NewMaterial(core.NewColor(0.9, 0.95, 1), 1, 0.1, 0.8, 1.5, 0.1)
	blue := core.NewMaterial(core.NewColor(0.15, 0.3, 0.8), 0.4, 1, 0, 1, 0)
	gold := core.NewMaterial(core.NewColor(0.85, 0.65, 0.2), 0.8, 0.7, 0, 1, 0.4)

	objects := geometry.NewGroup(
		geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), floor),
		geometry.NewSphere(core.NewVec3(-25, 10, 0), 10, red),
		geometry.NewSphere(core.NewVec3(0, 10, 20), 10, glass),
		geometry.NewRotate(
			core.NewVec3(25, 10, 0),
			core.NewVec3(0, math.Pi/5, 0),
			geometry.NewBox(core.NewVec3(25, 10, 0), core.NewVec3(15, 20, 15), blue, false),
		),
		geometry.NewHexagonalPrism(core.NewVec3(0, 4, -30), 16, 8, gold),
	)

	ls := lights.NewLights(
		lights.NewBulb(core.NewVec3(30, 60, 40), lights.DefaultShininess),
		lights.NewSun(core.NewVec3(-1, -2, -1), 50),
	)

	s := New(objects, ls, 0.2, core.NewColor(0.05, 0.05, 0.1))
	s.CameraConfig = cameraConfig
	s.SamplingConfig = SamplingConfig{
		Subsamples: 2,
		Bounces:    5,
	}
	return s
}
