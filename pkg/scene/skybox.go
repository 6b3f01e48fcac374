package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// NewSkyboxScene places a glass sphere and a mirror sphere inside an
// inside-out box lit by a bulb near its ceiling
func NewSkyboxScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Pos:    core.NewVec3(0, 0, 40),
		FOV:    1.4,
		Width:  320,
		Height: 240,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	walls := core.NewMaterial(core.NewColor(0.75, 0.7, 0.6), 0.1, 1, 0, 1, 0)
	glass := core.NewMaterial(core.NewColor(0.95, 0.95, 1), 1, 0.05, 0.9, 1.5, 0.1)
	mirror := core.NewMaterial(core.NewColor(0.9, 0.9, 0.9), 1, 0.2, 0, 1, 0.8)

	objects := geometry.NewGroup(
		geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(100, 60, 100), walls, true),
		geometry.NewSphere(core.NewVec3(-8, -18, 0), 12, glass),
		geometry.NewSphere(core.NewVec3(18, -20, -15), 10, mirror),
	)

	ls := lights.NewLights(
		lights.NewBulb(core.NewVec3(0, 25, 10), lights.DefaultShininess),
	)

	s := New(objects, ls, 0.3, core.Black)
	s.CameraConfig = cameraConfig
	s.SamplingConfig = SamplingConfig{
		Subsamples: 2,
		Bounces:    6,
	}
	return s
}
