package scene

import (
	"math"
	"math/rand"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

const (
	hexagroundColumns = 8
	hexagroundRows    = 10
	hexagroundSize    = 10.0
)

// NewHexagroundScene creates a staggered grid of hexagonal columns with random
// heights and colors. The same seed always produces the same scene.
func NewHexagroundScene(seed int64, cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Pos:    core.NewVec3(-5, 20, 35),
		Dir:    core.NewVec3(-0.7, -0.1, 0),
		FOV:    2.1,
		Width:  200,
		Height: 200,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	random := rand.New(rand.NewSource(seed))
	objects := geometry.NewGroup()

	// Odd rows are shifted by half a column so the prisms interlock
	rowStep := math.Tan(math.Pi/3) * hexagroundSize / 2
	for z := range hexagroundRows {
		for x := range hexagroundColumns {
			height := 1 + random.Float64()*7
			color := core.NewColor(random.Float64(), random.Float64(), random.Float64())
			mat := core.NewMaterial(color, 0.4, 1, 0, 1, 0.1)

			center := core.NewVec3(
				float64(x)*hexagroundSize+float64(z%2)*hexagroundSize/2,
				0,
				float64(z)*rowStep,
			)
			objects.Add(geometry.NewHexagonalPrism(center, hexagroundSize, height, mat))
		}
	}

	ls := lights.NewLights(
		lights.NewBulb(core.NewVec3(25, 50, 5), lights.DefaultShininess),
	)

	s := New(objects, ls, 0.2, core.Black)
	s.CameraConfig = cameraConfig
	s.SamplingConfig = SamplingConfig{
		Subsamples: 2,
		Bounces:    3,
	}
	return s
}
