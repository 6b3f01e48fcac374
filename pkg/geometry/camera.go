package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// screenDistance is how far in front of the eye the virtual screen sits
const screenDistance = 100.0

// CameraConfig describes the eye of a render
type CameraConfig struct {
	Pos    core.Vec3 // Eye position
	Dir    core.Vec3 // Euler angles turning the default -Z view direction
	FOV    float64   // Field of view in radians
	Width  int       // Image width in pixels
	Height int       // Image height in pixels
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Pos != (core.Vec3{}) {
		result.Pos = override.Pos
	}
	if override.Dir != (core.Vec3{}) {
		result.Dir = override.Dir
	}
	if override.FOV != 0 {
		result.FOV = override.FOV
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Height != 0 {
		result.Height = override.Height
	}
	return result
}

// Camera generates primary rays through a flat screen in front of the eye
type Camera struct {
	config CameraConfig
	corner core.Vec3 // Top-left corner of the screen before rotation
	step   core.Vec3 // Size of one pixel on the screen
}

// NewCamera creates a camera from its configuration
func NewCamera(config CameraConfig) *Camera {
	screenX := math.Tan(config.FOV/2) * screenDistance
	screenY := screenX * float64(config.Height) / float64(config.Width)

	return &Camera{
		config: config,
		corner: core.NewVec3(-screenX/2, screenY/2, -screenDistance),
		step:   core.NewVec3(screenX/float64(config.Width), -screenY/float64(config.Height), 0),
	}
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// GetRay returns the ray through the continuous image position (u, v), where
// pixel (i, j) covers [i, i+1) × [j, j+1) and v grows downward.
func (c *Camera) GetRay(u, v float64) core.Ray {
	dir := c.corner.Add(core.NewVec3(u, v, 0).MultiplyVec(c.step))
	return core.NewRay(c.config.Pos, dir.Rotate(c.config.Dir).Normalize())
}

// OrbitCameras returns count cameras circling lookAt around the X axis at the
// given distance, each tilted to keep lookAt in the middle of the frame.
func OrbitCameras(base CameraConfig, lookAt core.Vec3, distance float64, count int) []CameraConfig {
	configs := make([]CameraConfig, 0, count)
	step := -2 * math.Pi / float64(count)
	for i := range count {
		angle := step * float64(i)
		config := base
		config.Dir = core.NewVec3(angle, 0, 0)
		config.Pos = core.NewVec3(
			lookAt.X,
			lookAt.Y-math.Sin(angle)*distance,
			lookAt.Z+math.Cos(angle)*distance,
		)
		configs = append(configs, config)
	}
	return configs
}
