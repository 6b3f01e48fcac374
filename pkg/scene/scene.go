package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// Epsilon offsets secondary rays from the surface they leave
const Epsilon = 1e-5

// ShadowMode selects how Shadow decides whether an occluder lies beyond the light
type ShadowMode int

const (
	// ShadowDistance compares the occluder distance with the light distance
	ShadowDistance ShadowMode = iota
	// ShadowAxis only compares X components of the light offset and the ray
	// direction. It misjudges rays with dir.X close to 0.
	ShadowAxis
)

// SamplingConfig contains per-scene rendering defaults
type SamplingConfig struct {
	Subsamples int  // Rays per pixel along each axis (n×n grid)
	Bounces    uint // Maximum reflection/refraction depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Subsamples: 1,
		Bounces:    5,
	}
}

// Scene contains all the elements needed for tracing. It is built once and
// read concurrently afterwards, so nothing here mutates after New returns.
type Scene struct {
	Objects    core.Object    // Usually a *geometry.Group
	Lights     *lights.Lights // Lights in the scene
	Ambient    float64        // Brightness of shadowed points
	Background core.Color     // Color of rays that hit nothing
	ShadowMode ShadowMode

	CameraConfig   geometry.CameraConfig // Eye the scene is meant to be viewed from
	SamplingConfig SamplingConfig
}

// New creates a scene
func New(objects core.Object, ls *lights.Lights, ambient float64, background core.Color) *Scene {
	if ls == nil {
		ls = lights.NewLights()
	}
	return &Scene{
		Objects:        objects,
		Lights:         ls,
		Ambient:        ambient,
		Background:     background,
		SamplingConfig: DefaultSamplingConfig(),
	}
}

// Raytrace returns the color seen along ray. refrIdx is the refractive index
// of the medium the ray travels in and bounces the number of reflection or
// refraction levels still allowed below this one.
func (s *Scene) Raytrace(ray core.Ray, refrIdx float64, bounces uint) core.Color {
	hit := s.Objects.Intersect(ray)
	if hit == nil {
		return s.Background
	}

	mat := hit.Mat
	spec, diff := s.Lights.Bright(ray, hit, s)
	color := mat.Color.Multiply(diff * mat.Diff).Add(core.White.Multiply(spec * mat.Spec))

	if mat.Refr != 0 && bounces > 0 {
		color = color.Add(s.refraction(ray, hit, refrIdx, bounces-1).Multiply(mat.Refr))
	}
	if mat.Refl != 0 && bounces > 0 {
		color = color.Add(s.reflection(ray, hit, refrIdx, bounces-1).Multiply(mat.Refl))
	}

	return color.Normalize()
}

// Shadow returns 1 when nothing blocks the segment from a surface point to a
// light position, otherwise the scene's ambient level.
func (s *Scene) Shadow(from, to core.Vec3) float64 {
	dir := to.Subtract(from).Normalize()
	origin := from.Add(dir.Multiply(Epsilon))

	hit := s.Objects.Intersect(core.NewRay(origin, dir))
	if hit == nil || s.beyondLight(hit, origin, to, dir) {
		return 1
	}
	return s.Ambient
}

func (s *Scene) beyondLight(hit *core.Intersection, origin, to, dir core.Vec3) bool {
	switch s.ShadowMode {
	case ShadowAxis:
		return (to.X-hit.Pos.X)*dir.X < 0
	default:
		return hit.Dist >= to.Subtract(origin).Length()
	}
}

func (s *Scene) reflection(ray core.Ray, hit *core.Intersection, refrIdx float64, bounces uint) core.Color {
	dir := reflect(ray.Dir, hit.Normal)
	return s.Raytrace(core.NewRay(hit.Pos.Add(dir.Multiply(Epsilon)), dir), refrIdx, bounces)
}

func (s *Scene) refraction(ray core.Ray, hit *core.Intersection, refrIdx float64, bounces uint) core.Color {
	dir := refract(ray.Dir, hit.Normal, refrIdx/hit.Mat.RefrIdx)
	return s.Raytrace(core.NewRay(hit.Pos.Add(dir.Multiply(Epsilon)), dir), hit.Mat.RefrIdx, bounces)
}

// reflect mirrors d about the normal n
func reflect(d, n core.Vec3) core.Vec3 {
	return d.Subtract(n.Multiply(2 * n.Dot(d))).Normalize()
}

// refract bends d through a surface with normal n using Snell's law, where
// eta is the ratio of the incoming and outgoing refractive indices.
// Under total internal reflection there is no transmitted ray and the
// mirror direction is returned instead.
func refract(d, n core.Vec3, eta float64) core.Vec3 {
	c1 := -n.Dot(d)
	radicand := 1 - eta*eta*(1-c1*c1)
	if radicand < 0 {
		return reflect(d, n)
	}
	c2 := math.Sqrt(radicand)
	return d.Multiply(eta).Add(n.Multiply(eta*c1 - c2)).Normalize()
}
