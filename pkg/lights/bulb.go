package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Bulb is a point light at a fixed position
type Bulb struct {
	Pos       core.Vec3
	Shininess float64
}

// NewBulb creates a new point light
func NewBulb(pos core.Vec3, shininess float64) *Bulb {
	return &Bulb{Pos: pos, Shininess: shininess}
}

// Bright returns the specular and diffuse contribution of the bulb
func (b *Bulb) Bright(ray core.Ray, hit *core.Intersection, scene core.Shadower) (spec, diff float64) {
	return phong(ray, hit, b.Pos, b.Shininess, scene)
}
