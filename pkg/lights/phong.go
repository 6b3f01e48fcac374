package lights

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// phong evaluates the diffuse and specular terms for a light located at pos,
// both scaled by how much of the light reaches the hit point.
func phong(ray core.Ray, hit *core.Intersection, pos core.Vec3, shininess float64, scene core.Shadower) (spec, diff float64) {
	n := hit.Normal
	l := pos.Subtract(hit.Pos).Normalize()
	r := n.Multiply(2 * l.Dot(n)).Subtract(l).Normalize()
	v := ray.Pos.Subtract(hit.Pos).Normalize()

	shadow := scene.Shadow(hit.Pos, pos)
	diff = shadow * max(l.Dot(n), 0)
	spec = shadow * math.Pow(max(r.Dot(v), 0), shininess)
	return spec, diff
}
