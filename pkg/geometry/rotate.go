package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Rotate wraps an object so it appears rotated about a pivot.
// Angles are Euler angles applied X, then Y, then Z (see core.Vec3.Rotate).
type Rotate struct {
	Pivot  core.Vec3
	Angles core.Vec3
	Object core.Object
}

// NewRotate creates a new rotation decorator owning object
func NewRotate(pivot, angles core.Vec3, object core.Object) *Rotate {
	return &Rotate{
		Pivot:  pivot,
		Angles: angles,
		Object: object,
	}
}

// Intersect moves the ray into the child's frame, intersects, and maps the hit
// position and normal back to world space. Rotation preserves length, so the
// child's distance is the world distance.
func (r *Rotate) Intersect(ray core.Ray) *core.Intersection {
	local := core.NewRay(
		ray.Pos.Subtract(r.Pivot).Rotate(r.Angles).Add(r.Pivot),
		ray.Dir.Rotate(r.Angles),
	)

	hit := r.Object.Intersect(local)
	if hit == nil {
		return nil
	}

	return core.NewIntersection(
		hit.Dist,
		hit.Pos.Subtract(r.Pivot).RotateInverse(r.Angles).Add(r.Pivot),
		hit.Normal.RotateInverse(r.Angles),
		hit.Mat,
	)
}
