package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point  core.Vec3      // A point on the plane
	Normal core.Vec3      // Normal vector (normalized on construction)
	Mat    *core.Material // Material of the plane
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, mat *core.Material) *Plane {
	return &Plane{
		Point:  point,
		Normal: normal.Normalize(),
		Mat:    mat,
	}
}

// Intersect solves the linear ray-plane equation
func (p *Plane) Intersect(ray core.Ray) *core.Intersection {
	dist, ok := planeDistance(ray, p.Point, p.Normal)
	if !ok {
		return nil
	}
	return core.NewIntersection(dist, ray.At(dist), p.Normal, p.Mat)
}

// planeDistance returns the distance along the ray to the plane through point
// with the given normal. Parallel rays and hits at or behind the origin miss.
func planeDistance(ray core.Ray, point, normal core.Vec3) (float64, bool) {
	denominator := ray.Dir.Dot(normal)
	if denominator == 0 {
		return 0, false
	}
	dist := point.Subtract(ray.Pos).Dot(normal) / denominator
	if !(dist > 0) {
		return 0, false
	}
	return dist, true
}
