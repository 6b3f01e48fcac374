package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
	Mat    *core.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat *core.Material) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
		Mat:    mat,
	}
}

// Intersect solves |P + tD - C|² = r² and returns the nearest positive root
func (s *Sphere) Intersect(ray core.Ray) *core.Intersection {
	// Vector from sphere center to ray origin
	oc := ray.Pos.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Dir.Dot(ray.Dir)
	b := 2 * ray.Dir.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := (-b + sqrtD) / (2 * a)
	t2 := (-b - sqrtD) / (2 * a)
	if t1 <= 0 && t2 <= 0 {
		return nil
	}

	dist := t2
	if t2 <= 0 || t1 < t2 {
		dist = t1
	}
	pos := ray.At(dist)

	// Normal faces the side the ray came from
	normal := pos.Subtract(s.Center).Normalize()
	if oc.Length() <= s.Radius {
		normal = normal.Negate()
	}

	return core.NewIntersection(dist, pos, normal, s.Mat)
}
