package core

// Ray represents a ray with an origin and direction.
// Dir is expected to be unit length; nothing renormalizes it.
type Ray struct {
	Pos Vec3
	Dir Vec3
}

// NewRay creates a new ray
func NewRay(pos, dir Vec3) Ray {
	return Ray{Pos: pos, Dir: dir}
}

// At returns the point at distance t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Pos.Add(r.Dir.Multiply(t))
}

// Intersection describes the nearest surface struck by a ray
type Intersection struct {
	Dist   float64   // Distance along the ray, always > 0
	Pos    Vec3      // World-space hit point
	Normal Vec3      // Unit surface normal
	Mat    *Material // Shared material of the surface
}

// NewIntersection creates a new intersection record
func NewIntersection(dist float64, pos, normal Vec3, mat *Material) *Intersection {
	return &Intersection{Dist: dist, Pos: pos, Normal: normal, Mat: mat}
}
