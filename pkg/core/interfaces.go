package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Object is anything a ray can strike
type Object interface {
	// Intersect returns the nearest hit at a strictly positive distance, or nil
	Intersect(ray Ray) *Intersection
}

// Shadower answers how much light reaches a point from a light position
type Shadower interface {
	Shadow(from, to Vec3) float64
}

// Light produces specular and diffuse magnitudes for a hit point.
// Material weights are applied by the caller.
type Light interface {
	Bright(ray Ray, hit *Intersection, scene Shadower) (spec, diff float64)
}
