package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// sunDistance places a directional light far enough away to act as a point
// light for the shadow test
const sunDistance = 1000000.0

// Sun is a directional light shining along Dir
type Sun struct {
	Dir       core.Vec3
	Shininess float64
}

// NewSun creates a new directional light; dir is normalized
func NewSun(dir core.Vec3, shininess float64) *Sun {
	return &Sun{Dir: dir.Normalize(), Shininess: shininess}
}

// Pos returns the virtual position used for lighting and shadows
func (s *Sun) Pos() core.Vec3 {
	return s.Dir.Multiply(-sunDistance)
}

// Bright returns the specular and diffuse contribution of the sun
func (s *Sun) Bright(ray core.Ray, hit *core.Intersection, scene core.Shadower) (spec, diff float64) {
	return phong(ray, hit, s.Pos(), s.Shininess, scene)
}
