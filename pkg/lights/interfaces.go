package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// DefaultShininess is the Phong exponent used when a scene does not set one
const DefaultShininess = 20

var (
	_ core.Light = (*Bulb)(nil)
	_ core.Light = (*Sun)(nil)
	_ core.Light = (*Lights)(nil)
)
