package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Lights is an ordered list of lights whose contributions add up
type Lights struct {
	All []core.Light
}

// NewLights creates a light aggregate
func NewLights(all ...core.Light) *Lights {
	return &Lights{All: all}
}

// Add appends a light
func (ls *Lights) Add(light core.Light) {
	ls.All = append(ls.All, light)
}

// Len returns the number of lights
func (ls *Lights) Len() int {
	return len(ls.All)
}

// Bright sums the contributions of every light component-wise
func (ls *Lights) Bright(ray core.Ray, hit *core.Intersection, scene core.Shadower) (spec, diff float64) {
	for _, light := range ls.All {
		s, d := light.Bright(ray, hit, scene)
		spec += s
		diff += d
	}
	return spec, diff
}
