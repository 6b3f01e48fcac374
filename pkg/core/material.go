package core

// Material describes how a surface responds to light.
// Spec, Diff, Refr and Refl are weights in [0,1] by convention, RefrIdx is a
// refractive index (>= 1). Materials are shared by pointer and never mutated.
type Material struct {
	Color   Color
	Spec    float64 // Specular weight
	Diff    float64 // Diffuse weight
	Refr    float64 // Refraction weight
	RefrIdx float64 // Refractive index
	Refl    float64 // Reflection weight
}

// NewMaterial creates a new shared material
func NewMaterial(color Color, spec, diff, refr, refrIdx, refl float64) *Material {
	return &Material{
		Color:   color,
		Spec:    spec,
		Diff:    diff,
		Refr:    refr,
		RefrIdx: refrIdx,
		Refl:    refl,
	}
}

// WithColor returns a copy of the material with its color replaced
func (m *Material) WithColor(color Color) *Material {
	derived := *m
	derived.Color = color
	return &derived
}
