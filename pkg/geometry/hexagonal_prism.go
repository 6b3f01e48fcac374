package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// HexagonalPrism approximates an upright hexagonal column as the union of
// three boxes sharing a center, rotated 0°, 60° and 120° about the Y axis.
type HexagonalPrism struct {
	Center core.Vec3
	Width  float64 // Corner-to-corner width along X
	Height float64
	boxes  *Group
}

// NewHexagonalPrism creates a new hexagonal prism
func NewHexagonalPrism(center core.Vec3, width, height float64, mat *core.Material) *HexagonalPrism {
	depth := math.Tan(math.Pi/6) * width
	extents := core.NewVec3(width, height, depth)

	return &HexagonalPrism{
		Center: center,
		Width:  width,
		Height: height,
		boxes: NewGroup(
			NewBox(center, extents, mat, false),
			NewRotate(center, core.NewVec3(0, math.Pi/3, 0), NewBox(center, extents, mat, false)),
			NewRotate(center, core.NewVec3(0, 2*math.Pi/3, 0), NewBox(center, extents, mat, false)),
		),
	}
}

// Intersect tests the ray against the three boxes
func (h *HexagonalPrism) Intersect(ray core.Ray) *core.Intersection {
	return h.boxes.Intersect(ray)
}
