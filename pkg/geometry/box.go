package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Box represents an axis-aligned box made up of 6 rectangles
type Box struct {
	Center  core.Vec3 // Center point of the box
	Extents core.Vec3 // Full size along each axis (width, height, depth)
	Skybox  bool      // Faces point inward
	faces   *Group
}

// NewBox creates a new axis-aligned box. With skybox set, every face is moved
// to the opposite side so its normal points into the box, which lets a camera
// placed inside see the walls.
func NewBox(center, extents core.Vec3, mat *core.Material, skybox bool) *Box {
	sign := 1.0
	if skybox {
		sign = -1.0
	}
	half := extents.Multiply(0.5 * sign)

	left := core.NewVec3(center.X-half.X, center.Y, center.Z)
	right := core.NewVec3(center.X+half.X, center.Y, center.Z)
	top := core.NewVec3(center.X, center.Y+half.Y, center.Z)
	bottom := core.NewVec3(center.X, center.Y-half.Y, center.Z)
	front := core.NewVec3(center.X, center.Y, center.Z+half.Z)
	back := core.NewVec3(center.X, center.Y, center.Z-half.Z)

	return &Box{
		Center:  center,
		Extents: extents,
		Skybox:  skybox,
		faces: NewGroup(
			NewRect(left, Left, extents, mat),
			NewRect(right, Right, extents, mat),
			NewRect(top, Top, extents, mat),
			NewRect(bottom, Bottom, extents, mat),
			NewRect(front, Front, extents, mat),
			NewRect(back, Back, extents, mat),
		),
	}
}

// Intersect tests the ray against all six faces
func (b *Box) Intersect(ray core.Ray) *core.Intersection {
	return b.faces.Intersect(ray)
}
