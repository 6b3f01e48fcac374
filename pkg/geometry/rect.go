package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Facing is the outward direction of an axis-aligned rectangle
type Facing int

const (
	Left   Facing = iota // -X
	Right                // +X
	Top                  // +Y
	Bottom               // -Y
	Front                // +Z
	Back                 // -Z
)

var facingNames = [...]string{"left", "right", "top", "bottom", "front", "back"}

// String returns the lowercase name used in scene documents
func (f Facing) String() string {
	if f < Left || f > Back {
		return fmt.Sprintf("Facing(%d)", int(f))
	}
	return facingNames[f]
}

// ParseFacing converts a scene document name into a Facing
func ParseFacing(name string) (Facing, error) {
	for i, n := range facingNames {
		if n == name {
			return Facing(i), nil
		}
	}
	return 0, fmt.Errorf("unknown facing %q", name)
}

// Normal returns the unit normal for the facing
func (f Facing) Normal() core.Vec3 {
	switch f {
	case Left:
		return core.NewVec3(-1, 0, 0)
	case Right:
		return core.NewVec3(1, 0, 0)
	case Top:
		return core.NewVec3(0, 1, 0)
	case Bottom:
		return core.NewVec3(0, -1, 0)
	case Front:
		return core.NewVec3(0, 0, 1)
	default:
		return core.NewVec3(0, 0, -1)
	}
}

// Rect is a finite patch of an axis-aligned plane
type Rect struct {
	Center  core.Vec3
	Facing  Facing
	Extents core.Vec3 // Full size along each axis
	Normal  core.Vec3
	Mat     *core.Material
}

// NewRect creates a new axis-aligned rectangle
func NewRect(center core.Vec3, facing Facing, extents core.Vec3, mat *core.Material) *Rect {
	return &Rect{
		Center:  center,
		Facing:  facing,
		Extents: extents,
		Normal:  facing.Normal(),
		Mat:     mat,
	}
}

// Intersect runs the plane test then rejects hits outside the extents
func (r *Rect) Intersect(ray core.Ray) *core.Intersection {
	dist, ok := planeDistance(ray, r.Center, r.Normal)
	if !ok {
		return nil
	}
	pos := ray.At(dist)

	offset := pos.Subtract(r.Center)
	if math.Abs(offset.X)*2 > r.Extents.X ||
		math.Abs(offset.Y)*2 > r.Extents.Y ||
		math.Abs(offset.Z)*2 > r.Extents.Z {
		return nil
	}

	return core.NewIntersection(dist, pos, r.Normal, r.Mat)
}
