package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Group is an ordered aggregate of objects. It is the scene's top-level
// container and the building block of the composite shapes.
type Group struct {
	Objects []core.Object
}

// NewGroup creates a group owning the given objects
func NewGroup(objects ...core.Object) *Group {
	return &Group{Objects: objects}
}

// Add appends an object to the group
func (g *Group) Add(object core.Object) {
	g.Objects = append(g.Objects, object)
}

// Len returns the number of direct children
func (g *Group) Len() int {
	return len(g.Objects)
}

// Intersect returns the closest hit among all children.
// On equal distances the first child in list order wins.
func (g *Group) Intersect(ray core.Ray) *core.Intersection {
	var closest *core.Intersection
	for _, object := range g.Objects {
		hit := object.Intersect(ray)
		if hit != nil && (closest == nil || hit.Dist < closest.Dist) {
			closest = hit
		}
	}
	return closest
}
