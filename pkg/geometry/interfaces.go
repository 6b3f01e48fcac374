package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Compile time checks that every surface satisfies core.Object
var (
	_ core.Object = (*Group)(nil)
	_ core.Object = (*Sphere)(nil)
	_ core.Object = (*Plane)(nil)
	_ core.Object = (*Rect)(nil)
	_ core.Object = (*Box)(nil)
	_ core.Object = (*HexagonalPrism)(nil)
	_ core.Object = (*Rotate)(nil)
	_ core.Object = (*HeightField)(nil)
)
