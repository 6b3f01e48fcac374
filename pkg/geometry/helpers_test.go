package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

var testMaterial = core.NewMaterial(core.NewColor(0.8, 0.2, 0.2), 0.3, 0.9, 0, 1, 0)

// stubObject returns a fixed intersection for every ray
type stubObject struct {
	hit *core.Intersection
}

func (s stubObject) Intersect(ray core.Ray) *core.Intersection {
	return s.hit
}

func assertVec(t *testing.T, label string, got, want core.Vec3, tolerance float64) {
	t.Helper()
	if math.Abs(got.X-want.X) > tolerance ||
		math.Abs(got.Y-want.Y) > tolerance ||
		math.Abs(got.Z-want.Z) > tolerance {
		t.Errorf("%s: expected %v, got %v", label, want, got)
	}
}
