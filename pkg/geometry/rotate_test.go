package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestRotate_MatchesSphereAtRotatedPosition(t *testing.T) {
	pivot := core.NewVec3(1, 0, -2)
	center := core.NewVec3(3, 1, -2)

	tests := []struct {
		name   string
		angles core.Vec3
		ray    core.Ray
	}{
		{"quarter turn about Y", core.NewVec3(0, math.Pi/2, 0), core.NewRay(core.NewVec3(1, 1, 10), core.NewVec3(0, 0, -1))},
		{"about X", core.NewVec3(0.6, 0, 0), core.NewRay(core.NewVec3(3, 10, -2), core.NewVec3(0, -1, 0))},
		{"all axes", core.NewVec3(0.3, -0.8, 1.2), core.NewRay(core.NewVec3(-4, 3, 6), core.NewVec3(0.5, -0.3, -0.8).Normalize())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rotated := NewRotate(pivot, tt.angles, NewSphere(center, 1.5, testMaterial))
			worldCenter := center.Subtract(pivot).RotateInverse(tt.angles).Add(pivot)
			reference := NewSphere(worldCenter, 1.5, testMaterial)

			// Aim at the apparent world position so the ray always hits
			ray := core.NewRay(tt.ray.Pos, worldCenter.Subtract(tt.ray.Pos).Normalize())

			got := rotated.Intersect(ray)
			want := reference.Intersect(ray)
			if got == nil || want == nil {
				t.Fatalf("Expected both to hit, got rotated=%v reference=%v", got, want)
			}
			if math.Abs(got.Dist-want.Dist) > 1e-9 {
				t.Errorf("Expected dist=%f, got %f", want.Dist, got.Dist)
			}
			assertVec(t, "position", got.Pos, want.Pos, 1e-9)
			assertVec(t, "normal", got.Normal, want.Normal, 1e-9)
		})
	}
}

func TestRotate_RoundTrip(t *testing.T) {
	pivot := core.NewVec3(0.5, -1, 2)
	sphere := NewSphere(core.NewVec3(2, 0, 0), 1, testMaterial)

	for _, angles := range []core.Vec3{
		core.NewVec3(0.7, 0, 0),
		core.NewVec3(0, -2.1, 0),
		core.NewVec3(0, 0, math.Pi/3),
	} {
		wrapped := NewRotate(pivot, angles.Negate(), NewRotate(pivot, angles, sphere))
		ray := core.NewRay(core.NewVec3(2, 0.3, 8), core.NewVec3(0, 0, -1))

		got := wrapped.Intersect(ray)
		want := sphere.Intersect(ray)
		if got == nil || want == nil {
			t.Fatalf("angles %v: expected both to hit, got %v and %v", angles, got, want)
		}
		if math.Abs(got.Dist-want.Dist) > 1e-9 {
			t.Errorf("angles %v: expected dist=%f, got %f", angles, want.Dist, got.Dist)
		}
		assertVec(t, "position", got.Pos, want.Pos, 1e-9)
		assertVec(t, "normal", got.Normal, want.Normal, 1e-9)
	}
}

func TestRotate_Miss(t *testing.T) {
	rotated := NewRotate(core.Vec3{}, core.NewVec3(0, math.Pi/2, 0), NewSphere(core.NewVec3(5, 0, 0), 1, testMaterial))

	// Unrotated the sphere sits on the ray's path; rotated it has moved away
	ray := core.NewRay(core.NewVec3(5, 0, 10), core.NewVec3(0, 0, -1))
	if hit := rotated.Intersect(ray); hit != nil {
		t.Errorf("Expected miss, got hit at %v", hit.Pos)
	}
}
