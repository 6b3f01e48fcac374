package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

const (
	heightFieldMaxSteps  = 100
	heightFieldTolerance = 1e-5
	// Vertical padding of the bounds, which keeps a flat field visible
	heightFieldPadding = 10 * heightFieldTolerance
)

// HeightSample is one grid point of a height field
type HeightSample struct {
	Height float64
	Color  core.Color
}

// HeightField is a terrain-like surface sampled on a regular w×h grid.
// Grid column i maps to X and row j maps to Z, spaced Ratio apart, and
// heights are scaled by Ratio as well.
type HeightField struct {
	Center  core.Vec3
	Ratio   float64
	W, H    int
	Samples []HeightSample // Row-major, len W*H
	Mat     *core.Material

	start    core.Vec3
	bounds   *Box
	maxSteps int
}

// NewHeightField creates a height field centered on center's X/Z with its
// base at center.Y
func NewHeightField(center core.Vec3, ratio float64, w, h int, samples []HeightSample, mat *core.Material) (*HeightField, error) {
	if err := checkGridSize(w, h); err != nil {
		return nil, err
	}
	if len(samples) != w*h {
		return nil, fmt.Errorf("height field expects %d samples, got %d", w*h, len(samples))
	}
	if !(ratio > 0) {
		return nil, fmt.Errorf("height field ratio must be positive, got %v", ratio)
	}

	maxHeight := 0.0
	for _, s := range samples {
		maxHeight = max(maxHeight, s.Height)
	}

	extents := core.NewVec3(float64(w-1)*ratio, maxHeight*ratio, float64(h-1)*ratio)
	start := center.Subtract(core.NewVec3(extents.X, 0, extents.Z).Multiply(0.5))
	padded := core.NewVec3(extents.X, extents.Y+2*heightFieldPadding, extents.Z)

	return &HeightField{
		Center:   center,
		Ratio:    ratio,
		W:        w,
		H:        h,
		Samples:  samples,
		Mat:      mat,
		start:    start,
		bounds:   NewBox(start.Add(extents.Multiply(0.5)), padded, mat, false),
		maxSteps: heightFieldMaxSteps,
	}, nil
}

// NewHeightFieldFromFunc samples fn(i, j) for every grid point
func NewHeightFieldFromFunc(center core.Vec3, ratio float64, w, h int, fn func(i, j int) HeightSample, mat *core.Material) (*HeightField, error) {
	if err := checkGridSize(w, h); err != nil {
		return nil, err
	}
	samples := make([]HeightSample, 0, w*h)
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			samples = append(samples, fn(i, j))
		}
	}
	return NewHeightField(center, ratio, w, h, samples, mat)
}

func checkGridSize(w, h int) error {
	if w < 2 || h < 2 {
		return fmt.Errorf("height field needs at least 2x2 samples, got %dx%d", w, h)
	}
	return nil
}

// Intersect marches from the bounding box entry toward the surface, correcting
// the position by the height difference divided by the ray's vertical slope.
func (hf *HeightField) Intersect(ray core.Ray) *core.Intersection {
	entry := hf.bounds.Intersect(ray)
	if entry == nil {
		return nil
	}

	cur := entry.Pos
	dist := ray.Pos.Subtract(cur).Length()
	for range hf.maxSteps {
		height, color, normal, ok := hf.sample(cur)
		if !ok {
			return nil
		}

		diff := height - cur.Y
		if math.Abs(diff) < heightFieldTolerance {
			return core.NewIntersection(dist, cur, normal, hf.Mat.WithColor(color))
		}

		if ray.Dir.Y == 0 {
			return nil
		}
		step := diff / ray.Dir.Y
		dist += step

		// The surface is behind the ray origin
		if dist < 0 {
			return nil
		}
		cur = cur.Add(ray.Dir.Multiply(step))
	}

	return nil
}

// sample interpolates the surface under a world position. The four corners of
// the enclosing cell are weighted by 1 - min(distance, 1) in the unit cell.
func (hf *HeightField) sample(pos core.Vec3) (float64, core.Color, core.Vec3, bool) {
	grid := pos.Subtract(hf.start).Divide(hf.Ratio)
	x, y := grid.X, grid.Z
	if !(x >= 0 && x < float64(hf.W-1) && y >= 0 && y < float64(hf.H-1)) {
		return 0, core.Color{}, core.Vec3{}, false
	}

	i, j := int(x), int(y)
	dx, dy := x-float64(i), y-float64(j)

	weight := func(u, v float64) float64 {
		return 1 - min(math.Hypot(u, v), 1)
	}
	r00 := weight(dx, dy)
	r01 := weight(dx, 1-dy)
	r10 := weight(1-dx, dy)
	r11 := weight(1-dx, 1-dy)
	total := r00 + r01 + r10 + r11

	d00 := hf.Samples[j*hf.W+i]
	d01 := hf.Samples[(j+1)*hf.W+i]
	d10 := hf.Samples[j*hf.W+i+1]
	d11 := hf.Samples[(j+1)*hf.W+i+1]

	// Corner normals from the edges to each corner's neighbours
	n00 := core.NewVec3(0, d01.Height-d00.Height, 1).Cross(core.NewVec3(1, d10.Height-d00.Height, 0)).Normalize()
	n10 := core.NewVec3(0, d11.Height-d10.Height, 1).Cross(core.NewVec3(1, d00.Height-d10.Height, 0)).Normalize()
	n01 := core.NewVec3(0, d00.Height-d01.Height, 1).Cross(core.NewVec3(1, d11.Height-d01.Height, 0)).Normalize()
	n11 := core.NewVec3(0, d10.Height-d11.Height, 1).Cross(core.NewVec3(1, d01.Height-d11.Height, 0)).Normalize()

	height := (d00.Height*r00 + d01.Height*r01 + d10.Height*r10 + d11.Height*r11) / total
	color := d00.Color.Multiply(r00).
		Add(d01.Color.Multiply(r01)).
		Add(d10.Color.Multiply(r10)).
		Add(d11.Color.Multiply(r11)).
		Divide(total)
	normal := n00.Multiply(r00).
		Add(n01.Multiply(r01)).
		Add(n10.Multiply(r10)).
		Add(n11.Multiply(r11)).
		Normalize()

	return hf.start.Y + height*hf.Ratio, color, normal, true
}
