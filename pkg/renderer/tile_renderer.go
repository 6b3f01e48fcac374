package renderer

import (
	"context"
	"image"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// airRefractiveIndex is the medium primary rays start in
const airRefractiveIndex = 1.0

// TileRenderer handles the actual rendering of individual tiles
type TileRenderer struct {
	tracer     Tracer
	camera     *geometry.Camera
	subsamples int
	bounces    uint
}

// NewTileRenderer creates a new tile renderer
func NewTileRenderer(tracer Tracer, camera *geometry.Camera, subsamples int, bounces uint) *TileRenderer {
	return &TileRenderer{
		tracer:     tracer,
		camera:     camera,
		subsamples: max(subsamples, 1),
		bounces:    bounces,
	}
}

// RenderTileBounds renders pixels within bounds straight into img. Tiles never
// overlap, so concurrent calls on distinct bounds are safe. The context is
// checked once per row.
func (tr *TileRenderer) RenderTileBounds(ctx context.Context, bounds image.Rectangle, img *image.RGBA) (RenderStats, error) {
	stats := RenderStats{}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			img.SetRGBA(i, j, tr.RenderPixel(i, j).RGBA())
			stats.TotalPixels++
			stats.TotalSamples += tr.subsamples * tr.subsamples
		}
	}

	return stats, nil
}

// RenderPixel averages the rays through an n×n grid of sub-pixel positions
func (tr *TileRenderer) RenderPixel(i, j int) core.Color {
	n := tr.subsamples
	sum := core.Color{}
	for sy := range n {
		for sx := range n {
			u := float64(i) + (float64(sx)+0.5)/float64(n)
			v := float64(j) + (float64(sy)+0.5)/float64(n)
			sum = sum.Add(tr.tracer.Raytrace(tr.camera.GetRay(u, v), airRefractiveIndex, tr.bounces))
		}
	}
	return sum.Divide(float64(n * n))
}
