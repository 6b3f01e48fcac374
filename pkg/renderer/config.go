package renderer

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Tracer computes the color seen along a ray. *scene.Scene satisfies it.
type Tracer interface {
	Raytrace(ray core.Ray, refrIdx float64, bounces uint) core.Color
}

// Config contains configuration for a render
type Config struct {
	Width      int  // Image width in pixels
	Height     int  // Image height in pixels
	Subsamples int  // Rays per pixel along each axis (n×n grid)
	Bounces    uint // Maximum reflection/refraction depth
	TileSize   int  // Size of each square tile
	NumWorkers int  // Number of parallel workers (0 = use CPU count)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:      400,
		Height:     300,
		Subsamples: 1,
		Bounces:    5,
		TileSize:   32,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// Validate reports every invalid setting
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.Subsamples <= 0 {
		errs = append(errs, fmt.Errorf("subsamples must be positive, got %d", c.Subsamples))
	}
	if c.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("tile size must be positive, got %d", c.TileSize))
	}
	if c.NumWorkers < 0 {
		errs = append(errs, fmt.Errorf("worker count cannot be negative, got %d", c.NumWorkers))
	}
	return errors.Join(errs...)
}
