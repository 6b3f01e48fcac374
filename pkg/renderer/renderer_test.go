package renderer

import (
	"context"
	"errors"
	"image"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// silentLogger discards output in tests
type silentLogger struct{}

func (silentLogger) Printf(format string, args ...interface{}) {}

func TestNewTileGrid(t *testing.T) {
	tests := []struct {
		name                string
		width, height, tile int
		expectedTiles       int
		lastBounds          image.Rectangle
	}{
		{"exact fit", 64, 32, 32, 2, image.Rect(32, 0, 64, 32)},
		{"partial edge", 50, 20, 16, 8, image.Rect(48, 16, 50, 20)},
		{"single tile", 10, 10, 64, 1, image.Rect(0, 0, 10, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tile)
			if len(tiles) != tt.expectedTiles {
				t.Fatalf("Expected %d tiles, got %d", tt.expectedTiles, len(tiles))
			}

			area := 0
			for i, tile := range tiles {
				if tile.ID != i {
					t.Errorf("Expected tile ID %d, got %d", i, tile.ID)
				}
				area += tile.Bounds.Dx() * tile.Bounds.Dy()
			}
			if area != tt.width*tt.height {
				t.Errorf("Expected tiles to cover %d pixels, got %d", tt.width*tt.height, area)
			}
			if last := tiles[len(tiles)-1].Bounds; last != tt.lastBounds {
				t.Errorf("Expected last tile %v, got %v", tt.lastBounds, last)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"zero subsamples", func(c *Config) { c.Subsamples = 0 }},
		{"zero tile size", func(c *Config) { c.TileSize = 0 }},
		{"negative workers", func(c *Config) { c.NumWorkers = -2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)
			if err := config.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestNewRenderer_InvalidConfig(t *testing.T) {
	config := DefaultConfig()
	config.Width = 0

	_, err := NewRenderer(&MockTracer{}, geometry.CameraConfig{FOV: 1}, config, silentLogger{})
	if err == nil {
		t.Fatal("Expected error for invalid config")
	}
}

func TestRenderer_Render_FillsImage(t *testing.T) {
	tracer := &MockTracer{returnColor: core.NewColor(0, 1, 0)}
	config := Config{Width: 37, Height: 21, Subsamples: 2, Bounces: 1, TileSize: 8, NumWorkers: 3}

	r, err := NewRenderer(tracer, geometry.CameraConfig{FOV: 1}, config, silentLogger{})
	if err != nil {
		t.Fatalf("NewRenderer() error: %v", err)
	}

	var callbacks int
	lastNumber := 0
	img, stats, err := r.Render(context.Background(), func(result TileCompletionResult) {
		callbacks++
		if result.TileNumber != lastNumber+1 {
			t.Errorf("Expected tile number %d, got %d", lastNumber+1, result.TileNumber)
		}
		lastNumber = result.TileNumber
		if result.TotalTiles != 15 {
			t.Errorf("Expected 15 total tiles, got %d", result.TotalTiles)
		}
		if result.TileImage.RGBAAt(0, 0).G != 255 {
			t.Errorf("Expected rendered tile image, got %v", result.TileImage.RGBAAt(0, 0))
		}
	})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if callbacks != 15 {
		t.Errorf("Expected 15 tile callbacks, got %d", callbacks)
	}
	if stats.TotalPixels != 37*21 {
		t.Errorf("Expected %d pixels, got %d", 37*21, stats.TotalPixels)
	}
	if stats.TotalSamples != 37*21*4 || tracer.callCount.Load() != 37*21*4 {
		t.Errorf("Expected %d samples, got %d (traced %d)", 37*21*4, stats.TotalSamples, tracer.callCount.Load())
	}
	if stats.NumWorkers != 3 {
		t.Errorf("Expected 3 workers, got %d", stats.NumWorkers)
	}

	for y := range 21 {
		for x := range 37 {
			if px := img.RGBAAt(x, y); px.R != 0 || px.G != 255 || px.B != 0 || px.A != 255 {
				t.Fatalf("Pixel (%d, %d): expected opaque green, got %v", x, y, px)
			}
		}
	}
}

func TestRenderer_Render_Cancelled(t *testing.T) {
	r, err := NewRenderer(&MockTracer{}, geometry.CameraConfig{FOV: 1}, DefaultConfig(), silentLogger{})
	if err != nil {
		t.Fatalf("NewRenderer() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	img, _, err := r.Render(ctx, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if img != nil {
		t.Error("Expected no image after cancellation")
	}
}

func TestRenderer_Render_LitFloor(t *testing.T) {
	matte := core.NewMaterial(core.NewColor(0.6, 0.6, 0.6), 0, 1, 0, 1, 0)
	floor := geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), matte)
	ls := lights.NewLights(lights.NewBulb(core.NewVec3(0, 10, 0), lights.DefaultShininess))
	s := scene.New(floor, ls, 0.2, core.Black)

	// Looking straight down from above the floor
	camera := geometry.CameraConfig{
		Pos: core.NewVec3(0, 5, 0),
		Dir: core.NewVec3(-math.Pi/2, 0, 0),
		FOV: 1.5,
	}
	config := Config{Width: 21, Height: 21, Subsamples: 1, Bounces: 2, TileSize: 8, NumWorkers: 2}

	r, err := NewRenderer(s, camera, config, silentLogger{})
	if err != nil {
		t.Fatalf("NewRenderer() error: %v", err)
	}
	img, _, err := r.Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	// Directly under the bulb the floor gets full diffuse light: 0.6 -> 153
	center := img.RGBAAt(10, 10)
	if math.Abs(float64(center.R)-153) > 1 || center.R != center.G || center.G != center.B {
		t.Errorf("Expected center pixel 153 gray, got %v", center)
	}

	for _, corner := range [][2]int{{0, 0}, {20, 0}, {0, 20}, {20, 20}} {
		if px := img.RGBAAt(corner[0], corner[1]); px.R >= center.R {
			t.Errorf("Expected corner %v darker than center, got %v", corner, px)
		}
	}
}

func TestRenderer_Render_BuiltinScene(t *testing.T) {
	s, err := scene.NewBuiltinScene("default", geometry.CameraConfig{})
	if err != nil {
		t.Fatalf("NewBuiltinScene() error: %v", err)
	}

	config := Config{Width: 40, Height: 30, Subsamples: 1, Bounces: s.SamplingConfig.Bounces, TileSize: 16}
	r, err := NewRenderer(s, s.CameraConfig, config, silentLogger{})
	if err != nil {
		t.Fatalf("NewRenderer() error: %v", err)
	}
	img, _, err := r.Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if lum := CalculateAverageLuminance(img); lum <= 0 || lum >= 1 {
		t.Errorf("Expected a partially lit image, got average luminance %f", lum)
	}
}
