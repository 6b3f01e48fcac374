package renderer

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"log"
	"os"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct {
	logger *log.Logger
}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	dl.logger.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{logger: log.New(os.Stdout, "[raytracer] ", log.LstdFlags)}
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX     int // Tile coordinates (not pixel coordinates)
	TileY     int
	TileImage *image.RGBA // Image data for just this tile

	// Progress information
	TileNumber int // Number of tiles finished so far, including this one
	TotalTiles int // Total number of tiles in the image
}

// Renderer splits an image into tiles and traces them in parallel
type Renderer struct {
	tracer Tracer
	camera *geometry.Camera
	config Config
	tiles  []*Tile
	logger core.Logger
}

// NewRenderer creates a renderer. The image size in config overrides the one
// in cameraConfig.
func NewRenderer(tracer Tracer, cameraConfig geometry.CameraConfig, config Config, logger core.Logger) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid render config: %w", err)
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	cameraConfig.Width = config.Width
	cameraConfig.Height = config.Height

	return &Renderer{
		tracer: tracer,
		camera: geometry.NewCamera(cameraConfig),
		config: config,
		tiles:  NewTileGrid(config.Width, config.Height, config.TileSize),
		logger: logger,
	}, nil
}

// Render traces every pixel of the image. tileCallback, if not nil, is called
// from the calling goroutine once per finished tile. On cancellation the
// context's error is returned and the partial image is discarded.
func (r *Renderer) Render(ctx context.Context, tileCallback func(TileCompletionResult)) (*image.RGBA, RenderStats, error) {
	startTime := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, r.config.Width, r.config.Height))

	tileRenderer := NewTileRenderer(r.tracer, r.camera, r.config.Subsamples, r.config.Bounces)
	workerPool := NewWorkerPool(tileRenderer, len(r.tiles), r.config.NumWorkers)

	r.logger.Printf("Rendering %dx%d, %d subsamples, %d bounces (%d tiles, %d workers)...\n",
		r.config.Width, r.config.Height, r.config.Subsamples*r.config.Subsamples, r.config.Bounces,
		len(r.tiles), workerPool.GetNumWorkers())

	workerPool.Start(ctx)
	defer workerPool.Stop()

	for taskID, tile := range r.tiles {
		workerPool.SubmitTask(TileTask{
			Tile:   tile,
			TaskID: taskID,
			Image:  img,
		})
	}

	stats := RenderStats{
		TotalTiles: len(r.tiles),
		NumWorkers: workerPool.GetNumWorkers(),
	}

	for i := range r.tiles {
		result, ok := workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			r.logger.Printf("Rendering cancelled after %d of %d tiles\n", i, len(r.tiles))
			return nil, RenderStats{}, result.Error
		}

		stats.add(result.Stats)

		if tileCallback != nil {
			tile := r.tiles[result.TaskID]
			tileCallback(TileCompletionResult{
				TileX:      tile.Bounds.Min.X / r.config.TileSize,
				TileY:      tile.Bounds.Min.Y / r.config.TileSize,
				TileImage:  extractTileImage(img, tile.Bounds),
				TileNumber: i + 1,
				TotalTiles: len(r.tiles),
			})
		}
	}

	stats.Duration = time.Since(startTime)
	r.logger.Printf("Render completed in %v (%d rays)\n", stats.Duration, stats.TotalSamples)

	return img, stats, nil
}

// extractTileImage copies one tile out of the shared image
func extractTileImage(img *image.RGBA, bounds image.Rectangle) *image.RGBA {
	tileImage := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(tileImage, tileImage.Bounds(), img, bounds.Min, draw.Src)
	return tileImage
}
