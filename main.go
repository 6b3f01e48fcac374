package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// scenesDir is searched for scene documents given by name
const scenesDir = "scenes"

// getEnv returns the environment variable or fallback when it is unset
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// envInt reads an integer environment variable, using fallback when it is unset
func envInt(key string, fallback int) (int, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q is not an integer", key, value)
	}
	return parsed, nil
}

func main() {
	// A missing .env file is fine
	_ = godotenv.Load()

	defaultWorkers, err := envInt("RT_WORKERS", 0)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// Parse command line flags
	sceneType := flag.String("scene", "default", "Built-in scene name, scene document name, or path to a .json document")
	configPath := flag.String("config", "", "Scene document to render ('-' reads stdin); overrides -scene")
	width := flag.Int("width", 0, "Image width (0 = scene default)")
	height := flag.Int("height", 0, "Image height (0 = scene default)")
	samples := flag.Int("samples", 0, "Rays per pixel along each axis (0 = scene default)")
	depth := flag.Int("depth", -1, "Maximum reflection/refraction depth (-1 = scene default)")
	numWorkers := flag.Int("workers", defaultWorkers, "Number of parallel workers (0 = use CPU count)")
	tileSize := flag.Int("tile", 32, "Tile size in pixels")
	outDir := flag.String("out", getEnv("RT_OUTPUT_DIR", "output"), "Root output directory")
	thumb := flag.Int("thumb", 0, "Also save a thumbnail with this longest side (0 = none)")
	orbit := flag.Int("orbit", 0, "Render this many frames circling -orbit-center")
	orbitCenter := flag.String("orbit-center", "0,0,0", "Point the orbit frames look at, as x,y,z")
	orbitDistance := flag.Float64("orbit-distance", 100, "Distance of the orbit camera from -orbit-center")
	upload := flag.Bool("upload", false, "Upload renders to the bucket configured by RT_S3_* variables")
	progress := flag.Bool("progress", false, "Print tile progress")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		showHelp()
		return
	}

	fmt.Println("Starting Whitted Raytracer...")

	var (
		selectedScene *scene.Scene
		doc           *loaders.Document
	)
	name := *sceneType
	if *configPath != "" {
		selectedScene, doc, err = loadDocumentScene(*configPath)
		name = documentSceneName(*configPath, doc)
	} else {
		selectedScene, doc, err = createScene(*sceneType)
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	config := renderConfig(selectedScene, *width, *height, *samples, *depth)
	config.NumWorkers = *numWorkers
	config.TileSize = *tileSize

	var publisher output.Publisher
	logger := renderer.NewDefaultLogger()
	if *upload {
		p, err := output.NewS3Publisher(output.S3ConfigFromEnv(), logger)
		if err != nil {
			fmt.Printf("Error configuring upload: %v\n", err)
			os.Exit(1)
		}
		publisher = p
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var tileCallback func(renderer.TileCompletionResult)
	if *progress {
		tileCallback = func(result renderer.TileCompletionResult) {
			fmt.Printf("\rTile %d/%d", result.TileNumber, result.TotalTiles)
			if result.TileNumber == result.TotalTiles {
				fmt.Println()
			}
		}
	}

	source := *sceneType
	if *configPath != "" {
		source = *configPath
	}
	outputDir := createOutputDir(*outDir, source)
	timestamp := time.Now().Format("20060102_150405")

	if *orbit > 0 {
		center, err := parseVec(*orbitCenter)
		if err != nil {
			fmt.Printf("Error: invalid -orbit-center: %v\n", err)
			os.Exit(1)
		}
		cameras := geometry.OrbitCameras(selectedScene.CameraConfig, center, *orbitDistance, *orbit)
		for i, cameraConfig := range cameras {
			filename := filepath.Join(outputDir, fmt.Sprintf("orbit_%s_%03d.png", timestamp, i+1))
			fmt.Printf("Frame %d/%d\n", i+1, len(cameras))
			if err := renderToFile(ctx, selectedScene, cameraConfig, config, logger, tileCallback, filename, *thumb, publisher, name); err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
		}
		return
	}

	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	if doc != nil && doc.Picture.Path != "" {
		filename = doc.Picture.Path
	}
	if err := renderToFile(ctx, selectedScene, selectedScene.CameraConfig, config, logger, tileCallback, filename, *thumb, publisher, name); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	if scenes, err := scene.ListBuiltinScenes(); err == nil {
		for _, info := range scenes {
			fmt.Printf("  %-10s - %s\n", info.ID, info.Description)
		}
	}
	if files, err := scene.ListSceneFiles(scenesDir); err == nil {
		for _, info := range files {
			fmt.Printf("  %-10s - %s\n", strings.TrimPrefix(info.ID, "file:"), info.Name)
		}
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png unless the")
	fmt.Println("scene document sets picture.path")
}

// renderToFile renders one frame, saves it with an optional thumbnail, and
// uploads both when a publisher is given
func renderToFile(ctx context.Context, s *scene.Scene, cameraConfig geometry.CameraConfig, config renderer.Config,
	logger core.Logger, tileCallback func(renderer.TileCompletionResult), filename string, thumb int,
	publisher output.Publisher, name string) error {

	r, err := renderer.NewRenderer(s, cameraConfig, config, logger)
	if err != nil {
		return err
	}

	img, stats, err := r.Render(ctx, tileCallback)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	fmt.Printf("Average luminance: %.3f over %d pixels\n", renderer.CalculateAverageLuminance(img), stats.TotalPixels)

	if err := output.SavePNG(filename, img); err != nil {
		return err
	}
	fmt.Printf("Render saved as %s\n", filename)

	var thumbnail image.Image
	if thumb > 0 {
		thumbnail = output.Thumbnail(img, thumb)
		thumbPath := output.ThumbnailPath(filename)
		if err := output.SavePNG(thumbPath, thumbnail); err != nil {
			return err
		}
		fmt.Printf("Thumbnail saved as %s\n", thumbPath)
	}

	if publisher == nil {
		return nil
	}
	key := output.ObjectKey(name)
	if err := publishImage(ctx, publisher, key, img); err != nil {
		return err
	}
	if thumbnail != nil {
		if err := publishImage(ctx, publisher, output.ThumbnailKey(key), thumbnail); err != nil {
			return err
		}
	}
	fmt.Printf("Uploaded as %s\n", key)
	return nil
}

func publishImage(ctx context.Context, publisher output.Publisher, key string, img image.Image) error {
	data, err := output.EncodePNG(img)
	if err != nil {
		return err
	}
	return publisher.Publish(ctx, key, data)
}

// renderConfig combines the scene's own settings with command line overrides.
// Zero width, height and samples and a negative depth keep the scene values.
func renderConfig(s *scene.Scene, width, height, samples, depth int) renderer.Config {
	config := renderer.DefaultConfig()
	if s.CameraConfig.Width > 0 && s.CameraConfig.Height > 0 {
		config.Width = s.CameraConfig.Width
		config.Height = s.CameraConfig.Height
	}
	config.Subsamples = max(s.SamplingConfig.Subsamples, 1)
	config.Bounces = s.SamplingConfig.Bounces

	if width > 0 {
		config.Width = width
	}
	if height > 0 {
		config.Height = height
	}
	if samples > 0 {
		config.Subsamples = samples
	}
	if depth >= 0 {
		config.Bounces = uint(depth)
	}
	return config
}

// createScene creates a built-in scene, or loads a scene document by name or path
func createScene(sceneType string) (*scene.Scene, *loaders.Document, error) {
	if sceneType == "" {
		return nil, nil, errors.New("no scene given")
	}

	for _, id := range scene.BuiltinSceneIDs() {
		if id == sceneType {
			fmt.Printf("Using %s scene...\n", sceneType)
			s, err := scene.NewBuiltinScene(sceneType, geometry.CameraConfig{})
			return s, nil, err
		}
	}

	if path, ok := resolveDocumentPath(sceneType); ok {
		fmt.Printf("Loading scene document %s...\n", path)
		return loadDocumentScene(path)
	}

	return nil, nil, fmt.Errorf("unknown scene %q (built-in: %s; or a document in %s/)",
		sceneType, strings.Join(scene.BuiltinSceneIDs(), ", "), scenesDir)
}

// tryLoadDocumentScene loads a scene document by name or path, returning nil
// when there is no such document or it cannot be loaded
func tryLoadDocumentScene(sceneType string) *scene.Scene {
	path, ok := resolveDocumentPath(sceneType)
	if !ok {
		return nil
	}
	s, _, err := loadDocumentScene(path)
	if err != nil {
		return nil
	}
	return s
}

// resolveDocumentPath finds the document for a .json path or a bare name
// under the scenes directory
func resolveDocumentPath(sceneType string) (string, bool) {
	candidates := []string{filepath.Join(scenesDir, sceneType+".json")}
	if strings.HasSuffix(sceneType, ".json") {
		candidates = []string{sceneType}
	}
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// loadDocumentScene reads a scene document from path, or from stdin for "-"
func loadDocumentScene(path string) (*scene.Scene, *loaders.Document, error) {
	var (
		doc *loaders.Document
		err error
	)
	if path == "-" {
		doc, err = loaders.Load(os.Stdin)
	} else {
		doc, err = loaders.LoadFile(path)
	}
	if err != nil {
		return nil, nil, err
	}

	s, err := scene.NewDocumentScene(doc)
	if err != nil {
		return nil, nil, err
	}
	return s, doc, nil
}

// documentSceneName names a render of the document at path
func documentSceneName(path string, doc *loaders.Document) string {
	if doc != nil && doc.Name != "" {
		return doc.Name
	}
	if path == "-" {
		return "stdin"
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// createOutputDir returns the directory renders of sceneType are saved in
func createOutputDir(root, sceneType string) string {
	for _, id := range scene.BuiltinSceneIDs() {
		if id == sceneType {
			return filepath.Join(root, sceneType)
		}
	}

	if strings.HasSuffix(sceneType, ".json") {
		base := strings.TrimSuffix(filepath.Base(sceneType), ".json")
		return filepath.Join(root, base)
	}
	if _, ok := resolveDocumentPath(sceneType); ok {
		return filepath.Join(root, sceneType)
	}

	return filepath.Join(root, "scene-document")
}

// parseVec parses "x,y,z"
func parseVec(s string) (core.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var v [3]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("invalid component %q: %w", part, err)
		}
		v[i] = f
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}
