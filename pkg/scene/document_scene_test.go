package scene

import (
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
)

func loadDocument(t *testing.T, document string) *loaders.Document {
	t.Helper()
	doc, err := loaders.Load(strings.NewReader(document))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return doc
}

func TestNewDocumentScene_Defaults(t *testing.T) {
	doc := loadDocument(t, `{
		"picture": {"w": 40, "h": 30},
		"eye": {"pos": {"x": 0, "y": 0, "z": 10}, "fov": 1},
		"scene": {
			"objects": [{"sphere": {"pos": {"x": 0, "y": 0, "z": 0}, "radius": 1, "mat": {"diff": 1}}}],
			"lights": [{"bulb": {"pos": {"x": 0, "y": 0, "z": 10}}}]
		}
	}`)

	s, err := NewDocumentScene(doc)
	if err != nil {
		t.Fatalf("NewDocumentScene() error: %v", err)
	}

	if s.Ambient != 0.2 {
		t.Errorf("Expected default ambient 0.2, got %f", s.Ambient)
	}
	if s.Background != core.Black {
		t.Errorf("Expected black background, got %v", s.Background)
	}
	if s.ShadowMode != ShadowDistance {
		t.Errorf("Expected distance shadows, got %v", s.ShadowMode)
	}
	if s.SamplingConfig != DefaultSamplingConfig() {
		t.Errorf("Expected default sampling, got %+v", s.SamplingConfig)
	}

	expectedCamera := geometry.CameraConfig{Pos: core.NewVec3(0, 0, 10), FOV: 1, Width: 40, Height: 30}
	if s.CameraConfig != expectedCamera {
		t.Errorf("Expected camera %+v, got %+v", expectedCamera, s.CameraConfig)
	}

	if s.Lights.Len() != 1 {
		t.Fatalf("Expected one light, got %d", s.Lights.Len())
	}
	bulb, ok := s.Lights.All[0].(*lights.Bulb)
	if !ok || bulb.Shininess != lights.DefaultShininess {
		t.Errorf("Expected bulb with default shininess, got %+v", s.Lights.All[0])
	}

	hit := s.Objects.Intersect(core.NewRay(core.NewVec3(0, 0, 10), core.NewVec3(0, 0, -1)))
	if hit == nil {
		t.Fatal("Expected to hit the sphere")
	}
	if hit.Mat.RefrIdx != 1 {
		t.Errorf("Expected default refr_idx 1, got %f", hit.Mat.RefrIdx)
	}
}

func TestNewDocumentScene_SharedMaterials(t *testing.T) {
	doc := loadDocument(t, `{
		"picture": {"w": 4, "h": 4},
		"eye": {"pos": {"x": 0, "y": 0, "z": 10}, "fov": 1},
		"scene": {
			"shadow": "axis",
			"bounces": 2,
			"subsamples": 3,
			"ambient": 0.5,
			"background": {"r": 0.1, "g": 0.2, "b": 0.3},
			"materials": {"red": {"color": {"r": 1, "g": 0, "b": 0}, "diff": 1}},
			"objects": [
				{"sphere": {"pos": {"x": -5, "y": 0, "z": 0}, "radius": 1, "mat": "red"}},
				{"sphere": {"pos": {"x": 5, "y": 0, "z": 0}, "radius": 1, "mat": "red"}}
			]
		}
	}`)

	s, err := NewDocumentScene(doc, geometry.CameraConfig{Width: 8})
	if err != nil {
		t.Fatalf("NewDocumentScene() error: %v", err)
	}

	left := s.Objects.Intersect(core.NewRay(core.NewVec3(-5, 0, 10), core.NewVec3(0, 0, -1)))
	right := s.Objects.Intersect(core.NewRay(core.NewVec3(5, 0, 10), core.NewVec3(0, 0, -1)))
	if left == nil || right == nil {
		t.Fatal("Expected to hit both spheres")
	}
	if left.Mat != right.Mat {
		t.Error("Expected both spheres to share one material")
	}

	if s.ShadowMode != ShadowAxis || s.Ambient != 0.5 || s.Background != core.NewColor(0.1, 0.2, 0.3) {
		t.Errorf("Unexpected scene settings %+v", s)
	}
	if s.SamplingConfig.Bounces != 2 || s.SamplingConfig.Subsamples != 3 {
		t.Errorf("Expected 2 bounces and 3 subsamples, got %+v", s.SamplingConfig)
	}
	if s.CameraConfig.Width != 8 || s.CameraConfig.Height != 4 {
		t.Errorf("Expected camera override to 8x4, got %dx%d", s.CameraConfig.Width, s.CameraConfig.Height)
	}
}

func TestNewDocumentScene_AllObjectKinds(t *testing.T) {
	doc := loadDocument(t, `{
		"picture": {"w": 4, "h": 4},
		"eye": {"pos": {"x": 0, "y": 0, "z": 10}, "fov": 1},
		"scene": {
			"materials": {"m": {"diff": 1}},
			"objects": [
				{"plane": {"pos": {"x": 0, "y": -10, "z": 0}, "normal": {"x": 0, "y": 2, "z": 0}, "mat": "m"}},
				{"aarect": {"pos": {"x": 0, "y": 0, "z": -20}, "dir": "front", "dim": {"x": 10, "y": 10, "z": 0}, "mat": "m"}},
				{"aabox": {"pos": {"x": 10, "y": 2, "z": 0}, "dim": {"x": 4, "y": 4, "z": 4}, "mat": "m"}},
				{"aahexa": {"pos": {"x": -10, "y": 2, "z": 0}, "x": 4, "y": 4, "mat": "m"}},
				{"rotate": {"pos": {"x": 0, "y": 0, "z": 0}, "dir": {"x": 0, "y": 1, "z": 0}, "object": {"sphere": {"pos": {"x": 1, "y": 1, "z": 1}, "radius": 1, "mat": "m"}}}},
				{"heightmap": {"pos": {"x": 30, "y": 0, "z": 0}, "ratio": 2, "w": 2, "h": 2, "heights": [1, 1, 1, 1], "colors": [{"r": 1, "g": 0, "b": 0}, {"r": 1, "g": 0, "b": 0}, {"r": 1, "g": 0, "b": 0}, {"r": 1, "g": 0, "b": 0}], "mat": "m"}},
				{"group": {"objects": [{"sphere": {"pos": {"x": 0, "y": 30, "z": 0}, "radius": 1, "mat": "m"}}]}}
			],
			"lights": [{"sun": {"dir": {"x": 0, "y": -1, "z": 0}, "shin": 40}}]
		}
	}`)

	s, err := NewDocumentScene(doc)
	if err != nil {
		t.Fatalf("NewDocumentScene() error: %v", err)
	}

	group := s.Objects.(*geometry.Group)
	if group.Len() != 7 {
		t.Fatalf("Expected 7 objects, got %d", group.Len())
	}

	// The heightmap takes its colors from the per-sample list
	hit := s.Objects.Intersect(core.NewRay(core.NewVec3(30, 10, 0), core.NewVec3(0, -1, 0)))
	if hit == nil {
		t.Fatal("Expected to hit the heightmap")
	}
	if hit.Mat.Color != core.NewColor(1, 0, 0) {
		t.Errorf("Expected red heightmap, got %v", hit.Mat.Color)
	}
	if hit.Pos.Y < 1.99 || hit.Pos.Y > 2.01 {
		t.Errorf("Expected surface at height*ratio = 2, got %f", hit.Pos.Y)
	}

	// The plane normal is normalized
	floor := s.Objects.Intersect(core.NewRay(core.NewVec3(100, 0, 100), core.NewVec3(0, -1, 0)))
	if floor == nil || floor.Normal != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected unit floor normal, got %+v", floor)
	}
}

func TestNewDocumentScene_BadFacing(t *testing.T) {
	doc := loadDocument(t, `{
		"picture": {"w": 4, "h": 4},
		"eye": {"pos": {"x": 0, "y": 0, "z": 10}, "fov": 1},
		"scene": {"objects": [{"aarect": {"pos": {"x": 0, "y": 0, "z": 0}, "dir": "up", "dim": {"x": 1, "y": 1, "z": 0}, "mat": {"diff": 1}}}]}
	}`)

	_, err := NewDocumentScene(doc)
	if err == nil || !strings.Contains(err.Error(), `unknown facing "up"`) {
		t.Errorf("Expected facing error, got %v", err)
	}
}
