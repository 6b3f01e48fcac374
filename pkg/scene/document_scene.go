package scene

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
)

const defaultDocumentAmbient = 0.2

// NewDocumentScene creates a scene from a parsed scene document
func NewDocumentScene(doc *loaders.Document, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	c := &documentConverter{
		materials: make(map[string]*core.Material, len(doc.Scene.Materials)),
	}

	// Named materials are built once and shared by every object using them
	for _, name := range doc.MaterialNames() {
		c.materials[name] = convertMaterial(doc.Scene.Materials[name])
	}

	objects := geometry.NewGroup()
	for i, spec := range doc.Scene.Objects {
		obj, err := c.convertObject(spec)
		if err != nil {
			return nil, fmt.Errorf("failed to convert object %d: %w", i, err)
		}
		objects.Add(obj)
	}

	ls := lights.NewLights()
	for _, spec := range doc.Scene.Lights {
		ls.Add(convertLight(spec))
	}

	ambient := defaultDocumentAmbient
	if doc.Scene.Ambient != nil {
		ambient = *doc.Scene.Ambient
	}
	background := core.Black
	if doc.Scene.Background != nil {
		background = convertColor(*doc.Scene.Background)
	}

	s := New(objects, ls, ambient, background)
	if doc.Scene.Shadow == "axis" {
		s.ShadowMode = ShadowAxis
	}
	if doc.Scene.Bounces != nil {
		s.SamplingConfig.Bounces = *doc.Scene.Bounces
	}
	if doc.Scene.Subsamples != nil {
		s.SamplingConfig.Subsamples = *doc.Scene.Subsamples
	}

	cameraConfig := geometry.CameraConfig{
		Pos:    convertVec(*doc.Eye.Pos),
		Dir:    convertVec(doc.Eye.Dir),
		FOV:    doc.Eye.FOV,
		Width:  doc.Picture.W,
		Height: doc.Picture.H,
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}
	s.CameraConfig = cameraConfig

	return s, nil
}

type documentConverter struct {
	materials map[string]*core.Material
}

func (c *documentConverter) material(ref loaders.MaterialRef) (*core.Material, error) {
	if ref.Inline != nil {
		return convertMaterial(*ref.Inline), nil
	}
	mat, ok := c.materials[ref.Name]
	if !ok {
		return nil, fmt.Errorf("unknown material %q", ref.Name)
	}
	return mat, nil
}

func (c *documentConverter) convertObject(spec loaders.ObjectSpec) (core.Object, error) {
	switch {
	case spec.Sphere != nil:
		mat, err := c.material(spec.Sphere.Mat)
		if err != nil {
			return nil, err
		}
		return geometry.NewSphere(convertVec(*spec.Sphere.Pos), spec.Sphere.Radius, mat), nil

	case spec.Plane != nil:
		mat, err := c.material(spec.Plane.Mat)
		if err != nil {
			return nil, err
		}
		return geometry.NewPlane(convertVec(*spec.Plane.Pos), convertVec(*spec.Plane.Normal), mat), nil

	case spec.Rect != nil:
		facing, err := geometry.ParseFacing(spec.Rect.Dir)
		if err != nil {
			return nil, fmt.Errorf("aarect: %w", err)
		}
		mat, err := c.material(spec.Rect.Mat)
		if err != nil {
			return nil, err
		}
		return geometry.NewRect(convertVec(*spec.Rect.Pos), facing, convertVec(*spec.Rect.Dim), mat), nil

	case spec.Box != nil:
		mat, err := c.material(spec.Box.Mat)
		if err != nil {
			return nil, err
		}
		return geometry.NewBox(convertVec(*spec.Box.Pos), convertVec(*spec.Box.Dim), mat, spec.Box.Skybox), nil

	case spec.Hexa != nil:
		mat, err := c.material(spec.Hexa.Mat)
		if err != nil {
			return nil, err
		}
		return geometry.NewHexagonalPrism(convertVec(*spec.Hexa.Pos), spec.Hexa.X, spec.Hexa.Y, mat), nil

	case spec.Rotate != nil:
		inner, err := c.convertObject(*spec.Rotate.Object)
		if err != nil {
			return nil, fmt.Errorf("rotate: %w", err)
		}
		return geometry.NewRotate(convertVec(*spec.Rotate.Pos), convertVec(spec.Rotate.Dir), inner), nil

	case spec.Heightmap != nil:
		return c.convertHeightmap(spec.Heightmap)

	case spec.Group != nil:
		group := geometry.NewGroup()
		for i, child := range spec.Group.Objects {
			obj, err := c.convertObject(child)
			if err != nil {
				return nil, fmt.Errorf("group object %d: %w", i, err)
			}
			group.Add(obj)
		}
		return group, nil
	}

	return nil, fmt.Errorf("empty object")
}

func (c *documentConverter) convertHeightmap(spec *loaders.HeightmapSpec) (core.Object, error) {
	mat, err := c.material(spec.Mat)
	if err != nil {
		return nil, err
	}

	samples := make([]geometry.HeightSample, len(spec.Heights))
	for i, h := range spec.Heights {
		samples[i].Height = h
		samples[i].Color = mat.Color
		if len(spec.Colors) > 0 {
			samples[i].Color = convertColor(spec.Colors[i])
		}
	}

	field, err := geometry.NewHeightField(convertVec(*spec.Pos), spec.Ratio, spec.W, spec.H, samples, mat)
	if err != nil {
		return nil, fmt.Errorf("heightmap: %w", err)
	}
	return field, nil
}

func convertLight(spec loaders.LightSpec) core.Light {
	if spec.Sun != nil {
		return lights.NewSun(convertVec(*spec.Sun.Dir), shininess(spec.Sun.Shin))
	}
	return lights.NewBulb(convertVec(*spec.Bulb.Pos), shininess(spec.Bulb.Shin))
}

func shininess(shin *float64) float64 {
	if shin == nil {
		return lights.DefaultShininess
	}
	return *shin
}

func convertMaterial(spec loaders.MaterialSpec) *core.Material {
	refrIdx := 1.0
	if spec.RefrIdx != nil {
		refrIdx = *spec.RefrIdx
	}
	return core.NewMaterial(convertColor(spec.Color), spec.Spec, spec.Diff, spec.Refr, refrIdx, spec.Refl)
}

func convertVec(v loaders.Vec) core.Vec3 {
	return core.NewVec3(v.X, v.Y, v.Z)
}

func convertColor(c loaders.RGB) core.Color {
	return core.NewColor(c.R, c.G, c.B)
}
