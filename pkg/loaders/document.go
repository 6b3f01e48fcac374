package loaders

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
)

// Document is a parsed JSON scene description. Objects and lights are
// single-key objects whose key names the kind, e.g. {"sphere": {...}}.
type Document struct {
	Name        string    `json:"name"`        // Optional display name
	Description string    `json:"description"` // Optional description
	Group       string    `json:"group"`       // Optional grouping category
	Picture     Picture   `json:"picture"`
	Eye         Eye       `json:"eye"`
	Scene       SceneSpec `json:"scene"`
}

// Picture describes the output image
type Picture struct {
	W    int    `json:"w"`
	H    int    `json:"h"`
	Path string `json:"path"` // Optional output path
}

// Eye describes the camera
type Eye struct {
	Pos *Vec    `json:"pos"`
	Dir Vec     `json:"dir"` // Euler angles in radians
	FOV float64 `json:"fov"` // Field of view in radians
}

// Vec is a JSON {x, y, z} triple
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// RGB is a JSON {r, g, b} triple
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// SceneSpec holds the contents of the "scene" key
type SceneSpec struct {
	Ambient    *float64                `json:"ambient"`    // Default 0.2
	Background *RGB                    `json:"background"` // Default black
	Shadow     string                  `json:"shadow"`     // "distance" (default) or "axis"
	Bounces    *uint                   `json:"bounces"`    // Default 5
	Subsamples *int                    `json:"subsamples"` // Default 1
	Materials  map[string]MaterialSpec `json:"materials"`  // Named materials shared by reference
	Objects    []ObjectSpec            `json:"objects"`
	Lights     []LightSpec             `json:"lights"`
}

// MaterialSpec describes a material. RefrIdx defaults to 1.
type MaterialSpec struct {
	Color   RGB      `json:"color"`
	Spec    float64  `json:"spec"`
	Diff    float64  `json:"diff"`
	Refr    float64  `json:"refr"`
	RefrIdx *float64 `json:"refr_idx"`
	Refl    float64  `json:"refl"`
}

// MaterialRef is either the name of an entry in SceneSpec.Materials or an
// inline material
type MaterialRef struct {
	Name   string
	Inline *MaterialSpec
}

// UnmarshalJSON accepts a string or an object
func (m *MaterialRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &m.Name); err != nil {
			return err
		}
		if m.Name == "" {
			return errors.New("material name is empty")
		}
		return nil
	}
	m.Inline = &MaterialSpec{}
	return json.Unmarshal(data, m.Inline)
}

// IsSet reports whether the reference names or holds a material
func (m MaterialRef) IsSet() bool {
	return m.Name != "" || m.Inline != nil
}

// SphereSpec is the body of a "sphere" object
type SphereSpec struct {
	Pos    *Vec        `json:"pos"`
	Radius float64     `json:"radius"`
	Mat    MaterialRef `json:"mat"`
}

// PlaneSpec is the body of a "plane" object
type PlaneSpec struct {
	Pos    *Vec        `json:"pos"`
	Normal *Vec        `json:"normal"`
	Mat    MaterialRef `json:"mat"`
}

// RectSpec is the body of an "aarect" object
type RectSpec struct {
	Pos *Vec        `json:"pos"`
	Dir string      `json:"dir"` // left, right, top, bottom, front or back
	Dim *Vec        `json:"dim"`
	Mat MaterialRef `json:"mat"`
}

// BoxSpec is the body of an "aabox" object
type BoxSpec struct {
	Pos    *Vec        `json:"pos"`
	Dim    *Vec        `json:"dim"`
	Mat    MaterialRef `json:"mat"`
	Skybox bool        `json:"skybox"`
}

// HexaSpec is the body of an "aahexa" object
type HexaSpec struct {
	Pos *Vec        `json:"pos"`
	X   float64     `json:"x"` // Corner-to-corner width
	Y   float64     `json:"y"` // Height
	Mat MaterialRef `json:"mat"`
}

// RotateSpec is the body of a "rotate" object
type RotateSpec struct {
	Pos    *Vec        `json:"pos"` // Pivot
	Dir    Vec         `json:"dir"` // Euler angles in radians
	Object *ObjectSpec `json:"object"`
}

// HeightmapSpec is the body of a "heightmap" object. Heights and the
// optional per-sample colors are row-major, W*H entries each.
type HeightmapSpec struct {
	Pos     *Vec        `json:"pos"`
	Ratio   float64     `json:"ratio"`
	W       int         `json:"w"`
	H       int         `json:"h"`
	Heights []float64   `json:"heights"`
	Colors  []RGB       `json:"colors"`
	Mat     MaterialRef `json:"mat"`
}

// GroupSpec is the body of a "group" object
type GroupSpec struct {
	Objects []ObjectSpec `json:"objects"`
}

// ObjectSpec holds exactly one kind of object
type ObjectSpec struct {
	Sphere    *SphereSpec
	Plane     *PlaneSpec
	Rect      *RectSpec
	Box       *BoxSpec
	Hexa      *HexaSpec
	Rotate    *RotateSpec
	Heightmap *HeightmapSpec
	Group     *GroupSpec
}

// UnmarshalJSON decodes a single-key tagged object
func (o *ObjectSpec) UnmarshalJSON(data []byte) error {
	tag, body, err := singleKey(data)
	if err != nil {
		return err
	}

	switch tag {
	case "sphere":
		o.Sphere = &SphereSpec{}
		return decodeBody(tag, body, o.Sphere, o.Sphere.validate)
	case "plane":
		o.Plane = &PlaneSpec{}
		return decodeBody(tag, body, o.Plane, o.Plane.validate)
	case "aarect":
		o.Rect = &RectSpec{}
		return decodeBody(tag, body, o.Rect, o.Rect.validate)
	case "aabox":
		o.Box = &BoxSpec{}
		return decodeBody(tag, body, o.Box, o.Box.validate)
	case "aahexa":
		o.Hexa = &HexaSpec{}
		return decodeBody(tag, body, o.Hexa, o.Hexa.validate)
	case "rotate":
		o.Rotate = &RotateSpec{}
		return decodeBody(tag, body, o.Rotate, o.Rotate.validate)
	case "heightmap":
		o.Heightmap = &HeightmapSpec{}
		return decodeBody(tag, body, o.Heightmap, o.Heightmap.validate)
	case "group":
		o.Group = &GroupSpec{}
		return decodeBody(tag, body, o.Group, func() error { return nil })
	default:
		return fmt.Errorf("unknown object type %q", tag)
	}
}

// BulbSpec is the body of a "bulb" light
type BulbSpec struct {
	Pos  *Vec     `json:"pos"`
	Shin *float64 `json:"shin"` // Default 20
}

// SunSpec is the body of a "sun" light
type SunSpec struct {
	Dir  *Vec     `json:"dir"`
	Shin *float64 `json:"shin"` // Default 20
}

// LightSpec holds exactly one kind of light
type LightSpec struct {
	Bulb *BulbSpec
	Sun  *SunSpec
}

// UnmarshalJSON decodes a single-key tagged light
func (l *LightSpec) UnmarshalJSON(data []byte) error {
	tag, body, err := singleKey(data)
	if err != nil {
		return err
	}

	switch tag {
	case "bulb":
		l.Bulb = &BulbSpec{}
		return decodeBody(tag, body, l.Bulb, func() error { return requireVec(l.Bulb.Pos, "pos") })
	case "sun":
		l.Sun = &SunSpec{}
		return decodeBody(tag, body, l.Sun, func() error { return requireVec(l.Sun.Dir, "dir") })
	default:
		return fmt.Errorf("unknown light type %q", tag)
	}
}

// Load parses a scene document
func Load(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse scene document: %w", err)
	}
	if err := doc.validate(); err != nil {
		return nil, fmt.Errorf("invalid scene document: %w", err)
	}
	return &doc, nil
}

// LoadFile parses the scene document at path
func LoadFile(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	doc, err := Load(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// MaterialNames returns the names of the shared materials in sorted order
func (d *Document) MaterialNames() []string {
	names := make([]string, 0, len(d.Scene.Materials))
	for name := range d.Scene.Materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (d *Document) validate() error {
	if d.Picture.W <= 0 || d.Picture.H <= 0 {
		return fmt.Errorf("picture: size must be positive, got %dx%d", d.Picture.W, d.Picture.H)
	}
	if err := requireVec(d.Eye.Pos, "pos"); err != nil {
		return fmt.Errorf("eye: %w", err)
	}
	if !(d.Eye.FOV > 0) {
		return fmt.Errorf("eye: fov must be positive, got %v", d.Eye.FOV)
	}

	s := d.Scene
	if s.Shadow != "" && s.Shadow != "distance" && s.Shadow != "axis" {
		return fmt.Errorf("scene: unknown shadow mode %q", s.Shadow)
	}
	if s.Subsamples != nil && *s.Subsamples <= 0 {
		return fmt.Errorf("scene: subsamples must be positive, got %d", *s.Subsamples)
	}
	for i, obj := range s.Objects {
		if err := d.checkMaterials(obj); err != nil {
			return fmt.Errorf("scene.objects[%d]: %w", i, err)
		}
	}
	return nil
}

// checkMaterials makes sure every named material reference resolves
func (d *Document) checkMaterials(obj ObjectSpec) error {
	check := func(ref MaterialRef) error {
		if ref.Name == "" {
			return nil
		}
		if _, ok := d.Scene.Materials[ref.Name]; !ok {
			return fmt.Errorf("unknown material %q", ref.Name)
		}
		return nil
	}

	switch {
	case obj.Sphere != nil:
		return check(obj.Sphere.Mat)
	case obj.Plane != nil:
		return check(obj.Plane.Mat)
	case obj.Rect != nil:
		return check(obj.Rect.Mat)
	case obj.Box != nil:
		return check(obj.Box.Mat)
	case obj.Hexa != nil:
		return check(obj.Hexa.Mat)
	case obj.Heightmap != nil:
		return check(obj.Heightmap.Mat)
	case obj.Rotate != nil:
		return d.checkMaterials(*obj.Rotate.Object)
	case obj.Group != nil:
		for i, child := range obj.Group.Objects {
			if err := d.checkMaterials(child); err != nil {
				return fmt.Errorf("group.objects[%d]: %w", i, err)
			}
		}
	}
	return nil
}

func (s *SphereSpec) validate() error {
	if err := requireVec(s.Pos, "pos"); err != nil {
		return err
	}
	if !(s.Radius > 0) {
		return fmt.Errorf("radius must be positive, got %v", s.Radius)
	}
	return requireMat(s.Mat)
}

func (p *PlaneSpec) validate() error {
	if err := requireVec(p.Pos, "pos"); err != nil {
		return err
	}
	if err := requireVec(p.Normal, "normal"); err != nil {
		return err
	}
	if *p.Normal == (Vec{}) {
		return errors.New("normal must not be zero")
	}
	return requireMat(p.Mat)
}

func (r *RectSpec) validate() error {
	if err := requireVec(r.Pos, "pos"); err != nil {
		return err
	}
	if r.Dir == "" {
		return errors.New("missing dir")
	}
	if err := requireVec(r.Dim, "dim"); err != nil {
		return err
	}
	return requireMat(r.Mat)
}

func (b *BoxSpec) validate() error {
	if err := requireVec(b.Pos, "pos"); err != nil {
		return err
	}
	if err := requireVec(b.Dim, "dim"); err != nil {
		return err
	}
	return requireMat(b.Mat)
}

func (h *HexaSpec) validate() error {
	if err := requireVec(h.Pos, "pos"); err != nil {
		return err
	}
	if !(h.X > 0) || !(h.Y > 0) {
		return fmt.Errorf("x and y must be positive, got %v and %v", h.X, h.Y)
	}
	return requireMat(h.Mat)
}

func (r *RotateSpec) validate() error {
	if err := requireVec(r.Pos, "pos"); err != nil {
		return err
	}
	if r.Object == nil {
		return errors.New("missing object")
	}
	return nil
}

func (h *HeightmapSpec) validate() error {
	if err := requireVec(h.Pos, "pos"); err != nil {
		return err
	}
	if !(h.Ratio > 0) {
		return fmt.Errorf("ratio must be positive, got %v", h.Ratio)
	}
	if h.W < 2 || h.H < 2 {
		return fmt.Errorf("needs at least 2x2 samples, got %dx%d", h.W, h.H)
	}
	if len(h.Heights) != h.W*h.H {
		return fmt.Errorf("expected %d heights for %dx%d, got %d", h.W*h.H, h.W, h.H, len(h.Heights))
	}
	if len(h.Colors) != 0 && len(h.Colors) != h.W*h.H {
		return fmt.Errorf("expected %d colors for %dx%d, got %d", h.W*h.H, h.W, h.H, len(h.Colors))
	}
	return requireMat(h.Mat)
}

func requireVec(v *Vec, name string) error {
	if v == nil {
		return fmt.Errorf("missing %s", name)
	}
	return nil
}

func requireMat(m MaterialRef) error {
	if !m.IsSet() {
		return errors.New("missing mat")
	}
	return nil
}

// singleKey splits {"tag": body} into its parts
func singleKey(data []byte) (string, json.RawMessage, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return "", nil, err
	}
	if len(m) != 1 {
		return "", nil, fmt.Errorf("expected exactly one key, got %d", len(m))
	}
	for tag, body := range m {
		return tag, body, nil
	}
	return "", nil, nil
}

func decodeBody(tag string, body json.RawMessage, v any, validate func() error) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%s: %w", tag, err)
	}
	if err := validate(); err != nil {
		return fmt.Errorf("%s: %w", tag, err)
	}
	return nil
}
