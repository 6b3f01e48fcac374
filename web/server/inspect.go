package server

import (
	"fmt"
	"net/http"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit      bool          `json:"hit"`
	Point    [3]float64    `json:"point"`
	Normal   [3]float64    `json:"normal"`
	Distance float64       `json:"distance"`
	Material *MaterialInfo `json:"material,omitempty"`
}

// MaterialInfo describes the material at an inspected point
type MaterialInfo struct {
	Color   string  `json:"color"` // Hex, after clamping
	Spec    float64 `json:"spec"`
	Diff    float64 `json:"diff"`
	Refr    float64 `json:"refr"`
	RefrIdx float64 `json:"refrIdx"`
	Refl    float64 `json:"refl"`
}

// handleInspect reports the surface seen through one pixel of a built-in scene
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	sceneObj, err := scene.NewBuiltinScene(name, geometry.CameraConfig{})
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	cameraConfig := sceneObj.CameraConfig
	query := r.URL.Query()
	x, err := parseIntParam(query, "x", cameraConfig.Width/2, 0, cameraConfig.Width-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	y, err := parseIntParam(query, "y", cameraConfig.Height/2, 0, cameraConfig.Height-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, x, y))
}

// inspectPixel casts a ray through the center of pixel (x, y) and describes
// the first surface it hits
func inspectPixel(sceneObj *scene.Scene, x, y int) InspectResponse {
	camera := geometry.NewCamera(sceneObj.CameraConfig)
	ray := camera.GetRay(float64(x)+0.5, float64(y)+0.5)

	hit := sceneObj.Objects.Intersect(ray)
	if hit == nil {
		return InspectResponse{Hit: false}
	}

	return InspectResponse{
		Hit:      true,
		Point:    [3]float64{hit.Pos.X, hit.Pos.Y, hit.Pos.Z},
		Normal:   [3]float64{hit.Normal.X, hit.Normal.Y, hit.Normal.Z},
		Distance: hit.Dist,
		Material: materialInfo(hit.Mat),
	}
}

func materialInfo(mat *core.Material) *MaterialInfo {
	if mat == nil {
		return nil
	}
	c := mat.Color.RGBA()
	return &MaterialInfo{
		Color:   fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B),
		Spec:    mat.Spec,
		Diff:    mat.Diff,
		Refr:    mat.Refr,
		RefrIdx: mat.RefrIdx,
		Refl:    mat.Refl,
	}
}
