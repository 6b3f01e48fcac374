package server

import (
	"fmt"
	"image"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// maxDocumentBytes bounds the body of POST /render
const maxDocumentBytes = 8 << 20

// RenderRequest holds the query overrides of a render
type RenderRequest struct {
	Width      int
	Height     int
	Subsamples int
	Bounces    uint
	Thumb      int // Longest side of the returned thumbnail, 0 for the full image
}

// handleRenderDocument renders the scene document in the request body
func (s *Server) handleRenderDocument(w http.ResponseWriter, r *http.Request) {
	logger := s.requestLogger(w)

	doc, err := loaders.Load(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err != nil {
		logger.Printf("Rejected scene document: %v\n", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sceneObj, err := scene.NewDocumentScene(doc)
	if err != nil {
		logger.Printf("Rejected scene document: %v\n", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	name := doc.Name
	if name == "" {
		name = "document"
	}
	s.renderScene(w, r, sceneObj, name, logger)
}

// handleRenderBuiltin renders one of the built-in scenes
func (s *Server) handleRenderBuiltin(w http.ResponseWriter, r *http.Request) {
	logger := s.requestLogger(w)
	name := r.PathValue("name")

	sceneObj, err := scene.NewBuiltinScene(name, geometry.CameraConfig{})
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.renderScene(w, r, sceneObj, name, logger)
}

// renderScene renders sceneObj with the request's overrides and writes a PNG
func (s *Server) renderScene(w http.ResponseWriter, r *http.Request, sceneObj *scene.Scene, name string, logger core.Logger) {
	req, err := parseRenderRequest(r, sceneObj)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	config := renderer.DefaultConfig()
	config.Width = req.Width
	config.Height = req.Height
	config.Subsamples = req.Subsamples
	config.Bounces = req.Bounces
	config.NumWorkers = s.config.NumWorkers

	logger.Printf("Rendering scene %s\n", name)
	rend, err := renderer.NewRenderer(sceneObj, sceneObj.CameraConfig, config, logger)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	img, stats, err := rend.Render(r.Context(), nil)
	if err != nil {
		if r.Context().Err() != nil {
			logger.Printf("Client went away: %v\n", err)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var result image.Image = img
	if req.Thumb > 0 {
		result = output.Thumbnail(img, req.Thumb)
	}
	data, err := output.EncodePNG(result)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if s.config.Publisher != nil {
		key := output.ObjectKey(name)
		if req.Thumb > 0 {
			key = output.ThumbnailKey(key)
		}
		if err := s.config.Publisher.Publish(r.Context(), key, data); err != nil {
			logger.Printf("Publish failed: %v\n", err)
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		w.Header().Set("X-Render-Key", key)
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Render-Duration", stats.Duration.String())
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// parseRenderRequest reads the query overrides, defaulting to the scene's own
// camera and sampling settings
func parseRenderRequest(r *http.Request, sceneObj *scene.Scene) (*RenderRequest, error) {
	query := r.URL.Query()
	defaults := renderer.DefaultConfig()

	width := sceneObj.CameraConfig.Width
	if width <= 0 {
		width = defaults.Width
	}
	height := sceneObj.CameraConfig.Height
	if height <= 0 {
		height = defaults.Height
	}
	subsamples := max(sceneObj.SamplingConfig.Subsamples, 1)

	req := &RenderRequest{}
	var err error
	if req.Width, err = parseLimitedParam(query, "width", width, 1, maxImageDim); err != nil {
		return nil, err
	}
	if req.Height, err = parseLimitedParam(query, "height", height, 1, maxImageDim); err != nil {
		return nil, err
	}
	if req.Subsamples, err = parseLimitedParam(query, "subsamples", subsamples, 1, maxSubsamples); err != nil {
		return nil, err
	}
	bounces, err := parseLimitedParam(query, "bounces", boundedInt(sceneObj.SamplingConfig.Bounces), 0, maxBounces)
	if err != nil {
		return nil, err
	}
	req.Bounces = uint(bounces)
	if req.Thumb, err = parseIntParam(query, "thumb", 0, 0, maxImageDim); err != nil {
		return nil, err
	}

	return req, nil
}

// parseLimitedParam is parseIntParam with the limits also applied to the
// default, which may come from a posted scene document
func parseLimitedParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	value, err := parseIntParam(values, key, defaultValue, min, max)
	if err != nil {
		return 0, err
	}
	if value < min || value > max {
		return 0, fmt.Errorf("scene %s must be between %d and %d, got: %d", key, min, max, value)
	}
	return value, nil
}

// boundedInt converts without wrapping huge values to negative ones
func boundedInt(v uint) int {
	return int(min(v, uint(math.MaxInt32)))
}
