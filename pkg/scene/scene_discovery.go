package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`                 // Unique identifier
	Name        string `json:"name"`               // Display name
	Description string `json:"description"`        // Optional description
	Group       string `json:"group"`              // Grouping category
	Type        string `json:"type"`               // "builtin" or "file"
	FilePath    string `json:"filePath,omitempty"` // Path to the scene document (file type only)
	Width       int    `json:"width,omitempty"`    // Default image size (builtin type only)
	Height      int    `json:"height,omitempty"`
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

const builtinGroup = "Built-in Scenes"

type builtin struct {
	description string
	create      func(geometry.CameraConfig) (*Scene, error)
}

// DefaultHexagroundSeed seeds the hexaground builtin
const DefaultHexagroundSeed = 42

var builtins = map[string]builtin{
	"default": {
		description: "Spheres, a rotated box and a prism on a reflective floor",
		create: func(c geometry.CameraConfig) (*Scene, error) {
			return NewDefaultScene(c), nil
		},
	},
	"hexaground": {
		description: "Staggered grid of hexagonal columns with random heights",
		create: func(c geometry.CameraConfig) (*Scene, error) {
			return NewHexagroundScene(DefaultHexagroundSeed, c), nil
		},
	},
	"terrain": {
		description: "Height field shaped by Mandelbrot escape counts",
		create: func(c geometry.CameraConfig) (*Scene, error) {
			return NewTerrainScene(DefaultTerrainConfig(), c)
		},
	},
	"skybox": {
		description: "Glass and mirror spheres inside an inside-out box",
		create: func(c geometry.CameraConfig) (*Scene, error) {
			return NewSkyboxScene(c), nil
		},
	},
}

// NewBuiltinScene creates the built-in scene with the given ID. Non-zero
// fields of cameraOverride replace the scene's own camera settings.
func NewBuiltinScene(id string, cameraOverride geometry.CameraConfig) (*Scene, error) {
	b, ok := builtins[id]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %s)", id, strings.Join(BuiltinSceneIDs(), ", "))
	}
	return b.create(cameraOverride)
}

// BuiltinSceneIDs returns the IDs of all built-in scenes in sorted order
func BuiltinSceneIDs() []string {
	ids := make([]string, 0, len(builtins))
	for id := range builtins {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ListBuiltinScenes returns metadata for every built-in scene
func ListBuiltinScenes() ([]SceneInfo, error) {
	var scenes []SceneInfo
	for _, id := range BuiltinSceneIDs() {
		s, err := builtins[id].create(geometry.CameraConfig{})
		if err != nil {
			return nil, fmt.Errorf("failed to create scene %s: %w", id, err)
		}
		scenes = append(scenes, SceneInfo{
			ID:          id,
			Name:        titleCase(id),
			Description: builtins[id].description,
			Group:       builtinGroup,
			Type:        "builtin",
			Width:       s.CameraConfig.Width,
			Height:      s.CameraConfig.Height,
		})
	}
	return scenes, nil
}

// ListSceneFiles scans dir for JSON scene documents. A missing directory is
// not an error.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, filePath := range files {
		scenes = append(scenes, ParseSceneFileMetadata(filePath))
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// ParseSceneFileMetadata reads the optional top-level "name", "description"
// and "group" keys of a scene document, falling back to values derived from
// the file name
func ParseSceneFileMetadata(filePath string) SceneInfo {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:       fmt.Sprintf("file:%s", nameWithoutExt),
		Name:     titleCase(nameWithoutExt),
		Group:    "Scene Files",
		Type:     "file",
		FilePath: filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info
	}

	var meta struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Group       string `json:"group"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return info
	}

	if meta.Name != "" {
		info.Name = meta.Name
	}
	if meta.Group != "" {
		info.Group = meta.Group
	}
	info.Description = meta.Description
	return info
}

// ListAllScenes returns built-in scenes and the scene documents in dir,
// grouped by category
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	builtinScenes, err := ListBuiltinScenes()
	if err != nil {
		return response, err
	}

	fileScenes, err := ListSceneFiles(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}

	allScenes := append(builtinScenes, fileScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, info := range allScenes {
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if group, exists := groupMap[builtinGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   builtinGroup,
			Scenes: group,
		})
	}

	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "hexa-ground" -> "Hexa Ground"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
