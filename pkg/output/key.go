package output

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ObjectKey returns a unique storage key for a render of the named scene
func ObjectKey(sceneName string) string {
	return path.Join("renders", sanitize(sceneName), uuid.NewString()+".png")
}

// ThumbnailKey returns the key of the thumbnail stored beside key
func ThumbnailKey(key string) string {
	return fmt.Sprintf("%s_thumb.png", strings.TrimSuffix(key, ".png"))
}

// sanitize keeps keys to a single path segment of safe characters
func sanitize(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "scene"
	}
	return b.String()
}
