package imaging

import (
	"path/filepath"
	"strings"
)

// SupportedExtensions lists the file extensions accepted from drops,
// compared case-insensitively.
var SupportedExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp"}

func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}
