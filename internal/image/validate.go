package imagepkg

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	MaxUploadBytes = 20 << 20
	MinPhotoWidth  = 300
	MinPhotoHeight = 255 // ~300 * 97/114
)

var acceptedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/heic": true,
	"image/heif": true,
}

// ValidateUpload checks a photo's declared type and its size. HEIC/HEIF
// files are accepted by extension since browsers often send no type.
func ValidateUpload(contentType, filename string, size int64) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	ct := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if !acceptedTypes[ct] && ext != "heic" && ext != "heif" {
		return errors.New("Please select a JPEG, PNG, or WebP image.")
	}
	if size > MaxUploadBytes {
		return fmt.Errorf("Image is too large (%.1fMB). Maximum is 20MB.", float64(size)/(1<<20))
	}
	return nil
}

// ValidateDimensions rejects photos too small to fill the portrait window.
func ValidateDimensions(width, height int) error {
	if width >= MinPhotoWidth && height >= MinPhotoHeight {
		return nil
	}
	return fmt.Errorf("Image is too small (%dx%d). Minimum is %dx%d.", width, height, MinPhotoWidth, MinPhotoHeight)
}
