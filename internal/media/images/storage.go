// Package images validates, stores, and serves uploaded recipe images.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const recipesSubdir = "recipes"

// ErrInvalidImage is returned when uploaded bytes do not decode as a
// supported image format (GIF, JPEG, PNG, WebP).
var ErrInvalidImage = errors.New("invalid image data")

// extByFormat maps image.Decode format names to stored file extensions.
var extByFormat = map[string]string{
	"jpeg": ".jpg",
	"png":  ".png",
	"gif":  ".gif",
	"webp": ".webp",
}

// contentTypeByExt maps stored extensions back to MIME types for serving.
var contentTypeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// SavedImage describes a stored upload.
type SavedImage struct {
	// Path is relative to the media root, e.g. "recipes/<uuid>.jpg".
	Path     string
	Blurhash string
}

// Storage manages recipe image files under a media root.
// Safe for concurrent use.
type Storage struct {
	basePath string
	mu       sync.RWMutex
}

// NewStorage creates a Storage rooted at mediaPath. Images are stored in
// {mediaPath}/recipes/.
func NewStorage(mediaPath string) (*Storage, error) {
	if mediaPath == "" {
		return nil, fmt.Errorf("media path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Join(mediaPath, recipesSubdir), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create recipes directory: %w", err)
	}

	return &Storage{basePath: mediaPath}, nil
}

// Save validates the upload, writes it under a random filename, and
// computes its blurhash placeholder. The stored file keeps the extension
// of originalName; when that extension is absent or unrecognized, the
// decoded format decides it.
func (s *Storage) Save(data []byte, originalName string) (*SavedImage, error) {
	if len(data) == 0 {
		return nil, ErrInvalidImage
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := contentTypeByExt[ext]; !ok {
		var known bool
		if ext, known = extByFormat[format]; !known {
			return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidImage, format)
		}
	}

	hash, err := computeBlurhash(img)
	if err != nil {
		// A recipe without a placeholder is still a recipe with an image.
		hash = ""
	}

	relPath := filepath.Join(recipesSubdir, uuid.New().String()+ext)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(filepath.Join(s.basePath, relPath), data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write image file: %w", err)
	}

	return &SavedImage{Path: relPath, Blurhash: hash}, nil
}

// Get reads a stored image by its media-relative path.
func (s *Storage) Get(relPath string) ([]byte, error) {
	cleaned, err := s.cleanPath(relPath)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(cleaned)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}
	return data, nil
}

// Exists reports whether a stored image exists.
func (s *Storage) Exists(relPath string) bool {
	cleaned, err := s.cleanPath(relPath)
	if err != nil {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err = os.Stat(cleaned)
	return err == nil
}

// Delete removes a stored image. Deleting an absent file is not an error.
func (s *Storage) Delete(relPath string) error {
	cleaned, err := s.cleanPath(relPath)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(cleaned); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image file: %w", err)
	}
	return nil
}

// ContentType returns the MIME type for a stored path, defaulting to
// application/octet-stream.
func ContentType(relPath string) string {
	if ct, ok := contentTypeByExt[strings.ToLower(filepath.Ext(relPath))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// cleanPath resolves a media-relative path and rejects traversal outside
// the recipes directory.
func (s *Storage) cleanPath(relPath string) (string, error) {
	if relPath == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	cleaned := filepath.Clean(relPath)
	if filepath.IsAbs(cleaned) || !strings.HasPrefix(cleaned, recipesSubdir+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid image path %q", relPath)
	}

	return filepath.Join(s.basePath, cleaned), nil
}
