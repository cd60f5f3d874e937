package upload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	MaxImageSize    = 5 * 1024 * 1024
	MaxDocumentSize = 10 * 1024 * 1024

	CategoryImage    = "image"
	CategoryDocument = "document"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

var allowedDocumentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9]+`)

type Result struct {
	Filename string
	URL      string
	Size     int64
}

// Store writes uploaded files under a base directory, split into images/ and
// documents/ subdirectories served at /uploads.
type Store struct {
	BaseDir string
}

func NewStore(baseDir string) *Store {
	if baseDir == "" {
		baseDir = filepath.Join("public", "uploads")
	}
	return &Store{BaseDir: baseDir}
}

// Category classifies a MIME type, or returns an empty string when the type
// is not accepted.
func Category(mimeType string) string {
	if allowedImageTypes[mimeType] {
		return CategoryImage
	}
	if allowedDocumentTypes[mimeType] {
		return CategoryDocument
	}
	return ""
}

// Validate checks the MIME type against the allow-lists and the size against
// the per-category limit.
func Validate(mimeType string, size int64) error {
	category := Category(mimeType)

	if category == "" {
		return fmt.Errorf("unsupported file type: %s", mimeType)
	}

	limit := int64(MaxDocumentSize)
	if category == CategoryImage {
		limit = MaxImageSize
	}

	if size > limit {
		return fmt.Errorf("file too large, maximum %dMB", limit/(1024*1024))
	}

	return nil
}

// SafeFilename builds a collision-free name from the original: lowercased,
// stripped to [a-z0-9-], truncated, suffixed with a random token.
func SafeFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))

	base := strings.TrimSuffix(originalName, filepath.Ext(originalName))
	base = unsafeChars.ReplaceAllString(strings.ToLower(base), "-")
	base = strings.Trim(base, "-")

	if len(base) > 20 {
		base = base[:20]
	}

	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:16]

	if base == "" {
		return token + ext
	}

	return base + "-" + token + ext
}

func (s *Store) Save(data []byte, originalName, mimeType string) (*Result, error) {
	if err := Validate(mimeType, int64(len(data))); err != nil {
		return nil, err
	}

	category := Category(mimeType)
	dir := filepath.Join(s.BaseDir, category+"s")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	filename := SafeFilename(originalName)

	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &Result{
		Filename: filename,
		URL:      "/uploads/" + category + "s/" + filename,
		Size:     int64(len(data)),
	}, nil
}

// Delete removes a stored file. Returns false without error when the file is
// already gone.
func (s *Store) Delete(filename, mimeType string) (bool, error) {
	category := Category(mimeType)

	if category == "" {
		return false, fmt.Errorf("unsupported file type: %s", mimeType)
	}

	path := filepath.Join(s.BaseDir, category+"s", filename)

	err := os.Remove(path)

	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// FormatSize renders a byte count for display ("2.5 MB").
func FormatSize(bytes int64) string {
	const unit = 1024

	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMG"[exp])
}
