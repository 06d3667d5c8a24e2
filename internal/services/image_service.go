package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"pharmahub/internal/apperrors"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// ImageService stores uploaded product images as resized JPEG files.
type ImageService struct {
	dir       string
	urlPrefix string
	maxWidth  int
	maxHeight int
}

func NewImageService(dir, urlPrefix string, maxWidth, maxHeight int) *ImageService {
	return &ImageService{dir: dir, urlPrefix: urlPrefix, maxWidth: maxWidth, maxHeight: maxHeight}
}

// Store decodes r, scales it down to fit the configured bounds and writes it under a
// random name. It returns the public URL of the stored file.
func (s *ImageService) Store(r io.Reader) (string, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", apperrors.ValidationFields("Validation failed", map[string]string{"image": "file is not a supported image"})
	}

	if s.maxWidth > 0 && s.maxHeight > 0 {
		// Fit never upscales smaller images.
		img = imaging.Fit(img, s.maxWidth, s.maxHeight, imaging.Lanczos)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	name := uuid.NewString() + ".jpg"
	if err := imaging.Save(img, filepath.Join(s.dir, name), imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return s.urlPrefix + "/" + name, nil
}
