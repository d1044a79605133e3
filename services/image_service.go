package services

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrUnsupportedImage = errors.New("unsupported_image_type")

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ImageService writes uploaded images under MediaRoot and returns the
// media-relative path stored in the database ("avatars/<uuid>.png").
type ImageService struct {
	MediaRoot string
}

func NewImageService(mediaRoot string) *ImageService {
	return &ImageService{MediaRoot: mediaRoot}
}

func (s *ImageService) target(subdir, ext string) (string, string, error) {
	dir := filepath.Join(s.MediaRoot, subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("mkdir media dir: %w", err)
	}
	filename := uuid.NewString() + ext
	return filepath.Join(dir, filename), filepath.ToSlash(filepath.Join(subdir, filename)), nil
}

// SaveUpload stores a multipart file. The extension of the client file name decides the stored one.
func (s *ImageService) SaveUpload(fh *multipart.FileHeader, subdir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExt[ext] {
		return "", ErrUnsupportedImage
	}
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	fullpath, rel, err := s.target(subdir, ext)
	if err != nil {
		return "", err
	}
	dst, err := os.Create(fullpath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return rel, nil
}

// SaveBase64 stores a base64 image, with or without a data-URL prefix.
func (s *ImageService) SaveBase64(b64 string, subdir string) (string, error) {
	ext := ".jpg"
	if strings.HasPrefix(b64, "data:image/") {
		mime := strings.TrimPrefix(b64, "data:image/")
		if i := strings.IndexAny(mime, ";,"); i > 0 {
			if e := "." + strings.ToLower(mime[:i]); allowedImageExt[e] {
				ext = e
			}
		}
	}
	if idx := strings.Index(b64, "base64,"); idx >= 0 {
		b64 = b64[idx+7:]
	}

	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}

	fullpath, rel, err := s.target(subdir, ext)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(fullpath, data, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return rel, nil
}

// Remove deletes a stored image by its media-relative path. Paths that would
// leave MediaRoot are ignored.
func (s *ImageService) Remove(rel string) {
	rel = filepath.Clean(filepath.FromSlash(rel))
	if rel == "." || filepath.IsAbs(rel) || strings.HasPrefix(rel, "..") {
		return
	}
	if err := os.Remove(filepath.Join(s.MediaRoot, rel)); err != nil && !errors.Is(err, os.ErrNotExist) {
		zap.L().Warn("failed to remove image", zap.String("path", rel), zap.Error(err))
	}
}
