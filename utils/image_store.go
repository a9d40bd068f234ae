package utils

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	// ErrNotImage is returned when an upload does not sniff as an image.
	ErrNotImage = errors.New("upload a valid image")
	// ErrImageTooLarge is returned when an upload exceeds the configured size.
	ErrImageTooLarge = errors.New("image is too large")
)

const imageDir = "posts"

// ImageStore keeps post images under root, as posts/<uuid><ext>.
type ImageStore struct {
	root     string
	maxBytes int64
}

// NewImageStore returns a store rooted at root. maxMB <= 0 means 5 MB.
func NewImageStore(root string, maxMB int) *ImageStore {
	if maxMB <= 0 {
		maxMB = 5
	}
	return &ImageStore{root: root, maxBytes: int64(maxMB) << 20}
}

// Root is the directory served under /media/.
func (s *ImageStore) Root() string { return s.root }

// Save sniffs and stores fh, returning the path relative to the root.
func (s *ImageStore) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > s.maxBytes {
		return "", ErrImageTooLarge
	}
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	mt, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("sniff upload: %w", err)
	}
	if !isRaster(mt) {
		return "", ErrNotImage
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	if err := os.MkdirAll(filepath.Join(s.root, imageDir), 0o755); err != nil {
		return "", err
	}
	rel := path.Join(imageDir, uuid.NewString()+mt.Extension())
	dst, err := os.Create(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, io.LimitReader(src, s.maxBytes+1)); err != nil {
		return "", err
	}
	return rel, nil
}

// Delete removes a stored image. Missing files and paths outside the root are ignored.
func (s *ImageStore) Delete(rel string) {
	if rel == "" {
		return
	}
	clean := path.Clean("/" + rel)[1:]
	if !strings.HasPrefix(clean, imageDir+"/") {
		return
	}
	if err := os.Remove(filepath.Join(s.root, filepath.FromSlash(clean))); err != nil && !errors.Is(err, os.ErrNotExist) {
		Sugar.Warnf("remove image %s failed: %v", clean, err)
	}
}

// URL returns the public URL of a stored image.
func (s *ImageStore) URL(rel string) string {
	if rel == "" {
		return ""
	}
	return "/media/" + rel
}

// rasterTypes are the formats accepted for post images. Vector formats such as
// SVG can carry script and are served from our own origin, so they are refused.
var rasterTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

func isRaster(mt *mimetype.MIME) bool {
	for _, t := range rasterTypes {
		if mt.Is(t) {
			return true
		}
	}
	return false
}
