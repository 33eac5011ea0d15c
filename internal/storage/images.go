package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// ImageStore persists airplane images as opaque blobs and hands back the
// media-relative path to store on the airplane record.
type ImageStore interface {
	SaveAirplaneImage(airplaneName, originalFilename string, src io.Reader) (string, error)
}

type LocalImageStore struct {
	baseDir string
}

func NewLocalImageStore(baseDir string) *LocalImageStore {
	return &LocalImageStore{baseDir: baseDir}
}

// SaveAirplaneImage writes the image under
// uploads/airplanes/<slug(name)>-<uuid><ext>. The random suffix keeps
// repeated uploads for the same airplane from colliding.
func (s *LocalImageStore) SaveAirplaneImage(airplaneName, originalFilename string, src io.Reader) (string, error) {
	ext := filepath.Ext(originalFilename)
	name := fmt.Sprintf("%s-%s%s", slug.Make(airplaneName), uuid.NewString(), ext)
	rel := filepath.Join("uploads", "airplanes", name)

	full := filepath.Join(s.baseDir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	out, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("write image file: %w", err)
	}
	return filepath.ToSlash(rel), nil
}

var _ ImageStore = (*LocalImageStore)(nil)
