package imageio

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// Files opens files referenced by instructions (overlay and diff images,
// fonts). Relative paths are resolved against Dir when it is set.
type Files struct {
	Dir string
}

func (f Files) resolve(path string) string {
	if f.Dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(f.Dir, path)
}

// LoadImage decodes the image at path. Animated files yield their first frame.
func (f Files) LoadImage(path string) (image.Image, error) {
	img, err := imaging.Open(f.resolve(path), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open image %q: %w", path, err)
	}
	return img, nil
}

// ReadFile returns the raw contents of path.
func (f Files) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(f.resolve(path))
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	return data, nil
}
