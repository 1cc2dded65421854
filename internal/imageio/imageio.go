// Package imageio decodes input bytes into a raster.Image and encodes the
// result back, including animated GIFs.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/specialistvlad/imagineer/internal/raster"

	// Decoders beyond the ones imaging registers.
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is wrapped for unknown input data or output formats.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// DefaultJPEGQuality is used when Options.JPEGQuality is zero.
const DefaultJPEGQuality = 80

// Options controls encoding.
type Options struct {
	// JPEGQuality is 1..100.
	JPEGQuality int
	// GIFRepeat overrides the loop count of an animation when set. It
	// follows image/gif: 0 loops forever, -1 plays once.
	GIFRepeat *int
}

// Decode reads a whole image. Multi-frame GIFs become animations; every
// other input, including single-frame GIFs, is static. The returned name is
// the detected format ("png", "gif", ...).
func Decode(r io.Reader) (*raster.Image, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("read image: %w", err)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	if format == "gif" {
		g, err := gif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return nil, format, fmt.Errorf("decode gif: %w", err)
		}
		if len(g.Image) > 1 {
			img, err := fromGIF(g)
			return img, format, err
		}
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, format, fmt.Errorf("decode %s: %w", format, err)
	}
	return raster.NewStatic(img), format, nil
}

// FormatFor picks the output format: forced if given, otherwise from the
// output file extension, otherwise PNG.
func FormatFor(path, forced string) (imaging.Format, error) {
	name := forced
	if name == "" && path != "" {
		name = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	if name == "" {
		return imaging.PNG, nil
	}
	f, err := imaging.FormatFromExtension(name)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
	return f, nil
}

// Encode writes img. Animations are only kept by GIF output; other formats
// receive the first frame.
func Encode(w io.Writer, img *raster.Image, format imaging.Format, opts Options) error {
	if img.Kind == raster.Animated && format == imaging.GIF {
		return encodeGIF(w, img, opts)
	}

	quality := opts.JPEGQuality
	if quality == 0 {
		quality = DefaultJPEGQuality
	}
	if err := imaging.Encode(w, img.First(), format, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return nil
}
