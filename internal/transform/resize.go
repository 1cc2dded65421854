package transform

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/specialistvlad/imagineer/internal/instr"
)

// MaxResizePixels bounds the output of a resize: 16384 x 16384, one GiB of
// NRGBA pixels.
const MaxResizePixels = 1 << 28

// ResizeOptions is the part of the interpreter environment a resize reads.
type ResizeOptions struct {
	PreserveAspectRatio bool
	Filter              instr.SamplingFilter
}

// Resize scales to exactly Width x Height, or, when aspect ratio is
// preserved, to the largest size that fits within that box.
func Resize(img *image.NRGBA, op instr.Resize, opts ResizeOptions) (*image.NRGBA, error) {
	if op.Width == 0 || op.Height == 0 {
		return nil, fmt.Errorf("%w: resize to %dx%d", ErrInvalidGeometry, op.Width, op.Height)
	}

	w, h := int(op.Width), int(op.Height)
	if opts.PreserveAspectRatio {
		w, h = fitWithin(img.Bounds().Dx(), img.Bounds().Dy(), w, h)
	}
	if uint64(w)*uint64(h) > MaxResizePixels {
		return nil, fmt.Errorf("%w: resize to %dx%d exceeds %d pixels", ErrInvalidGeometry, w, h, MaxResizePixels)
	}
	return imaging.Resize(img, w, h, ResampleFilter(opts.Filter)), nil
}

// fitWithin scales (srcW, srcH) up or down to fit (boxW, boxH).
func fitWithin(srcW, srcH, boxW, boxH int) (int, int) {
	if srcW == 0 || srcH == 0 {
		return boxW, boxH
	}
	ratio := math.Min(float64(boxW)/float64(srcW), float64(boxH)/float64(srcH))
	w := max(1, int(math.Round(float64(srcW)*ratio)))
	h := max(1, int(math.Round(float64(srcH)*ratio)))
	return w, h
}

// ResampleFilter maps a sampling filter to its imaging implementation.
func ResampleFilter(f instr.SamplingFilter) imaging.ResampleFilter {
	switch f {
	case instr.CatmullRom:
		return imaging.CatmullRom
	case instr.Gaussian:
		return imaging.Gaussian
	case instr.Nearest:
		return imaging.NearestNeighbor
	case instr.Triangle:
		return imaging.Linear
	default:
		return imaging.Lanczos
	}
}
