// Package transform implements one pixel transform per image operation.
//
// Every function takes a frame and returns a new frame; inputs are never
// modified, so the engine can run the same transform over many frames at
// once. Referenced files are loaded by the caller and passed in.
package transform

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/specialistvlad/imagineer/internal/instr"
)

// ErrInvalidGeometry is wrapped when a rectangle or size does not fit the frame.
var ErrInvalidGeometry = errors.New("invalid geometry")

func Blur(img *image.NRGBA, op instr.Blur) *image.NRGBA {
	return imaging.Blur(img, float64(op.Sigma))
}

// Contrast adjusts contrast by a percentage; imaging clamps it to [-100, 100].
func Contrast(img *image.NRGBA, op instr.Contrast) *image.NRGBA {
	return imaging.AdjustContrast(img, float64(op.Percent))
}

// Crop keeps [X0, X1) x [Y0, Y1). The rectangle must be non-empty and lie
// within the frame.
func Crop(img *image.NRGBA, op instr.Crop) (*image.NRGBA, error) {
	b := img.Bounds()
	w, h := uint64(b.Dx()), uint64(b.Dy())
	x0, y0, x1, y1 := uint64(op.X0), uint64(op.Y0), uint64(op.X1), uint64(op.Y1)

	if x0 >= x1 || y0 >= y1 || x1 > w || y1 > h {
		return nil, fmt.Errorf("%w: crop (%d, %d)-(%d, %d) outside %dx%d image",
			ErrInvalidGeometry, x0, y0, x1, y1, w, h)
	}
	return imaging.Crop(img, image.Rect(int(x0), int(y0), int(x1), int(y1))), nil
}

// Filter3x3 convolves with a row-major kernel, normalised by its sum.
func Filter3x3(img *image.NRGBA, op instr.Filter3x3) *image.NRGBA {
	var k [9]float64
	for i, v := range op.Kernel {
		k[i] = float64(v)
	}
	return imaging.Convolve3x3(img, k, &imaging.ConvolveOptions{Normalize: true})
}

func FlipHorizontal(img *image.NRGBA) *image.NRGBA { return imaging.FlipH(img) }

func FlipVertical(img *image.NRGBA) *image.NRGBA { return imaging.FlipV(img) }

func Grayscale(img *image.NRGBA) *image.NRGBA { return imaging.Grayscale(img) }

func Invert(img *image.NRGBA) *image.NRGBA { return imaging.Invert(img) }

// Rotate90 turns the frame clockwise. imaging rotates counter-clockwise.
func Rotate90(img *image.NRGBA) *image.NRGBA { return imaging.Rotate270(img) }

func Rotate180(img *image.NRGBA) *image.NRGBA { return imaging.Rotate180(img) }

// Rotate270 turns the frame clockwise by 270 degrees.
func Rotate270(img *image.NRGBA) *image.NRGBA { return imaging.Rotate90(img) }

// Unsharpen adds back the difference between the frame and its blurred copy
// wherever that difference exceeds threshold.
func Unsharpen(img *image.NRGBA, op instr.Unsharpen) *image.NRGBA {
	blurred := imaging.Blur(img, float64(op.Sigma))
	out := imaging.Clone(img)
	threshold := int(op.Threshold)

	for i := 0; i < len(out.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			orig := int(out.Pix[i+c])
			diff := orig - int(blurred.Pix[i+c])
			if abs(diff) > threshold {
				out.Pix[i+c] = clamp8(orig + diff)
			}
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp8(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}
