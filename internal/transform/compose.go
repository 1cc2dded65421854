package transform

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/specialistvlad/imagineer/internal/instr"
)

var (
	diffSame    = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	diffChanged = color.NRGBA{R: 255, A: 255}
)

// Diff compares img with other pixel by pixel. The result covers both
// images: matching pixels are white, differing ones red, and pixels present
// in only one image are transparent.
func Diff(img *image.NRGBA, other image.Image) *image.NRGBA {
	ob := other.Bounds()
	ib := img.Bounds()
	w := max(ib.Dx(), ob.Dx())
	h := max(ib.Dy(), ob.Dy())

	o := imaging.Clone(other)
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			inA := x < ib.Dx() && y < ib.Dy()
			inB := x < ob.Dx() && y < ob.Dy()
			if !inA || !inB {
				continue
			}
			if img.NRGBAAt(x, y) == o.NRGBAAt(x, y) {
				out.SetNRGBA(x, y, diffSame)
			} else {
				out.SetNRGBA(x, y, diffChanged)
			}
		}
	}
	return out
}

// Overlay draws top over img with its top-left corner at (X, Y). Parts of
// top outside the frame are clipped.
func Overlay(img *image.NRGBA, top image.Image, op instr.Overlay) *image.NRGBA {
	return imaging.Overlay(img, top, image.Pt(int(op.X), int(op.Y)), 1.0)
}

// HorizontalGradient fills the frame from Start on the left to End on the right.
func HorizontalGradient(img *image.NRGBA, op instr.HorizontalGradient) *image.NRGBA {
	return gradient(img.Bounds(), op.Start, op.End, true)
}

// VerticalGradient fills the frame from Start at the top to End at the bottom.
func VerticalGradient(img *image.NRGBA, op instr.VerticalGradient) *image.NRGBA {
	return gradient(img.Bounds(), op.Start, op.End, false)
}

func gradient(b image.Rectangle, start, end color.NRGBA, horizontal bool) *image.NRGBA {
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))

	span := h - 1
	if horizontal {
		span = w - 1
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pos := y
			if horizontal {
				pos = x
			}
			t := 0.0
			if span > 0 {
				t = float64(pos) / float64(span)
			}
			out.SetNRGBA(x, y, lerp(start, end, t))
		}
	}
	return out
}

func lerp(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return clampF(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
