package transform

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/specialistvlad/imagineer/internal/instr"
)

// Brighten adds a constant to every color channel. Alpha is kept.
func Brighten(img *image.NRGBA, op instr.Brighten) *image.NRGBA {
	delta := int(op.Amount)
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: clamp8(int(c.R) + delta),
			G: clamp8(int(c.G) + delta),
			B: clamp8(int(c.B) + delta),
			A: c.A,
		}
	})
}

// HueRotate rotates hue by a number of degrees using the luminance
// preserving matrix of the CSS hue-rotate filter.
func HueRotate(img *image.NRGBA, op instr.HueRotate) *image.NRGBA {
	rad := float64(op.Degrees) * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)

	m := [9]float64{
		0.213 + cos*0.787 - sin*0.213,
		0.715 - cos*0.715 - sin*0.715,
		0.072 - cos*0.072 + sin*0.928,

		0.213 - cos*0.213 + sin*0.143,
		0.715 + cos*0.285 + sin*0.140,
		0.072 - cos*0.072 - sin*0.283,

		0.213 - cos*0.213 - sin*0.787,
		0.715 - cos*0.715 + sin*0.715,
		0.072 + cos*0.928 + sin*0.072,
	}

	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		r, g, b := float64(c.R), float64(c.G), float64(c.B)
		return color.NRGBA{
			R: clampF(m[0]*r + m[1]*g + m[2]*b),
			G: clampF(m[3]*r + m[4]*g + m[5]*b),
			B: clampF(m[6]*r + m[7]*g + m[8]*b),
			A: c.A,
		}
	})
}

// Threshold binarises the frame at the Otsu level of its luma histogram.
func Threshold(img *image.NRGBA) *image.NRGBA {
	gray := imaging.Grayscale(img)

	var hist [256]int
	for i := 0; i < len(gray.Pix); i += 4 {
		hist[gray.Pix[i]]++
	}
	level := otsu(hist, len(gray.Pix)/4)

	for i := 0; i < len(gray.Pix); i += 4 {
		v := uint8(0)
		if gray.Pix[i] > level {
			v = 255
		}
		gray.Pix[i], gray.Pix[i+1], gray.Pix[i+2] = v, v, v
	}
	return gray
}

// otsu picks the level that maximises the between-class variance.
func otsu(hist [256]int, total int) uint8 {
	if total == 0 {
		return 0
	}

	var sum float64
	for i, n := range hist {
		sum += float64(i * n)
	}

	var (
		sumB, best float64
		weightB    int
		level      uint8
	)
	for i, n := range hist {
		weightB += n
		if weightB == 0 {
			continue
		}
		weightF := total - weightB
		if weightF == 0 {
			break
		}
		sumB += float64(i * n)
		meanB := sumB / float64(weightB)
		meanF := (sum - sumB) / float64(weightF)
		between := float64(weightB) * float64(weightF) * (meanB - meanF) * (meanB - meanF)
		if between > best {
			best = between
			level = uint8(i)
		}
	}
	return level
}

func clampF(v float64) uint8 {
	return clamp8(int(math.Round(v)))
}
