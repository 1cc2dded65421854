package transform

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/specialistvlad/imagineer/internal/instr"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ParseFont parses TrueType or OpenType font data.
func ParseFont(data []byte) (*opentype.Font, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return f, nil
}

// DrawText renders op.Text with its top-left corner at (X, Y).
func DrawText(img *image.NRGBA, f *opentype.Font, op instr.DrawText) (*image.NRGBA, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(op.Size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("load font face: %w", err)
	}
	defer face.Close()

	out := imaging.Clone(img)
	d := &font.Drawer{
		Dst:  out,
		Src:  image.NewUniform(op.Color),
		Face: face,
		Dot:  fixed.P(int(op.X), int(op.Y)+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(op.Text)
	return out, nil
}
