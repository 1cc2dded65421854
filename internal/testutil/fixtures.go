// Package testutil holds shared helpers for integration-style tests: a
// thread-safe log buffer, image fixtures and a harness that runs the app
// against files in a temporary directory.
package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"

	"github.com/specialistvlad/imagineer/internal/imageio"
	"github.com/specialistvlad/imagineer/internal/raster"
	"github.com/stretchr/testify/require"
)

// Filled returns a w x h image of a single color.
func Filled(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// PNG encodes img as PNG.
func PNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// AnimatedGIF encodes one frame per color, each w x h.
func AnimatedGIF(t *testing.T, w, h int, colors ...color.Color) []byte {
	t.Helper()
	g := &gif.GIF{}
	for _, c := range colors {
		frame := image.NewPaletted(image.Rect(0, 0, w, h), color.Palette{c})
		g.Image = append(g.Image, frame)
		g.Delay = append(g.Delay, 10)
	}
	var buf bytes.Buffer
	require.NoError(t, gif.EncodeAll(&buf, g))
	return buf.Bytes()
}

// Decode decodes data with the same decoder the app uses.
func Decode(t *testing.T, data []byte) *raster.Image {
	t.Helper()
	img, _, err := imageio.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}
