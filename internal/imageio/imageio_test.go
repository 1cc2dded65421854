package imageio

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/specialistvlad/imagineer/internal/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filled(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestEncodeDecode_PNG(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	src := raster.NewStatic(filled(3, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 255}))
	var buf bytes.Buffer

	// --- Act ---
	require.NoError(t, Encode(&buf, src, imaging.PNG, Options{}))
	got, format, err := Decode(&buf)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, raster.Static, got.Kind)
	assert.Equal(t, src.First().Pix, got.First().Pix)
}

func TestEncode_JPEGQuality(t *testing.T) {
	t.Parallel()

	img := raster.NewStatic(filled(64, 64, color.NRGBA{R: 200, G: 100, B: 50, A: 255}))
	noisy := img.First()
	for i := 0; i < len(noisy.Pix); i += 7 {
		noisy.Pix[i] ^= 0x5a
	}

	var low, high bytes.Buffer
	require.NoError(t, Encode(&low, img, imaging.JPEG, Options{JPEGQuality: 5}))
	require.NoError(t, Encode(&high, img, imaging.JPEG, Options{JPEGQuality: 100}))

	assert.Less(t, low.Len(), high.Len())
}

func TestAnimatedGIF_RoundTrip(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	anim, err := raster.NewAnimated([]raster.Frame{
		{Buffer: filled(4, 4, color.NRGBA{A: 255}), Delay: 100 * time.Millisecond},
		{Buffer: filled(4, 4, color.NRGBA{R: 255, G: 255, B: 255, A: 255}), Delay: 250 * time.Millisecond},
		{Buffer: filled(4, 4, color.NRGBA{A: 255}), Delay: 30 * time.Millisecond},
	}, 0)
	require.NoError(t, err)
	repeat := 2

	var buf bytes.Buffer

	// --- Act ---
	require.NoError(t, Encode(&buf, anim, imaging.GIF, Options{GIFRepeat: &repeat}))
	got, format, err := Decode(&buf)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "gif", format)
	assert.Equal(t, raster.Animated, got.Kind)
	require.Len(t, got.Frames, 3)
	assert.Equal(t, 2, got.LoopCount)
	assert.Equal(t, 250*time.Millisecond, got.Frames[1].Delay)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, got.Frames[1].Buffer.NRGBAAt(1, 1))
}

func TestEncode_AnimationToStillFormatKeepsFirstFrame(t *testing.T) {
	t.Parallel()

	anim, err := raster.NewAnimated([]raster.Frame{
		{Buffer: filled(2, 2, color.NRGBA{R: 1, A: 255})},
		{Buffer: filled(2, 2, color.NRGBA{R: 2, A: 255})},
	}, 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, anim, imaging.PNG, Options{}))

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	r, _, _, _ := decoded.At(0, 0).RGBA()
	assert.Equal(t, uint32(1*0x101), r)
}

func TestDecode_RejectsUnknownData(t *testing.T) {
	t.Parallel()

	_, _, err := Decode(bytes.NewReader([]byte("definitely not an image")))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormatFor(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		path, forced string
		want         imaging.Format
		wantErr      bool
	}{
		{"out.png", "", imaging.PNG, false},
		{"out.JPG", "", imaging.JPEG, false},
		{"out.png", "gif", imaging.GIF, false},
		{"", "", imaging.PNG, false},
		{"", "tiff", imaging.TIFF, false},
		{"", "bmp", imaging.BMP, false},
		{"out.xyz", "", 0, true},
		{"", "webp", 0, true},
	}

	for _, tc := range testCases {
		got, err := FormatFor(tc.path, tc.forced)
		if tc.wantErr {
			assert.ErrorIs(t, err, ErrUnsupportedFormat, "%q/%q", tc.path, tc.forced)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%q/%q", tc.path, tc.forced)
	}
}

func TestFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, imaging.Save(filled(2, 3, color.NRGBA{A: 255}), filepath.Join(dir, "o.png")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.bin"), []byte("abc"), 0o600))

	files := Files{Dir: dir}

	img, err := files.LoadImage("o.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 3), img.Bounds())

	data, err := files.ReadFile("f.bin")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), data)

	_, err = files.LoadImage("missing.png")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
