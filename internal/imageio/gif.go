package imageio

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"time"

	"github.com/disintegration/imaging"
	"github.com/specialistvlad/imagineer/internal/raster"
)

const gifDelayUnit = 10 * time.Millisecond

// gifPalette is the web-safe palette plus full transparency.
var gifPalette = append(color.Palette{color.Transparent}, palette.WebSafe...)

// fromGIF composes every GIF frame onto the logical screen so each
// raster.Frame is a full picture.
func fromGIF(g *gif.GIF) (*raster.Image, error) {
	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}

	canvas := image.NewNRGBA(bounds)
	frames := make([]raster.Frame, 0, len(g.Image))

	for i, src := range g.Image {
		var previous *image.NRGBA
		disposal := byte(gif.DisposalNone)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			previous = imaging.Clone(canvas)
		}

		draw.Draw(canvas, src.Bounds(), src, src.Bounds().Min, draw.Over)
		frames = append(frames, raster.Frame{
			Buffer: imaging.Clone(canvas),
			Delay:  time.Duration(g.Delay[i]) * gifDelayUnit,
			// Frames are full pictures, so each one replaces the last.
			Disposal: gif.DisposalBackground,
		})

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, src.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}

	return raster.NewAnimated(frames, g.LoopCount)
}

func encodeGIF(w io.Writer, img *raster.Image, opts Options) error {
	out := &gif.GIF{LoopCount: img.LoopCount}
	if opts.GIFRepeat != nil {
		out.LoopCount = *opts.GIFRepeat
	}

	for _, f := range img.Frames {
		b := f.Buffer.Bounds()
		p := image.NewPaletted(b, gifPalette)
		draw.FloydSteinberg.Draw(p, b, f.Buffer, b.Min)

		out.Image = append(out.Image, p)
		out.Delay = append(out.Delay, int(f.Delay/gifDelayUnit))
		out.Disposal = append(out.Disposal, f.Disposal)
	}

	if err := gif.EncodeAll(w, out); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}
