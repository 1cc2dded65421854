package engine

import (
	"context"
	"fmt"
	"image"

	"github.com/specialistvlad/imagineer/internal/instr"
	"github.com/specialistvlad/imagineer/internal/raster"
	"github.com/specialistvlad/imagineer/internal/transform"
	"golang.org/x/sync/errgroup"
)

// frameFunc transforms one frame. It must not modify its input.
type frameFunc func(*image.NRGBA) (*image.NRGBA, error)

func infallible(f func(*image.NRGBA) *image.NRGBA) frameFunc {
	return func(img *image.NRGBA) (*image.NRGBA, error) {
		return f(img), nil
	}
}

// prepare resolves everything an operation needs before any frame is
// touched, so referenced files are opened once per instruction.
func (e *Engine) prepare(op instr.Op, env Environment) (frameFunc, error) {
	switch op := op.(type) {
	case instr.Blur:
		return infallible(func(img *image.NRGBA) *image.NRGBA { return transform.Blur(img, op) }), nil
	case instr.Brighten:
		return infallible(func(img *image.NRGBA) *image.NRGBA { return transform.Brighten(img, op) }), nil
	case instr.Contrast:
		return infallible(func(img *image.NRGBA) *image.NRGBA { return transform.Contrast(img, op) }), nil
	case instr.Crop:
		return func(img *image.NRGBA) (*image.NRGBA, error) { return transform.Crop(img, op) }, nil
	case instr.Diff:
		other, err := e.loader.LoadImage(op.Image.Path)
		if err != nil {
			return nil, err
		}
		return infallible(func(img *image.NRGBA) *image.NRGBA { return transform.Diff(img, other) }), nil
	case instr.DrawText:
		data, err := e.loader.ReadFile(op.Font)
		if err != nil {
			return nil, err
		}
		f, err := transform.ParseFont(data)
		if err != nil {
			return nil, err
		}
		return func(img *image.NRGBA) (*image.NRGBA, error) { return transform.DrawText(img, f, op) }, nil
	case instr.Filter3x3:
		return infallible(func(img *image.NRGBA) *image.NRGBA { return transform.Filter3x3(img, op) }), nil
	case instr.FlipHorizontal:
		return infallible(transform.FlipHorizontal), nil
	case instr.FlipVertical:
		return infallible(transform.FlipVertical), nil
	case instr.Grayscale:
		return infallible(transform.Grayscale), nil
	case instr.HueRotate:
		return infallible(func(img *image.NRGBA) *image.NRGBA { return transform.HueRotate(img, op) }), nil
	case instr.HorizontalGradient:
		return infallible(func(img *image.NRGBA) *image.NRGBA { return transform.HorizontalGradient(img, op) }), nil
	case instr.Invert:
		return infallible(transform.Invert), nil
	case instr.Overlay:
		top, err := e.loader.LoadImage(op.Image.Path)
		if err != nil {
			return nil, err
		}
		return infallible(func(img *image.NRGBA) *image.NRGBA { return transform.Overlay(img, top, op) }), nil
	case instr.Resize:
		opts := env.Snapshot()
		return func(img *image.NRGBA) (*image.NRGBA, error) { return transform.Resize(img, op, opts) }, nil
	case instr.Rotate90:
		return infallible(transform.Rotate90), nil
	case instr.Rotate180:
		return infallible(transform.Rotate180), nil
	case instr.Rotate270:
		return infallible(transform.Rotate270), nil
	case instr.Threshold:
		return infallible(transform.Threshold), nil
	case instr.Unsharpen:
		return infallible(func(img *image.NRGBA) *image.NRGBA { return transform.Unsharpen(img, op) }), nil
	case instr.VerticalGradient:
		return infallible(func(img *image.NRGBA) *image.NRGBA { return transform.VerticalGradient(img, op) }), nil
	default:
		return nil, fmt.Errorf("unknown operation %T", op)
	}
}

// scatter runs fn over every frame and commits the results only when all
// frames succeeded. Cancelling ctx does not interrupt frames already queued;
// a failing frame stops the ones not yet started.
func (e *Engine) scatter(ctx context.Context, img *raster.Image, fn frameFunc) error {
	in := img.Buffers()
	out := make([]*image.NRGBA, len(in))

	g, gctx := errgroup.WithContext(context.WithoutCancel(ctx))
	g.SetLimit(e.workers)

	for i, buf := range in {
		i, buf := i, buf
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			res, err := safeApply(fn, buf)
			if err != nil {
				if img.Kind == raster.Animated {
					return fmt.Errorf("frame %d: %w", i+1, err)
				}
				return err
			}
			out[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	img.ReplaceBuffers(out)
	return nil
}

// safeApply turns a panic inside a transform into an error.
func safeApply(fn frameFunc, img *image.NRGBA) (out *image.NRGBA, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("transform panicked: %v", r)
		}
	}()
	return fn(img)
}
