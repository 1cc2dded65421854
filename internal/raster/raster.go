// Package raster holds the image value the engine transforms: a single frame
// or an ordered animation.
package raster

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/disintegration/imaging"
)

// Kind distinguishes a still image from an animation.
type Kind int

const (
	Static Kind = iota
	Animated
)

func (k Kind) String() string {
	if k == Animated {
		return "animated"
	}
	return "static"
}

// Frame is one raster of an image. Delay and Disposal are only meaningful
// for animations.
type Frame struct {
	Buffer   *image.NRGBA
	Delay    time.Duration
	Disposal byte
}

// Image is a static image (exactly one frame) or an animation.
type Image struct {
	Kind   Kind
	Frames []Frame
	// LoopCount follows image/gif: 0 loops forever, -1 plays once.
	LoopCount int
}

// ErrNoFrames is returned for an animation without frames.
var ErrNoFrames = errors.New("raster: image has no frames")

// NewStatic wraps img, converting it to NRGBA when needed.
func NewStatic(img image.Image) *Image {
	return &Image{
		Kind:   Static,
		Frames: []Frame{{Buffer: ToNRGBA(img)}},
	}
}

// NewAnimated builds an animation. A single frame stays animated so that
// encoding keeps its timing.
func NewAnimated(frames []Frame, loopCount int) (*Image, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	return &Image{Kind: Animated, Frames: frames, LoopCount: loopCount}, nil
}

// ToNRGBA returns img itself when it is already a zero-origin *image.NRGBA
// and a converted copy otherwise.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	return imaging.Clone(img)
}

// First is the first frame, which is the whole picture for a static image.
func (im *Image) First() *image.NRGBA {
	return im.Frames[0].Buffer
}

// Bounds is the size of the first frame.
func (im *Image) Bounds() image.Rectangle {
	return im.First().Bounds()
}

// Buffers returns the frame buffers in order.
func (im *Image) Buffers() []*image.NRGBA {
	out := make([]*image.NRGBA, len(im.Frames))
	for i := range im.Frames {
		out[i] = im.Frames[i].Buffer
	}
	return out
}

// ReplaceBuffers swaps in transformed buffers, keeping frame timing.
func (im *Image) ReplaceBuffers(bufs []*image.NRGBA) {
	if len(bufs) != len(im.Frames) {
		panic(fmt.Sprintf("raster: %d buffers for %d frames", len(bufs), len(im.Frames)))
	}
	for i := range im.Frames {
		im.Frames[i].Buffer = bufs[i]
	}
}

// SelectFrame reduces an animation to its n-th frame (1-based) as a static
// image. A static image only has frame 1.
func (im *Image) SelectFrame(n int) error {
	if n < 1 || n > len(im.Frames) {
		return fmt.Errorf("raster: frame %d out of range, image has %d frame(s)", n, len(im.Frames))
	}
	im.Frames = []Frame{{Buffer: im.Frames[n-1].Buffer}}
	im.Kind = Static
	im.LoopCount = 0
	return nil
}
