package instr

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/specialistvlad/imagineer/internal/operation"
)

// Op is the typed payload of an Operation. There is one type per image
// operation and no other implementations.
type Op interface {
	ID() operation.ID
	args() []string
}

// ImagePath references an image file that is opened when the instruction
// runs, never at compile time.
type ImagePath struct {
	Path string
}

type (
	Blur struct {
		Sigma float32
	}
	Brighten struct {
		Amount int32
	}
	Contrast struct {
		Percent float32
	}
	// Crop keeps the rectangle from (X0, Y0) inclusive to (X1, Y1) exclusive.
	Crop struct {
		X0, Y0, X1, Y1 uint32
	}
	Diff struct {
		Image ImagePath
	}
	DrawText struct {
		Text  string
		X, Y  int32
		Color color.NRGBA
		Size  float32
		Font  string
	}
	// Filter3x3 is a row-major convolution kernel.
	Filter3x3 struct {
		Kernel [9]float32
	}
	FlipHorizontal struct{}
	FlipVertical   struct{}
	Grayscale      struct{}
	HueRotate      struct {
		Degrees int32
	}
	HorizontalGradient struct {
		Start, End color.NRGBA
	}
	Invert  struct{}
	Overlay struct {
		Image ImagePath
		X, Y  uint32
	}
	// Resize is the only operation that depends on the environment.
	Resize struct {
		Width, Height uint32
	}
	Rotate90  struct{}
	Rotate180 struct{}
	Rotate270 struct{}
	Threshold struct{}
	Unsharpen struct {
		Sigma     float32
		Threshold int32
	}
	VerticalGradient struct {
		Start, End color.NRGBA
	}
)

func (Blur) ID() operation.ID               { return operation.Blur }
func (Brighten) ID() operation.ID           { return operation.Brighten }
func (Contrast) ID() operation.ID           { return operation.Contrast }
func (Crop) ID() operation.ID               { return operation.Crop }
func (Diff) ID() operation.ID               { return operation.Diff }
func (DrawText) ID() operation.ID           { return operation.DrawText }
func (Filter3x3) ID() operation.ID          { return operation.Filter3x3 }
func (FlipHorizontal) ID() operation.ID     { return operation.FlipHorizontal }
func (FlipVertical) ID() operation.ID       { return operation.FlipVertical }
func (Grayscale) ID() operation.ID          { return operation.Grayscale }
func (HueRotate) ID() operation.ID          { return operation.HueRotate }
func (HorizontalGradient) ID() operation.ID { return operation.HorizontalGradient }
func (Invert) ID() operation.ID             { return operation.Invert }
func (Overlay) ID() operation.ID            { return operation.Overlay }
func (Resize) ID() operation.ID             { return operation.Resize }
func (Rotate90) ID() operation.ID           { return operation.Rotate90 }
func (Rotate180) ID() operation.ID          { return operation.Rotate180 }
func (Rotate270) ID() operation.ID          { return operation.Rotate270 }
func (Threshold) ID() operation.ID          { return operation.Threshold }
func (Unsharpen) ID() operation.ID          { return operation.Unsharpen }
func (VerticalGradient) ID() operation.ID   { return operation.VerticalGradient }

func (o Blur) args() []string     { return []string{f32(o.Sigma)} }
func (o Brighten) args() []string { return []string{i32(o.Amount)} }
func (o Contrast) args() []string { return []string{f32(o.Percent)} }
func (o Crop) args() []string {
	return []string{u32(o.X0), u32(o.Y0), u32(o.X1), u32(o.Y1)}
}
func (o Diff) args() []string { return []string{strconv.Quote(o.Image.Path)} }
func (o DrawText) args() []string {
	return []string{
		strconv.Quote(o.Text),
		fmt.Sprintf("coord(%d, %d)", o.X, o.Y),
		rgba(o.Color),
		fmt.Sprintf("size(%s)", f32(o.Size)),
		fmt.Sprintf("font(%s)", strconv.Quote(o.Font)),
	}
}
func (o Filter3x3) args() []string {
	out := make([]string, len(o.Kernel))
	for i, v := range o.Kernel {
		out[i] = f32(v)
	}
	return out
}
func (FlipHorizontal) args() []string { return nil }
func (FlipVertical) args() []string   { return nil }
func (Grayscale) args() []string      { return nil }
func (o HueRotate) args() []string    { return []string{i32(o.Degrees)} }
func (o HorizontalGradient) args() []string {
	return []string{rgba(o.Start), rgba(o.End)}
}
func (Invert) args() []string { return nil }
func (o Overlay) args() []string {
	return []string{strconv.Quote(o.Image.Path), u32(o.X), u32(o.Y)}
}
func (o Resize) args() []string { return []string{u32(o.Width), u32(o.Height)} }
func (Rotate90) args() []string  { return nil }
func (Rotate180) args() []string { return nil }
func (Rotate270) args() []string { return nil }
func (Threshold) args() []string { return nil }
func (o Unsharpen) args() []string {
	return []string{f32(o.Sigma), i32(o.Threshold)}
}
func (o VerticalGradient) args() []string {
	return []string{rgba(o.Start), rgba(o.End)}
}

func f32(v float32) string { return strconv.FormatFloat(float64(v), 'f', -1, 32) }
func i32(v int32) string   { return strconv.FormatInt(int64(v), 10) }
func u32(v uint32) string  { return strconv.FormatUint(uint64(v), 10) }

func rgba(c color.NRGBA) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %d)", c.R, c.G, c.B, c.A)
}
