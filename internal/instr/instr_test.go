package instr

import (
	"image/color"
	"testing"

	"github.com/specialistvlad/imagineer/internal/operation"
	"github.com/stretchr/testify/assert"
)

func TestInstruction_String(t *testing.T) {
	t.Parallel()

	red := color.NRGBA{R: 255, A: 255}

	testCases := []struct {
		name string
		in   Instruction
		want string
	}{
		{"float drops trailing zeros", Operation{Blur{Sigma: 1}}, "blur 1"},
		{"fraction", Operation{Contrast{Percent: -12.5}}, "contrast -12.5"},
		{"nullary", Operation{FlipHorizontal{}}, "fliph"},
		{"unsigned max", Operation{Crop{X1: 1, Y1: 4294967295}}, "crop 0 0 1 4294967295"},
		{"path is quoted", Operation{Overlay{Image: ImagePath{Path: "a b.png"}, X: 3, Y: 4}}, `overlay "a b.png" 3 4`},
		{
			"kernel",
			Operation{Filter3x3{Kernel: [9]float32{0, 0.1, 0.2, 1.3, 1.4, 1.5, 2.6, 2.7, 2.8}}},
			"filter3x3 0 0.1 0.2 1.3 1.4 1.5 2.6 2.7 2.8",
		},
		{
			"draw text",
			Operation{DrawText{Text: "hi\n", X: -1, Y: 2, Color: red, Size: 12, Font: "f.ttf"}},
			`draw-text "hi\n" coord(-1, 2) rgba(255, 0, 0, 255) size(12) font("f.ttf")`,
		},
		{"gradient", Operation{VerticalGradient{Start: red, End: color.NRGBA{}}}, "vertical-gradient rgba(255, 0, 0, 255) rgba(0, 0, 0, 0)"},
		{"set bool", EnvUpdate{PreserveAspectRatio{Enabled: true}}, "set preserve-aspect-ratio true"},
		{"set filter", EnvUpdate{SetSamplingFilter{Filter: CatmullRom}}, "set sampling-filter catmullrom"},
		{"del", EnvReset{Modifier: operation.SamplingFilter}, "del sampling-filter"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.in.String())
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	prog := Program{
		Operation{FlipVertical{}},
		EnvUpdate{SetSamplingFilter{Filter: Nearest}},
		Operation{Resize{Width: 10, Height: 20}},
	}

	assert.Equal(t, "flipv;\nset sampling-filter nearest;\nresize 10 20;", Format(prog))
	assert.Equal(t, "", Format(nil))
}

func TestID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, operation.Unsharpen, ID(Operation{Unsharpen{}}))
	assert.Equal(t, operation.PreserveAspectRatio, ID(EnvUpdate{PreserveAspectRatio{}}))
	assert.Equal(t, operation.SamplingFilter, ID(EnvReset{Modifier: operation.SamplingFilter}))
}

func TestSamplingFilter(t *testing.T) {
	t.Parallel()

	for _, f := range SamplingFilters() {
		got, ok := ParseSamplingFilter(f.String())
		assert.True(t, ok)
		assert.Equal(t, f, got)
	}

	_, ok := ParseSamplingFilter("bicubic")
	assert.False(t, ok)
	assert.Equal(t, Lanczos3, DefaultSamplingFilter)
	assert.Equal(t, "SamplingFilter(0)", SamplingFilter(0).String())
}
