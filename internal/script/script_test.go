package script

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/imagineer/internal/coerce"
	"github.com/specialistvlad/imagineer/internal/instr"
	"github.com/specialistvlad/imagineer/internal/operation"
	"github.com/specialistvlad/imagineer/internal/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_Scenarios(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		src  string
		want instr.Program
	}{
		{
			name: "statements across lines",
			src:  "blur 1;\nbrighten 2",
			want: instr.Program{
				instr.Operation{Op: instr.Blur{Sigma: 1}},
				instr.Operation{Op: instr.Brighten{Amount: 2}},
			},
		},
		{
			name: "largest unsigned crop coordinate",
			src:  "crop 0 0 0 4294967295",
			want: instr.Program{instr.Operation{Op: instr.Crop{X0: 0, Y0: 0, X1: 0, Y1: 4294967295}}},
		},
		{
			name: "piped kernel keeps order",
			src:  "filter3x3 0 0.1 0.2 | 1.3 1.4 1.5 | 2.6 2.7 2.8",
			want: instr.Program{instr.Operation{Op: instr.Filter3x3{Kernel: [9]float32{0, 0.1, 0.2, 1.3, 1.4, 1.5, 2.6, 2.7, 2.8}}}},
		},
		{
			name: "no trailing separator",
			src:  "fliph; flipv; resize 100 200; blur 10",
			want: instr.Program{
				instr.Operation{Op: instr.FlipHorizontal{}},
				instr.Operation{Op: instr.FlipVertical{}},
				instr.Operation{Op: instr.Resize{Width: 100, Height: 200}},
				instr.Operation{Op: instr.Blur{Sigma: 10}},
			},
		},
		{
			name: "environment statements keep their place",
			src:  "set preserve-aspect-ratio true; resize 10 10; set sampling-filter nearest; del preserve-aspect-ratio",
			want: instr.Program{
				instr.EnvUpdate{Item: instr.PreserveAspectRatio{Enabled: true}},
				instr.Operation{Op: instr.Resize{Width: 10, Height: 10}},
				instr.EnvUpdate{Item: instr.SetSamplingFilter{Filter: instr.Nearest}},
				instr.EnvReset{Modifier: operation.PreserveAspectRatio},
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			got, err := Compile(tc.src)

			// --- Assert ---
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("program mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompile_Failures(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		src           string
		wantStage     Stage
		wantStatement int
		wantToken     string
	}{
		{"crop overflow", "crop 0 0 0 4294967296", StageCoercion, 1, "4294967296"},
		{"trailing pipe", "filter3x3 0 0 0 | 1 1 1 | 2 2 2 |", StageSyntax, 1, ""},
		{"name glued to argument", "blur1; brighten 2", StageSyntax, 1, "blur1"},
		{"integer given a float", "unsharpen -99.0 -88.0;", StageCoercion, 1, "-88.0"},
		{"unknown filter", "fliph; set sampling-filter bicubic", StageCoercion, 2, "bicubic"},
		{"partial repeated block", "blur 1; resize 1 2 3", StageCoercion, 2, ""},
		{"missing separator", "fliph; blur 4\nblur 3", StageSyntax, 2, "blur"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			prog, err := Compile(tc.src)

			// --- Assert ---
			require.Error(t, err)
			assert.Nil(t, prog)

			var cerr *Error
			require.True(t, errors.As(err, &cerr), "want *script.Error, got %T", err)
			assert.Equal(t, tc.wantStage, cerr.Stage)
			assert.Equal(t, tc.wantStatement, cerr.Statement)
			assert.Equal(t, tc.wantToken, cerr.Token)
			assert.True(t, cerr.Pos.IsValid())
		})
	}
}

func TestCompile_ErrorUnwrapsToLayer(t *testing.T) {
	t.Parallel()

	_, err := Compile("contrast 15.;")
	var se *syntax.Error
	assert.True(t, errors.As(err, &se))

	_, err = Compile("unsharpen -99.0 -88.0;")
	var ce *coerce.Error
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 2, ce.Arg)
	assert.Equal(t, `statement 1 at 1:17: unsharpen: argument 2 ("-88.0"): not a 32-bit signed integer: invalid syntax`, err.Error())

	_, err = CompileFile("thumb.imgs", "resize 1 2 3")
	var ae *coerce.ArityError
	require.True(t, errors.As(err, &ae))
	assert.Contains(t, err.Error(), "thumb.imgs:1:1")
}

func TestCompile_Empty(t *testing.T) {
	t.Parallel()

	prog, err := Compile(" \n ")
	require.NoError(t, err)
	assert.Empty(t, prog)
}

func TestCompile_GroupsRepeatedBlocks(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 3; n++ {
		args := strings.Repeat(" 7 8", n)

		prog, err := Compile("resize" + args)
		require.NoError(t, err)
		require.Len(t, prog, n)
		for _, in := range prog {
			assert.Equal(t, instr.Operation{Op: instr.Resize{Width: 7, Height: 8}}, in)
		}

		_, err = Compile("resize" + args + " 9")
		assert.Error(t, err, "a partial block must not compile")
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	t.Parallel()

	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 200, A: 128}

	prog := instr.Program{
		instr.Operation{Op: instr.Blur{Sigma: 1.25}},
		instr.Operation{Op: instr.Brighten{Amount: -40}},
		instr.Operation{Op: instr.Contrast{Percent: 12.5}},
		instr.Operation{Op: instr.Crop{X0: 1, Y0: 2, X1: 30, Y1: 4294967295}},
		instr.Operation{Op: instr.Diff{Image: instr.ImagePath{Path: "other image.png"}}},
		instr.Operation{Op: instr.DrawText{Text: "say \"hi\"; bye", X: -3, Y: 9, Color: red, Size: 16.5, Font: "fonts/Go Regular.ttf"}},
		instr.Operation{Op: instr.Filter3x3{Kernel: [9]float32{-1, -1, -1, -1, 8, -1, -1, -1, -0.5}}},
		instr.Operation{Op: instr.FlipHorizontal{}},
		instr.Operation{Op: instr.FlipVertical{}},
		instr.Operation{Op: instr.Grayscale{}},
		instr.Operation{Op: instr.HueRotate{Degrees: 270}},
		instr.Operation{Op: instr.HorizontalGradient{Start: red, End: blue}},
		instr.Operation{Op: instr.Invert{}},
		instr.Operation{Op: instr.Overlay{Image: instr.ImagePath{Path: "logo.png"}, X: 5, Y: 6}},
		instr.Operation{Op: instr.Resize{Width: 640, Height: 480}},
		instr.Operation{Op: instr.Rotate90{}},
		instr.Operation{Op: instr.Rotate180{}},
		instr.Operation{Op: instr.Rotate270{}},
		instr.Operation{Op: instr.Threshold{}},
		instr.Operation{Op: instr.Unsharpen{Sigma: 0.7, Threshold: -3}},
		instr.Operation{Op: instr.VerticalGradient{Start: blue, End: red}},
		instr.EnvUpdate{Item: instr.PreserveAspectRatio{Enabled: false}},
	}
	for _, f := range instr.SamplingFilters() {
		prog = append(prog, instr.EnvUpdate{Item: instr.SetSamplingFilter{Filter: f}})
	}
	for _, id := range operation.Modifiers() {
		prog = append(prog, instr.EnvReset{Modifier: id})
	}

	covered := map[operation.ID]bool{}
	for _, in := range prog {
		covered[instr.ID(in)] = true
	}
	require.Len(t, covered, len(operation.All()), "round trip must cover every operation")

	// --- Act ---
	text := instr.Format(prog)
	got, err := Compile(text)

	// --- Assert ---
	require.NoError(t, err, "canonical text:\n%s", text)
	if diff := cmp.Diff(prog, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, text, instr.Format(got))
}

func TestFormat_RoundTripFromSource(t *testing.T) {
	t.Parallel()

	sources := []string{
		"blur 1;\nbrighten 2",
		"filter3x3 0 0.1 0.2 | 1.3 1.4 1.5 | 2.6 2.7 2.8",
		"fliph; flipv; resize 100 200; blur 10",
		"resize 200 200 100 100; set preserve-aspect-ratio true",
		`draw-text hello coord(1, 2) rgba(1, 2, 3, 4) size(10) font(a.ttf); overlay x.png 0 0`,
	}

	for _, src := range sources {
		first, err := Compile(src)
		require.NoError(t, err, src)

		second, err := Compile(instr.Format(first))
		require.NoError(t, err, src)

		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("%q: recompiled program differs (-first +second):\n%s", src, diff)
		}
	}
}
